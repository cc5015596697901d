package testutil

import (
	"context"
	"sync"
)

// MemoryKV is a map-backed key/value store satisfying session.KV.
type MemoryKV struct {
	mu sync.Mutex
	m  map[string]string

	// GetErr, when set, is returned by every Get.
	GetErr error
}

// NewMemoryKV returns an empty MemoryKV.
func NewMemoryKV() *MemoryKV {
	return &MemoryKV{m: make(map[string]string)}
}

func (kv *MemoryKV) Get(ctx context.Context, key string) (string, bool, error) {
	if kv.GetErr != nil {
		return "", false, kv.GetErr
	}
	kv.mu.Lock()
	defer kv.mu.Unlock()
	v, ok := kv.m[key]
	return v, ok, nil
}

func (kv *MemoryKV) Set(ctx context.Context, key, value string) error {
	kv.mu.Lock()
	defer kv.mu.Unlock()
	kv.m[key] = value
	return nil
}

func (kv *MemoryKV) Delete(ctx context.Context, key string) error {
	kv.mu.Lock()
	defer kv.mu.Unlock()
	delete(kv.m, key)
	return nil
}
