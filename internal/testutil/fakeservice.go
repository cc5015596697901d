// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"mytasks/internal/service"
)

// FakeService is an in-memory implementation of service.Service for testing.
type FakeService struct {
	mu     sync.RWMutex
	tasks  []service.Task
	users  map[string]service.Registration // email -> registration
	nextID int

	// Calls records the operations invoked, in order.
	Calls []string

	// Token is returned by a successful Login.
	Token string

	// Error injection for testing
	ListErr     error
	AddErr      error
	RemoveErr   error
	RegisterErr error
	LoginErr    error
}

// NewFakeService creates an empty FakeService.
func NewFakeService() *FakeService {
	return &FakeService{
		users: make(map[string]service.Registration),
		Token: "fake-token",
	}
}

// AddTask seeds a task, generating an ID when t.ID is empty.
func (f *FakeService) AddTask(t service.Task) service.Task {
	f.mu.Lock()
	defer f.mu.Unlock()
	if t.ID == "" {
		t.ID = f.newID()
	}
	f.tasks = append(f.tasks, t)
	return t
}

// Tasks returns a copy of the stored tasks.
func (f *FakeService) Tasks() []service.Task {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return slices.Clone(f.tasks)
}

// AddUser seeds a registered account.
func (f *FakeService) AddUser(email, password string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.users[email] = service.Registration{Email: email, Password: password}
}

func (f *FakeService) newID() string {
	f.nextID++
	return fmt.Sprintf("t%d", f.nextID)
}

func (f *FakeService) record(call string) {
	f.Calls = append(f.Calls, call)
}

// List implements service.Repository.
func (f *FakeService) List(ctx context.Context) ([]service.Task, error) {
	f.mu.Lock()
	f.record("list")
	f.mu.Unlock()
	if f.ListErr != nil {
		return nil, f.ListErr
	}
	return f.Tasks(), nil
}

// Add implements service.Repository.
func (f *FakeService) Add(ctx context.Context, in service.NewTask) (service.Task, string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("add")
	if f.AddErr != nil {
		return service.Task{}, "", f.AddErr
	}
	t := service.Task{
		ID:          f.newID(),
		Title:       in.Title,
		Description: in.Description,
		DueDate:     in.DueDate,
		Priority:    in.Priority,
		IsCompleted: in.IsCompleted,
	}
	f.tasks = append(f.tasks, t)
	return t, "Task added successfully", nil
}

// Remove implements service.Repository.
func (f *FakeService) Remove(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("remove " + id)
	if f.RemoveErr != nil {
		return f.RemoveErr
	}
	for i, t := range f.tasks {
		if t.ID == id {
			f.tasks = slices.Delete(f.tasks, i, i+1)
			return nil
		}
	}
	return &service.BackendError{Status: 404, Message: "Task not found", Err: service.ErrNotFound}
}

// Register implements service.Accounts.
func (f *FakeService) Register(ctx context.Context, r service.Registration) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("register")
	if f.RegisterErr != nil {
		return "", f.RegisterErr
	}
	if _, ok := f.users[r.Email]; ok {
		return "", &service.BackendError{Status: 400, Message: "User already exists"}
	}
	f.users[r.Email] = r
	return "User registered successfully", nil
}

// Login implements service.Accounts.
func (f *FakeService) Login(ctx context.Context, c service.Credentials) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("login")
	if f.LoginErr != nil {
		return "", f.LoginErr
	}
	u, ok := f.users[c.Email]
	if !ok || u.Password != c.Password {
		return "", &service.BackendError{Status: 400, Message: "Invalid credentials"}
	}
	return f.Token, nil
}
