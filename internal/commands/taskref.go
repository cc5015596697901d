package commands

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// IDPrefix marks a task reference given by backend ID.
const IDPrefix = "id:"

// TaskRef represents a parsed task reference.
type TaskRef struct {
	Num int    // 1-based number as shown by list, 0 when ID is set
	ID  string // backend ID, empty when Num is set
}

// ErrTaskRefRequired indicates no task reference was provided.
var ErrTaskRefRequired = errors.New("task reference required")

// ParseTaskRef parses a task reference from args.
//
// Parsing rules:
// 1. All digits → the task's number in list output
// 2. id:<id> → the task's backend ID
// 3. Anything else, or extra args → error: invalid task reference: <ref>
func ParseTaskRef(args []string) (TaskRef, error) {
	if len(args) == 0 {
		return TaskRef{}, ErrTaskRefRequired
	}
	if len(args) > 1 {
		return TaskRef{}, fmt.Errorf("invalid task reference: %s", strings.Join(args, " "))
	}

	ref := args[0]
	if isAllDigits(ref) {
		num, err := strconv.Atoi(ref)
		if err != nil {
			return TaskRef{}, fmt.Errorf("invalid task reference: %s", ref)
		}
		return TaskRef{Num: num}, nil
	}

	if id, ok := strings.CutPrefix(ref, IDPrefix); ok {
		if strings.TrimSpace(id) == "" {
			return TaskRef{}, ErrTaskRefRequired
		}
		return TaskRef{ID: id}, nil
	}

	return TaskRef{}, fmt.Errorf("invalid task reference: %s", ref)
}

// isAllDigits returns true if s consists only of ASCII digits and is non-empty.
func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r > unicode.MaxASCII || !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
