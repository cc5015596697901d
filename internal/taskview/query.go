// Package taskview derives the visible page of tasks from the full collection:
// search, priority filter, status filter, stable sort, then pagination.
package taskview

import (
	"fmt"
	"strings"

	"mytasks/internal/service"
)

// DefaultPageSize is the number of tasks on one page.
const DefaultPageSize = 6

// PriorityFilter selects tasks by priority.
type PriorityFilter string

const (
	PriorityAll    PriorityFilter = "All"
	PriorityHigh   PriorityFilter = PriorityFilter(service.PriorityHigh)
	PriorityMedium PriorityFilter = PriorityFilter(service.PriorityMedium)
	PriorityLow    PriorityFilter = PriorityFilter(service.PriorityLow)
)

var priorityFilters = []PriorityFilter{PriorityAll, PriorityHigh, PriorityMedium, PriorityLow}

// StatusFilter selects tasks by completion.
type StatusFilter string

const (
	StatusAll       StatusFilter = "All"
	StatusCompleted StatusFilter = "Completed"
	StatusPending   StatusFilter = "Pending"
)

var statusFilters = []StatusFilter{StatusAll, StatusCompleted, StatusPending}

// SortKey selects the sort order.
type SortKey string

const (
	SortDueDate  SortKey = "due_date"
	SortPriority SortKey = "priority"
)

var sortKeys = []SortKey{SortDueDate, SortPriority}

// Query holds the user-chosen parameters of the pipeline.
// Zero values mean: no search, All, All, due_date, page 1, DefaultPageSize.
type Query struct {
	Search   string
	Priority PriorityFilter
	Status   StatusFilter
	SortBy   SortKey
	Page     int
	PageSize int
}

// DefaultQuery returns the query the task list starts with.
func DefaultQuery() Query {
	return Query{
		Priority: PriorityAll,
		Status:   StatusAll,
		SortBy:   SortDueDate,
		Page:     1,
		PageSize: DefaultPageSize,
	}
}

// ParsePriorityFilter parses All, High, Medium or Low case-insensitively.
func ParsePriorityFilter(s string) (PriorityFilter, error) {
	for _, f := range priorityFilters {
		if strings.EqualFold(strings.TrimSpace(s), string(f)) {
			return f, nil
		}
	}
	return "", fmt.Errorf("invalid priority filter: %s (want All, High, Medium or Low)", s)
}

// ParseStatusFilter parses All, Completed or Pending case-insensitively.
func ParseStatusFilter(s string) (StatusFilter, error) {
	for _, f := range statusFilters {
		if strings.EqualFold(strings.TrimSpace(s), string(f)) {
			return f, nil
		}
	}
	return "", fmt.Errorf("invalid status filter: %s (want All, Completed or Pending)", s)
}

// ParseSortKey parses due_date or priority case-insensitively.
func ParseSortKey(s string) (SortKey, error) {
	for _, k := range sortKeys {
		if strings.EqualFold(strings.TrimSpace(s), string(k)) {
			return k, nil
		}
	}
	return "", fmt.Errorf("invalid sort key: %s (want due_date or priority)", s)
}

// Next returns the following filter value, wrapping around.
func (f PriorityFilter) Next() PriorityFilter {
	return next(priorityFilters, f)
}

// Next returns the following filter value, wrapping around.
func (f StatusFilter) Next() StatusFilter {
	return next(statusFilters, f)
}

// Next returns the following sort key, wrapping around.
func (k SortKey) Next() SortKey {
	return next(sortKeys, k)
}

func next[T comparable](values []T, cur T) T {
	for i, v := range values {
		if v == cur {
			return values[(i+1)%len(values)]
		}
	}
	return values[0]
}

// Label returns a short human description of the filter.
func (f PriorityFilter) Label() string {
	if f == PriorityAll || f == "" {
		return "All Priorities"
	}
	return string(f)
}

// Label returns a short human description of the filter.
func (f StatusFilter) Label() string {
	if f == StatusAll || f == "" {
		return "All Status"
	}
	return string(f)
}

// Label returns a short human description of the sort key.
func (k SortKey) Label() string {
	if k == SortPriority {
		return "Sort by Priority"
	}
	return "Sort by Due Date"
}
