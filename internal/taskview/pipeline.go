package taskview

import (
	"slices"
	"strings"

	"mytasks/internal/service"
)

// Page is the visible slice of the derived task list.
type Page struct {
	Tasks       []service.Task
	TotalPages  int
	CurrentPage int

	// TotalCount is the number of tasks after filtering, across all pages.
	TotalCount int

	// Offset is the index of Tasks[0] within the filtered, sorted list.
	Offset int
}

// Derive runs the full pipeline over tasks. It never fails: an empty
// result is a valid page with TotalPages and CurrentPage both 1.
// The input slice is not modified.
func Derive(tasks []service.Task, q Query) Page {
	return Paginate(Sort(Filter(tasks, q), q.SortBy), q.Page, q.PageSize)
}

// Filter applies search, priority and status filtering, keeping input order.
func Filter(tasks []service.Task, q Query) []service.Task {
	needle := ""
	if strings.TrimSpace(q.Search) != "" {
		needle = strings.ToLower(q.Search)
	}

	out := make([]service.Task, 0, len(tasks))
	for _, t := range tasks {
		if needle != "" && !strings.Contains(strings.ToLower(t.Title), needle) {
			continue
		}
		if !matchPriority(t, q.Priority) {
			continue
		}
		if !matchStatus(t, q.Status) {
			continue
		}
		out = append(out, t)
	}
	return out
}

func matchPriority(t service.Task, f PriorityFilter) bool {
	if f == "" || f == PriorityAll {
		return true
	}
	return string(t.Priority) == string(f)
}

func matchStatus(t service.Task, f StatusFilter) bool {
	switch f {
	case StatusCompleted:
		return t.IsCompleted
	case StatusPending:
		return !t.IsCompleted
	default:
		return true
	}
}

// Sort returns a stably sorted copy of tasks. Equal keys keep their input order.
func Sort(tasks []service.Task, key SortKey) []service.Task {
	out := slices.Clone(tasks)
	switch key {
	case SortPriority:
		slices.SortStableFunc(out, func(a, b service.Task) int {
			return a.Priority.Rank() - b.Priority.Rank()
		})
	default:
		slices.SortStableFunc(out, compareDue)
	}
	return out
}

// compareDue orders by calendar date; undated tasks go last.
func compareDue(a, b service.Task) int {
	switch {
	case a.DueDate.IsZero() && b.DueDate.IsZero():
		return 0
	case a.DueDate.IsZero():
		return 1
	case b.DueDate.IsZero():
		return -1
	}
	return a.DueDate.Compare(b.DueDate)
}

// Paginate returns page of tasks. TotalPages is at least 1 and page is
// clamped into [1, TotalPages]. A non-positive pageSize means DefaultPageSize.
// The page owns its Tasks slice.
func Paginate(tasks []service.Task, page, pageSize int) Page {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	total := TotalPages(len(tasks), pageSize)
	page = clampPage(page, total)

	start := (page - 1) * pageSize
	end := min(start+pageSize, len(tasks))
	if start > end {
		start = end
	}

	return Page{
		Tasks:       slices.Clone(tasks[start:end]),
		TotalPages:  total,
		CurrentPage: page,
		TotalCount:  len(tasks),
		Offset:      start,
	}
}

// TotalPages returns max(1, ceil(count/pageSize)).
func TotalPages(count, pageSize int) int {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return max(1, (count+pageSize-1)/pageSize)
}

func clampPage(page, total int) int {
	if page < 1 {
		return 1
	}
	if page > total {
		return total
	}
	return page
}
