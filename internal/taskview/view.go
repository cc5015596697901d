package taskview

import (
	"slices"

	"mytasks/internal/service"
)

// View holds the task collection and query of one task list screen and
// recomputes the visible page explicitly whenever an input changes.
//
// Changing the collection, search, filters or sort key re-runs filtering
// and sorting and resets the page to 1. Changing only the page re-slices
// the already sorted list.
//
// A View is not safe for concurrent use; it belongs to the goroutine that
// handles input.
type View struct {
	tasks  []service.Task
	query  Query
	sorted []service.Task
	page   Page
}

// NewView creates a view over tasks with the given query.
func NewView(tasks []service.Task, q Query) *View {
	if q.PageSize <= 0 {
		q.PageSize = DefaultPageSize
	}
	if q.Page < 1 {
		q.Page = 1
	}
	v := &View{tasks: slices.Clone(tasks), query: q}
	v.recompute()
	v.repaginate()
	return v
}

// Current returns the visible page.
func (v *View) Current() Page {
	p := v.page
	p.Tasks = slices.Clone(p.Tasks)
	return p
}

// Query returns the current query, with Page set to the visible page.
func (v *View) Query() Query { return v.query }

// Tasks returns the full source collection.
func (v *View) Tasks() []service.Task { return slices.Clone(v.tasks) }

// Len returns the number of tasks after filtering.
func (v *View) Len() int { return len(v.sorted) }

// SetTasks replaces the source collection.
func (v *View) SetTasks(tasks []service.Task) {
	v.tasks = slices.Clone(tasks)
	v.refresh()
}

// Append adds a task created remotely to the local collection.
func (v *View) Append(t service.Task) {
	v.tasks = append(v.tasks, t)
	v.refresh()
}

// Remove drops the task with id from the local collection.
// It reports whether a task was removed.
func (v *View) Remove(id string) bool {
	i := slices.IndexFunc(v.tasks, func(t service.Task) bool { return t.ID == id })
	if i < 0 {
		return false
	}
	v.tasks = slices.Delete(v.tasks, i, i+1)
	v.refresh()
	return true
}

// SetSearch changes the title search text.
func (v *View) SetSearch(s string) {
	v.query.Search = s
	v.refresh()
}

// SetPriority changes the priority filter.
func (v *View) SetPriority(f PriorityFilter) {
	v.query.Priority = f
	v.refresh()
}

// SetStatus changes the status filter.
func (v *View) SetStatus(f StatusFilter) {
	v.query.Status = f
	v.refresh()
}

// SetSortBy changes the sort key.
func (v *View) SetSortBy(k SortKey) {
	v.query.SortBy = k
	v.refresh()
}

// SetPage moves to page n, clamped to the available pages.
func (v *View) SetPage(n int) {
	v.query.Page = n
	v.repaginate()
}

// NextPage moves forward one page unless on the last one.
func (v *View) NextPage() { v.SetPage(v.page.CurrentPage + 1) }

// PrevPage moves back one page unless on the first one.
func (v *View) PrevPage() { v.SetPage(v.page.CurrentPage - 1) }

func (v *View) refresh() {
	v.query.Page = 1
	v.recompute()
	v.repaginate()
}

func (v *View) recompute() {
	v.sorted = Sort(Filter(v.tasks, v.query), v.query.SortBy)
}

func (v *View) repaginate() {
	v.page = Paginate(v.sorted, v.query.Page, v.query.PageSize)
	v.query.Page = v.page.CurrentPage
}
