package taskview

import (
	"testing"

	"mytasks/internal/service"
)

func viewTasks() []service.Task {
	mk := func(id, title, due string, p service.Priority, done bool) service.Task {
		d, _ := service.ParseDate(due)
		return service.Task{ID: id, Title: title, DueDate: d, Priority: p, IsCompleted: done}
	}
	return []service.Task{
		mk("1", "Buy milk", "2025-03-01", service.PriorityHigh, false),
		mk("2", "Write report", "2025-03-02", service.PriorityLow, true),
		mk("3", "Call mom", "2025-03-03", service.PriorityHigh, false),
		mk("4", "Pay rent", "2025-03-04", service.PriorityMedium, false),
		mk("5", "Buy eggs", "2025-03-05", service.PriorityLow, false),
		mk("6", "Fix bike", "2025-03-06", service.PriorityHigh, false),
		mk("7", "Read book", "2025-03-07", service.PriorityMedium, true),
	}
}

func TestView_QueryChangesResetPage(t *testing.T) {
	changes := map[string]func(v *View){
		"search":   func(v *View) { v.SetSearch("b") },
		"priority": func(v *View) { v.SetPriority(PriorityAll) },
		"status":   func(v *View) { v.SetStatus(StatusAll) },
		"sort":     func(v *View) { v.SetSortBy(SortPriority) },
		"tasks":    func(v *View) { v.SetTasks(viewTasks()) },
	}

	for name, change := range changes {
		v := NewView(viewTasks(), DefaultQuery())
		v.SetPage(2)
		if v.Current().CurrentPage != 2 {
			t.Fatalf("%s: expected to be on page 2, got %d", name, v.Current().CurrentPage)
		}
		change(v)
		if v.Current().CurrentPage != 1 {
			t.Errorf("%s: expected page reset to 1, got %d", name, v.Current().CurrentPage)
		}
		if v.Query().Page != 1 {
			t.Errorf("%s: expected query page 1, got %d", name, v.Query().Page)
		}
	}
}

func TestView_PageChangeDoesNotRefilter(t *testing.T) {
	v := NewView(viewTasks(), DefaultQuery())
	before := v.sorted

	v.SetPage(2)
	v.PrevPage()
	v.NextPage()

	if len(v.sorted) != len(before) || &v.sorted[0] != &before[0] {
		t.Error("page change re-ran filtering and sorting")
	}
	if v.Current().CurrentPage != 2 {
		t.Errorf("expected page 2, got %d", v.Current().CurrentPage)
	}
}

func TestView_NextPageStopsAtLast(t *testing.T) {
	v := NewView(viewTasks(), DefaultQuery())
	v.NextPage()
	v.NextPage()
	v.NextPage()
	if v.Current().CurrentPage != 2 {
		t.Errorf("expected to stay on last page 2, got %d", v.Current().CurrentPage)
	}
	v.PrevPage()
	v.PrevPage()
	if v.Current().CurrentPage != 1 {
		t.Errorf("expected to stay on first page 1, got %d", v.Current().CurrentPage)
	}
}

func TestView_AppendAndRemove(t *testing.T) {
	v := NewView(viewTasks(), DefaultQuery())
	v.SetPage(2)

	v.Append(service.Task{ID: "8", Title: "New", Priority: service.PriorityLow})
	if v.Len() != 8 {
		t.Errorf("expected 8 tasks after append, got %d", v.Len())
	}
	if v.Current().CurrentPage != 1 {
		t.Errorf("expected page reset after append, got %d", v.Current().CurrentPage)
	}

	if !v.Remove("3") {
		t.Error("expected task 3 to be removed")
	}
	if v.Remove("3") {
		t.Error("expected second removal of task 3 to report false")
	}
	for _, tk := range v.Tasks() {
		if tk.ID == "3" {
			t.Error("task 3 still present")
		}
	}
	if v.Len() != 7 {
		t.Errorf("expected 7 tasks after remove, got %d", v.Len())
	}
}

func TestView_FilterThenEmpty(t *testing.T) {
	v := NewView(viewTasks(), DefaultQuery())
	v.SetSearch("zzz")

	page := v.Current()
	if len(page.Tasks) != 0 || page.TotalPages != 1 || page.CurrentPage != 1 {
		t.Errorf("unexpected page: %+v", page)
	}
}

func TestView_DoesNotAliasCallerSlice(t *testing.T) {
	tasks := viewTasks()
	v := NewView(tasks, DefaultQuery())
	tasks[0].Title = "changed"

	if v.Tasks()[0].Title != "Buy milk" {
		t.Error("view shares the caller's slice")
	}
}

func TestView_PageDoesNotAliasView(t *testing.T) {
	v := NewView(viewTasks(), DefaultQuery())
	page := v.Current()
	page.Tasks[0].Title = "changed"

	if got := v.Current().Tasks[0].Title; got != "Buy milk" {
		t.Errorf("current page changed through a returned page: %q", got)
	}
	v.SetPage(1)
	if got := v.Current().Tasks[0].Title; got != "Buy milk" {
		t.Errorf("view's sorted list changed through a returned page: %q", got)
	}
}
