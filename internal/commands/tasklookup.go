package commands

import (
	"fmt"

	"mytasks/internal/service"
	"mytasks/internal/taskview"
)

// findTaskByNumber returns the task list would print as number num for q.
// Numbers run across pages, so the page of q does not matter.
func findTaskByNumber(tasks []service.Task, q taskview.Query, num int) (service.Task, error) {
	ordered := taskview.Sort(taskview.Filter(tasks, q), q.SortBy)
	if num < 1 || num > len(ordered) {
		return service.Task{}, fmt.Errorf("task number out of range: %d", num)
	}
	return ordered[num-1], nil
}
