// Package output provides formatters for CLI output.
package output

import (
	"fmt"
	"io"
	"strings"

	"mytasks/internal/service"
	"mytasks/internal/taskview"
)

const (
	// NoDate is shown in place of a missing due date or priority.
	NoDate = "-"

	// Indent prefixes description lines under a task.
	Indent = "        "
)

// FormatTask formats a task line.
// Format: "{N:>4}  [x] {PRIORITY:<6}  {DUE:<10}  {TITLE}\n"
func FormatTask(w io.Writer, num int, task service.Task) {
	fmt.Fprintf(w, "%4d  %s %-6s  %-10s  %s\n",
		num, checkbox(task.IsCompleted), priority(task.Priority), due(task.DueDate), normalizeTitle(task.Title))
}

// FormatDescription writes the task's description indented under its line.
// Nothing is written for an empty description.
func FormatDescription(w io.Writer, task service.Task) {
	desc := strings.TrimSpace(task.Description)
	if desc == "" {
		return
	}
	for _, line := range strings.Split(strings.ReplaceAll(desc, "\r\n", "\n"), "\n") {
		fmt.Fprintln(w, Indent+line)
	}
}

// FormatPage writes the tasks of page followed by the page footer.
func FormatPage(w io.Writer, page taskview.Page, long bool) {
	FormatTasks(w, page, long)
	FormatFooter(w, page)
}

// FormatTasks writes every task of page, numbered from page.Offset+1.
func FormatTasks(w io.Writer, page taskview.Page, long bool) {
	for i, t := range page.Tasks {
		FormatTask(w, page.Offset+i+1, t)
		if long {
			FormatDescription(w, t)
		}
	}
}

// FormatFooter formats the pagination line, e.g. "page 1 of 3 (14 tasks)".
func FormatFooter(w io.Writer, page taskview.Page) {
	noun := "tasks"
	if page.TotalCount == 1 {
		noun = "task"
	}
	fmt.Fprintf(w, "page %d of %d (%d %s)\n", page.CurrentPage, page.TotalPages, page.TotalCount, noun)
}

func checkbox(done bool) string {
	if done {
		return "[x]"
	}
	return "[ ]"
}

func priority(p service.Priority) string {
	if p == "" {
		return NoDate
	}
	return string(p)
}

func due(d service.Date) string {
	if d.IsZero() {
		return NoDate
	}
	return d.String()
}

// normalizeTitle normalizes a task title for display.
// - Empty or whitespace-only titles become "(untitled)"
// - Newlines are replaced with spaces
func normalizeTitle(title string) string {
	title = strings.ReplaceAll(title, "\r", " ")
	title = strings.ReplaceAll(title, "\n", " ")

	if strings.TrimSpace(title) == "" {
		return "(untitled)"
	}
	return title
}
