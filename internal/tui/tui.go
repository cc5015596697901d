// Package tui is the interactive task browser.
package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"mytasks/internal/output"
	"mytasks/internal/service"
	"mytasks/internal/taskview"
	"mytasks/internal/validate"
)

type mode int

const (
	modeList mode = iota
	modeSearch
	modeAdd
	modeConfirmDelete
)

// Add form fields, in tab order.
const (
	fieldTitle = iota
	fieldDescription
	fieldDue
	fieldPriority
	fieldCount
)

type tasksLoadedMsg struct {
	tasks []service.Task
	err   error
}

type taskAddedMsg struct {
	task    service.Task
	message string
	err     error
}

type taskRemovedMsg struct {
	id  string
	err error
}

// Model is the Bubble Tea model of the browser. The task collection is only
// changed in Update, when a backend call has completed.
type Model struct {
	ctx     context.Context
	repo    service.Repository
	view    *taskview.View
	cursor  int
	mode    mode
	search  textinput.Model
	form    []textinput.Model
	focus   int
	pending *service.Task
	status  string
	loading bool
}

// New returns a browser over repo showing pageSize tasks per page.
func New(ctx context.Context, repo service.Repository, pageSize int) Model {
	q := taskview.DefaultQuery()
	if pageSize > 0 {
		q.PageSize = pageSize
	}

	search := textinput.New()
	search.Placeholder = "Search titles..."
	search.Prompt = "/ "
	search.CharLimit = 100
	search.Width = 40

	form := make([]textinput.Model, fieldCount)
	for i := range form {
		form[i] = textinput.New()
		form[i].CharLimit = 200
		form[i].Width = 40
		switch i {
		case fieldTitle:
			form[i].Prompt = "Title:       "
		case fieldDescription:
			form[i].Prompt = "Description: "
		case fieldDue:
			form[i].Prompt = "Due date:    "
			form[i].Placeholder = "YYYY-MM-DD"
		case fieldPriority:
			form[i].Prompt = "Priority:    "
			form[i].Placeholder = string(service.PriorityMedium)
		}
	}

	return Model{
		ctx:     ctx,
		repo:    repo,
		view:    taskview.NewView(nil, q),
		search:  search,
		form:    form,
		status:  "Loading...",
		loading: true,
	}
}

// Run starts the browser on out and blocks until the user quits.
func Run(ctx context.Context, repo service.Repository, pageSize int, out io.Writer) error {
	program := tea.NewProgram(New(ctx, repo, pageSize), tea.WithContext(ctx), tea.WithOutput(out), tea.WithAltScreen())
	_, err := program.Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return m.load()
}

func (m Model) load() tea.Cmd {
	ctx, repo := m.ctx, m.repo
	return func() tea.Msg {
		tasks, err := repo.List(ctx)
		return tasksLoadedMsg{tasks: tasks, err: err}
	}
}

func (m Model) add(in service.NewTask) tea.Cmd {
	ctx, repo := m.ctx, m.repo
	return func() tea.Msg {
		task, message, err := repo.Add(ctx, in)
		return taskAddedMsg{task: task, message: message, err: err}
	}
}

func (m Model) remove(id string) tea.Cmd {
	ctx, repo := m.ctx, m.repo
	return func() tea.Msg {
		return taskRemovedMsg{id: id, err: repo.Remove(ctx, id)}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tasksLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.status = errorStatus(msg.err)
			return m, nil
		}
		m.view.SetTasks(msg.tasks)
		m.cursor = clampCursor(m.cursor, len(m.view.Current().Tasks))
		m.status = fmt.Sprintf("Loaded %d tasks", len(msg.tasks))
		return m, nil

	case taskAddedMsg:
		if msg.err != nil {
			m.status = errorStatus(msg.err)
			return m, nil
		}
		m.view.Append(msg.task)
		m.cursor = 0
		m.status = msg.message
		if m.status == "" {
			m.status = "Task added"
		}
		return m, nil

	case taskRemovedMsg:
		if msg.err != nil {
			m.status = errorStatus(msg.err)
			return m, nil
		}
		m.view.Remove(msg.id)
		m.cursor = clampCursor(m.cursor, len(m.view.Current().Tasks))
		m.status = "Task deleted"
		return m, nil

	case tea.WindowSizeMsg:
		m.search.Width = max(10, msg.Width-10)
		return m, nil

	case tea.KeyMsg:
		switch m.mode {
		case modeSearch:
			return m.updateSearchMode(msg)
		case modeAdd:
			return m.updateAddMode(msg)
		case modeConfirmDelete:
			return m.updateDeleteConfirm(msg.String())
		default:
			return m.updateListMode(msg.String())
		}
	}
	return m, nil
}

func (m Model) updateListMode(key string) (tea.Model, tea.Cmd) {
	page := m.view.Current()
	switch key {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "j", "down":
		m.cursor = clampCursor(m.cursor+1, len(page.Tasks))
	case "k", "up":
		m.cursor = clampCursor(m.cursor-1, len(page.Tasks))
	case "l", "right":
		m.view.NextPage()
		m.cursor = 0
	case "h", "left":
		m.view.PrevPage()
		m.cursor = 0
	case "p":
		m.view.SetPriority(m.view.Query().Priority.Next())
		m.cursor = 0
	case "s":
		m.view.SetStatus(m.view.Query().Status.Next())
		m.cursor = 0
	case "o":
		m.view.SetSortBy(m.view.Query().SortBy.Next())
		m.cursor = 0
	case "/":
		m.mode = modeSearch
		return m, m.search.Focus()
	case "a":
		m.mode = modeAdd
		m.focus = fieldTitle
		for i := range m.form {
			m.form[i].Reset()
			m.form[i].Blur()
		}
		m.status = "New task: tab moves between fields, enter saves, esc cancels"
		return m, m.form[fieldTitle].Focus()
	case "d":
		if len(page.Tasks) == 0 {
			return m, nil
		}
		t := page.Tasks[m.cursor]
		m.pending = &t
		m.mode = modeConfirmDelete
		m.status = fmt.Sprintf("Delete %q? y/n", t.Title)
	case "r":
		m.loading = true
		m.status = "Loading..."
		return m, m.load()
	}
	return m, nil
}

func (m Model) updateSearchMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.mode = modeList
		m.search.Blur()
		return m, nil
	case "esc":
		m.mode = modeList
		m.search.Reset()
		m.search.Blur()
		m.view.SetSearch("")
		m.cursor = 0
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if m.search.Value() != m.view.Query().Search {
		m.view.SetSearch(m.search.Value())
		m.cursor = 0
	}
	return m, cmd
}

func (m Model) updateDeleteConfirm(key string) (tea.Model, tea.Cmd) {
	t := m.pending
	m.pending = nil
	m.mode = modeList
	if t == nil || (key != "y" && key != "Y") {
		m.status = "Cancelled"
		return m, nil
	}
	m.status = "Deleting..."
	return m, m.remove(t.ID)
}

func (m Model) updateAddMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = modeList
		m.form[m.focus].Blur()
		m.status = "Cancelled"
		return m, nil
	case "tab", "down":
		return m.focusField((m.focus + 1) % fieldCount)
	case "shift+tab", "up":
		return m.focusField((m.focus + fieldCount - 1) % fieldCount)
	case "enter":
		if m.focus < fieldCount-1 {
			return m.focusField(m.focus + 1)
		}
		return m.submit()
	}

	var cmd tea.Cmd
	m.form[m.focus], cmd = m.form[m.focus].Update(msg)
	return m, cmd
}

func (m Model) focusField(i int) (tea.Model, tea.Cmd) {
	m.form[m.focus].Blur()
	m.focus = i
	return m, m.form[i].Focus()
}

func (m Model) submit() (tea.Model, tea.Cmd) {
	in, err := m.formTask()
	if err != nil {
		m.status = service.Message(err)
		return m, nil
	}
	m.form[m.focus].Blur()
	m.mode = modeList
	m.status = "Saving..."
	return m, m.add(in)
}

func (m Model) formTask() (service.NewTask, error) {
	due, err := service.ParseDate(m.form[fieldDue].Value())
	if err != nil {
		return service.NewTask{}, &service.ValidationError{Field: "due_date", Message: err.Error()}
	}
	in := service.NewTask{
		Title:       m.form[fieldTitle].Value(),
		Description: m.form[fieldDescription].Value(),
		DueDate:     due,
	}
	if p := strings.TrimSpace(m.form[fieldPriority].Value()); p != "" {
		if in.Priority, err = service.ParsePriority(p); err != nil {
			return service.NewTask{}, &service.ValidationError{Field: "priority", Message: err.Error()}
		}
	}
	if err := validate.NewTask(&in); err != nil {
		return service.NewTask{}, err
	}
	return in, nil
}

func (m Model) View() string {
	var b strings.Builder
	q := m.view.Query()
	page := m.view.Current()

	b.WriteString(titleStyle.Render("My Tasks"))
	b.WriteString("  ")
	b.WriteString(filterStyle.Render(fmt.Sprintf("%s · %s · %s", q.Priority.Label(), q.Status.Label(), q.SortBy.Label())))
	b.WriteString("\n")
	if m.mode == modeSearch || q.Search != "" {
		b.WriteString(m.search.View())
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if m.mode == modeAdd {
		for i := range m.form {
			b.WriteString(m.form[i].View())
			b.WriteString("\n")
		}
	} else {
		b.WriteString(m.renderTaskList(page))
	}

	b.WriteString("\n")
	b.WriteString(statusStyle.Render(m.status))
	b.WriteString("\n")
	b.WriteString(helpStyle.Render(helpLine))
	return b.String()
}

const helpLine = "j/k move · h/l page · / search · p priority · s status · o sort · a add · d delete · r refresh · q quit"

func (m Model) renderTaskList(page taskview.Page) string {
	if len(page.Tasks) == 0 {
		if m.loading {
			return ""
		}
		return emptyStyle.Render("No tasks found.") + "\n"
	}

	var b strings.Builder
	for i, t := range page.Tasks {
		var line strings.Builder
		output.FormatTask(&line, page.Offset+i+1, t)
		text := strings.TrimRight(line.String(), "\n")
		switch {
		case i == m.cursor:
			text = selectedStyle.Render(text)
		case t.IsCompleted:
			text = doneStyle.Render(text)
		}
		b.WriteString(text)
		b.WriteString("\n")
	}
	output.FormatFooter(&b, page)
	return b.String()
}

func errorStatus(err error) string {
	switch {
	case errors.Is(err, service.ErrNotLoggedIn):
		return "Not logged in (run: mytasks login)"
	case errors.Is(err, service.ErrUnauthorized):
		return "Token expired or revoked (run: mytasks login)"
	}
	return service.Message(err)
}

func clampCursor(cur, n int) int {
	if n == 0 || cur < 0 {
		return 0
	}
	if cur >= n {
		return n - 1
	}
	return cur
}
