package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"mytasks/internal/exitcode"
	"mytasks/internal/output"
	"mytasks/internal/service"
	"mytasks/internal/taskview"
)

func init() {
	Register(&ListCmd{})
}

// queryFlags are the view flags shared by list and rm.
type queryFlags struct {
	search   string
	priority string
	status   string
	sortBy   string
}

func (q *queryFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&q.search, "search", "", "")
	fs.StringVar(&q.priority, "priority", string(taskview.PriorityAll), "")
	fs.StringVar(&q.status, "status", string(taskview.StatusAll), "")
	fs.StringVar(&q.sortBy, "sort", string(taskview.SortDueDate), "")
}

// query builds the pipeline query for page with pageSize tasks per page.
func (q *queryFlags) query(page, pageSize int) (taskview.Query, error) {
	pf, err := taskview.ParsePriorityFilter(q.priority)
	if err != nil {
		return taskview.Query{}, err
	}
	sf, err := taskview.ParseStatusFilter(q.status)
	if err != nil {
		return taskview.Query{}, err
	}
	sk, err := taskview.ParseSortKey(q.sortBy)
	if err != nil {
		return taskview.Query{}, err
	}
	return taskview.Query{
		Search:   q.search,
		Priority: pf,
		Status:   sf,
		SortBy:   sk,
		Page:     page,
		PageSize: pageSize,
	}, nil
}

// ListCmd implements the list command.
// Handles both `mytasks` (no args) and `mytasks list`.
type ListCmd struct {
	queryFlags
	page int
	long bool
}

func (c *ListCmd) Name() string      { return "list" }
func (c *ListCmd) Aliases() []string { return []string{"ls"} }
func (c *ListCmd) Synopsis() string  { return "List tasks" }
func (c *ListCmd) Usage() string {
	return "mytasks list [--search <s>] [--priority <p>] [--status <s>] [--sort <key>] [--page <n>] [--long]"
}
func (c *ListCmd) NeedsAuth() bool { return true }

func (c *ListCmd) RegisterFlags(fs *flag.FlagSet) {
	c.queryFlags.register(fs)
	fs.IntVar(&c.page, "page", 1, "")
	fs.BoolVar(&c.long, "long", false, "")
}

func (c *ListCmd) Run(ctx context.Context, env *Env, svc service.Service, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}
	if c.page < 1 {
		fmt.Fprintf(errOut, "error: invalid page number: %d\n", c.page)
		return exitcode.UserError
	}

	q, err := c.query(c.page, env.Config.PageSize())
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	tasks, err := svc.List(ctx)
	if err != nil {
		return fail(env, errOut, err)
	}

	page := taskview.Derive(tasks, q)
	env.Log.WithField("total", len(tasks)).WithField("matched", page.TotalCount).Debug("derived page")

	if page.TotalCount == 0 {
		info(env, out, "no tasks found")
		return exitcode.Success
	}

	if env.Config.Quiet {
		output.FormatTasks(out, page, c.long)
	} else {
		output.FormatPage(out, page, c.long)
	}
	return exitcode.Success
}
