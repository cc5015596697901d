package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"mytasks/internal/exitcode"
	"mytasks/internal/service"
	"mytasks/internal/validate"
)

func init() {
	Register(&AddCmd{})
}

// AddCmd implements the add command.
type AddCmd struct {
	title       string
	description string
	due         string
	priority    string
	completed   bool
}

func (c *AddCmd) Name() string      { return "add" }
func (c *AddCmd) Aliases() []string { return []string{"create"} }
func (c *AddCmd) Synopsis() string  { return "Create a task" }
func (c *AddCmd) Usage() string {
	return "mytasks add --description <d> --due <YYYY-MM-DD> [--priority <p>] [--completed] [--title <t> | <title...>]"
}
func (c *AddCmd) NeedsAuth() bool { return true }

func (c *AddCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.title, "title", "", "")
	fs.StringVar(&c.description, "description", "", "")
	fs.StringVar(&c.description, "d", "", "")
	fs.StringVar(&c.due, "due", "", "")
	fs.StringVar(&c.priority, "priority", "", "")
	fs.StringVar(&c.priority, "p", "", "")
	fs.BoolVar(&c.completed, "completed", false, "")
}

func (c *AddCmd) Run(ctx context.Context, env *Env, svc service.Service, args []string, out, errOut io.Writer) int {
	title := c.title
	if title == "" {
		// Join args to form title
		title = strings.Join(args, " ")
	} else if len(args) > 0 {
		fmt.Fprintln(errOut, "error: cannot use both --title and a positional title")
		return exitcode.UserError
	}

	due, err := service.ParseDate(c.due)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	var priority service.Priority
	if c.priority != "" {
		if priority, err = service.ParsePriority(c.priority); err != nil {
			fmt.Fprintf(errOut, "error: %v\n", err)
			return exitcode.UserError
		}
	}

	in := service.NewTask{
		Title:       title,
		Description: c.description,
		DueDate:     due,
		Priority:    priority,
		IsCompleted: c.completed,
	}
	if err := validate.NewTask(&in); err != nil {
		return fail(env, errOut, err)
	}

	task, msg, err := svc.Add(ctx, in)
	if err != nil {
		return fail(env, errOut, err)
	}
	env.Log.WithField("id", task.ID).Debug("task created")

	if msg == "" {
		msg = "ok"
	}
	info(env, out, msg)
	return exitcode.Success
}
