package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"mytasks/internal/exitcode"
	"mytasks/internal/service"
)

func init() {
	Register(&RmCmd{})
}

// RmCmd implements the rm command.
type RmCmd struct {
	queryFlags
}

func (c *RmCmd) Name() string      { return "rm" }
func (c *RmCmd) Aliases() []string { return []string{"delete"} }
func (c *RmCmd) Synopsis() string  { return "Delete a task" }
func (c *RmCmd) Usage() string {
	return "mytasks rm [--search <s>] [--priority <p>] [--status <s>] [--sort <key>] <n|id:ID>"
}
func (c *RmCmd) NeedsAuth() bool { return true }

func (c *RmCmd) RegisterFlags(fs *flag.FlagSet) {
	c.queryFlags.register(fs)
}

func (c *RmCmd) Run(ctx context.Context, env *Env, svc service.Service, args []string, out, errOut io.Writer) int {
	ref, err := ParseTaskRef(args)
	if err != nil {
		if errors.Is(err, ErrTaskRefRequired) {
			fmt.Fprintln(errOut, "error: task reference required")
		} else {
			fmt.Fprintf(errOut, "error: %v\n", err)
		}
		return exitcode.UserError
	}

	id := ref.ID
	if id == "" {
		q, err := c.query(1, env.Config.PageSize())
		if err != nil {
			fmt.Fprintf(errOut, "error: %v\n", err)
			return exitcode.UserError
		}

		tasks, err := svc.List(ctx)
		if err != nil {
			return fail(env, errOut, err)
		}
		task, err := findTaskByNumber(tasks, q, ref.Num)
		if err != nil {
			fmt.Fprintf(errOut, "error: %v\n", err)
			return exitcode.UserError
		}
		id = task.ID
	}

	if err := svc.Remove(ctx, id); err != nil {
		return fail(env, errOut, err)
	}
	env.Log.WithField("id", id).Debug("task deleted")

	info(env, out, "ok")
	return exitcode.Success
}
