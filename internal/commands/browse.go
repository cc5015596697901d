package commands

import (
	"context"
	"errors"
	"flag"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"mytasks/internal/exitcode"
	"mytasks/internal/service"
	"mytasks/internal/tui"
)

func init() {
	Register(&BrowseCmd{})
}

// BrowseCmd opens the interactive task browser.
type BrowseCmd struct{}

func (c *BrowseCmd) Name() string      { return "browse" }
func (c *BrowseCmd) Aliases() []string { return []string{"ui"} }
func (c *BrowseCmd) Synopsis() string  { return "Browse tasks interactively" }
func (c *BrowseCmd) Usage() string     { return "mytasks browse [common flags]" }
func (c *BrowseCmd) NeedsAuth() bool   { return true }

func (c *BrowseCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *BrowseCmd) Run(ctx context.Context, env *Env, svc service.Service, args []string, out, errOut io.Writer) int {
	if err := tui.Run(ctx, svc, env.Config.PageSize(), out); err != nil && !interrupted(ctx, err) {
		return fail(env, errOut, err)
	}
	return exitcode.Success
}

// interrupted reports whether the browser stopped because ctx was cancelled,
// as on SIGINT or SIGTERM.
func interrupted(ctx context.Context, err error) bool {
	return errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil
}
