package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"mytasks/internal/exitcode"
	"mytasks/internal/service"
)

func init() {
	Register(&HelpCmd{})
}

// HelpCmd implements the help command.
type HelpCmd struct{}

func (c *HelpCmd) Name() string      { return "help" }
func (c *HelpCmd) Aliases() []string { return nil }
func (c *HelpCmd) Synopsis() string  { return "Print usage" }
func (c *HelpCmd) Usage() string     { return "mytasks help" }
func (c *HelpCmd) NeedsAuth() bool   { return false }

func (c *HelpCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *HelpCmd) Run(ctx context.Context, env *Env, svc service.Service, args []string, out, errOut io.Writer) int {
	fmt.Fprint(out, helpText)
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Commands:")
	writeCommandList(out, DefaultRegistry.All())
	return exitcode.Success
}

// writeCommandList prints one line per command: name, aliases, synopsis.
func writeCommandList(w io.Writer, cmds []Command) {
	for _, c := range cmds {
		name := c.Name()
		if aliases := c.Aliases(); len(aliases) > 0 {
			name += " (" + strings.Join(aliases, ", ") + ")"
		}
		fmt.Fprintf(w, "  %-18s %s\n", name, c.Synopsis())
	}
}

const helpText = `Usage:
  mytasks                                            List tasks (first page)
  mytasks list [common flags] [query flags] [--page <n>] [--long]
  mytasks add [common flags] --description <d> --due <YYYY-MM-DD>
              [--priority High|Medium|Low] [--completed] <title...>
  mytasks rm [common flags] [query flags] <n|id:ID>
  mytasks browse [common flags]
  mytasks register [common flags] --first <name> --last <name>
              --email <email> --password <password>
  mytasks login [common flags] --email <email> [--password <password>]
  mytasks logout [common flags]
  mytasks whoami [common flags]
  mytasks help
  mytasks version

Query flags:
  --search <text>      Match titles containing text (case-insensitive)
  --priority <p>       All, High, Medium or Low
  --status <s>         All, Completed or Pending
  --sort <key>         due_date or priority

Common flags:
  --config <dir>   Override config directory
  --quiet          Suppress informational output
  --debug          Print debug logs to stderr

Environment:
  MYTASKS_BASE_URL   Override the backend URL from config.toml
  MYTASKS_PASSWORD   Password for login when --password is not given
`
