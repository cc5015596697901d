// Package commands provides the command interface and implementations.
package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"mytasks/internal/config"
	"mytasks/internal/exitcode"
	"mytasks/internal/service"
	"mytasks/internal/session"
)

// Env carries what every command may need besides the backend.
type Env struct {
	Config  *config.Config
	Session *session.Session
	Log     logrus.FieldLogger
}

// Command defines the interface for CLI commands.
type Command interface {
	// Name returns the primary command name.
	Name() string

	// Aliases returns alternative names for the command.
	Aliases() []string

	// Synopsis returns a short description for help output.
	Synopsis() string

	// Usage returns the usage string for help output.
	Usage() string

	// NeedsAuth returns true if the command requires a stored token.
	// The dispatcher refuses to run such commands when logged out.
	NeedsAuth() bool

	// RegisterFlags registers command-specific flags.
	RegisterFlags(fs *flag.FlagSet)

	// Run executes the command.
	// env and svc are always provided.
	// args contains positional arguments after flag parsing.
	// Returns exit code.
	Run(ctx context.Context, env *Env, svc service.Service, args []string, out, errOut io.Writer) int
}

// NotLoggedInMessage is printed when an authenticated command runs without a token.
const NotLoggedInMessage = "error: not logged in (run: mytasks login)"

// fail reports err on errOut and returns its exit code.
func fail(env *Env, errOut io.Writer, err error) int {
	code := exitcode.FromError(err)
	switch {
	case errors.Is(err, service.ErrNotLoggedIn):
		env.Log.Warn("no stored token")
		fmt.Fprintln(errOut, NotLoggedInMessage)
	case errors.Is(err, service.ErrUnauthorized):
		env.Log.WithError(err).Warn("token rejected by backend")
		fmt.Fprintln(errOut, "error: token expired or revoked (run: mytasks login)")
	case code == exitcode.BackendError:
		env.Log.WithError(err).Warn("backend call failed")
		fmt.Fprintf(errOut, "error: %s\n", service.Message(err))
	default:
		fmt.Fprintf(errOut, "error: %s\n", service.Message(err))
	}
	return code
}

// info prints an informational line unless --quiet is set.
func info(env *Env, out io.Writer, msg string) {
	if !env.Config.Quiet {
		fmt.Fprintln(out, msg)
	}
}
