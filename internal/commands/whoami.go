package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"time"

	"mytasks/internal/exitcode"
	"mytasks/internal/service"
)

func init() {
	Register(&WhoamiCmd{})
}

// WhoamiCmd prints the claims of the stored token.
type WhoamiCmd struct{}

func (c *WhoamiCmd) Name() string      { return "whoami" }
func (c *WhoamiCmd) Aliases() []string { return nil }
func (c *WhoamiCmd) Synopsis() string  { return "Show the logged-in user" }
func (c *WhoamiCmd) Usage() string     { return "mytasks whoami [common flags]" }
func (c *WhoamiCmd) NeedsAuth() bool   { return true }

func (c *WhoamiCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *WhoamiCmd) Run(ctx context.Context, env *Env, svc service.Service, args []string, out, errOut io.Writer) int {
	claims, err := env.Session.Claims(ctx)
	if err != nil {
		env.Log.WithError(err).Debug("cannot decode token")
		fmt.Fprintln(errOut, "error: stored token carries no readable claims")
		return exitcode.AuthError
	}

	row := func(key, value string) {
		if value != "" {
			fmt.Fprintf(out, "%-8s %s\n", key, value)
		}
	}
	row("subject", claims.Subject)
	row("email", claims.Email)
	if !claims.IssuedAt.IsZero() {
		row("issued", claims.IssuedAt.Format(time.RFC3339))
	}
	if !claims.ExpiresAt.IsZero() {
		exp := claims.ExpiresAt.Format(time.RFC3339)
		if claims.Expired(time.Now()) {
			exp += " (expired)"
		}
		row("expires", exp)
	}
	return exitcode.Success
}
