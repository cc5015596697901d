package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"mytasks/internal/exitcode"
	"mytasks/internal/service"
	"mytasks/internal/validate"
)

// EnvPassword supplies the login password when --password is not given.
const EnvPassword = "MYTASKS_PASSWORD"

func init() {
	Register(&LoginCmd{})
}

// LoginCmd implements the login command.
type LoginCmd struct {
	email    string
	password string
}

func (c *LoginCmd) Name() string      { return "login" }
func (c *LoginCmd) Aliases() []string { return nil }
func (c *LoginCmd) Synopsis() string  { return "Log in and store the session token" }
func (c *LoginCmd) Usage() string     { return "mytasks login --email <email> [--password <password>]" }
func (c *LoginCmd) NeedsAuth() bool   { return false }

func (c *LoginCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.email, "email", "", "")
	fs.StringVar(&c.password, "password", "", "")
}

func (c *LoginCmd) Run(ctx context.Context, env *Env, svc service.Service, args []string, out, errOut io.Writer) int {
	creds := service.Credentials{Email: c.email, Password: c.password}
	if creds.Password == "" {
		creds.Password = os.Getenv(EnvPassword)
	}
	if err := validate.Credentials(creds); err != nil {
		return fail(env, errOut, err)
	}

	token, err := svc.Login(ctx, creds)
	if err != nil {
		return fail(env, errOut, err)
	}

	if err := env.Config.EnsureDir(); err != nil {
		fmt.Fprintf(errOut, "error: failed to create config directory: %v\n", err)
		return exitcode.AuthError
	}
	if err := env.Session.Save(ctx, token); err != nil {
		fmt.Fprintf(errOut, "error: failed to save token: %v\n", err)
		return exitcode.AuthError
	}
	env.Log.WithField("email", creds.Email).Debug("logged in")

	info(env, out, "ok")
	return exitcode.Success
}
