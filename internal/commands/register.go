package commands

import (
	"context"
	"flag"
	"io"

	"mytasks/internal/exitcode"
	"mytasks/internal/service"
	"mytasks/internal/validate"
)

func init() {
	Register(&RegisterCmd{})
}

// RegisterCmd implements the register command.
type RegisterCmd struct {
	reg service.Registration
}

func (c *RegisterCmd) Name() string      { return "register" }
func (c *RegisterCmd) Aliases() []string { return []string{"signup"} }
func (c *RegisterCmd) Synopsis() string  { return "Create an account" }
func (c *RegisterCmd) Usage() string {
	return "mytasks register --first <name> --last <name> --email <email> --password <password>"
}
func (c *RegisterCmd) NeedsAuth() bool { return false }

func (c *RegisterCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.reg.FirstName, "first", "", "")
	fs.StringVar(&c.reg.LastName, "last", "", "")
	fs.StringVar(&c.reg.Email, "email", "", "")
	fs.StringVar(&c.reg.Password, "password", "", "")
}

func (c *RegisterCmd) Run(ctx context.Context, env *Env, svc service.Service, args []string, out, errOut io.Writer) int {
	if err := validate.Registration(c.reg); err != nil {
		return fail(env, errOut, err)
	}

	msg, err := svc.Register(ctx, c.reg)
	if err != nil {
		return fail(env, errOut, err)
	}
	env.Log.WithField("email", c.reg.Email).Debug("registered")

	if msg == "" {
		msg = "ok"
	}
	info(env, out, msg)
	return exitcode.Success
}
