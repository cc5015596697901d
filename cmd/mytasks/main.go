// Package main is the entry point for the mytasks CLI.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"mytasks/internal/backend/restapi"
	"mytasks/internal/cli"
	"mytasks/internal/commands"
	"mytasks/internal/config"
	"mytasks/internal/service"
	"mytasks/internal/session"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)

	factory := func(ctx context.Context, cfg *config.Config, sess *session.Session, log logrus.FieldLogger) (service.Service, error) {
		return restapi.New(cfg.BaseURL(), cfg.Timeout(), sess.TokenSource(ctx), log), nil
	}

	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, factory)

	code := dispatcher.Run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}
