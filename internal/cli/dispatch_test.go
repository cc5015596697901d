package cli_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"

	"mytasks/internal/cli"
	"mytasks/internal/commands"
	"mytasks/internal/config"
	"mytasks/internal/exitcode"
	"mytasks/internal/service"
	"mytasks/internal/session"
	"mytasks/internal/testutil"
)

// testFactory creates a service factory that returns the given FakeService.
func testFactory(svc *testutil.FakeService) cli.ServiceFactory {
	return func(ctx context.Context, cfg *config.Config, sess *session.Session, log logrus.FieldLogger) (service.Service, error) {
		return svc, nil
	}
}

// run dispatches args with XDG_CONFIG_HOME pointed at a temp dir.
func run(t *testing.T, d *cli.Dispatcher, args ...string) (string, string, int) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	var stdout, stderr bytes.Buffer
	code := d.Run(context.Background(), args, &stdout, &stderr)
	return stdout.String(), stderr.String(), code
}

func TestDispatcher_UnknownCommand(t *testing.T) {
	svc := testutil.NewFakeService()
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(svc))

	_, stderr, code := run(t, dispatcher, "unknowncmd")

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	expected := "error: unknown command: unknowncmd\n"
	if stderr != expected {
		t.Errorf("expected %q, got %q", expected, stderr)
	}
}

func TestDispatcher_FlagBeforeCommand(t *testing.T) {
	svc := testutil.NewFakeService()
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(svc))

	_, stderr, code := run(t, dispatcher, "--quiet")

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	expected := "error: unknown command: --quiet\n"
	if stderr != expected {
		t.Errorf("expected %q, got %q", expected, stderr)
	}
}

func TestDispatcher_HelpCommand(t *testing.T) {
	svc := testutil.NewFakeService()
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(svc))

	stdout, stderr, code := run(t, dispatcher, "help")

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	if !strings.Contains(stdout, "Usage:") {
		t.Error("expected help output to contain 'Usage:'")
	}
}

func TestDispatcher_VersionCommand(t *testing.T) {
	svc := testutil.NewFakeService()
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(svc))

	stdout, stderr, code := run(t, dispatcher, "version")

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	if stdout != "mytasks 0.1.0\n" {
		t.Errorf("expected 'mytasks 0.1.0\\n', got %q", stdout)
	}
}

func TestDispatcher_UnknownFlag(t *testing.T) {
	svc := testutil.NewFakeService()
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(svc))

	_, stderr, code := run(t, dispatcher, "help", "--unknown")

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	expected := "error: unknown flag: -unknown\n"
	if stderr != expected {
		t.Errorf("expected %q, got %q", expected, stderr)
	}
}

func TestDispatcher_FlagNeedsArgument(t *testing.T) {
	svc := testutil.NewFakeService()
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(svc))

	_, stderr, code := run(t, dispatcher, "list", "--page")

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	expected := "error: flag needs an argument: -page\n"
	if stderr != expected {
		t.Errorf("expected %q, got %q", expected, stderr)
	}
}

func TestDispatcher_NotLoggedInSkipsBackend(t *testing.T) {
	for _, args := range [][]string{nil, {"list"}, {"add", "Buy milk"}, {"rm", "1"}} {
		svc := testutil.NewFakeService()
		dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(svc))

		stdout, stderr, code := run(t, dispatcher, args...)

		if code != exitcode.AuthError {
			t.Errorf("%v: expected exit code %d, got %d", args, exitcode.AuthError, code)
		}
		if stdout != "" {
			t.Errorf("%v: expected no stdout, got %q", args, stdout)
		}
		if stderr != commands.NotLoggedInMessage+"\n" {
			t.Errorf("%v: expected %q, got %q", args, commands.NotLoggedInMessage+"\n", stderr)
		}
		if len(svc.Calls) != 0 {
			t.Errorf("%v: expected no backend calls, got %v", args, svc.Calls)
		}
	}
}

func TestDispatcher_LoginThenList(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddUser("ada@example.com", "secret123")
	svc.AddTask(service.Task{Title: "Buy milk", Priority: service.PriorityLow})
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(svc))
	dir := t.TempDir()

	_, stderr, code := run(t, dispatcher, "login", "--config", dir,
		"--email", "ada@example.com", "--password", "secret123")
	if code != exitcode.Success {
		t.Fatalf("login: expected exit code %d, got %d (%s)", exitcode.Success, code, stderr)
	}

	stdout, stderr, code := run(t, dispatcher, "list", "--config", dir, "--quiet")
	if code != exitcode.Success {
		t.Fatalf("list: expected exit code %d, got %d (%s)", exitcode.Success, code, stderr)
	}
	expected := "   1  [ ] Low     -           Buy milk\n"
	if stdout != expected {
		t.Errorf("expected %q, got %q", expected, stdout)
	}

	if _, err := os.Stat(filepath.Join(dir, config.SettingsFile)); err != nil {
		t.Errorf("expected settings file to be written: %v", err)
	}
}

func TestDispatcher_InvalidSettings(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, config.SettingsFile), []byte("timeout = \"soon\"\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	svc := testutil.NewFakeService()
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(svc))

	_, stderr, code := run(t, dispatcher, "version", "--config", dir)

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	expected := "error: invalid timeout: soon\n"
	if stderr != expected {
		t.Errorf("expected %q, got %q", expected, stderr)
	}
}

func TestDispatcher_FactoryError(t *testing.T) {
	factory := func(ctx context.Context, cfg *config.Config, sess *session.Session, log logrus.FieldLogger) (service.Service, error) {
		return nil, errors.New("no route")
	}
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, factory)

	_, stderr, code := run(t, dispatcher, "version")

	if code != exitcode.BackendError {
		t.Errorf("expected exit code %d, got %d", exitcode.BackendError, code)
	}
	expected := "error: backend error: no route\n"
	if stderr != expected {
		t.Errorf("expected %q, got %q", expected, stderr)
	}
}
