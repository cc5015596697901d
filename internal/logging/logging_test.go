package logging_test

import (
	"bytes"
	"strings"
	"testing"

	"mytasks/internal/logging"
)

func TestNew_DefaultShowsOnlyErrors(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.New(&buf, false)

	logger.Debug("hidden")
	logger.Warn("hidden too")
	logger.WithField("cmd", "list").Error("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("debug or warn line written without --debug: %q", out)
	}
	if !strings.Contains(out, "msg=shown") || !strings.Contains(out, "cmd=list") {
		t.Errorf("expected error line with field, got %q", out)
	}
	if strings.Contains(out, "time=") {
		t.Errorf("expected no timestamp without debug, got %q", out)
	}
}

func TestNew_Debug(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.New(&buf, true)

	logger.Debug("visible")
	logger.Warn("also visible")

	out := buf.String()
	if !strings.Contains(out, "level=debug msg=visible") {
		t.Errorf("expected debug line, got %q", out)
	}
	if !strings.Contains(out, "level=warning") {
		t.Errorf("expected warn line, got %q", out)
	}
}

func TestDiscard(t *testing.T) {
	logger := logging.Discard()
	logger.Error("dropped")
}
