package app

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestPrettyHandlerLine(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := slog.New(newPrettyHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	log.Info("http.request", "method", "POST", "path", "/api/v1/auth/local-login", "status", 200)

	line := buf.String()
	for _, want := range []string{"[INFO]", "http.request", "method=POST", "status=200"} {
		if !strings.Contains(line, want) {
			t.Fatalf("line %q missing %q", line, want)
		}
	}
	if !strings.HasSuffix(line, "\n") {
		t.Fatalf("line not newline terminated: %q", line)
	}
}

func TestPrettyHandlerQuotesValues(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := slog.New(newPrettyHandler(&buf, nil))

	log.Warn("auth.login", "email", "two words here")

	if !strings.Contains(buf.String(), `email="two words here"`) {
		t.Fatalf("expected quoted value, got %q", buf.String())
	}
}

func TestPrettyHandlerGroupsFlatten(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := slog.New(newPrettyHandler(&buf, nil)).WithGroup("req")

	log.Info("http.request", "id", "abc")

	if !strings.Contains(buf.String(), "req.id=abc") {
		t.Fatalf("expected dotted group key, got %q", buf.String())
	}
}

func TestPrettyHandlerRespectsLevel(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := slog.New(newPrettyHandler(&buf, &slog.HandlerOptions{Level: slog.LevelWarn}))

	log.Info("dropped")
	if buf.Len() != 0 {
		t.Fatalf("info line should be filtered, got %q", buf.String())
	}

	log.Error("kept")
	if !strings.Contains(buf.String(), "[ERROR]") {
		t.Fatalf("error line missing, got %q", buf.String())
	}
}
