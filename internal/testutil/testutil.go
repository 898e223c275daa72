// Package testutil provides small shared helpers for tests.
package testutil

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
)

// testWriter forwards log output to the test's log so it is only shown
// for failing tests.
type testWriter struct {
	t testing.TB
}

func (w testWriter) Write(p []byte) (int, error) {
	w.t.Helper()
	w.t.Log(string(p))
	return len(p), nil
}

// Logger returns a debug-level logger that writes through t.Log.
func Logger(t testing.TB) *slog.Logger {
	t.Helper()
	return slog.New(slog.NewTextHandler(testWriter{t: t}, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
}

// WriteFile writes content to a file inside a fresh temp directory and
// returns the full path.
func WriteFile(t testing.TB, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}
