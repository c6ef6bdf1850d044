package logging

import (
	"bytes"
	"context"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultLoggerIsSilent(t *testing.T) {

	SetLogger(nil)
	if Logger().Enabled(context.Background(), slog.LevelError) {
		t.Fatal("default logger should not be enabled for any level")
	}
}

func TestSetLogger(t *testing.T) {

	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, nil)))
	defer SetLogger(nil)

	Logger().Info("pipeline created", "width", 800)
	if !strings.Contains(buf.String(), "pipeline created") || !strings.Contains(buf.String(), "width=800") {
		t.Fatalf("unexpected log output: %q", buf.String())
	}
}

func TestParseLevel(t *testing.T) {

	tests := []struct {
		in      string
		want    slog.Level
		wantErr bool
	}{
		{"debug", slog.LevelDebug, false},
		{"info", slog.LevelInfo, false},
		{"", slog.LevelInfo, false},
		{"warn", slog.LevelWarn, false},
		{"error", slog.LevelError, false},
		{"verbose", slog.LevelInfo, true},
	}

	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseLevel(%q) err=%v, wantErr=%v", tt.in, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParseLevel(%q)=%v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestNewFileLogger(t *testing.T) {

	dir := t.TempDir()
	l, path, err := NewFileLogger("debug", dir)
	if err != nil {
		t.Fatal(err)
	}

	if path != filepath.Join(dir, "ndefer.slog") {
		t.Fatalf("unexpected log path %s", path)
	}

	if !l.Enabled(context.Background(), slog.LevelDebug) {
		t.Fatal("debug level logger should have debug enabled")
	}

	if _, _, err := NewFileLogger("loud", dir); err == nil {
		t.Fatal("expected error for invalid level")
	}
}
