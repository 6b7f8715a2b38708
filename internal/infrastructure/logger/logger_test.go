package logger

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/LavaJover/shvark-earnings-service/internal/config"
)

func TestNewWritesJSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "service.log")

	l, err := New(config.LogConfig{LogLevel: "warn", LogFormat: "json", LogOutput: path})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	l.Info("dropped")
	l.Warn("kept", "symbol", "BTC")

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	got := string(data)
	if strings.Contains(got, "dropped") {
		t.Fatalf("info line should be filtered: %s", got)
	}
	if !strings.Contains(got, `"msg":"kept"`) || !strings.Contains(got, `"symbol":"BTC"`) {
		t.Fatalf("warn line missing: %s", got)
	}
}

func TestParseLevel(t *testing.T) {
	if lvl, err := parseLevel("DEBUG"); err != nil || lvl != slog.LevelDebug {
		t.Fatalf("debug mismatch: %v %v", lvl, err)
	}
	if _, err := parseLevel("loud"); err == nil {
		t.Fatalf("expected error for unknown level")
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := New(config.LogConfig{LogFormat: "xml"}); err == nil {
		t.Fatalf("expected error for unknown format")
	}
}
