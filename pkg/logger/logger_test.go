package logger

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"salonkpi/pkg/config"
)

func TestCustomHandler(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(NewHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}, false))

	log.Debug("hidden")
	LogStage(log, "cohort", 1500*time.Millisecond, slog.Int("months", 6))
	LogError(log.With("file", "orders.csv"), "Load failed", errors.New("boom"))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines: %q", len(lines), buf.String())
	}

	tests := []struct {
		line string
		want []string
	}{
		{lines[0], []string{"[INFO]", "[STG]", "Stage finished", "(took 1500ms)", "stage=cohort", "months=6"}},
		{lines[1], []string{"[ERROR]", "[ERR]", "Load failed: boom", "file=orders.csv"}},
	}
	for _, tt := range tests {
		for _, w := range tt.want {
			if !strings.Contains(tt.line, w) {
				t.Errorf("%q does not contain %q", tt.line, w)
			}
		}
		if strings.Contains(tt.line, "\033[") {
			t.Errorf("plain handler emitted colour: %q", tt.line)
		}
	}
}

func TestCustomHandler_Group(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(NewHandler(&buf, nil, false)).WithGroup("source")
	log.Info("Loaded", slog.String("kind", "csv"))

	if !strings.Contains(buf.String(), "source.kind=csv") {
		t.Fatalf("group prefix missing: %q", buf.String())
	}
}

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	log := New(config.LogConfig{Level: slog.LevelWarn, Format: "json"}, &buf)
	log.Info("dropped")
	log.Warn("kept")

	if strings.Contains(buf.String(), "dropped") || !strings.Contains(buf.String(), `"msg":"kept"`) {
		t.Fatalf("unexpected output: %q", buf.String())
	}
}
