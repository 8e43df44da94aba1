// Package logger configures log/slog for the CLI and the report pipeline.
package logger

import (
	"io"
	"log/slog"
	"time"

	"salonkpi/pkg/config"
)

// New builds a logger for cfg.Format: "color" (default), "text" or "json".
func New(cfg config.LogConfig, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.Level, AddSource: cfg.AddSource}

	var h slog.Handler
	switch cfg.Format {
	case "json":
		h = slog.NewJSONHandler(w, opts)
	case "text":
		h = slog.NewTextHandler(w, opts)
	case "plain":
		h = NewHandler(w, opts, false)
	default:
		h = NewHandler(w, opts, true)
	}
	return slog.New(h)
}

// LogStage logs the completion of a pipeline stage.
func LogStage(log *slog.Logger, name string, took time.Duration, attrs ...any) {
	base := []any{
		slog.String("type", "stage"),
		slog.String("stage", name),
		slog.Duration("took", took),
	}
	log.Info("Stage finished", append(base, attrs...)...)
}

// LogSource logs a load from an input source.
func LogSource(log *slog.Logger, kind string, rows int, took time.Duration, err error) {
	attrs := []any{
		slog.String("type", "source"),
		slog.String("kind", kind),
		slog.Duration("took", took),
	}
	if err != nil {
		log.Error("Load failed", append(attrs, slog.Any("error", err))...)
		return
	}
	log.Info("Loaded", append(attrs, slog.Int("rows", rows))...)
}

// LogError logs err with the error type tag.
func LogError(log *slog.Logger, msg string, err error, attrs ...any) {
	base := []any{
		slog.String("type", "error"),
		slog.Any("error", err),
	}
	log.Error(msg, append(base, attrs...)...)
}
