package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"
)

const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorPurple = "\033[35m"
	colorWhite  = "\033[37m"
)

type LogType string

const (
	TypeStage  LogType = "STG"
	TypeSource LogType = "SRC"
	TypeSystem LogType = "SYS"
	TypeError  LogType = "ERR"
)

// CustomHandler prints one coloured line per record:
//
//	[salonkpi] [15:04:05] [INFO] [STG] message key=value
type CustomHandler struct {
	opts   *slog.HandlerOptions
	out    io.Writer
	mu     *sync.Mutex
	color  bool
	attrs  []slog.Attr
	groups []string
}

// NewHandler writes to w. Colour escapes are emitted only when color is set.
func NewHandler(w io.Writer, opts *slog.HandlerOptions, color bool) *CustomHandler {
	if opts == nil {
		opts = &slog.HandlerOptions{Level: slog.LevelInfo}
	}
	return &CustomHandler{
		opts:  opts,
		out:   w,
		mu:    &sync.Mutex{},
		color: color,
	}
}

func (h *CustomHandler) Enabled(_ context.Context, level slog.Level) bool {
	minLevel := slog.LevelInfo
	if h.opts.Level != nil {
		minLevel = h.opts.Level.Level()
	}
	return level >= minLevel
}

func (h *CustomHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	h2 := *h
	h2.attrs = append(append([]slog.Attr(nil), h.attrs...), h.qualify(attrs)...)
	return &h2
}

func (h *CustomHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	h2 := *h
	h2.groups = append(append([]string(nil), h.groups...), name)
	return &h2
}

func (h *CustomHandler) Handle(_ context.Context, r slog.Record) error {
	var levelColor, levelText string
	switch {
	case r.Level >= slog.LevelError:
		levelColor, levelText = colorRed, "ERROR"
	case r.Level >= slog.LevelWarn:
		levelColor, levelText = colorYellow, "WARN"
	case r.Level >= slog.LevelInfo:
		levelColor, levelText = colorGreen, "INFO"
	default:
		levelColor, levelText = colorPurple, "DEBUG"
	}

	record := make([]slog.Attr, 0, r.NumAttrs())
	r.Attrs(func(a slog.Attr) bool {
		record = append(record, a)
		return true
	})
	all := append(append([]slog.Attr(nil), h.attrs...), h.qualify(record)...)

	message := r.Message
	if r.Level >= slog.LevelError {
		if details := getErrorDetails(all); details != "" {
			message = fmt.Sprintf("%s: %s", message, details)
		}
	}
	if status := getStatus(all); status != "" {
		message = fmt.Sprintf("%s [Status: %s]", message, status)
	}
	if took := getTook(all); took > 0 {
		message = fmt.Sprintf("%s (took %dms)", message, took.Milliseconds())
	}

	var attrsStr strings.Builder
	for _, attr := range all {
		if !isInternalAttr(attr.Key) {
			fmt.Fprintf(&attrsStr, " %s=%v", attr.Key, attr.Value)
		}
	}

	timestamp := r.Time
	if timestamp.IsZero() {
		timestamp = time.Now()
	}

	reset, white := colorReset, colorWhite
	if !h.color {
		reset, white, levelColor = "", "", ""
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := fmt.Fprintf(h.out, "%s[salonkpi] [%s] [%s%s%s] [%s] %s%s%s\n",
		white,
		timestamp.Format("15:04:05"),
		levelColor,
		levelText,
		white,
		getLogType(all),
		message,
		attrsStr.String(),
		reset,
	)
	return err
}

// qualify prefixes attribute keys with the open groups.
func (h *CustomHandler) qualify(attrs []slog.Attr) []slog.Attr {
	if len(h.groups) == 0 {
		return attrs
	}
	prefix := strings.Join(h.groups, ".") + "."
	out := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		out[i] = slog.Attr{Key: prefix + a.Key, Value: a.Value}
	}
	return out
}

func getLogType(attrs []slog.Attr) LogType {
	for _, a := range attrs {
		if a.Key != "type" {
			continue
		}
		switch a.Value.String() {
		case "stage":
			return TypeStage
		case "source":
			return TypeSource
		case "error":
			return TypeError
		}
		return TypeSystem
	}
	return TypeSystem
}

func isInternalAttr(key string) bool {
	switch key {
	case "type", "status", "error", "took":
		return true
	}
	return false
}

func getStatus(attrs []slog.Attr) string {
	for _, a := range attrs {
		if a.Key == "status" {
			return a.Value.String()
		}
	}
	return ""
}

func getTook(attrs []slog.Attr) time.Duration {
	for _, a := range attrs {
		if a.Key == "took" && a.Value.Kind() == slog.KindDuration {
			return a.Value.Duration()
		}
	}
	return 0
}

func getErrorDetails(attrs []slog.Attr) string {
	for _, a := range attrs {
		if a.Key == "error" {
			return fmt.Sprintf("%v", a.Value.Any())
		}
	}
	return ""
}
