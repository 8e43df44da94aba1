package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"salonkpi/pkg/engine"
)

// WriteJSON encodes r to w.
func WriteJSON(w io.Writer, r *Report, pretty bool) error {
	enc := json.NewEncoder(w)
	if pretty {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	return nil
}

// WriteFile writes r into dir under TimestampedFilename and returns the path.
func WriteFile(dir string, r *Report, pretty bool) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output dir: %w", err)
	}
	path := filepath.Join(dir, TimestampedFilename(r.Filter, r.GeneratedAt))

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create report file: %w", err)
	}
	if err := WriteJSON(f, r, pretty); err != nil {
		f.Close()
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("failed to close report file: %w", err)
	}
	return path, nil
}

// TimestampedFilename names a report after its filter and generation time,
// e.g. "salonkpi-2024-信義店-20240305-143000.json".
func TimestampedFilename(f engine.Filter, at time.Time) string {
	parts := []string{"salonkpi"}
	for _, p := range []string{f.Year, f.Store, f.Provider} {
		if p != "" {
			parts = append(parts, sanitize(p))
		}
	}
	if f.RecentMonths > 0 {
		parts = append(parts, fmt.Sprintf("last%dm", f.RecentMonths))
	}
	parts = append(parts, at.Format("20060102-150405"))
	return strings.Join(parts, "-") + ".json"
}

func sanitize(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|', ' ':
			return '_'
		}
		return r
	}, s)
}
