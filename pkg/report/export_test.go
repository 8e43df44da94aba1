package report

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"salonkpi/pkg/engine"
	"salonkpi/pkg/schema"
)

func TestTimestampedFilename(t *testing.T) {
	at := time.Date(2024, 3, 5, 14, 30, 0, 0, time.UTC)
	tests := []struct {
		filter engine.Filter
		want   string
	}{
		{engine.Filter{}, "salonkpi-20240305-143000.json"},
		{engine.Filter{Year: "2024", Store: "信義店"}, "salonkpi-2024-信義店-20240305-143000.json"},
		{engine.Filter{Store: "A/B 店"}, "salonkpi-A_B_店-20240305-143000.json"},
		{engine.Filter{Store: "信義店", RecentMonths: 6}, "salonkpi-信義店-last6m-20240305-143000.json"},
	}
	for _, tt := range tests {
		if got := TimestampedFilename(tt.filter, at); got != tt.want {
			t.Errorf("TimestampedFilename(%+v) = %q, want %q", tt.filter, got, tt.want)
		}
	}
}

func TestWriteFile(t *testing.T) {
	records, _ := schema.NormalizeTransactions(sampleRows(), schema.DefaultOptions())
	r := NewDataset(records, nil).Compose(engine.Filter{Year: "2024"}, time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC))

	dir := filepath.Join(t.TempDir(), "out")
	path, err := WriteFile(dir, r, true)
	if err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	if !strings.HasSuffix(path, "salonkpi-2024-20240701-000000.json") {
		t.Fatalf("path = %q", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("report is not valid JSON: %v", err)
	}
	for _, key := range []string{"id", "cohort", "providers", "members", "lost", "hourly"} {
		if _, ok := decoded[key]; !ok {
			t.Errorf("report is missing %q", key)
		}
	}

	var compact bytes.Buffer
	if err := WriteJSON(&compact, r, false); err != nil {
		t.Fatal(err)
	}
	if strings.Count(compact.String(), "\n") != 1 {
		t.Error("compact output should be a single line")
	}
}
