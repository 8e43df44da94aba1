package source

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"salonkpi/pkg/parser"
)

// Files reads the POS export and the optional member-history export from disk.
type Files struct {
	TransactionsPath string
	MembersPath      string
}

func NewFiles(transactions, members string) *Files {
	return &Files{TransactionsPath: transactions, MembersPath: members}
}

func (f *Files) Transactions(ctx context.Context) ([]map[string]string, error) {
	return readCSV(ctx, f.TransactionsPath)
}

func (f *Files) Members(ctx context.Context) ([]map[string]string, error) {
	if f.MembersPath == "" {
		return nil, nil
	}
	return readCSV(ctx, f.MembersPath)
}

func (f *Files) Close() error { return nil }

func readCSV(ctx context.Context, path string) ([]map[string]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return ParseCSV(path, data)
}

// ParseCSV parses an export held in memory. name is only used in log lines.
func ParseCSV(name string, data []byte) ([]map[string]string, error) {
	result, err := parser.StreamParseWithWarnings(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", name, err)
	}
	for _, w := range result.Warnings {
		slog.Warn("CSV row repaired",
			slog.String("type", "source"),
			slog.String("file", name),
			slog.Int("row", w.Row),
			slog.String("detail", w.Message),
		)
	}
	slog.Debug("CSV parsed",
		slog.String("type", "source"),
		slog.String("file", name),
		slog.String("encoding", result.Encoding),
		slog.Int("rows", len(result.Records)),
	)
	return result.Records, nil
}

// Memory serves exports already held in memory, as uploaded by a browser.
type Memory struct {
	TransactionsCSV []byte
	MembersCSV      []byte
}

func (m *Memory) Transactions(_ context.Context) ([]map[string]string, error) {
	return ParseCSV("transactions", m.TransactionsCSV)
}

func (m *Memory) Members(_ context.Context) ([]map[string]string, error) {
	if len(m.MembersCSV) == 0 {
		return nil, nil
	}
	return ParseCSV("members", m.MembersCSV)
}

func (m *Memory) Close() error { return nil }
