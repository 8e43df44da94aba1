package config

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
[log]
level = "DEBUG"
format = "json"

[dataset]
timezone = "UTC"
reference_year = 2024

[source]
kind = "csv"
transactions = "orders.csv"
members = "members.csv"

[output]
pretty = false
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Log.Level != slog.LevelDebug || cfg.Log.Format != "json" {
		t.Errorf("log = %+v", cfg.Log)
	}
	if cfg.Source.Transactions != "orders.csv" || cfg.Source.Table != "transactions" {
		t.Errorf("source = %+v", cfg.Source)
	}
	if cfg.Dataset.GuestID != "訪客" || cfg.Dataset.Year(time.Now()) != 2024 {
		t.Errorf("dataset = %+v", cfg.Dataset)
	}
	if cfg.Analysis.CacheSize != 32 || cfg.Output.Pretty {
		t.Errorf("defaults not kept: %+v %+v", cfg.Analysis, cfg.Output)
	}
}

func TestLoad_UnknownField(t *testing.T) {
	path := writeConfig(t, "[source]\nkind = \"csv\"\ntransactions = \"a.csv\"\ntable_name = \"x\"\n")
	if _, err := Load(path); err == nil {
		t.Fatal("expected an error for an unknown field")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
		ok      bool
	}{
		{"csv ok", func(c *Config) { c.Source.Transactions = "a.csv" }, nil, true},
		{"csv without path", func(c *Config) {}, nil, false},
		{"postgres without dsn", func(c *Config) { c.Source.Kind = SourcePostgres }, nil, false},
		{"mysql ok", func(c *Config) { c.Source.Kind = SourceMySQL; c.Source.DSN = "mysql://u@h/db" }, nil, true},
		{"unknown kind", func(c *Config) { c.Source.Kind = "excel" }, ErrUnknownSource, false},
		{"bad timezone", func(c *Config) { c.Source.Transactions = "a.csv"; c.Dataset.Timezone = "Mars/Base" }, nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err == nil) != tt.ok {
				t.Fatalf("Validate() error = %v, want ok=%v", err, tt.ok)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Fatalf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestDatasetOptions(t *testing.T) {
	opts, err := Default().Dataset.Options()
	if err != nil {
		t.Fatal(err)
	}
	if opts.Location.String() != "Asia/Taipei" || opts.CompletedStatus != "完成" {
		t.Fatalf("Options() = %+v", opts)
	}
}
