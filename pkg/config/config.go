// Package config loads the TOML configuration of salonkpi.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"
	_ "time/tzdata"

	"github.com/pelletier/go-toml/v2"

	"salonkpi/pkg/schema"
)

// Source kinds.
const (
	SourceCSV      = "csv"
	SourcePostgres = "postgres"
	SourceMySQL    = "mysql"
)

var ErrUnknownSource = errors.New("unknown source kind")

type Config struct {
	Log      LogConfig      `toml:"log"`
	Dataset  DatasetConfig  `toml:"dataset"`
	Source   SourceConfig   `toml:"source"`
	Analysis AnalysisConfig `toml:"analysis"`
	Output   OutputConfig   `toml:"output"`
}

type LogConfig struct {
	Level     slog.Level `toml:"level"`
	Format    string     `toml:"format"`
	AddSource bool       `toml:"add_source"`
}

// DatasetConfig holds the sentinels of the POS export. GuestID and Unlabeled
// are the placeholders the export writes; they are read as walk-in and
// unlabeled values.
type DatasetConfig struct {
	CompletedStatus string `toml:"completed_status"`
	GuestID         string `toml:"guest_id"`
	Unlabeled       string `toml:"unlabeled"`
	// Timezone is an IANA name used to read timestamps without a zone.
	Timezone string `toml:"timezone"`
	// ReferenceYear is the year member ages are computed against. 0 means the current year.
	ReferenceYear int `toml:"reference_year"`
}

type SourceConfig struct {
	Kind         string `toml:"kind"`
	Transactions string `toml:"transactions"`
	Members      string `toml:"members"`
	DSN          string `toml:"dsn"`
	Table        string `toml:"table"`
	MembersTable string `toml:"members_table"`
}

type AnalysisConfig struct {
	CacheSize int `toml:"cache_size"`
}

type OutputConfig struct {
	Dir    string `toml:"dir"`
	Pretty bool   `toml:"pretty"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Log: LogConfig{Level: slog.LevelInfo, Format: "color"},
		Dataset: DatasetConfig{
			CompletedStatus: schema.CompletedStatus,
			GuestID:         schema.GuestID,
			Unlabeled:       schema.Unlabeled,
			Timezone:        "Asia/Taipei",
		},
		Source: SourceConfig{
			Kind:         SourceCSV,
			Table:        "transactions",
			MembersTable: "members",
		},
		Analysis: AnalysisConfig{CacheSize: 32},
		Output:   OutputConfig{Dir: ".", Pretty: true},
	}
}

// Load reads path on top of Default. The result is not validated so flags
// can still fill in the source.
func Load(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config: %w", err)
	}
	defer file.Close()

	cfg := Default()
	if err = toml.NewDecoder(file).DisallowUnknownFields().Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks that the configured source can be opened.
func (c *Config) Validate() error {
	switch c.Source.Kind {
	case SourceCSV:
		if c.Source.Transactions == "" {
			return errors.New("source.transactions is required for csv sources")
		}
	case SourcePostgres, SourceMySQL:
		if c.Source.DSN == "" {
			return fmt.Errorf("source.dsn is required for %s sources", c.Source.Kind)
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownSource, c.Source.Kind)
	}
	if c.Analysis.CacheSize < 0 {
		return fmt.Errorf("analysis.cache_size must not be negative, got %d", c.Analysis.CacheSize)
	}
	if _, err := c.Dataset.Location(); err != nil {
		return err
	}
	return nil
}

// Location resolves Timezone, defaulting to UTC.
func (d DatasetConfig) Location() (*time.Location, error) {
	if d.Timezone == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(d.Timezone)
	if err != nil {
		return nil, fmt.Errorf("dataset.timezone: %w", err)
	}
	return loc, nil
}

// Options converts the dataset section into normalizer options.
func (d DatasetConfig) Options() (schema.Options, error) {
	loc, err := d.Location()
	if err != nil {
		return schema.Options{}, err
	}
	return schema.Options{
		CompletedStatus: d.CompletedStatus,
		GuestID:         d.GuestID,
		Unlabeled:       d.Unlabeled,
		Location:        loc,
	}, nil
}

// Year returns ReferenceYear, or the year of now when unset.
func (d DatasetConfig) Year(now time.Time) int {
	if d.ReferenceYear > 0 {
		return d.ReferenceYear
	}
	return now.Year()
}
