package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"salonkpi/pkg/config"
	"salonkpi/pkg/logger"
	"salonkpi/pkg/report"
	"salonkpi/pkg/source"
)

var (
	configPath       string
	transactionsPath string
	membersPath      string

	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:           "salonkpi",
	Short:         "Retention and cohort analytics for barbershop POS exports",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		if configPath != "" {
			if cfg, err = config.Load(configPath); err != nil {
				return err
			}
		} else {
			cfg = config.Default()
		}
		if transactionsPath != "" {
			cfg.Source.Kind = config.SourceCSV
			cfg.Source.Transactions = transactionsPath
			cfg.Source.Members = membersPath
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}

		slog.SetDefault(logger.New(cfg.Log, os.Stderr))
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to config.toml")
	rootCmd.PersistentFlags().StringVarP(&transactionsPath, "transactions", "t", "", "POS export CSV (overrides the configured source)")
	rootCmd.PersistentFlags().StringVarP(&membersPath, "members", "m", "", "member-history CSV, used with --transactions")
}

// loadBuilder opens the configured source and loads it into a report builder.
func loadBuilder(ctx context.Context) (*report.Builder, error) {
	src, err := source.Open(ctx, cfg.Source)
	if err != nil {
		logger.LogError(slog.Default(), "Failed to open source", err, slog.String("kind", cfg.Source.Kind))
		return nil, err
	}
	defer src.Close()

	opts, err := cfg.Dataset.Options()
	if err != nil {
		return nil, err
	}
	b, err := report.NewBuilder(src, report.Options{
		Normalize:     opts,
		ReferenceYear: cfg.Dataset.ReferenceYear,
		CacheSize:     cfg.Analysis.CacheSize,
		Logger:        slog.Default(),
	})
	if err != nil {
		return nil, err
	}
	if err := b.Load(ctx); err != nil {
		return nil, err
	}
	return b, nil
}
