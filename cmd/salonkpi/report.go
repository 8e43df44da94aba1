package main

import (
	"log/slog"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"salonkpi/pkg/engine"
	"salonkpi/pkg/report"
)

var (
	reportFilter  engine.Filter
	reportPerYear bool
	reportStdout  bool
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Compute the full report and write it as JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		b, err := loadBuilder(cmd.Context())
		if err != nil {
			return err
		}

		if reportStdout {
			r, err := b.Build(reportFilter)
			if err != nil {
				return err
			}
			return report.WriteJSON(cmd.OutOrStdout(), r, cfg.Output.Pretty)
		}

		filters := []engine.Filter{reportFilter}
		if reportPerYear {
			filters = filters[:0]
			for _, y := range engine.Years(b.Dataset().Records) {
				f := reportFilter
				f.Year = y
				filters = append(filters, f)
			}
		}

		bar := progressbar.Default(int64(len(filters)), "composing reports")
		for _, f := range filters {
			r, err := b.Build(f)
			if err != nil {
				return err
			}
			path, err := report.WriteFile(cfg.Output.Dir, r, cfg.Output.Pretty)
			if err != nil {
				return err
			}
			slog.Info("Report written", slog.String("type", "stage"), slog.String("path", path))
			_ = bar.Add(1)
		}
		return nil
	},
}

func init() {
	reportCmd.Flags().StringVar(&reportFilter.Year, "year", "", "restrict the working set to a year (YYYY)")
	reportCmd.Flags().StringVar(&reportFilter.Store, "store", "", "restrict the working set to a store")
	reportCmd.Flags().StringVar(&reportFilter.Provider, "provider", "", "restrict the working set to a barber")
	reportCmd.Flags().IntVar(&reportFilter.RecentMonths, "recent", 0, "keep only the last N months of visits")
	reportCmd.Flags().BoolVar(&reportPerYear, "per-year", false, "write one report per year present in the data")
	reportCmd.Flags().BoolVar(&reportStdout, "stdout", false, "print the report instead of writing a file")
	reportCmd.MarkFlagsMutuallyExclusive("per-year", "stdout")
	rootCmd.AddCommand(reportCmd)
}
