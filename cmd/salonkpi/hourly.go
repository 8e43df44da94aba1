package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"salonkpi/pkg/engine"
)

var (
	hourlyFilter engine.Filter
	hourlyScope  string
)

var hourlyCmd = &cobra.Command{
	Use:   "hourly",
	Short: "Print average entries and completions per opening hour",
	RunE: func(cmd *cobra.Command, args []string) error {
		scope, err := engine.ParseHourlyScope(hourlyScope)
		if err != nil {
			return err
		}
		b, err := loadBuilder(cmd.Context())
		if err != nil {
			return err
		}
		r, err := b.Build(hourlyFilter)
		if err != nil {
			return err
		}
		hs := r.Hourly[scope]

		tw := newTable(cmd.OutOrStdout())
		fmt.Fprintf(tw, "%s\t%d days\tavg %.1f min\tlast service %.1f min\n\n",
			hs.Scope, hs.Days, hs.AvgDuration, hs.AvgLastServiceMins)
		fmt.Fprintln(tw, "HOUR\tENTRIES\tCOMPLETIONS")
		for i, h := range hs.Hours {
			fmt.Fprintf(tw, "%02d:00\t%.2f\t%.2f\n", h, hs.EntryAvg[i], hs.CompletionAvg[i])
		}
		return tw.Flush()
	},
}

func init() {
	hourlyCmd.Flags().StringVar(&hourlyFilter.Year, "year", "", "restrict to a year (YYYY)")
	hourlyCmd.Flags().StringVar(&hourlyFilter.Store, "store", "", "restrict to a store")
	hourlyCmd.Flags().StringVar(&hourlyFilter.Provider, "provider", "", "restrict to a barber")
	hourlyCmd.Flags().IntVar(&hourlyFilter.RecentMonths, "recent", 0, "keep only the last N months of visits")
	hourlyCmd.Flags().StringVar(&hourlyScope, "scope", string(engine.ScopeAll), "all, weekday or weekend")
	rootCmd.AddCommand(hourlyCmd)
}
