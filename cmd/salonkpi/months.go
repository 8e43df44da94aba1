package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"salonkpi/pkg/engine"
)

var monthsFilter engine.Filter

var monthsCmd = &cobra.Command{
	Use:   "months",
	Short: "Print the monthly cohort table",
	RunE: func(cmd *cobra.Command, args []string) error {
		b, err := loadBuilder(cmd.Context())
		if err != nil {
			return err
		}
		r, err := b.Build(monthsFilter)
		if err != nil {
			return err
		}

		tw := newTable(cmd.OutOrStdout())
		fmt.Fprintln(tw, "MONTH\tORDERS\tMEMBERS\tNEW\tOLD\tNEW%\tRETENTION\tONE-TIME\tCHURN")
		for _, s := range r.Cohort.Stats {
			fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%d\t%s\t%s\t%s\t%s\n",
				s.Month, s.TotalOrders, s.UniqueMembers, s.NewCount, s.OldCount,
				pct(s.NewRate), optPct(s.RetentionRate), optInt(s.OneTimeCount), optPct(s.ChurnRate))
		}
		fmt.Fprintf(tw, "\navg retention %s\t%d members\t%d orders\n",
			pct(r.Cohort.AvgRetention), r.Cohort.UniqueTotalMembers, r.Cohort.TotalOrders)
		return tw.Flush()
	},
}

func init() {
	monthsCmd.Flags().StringVar(&monthsFilter.Year, "year", "", "restrict to a year (YYYY)")
	monthsCmd.Flags().StringVar(&monthsFilter.Store, "store", "", "restrict to a store")
	rootCmd.AddCommand(monthsCmd)
}
