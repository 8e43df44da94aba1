package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"salonkpi/pkg/engine"
)

var (
	providersFilter engine.Filter
	providerDetail  string
)

var providersCmd = &cobra.Command{
	Use:   "providers",
	Short: "Print barber KPIs, or the monthly trend of one barber",
	RunE: func(cmd *cobra.Command, args []string) error {
		b, err := loadBuilder(cmd.Context())
		if err != nil {
			return err
		}
		r, err := b.Build(providersFilter)
		if err != nil {
			return err
		}
		tw := newTable(cmd.OutOrStdout())

		if providerDetail != "" {
			p, ok := r.Provider(providerDetail)
			if !ok {
				return fmt.Errorf("no barber named %q in the selected data", providerDetail)
			}
			fmt.Fprintln(tw, "MONTH\tRETENTION\tDESIGNATED RETURN\tLOST\tDESIGNATIONS")
			for _, t := range p.Trend {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\n",
					t.Month, pct(t.Retention), pct(t.DesignatedReturn), optPct(t.Lost), t.Designations)
			}
			fmt.Fprintln(tw, "\nMONTH\tDAYS\tORDERS\tPER DAY")
			for _, row := range p.Productivity {
				fmt.Fprintf(tw, "%s\t%d\t%d\t%.1f\n", row.Month, row.Days, row.Orders, row.PerDay)
			}
			for _, bucket := range []struct {
				name   string
				styles []string
			}{{"iron", p.Buckets.Iron}, {"easy", p.Buckets.Easy}, {"lost", p.Buckets.Lost}} {
				bp := engine.AnalyzeBucket(bucket.styles)
				fmt.Fprintf(tw, "\n%s\t%d orders\ttop %s (%s)\tside %s (%s)\n", bucket.name, bp.Total,
					bp.TopPrimary.Key, pct(bp.TopPrimary.Percent), bp.TopSecondary.Key, pct(bp.TopSecondary.Percent))
			}
			return tw.Flush()
		}

		fmt.Fprintln(tw, "BARBER\tSTORE\tORDERS\tMEMBERS\tRETENTION\tCHANGE\tMINUTES\tDESIGNATED\tPER DAY\tSAME\tOTHER\tLOST")
		for _, p := range r.Providers {
			fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%s\t%+.1f\t%.1f\t%s\t%.1f\t%s\t%s\t%s\n",
				p.Name, p.Store, p.TotalOrders, p.UniqueMembers, pct(p.PooledRetention), p.RetentionChangeSum,
				p.AvgDurationMinutes, pct(p.TotalDesignationRate), p.AvgDailyThroughput,
				pct(p.Segments.SameDesignation), pct(p.Segments.OtherDesignation), pct(p.Segments.Lost))
		}
		avg := r.Averages
		fmt.Fprintf(tw, "\naverage\t\t\t\t%s\t\t%.1f\t%s\t%.1f\n",
			pct(avg.Retention), avg.Duration, pct(avg.DesignationRate), avg.Throughput)
		return tw.Flush()
	},
}

func init() {
	providersCmd.Flags().StringVar(&providersFilter.Year, "year", "", "restrict to a year (YYYY)")
	providersCmd.Flags().StringVar(&providersFilter.Store, "store", "", "restrict to a store")
	providersCmd.Flags().StringVar(&providerDetail, "detail", "", "show the monthly trend of one barber")
	rootCmd.AddCommand(providersCmd)
}
