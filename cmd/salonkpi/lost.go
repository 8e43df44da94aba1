package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"salonkpi/pkg/engine"
)

var (
	lostCohort string
	lostTop    int
)

var lostCmd = &cobra.Command{
	Use:   "lost",
	Short: "Profile the styles and barbers behind lost members",
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, err := engine.ParseLostCohortKind(lostCohort)
		if err != nil {
			return err
		}
		b, err := loadBuilder(cmd.Context())
		if err != nil {
			return err
		}
		ds := b.Dataset()
		tw := newTable(cmd.OutOrStdout())

		lp, ok := engine.ProfileLost(ds.Records, ds.Profiles, kind)
		if !ok {
			fmt.Fprintln(tw, "no members in this cohort")
			return tw.Flush()
		}

		fmt.Fprintf(tw, "%d members last seen before %s\n\n", lp.Total, lp.Threshold.Format("2006-01-02"))
		printShares(tw, "TOP", lp.TopPrimary(lostTop))
		printShares(tw, "SIDE", lp.TopSecondary(lostTop))
		for _, store := range lp.Stores() {
			printShares(tw, store, lp.TopProviders(store, lostTop))
		}
		return tw.Flush()
	},
}

func printShares(w io.Writer, title string, shares []engine.Share) {
	fmt.Fprintf(w, "%s\tCOUNT\tSHARE\n", title)
	for _, s := range shares {
		fmt.Fprintf(w, "%s\t%d\t%s\n", s.Key, s.Count, pct(s.Percent))
	}
	fmt.Fprintln(w)
}

func init() {
	lostCmd.Flags().StringVar(&lostCohort, "cohort", string(engine.CohortGeneralChurn), "onetime or churn")
	lostCmd.Flags().IntVar(&lostTop, "top", 5, "entries per table")
	rootCmd.AddCommand(lostCmd)
}
