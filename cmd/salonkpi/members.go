package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"salonkpi/pkg/engine"
)

var (
	membersStatus  string
	membersSearch  string
	membersLimit   int
	membersHistory string
)

var membersCmd = &cobra.Command{
	Use:   "members",
	Short: "List members by lifecycle status",
	RunE: func(cmd *cobra.Command, args []string) error {
		b, err := loadBuilder(cmd.Context())
		if err != nil {
			return err
		}
		ds := b.Dataset()
		tw := newTable(cmd.OutOrStdout())

		if membersHistory != "" {
			fmt.Fprintln(tw, "DATE\tSTORE\tBARBER\tSTYLE\tTOP\tSIDE\tPRICE")
			for _, h := range engine.MemberHistory(ds.Records, membersHistory) {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
					h.Date, h.Store, h.Provider, h.StyleText, h.Style.Primary, h.Style.Secondary, h.Price.StringFixed(0))
			}
			return tw.Flush()
		}

		statuses := ds.Statuses
		if membersStatus != "" {
			st, ok := engine.ParseLifecycleStatus(membersStatus)
			if !ok {
				return fmt.Errorf("unknown status %q (want one of %v)", membersStatus, engine.LifecycleStatuses)
			}
			statuses = engine.FilterStatus(statuses, st)
		}
		statuses = engine.SearchMembers(statuses, membersSearch)

		counts := engine.CountStatuses(ds.Statuses)
		for _, st := range engine.LifecycleStatuses {
			fmt.Fprintf(tw, "%s\t%d\n", st, counts[st])
		}
		fmt.Fprintln(tw, "\nID\tNAME\tVISITS\tORDERS\tLAST VISIT\tSTORE\tDAYS\tSTATUS")
		for i, s := range statuses {
			if membersLimit > 0 && i >= membersLimit {
				break
			}
			fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%s\t%s\t%.0f\t%s\n",
				s.MemberID, s.Name, s.Visits, s.OrderCount, s.LastVisit.Format("2006-01-02"), s.LastStore, s.DaysSince, s.Status)
		}
		return tw.Flush()
	},
}

func init() {
	membersCmd.Flags().StringVar(&membersStatus, "status", "", "only members in this state: active, dormant, at-risk, lost")
	membersCmd.Flags().StringVar(&membersSearch, "search", "", "fuzzy match on name or id")
	membersCmd.Flags().IntVar(&membersLimit, "limit", 50, "maximum rows, 0 for all")
	membersCmd.Flags().StringVar(&membersHistory, "history", "", "print the visit history of one member id")
	rootCmd.AddCommand(membersCmd)
}
