package engine

import (
	"sort"
	"time"

	"salonkpi/pkg/schema"
)

// MonthlyStats is the cohort summary of one month. Forward-looking fields are
// nil when the months they need lie beyond the dataset horizon.
type MonthlyStats struct {
	Month         string   `json:"month"`
	TotalOrders   int      `json:"totalOrders"`
	UniqueMembers int      `json:"uniqueMembers"`
	NewCount      int      `json:"newCount"`
	OldCount      int      `json:"oldCount"`
	NewRate       float64  `json:"newRate"`
	RetentionRate *float64 `json:"retentionRate"`
	OneTimeCount  *int     `json:"oneTimeCount"`
	ChurnRate     *float64 `json:"churnRate"`
}

// Cohort is the month-by-month view of a working set.
type Cohort struct {
	Months             []string       `json:"months"`
	Stats              []MonthlyStats `json:"stats"`
	AvgRetention       float64        `json:"avgRetention"`
	UniqueTotalMembers int            `json:"uniqueTotalMembers"`
	TotalOrders        int            `json:"totalOrders"`
}

// Month returns the stats of month.
func (c Cohort) Month(month string) (MonthlyStats, bool) {
	i := sort.SearchStrings(c.Months, month)
	if i < len(c.Months) && c.Months[i] == month {
		return c.Stats[i], true
	}
	return MonthlyStats{}, false
}

// ComputeMonthly computes cohort statistics for every month of working,
// consulting lookup (built from the unfiltered dataset) for M+1 and M+2.
func ComputeMonthly(working []schema.Transaction, lookup *Lookup) Cohort {
	byMonth := make(map[string][]schema.Transaction)
	allMembers := make(map[string]struct{})
	for _, rec := range working {
		byMonth[rec.Month] = append(byMonth[rec.Month], rec)
		if !rec.IsGuest() {
			allMembers[rec.MemberID] = struct{}{}
		}
	}

	months := make([]string, 0, len(byMonth))
	for m := range byMonth {
		months = append(months, m)
	}
	sort.Strings(months)

	c := Cohort{
		Months:             months,
		Stats:              make([]MonthlyStats, 0, len(months)),
		UniqueTotalMembers: len(allMembers),
		TotalOrders:        len(working),
	}

	last := lookup.LastMonth()
	var retSum float64
	var retCount int

	for _, m := range months {
		stats := monthStats(m, byMonth[m], lookup, last)
		if stats.RetentionRate != nil {
			retSum += *stats.RetentionRate
			retCount++
		}
		c.Stats = append(c.Stats, stats)
	}

	if retCount > 0 {
		c.AvgRetention = retSum / float64(retCount)
	}
	return c
}

func monthStats(month string, orders []schema.Transaction, lookup *Lookup, last string) MonthlyStats {
	members := make(map[string]struct{})
	newMembers := make(map[string]struct{})
	visits := make(map[string]map[time.Time]struct{})

	for _, rec := range orders {
		if rec.IsGuest() {
			continue
		}
		members[rec.MemberID] = struct{}{}
		if rec.IsTrueNewVisit {
			newMembers[rec.MemberID] = struct{}{}
		}
		if visits[rec.MemberID] == nil {
			visits[rec.MemberID] = make(map[time.Time]struct{})
		}
		visits[rec.MemberID][rec.VisitTime] = struct{}{}
	}

	unique := len(members)
	stats := MonthlyStats{
		Month:         month,
		TotalOrders:   len(orders),
		UniqueMembers: unique,
		NewCount:      len(newMembers),
		OldCount:      unique - len(newMembers),
	}
	if unique > 0 {
		stats.NewRate = float64(len(newMembers)) / float64(unique) * 100
	}

	next := AddMonths(month, 1)
	nextNext := AddMonths(month, 2)

	if nextMembers, ok := lookup.MembersIn(next); ok && unique > 0 {
		returned := 0
		for id := range members {
			if _, ok := nextMembers[id]; ok {
				returned++
			}
		}
		rate := float64(returned) / float64(unique) * 100
		stats.RetentionRate = &rate
	}

	if beyondHorizon(month, 2, last) {
		return stats
	}

	oneTime := 0
	for id := range newMembers {
		if lookup.HasMember(next, id) || lookup.HasMember(nextNext, id) {
			continue
		}
		if len(visits[id]) > 1 {
			continue
		}
		oneTime++
	}
	stats.OneTimeCount = &oneTime

	if unique > 0 {
		churned := 0
		for id := range members {
			if !lookup.HasMember(next, id) && !lookup.HasMember(nextNext, id) {
				churned++
			}
		}
		rate := float64(churned) / float64(unique) * 100
		stats.ChurnRate = &rate
	}

	return stats
}
