package engine

import (
	"sort"
	"time"

	"salonkpi/pkg/schema"
)

// Lookup indexes the full, unfiltered dataset by month. Forward and backward
// cohort references always go through it, never through a filtered view.
type Lookup struct {
	MonthlyOrders  map[string][]schema.Transaction `json:"monthlyOrders"`
	MonthlyMembers map[string]map[string]struct{}  `json:"-"`
	Stats          LookupStats                     `json:"stats"`

	months   []string
	byMember map[string]map[string][]int // month -> member -> positions in MonthlyOrders[month]
	latest   time.Time
}

// LookupStats contains aggregate statistics about the indexed dataset.
type LookupStats struct {
	TotalOrders  int `json:"totalOrders"`
	GuestOrders  int `json:"guestOrders"`
	Months       int `json:"months"`
	UniqueMember int `json:"uniqueMembers"`
}

// BuildLookup indexes records into month -> orders and month -> member-id set.
// Order within a month follows the input order. Months with only guest orders
// have orders but no member set.
func BuildLookup(records []schema.Transaction) *Lookup {
	l := &Lookup{
		MonthlyOrders:  make(map[string][]schema.Transaction),
		MonthlyMembers: make(map[string]map[string]struct{}),
		byMember:       make(map[string]map[string][]int),
	}

	members := make(map[string]struct{})
	guestOrders := 0

	for _, rec := range records {
		pos := len(l.MonthlyOrders[rec.Month])
		l.MonthlyOrders[rec.Month] = append(l.MonthlyOrders[rec.Month], rec)

		if rec.VisitTime.After(l.latest) {
			l.latest = rec.VisitTime
		}

		if rec.IsGuest() {
			guestOrders++
			continue
		}

		set, ok := l.MonthlyMembers[rec.Month]
		if !ok {
			set = make(map[string]struct{})
			l.MonthlyMembers[rec.Month] = set
			l.byMember[rec.Month] = make(map[string][]int)
		}
		set[rec.MemberID] = struct{}{}
		l.byMember[rec.Month][rec.MemberID] = append(l.byMember[rec.Month][rec.MemberID], pos)
		members[rec.MemberID] = struct{}{}
	}

	l.months = make([]string, 0, len(l.MonthlyOrders))
	for m := range l.MonthlyOrders {
		l.months = append(l.months, m)
	}
	sort.Strings(l.months)

	l.Stats = LookupStats{
		TotalOrders:  len(records),
		GuestOrders:  guestOrders,
		Months:       len(l.months),
		UniqueMember: len(members),
	}

	return l
}

// Months returns every month with at least one order, ascending.
func (l *Lookup) Months() []string {
	return append([]string(nil), l.months...)
}

// LastMonth is the dataset horizon, or "" for an empty dataset.
func (l *Lookup) LastMonth() string {
	if len(l.months) == 0 {
		return ""
	}
	return l.months[len(l.months)-1]
}

// LatestVisit is the largest VisitTime in the dataset.
func (l *Lookup) LatestVisit() time.Time {
	return l.latest
}

// MembersIn returns the member set of month; ok is false when the month has
// no member orders.
func (l *Lookup) MembersIn(month string) (map[string]struct{}, bool) {
	set, ok := l.MonthlyMembers[month]
	return set, ok
}

// HasMember reports whether id transacted in month.
func (l *Lookup) HasMember(month, id string) bool {
	_, ok := l.MonthlyMembers[month][id]
	return ok
}

// OrdersOf returns id's orders in month, in dataset order.
func (l *Lookup) OrdersOf(month, id string) []schema.Transaction {
	positions := l.byMember[month][id]
	if len(positions) == 0 {
		return nil
	}
	orders := l.MonthlyOrders[month]
	out := make([]schema.Transaction, len(positions))
	for i, p := range positions {
		out[i] = orders[p]
	}
	return out
}
