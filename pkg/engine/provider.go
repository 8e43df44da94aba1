package engine

import (
	"sort"

	"salonkpi/pkg/schema"
)

// Plausible service duration window in minutes, bounds exclusive.
const (
	minPlausibleDuration = 0
	maxPlausibleDuration = 300
)

// Segments splits a provider's served members by what they did next.
// Numerators count people while the denominator counts member orders, so the
// three values are not complements of each other.
type Segments struct {
	SameDesignation  float64 `json:"sameDesignation"`
	OtherDesignation float64 `json:"otherDesignation"`
	Lost             float64 `json:"lost"`
}

// Buckets holds the style text of the current-month orders of each segment.
type Buckets struct {
	Iron []string `json:"iron"`
	Easy []string `json:"easy"`
	Lost []string `json:"lost"`
}

// TrendPoint is one month of a provider's retention trend.
type TrendPoint struct {
	Month            string   `json:"month"`
	Retention        float64  `json:"retention"`
	DesignatedReturn float64  `json:"designatedReturn"`
	Lost             *float64 `json:"lost"`
	Designations     int      `json:"designations"` // guests included
}

// ProductivityRow is one month of a provider's daily throughput.
type ProductivityRow struct {
	Month  string  `json:"month"`
	Days   int     `json:"days"`
	Orders int     `json:"orders"`
	PerDay float64 `json:"perDay"`
}

// ProviderStats are the KPIs of one service provider.
type ProviderStats struct {
	Name                 string            `json:"name"`
	Store                string            `json:"store"`
	TotalServedMembers   int               `json:"totalServedMembers"`
	UniqueMembers        int               `json:"uniqueMembers"`
	TotalOrders          int               `json:"totalOrders"`
	PooledRetention      float64           `json:"pooledRetention"`
	RetentionChangeSum   float64           `json:"retentionChangeSum"`
	AvgDurationMinutes   float64           `json:"avgDurationMinutes"`
	DurationSamples      int               `json:"durationSamples"`
	DesignatedOrders     int               `json:"designatedOrders"`
	TotalDesignationRate float64           `json:"totalDesignationRate"`
	AvgDailyThroughput   float64           `json:"avgDailyThroughput"`
	Segments             Segments          `json:"segments"`
	Buckets              Buckets           `json:"buckets"`
	Months               []string          `json:"months"`
	Trend                []TrendPoint      `json:"trend"`
	Productivity         []ProductivityRow `json:"productivity"`
}

// ComputeProviders computes KPIs for every provider in working, sorted by
// name. The dataset's latest month is treated as incomplete and left out of
// retention accounting; forward references go through lookup.
func ComputeProviders(working []schema.Transaction, lookup *Lookup) []ProviderStats {
	byProvider := make(map[string][]schema.Transaction)
	for _, rec := range working {
		byProvider[rec.Provider] = append(byProvider[rec.Provider], rec)
	}

	names := make([]string, 0, len(byProvider))
	for name := range byProvider {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]ProviderStats, 0, len(names))
	for _, name := range names {
		out = append(out, computeProvider(name, byProvider[name], lookup))
	}
	return out
}

func computeProvider(name string, orders []schema.Transaction, lookup *Lookup) ProviderStats {
	ps := ProviderStats{
		Name:        name,
		Store:       lastStore(orders),
		TotalOrders: len(orders),
		Buckets:     Buckets{Iron: []string{}, Easy: []string{}, Lost: []string{}},
	}

	byMonth := make(map[string][]schema.Transaction)
	unique := make(map[string]struct{})
	var durSum float64

	for _, o := range orders {
		byMonth[o.Month] = append(byMonth[o.Month], o)
		if !o.IsGuest() {
			ps.TotalServedMembers++
			unique[o.MemberID] = struct{}{}
		}
		if o.DurationMinutes > minPlausibleDuration && o.DurationMinutes < maxPlausibleDuration {
			durSum += o.DurationMinutes
			ps.DurationSamples++
		}
		if o.IsDesignated() {
			ps.DesignatedOrders++
		}
	}
	ps.UniqueMembers = len(unique)
	if ps.DurationSamples > 0 {
		ps.AvgDurationMinutes = durSum / float64(ps.DurationSamples)
	}
	if len(orders) > 0 {
		ps.TotalDesignationRate = float64(ps.DesignatedOrders) / float64(len(orders)) * 100
	}

	for m := range byMonth {
		ps.Months = append(ps.Months, m)
	}
	sort.Strings(ps.Months)

	last := lookup.LastMonth()

	var (
		denominator, numerator int
		visitBase              int
		same, other, lost      int
		prevRet                *float64
		throughputSum          float64
		throughputMonths       int
	)

	for _, m := range ps.Months {
		monthOrders := byMonth[m]

		days := distinctDates(monthOrders)
		if days > 0 {
			perDay := float64(len(monthOrders)) / float64(days)
			throughputSum += perDay
			throughputMonths++
			ps.Productivity = append(ps.Productivity, ProductivityRow{
				Month:  m,
				Days:   days,
				Orders: len(monthOrders),
				PerDay: perDay,
			})
		}

		if m == last {
			continue
		}

		members, memberOrders := membersInOrder(monthOrders)
		ps.Trend = append(ps.Trend, trendPoint(name, m, monthOrders, members, lookup, last))

		if len(members) == 0 {
			continue
		}

		denominator += len(members)
		visitBase += len(memberOrders)

		next := AddMonths(m, 1)
		nextNext := AddMonths(m, 2)
		returned := 0

		for _, id := range members {
			styles := stylesOf(memberOrders, id)
			future := lookup.OrdersOf(next, id)

			if len(future) > 0 {
				returned++
				if designates(future, name) {
					same++
					ps.Buckets.Iron = append(ps.Buckets.Iron, styles...)
				} else {
					other++
					ps.Buckets.Easy = append(ps.Buckets.Easy, styles...)
				}
			}

			if len(future) == 0 && !lookup.HasMember(nextNext, id) {
				lost++
				ps.Buckets.Lost = append(ps.Buckets.Lost, styles...)
			}
		}
		numerator += returned

		ret := float64(returned) / float64(len(members)) * 100
		if prevRet != nil {
			ps.RetentionChangeSum += ret - *prevRet
		}
		prevRet = &ret
	}

	if denominator > 0 {
		ps.PooledRetention = float64(numerator) / float64(denominator) * 100
	}
	if throughputMonths > 0 {
		ps.AvgDailyThroughput = throughputSum / float64(throughputMonths)
	}
	if visitBase == 0 {
		visitBase = 1
	}
	ps.Segments = Segments{
		SameDesignation:  float64(same) / float64(visitBase) * 100,
		OtherDesignation: float64(other) / float64(visitBase) * 100,
		Lost:             float64(lost) / float64(visitBase) * 100,
	}

	// newest first
	for i, j := 0, len(ps.Productivity)-1; i < j; i, j = i+1, j-1 {
		ps.Productivity[i], ps.Productivity[j] = ps.Productivity[j], ps.Productivity[i]
	}

	return ps
}

func trendPoint(name, month string, orders []schema.Transaction, members []string, lookup *Lookup, last string) TrendPoint {
	tp := TrendPoint{Month: month}
	for _, o := range orders {
		if o.IsDesignated() {
			tp.Designations++
		}
	}

	next := AddMonths(month, 1)
	nextNext := AddMonths(month, 2)
	hasHorizon := !beyondHorizon(month, 2, last)

	if len(members) == 0 {
		if hasHorizon {
			zero := 0.0
			tp.Lost = &zero
		}
		return tp
	}

	var returned, designated, lost int
	for _, id := range members {
		if lookup.HasMember(next, id) {
			returned++
			if designates(lookup.OrdersOf(next, id), name) {
				designated++
			}
		} else if !lookup.HasMember(nextNext, id) {
			lost++
		}
	}

	n := float64(len(members))
	tp.Retention = float64(returned) / n * 100
	tp.DesignatedReturn = float64(designated) / n * 100
	if hasHorizon {
		rate := float64(lost) / n * 100
		tp.Lost = &rate
	}
	return tp
}

// membersInOrder returns the distinct non-guest members of orders in order of
// first appearance, plus the member orders themselves.
func membersInOrder(orders []schema.Transaction) ([]string, []schema.Transaction) {
	seen := make(map[string]struct{})
	var ids []string
	var memberOrders []schema.Transaction
	for _, o := range orders {
		if o.IsGuest() {
			continue
		}
		memberOrders = append(memberOrders, o)
		if _, ok := seen[o.MemberID]; !ok {
			seen[o.MemberID] = struct{}{}
			ids = append(ids, o.MemberID)
		}
	}
	return ids, memberOrders
}

func stylesOf(orders []schema.Transaction, id string) []string {
	var styles []string
	for _, o := range orders {
		if o.MemberID == id {
			styles = append(styles, o.StyleText)
		}
	}
	return styles
}

func designates(orders []schema.Transaction, provider string) bool {
	for _, o := range orders {
		if o.DesignatedProvider == provider {
			return true
		}
	}
	return false
}

func distinctDates(orders []schema.Transaction) int {
	days := make(map[string]struct{})
	for _, o := range orders {
		days[o.Date] = struct{}{}
	}
	return len(days)
}

// lastStore is the store of the chronologically last order; later rows win ties.
func lastStore(orders []schema.Transaction) string {
	if len(orders) == 0 {
		return schema.Unlabeled
	}
	last := orders[0]
	for _, o := range orders[1:] {
		if !o.VisitTime.Before(last.VisitTime) {
			last = o
		}
	}
	if last.Store == "" {
		return schema.Unlabeled
	}
	return last.Store
}

// GlobalAverages are the brand-wide reference values providers are compared against.
type GlobalAverages struct {
	Retention       float64 `json:"retention"`
	Throughput      float64 `json:"throughput"`
	Duration        float64 `json:"duration"`
	DesignationRate float64 `json:"designationRate"`
}

// Defaults used when no provider contributes a value.
const (
	defaultThroughput = 10
	defaultDuration   = 45
)

// Averages derives the reference values from a cohort and its providers.
func Averages(cohort Cohort, providers []ProviderStats) GlobalAverages {
	g := GlobalAverages{
		Retention:  cohort.AvgRetention,
		Throughput: defaultThroughput,
		Duration:   defaultDuration,
	}

	var tpSum, durSum float64
	var tpCount, durCount, designated, orders int
	for _, p := range providers {
		if p.AvgDailyThroughput > 0 {
			tpSum += p.AvgDailyThroughput
			tpCount++
		}
		durSum += p.AvgDurationMinutes * float64(p.DurationSamples)
		durCount += p.DurationSamples
		designated += p.DesignatedOrders
		orders += p.TotalOrders
	}

	if tpCount > 0 {
		g.Throughput = tpSum / float64(tpCount)
	}
	if durCount > 0 {
		g.Duration = durSum / float64(durCount)
	}
	if orders > 0 {
		g.DesignationRate = float64(designated) / float64(orders) * 100
	}
	return g
}
