package engine

import (
	"time"

	"salonkpi/pkg/schema"
)

// DashboardKPIs are the headline numbers of the overview page.
type DashboardKPIs struct {
	MemberRate    float64     `json:"memberRate"`
	TrendSum      float64     `json:"trendSum"`
	OneTimeRate   float64     `json:"oneTimeRate"`
	OneTimeValid  bool        `json:"oneTimeValid"`
	AvgLostVisits float64     `json:"avgLostVisits"`
	Stores        []StoreKPIs `json:"stores"`
}

// StoreKPIs are the dashboard numbers of one store. One-time figures follow
// the member's first store, lost figures the last store.
type StoreKPIs struct {
	Name          string  `json:"name"`
	MemberRate    float64 `json:"memberRate"`
	TrendSum      float64 `json:"trendSum"`
	OneTimeRate   float64 `json:"oneTimeRate"`
	OneTimeValid  bool    `json:"oneTimeValid"`
	AvgLostVisits float64 `json:"avgLostVisits"`
}

// Dashboard computes the overview KPIs. records is the full dataset, cohort
// the cohort of the current working set.
//
// The one-time rate is the share of mature true new customers (first visit
// more than LostWindow before the latest visit) with a single visit. Lost
// members are those whose last visit is older than LostWindow.
func Dashboard(records []schema.Transaction, cohort Cohort, profiles map[string]MemberProfile, lookup *Lookup) DashboardKPIs {
	threshold := lookup.LatestVisit().Add(-LostWindow)

	kpis := DashboardKPIs{
		MemberRate: memberRate(records),
		TrendSum:   RetentionTrendSum(cohort),
	}
	kpis.OneTimeRate, kpis.OneTimeValid = oneTimeRate(profiles, threshold, "")
	kpis.AvgLostVisits = avgLostVisits(profiles, threshold, "")

	for _, s := range Stores(records) {
		storeRecords := ApplyFilter(records, Filter{Store: s})
		sk := StoreKPIs{
			Name:       s,
			MemberRate: memberRate(storeRecords),
			TrendSum:   RetentionTrendSum(ComputeMonthly(storeRecords, lookup)),
		}
		sk.OneTimeRate, sk.OneTimeValid = oneTimeRate(profiles, threshold, s)
		sk.AvgLostVisits = avgLostVisits(profiles, threshold, s)
		kpis.Stores = append(kpis.Stores, sk)
	}
	return kpis
}

func memberRate(records []schema.Transaction) float64 {
	if len(records) == 0 {
		return 0
	}
	members := 0
	for _, r := range records {
		if !r.IsGuest() {
			members++
		}
	}
	return float64(members) / float64(len(records)) * 100
}

// oneTimeRate restricts to members whose first store is store when store is set.
func oneTimeRate(profiles map[string]MemberProfile, threshold time.Time, store string) (float64, bool) {
	var num, denom int
	for _, p := range profiles {
		if store != "" && p.FirstStore != store {
			continue
		}
		if !p.IsTrueNewCustomer || !p.FirstVisit.Before(threshold) {
			continue
		}
		denom++
		if p.TotalVisits == 1 {
			num++
		}
	}
	if denom == 0 {
		return 0, false
	}
	return float64(num) / float64(denom) * 100, true
}

// avgLostVisits restricts to members whose last store is store when store is set.
func avgLostVisits(profiles map[string]MemberProfile, threshold time.Time, store string) float64 {
	var sum, count int
	for _, p := range profiles {
		if store != "" && p.LastStore != store {
			continue
		}
		if p.LastVisit.Before(threshold) {
			sum += p.TotalVisits
			count++
		}
	}
	if count == 0 {
		return 0
	}
	return float64(sum) / float64(count)
}
