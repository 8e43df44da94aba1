package engine

import (
	"sort"

	"salonkpi/pkg/schema"
	"salonkpi/pkg/style"
)

// StyleMix is the style distribution of a set of orders.
type StyleMix struct {
	Total     int               `json:"total"`
	Primary   map[string]int    `json:"primary"`
	Secondary map[string]int    `json:"secondary"`
	Trend     []MonthStyleShare `json:"trend"`
}

// MonthStyleShare is the primary-category share of one month, in percent.
type MonthStyleShare struct {
	Month   string             `json:"month"`
	Total   int                `json:"total"`
	Percent map[string]float64 `json:"percent"`
}

// ComputeStyleMix classifies every order of records. With newOnly set only
// true-new-visit orders are counted.
func ComputeStyleMix(records []schema.Transaction, newOnly bool) StyleMix {
	mix := StyleMix{
		Primary:   make(map[string]int),
		Secondary: make(map[string]int),
	}
	monthly := make(map[string]map[string]int)
	monthTotals := make(map[string]int)

	for _, rec := range records {
		if newOnly && !rec.IsTrueNewVisit {
			continue
		}
		r := style.Classify(rec.StyleText)
		mix.Total++
		mix.Primary[r.Primary]++
		mix.Secondary[r.Secondary]++

		if monthly[rec.Month] == nil {
			monthly[rec.Month] = make(map[string]int)
		}
		monthly[rec.Month][r.Primary]++
		monthTotals[rec.Month]++
	}

	months := make([]string, 0, len(monthly))
	for m := range monthly {
		months = append(months, m)
	}
	sort.Strings(months)

	for _, m := range months {
		share := MonthStyleShare{Month: m, Total: monthTotals[m], Percent: make(map[string]float64)}
		for cat, n := range monthly[m] {
			share.Percent[cat] = float64(n) / float64(monthTotals[m]) * 100
		}
		mix.Trend = append(mix.Trend, share)
	}
	return mix
}
