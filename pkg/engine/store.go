package engine

import (
	"github.com/shopspring/decimal"

	"salonkpi/pkg/schema"
)

// BrandWide names the summary row covering every store.
const BrandWide = "全品牌"

// StoreSummary is the per-store operating summary.
type StoreSummary struct {
	Name              string          `json:"name"`
	IsTotal           bool            `json:"isTotal"`
	TotalOrders       int             `json:"totalOrders"`
	MemberOrders      int             `json:"memberOrders"`
	MemberRate        float64         `json:"memberRate"`
	Revenue           decimal.Decimal `json:"revenue"`
	AvgRetention      float64         `json:"avgRetention"`
	RetentionTrendSum float64         `json:"retentionTrendSum"`
}

// SummarizeStores returns the brand-wide row followed by one row per store,
// each computed over working with lookup for forward references.
func SummarizeStores(working []schema.Transaction, lookup *Lookup) []StoreSummary {
	out := []StoreSummary{summarizeStore(BrandWide, true, working, lookup)}
	for _, s := range Stores(working) {
		out = append(out, summarizeStore(s, false, ApplyFilter(working, Filter{Store: s}), lookup))
	}
	return out
}

func summarizeStore(name string, total bool, orders []schema.Transaction, lookup *Lookup) StoreSummary {
	cohort := ComputeMonthly(orders, lookup)
	ss := StoreSummary{
		Name:              name,
		IsTotal:           total,
		TotalOrders:       len(orders),
		Revenue:           decimal.Zero,
		AvgRetention:      cohort.AvgRetention,
		RetentionTrendSum: RetentionTrendSum(cohort),
	}
	for _, o := range orders {
		if !o.IsGuest() {
			ss.MemberOrders++
		}
		ss.Revenue = ss.Revenue.Add(o.Price)
	}
	if ss.TotalOrders > 0 {
		ss.MemberRate = float64(ss.MemberOrders) / float64(ss.TotalOrders) * 100
	}
	return ss
}

// RetentionTrendSum adds up month-over-month retention changes. The last
// month is left out since its retention is rarely final; pairs where either
// side is unknown are skipped.
func RetentionTrendSum(c Cohort) float64 {
	var sum float64
	for i := 1; i < len(c.Stats)-1; i++ {
		prev, curr := c.Stats[i-1].RetentionRate, c.Stats[i].RetentionRate
		if prev != nil && curr != nil {
			sum += *curr - *prev
		}
	}
	return sum
}
