package engine

import (
	"testing"

	"github.com/shopspring/decimal"

	"salonkpi/pkg/schema"
)

func priced(b txBuilder, amount int64) schema.Transaction {
	t := b.build()
	t.Price = decimal.NewFromInt(amount)
	return t
}

func TestSummarizeStores(t *testing.T) {
	records := []schema.Transaction{
		priced(tx("m1", "2024-01-05"), 500),
		priced(tx(schema.GuestID, "2024-01-06"), 300),
		priced(tx("m1", "2024-02-05"), 500),
		priced(tx("m2", "2024-02-07").at(storeDaan), 800),
		priced(tx("m2", "2024-03-07").at(storeDaan), 800),
	}
	rows := SummarizeStores(records, BuildLookup(records))

	if len(rows) != 3 || rows[0].Name != BrandWide || !rows[0].IsTotal {
		t.Fatalf("rows = %+v", rows)
	}
	total := rows[0]
	if total.TotalOrders != 5 || total.MemberOrders != 4 || !approx(total.MemberRate, 80) {
		t.Errorf("brand-wide row = %+v", total)
	}
	if !total.Revenue.Equal(decimal.NewFromInt(2900)) {
		t.Errorf("Revenue = %s, want 2900", total.Revenue)
	}

	daan := rows[2]
	if daan.Name != storeDaan || daan.TotalOrders != 2 || !daan.Revenue.Equal(decimal.NewFromInt(1600)) {
		t.Errorf("大安店 row = %+v", daan)
	}
	if !approx(daan.AvgRetention, 100) {
		t.Errorf("大安店 AvgRetention = %v, want 100", daan.AvgRetention)
	}
}

func TestRetentionTrendSum(t *testing.T) {
	f := func(v float64) *float64 { return &v }
	c := Cohort{Stats: []MonthlyStats{
		{RetentionRate: f(50)},
		{RetentionRate: f(60)},
		{RetentionRate: nil},
		{RetentionRate: f(40)},
		{RetentionRate: f(70)},
		{RetentionRate: f(0)}, // last month is left out
	}}
	// (60-50) + skip + skip + (70-40)
	if got := RetentionTrendSum(c); !approx(got, 40) {
		t.Fatalf("RetentionTrendSum() = %v, want 40", got)
	}
	if got := RetentionTrendSum(Cohort{}); got != 0 {
		t.Fatalf("empty cohort = %v", got)
	}
}
