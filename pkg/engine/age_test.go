package engine

import (
	"testing"

	"salonkpi/pkg/schema"
)

func TestAgeRange(t *testing.T) {
	tests := map[int]string{
		-3: "<18", 17: "<18", 18: "18-24", 24: "18-24", 25: "25-34",
		34: "25-34", 35: "35-44", 45: "45-54", 54: "45-54", 55: "55+", 90: "55+",
	}
	for age, want := range tests {
		if got := AgeRange(age); got != want {
			t.Errorf("AgeRange(%d) = %q, want %q", age, got, want)
		}
	}
}

func TestComputeAgeDistribution(t *testing.T) {
	age := func(n int) *int { return &n }
	statuses := []MemberStatus{
		{MemberID: "m1", LastStore: storeXinyi},
		{MemberID: "m2", LastStore: storeXinyi},
		{MemberID: "m3", LastStore: ""},
		{MemberID: "m4", LastStore: storeDaan},
		{MemberID: "m5", LastStore: storeDaan},
	}
	imports := map[string]schema.MemberImport{
		"m1": {MemberID: "m1", AgeYears: age(20)},
		"m2": {MemberID: "m2", AgeYears: age(60)},
		"m3": {MemberID: "m3", AgeYears: age(30)},
		"m4": {MemberID: "m4", AgeYears: age(0)},
		"m5": {MemberID: "m5"},
	}

	ad := ComputeAgeDistribution(statuses, imports)
	if ad.Totals[storeXinyi] != 2 || ad.Stores[storeXinyi]["18-24"] != 1 || ad.Stores[storeXinyi]["55+"] != 1 {
		t.Fatalf("信義店 = %v (total %d)", ad.Stores[storeXinyi], ad.Totals[storeXinyi])
	}
	if ad.Stores[schema.Unlabeled]["25-34"] != 1 {
		t.Fatalf("missing store must be unlabeled: %v", ad.Stores)
	}
	if _, ok := ad.Stores[storeDaan]; ok {
		t.Fatal("unknown or zero ages must be skipped")
	}
	if !approx(ad.Percent(storeXinyi, "55+"), 50) || ad.Percent(storeDaan, "55+") != 0 {
		t.Fatal("Percent mismatch")
	}
}
