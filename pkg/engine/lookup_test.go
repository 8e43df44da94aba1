package engine

import (
	"reflect"
	"testing"
	"time"

	"salonkpi/pkg/schema"
)

func TestBuildLookup(t *testing.T) {
	records := []schema.Transaction{
		tx("m1", "2024-02-03").style("a").build(),
		tx("m2", "2024-01-05").build(),
		tx("m1", "2024-02-20").style("b").build(),
		visit(schema.GuestID, "2024-03-01"),
	}
	l := BuildLookup(records)

	if got := l.Months(); !reflect.DeepEqual(got, []string{"2024-01", "2024-02", "2024-03"}) {
		t.Fatalf("Months() = %v", got)
	}
	if l.LastMonth() != "2024-03" {
		t.Fatalf("LastMonth() = %q", l.LastMonth())
	}
	if !l.LatestVisit().Equal(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("LatestVisit() = %v", l.LatestVisit())
	}
	if !l.HasMember("2024-02", "m1") || l.HasMember("2024-02", "m2") {
		t.Fatal("HasMember mismatch for 2024-02")
	}
	if _, ok := l.MembersIn("2024-03"); ok {
		t.Fatal("a guest-only month must have no member set")
	}
	if l.HasMember("2024-03", schema.GuestID) {
		t.Fatal("guest must never be a member")
	}

	orders := l.OrdersOf("2024-02", "m1")
	if len(orders) != 2 || orders[0].StyleText != "a" || orders[1].StyleText != "b" {
		t.Fatalf("OrdersOf() = %+v", orders)
	}
	if l.OrdersOf("2099-01", "m1") != nil {
		t.Fatal("unknown month must have no orders")
	}

	want := LookupStats{TotalOrders: 4, GuestOrders: 1, Months: 3, UniqueMember: 2}
	if l.Stats != want {
		t.Fatalf("Stats = %+v, want %+v", l.Stats, want)
	}
}

func TestBuildLookup_Empty(t *testing.T) {
	l := BuildLookup(nil)
	if l.LastMonth() != "" || len(l.Months()) != 0 {
		t.Fatalf("empty lookup = %+v", l)
	}
}
