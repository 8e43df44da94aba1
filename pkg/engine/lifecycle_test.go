package engine

import (
	"testing"
	"time"

	"salonkpi/pkg/schema"
)

func TestClassifyLifecycle(t *testing.T) {
	tests := []struct {
		days float64
		want LifecycleStatus
	}{
		{0, StatusActive},
		{59, StatusActive},
		{59.99, StatusActive},
		{60, StatusDormant},
		{119, StatusDormant},
		{120, StatusAtRisk},
		{179, StatusAtRisk},
		{180, StatusLost},
		{900, StatusLost},
	}
	for _, tt := range tests {
		if got := ClassifyLifecycle(tt.days); got != tt.want {
			t.Errorf("ClassifyLifecycle(%v) = %q, want %q", tt.days, got, tt.want)
		}
	}
}

func TestMemberStatuses(t *testing.T) {
	latest := "2024-12-31"
	end, _ := time.Parse("2006-01-02", latest)
	daysBefore := func(n int) string { return end.AddDate(0, 0, -n).Format("2006-01-02") }

	records := []schema.Transaction{
		visit("active", latest),
		tx("dormant", daysBefore(60)).at(storeDaan).build(),
		visit("atrisk", daysBefore(120)),
		visit("lost", daysBefore(180)),
		visit("edge", daysBefore(59)),
		visit(schema.GuestID, latest),
	}
	statuses := MemberStatuses(BuildProfiles(records), BuildLookup(records).LatestVisit())

	want := map[string]LifecycleStatus{
		"active":  StatusActive,
		"edge":    StatusActive,
		"dormant": StatusDormant,
		"atrisk":  StatusAtRisk,
		"lost":    StatusLost,
	}
	if len(statuses) != len(want) {
		t.Fatalf("got %d statuses, want %d", len(statuses), len(want))
	}
	for _, s := range statuses {
		if s.Status != want[s.MemberID] {
			t.Errorf("%s: status = %q, want %q", s.MemberID, s.Status, want[s.MemberID])
		}
	}
	if statuses[0].MemberID != "active" || statuses[len(statuses)-1].MemberID != "lost" {
		t.Errorf("not sorted by last visit: first=%s last=%s", statuses[0].MemberID, statuses[len(statuses)-1].MemberID)
	}
	for _, s := range statuses {
		if s.MemberID == "dormant" && (s.LastStore != storeDaan || s.Name != schema.AnonymousName) {
			t.Errorf("dormant row = %+v", s)
		}
	}

	counts := CountStatuses(statuses)
	if counts[StatusActive] != 2 || counts[StatusDormant] != 1 || counts[StatusAtRisk] != 1 || counts[StatusLost] != 1 {
		t.Errorf("CountStatuses() = %v", counts)
	}
	if got := FilterStatus(statuses, StatusActive); len(got) != 2 {
		t.Errorf("FilterStatus(active) = %d rows, want 2", len(got))
	}
}

func TestParseLifecycleStatus(t *testing.T) {
	if st, ok := ParseLifecycleStatus("at-risk"); !ok || st != StatusAtRisk {
		t.Fatalf("ParseLifecycleStatus(at-risk) = %q, %v", st, ok)
	}
	if _, ok := ParseLifecycleStatus("sleeping"); ok {
		t.Fatal("unknown status accepted")
	}
}
