package engine

import (
	"testing"

	"salonkpi/pkg/schema"
)

func TestHourlyProfile(t *testing.T) {
	records := []schema.Transaction{
		// Saturday
		tx("m1", "2024-06-01").entered("10:15").completed("10:50").minutes(35).build(),
		tx("m2", "2024-06-01").entered("20:00").completed("21:30").minutes(90).build(),
		// Monday
		tx("m3", "2024-06-03").entered("10:40").completed("11:10").minutes(30).build(),
		tx("m4", "2024-06-03").entered("09:00").completed("22:00").minutes(700).build(),
		tx("m5", "2024-06-03").minutes(20).build(),
	}

	all := HourlyProfile(records, ScopeAll)
	if all.Days != 2 || len(all.Hours) != 12 || all.Hours[0] != 10 || all.Hours[11] != 21 {
		t.Fatalf("profile shape = %+v", all)
	}
	if !approx(all.EntryAvg[0], 1) { // 10:15 and 10:40 over two days
		t.Errorf("EntryAvg[10] = %v, want 1", all.EntryAvg[0])
	}
	if !approx(all.CompletionAvg[11], 0.5) {
		t.Errorf("CompletionAvg[21] = %v, want 0.5", all.CompletionAvg[11])
	}
	if !approx(all.AvgDuration, 175.0/4) {
		t.Errorf("AvgDuration = %v, want 43.75", all.AvgDuration)
	}
	// last service: 90 on Saturday, 700 (22:00) on Monday
	if !approx(all.AvgLastServiceMins, 395) {
		t.Errorf("AvgLastServiceMins = %v, want 395", all.AvgLastServiceMins)
	}

	weekend := HourlyProfile(records, ScopeWeekend)
	if weekend.Days != 1 || !approx(weekend.EntryAvg[0], 1) {
		t.Errorf("weekend = %+v", weekend)
	}
	weekday := HourlyProfile(records, ScopeWeekday)
	if weekday.Days != 1 || !approx(weekday.AvgDuration, 30) {
		t.Errorf("weekday = %+v, orders without entry time must be dropped", weekday)
	}
}

func TestParseHourlyScope(t *testing.T) {
	if s, err := ParseHourlyScope(""); err != nil || s != ScopeAll {
		t.Fatalf("ParseHourlyScope(\"\") = %q, %v", s, err)
	}
	if _, err := ParseHourlyScope("holiday"); err == nil {
		t.Fatal("expected an error")
	}
}
