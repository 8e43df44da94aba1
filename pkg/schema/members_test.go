package schema

import "testing"

func TestNormalizeMemberImport(t *testing.T) {
	rows := []map[string]string{
		{"會員帳號": " 0912 ", "剪髮次數": "3", "生日": "1990/05/01"},
		{"Member ID": "m2", "消費次數": "", "累積消費次數": "7次"},
		{"手機": "0933", "Count": "-2", "Birthday": "not a date"},
		{"會員帳號": "訪客", "剪髮次數": "9"},
		{"剪髮次數": "4"},
	}

	got, stats := NormalizeMemberImport(rows, 2024)

	if len(got) != 3 {
		t.Fatalf("got %d members, want 3: %+v", len(got), got)
	}
	want := ImportStats{Rows: 5, Members: 3, WithVisits: 2, WithAge: 1}
	if stats != want {
		t.Fatalf("stats = %+v, want %+v", stats, want)
	}

	first := got["0912"]
	if first.HistoricalVisits != 3 {
		t.Errorf("HistoricalVisits = %d, want 3", first.HistoricalVisits)
	}
	if first.AgeYears == nil || *first.AgeYears != 34 {
		t.Errorf("AgeYears = %v, want 34", first.AgeYears)
	}
	if got["m2"].HistoricalVisits != 7 {
		t.Errorf("m2 visits = %d, want 7 from the first non-empty alias", got["m2"].HistoricalVisits)
	}
	if got["0933"].HistoricalVisits != 0 || got["0933"].AgeYears != nil {
		t.Errorf("0933 = %+v, want zero visits and no age", got["0933"])
	}
	if _, ok := got[GuestID]; ok {
		t.Error("guest id must never be imported")
	}
}

func TestNormalizeMemberImport_ExportGuestID(t *testing.T) {
	rows := []map[string]string{
		{"會員帳號": "walkin", "剪髮次數": "3"},
		{"會員帳號": "m1", "剪髮次數": "2"},
	}
	got, _ := NormalizeMemberImport(rows, 2024, "walkin")
	if _, ok := got["walkin"]; ok || len(got) != 1 {
		t.Fatalf("got %+v, want only m1", got)
	}
}

func TestParseCount(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"12", 12},
		{"7次", 7},
		{"+4", 4},
		{"3.9", 3},
		{"-2", 0},
		{"", 0},
		{"abc", 0},
		{"99999999999999999999999", 0},
	}
	for _, tt := range tests {
		if got := parseCount(tt.in); got != tt.want {
			t.Errorf("parseCount(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}
