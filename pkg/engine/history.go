package engine

import (
	"sort"

	"salonkpi/pkg/schema"
	"salonkpi/pkg/style"
)

// HistoryEntry is one order of a member's history.
type HistoryEntry struct {
	schema.Transaction
	Style style.Result `json:"style"`
}

// MemberHistory returns every order of id, newest first.
func MemberHistory(records []schema.Transaction, id string) []HistoryEntry {
	var out []HistoryEntry
	for _, rec := range records {
		if rec.MemberID != id || rec.IsGuest() {
			continue
		}
		out = append(out, HistoryEntry{Transaction: rec, Style: style.Classify(rec.StyleText)})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].VisitTime.After(out[j].VisitTime)
	})
	return out
}
