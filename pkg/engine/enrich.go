package engine

import (
	"sort"
	"time"

	"salonkpi/pkg/schema"
)

// Enrich returns a chronologically sorted copy of records with IsTrueNewVisit
// set on the first visit of every member whose history is complete.
//
// A member's history is complete when the import carries a positive
// HistoricalVisits equal to the number of distinct VisitTime values the
// member has in records. Every row at the member's earliest VisitTime is
// flagged. records is never modified.
func Enrich(records []schema.Transaction, imports map[string]schema.MemberImport) []schema.Transaction {
	out := make([]schema.Transaction, len(records))
	copy(out, records)
	for i := range out {
		out[i].IsTrueNewVisit = false
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].VisitTime.Before(out[j].VisitTime)
	})

	if len(imports) == 0 {
		return out
	}

	byMember := make(map[string][]int)
	for i, rec := range out {
		if rec.IsGuest() {
			continue
		}
		byMember[rec.MemberID] = append(byMember[rec.MemberID], i)
	}

	for id, positions := range byMember {
		imp, ok := imports[id]
		if !ok || imp.HistoricalVisits <= 0 {
			continue
		}

		visits := make(map[time.Time]struct{}, len(positions))
		for _, p := range positions {
			visits[out[p].VisitTime] = struct{}{}
		}
		if len(visits) != imp.HistoricalVisits {
			continue
		}

		first := out[positions[0]].VisitTime
		for _, p := range positions {
			if out[p].VisitTime.Equal(first) {
				out[p].IsTrueNewVisit = true
			}
		}
	}

	return out
}
