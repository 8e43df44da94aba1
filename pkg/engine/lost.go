package engine

import (
	"fmt"
	"sort"
	"time"

	"salonkpi/pkg/schema"
	"salonkpi/pkg/style"
)

// LostWindow is how long a member must have been away to count as lost.
const LostWindow = 60 * 24 * time.Hour

// LostCohortKind selects which members the lost profiler looks at.
type LostCohortKind string

const (
	// CohortOneTimeDrop are true new customers who visited once and never came back.
	CohortOneTimeDrop LostCohortKind = "onetime"
	// CohortGeneralChurn are members whose last visit is older than LostWindow.
	CohortGeneralChurn LostCohortKind = "churn"
)

// ParseLostCohortKind accepts "onetime" and "churn".
func ParseLostCohortKind(s string) (LostCohortKind, error) {
	switch LostCohortKind(s) {
	case CohortOneTimeDrop, CohortGeneralChurn:
		return LostCohortKind(s), nil
	}
	return "", fmt.Errorf("unknown lost cohort %q (want %q or %q)", s, CohortOneTimeDrop, CohortGeneralChurn)
}

// Share is one ranked entry of a frequency table.
type Share struct {
	Key     string  `json:"key"`
	Count   int     `json:"count"`
	Percent float64 `json:"percent"`
}

// LostProfile aggregates the last visit of every member of a lost cohort.
type LostProfile struct {
	Kind      LostCohortKind            `json:"kind"`
	Total     int                       `json:"total"`
	Threshold time.Time                 `json:"threshold"`
	Members   []string                  `json:"members"`
	Primary   map[string]int            `json:"primary"`
	Secondary map[string]int            `json:"secondary"`
	Providers map[string]map[string]int `json:"providers"` // store -> provider -> count
}

// ProfileLost selects the cohort of kind from profiles and aggregates the
// style and provider of each member's last record. ok is false when the
// cohort is empty.
func ProfileLost(records []schema.Transaction, profiles map[string]MemberProfile, kind LostCohortKind) (*LostProfile, bool) {
	var latest time.Time
	for _, rec := range records {
		if rec.VisitTime.After(latest) {
			latest = rec.VisitTime
		}
	}
	if latest.IsZero() {
		return nil, false
	}
	threshold := latest.Add(-LostWindow)

	cohort := make(map[string]struct{})
	for id, p := range profiles {
		if inLostCohort(p, kind, threshold) {
			cohort[id] = struct{}{}
		}
	}
	if len(cohort) == 0 {
		return nil, false
	}

	last := make(map[string]schema.Transaction, len(cohort))
	for _, rec := range records {
		if _, ok := cohort[rec.MemberID]; !ok {
			continue
		}
		if prev, seen := last[rec.MemberID]; !seen || rec.VisitTime.After(prev.VisitTime) {
			last[rec.MemberID] = rec
		}
	}

	lp := &LostProfile{
		Kind:      kind,
		Threshold: threshold,
		Primary:   make(map[string]int),
		Secondary: make(map[string]int),
		Providers: make(map[string]map[string]int),
	}
	for id, rec := range last {
		lp.Members = append(lp.Members, id)

		cls := style.Classify(rec.StyleText)
		lp.Primary[cls.Primary]++
		lp.Secondary[cls.Secondary]++

		store := orUnlabeled(rec.Store)
		if lp.Providers[store] == nil {
			lp.Providers[store] = make(map[string]int)
		}
		lp.Providers[store][orUnlabeled(rec.Provider)]++
	}
	sort.Strings(lp.Members)
	lp.Total = len(lp.Members)

	if lp.Total == 0 {
		return nil, false
	}
	return lp, true
}

func inLostCohort(p MemberProfile, kind LostCohortKind, threshold time.Time) bool {
	switch kind {
	case CohortOneTimeDrop:
		return p.FirstVisit.Before(threshold) && p.IsTrueNewCustomer && p.TotalVisits == 1
	case CohortGeneralChurn:
		return p.LastVisit.Before(threshold)
	}
	return false
}

// TopPrimary returns the n most frequent primary categories.
func (lp *LostProfile) TopPrimary(n int) []Share {
	return rankShares(lp.Primary, lp.Total, n)
}

// TopSecondary returns the n most frequent secondary categories.
func (lp *LostProfile) TopSecondary(n int) []Share {
	return rankShares(lp.Secondary, lp.Total, n)
}

// TopProviders returns the n most frequent providers of store. Percentages
// are relative to the store's own total.
func (lp *LostProfile) TopProviders(store string, n int) []Share {
	counts := lp.Providers[store]
	total := 0
	for _, c := range counts {
		total += c
	}
	return rankShares(counts, total, n)
}

// Stores lists the stores present in the cohort.
func (lp *LostProfile) Stores() []string {
	stores := make([]string, 0, len(lp.Providers))
	for s := range lp.Providers {
		stores = append(stores, s)
	}
	sort.Strings(stores)
	return stores
}

// rankShares sorts counts by count desc then key and keeps the first n
// (all when n <= 0).
func rankShares(counts map[string]int, total, n int) []Share {
	out := make([]Share, 0, len(counts))
	for k, c := range counts {
		s := Share{Key: k, Count: c}
		if total > 0 {
			s.Percent = float64(c) / float64(total) * 100
		}
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Key < out[j].Key
	})
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

func orUnlabeled(s string) string {
	if s == "" {
		return schema.Unlabeled
	}
	return s
}
