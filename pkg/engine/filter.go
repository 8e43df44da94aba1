package engine

import (
	"sort"
	"strings"
	"time"

	"salonkpi/pkg/schema"
)

// Filter narrows the working set. Zero fields match everything.
type Filter struct {
	Year     string `json:"year,omitempty"`
	Store    string `json:"store,omitempty"`
	Provider string `json:"provider,omitempty"`
	// RecentMonths keeps visits within that many months of the latest visit
	// of the filtered records.
	RecentMonths int `json:"recentMonths,omitempty"`
}

// IsZero reports whether f keeps every record.
func (f Filter) IsZero() bool {
	return f == Filter{}
}

// Match reports whether rec passes f.
func (f Filter) Match(rec schema.Transaction) bool {
	if f.Year != "" && !strings.HasPrefix(rec.Month, f.Year+"-") {
		return false
	}
	if f.Store != "" && rec.Store != f.Store {
		return false
	}
	if f.Provider != "" && rec.Provider != f.Provider {
		return false
	}
	return true
}

// ApplyFilter returns the records matching f, preserving order.
func ApplyFilter(records []schema.Transaction, f Filter) []schema.Transaction {
	if f.IsZero() {
		return records
	}
	out := make([]schema.Transaction, 0, len(records))
	for _, rec := range records {
		if f.Match(rec) {
			out = append(out, rec)
		}
	}
	if f.RecentMonths > 0 {
		out = recent(out, f.RecentMonths)
	}
	return out
}

// recent keeps the records on or after the latest VisitTime minus months.
func recent(records []schema.Transaction, months int) []schema.Transaction {
	var latest time.Time
	for _, rec := range records {
		if rec.VisitTime.After(latest) {
			latest = rec.VisitTime
		}
	}
	cutoff := latest.AddDate(0, -months, 0)

	out := records[:0:0]
	for _, rec := range records {
		if !rec.VisitTime.Before(cutoff) {
			out = append(out, rec)
		}
	}
	return out
}

// Years lists the years present in records, newest first.
func Years(records []schema.Transaction) []string {
	set := make(map[string]struct{})
	for _, rec := range records {
		if len(rec.Month) >= 4 {
			set[rec.Month[:4]] = struct{}{}
		}
	}
	return sortedKeys(set, true)
}

// Stores lists the stores present in records.
func Stores(records []schema.Transaction) []string {
	set := make(map[string]struct{})
	for _, rec := range records {
		set[rec.Store] = struct{}{}
	}
	return sortedKeys(set, false)
}

// Providers lists the providers present in records.
func Providers(records []schema.Transaction) []string {
	set := make(map[string]struct{})
	for _, rec := range records {
		set[rec.Provider] = struct{}{}
	}
	return sortedKeys(set, false)
}

func sortedKeys(set map[string]struct{}, desc bool) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	if desc {
		sort.Sort(sort.Reverse(sort.StringSlice(out)))
	} else {
		sort.Strings(out)
	}
	return out
}
