package engine

import (
	"fmt"
	"time"

	"salonkpi/pkg/schema"
)

// HourlyScope restricts the hourly profile to weekdays or weekends.
type HourlyScope string

const (
	ScopeAll     HourlyScope = "all"
	ScopeWeekday HourlyScope = "weekday"
	ScopeWeekend HourlyScope = "weekend"
)

// ParseHourlyScope accepts "all", "weekday" and "weekend"; "" means all.
func ParseHourlyScope(s string) (HourlyScope, error) {
	switch HourlyScope(s) {
	case "", ScopeAll:
		return ScopeAll, nil
	case ScopeWeekday, ScopeWeekend:
		return HourlyScope(s), nil
	}
	return "", fmt.Errorf("unknown hourly scope %q", s)
}

// Opening hours covered by the profile, inclusive.
const (
	FirstHour = 10
	LastHour  = 21
)

// Longest duration, exclusive, counted by the hourly profile.
const maxHourlyDuration = 600

// HourlyStats is the average traffic per opening hour.
type HourlyStats struct {
	Scope              HourlyScope `json:"scope"`
	Days               int         `json:"days"`
	Hours              []int       `json:"hours"`
	EntryAvg           []float64   `json:"entryAvg"`
	CompletionAvg      []float64   `json:"completionAvg"`
	AvgDuration        float64     `json:"avgDuration"`
	AvgLastServiceMins float64     `json:"avgLastServiceMinutes"`
}

// HourlyProfile averages entries and completions per opening hour over the
// distinct days of records. Weekday and weekend scopes use the entry time and
// drop orders without one.
func HourlyProfile(records []schema.Transaction, scope HourlyScope) HourlyStats {
	n := LastHour - FirstHour + 1
	hs := HourlyStats{
		Scope:         scope,
		Hours:         make([]int, n),
		EntryAvg:      make([]float64, n),
		CompletionAvg: make([]float64, n),
	}
	for i := range hs.Hours {
		hs.Hours[i] = FirstHour + i
	}

	var selected []schema.Transaction
	for _, rec := range records {
		if inScope(rec, scope) {
			selected = append(selected, rec)
		}
	}

	days := distinctDates(selected)
	hs.Days = days
	if days == 0 {
		days = 1
	}

	entries := make([]int, n)
	completions := make([]int, n)
	var durSum float64
	var durCount int
	byDay := make(map[string][]schema.Transaction)

	for _, rec := range selected {
		if !rec.EntryTime.IsZero() {
			if h := rec.EntryTime.Hour(); h >= FirstHour && h <= LastHour {
				entries[h-FirstHour]++
			}
		}
		if !rec.CompletionTime.IsZero() {
			if h := rec.CompletionTime.Hour(); h >= FirstHour && h <= LastHour {
				completions[h-FirstHour]++
			}
		}
		if rec.DurationMinutes > 0 && rec.DurationMinutes < maxHourlyDuration {
			durSum += rec.DurationMinutes
			durCount++
		}
		byDay[rec.Date] = append(byDay[rec.Date], rec)
	}

	for i := 0; i < n; i++ {
		hs.EntryAvg[i] = float64(entries[i]) / float64(days)
		hs.CompletionAvg[i] = float64(completions[i]) / float64(days)
	}
	if durCount > 0 {
		hs.AvgDuration = durSum / float64(durCount)
	}

	var lastSum float64
	var lastDays int
	for _, orders := range byDay {
		var last *schema.Transaction
		for i := range orders {
			o := &orders[i]
			if o.CompletionTime.IsZero() || o.DurationMinutes <= 0 {
				continue
			}
			if last == nil || o.CompletionTime.After(last.CompletionTime) {
				last = o
			}
		}
		if last != nil {
			lastSum += last.DurationMinutes
			lastDays++
		}
	}
	if lastDays > 0 {
		hs.AvgLastServiceMins = lastSum / float64(lastDays)
	}

	return hs
}

func inScope(rec schema.Transaction, scope HourlyScope) bool {
	switch scope {
	case ScopeWeekday, ScopeWeekend:
		if rec.EntryTime.IsZero() {
			return false
		}
		wd := rec.EntryTime.Weekday()
		weekend := wd == time.Saturday || wd == time.Sunday
		return weekend == (scope == ScopeWeekend)
	}
	return true
}
