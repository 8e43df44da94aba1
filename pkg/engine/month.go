package engine

import (
	"fmt"
	"strconv"
	"strings"
)

// Month is a calendar month decomposed into integers so forward references
// roll the year correctly.
type Month struct {
	Year  int
	Month int
}

// ParseMonth reads a "YYYY-MM" key.
func ParseMonth(key string) (Month, error) {
	y, m, ok := strings.Cut(key, "-")
	if !ok {
		return Month{}, fmt.Errorf("invalid month key %q", key)
	}
	year, err := strconv.Atoi(y)
	if err != nil {
		return Month{}, fmt.Errorf("invalid month key %q: %w", key, err)
	}
	month, err := strconv.Atoi(m)
	if err != nil {
		return Month{}, fmt.Errorf("invalid month key %q: %w", key, err)
	}
	if month < 1 || month > 12 {
		return Month{}, fmt.Errorf("invalid month key %q: month out of range", key)
	}
	return Month{Year: year, Month: month}, nil
}

// Key formats the month as "YYYY-MM".
func (m Month) Key() string {
	return fmt.Sprintf("%04d-%02d", m.Year, m.Month)
}

// Add moves the month n steps forward (or back when n is negative).
func (m Month) Add(n int) Month {
	idx := m.Year*12 + (m.Month - 1) + n
	year := idx / 12
	month := idx%12 + 1
	if idx < 0 && idx%12 != 0 {
		year--
		month = idx%12 + 13
	}
	return Month{Year: year, Month: month}
}

// Next is Add(1).
func (m Month) Next() Month {
	return m.Add(1)
}

// AddMonths shifts a month key by n; it returns "" when key is not a month.
func AddMonths(key string, n int) string {
	m, err := ParseMonth(key)
	if err != nil {
		return ""
	}
	return m.Add(n).Key()
}

// beyondHorizon reports whether month+n lies after last. An unknown horizon
// is treated as exceeded.
func beyondHorizon(month string, n int, last string) bool {
	target := AddMonths(month, n)
	return target == "" || last == "" || target > last
}
