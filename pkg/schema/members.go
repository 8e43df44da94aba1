package schema

import (
	"strconv"
	"strings"
	"time"
)

// Header aliases of the member-history export, in priority order.
var (
	memberIDHeaders = []string{"會員帳號", "Member ID", "手機", "Phone"}
	visitHeaders    = []string{"剪髮次數", "消費次數", "累積消費次數", "Total Visits", "Count"}
	birthdayHeaders = []string{"生日", "Birthday"}
)

// ImportStats summarizes a member import.
type ImportStats struct {
	Rows       int `json:"rows"`
	Members    int `json:"members"`
	WithVisits int `json:"withVisits"`
	WithAge    int `json:"withAge"`
}

// NormalizeMemberImport converts member-history rows into imports keyed by the
// normalized member id. referenceYear is the year ages are computed against.
// Rows without an id, or carrying GuestID or one of the export's own guest
// placeholders, are skipped; a later row for the same id replaces an earlier one.
func NormalizeMemberImport(rows []map[string]string, referenceYear int, guestIDs ...string) (map[string]MemberImport, ImportStats) {
	stats := ImportStats{Rows: len(rows)}
	result := make(map[string]MemberImport)

	guests := map[string]struct{}{GuestID: {}}
	for _, g := range guestIDs {
		if g = NormalizeID(g); g != "" {
			guests[g] = struct{}{}
		}
	}

	for _, row := range rows {
		id := NormalizeID(firstValue(row, memberIDHeaders))
		if _, guest := guests[id]; id == "" || guest {
			continue
		}

		imp := MemberImport{
			MemberID:         id,
			HistoricalVisits: parseCount(firstValue(row, visitHeaders)),
		}
		if born, ok := parseBirthday(firstValue(row, birthdayHeaders)); ok {
			age := referenceYear - born.Year()
			imp.AgeYears = &age
		}

		result[id] = imp
	}

	for _, imp := range result {
		if imp.HistoricalVisits > 0 {
			stats.WithVisits++
		}
		if imp.AgeYears != nil {
			stats.WithAge++
		}
	}
	stats.Members = len(result)

	return result, stats
}

// firstValue returns the first non-empty value among the given headers.
func firstValue(row map[string]string, headers []string) string {
	for _, h := range headers {
		if v := strings.TrimSpace(row[h]); v != "" {
			return v
		}
	}
	return ""
}

// parseCount reads the leading integer of s; anything unreadable, out of
// range or negative is 0.
func parseCount(s string) int {
	m := leadingNumberRe.FindStringSubmatch(s)
	if m == nil {
		return 0
	}
	whole, _, _ := strings.Cut(m[1], ".")
	n, err := strconv.Atoi(whole)
	if err != nil || n < 0 {
		return 0
	}
	return n
}

func parseBirthday(raw string) (time.Time, bool) {
	if raw == "" {
		return time.Time{}, false
	}
	return parseTimestamp(raw, time.UTC)
}
