package schema

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/unicode/norm"
)

// Options controls how raw POS rows are turned into transactions.
//
// GuestID and Unlabeled are the placeholders the export itself writes for a
// walk-in customer and a missing store or barber. Both are folded, together
// with empty values, into the canonical GuestID and Unlabeled sentinels that
// the engine recognizes.
type Options struct {
	CompletedStatus string
	GuestID         string
	Unlabeled       string
	// Location is used to read timestamps that carry no zone. Defaults to UTC.
	Location *time.Location
}

// DefaultOptions returns the sentinels used by the POS export.
func DefaultOptions() Options {
	return Options{
		CompletedStatus: CompletedStatus,
		GuestID:         GuestID,
		Unlabeled:       Unlabeled,
		Location:        time.UTC,
	}
}

// NormalizeStats summarizes what happened to the input rows.
type NormalizeStats struct {
	Total        int `json:"total"`
	Kept         int `json:"kept"`
	NotCompleted int `json:"notCompleted"`
	MissingDate  int `json:"missingDate"`
}

var (
	leadingNumberRe = regexp.MustCompile(`^\s*([+-]?\d+(?:\.\d+)?)`)
	priceNoiseRe    = regexp.MustCompile(`[,\s$NT元]`)
)

// Accepted timestamp layouts, tried in order after "/" is rewritten to "-".
var timestampLayouts = []string{
	"2006-1-2 15:04:05",
	"2006-1-2 15:04",
	"2006-1-2T15:04:05",
	time.RFC3339,
	"2006-1-2",
}

// NormalizeTransactions maps raw rows onto canonical fields and converts every
// completed order into a Transaction. Rows whose status is not completed, or
// that carry neither a completion nor a creation time, are dropped.
//
// Derivations:
//   - Date/Month come from the completion time, falling back to creation time
//   - VisitTime is the calendar date at 00:00 UTC
//   - DurationMinutes is the leading number of the duration column, else the
//     rounded minutes between creation and completion when positive
//   - empty or opts.Unlabeled store/provider become Unlabeled
//   - empty or opts.GuestID member ids become GuestID
func NormalizeTransactions(rows []map[string]string, opts Options) ([]Transaction, NormalizeStats) {
	opts = withDefaults(opts)
	mapping := InferMappings(headersOf(rows))

	stats := NormalizeStats{Total: len(rows)}
	result := make([]Transaction, 0, len(rows))

	for _, row := range rows {
		mapped := ApplyMapping(row, mapping)

		if mapped[FieldStatus] != opts.CompletedStatus {
			stats.NotCompleted++
			continue
		}

		created, hasCreated := parseTimestamp(mapped[FieldCreateTime], opts.Location)
		completed, hasCompleted := parseTimestamp(mapped[FieldCompleteTime], opts.Location)

		var day time.Time
		switch {
		case hasCompleted:
			day = completed
		case hasCreated:
			day = created
		default:
			stats.MissingDate++
			continue
		}

		visit := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)

		tx := Transaction{
			Store:              canonical(mapped[FieldStore], opts.Unlabeled, Unlabeled),
			Provider:           canonical(mapped[FieldProvider], opts.Unlabeled, Unlabeled),
			DesignatedProvider: mapped[FieldDesignated],
			StyleText:          mapped[FieldStyle],
			Price:              parsePrice(mapped[FieldPrice]),
			DurationMinutes:    parseDuration(mapped[FieldDuration], created, hasCreated, completed, hasCompleted),
			MemberID:           canonical(NormalizeID(mapped[FieldMemberID]), NormalizeID(opts.GuestID), GuestID),
			MemberName:         mapped[FieldMemberName],
			Date:               visit.Format("2006-01-02"),
			Month:              visit.Format("2006-01"),
			VisitTime:          visit,
		}
		if hasCreated {
			tx.EntryTime = created
		}
		if hasCompleted {
			tx.CompletionTime = completed
		}

		result = append(result, tx)
	}

	stats.Kept = len(result)
	return result, stats
}

// NormalizeID trims and NFKC-folds a member identifier so full-width digits
// typed at the counter match the half-width ones in the member import.
func NormalizeID(id string) string {
	return strings.TrimSpace(norm.NFKC.String(strings.TrimSpace(id)))
}

func withDefaults(opts Options) Options {
	def := DefaultOptions()
	if opts.CompletedStatus == "" {
		opts.CompletedStatus = def.CompletedStatus
	}
	if opts.GuestID == "" {
		opts.GuestID = def.GuestID
	}
	if opts.Unlabeled == "" {
		opts.Unlabeled = def.Unlabeled
	}
	if opts.Location == nil {
		opts.Location = def.Location
	}
	return opts
}

func parseTimestamp(raw string, loc *time.Location) (time.Time, bool) {
	s := strings.TrimSpace(strings.ReplaceAll(raw, "/", "-"))
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func parseDuration(raw string, created time.Time, hasCreated bool, completed time.Time, hasCompleted bool) float64 {
	if m := leadingNumberRe.FindStringSubmatch(raw); m != nil {
		if v, err := strconv.ParseFloat(m[1], 64); err == nil {
			return v
		}
	}
	if hasCreated && hasCompleted {
		if diff := completed.Sub(created); diff > 0 {
			return float64(diff.Round(time.Minute) / time.Minute)
		}
	}
	return 0
}

func parsePrice(raw string) decimal.Decimal {
	s := priceNoiseRe.ReplaceAllString(raw, "")
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// canonical maps empty values and the export's own placeholder onto sentinel.
func canonical(v, placeholder, sentinel string) string {
	if v == "" || v == placeholder {
		return sentinel
	}
	return v
}
