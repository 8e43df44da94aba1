package schema

import (
	"time"

	"github.com/shopspring/decimal"
)

// Reserved values used by the POS export.
const (
	// GuestID is the member id carried by every walk-in order after normalization.
	GuestID = "訪客"
	// CompletedStatus is the only order status kept by the normalizer.
	CompletedStatus = "完成"
	// Unlabeled replaces a missing store or provider name.
	Unlabeled = "未標註"
	// AnonymousName replaces a missing member display name.
	AnonymousName = "匿名"
)

// Canonical field names produced by header mapping.
const (
	FieldStore        = "store"
	FieldStatus       = "status"
	FieldCompleteTime = "completeTime"
	FieldCreateTime   = "createTime"
	FieldMemberID     = "memberId"
	FieldMemberName   = "memberName"
	FieldLastCutDate  = "lastCutDate"
	FieldProvider     = "barber"
	FieldDesignated   = "designatedBarber"
	FieldStyle        = "hairStyle"
	FieldPrice        = "totalPrice"
	FieldDuration     = "durationCol"
)

// Transaction is one completed service line from the POS export.
// A single visit may span several service lines that share the same VisitTime.
type Transaction struct {
	Store              string          `json:"store"`
	Provider           string          `json:"provider"`
	DesignatedProvider string          `json:"designatedProvider,omitempty"`
	StyleText          string          `json:"styleText"`
	Price              decimal.Decimal `json:"price"`
	DurationMinutes    float64         `json:"durationMinutes"`
	MemberID           string          `json:"memberId"`
	MemberName         string          `json:"memberName"`
	EntryTime          time.Time       `json:"entryTime"`
	CompletionTime     time.Time       `json:"completionTime"`

	// Derived by the normalizer.
	Date      string    `json:"date"`      // YYYY-MM-DD
	Month     string    `json:"month"`     // YYYY-MM
	VisitTime time.Time `json:"visitTime"` // Date at 00:00 UTC; identifies a visit

	// Set once by enrichment on a cloned dataset.
	IsTrueNewVisit bool `json:"isTrueNewVisit"`
}

// IsGuest reports whether the order belongs to a walk-in customer.
func (t Transaction) IsGuest() bool {
	return t.MemberID == GuestID || t.MemberID == ""
}

// IsDesignated reports whether the customer asked for a specific provider.
func (t Transaction) IsDesignated() bool {
	return t.DesignatedProvider != ""
}

// MemberImport is one row of the external member-history import.
type MemberImport struct {
	MemberID         string `json:"memberId"`
	AgeYears         *int   `json:"ageYears,omitempty"`
	HistoricalVisits int    `json:"historicalVisits"`
}
