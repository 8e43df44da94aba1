package engine

import (
	"time"

	"salonkpi/pkg/schema"
)

// MemberProfile summarizes one member over the entire dataset.
type MemberProfile struct {
	MemberID          string    `json:"memberId"`
	Name              string    `json:"name"`
	TotalVisits       int       `json:"totalVisits"` // distinct VisitTime values
	OrderCount        int       `json:"orderCount"`
	FirstStore        string    `json:"firstStore"`
	LastStore         string    `json:"lastStore"`
	FirstVisit        time.Time `json:"firstVisit"`
	LastVisit         time.Time `json:"lastVisit"`
	IsTrueNewCustomer bool      `json:"isTrueNewCustomer"`
}

// BuildProfiles builds a profile for every non-guest member of the enriched
// dataset. Stores are taken from the first row seen at the earliest and
// latest VisitTime respectively.
func BuildProfiles(records []schema.Transaction) map[string]MemberProfile {
	profiles := make(map[string]*MemberProfile)
	visits := make(map[string]map[time.Time]struct{})

	for _, rec := range records {
		if rec.IsGuest() {
			continue
		}
		p, ok := profiles[rec.MemberID]
		if !ok {
			name := rec.MemberName
			if name == "" {
				name = schema.AnonymousName
			}
			p = &MemberProfile{
				MemberID:   rec.MemberID,
				Name:       name,
				FirstStore: rec.Store,
				LastStore:  rec.Store,
				FirstVisit: rec.VisitTime,
				LastVisit:  rec.VisitTime,
			}
			profiles[rec.MemberID] = p
			visits[rec.MemberID] = make(map[time.Time]struct{})
		}

		p.OrderCount++
		visits[rec.MemberID][rec.VisitTime] = struct{}{}

		if rec.VisitTime.After(p.LastVisit) {
			p.LastVisit = rec.VisitTime
			p.LastStore = rec.Store
		}
		if rec.VisitTime.Before(p.FirstVisit) {
			p.FirstVisit = rec.VisitTime
			p.FirstStore = rec.Store
		}
		if rec.IsTrueNewVisit {
			p.IsTrueNewCustomer = true
		}
	}

	out := make(map[string]MemberProfile, len(profiles))
	for id, p := range profiles {
		p.TotalVisits = len(visits[id])
		out[id] = *p
	}
	return out
}
