package engine

import (
	"sort"
	"time"
)

// LifecycleStatus buckets a member by days since their last visit.
type LifecycleStatus string

const (
	StatusActive  LifecycleStatus = "active"
	StatusDormant LifecycleStatus = "dormant"
	StatusAtRisk  LifecycleStatus = "at-risk"
	StatusLost    LifecycleStatus = "lost"
)

// Lifecycle thresholds in days; lower bound inclusive, upper bound exclusive.
const (
	ActiveDays  = 60
	DormantDays = 120
	AtRiskDays  = 180
)

// LifecycleStatuses lists the states from most to least engaged.
var LifecycleStatuses = []LifecycleStatus{StatusActive, StatusDormant, StatusAtRisk, StatusLost}

// ParseLifecycleStatus accepts the status names used by MemberStatus.
func ParseLifecycleStatus(s string) (LifecycleStatus, bool) {
	for _, st := range LifecycleStatuses {
		if string(st) == s {
			return st, true
		}
	}
	return "", false
}

// ClassifyLifecycle maps days since the last visit onto a lifecycle state:
//   - < 60  active
//   - < 120 dormant
//   - < 180 at-risk
//   - otherwise lost
func ClassifyLifecycle(daysSince float64) LifecycleStatus {
	switch {
	case daysSince < ActiveDays:
		return StatusActive
	case daysSince < DormantDays:
		return StatusDormant
	case daysSince < AtRiskDays:
		return StatusAtRisk
	default:
		return StatusLost
	}
}

// MemberStatus is the lifecycle row of one member.
type MemberStatus struct {
	MemberID   string          `json:"memberId"`
	Name       string          `json:"name"`
	OrderCount int             `json:"orderCount"`
	Visits     int             `json:"visits"`
	LastVisit  time.Time       `json:"lastVisit"`
	LastStore  string          `json:"lastStore"`
	DaysSince  float64         `json:"daysSince"`
	Status     LifecycleStatus `json:"status"`
}

// MemberStatuses classifies every profile against latest, the dataset's
// largest VisitTime. Rows are sorted by most recent visit, then member id.
func MemberStatuses(profiles map[string]MemberProfile, latest time.Time) []MemberStatus {
	out := make([]MemberStatus, 0, len(profiles))
	for _, p := range profiles {
		days := daysBetween(p.LastVisit, latest)
		out = append(out, MemberStatus{
			MemberID:   p.MemberID,
			Name:       p.Name,
			OrderCount: p.OrderCount,
			Visits:     p.TotalVisits,
			LastVisit:  p.LastVisit,
			LastStore:  p.LastStore,
			DaysSince:  days,
			Status:     ClassifyLifecycle(days),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].LastVisit.Equal(out[j].LastVisit) {
			return out[i].LastVisit.After(out[j].LastVisit)
		}
		return out[i].MemberID < out[j].MemberID
	})
	return out
}

// CountStatuses tallies statuses; every state is present in the result.
func CountStatuses(statuses []MemberStatus) map[LifecycleStatus]int {
	counts := make(map[LifecycleStatus]int, len(LifecycleStatuses))
	for _, st := range LifecycleStatuses {
		counts[st] = 0
	}
	for _, s := range statuses {
		counts[s.Status]++
	}
	return counts
}

// FilterStatus keeps the rows in status.
func FilterStatus(statuses []MemberStatus, status LifecycleStatus) []MemberStatus {
	var out []MemberStatus
	for _, s := range statuses {
		if s.Status == status {
			out = append(out, s)
		}
	}
	return out
}

func daysBetween(from, to time.Time) float64 {
	return to.Sub(from).Hours() / 24
}
