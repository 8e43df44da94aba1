package engine

import "salonkpi/pkg/schema"

// AgeRanges are the age buckets in display order.
var AgeRanges = []string{"<18", "18-24", "25-34", "35-44", "45-54", "55+"}

// AgeDistribution counts members per age range, grouped by last store.
type AgeDistribution struct {
	Ranges []string                  `json:"ranges"`
	Stores map[string]map[string]int `json:"stores"`
	Totals map[string]int            `json:"totals"` // members with a known age per store
}

// AgeRange returns the bucket of age.
func AgeRange(age int) string {
	switch {
	case age < 18:
		return "<18"
	case age <= 24:
		return "18-24"
	case age <= 34:
		return "25-34"
	case age <= 44:
		return "35-44"
	case age <= 54:
		return "45-54"
	default:
		return "55+"
	}
}

// ComputeAgeDistribution buckets every member of statuses with a known,
// non-zero age in imports.
func ComputeAgeDistribution(statuses []MemberStatus, imports map[string]schema.MemberImport) AgeDistribution {
	ad := AgeDistribution{
		Ranges: append([]string(nil), AgeRanges...),
		Stores: make(map[string]map[string]int),
		Totals: make(map[string]int),
	}
	for _, s := range statuses {
		imp, ok := imports[s.MemberID]
		if !ok || imp.AgeYears == nil || *imp.AgeYears == 0 {
			continue
		}
		store := orUnlabeled(s.LastStore)
		if ad.Stores[store] == nil {
			ad.Stores[store] = make(map[string]int, len(AgeRanges))
			for _, r := range AgeRanges {
				ad.Stores[store][r] = 0
			}
		}
		ad.Stores[store][AgeRange(*imp.AgeYears)]++
		ad.Totals[store]++
	}
	return ad
}

// Percent returns the share of rng within store.
func (ad AgeDistribution) Percent(store, rng string) float64 {
	total := ad.Totals[store]
	if total == 0 {
		return 0
	}
	return float64(ad.Stores[store][rng]) / float64(total) * 100
}
