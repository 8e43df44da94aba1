package engine

import (
	"strings"

	"github.com/sahilm/fuzzy"
)

// memberSearchItems implements fuzzy.Source over member name and id.
type memberSearchItems []MemberStatus

func (items memberSearchItems) Len() int {
	return len(items)
}

func (items memberSearchItems) String(i int) string {
	return strings.ToLower(items[i].Name + " " + items[i].MemberID)
}

// SearchMembers returns the members whose name or id matches query, best
// match first. An empty query returns statuses unchanged.
func SearchMembers(statuses []MemberStatus, query string) []MemberStatus {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return statuses
	}

	items := memberSearchItems(statuses)
	matches := fuzzy.FindFrom(query, items)

	results := make([]MemberStatus, len(matches))
	for i, m := range matches {
		results[i] = items[m.Index]
	}
	return results
}
