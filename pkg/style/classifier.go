// Package style maps free-text service descriptions onto the primary (top)
// and secondary (side) haircut taxonomies.
package style

import (
	"strings"

	"golang.org/x/text/width"
)

const (
	// Other is the catch-all category on both axes.
	Other = "其他"
	// NoData is reported as the top category of an empty bucket.
	NoData = "無數據"
)

// Rule assigns Category to any text containing one of Keywords.
type Rule struct {
	Category string
	Keywords []string
}

// Result is the classification of one description.
type Result struct {
	Primary   string `json:"primary"`
	Secondary string `json:"secondary"`
}

// Rules are evaluated top to bottom; the first matching rule wins per axis.
var (
	primaryRules = []Rule{
		{Category: "油頭", Keywords: []string{"油頭", "pompadour", "all back", "後梳", "側分", "七三", "二八", "紳士", "西裝", "undercut"}},
		{Category: "寸頭", Keywords: []string{"寸頭", "buzz", "光頭", "平頭", "圓頭"}},
		{Category: "凱薩頭", Keywords: []string{"凱薩", "caesar", "栗子"}},
		{Category: "飛機頭", Keywords: []string{"飛機", "quiff", "短飛機", "上抓"}},
		{Category: "韓系中分", Keywords: []string{"中分", "韓式", "逗號"}},
		{Category: "瀏海造型", Keywords: []string{"瀏海", "fringe", "丹迪", "前拉", "馬桶蓋", "厚重"}},
	}
	secondaryRules = []Rule{
		{Category: "自然順推", Keywords: []string{"推", "順推", "自然", "修邊"}},
		{Category: "區域漸層", Keywords: []string{"區域", "drop", "low", "taper"}},
		{Category: "中漸層", Keywords: []string{"中漸層", "mid"}},
		{Category: "高漸層", Keywords: []string{"高漸層", "high", "漸層", "fade"}},
	}
)

// Classify returns the primary and secondary category of text. Matching is a
// case-insensitive substring test after full-width characters are folded.
// Empty text is (Other, Other).
func Classify(text string) Result {
	if text == "" {
		return Result{Primary: Other, Secondary: Other}
	}
	folded := strings.ToLower(width.Fold.String(text))
	return Result{
		Primary:   match(primaryRules, folded),
		Secondary: match(secondaryRules, folded),
	}
}

func match(rules []Rule, text string) string {
	for _, r := range rules {
		for _, k := range r.Keywords {
			if strings.Contains(text, k) {
				return r.Category
			}
		}
	}
	return Other
}

// Rules returns copies of the primary and secondary rule tables.
func Rules() (primary, secondary []Rule) {
	return cloneRules(primaryRules), cloneRules(secondaryRules)
}

// PrimaryCategories lists the primary categories in declaration order, without Other.
func PrimaryCategories() []string {
	return categories(primaryRules)
}

// SecondaryCategories lists the secondary categories in declaration order, without Other.
func SecondaryCategories() []string {
	return categories(secondaryRules)
}

func categories(rules []Rule) []string {
	out := make([]string, len(rules))
	for i, r := range rules {
		out[i] = r.Category
	}
	return out
}

func cloneRules(rules []Rule) []Rule {
	out := make([]Rule, len(rules))
	for i, r := range rules {
		out[i] = Rule{Category: r.Category, Keywords: append([]string(nil), r.Keywords...)}
	}
	return out
}
