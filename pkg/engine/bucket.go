package engine

import "salonkpi/pkg/style"

// BucketProfile is the style make-up of one provider segment bucket.
type BucketProfile struct {
	Total        int            `json:"total"`
	Primary      map[string]int `json:"primary"`
	Secondary    map[string]int `json:"secondary"`
	TopPrimary   Share          `json:"topPrimary"`
	TopSecondary Share          `json:"topSecondary"`
}

// AnalyzeBucket classifies every style text of a bucket. The top entries
// report style.NoData when the bucket is empty; ties go to the category
// declared first.
func AnalyzeBucket(styles []string) BucketProfile {
	bp := BucketProfile{
		Total:     len(styles),
		Primary:   make(map[string]int),
		Secondary: make(map[string]int),
	}
	for _, s := range styles {
		r := style.Classify(s)
		bp.Primary[r.Primary]++
		bp.Secondary[r.Secondary]++
	}
	bp.TopPrimary = topShare(bp.Primary, style.PrimaryCategories(), bp.Total)
	bp.TopSecondary = topShare(bp.Secondary, style.SecondaryCategories(), bp.Total)
	return bp
}

func topShare(counts map[string]int, order []string, total int) Share {
	top := Share{Key: style.NoData}
	for _, k := range append(order, style.Other) {
		if c := counts[k]; c > top.Count {
			top = Share{Key: k, Count: c}
		}
	}
	if total > 0 {
		top.Percent = float64(top.Count) / float64(total) * 100
	}
	return top
}
