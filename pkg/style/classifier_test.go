package style

import (
	"testing"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		text string
		want Result
	}{
		{"empty", "", Result{Other, Other}},
		{"unknown", "洗髮", Result{Other, Other}},
		{"both axes", "油頭 + 高漸層", Result{"油頭", "高漸層"}},
		{"case insensitive", "Classic POMPADOUR low Fade", Result{"油頭", "區域漸層"}},
		{"full width latin", "ＢＵＺＺ ｃｕｔ", Result{"寸頭", Other}},
		{"first rule wins", "寸頭改油頭", Result{"油頭", Other}},
		{"mid before generic fade", "中漸層", Result{Other, "中漸層"}},
		{"generic fade", "漸層", Result{Other, "高漸層"}},
		{"push before fade", "順推漸層", Result{Other, "自然順推"}},
		{"secondary only", "taper", Result{Other, "區域漸層"}},
		{"caesar", "凱薩頭", Result{"凱薩頭", Other}},
		{"korean part", "韓式中分", Result{"韓系中分", Other}},
		{"fringe", "French crop fringe", Result{"瀏海造型", Other}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.text); got != tt.want {
				t.Errorf("Classify(%q) = %+v, want %+v", tt.text, got, tt.want)
			}
		})
	}
}

func TestClassify_Total(t *testing.T) {
	primary := map[string]bool{Other: true}
	for _, c := range PrimaryCategories() {
		primary[c] = true
	}
	secondary := map[string]bool{Other: true}
	for _, c := range SecondaryCategories() {
		secondary[c] = true
	}

	for _, text := range []string{"a", "油頭", "飛機頭上抓 high", "   ", "🙂", "MID"} {
		got := Classify(text)
		if !primary[got.Primary] || !secondary[got.Secondary] {
			t.Errorf("Classify(%q) = %+v outside the closed category sets", text, got)
		}
		if again := Classify(text); again != got {
			t.Errorf("Classify(%q) not stable: %+v then %+v", text, got, again)
		}
	}
}

func TestRules_ReturnsCopies(t *testing.T) {
	primary, _ := Rules()
	primary[0].Keywords[0] = "changed"
	if got := Classify("油頭"); got.Primary != "油頭" {
		t.Fatalf("mutating Rules() leaked into the classifier: %+v", got)
	}
}
