package engine

import (
	"fmt"
	"math"
	"time"

	"salonkpi/pkg/schema"
)

const (
	storeXinyi = "信義店"
	storeDaan  = "大安店"
	jay        = "阿傑"
	mei        = "小美"
)

// visit builds a single service line for member on date ("YYYY-MM-DD").
func visit(member, date string) schema.Transaction {
	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		panic(err)
	}
	return schema.Transaction{
		Store:     storeXinyi,
		Provider:  jay,
		MemberID:  member,
		Date:      date,
		Month:     date[:7],
		VisitTime: day,
	}
}

type txBuilder struct{ tx schema.Transaction }

func tx(member, date string) txBuilder { return txBuilder{visit(member, date)} }

func (b txBuilder) build() schema.Transaction { return b.tx }

func (b txBuilder) by(provider string) txBuilder {
	b.tx.Provider = provider
	return b
}

func (b txBuilder) at(store string) txBuilder {
	b.tx.Store = store
	return b
}

func (b txBuilder) designated(p string) txBuilder {
	b.tx.DesignatedProvider = p
	return b
}

func (b txBuilder) style(s string) txBuilder {
	b.tx.StyleText = s
	return b
}

func (b txBuilder) minutes(d float64) txBuilder {
	b.tx.DurationMinutes = d
	return b
}

func (b txBuilder) entered(clock string) txBuilder {
	b.tx.EntryTime = clockOn(b.tx.Date, clock)
	return b
}

func (b txBuilder) completed(clock string) txBuilder {
	b.tx.CompletionTime = clockOn(b.tx.Date, clock)
	return b
}

func clockOn(date, clock string) time.Time {
	t, err := time.Parse("2006-01-02 15:04", date+" "+clock)
	if err != nil {
		panic(err)
	}
	return t
}

func members(prefix string, n int) []string {
	ids := make([]string, n)
	for i := range ids {
		ids[i] = fmt.Sprintf("%s%03d", prefix, i)
	}
	return ids
}

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func imports(counts map[string]int) map[string]schema.MemberImport {
	out := make(map[string]schema.MemberImport, len(counts))
	for id, n := range counts {
		out[id] = schema.MemberImport{MemberID: id, HistoricalVisits: n}
	}
	return out
}
