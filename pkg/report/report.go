package report

import (
	"time"

	"github.com/google/uuid"

	"salonkpi/pkg/engine"
	"salonkpi/pkg/schema"
)

// Report is the read-only result of one analysis run.
type Report struct {
	ID          uuid.UUID             `json:"id"`
	GeneratedAt time.Time             `json:"generatedAt"`
	Filter      engine.Filter         `json:"filter"`
	Years       []string              `json:"years"`
	StoreNames  []string              `json:"storeNames"`
	Dataset     engine.LookupStats    `json:"dataset"`
	Normalize   schema.NormalizeStats `json:"normalize"`
	Import      schema.ImportStats    `json:"import"`

	Cohort    engine.Cohort          `json:"cohort"`
	Providers []engine.ProviderStats `json:"providers"`
	Averages  engine.GlobalAverages  `json:"averages"`

	Members      []engine.MemberStatus                         `json:"members"`
	StatusCounts map[engine.LifecycleStatus]int                `json:"statusCounts"`
	Lost         map[engine.LostCohortKind]*engine.LostProfile `json:"lost"`

	Stores      []engine.StoreSummary                     `json:"stores"`
	Dashboard   engine.DashboardKPIs                      `json:"dashboard"`
	StyleMix    engine.StyleMix                           `json:"styleMix"`
	NewStyleMix engine.StyleMix                           `json:"newStyleMix"`
	Hourly      map[engine.HourlyScope]engine.HourlyStats `json:"hourly"`
	Ages        engine.AgeDistribution                    `json:"ages"`
}

// Dataset is the enriched, indexed form of one load. Everything a report
// needs besides the filter is computed once here.
type Dataset struct {
	Records  []schema.Transaction
	Imports  map[string]schema.MemberImport
	Lookup   *engine.Lookup
	Profiles map[string]engine.MemberProfile
	Statuses []engine.MemberStatus

	NormalizeStats schema.NormalizeStats
	ImportStats    schema.ImportStats
}

// NewDataset enriches records against imports and builds the lookup and the
// member profiles. records is not modified.
func NewDataset(records []schema.Transaction, imports map[string]schema.MemberImport) *Dataset {
	enriched := engine.Enrich(records, imports)
	lookup := engine.BuildLookup(enriched)
	profiles := engine.BuildProfiles(enriched)
	return &Dataset{
		Records:  enriched,
		Imports:  imports,
		Lookup:   lookup,
		Profiles: profiles,
		Statuses: engine.MemberStatuses(profiles, lookup.LatestVisit()),
	}
}

// Compose runs every stage for the working set selected by filter. Forward
// references always resolve against the full dataset.
func (d *Dataset) Compose(filter engine.Filter, now time.Time) *Report {
	working := engine.ApplyFilter(d.Records, filter)
	cohort := engine.ComputeMonthly(working, d.Lookup)
	providers := engine.ComputeProviders(working, d.Lookup)

	r := &Report{
		ID:          uuid.New(),
		GeneratedAt: now,
		Filter:      filter,
		Years:       engine.Years(d.Records),
		StoreNames:  engine.Stores(d.Records),
		Dataset:     d.Lookup.Stats,
		Normalize:   d.NormalizeStats,
		Import:      d.ImportStats,

		Cohort:    cohort,
		Providers: providers,
		Averages:  engine.Averages(cohort, providers),

		Members:      d.Statuses,
		StatusCounts: engine.CountStatuses(d.Statuses),
		Lost:         make(map[engine.LostCohortKind]*engine.LostProfile),

		Stores:      engine.SummarizeStores(working, d.Lookup),
		Dashboard:   engine.Dashboard(d.Records, cohort, d.Profiles, d.Lookup),
		StyleMix:    engine.ComputeStyleMix(working, false),
		NewStyleMix: engine.ComputeStyleMix(working, true),
		Hourly:      make(map[engine.HourlyScope]engine.HourlyStats),
		Ages:        engine.ComputeAgeDistribution(d.Statuses, d.Imports),
	}

	for _, kind := range []engine.LostCohortKind{engine.CohortOneTimeDrop, engine.CohortGeneralChurn} {
		if lp, ok := engine.ProfileLost(d.Records, d.Profiles, kind); ok {
			r.Lost[kind] = lp
		}
	}
	for _, scope := range []engine.HourlyScope{engine.ScopeAll, engine.ScopeWeekday, engine.ScopeWeekend} {
		r.Hourly[scope] = engine.HourlyProfile(working, scope)
	}
	return r
}

// Provider returns the stats of name, if it served anyone in the working set.
func (r *Report) Provider(name string) (engine.ProviderStats, bool) {
	for _, p := range r.Providers {
		if p.Name == name {
			return p, true
		}
	}
	return engine.ProviderStats{}, false
}
