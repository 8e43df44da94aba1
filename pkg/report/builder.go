// Package report composes the analytics stages into a single report and
// caches results per filter.
package report

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru"
	"golang.org/x/sync/errgroup"

	"salonkpi/pkg/engine"
	"salonkpi/pkg/logger"
	"salonkpi/pkg/schema"
)

//go:generate mockgen -source=builder.go -destination=mock/source.go -package=mock

// Source yields the raw rows of the POS export and the member-history export.
type Source interface {
	Transactions(ctx context.Context) ([]map[string]string, error)
	Members(ctx context.Context) ([]map[string]string, error)
}

var (
	ErrNoTransactions = errors.New("no completed transactions")
	ErrNotLoaded      = errors.New("dataset not loaded")
)

const defaultCacheSize = 16

type Options struct {
	Normalize     schema.Options
	ReferenceYear int
	CacheSize     int
	Logger        *slog.Logger
	Now           func() time.Time
}

// Builder loads a Source once and serves reports for any filter from an
// LRU cache. Loading again invalidates every cached report.
type Builder struct {
	src   Source
	opts  Options
	log   *slog.Logger
	cache *lru.Cache

	mu      sync.RWMutex
	dataset *Dataset
	version int
}

func NewBuilder(src Source, opts Options) (*Builder, error) {
	size := opts.CacheSize
	if size <= 0 {
		size = defaultCacheSize
	}
	cache, err := lru.New(size)
	if err != nil {
		return nil, fmt.Errorf("failed to create report cache: %w", err)
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.ReferenceYear == 0 {
		opts.ReferenceYear = opts.Now().Year()
	}
	return &Builder{src: src, opts: opts, log: opts.Logger, cache: cache}, nil
}

// Load reads both inputs concurrently, normalizes and enriches them.
func (b *Builder) Load(ctx context.Context) error {
	start := time.Now()

	var txRows, memberRows []map[string]string
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		began := time.Now()
		rows, err := b.src.Transactions(gctx)
		logger.LogSource(b.log, "transactions", len(rows), time.Since(began), err)
		if err != nil {
			return fmt.Errorf("load transactions: %w", err)
		}
		txRows = rows
		return nil
	})
	g.Go(func() error {
		began := time.Now()
		rows, err := b.src.Members(gctx)
		logger.LogSource(b.log, "members", len(rows), time.Since(began), err)
		if err != nil {
			return fmt.Errorf("load members: %w", err)
		}
		memberRows = rows
		return nil
	})
	if err := g.Wait(); err != nil {
		return err
	}
	logger.LogStage(b.log, "load", time.Since(start),
		slog.Int("transactionRows", len(txRows)),
		slog.Int("memberRows", len(memberRows)),
	)

	start = time.Now()
	records, nstats := schema.NormalizeTransactions(txRows, b.opts.Normalize)
	if len(records) == 0 {
		err := fmt.Errorf("%w: %d rows read, %d not completed, %d without a date",
			ErrNoTransactions, nstats.Total, nstats.NotCompleted, nstats.MissingDate)
		logger.LogError(b.log, "Nothing to analyze", err)
		return err
	}
	imports, istats := schema.NormalizeMemberImport(memberRows, b.opts.ReferenceYear, b.opts.Normalize.GuestID)
	logger.LogStage(b.log, "normalize", time.Since(start),
		slog.Int("kept", nstats.Kept),
		slog.Int("members", istats.Members),
	)

	start = time.Now()
	ds := NewDataset(records, imports)
	ds.NormalizeStats = nstats
	ds.ImportStats = istats
	logger.LogStage(b.log, "enrich", time.Since(start),
		slog.Int("months", ds.Lookup.Stats.Months),
		slog.Int("uniqueMembers", ds.Lookup.Stats.UniqueMember),
	)

	b.mu.Lock()
	b.dataset = ds
	b.version++
	b.cache.Purge()
	b.mu.Unlock()
	return nil
}

// Dataset returns the loaded dataset, or nil before Load.
func (b *Builder) Dataset() *Dataset {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.dataset
}

// Build returns the report for filter, computing it on a cache miss.
func (b *Builder) Build(filter engine.Filter) (*Report, error) {
	b.mu.RLock()
	ds, version := b.dataset, b.version
	b.mu.RUnlock()
	if ds == nil {
		return nil, ErrNotLoaded
	}

	key := cacheKey(version, filter)
	if cached, ok := b.cache.Get(key); ok {
		b.log.Debug("Report cache hit", slog.String("type", "stage"), slog.String("key", key))
		return cached.(*Report), nil
	}

	start := time.Now()
	r := ds.Compose(filter, b.opts.Now())
	b.cache.Add(key, r)
	logger.LogStage(b.log, "compose", time.Since(start),
		slog.String("year", filter.Year),
		slog.String("store", filter.Store),
		slog.Int("providers", len(r.Providers)),
	)
	return r, nil
}

func cacheKey(version int, f engine.Filter) string {
	return fmt.Sprintf("%d|%s|%s|%s|%d", version, f.Year, f.Store, f.Provider, f.RecentMonths)
}
