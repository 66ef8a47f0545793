package guardian

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"fairaid-guardian/cache"
	"fairaid-guardian/config"
	"fairaid-guardian/database"
)

const snapshotCacheTTL = 10 * time.Minute

// KPIs are the headline dashboard tiles
type KPIs struct {
	TotalDistributed     float64 `json:"total_distributed"`
	BeneficiariesReached int     `json:"beneficiaries_reached"`
	AvgAidPerPerson      float64 `json:"avg_aid_per_person"`
	AnomalyCount         int     `json:"anomaly_count"`
}

// Snapshot is one complete pipeline run over a fixed record set. All tables
// are derived from Records in a single pass and never mutated afterwards;
// two snapshots with the same SourceVersion carry identical tables.
type Snapshot struct {
	SourceVersion string        `json:"source_version"`
	GeneratedAt   time.Time     `json:"generated_at"`
	Records       []Record      `json:"records"`
	Coverage      []CoverageRow `json:"coverage"`
	Fairness      []FairnessRow `json:"fairness"`
	Anomalies     []AnomalyRow  `json:"anomalies"`
	KPIs          KPIs          `json:"kpis"`
}

// Guardian is the pipeline entry point. It owns the record source, the
// classifiers, and the snapshot cache; there is no package-level state, so
// two Guardians with different sources never interfere.
type Guardian struct {
	source     RecordSource
	classifier *FairnessClassifier
	detector   *AnomalyDetector
	summarizer Summarizer
	redis      *cache.RedisClient

	mu   sync.Mutex
	memo *Snapshot
}

// NewGuardian wires a pipeline for one record source
func NewGuardian(source RecordSource, cfg config.FairnessConfig, summarizer Summarizer, redis *cache.RedisClient) *Guardian {
	return &Guardian{
		source:     source,
		classifier: NewFairnessClassifier(cfg),
		detector:   NewAnomalyDetector(cfg.DuplicateSpreadPct),
		summarizer: summarizer,
		redis:      redis,
	}
}

// Refresh returns the snapshot for the source's current version, computing
// it only when the version token has changed since the last run. Cache
// layers degrade silently: a missing Redis or a cache miss means a fresh
// computation, never a failure.
func (g *Guardian) Refresh(ctx context.Context) (*Snapshot, error) {
	version, err := g.source.Version(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve source version: %w", err)
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if g.memo != nil && g.memo.SourceVersion == version {
		return g.memo, nil
	}

	cacheKey := "fairaid:snapshot:" + version
	if g.redis != nil {
		var cached Snapshot
		if err := g.redis.Get(ctx, cacheKey, &cached); err == nil && cached.SourceVersion == version {
			g.memo = &cached
			return g.memo, nil
		}
	}

	snap, err := g.compute(ctx, version)
	if err != nil {
		return nil, err
	}

	if g.redis != nil {
		if err := g.redis.Set(ctx, cacheKey, snap, snapshotCacheTTL); err != nil {
			log.Printf("⚠️  Failed to cache snapshot %s: %v", version, err)
		}
	}

	g.memo = snap
	return snap, nil
}

// Invalidate drops the memoized snapshot and the Redis entry for the
// current source version, forcing the next Refresh to recompute
func (g *Guardian) Invalidate(ctx context.Context) error {
	version, err := g.source.Version(ctx)
	if err != nil {
		return fmt.Errorf("failed to resolve source version: %w", err)
	}

	g.mu.Lock()
	g.memo = nil
	g.mu.Unlock()

	if g.redis != nil {
		return g.redis.Delete(ctx, "fairaid:snapshot:"+version)
	}
	return nil
}

// compute runs the single-pass pipeline: load once, derive every table
func (g *Guardian) compute(ctx context.Context, version string) (*Snapshot, error) {
	records, err := g.source.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load records: %w", err)
	}

	coverage := AggregateCoverage(records)
	fairness := g.classifier.Classify(coverage, records)
	anomalies := g.detector.Detect(records)

	return &Snapshot{
		SourceVersion: version,
		GeneratedAt:   time.Now(),
		Records:       records,
		Coverage:      coverage,
		Fairness:      fairness,
		Anomalies:     anomalies,
		KPIs:          computeKPIs(records, coverage, anomalies),
	}, nil
}

// computeKPIs derives the headline tiles. BeneficiariesReached sums the
// per-region distinct counts; AvgAidPerPerson is the true global mean, not
// the mean of per-region means.
func computeKPIs(records []Record, coverage []CoverageRow, anomalies []AnomalyRow) KPIs {
	kpis := KPIs{
		AvgAidPerPerson: GlobalAverage(records),
		AnomalyCount:    len(anomalies),
	}
	for _, row := range coverage {
		kpis.TotalDistributed += row.TotalDistributed
		kpis.BeneficiariesReached += row.TotalBeneficiaries
	}
	return kpis
}

// Regions returns the region list for the dashboard filter. A source with
// its own region index answers directly; otherwise the list falls out of
// the snapshot's coverage table.
func (g *Guardian) Regions(ctx context.Context) ([]string, error) {
	if lister, ok := g.source.(RegionLister); ok {
		return lister.Regions(ctx)
	}

	snap, err := g.Refresh(ctx)
	if err != nil {
		return nil, err
	}
	regions := make([]string, len(snap.Coverage))
	for i, row := range snap.Coverage {
		regions[i] = row.Region
	}
	return regions, nil
}

// RecordsPreview returns up to limit records for the raw-data panel plus
// the full table size. A previewing source serves the slice itself;
// otherwise the preview is cut from the snapshot.
func (g *Guardian) RecordsPreview(ctx context.Context, limit int) ([]Record, int, error) {
	if previewer, ok := g.source.(RecordPreviewer); ok {
		return previewer.RecentRecords(ctx, limit)
	}

	snap, err := g.Refresh(ctx)
	if err != nil {
		return nil, 0, err
	}
	records := snap.Records
	if len(records) > limit {
		records = records[:limit]
	}
	return records, len(snap.Records), nil
}

// RegionInsight produces the guardian report for one region. An unknown
// region is a not-found error; a summarizer failure is surfaced for this
// region only and leaves the snapshot untouched.
func (g *Guardian) RegionInsight(ctx context.Context, region string) (Insight, error) {
	snap, err := g.Refresh(ctx)
	if err != nil {
		return Insight{}, err
	}

	for _, row := range snap.Fairness {
		if row.Region == region {
			return g.summarizer.Summarize(ctx, row)
		}
	}
	return Insight{}, database.NewNotFoundErrorWithID("region", region)
}
