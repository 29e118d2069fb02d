// Package ingest pulls creative performance rows from an upstream source
// on a schedule and feeds them through the analysis pipeline.
package ingest

import (
	"context"
	"sync"
	"time"

	"github.com/ignite/creative-engine/internal/analysis"
	"github.com/ignite/creative-engine/internal/domain"
	"github.com/ignite/creative-engine/internal/pkg/logger"
)

// Source yields the current creative performance rows for an account.
// Implementations wrap a platform reporting API or a fixture.
type Source interface {
	Fetch(ctx context.Context) ([]domain.CreativeRecord, error)
}

// ReportArchiver persists a finished batch report. Archive failures are
// logged but never fail the run; the analysis results already landed in
// the primary store.
type ReportArchiver interface {
	Save(ctx context.Context, accountID string, runDate time.Time, results []domain.AnalysisResult) error
}

// Collector is a background worker that periodically fetches rows from a
// source, analyzes the batch and archives the report.
type Collector struct {
	source    Source
	analyzer  *analysis.Analyzer
	archiver  ReportArchiver
	accountID string
	interval  time.Duration

	ctx    context.Context
	cancel context.CancelFunc

	mu        sync.RWMutex
	lastRunAt time.Time
	healthy   bool
}

// CollectorOption configures a Collector.
type CollectorOption func(*Collector)

// WithInterval overrides the default poll interval.
func WithInterval(d time.Duration) CollectorOption {
	return func(c *Collector) { c.interval = d }
}

// WithArchiver attaches a report archiver. Without one, reports are not
// persisted beyond the primary store.
func WithArchiver(a ReportArchiver) CollectorOption {
	return func(c *Collector) { c.archiver = a }
}

func NewCollector(source Source, analyzer *analysis.Analyzer, accountID string, opts ...CollectorOption) *Collector {
	c := &Collector{
		source:    source,
		analyzer:  analyzer,
		accountID: accountID,
		interval:  30 * time.Minute,
		healthy:   true,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Collector) Start() {
	c.ctx, c.cancel = context.WithCancel(context.Background())
	go func() {
		logger.Info("ingest collector starting", "account_id", c.accountID, "interval", c.interval.String())
		c.RunOnce(c.ctx)

		ticker := time.NewTicker(c.interval)
		defer ticker.Stop()
		for {
			select {
			case <-c.ctx.Done():
				logger.Info("ingest collector stopped", "account_id", c.accountID)
				return
			case <-ticker.C:
				c.RunOnce(c.ctx)
			}
		}
	}()
}

func (c *Collector) Stop() {
	if c.cancel != nil {
		c.cancel()
	}
}

func (c *Collector) IsHealthy() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.healthy
}

func (c *Collector) LastRunAt() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lastRunAt
}

func (c *Collector) setHealthy(healthy bool) {
	c.mu.Lock()
	c.healthy = healthy
	c.mu.Unlock()
}

// RunOnce performs a single fetch-analyze-archive cycle and returns the
// batch results.
func (c *Collector) RunOnce(ctx context.Context) []domain.AnalysisResult {
	started := time.Now()
	c.mu.Lock()
	c.lastRunAt = started
	c.mu.Unlock()

	records, err := c.source.Fetch(ctx)
	if err != nil {
		logger.Error("ingest fetch failed", "account_id", c.accountID, "error", err)
		c.setHealthy(false)
		return nil
	}
	c.setHealthy(true)
	if len(records) == 0 {
		logger.Debug("ingest fetch returned no creatives", "account_id", c.accountID)
		return nil
	}

	results := c.analyzer.AnalyzeBatch(ctx, records)

	if c.archiver != nil {
		if err := c.archiver.Save(ctx, c.accountID, started, results); err != nil {
			logger.Warn("report archive failed", "account_id", c.accountID, "error", err)
		}
	}

	logger.Info("ingest run complete", "account_id", c.accountID, "fetched", len(records), "analyzed", len(results))
	return results
}
