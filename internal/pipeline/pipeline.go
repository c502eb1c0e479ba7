// Package pipeline orchestrates the fetch-merge-normalize-resolve cycle and
// holds the resulting dataset for the serving layer.
package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/reedmaris/bls-data-service/internal/domain"
	"github.com/reedmaris/bls-data-service/internal/observability"
)

// Resolver maps series identifiers to location names.
type Resolver interface {
	ResolveAll(ids []string, strict bool) (map[string]string, error)
}

// Exporter publishes a refreshed dataset downstream.
type Exporter interface {
	ExportDataset(ctx context.Context, ds domain.Dataset) error
}

// Options configure what the pipeline fetches and how often.
type Options struct {
	SeriesIDs       []string
	StartYear       int
	EndYear         int
	StrictLocations bool
	RefreshInterval time.Duration
}

// Pipeline periodically rebuilds the canonical dataset from source payloads.
// The latest successful dataset is kept until the next success, so readers
// never see a partial refresh.
type Pipeline struct {
	fetcher  domain.Fetcher
	resolver Resolver
	exporter Exporter // nil disables export
	logger   *slog.Logger
	metrics  *observability.Metrics
	opts     Options

	current atomic.Pointer[domain.Dataset]
	ready   atomic.Bool
}

// New creates a Pipeline. Pass a nil exporter to disable downstream export.
func New(f domain.Fetcher, r Resolver, e Exporter, logger *slog.Logger, metrics *observability.Metrics, opts Options) *Pipeline {
	return &Pipeline{
		fetcher:  f,
		resolver: r,
		exporter: e,
		logger:   logger,
		metrics:  metrics,
		opts:     opts,
	}
}

// CheckReadiness returns nil once at least one dataset has been built,
// or an error describing why the service is not yet ready.
func (p *Pipeline) CheckReadiness(_ context.Context) error {
	if !p.ready.Load() {
		return errors.New("no dataset has been built yet")
	}
	return nil
}

// CurrentDataset returns the most recent dataset, if one exists.
func (p *Pipeline) CurrentDataset() (domain.Dataset, bool) {
	ds := p.current.Load()
	if ds == nil {
		return domain.Dataset{}, false
	}
	return *ds, true
}

// Run executes the refresh loop until the context is cancelled. A failed
// refresh retries with backoff; a successful one sleeps for the configured
// interval.
func (p *Pipeline) Run(ctx context.Context) error {
	p.logger.Info("pipeline started",
		"series", len(p.opts.SeriesIDs),
		"start_year", p.opts.StartYear,
		"end_year", p.opts.EndYear,
		"refresh_interval", p.opts.RefreshInterval,
	)
	p.metrics.PipelineRunning.Set(1)
	defer p.metrics.PipelineRunning.Set(0)

	// Exponential backoff: start at 200ms, double each retry, cap at 5s.
	// Keeps retry storms short while avoiding tight loops during outages.
	backoff := 200 * time.Millisecond
	maxBackoff := 5 * time.Second

	for {
		select {
		case <-ctx.Done():
			p.logger.Info("pipeline stopping", "reason", ctx.Err())
			return nil
		default:
		}

		if err := p.refresh(ctx); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			p.logger.Error("refresh failed", "error", err)
			p.metrics.RefreshErrors.Inc()
			if !sleepWithContext(ctx, backoff) {
				return nil
			}
			backoff = nextBackoff(backoff, maxBackoff)
			continue
		}
		backoff = 200 * time.Millisecond

		if !sleepWithContext(ctx, p.opts.RefreshInterval) {
			return nil
		}
	}
}

// refresh runs one full fetch-merge-normalize-resolve cycle and swaps in the
// resulting dataset. Export failures are logged but do not fail the refresh.
func (p *Pipeline) refresh(ctx context.Context) error {
	start := time.Now()
	p.metrics.RefreshTotal.Inc()

	series, err := p.fetcher.FetchSeries(ctx, p.opts.SeriesIDs, p.opts.StartYear, p.opts.EndYear)
	if err != nil {
		return err
	}

	merged, err := domain.Merge(series)
	if err != nil {
		return err
	}

	table, err := domain.Normalize(merged)
	if err != nil {
		return err
	}

	locations, err := p.resolver.ResolveAll(merged.SeriesIDs, p.opts.StrictLocations)
	if err != nil {
		return err
	}

	ds := domain.NewDataset(table, locations)
	p.current.Store(&ds)
	p.ready.Store(true)

	p.metrics.RefreshDuration.Observe(time.Since(start).Seconds())
	p.metrics.DatasetRows.Set(float64(len(table.Index)))
	p.metrics.DatasetSeries.Set(float64(len(table.Columns)))
	p.metrics.DatasetLocations.Set(float64(len(locations)))
	p.logger.Info("dataset refreshed",
		"rows", len(table.Index),
		"series", len(table.Columns),
		"locations", len(locations),
		"duration", time.Since(start),
	)

	if p.exporter != nil {
		if err := p.exporter.ExportDataset(ctx, ds); err != nil {
			p.logger.Warn("dataset export failed", "error", err)
			p.metrics.ExportErrors.Inc()
		} else {
			p.metrics.RowsExported.Add(float64(len(table.Index)))
		}
	}
	return nil
}

func nextBackoff(current, maxBackoff time.Duration) time.Duration {
	next := current * 2
	if next > maxBackoff {
		return maxBackoff
	}
	return next
}

func sleepWithContext(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
