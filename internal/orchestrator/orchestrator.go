// Package orchestrator runs the employer-panel pipeline over an analysis
// window: continuity tagging and employer aggregation per quarter, the
// temporal growth-rate join in quarter order, then panel assembly.
package orchestrator

import (
	"context"
	"fmt"
	"log"
	"time"

	"golang.org/x/sync/errgroup"

	"wage-panel/internal/aggregate"
	"wage-panel/internal/continuity"
	"wage-panel/internal/domain"
	"wage-panel/internal/growth"
	"wage-panel/internal/observability"
	"wage-panel/internal/panel"
	"wage-panel/internal/storage"
)

// Orchestrator coordinates the panel build.
// Flow: fetch -> tag+aggregate (per quarter) -> join (in order) -> assemble.
type Orchestrator struct {
	wageStore  storage.WageRecordStore
	panelStore storage.PanelStore

	window       []domain.Period
	minEmployees int

	metrics *observability.Metrics
	verbose bool
}

// Options for creating an Orchestrator.
type Options struct {
	// Required stores
	WageStore  storage.WageRecordStore
	PanelStore storage.PanelStore

	// Window is the ordered list of quarters to process.
	Window []domain.Period

	// MinEmployees is the headcount threshold for panel inclusion.
	// Values below 1 fall back to panel.DefaultMinEmployees.
	MinEmployees int

	// Metrics receives pipeline counters when non-nil.
	Metrics *observability.Metrics

	Verbose bool
}

// New creates a new Orchestrator.
func New(opts Options) *Orchestrator {
	return &Orchestrator{
		wageStore:    opts.WageStore,
		panelStore:   opts.PanelStore,
		window:       opts.Window,
		minEmployees: opts.MinEmployees,
		metrics:      opts.Metrics,
		verbose:      opts.Verbose,
	}
}

// RunResult contains results from a pipeline run.
type RunResult struct {
	QuartersProcessed int
	RecordsRead       int
	AggregatesTotal   int
	PanelRows         int
	RowsFiltered      int // dropped by the minimum headcount threshold
	Duration          time.Duration
}

// Run executes the full pipeline for the configured window. Any store
// failure aborts the run; no partial-quarter output is written.
func (o *Orchestrator) Run(ctx context.Context) (*RunResult, error) {
	if len(o.window) == 0 {
		return nil, fmt.Errorf("empty analysis window")
	}
	start := time.Now()

	// Phase 1: fetch each window quarter's record set once.
	o.log("Phase 1: fetching wage records for %d quarters...", len(o.window))
	records, err := o.fetchWindow(ctx)
	if err != nil {
		return nil, fmt.Errorf("phase 1 (fetch) failed: %w", err)
	}

	result := &RunResult{QuartersProcessed: len(o.window)}
	for i, recs := range records {
		result.RecordsRead += len(recs)
		o.log("  %s: %d records", o.window[i], len(recs))
	}
	if o.metrics != nil {
		o.metrics.WageRecordsRead.Add(float64(result.RecordsRead))
	}

	// Phase 2: tag and aggregate quarters. Each quarter depends only on
	// read-only access to its neighbors' record sets, so quarters run
	// concurrently.
	o.log("Phase 2: tagging and aggregating...")
	aggregates, err := o.tagAndAggregate(ctx, records)
	if err != nil {
		return nil, fmt.Errorf("phase 2 (tag/aggregate) failed: %w", err)
	}
	for _, aggs := range aggregates {
		result.AggregatesTotal += len(aggs)
	}
	if o.metrics != nil {
		o.metrics.AggregatesComputed.Add(float64(result.AggregatesTotal))
	}

	// Phase 3: temporal join. Quarter t needs quarter t-1's aggregates,
	// so joins run strictly in window order. The first quarter has no
	// prior index and its rates stay undefined.
	o.log("Phase 3: joining growth rates...")
	joined := make([][]*domain.PanelRow, len(o.window))
	var prior growth.PriorIndex
	for i, aggs := range aggregates {
		joined[i] = growth.JoinQuarter(aggs, prior)
		prior = growth.BuildPriorIndex(aggs)
	}

	// Phase 4: filter and union into the panel, then persist.
	o.log("Phase 4: assembling panel...")
	assembler := panel.NewAssembler(o.minEmployees)
	rows, err := assembler.AssembleAndStore(ctx, o.panelStore, joined)
	if err != nil {
		return nil, fmt.Errorf("phase 4 (assemble) failed: %w", err)
	}

	result.PanelRows = len(rows)
	result.RowsFiltered = result.AggregatesTotal - result.PanelRows
	result.Duration = time.Since(start)

	if o.metrics != nil {
		o.metrics.PanelRowsWritten.Add(float64(result.PanelRows))
		o.metrics.RowsBelowThreshold.Add(float64(result.RowsFiltered))
	}

	o.log("Done: %d panel rows from %d aggregates in %s",
		result.PanelRows, result.AggregatesTotal, result.Duration)

	return result, nil
}

// fetchWindow loads every window quarter's records, index-aligned with the
// window.
func (o *Orchestrator) fetchWindow(ctx context.Context) ([][]*domain.WageRecord, error) {
	records := make([][]*domain.WageRecord, len(o.window))
	for i, p := range o.window {
		recs, err := o.wageStore.GetByPeriod(ctx, p.Year, p.Quarter)
		if err != nil {
			return nil, fmt.Errorf("fetch records for %s: %w", p, err)
		}
		records[i] = recs
	}
	return records, nil
}

// tagAndAggregate runs the continuity tagger and employer aggregator for
// every window quarter concurrently. Neighbor probes only see record sets
// inside the window, so boundary quarters tag against absent neighbors.
func (o *Orchestrator) tagAndAggregate(ctx context.Context, records [][]*domain.WageRecord) ([][]*domain.EmployerAggregate, error) {
	aggregates := make([][]*domain.EmployerAggregate, len(o.window))

	g, ctx := errgroup.WithContext(ctx)
	for i := range o.window {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			started := time.Now()

			var prior, next []*domain.WageRecord
			if i > 0 {
				prior = records[i-1]
			}
			if i < len(records)-1 {
				next = records[i+1]
			}

			tagged := continuity.Tag(records[i], prior, next)
			aggregates[i] = aggregate.Compute(tagged)

			if o.metrics != nil {
				o.metrics.RecordsTagged.Add(float64(len(tagged)))
				o.metrics.QuartersProcessed.Inc()
				o.metrics.QuarterDuration.WithLabelValues("tag_aggregate").Observe(time.Since(started).Seconds())
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return aggregates, nil
}

func (o *Orchestrator) log(format string, args ...interface{}) {
	if o.verbose {
		log.Printf("[orchestrator] "+format, args...)
	}
}
