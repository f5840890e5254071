// Package main builds the employer-quarter panel: fetch wage records for
// the analysis window, tag continuity, aggregate by employer, join growth
// rates, assemble and persist the panel, then write report files.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"wage-panel/internal/domain"
	"wage-panel/internal/observability"
	"wage-panel/internal/orchestrator"
	"wage-panel/internal/panel"
	"wage-panel/internal/pipeline"
	"wage-panel/internal/storage"
	chstore "wage-panel/internal/storage/clickhouse"
	"wage-panel/internal/storage/memory"
	"wage-panel/internal/storage/migrations"
	pgstore "wage-panel/internal/storage/postgres"
)

func main() {
	// Parse flags
	windowSpec := flag.String("window", "", "Analysis window, e.g. 2022Q1-2024Q1 or a comma-separated list")
	minEmployees := flag.Int("min-employees", panel.DefaultMinEmployees, "Minimum distinct workers per employer-quarter")
	postgresDSN := flag.String("postgres-dsn", "", "PostgreSQL connection string for the wage-record store")
	clickhouseDSN := flag.String("clickhouse-dsn", "", "ClickHouse DSN for the panel sink (empty = write panel to Postgres)")
	useMemory := flag.Bool("use-memory", false, "Use in-memory stores with fixture data instead of databases")
	migrate := flag.Bool("migrate", true, "Apply schema migrations before running")
	outputDir := flag.String("output-dir", "docs", "Output directory for generated files")
	metricsAddr := flag.String("metrics-addr", "", "Prometheus metrics HTTP address (empty to disable)")
	verbose := flag.Bool("verbose", false, "Verbose output")
	flag.Parse()

	// Setup logger
	logger := log.New(os.Stdout, "[panel] ", log.LstdFlags)

	// Start metrics server if enabled
	if *metricsAddr != "" {
		go func() {
			mux := http.NewServeMux()
			mux.Handle("/metrics", observability.Handler())
			mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
				w.Write([]byte("ok"))
			})
			logger.Printf("Starting metrics server on %s", *metricsAddr)
			if err := http.ListenAndServe(*metricsAddr, mux); err != nil && err != http.ErrServerClosed {
				logger.Printf("Metrics server error: %v", err)
			}
		}()
	}

	// Create context with cancellation for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Printf("Received signal %v, cancelling run...", sig)
		cancel()
	}()

	if err := run(ctx, logger, *windowSpec, *minEmployees, *postgresDSN, *clickhouseDSN, *useMemory, *migrate, *outputDir, *verbose); err != nil {
		observability.RecordPipelineRun("error")
		logger.Fatalf("Panel build failed: %v", err)
	}
	observability.RecordPipelineRun("ok")
}

func run(ctx context.Context, logger *log.Logger, windowSpec string, minEmployees int, postgresDSN, clickhouseDSN string, useMemory, migrate bool, outputDir string, verbose bool) error {
	wageStore, panelStore, window, cleanup, err := buildStores(ctx, logger, windowSpec, postgresDSN, clickhouseDSN, useMemory, migrate)
	if err != nil {
		return err
	}
	defer cleanup()

	orch := orchestrator.New(orchestrator.Options{
		WageStore:    wageStore,
		PanelStore:   panelStore,
		Window:       window,
		MinEmployees: minEmployees,
		Metrics:      observability.DefaultMetrics,
		Verbose:      verbose,
	})

	result, err := orch.Run(ctx)
	if err != nil {
		return err
	}

	logger.Printf("Panel build completed:")
	logger.Printf("  Quarters:   %d", result.QuartersProcessed)
	logger.Printf("  Records:    %d", result.RecordsRead)
	logger.Printf("  Aggregates: %d", result.AggregatesTotal)
	logger.Printf("  Panel rows: %d (%d below threshold)", result.PanelRows, result.RowsFiltered)
	logger.Printf("  Duration:   %s", result.Duration)

	rp := pipeline.NewReportPipeline(panelStore, outputDir)
	if err := rp.Run(ctx, window, minEmployees); err != nil {
		return fmt.Errorf("write reports: %w", err)
	}

	logger.Printf("Wrote %s/employer_panel.csv and %s/PANEL_SUMMARY.md", outputDir, outputDir)
	return nil
}

// buildStores wires the wage-record source and panel sink. Memory mode
// loads fixtures and overrides the window with the fixture window when no
// window was given.
func buildStores(ctx context.Context, logger *log.Logger, windowSpec, postgresDSN, clickhouseDSN string, useMemory, migrate bool) (storage.WageRecordStore, storage.PanelStore, []domain.Period, func(), error) {
	noop := func() {}

	if useMemory {
		wageStore := memory.NewWageRecordStore()
		if err := pipeline.LoadWageRecords(ctx, wageStore); err != nil {
			return nil, nil, nil, noop, fmt.Errorf("load fixtures: %w", err)
		}

		window := pipeline.FixtureWindow
		if windowSpec != "" {
			parsed, err := domain.ParseWindow(windowSpec)
			if err != nil {
				return nil, nil, nil, noop, err
			}
			window = parsed
		}

		logger.Printf("Using in-memory stores with fixture data (%d quarters)", len(window))
		return wageStore, memory.NewPanelStore(), window, noop, nil
	}

	if windowSpec == "" {
		return nil, nil, nil, noop, fmt.Errorf("--window is required outside memory mode")
	}
	window, err := domain.ParseWindow(windowSpec)
	if err != nil {
		return nil, nil, nil, noop, err
	}

	if postgresDSN == "" {
		return nil, nil, nil, noop, fmt.Errorf("--postgres-dsn is required outside memory mode")
	}

	pool, err := pgstore.NewPool(ctx, postgresDSN)
	if err != nil {
		return nil, nil, nil, noop, err
	}
	cleanup := func() { pool.Close() }

	if migrate {
		if err := migrations.RunPostgresMigrations(ctx, pool); err != nil {
			cleanup()
			return nil, nil, nil, noop, fmt.Errorf("postgres migrations: %w", err)
		}
	}

	wageStore := pgstore.NewWageRecordStore(pool)

	// Panel sink: ClickHouse when configured, otherwise Postgres.
	if clickhouseDSN != "" {
		conn, err := migrations.RunClickhouseMigrations(ctx, clickhouseDSN)
		if err != nil {
			cleanup()
			return nil, nil, nil, noop, fmt.Errorf("clickhouse migrations: %w", err)
		}
		chCleanup := func() {
			conn.Close()
			pool.Close()
		}
		logger.Printf("Panel sink: ClickHouse")
		return wageStore, chstore.NewPanelStore(conn), window, chCleanup, nil
	}

	logger.Printf("Panel sink: Postgres")
	return wageStore, pgstore.NewPanelStore(pool), window, cleanup, nil
}
