// Package main renders report files from an already-persisted employer
// panel without rebuilding it.
package main

import (
	"context"
	"flag"
	"log"
	"os"

	"wage-panel/internal/domain"
	"wage-panel/internal/panel"
	"wage-panel/internal/pipeline"
	"wage-panel/internal/storage"
	chstore "wage-panel/internal/storage/clickhouse"
	pgstore "wage-panel/internal/storage/postgres"
)

func main() {
	windowSpec := flag.String("window", "", "Analysis window, e.g. 2022Q1-2024Q1")
	minEmployees := flag.Int("min-employees", panel.DefaultMinEmployees, "Threshold the panel was built with (report metadata)")
	postgresDSN := flag.String("postgres-dsn", "", "PostgreSQL connection string holding the panel")
	clickhouseDSN := flag.String("clickhouse-dsn", "", "ClickHouse DSN holding the panel (overrides Postgres)")
	outputDir := flag.String("output-dir", "docs", "Output directory for generated files")
	flag.Parse()

	logger := log.New(os.Stdout, "[report] ", log.LstdFlags)

	window, err := domain.ParseWindow(*windowSpec)
	if err != nil {
		logger.Fatalf("Invalid window: %v", err)
	}

	ctx := context.Background()

	var panelStore storage.PanelStore
	switch {
	case *clickhouseDSN != "":
		conn, err := chstore.NewConn(ctx, *clickhouseDSN)
		if err != nil {
			logger.Fatalf("ClickHouse connection failed: %v", err)
		}
		defer conn.Close()
		panelStore = chstore.NewPanelStore(conn)
	case *postgresDSN != "":
		pool, err := pgstore.NewPool(ctx, *postgresDSN)
		if err != nil {
			logger.Fatalf("Postgres connection failed: %v", err)
		}
		defer pool.Close()
		panelStore = pgstore.NewPanelStore(pool)
	default:
		logger.Fatal("One of --postgres-dsn or --clickhouse-dsn is required")
	}

	rp := pipeline.NewReportPipeline(panelStore, *outputDir)
	if err := rp.Run(ctx, window, *minEmployees); err != nil {
		logger.Fatalf("Report generation failed: %v", err)
	}

	logger.Printf("Wrote %s/employer_panel.csv and %s/PANEL_SUMMARY.md", *outputDir, *outputDir)
}
