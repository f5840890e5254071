// Package pipeline wraps the panel build with report generation and
// output-file writing.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"wage-panel/internal/domain"
	"wage-panel/internal/reporting"
	"wage-panel/internal/storage"
)

// ReportPipeline renders and writes panel output files:
// - employer_panel.csv
// - PANEL_SUMMARY.md
type ReportPipeline struct {
	panelStore storage.PanelStore
	reportGen  *reporting.Generator
	outputDir  string
}

// NewReportPipeline creates a report pipeline writing into outputDir.
func NewReportPipeline(panelStore storage.PanelStore, outputDir string) *ReportPipeline {
	return &ReportPipeline{
		panelStore: panelStore,
		reportGen:  reporting.NewGenerator(panelStore),
		outputDir:  outputDir,
	}
}

// WithClock sets a custom clock function for deterministic output.
func (p *ReportPipeline) WithClock(now func() time.Time) *ReportPipeline {
	p.reportGen = p.reportGen.WithClock(now)
	return p
}

// Run loads the stored panel, renders the CSV export and the markdown
// summary, and writes both files.
func (p *ReportPipeline) Run(ctx context.Context, window []domain.Period, minEmployees int) error {
	if err := os.MkdirAll(p.outputDir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	rows, err := p.panelStore.GetAll(ctx)
	if err != nil {
		return fmt.Errorf("load panel: %w", err)
	}

	csvPath := filepath.Join(p.outputDir, "employer_panel.csv")
	if err := os.WriteFile(csvPath, []byte(reporting.RenderCSV(rows)), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", csvPath, err)
	}

	report, err := p.reportGen.Generate(ctx, window, minEmployees)
	if err != nil {
		return fmt.Errorf("generate summary: %w", err)
	}

	mdPath := filepath.Join(p.outputDir, "PANEL_SUMMARY.md")
	if err := os.WriteFile(mdPath, []byte(reporting.RenderMarkdown(report)), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", mdPath, err)
	}

	return nil
}
