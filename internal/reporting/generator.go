package reporting

import (
	"context"
	"math"
	"time"

	"gonum.org/v1/gonum/stat"

	"wage-panel/internal/domain"
	"wage-panel/internal/storage"
)

// Generator produces window summaries from a stored panel.
type Generator struct {
	panelStore storage.PanelStore
	now        func() time.Time // Injectable clock for deterministic output
}

// NewGenerator creates a new report generator.
func NewGenerator(panelStore storage.PanelStore) *Generator {
	return &Generator{
		panelStore: panelStore,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// WithClock sets a custom clock function for deterministic output.
func (g *Generator) WithClock(now func() time.Time) *Generator {
	g.now = now
	return g
}

// Generate summarizes the stored panel for the given window.
func (g *Generator) Generate(ctx context.Context, window []domain.Period, minEmployees int) (*Report, error) {
	report := &Report{
		GeneratedAt:  g.now(),
		Window:       window,
		MinEmployees: minEmployees,
	}

	employers := make(map[string]struct{})

	for _, p := range window {
		rows, err := g.panelStore.GetByPeriod(ctx, p.Year, p.Quarter)
		if err != nil {
			return nil, err
		}

		summary := summarizeQuarter(p, rows)
		report.Quarters = append(report.Quarters, summary)
		report.TotalRows += len(rows)

		for _, r := range rows {
			employers[r.EmployerID] = struct{}{}
		}
	}

	report.TotalEmployers = len(employers)
	return report, nil
}

// summarizeQuarter computes one quarter's summary. Rate means cover only
// rows whose rates are defined; a quarter with no defined rates (the
// window's first quarter) reports NaN means.
func summarizeQuarter(p domain.Period, rows []*domain.PanelRow) QuarterSummary {
	summary := QuarterSummary{Period: p, Employers: len(rows)}

	var empRates, hireRates, sepRates []float64
	for _, r := range rows {
		summary.Workers += r.WorkerCount

		if r.EmploymentRate == nil {
			summary.UndefinedRateRows++
			continue
		}
		empRates = append(empRates, *r.EmploymentRate)
		hireRates = append(hireRates, *r.HireRate)
		sepRates = append(sepRates, *r.SeparationRate)
	}

	summary.MeanEmploymentRate = meanOrNaN(empRates)
	summary.MeanHireRate = meanOrNaN(hireRates)
	summary.MeanSeparationRate = meanOrNaN(sepRates)

	return summary
}

func meanOrNaN(values []float64) float64 {
	if len(values) == 0 {
		return math.NaN()
	}
	return stat.Mean(values, nil)
}
