package reporting

import (
	"context"
	"math"
	"testing"
	"time"

	"wage-panel/internal/domain"
	"wage-panel/internal/storage/memory"
)

func ptr(v float64) *float64 { return &v }

func testRow(employer string, year, quarter, workers int, empRate, hireRate, sepRate *float64) *domain.PanelRow {
	return &domain.PanelRow{
		EmployerAggregate: domain.EmployerAggregate{
			EmployerID:   employer,
			IndustryCode: "3361",
			Year:         year,
			Quarter:      quarter,
			WorkerCount:  workers,
			TotalWages:   float64(workers) * 9000,
			AvgWages:     9000,
			WagesP25:     8000,
			WagesP75:     10000,
		},
		EmploymentRate: empRate,
		HireRate:       hireRate,
		SeparationRate: sepRate,
	}
}

func TestGenerator_Generate(t *testing.T) {
	store := memory.NewPanelStore()
	ctx := context.Background()

	err := store.InsertBulk(ctx, []*domain.PanelRow{
		// Q1: rates undefined for both employers
		testRow("e1", 2023, 1, 10, nil, nil, nil),
		testRow("e2", 2023, 1, 6, nil, nil, nil),
		// Q2: defined rates
		testRow("e1", 2023, 2, 12, ptr(0.2), ptr(0.3), ptr(0.1)),
		testRow("e2", 2023, 2, 6, ptr(0.0), ptr(0.1), ptr(0.1)),
	})
	if err != nil {
		t.Fatalf("seed panel failed: %v", err)
	}

	fixed := time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)
	gen := NewGenerator(store).WithClock(func() time.Time { return fixed })

	window := []domain.Period{
		{Year: 2023, Quarter: 1},
		{Year: 2023, Quarter: 2},
	}
	report, err := gen.Generate(ctx, window, 5)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	if !report.GeneratedAt.Equal(fixed) {
		t.Errorf("GeneratedAt = %v, want %v", report.GeneratedAt, fixed)
	}
	if report.TotalRows != 4 {
		t.Errorf("TotalRows = %d, want 4", report.TotalRows)
	}
	if report.TotalEmployers != 2 {
		t.Errorf("TotalEmployers = %d, want 2", report.TotalEmployers)
	}
	if len(report.Quarters) != 2 {
		t.Fatalf("got %d quarter summaries, want 2", len(report.Quarters))
	}

	q1 := report.Quarters[0]
	if q1.Employers != 2 || q1.Workers != 16 {
		t.Errorf("Q1: employers=%d workers=%d, want 2/16", q1.Employers, q1.Workers)
	}
	if !math.IsNaN(q1.MeanEmploymentRate) {
		t.Errorf("Q1 mean employment rate = %v, want NaN (no defined rates)", q1.MeanEmploymentRate)
	}
	if q1.UndefinedRateRows != 2 {
		t.Errorf("Q1 undefined rows = %d, want 2", q1.UndefinedRateRows)
	}

	q2 := report.Quarters[1]
	if math.Abs(q2.MeanEmploymentRate-0.1) > 1e-9 {
		t.Errorf("Q2 mean employment rate = %v, want 0.1", q2.MeanEmploymentRate)
	}
	if math.Abs(q2.MeanHireRate-0.2) > 1e-9 {
		t.Errorf("Q2 mean hire rate = %v, want 0.2", q2.MeanHireRate)
	}
	if q2.UndefinedRateRows != 0 {
		t.Errorf("Q2 undefined rows = %d, want 0", q2.UndefinedRateRows)
	}
}

func TestGenerator_EmptyWindow(t *testing.T) {
	gen := NewGenerator(memory.NewPanelStore())

	report, err := gen.Generate(context.Background(), nil, 5)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if report.TotalRows != 0 || len(report.Quarters) != 0 {
		t.Errorf("empty window produced rows=%d quarters=%d", report.TotalRows, len(report.Quarters))
	}
}
