package pipeline

import (
	"context"
	"fmt"

	"wage-panel/internal/domain"
	"wage-panel/internal/storage"
)

// FixtureWindow is the analysis window the fixture data spans.
var FixtureWindow = []domain.Period{
	{Year: 2023, Quarter: 1},
	{Year: 2023, Quarter: 2},
	{Year: 2023, Quarter: 3},
	{Year: 2023, Quarter: 4},
}

// LoadWageRecords loads synthetic wage records for fixture-mode runs.
// The data covers a stable mid-size employer with turnover, a small
// employer that oscillates around the headcount threshold, and an employer
// whose industry code changes mid-window.
func LoadWageRecords(ctx context.Context, store storage.WageRecordStore) error {
	var records []*domain.WageRecord

	add := func(worker, employer, industry string, quarter int, wages float64) {
		records = append(records, &domain.WageRecord{
			WorkerID:     worker,
			EmployerID:   employer,
			IndustryCode: industry,
			Year:         2023,
			Quarter:      quarter,
			Wages:        wages,
		})
	}

	// Employer A (manufacturing): 8 stable workers all four quarters, plus
	// one single-quarter worker per quarter from Q2 on (a hire that also
	// separates).
	for q := 1; q <= 4; q++ {
		for w := 1; w <= 8; w++ {
			add(fmt.Sprintf("a-worker-%02d", w), "emp-a", "3361", q, 9000+float64(w)*250)
		}
		if q >= 2 {
			add(fmt.Sprintf("a-temp-%d", q), "emp-a", "3361", q, 4200)
		}
	}

	// Employer B (retail): 4 workers in Q1 and Q3 (below the default
	// threshold), 6 in Q2 and Q4.
	for q := 1; q <= 4; q++ {
		n := 4
		if q%2 == 0 {
			n = 6
		}
		for w := 1; w <= n; w++ {
			add(fmt.Sprintf("b-worker-%02d", w), "emp-b", "4451", q, 6500+float64(w)*100)
		}
	}

	// Employer C (professional services): 5 stable workers; industry code
	// recoded between Q2 and Q3, which the growth-rate join ignores.
	for q := 1; q <= 4; q++ {
		industry := "5411"
		if q >= 3 {
			industry = "5415"
		}
		for w := 1; w <= 5; w++ {
			add(fmt.Sprintf("c-worker-%02d", w), "emp-c", industry, q, 15000+float64(w)*500)
		}
	}

	return store.InsertBulk(ctx, records)
}
