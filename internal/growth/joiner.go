package growth

import "wage-panel/internal/domain"

// PriorIndex maps employer id to that employer's prior-quarter summary.
// The match key is employer id alone: an industry recode between quarters
// still matches the prior row. When the prior quarter carries multiple
// rows for one employer, the first in aggregate order wins.
type PriorIndex map[string]domain.PriorSummary

// BuildPriorIndex indexes a quarter's aggregates by employer id for the
// next quarter's join.
func BuildPriorIndex(aggregates []*domain.EmployerAggregate) PriorIndex {
	if len(aggregates) == 0 {
		return nil
	}

	idx := make(PriorIndex, len(aggregates))
	for _, a := range aggregates {
		if _, exists := idx[a.EmployerID]; exists {
			continue
		}
		idx[a.EmployerID] = a.PriorSummary()
	}
	return idx
}

// Join extends one employer-quarter aggregate with growth rates against the
// prior quarter. A nil prior index (the window's first quarter) or a
// missing employer leaves all three rates undefined; an employer present in
// both quarters gets the symmetric rate for employment, hires, and
// separations, with a both-zero measure yielding exactly 0.
func Join(agg *domain.EmployerAggregate, prior PriorIndex) *domain.PanelRow {
	row := &domain.PanelRow{EmployerAggregate: *agg}

	summary, ok := prior[agg.EmployerID]
	if !ok {
		return row
	}

	employment := SymmetricRate(agg.WorkerCount, summary.WorkerCount)
	hires := SymmetricRate(agg.HireCount, summary.HireCount)
	seps := SymmetricRate(agg.SeparationCount, summary.SeparationCount)

	row.EmploymentRate = &employment
	row.HireRate = &hires
	row.SeparationRate = &seps

	return row
}

// JoinQuarter joins every aggregate of one quarter against the prior
// quarter's index, preserving aggregate order.
func JoinQuarter(aggregates []*domain.EmployerAggregate, prior PriorIndex) []*domain.PanelRow {
	rows := make([]*domain.PanelRow, 0, len(aggregates))
	for _, a := range aggregates {
		rows = append(rows, Join(a, prior))
	}
	return rows
}
