// Package panel filters per-quarter joined rows against the minimum
// headcount threshold and unions them across the analysis window into the
// final employer-quarter panel.
package panel

import (
	"context"
	"fmt"

	"wage-panel/internal/domain"
	"wage-panel/internal/storage"
)

// DefaultMinEmployees is the minimum distinct-worker count an
// employer-quarter must reach to enter the panel.
const DefaultMinEmployees = 5

// Assembler builds the final panel from per-quarter joined rows.
type Assembler struct {
	minEmployees int
}

// NewAssembler creates an Assembler. minEmployees below 1 falls back to
// DefaultMinEmployees.
func NewAssembler(minEmployees int) *Assembler {
	if minEmployees < 1 {
		minEmployees = DefaultMinEmployees
	}
	return &Assembler{minEmployees: minEmployees}
}

// FilterQuarter drops rows whose distinct-worker count is below the
// threshold. The filter is applied per quarter, before the union: a row
// failing the threshold in its own quarter never enters the panel even if
// the same employer passes in other quarters.
func (a *Assembler) FilterQuarter(rows []*domain.PanelRow) []*domain.PanelRow {
	kept := make([]*domain.PanelRow, 0, len(rows))
	for _, r := range rows {
		if r.WorkerCount >= a.minEmployees {
			kept = append(kept, r)
		}
	}
	return kept
}

// Assemble filters each quarter's rows and concatenates them in window
// order. All surviving rows are kept; there is no deduplication and no
// further transformation.
func (a *Assembler) Assemble(quarters [][]*domain.PanelRow) []*domain.PanelRow {
	var out []*domain.PanelRow
	for _, rows := range quarters {
		out = append(out, a.FilterQuarter(rows)...)
	}
	return out
}

// AssembleAndStore assembles the panel and persists it. Returns the
// assembled rows alongside any storage error.
func (a *Assembler) AssembleAndStore(ctx context.Context, store storage.PanelStore, quarters [][]*domain.PanelRow) ([]*domain.PanelRow, error) {
	rows := a.Assemble(quarters)
	if err := store.InsertBulk(ctx, rows); err != nil {
		return nil, fmt.Errorf("persist panel: %w", err)
	}
	return rows, nil
}
