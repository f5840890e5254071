package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"wage-panel/internal/domain"
	"wage-panel/internal/storage"
)

// PanelStore implements storage.PanelStore using PostgreSQL.
type PanelStore struct {
	pool *Pool
}

// NewPanelStore creates a new PanelStore.
func NewPanelStore(pool *Pool) *PanelStore {
	return &PanelStore{pool: pool}
}

// Compile-time interface check.
var _ storage.PanelStore = (*PanelStore)(nil)

const panelColumns = `
	employer_id, industry_code, year, quarter,
	worker_count, total_wages, avg_wages, wages_p25, wages_p75,
	hire_count, separation_count,
	fq_worker_count, fq_total_wages, fq_avg_wages,
	employment_rate, hire_rate, separation_rate
`

// InsertBulk adds multiple rows atomically. Fails the entire batch on any
// duplicate (employer_id, industry_code, year, quarter).
func (s *PanelStore) InsertBulk(ctx context.Context, panelRows []*domain.PanelRow) error {
	if len(panelRows) == 0 {
		return nil
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO employer_panel (` + panelColumns + `
		) VALUES (
			$1, $2, $3, $4,
			$5, $6, $7, $8, $9,
			$10, $11,
			$12, $13, $14,
			$15, $16, $17
		)
	`

	for _, r := range panelRows {
		_, err := tx.Exec(ctx, query,
			r.EmployerID, r.IndustryCode, r.Year, r.Quarter,
			r.WorkerCount, r.TotalWages, r.AvgWages, r.WagesP25, r.WagesP75,
			r.HireCount, r.SeparationCount,
			r.FullQuarterCount, r.FullQuarterTotalWages, r.FullQuarterAvgWages,
			r.EmploymentRate, r.HireRate, r.SeparationRate,
		)
		if err != nil {
			if isDuplicateKeyError(err) {
				return storage.ErrDuplicateKey
			}
			return fmt.Errorf("insert panel row in bulk: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}

	return nil
}

// GetByPeriod retrieves the panel rows for one quarter, ordered by
// employer_id ASC.
func (s *PanelStore) GetByPeriod(ctx context.Context, year, quarter int) ([]*domain.PanelRow, error) {
	query := `
		SELECT ` + panelColumns + `
		FROM employer_panel
		WHERE year = $1 AND quarter = $2
		ORDER BY employer_id ASC
	`

	rows, err := s.pool.Query(ctx, query, year, quarter)
	if err != nil {
		return nil, fmt.Errorf("get panel rows by period: %w", err)
	}
	defer rows.Close()

	return scanPanelRows(rows)
}

// GetByEmployer retrieves one employer's rows, ordered by year, quarter ASC.
func (s *PanelStore) GetByEmployer(ctx context.Context, employerID string) ([]*domain.PanelRow, error) {
	query := `
		SELECT ` + panelColumns + `
		FROM employer_panel
		WHERE employer_id = $1
		ORDER BY year ASC, quarter ASC
	`

	rows, err := s.pool.Query(ctx, query, employerID)
	if err != nil {
		return nil, fmt.Errorf("get panel rows by employer: %w", err)
	}
	defer rows.Close()

	return scanPanelRows(rows)
}

// GetAll retrieves the whole panel ordered by year, quarter, employer_id ASC.
func (s *PanelStore) GetAll(ctx context.Context) ([]*domain.PanelRow, error) {
	query := `
		SELECT ` + panelColumns + `
		FROM employer_panel
		ORDER BY year ASC, quarter ASC, employer_id ASC
	`

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("get all panel rows: %w", err)
	}
	defer rows.Close()

	return scanPanelRows(rows)
}

// scanPanelRows scans multiple rows into a slice of PanelRow.
func scanPanelRows(rows pgx.Rows) ([]*domain.PanelRow, error) {
	var out []*domain.PanelRow

	for rows.Next() {
		var r domain.PanelRow

		err := rows.Scan(
			&r.EmployerID, &r.IndustryCode, &r.Year, &r.Quarter,
			&r.WorkerCount, &r.TotalWages, &r.AvgWages, &r.WagesP25, &r.WagesP75,
			&r.HireCount, &r.SeparationCount,
			&r.FullQuarterCount, &r.FullQuarterTotalWages, &r.FullQuarterAvgWages,
			&r.EmploymentRate, &r.HireRate, &r.SeparationRate,
		)
		if err != nil {
			return nil, fmt.Errorf("scan panel row: %w", err)
		}

		out = append(out, &r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate panel rows: %w", err)
	}

	return out, nil
}
