package clickhouse

import (
	"context"
	"fmt"

	"wage-panel/internal/domain"
	"wage-panel/internal/storage"
)

// PanelStore implements storage.PanelStore using ClickHouse. ClickHouse is
// the analytical sink for the assembled panel; the MergeTree engine does
// not enforce uniqueness, so append-only semantics are checked explicitly
// before insert.
type PanelStore struct {
	conn *Conn
}

// NewPanelStore creates a new PanelStore.
func NewPanelStore(conn *Conn) *PanelStore {
	return &PanelStore{conn: conn}
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

// InsertBulk adds multiple rows in one batch. Fails the entire batch on
// any duplicate (employer_id, industry_code, year, quarter).
func (s *PanelStore) InsertBulk(ctx context.Context, rows []*domain.PanelRow) error {
	if len(rows) == 0 {
		return nil
	}

	// Check for intra-batch duplicates
	seen := make(map[string]struct{}, len(rows))
	for _, r := range rows {
		key := fmt.Sprintf("%s|%s|%d|%d", r.EmployerID, r.IndustryCode, r.Year, r.Quarter)
		if _, exists := seen[key]; exists {
			return storage.ErrDuplicateKey
		}
		seen[key] = struct{}{}
	}

	// Check for duplicates against existing rows
	for _, r := range rows {
		exists, err := s.exists(ctx, r)
		if err != nil {
			return fmt.Errorf("check exists: %w", err)
		}
		if exists {
			return storage.ErrDuplicateKey
		}
	}

	batch, err := s.conn.PrepareBatch(ctx, `
		INSERT INTO employer_panel (`+panelColumns+`)
	`)
	if err != nil {
		return fmt.Errorf("prepare panel batch: %w", err)
	}

	for _, r := range rows {
		err := batch.Append(
			r.EmployerID, r.IndustryCode, int32(r.Year), int8(r.Quarter),
			uint32(r.WorkerCount), r.TotalWages, r.AvgWages, r.WagesP25, r.WagesP75,
			uint32(r.HireCount), uint32(r.SeparationCount),
			uint32(r.FullQuarterCount), r.FullQuarterTotalWages, r.FullQuarterAvgWages,
			r.EmploymentRate, r.HireRate, r.SeparationRate,
		)
		if err != nil {
			return fmt.Errorf("append panel row to batch: %w", err)
		}
	}

	if err := batch.Send(); err != nil {
		return fmt.Errorf("send panel batch: %w", err)
	}

	return nil
}

// exists checks whether a row with the same key is already stored.
func (s *PanelStore) exists(ctx context.Context, r *domain.PanelRow) (bool, error) {
	query := `
		SELECT count() FROM employer_panel
		WHERE employer_id = ? AND industry_code = ? AND year = ? AND quarter = ?
	`

	var count uint64
	err := s.conn.QueryRow(ctx, query, r.EmployerID, r.IndustryCode, int32(r.Year), int8(r.Quarter)).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// GetByPeriod retrieves the panel rows for one quarter, ordered by
// employer_id ASC.
func (s *PanelStore) GetByPeriod(ctx context.Context, year, quarter int) ([]*domain.PanelRow, error) {
	query := `
		SELECT ` + panelColumns + `
		FROM employer_panel
		WHERE year = ? AND quarter = ?
		ORDER BY employer_id ASC
	`

	rows, err := s.conn.Query(ctx, query, int32(year), int8(quarter))
	if err != nil {
		return nil, fmt.Errorf("get panel rows by period: %w", err)
	}
	defer rows.Close()

	return s.scanRows(rows)
}

// GetByEmployer retrieves one employer's rows, ordered by year, quarter ASC.
func (s *PanelStore) GetByEmployer(ctx context.Context, employerID string) ([]*domain.PanelRow, error) {
	query := `
		SELECT ` + panelColumns + `
		FROM employer_panel
		WHERE employer_id = ?
		ORDER BY year ASC, quarter ASC
	`

	rows, err := s.conn.Query(ctx, query, employerID)
	if err != nil {
		return nil, fmt.Errorf("get panel rows by employer: %w", err)
	}
	defer rows.Close()

	return s.scanRows(rows)
}

// GetAll retrieves the whole panel ordered by year, quarter, employer_id ASC.
func (s *PanelStore) GetAll(ctx context.Context) ([]*domain.PanelRow, error) {
	query := `
		SELECT ` + panelColumns + `
		FROM employer_panel
		ORDER BY year ASC, quarter ASC, employer_id ASC
	`

	rows, err := s.conn.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("get all panel rows: %w", err)
	}
	defer rows.Close()

	return s.scanRows(rows)
}

// rowScanner matches the subset of driver.Rows used below.
type rowScanner interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}

// scanRows scans query results into PanelRows, converting ClickHouse
// integer widths back to int.
func (s *PanelStore) scanRows(rows rowScanner) ([]*domain.PanelRow, error) {
	var out []*domain.PanelRow

	for rows.Next() {
		var (
			r       domain.PanelRow
			year    int32
			quarter int8
			workers uint32
			hires   uint32
			seps    uint32
			fqCount uint32
		)

		err := rows.Scan(
			&r.EmployerID, &r.IndustryCode, &year, &quarter,
			&workers, &r.TotalWages, &r.AvgWages, &r.WagesP25, &r.WagesP75,
			&hires, &seps,
			&fqCount, &r.FullQuarterTotalWages, &r.FullQuarterAvgWages,
			&r.EmploymentRate, &r.HireRate, &r.SeparationRate,
		)
		if err != nil {
			return nil, fmt.Errorf("scan panel row: %w", err)
		}

		r.Year = int(year)
		r.Quarter = int(quarter)
		r.WorkerCount = int(workers)
		r.HireCount = int(hires)
		r.SeparationCount = int(seps)
		r.FullQuarterCount = int(fqCount)

		out = append(out, &r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate panel rows: %w", err)
	}

	return out, nil
}
