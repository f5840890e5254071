package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"wage-panel/internal/domain"
	"wage-panel/internal/storage"
)

// WageRecordStore implements storage.WageRecordStore using PostgreSQL.
type WageRecordStore struct {
	pool *Pool
}

// NewWageRecordStore creates a new WageRecordStore.
func NewWageRecordStore(pool *Pool) *WageRecordStore {
	return &WageRecordStore{pool: pool}
}

// Compile-time interface check.
var _ storage.WageRecordStore = (*WageRecordStore)(nil)

// InsertBulk adds multiple records atomically. Fails the entire batch on
// any duplicate (worker_id, employer_id, year, quarter).
func (s *WageRecordStore) InsertBulk(ctx context.Context, records []*domain.WageRecord) error {
	if len(records) == 0 {
		return nil
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO wage_records (
			worker_id, employer_id, industry_code, year, quarter, wages
		) VALUES (
			$1, $2, $3, $4, $5, $6
		)
	`

	for _, r := range records {
		_, err := tx.Exec(ctx, query,
			r.WorkerID, r.EmployerID, r.IndustryCode, r.Year, r.Quarter, r.Wages,
		)
		if err != nil {
			if isDuplicateKeyError(err) {
				return storage.ErrDuplicateKey
			}
			return fmt.Errorf("insert wage record in bulk: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}

	return nil
}

// GetByPeriod retrieves all records for (year, quarter) with a non-empty
// worker id, ordered by employer_id, worker_id ASC.
func (s *WageRecordStore) GetByPeriod(ctx context.Context, year, quarter int) ([]*domain.WageRecord, error) {
	query := `
		SELECT worker_id, employer_id, industry_code, year, quarter, wages
		FROM wage_records
		WHERE year = $1 AND quarter = $2 AND worker_id <> ''
		ORDER BY employer_id ASC, worker_id ASC
	`

	rows, err := s.pool.Query(ctx, query, year, quarter)
	if err != nil {
		return nil, fmt.Errorf("get wage records by period: %w", err)
	}
	defer rows.Close()

	return scanWageRecords(rows)
}

// GetByWorkerEmployer retrieves all records for a (worker, employer) pair,
// ordered by year, quarter ASC.
func (s *WageRecordStore) GetByWorkerEmployer(ctx context.Context, workerID, employerID string) ([]*domain.WageRecord, error) {
	query := `
		SELECT worker_id, employer_id, industry_code, year, quarter, wages
		FROM wage_records
		WHERE worker_id = $1 AND employer_id = $2
		ORDER BY year ASC, quarter ASC
	`

	rows, err := s.pool.Query(ctx, query, workerID, employerID)
	if err != nil {
		return nil, fmt.Errorf("get wage records by worker/employer: %w", err)
	}
	defer rows.Close()

	return scanWageRecords(rows)
}

// CountByPeriod returns the number of records for (year, quarter) with a
// non-empty worker id.
func (s *WageRecordStore) CountByPeriod(ctx context.Context, year, quarter int) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM wage_records
		WHERE year = $1 AND quarter = $2 AND worker_id <> ''
	`

	var n int
	if err := s.pool.QueryRow(ctx, query, year, quarter).Scan(&n); err != nil {
		return 0, fmt.Errorf("count wage records by period: %w", err)
	}
	return n, nil
}

// scanWageRecords scans multiple rows into a slice of WageRecord.
func scanWageRecords(rows pgx.Rows) ([]*domain.WageRecord, error) {
	var records []*domain.WageRecord

	for rows.Next() {
		var r domain.WageRecord

		err := rows.Scan(
			&r.WorkerID, &r.EmployerID, &r.IndustryCode, &r.Year, &r.Quarter, &r.Wages,
		)
		if err != nil {
			return nil, fmt.Errorf("scan wage record row: %w", err)
		}

		records = append(records, &r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate wage record rows: %w", err)
	}

	return records, nil
}
