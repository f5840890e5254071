package storage

import (
	"context"

	"wage-panel/internal/domain"
)

// WageRecordStore provides access to the quarterly UI wage-record store.
// The pipeline treats it as read-only input; InsertBulk exists for loading
// fixtures and test data.
type WageRecordStore interface {
	// InsertBulk adds multiple wage records atomically. Fails the entire
	// batch on any duplicate (worker_id, employer_id, year, quarter).
	InsertBulk(ctx context.Context, records []*domain.WageRecord) error

	// GetByPeriod retrieves all records for (year, quarter) with a
	// non-empty worker id, ordered by employer_id, worker_id ASC.
	GetByPeriod(ctx context.Context, year, quarter int) ([]*domain.WageRecord, error)

	// GetByWorkerEmployer retrieves all records for a (worker, employer)
	// pair across quarters, ordered by year, quarter ASC.
	GetByWorkerEmployer(ctx context.Context, workerID, employerID string) ([]*domain.WageRecord, error)

	// CountByPeriod returns the number of records for (year, quarter)
	// with a non-empty worker id.
	CountByPeriod(ctx context.Context, year, quarter int) (int, error)
}

// PanelStore persists the assembled employer-quarter panel.
type PanelStore interface {
	// InsertBulk adds multiple panel rows atomically. Fails the entire
	// batch on any duplicate (employer_id, industry_code, year, quarter).
	InsertBulk(ctx context.Context, rows []*domain.PanelRow) error

	// GetByPeriod retrieves the panel rows for one quarter, ordered by
	// employer_id ASC.
	GetByPeriod(ctx context.Context, year, quarter int) ([]*domain.PanelRow, error)

	// GetByEmployer retrieves one employer's rows across the panel,
	// ordered by year, quarter ASC.
	GetByEmployer(ctx context.Context, employerID string) ([]*domain.PanelRow, error)

	// GetAll retrieves the whole panel ordered by year, quarter,
	// employer_id ASC.
	GetAll(ctx context.Context) ([]*domain.PanelRow, error)
}
