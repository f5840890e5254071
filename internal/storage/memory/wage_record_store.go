package memory

import (
	"context"
	"sort"
	"sync"

	"wage-panel/internal/domain"
	"wage-panel/internal/storage"
)

type wageKey struct {
	workerID   string
	employerID string
	year       int
	quarter    int
}

// WageRecordStore is an in-memory implementation of storage.WageRecordStore.
type WageRecordStore struct {
	mu   sync.RWMutex
	data map[wageKey]*domain.WageRecord
}

// NewWageRecordStore creates a new in-memory wage record store.
func NewWageRecordStore() *WageRecordStore {
	return &WageRecordStore{
		data: make(map[wageKey]*domain.WageRecord),
	}
}

// Compile-time interface check.
var _ storage.WageRecordStore = (*WageRecordStore)(nil)

func recordKey(r *domain.WageRecord) wageKey {
	return wageKey{
		workerID:   r.WorkerID,
		employerID: r.EmployerID,
		year:       r.Year,
		quarter:    r.Quarter,
	}
}

// InsertBulk adds multiple records atomically. Fails the entire batch on
// any duplicate (worker_id, employer_id, year, quarter).
func (s *WageRecordStore) InsertBulk(_ context.Context, records []*domain.WageRecord) error {
	if len(records) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Track keys in this batch to detect intra-batch duplicates
	batchKeys := make(map[wageKey]struct{}, len(records))

	for _, r := range records {
		if r == nil || r.EmployerID == "" || r.Quarter < 1 || r.Quarter > 4 {
			return storage.ErrInvalidInput
		}
		key := recordKey(r)
		if _, exists := s.data[key]; exists {
			return storage.ErrDuplicateKey
		}
		if _, exists := batchKeys[key]; exists {
			return storage.ErrDuplicateKey
		}
		batchKeys[key] = struct{}{}
	}

	for _, r := range records {
		copy := *r
		s.data[recordKey(r)] = &copy
	}

	return nil
}

// GetByPeriod retrieves all records for (year, quarter) with a non-empty
// worker id, ordered by employer_id, worker_id ASC.
func (s *WageRecordStore) GetByPeriod(_ context.Context, year, quarter int) ([]*domain.WageRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*domain.WageRecord
	for _, r := range s.data {
		if r.Year == year && r.Quarter == quarter && r.WorkerID != "" {
			copy := *r
			out = append(out, &copy)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].EmployerID != out[j].EmployerID {
			return out[i].EmployerID < out[j].EmployerID
		}
		return out[i].WorkerID < out[j].WorkerID
	})

	return out, nil
}

// GetByWorkerEmployer retrieves all records for a (worker, employer) pair,
// ordered by year, quarter ASC.
func (s *WageRecordStore) GetByWorkerEmployer(_ context.Context, workerID, employerID string) ([]*domain.WageRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*domain.WageRecord
	for _, r := range s.data {
		if r.WorkerID == workerID && r.EmployerID == employerID {
			copy := *r
			out = append(out, &copy)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Year != out[j].Year {
			return out[i].Year < out[j].Year
		}
		return out[i].Quarter < out[j].Quarter
	})

	return out, nil
}

// CountByPeriod returns the number of records for (year, quarter) with a
// non-empty worker id.
func (s *WageRecordStore) CountByPeriod(_ context.Context, year, quarter int) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := 0
	for _, r := range s.data {
		if r.Year == year && r.Quarter == quarter && r.WorkerID != "" {
			n++
		}
	}
	return n, nil
}
