package memory

import (
	"context"
	"sort"
	"sync"

	"wage-panel/internal/domain"
	"wage-panel/internal/storage"
)

type panelKey struct {
	employerID   string
	industryCode string
	year         int
	quarter      int
}

// PanelStore is an in-memory implementation of storage.PanelStore.
type PanelStore struct {
	mu   sync.RWMutex
	data map[panelKey]*domain.PanelRow
}

// NewPanelStore creates a new in-memory panel store.
func NewPanelStore() *PanelStore {
	return &PanelStore{
		data: make(map[panelKey]*domain.PanelRow),
	}
}

// Compile-time interface check.
var _ storage.PanelStore = (*PanelStore)(nil)

func rowKey(r *domain.PanelRow) panelKey {
	return panelKey{
		employerID:   r.EmployerID,
		industryCode: r.IndustryCode,
		year:         r.Year,
		quarter:      r.Quarter,
	}
}

// InsertBulk adds multiple rows atomically. Fails the entire batch on any
// duplicate (employer_id, industry_code, year, quarter).
func (s *PanelStore) InsertBulk(_ context.Context, rows []*domain.PanelRow) error {
	if len(rows) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	batchKeys := make(map[panelKey]struct{}, len(rows))

	for _, r := range rows {
		if r == nil || r.EmployerID == "" {
			return storage.ErrInvalidInput
		}
		key := rowKey(r)
		if _, exists := s.data[key]; exists {
			return storage.ErrDuplicateKey
		}
		if _, exists := batchKeys[key]; exists {
			return storage.ErrDuplicateKey
		}
		batchKeys[key] = struct{}{}
	}

	for _, r := range rows {
		copy := *r
		s.data[rowKey(r)] = &copy
	}

	return nil
}

// GetByPeriod retrieves the panel rows for one quarter, ordered by
// employer_id ASC.
func (s *PanelStore) GetByPeriod(_ context.Context, year, quarter int) ([]*domain.PanelRow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*domain.PanelRow
	for _, r := range s.data {
		if r.Year == year && r.Quarter == quarter {
			copy := *r
			out = append(out, &copy)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].EmployerID < out[j].EmployerID
	})

	return out, nil
}

// GetByEmployer retrieves one employer's rows, ordered by year, quarter ASC.
func (s *PanelStore) GetByEmployer(_ context.Context, employerID string) ([]*domain.PanelRow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*domain.PanelRow
	for _, r := range s.data {
		if r.EmployerID == employerID {
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

// GetAll retrieves the whole panel ordered by year, quarter, employer_id ASC.
func (s *PanelStore) GetAll(_ context.Context) ([]*domain.PanelRow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*domain.PanelRow, 0, len(s.data))
	for _, r := range s.data {
		copy := *r
		out = append(out, &copy)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Year != out[j].Year {
			return out[i].Year < out[j].Year
		}
		if out[i].Quarter != out[j].Quarter {
			return out[i].Quarter < out[j].Quarter
		}
		return out[i].EmployerID < out[j].EmployerID
	})

	return out, nil
}
