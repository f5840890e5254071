package memory

import (
	"context"
	"errors"
	"testing"

	"wage-panel/internal/domain"
	"wage-panel/internal/storage"
)

func wageRecord(worker, employer string, year, quarter int, wages float64) *domain.WageRecord {
	return &domain.WageRecord{
		WorkerID:     worker,
		EmployerID:   employer,
		IndustryCode: "722",
		Year:         year,
		Quarter:      quarter,
		Wages:        wages,
	}
}

func TestWageRecordStore_InsertAndGetByPeriod(t *testing.T) {
	store := NewWageRecordStore()
	ctx := context.Background()

	err := store.InsertBulk(ctx, []*domain.WageRecord{
		wageRecord("w2", "e1", 2023, 1, 9000),
		wageRecord("w1", "e1", 2023, 1, 8000),
		wageRecord("w1", "e1", 2023, 2, 8100),
	})
	if err != nil {
		t.Fatalf("InsertBulk failed: %v", err)
	}

	got, err := store.GetByPeriod(ctx, 2023, 1)
	if err != nil {
		t.Fatalf("GetByPeriod failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d records, want 2", len(got))
	}
	// Ordered by employer_id, worker_id ASC
	if got[0].WorkerID != "w1" || got[1].WorkerID != "w2" {
		t.Errorf("unexpected order: %s, %s", got[0].WorkerID, got[1].WorkerID)
	}
}

func TestWageRecordStore_SkipsEmptyWorkerID(t *testing.T) {
	store := NewWageRecordStore()
	ctx := context.Background()

	err := store.InsertBulk(ctx, []*domain.WageRecord{
		wageRecord("", "e1", 2023, 1, 5000),
		wageRecord("w1", "e1", 2023, 1, 8000),
	})
	if err != nil {
		t.Fatalf("InsertBulk failed: %v", err)
	}

	got, err := store.GetByPeriod(ctx, 2023, 1)
	if err != nil {
		t.Fatalf("GetByPeriod failed: %v", err)
	}
	if len(got) != 1 {
		t.Errorf("got %d records, want 1 (empty worker id filtered)", len(got))
	}

	n, err := store.CountByPeriod(ctx, 2023, 1)
	if err != nil {
		t.Fatalf("CountByPeriod failed: %v", err)
	}
	if n != 1 {
		t.Errorf("CountByPeriod: got %d, want 1", n)
	}
}

func TestWageRecordStore_DuplicateKey(t *testing.T) {
	store := NewWageRecordStore()
	ctx := context.Background()

	r := wageRecord("w1", "e1", 2023, 1, 8000)
	if err := store.InsertBulk(ctx, []*domain.WageRecord{r}); err != nil {
		t.Fatalf("first insert failed: %v", err)
	}

	err := store.InsertBulk(ctx, []*domain.WageRecord{r})
	if !errors.Is(err, storage.ErrDuplicateKey) {
		t.Errorf("expected ErrDuplicateKey, got %v", err)
	}
}

func TestWageRecordStore_IntraBatchDuplicateFailsWholeBatch(t *testing.T) {
	store := NewWageRecordStore()
	ctx := context.Background()

	err := store.InsertBulk(ctx, []*domain.WageRecord{
		wageRecord("w1", "e1", 2023, 1, 8000),
		wageRecord("w1", "e1", 2023, 1, 8000),
	})
	if !errors.Is(err, storage.ErrDuplicateKey) {
		t.Fatalf("expected ErrDuplicateKey, got %v", err)
	}

	n, err := store.CountByPeriod(ctx, 2023, 1)
	if err != nil {
		t.Fatalf("CountByPeriod failed: %v", err)
	}
	if n != 0 {
		t.Errorf("failed batch left %d records behind", n)
	}
}

func TestWageRecordStore_GetByWorkerEmployer(t *testing.T) {
	store := NewWageRecordStore()
	ctx := context.Background()

	err := store.InsertBulk(ctx, []*domain.WageRecord{
		wageRecord("w1", "e1", 2023, 2, 8100),
		wageRecord("w1", "e1", 2023, 1, 8000),
		wageRecord("w1", "e2", 2023, 1, 4000),
	})
	if err != nil {
		t.Fatalf("InsertBulk failed: %v", err)
	}

	got, err := store.GetByWorkerEmployer(ctx, "w1", "e1")
	if err != nil {
		t.Fatalf("GetByWorkerEmployer failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d records, want 2", len(got))
	}
	if got[0].Quarter != 1 || got[1].Quarter != 2 {
		t.Errorf("records not ordered by period: Q%d, Q%d", got[0].Quarter, got[1].Quarter)
	}
}

func TestWageRecordStore_InvalidInput(t *testing.T) {
	store := NewWageRecordStore()

	err := store.InsertBulk(context.Background(), []*domain.WageRecord{
		wageRecord("w1", "", 2023, 1, 8000),
	})
	if !errors.Is(err, storage.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput for empty employer, got %v", err)
	}
}
