package aggregate

import (
	"math/rand"
	"reflect"
	"testing"

	"wage-panel/internal/domain"
)

func tagged(worker, employer, industry string, wages float64, prior, next bool) *domain.TaggedRecord {
	return &domain.TaggedRecord{
		WageRecord: domain.WageRecord{
			WorkerID:     worker,
			EmployerID:   employer,
			IndustryCode: industry,
			Year:         2023,
			Quarter:      2,
			Wages:        wages,
		},
		EmployedPriorQuarter: prior,
		EmployedNextQuarter:  next,
		IsHire:               !prior,
		IsSeparation:         !next,
	}
}

// employerE builds the worked scenario: 6 workers, 60000 total wages,
// 4 full-quarter workers totalling 44000, 2 single-quarter workers.
func employerE() []*domain.TaggedRecord {
	return []*domain.TaggedRecord{
		tagged("w1", "E", "722", 10000, true, true),
		tagged("w2", "E", "722", 11000, true, true),
		tagged("w3", "E", "722", 11500, true, true),
		tagged("w4", "E", "722", 11500, true, true),
		tagged("w5", "E", "722", 8000, false, false),
		tagged("w6", "E", "722", 8000, false, false),
	}
}

func TestCompute_WorkedScenario(t *testing.T) {
	aggs := Compute(employerE())
	if len(aggs) != 1 {
		t.Fatalf("got %d aggregates, want 1", len(aggs))
	}
	a := aggs[0]

	if a.WorkerCount != 6 {
		t.Errorf("WorkerCount: got %d, want 6", a.WorkerCount)
	}
	if a.TotalWages != 60000 {
		t.Errorf("TotalWages: got %f, want 60000", a.TotalWages)
	}
	if a.AvgWages != 10000 {
		t.Errorf("AvgWages: got %f, want 10000", a.AvgWages)
	}
	if a.HireCount != 2 {
		t.Errorf("HireCount: got %d, want 2", a.HireCount)
	}
	if a.SeparationCount != 2 {
		t.Errorf("SeparationCount: got %d, want 2", a.SeparationCount)
	}

	if a.FullQuarterCount != 4 {
		t.Errorf("FullQuarterCount: got %d, want 4", a.FullQuarterCount)
	}
	if a.FullQuarterTotalWages == nil || *a.FullQuarterTotalWages != 44000 {
		t.Errorf("FullQuarterTotalWages: got %v, want 44000", a.FullQuarterTotalWages)
	}
	if a.FullQuarterAvgWages == nil || *a.FullQuarterAvgWages != 11000 {
		t.Errorf("FullQuarterAvgWages: got %v, want 11000", a.FullQuarterAvgWages)
	}

	// sorted wages: 8000 8000 10000 11000 11500 11500
	// p25 rank = ceil(1.5) = 2 -> 8000, p75 rank = ceil(4.5) = 5 -> 11500
	if a.WagesP25 != 8000 {
		t.Errorf("WagesP25: got %f, want 8000", a.WagesP25)
	}
	if a.WagesP75 != 11500 {
		t.Errorf("WagesP75: got %f, want 11500", a.WagesP75)
	}
}

func TestCompute_FullQuarterNeverExceedsTotal(t *testing.T) {
	records := employerE()
	records = append(records,
		tagged("x1", "F", "445", 5000, true, false),
		tagged("x2", "F", "445", 5200, false, true),
	)

	for _, a := range Compute(records) {
		if a.FullQuarterCount > a.WorkerCount {
			t.Errorf("%s: full-quarter count %d exceeds worker count %d",
				a.EmployerID, a.FullQuarterCount, a.WorkerCount)
		}
	}
}

func TestCompute_EmptyFullQuarterSubsetIsUndefined(t *testing.T) {
	records := []*domain.TaggedRecord{
		tagged("w1", "G", "531", 7000, false, true),
		tagged("w2", "G", "531", 7500, true, false),
	}

	a := Compute(records)[0]
	if a.FullQuarterCount != 0 {
		t.Fatalf("FullQuarterCount: got %d, want 0", a.FullQuarterCount)
	}
	// Undefined, not zero: nil must be distinguishable from 0 earnings.
	if a.FullQuarterTotalWages != nil {
		t.Errorf("FullQuarterTotalWages: got %v, want nil", *a.FullQuarterTotalWages)
	}
	if a.FullQuarterAvgWages != nil {
		t.Errorf("FullQuarterAvgWages: got %v, want nil", *a.FullQuarterAvgWages)
	}
}

func TestCompute_GroupsByIndustry(t *testing.T) {
	// Same employer id under two industry codes forms two groups.
	records := []*domain.TaggedRecord{
		tagged("w1", "H", "3361", 9000, true, true),
		tagged("w2", "H", "3361", 9100, true, true),
		tagged("w3", "H", "4451", 8000, true, true),
	}

	aggs := Compute(records)
	if len(aggs) != 2 {
		t.Fatalf("got %d aggregates, want 2", len(aggs))
	}
	if aggs[0].IndustryCode != "3361" || aggs[1].IndustryCode != "4451" {
		t.Errorf("unexpected industry order: %s, %s", aggs[0].IndustryCode, aggs[1].IndustryCode)
	}
	if aggs[0].WorkerCount != 2 || aggs[1].WorkerCount != 1 {
		t.Errorf("unexpected group sizes: %d, %d", aggs[0].WorkerCount, aggs[1].WorkerCount)
	}
}

func TestCompute_DeterministicUnderShuffle(t *testing.T) {
	records := employerE()
	records = append(records,
		tagged("x1", "F", "445", 5000, true, true),
		tagged("x2", "F", "445", 5200, false, true),
	)

	want := Compute(records)

	rng := rand.New(rand.NewSource(7))
	for trial := 0; trial < 10; trial++ {
		shuffled := make([]*domain.TaggedRecord, len(records))
		copy(shuffled, records)
		rng.Shuffle(len(shuffled), func(i, j int) {
			shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
		})

		got := Compute(shuffled)
		if !reflect.DeepEqual(flatten(got), flatten(want)) {
			t.Fatalf("trial %d: aggregation depends on input order", trial)
		}
	}
}

// flatten copies aggregates by value so DeepEqual compares contents, not
// pointer identity of the nullable fields.
func flatten(aggs []*domain.EmployerAggregate) []domain.EmployerAggregate {
	out := make([]domain.EmployerAggregate, len(aggs))
	for i, a := range aggs {
		c := *a
		if a.FullQuarterTotalWages != nil {
			v := *a.FullQuarterTotalWages
			c.FullQuarterTotalWages = &v
		}
		if a.FullQuarterAvgWages != nil {
			v := *a.FullQuarterAvgWages
			c.FullQuarterAvgWages = &v
		}
		out[i] = c
	}
	return out
}
