// Package continuity derives employment-continuity flags for quarterly
// wage records by probing the adjacent quarters' record sets.
package continuity

import "wage-panel/internal/domain"

// jobKey identifies a (worker, employer) pair within one quarter.
type jobKey struct {
	workerID   string
	employerID string
}

// Tag produces TaggedRecords for one quarter given the quarter's records
// and the record sets for the adjacent quarters. Either neighbor set may be
// nil when the quarter sits at a window boundary; absent neighbor data
// counts as not-employed, so the window's first quarter is all hires and
// the last all separations.
//
// Tagging has no side effects, is idempotent, and is order-independent
// across records. A missing match is an expected outcome, never an error.
func Tag(current, prior, next []*domain.WageRecord) []*domain.TaggedRecord {
	priorJobs := indexJobs(prior)
	nextJobs := indexJobs(next)

	tagged := make([]*domain.TaggedRecord, 0, len(current))
	for _, r := range current {
		key := jobKey{workerID: r.WorkerID, employerID: r.EmployerID}
		_, inPrior := priorJobs[key]
		_, inNext := nextJobs[key]

		tagged = append(tagged, &domain.TaggedRecord{
			WageRecord:           *r,
			EmployedPriorQuarter: inPrior,
			EmployedNextQuarter:  inNext,
			IsHire:               !inPrior,
			IsSeparation:         !inNext,
		})
	}

	return tagged
}

// indexJobs builds the (worker, employer) probe set for a quarter.
func indexJobs(records []*domain.WageRecord) map[jobKey]struct{} {
	if len(records) == 0 {
		return nil
	}

	jobs := make(map[jobKey]struct{}, len(records))
	for _, r := range records {
		jobs[jobKey{workerID: r.WorkerID, employerID: r.EmployerID}] = struct{}{}
	}
	return jobs
}
