// Package aggregate groups tagged wage records into employer-quarter
// summaries: headcounts, earnings, earnings percentiles, and hire and
// separation counts, once over all workers and once restricted to
// full-quarter workers.
package aggregate

import (
	"sort"

	"wage-panel/internal/domain"
)

// groupKey identifies one aggregation group within a quarter.
type groupKey struct {
	employerID   string
	industryCode string
	year         int
	quarter      int
}

// group accumulates one employer-quarter's records before finalization.
type group struct {
	key     groupKey
	wages   []float64
	fqWages []float64
	workers map[string]struct{}
	fqSet   map[string]struct{}
	hires   int
	seps    int
}

// Compute produces one EmployerAggregate per distinct
// (employer id, industry code, year, quarter) present in tagged. Output is
// sorted by employer id then industry code, so results are reproducible
// regardless of input order.
func Compute(tagged []*domain.TaggedRecord) []*domain.EmployerAggregate {
	groups := make(map[groupKey]*group)

	for _, t := range tagged {
		key := groupKey{
			employerID:   t.EmployerID,
			industryCode: t.IndustryCode,
			year:         t.Year,
			quarter:      t.Quarter,
		}

		g, ok := groups[key]
		if !ok {
			g = &group{
				key:     key,
				workers: make(map[string]struct{}),
				fqSet:   make(map[string]struct{}),
			}
			groups[key] = g
		}

		g.wages = append(g.wages, t.Wages)
		g.workers[t.WorkerID] = struct{}{}
		if t.IsHire {
			g.hires++
		}
		if t.IsSeparation {
			g.seps++
		}
		if t.FullQuarter() {
			g.fqWages = append(g.fqWages, t.Wages)
			g.fqSet[t.WorkerID] = struct{}{}
		}
	}

	out := make([]*domain.EmployerAggregate, 0, len(groups))
	for _, g := range groups {
		out = append(out, finalize(g))
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].EmployerID != out[j].EmployerID {
			return out[i].EmployerID < out[j].EmployerID
		}
		return out[i].IndustryCode < out[j].IndustryCode
	})

	return out
}

// finalize turns an accumulated group into an EmployerAggregate. A group
// always has at least one record, so the worker count division is safe.
func finalize(g *group) *domain.EmployerAggregate {
	total := 0.0
	for _, w := range g.wages {
		total += w
	}

	sorted := sortedWages(g.wages)
	workerCount := len(g.workers)

	agg := &domain.EmployerAggregate{
		EmployerID:   g.key.employerID,
		IndustryCode: g.key.industryCode,
		Year:         g.key.year,
		Quarter:      g.key.quarter,

		WorkerCount:     workerCount,
		TotalWages:      total,
		AvgWages:        total / float64(workerCount),
		WagesP25:        nearestRankPercentile(sorted, 0.25),
		WagesP75:        nearestRankPercentile(sorted, 0.75),
		HireCount:       g.hires,
		SeparationCount: g.seps,

		FullQuarterCount: len(g.fqSet),
	}

	// Full-quarter earnings stay nil when the subset is empty; nil is
	// "undefined", which must remain distinguishable from zero earnings.
	if agg.FullQuarterCount > 0 {
		fqTotal := 0.0
		for _, w := range g.fqWages {
			fqTotal += w
		}
		fqAvg := fqTotal / float64(agg.FullQuarterCount)
		agg.FullQuarterTotalWages = &fqTotal
		agg.FullQuarterAvgWages = &fqAvg
	}

	return agg
}
