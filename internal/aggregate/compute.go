package aggregate

import (
	"math"
	"sort"
)

// nearestRankPercentile selects the p-th percentile of wages using the
// nearest-rank method: the value at rank ceil(p*n) of the ascending sort.
// The result is always an observed wage, never interpolated.
// sorted must be pre-sorted ASC and non-empty.
func nearestRankPercentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	rank := int(math.Ceil(p * float64(n)))
	if rank < 1 {
		rank = 1
	}
	if rank > n {
		rank = n
	}
	return sorted[rank-1]
}

// sortedWages returns an ascending copy of wages.
func sortedWages(wages []float64) []float64 {
	out := make([]float64, len(wages))
	copy(out, wages)
	sort.Float64s(out)
	return out
}
