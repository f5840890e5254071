// Package growth computes symmetric Davis-Haltiwanger growth rates for
// employer-quarter aggregates against the same employer's prior quarter.
package growth

// SymmetricRate computes 2*(curr-prior)/(curr+prior). When both operands
// are zero the rate is defined as exactly 0 rather than dividing by zero.
// For non-negative operands the result lies in [-2, 2] by construction.
func SymmetricRate(curr, prior int) float64 {
	if curr == 0 && prior == 0 {
		return 0
	}
	return 2 * float64(curr-prior) / float64(curr+prior)
}
