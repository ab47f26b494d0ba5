package types

import "math"

const floatCmpEpsilon = 1e-12

// MinNaN returns the smaller of a and b. If either operand is NaN the other
// one is returned, so a NaN never wins a comparison.
func MinNaN(a, b float64) float64 {
	if a < b || math.IsNaN(b) {
		return a
	}
	return b
}

// MaxNaN returns the larger of a and b. If either operand is NaN the other
// one is returned.
func MaxNaN(a, b float64) float64 {
	if a > b || math.IsNaN(b) {
		return a
	}
	return b
}
