package core

import "math"

// Clamp limits value to the inclusive range [min, max].
func Clamp(value, min, max float64) float64 {
	if min > max {
		min, max = max, min
	}

	if value < min {
		return min
	}

	if value > max {
		return max
	}

	return value
}

// ClampPositive limits value to [floor, ceil] where floor is expected to be
// strictly positive. NaN maps to floor, so the result is always usable as a
// divisor.
func ClampPositive(value, floor, ceil float64) float64 {
	if math.IsNaN(value) {
		return floor
	}

	return Clamp(value, floor, ceil)
}

// IsFinite reports whether x is neither NaN nor ±Inf.
func IsFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

// AllFinite reports whether every value in buf is finite.
func AllFinite(buf []float64) bool {
	for _, v := range buf {
		if !IsFinite(v) {
			return false
		}
	}

	return true
}

// FlushDenormals converts tiny denormal-like values to exact zero.
// Decaying recursive filters otherwise spend long tails in the denormal range.
func FlushDenormals(x float64) float64 {
	const epsilon = 1e-30
	if x > -epsilon && x < epsilon {
		return 0
	}

	return x
}
