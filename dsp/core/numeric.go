package core

import "math"

// denormalThreshold is the magnitude below which FlushDenormals returns 0.
const denormalThreshold = 1e-30

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

// IsFinite reports whether x is neither NaN nor infinite.
func IsFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

// FlushDenormals converts tiny denormal-like values to exact zero.
// Feedback paths decay towards zero forever; flushing keeps them out of the
// subnormal range where arithmetic is slow on most CPUs.
func FlushDenormals(x float64) float64 {
	if x > -denormalThreshold && x < denormalThreshold {
		return 0
	}

	return x
}

// LinearToDB converts linear amplitude to dB (20*log10 convention).
// Returns -Inf for zero and NaN for negative values.
func LinearToDB(linear float64) float64 {
	if linear < 0 {
		return math.NaN()
	}

	if linear == 0 {
		return math.Inf(-1)
	}

	return 20 * math.Log10(linear)
}
