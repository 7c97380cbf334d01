package testutil

import (
	"math"
	"testing"
)

func TestRequireNearlyEqual(t *testing.T) {
	RequireNearlyEqual(t, "close", 1.0, 1.0+1e-12, 1e-9)
}

func TestRequireSliceNearlyEqual(t *testing.T) {
	RequireSliceNearlyEqual(t, []float64{1, 2, 3}, []float64{1, 2 + 1e-12, 3}, 1e-9)
	RequireSliceNearlyEqual(t, nil, []float64{}, 0)
}

func TestRequireFinite(t *testing.T) {
	RequireFinite(t, []float64{0, -1, math.MaxFloat64})
}
