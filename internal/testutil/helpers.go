// Package testutil provides reusable test helper functions for filter benchmark tests.
package testutil

import (
	"math"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
)

// Float mirrors the sample-width constraint used by the kernels.
type Float interface {
	float32 | float64
}

// Unit roundoff per width (half the machine epsilon).
const (
	float32Roundoff = 0x1p-24
	float64Roundoff = 0x1p-53
)

// Roundoff returns the unit roundoff of width F.
func Roundoff[F Float]() float64 {
	var zero F
	if _, ok := any(zero).(float32); ok {
		return float32Roundoff
	}
	return float64Roundoff
}

// ULPTolerance returns an absolute tolerance of ulps units of roundoff at
// width F, scaled by the magnitude of the values being compared.
func ULPTolerance[F Float](ulps, scale float64) float64 {
	if scale < 1 {
		scale = 1
	}
	return ulps * Roundoff[F]() * scale
}

// AssertNoNaNOrInf verifies that no elements in the slice are NaN or Inf.
func AssertNoNaNOrInf[F Float](t *testing.T, s []F, msgAndArgs ...any) bool {
	t.Helper()
	for i, v := range s {
		f := float64(v)
		if math.IsNaN(f) {
			return assert.Fail(t, "found NaN", "s[%d] is NaN", i)
		}
		if math.IsInf(f, 0) {
			return assert.Fail(t, "found Inf", "s[%d] is Inf", i)
		}
	}
	return true
}

// AssertAllInRange verifies that all elements are within [min, max).
func AssertAllInRange[F Float](t *testing.T, s []F, minVal, maxVal float64, msgAndArgs ...any) bool {
	t.Helper()
	for i, v := range s {
		f := float64(v)
		if f < minVal || f >= maxVal {
			return assert.Fail(t, "value out of range",
				"s[%d]=%g is outside range [%g, %g)", i, f, minVal, maxVal)
		}
	}
	return true
}

// AssertAllZero verifies that every element is exactly zero.
func AssertAllZero[F Float](t *testing.T, s []F, msgAndArgs ...any) bool {
	t.Helper()
	for i, v := range s {
		if v != 0 {
			return assert.Fail(t, "non-zero sample", "s[%d]=%g", i, float64(v))
		}
	}
	return true
}

// AssertSliceInDelta verifies that two slices have equal length and every
// element pair differs by at most tolerance.
func AssertSliceInDelta[F Float](t *testing.T, expected, actual []F, tolerance float64, msgAndArgs ...any) bool {
	t.Helper()
	if !assert.Len(t, actual, len(expected), msgAndArgs...) {
		return false
	}
	for i := range expected {
		if !assert.InDelta(t, float64(expected[i]), float64(actual[i]), tolerance,
			"index %d: expected %g, got %g", i, float64(expected[i]), float64(actual[i])) {
			return false
		}
	}
	return true
}

// MaxAbs returns the largest absolute value in s.
func MaxAbs[F Float](s []F) float64 {
	var m float64
	for _, v := range s {
		m = math.Max(m, math.Abs(float64(v)))
	}
	return m
}

// StableLowpass returns (b, a) of a second-order Butterworth low-pass at
// fc = 1 kHz, fs = 48 kHz, for tests that need a realistic stable filter.
func StableLowpass() (b, a []float64) {
	return []float64{0.003916126660547369, 0.007832253321094738, 0.003916126660547369},
		[]float64{1.0, -1.815341082704568, 0.8310055893467575}
}

// StableLowpass4 returns (b, a) of a fourth-order Butterworth low-pass at
// fc = 5 kHz, fs = 48 kHz, and the matching two-section SOS table.
func StableLowpass4() (b, a, sos []float64) {
	return slices.Clone(fourthOrderB), slices.Clone(fourthOrderA), slices.Clone(fourthOrderSOS)
}
