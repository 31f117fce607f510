// Package metric reduces pairs of filter outputs to scalar error metrics.
package metric

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/tphakala/go-iir-bench/internal/kernel"
)

var (
	// ErrLengthMismatch indicates reference and test buffers of different lengths.
	ErrLengthMismatch = errors.New("reference and test lengths differ")

	// ErrEmpty indicates an empty comparison window.
	ErrEmpty = errors.New("empty comparison window")
)

// l1 selects the L1 norm in floats.Distance.
const l1 = 1

// MAE returns the mean absolute error between a double-precision reference
// and a test buffer of width T:
//
//	mean_n |T(ref[n]) − test[n]|
//
// The reference is rounded to T before subtracting, never the other way
// round. Non-finite samples are not filtered; they propagate into the result.
func MAE[T kernel.Float](ref []float64, test []T) (float64, error) {
	if len(ref) != len(test) {
		return 0, fmt.Errorf("%w: %d vs %d", ErrLengthMismatch, len(ref), len(test))
	}
	if len(ref) == 0 {
		return 0, ErrEmpty
	}

	down := make([]float64, len(ref))
	up := make([]float64, len(test))
	for i := range ref {
		down[i] = float64(T(ref[i]))
		up[i] = float64(test[i])
	}

	return floats.Distance(down, up, l1) / float64(len(ref)), nil
}

// MAEWindow is MAE over the first window samples of both buffers.
func MAEWindow[T kernel.Float](ref []float64, test []T, window int) (float64, error) {
	if window > len(ref) || window > len(test) {
		return 0, fmt.Errorf("%w: window %d exceeds buffers (%d, %d)",
			ErrLengthMismatch, window, len(ref), len(test))
	}
	if window <= 0 {
		return 0, ErrEmpty
	}
	return MAE(ref[:window], test[:window])
}

// IsFinite reports whether v is neither NaN nor ±Inf.
func IsFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
