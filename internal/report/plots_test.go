package report

import (
	"bytes"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tphakala/go-iir-bench/internal/kernel"
	"github.com/tphakala/go-iir-bench/internal/results"
)

var pngMagic = []byte("\x89PNG\r\n\x1a\n")

func TestTimingHistogram(t *testing.T) {
	seconds := []float64{0.011, 0.012, 0.012, 0.013, 0.015, 0.012}

	img, err := TimingHistogram("butter DF1 order 4", seconds, 0)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(img, pngMagic))

	_, err = TimingHistogram("empty", nil, 10)
	require.ErrorIs(t, err, ErrNoData)
}

func TestMAEChart(t *testing.T) {
	var rows []results.PrecisionRow
	for _, s := range kernel.Structures {
		for i, order := range []int{2, 4, 8} {
			rows = append(rows,
				results.PrecisionRow{Structure: s, Order: order, Signal: results.SignalImpulse, MAE: math.Pow(10, float64(-9+i))},
				results.PrecisionRow{Structure: s, Order: order, Signal: results.SignalNoise, MAE: math.NaN()},
			)
		}
	}

	img, err := MAEChart(rows, results.SignalImpulse)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(img, pngMagic))

	// Only non-finite noise rows: nothing to draw.
	_, err = MAEChart(rows, results.SignalNoise)
	require.ErrorIs(t, err, ErrNoData)
}
