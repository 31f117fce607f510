package analysis

import (
	"fmt"
	"time"

	"github.com/tphakala/go-iir-bench/internal/catalog"
	"github.com/tphakala/go-iir-bench/internal/kernel"
	"github.com/tphakala/go-iir-bench/internal/results"
	"github.com/tphakala/go-iir-bench/internal/signal"
)

// Timing defaults.
const (
	DefaultSampleRate      = 48000
	DefaultDurationMinutes = 1
	secondsPerMinute       = 60
)

// TimingLength returns the number of samples in durationMinutes of audio.
func TimingLength(sampleRate, durationMinutes int) int {
	return sampleRate * secondsPerMinute * durationMinutes
}

// TimeAnalyzer measures the wall-clock cost of one kernel call over a large
// noise buffer. It keeps no state between calls; callers repeat Measure to
// build a distribution.
type TimeAnalyzer struct {
	length int
	src    *signal.Source
	clock  func() time.Time
}

// NewTimeAnalyzer returns an analyzer timing buffers of length samples.
func NewTimeAnalyzer(length int, src *signal.Source) (*TimeAnalyzer, error) {
	if length <= 0 {
		return nil, fmt.Errorf("%w: timing length must be positive, got %d", ErrInvalidConfig, length)
	}
	if src == nil {
		return nil, fmt.Errorf("%w: nil signal source", ErrInvalidConfig)
	}
	return &TimeAnalyzer{length: length, src: src, clock: time.Now}, nil
}

// Length returns the buffer length in samples.
func (t *TimeAnalyzer) Length() int {
	return t.length
}

// Measure times spec at width w. Buffer allocation and noise generation
// happen before the clock starts.
func (t *TimeAnalyzer) Measure(spec catalog.FilterSpec, w kernel.Width) (results.TimeRow, error) {
	if err := spec.Validate(); err != nil {
		return results.TimeRow{}, err
	}

	var row results.TimeRow
	var err error
	switch w {
	case kernel.Single:
		row, err = timeKernel(t, spec, spec.F32)
	case kernel.Double:
		row, err = timeKernel(t, spec, spec.F64)
	default:
		err = fmt.Errorf("%w: unknown width %s", ErrInvalidConfig, w)
	}
	if err != nil {
		return results.TimeRow{}, fmt.Errorf("%s %s: %w", spec.Name, w.Label(), err)
	}
	return row, nil
}

func timeKernel[F kernel.Float](t *TimeAnalyzer, spec catalog.FilterSpec, c kernel.Coefficients[F]) (results.TimeRow, error) {
	x := signal.WhiteNoise[F](t.length, t.src)
	y := signal.Zeros[F](t.length)

	start := t.clock()
	err := kernel.Apply(spec.Structure, x, y, c)
	elapsed := t.clock().Sub(start)
	if err != nil {
		return results.TimeRow{}, err
	}

	return results.TimeRow{
		Family:    spec.Family,
		Type:      kernel.WidthOf[F](),
		Structure: spec.Structure,
		CutoffHz:  spec.CutoffHz,
		Order:     spec.Order,
		Seconds:   elapsed.Seconds(),
	}, nil
}
