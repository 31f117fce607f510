// Package analysis runs filter realizations and reduces their outputs to
// precision and timing measurements.
package analysis

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tphakala/go-iir-bench/internal/catalog"
	"github.com/tphakala/go-iir-bench/internal/kernel"
	"github.com/tphakala/go-iir-bench/internal/metric"
	"github.com/tphakala/go-iir-bench/internal/results"
	"github.com/tphakala/go-iir-bench/internal/signal"
)

// Precision analysis defaults.
const (
	DefaultImpulseLength = 4096
	DefaultNoiseLength   = 4096

	// DefaultNoiseWindow is the number of leading noise samples compared.
	// Divergence of near-unstable filters grows with sample count, so only
	// an early window is scored.
	DefaultNoiseWindow = 128
)

// ErrInvalidConfig indicates analyzer settings that cannot produce a measurement.
var ErrInvalidConfig = errors.New("invalid analysis configuration")

// NoiseMode selects how the noise inputs of the two widths relate.
type NoiseMode int

const (
	// NoiseIndependent draws each width's noise from the shared source in
	// turn, float32 first. The two inputs are different sequences.
	NoiseIndependent NoiseMode = iota

	// NoiseSeeded draws each width's noise from a fresh source created from
	// the same seed, so the float32 input is the float64 input rounded.
	NoiseSeeded
)

// String implements fmt.Stringer.
func (m NoiseMode) String() string {
	switch m {
	case NoiseIndependent:
		return "independent"
	case NoiseSeeded:
		return "seeded"
	default:
		return fmt.Sprintf("NoiseMode(%d)", int(m))
	}
}

// ParseNoiseMode is the inverse of NoiseMode.String.
func ParseNoiseMode(s string) (NoiseMode, error) {
	switch strings.ToLower(s) {
	case "independent":
		return NoiseIndependent, nil
	case "seeded":
		return NoiseSeeded, nil
	default:
		return 0, fmt.Errorf("%w: unknown noise mode %q", ErrInvalidConfig, s)
	}
}

// PrecisionConfig configures a PrecisionAnalyzer.
type PrecisionConfig struct {
	ImpulseLength int
	NoiseLength   int
	NoiseWindow   int
	NoiseMode     NoiseMode
}

// DefaultPrecisionConfig returns the settings the published results use.
func DefaultPrecisionConfig() PrecisionConfig {
	return PrecisionConfig{
		ImpulseLength: DefaultImpulseLength,
		NoiseLength:   DefaultNoiseLength,
		NoiseWindow:   DefaultNoiseWindow,
		NoiseMode:     NoiseIndependent,
	}
}

// Validate checks the configuration.
func (c PrecisionConfig) Validate() error {
	if c.ImpulseLength <= 0 {
		return fmt.Errorf("%w: impulse length must be positive, got %d", ErrInvalidConfig, c.ImpulseLength)
	}
	if c.NoiseLength <= 0 {
		return fmt.Errorf("%w: noise length must be positive, got %d", ErrInvalidConfig, c.NoiseLength)
	}
	if c.NoiseWindow <= 0 || c.NoiseWindow > c.NoiseLength {
		return fmt.Errorf("%w: noise window must be in [1, %d], got %d",
			ErrInvalidConfig, c.NoiseLength, c.NoiseWindow)
	}
	if c.NoiseMode != NoiseIndependent && c.NoiseMode != NoiseSeeded {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, c.NoiseMode)
	}
	return nil
}

// PrecisionAnalyzer measures how far a single-precision realization drifts
// from its double-precision counterpart.
//
// It draws noise from a signal.Source and is therefore not safe for
// concurrent use.
type PrecisionAnalyzer struct {
	cfg PrecisionConfig
	src *signal.Source
}

// NewPrecisionAnalyzer validates cfg and returns an analyzer drawing noise
// from src.
func NewPrecisionAnalyzer(cfg PrecisionConfig, src *signal.Source) (*PrecisionAnalyzer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if src == nil {
		return nil, fmt.Errorf("%w: nil signal source", ErrInvalidConfig)
	}
	return &PrecisionAnalyzer{cfg: cfg, src: src}, nil
}

// Analyze returns one row per signal type: the impulse MAE over the whole
// response, then the noise MAE over the leading window.
func (p *PrecisionAnalyzer) Analyze(spec catalog.FilterSpec) ([]results.PrecisionRow, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}

	impulseMAE, err := compare(spec,
		signal.Impulse[float32](p.cfg.ImpulseLength),
		signal.Impulse[float64](p.cfg.ImpulseLength),
		p.cfg.ImpulseLength)
	if err != nil {
		return nil, fmt.Errorf("%s impulse: %w", spec.Name, err)
	}

	x32, x64 := p.noise()
	noiseMAE, err := compare(spec, x32, x64, p.cfg.NoiseWindow)
	if err != nil {
		return nil, fmt.Errorf("%s noise: %w", spec.Name, err)
	}

	return []results.PrecisionRow{
		precisionRow(spec, results.SignalImpulse, impulseMAE),
		precisionRow(spec, results.SignalNoise, noiseMAE),
	}, nil
}

func (p *PrecisionAnalyzer) noise() ([]float32, []float64) {
	n := p.cfg.NoiseLength
	if p.cfg.NoiseMode == NoiseSeeded {
		seed := p.src.Seed()
		return signal.WhiteNoise[float32](n, signal.NewSource(seed)),
			signal.WhiteNoise[float64](n, signal.NewSource(seed))
	}
	x32 := signal.WhiteNoise[float32](n, p.src)
	x64 := signal.WhiteNoise[float64](n, p.src)
	return x32, x64
}

// compare runs both widths and scores the first window samples.
func compare(spec catalog.FilterSpec, x32 []float32, x64 []float64, window int) (float64, error) {
	y32, err := kernel.Filter(spec.Structure, x32, spec.F32)
	if err != nil {
		return 0, err
	}
	y64, err := kernel.Filter(spec.Structure, x64, spec.F64)
	if err != nil {
		return 0, err
	}
	return metric.MAEWindow(y64, y32, window)
}

func precisionRow(spec catalog.FilterSpec, sig results.Signal, mae float64) results.PrecisionRow {
	return results.PrecisionRow{
		Family:    spec.Family,
		Type:      kernel.Single,
		Structure: spec.Structure,
		CutoffHz:  spec.CutoffHz,
		Order:     spec.Order,
		Signal:    sig,
		MAE:       mae,
	}
}
