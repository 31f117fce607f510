package iirbench

import (
	"errors"
	"fmt"
	"slices"

	"github.com/tphakala/go-iir-bench/internal/analysis"
	"github.com/tphakala/go-iir-bench/internal/catalog"
	"github.com/tphakala/go-iir-bench/internal/kernel"
	"github.com/tphakala/go-iir-bench/internal/results"
)

// Structure selects a filter realization.
type Structure = kernel.Structure

// Realizations.
const (
	DF1     = kernel.DF1
	DF2     = kernel.DF2
	TDF2    = kernel.TDF2
	Cascade = kernel.Cascade
)

// Width selects the sample and coefficient precision.
type Width = kernel.Width

// Widths.
const (
	Single = kernel.Single
	Double = kernel.Double
)

// NoiseMode selects how the noise inputs of the two widths relate.
type NoiseMode = analysis.NoiseMode

// Noise modes.
const (
	NoiseIndependent = analysis.NoiseIndependent
	NoiseSeeded      = analysis.NoiseSeeded
)

// Catalog types.
type (
	FilterSpec = catalog.FilterSpec
	Catalog    = catalog.Catalog
	Query      = catalog.Query
)

// Result types.
type (
	Sink         = results.Sink
	PrecisionRow = results.PrecisionRow
	TimeRow      = results.TimeRow
	Summary      = analysis.Summary
	TimeGroup    = analysis.TimeGroup
)

// Stream headers.
var (
	PrecisionHeader = results.PrecisionHeader
	TimeHeader      = results.TimeHeader
)

// ErrInvalidConfig indicates invalid harness configuration.
var ErrInvalidConfig = errors.New("invalid benchmark configuration")

// Config holds harness configuration.
type Config struct {
	// SampleRate is used to size timing buffers, in Hz.
	// Zero uses the catalog's sample rate.
	SampleRate int

	// DurationMinutes is the length of one timing buffer.
	DurationMinutes int

	// ImpulseLength is the impulse length of the precision analysis.
	ImpulseLength int

	// NoiseLength is the noise length of the precision analysis.
	NoiseLength int

	// NoiseWindow is the number of leading noise samples scored.
	// Must not exceed NoiseLength.
	NoiseWindow int

	// Repetitions is the number of timing passes over the selected entries.
	Repetitions int

	// Widths lists the widths timed, in order.
	Widths []Width

	// NoiseMode selects independent or seeded noise for the precision analysis.
	NoiseMode NoiseMode

	// Seed seeds the noise generator. Zero seeds from the runtime.
	Seed uint64
}

// DefaultConfig returns the configuration the published results use.
func DefaultConfig() Config {
	return Config{
		DurationMinutes: DefaultDurationMinutes,
		ImpulseLength:   DefaultImpulseLength,
		NoiseLength:     DefaultNoiseLength,
		NoiseWindow:     DefaultNoiseWindow,
		Repetitions:     DefaultRepetitions,
		Widths:          []Width{Single, Double},
		NoiseMode:       NoiseIndependent,
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.SampleRate < 0 {
		return fmt.Errorf("%w: sample rate must not be negative", ErrInvalidConfig)
	}

	if c.DurationMinutes < 1 || c.DurationMinutes > maxDurationMinutes {
		return fmt.Errorf("%w: duration must be 1-%d minutes", ErrInvalidConfig, maxDurationMinutes)
	}

	if c.Repetitions < 1 || c.Repetitions > maxRepetitions {
		return fmt.Errorf("%w: repetitions must be 1-%d", ErrInvalidConfig, maxRepetitions)
	}

	if len(c.Widths) == 0 {
		return fmt.Errorf("%w: at least one width is required", ErrInvalidConfig)
	}
	for i, w := range c.Widths {
		if !slices.Contains(kernel.Widths, w) {
			return fmt.Errorf("%w: unknown width %s", ErrInvalidConfig, w)
		}
		if slices.Contains(c.Widths[:i], w) {
			return fmt.Errorf("%w: width %s listed twice", ErrInvalidConfig, w)
		}
	}

	if err := c.precision().Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	return nil
}

func (c *Config) precision() analysis.PrecisionConfig {
	return analysis.PrecisionConfig{
		ImpulseLength: c.ImpulseLength,
		NoiseLength:   c.NoiseLength,
		NoiseWindow:   c.NoiseWindow,
		NoiseMode:     c.NoiseMode,
	}
}
