package iirbench

import "github.com/tphakala/go-iir-bench/internal/analysis"

// Harness defaults.
const (
	// DefaultSampleRate is the rate the built-in coefficient tables target, in Hz.
	DefaultSampleRate = analysis.DefaultSampleRate

	// DefaultDurationMinutes is the length of a timing buffer.
	DefaultDurationMinutes = analysis.DefaultDurationMinutes

	// DefaultImpulseLength is the impulse length of the precision analysis.
	DefaultImpulseLength = analysis.DefaultImpulseLength

	// DefaultNoiseLength is the noise length of the precision analysis.
	DefaultNoiseLength = analysis.DefaultNoiseLength

	// DefaultNoiseWindow is the number of leading noise samples scored.
	DefaultNoiseWindow = analysis.DefaultNoiseWindow

	// DefaultRepetitions is the number of timing passes.
	DefaultRepetitions = 20
)

// Limits
const (
	maxDurationMinutes = 60
	maxRepetitions     = 10000
)
