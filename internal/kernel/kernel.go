// Package kernel implements the four IIR filter realizations measured by the
// benchmark: Direct Form I, Direct Form II, Transposed Direct Form II and a
// cascade of second-order sections.
//
// Every kernel is generic over the sample width. The arithmetic of each
// multiply-add happens in F, and each product is explicitly converted to F
// before it is accumulated. The conversion stops the compiler from fusing the
// multiply and add into a single FMA instruction, so the rounding sequence is
// the same on every architecture and the float32/float64 divergence measured
// by the precision analysis is a property of the realization, not of the CPU.
package kernel

import (
	"errors"
	"fmt"
	"strings"
)

// Float is the type constraint for supported sample widths.
type Float interface {
	float32 | float64
}

// SOSStride is the number of values per second-order section: b0, b1, b2, a0, a1, a2.
const SOSStride = 6

// Offsets into one SOS section. a0 is carried in the layout but never read.
const (
	sosB0 = 0
	sosB1 = 1
	sosB2 = 2
	sosA1 = 4
	sosA2 = 5
)

// Minimum coefficient counts per structure.
const (
	minDirectTaps = 1
	minTDF2Taps   = 2
	minSections   = 1
)

// Validation errors returned before any kernel runs.
var (
	// ErrInvalidCoefficients indicates mismatched or malformed coefficient slices.
	ErrInvalidCoefficients = errors.New("invalid filter coefficients")

	// ErrOrderTooLow indicates the filter order is below the minimum for the structure.
	ErrOrderTooLow = errors.New("filter order too low for structure")

	// ErrBufferMismatch indicates input and output buffers of different lengths.
	ErrBufferMismatch = errors.New("input and output buffer lengths differ")

	// ErrAliasedBuffers indicates input and output buffers that overlap in a way
	// the structure cannot filter through.
	ErrAliasedBuffers = errors.New("input and output buffers alias")

	// ErrUnknownStructure indicates a structure value outside the enum.
	ErrUnknownStructure = errors.New("unknown filter structure")

	// ErrUnknownWidth indicates a width label that names neither float32 nor float64.
	ErrUnknownWidth = errors.New("unknown sample width")
)

// Structure enumerates the filter realizations.
type Structure int

const (
	// DF1 is Direct Form I: separate feed-forward and feedback delay lines.
	DF1 Structure = iota

	// DF2 is Direct Form II: one shared delay line of length order+1.
	DF2

	// TDF2 is Transposed Direct Form II: order state variables updated in place.
	TDF2

	// Cascade is a series of biquad sections, each in Direct Form II.
	Cascade
)

// Structures lists every realization in reporting order.
var Structures = []Structure{DF1, DF2, TDF2, Cascade}

// String returns the label used in result files.
func (s Structure) String() string {
	switch s {
	case DF1:
		return "DF1"
	case DF2:
		return "DF2"
	case TDF2:
		return "TDF2"
	case Cascade:
		return "CASCADE"
	default:
		return fmt.Sprintf("Structure(%d)", int(s))
	}
}

// IsDirect reports whether the structure is parameterized by b/a polynomials.
func (s Structure) IsDirect() bool {
	return s == DF1 || s == DF2 || s == TDF2
}

// ParseStructure maps a label (case-insensitive) to a Structure.
func ParseStructure(label string) (Structure, error) {
	switch strings.ToUpper(strings.TrimSpace(label)) {
	case "DF1":
		return DF1, nil
	case "DF2":
		return DF2, nil
	case "TDF2":
		return TDF2, nil
	case "CASCADE", "SOS":
		return Cascade, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownStructure, label)
	}
}

// Width enumerates the numeric widths a kernel can run in.
type Width int

const (
	// Single is IEEE-754 binary32 (float32).
	Single Width = iota

	// Double is IEEE-754 binary64 (float64).
	Double
)

// Widths lists both widths in reporting order.
var Widths = []Width{Single, Double}

// Label returns the type label used in result files.
func (w Width) Label() string {
	switch w {
	case Single:
		return "float"
	case Double:
		return "double"
	default:
		return fmt.Sprintf("Width(%d)", int(w))
	}
}

// String implements fmt.Stringer.
func (w Width) String() string {
	return w.Label()
}

// ParseWidth maps "float"/"float32"/"single" and "double"/"float64" to a Width.
func ParseWidth(label string) (Width, error) {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "float", "float32", "single", "f32":
		return Single, nil
	case "double", "float64", "f64":
		return Double, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownWidth, label)
	}
}

// WidthOf returns the Width matching the type parameter F.
func WidthOf[F Float]() Width {
	var zero F
	if _, ok := any(zero).(float32); ok {
		return Single
	}
	return Double
}
