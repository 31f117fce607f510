// Package results formats analyzer output and writes it to result streams.
package results

import (
	"strconv"

	"github.com/tphakala/go-iir-bench/internal/kernel"
)

// Signal names the test signal a precision row was measured with.
type Signal string

// Signal labels as they appear in the precision stream.
const (
	SignalImpulse Signal = "impulse"
	SignalNoise   Signal = "rand"
)

// Stream headers.
var (
	PrecisionHeader = []string{"filter_name", "type", "structure", "cutoff", "order", "signal", "MAE"}
	TimeHeader      = []string{"filter_name", "type", "structure", "cutoff", "order", "time_seconds"}
)

// Row is one fully formatted line of a result stream.
type Row interface {
	Header() []string
	Record() []string
}

// PrecisionRow is the MAE between the single- and double-precision outputs
// of one realization for one signal type.
type PrecisionRow struct {
	Family    string
	Type      kernel.Width
	Structure kernel.Structure
	CutoffHz  int
	Order     int
	Signal    Signal
	MAE       float64
}

// Header implements Row.
func (r PrecisionRow) Header() []string { return PrecisionHeader }

// Record implements Row. MAE is written in scientific notation with eight
// fractional digits.
func (r PrecisionRow) Record() []string {
	return []string{
		r.Family,
		r.Type.Label(),
		r.Structure.String(),
		strconv.Itoa(r.CutoffHz),
		strconv.Itoa(r.Order),
		string(r.Signal),
		FormatMAE(r.MAE),
	}
}

// TimeRow is the wall-clock cost of one kernel call.
type TimeRow struct {
	Family    string
	Type      kernel.Width
	Structure kernel.Structure
	CutoffHz  int
	Order     int
	Seconds   float64
}

// Header implements Row.
func (r TimeRow) Header() []string { return TimeHeader }

// Record implements Row. Seconds are written with six fractional digits.
func (r TimeRow) Record() []string {
	return []string{
		r.Family,
		r.Type.Label(),
		r.Structure.String(),
		strconv.Itoa(r.CutoffHz),
		strconv.Itoa(r.Order),
		FormatSeconds(r.Seconds),
	}
}

// FormatMAE renders an error metric, e.g. "1.23456789e-07".
func FormatMAE(v float64) string {
	return strconv.FormatFloat(v, 'e', 8, 64)
}

// FormatSeconds renders an elapsed time, e.g. "0.012345".
func FormatSeconds(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}
