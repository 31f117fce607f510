package iirbench

import (
	"github.com/tphakala/go-iir-bench/internal/kernel"
	"github.com/tphakala/go-iir-bench/internal/metric"
	"github.com/tphakala/go-iir-bench/internal/signal"
)

// Float is the type constraint for supported sample widths.
type Float = kernel.Float

// Coefficients holds the coefficients of one realization in width F:
// B and A for the direct forms, SOS for a cascade.
type Coefficients[F Float] = kernel.Coefficients[F]

// SOSStride is the number of values per second-order section.
const SOSStride = kernel.SOSStride

// Filter runs realization s over x and returns a new output buffer.
func Filter[F Float](s Structure, x []F, c Coefficients[F]) ([]F, error) {
	return kernel.Filter(s, x, c)
}

// Apply runs realization s over x into y, which must have the same length.
// DF1 requires distinct buffers; the other structures may run in place.
func Apply[F Float](s Structure, x, y []F, c Coefficients[F]) error {
	return kernel.Apply(s, x, y, c)
}

// Impulse returns a unit impulse of length n.
func Impulse[F Float](n int) []F {
	return signal.Impulse[F](n)
}

// MAE returns mean |float32(ref[n]) - test[n]|, the score of the precision
// analysis.
func MAE(ref []float64, test []float32) (float64, error) {
	return metric.MAE(ref, test)
}

// ParseStructure maps "DF1", "DF2", "TDF2" or "CASCADE" to a Structure.
func ParseStructure(label string) (Structure, error) {
	return kernel.ParseStructure(label)
}
