package catalog

import (
	"github.com/tphakala/go-iir-bench/internal/kernel"
	"github.com/tphakala/go-iir-bench/internal/simdops"
)

// DCGain returns the gain at 0 Hz implied by coefficients of width F.
//
// For direct forms it is Σb / Σa. For a cascade it is the product of the
// per-section gains (b0+b1+b2) / (1+a1+a2); the carried a0 is ignored, as in
// the kernels.
func DCGain[F kernel.Float](s kernel.Structure, c kernel.Coefficients[F]) float64 {
	ops := simdops.For[F]()

	if s != kernel.Cascade {
		return float64(ops.Sum(c.B)) / float64(ops.Sum(c.A))
	}

	gain := 1.0
	for i := range c.Sections() {
		section := c.SOS[i*kernel.SOSStride : (i+1)*kernel.SOSStride]
		num := float64(ops.Sum(section[:3]))
		den := 1 + float64(section[4]) + float64(section[5])
		gain *= num / den
	}
	return gain
}

// SectionGains returns the DC gain of every cascade section, in order.
func SectionGains[F kernel.Float](c kernel.Coefficients[F]) []float64 {
	gains := make([]float64, c.Sections())
	for i := range gains {
		section := c.SOS[i*kernel.SOSStride : (i+1)*kernel.SOSStride]
		gains[i] = DCGain(kernel.Cascade, kernel.Coefficients[F]{SOS: section})
	}
	return gains
}
