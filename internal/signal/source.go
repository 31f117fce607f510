// Package signal generates the synthetic test signals fed to the filter kernels.
package signal

import (
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/tphakala/go-iir-bench/internal/kernel"
)

// Noise bounds: samples are uniform in [noiseMin, noiseMax).
const (
	noiseMin = -1.0
	noiseMax = 1.0
)

// Source is an explicit pseudorandom generator handle.
//
// A Source is not safe for concurrent use. Callers that share one across
// goroutines must serialize access themselves.
type Source struct {
	src  rand.Source
	seed uint64
}

// NewSource returns a Source that produces the same stream for the same seed.
func NewSource(seed uint64) *Source {
	return &Source{src: rand.NewPCG(seed, seed), seed: seed}
}

// NewRandomSource returns a Source seeded from the runtime's entropy.
func NewRandomSource() *Source {
	return NewSource(rand.Uint64())
}

// Seed returns the seed the Source was created with.
func (s *Source) Seed() uint64 {
	return s.seed
}

// Impulse returns a unit impulse of length n: x[0] = 1, every other sample 0.
func Impulse[F kernel.Float](n int) []F {
	x := Zeros[F](n)
	if n > 0 {
		x[0] = 1
	}
	return x
}

// WhiteNoise returns n samples uniformly distributed in [-1, 1), drawn from src.
//
// Each sample is drawn in float64 and rounded to F. Rounding can carry a
// float32 sample up to exactly 1; such samples are pulled back to the largest
// float32 below 1 so the half-open range holds in every width.
func WhiteNoise[F kernel.Float](n int, src *Source) []F {
	u := distuv.Uniform{Min: noiseMin, Max: noiseMax, Src: src.src}
	below := F(math.Nextafter32(noiseMax, 0))

	x := make([]F, n)
	for i := range x {
		v := F(u.Rand())
		if v >= noiseMax {
			v = below
		}
		x[i] = v
	}
	return x
}

// Zeros returns an all-zero buffer of length n.
func Zeros[F kernel.Float](n int) []F {
	return make([]F, n)
}
