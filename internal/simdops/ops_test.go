package simdops

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tphakala/simd/f64"
)

func TestSum(t *testing.T) {
	assert.InDelta(t, 10.0, For[float64]().Sum([]float64{1, 2, 3, 4}), 1e-12)
	assert.InDelta(t, float32(10), For[float32]().Sum([]float32{1, 2, 3, 4}), 1e-6)
	assert.Zero(t, For[float64]().Sum(nil))
}

func TestForReturnsSharedTables(t *testing.T) {
	assert.Same(t, For[float64](), For[float64]())
	assert.Same(t, For[float32](), For[float32]())
}

// BenchmarkDirectF64Sum measures direct SIMD call overhead.
func BenchmarkDirectF64Sum(b *testing.B) {
	a := make([]float64, 64)
	for i := range a {
		a[i] = float64(i) * 0.01
	}

	b.ReportAllocs()
	for b.Loop() {
		_ = f64.Sum(a)
	}
}

// BenchmarkIndirectF64Sum measures indirect call through Ops struct.
func BenchmarkIndirectF64Sum(b *testing.B) {
	ops := For[float64]()
	a := make([]float64, 64)
	for i := range a {
		a[i] = float64(i) * 0.01
	}

	b.ReportAllocs()
	for b.Loop() {
		_ = ops.Sum(a)
	}
}
