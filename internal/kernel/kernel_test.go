package kernel

import (
	"fmt"
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tphakala/go-iir-bench/internal/testutil"
)

// equivalenceULPs bounds how far the direct forms may drift apart at one width.
const equivalenceULPs = 1024

func noise[F Float](n int, seed uint64) []F {
	rng := rand.New(rand.NewPCG(seed, seed))
	x := make([]F, n)
	for i := range x {
		x[i] = F(rng.Float64()*2 - 1)
	}
	return x
}

func impulse[F Float](n int) []F {
	x := make([]F, n)
	if n > 0 {
		x[0] = 1
	}
	return x
}

func fourthOrder[F Float]() Coefficients[F] {
	b, a, sos := testutil.StableLowpass4()
	return Convert[F](Coefficients[float64]{B: b, A: a, SOS: sos})
}

func TestZeroInputZeroOutput(t *testing.T) {
	t.Run("float32", func(t *testing.T) { testZeroInput[float32](t) })
	t.Run("float64", func(t *testing.T) { testZeroInput[float64](t) })
}

func testZeroInput[F Float](t *testing.T) {
	t.Helper()
	c := fourthOrder[F]()
	for _, s := range Structures {
		for _, n := range []int{0, 1, 2, 17, 4096} {
			t.Run(fmt.Sprintf("%s/n=%d", s, n), func(t *testing.T) {
				x := make([]F, n)
				y, err := Filter(s, x, c)
				require.NoError(t, err)
				assert.Len(t, y, n)
				testutil.AssertAllZero(t, y)
			})
		}
	}
}

func TestDirectFormsEquivalent(t *testing.T) {
	t.Run("float32", func(t *testing.T) { testDirectFormsEquivalent[float32](t) })
	t.Run("float64", func(t *testing.T) { testDirectFormsEquivalent[float64](t) })
}

func testDirectFormsEquivalent[F Float](t *testing.T) {
	t.Helper()
	c := fourthOrder[F]()

	for name, x := range map[string][]F{
		"impulse": impulse[F](4096),
		"noise":   noise[F](4096, 1),
	} {
		t.Run(name, func(t *testing.T) {
			ref, err := Filter(DF1, x, c)
			require.NoError(t, err)
			tol := testutil.ULPTolerance[F](equivalenceULPs, testutil.MaxAbs(ref))

			for _, s := range []Structure{DF2, TDF2} {
				y, err := Filter(s, x, c)
				require.NoError(t, err)
				testutil.AssertSliceInDelta(t, ref, y, tol, "%s vs DF1", s)
			}
		})
	}
}

func TestCascadeMatchesDirectForms(t *testing.T) {
	t.Run("single section", func(t *testing.T) {
		b, a := testutil.StableLowpass()
		sos := append(slices.Clone(b), a...)
		x := noise[float64](2048, 7)

		direct := Coefficients[float64]{B: b, A: a}
		cascade := Coefficients[float64]{SOS: sos}

		df1, err := Filter(DF1, x, direct)
		require.NoError(t, err)
		df2, err := Filter(DF2, x, direct)
		require.NoError(t, err)
		y, err := Filter(Cascade, x, cascade)
		require.NoError(t, err)

		// One biquad performs the same operations in the same order as DF2.
		assert.Equal(t, df2, y)
		testutil.AssertSliceInDelta(t, df1, y,
			testutil.ULPTolerance[float64](equivalenceULPs, testutil.MaxAbs(df1)))
	})

	t.Run("two sections", func(t *testing.T) {
		c := fourthOrder[float64]()
		x := noise[float64](4096, 3)

		df1, err := Filter(DF1, x, c)
		require.NoError(t, err)
		y, err := Filter(Cascade, x, c)
		require.NoError(t, err)

		// Different factorization, so only agreement to a loose bound is expected.
		testutil.AssertSliceInDelta(t, df1, y, 1e-9)
	})
}

func TestDF1ImpulseClosedForm(t *testing.T) {
	c := Coefficients[float64]{
		B: []float64{1, 0, 0},
		A: []float64{1, -0.5, 0.25},
	}

	y, err := Filter(DF1, impulse[float64](4096), c)
	require.NoError(t, err)

	assert.Equal(t, []float64{1, 0.5, 0, -0.125}, y[:4])
}

func TestDF1ImpulseFirstSamples(t *testing.T) {
	b := []float64{0.25, 0.5, 0.125, 0.0625}
	a := []float64{1, -0.75, 0.5, -0.125}

	y, err := Filter(DF1, impulse[float64](4096), Coefficients[float64]{B: b, A: a})
	require.NoError(t, err)

	y0 := b[0]
	y1 := b[1] - a[1]*y0
	y2 := b[2] - a[1]*y1 - a[2]*y0
	assert.Equal(t, []float64{y0, y1, y2}, y[:3])
}

func TestCascadeIdentityPassThrough(t *testing.T) {
	identity := []float64{
		1, 0, 0, 1, 0, 0,
		1, 0, 0, 1, 0, 0,
	}

	t.Run("float32", func(t *testing.T) {
		x := noise[float32](1000, 11)
		y, err := Filter(Cascade, x, Convert[float32](Coefficients[float64]{SOS: identity}))
		require.NoError(t, err)
		assert.Equal(t, x, y)
	})

	t.Run("float64", func(t *testing.T) {
		x := noise[float64](1000, 11)
		y, err := Filter(Cascade, x, Coefficients[float64]{SOS: identity})
		require.NoError(t, err)
		assert.Equal(t, x, y)
	})
}

func TestCascadeLeavesInputUntouched(t *testing.T) {
	for _, sections := range []int{1, 2, 3, 4} {
		t.Run(fmt.Sprintf("sections=%d", sections), func(t *testing.T) {
			b, a := testutil.StableLowpass()
			var sos []float64
			for range sections {
				sos = append(sos, b...)
				sos = append(sos, a...)
			}

			x := noise[float64](512, 5)
			orig := slices.Clone(x)
			y := make([]float64, len(x))

			require.NoError(t, Apply(Cascade, x, y, Coefficients[float64]{SOS: sos}))
			assert.Equal(t, orig, x)
			testutil.AssertNoNaNOrInf(t, y)
		})
	}
}

func TestCascadeSectionsCompose(t *testing.T) {
	c := fourthOrder[float64]()
	x := noise[float64](1024, 9)

	first, err := Filter(Cascade, x, Coefficients[float64]{SOS: c.SOS[:SOSStride]})
	require.NoError(t, err)
	both, err := Filter(Cascade, first, Coefficients[float64]{SOS: c.SOS[SOSStride:]})
	require.NoError(t, err)

	y, err := Filter(Cascade, x, c)
	require.NoError(t, err)
	assert.Equal(t, both, y)
}

func TestInPlace(t *testing.T) {
	c := fourthOrder[float64]()
	x := noise[float64](1024, 13)

	for _, s := range []Structure{DF2, TDF2, Cascade} {
		t.Run(s.String(), func(t *testing.T) {
			want, err := Filter(s, x, c)
			require.NoError(t, err)

			buf := slices.Clone(x)
			require.NoError(t, Apply(s, buf, buf, c))
			assert.Equal(t, want, buf)
		})
	}

	t.Run("DF1 rejects aliasing", func(t *testing.T) {
		buf := slices.Clone(x)
		err := Apply(DF1, buf, buf, c)
		require.ErrorIs(t, err, ErrAliasedBuffers)
		assert.Equal(t, x, buf)
	})
}

func TestOffsetOverlapRejected(t *testing.T) {
	c := fourthOrder[float64]()
	x := noise[float64](65, 19)

	for _, s := range Structures {
		t.Run(s.String(), func(t *testing.T) {
			buf := slices.Clone(x)
			err := Apply(s, buf[:64], buf[1:], c)
			require.ErrorIs(t, err, ErrAliasedBuffers)

			err = Apply(s, buf[1:], buf[:64], c)
			require.ErrorIs(t, err, ErrAliasedBuffers)
			assert.Equal(t, x, buf)
		})
	}
}

func TestAdjacentBuffersAccepted(t *testing.T) {
	c := fourthOrder[float64]()
	x := noise[float64](32, 23)

	for _, s := range Structures {
		t.Run(s.String(), func(t *testing.T) {
			want, err := Filter(s, x, c)
			require.NoError(t, err)

			buf := make([]float64, 64)
			copy(buf, x)
			require.NoError(t, Apply(s, buf[:32], buf[32:], c))
			assert.Equal(t, want, buf[32:])
		})
	}
}

func TestMinimumOrders(t *testing.T) {
	// First-order low-pass: taps = 2 is the smallest TDF2 accepts.
	c := Coefficients[float64]{B: []float64{0.5, 0.5}, A: []float64{1, -0.25}}
	x := noise[float64](64, 17)

	df1, err := Filter(DF1, x, c)
	require.NoError(t, err)
	for _, s := range []Structure{DF2, TDF2} {
		y, err := Filter(s, x, c)
		require.NoError(t, err)
		testutil.AssertSliceInDelta(t, df1, y, 1e-14, "%s", s)
	}

	// A single tap is a pure gain for DF1 and DF2.
	gain := Coefficients[float64]{B: []float64{2}, A: []float64{1}}
	for _, s := range []Structure{DF1, DF2} {
		y, err := Filter(s, x, gain)
		require.NoError(t, err)
		for i := range x {
			assert.Equal(t, 2*x[i], y[i])
		}
	}
}

func TestValidation(t *testing.T) {
	tests := []struct {
		name      string
		structure Structure
		coeffs    Coefficients[float64]
		wantErr   error
	}{
		{"mismatched lengths", DF1, Coefficients[float64]{B: []float64{1, 2}, A: []float64{1}}, ErrInvalidCoefficients},
		{"empty direct", DF2, Coefficients[float64]{}, ErrOrderTooLow},
		{"tdf2 single tap", TDF2, Coefficients[float64]{B: []float64{1}, A: []float64{1}}, ErrOrderTooLow},
		{"sos not multiple of six", Cascade, Coefficients[float64]{SOS: []float64{1, 0, 0, 1, 0}}, ErrInvalidCoefficients},
		{"no sections", Cascade, Coefficients[float64]{}, ErrOrderTooLow},
		{"unknown structure", Structure(42), Coefficients[float64]{}, ErrUnknownStructure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x := []float64{1, 2, 3}
			y := []float64{-1, -1, -1}
			err := Apply(tt.structure, x, y, tt.coeffs)
			require.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, []float64{-1, -1, -1}, y, "output must not be touched on validation failure")
		})
	}

	t.Run("buffer mismatch", func(t *testing.T) {
		b, a := testutil.StableLowpass()
		err := Apply(DF1, make([]float64, 4), make([]float64, 3), Coefficients[float64]{B: b, A: a})
		require.ErrorIs(t, err, ErrBufferMismatch)
	})
}

func TestCoefficientsOrder(t *testing.T) {
	c := fourthOrder[float64]()
	assert.Equal(t, 5, c.Taps())
	assert.Equal(t, 2, c.Sections())
	assert.Equal(t, 4, c.Order(DF1))
	assert.Equal(t, 4, c.Order(Cascade))
	assert.True(t, TDF2.IsDirect())
	assert.False(t, Cascade.IsDirect())
}

func TestParseStructure(t *testing.T) {
	for _, s := range Structures {
		got, err := ParseStructure(s.String())
		require.NoError(t, err)
		assert.Equal(t, s, got)
	}

	got, err := ParseStructure(" tdf2 ")
	require.NoError(t, err)
	assert.Equal(t, TDF2, got)

	_, err = ParseStructure("lattice")
	require.ErrorIs(t, err, ErrUnknownStructure)
}

func TestWidth(t *testing.T) {
	assert.Equal(t, "float", Single.Label())
	assert.Equal(t, "double", Double.Label())
	assert.Equal(t, Single, WidthOf[float32]())
	assert.Equal(t, Double, WidthOf[float64]())

	w, err := ParseWidth("float64")
	require.NoError(t, err)
	assert.Equal(t, Double, w)

	_, err = ParseWidth("half")
	require.ErrorIs(t, err, ErrUnknownWidth)
	assert.Equal(t, "Width(7)", Width(7).Label())
}

func TestFloat32TracksFloat64(t *testing.T) {
	c64 := fourthOrder[float64]()
	c32 := Convert[float32](c64)
	x64 := noise[float64](4096, 21)
	x32 := make([]float32, len(x64))
	for i, v := range x64 {
		x32[i] = float32(v)
	}

	for _, s := range Structures {
		t.Run(s.String(), func(t *testing.T) {
			y64, err := Filter(s, x64, c64)
			require.NoError(t, err)
			y32, err := Filter(s, x32, c32)
			require.NoError(t, err)

			for i := range y64 {
				assert.InDelta(t, y64[i], float64(y32[i]), 1e-4, "sample %d", i)
			}
		})
	}
}

func BenchmarkKernels(b *testing.B) {
	const n = 48000
	c64 := fourthOrder[float64]()
	c32 := Convert[float32](c64)
	x64 := noise[float64](n, 1)
	x32 := noise[float32](n, 1)

	for _, s := range Structures {
		b.Run(s.String()+"/float32", func(b *testing.B) {
			y := make([]float32, n)
			b.ReportAllocs()
			for b.Loop() {
				if err := Apply(s, x32, y, c32); err != nil {
					b.Fatal(err)
				}
			}
		})
		b.Run(s.String()+"/float64", func(b *testing.B) {
			y := make([]float64, n)
			b.ReportAllocs()
			for b.Loop() {
				if err := Apply(s, x64, y, c64); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
