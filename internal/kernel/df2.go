package kernel

// directFormII runs the canonical form with one delay line w of length taps.
// Per sample: w[0] = x[n] − Σ a[i]·w[i], y[n] = Σ b[i]·w[i], then the line is
// shifted one slot towards the end.
func directFormII[F Float](x, y, b, a []F) {
	taps := len(b)
	w := make([]F, taps)

	for n := range x {
		w0 := x[n]
		for i := 1; i < taps; i++ {
			w0 -= F(a[i] * w[i])
		}
		w[0] = w0

		var acc F
		for i := range taps {
			acc += F(b[i] * w[i])
		}
		y[n] = acc

		for i := taps - 1; i > 0; i-- {
			w[i] = w[i-1]
		}
	}
}
