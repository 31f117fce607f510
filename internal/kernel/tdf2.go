package kernel

// transposedDirectFormII keeps taps-1 state variables. Per sample:
//
//	y[n]   = w[0] + b[0]·x[n]
//	w[i]   = w[i+1] + b[i+1]·x[n] − a[i+1]·y[n]   for i in [0, taps-3]
//	w[t-2] = b[t-1]·x[n] − a[t-1]·y[n]
//
// Requires taps >= 2.
func transposedDirectFormII[F Float](x, y, b, a []F) {
	taps := len(b)
	last := taps - 2
	w := make([]F, taps-1)

	for n := range x {
		xn := x[n]
		yn := w[0] + F(b[0]*xn)

		for i := range last {
			w[i] = w[i+1] + F(b[i+1]*xn) - F(a[i+1]*yn)
		}
		w[last] = F(b[taps-1]*xn) - F(a[taps-1]*yn)

		y[n] = yn
	}
}
