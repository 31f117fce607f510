package kernel

// directFormI evaluates
//
//	y[n] = Σ_{i=0..taps-1} b[i]·x[n-i] − Σ_{i=1..taps-1} a[i]·y[n-i]
//
// with zero initial conditions. The feed-forward sum is accumulated first,
// low index to high, then the feedback terms are subtracted low to high.
func directFormI[F Float](x, y, b, a []F) {
	taps := len(b)
	for n := range x {
		var acc F
		for i := 0; i < taps && i <= n; i++ {
			acc += F(b[i] * x[n-i])
		}
		for i := 1; i < taps && i <= n; i++ {
			acc -= F(a[i] * y[n-i])
		}
		y[n] = acc
	}
}
