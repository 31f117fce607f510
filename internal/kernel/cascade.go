package kernel

// cascadeSOS runs x through every section of sos in series.
//
// Stages ping-pong between y and one scratch buffer. The first stage writes
// to whichever buffer makes the final stage land in y, so no trailing copy is
// needed and x is never written.
func cascadeSOS[F Float](x, y, sos []F) {
	sections := len(sos) / SOSStride

	var scratch []F
	if sections > 1 {
		scratch = make([]F, len(x))
	}

	in := x
	toY := sections%2 == 1
	for s := range sections {
		out := scratch
		if toY {
			out = y
		}
		biquad(in, out, sos[s*SOSStride:(s+1)*SOSStride])
		in = out
		toY = !toY
	}
}

// biquad runs one Direct Form II section with private state (w1, w2).
func biquad[F Float](in, out, section []F) {
	b0 := section[sosB0]
	b1 := section[sosB1]
	b2 := section[sosB2]
	a1 := section[sosA1]
	a2 := section[sosA2]

	var w1, w2 F
	for n := range in {
		wn := in[n] - F(a1*w1) - F(a2*w2)
		out[n] = F(b0*wn) + F(b1*w1) + F(b2*w2)
		w2 = w1
		w1 = wn
	}
}
