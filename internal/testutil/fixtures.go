package testutil

// Fourth-order Butterworth low-pass, fc = 5 kHz, fs = 48 kHz.
var (
	fourthOrderB = []float64{
		0.005541768332032857, 0.022167073328131427, 0.033250609992197144,
		0.022167073328131427, 0.005541768332032857,
	}
	fourthOrderA = []float64{
		1.0, -2.3024482658687364, 2.2090801109022573,
		-0.9921936565039269, 0.17423010478293127,
	}
	fourthOrderSOS = []float64{
		0.005541768332032857, 0.011083536664065714, 0.005541768332032857, 1.0, -1.0155428255941767, 0.28006371690749693,
		1.0, 2.0, 1.0, 1.0, -1.2869054402745597, 0.6221088069058164,
	}
)
