// Package iirbench measures the numerical precision and the speed of IIR
// low-pass filter realizations in single and double precision.
//
// Four realizations of the same rational transfer function are compared:
//
//   - [DF1]: Direct Form I, separate input and output delay lines
//   - [DF2]: Direct Form II, one shared delay line
//   - [TDF2]: Transposed Direct Form II, accumulating state registers
//   - [Cascade]: second-order sections applied in series
//
// Each realization runs in float32 and float64. Every product is rounded to
// the working width before it is accumulated, so results do not depend on
// whether the platform fuses multiply-adds.
//
// # Quick Start
//
// Run the precision analysis over the built-in catalog and write CSV to
// stdout:
//
//	cat, err := iirbench.DefaultCatalog()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	h, err := iirbench.New(iirbench.DefaultConfig(), cat)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	sink, err := iirbench.NewCSVSink(os.Stdout, iirbench.PrecisionHeader)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := h.RunPrecision(sink, iirbench.Query{}); err != nil {
//	    log.Fatal(err)
//	}
//
// # Precision Analysis
//
// For every catalog entry the harness drives both widths with a unit impulse
// of [DefaultImpulseLength] samples and scores the whole response, then with
// white noise scored over the first [DefaultNoiseWindow] samples only. The
// score is the mean absolute error after rounding the float64 output down to
// float32:
//
//	MAE = mean |float32(y64[n]) - y32[n]|
//
// Non-finite outputs of unstable filters are not filtered out; they surface
// as a NaN or Inf score.
//
// By default each width draws its own noise sequence ([NoiseIndependent]).
// [NoiseSeeded] gives both widths a fresh generator with the same seed, so the
// float32 input is exactly the float64 input rounded and the score isolates
// arithmetic error.
//
// # Time Analysis
//
// Each timing row is one kernel call over one minute of white noise at the
// catalog's sample rate (2,880,000 samples at 48 kHz). Noise generation and
// allocation happen before the clock starts. [Config.Repetitions] repeats the
// whole pass to build a distribution per realization.
//
// # Output
//
// Result rows are written through a [Sink]. The CSV sink writes the header on
// creation and flushes every row; a write error aborts the run.
//
// # Thread Safety
//
// A [Harness] owns one noise generator and must not be used from more than
// one goroutine at a time. Separate harnesses are independent.
package iirbench
