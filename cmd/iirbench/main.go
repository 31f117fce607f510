// Command iirbench runs the IIR filter precision and timing analyses and
// writes their results as CSV.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"runtime/pprof"
	"time"

	iirbench "github.com/tphakala/go-iir-bench"
	"github.com/tphakala/go-iir-bench/internal/analysis"
	"github.com/tphakala/go-iir-bench/internal/results"
)

const (
	modePrecision = "precision"
	modeTime      = "time"
	modeImpulse   = "impulse"

	// Design exported by -mode impulse when no filter is selected.
	defaultImpulseFamily = "butter"
	defaultImpulseOrder  = 4
	defaultImpulseCutoff = 1000

	stdoutPath = "-"
)

var errUsage = errors.New("invalid usage")

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	mode := flag.String("mode", modePrecision, "Analysis to run: precision, time, impulse")
	output := flag.String("o", "", "Output CSV path, - for stdout (default <mode>_results.csv)")
	catalogPath := flag.String("catalog", "", "YAML coefficient table (default: built-in table)")
	families := flag.String("family", "", "Comma-separated filter families (e.g. butter,cheby1)")
	structures := flag.String("structure", "", "Comma-separated structures: DF1, DF2, TDF2, CASCADE")
	orders := flag.String("order", "", "Comma-separated filter orders")
	cutoffs := flag.String("cutoff", "", "Comma-separated cutoff frequencies in Hz")
	widths := flag.String("widths", "float,double", "Widths to time: float, double")
	reps := flag.Int("reps", iirbench.DefaultRepetitions, "Timing repetitions")
	minutes := flag.Int("minutes", iirbench.DefaultDurationMinutes, "Timing buffer length in minutes of audio")
	rate := flag.Int("rate", 0, "Sample rate for timing buffers in Hz (default: catalog rate)")
	window := flag.Int("window", iirbench.DefaultNoiseWindow, "Leading noise samples scored by the precision analysis")
	noise := flag.String("noise", "independent", "Noise inputs per width: independent, seeded")
	seed := flag.Uint64("seed", 0, "Noise seed (0 = random)")
	plotDir := flag.String("plot", "", "Directory for PNG charts of the results")
	verbose := flag.Bool("v", false, "Verbose output")
	cpuprofile := flag.String("cpuprofile", "", "Write CPU profile to file")
	flag.Parse()

	if flag.NArg() > 0 {
		fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s -mode precision                      # MAE of every catalog entry\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -mode time -reps 5 -structure TDF2   # Timing distribution of TDF2 entries\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -mode impulse -family cheby1 -order 8 -cutoff 1000\n", os.Args[0])
		return fmt.Errorf("%w: unexpected arguments %v", errUsage, flag.Args())
	}

	if err := validateMode(*mode); err != nil {
		return err
	}

	if *cpuprofile != "" {
		f, err := os.Create(*cpuprofile)
		if err != nil {
			return fmt.Errorf("could not create CPU profile: %w", err)
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			_ = f.Close()
			return fmt.Errorf("could not start CPU profile: %w", err)
		}
		defer func() {
			pprof.StopCPUProfile()
			_ = f.Close()
		}()
	}

	query, err := parseQuery(*families, *structures, *orders, *cutoffs)
	if err != nil {
		return err
	}
	timedWidths, err := parseWidths(*widths)
	if err != nil {
		return err
	}
	noiseMode, err := analysis.ParseNoiseMode(*noise)
	if err != nil {
		return err
	}

	cfg := iirbench.DefaultConfig()
	cfg.SampleRate = *rate
	cfg.DurationMinutes = *minutes
	cfg.Repetitions = *reps
	cfg.NoiseWindow = *window
	cfg.Widths = timedWidths
	cfg.NoiseMode = noiseMode
	cfg.Seed = *seed

	cat, err := loadCatalog(*catalogPath)
	if err != nil {
		return err
	}
	h, err := iirbench.New(cfg, cat)
	if err != nil {
		return err
	}

	if *verbose {
		info := h.GetInfo()
		log.Printf("Mode: %s", *mode)
		log.Printf("Catalog: %d entries at %d Hz", cat.Len(), cat.SampleRate())
		log.Printf("SIMD: %s", info.SIMD)
		log.Printf("Seed: %d (noise %s)", info.Seed, noiseMode)
		if *mode == modeTime {
			log.Printf("Timing buffer: %d samples, %d repetitions", info.TimingLength, cfg.Repetitions)
		}
	}

	path := outputPath(*mode, *output)
	w, closeOutput, err := openOutput(path)
	if err != nil {
		return err
	}

	start := time.Now()
	var collected results.Collector
	switch *mode {
	case modePrecision:
		err = runStream(w, iirbench.PrecisionHeader, &collected, *verbose, func(sink iirbench.Sink) error {
			return h.RunPrecision(sink, query)
		})
	case modeTime:
		err = runStream(w, iirbench.TimeHeader, &collected, *verbose, func(sink iirbench.Sink) error {
			return h.RunTime(sink, query)
		})
	case modeImpulse:
		family, order, cutoff := impulseDesign(query)
		err = h.RunImpulse(w, family, order, cutoff)
	default:
		err = fmt.Errorf("%w: unknown mode %q", errUsage, *mode)
	}
	if cerr := closeOutput(); err == nil {
		err = cerr
	}
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	if *plotDir != "" {
		written, err := writePlots(*plotDir, &collected)
		if err != nil {
			return err
		}
		if *verbose {
			log.Printf("Wrote %d charts to %s", written, *plotDir)
		}
	}

	fmt.Fprintf(os.Stderr, "%s analysis -> %s\n", *mode, displayPath(path))
	fmt.Fprintf(os.Stderr, "  %d precision rows, %d timing rows in %.2fs\n",
		len(collected.Precision), len(collected.Time), elapsed.Seconds())
	if *mode == modeTime {
		printSummary(os.Stderr, iirbench.Summarize(collected.Time))
	}

	return nil
}

// runStream opens a CSV stream on w and runs fn against it, collecting rows
// for plotting and logging each one when verbose.
func runStream(w io.Writer, header []string, collected *results.Collector, verbose bool, fn func(iirbench.Sink) error) error {
	csvSink, err := iirbench.NewCSVSink(w, header)
	if err != nil {
		return err
	}
	sink := results.Tee(csvSink, collected)
	if verbose {
		sink = logSink{next: sink}
	}
	return fn(sink)
}
