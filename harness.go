package iirbench

import (
	"fmt"
	"io"

	"github.com/tphakala/simd/cpu"

	"github.com/tphakala/go-iir-bench/internal/analysis"
	"github.com/tphakala/go-iir-bench/internal/catalog"
	"github.com/tphakala/go-iir-bench/internal/kernel"
	"github.com/tphakala/go-iir-bench/internal/results"
	"github.com/tphakala/go-iir-bench/internal/signal"
)

// Harness drives the analyzers over a catalog and feeds their rows to a sink.
//
// A Harness owns one noise generator and is not safe for concurrent use.
type Harness struct {
	cfg       Config
	catalog   *catalog.Catalog
	src       *signal.Source
	precision *analysis.PrecisionAnalyzer
	timing    *analysis.TimeAnalyzer
}

// New validates cfg and returns a harness over cat.
func New(cfg Config, cat *Catalog) (*Harness, error) {
	if cat == nil {
		return nil, fmt.Errorf("%w: catalog is nil", ErrInvalidConfig)
	}
	if cfg.SampleRate == 0 {
		cfg.SampleRate = cat.SampleRate()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	src := signal.NewRandomSource()
	if cfg.Seed != 0 {
		src = signal.NewSource(cfg.Seed)
	}

	precision, err := analysis.NewPrecisionAnalyzer(cfg.precision(), src)
	if err != nil {
		return nil, err
	}
	timing, err := analysis.NewTimeAnalyzer(analysis.TimingLength(cfg.SampleRate, cfg.DurationMinutes), src)
	if err != nil {
		return nil, err
	}

	return &Harness{
		cfg:       cfg,
		catalog:   cat,
		src:       src,
		precision: precision,
		timing:    timing,
	}, nil
}

// Config returns the effective configuration.
func (h *Harness) Config() Config {
	return h.cfg
}

// Seed returns the seed of the noise generator, so a run can be repeated.
func (h *Harness) Seed() uint64 {
	return h.src.Seed()
}

// TimingLength returns the number of samples in one timing buffer.
func (h *Harness) TimingLength() int {
	return h.timing.Length()
}

// RunPrecision appends two precision rows, impulse then noise, for every
// entry matching q. The first error aborts the run.
func (h *Harness) RunPrecision(sink Sink, q Query) error {
	for _, spec := range h.catalog.Select(q) {
		rows, err := h.precision.Analyze(spec)
		if err != nil {
			return err
		}
		for _, r := range rows {
			if err := sink.Append(r); err != nil {
				return fmt.Errorf("%s: %w", spec.Name, err)
			}
		}
	}
	return nil
}

// RunTime appends one timing row per configured width for every entry
// matching q, and repeats the pass Config.Repetitions times. The first error
// aborts the run.
func (h *Harness) RunTime(sink Sink, q Query) error {
	specs := h.catalog.Select(q)
	for range h.cfg.Repetitions {
		for _, spec := range specs {
			for _, w := range h.cfg.Widths {
				row, err := h.timing.Measure(spec, w)
				if err != nil {
					return err
				}
				if err := sink.Append(row); err != nil {
					return fmt.Errorf("%s: %w", spec.Name, err)
				}
			}
		}
	}
	return nil
}

// RunImpulse writes the impulse response of every structure of one design in
// both widths as a single table of Config.ImpulseLength rows.
func (h *Harness) RunImpulse(w io.Writer, family string, order, cutoffHz int) error {
	specs := h.catalog.Select(Query{
		Families: []string{family},
		Orders:   []int{order},
		Cutoffs:  []int{cutoffHz},
	})
	if len(specs) == 0 {
		return fmt.Errorf("%w: %s order %d cut %d", catalog.ErrNotFound, family, order, cutoffHz)
	}

	x32 := signal.Impulse[float32](h.cfg.ImpulseLength)
	x64 := signal.Impulse[float64](h.cfg.ImpulseLength)

	responses := make([]results.Response, 0, len(specs))
	for _, s := range kernel.Structures {
		for _, spec := range specs {
			if spec.Structure != s {
				continue
			}
			y32, err := kernel.Filter(s, x32, spec.F32)
			if err != nil {
				return fmt.Errorf("%s: %w", spec.Name, err)
			}
			y64, err := kernel.Filter(s, x64, spec.F64)
			if err != nil {
				return fmt.Errorf("%s: %w", spec.Name, err)
			}
			responses = append(responses, results.Response{Structure: s, F32: y32, F64: y64})
		}
	}

	return results.WriteResponses(w, responses)
}

// Summarize groups timing rows by realization and width and summarizes each
// group in first-seen order.
func Summarize(rows []TimeRow) []TimeGroup {
	return analysis.SummarizeRows(rows)
}

// DefaultCatalog returns the built-in coefficient tables.
func DefaultCatalog() (*Catalog, error) {
	return catalog.Default()
}

// NewCSVSink writes header to w and returns a sink for rows of that header.
func NewCSVSink(w io.Writer, header []string) (Sink, error) {
	s, err := results.NewCSV(w, header)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// Info describes the host a run was measured on.
type Info struct {
	// SIMD describes the instruction sets detected on the host.
	SIMD string

	// SampleRate is the rate timing buffers are sized for, in Hz.
	SampleRate int

	// TimingLength is the number of samples in one timing buffer.
	TimingLength int

	// Seed is the noise generator seed.
	Seed uint64
}

// GetInfo returns information about the harness and its host.
func (h *Harness) GetInfo() Info {
	return Info{
		SIMD:         cpu.Info(),
		SampleRate:   h.cfg.SampleRate,
		TimingLength: h.timing.Length(),
		Seed:         h.src.Seed(),
	}
}
