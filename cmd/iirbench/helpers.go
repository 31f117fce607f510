package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	iirbench "github.com/tphakala/go-iir-bench"
	"github.com/tphakala/go-iir-bench/internal/catalog"
	"github.com/tphakala/go-iir-bench/internal/kernel"
	"github.com/tphakala/go-iir-bench/internal/report"
	"github.com/tphakala/go-iir-bench/internal/results"
)

const (
	plotDirPerm  = 0o755
	plotFilePerm = 0o644
)

// splitList splits a comma-separated flag value, dropping empty items.
func splitList(s string) []string {
	var out []string
	for item := range strings.SplitSeq(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func parseInts(flagName, s string) ([]int, error) {
	var out []int
	for _, item := range splitList(s) {
		v, err := strconv.Atoi(item)
		if err != nil || v <= 0 {
			return nil, fmt.Errorf("%w: -%s wants positive integers, got %q", errUsage, flagName, item)
		}
		out = append(out, v)
	}
	return out, nil
}

// parseQuery builds a catalog query from the selection flags.
func parseQuery(families, structures, orders, cutoffs string) (iirbench.Query, error) {
	q := iirbench.Query{Families: splitList(families)}

	for _, label := range splitList(structures) {
		s, err := kernel.ParseStructure(label)
		if err != nil {
			return q, fmt.Errorf("%w: -structure: %w", errUsage, err)
		}
		q.Structures = append(q.Structures, s)
	}

	var err error
	if q.Orders, err = parseInts("order", orders); err != nil {
		return q, err
	}
	if q.Cutoffs, err = parseInts("cutoff", cutoffs); err != nil {
		return q, err
	}
	return q, nil
}

func parseWidths(s string) ([]iirbench.Width, error) {
	var out []iirbench.Width
	for _, label := range splitList(s) {
		w, err := kernel.ParseWidth(label)
		if err != nil {
			return nil, fmt.Errorf("%w: -widths: %w", errUsage, err)
		}
		out = append(out, w)
	}
	return out, nil
}

// impulseDesign picks the single design exported by -mode impulse: the first
// value of each selection flag, or the default design.
func impulseDesign(q iirbench.Query) (family string, order, cutoff int) {
	family, order, cutoff = defaultImpulseFamily, defaultImpulseOrder, defaultImpulseCutoff
	if len(q.Families) > 0 {
		family = q.Families[0]
	}
	if len(q.Orders) > 0 {
		order = q.Orders[0]
	}
	if len(q.Cutoffs) > 0 {
		cutoff = q.Cutoffs[0]
	}
	return family, order, cutoff
}

func loadCatalog(path string) (*iirbench.Catalog, error) {
	if path == "" {
		return iirbench.DefaultCatalog()
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog: %w", err)
	}
	defer func() { _ = f.Close() }()
	return catalog.Load(f)
}

func validateMode(mode string) error {
	switch mode {
	case modePrecision, modeTime, modeImpulse:
		return nil
	default:
		return fmt.Errorf("%w: unknown mode %q", errUsage, mode)
	}
}

func outputPath(mode, path string) string {
	if path != "" {
		return path
	}
	return mode + "_results.csv"
}

func displayPath(path string) string {
	if path == stdoutPath {
		return "stdout"
	}
	return filepath.Base(path)
}

// openOutput opens path for writing, or stdout for "-".
func openOutput(path string) (io.Writer, func() error, error) {
	if path == stdoutPath {
		return os.Stdout, func() error { return nil }, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create output file: %w", err)
	}
	return f, f.Close, nil
}

// logSink logs every row before passing it on.
type logSink struct {
	next iirbench.Sink
}

func (s logSink) Append(r results.Row) error {
	switch row := r.(type) {
	case results.PrecisionRow:
		log.Printf("%s (%s, %s, cut %d, order %d, %s): MAE %s",
			row.Family, row.Type.Label(), row.Structure, row.CutoffHz, row.Order, row.Signal, results.FormatMAE(row.MAE))
	case results.TimeRow:
		log.Printf("%s (%s, %s, cut %d, order %d): %s sec",
			row.Family, row.Type.Label(), row.Structure, row.CutoffHz, row.Order, results.FormatSeconds(row.Seconds))
	}
	return s.next.Append(r)
}

// groupFileName names the chart of one timing group,
// e.g. "time_butter_tdf2_order4_cut1000_float.png".
func groupFileName(g iirbench.TimeGroup) string {
	name := catalog.SpecName(g.Key.Family, g.Key.Structure, g.Key.Order, g.Key.CutoffHz)
	return fmt.Sprintf("time_%s_%s.png", name, g.Key.Type.Label())
}

// writePlots renders charts for the collected rows into dir and returns how
// many files were written. Signals with nothing finite to plot are skipped.
func writePlots(dir string, c *results.Collector) (int, error) {
	if err := os.MkdirAll(dir, plotDirPerm); err != nil {
		return 0, fmt.Errorf("failed to create plot directory: %w", err)
	}

	written := 0
	save := func(name string, img []byte) error {
		if err := os.WriteFile(filepath.Join(dir, name), img, plotFilePerm); err != nil {
			return fmt.Errorf("failed to write %s: %w", name, err)
		}
		written++
		return nil
	}

	for _, sig := range []results.Signal{results.SignalImpulse, results.SignalNoise} {
		if len(c.Precision) == 0 {
			break
		}
		img, err := report.MAEChart(c.Precision, sig)
		if errors.Is(err, report.ErrNoData) {
			continue
		}
		if err != nil {
			return written, err
		}
		if err := save(fmt.Sprintf("mae_%s.png", sig), img); err != nil {
			return written, err
		}
	}

	for _, g := range iirbench.Summarize(c.Time) {
		title := fmt.Sprintf("%s %s order %d cut %d (%s)",
			g.Key.Family, g.Key.Structure, g.Key.Order, g.Key.CutoffHz, g.Key.Type.Label())
		img, err := report.TimingHistogram(title, g.Seconds, 0)
		if err != nil {
			return written, err
		}
		if err := save(groupFileName(g), img); err != nil {
			return written, err
		}
	}

	return written, nil
}

// printSummary writes one line per timing group.
func printSummary(w io.Writer, groups []iirbench.TimeGroup) {
	var buf bytes.Buffer
	for _, g := range groups {
		s := g.Summary
		fmt.Fprintf(&buf, "  %-8s %-7s %-7s order %-2d cut %-5d  mean %s  std %s  median %s  (n=%d)\n",
			g.Key.Family, g.Key.Type.Label(), g.Key.Structure, g.Key.Order, g.Key.CutoffHz,
			results.FormatSeconds(s.Mean), results.FormatSeconds(s.StdDev), results.FormatSeconds(s.Median), s.N)
	}
	_, _ = w.Write(buf.Bytes())
}
