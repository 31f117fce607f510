package analysis

import (
	"errors"
	"slices"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/tphakala/go-iir-bench/internal/kernel"
	"github.com/tphakala/go-iir-bench/internal/results"
)

// ErrNoSamples indicates a summary over an empty sample set.
var ErrNoSamples = errors.New("no samples to summarize")

// Summary describes a distribution of repeated timings, in seconds.
type Summary struct {
	N      int
	Mean   float64
	StdDev float64
	Median float64
	Min    float64
	Max    float64
}

// Summarize reduces repeated timings to their distribution summary.
// StdDev is the sample standard deviation and is 0 for a single sample.
// Median is the empirical 0.5 quantile, the lower middle value for even N.
func Summarize(seconds []float64) (Summary, error) {
	if len(seconds) == 0 {
		return Summary{}, ErrNoSamples
	}

	sorted := slices.Clone(seconds)
	slices.Sort(sorted)

	mean, std := stat.MeanStdDev(sorted, nil)
	if len(sorted) == 1 {
		std = 0
	}

	return Summary{
		N:      len(sorted),
		Mean:   mean,
		StdDev: std,
		Median: stat.Quantile(0.5, stat.Empirical, sorted, nil),
		Min:    floats.Min(sorted),
		Max:    floats.Max(sorted),
	}, nil
}

// TimeKey identifies one timed realization at one width.
type TimeKey struct {
	Family    string
	Type      kernel.Width
	Structure kernel.Structure
	CutoffHz  int
	Order     int
}

// TimeGroup is the summary of every repetition of one TimeKey.
type TimeGroup struct {
	Key     TimeKey
	Seconds []float64
	Summary Summary
}

// SummarizeRows groups repeated timing rows by realization and width and
// summarizes each group, in first-seen order.
func SummarizeRows(rows []results.TimeRow) []TimeGroup {
	var keys []TimeKey
	samples := make(map[TimeKey][]float64)
	for _, r := range rows {
		k := TimeKey{
			Family:    r.Family,
			Type:      r.Type,
			Structure: r.Structure,
			CutoffHz:  r.CutoffHz,
			Order:     r.Order,
		}
		if _, seen := samples[k]; !seen {
			keys = append(keys, k)
		}
		samples[k] = append(samples[k], r.Seconds)
	}

	groups := make([]TimeGroup, 0, len(keys))
	for _, k := range keys {
		// Every group has at least one sample.
		s, _ := Summarize(samples[k])
		groups = append(groups, TimeGroup{Key: k, Seconds: samples[k], Summary: s})
	}
	return groups
}
