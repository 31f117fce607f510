// Package report renders benchmark results as PNG charts.
package report

import (
	"bytes"
	"errors"
	"fmt"
	"image/color"
	"math"
	"slices"
	"strconv"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/tphakala/go-iir-bench/internal/kernel"
	"github.com/tphakala/go-iir-bench/internal/metric"
	"github.com/tphakala/go-iir-bench/internal/results"
)

// ErrNoData indicates there is nothing finite to plot.
var ErrNoData = errors.New("no data to plot")

const (
	defaultBins = 20
	barWidth    = 12
	plotWidth   = 800
	plotHeight  = 400
)

var structureColors = map[kernel.Structure]color.Color{
	kernel.DF1:     color.RGBA{R: 214, G: 39, B: 40, A: 255},
	kernel.DF2:     color.RGBA{R: 44, G: 160, B: 44, A: 255},
	kernel.TDF2:    color.RGBA{R: 31, G: 119, B: 180, A: 255},
	kernel.Cascade: color.RGBA{R: 255, G: 127, B: 14, A: 255},
}

// TimingHistogram plots the distribution of repeated timings of one
// realization. bins <= 0 selects a default.
func TimingHistogram(title string, seconds []float64, bins int) ([]byte, error) {
	if len(seconds) == 0 {
		return nil, ErrNoData
	}
	if bins <= 0 {
		bins = defaultBins
	}

	values := make(plotter.Values, len(seconds))
	copy(values, seconds)

	hist, err := plotter.NewHist(values, bins)
	if err != nil {
		return nil, fmt.Errorf("failed to create histogram: %w", err)
	}
	hist.FillColor = structureColors[kernel.TDF2]

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Time (s)"
	p.Y.Label.Text = "Count"
	p.Add(plotter.NewGrid(), hist)

	return render(p)
}

// MAEChart plots, for one signal type, the mean log10 MAE of each structure
// at each filter order. Zero and non-finite errors are left out of the means.
func MAEChart(rows []results.PrecisionRow, sig results.Signal) ([]byte, error) {
	byKey := make(map[kernel.Structure]map[int][]float64)
	var orders []int
	for _, r := range rows {
		if r.Signal != sig || r.MAE <= 0 || !metric.IsFinite(r.MAE) {
			continue
		}
		if byKey[r.Structure] == nil {
			byKey[r.Structure] = make(map[int][]float64)
		}
		byKey[r.Structure][r.Order] = append(byKey[r.Structure][r.Order], math.Log10(r.MAE))
		if !slices.Contains(orders, r.Order) {
			orders = append(orders, r.Order)
		}
	}
	if len(orders) == 0 {
		return nil, ErrNoData
	}
	slices.Sort(orders)

	p := plot.New()
	p.Title.Text = fmt.Sprintf("float32 vs float64 MAE (%s)", sig)
	p.X.Label.Text = "Order"
	p.Y.Label.Text = "mean log10 MAE"
	p.Add(plotter.NewGrid())

	labels := make([]string, len(orders))
	for i, o := range orders {
		labels[i] = strconv.Itoa(o)
	}
	p.NominalX(labels...)

	offset := -vg.Points(barWidth) * vg.Length(len(kernel.Structures)-1) / 2
	for _, s := range kernel.Structures {
		perOrder, ok := byKey[s]
		if !ok {
			offset += vg.Points(barWidth)
			continue
		}
		values := make(plotter.Values, len(orders))
		for i, o := range orders {
			if logs := perOrder[o]; len(logs) > 0 {
				values[i] = stat.Mean(logs, nil)
			}
		}

		bars, err := plotter.NewBarChart(values, vg.Points(barWidth))
		if err != nil {
			return nil, fmt.Errorf("failed to create bars for %s: %w", s, err)
		}
		bars.Color = structureColors[s]
		bars.LineStyle.Width = 0
		bars.Offset = offset
		offset += vg.Points(barWidth)

		p.Add(bars)
		p.Legend.Add(s.String(), bars)
	}
	p.Legend.Top = true

	return render(p)
}

func render(p *plot.Plot) ([]byte, error) {
	writer, err := p.WriterTo(vg.Points(plotWidth), vg.Points(plotHeight), "png")
	if err != nil {
		return nil, fmt.Errorf("failed to create plot writer: %w", err)
	}
	var buf bytes.Buffer
	if _, err := writer.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("failed to write plot: %w", err)
	}
	return buf.Bytes(), nil
}
