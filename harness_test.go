package iirbench

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tphakala/go-iir-bench/internal/catalog"
	"github.com/tphakala/go-iir-bench/internal/results"
)

var butter2 = Query{Families: []string{"butter"}, Orders: []int{2}, Cutoffs: []int{1000}}

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.SampleRate = 1000
	cfg.Repetitions = 2
	cfg.Seed = 5
	return cfg
}

func newHarness(t *testing.T, cfg Config) *Harness {
	t.Helper()
	cat, err := DefaultCatalog()
	require.NoError(t, err)
	h, err := New(cfg, cat)
	require.NoError(t, err)
	return h
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"negative sample rate", func(c *Config) { c.SampleRate = -1 }},
		{"zero duration", func(c *Config) { c.DurationMinutes = 0 }},
		{"duration too long", func(c *Config) { c.DurationMinutes = maxDurationMinutes + 1 }},
		{"zero repetitions", func(c *Config) { c.Repetitions = 0 }},
		{"no widths", func(c *Config) { c.Widths = nil }},
		{"unknown width", func(c *Config) { c.Widths = []Width{Width(3)} }},
		{"duplicate width", func(c *Config) { c.Widths = []Width{Single, Single} }},
		{"window wider than noise", func(c *Config) { c.NoiseWindow = c.NoiseLength + 1 }},
		{"zero impulse", func(c *Config) { c.ImpulseLength = 0 }},
	}

	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			require.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
		})
	}
}

func TestNewUsesCatalogSampleRate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Seed = 1
	h := newHarness(t, cfg)

	assert.Equal(t, catalog.DefaultSampleRate, h.Config().SampleRate)
	assert.Equal(t, 2_880_000, h.TimingLength())
	assert.Equal(t, uint64(1), h.Seed())

	info := h.GetInfo()
	assert.Equal(t, 2_880_000, info.TimingLength)
	assert.Equal(t, uint64(1), info.Seed)

	_, err := New(cfg, nil)
	require.ErrorIs(t, err, ErrInvalidConfig)
}

func TestRunPrecision(t *testing.T) {
	h := newHarness(t, testConfig())

	var c results.Collector
	require.NoError(t, h.RunPrecision(&c, butter2))

	require.Len(t, c.Precision, 8)
	for i, s := range []Structure{DF1, DF2, TDF2, Cascade} {
		impulse, noise := c.Precision[2*i], c.Precision[2*i+1]
		assert.Equal(t, s, impulse.Structure)
		assert.Equal(t, results.SignalImpulse, impulse.Signal)
		assert.Equal(t, results.SignalNoise, noise.Signal)
		assert.Equal(t, Single, impulse.Type)
		assert.Equal(t, 2, impulse.Order)
		assert.Less(t, impulse.MAE, 1e-6)
	}
}

func TestRunPrecisionIsReproducible(t *testing.T) {
	run := func() []PrecisionRow {
		var c results.Collector
		require.NoError(t, newHarness(t, testConfig()).RunPrecision(&c, butter2))
		return c.Precision
	}
	assert.Equal(t, run(), run())
}

func TestRunPrecisionCSV(t *testing.T) {
	h := newHarness(t, testConfig())

	var buf bytes.Buffer
	sink, err := NewCSVSink(&buf, PrecisionHeader)
	require.NoError(t, err)
	require.NoError(t, h.RunPrecision(sink, butter2))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 9)
	assert.Equal(t, "filter_name,type,structure,cutoff,order,signal,MAE", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "butter,float,DF1,1000,2,impulse,"), lines[1])
	assert.True(t, strings.HasPrefix(lines[8], "butter,float,CASCADE,1000,2,rand,"), lines[8])
}

var errSinkFull = errors.New("sink full")

type limitedSink struct {
	left int
	rows int
}

func (s *limitedSink) Append(results.Row) error {
	if s.left == 0 {
		return errSinkFull
	}
	s.left--
	s.rows++
	return nil
}

func TestSinkFailureAbortsRun(t *testing.T) {
	h := newHarness(t, testConfig())

	sink := &limitedSink{left: 3}
	err := h.RunPrecision(sink, Query{})
	require.ErrorIs(t, err, errSinkFull)
	assert.Equal(t, 3, sink.rows)

	sink = &limitedSink{left: 1}
	err = h.RunTime(sink, butter2)
	require.ErrorIs(t, err, errSinkFull)
	assert.Equal(t, 1, sink.rows)
}

func TestRunTime(t *testing.T) {
	h := newHarness(t, testConfig())
	assert.Equal(t, 60_000, h.TimingLength())

	var c results.Collector
	q := Query{Families: []string{"cheby1"}, Orders: []int{4}, Cutoffs: []int{2000}, Structures: []Structure{TDF2, Cascade}}
	require.NoError(t, h.RunTime(&c, q))

	// 2 repetitions x 2 entries x 2 widths
	require.Len(t, c.Time, 8)
	assert.Equal(t, Single, c.Time[0].Type)
	assert.Equal(t, Double, c.Time[1].Type)
	assert.Equal(t, Cascade, c.Time[2].Structure)
	assert.Equal(t, 4, c.Time[2].Order)
	for _, r := range c.Time {
		assert.Greater(t, r.Seconds, 0.0)
	}

	groups := Summarize(c.Time)
	require.Len(t, groups, 4)
	for _, g := range groups {
		assert.Equal(t, 2, g.Summary.N)
		assert.LessOrEqual(t, g.Summary.Min, g.Summary.Max)
	}
}

func TestRunTimeSingleWidth(t *testing.T) {
	cfg := testConfig()
	cfg.Repetitions = 1
	cfg.Widths = []Width{Double}
	h := newHarness(t, cfg)

	var c results.Collector
	require.NoError(t, h.RunTime(&c, butter2))
	require.Len(t, c.Time, 4)
	for _, r := range c.Time {
		assert.Equal(t, Double, r.Type)
	}
}

func TestRunImpulse(t *testing.T) {
	cfg := testConfig()
	cfg.ImpulseLength = 16
	h := newHarness(t, cfg)

	var buf bytes.Buffer
	require.NoError(t, h.RunImpulse(&buf, "butter", 2, 1000))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 17)
	assert.Equal(t, "index,df1_f32,df2_f32,tdf2_f32,cascade_f32,df1_f64,df2_f64,tdf2_f64,cascade_f64", lines[0])

	// y[0] = b0 in every structure.
	first := strings.Split(lines[1], ",")
	require.Len(t, first, 9)
	assert.Equal(t, "0", first[0])
	for _, v := range first[1:5] {
		assert.Equal(t, "3.91612668e-03", v)
	}
	for _, v := range first[5:] {
		assert.Equal(t, "3.9161266605473692e-03", v)
	}

	err := h.RunImpulse(&bytes.Buffer{}, "bessel", 2, 1000)
	require.ErrorIs(t, err, catalog.ErrNotFound)
}

func BenchmarkRunPrecision(b *testing.B) {
	cat, err := DefaultCatalog()
	require.NoError(b, err)
	h, err := New(testConfig(), cat)
	require.NoError(b, err)

	for b.Loop() {
		var c results.Collector
		if err := h.RunPrecision(&c, butter2); err != nil {
			b.Fatal(err)
		}
	}
}
