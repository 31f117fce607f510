package catalog

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/tphakala/go-iir-bench/internal/kernel"
)

//go:embed filters.yaml
var embeddedTable []byte

// DefaultSampleRate is used when a table does not declare one.
const DefaultSampleRate = 48000

// Catalog is an ordered, immutable collection of filter specifications.
type Catalog struct {
	specs      []FilterSpec
	byName     map[string]int
	sampleRate int
}

// New validates specs and builds a Catalog preserving their order.
func New(sampleRate int, specs ...FilterSpec) (*Catalog, error) {
	if sampleRate <= 0 {
		sampleRate = DefaultSampleRate
	}
	c := &Catalog{
		specs:      make([]FilterSpec, 0, len(specs)),
		byName:     make(map[string]int, len(specs)),
		sampleRate: sampleRate,
	}
	for _, s := range specs {
		if err := s.Validate(); err != nil {
			return nil, err
		}
		if _, dup := c.byName[s.Name]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateName, s.Name)
		}
		c.byName[s.Name] = len(c.specs)
		c.specs = append(c.specs, s)
	}
	return c, nil
}

// Default returns the catalog compiled into the binary.
func Default() (*Catalog, error) {
	return Load(bytes.NewReader(embeddedTable))
}

// Load decodes a YAML coefficient table.
func Load(r io.Reader) (*Catalog, error) {
	var f tableFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("failed to decode filter table: %w", err)
	}

	var specs []FilterSpec
	for i, d := range f.Designs {
		expanded, err := d.expand()
		if err != nil {
			return nil, fmt.Errorf("design %d (%s order %d cut %d): %w", i, d.Family, d.Order, d.Cutoff, err)
		}
		specs = append(specs, expanded...)
	}
	return New(f.SampleRate, specs...)
}

// SampleRate returns the rate the coefficients were designed for, in Hz.
func (c *Catalog) SampleRate() int {
	return c.sampleRate
}

// Len returns the number of specifications.
func (c *Catalog) Len() int {
	return len(c.specs)
}

// All returns every specification in table order.
func (c *Catalog) All() []FilterSpec {
	return slices.Clone(c.specs)
}

// Lookup returns the specification with the given name.
func (c *Catalog) Lookup(name string) (FilterSpec, error) {
	i, ok := c.byName[name]
	if !ok {
		return FilterSpec{}, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return c.specs[i], nil
}

// Query selects specifications. Empty fields match everything.
type Query struct {
	Families   []string
	Structures []kernel.Structure
	Orders     []int
	Cutoffs    []int
}

func (q Query) matches(s FilterSpec) bool {
	return matchAny(q.Families, s.Family) &&
		matchAny(q.Structures, s.Structure) &&
		matchAny(q.Orders, s.Order) &&
		matchAny(q.Cutoffs, s.CutoffHz)
}

func matchAny[T comparable](want []T, v T) bool {
	return len(want) == 0 || slices.Contains(want, v)
}

// Select returns the specifications matching q, in table order.
func (c *Catalog) Select(q Query) []FilterSpec {
	var out []FilterSpec
	for _, s := range c.specs {
		if q.matches(s) {
			out = append(out, s)
		}
	}
	return out
}
