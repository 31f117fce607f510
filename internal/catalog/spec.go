// Package catalog supplies named filter specifications to the analyzers.
//
// The coefficient tables are designed offline and embedded as a declarative
// YAML table. Each design expands into one FilterSpec per structure: the
// direct forms share the (b, a) polynomials, the cascade uses the SOS table.
package catalog

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tphakala/go-iir-bench/internal/kernel"
)

var (
	// ErrInvalidSpec indicates a filter specification that cannot drive its structure.
	ErrInvalidSpec = errors.New("invalid filter specification")

	// ErrDuplicateName indicates two specifications with the same name.
	ErrDuplicateName = errors.New("duplicate filter name")

	// ErrNotFound indicates a lookup for a name that is not in the catalog.
	ErrNotFound = errors.New("filter not found")
)

// FilterSpec is an immutable description of one filter realization.
//
// F32 and F64 are independently rounded encodings of the same design; neither
// is derived from the other at runtime.
type FilterSpec struct {
	Name      string
	Family    string
	Structure kernel.Structure
	CutoffHz  int
	Order     int
	F32       kernel.Coefficients[float32]
	F64       kernel.Coefficients[float64]
}

// SpecName builds the canonical name, e.g. "butter_df1_order4_cut2000".
func SpecName(family string, s kernel.Structure, order, cutoffHz int) string {
	return fmt.Sprintf("%s_%s_order%d_cut%d", family, strings.ToLower(s.String()), order, cutoffHz)
}

// Sections returns the number of biquad sections of a cascade spec, 0 otherwise.
func (s FilterSpec) Sections() int {
	if s.Structure != kernel.Cascade {
		return 0
	}
	return s.F64.Sections()
}

// Validate checks both encodings against the structure and the declared order.
func (s FilterSpec) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidSpec)
	}
	if err := s.F32.Validate(s.Structure); err != nil {
		return fmt.Errorf("%w: %s (float32): %w", ErrInvalidSpec, s.Name, err)
	}
	if err := s.F64.Validate(s.Structure); err != nil {
		return fmt.Errorf("%w: %s (float64): %w", ErrInvalidSpec, s.Name, err)
	}
	if got := s.F64.Order(s.Structure); got != s.Order {
		return fmt.Errorf("%w: %s declares order %d, coefficients describe %d",
			ErrInvalidSpec, s.Name, s.Order, got)
	}
	if got := s.F32.Order(s.Structure); got != s.Order {
		return fmt.Errorf("%w: %s float32 encoding describes order %d, want %d",
			ErrInvalidSpec, s.Name, got, s.Order)
	}
	return nil
}

// String implements fmt.Stringer.
func (s FilterSpec) String() string {
	return s.Name
}
