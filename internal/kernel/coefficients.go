package kernel

import "fmt"

// Coefficients holds one encoding (one width) of a filter's coefficients.
//
// Direct forms use B and A, both of length order+1 ("taps"). A[0] is the
// normalized leading denominator coefficient and is never read.
//
// The cascade uses SOS, a flattened sequence of sections laid out as
// (b0, b1, b2, a0, a1, a2). a0 is kept so tables can be copied verbatim from
// design tools.
type Coefficients[F Float] struct {
	B   []F
	A   []F
	SOS []F
}

// Taps returns the direct-form coefficient count (order+1).
func (c Coefficients[F]) Taps() int {
	return len(c.B)
}

// Sections returns the number of complete second-order sections.
func (c Coefficients[F]) Sections() int {
	return len(c.SOS) / SOSStride
}

// Order returns the pole count the coefficients describe for structure s.
func (c Coefficients[F]) Order(s Structure) int {
	if s.IsDirect() {
		return c.Taps() - 1
	}
	return 2 * c.Sections()
}

// Validate checks that the coefficients can drive structure s.
func (c Coefficients[F]) Validate(s Structure) error {
	switch s {
	case DF1, DF2:
		return c.validateDirect(s, minDirectTaps)
	case TDF2:
		return c.validateDirect(s, minTDF2Taps)
	case Cascade:
		return c.validateCascade()
	default:
		return fmt.Errorf("%w: %d", ErrUnknownStructure, int(s))
	}
}

func (c Coefficients[F]) validateDirect(s Structure, minTaps int) error {
	if len(c.B) != len(c.A) {
		return fmt.Errorf("%w: %s needs len(b) == len(a), got %d and %d",
			ErrInvalidCoefficients, s, len(c.B), len(c.A))
	}
	if len(c.B) < minTaps {
		return fmt.Errorf("%w: %s needs at least %d coefficients per polynomial, got %d",
			ErrOrderTooLow, s, minTaps, len(c.B))
	}
	return nil
}

func (c Coefficients[F]) validateCascade() error {
	if len(c.SOS)%SOSStride != 0 {
		return fmt.Errorf("%w: sos length %d is not a multiple of %d",
			ErrInvalidCoefficients, len(c.SOS), SOSStride)
	}
	if c.Sections() < minSections {
		return fmt.Errorf("%w: cascade needs at least %d section", ErrOrderTooLow, minSections)
	}
	return nil
}

// Convert returns a copy of c with every coefficient converted to width T.
// Catalog tables carry independently rounded encodings; Convert exists for
// tests and tools that need the same values in both widths.
func Convert[T, F Float](c Coefficients[F]) Coefficients[T] {
	return Coefficients[T]{
		B:   convertSlice[T](c.B),
		A:   convertSlice[T](c.A),
		SOS: convertSlice[T](c.SOS),
	}
}

func convertSlice[T, F Float](src []F) []T {
	if src == nil {
		return nil
	}
	dst := make([]T, len(src))
	for i, v := range src {
		dst[i] = T(v)
	}
	return dst
}
