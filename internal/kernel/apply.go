package kernel

import (
	"fmt"
	"unsafe"
)

// Apply filters x into y with the realization selected by s.
//
// Coefficients and buffers are validated before any sample is written. y must
// have the same length as x. DF1 reads past inputs after writing outputs, so
// it rejects any overlap between x and y. The other structures may run fully
// in place (x and y the same slice) but reject partially overlapping buffers.
func Apply[F Float](s Structure, x, y []F, c Coefficients[F]) error {
	if err := c.Validate(s); err != nil {
		return err
	}
	if len(x) != len(y) {
		return fmt.Errorf("%w: input %d, output %d", ErrBufferMismatch, len(x), len(y))
	}
	if overlap, same := overlapping(x, y); overlap && (s == DF1 || !same) {
		return fmt.Errorf("%w: %s", ErrAliasedBuffers, s)
	}

	switch s {
	case DF1:
		directFormI(x, y, c.B, c.A)
	case DF2:
		directFormII(x, y, c.B, c.A)
	case TDF2:
		transposedDirectFormII(x, y, c.B, c.A)
	case Cascade:
		cascadeSOS(x, y, c.SOS)
	}
	return nil
}

// Filter allocates the output buffer and runs Apply.
func Filter[F Float](s Structure, x []F, c Coefficients[F]) ([]F, error) {
	y := make([]F, len(x))
	if err := Apply(s, x, y, c); err != nil {
		return nil, err
	}
	return y, nil
}

// overlapping reports whether the backing ranges of x and y share any
// element, and whether both slices start at the same element.
func overlapping[F Float](x, y []F) (overlap, same bool) {
	if len(x) == 0 || len(y) == 0 {
		return false, false
	}
	size := unsafe.Sizeof(x[0])
	xs := uintptr(unsafe.Pointer(unsafe.SliceData(x)))
	ys := uintptr(unsafe.Pointer(unsafe.SliceData(y)))
	xe := xs + uintptr(len(x))*size
	ye := ys + uintptr(len(y))*size
	return xs < ye && ys < xe, xs == ys
}
