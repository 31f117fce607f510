package catalog

import (
	"errors"
	"math/cmplx"

	"gonum.org/v1/gonum/mat"

	"github.com/tphakala/go-iir-bench/internal/kernel"
)

// ErrEigen indicates the pole computation did not converge.
var ErrEigen = errors.New("eigenvalue decomposition failed")

// PoleRadius returns the largest pole magnitude implied by coefficients of
// width F. A filter is stable when the radius is below 1.
//
// The poles are the eigenvalues of the companion matrix of the denominator.
// For a cascade each section is solved separately.
func PoleRadius[F kernel.Float](s kernel.Structure, c kernel.Coefficients[F]) (float64, error) {
	if s != kernel.Cascade {
		return denominatorRadius(c.A)
	}

	var radius float64
	for i := range c.Sections() {
		section := c.SOS[i*kernel.SOSStride : (i+1)*kernel.SOSStride]
		r, err := denominatorRadius([]F{1, section[4], section[5]})
		if err != nil {
			return 0, err
		}
		radius = max(radius, r)
	}
	return radius, nil
}

// denominatorRadius solves z^n + a[1] z^(n-1) + ... + a[n] = 0. a[0] is
// taken as 1, as in the kernels.
func denominatorRadius[F kernel.Float](a []F) (float64, error) {
	n := len(a) - 1
	if n < 1 {
		return 0, nil
	}

	companion := mat.NewDense(n, n, nil)
	for j := range n {
		companion.Set(0, j, -float64(a[j+1]))
	}
	for i := 1; i < n; i++ {
		companion.Set(i, i-1, 1)
	}

	var eig mat.Eigen
	if ok := eig.Factorize(companion, mat.EigenNone); !ok {
		return 0, ErrEigen
	}

	var radius float64
	for _, p := range eig.Values(nil) {
		radius = max(radius, cmplx.Abs(p))
	}
	return radius, nil
}
