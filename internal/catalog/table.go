package catalog

import (
	"fmt"

	"github.com/tphakala/go-iir-bench/internal/kernel"
)

// tableFile is the on-disk layout of a coefficient table.
type tableFile struct {
	SampleRate int           `yaml:"sample_rate"`
	Designs    []designEntry `yaml:"designs"`
}

type designEntry struct {
	Family string     `yaml:"family"`
	Order  int        `yaml:"order"`
	Cutoff int        `yaml:"cutoff"`
	BA     *baTables  `yaml:"ba"`
	SOS    *sosTables `yaml:"sos"`
}

type baTables struct {
	F64 polynomials `yaml:"f64"`
	F32 polynomials `yaml:"f32"`
}

type polynomials struct {
	B []float64 `yaml:"b"`
	A []float64 `yaml:"a"`
}

type sosTables struct {
	F64 [][]float64 `yaml:"f64"`
	F32 [][]float64 `yaml:"f32"`
}

// expand turns one design into its DF1, DF2, TDF2 and cascade specifications.
func (d designEntry) expand() ([]FilterSpec, error) {
	var specs []FilterSpec

	if d.BA != nil {
		f64 := kernel.Coefficients[float64]{B: d.BA.F64.B, A: d.BA.F64.A}
		f32 := kernel.Coefficients[float32]{B: toFloat32(d.BA.F32.B), A: toFloat32(d.BA.F32.A)}
		for _, s := range []kernel.Structure{kernel.DF1, kernel.DF2, kernel.TDF2} {
			specs = append(specs, d.spec(s, f32, f64))
		}
	}

	if d.SOS != nil {
		sos64, err := flattenSOS(d.SOS.F64)
		if err != nil {
			return nil, err
		}
		sos32, err := flattenSOS(d.SOS.F32)
		if err != nil {
			return nil, err
		}
		specs = append(specs, d.spec(kernel.Cascade,
			kernel.Coefficients[float32]{SOS: toFloat32(sos32)},
			kernel.Coefficients[float64]{SOS: sos64}))
	}

	return specs, nil
}

func (d designEntry) spec(s kernel.Structure, f32 kernel.Coefficients[float32], f64 kernel.Coefficients[float64]) FilterSpec {
	return FilterSpec{
		Name:      SpecName(d.Family, s, d.Order, d.Cutoff),
		Family:    d.Family,
		Structure: s,
		CutoffHz:  d.Cutoff,
		Order:     d.Order,
		F32:       f32,
		F64:       f64,
	}
}

func flattenSOS(rows [][]float64) ([]float64, error) {
	flat := make([]float64, 0, len(rows)*kernel.SOSStride)
	for i, row := range rows {
		if len(row) != kernel.SOSStride {
			return nil, fmt.Errorf("%w: sos section %d has %d values, want %d",
				ErrInvalidSpec, i, len(row), kernel.SOSStride)
		}
		flat = append(flat, row...)
	}
	return flat, nil
}

func toFloat32(src []float64) []float32 {
	dst := make([]float32, len(src))
	for i, v := range src {
		dst[i] = float32(v)
	}
	return dst
}
