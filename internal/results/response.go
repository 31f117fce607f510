package results

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/tphakala/go-iir-bench/internal/kernel"
)

// Response is the output of one structure driven by the same input in both
// widths.
type Response struct {
	Structure kernel.Structure
	F32       []float32
	F64       []float64
}

// WriteResponses writes responses as one table: an index column, then every
// float32 column, then every float64 column, each in the order given.
//
// float32 samples are written with 8 fractional digits, float64 samples with 16.
func WriteResponses(w io.Writer, responses []Response) error {
	n := 0
	for i, r := range responses {
		if i == 0 {
			n = len(r.F32)
		}
		if len(r.F32) != n || len(r.F64) != n {
			return fmt.Errorf("%w: %s has %d/%d samples, want %d",
				kernel.ErrBufferMismatch, r.Structure, len(r.F32), len(r.F64), n)
		}
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(responseHeader(responses)); err != nil {
		return fmt.Errorf("%w: %w", ErrSink, err)
	}

	record := make([]string, 1+2*len(responses))
	for i := range n {
		record[0] = strconv.Itoa(i)
		for j, r := range responses {
			record[1+j] = strconv.FormatFloat(float64(r.F32[i]), 'e', 8, 64)
			record[1+len(responses)+j] = strconv.FormatFloat(r.F64[i], 'e', 16, 64)
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("%w: %w", ErrSink, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("%w: %w", ErrSink, err)
	}
	return nil
}

func responseHeader(responses []Response) []string {
	header := make([]string, 0, 1+2*len(responses))
	header = append(header, "index")
	for _, suffix := range []string{"_f32", "_f64"} {
		for _, r := range responses {
			header = append(header, strings.ToLower(r.Structure.String())+suffix)
		}
	}
	return header
}
