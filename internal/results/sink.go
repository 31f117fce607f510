package results

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"
)

var (
	// ErrSink indicates a result row could not be persisted.
	ErrSink = errors.New("result sink failed")

	// ErrHeaderMismatch indicates a row written to a stream of another kind.
	ErrHeaderMismatch = errors.New("row does not match stream header")
)

// Sink accepts result rows in order. An error is fatal to the run.
type Sink interface {
	Append(r Row) error
}

// CSV is a Sink writing one comma-separated stream.
//
// The header is written on construction. Each row is flushed as soon as it is
// appended so a failing writer is reported on the row that hit it.
type CSV struct {
	w      *csv.Writer
	header []string
}

// NewCSV writes header to w and returns a sink for rows of that header.
func NewCSV(w io.Writer, header []string) (*CSV, error) {
	s := &CSV{w: csv.NewWriter(w), header: slices.Clone(header)}
	if err := s.write(header); err != nil {
		return nil, err
	}
	return s, nil
}

// Append implements Sink.
func (s *CSV) Append(r Row) error {
	if !slices.Equal(r.Header(), s.header) {
		return fmt.Errorf("%w: got %s, stream has %s", ErrHeaderMismatch,
			strings.Join(r.Header(), ","), strings.Join(s.header, ","))
	}
	return s.write(r.Record())
}

func (s *CSV) write(record []string) error {
	if err := s.w.Write(record); err != nil {
		return fmt.Errorf("%w: %w", ErrSink, err)
	}
	s.w.Flush()
	if err := s.w.Error(); err != nil {
		return fmt.Errorf("%w: %w", ErrSink, err)
	}
	return nil
}

// Collector is an in-memory Sink that keeps rows by kind.
type Collector struct {
	Precision []PrecisionRow
	Time      []TimeRow
}

// Append implements Sink.
func (c *Collector) Append(r Row) error {
	switch row := r.(type) {
	case PrecisionRow:
		c.Precision = append(c.Precision, row)
	case TimeRow:
		c.Time = append(c.Time, row)
	default:
		return fmt.Errorf("%w: unsupported row type %T", ErrSink, r)
	}
	return nil
}

// Tee returns a Sink that appends every row to each of sinks in turn,
// stopping at the first error.
func Tee(sinks ...Sink) Sink {
	return tee(sinks)
}

type tee []Sink

func (t tee) Append(r Row) error {
	for _, s := range t {
		if err := s.Append(r); err != nil {
			return err
		}
	}
	return nil
}
