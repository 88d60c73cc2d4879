package recorder

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/lixenwraith/reachlab/engine"
)

// ErrClosed is returned when appending after Close
var ErrClosed = errors.New("recorder closed")

// Recorder owns the append-only output table
// Rows are buffered until Close unless incremental flushing is enabled
type Recorder struct {
	sink        Sink
	incremental bool
	logger      *zap.Logger

	rows    []engine.Record
	flushed int
	closed  bool
}

// Option configures a Recorder
type Option func(*Recorder)

// WithIncrementalFlush writes every row to the sink as it is appended
func WithIncrementalFlush(enabled bool) Option {
	return func(r *Recorder) { r.incremental = enabled }
}

// WithLogger sets the logger
func WithLogger(l *zap.Logger) Option {
	return func(r *Recorder) { r.logger = l }
}

// New creates a recorder writing to sink
func New(sink Sink, opts ...Option) *Recorder {
	r := &Recorder{sink: sink, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Append adds a finalized row
func (r *Recorder) Append(rec engine.Record) error {
	if r.closed {
		return ErrClosed
	}
	r.rows = append(r.rows, rec)
	if r.incremental {
		return r.Flush()
	}
	return nil
}

// Flush writes rows not yet handed to the sink
func (r *Recorder) Flush() error {
	if r.flushed == len(r.rows) {
		return nil
	}
	if err := r.sink.Write(r.rows[r.flushed:]); err != nil {
		return fmt.Errorf("write rows: %w", err)
	}
	r.flushed = len(r.rows)
	return nil
}

// Close flushes remaining rows and closes the sink; later calls are no-ops
func (r *Recorder) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true
	err := r.Flush()
	if cerr := r.sink.Close(); err == nil && cerr != nil {
		err = fmt.Errorf("close sink: %w", cerr)
	}
	r.logger.Info("Recorder closed", zap.Int("rows", len(r.rows)), zap.Error(err))
	return err
}

// Len returns the number of rows appended
func (r *Recorder) Len() int { return len(r.rows) }

// Rows returns a copy of the rows appended so far
func (r *Recorder) Rows() []engine.Record {
	out := make([]engine.Record, len(r.rows))
	copy(out, r.rows)
	return out
}

// Counted returns the number of rows that were not discarded as outliers
func (r *Recorder) Counted() int {
	n := 0
	for _, row := range r.rows {
		if !row.Discarded {
			n++
		}
	}
	return n
}
