package recorder

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/lixenwraith/reachlab/engine"
)

// Sink persists finalized rows
type Sink interface {
	Write(rows []engine.Record) error
	Close() error
}

// CSVSink writes the header before the first batch of rows
type CSVSink struct {
	w       *csv.Writer
	closer  io.Closer
	started bool
}

// NewCSVSink writes to w; closer may be nil
func NewCSVSink(w io.Writer, closer io.Closer) *CSVSink {
	return &CSVSink{w: csv.NewWriter(w), closer: closer}
}

// CreateCSVSink creates the file at path, including parent directories
func CreateCSVSink(path string) (*CSVSink, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create output file: %w", err)
	}
	return NewCSVSink(f, f), nil
}

func (s *CSVSink) writeHeader() error {
	if s.started {
		return nil
	}
	s.started = true
	return s.w.Write(Header)
}

// Write appends rows and flushes them through to the underlying writer
func (s *CSVSink) Write(rows []engine.Record) error {
	if err := s.writeHeader(); err != nil {
		return err
	}
	for _, r := range rows {
		if err := s.w.Write(EncodeRow(r)); err != nil {
			return err
		}
	}
	s.w.Flush()
	return s.w.Error()
}

// Close guarantees the header exists even for an empty session
func (s *CSVSink) Close() error {
	err := s.writeHeader()
	s.w.Flush()
	if err == nil {
		err = s.w.Error()
	}
	if s.closer != nil {
		if cerr := s.closer.Close(); err == nil {
			err = cerr
		}
	}
	return err
}

// MemorySink keeps rows in memory, used by headless runs and tests
type MemorySink struct {
	Rows   []engine.Record
	Closed bool
}

func (m *MemorySink) Write(rows []engine.Record) error {
	m.Rows = append(m.Rows, rows...)
	return nil
}

func (m *MemorySink) Close() error {
	m.Closed = true
	return nil
}
