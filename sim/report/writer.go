// Package report turns simulation event records into output streams.
package report

import (
	"github.com/library-sim/library-sim/sim"
)

// RecordWriter consumes event records in order.
type RecordWriter interface {
	Write(rec *sim.EventRecord) error
	Close() error
}

// MultiWriter fan-outs records to multiple writers.
type MultiWriter struct {
	writers []RecordWriter
}

// NewMultiWriter creates a new MultiWriter.
func NewMultiWriter(ws ...RecordWriter) *MultiWriter {
	return &MultiWriter{writers: ws}
}

// Write sends a record to all writers, stopping at the first error.
func (mw *MultiWriter) Write(rec *sim.EventRecord) error {
	for _, w := range mw.writers {
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	return nil
}

// Close closes every writer and returns the first error.
func (mw *MultiWriter) Close() error {
	var first error
	for _, w := range mw.writers {
		if err := w.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
