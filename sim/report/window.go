package report

import "github.com/library-sim/library-sim/sim"

// WindowWriter forwards at most Rows records whose clock is at or after From.
// The last record seen is always forwarded on Close, so the final state is
// shown even when it falls outside the window. Rows <= 0 means no row limit.
type WindowWriter struct {
	next RecordWriter
	From float64
	Rows int

	written     int
	last        *sim.EventRecord
	lastWritten bool
}

// NewWindowWriter wraps next with a display window.
func NewWindowWriter(next RecordWriter, from float64, rows int) *WindowWriter {
	return &WindowWriter{next: next, From: from, Rows: rows}
}

// Write forwards rec if it falls inside the window.
func (w *WindowWriter) Write(rec *sim.EventRecord) error {
	w.last = rec
	w.lastWritten = false
	if rec.Clock < w.From {
		return nil
	}
	if w.Rows > 0 && w.written >= w.Rows {
		return nil
	}
	w.written++
	w.lastWritten = true
	return w.next.Write(rec)
}

// Close forwards the last record if it was filtered out, then closes next.
func (w *WindowWriter) Close() error {
	if w.last != nil && !w.lastWritten {
		if err := w.next.Write(w.last); err != nil {
			return err
		}
	}
	return w.next.Close()
}
