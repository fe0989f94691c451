package report

import (
	"io"

	jsoniter "github.com/json-iterator/go"

	"github.com/library-sim/library-sim/sim"
)

// JSONLWriter prints one JSON object per record.
type JSONLWriter struct {
	enc *jsoniter.Encoder
}

// NewJSONLWriter creates a JSONLWriter writing to w.
func NewJSONLWriter(w io.Writer) *JSONLWriter {
	return &JSONLWriter{enc: jsoniter.ConfigCompatibleWithStandardLibrary.NewEncoder(w)}
}

// Write encodes rec followed by a newline.
func (j *JSONLWriter) Write(rec *sim.EventRecord) error {
	return j.enc.Encode(rec)
}

// Close is a no-op; the caller owns the underlying writer.
func (j *JSONLWriter) Close() error {
	return nil
}
