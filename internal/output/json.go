package output

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/lgbarn/pgn-ingest-go/internal/record"
)

// JSONRecord represents a record in JSON format.
type JSONRecord struct {
	ID          string            `json:"id"`
	Line        int               `json:"line,omitempty"`
	Tags        map[string]string `json:"tags"`
	Moves       []string          `json:"moves"`
	FirstMove   int               `json:"firstMove,omitempty"`
	BlackFirst  bool              `json:"blackFirst,omitempty"`
	Result      string            `json:"result,omitempty"`
	PlyCount    int               `json:"plyCount"`
	Fingerprint string            `json:"fingerprint"`
}

// JSONOutput holds multiple records for array output.
type JSONOutput struct {
	Records []*JSONRecord `json:"records"`
}

// RecordToJSON converts a record to its JSON shape. The fingerprint is
// rendered as 16 hex digits since JSON numbers cannot hold every uint64.
func RecordToJSON(rec *record.Record) *JSONRecord {
	result, _ := rec.Result()
	return &JSONRecord{
		ID:          rec.ID,
		Line:        rec.Line,
		Tags:        copyTags(rec.Tags),
		Moves:       rec.Moves,
		FirstMove:   rec.FirstMove,
		BlackFirst:  rec.BlackFirst,
		Result:      result,
		PlyCount:    rec.PlyCount(),
		Fingerprint: fmt.Sprintf("%016x", rec.Fingerprint),
	}
}

func copyTags(tags map[string]string) map[string]string {
	out := make(map[string]string, len(tags))
	for k, v := range tags {
		out[k] = v
	}
	return out
}

// JSONWriter writes records in JSON format.
// It either buffers records and writes them as one document on Flush, or
// writes one compact object per line.
type JSONWriter struct {
	w       io.Writer
	records []*JSONRecord
	lines   bool
}

// NewJSONWriter creates a JSON writer that batches records into a single
// {"records": [...]} document written on Flush or Close.
func NewJSONWriter(w io.Writer) *JSONWriter {
	return &JSONWriter{
		w:       w,
		records: make([]*JSONRecord, 0),
	}
}

// NewJSONLinesWriter creates a JSON writer that writes each record
// immediately as one line.
func NewJSONLinesWriter(w io.Writer) *JSONWriter {
	return &JSONWriter{
		w:     w,
		lines: true,
	}
}

// WriteRecord buffers a record (or writes it immediately in lines mode).
func (jw *JSONWriter) WriteRecord(rec *record.Record) error {
	if jw.lines {
		return json.NewEncoder(jw.w).Encode(RecordToJSON(rec))
	}

	jw.records = append(jw.records, RecordToJSON(rec))
	return nil
}

// Flush writes all buffered records as a JSON document.
func (jw *JSONWriter) Flush() error {
	if jw.lines || len(jw.records) == 0 {
		return nil
	}

	enc := json.NewEncoder(jw.w)
	enc.SetIndent("", "  ")
	err := enc.Encode(&JSONOutput{Records: jw.records})

	// Clear buffer after writing
	jw.records = jw.records[:0]

	return err
}

// Close flushes the JSON writer.
func (jw *JSONWriter) Close() error {
	return jw.Flush()
}
