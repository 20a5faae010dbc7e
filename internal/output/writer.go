package output

import (
	"bufio"
	"fmt"
	"io"

	"github.com/lgbarn/pgn-ingest-go/internal/config"
	"github.com/lgbarn/pgn-ingest-go/internal/errors"
	"github.com/lgbarn/pgn-ingest-go/internal/record"
)

// RecordWriter is the interface for writing accepted records to output.
// Implementations are not safe for concurrent use.
type RecordWriter interface {
	// WriteRecord writes a single record to the output.
	WriteRecord(rec *record.Record) error

	// Flush flushes any buffered data to the underlying writer.
	Flush() error

	// Close flushes pending output. It does not close the underlying writer.
	Close() error
}

// NewWriter returns the writer for cfg.Output.Format over w.
func NewWriter(w io.Writer, cfg *config.Config) (RecordWriter, error) {
	switch cfg.Output.Format {
	case config.TextFormat, "":
		return NewTextWriter(w), nil
	case config.PGNFormat:
		return NewPGNWriter(w, cfg.Output.MaxLineLength), nil
	case config.JSONFormat:
		return NewJSONLinesWriter(w), nil
	case config.JSONArrayFormat:
		return NewJSONWriter(w), nil
	default:
		return nil, fmt.Errorf("unknown output format %q: %w", cfg.Output.Format, errors.ErrInvalidConfig)
	}
}

// TextWriter writes each record as its identifier, a blank line and the
// raw tag and movetext blocks exactly as read.
type TextWriter struct {
	w *bufio.Writer
}

// NewTextWriter creates a new text writer.
func NewTextWriter(w io.Writer) *TextWriter {
	return &TextWriter{w: bufio.NewWriter(w)}
}

// WriteRecord writes one record.
func (tw *TextWriter) WriteRecord(rec *record.Record) error {
	_, err := fmt.Fprintf(tw.w, "%s\n\n%s\n%s\n\n", rec.ID, rec.TagsText, rec.MovesText)
	return err
}

// Flush flushes buffered output.
func (tw *TextWriter) Flush() error {
	return tw.w.Flush()
}

// Close flushes the text writer.
func (tw *TextWriter) Close() error {
	return tw.Flush()
}

// PGNWriter writes records as normalized export PGN.
type PGNWriter struct {
	w             *bufio.Writer
	maxLineLength int
}

// NewPGNWriter creates a new PGN writer.
func NewPGNWriter(w io.Writer, maxLineLength int) *PGNWriter {
	return &PGNWriter{
		w:             bufio.NewWriter(w),
		maxLineLength: maxLineLength,
	}
}

// WriteRecord writes a record in PGN format.
func (pw *PGNWriter) WriteRecord(rec *record.Record) error {
	return writePGN(pw.w, rec, pw.maxLineLength)
}

// Flush flushes buffered output.
func (pw *PGNWriter) Flush() error {
	return pw.w.Flush()
}

// Close flushes the PGN writer.
func (pw *PGNWriter) Close() error {
	return pw.Flush()
}
