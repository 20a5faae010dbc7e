// Package output renders accepted records for humans and downstream tools.
package output

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/lgbarn/pgn-ingest-go/internal/record"
)

// LineWriter handles formatted output with line length control.
type LineWriter struct {
	w             io.Writer
	lineLength    int
	maxLineLength int
	needsSpace    bool
	err           error
}

// NewLineWriter creates a new line writer. A non-positive maxLineLength
// means 80.
func NewLineWriter(w io.Writer, maxLineLength int) *LineWriter {
	if maxLineLength <= 0 {
		maxLineLength = 80
	}
	return &LineWriter{
		w:             w,
		maxLineLength: maxLineLength,
	}
}

// Write writes a string, adding a space separator or a line break if needed.
func (o *LineWriter) Write(s string) {
	if o.needsSpace && len(s) > 0 {
		if o.lineLength+1+len(s) > o.maxLineLength {
			o.print("\n")
			o.lineLength = 0
			o.needsSpace = false
		} else {
			o.print(" ")
			o.lineLength++
		}
	}

	o.print(s)
	o.lineLength += len(s)
	o.needsSpace = true
}

// NewLine starts a new line.
func (o *LineWriter) NewLine() {
	o.print("\n")
	o.lineLength = 0
	o.needsSpace = false
}

// Err returns the first write error.
func (o *LineWriter) Err() error {
	return o.err
}

func (o *LineWriter) print(s string) {
	if o.err != nil {
		return
	}
	_, o.err = io.WriteString(o.w, s)
}

// writePGN renders rec as export-style PGN: the seven tag roster first
// ("?" for missing values), remaining tags sorted by key, then numbered
// moves and the result.
func writePGN(w io.Writer, rec *record.Record, maxLineLength int) error {
	for _, tag := range record.SevenTagRoster {
		value := rec.Tag(tag)
		if value == "" {
			value = "?"
		}
		if _, err := fmt.Fprintf(w, "[%s \"%s\"]\n", tag, escapeTagValue(value)); err != nil {
			return err
		}
	}

	extra := make([]string, 0, len(rec.Tags))
	for tag := range rec.Tags {
		if !isSevenTagRosterTag(tag) {
			extra = append(extra, tag)
		}
	}
	sort.Strings(extra)
	for _, tag := range extra {
		if _, err := fmt.Fprintf(w, "[%s \"%s\"]\n", tag, escapeTagValue(rec.Tags[tag])); err != nil {
			return err
		}
	}

	if _, err := io.WriteString(w, "\n"); err != nil {
		return err
	}

	ow := NewLineWriter(w, maxLineLength)
	number := rec.FirstMove
	if number < 1 {
		number = 1
	}
	black := rec.BlackFirst
	for i, move := range rec.Moves {
		switch {
		case !black:
			ow.Write(fmt.Sprintf("%d.", number))
		case i == 0:
			ow.Write(fmt.Sprintf("%d...", number))
		}
		ow.Write(move)
		if black {
			number++
		}
		black = !black
	}
	if result, ok := rec.Result(); ok {
		ow.Write(result)
	}
	ow.NewLine()
	ow.NewLine()
	return ow.Err()
}

func isSevenTagRosterTag(tag string) bool {
	for _, t := range record.SevenTagRoster {
		if t == tag {
			return true
		}
	}
	return false
}

// escapeTagValue escapes special characters in tag values.
func escapeTagValue(s string) string {
	// Fast path: if no escaping needed, return original string
	if !strings.ContainsAny(s, "\\\"") {
		return s
	}
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "\"", "\\\"")
	return s
}
