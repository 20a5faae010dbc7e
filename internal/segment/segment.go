// Package segment splits a PGN line stream into records.
//
// A Segmenter pulls lines on demand and recognizes a record boundary only
// when a tag line follows movetext, or at end of input. The tag line that
// closes one record opens the next; it is kept as a pending record until
// the following call. Completed records are validated before they are
// returned, so a caller sees accepted games and rejected records in input
// order.
package segment

import (
	"errors"
	"fmt"
	"io"
	"strings"

	pgnerrors "github.com/lgbarn/pgn-ingest-go/internal/errors"
	"github.com/lgbarn/pgn-ingest-go/internal/record"
	"github.com/lgbarn/pgn-ingest-go/internal/source"
	"github.com/lgbarn/pgn-ingest-go/internal/validate"
)

// Stats counts what a Segmenter has produced so far.
type Stats struct {
	Lines      int
	Games      int
	BadRecords int
}

// Segmenter is a pull-based record reader. It is not safe for concurrent use;
// run one Segmenter per stream.
type Segmenter struct {
	src       source.LineSource
	closer    io.Closer
	name      string
	prefix    string
	validator *validate.Validator

	state   State
	line    int
	seq     int
	pending *record.Record
	stats   Stats
}

// Option configures a Segmenter.
type Option func(*Segmenter)

// WithValidator replaces the default validator.
func WithValidator(v *validate.Validator) Option {
	return func(s *Segmenter) {
		if v != nil {
			s.validator = v
		}
	}
}

// WithName sets the source name reported in stream errors.
func WithName(name string) Option {
	return func(s *Segmenter) {
		s.name = name
	}
}

// New creates a Segmenter over src. Record identifiers are "<prefix>.<n>"
// with n counting from 1.
func New(src source.LineSource, prefix string, opts ...Option) *Segmenter {
	s := &Segmenter{
		src:       src,
		prefix:    prefix,
		validator: validate.New(),
		state:     StateStart,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Open creates a Segmenter over an archive file. The identifier prefix is
// the file's base name up to its first dot. The caller must Close it.
func Open(path string, opts ...Option) (*Segmenter, error) {
	f, err := source.Open(path)
	if err != nil {
		return nil, err
	}
	opts = append([]Option{WithName(f.Name())}, opts...)
	s := New(f, f.Prefix(), opts...)
	s.closer = f
	return s, nil
}

// Close releases the underlying file, if the Segmenter owns one.
func (s *Segmenter) Close() error {
	s.state = StateEnded
	if s.closer == nil {
		return nil
	}
	err := s.closer.Close()
	s.closer = nil
	return err
}

// State returns the current state.
func (s *Segmenter) State() State {
	return s.state
}

// Progress describes how far through its source the Segmenter is, when the
// source can tell; otherwise it returns "".
func (s *Segmenter) Progress() string {
	if p, ok := s.src.(interface{ Progress() string }); ok {
		return p.Progress()
	}
	return ""
}

// Stats returns the running counters.
func (s *Segmenter) Stats() Stats {
	return s.stats
}

// Next consumes lines until one outcome is known.
func (s *Segmenter) Next() Outcome {
	if s.state == StateEnded {
		return Ended{}
	}

	cur := s.pending
	s.pending = nil

	for {
		raw, err := s.src.ReadLine()
		s.line++

		in := endOfInput
		var key, value, trimmed string
		switch {
		case err == nil:
			s.stats.Lines++
			trimmed = strings.TrimSpace(raw)
			in, key, value = classify(trimmed)
		case errors.Is(err, io.EOF):
			s.line--
		default:
			return s.fail(fmt.Errorf("%w: %w", pgnerrors.ErrIO, err), "")
		}

		st := transition(s.state, in)
		s.state = st.next

		switch st.act {
		case ignore:
		case addTag:
			if cur == nil {
				cur = s.begin()
			}
			cur.AddTag(key, value, trimmed)
		case startMoves, appendMoves:
			cur.AddMoveLine(trimmed)
		case finalizeAndStash:
			next := s.begin()
			next.AddTag(key, value, trimmed)
			s.pending = next
			return s.finalize(cur)
		case finalizeAndEnd:
			return s.finalize(cur)
		case truncated:
			return s.fail(pgnerrors.ErrTruncated, "")
		case unexpectedLine:
			return s.fail(pgnerrors.ErrStructure, raw)
		case finish:
			return Ended{}
		}
	}
}

// Iterate calls fn with each outcome until the stream ends or fn returns
// false. Ended is not passed to fn; an Error is passed and stops iteration.
func (s *Segmenter) Iterate(fn func(Outcome) bool) {
	for {
		out := s.Next()
		if out.Kind() == KindEnded {
			return
		}
		if !fn(out) || out.Kind() == KindError {
			return
		}
	}
}

func classify(trimmed string) (in input, key, value string) {
	if trimmed == "" {
		return blankLine, "", ""
	}
	if key, value, ok := parseTag(trimmed); ok {
		return tagLine, key, value
	}
	return moveLine, "", ""
}

func (s *Segmenter) begin() *record.Record {
	s.seq++
	rec := record.New(s.prefix, s.seq)
	rec.Line = s.line
	return rec
}

func (s *Segmenter) finalize(rec *record.Record) Outcome {
	game, err := s.validator.Validate(rec)
	if err != nil {
		s.stats.BadRecords++
		return BadRecord{
			ID:        rec.ID,
			Line:      rec.Line,
			EndLine:   s.line,
			Reason:    err.Error(),
			TagsText:  rec.TagsText,
			MovesText: rec.MovesText,
			Err:       err,
		}
	}
	s.stats.Games++
	return Game{Record: game}
}

func (s *Segmenter) fail(err error, text string) Outcome {
	s.state = StateEnded
	s.pending = nil
	return Error{Err: &pgnerrors.ReadError{
		Err:  err,
		File: s.name,
		Line: s.line,
		Text: text,
	}}
}
