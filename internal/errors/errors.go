// Package errors provides sentinel errors and error types for pgn-ingest.
// Stream-fatal failures are reported as *ReadError, per-record business rule
// violations as *Rejection. Both wrap a sentinel so callers can inspect them
// with errors.Is() and errors.As().
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for common failure conditions.
// Use these with errors.Is() to check for specific error types.
var (
	// ErrIO indicates a read failure on the line source.
	ErrIO = errors.New("i/o error")

	// ErrStructure indicates a line where no line is expected at all,
	// e.g. movetext before the first tag block.
	ErrStructure = errors.New("unexpected line")

	// ErrTruncated indicates the stream ended inside a tag block.
	ErrTruncated = errors.New("ended unexpectedly")

	// ErrMissingResult indicates a record without a Result tag.
	ErrMissingResult = errors.New("missing result tag")

	// ErrBadResult indicates a Result tag that is not a legal sentinel.
	ErrBadResult = errors.New("bad result tag")

	// ErrNoMoveList indicates movetext that does not form a complete game.
	ErrNoMoveList = errors.New("cannot extract move list")

	// ErrResultMismatch indicates the Result tag disagrees with the movetext sentinel.
	ErrResultMismatch = errors.New("result tag != result sentinel")

	// ErrMoveCount indicates the move count does not fit the move index count.
	ErrMoveCount = errors.New("move count / index mismatch")

	// ErrInvalidConfig indicates invalid configuration values.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrUnsupportedBackend indicates an unknown storage backend name.
	ErrUnsupportedBackend = errors.New("unsupported storage backend")
)

// ReadError is a stream-fatal error with source location context.
// After a ReadError the stream it came from is abandoned.
type ReadError struct {
	Err  error  // The underlying error (ErrIO, ErrStructure or ErrTruncated, possibly wrapped)
	File string // Source file name (if known)
	Line int    // 1-based line number of the offending read
	Text string // The offending line, if any
}

// Error returns a formatted error message with location and context.
func (e *ReadError) Error() string {
	var parts []string

	if e.File != "" {
		parts = append(parts, e.File)
	}
	if e.Line > 0 {
		parts = append(parts, fmt.Sprintf("line %d", e.Line))
	}

	msg := "read error"
	if e.Err != nil {
		msg = e.Err.Error()
	}
	if e.Text != "" {
		msg = fmt.Sprintf("%s: %s", msg, strings.TrimRight(e.Text, "\r\n"))
	}

	if len(parts) == 0 {
		return msg
	}
	return fmt.Sprintf("%s: %s", strings.Join(parts, ", "), msg)
}

// Unwrap returns the underlying error.
func (e *ReadError) Unwrap() error {
	return e.Err
}

// Rejection is a recoverable, per-record validation failure.
// Reason is the human-readable diagnostic shown to operators.
type Rejection struct {
	Err    error  // One of the record-level sentinels
	Reason string // Full reason text, e.g. "result tag (1-0) != result sentinel (0-1)"
}

// Reject creates a Rejection for sentinel err with a formatted reason.
func Reject(err error, format string, args ...interface{}) *Rejection {
	return &Rejection{Err: err, Reason: fmt.Sprintf(format, args...)}
}

// Error returns the rejection reason.
func (e *Rejection) Error() string {
	if e.Reason != "" {
		return e.Reason
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "rejected"
}

// Unwrap returns the underlying sentinel.
func (e *Rejection) Unwrap() error {
	return e.Err
}

// Wrap adds context to an error while preserving the underlying error
// for inspection with errors.Is() and errors.As().
func Wrap(err error, context string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", context, err)
}

// Wrapf adds formatted context to an error while preserving the underlying
// error for inspection with errors.Is() and errors.As().
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}
