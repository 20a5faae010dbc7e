package segment

import (
	"fmt"

	"github.com/lgbarn/pgn-ingest-go/internal/record"
)

// Kind identifies an Outcome variant.
type Kind int

const (
	KindGame Kind = iota
	KindBadRecord
	KindEnded
	KindError
)

// String returns the variant name.
func (k Kind) String() string {
	switch k {
	case KindGame:
		return "game"
	case KindBadRecord:
		return "bad record"
	case KindEnded:
		return "ended"
	case KindError:
		return "error"
	default:
		return "unknown"
	}
}

// Outcome is the result of one Next call. The set of implementations is
// closed: Game, BadRecord, Ended and Error.
type Outcome interface {
	Kind() Kind
	outcome()
}

// Game is an accepted record with its move list and fingerprint populated.
type Game struct {
	Record *record.Record
}

// BadRecord is a record that failed validation. The stream continues.
type BadRecord struct {
	ID        string
	Line      int // line on which the record began
	EndLine   int // line the reader was on when the record was rejected
	Reason    string
	TagsText  string
	MovesText string
	Err       error // the *errors.Rejection behind Reason
}

// Ended reports that the stream is exhausted.
type Ended struct{}

// Error reports a stream-fatal failure. Err is an *errors.ReadError.
type Error struct {
	Err error
}

func (Game) Kind() Kind      { return KindGame }
func (BadRecord) Kind() Kind { return KindBadRecord }
func (Ended) Kind() Kind     { return KindEnded }
func (Error) Kind() Kind     { return KindError }

func (Game) outcome()      {}
func (BadRecord) outcome() {}
func (Ended) outcome()     {}
func (Error) outcome()     {}

// String formats the diagnostic block logged for rejected records.
func (b BadRecord) String() string {
	return fmt.Sprintf("Line %d: invalid pgn: %s (reader at line %d)\n%s\n%s\n",
		b.Line, b.Reason, b.EndLine, b.TagsText, b.MovesText)
}

// Error returns the underlying error's message.
func (e Error) Error() string {
	if e.Err == nil {
		return "segment error"
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e Error) Unwrap() error {
	return e.Err
}
