// Package validate cross-checks a finalized raw record and, on success,
// fills in its move list and fingerprint.
package validate

import (
	pgnerrors "github.com/lgbarn/pgn-ingest-go/internal/errors"
	"github.com/lgbarn/pgn-ingest-go/internal/hashing"
	"github.com/lgbarn/pgn-ingest-go/internal/movetext"
	"github.com/lgbarn/pgn-ingest-go/internal/record"
)

// Validator applies the record checks in a fixed order; the first failure wins.
type Validator struct {
	fingerprinter *hashing.Fingerprinter
}

// New creates a Validator using the default fingerprint seed.
func New() *Validator {
	return &Validator{fingerprinter: hashing.NewFingerprinter(hashing.DefaultSeed)}
}

// NewWithFingerprinter creates a Validator with a custom fingerprinter.
func NewWithFingerprinter(f *hashing.Fingerprinter) *Validator {
	if f == nil {
		return New()
	}
	return &Validator{fingerprinter: f}
}

// Validate accepts rec, setting Moves and Fingerprint, or returns a
// *errors.Rejection describing the first failed check. rec is only
// modified on acceptance.
func (v *Validator) Validate(rec *record.Record) (*record.Record, error) {
	resultTag, ok := rec.Result()
	if !ok {
		return nil, pgnerrors.Reject(pgnerrors.ErrMissingResult, "missing result tag")
	}

	if !record.IsResult(resultTag) {
		return nil, pgnerrors.Reject(pgnerrors.ErrBadResult, "bad result tag (%s)", resultTag)
	}

	ex, ok := movetext.Extract(rec.MovesText)
	if !ok {
		return nil, pgnerrors.Reject(pgnerrors.ErrNoMoveList, "cannot extract move list")
	}

	if ex.Result != resultTag {
		return nil, pgnerrors.Reject(pgnerrors.ErrResultMismatch,
			"result tag (%s) != result sentinel (%s)", resultTag, ex.Result)
	}

	if !countMatchesIndices(len(ex.Moves), ex.Indices) {
		return nil, pgnerrors.Reject(pgnerrors.ErrMoveCount,
			"last move index == %d, but # of moves (white + black) == %d", ex.Indices, len(ex.Moves))
	}

	rec.Moves = ex.Moves
	rec.Fingerprint = v.fingerprinter.Sum(ex.Moves)
	rec.FirstMove = ex.FirstIndex
	rec.BlackFirst = ex.BlackFirst
	return rec, nil
}

// countMatchesIndices holds when the game ends on Black's move (2n)
// or on White's move (2n-1).
func countMatchesIndices(moves, indices int) bool {
	return moves == 2*indices || moves == 2*indices-1
}
