// Package record defines the structured form of a single archived game.
package record

import (
	"fmt"
	"strconv"
	"strings"
)

// Well-known tag names read by the storage layer.
const (
	EventTag       = "Event"
	SiteTag        = "Site"
	RoundTag       = "Round"
	DateTag        = "Date"
	TimeTag        = "Time"
	TimeControlTag = "TimeControl"
	WhiteTag       = "White"
	WhiteTitleTag  = "WhiteTitle"
	WhiteEloTag    = "WhiteElo"
	WhiteFideIDTag = "WhiteFideId"
	BlackTag       = "Black"
	BlackTitleTag  = "BlackTitle"
	BlackEloTag    = "BlackElo"
	BlackFideIDTag = "BlackFideId"
	ECOTag         = "ECO"
	OpeningTag     = "Opening"
	VariationTag   = "Variation"
	ResultTag      = "Result"
)

// SevenTagRoster lists the standard tags in their canonical order.
var SevenTagRoster = []string{EventTag, SiteTag, DateTag, RoundTag, WhiteTag, BlackTag, ResultTag}

// Result sentinels terminating a movetext block.
const (
	WhiteWins  = "1-0"
	BlackWins  = "0-1"
	Draw       = "1/2-1/2"
	Unfinished = "*"
)

// IsResult reports whether s is one of the four legal result sentinels.
func IsResult(s string) bool {
	switch s {
	case WhiteWins, BlackWins, Draw, Unfinished:
		return true
	}
	return false
}

// Record is one game read from an archive.
// Moves, Fingerprint, FirstMove and BlackFirst are only set once the record
// has been accepted.
type Record struct {
	// ID is "<archive-prefix>.<sequence>", sequence 1-based per stream.
	ID string

	// Tags maps tag keys to values; the last occurrence of a key wins.
	Tags map[string]string

	// TagsText is the raw tag block, one trimmed line per tag, each ending in '\n'.
	TagsText string

	// MovesText is the raw movetext block, one trimmed line per input line.
	MovesText string

	// Moves is the ordered SAN token sequence.
	Moves []string

	// Fingerprint is the 64-bit digest of Moves.
	Fingerprint uint64

	// FirstMove is the move number of Moves[0]; 0 means 1.
	FirstMove int

	// BlackFirst is set when Moves[0] is a Black move.
	BlackFirst bool

	// Line is the input line on which the record's first tag appeared.
	Line int
}

// New creates an empty record with identifier "<prefix>.<seq>".
func New(prefix string, seq int) *Record {
	return &Record{
		ID:   FormatID(prefix, seq),
		Tags: make(map[string]string),
	}
}

// FormatID builds a record identifier.
func FormatID(prefix string, seq int) string {
	return fmt.Sprintf("%s.%d", prefix, seq)
}

// AddTag records a tag pair and its raw line.
func (r *Record) AddTag(key, value, rawLine string) {
	if r.Tags == nil {
		r.Tags = make(map[string]string)
	}
	r.Tags[key] = value
	r.TagsText += rawLine + "\n"
}

// AddMoveLine appends one raw movetext line.
func (r *Record) AddMoveLine(line string) {
	r.MovesText += line + "\n"
}

// Tag returns a tag value, or empty string if not present.
func (r *Record) Tag(key string) string {
	return r.Tags[key]
}

// IntTag returns a tag parsed as an integer. Missing or non-numeric values yield 0.
func (r *Record) IntTag(key string) int {
	n, err := strconv.Atoi(strings.TrimSpace(r.Tags[key]))
	if err != nil {
		return 0
	}
	return n
}

// Result returns the Result tag and whether it was present.
func (r *Record) Result() (string, bool) {
	v, ok := r.Tags[ResultTag]
	return v, ok
}

// PlyCount returns the number of extracted move tokens.
func (r *Record) PlyCount() int {
	return len(r.Moves)
}

// MoveString returns the move tokens joined by single spaces.
func (r *Record) MoveString() string {
	return strings.Join(r.Moves, " ")
}
