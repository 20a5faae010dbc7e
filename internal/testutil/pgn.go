package testutil

import (
	"fmt"
	"strings"
)

// ScholarsMate is a complete, valid archive entry ending on White's move.
const ScholarsMate = `[Event "Casual"]
[Site "?"]
[White "A"]
[Black "B"]
[Result "1-0"]

1. e4 e5 2. Bc4 Nc6 3. Qh5 Nf6 4. Qxf7# 1-0
`

// DrawnGame is the 35-move draw used as a long extraction fixture.
const DrawnGame = `1. e4 e5 2. Nf3 Nc6 3. Bc4 Bc5 4. c3 Nf6 5. d3 d6 6. Bg5 h6 7. Bh4 Qe7 8. O-O a6
9. b4 Ba7 10. Nbd2 g5 11. Bg3 Nh7 12. a4 h5 13. h4 g4 14. Ne1 Nf8 15. Nc2 Ng6
16. Ne3 Be6 17. b5 Nd8 18. d4 Nxh4 19. dxe5 dxe5 20. Bxe5 O-O 21. Bxe6 fxe6 22.
Bd4 c5 23. bxc6 Nxc6 24. Bxa7 Rxa7 25. Ndc4 Rd8 26. Qb3 Raa8 27. Rfd1 Kh8 28.
Rab1 Rxd1+ 29. Qxd1 Rd8 30. Qb3 Ng6 31. Rb2 Rd7 32. Nb6 Rd8 33. Nbc4 Rd7 34. Nb6
Rd8 35. Nbc4 Rd7 1/2-1/2`

// PGNBuilder assembles archive text for tests.
type PGNBuilder struct {
	tags    []string
	moves   []string
	noBlank bool
}

// NewPGN starts an empty archive entry.
func NewPGN() *PGNBuilder {
	return &PGNBuilder{}
}

// Tag appends a `[key "value"]` line.
func (b *PGNBuilder) Tag(key, value string) *PGNBuilder {
	b.tags = append(b.tags, fmt.Sprintf("[%s %q]", key, value))
	return b
}

// Moves appends one or more movetext lines.
func (b *PGNBuilder) Moves(lines ...string) *PGNBuilder {
	b.moves = append(b.moves, lines...)
	return b
}

// NoBlank omits the blank separator between tags and movetext.
func (b *PGNBuilder) NoBlank() *PGNBuilder {
	b.noBlank = true
	return b
}

// String renders the entry, each line terminated by '\n'.
func (b *PGNBuilder) String() string {
	var sb strings.Builder
	for _, t := range b.tags {
		sb.WriteString(t)
		sb.WriteByte('\n')
	}
	if len(b.tags) > 0 && len(b.moves) > 0 && !b.noBlank {
		sb.WriteByte('\n')
	}
	for _, m := range b.moves {
		sb.WriteString(m)
		sb.WriteByte('\n')
	}
	return sb.String()
}

// JoinGames renders entries separated by blank lines.
func JoinGames(games ...*PGNBuilder) string {
	parts := make([]string, len(games))
	for i, g := range games {
		parts[i] = g.String()
	}
	return strings.Join(parts, "\n")
}
