// Package movetext extracts the move list and result sentinel from the
// movetext block of a game.
//
// Extraction is done in two passes over the same text. The anchor pass checks
// that the whole block is a sequence of items (a move index followed by one or
// two moves, each optionally annotated and commented) terminated by a result
// sentinel, and fails on anything else. The token pass then collects the moves
// of every item in document order. A sentinel that only appears inside a
// comment or in the middle of the block therefore never makes a block valid.
package movetext

import "strconv"

// Extraction is the result of a successful Extract.
type Extraction struct {
	// Moves holds the SAN tokens in document order, without !/? suffixes.
	Moves []string

	// Indices is the number of distinct move-index values seen.
	// "1. e4 {c} 1... e5" has two markers but one index value.
	Indices int

	// Result is the trailing result sentinel.
	Result string

	// FirstIndex is the value of the first move-index marker, 0 if it does
	// not fit in an int.
	FirstIndex int

	// BlackFirst is set when the first marker is a continuation ("23...").
	BlackFirst bool
}

// Extract parses a movetext block. It reports false when the block is not
// a complete, well-terminated game.
func Extract(text string) (Extraction, bool) {
	lexemes := lex(text)

	result, ok := anchor(lexemes)
	if !ok {
		return Extraction{}, false
	}

	moves, indices := collect(lexemes)
	// A matched anchor always starts with an index.
	first, err := strconv.Atoi(lexemes[0].text)
	if err != nil {
		first = 0
	}
	return Extraction{
		Moves:      moves,
		Indices:    indices,
		Result:     result,
		FirstIndex: first,
		BlackFirst: lexemes[0].cont,
	}, true
}

// anchor matches item (ws+ item)* ws+ result against the full lexeme stream
// and returns the trailing sentinel. An item is index ws+ move (ws+ move)?.
func anchor(lx []lexeme) (string, bool) {
	pos := 0
	items := 0

	for pos < len(lx) {
		if lx[pos].kind == lexResult {
			if items == 0 || !lx[pos].spaced || pos != len(lx)-1 {
				return "", false
			}
			return lx[pos].text, true
		}

		if lx[pos].kind != lexIndex || (items > 0 && !lx[pos].spaced) {
			return "", false
		}
		pos++
		if pos >= len(lx) || !lx[pos].spaced {
			return "", false
		}

		next, ok := matchUnit(lx, pos)
		if !ok {
			return "", false
		}
		pos = next

		if pos < len(lx) && lx[pos].kind == lexUnit && lx[pos].spaced {
			if pos, ok = matchUnit(lx, pos); !ok {
				return "", false
			}
		}
		items++
	}
	return "", false
}

// matchUnit matches one move followed by at most one comment, returning the
// position after it.
func matchUnit(lx []lexeme, pos int) (int, bool) {
	if pos >= len(lx) || lx[pos].kind != lexUnit {
		return pos, false
	}
	pos++
	if pos < len(lx) && lx[pos].kind == lexComment {
		pos++
	}
	return pos, true
}

// collect scans for every index-then-move occurrence and gathers the first
// and, if present, second move of each.
func collect(lx []lexeme) ([]string, int) {
	moves := make([]string, 0, len(lx)/2)
	indices := 0
	lastIndex := ""

	for pos := 0; pos < len(lx); pos++ {
		if lx[pos].kind != lexIndex {
			continue
		}
		next, ok := matchUnit(lx, pos+1)
		if !ok || !lx[pos+1].spaced {
			continue
		}

		if lx[pos].text != lastIndex {
			indices++
			lastIndex = lx[pos].text
		}
		moves = append(moves, lx[pos+1].text)

		if next < len(lx) && lx[next].kind == lexUnit && lx[next].spaced {
			moves = append(moves, lx[next].text)
			next, _ = matchUnit(lx, next)
		}
		pos = next - 1
	}
	return moves, indices
}
