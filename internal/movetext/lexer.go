package movetext

import "github.com/lgbarn/pgn-ingest-go/internal/record"

// lexKind classifies one lexeme of a movetext block.
type lexKind int

const (
	lexJunk lexKind = iota
	lexIndex
	lexUnit
	lexComment
	lexResult
)

// lexeme is a classified slice of movetext.
// For lexUnit, text is the SAN token without any !/? suffix.
// For lexIndex, text is the digit run without the dots.
type lexeme struct {
	kind   lexKind
	text   string
	spaced bool // preceded by whitespace (or start of text)
	cont   bool // lexIndex written with more than one dot, e.g. "12..."
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n'
}

func isFile(c byte) bool {
	return c >= 'a' && c <= 'h'
}

func isRank(c byte) bool {
	return c >= '1' && c <= '8'
}

func isPiece(c byte) bool {
	switch c {
	case 'P', 'N', 'B', 'R', 'Q', 'K':
		return true
	}
	return false
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// lex splits text into lexemes. Comments run from '{' to the first '}'
// and may not contain '{'; an unterminated or empty comment is junk.
func lex(text string) []lexeme {
	var out []lexeme
	pos := 0
	spaced := true

	for pos < len(text) {
		c := text[pos]
		if isSpace(c) {
			spaced = true
			pos++
			continue
		}

		if c == '{' {
			end := pos + 1
			for end < len(text) && text[end] != '}' && text[end] != '{' {
				end++
			}
			if end >= len(text) || text[end] != '}' || end == pos+1 {
				return append(out, lexeme{kind: lexJunk, text: text[pos:], spaced: spaced})
			}
			out = append(out, lexeme{kind: lexComment, text: text[pos+1 : end], spaced: spaced})
			pos = end + 1
			spaced = false
			continue
		}

		end := pos
		for end < len(text) && !isSpace(text[end]) && text[end] != '{' {
			end++
		}
		word := text[pos:end]
		pos = end

		// "12.Nf3" is split so that the anchor can reject the missing space.
		if n := indexLength(word); n > 0 {
			digits := trimDots(word[:n])
			out = append(out, lexeme{kind: lexIndex, text: digits, spaced: spaced, cont: n-len(digits) > 1})
			if n == len(word) {
				spaced = false
				continue
			}
			word = word[n:]
			spaced = false
		}

		out = append(out, classifyWord(word, spaced))
		spaced = false
	}
	return out
}

// indexLength returns the length of a leading move-index marker
// (one or more digits followed by one or more dots), or 0.
func indexLength(word string) int {
	i := 0
	for i < len(word) && isDigit(word[i]) {
		i++
	}
	if i == 0 || i >= len(word) || word[i] != '.' {
		return 0
	}
	for i < len(word) && word[i] == '.' {
		i++
	}
	return i
}

func trimDots(s string) string {
	for len(s) > 0 && s[len(s)-1] == '.' {
		s = s[:len(s)-1]
	}
	return s
}

func classifyWord(word string, spaced bool) lexeme {
	if record.IsResult(word) {
		return lexeme{kind: lexResult, text: word, spaced: spaced}
	}
	if san, ok := splitUnit(word); ok {
		return lexeme{kind: lexUnit, text: san, spaced: spaced}
	}
	return lexeme{kind: lexJunk, text: word, spaced: spaced}
}

// splitUnit strips an optional one- or two-character !/? suffix and
// reports the remaining SAN or castling token.
func splitUnit(word string) (string, bool) {
	body := word
	for i := 0; i < 2 && len(body) > 0; i++ {
		last := body[len(body)-1]
		if last != '!' && last != '?' {
			break
		}
		body = body[:len(body)-1]
	}
	if IsSAN(body) || IsCastle(body) {
		return body, true
	}
	return "", false
}

// IsCastle reports whether s is O-O or O-O-O with an optional check or mate mark.
func IsCastle(s string) bool {
	s = trimCheck(s)
	return s == "O-O" || s == "O-O-O"
}

// IsSAN reports whether s is a non-castling SAN token:
// [PNBRQK]? [a-h]? [1-8]? x? [a-h][1-8] (=[PNBRQK])? [+#]?
func IsSAN(s string) bool {
	s = trimCheck(s)

	if n := len(s); n >= 2 && s[n-2] == '=' {
		if !isPiece(s[n-1]) {
			return false
		}
		s = s[:n-2]
	}

	if len(s) > 0 && isPiece(s[0]) {
		s = s[1:]
	}

	n := len(s)
	if n < 2 || !isFile(s[n-2]) || !isRank(s[n-1]) {
		return false
	}
	s = s[:n-2]

	if len(s) > 0 && s[len(s)-1] == 'x' {
		s = s[:len(s)-1]
	}

	switch len(s) {
	case 0:
		return true
	case 1:
		return isFile(s[0]) || isRank(s[0])
	case 2:
		return isFile(s[0]) && isRank(s[1])
	}
	return false
}

func trimCheck(s string) string {
	if n := len(s); n > 0 && (s[n-1] == '+' || s[n-1] == '#') {
		return s[:n-1]
	}
	return s
}
