package segment

// parseTag matches a trimmed line against [Key "Value"]: Key is a run of
// ASCII word characters, at least one space or tab separates it from the
// quoted value, and the value contains no double quote.
func parseTag(line string) (key, value string, ok bool) {
	if len(line) < 2 || line[0] != '[' || line[len(line)-1] != ']' {
		return "", "", false
	}
	inner := line[1 : len(line)-1]

	i := 0
	for i < len(inner) && isWordChar(inner[i]) {
		i++
	}
	if i == 0 {
		return "", "", false
	}
	key = inner[:i]

	j := i
	for j < len(inner) && (inner[j] == ' ' || inner[j] == '\t') {
		j++
	}
	if j == i || j >= len(inner) || inner[j] != '"' {
		return "", "", false
	}

	rest := inner[j+1:]
	end := -1
	for k := 0; k < len(rest); k++ {
		if rest[k] == '"' {
			end = k
			break
		}
	}
	if end < 0 || end != len(rest)-1 {
		return "", "", false
	}
	return key, rest[:end], true
}

func isWordChar(c byte) bool {
	return c == '_' ||
		(c >= 'a' && c <= 'z') ||
		(c >= 'A' && c <= 'Z') ||
		(c >= '0' && c <= '9')
}
