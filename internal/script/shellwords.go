package script

import "unicode"

// splitWords splits a line into words, handling single quotes, double quotes
// and backslash escapes (outside single quotes). A quoted empty string, in
// double or single quotes, is kept as an empty word.
func splitWords(s string) []string {
	var out []string
	var cur []rune
	inSingle := false
	inDouble := false
	escaped := false
	quoted := false

	flush := func() {
		if len(cur) == 0 && !quoted {
			return
		}
		out = append(out, string(cur))
		cur = cur[:0]
		quoted = false
	}

	for _, r := range s {
		if escaped {
			cur = append(cur, r)
			escaped = false
			continue
		}
		if r == '\\' && !inSingle {
			escaped = true
			continue
		}
		if r == '\'' && !inDouble {
			inSingle = !inSingle
			quoted = true
			continue
		}
		if r == '"' && !inSingle {
			inDouble = !inDouble
			quoted = true
			continue
		}
		if !inSingle && !inDouble && unicode.IsSpace(r) {
			flush()
			continue
		}
		cur = append(cur, r)
	}

	flush()
	return out
}

// stripComment drops a trailing "# ..." that is outside quotes and starts a word.
// "#3" style candidate references are kept.
func stripComment(s string) string {
	inSingle, inDouble, escaped := false, false, false
	rs := []rune(s)
	for i, r := range rs {
		switch {
		case escaped:
			escaped = false
		case r == '\\' && !inSingle:
			escaped = true
		case r == '\'' && !inDouble:
			inSingle = !inSingle
		case r == '"' && !inSingle:
			inDouble = !inDouble
		case r == '#' && !inSingle && !inDouble:
			atWordStart := i == 0 || unicode.IsSpace(rs[i-1])
			nextIsSpace := i+1 >= len(rs) || unicode.IsSpace(rs[i+1])
			if atWordStart && nextIsSpace {
				return string(rs[:i])
			}
		}
	}
	return s
}
