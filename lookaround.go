package jsonsanitize

import "unicode/utf8"

// Escape-aware lookaround. The dangerous-substring checks of the string
// normalizer must see the character an escape sequence represents, not its
// spelling: "\x3c" denotes '<' even though no raw '<' byte appears. These
// helpers decode the logical character at an offset in either direction.

// logicalCharAt decodes the logical character starting at offset i, bounded
// by end. It returns the character, the offset just past the raw units it
// occupied, and whether a character was available. A backslash at i is
// assumed to start an escape; callers must only pass escape boundaries.
func logicalCharAt(s string, i, end int) (rune, int, bool) {
	if i >= end {
		return 0, i, false
	}
	if s[i] != '\\' || i+1 >= end {
		r, size := utf8.DecodeRuneInString(s[i:end])
		return r, i + size, true
	}
	switch c := s[i+1]; c {
	case 'b':
		return '\b', i + 2, true
	case 'f':
		return '\f', i + 2, true
	case 'n':
		return '\n', i + 2, true
	case 'r':
		return '\r', i + 2, true
	case 't':
		return '\t', i + 2, true
	case 'v':
		// Matches the \v rewrite in the string normalizer.
		return '\b', i + 2, true
	case 'x':
		if i+3 < end && isHexDigit(s[i+2]) && isHexDigit(s[i+3]) {
			return rune(hexVal(s[i+2])<<4 | hexVal(s[i+3])), i + 4, true
		}
	case 'u':
		if i+5 < end && isHexDigit(s[i+2]) && isHexDigit(s[i+3]) &&
			isHexDigit(s[i+4]) && isHexDigit(s[i+5]) {
			v := hexVal(s[i+2])<<12 | hexVal(s[i+3])<<8 | hexVal(s[i+4])<<4 | hexVal(s[i+5])
			return rune(v), i + 6, true
		}
	case '0', '1', '2', '3', '4', '5', '6', '7':
		v := int(c - '0')
		j := i + 2
		if j < end && isOctalDigit(s[j]) {
			v = v*8 + int(s[j]-'0')
			j++
			// A third digit only fits in one byte when the first is <= 3.
			if c <= '3' && j < end && isOctalDigit(s[j]) {
				v = v*8 + int(s[j]-'0')
				j++
			}
		}
		return rune(v), j, true
	}
	// Unknown escape: the backslash drops and the character stands alone.
	r, size := utf8.DecodeRuneInString(s[i+1 : end])
	return r, i + 1 + size, true
}

// logicalCharBefore decodes the logical character ending just before offset
// i, bounded below by start. It returns the character, the offset where it
// begins, and whether one was available.
func logicalCharBefore(s string, start, i int) (rune, int, bool) {
	if i <= start {
		return 0, i, false
	}
	// Longest escape first, so the final hex digit of an escape that spells
	// a character is not misread as a literal. A candidate backslash only
	// starts an escape when the run of backslashes before it has even length.
	for j := i - 6; j <= i-2; j++ {
		if j < start || s[j] != '\\' {
			continue
		}
		if backslashRunLen(s, start, j)%2 != 0 {
			continue
		}
		if r, next, ok := logicalCharAt(s, j, i); ok && next == i {
			return r, j, true
		}
	}
	j := i - 1
	for j > start && !utf8.RuneStart(s[j]) {
		j--
	}
	r, _ := utf8.DecodeRuneInString(s[j:i])
	return r, j, true
}

// precededByDashDash reports whether the two logical characters ending just
// before offset i are both '-'.
func precededByDashDash(s string, start, i int) bool {
	r1, begin, ok := logicalCharBefore(s, start, i)
	if !ok || r1 != '-' {
		return false
	}
	r2, _, ok := logicalCharBefore(s, start, begin)
	return ok && r2 == '-'
}

// backslashRunLen counts the consecutive backslashes ending just before
// offset i, bounded below by start. An odd run means the unit at i is
// escaped.
func backslashRunLen(s string, start, i int) int {
	n := 0
	for j := i - 1; j >= start && s[j] == '\\'; j-- {
		n++
	}
	return n
}

func isHexDigit(c byte) bool {
	return '0' <= c && c <= '9' || 'a' <= c && c <= 'f' || 'A' <= c && c <= 'F'
}

func hexVal(c byte) int {
	switch {
	case c <= '9':
		return int(c - '0')
	case c >= 'a':
		return int(c-'a') + 10
	default:
		return int(c-'A') + 10
	}
}

func isOctalDigit(c byte) bool {
	return '0' <= c && c <= '7'
}

func lowerASCII(r rune) rune {
	if 'A' <= r && r <= 'Z' {
		return r + ('a' - 'A')
	}
	return r
}
