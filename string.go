package jsonsanitize

import "unicode/utf8"

// sanitizeString repairs a quoted string token spanning input[start:end),
// where input[start] is the opening delimiter and the final unit is the
// matching terminator when one exists. Single-quote delimiters become double
// quotes, broken escapes are rewritten, and characters that could break an
// HTML/XML/JS embedding are escaped.
func (s *sanitizer) sanitizeString(start, end int) {
	closed := false
	for i := start; i < end; {
		switch c := s.in[i]; c {
		case '\t':
			s.replace(i, i+1, `\t`)
			i++
		case '\n':
			s.replace(i, i+1, `\n`)
			i++
		case '\r':
			s.replace(i, i+1, `\r`)
			i++

		case '"', '\'':
			switch {
			case i == start:
				if c == '\'' {
					s.replace(i, i+1, `"`)
				}
			case i+1 == end && c == s.in[start]:
				closed = true
				if c == '\'' {
					s.replace(i, i+1, `"`)
				}
			case c == '"':
				// Internal double quote must be escaped since the output
				// string is always double-quoted.
				s.insert(i, `\`)
			}
			i++

		case '<':
			// <!--, <script and </script (the latter two sniffed by their
			// first units, case-insensitively) can terminate an embedding
			// context even inside a string literal.
			a, p, ok1 := logicalCharAt(s.in, i+1, end)
			b, q, ok2 := logicalCharAt(s.in, p, end)
			d, _, ok3 := logicalCharAt(s.in, q, end)
			if ok1 && ok2 && ok3 {
				switch {
				case a == '!' && b == '-' && d == '-',
					lowerASCII(a) == 's' && lowerASCII(b) == 'c' && lowerASCII(d) == 'r',
					a == '/' && lowerASCII(b) == 's' && lowerASCII(d) == 'c':
					s.replace(i, i+1, "\\u003c")
				}
			}
			i++

		case '>':
			// --> closes an HTML comment.
			if precededByDashDash(s.in, start, i) {
				s.replace(i, i+1, "\\u003e")
			}
			i++

		case ']':
			// ]]> closes a CDATA section.
			a, p, ok1 := logicalCharAt(s.in, i+1, end)
			b, _, ok2 := logicalCharAt(s.in, p, end)
			if ok1 && ok2 && a == ']' && b == '>' {
				s.replace(i, i+1, "\\u005d")
			}
			i++

		case '\\':
			i = s.sanitizeEscape(i, end)

		default:
			r, size := utf8.DecodeRuneInString(s.in[i:end])
			switch {
			case r == utf8.RuneError && size <= 1:
				// Byte that does not decode as UTF-8: the Go shape of an
				// isolated surrogate or truncated sequence.
				s.replace(i, i+1, "\\ufffd")
				size = 1
			case r == 0x2028:
				s.replace(i, i+size, "\\u2028")
			case r == 0x2029:
				s.replace(i, i+size, "\\u2029")
			case !isXMLLegal(r):
				s.replaceWithEscape(i, i+size, r)
			}
			i += size
		}
	}
	if !closed {
		s.insert(end, `"`)
	}
}

// sanitizeEscape repairs the backslash escape starting at offset i and
// returns the offset of the next unprocessed unit.
func (s *sanitizer) sanitizeEscape(i, end int) int {
	if i+1 >= end {
		// Trailing backslash cannot start anything.
		s.elide(i, i+1)
		return i + 1
	}
	switch c := s.in[i+1]; c {
	case 'b', 'f', 'n', 'r', 't', '\\', '/', '"':
		return i + 2

	case 'v':
		// JSON has no \v escape.
		s.replace(i, i+2, "\\u0008")
		return i + 2

	case 'x':
		if i+3 < end && isHexDigit(s.in[i+2]) && isHexDigit(s.in[i+3]) {
			s.replace(i, i+2, `\u00`)
			return i + 4
		}
		s.elide(i, i+1)
		return i + 1

	case 'u':
		if i+5 < end && isHexDigit(s.in[i+2]) && isHexDigit(s.in[i+3]) &&
			isHexDigit(s.in[i+4]) && isHexDigit(s.in[i+5]) {
			return i + 6
		}
		s.elide(i, i+1)
		return i + 1

	case '0', '1', '2', '3', '4', '5', '6', '7':
		v := int(c - '0')
		j := i + 2
		if j < end && isOctalDigit(s.in[j]) {
			v = v*8 + int(s.in[j]-'0')
			j++
			if c <= '3' && j < end && isOctalDigit(s.in[j]) {
				v = v*8 + int(s.in[j]-'0')
				j++
			}
		}
		s.replaceWithEscape(i, j, rune(v))
		return j

	default:
		// Unknown escape: drop the backslash, keep the character.
		s.elide(i, i+1)
		return i + 1
	}
}

// isXMLLegal reports whether r may appear unescaped in an XML document.
func isXMLLegal(r rune) bool {
	switch {
	case r == 0x9 || r == 0xA || r == 0xD:
		return true
	case 0x20 <= r && r <= 0xD7FF:
		return true
	case 0xE000 <= r && r <= 0xFFFD:
		return true
	case 0x10000 <= r && r <= 0x10FFFF:
		return true
	}
	return false
}
