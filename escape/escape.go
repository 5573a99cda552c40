package escape

import (
	"strings"
	"unicode/utf8"
)

const hexDigits = "0123456789abcdef"

// JSONString escapes s for use as the content of a double-quoted JSON
// string that is safe to embed in HTML, XML and JavaScript contexts. The
// surrounding quotes are not added.
func JSONString(s string) string {
	// Fast path: scan for the first byte that needs work.
	i := 0
	for i < len(s) {
		c := s[i]
		if c >= utf8.RuneSelf || needsEscape(c) {
			break
		}
		i++
	}
	if i == len(s) {
		return s
	}

	var b strings.Builder
	b.Grow(len(s) + 8)
	b.WriteString(s[:i])
	for i < len(s) {
		c := s[i]
		if c < utf8.RuneSelf {
			switch c {
			case '"':
				b.WriteString(`\"`)
			case '\\':
				b.WriteString(`\\`)
			case '\b':
				b.WriteString(`\b`)
			case '\f':
				b.WriteString(`\f`)
			case '\n':
				b.WriteString(`\n`)
			case '\r':
				b.WriteString(`\r`)
			case '\t':
				b.WriteString(`\t`)
			case '<':
				// Prevents </script and <!--.
				b.WriteString("\\u003c")
			case '>':
				// Prevents --> and ]]>.
				b.WriteString("\\u003e")
			default:
				if c < 0x20 {
					writeUnitEscape(&b, rune(c))
				} else {
					b.WriteByte(c)
				}
			}
			i++
			continue
		}
		r, size := utf8.DecodeRuneInString(s[i:])
		switch {
		case r == utf8.RuneError && size <= 1:
			// Invalid byte: the Go shape of an isolated surrogate.
			b.WriteString("\\ufffd")
			i++
			continue
		case r == 0x2028:
			b.WriteString("\\u2028")
		case r == 0x2029:
			b.WriteString("\\u2029")
		default:
			b.WriteString(s[i : i+size])
		}
		i += size
	}
	return b.String()
}

func needsEscape(c byte) bool {
	return c < 0x20 || c == '"' || c == '\\' || c == '<' || c == '>'
}

func writeUnitEscape(b *strings.Builder, r rune) {
	b.WriteString(`\u`)
	b.WriteByte(hexDigits[r>>12&0xF])
	b.WriteByte(hexDigits[r>>8&0xF])
	b.WriteByte(hexDigits[r>>4&0xF])
	b.WriteByte(hexDigits[r&0xF])
}
