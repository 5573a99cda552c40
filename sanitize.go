package jsonsanitize

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// parseState tracks where the scanner is relative to the surrounding
// container. Exactly one state is current at any position.
type parseState uint8

const (
	// stateStartArray is the entry state of a freshly opened array and of
	// the top level, which is treated as a single implicit element slot so
	// that a bare scalar is valid top-level output.
	stateStartArray parseState = iota
	stateBeforeElement
	stateAfterElement
	// stateStartMap is the entry state of a freshly opened object.
	stateStartMap
	stateBeforeKey
	stateAfterKey
	stateBeforeValue
	stateAfterValue
)

// sanitizer holds the per-call scan state. Nothing survives the call.
type sanitizer struct {
	in       string
	out      []byte // nil until the first edit
	cleaned  int
	maxDepth int
	isMap    []bool // bracket stack, true = object
	stackBuf [16]bool
}

// Sanitize repairs JSON-ish text into strictly valid, embedding-safe JSON.
//
// The result always parses as strict JSON, contains no "</script" or "]]>"
// substring, and contains no raw U+2028/U+2029 or unescaped isolated
// surrogate. Already-valid, already-safe input is returned unchanged.
//
// The only error condition is ErrNestingTooDeep; every other defect is
// silently repaired.
func Sanitize(input string, opts ...Option) (string, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	s := &sanitizer{in: input, maxDepth: cfg.maxDepth}
	s.isMap = s.stackBuf[:0]
	if err := s.run(); err != nil {
		return "", err
	}
	return s.result(), nil
}

func (s *sanitizer) run() error {
	st := stateStartArray
	n := len(s.in)

scan:
	for i := 0; i < n; i++ {
		ch := s.in[i]
		switch ch {
		case '\t', '\n', '\r', ' ':
			// skip

		case '"', '\'':
			next, stop := s.requireValueState(i, st, true)
			if stop {
				s.elide(i, n)
				break scan
			}
			st = next
			strEnd := endOfQuotedString(s.in, i)
			s.sanitizeString(i, strEnd)
			i = strEnd - 1

		case '(', ')':
			// Not JSON grammar.
			s.elide(i, i+1)

		case '{', '[':
			next, stop := s.requireValueState(i, st, false)
			if stop {
				s.elide(i, n)
				break scan
			}
			st = next
			if len(s.isMap) >= s.maxDepth {
				return fmt.Errorf("%w: more than %d open containers", ErrNestingTooDeep, s.maxDepth)
			}
			s.isMap = append(s.isMap, ch == '{')
			if ch == '{' {
				st = stateStartMap
			} else {
				st = stateStartArray
			}

		case '}', ']':
			if len(s.isMap) == 0 {
				// Stray top-level closer: everything before it is the
				// complete document.
				s.elide(i, n)
				break scan
			}
			switch st {
			case stateBeforeValue:
				s.insert(i, "null")
			case stateBeforeElement, stateBeforeKey:
				s.elideTrailingComma(i)
			case stateAfterKey:
				s.insert(i, ":null")
			}
			top := s.isMap[len(s.isMap)-1]
			s.isMap = s.isMap[:len(s.isMap)-1]
			want := byte(']')
			if top {
				want = '}'
			}
			if ch != want {
				s.replace(i, i+1, string(want))
			}
			if len(s.isMap) != 0 && s.isMap[len(s.isMap)-1] {
				st = stateAfterValue
			} else {
				st = stateAfterElement
			}

		case ',':
			if len(s.isMap) == 0 {
				// Unbracketed comma ends the document.
				s.elide(i, n)
				break scan
			}
			switch st {
			case stateAfterElement:
				st = stateBeforeElement
			case stateAfterValue:
				st = stateBeforeKey
			case stateStartArray, stateBeforeElement:
				// [1,,2] -> [1,null,2]
				s.insert(i, "null")
				st = stateBeforeElement
			case stateStartMap, stateBeforeKey, stateAfterKey:
				// {,"a":1} -> {"a":1}
				s.elide(i, i+1)
			case stateBeforeValue:
				s.insert(i, "null")
				st = stateBeforeKey
			}

		case ':':
			if st == stateAfterKey {
				st = stateBeforeValue
			} else {
				s.elide(i, i+1)
			}

		case '/':
			end := i + 1
			if i+1 < n {
				switch s.in[i+1] {
				case '/':
					// Elided through the line terminator inclusively.
					end = n
					for j := i + 2; j < n; j++ {
						if c := s.in[j]; c == '\n' || c == '\r' {
							end = j + 1
							break
						}
						if isLineSeparatorAt(s.in, j) {
							end = j + 3
							break
						}
					}
				case '*':
					end = n
					if term := strings.Index(s.in[i+2:], "*/"); term >= 0 {
						end = i + 2 + term + 2
					}
				}
			}
			s.elide(i, end)
			i = end - 1

		default:
			runEnd := i
			for runEnd < n && isRunChar(s.in[runEnd]) {
				runEnd++
			}
			if runEnd == i {
				// Not part of any token.
				_, size := utf8.DecodeRuneInString(s.in[i:])
				s.elide(i, i+size)
				i += size - 1
				continue
			}
			next, stop := s.requireValueState(i, st, true)
			if stop {
				s.elide(i, n)
				break scan
			}
			st = next

			isNumber := ch == '.' || ch == '+' || ch == '-' || ('0' <= ch && ch <= '9')
			isKw := !isNumber && isKeyword(s.in[i:runEnd])
			switch {
			case !isNumber && !isKw:
				// Bare identifier becomes a quoted string. The token
				// charset contains nothing that needs escaping.
				s.insert(i, `"`)
				s.insert(runEnd, `"`)
			case st == stateAfterKey:
				// Keys are always quoted; numeric keys additionally get
				// their canonical decimal spelling.
				s.insert(i, `"`)
				if isNumber {
					s.canonicalizeNumberAsKey(i, runEnd)
				}
				s.insert(runEnd, `"`)
			case isNumber:
				s.normalizeNumber(i, runEnd)
			}
			i = runEnd - 1
		}
	}

	// Nothing but whitespace, comments or elided garbage: the document is
	// exactly null, with no flushed whitespace around it.
	if st == stateStartArray && len(s.isMap) == 0 {
		if s.out != nil {
			s.out = s.out[:0]
		}
		s.cleaned = n
		s.insert(n, "null")
		st = stateAfterElement
	}

	if len(s.isMap) != 0 {
		switch st {
		case stateBeforeElement, stateBeforeKey:
			s.elideTrailingComma(n)
		case stateAfterKey:
			s.insert(n, ":null")
		case stateBeforeValue:
			s.insert(n, "null")
		}
		s.elide(n, n)
		for d := len(s.isMap) - 1; d >= 0; d-- {
			if s.isMap[d] {
				s.out = append(s.out, '}')
			} else {
				s.out = append(s.out, ']')
			}
		}
		s.isMap = s.isMap[:0]
	}
	return nil
}

// requireValueState transitions into the state that follows a value-bearing
// token starting at pos, inserting any separators or synthesized keys the
// transition needs. canBeKey reports whether the token may serve as an
// object key. The second result is true when a second top-level value makes
// the rest of the input unusable and the scan must stop.
func (s *sanitizer) requireValueState(pos int, st parseState, canBeKey bool) (parseState, bool) {
	switch st {
	case stateStartMap, stateBeforeKey:
		if canBeKey {
			return stateAfterKey, false
		}
		// Not usable as a key: synthesize an empty one.
		s.insertAfterToken(pos, `"":`)
		return stateAfterValue, false
	case stateAfterKey:
		s.insertAfterToken(pos, ":")
		return stateAfterValue, false
	case stateBeforeValue:
		return stateAfterValue, false
	case stateAfterValue:
		if canBeKey {
			s.insertAfterToken(pos, ",")
			return stateAfterKey, false
		}
		s.insertAfterToken(pos, `,"":`)
		return stateAfterValue, false
	case stateStartArray, stateBeforeElement:
		return stateAfterElement, false
	default: // stateAfterElement
		if len(s.isMap) == 0 {
			return st, true
		}
		s.insertAfterToken(pos, ",")
		return stateAfterElement, false
	}
}

// insertAfterToken places text directly after the preceding token: the
// whitespace run between that token and pos is discarded, whether it is
// still unflushed input or already sits at the tail of the output buffer.
func (s *sanitizer) insertAfterToken(pos int, text string) {
	start := pos
	for start > s.cleaned && isJSONSpace(s.in[start-1]) {
		start--
	}
	if start == s.cleaned {
		for len(s.out) > 0 && isJSONSpace(s.out[len(s.out)-1]) {
			s.out = s.out[:len(s.out)-1]
		}
	}
	s.replace(start, pos, text)
}

// elideTrailingComma removes the comma that must precede closePos when the
// scanner is in a before-element or before-key state. The comma is either in
// the not-yet-flushed part of the input or already in the output buffer.
func (s *sanitizer) elideTrailingComma(closePos int) {
	for i := closePos - 1; i >= s.cleaned; i-- {
		switch s.in[i] {
		case '\t', '\n', '\r', ' ':
		case ',':
			s.elide(i, i+1)
			return
		default:
			return
		}
	}
	for i := len(s.out) - 1; i >= 0; i-- {
		switch s.out[i] {
		case '\t', '\n', '\r', ' ':
		case ',':
			s.out = append(s.out[:i], s.out[i+1:]...)
			return
		default:
			return
		}
	}
}

// endOfQuotedString returns the offset just past the closing delimiter of
// the quoted string starting at start, or len(s) when it is unterminated.
// A delimiter preceded by an odd number of backslashes is escaped and does
// not terminate the string.
func endOfQuotedString(s string, start int) int {
	quote := s[start]
	for i := start; ; {
		off := strings.IndexByte(s[i+1:], quote)
		if off < 0 {
			return len(s)
		}
		i += 1 + off
		if backslashRunLen(s, start+1, i)%2 == 0 {
			return i + 1
		}
	}
}

func isJSONSpace(c byte) bool {
	return c == '\t' || c == '\n' || c == '\r' || c == ' '
}

// isRunChar reports whether c may appear in a bare keyword, number or
// identifier token.
func isRunChar(c byte) bool {
	return 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' || '0' <= c && c <= '9' ||
		c == '+' || c == '-' || c == '.' || c == '_' || c == '$'
}

func isKeyword(s string) bool {
	return s == "true" || s == "false" || s == "null"
}

// isLineSeparatorAt reports whether a U+2028 or U+2029 starts at offset i.
func isLineSeparatorAt(s string, i int) bool {
	return i+2 < len(s) && s[i] == 0xE2 && s[i+1] == 0x80 &&
		(s[i+2] == 0xA8 || s[i+2] == 0xA9)
}
