package jsonsanitize

// The output buffer is assembled lazily. While no repair has been necessary
// the sanitizer only advances through the input; the first edit allocates the
// buffer and flushes everything scanned so far into it. The cleaned cursor
// marks how much of the input has been flushed and never moves backwards.

// elide flushes input[cleaned:start) into the buffer and drops
// input[start:end) from the output.
func (s *sanitizer) elide(start, end int) {
	if s.out == nil {
		s.out = make([]byte, 0, len(s.in)+16)
	}
	s.out = append(s.out, s.in[s.cleaned:start]...)
	s.cleaned = end
}

// insert places text into the output at the given input position.
func (s *sanitizer) insert(pos int, text string) {
	s.elide(pos, pos)
	s.out = append(s.out, text...)
}

// replace substitutes input[start:end) with text.
func (s *sanitizer) replace(start, end int, text string) {
	s.elide(start, end)
	s.out = append(s.out, text...)
}

const hexDigits = "0123456789abcdef"

// replaceWithEscape substitutes input[start:end) with the \uXXXX escape of a
// basic-plane code point.
func (s *sanitizer) replaceWithEscape(start, end int, r rune) {
	s.elide(start, end)
	s.out = append(s.out, '\\', 'u',
		hexDigits[r>>12&0xF], hexDigits[r>>8&0xF],
		hexDigits[r>>4&0xF], hexDigits[r&0xF])
}

// result returns the sanitized text. When the pass made no edits the
// original input value is returned as-is, without copying.
func (s *sanitizer) result() string {
	if s.out == nil {
		return s.in
	}
	s.elide(len(s.in), len(s.in))
	return string(s.out)
}
