package jsonsanitize

import (
	"math/big"
	"strconv"
)

// Digit-run lengths whose value is guaranteed to fit in a uint64.
const (
	maxFastHexDigits   = 16
	maxFastOctalDigits = 21
)

// Longest fraction kept by key canonicalization.
const maxCanonFractionDigits = 24

// normalizeNumber repairs the numeric literal spanning input[start:end) into
// a strictly valid JSON number: the leading '+' drops, missing integer,
// fraction and exponent digits are filled with '0', hex and legacy octal
// literals are re-encoded in decimal, and anything past the recognized
// grammar is discarded.
func (s *sanitizer) normalizeNumber(start, end int) {
	pos := start
	if pos < end {
		switch s.in[pos] {
		case '+':
			s.elide(pos, pos+1)
			pos++
		case '-':
			pos++
		}
	}

	intStart := pos
	for pos < end && isDecimalDigit(s.in[pos]) {
		pos++
	}
	intEnd := pos

	switch {
	case intStart == intEnd:
		// ".5" -> "0.5"
		s.insert(intStart, "0")
	case s.in[intStart] == '0':
		if intEnd-intStart == 1 && intEnd < end && s.in[intEnd]|0x20 == 'x' {
			hexStart := intEnd + 1
			hexEnd := hexStart
			for hexEnd < end && isHexDigit(s.in[hexEnd]) {
				hexEnd++
			}
			if hexEnd > hexStart {
				s.replace(intStart, hexEnd, decimalValue(s.in[hexStart:hexEnd], 16))
				s.elide(hexEnd, end)
				return
			}
			// "0x" with no digits: keep the zero, drop the rest.
		} else if intEnd-intStart > 1 {
			// Legacy octal. A digit past 7 makes the token ambiguous; read
			// it as hex rather than trusting a malformed octal literal.
			digits := s.in[intStart:intEnd]
			base := 8
			for k := 0; k < len(digits); k++ {
				if digits[k] > '7' {
					base = 16
					break
				}
			}
			s.replace(intStart, intEnd, decimalValue(digits, base))
			s.elide(intEnd, end)
			return
		}
	}

	if pos < end && s.in[pos] == '.' {
		pos++
		fracStart := pos
		for pos < end && isDecimalDigit(s.in[pos]) {
			pos++
		}
		if fracStart == pos {
			// "1." -> "1.0"
			s.insert(pos, "0")
		}
	}

	if pos < end && s.in[pos]|0x20 == 'e' {
		pos++
		if pos < end && (s.in[pos] == '+' || s.in[pos] == '-') {
			pos++
		}
		expStart := pos
		for pos < end && isDecimalDigit(s.in[pos]) {
			pos++
		}
		if expStart == pos {
			// "1e" -> "1e0", "1e+" -> "1e+0"
			s.insert(pos, "0")
		}
	}

	if pos != end {
		s.elide(pos, end)
	}
}

// canonicalizeNumberAsKey normalizes the numeric literal at input[start:end)
// and rewrites it into the canonical decimal spelling an object key needs:
// no exponent, no redundant zeros, no sign on zero. The normalized text is
// forced into the output buffer first so the rewrite has one place to work.
func (s *sanitizer) canonicalizeNumberAsKey(start, end int) {
	s.elide(start, start)
	from := len(s.out)
	s.normalizeNumber(start, end)
	s.elide(end, end)
	s.out = canonicalizeNumber(s.out, from)
}

// canonicalizeNumber rewrites the normalized JSON number at buf[from:] in
// canonical form and returns the adjusted buffer. An exponent whose
// magnitude cannot be parsed leaves the number as-is apart from
// lower-casing the exponent marker.
func canonicalizeNumber(buf []byte, from int) []byte {
	num := buf[from:]
	pos := 0

	neg := false
	if pos < len(num) && num[pos] == '-' {
		neg = true
		pos++
	}
	intStart := pos
	for pos < len(num) && isDecimalDigit(num[pos]) {
		pos++
	}
	intDigits := num[intStart:pos]

	var fracDigits []byte
	if pos < len(num) && num[pos] == '.' {
		pos++
		fracStart := pos
		for pos < len(num) && isDecimalDigit(num[pos]) {
			pos++
		}
		fracDigits = num[fracStart:pos]
	}

	exp := 0
	if pos < len(num) && num[pos]|0x20 == 'e' {
		markerAt := pos
		pos++
		v, err := strconv.Atoi(string(num[pos:]))
		if err != nil || v > 1<<20 || v < -(1<<20) {
			// Unusable exponent: keep the normalized text.
			buf[from+markerAt] = 'e'
			return buf
		}
		exp = v
	}

	digits := make([]byte, 0, len(intDigits)+len(fracDigits))
	digits = append(digits, intDigits...)
	digits = append(digits, fracDigits...)
	pointPos := len(intDigits) + exp

	// Shift the decimal point by the exponent's magnitude.
	out := buf[:from]
	if neg && !allZero(digits) {
		out = append(out, '-')
	}
	switch {
	case allZero(digits):
		out = append(out, '0')
	case pointPos <= 0:
		frac := make([]byte, 0, len(digits)-pointPos)
		frac = appendZeros(frac, -pointPos)
		frac = append(frac, digits...)
		out = append(out, '0', '.')
		out = appendFraction(out, frac)
	case pointPos >= len(digits):
		out = appendTrimmedInt(out, digits)
		out = appendZeros(out, pointPos-len(digits))
	default:
		out = appendTrimmedInt(out, digits[:pointPos])
		out = append(out, '.')
		out = appendFraction(out, digits[pointPos:])
	}
	// appendFraction may have removed an all-zero fraction entirely.
	if n := len(out); n > from && out[n-1] == '.' {
		out = out[:n-1]
	}
	return out
}

// appendTrimmedInt appends integer digits without redundant leading zeros.
func appendTrimmedInt(out, digits []byte) []byte {
	k := 0
	for k < len(digits)-1 && digits[k] == '0' {
		k++
	}
	return append(out, digits[k:]...)
}

// appendFraction appends fraction digits capped at maxCanonFractionDigits
// and with trailing zeros trimmed. Nothing is appended when every digit is
// zero; the caller removes the dangling point.
func appendFraction(out, digits []byte) []byte {
	if len(digits) > maxCanonFractionDigits {
		digits = digits[:maxCanonFractionDigits]
	}
	k := len(digits)
	for k > 0 && digits[k-1] == '0' {
		k--
	}
	return append(out, digits[:k]...)
}

func appendZeros(out []byte, n int) []byte {
	for ; n > 0; n-- {
		out = append(out, '0')
	}
	return out
}

func allZero(digits []byte) bool {
	for _, d := range digits {
		if d != '0' {
			return false
		}
	}
	return true
}

// decimalValue re-encodes a hex or octal digit run in decimal, using native
// 64-bit arithmetic when the digit count guarantees it fits and extended
// precision otherwise.
func decimalValue(digits string, base int) string {
	fast := maxFastOctalDigits
	if base == 16 {
		fast = maxFastHexDigits
	}
	if len(digits) <= fast {
		if v, err := strconv.ParseUint(digits, base, 64); err == nil {
			return strconv.FormatUint(v, 10)
		}
	}
	n := new(big.Int)
	n.SetString(digits, base)
	return n.Text(10)
}

func isDecimalDigit(c byte) bool {
	return '0' <= c && c <= '9'
}
