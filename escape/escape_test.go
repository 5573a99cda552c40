package escape_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/jsonsanitize/escape"
)

func TestJSONString(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty", "", ""},
		{"plain ascii", "hello world", "hello world"},
		{"double quote", "a\"b", "a\\\"b"},
		{"backslash", "a\\b", "a\\\\b"},
		{"backspace", "a\bb", "a\\bb"},
		{"form feed", "a\fb", "a\\fb"},
		{"newline", "a\nb", "a\\nb"},
		{"carriage return", "a\rb", "a\\rb"},
		{"tab", "a\tb", "a\\tb"},
		{"angle brackets", "<b>", "\\u003cb\\u003e"},
		{"script tag", "</script>", "\\u003c/script\\u003e"},
		{"control character", "a\x01b", "a\\u0001b"},
		{"null byte", "a\x00b", "a\\u0000b"},
		{"line separator", "\u2028", "\\u2028"},
		{"paragraph separator", "\u2029", "\\u2029"},
		{"invalid utf8 byte", "a\xffb", "a\\ufffdb"},
		{"multibyte rune kept", "héllo", "héllo"},
		{"supplementary plane kept", "a😀b", "a😀b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, escape.JSONString(tt.input))
		})
	}
}

func TestJSONStringIdentityFastPath(t *testing.T) {
	// Inputs with nothing to escape come back as the same string.
	inputs := []string{"", "hello", "a b c", "123", "no_special_chars!"}
	for _, input := range inputs {
		assert.Equal(t, input, escape.JSONString(input))
	}
}

func TestJSONStringRoundTrip(t *testing.T) {
	inputs := []string{
		"plain",
		"with \"quotes\" and \\slashes\\",
		"tabs\tand\nnewlines",
		"<script>alert(1)</script>",
		"\u2028\u2029",
		"mixed héllo 😀",
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			quoted := `"` + escape.JSONString(input) + `"`
			require.True(t, json.Valid([]byte(quoted)))

			var decoded string
			require.NoError(t, json.Unmarshal([]byte(quoted), &decoded))
			assert.Equal(t, input, decoded)
		})
	}
}

func TestJSONStringEmbeddingSafety(t *testing.T) {
	inputs := []string{
		"</script>",
		"<!-- comment -->",
		"]]>",
		"a\u2028b",
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			out := escape.JSONString(input)
			lower := strings.ToLower(out)
			assert.NotContains(t, lower, "</script")
			assert.NotContains(t, out, "]]>")
			assert.NotContains(t, out, "<")
			assert.NotContains(t, out, ">")
		})
	}
}
