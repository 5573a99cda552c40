// Package escape provides a stateless, table-driven JSON string escaper for
// callers who need only escaping, not repair.
//
// JSONString escapes an already-well-formed string value according to RFC
// 8259 plus the extra substitutions that make the result safe to embed in
// HTML, XML and JavaScript contexts: '<' and '>' become \u003c and \u003e,
// the U+2028/U+2029 separators are escaped, control characters are encoded
// as \u00XX, and bytes that do not decode as UTF-8 are replaced
// by \ufffd.
//
//	quoted := `"` + escape.JSONString(userInput) + `"`
//
// For repairing whole JSON-ish documents use the parent jsonsanitize
// package; this package performs a pure lookup/substitution with no state
// and no repair logic.
package escape
