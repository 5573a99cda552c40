// Package jsonsanitize repairs loosely-formed, JSON-like text into strictly
// valid, embedding-safe JSON in a single linear pass.
//
// The sanitizer accepts a superset of the JSON grammar — single-quoted
// strings, unquoted keys, comments, trailing commas, elided array elements,
// hex and octal number literals, parenthesised groups — and deterministically
// repairs every defect instead of rejecting the input. It is meant to sit at
// trust boundaries: cleaning untrusted "JSON-ish" text before it is parsed,
// or cleaning an application's own output before it is embedded in HTML, XML
// or JavaScript contexts.
//
// Besides producing valid JSON, the output carries three extra safety
// guarantees:
//
//   - it never contains the substring "</script" (case-insensitively),
//   - it never contains the substring "]]>",
//   - it never contains a raw U+2028/U+2029 separator or an unescaped
//     isolated surrogate.
//
// # Usage
//
//	clean, err := jsonsanitize.Sanitize(`{foo:'bar', baz:[1,2,3,]}`)
//	// clean == `{"foo":"bar","baz":[1,2,3]}`
//
// Inputs that are already strictly valid and embedding-safe are returned
// unchanged without copying.
//
// # Error handling
//
// Sanitize never rejects malformed input. The single failure mode is
// exceeding the configured container nesting depth (default 64, configurable
// with WithMaxNestingDepth), reported as ErrNestingTooDeep so that callers
// can distinguish adversarially deep input from a successful repair.
//
// # Concurrency
//
// Sanitize is a pure function: it keeps no state between calls and is safe
// for concurrent use from multiple goroutines without locking.
package jsonsanitize
