package jsonsanitize

import "errors"

// Package-specific errors
var (
	// ErrNestingTooDeep is returned when the input opens more nested
	// containers than the configured maximum depth allows. It is the only
	// condition Sanitize reports as an error instead of repairing.
	ErrNestingTooDeep = errors.New("input exceeds maximum nesting depth")
)
