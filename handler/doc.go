// Package handler renders JSON HTTP responses whose byte stream is safe to
// embed in HTML, XML and JavaScript contexts.
//
// JSON and JSONError marshal a value and pass the result through the
// jsonsanitize engine, so the written body never contains "</script", "]]>"
// or raw U+2028/U+2029 separators regardless of what the value holds.
// InlineScriptJSON produces the same guarantee as a string for templates
// that splice JSON directly between <script> tags.
package handler
