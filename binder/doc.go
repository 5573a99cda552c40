// Package binder decodes HTTP JSON request bodies with optional repair.
//
// BindJSON decodes a strict application/json body. BindLenientJSON first
// runs the body through the jsonsanitize engine, so JSON-ish payloads —
// comments, trailing commas, single quotes, unquoted keys — bind the same
// way valid ones do. Both return a func(*http.Request, any) error suitable
// for handler wiring.
//
//	bind := binder.BindLenientJSON()
//	var req CreateUserRequest
//	if err := bind(r, &req); err != nil { ... }
package binder
