package binder

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/dmitrymomot/jsonsanitize"
)

// BindJSON creates a strict JSON binder. The body must be valid
// application/json; unknown fields and trailing data are rejected.
func BindJSON() func(r *http.Request, v any) error {
	return func(r *http.Request, v any) error {
		if err := checkContentType(r); err != nil {
			return err
		}
		return decodeStrict(r.Body, v)
	}
}

// BindLenientJSON creates a binder that repairs the body with the
// jsonsanitize engine before decoding, so JSON-ish payloads bind like valid
// ones. Options are forwarded to jsonsanitize.Sanitize; a body deeper than
// the configured nesting cap fails with ErrBodyTooDeep.
func BindLenientJSON(opts ...jsonsanitize.Option) func(r *http.Request, v any) error {
	return func(r *http.Request, v any) error {
		if err := checkContentType(r); err != nil {
			return err
		}
		body, err := io.ReadAll(r.Body)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidJSON, err)
		}
		clean, err := jsonsanitize.Sanitize(string(body), opts...)
		if err != nil {
			if errors.Is(err, jsonsanitize.ErrNestingTooDeep) {
				return fmt.Errorf("%w: %v", ErrBodyTooDeep, err)
			}
			return fmt.Errorf("%w: %v", ErrInvalidJSON, err)
		}
		return decodeStrict(strings.NewReader(clean), v)
	}
}

func checkContentType(r *http.Request) error {
	contentType := r.Header.Get("Content-Type")
	if contentType == "" {
		return fmt.Errorf("%w: expected application/json", ErrMissingContentType)
	}
	mediaType := contentType
	if idx := strings.Index(contentType, ";"); idx != -1 {
		mediaType = strings.TrimSpace(contentType[:idx])
	}
	if mediaType != "application/json" {
		return fmt.Errorf("%w: got %s, expected application/json", ErrUnsupportedMediaType, mediaType)
	}
	return nil
}

func decodeStrict(body io.Reader, v any) error {
	decoder := json.NewDecoder(body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(v); err != nil {
		if err == io.EOF {
			return fmt.Errorf("%w: empty body", ErrInvalidJSON)
		}
		return fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}

	// Ensure the entire body was consumed.
	var extra json.RawMessage
	if err := decoder.Decode(&extra); err != io.EOF {
		return fmt.Errorf("%w: unexpected data after JSON value", ErrInvalidJSON)
	}
	return nil
}
