package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/dmitrymomot/jsonsanitize"
)

// ErrorDetail is the error body written by JSONError.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message,omitempty"`
}

type jsonResponse struct {
	status  int
	headers map[string]string
}

// Option configures a JSON response.
type Option func(*jsonResponse)

// WithStatus sets a custom HTTP status code.
func WithStatus(status int) Option {
	return func(r *jsonResponse) {
		r.status = status
	}
}

// WithHeader adds a response header.
func WithHeader(key, value string) Option {
	return func(r *jsonResponse) {
		if r.headers == nil {
			r.headers = make(map[string]string)
		}
		r.headers[key] = value
	}
}

// JSON writes v as an embedding-safe application/json response.
func JSON(w http.ResponseWriter, v any, opts ...Option) error {
	r := &jsonResponse{status: http.StatusOK}
	for _, opt := range opts {
		opt(r)
	}

	body, err := InlineScriptJSON(v)
	if err != nil {
		return err
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	for k, val := range r.headers {
		w.Header().Set(k, val)
	}
	w.WriteHeader(r.status)
	_, err = w.Write([]byte(body))
	return err
}

// JSONError writes an error envelope. The status defaults to 500 and can be
// overridden with WithStatus.
func JSONError(w http.ResponseWriter, code string, err error, opts ...Option) error {
	detail := ErrorDetail{Code: code}
	if err != nil {
		detail.Message = err.Error()
	}
	opts = append([]Option{WithStatus(http.StatusInternalServerError)}, opts...)
	return JSON(w, struct {
		Error ErrorDetail `json:"error"`
	}{Error: detail}, opts...)
}

// InlineScriptJSON marshals v and guarantees the result is safe to splice
// directly between <script> tags: it is strict JSON free of "</script",
// "]]>" and raw line/paragraph separators.
func InlineScriptJSON(v any) (string, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("marshal response: %w", err)
	}
	// Idempotent and zero-copy when the marshaled form is already safe.
	clean, err := jsonsanitize.Sanitize(string(raw))
	if err != nil {
		return "", fmt.Errorf("sanitize response: %w", err)
	}
	return clean, nil
}
