package binder_test

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/jsonsanitize"
	"github.com/dmitrymomot/jsonsanitize/binder"
)

func TestBindJSON(t *testing.T) {
	type testStruct struct {
		Name string `json:"name"`
		Age  int    `json:"age"`
	}

	t.Run("valid JSON binding", func(t *testing.T) {
		jsonData := `{"name":"John Doe","age":30}`
		req := httptest.NewRequest(http.MethodPost, "/test", bytes.NewBufferString(jsonData))
		req.Header.Set("Content-Type", "application/json")

		var result testStruct
		bindFunc := binder.BindJSON()
		err := bindFunc(req, &result)

		require.NoError(t, err)
		assert.Equal(t, "John Doe", result.Name)
		assert.Equal(t, 30, result.Age)
	})

	t.Run("content type with charset", func(t *testing.T) {
		jsonData := `{"name":"Jane","age":25}`
		req := httptest.NewRequest(http.MethodPost, "/test", bytes.NewBufferString(jsonData))
		req.Header.Set("Content-Type", "application/json; charset=utf-8")

		var result testStruct
		err := binder.BindJSON()(req, &result)

		require.NoError(t, err)
		assert.Equal(t, "Jane", result.Name)
	})

	t.Run("missing content type", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/test", bytes.NewBufferString(`{"name":"Test"}`))

		var result testStruct
		err := binder.BindJSON()(req, &result)

		require.Error(t, err)
		assert.True(t, errors.Is(err, binder.ErrMissingContentType))
	})

	t.Run("wrong content type", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/test", bytes.NewBufferString(`{"name":"Test"}`))
		req.Header.Set("Content-Type", "text/plain")

		var result testStruct
		err := binder.BindJSON()(req, &result)

		require.Error(t, err)
		assert.True(t, errors.Is(err, binder.ErrUnsupportedMediaType))
		assert.Contains(t, err.Error(), "got text/plain")
	})

	t.Run("empty body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/test", bytes.NewBufferString(""))
		req.Header.Set("Content-Type", "application/json")

		var result testStruct
		err := binder.BindJSON()(req, &result)

		require.Error(t, err)
		assert.True(t, errors.Is(err, binder.ErrInvalidJSON))
		assert.Contains(t, err.Error(), "empty body")
	})

	t.Run("unknown field rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/test", bytes.NewBufferString(`{"name":"Test","extra":1}`))
		req.Header.Set("Content-Type", "application/json")

		var result testStruct
		err := binder.BindJSON()(req, &result)

		require.Error(t, err)
		assert.True(t, errors.Is(err, binder.ErrInvalidJSON))
	})

	t.Run("trailing data rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/test", bytes.NewBufferString(`{"name":"Test"} garbage`))
		req.Header.Set("Content-Type", "application/json")

		var result testStruct
		err := binder.BindJSON()(req, &result)

		require.Error(t, err)
		assert.True(t, errors.Is(err, binder.ErrInvalidJSON))
	})

	t.Run("malformed JSON rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/test", bytes.NewBufferString(`{name: 'Test'}`))
		req.Header.Set("Content-Type", "application/json")

		var result testStruct
		err := binder.BindJSON()(req, &result)

		require.Error(t, err)
		assert.True(t, errors.Is(err, binder.ErrInvalidJSON))
	})
}

func TestBindLenientJSON(t *testing.T) {
	type testStruct struct {
		Name string `json:"name"`
		Age  int    `json:"age"`
	}

	t.Run("valid JSON binds as-is", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/test", bytes.NewBufferString(`{"name":"John","age":30}`))
		req.Header.Set("Content-Type", "application/json")

		var result testStruct
		err := binder.BindLenientJSON()(req, &result)

		require.NoError(t, err)
		assert.Equal(t, "John", result.Name)
		assert.Equal(t, 30, result.Age)
	})

	t.Run("JSON-ish body repaired before decoding", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/test", bytes.NewBufferString("{name: 'John', age: 0x1E,}"))
		req.Header.Set("Content-Type", "application/json")

		var result testStruct
		err := binder.BindLenientJSON()(req, &result)

		require.NoError(t, err)
		assert.Equal(t, "John", result.Name)
		assert.Equal(t, 30, result.Age)
	})

	t.Run("truncated body completed", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/test", bytes.NewBufferString(`{"name":"John","age":30`))
		req.Header.Set("Content-Type", "application/json")

		var result testStruct
		err := binder.BindLenientJSON()(req, &result)

		require.NoError(t, err)
		assert.Equal(t, "John", result.Name)
		assert.Equal(t, 30, result.Age)
	})

	t.Run("content type still enforced", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/test", bytes.NewBufferString(`{"name":"x"}`))
		req.Header.Set("Content-Type", "text/plain")

		var result testStruct
		err := binder.BindLenientJSON()(req, &result)

		require.Error(t, err)
		assert.True(t, errors.Is(err, binder.ErrUnsupportedMediaType))
	})

	t.Run("unknown fields still rejected after repair", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/test", bytes.NewBufferString(`{name: "x", extra: 1}`))
		req.Header.Set("Content-Type", "application/json")

		var result testStruct
		err := binder.BindLenientJSON()(req, &result)

		require.Error(t, err)
		assert.True(t, errors.Is(err, binder.ErrInvalidJSON))
	})

	t.Run("nesting depth limit", func(t *testing.T) {
		body := strings.Repeat("[", 10) + strings.Repeat("]", 10)
		req := httptest.NewRequest(http.MethodPost, "/test", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")

		var result any
		err := binder.BindLenientJSON(jsonsanitize.WithMaxNestingDepth(5))(req, &result)

		require.Error(t, err)
		assert.True(t, errors.Is(err, binder.ErrBodyTooDeep))
	})
}
