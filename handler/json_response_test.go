package handler_test

import (
	"encoding/json"
	"errors"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/jsonsanitize/handler"
)

func TestJSON(t *testing.T) {
	t.Run("writes body with default status", func(t *testing.T) {
		w := httptest.NewRecorder()

		err := handler.JSON(w, map[string]any{"ok": true})

		require.NoError(t, err)
		assert.Equal(t, 200, w.Code)
		assert.Equal(t, "application/json; charset=utf-8", w.Header().Get("Content-Type"))
		assert.JSONEq(t, `{"ok":true}`, w.Body.String())
	})

	t.Run("custom status and header", func(t *testing.T) {
		w := httptest.NewRecorder()

		err := handler.JSON(w, map[string]string{"id": "42"},
			handler.WithStatus(201),
			handler.WithHeader("X-Request-Id", "abc"),
		)

		require.NoError(t, err)
		assert.Equal(t, 201, w.Code)
		assert.Equal(t, "abc", w.Header().Get("X-Request-Id"))
	})

	t.Run("unmarshalable value fails", func(t *testing.T) {
		w := httptest.NewRecorder()

		err := handler.JSON(w, make(chan int))

		require.Error(t, err)
	})
}

func TestJSONError(t *testing.T) {
	t.Run("default status 500", func(t *testing.T) {
		w := httptest.NewRecorder()

		err := handler.JSONError(w, "internal_error", errors.New("boom"))

		require.NoError(t, err)
		assert.Equal(t, 500, w.Code)
		assert.JSONEq(t, `{"error":{"code":"internal_error","message":"boom"}}`, w.Body.String())
	})

	t.Run("status override", func(t *testing.T) {
		w := httptest.NewRecorder()

		err := handler.JSONError(w, "not_found", nil, handler.WithStatus(404))

		require.NoError(t, err)
		assert.Equal(t, 404, w.Code)
		assert.JSONEq(t, `{"error":{"code":"not_found"}}`, w.Body.String())
	})
}

func TestInlineScriptJSON(t *testing.T) {
	t.Run("plain value", func(t *testing.T) {
		out, err := handler.InlineScriptJSON(map[string]int{"a": 1})

		require.NoError(t, err)
		assert.Equal(t, `{"a":1}`, out)
	})

	t.Run("script closers never appear", func(t *testing.T) {
		out, err := handler.InlineScriptJSON(map[string]string{
			"html": "</script><script>alert(1)</script>",
			"sep":  "a b c",
		})

		require.NoError(t, err)
		assert.True(t, json.Valid([]byte(out)))
		assert.NotContains(t, strings.ToLower(out), "</script")
		assert.NotContains(t, out, " ")
		assert.NotContains(t, out, " ")
	})

	t.Run("output is valid strict JSON", func(t *testing.T) {
		type payload struct {
			Text  string   `json:"text"`
			Items []string `json:"items"`
		}
		out, err := handler.InlineScriptJSON(payload{
			Text:  "<!-- -->",
			Items: []string{"]]>", "ok"},
		})

		require.NoError(t, err)

		var decoded payload
		require.NoError(t, json.Unmarshal([]byte(out), &decoded))
		assert.Equal(t, "<!-- -->", decoded.Text)
		assert.Equal(t, []string{"]]>", "ok"}, decoded.Items)
	})
}
