// Command jsonsanitized is a sidecar HTTP service that repairs JSON-ish
// payloads at a trust boundary. POST a body to /v1/sanitize to receive
// strictly valid, embedding-safe JSON, or to /v1/escape to receive the
// RFC 8259 + HTML-safe escaped form of a raw string.
package main

import (
	"context"
	"errors"
	"io"
	"log"
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/dmitrymomot/jsonsanitize"
	"github.com/dmitrymomot/jsonsanitize/escape"
	"github.com/dmitrymomot/jsonsanitize/handler"
	"github.com/dmitrymomot/jsonsanitize/pkg/config"
	"github.com/dmitrymomot/jsonsanitize/pkg/httpserver"
)

type appConfig struct {
	HTTP     httpserver.Config
	MaxDepth int   `env:"SANITIZE_MAX_DEPTH" envDefault:"64"`
	MaxBody  int64 `env:"SANITIZE_MAX_BODY_BYTES" envDefault:"1048576"`
}

func main() {
	var cfg appConfig
	config.MustLoad(&cfg)

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", httpserver.HealthCheckHandler(context.Background(), logger))
	r.Post("/v1/sanitize", sanitizeHandler(logger, cfg))
	r.Post("/v1/escape", escapeHandler(logger, cfg))

	srv := httpserver.NewFromConfig(cfg.HTTP, httpserver.WithLogger(logger))
	if err := srv.Run(context.Background(), r); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}

func sanitizeHandler(logger *slog.Logger, cfg appConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := readBody(r, cfg.MaxBody)
		if err != nil {
			_ = handler.JSONError(w, "body_read_failed", err, handler.WithStatus(http.StatusBadRequest))
			return
		}
		clean, err := jsonsanitize.Sanitize(string(body), jsonsanitize.WithMaxNestingDepth(cfg.MaxDepth))
		if err != nil {
			if errors.Is(err, jsonsanitize.ErrNestingTooDeep) {
				_ = handler.JSONError(w, "nesting_too_deep", err, handler.WithStatus(http.StatusUnprocessableEntity))
				return
			}
			logger.ErrorContext(r.Context(), "sanitize failed", "error", err)
			_ = handler.JSONError(w, "internal_error", err)
			return
		}
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = io.WriteString(w, clean)
	}
}

func escapeHandler(_ *slog.Logger, cfg appConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := readBody(r, cfg.MaxBody)
		if err != nil {
			_ = handler.JSONError(w, "body_read_failed", err, handler.WithStatus(http.StatusBadRequest))
			return
		}
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = io.WriteString(w, `"`+escape.JSONString(string(body))+`"`)
	}
}

func readBody(r *http.Request, limit int64) ([]byte, error) {
	defer r.Body.Close()
	return io.ReadAll(http.MaxBytesReader(nil, r.Body, limit))
}

// requestID attaches a UUID to every request and echoes it in the response.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-Id")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-Id", id)
		next.ServeHTTP(w, r)
	})
}
