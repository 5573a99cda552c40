// Package httpserver wraps net/http with graceful shutdown, configurable
// timeouts, a health-check handler and structured logging via slog.
//
// Construct a Server with New and functional options, or NewFromConfig with
// an env-tagged Config. Run blocks until the context is cancelled, an
// interrupt/TERM signal arrives, or the listener fails; shutdown uses
// http.Server.Shutdown with a configurable deadline. Errors are wrapped
// with the ErrStart and ErrShutdown sentinels for errors.Is inspection.
//
//	srv := httpserver.New(
//		httpserver.WithAddr(":8080"),
//		httpserver.WithLogger(slog.Default()),
//	)
//	if err := srv.Run(ctx, router); err != nil { ... }
package httpserver
