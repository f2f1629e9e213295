// Package observability provides structured logging, metrics, and tracing
// for the todo registry service.
//
// Features:
//   - Structured logging via slog (Go stdlib)
//   - Metrics via OpenTelemetry
//   - Tracing via OpenTelemetry
//
// All features are opt-in and have no-op implementations when disabled.
package observability

import (
	"log/slog"
	"time"
)

// EnrichLogger adds call context to a logger.
// Returns a new logger with request_id and method fields.
//
// Example:
//
//	enriched := EnrichLogger(logger, "req-123", "add")
//	enriched.Info("handling call") // includes request_id, method
func EnrichLogger(logger *slog.Logger, requestID, method string) *slog.Logger {
	if logger == nil {
		return nil
	}
	return logger.With(
		slog.String("request_id", requestID),
		slog.String("method", method),
	)
}

// LogCallStart logs the start of a service call.
func LogCallStart(logger *slog.Logger, method, requestID string) {
	if logger == nil {
		return
	}
	logger.Debug("call starting",
		slog.String("method", method),
		slog.String("request_id", requestID),
	)
}

// LogCallComplete logs successful call completion. A call whose Result
// carries the Err variant still completes successfully at this level.
func LogCallComplete(logger *slog.Logger, method, requestID string, durationMs float64, ok bool) {
	if logger == nil {
		return
	}
	logger.Info("call completed",
		slog.String("method", method),
		slog.String("request_id", requestID),
		slog.Float64("duration_ms", durationMs),
		slog.Bool("ok", ok),
	)
}

// LogCallError logs a call that failed below the Result envelope
// (unknown method, unreadable arguments).
func LogCallError(logger *slog.Logger, method, requestID string, err error) {
	if logger == nil {
		return
	}
	logger.Error("call failed",
		slog.String("method", method),
		slog.String("request_id", requestID),
		slog.String("error", err.Error()),
	)
}

// LogServerStart logs the service coming up.
func LogServerStart(logger *slog.Logger, addr string) {
	if logger == nil {
		return
	}
	logger.Info("server listening",
		slog.String("addr", addr),
	)
}

// LogServerStop logs the service shutting down.
func LogServerStop(logger *slog.Logger, err error) {
	if logger == nil {
		return
	}
	if err != nil {
		logger.Error("server stopped",
			slog.String("error", err.Error()),
		)
		return
	}
	logger.Info("server stopped")
}

// TimedOperation measures the duration of an operation.
// Returns a function that, when called, returns the elapsed time in milliseconds.
//
// Example:
//
//	done := TimedOperation()
//	// ... do work ...
//	durationMs := done()
func TimedOperation() func() float64 {
	start := time.Now()
	return func() float64 {
		return float64(time.Since(start).Milliseconds())
	}
}
