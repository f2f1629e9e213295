// Package api exposes the todo registry dispatcher over HTTP.
//
// The surface is a single call endpoint, POST /call/{method}, whose request
// body carries the operation's JSON arguments and whose response body is
// the Result envelope. Both variants answer 200: the envelope, not the
// HTTP status, is the error channel. Query methods (read, read_all) may
// also be issued as GET /call/{method}?args=<json>.
package api

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/mparente/todoreg/pkg/todoreg"
	"github.com/mparente/todoreg/pkg/todoreg/observability"
)

// Server serves dispatcher calls over HTTP.
type Server struct {
	dispatcher      *todoreg.Dispatcher
	logger          *slog.Logger
	metrics         observability.MetricsRecorder
	shutdownTimeout time.Duration
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the access logger. Default: no logging.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithMetrics sets the metrics recorder. Default: no-op.
func WithMetrics(m observability.MetricsRecorder) Option {
	return func(s *Server) {
		if m != nil {
			s.metrics = m
		}
	}
}

// WithShutdownTimeout bounds graceful shutdown. Default: 5s.
func WithShutdownTimeout(d time.Duration) Option {
	return func(s *Server) {
		if d > 0 {
			s.shutdownTimeout = d
		}
	}
}

// NewServer creates a Server fronting the given dispatcher.
func NewServer(d *todoreg.Dispatcher, opts ...Option) *Server {
	s := &Server{
		dispatcher:      d,
		metrics:         observability.NoopMetrics{},
		shutdownTimeout: 5 * time.Second,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler returns the HTTP handler for the call surface.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /call/{method}", s.handleCall)
	mux.HandleFunc("GET /call/{method}", s.handleCall)
	return mux
}

// Serve listens on addr until ctx is canceled, then shuts down gracefully.
func (s *Server) Serve(ctx context.Context, addr string) error {
	server := &http.Server{
		Addr:         addr,
		Handler:      s.Handler(),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			observability.LogServerStop(s.logger, err)
		}
	}()

	observability.LogServerStart(s.logger, addr)
	err := server.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		observability.LogServerStop(s.logger, err)
		return err
	}
	observability.LogServerStop(s.logger, nil)
	return nil
}

// handleCall routes one call through the dispatcher.
func (s *Server) handleCall(w http.ResponseWriter, r *http.Request) {
	method := r.PathValue("method")
	requestID := r.Header.Get("X-Request-ID")
	if requestID == "" {
		requestID = uuid.NewString()
	}
	w.Header().Set("X-Request-ID", requestID)

	kind, known := s.dispatcher.KindOf(method)
	kindName := kind.String()

	done := observability.TimedOperation()
	ctx, span := observability.StartCallSpan(r.Context(), method, requestID)
	observability.LogCallStart(s.logger, method, requestID)

	var args []byte
	if r.Method == http.MethodGet {
		if known && kind != todoreg.KindQuery {
			observability.EndSpanWithError(span, errors.New("update call over GET"))
			http.Error(w, "update calls require POST", http.StatusMethodNotAllowed)
			return
		}
		args = []byte(r.URL.Query().Get("args"))
	} else {
		body, err := io.ReadAll(r.Body)
		if err != nil {
			observability.LogCallError(s.logger, method, requestID, err)
			observability.EndSpanWithError(span, err)
			http.Error(w, "read body error", http.StatusBadRequest)
			return
		}
		defer r.Body.Close()
		args = body
	}

	result, err := s.dispatcher.Dispatch(ctx, method, args)
	elapsed := time.Duration(done() * float64(time.Millisecond))
	s.metrics.RecordCall(ctx, method, kindName, elapsed, err)

	if err != nil {
		observability.LogCallError(s.logger, method, requestID, err)
		observability.EndSpanWithError(span, err)
		status := http.StatusInternalServerError
		if errors.Is(err, todoreg.ErrMethodNotFound) {
			status = http.StatusNotFound
		}
		writeResult(w, status, todoreg.Err(err))
		return
	}

	observability.LogCallComplete(s.logger, method, requestID, done(), result.IsOK())
	observability.EndSpanWithError(span, nil)
	writeResult(w, http.StatusOK, result)
}

// writeResult writes a Result envelope as the response body.
func writeResult(w http.ResponseWriter, status int, result todoreg.Result) {
	body, err := result.MarshalJSON()
	if err != nil {
		http.Error(w, "encode result error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}
