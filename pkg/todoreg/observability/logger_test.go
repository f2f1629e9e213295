package observability

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// captureLogger returns a debug-level JSON logger writing into buf.
func captureLogger() (*slog.Logger, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	handler := slog.NewJSONHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	return slog.New(handler), buf
}

// lastRecord decodes the final log line in buf.
func lastRecord(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.NotEmpty(t, lines)

	var record map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[len(lines)-1]), &record))
	return record
}

func TestEnrichLogger(t *testing.T) {
	logger, buf := captureLogger()

	enriched := EnrichLogger(logger, "req-123", "add")
	require.NotNil(t, enriched)
	enriched.Info("handling call")

	record := lastRecord(t, buf)
	assert.Equal(t, "req-123", record["request_id"])
	assert.Equal(t, "add", record["method"])
}

func TestEnrichLogger_Nil(t *testing.T) {
	assert.Nil(t, EnrichLogger(nil, "req", "add"))
}

func TestLogCallStart(t *testing.T) {
	logger, buf := captureLogger()

	LogCallStart(logger, "read", "req-1")

	record := lastRecord(t, buf)
	assert.Equal(t, "call starting", record["msg"])
	assert.Equal(t, "read", record["method"])
	assert.Equal(t, "req-1", record["request_id"])
}

func TestLogCallComplete(t *testing.T) {
	logger, buf := captureLogger()

	LogCallComplete(logger, "add", "req-1", 12.5, true)

	record := lastRecord(t, buf)
	assert.Equal(t, "call completed", record["msg"])
	assert.Equal(t, 12.5, record["duration_ms"])
	assert.Equal(t, true, record["ok"])
}

func TestLogCallError(t *testing.T) {
	logger, buf := captureLogger()

	LogCallError(logger, "read", "req-1", errors.New("boom"))

	record := lastRecord(t, buf)
	assert.Equal(t, "call failed", record["msg"])
	assert.Equal(t, "boom", record["error"])
}

func TestLogServerStartStop(t *testing.T) {
	logger, buf := captureLogger()

	LogServerStart(logger, ":8080")
	record := lastRecord(t, buf)
	assert.Equal(t, "server listening", record["msg"])
	assert.Equal(t, ":8080", record["addr"])

	LogServerStop(logger, nil)
	record = lastRecord(t, buf)
	assert.Equal(t, "server stopped", record["msg"])

	LogServerStop(logger, errors.New("listen error"))
	record = lastRecord(t, buf)
	assert.Equal(t, "listen error", record["error"])
}

func TestLogHelpers_NilLogger(t *testing.T) {
	// Must not panic
	LogCallStart(nil, "add", "req")
	LogCallComplete(nil, "add", "req", 1, true)
	LogCallError(nil, "add", "req", errors.New("x"))
	LogServerStart(nil, ":0")
	LogServerStop(nil, nil)
}

func TestTimedOperation(t *testing.T) {
	done := TimedOperation()
	elapsed := done()
	assert.GreaterOrEqual(t, elapsed, 0.0)
}
