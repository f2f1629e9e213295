package observability

import (
	"context"
	"time"
)

// NoopMetrics is a MetricsRecorder that does nothing.
// Use when metrics are disabled to avoid overhead.
type NoopMetrics struct{}

// Compile-time interface check.
var _ MetricsRecorder = NoopMetrics{}

// RecordCall does nothing.
func (NoopMetrics) RecordCall(_ context.Context, _, _ string, _ time.Duration, _ error) {}

// RecordRegistrySize does nothing.
func (NoopMetrics) RecordRegistrySize(_ context.Context, _ int64) {}
