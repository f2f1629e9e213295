package todoreg

import (
	"log/slog"

	"github.com/mparente/todoreg/pkg/todoreg/observability"
	"github.com/mparente/todoreg/pkg/todoreg/store"
)

// registryConfig holds configuration for a Registry.
type registryConfig struct {
	store    store.Store
	pageSize int
	logger   *slog.Logger
	metrics  observability.MetricsRecorder
}

// defaultRegistryConfig returns the default registry configuration.
func defaultRegistryConfig() registryConfig {
	return registryConfig{
		pageSize: DefaultPageSize,
		metrics:  observability.NoopMetrics{},
	}
}

// Option configures a Registry.
type Option func(*registryConfig)

// WithStore sets the storage backend. Default: an in-memory store.
//
// The registry takes ownership of the store: Registry.Close closes it.
// A store that already holds items (a reopened SQLite file) is picked up
// as-is; id allocation resumes above the highest live id.
func WithStore(st store.Store) Option {
	return func(c *registryConfig) {
		if st != nil {
			c.store = st
		}
	}
}

// WithPageSize sets the number of items per read_all page.
// Default: DefaultPageSize. Values below 1 are ignored.
func WithPageSize(n int) Option {
	return func(c *registryConfig) {
		if n > 0 {
			c.pageSize = n
		}
	}
}

// WithLogger sets the structured logger for registry events.
// Default: no logging.
func WithLogger(logger *slog.Logger) Option {
	return func(c *registryConfig) {
		c.logger = logger
	}
}

// WithMetrics sets the metrics recorder.
// Default: no-op.
func WithMetrics(m observability.MetricsRecorder) Option {
	return func(c *registryConfig) {
		if m != nil {
			c.metrics = m
		}
	}
}
