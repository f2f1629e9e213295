// Command todoregd serves the todo registry over HTTP.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mparente/todoreg/internal/api"
	"github.com/mparente/todoreg/pkg/todoreg"
	"github.com/mparente/todoreg/pkg/todoreg/config"
	"github.com/mparente/todoreg/pkg/todoreg/observability"
	"github.com/mparente/todoreg/pkg/todoreg/store"
)

func main() {
	configPath := flag.String("config", "", "path to a yaml/json/toml config file")
	listen := flag.String("listen", "", "listen address (overrides config)")
	flag.Parse()

	if err := run(*configPath, *listen); err != nil {
		fmt.Fprintf(os.Stderr, "todoregd: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath, listenOverride string) error {
	cfg := config.New(nil)
	if configPath != "" {
		loaded, err := config.FromFile(configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	logger := newLogger(cfg.String("log_level", "info"))
	metrics := observability.NewMetricsRecorder()

	st, err := newStore(cfg)
	if err != nil {
		return err
	}

	reg, err := todoreg.New(
		todoreg.WithStore(st),
		todoreg.WithPageSize(cfg.Int("page_size", todoreg.DefaultPageSize)),
		todoreg.WithLogger(logger),
		todoreg.WithMetrics(metrics),
	)
	if err != nil {
		st.Close()
		return fmt.Errorf("build registry: %w", err)
	}
	defer reg.Close()

	server := api.NewServer(todoreg.NewDispatcher(reg),
		api.WithLogger(logger),
		api.WithMetrics(metrics),
		api.WithShutdownTimeout(cfg.Duration("shutdown_timeout", 5*time.Second)),
	)

	addr := cfg.String("listen", ":8080")
	if listenOverride != "" {
		addr = listenOverride
	}

	ctx, cancel := signalContext()
	defer cancel()

	return server.Serve(ctx, addr)
}

// newStore picks the storage backend from config.
func newStore(cfg config.Config) (store.Store, error) {
	switch backend := cfg.String("store", "memory"); backend {
	case "memory":
		return store.NewMemoryStore(), nil
	case "sqlite":
		return store.NewSQLiteStore(cfg.String("db_path", "todos.db"))
	default:
		return nil, fmt.Errorf("unknown store backend %q", backend)
	}
}

// newLogger builds a JSON slog logger at the configured level.
func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}

// signalContext returns a context canceled on SIGINT or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}
