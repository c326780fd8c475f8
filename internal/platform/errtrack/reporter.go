// Package errtrack forwards operator-facing errors to Sentry.
package errtrack

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/kelseyhightower/envconfig"

	"watchlist_backend/internal/platform/logger"
)

// Config holds the Sentry settings. An empty DSN disables reporting.
type Config struct {
	DSN         string `envconfig:"SENTRY_DSN"`
	Environment string `envconfig:"APP_ENV" default:"development"`
}

// LoadConfig reads the Sentry settings from the environment.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, fmt.Errorf("load sentry config: %w", err)
	}
	return cfg, nil
}

// Reporter sends errors to Sentry. The zero value discards everything.
type Reporter struct {
	hub *sentry.Hub
}

// New initializes the Sentry client. With an empty DSN it returns a no-op Reporter.
func New(cfg Config) (*Reporter, error) {
	if cfg.DSN == "" {
		slog.Info("sentry disabled: SENTRY_DSN is empty")
		return &Reporter{}, nil
	}
	if err := sentry.Init(sentry.ClientOptions{
		Dsn:         cfg.DSN,
		Environment: cfg.Environment,
	}); err != nil {
		return nil, fmt.Errorf("init sentry: %w", err)
	}
	return &Reporter{hub: sentry.CurrentHub()}, nil
}

// Report captures err, tagged with the request ID when ctx carries one.
func (r *Reporter) Report(ctx context.Context, err error) {
	if r == nil || r.hub == nil || err == nil {
		return
	}
	hub := r.hub.Clone()
	hub.ConfigureScope(func(scope *sentry.Scope) {
		if id := logger.RequestIDFrom(ctx); id != "" {
			scope.SetTag("request_id", id)
		}
	})
	hub.CaptureException(err)
}

// Flush waits for buffered events to be sent.
func (r *Reporter) Flush(timeout time.Duration) bool {
	if r == nil || r.hub == nil {
		return true
	}
	return r.hub.Flush(timeout)
}
