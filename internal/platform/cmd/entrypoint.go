// Package cmd holds the pieces shared by the command entrypoints: layered
// env/flag parsing and a telemetry wrapper around a command's run loop.
package cmd

import (
	"context"
	"errors"
	"flag"
	"log"
	"strings"
	"time"

	"github.com/louisbranch/cli-life/internal/platform/config"
	"github.com/louisbranch/cli-life/internal/platform/otel"
)

// Service identifiers reported to telemetry and used as log prefixes.
const (
	ServiceLife     = "life"
	ServiceResearch = "research"
)

// telemetryConfig controls how long pending spans may take to flush once
// a command finishes.
type telemetryConfig struct {
	ShutdownTimeout time.Duration `env:"LIFE_OTEL_SHUTDOWN_TIMEOUT" envDefault:"5s"`
}

// ParseConfig loads LIFE_* variables into cfg.
func ParseConfig[T any](cfg *T) error {
	if cfg == nil {
		return errors.New("config target is required")
	}
	return config.ParseEnv(cfg)
}

// ParseArgs parses command-line flags. Call it after ParseConfig so flags
// override the environment.
func ParseArgs(fs *flag.FlagSet, args []string) error {
	if fs == nil {
		return errors.New("flag parser is required")
	}
	if args == nil {
		args = []string{}
	}
	return fs.Parse(args)
}

// RunWithTelemetry sets up tracing for service, calls run and flushes
// telemetry afterwards whatever run returned.
func RunWithTelemetry(ctx context.Context, service string, run func(context.Context) error) error {
	service = strings.TrimSpace(service)
	if service == "" {
		return errors.New("service name is required")
	}
	if run == nil {
		return errors.New("run function is required")
	}

	var tc telemetryConfig
	if err := ParseConfig(&tc); err != nil {
		return err
	}
	if tc.ShutdownTimeout <= 0 {
		return errors.New("otel shutdown timeout must be positive")
	}

	shutdown, err := otel.Setup(ctx, service)
	if err != nil {
		return err
	}
	defer flush(service, shutdown, tc.ShutdownTimeout)
	return run(ctx)
}

func flush(service string, shutdown func(context.Context) error, timeout time.Duration) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := shutdown(ctx); err != nil {
		log.Printf("%s otel shutdown: %v", service, err)
	}
}
