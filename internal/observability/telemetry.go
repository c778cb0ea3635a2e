package observability

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel/sdk/resource"
	"go.uber.org/zap"
)

// InitTelemetry installs the OTLP trace, metric and log pipelines. role tells
// the REPL, the HTTP server and worker processes apart within one service.
// When disabled, the global no-op providers stay in place and the returned
// shutdown does nothing.
func InitTelemetry(ctx context.Context, enabled bool, serviceName string, role Role) (func(context.Context) error, error) {
	if !enabled {
		Logger.Debug("telemetry disabled", zap.String("role", string(role)))
		return func(context.Context) error { return nil }, nil
	}

	res, err := NewResource(ctx, serviceName, role)
	if err != nil {
		return nil, fmt.Errorf("build resource: %w", err)
	}

	var shutdowns []func(context.Context) error
	shutdown := func(ctx context.Context) error {
		var errs []error
		for i := len(shutdowns) - 1; i >= 0; i-- {
			errs = append(errs, shutdowns[i](ctx))
		}
		return errors.Join(errs...)
	}

	inits := []struct {
		name string
		fn   func(context.Context, *resource.Resource) (func(context.Context) error, error)
	}{
		{"tracing", InitTracing},
		{"metrics", InitMetrics},
		{"logging", InitLogging},
	}
	for _, in := range inits {
		fn, err := in.fn(ctx, res)
		if err != nil {
			_ = shutdown(ctx)
			return nil, fmt.Errorf("init %s: %w", in.name, err)
		}
		shutdowns = append(shutdowns, fn)
	}

	Logger.Info("telemetry enabled",
		zap.String("service", serviceName),
		zap.String("role", string(role)),
	)
	return shutdown, nil
}
