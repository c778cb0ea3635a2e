package observability

import (
	"context"

	"go.opentelemetry.io/contrib/bridges/otelzap"
	"go.opentelemetry.io/otel/exporters/otlp/otlplog/otlploghttp"
	sdklog "go.opentelemetry.io/otel/sdk/log"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// logScope is the instrumentation scope of exported calculator logs.
const logScope = "decimal-calc/calculator"

// InitLogging tees Logger into an OTLP log exporter. Only entries at the
// logger's current level or above are exported.
func InitLogging(ctx context.Context, res *resource.Resource) (func(context.Context) error, error) {
	exporter, err := otlploghttp.New(ctx)
	if err != nil {
		return nil, err
	}

	provider := sdklog.NewLoggerProvider(
		sdklog.WithResource(res),
		sdklog.WithProcessor(
			sdklog.NewBatchProcessor(exporter),
		),
	)

	local := Logger.Core()
	otelCore, err := zapcore.NewIncreaseLevelCore(
		otelzap.NewCore(logScope, otelzap.WithLoggerProvider(provider)),
		zapcore.LevelOf(local),
	)
	if err != nil {
		_ = provider.Shutdown(ctx)
		return nil, err
	}

	Logger = zap.New(zapcore.NewTee(local, otelCore))

	return provider.Shutdown, nil
}
