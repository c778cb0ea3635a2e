package observability

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// RecordError centralises error handling: records the error on the span,
// increments the error counter tagged with the operation and error kind, and
// logs with the correlation ids found in ctx.
func RecordError(ctx context.Context, span trace.Span, logger *zap.Logger, counter metric.Int64Counter, opName, kind string, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, kind)

	counter.Add(ctx, 1, metric.WithAttributes(
		attribute.String("operation", opName),
		attribute.String("kind", kind),
	))

	fields := []zap.Field{
		zap.String("operation", opName),
		zap.String("kind", kind),
		zap.Error(err),
	}
	if id := CalculationIDFromContext(ctx); id != "" {
		fields = append(fields, zap.String("calculation_id", id))
	}
	if id := RequestIDFromContext(ctx); id != "" {
		fields = append(fields, zap.String("request_id", id))
	}

	logger.Error("calculation failed", fields...)
}
