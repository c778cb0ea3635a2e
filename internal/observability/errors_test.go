package observability

import (
	"context"
	"errors"
	"testing"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestRecordErrorLogsWithCorrelationIDs(t *testing.T) {
	ctx := ContextWithCalculationID(context.Background(), "calc-1")
	span := trace.SpanFromContext(ctx)

	core, logs := observer.New(zap.InfoLevel)

	counter, err := otel.Meter("test").Int64Counter("test.errors.total")
	if err != nil {
		t.Fatalf("creating counter: %v", err)
	}

	RecordError(ctx, span, zap.New(core), counter, "divide", "division_by_zero", errors.New("cannot divide by zero"))

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 log entry, got %d", len(entries))
	}

	fields := entries[0].ContextMap()
	if fields["operation"] != "divide" {
		t.Fatalf("expected operation %q, got %#v", "divide", fields["operation"])
	}
	if fields["kind"] != "division_by_zero" {
		t.Fatalf("expected kind %q, got %#v", "division_by_zero", fields["kind"])
	}
	if fields["calculation_id"] != "calc-1" {
		t.Fatalf("expected calculation_id %q, got %#v", "calc-1", fields["calculation_id"])
	}
	if _, ok := fields["request_id"]; ok {
		t.Fatal("did not expect request_id without a request in context")
	}
}
