package observability

import (
	"context"
	"testing"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestInitLoggerLevels(t *testing.T) {
	oldLogger := Logger
	t.Cleanup(func() { Logger = oldLogger })

	tests := []struct {
		name        string
		development bool
		level       string
		debug       bool
		info        bool
	}{
		{name: "production", info: true},
		{name: "development", development: true, debug: true, info: true},
		{name: "override", development: true, level: "warn"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if err := InitLogger(tc.development, tc.level); err != nil {
				t.Fatalf("InitLogger: %v", err)
			}
			if got := Logger.Core().Enabled(zapcore.DebugLevel); got != tc.debug {
				t.Fatalf("debug enabled: expected %t, got %t", tc.debug, got)
			}
			if got := Logger.Core().Enabled(zapcore.InfoLevel); got != tc.info {
				t.Fatalf("info enabled: expected %t, got %t", tc.info, got)
			}
		})
	}
}

func TestInitLoggerRejectsBadLevel(t *testing.T) {
	oldLogger := Logger
	t.Cleanup(func() { Logger = oldLogger })

	if err := InitLogger(false, "loud"); err == nil {
		t.Fatal("expected error for unknown level")
	}
}

func TestLoggerWithTraceWithoutSpanReturnsLogger(t *testing.T) {
	oldLogger := Logger
	Logger = zap.NewNop()
	t.Cleanup(func() { Logger = oldLogger })

	if got := LoggerWithTrace(context.Background()); got != Logger {
		t.Fatal("expected base logger when no span is active")
	}

	sc := trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    trace.TraceID{1},
		SpanID:     trace.SpanID{2},
		TraceFlags: trace.FlagsSampled,
	})
	ctx := trace.ContextWithSpanContext(context.Background(), sc)
	if got := LoggerWithTrace(ctx); got == Logger {
		t.Fatal("expected child logger when a span is active")
	}
}

func TestInitTelemetryDisabledIsNoop(t *testing.T) {
	shutdown, err := InitTelemetry(context.Background(), false, "calc", RoleCLI)
	if err != nil {
		t.Fatalf("InitTelemetry: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown: %v", err)
	}
}
