package worker

import (
	"context"
	"os"

	"go.opentelemetry.io/otel/propagation"
)

// Trace context crosses the process boundary in the W3C environment
// variables, so worker spans join the parent's trace.
const (
	traceparentEnv = "TRACEPARENT"
	tracestateEnv  = "TRACESTATE"
)

var propagator = propagation.TraceContext{}

// traceEnv returns the environment entries carrying the span context of ctx,
// or nil when ctx has no sampled span.
func traceEnv(ctx context.Context) []string {
	carrier := propagation.MapCarrier{}
	propagator.Inject(ctx, carrier)

	var env []string
	if v := carrier.Get("traceparent"); v != "" {
		env = append(env, traceparentEnv+"="+v)
	}
	if v := carrier.Get("tracestate"); v != "" {
		env = append(env, tracestateEnv+"="+v)
	}
	return env
}

// ContextFromEnvironment returns ctx with the remote span context left by the
// parent process, if any.
func ContextFromEnvironment(ctx context.Context) context.Context {
	carrier := propagation.MapCarrier{
		"traceparent": os.Getenv(traceparentEnv),
		"tracestate":  os.Getenv(tracestateEnv),
	}
	return propagator.Extract(ctx, carrier)
}
