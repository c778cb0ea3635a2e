package calculator

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"decimal-calc/internal/calculation"
	"decimal-calc/internal/commands"
	"decimal-calc/internal/history"
	"decimal-calc/internal/observability"
	"decimal-calc/internal/operations"
	"decimal-calc/internal/worker"
)

// tracer is the calculator's dedicated OpenTelemetry tracer.
var tracer = otel.Tracer("calculator")

// Session owns the state of one calculator run: the operations it knows, the
// commands it exposes, how it executes calculations and the history of what
// it computed.
type Session struct {
	registry   *operations.Registry
	dispatcher *commands.Dispatcher
	runner     worker.Runner
	history    *history.History
}

// NewSession builds a session with an empty history and registers the
// history commands (history, last, clear) on disp.
func NewSession(reg *operations.Registry, disp *commands.Dispatcher, runner worker.Runner) (*Session, error) {
	if err := InitMetrics(); err != nil {
		return nil, err
	}

	s := &Session{
		registry:   reg,
		dispatcher: disp,
		runner:     runner,
		history:    history.New(),
	}
	s.registerHistoryCommands()
	return s, nil
}

func (s *Session) Registry() *operations.Registry {
	return s.registry
}

func (s *Session) Dispatcher() *commands.Dispatcher {
	return s.dispatcher
}

func (s *Session) History() *history.History {
	return s.history
}

// Evaluate parses and runs one request. Every failure is reported through the
// returned Outcome; nothing here is fatal to the caller.
func (s *Session) Evaluate(ctx context.Context, aTok, bTok, opTok string) Outcome {
	opName := strings.ToLower(opTok)
	out := Outcome{A: aTok, B: bTok, Operation: opName}

	ctx, span := tracer.Start(ctx, fmt.Sprintf("calculator.%s", opName),
		trace.WithAttributes(
			attribute.String("calculator.operation", opName),
		),
	)
	defer span.End()
	logger := observability.LoggerWithTrace(ctx)

	// Metric labels only ever carry registered names.
	label := opName
	fail := func(err error) Outcome {
		out.Err = err
		observability.RecordError(ctx, span, logger, errorCounter, label, errorKind(err), err)
		return out
	}

	op, err := s.registry.Lookup(opName)
	if err != nil {
		label = unregisteredOperation
		return fail(err)
	}

	a, errA := operations.ParseOperand(aTok)
	b, errB := operations.ParseOperand(bTok)
	if errA != nil || errB != nil {
		return fail(fmt.Errorf("%w: %s or %s", ErrInvalidOperand, aTok, bTok))
	}

	calc := calculation.New(a, b, op)
	out.ID = calc.ID()
	ctx = observability.ContextWithCalculationID(ctx, calc.ID())
	span.SetAttributes(
		attribute.String("calculator.id", calc.ID()),
		attribute.String("calculator.operand.a", aTok),
		attribute.String("calculator.operand.b", bTok),
	)

	start := time.Now()
	result, err := s.runner.Run(ctx, calc)
	elapsed := float64(time.Since(start).Microseconds()) / 1000.0 // ms

	if err != nil {
		return fail(err)
	}

	s.history.Add(calc)

	attrs := metric.WithAttributes(attribute.String("operation", opName))
	opsCounter.Add(ctx, 1, attrs)
	opsHistogram.Record(ctx, elapsed, attrs)
	resultGauge.Record(ctx, result.InexactFloat64(), attrs)
	historyGauge.Record(ctx, int64(s.history.Len()))

	span.AddEvent("computation.complete", trace.WithAttributes(
		attribute.String("result", result.String()),
		attribute.Float64("duration_ms", elapsed),
	))
	span.SetStatus(codes.Ok, "")

	logger.Info("calculation completed",
		zap.String("calculation_id", calc.ID()),
		zap.String("operation", opName),
		zap.String("a", aTok),
		zap.String("b", bTok),
		zap.Stringer("result", result),
		zap.Float64("duration_ms", elapsed),
	)

	out.Result = result
	return out
}

func (s *Session) registerHistoryCommands() {
	s.dispatcher.Register("history", commands.CommandFunc(func() (string, error) {
		calcs := s.history.All()
		if len(calcs) == 0 {
			return noHistory, nil
		}
		lines := make([]string, 0, len(calcs))
		for i, c := range calcs {
			lines = append(lines, fmt.Sprintf("%d: %s", i+1, c))
		}
		return strings.Join(lines, "\n"), nil
	}))

	s.dispatcher.Register("last", commands.CommandFunc(func() (string, error) {
		c, ok := s.history.Latest()
		if !ok {
			return noHistory, nil
		}
		return c.String(), nil
	}))

	s.dispatcher.Register("clear", commands.CommandFunc(func() (string, error) {
		s.ClearHistory(context.Background())
		return "History cleared.", nil
	}))
}

// ClearHistory empties the history and records the new size.
func (s *Session) ClearHistory(ctx context.Context) {
	s.history.Clear()
	historyGauge.Record(ctx, 0)
	observability.LoggerWithTrace(ctx).Info("history cleared")
}

const (
	noHistory             = "No calculations in history."
	unregisteredOperation = "unregistered"
)
