package observability

import (
	"context"

	"github.com/google/uuid"
)

type contextKey string

const (
	RequestIDKey     contextKey = "request_id"
	CalculationIDKey contextKey = "calculation_id"
)

func NewRequestID() string {
	return uuid.New().String()
}

func ContextWithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, RequestIDKey, id)
}

func RequestIDFromContext(ctx context.Context) string {
	return stringValue(ctx, RequestIDKey)
}

func ContextWithCalculationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, CalculationIDKey, id)
}

func CalculationIDFromContext(ctx context.Context) string {
	return stringValue(ctx, CalculationIDKey)
}

func stringValue(ctx context.Context, key contextKey) string {
	id, ok := ctx.Value(key).(string)
	if !ok {
		return ""
	}
	return id
}
