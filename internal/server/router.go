package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"decimal-calc/internal/calculator"
	"decimal-calc/internal/handlers"
	"decimal-calc/internal/observability"
)

func NewRouter(session *calculator.Session) http.Handler {

	r := chi.NewRouter()

	r.Use(observability.RequestIDMiddleware)
	r.Use(observability.TracingMiddleware)
	r.Use(observability.LoggingMiddleware)

	r.Get("/health", handlers.Health)

	r.Handle("/metrics", observability.PrometheusHandler())

	calculator.RegisterRoutes(r, session)

	return r
}
