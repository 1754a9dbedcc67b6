package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"onsite-calculator/internal/calculator"
	"onsite-calculator/internal/handlers"
	"onsite-calculator/internal/observability"
)

// NewRouter wires middleware, the health and metrics endpoints and the
// calculator routes served by calc.
func NewRouter(calc *calculator.Handler) http.Handler {

	r := chi.NewRouter()

	r.Use(middleware.RealIP)
	r.Use(observability.RequestIDMiddleware)
	r.Use(observability.TracingMiddleware)
	r.Use(observability.LoggingMiddleware)
	r.Use(middleware.Recoverer)

	r.Get("/health", handlers.Health)

	r.Handle("/metrics", observability.PrometheusHandler())

	calculator.RegisterRoutes(r, calc)

	return r
}
