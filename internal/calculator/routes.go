package calculator

import "github.com/go-chi/chi/v5"

// RegisterRoutes mounts all calculator endpoints onto the given router
// under the /calculator prefix.
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Route("/calculator", func(r chi.Router) {
		r.Post("/evaluate", h.Evaluate)
		r.Post("/expression", h.Expression)
		r.Post("/measurement", h.Measurement)
		r.Post("/format", h.Format)
		r.Post("/classify", h.Classify)
		r.Post("/interpret", h.Interpret)
		r.Post("/batch", h.Batch)
	})
}
