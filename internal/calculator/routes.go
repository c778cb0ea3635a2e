package calculator

import "github.com/go-chi/chi/v5"

// RegisterRoutes mounts all calculator endpoints onto the given router
// under the /calculator prefix.
func RegisterRoutes(r chi.Router, s *Session) {
	h := NewHandler(s)
	r.Route("/calculator", func(r chi.Router) {
		r.Get("/operations", h.Operations)
		r.Get("/history", h.History)
		r.Get("/history/latest", h.Latest)
		r.Delete("/history", h.ClearHistory)
		r.Post("/{operation}", h.Calculate)
	})
}
