package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Routes returns the /api router. session, when set, resolves the signed-in
// user before the saved-jobs endpoints run.
func Routes(h *Handler, session func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Use(RequestIDMiddleware)
	r.Use(middleware.Recoverer)
	r.Use(accessLog(h.Log))

	r.Get("/jobs", h.ServeJobs)
	r.Get("/jobs/{slug}", h.ServeJob)
	r.Get("/forms/{id}", h.ServeForm)
	r.Get("/stats", h.ServeStats)

	r.Route("/saved-jobs", func(r chi.Router) {
		if session != nil {
			r.Use(session)
		}
		r.Get("/", h.ServeSaved)
		r.Put("/{id}", h.HandleSave)
		r.Delete("/{id}", h.HandleUnsave)
	})

	return r
}
