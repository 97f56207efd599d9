package job

import "github.com/go-chi/chi/v5"

// Routes returns job admin routes
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/list", h.List)
	r.Post("/create", h.Create)
	r.Post("/update", h.Update)
	r.Delete("/delete", h.Delete)
	return r
}
