package dashboard

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/karyakarta/karyakarta-api/internal/pkg/response"
)

// Handler handles dashboard HTTP requests
type Handler struct {
	svc *Service
}

// NewHandler creates dashboard handler
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// Summary handles GET /dashboard/summary
func (h *Handler) Summary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.svc.Summarize(r.Context())
	if err != nil {
		response.InternalError(w)
		return
	}
	response.OK(w, summary)
}

// Routes returns dashboard routes
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/summary", h.Summary)
	return r
}
