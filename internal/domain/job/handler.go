package job

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/karyakarta/karyakarta-api/internal/pkg/response"
	"github.com/karyakarta/karyakarta-api/internal/pkg/validator"
)

// Handler handles job HTTP requests
type Handler struct {
	svc *Service
}

// NewHandler creates job handler
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// List handles GET /jobs/list
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	limit := 200
	if l := r.URL.Query().Get("limit"); l != "" {
		if v, err := strconv.Atoi(l); err == nil && v > 0 && v <= 1000 {
			limit = v
		}
	}

	var status *Status
	if s := r.URL.Query().Get("status"); s != "" {
		st := Status(s)
		status = &st
	}

	jobs, err := h.svc.List(r.Context(), status, limit)
	if err != nil {
		response.InternalError(w)
		return
	}

	items := make([]*JobResponse, len(jobs))
	for i, j := range jobs {
		items[i] = ToResponse(j)
	}

	response.Items(w, items)
}

// Create handles POST /jobs/create
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateJobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	if errors := validator.Validate(&req); errors != nil {
		response.ValidationError(w, errors)
		return
	}

	j, err := h.svc.Create(r.Context(), &req)
	if err != nil {
		response.InternalError(w)
		return
	}

	response.Created(w, ToResponse(j))
}

// Update handles POST /jobs/update
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var req UpdateJobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	if errors := validator.Validate(&req); errors != nil {
		response.ValidationError(w, errors)
		return
	}

	j, err := h.svc.Update(r.Context(), &req)
	if err != nil {
		switch err {
		case ErrJobNotFound:
			response.NotFound(w, "Job not found")
		case ErrInvalidTransition:
			response.BadRequest(w, err.Error())
		default:
			response.InternalError(w)
		}
		return
	}

	response.OK(w, ToResponse(j))
}

// Delete handles DELETE /jobs/delete
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	var req DeleteJobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	if errors := validator.Validate(&req); errors != nil {
		response.ValidationError(w, errors)
		return
	}

	if err := h.svc.Delete(r.Context(), req.ID); err != nil {
		if err == ErrJobNotFound {
			response.NotFound(w, "Job not found")
			return
		}
		response.InternalError(w)
		return
	}

	response.Done(w)
}
