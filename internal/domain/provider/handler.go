package provider

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/karyakarta/karyakarta-api/internal/pkg/response"
	"github.com/karyakarta/karyakarta-api/internal/pkg/validator"
)

// Handler handles provider HTTP requests
type Handler struct {
	svc *Service
}

// NewHandler creates provider handler
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// List handles GET /providers/list
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	limit := 200
	if l := r.URL.Query().Get("limit"); l != "" {
		if v, err := strconv.Atoi(l); err == nil && v > 0 && v <= 1000 {
			limit = v
		}
	}

	category := r.URL.Query().Get("category")

	var active *bool
	if a := r.URL.Query().Get("active"); a != "" {
		if v, err := strconv.ParseBool(a); err == nil {
			active = &v
		}
	}

	providers, err := h.svc.List(r.Context(), category, active, limit)
	if err != nil {
		response.InternalError(w)
		return
	}

	items := make([]*ProviderResponse, len(providers))
	for i, p := range providers {
		items[i] = ToResponse(p)
	}

	response.Items(w, items)
}

// Create handles POST /providers/create
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateProviderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	if errors := validator.Validate(&req); errors != nil {
		response.ValidationError(w, errors)
		return
	}

	p, err := h.svc.Create(r.Context(), &req)
	if err != nil {
		if err == ErrInvalidRating {
			response.BadRequest(w, err.Error())
			return
		}
		response.InternalError(w)
		return
	}

	response.Created(w, ToResponse(p))
}

// Update handles POST /providers/update
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var req UpdateProviderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	if errors := validator.Validate(&req); errors != nil {
		response.ValidationError(w, errors)
		return
	}

	p, err := h.svc.Update(r.Context(), &req)
	if err != nil {
		switch err {
		case ErrProviderNotFound:
			response.NotFound(w, "Provider not found")
		case ErrInvalidRating:
			response.BadRequest(w, err.Error())
		default:
			response.InternalError(w)
		}
		return
	}

	response.OK(w, ToResponse(p))
}

// Delete handles DELETE /providers/delete
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	var req DeleteProviderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	if errors := validator.Validate(&req); errors != nil {
		response.ValidationError(w, errors)
		return
	}

	if err := h.svc.Delete(r.Context(), req.ID); err != nil {
		if err == ErrProviderNotFound {
			response.NotFound(w, "Provider not found")
			return
		}
		response.InternalError(w)
		return
	}

	response.Done(w)
}
