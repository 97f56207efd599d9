package payout

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/karyakarta/karyakarta-api/internal/pkg/response"
	"github.com/karyakarta/karyakarta-api/internal/pkg/validator"
)

// Handler handles payout HTTP requests
type Handler struct {
	svc *Service
}

// NewHandler creates payout handler
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// List handles GET /payouts/list
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

	payouts, err := h.svc.List(r.Context(), status, limit)
	if err != nil {
		response.InternalError(w)
		return
	}

	items := make([]*PayoutResponse, len(payouts))
	for i, p := range payouts {
		items[i] = ToResponse(p)
	}

	response.Items(w, items)
}

// Create handles POST /payouts/create
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreatePayoutRequest
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
		if err == ErrInvalidAmount {
			response.BadRequest(w, err.Error())
			return
		}
		response.InternalError(w)
		return
	}

	response.Created(w, ToResponse(p))
}

// Update handles POST /payouts/update
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var req UpdatePayoutRequest
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
		case ErrPayoutNotFound:
			response.NotFound(w, "Payout not found")
		case ErrInvalidAmount:
			response.BadRequest(w, err.Error())
		default:
			response.InternalError(w)
		}
		return
	}

	response.OK(w, ToResponse(p))
}

// Delete handles DELETE /payouts/delete
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	var req DeletePayoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	if errors := validator.Validate(&req); errors != nil {
		response.ValidationError(w, errors)
		return
	}

	if err := h.svc.Delete(r.Context(), req.ID); err != nil {
		if err == ErrPayoutNotFound {
			response.NotFound(w, "Payout not found")
			return
		}
		response.InternalError(w)
		return
	}

	response.Done(w)
}

// Export handles GET /payouts/export
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	limit := 0 // everything
	if l := r.URL.Query().Get("limit"); l != "" {
		if v, err := strconv.Atoi(l); err == nil && v > 0 {
			limit = v
		}
	}

	export, err := h.svc.Export(r.Context(), limit)
	if err != nil {
		response.InternalError(w)
		return
	}

	response.OK(w, export)
}
