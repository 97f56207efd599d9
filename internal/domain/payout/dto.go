package payout

// CreatePayoutRequest for recording a new payout
type CreatePayoutRequest struct {
	ProviderID string  `json:"provider_id" validate:"required"`
	Amount     float64 `json:"amount" validate:"required,gt=0"`
	Currency   string  `json:"currency,omitempty" validate:"omitempty,currency"`
	Status     string  `json:"status,omitempty" validate:"omitempty,payout_status"`
	Method     string  `json:"method,omitempty"`
	Reference  string  `json:"reference,omitempty"`
	Notes      string  `json:"notes,omitempty"`
}

// UpdatePayoutRequest carries the id plus a partial patch
type UpdatePayoutRequest struct {
	ID        string   `json:"id" validate:"required"`
	Amount    *float64 `json:"amount,omitempty" validate:"omitempty,gt=0"`
	Currency  *string  `json:"currency,omitempty" validate:"omitempty,currency"`
	Status    *string  `json:"status,omitempty" validate:"omitempty,payout_status"`
	Method    *string  `json:"method,omitempty"`
	Reference *string  `json:"reference,omitempty"`
	Notes     *string  `json:"notes,omitempty"`
}

// DeletePayoutRequest identifies the payout to remove
type DeletePayoutRequest struct {
	ID string `json:"id" validate:"required"`
}

// PayoutResponse for API responses. Timestamps are epoch milliseconds.
type PayoutResponse struct {
	ID         string  `json:"id"`
	ProviderID string  `json:"provider_id"`
	Amount     float64 `json:"amount"`
	Currency   string  `json:"currency"`
	Status     string  `json:"status"`
	Method     string  `json:"method,omitempty"`
	Reference  string  `json:"reference,omitempty"`
	Notes      string  `json:"notes,omitempty"`
	CreatedAt  int64   `json:"created_at"`
	UpdatedAt  int64   `json:"updated_at"`
}

// ToResponse converts entity to response
func ToResponse(p *Payout) *PayoutResponse {
	return &PayoutResponse{
		ID:         p.ID,
		ProviderID: p.ProviderID,
		Amount:     p.Amount,
		Currency:   p.Currency,
		Status:     string(p.Status),
		Method:     p.Method,
		Reference:  p.Reference,
		Notes:      p.Notes,
		CreatedAt:  p.CreatedAt.UnixMilli(),
		UpdatedAt:  p.UpdatedAt.UnixMilli(),
	}
}

// ExportResponse describes a stored CSV export
type ExportResponse struct {
	Key   string `json:"key"`
	URL   string `json:"url"`
	Count int    `json:"count"`
}
