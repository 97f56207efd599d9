package provider

// CreateProviderRequest for onboarding a provider
type CreateProviderRequest struct {
	Name     string  `json:"name" validate:"required,min=2,max=120"`
	Phone    string  `json:"phone" validate:"required,min=7,max=20"`
	Email    string  `json:"email,omitempty" validate:"omitempty,email"`
	Category string  `json:"category" validate:"required,category"`
	City     string  `json:"city,omitempty" validate:"omitempty,max=80"`
	Active   *bool   `json:"active,omitempty"`
	Rating   float64 `json:"rating,omitempty" validate:"omitempty,gte=0,lte=5"`
	Notes    string  `json:"notes,omitempty"`
}

// UpdateProviderRequest carries the id plus a partial patch
type UpdateProviderRequest struct {
	ID       string   `json:"id" validate:"required"`
	Name     *string  `json:"name,omitempty" validate:"omitempty,min=2,max=120"`
	Phone    *string  `json:"phone,omitempty" validate:"omitempty,min=7,max=20"`
	Email    *string  `json:"email,omitempty" validate:"omitempty,email"`
	Category *string  `json:"category,omitempty" validate:"omitempty,category"`
	City     *string  `json:"city,omitempty" validate:"omitempty,max=80"`
	Active   *bool    `json:"active,omitempty"`
	Rating   *float64 `json:"rating,omitempty" validate:"omitempty,gte=0,lte=5"`
	Notes    *string  `json:"notes,omitempty"`
}

// DeleteProviderRequest identifies the provider to remove
type DeleteProviderRequest struct {
	ID string `json:"id" validate:"required"`
}

// ProviderResponse for API responses. Timestamps are epoch milliseconds.
type ProviderResponse struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Phone     string  `json:"phone"`
	Email     string  `json:"email,omitempty"`
	Category  string  `json:"category"`
	City      string  `json:"city,omitempty"`
	Active    bool    `json:"active"`
	Rating    float64 `json:"rating"`
	Notes     string  `json:"notes,omitempty"`
	CreatedAt int64   `json:"created_at"`
	UpdatedAt int64   `json:"updated_at"`
}

// ToResponse converts entity to response
func ToResponse(p *Provider) *ProviderResponse {
	return &ProviderResponse{
		ID:        p.ID,
		Name:      p.Name,
		Phone:     p.Phone,
		Email:     p.Email,
		Category:  p.Category,
		City:      p.City,
		Active:    p.Active,
		Rating:    p.Rating,
		Notes:     p.Notes,
		CreatedAt: p.CreatedAt.UnixMilli(),
		UpdatedAt: p.UpdatedAt.UnixMilli(),
	}
}
