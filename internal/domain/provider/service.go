package provider

import "context"

// Service orchestrates provider operations
type Service struct {
	repo Repository
}

// NewService creates provider service
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// List returns providers, optionally narrowed to a category or active state
func (s *Service) List(ctx context.Context, category string, active *bool, limit int) ([]*Provider, error) {
	providers, err := s.repo.List(ctx, limit)
	if err != nil {
		return nil, err
	}
	if category == "" && active == nil {
		return providers, nil
	}

	filtered := make([]*Provider, 0, len(providers))
	for _, p := range providers {
		if category != "" && p.Category != category {
			continue
		}
		if active != nil && p.Active != *active {
			continue
		}
		filtered = append(filtered, p)
	}
	return filtered, nil
}

// Create onboards a new provider. New providers are active unless told otherwise.
func (s *Service) Create(ctx context.Context, req *CreateProviderRequest) (*Provider, error) {
	if req.Rating < 0 || req.Rating > 5 {
		return nil, ErrInvalidRating
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}

	p := &Provider{
		Name:     req.Name,
		Phone:    req.Phone,
		Email:    req.Email,
		Category: req.Category,
		City:     req.City,
		Active:   active,
		Rating:   req.Rating,
		Notes:    req.Notes,
	}
	return s.repo.Create(ctx, p)
}

// Update applies a partial patch
func (s *Service) Update(ctx context.Context, req *UpdateProviderRequest) (*Provider, error) {
	patch := make(map[string]interface{})
	if req.Name != nil {
		patch["name"] = *req.Name
	}
	if req.Phone != nil {
		patch["phone"] = *req.Phone
	}
	if req.Email != nil {
		patch["email"] = *req.Email
	}
	if req.Category != nil {
		patch["category"] = *req.Category
	}
	if req.City != nil {
		patch["city"] = *req.City
	}
	if req.Active != nil {
		patch["active"] = *req.Active
	}
	if req.Rating != nil {
		if *req.Rating < 0 || *req.Rating > 5 {
			return nil, ErrInvalidRating
		}
		patch["rating"] = *req.Rating
	}
	if req.Notes != nil {
		patch["notes"] = *req.Notes
	}

	return s.repo.Update(ctx, req.ID, patch)
}

// Delete removes a provider
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
