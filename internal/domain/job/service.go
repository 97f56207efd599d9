package job

import (
	"context"
	"time"
)

// Service orchestrates job operations
type Service struct {
	repo Repository
}

// NewService creates job service
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// List returns jobs, optionally narrowed to one status
func (s *Service) List(ctx context.Context, status *Status, limit int) ([]*Job, error) {
	jobs, err := s.repo.List(ctx, limit)
	if err != nil {
		return nil, err
	}
	if status == nil {
		return jobs, nil
	}

	filtered := make([]*Job, 0, len(jobs))
	for _, j := range jobs {
		if j.Status == *status {
			filtered = append(filtered, j)
		}
	}
	return filtered, nil
}

// Create books a new job
func (s *Service) Create(ctx context.Context, req *CreateJobRequest) (*Job, error) {
	j := &Job{
		CustomerName: req.CustomerName,
		Phone:        req.Phone,
		ProviderID:   req.ProviderID,
		Category:     req.Category,
		Description:  req.Description,
		City:         req.City,
		Status:       Status(req.Status),
		Amount:       req.Amount,
		ScheduledAt:  msToTime(req.ScheduledAt),
	}
	if j.Status == "" {
		j.Status = StatusRequested
	}
	return s.repo.Create(ctx, j)
}

// Update applies a partial patch. Completed and cancelled jobs keep their status.
func (s *Service) Update(ctx context.Context, req *UpdateJobRequest) (*Job, error) {
	if req.Status != nil {
		current, err := s.repo.GetByID(ctx, req.ID)
		if err != nil {
			return nil, err
		}
		if isTerminal(current.Status) && Status(*req.Status) != current.Status {
			return nil, ErrInvalidTransition
		}
	}

	patch := make(map[string]interface{})
	if req.CustomerName != nil {
		patch["customer_name"] = *req.CustomerName
	}
	if req.Phone != nil {
		patch["phone"] = *req.Phone
	}
	if req.ProviderID != nil {
		patch["provider_id"] = *req.ProviderID
	}
	if req.Category != nil {
		patch["category"] = *req.Category
	}
	if req.Description != nil {
		patch["description"] = *req.Description
	}
	if req.City != nil {
		patch["city"] = *req.City
	}
	if req.Status != nil {
		patch["status"] = *req.Status
	}
	if req.Amount != nil {
		patch["amount"] = *req.Amount
	}
	if req.ScheduledAt != nil {
		patch["scheduled_at"] = msToTime(*req.ScheduledAt).Format(time.RFC3339)
	}

	return s.repo.Update(ctx, req.ID, patch)
}

// Delete removes a job
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func isTerminal(status Status) bool {
	return status == StatusCompleted || status == StatusCancelled
}
