package payout

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/karyakarta/karyakarta-api/internal/pkg/csvexport"
	"github.com/karyakarta/karyakarta-api/internal/pkg/storage"
)

// Service orchestrates payout operations
type Service struct {
	repo    Repository
	archive storage.Archive
}

// NewService creates payout service
func NewService(repo Repository, archive storage.Archive) *Service {
	return &Service{repo: repo, archive: archive}
}

// List returns payouts, optionally narrowed to one status
func (s *Service) List(ctx context.Context, status *Status, limit int) ([]*Payout, error) {
	payouts, err := s.repo.List(ctx, limit)
	if err != nil {
		return nil, err
	}
	if status == nil {
		return payouts, nil
	}

	filtered := make([]*Payout, 0, len(payouts))
	for _, p := range payouts {
		if p.Status == *status {
			filtered = append(filtered, p)
		}
	}
	return filtered, nil
}

// Create records a new payout
func (s *Service) Create(ctx context.Context, req *CreatePayoutRequest) (*Payout, error) {
	if req.Amount <= 0 {
		return nil, ErrInvalidAmount
	}

	p := &Payout{
		ProviderID: req.ProviderID,
		Amount:     req.Amount,
		Currency:   req.Currency,
		Status:     Status(req.Status),
		Method:     req.Method,
		Reference:  req.Reference,
		Notes:      req.Notes,
	}
	if p.Currency == "" {
		p.Currency = DefaultCurrency
	}
	if p.Status == "" {
		p.Status = StatusPending
	}

	return s.repo.Create(ctx, p)
}

// Update applies a partial patch
func (s *Service) Update(ctx context.Context, req *UpdatePayoutRequest) (*Payout, error) {
	patch := make(map[string]interface{})
	if req.Amount != nil {
		if *req.Amount <= 0 {
			return nil, ErrInvalidAmount
		}
		patch["amount"] = *req.Amount
	}
	if req.Currency != nil {
		patch["currency"] = *req.Currency
	}
	if req.Status != nil {
		patch["status"] = *req.Status
	}
	if req.Method != nil {
		patch["method"] = *req.Method
	}
	if req.Reference != nil {
		patch["reference"] = *req.Reference
	}
	if req.Notes != nil {
		patch["notes"] = *req.Notes
	}

	return s.repo.Update(ctx, req.ID, patch)
}

// Delete removes a payout
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// Export renders all payouts as CSV and stores them in the export archive
func (s *Service) Export(ctx context.Context, limit int) (*ExportResponse, error) {
	payouts, err := s.repo.List(ctx, limit)
	if err != nil {
		return nil, err
	}

	header := []string{"id", "provider_id", "amount", "currency", "status", "method", "reference", "notes", "created_at", "updated_at"}
	rows := make([][]interface{}, 0, len(payouts))
	for _, p := range payouts {
		rows = append(rows, []interface{}{
			p.ID, p.ProviderID, p.Amount, p.Currency, string(p.Status),
			p.Method, p.Reference, p.Notes,
			p.CreatedAt.UTC().Format(time.RFC3339),
			p.UpdatedAt.UTC().Format(time.RFC3339),
		})
	}

	body := csvexport.String(header, rows)
	key := fmt.Sprintf("payouts-%s.csv", time.Now().UTC().Format("20060102-150405"))

	if err := s.archive.Put(ctx, key, strings.NewReader(body), "text/csv"); err != nil {
		return nil, fmt.Errorf("failed to store export: %w", err)
	}

	return &ExportResponse{
		Key:   key,
		URL:   s.archive.GetURL(key),
		Count: len(payouts),
	}, nil
}
