package dashboard

import (
	"context"

	"github.com/karyakarta/karyakarta-api/internal/domain/job"
	"github.com/karyakarta/karyakarta-api/internal/domain/payout"
	"github.com/karyakarta/karyakarta-api/internal/domain/provider"
)

// Summary is a point-in-time snapshot for the admin landing page
type Summary struct {
	Providers ProviderSummary    `json:"providers"`
	Jobs      JobSummary         `json:"jobs"`
	Payouts   PayoutSummary      `json:"payouts"`
	Totals    map[string]float64 `json:"payout_totals"` // pending amount by currency
}

// ProviderSummary counts providers by activity
type ProviderSummary struct {
	Total  int `json:"total"`
	Active int `json:"active"`
}

// JobSummary counts jobs by status
type JobSummary struct {
	Total    int            `json:"total"`
	ByStatus map[string]int `json:"by_status"`
}

// PayoutSummary counts payouts by status
type PayoutSummary struct {
	Total    int            `json:"total"`
	ByStatus map[string]int `json:"by_status"`
}

// Service aggregates cross-domain counts
type Service struct {
	providers provider.Repository
	jobs      job.Repository
	payouts   payout.Repository
}

// NewService creates dashboard service
func NewService(providers provider.Repository, jobs job.Repository, payouts payout.Repository) *Service {
	return &Service{providers: providers, jobs: jobs, payouts: payouts}
}

// Summarize walks all three collections. Intended for admin traffic, not hot paths.
func (s *Service) Summarize(ctx context.Context) (*Summary, error) {
	providers, err := s.providers.List(ctx, 0)
	if err != nil {
		return nil, err
	}
	jobs, err := s.jobs.List(ctx, 0)
	if err != nil {
		return nil, err
	}
	payouts, err := s.payouts.List(ctx, 0)
	if err != nil {
		return nil, err
	}

	summary := &Summary{
		Providers: ProviderSummary{Total: len(providers)},
		Jobs:      JobSummary{Total: len(jobs), ByStatus: make(map[string]int)},
		Payouts:   PayoutSummary{Total: len(payouts), ByStatus: make(map[string]int)},
		Totals:    make(map[string]float64),
	}

	for _, p := range providers {
		if p.Active {
			summary.Providers.Active++
		}
	}
	for _, j := range jobs {
		summary.Jobs.ByStatus[string(j.Status)]++
	}
	for _, p := range payouts {
		summary.Payouts.ByStatus[string(p.Status)]++
		if p.Status == payout.StatusPending {
			summary.Totals[p.Currency] += p.Amount
		}
	}

	return summary, nil
}
