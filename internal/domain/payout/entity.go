package payout

import "time"

// Status represents payout lifecycle state
type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
)

// DefaultCurrency is assumed when the stored document carries none.
const DefaultCurrency = "INR"

// Payout is money owed to a provider for completed jobs
type Payout struct {
	ID         string
	ProviderID string
	Amount     float64
	Currency   string
	Status     Status
	Method     string // upi, bank_transfer, cash
	Reference  string
	Notes      string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
