package job

import "time"

// Status represents job lifecycle state
type Status string

const (
	StatusRequested  Status = "requested"
	StatusAssigned   Status = "assigned"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

// Job is a customer service booking
type Job struct {
	ID           string
	CustomerName string
	Phone        string
	ProviderID   string
	Category     string
	Description  string
	City         string
	Status       Status
	Amount       float64
	ScheduledAt  time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
