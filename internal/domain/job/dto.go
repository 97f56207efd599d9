package job

import "time"

// CreateJobRequest for booking a new job
type CreateJobRequest struct {
	CustomerName string  `json:"customer_name" validate:"required,min=2,max=120"`
	Phone        string  `json:"phone,omitempty" validate:"omitempty,min=7,max=20"`
	ProviderID   string  `json:"provider_id,omitempty"`
	Category     string  `json:"category" validate:"required,category"`
	Description  string  `json:"description,omitempty" validate:"omitempty,max=2000"`
	City         string  `json:"city,omitempty" validate:"omitempty,max=80"`
	Status       string  `json:"status,omitempty" validate:"omitempty,job_status"`
	Amount       float64 `json:"amount,omitempty" validate:"omitempty,gte=0"`
	ScheduledAt  int64   `json:"scheduled_at,omitempty"` // epoch milliseconds
}

// UpdateJobRequest carries the id plus a partial patch
type UpdateJobRequest struct {
	ID           string   `json:"id" validate:"required"`
	CustomerName *string  `json:"customer_name,omitempty" validate:"omitempty,min=2,max=120"`
	Phone        *string  `json:"phone,omitempty" validate:"omitempty,min=7,max=20"`
	ProviderID   *string  `json:"provider_id,omitempty"`
	Category     *string  `json:"category,omitempty" validate:"omitempty,category"`
	Description  *string  `json:"description,omitempty" validate:"omitempty,max=2000"`
	City         *string  `json:"city,omitempty" validate:"omitempty,max=80"`
	Status       *string  `json:"status,omitempty" validate:"omitempty,job_status"`
	Amount       *float64 `json:"amount,omitempty" validate:"omitempty,gte=0"`
	ScheduledAt  *int64   `json:"scheduled_at,omitempty"`
}

// DeleteJobRequest identifies the job to remove
type DeleteJobRequest struct {
	ID string `json:"id" validate:"required"`
}

// JobResponse for API responses. Timestamps are epoch milliseconds.
type JobResponse struct {
	ID           string  `json:"id"`
	CustomerName string  `json:"customer_name"`
	Phone        string  `json:"phone,omitempty"`
	ProviderID   string  `json:"provider_id,omitempty"`
	Category     string  `json:"category"`
	Description  string  `json:"description,omitempty"`
	City         string  `json:"city,omitempty"`
	Status       string  `json:"status"`
	Amount       float64 `json:"amount"`
	ScheduledAt  int64   `json:"scheduled_at,omitempty"`
	CreatedAt    int64   `json:"created_at"`
	UpdatedAt    int64   `json:"updated_at"`
}

// ToResponse converts entity to response
func ToResponse(j *Job) *JobResponse {
	resp := &JobResponse{
		ID:           j.ID,
		CustomerName: j.CustomerName,
		Phone:        j.Phone,
		ProviderID:   j.ProviderID,
		Category:     j.Category,
		Description:  j.Description,
		City:         j.City,
		Status:       string(j.Status),
		Amount:       j.Amount,
		CreatedAt:    j.CreatedAt.UnixMilli(),
		UpdatedAt:    j.UpdatedAt.UnixMilli(),
	}
	if !j.ScheduledAt.IsZero() {
		resp.ScheduledAt = j.ScheduledAt.UnixMilli()
	}
	return resp
}

func msToTime(ms int64) time.Time {
	if ms <= 0 {
		return time.Time{}
	}
	return time.UnixMilli(ms).UTC()
}
