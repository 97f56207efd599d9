package job

import (
	"context"
	"errors"
	"time"

	"github.com/karyakarta/karyakarta-api/internal/docstore"
)

const collection = "jobs"

// Repository defines job data access
type Repository interface {
	List(ctx context.Context, limit int) ([]*Job, error)
	GetByID(ctx context.Context, id string) (*Job, error)
	Create(ctx context.Context, j *Job) (*Job, error)
	Update(ctx context.Context, id string, patch map[string]interface{}) (*Job, error)
	Delete(ctx context.Context, id string) error
}

type repository struct {
	store docstore.Store
}

// NewRepository creates job repository
func NewRepository(store docstore.Store) Repository {
	return &repository{store: store}
}

func (r *repository) List(ctx context.Context, limit int) ([]*Job, error) {
	docs, err := r.store.List(ctx, collection, limit)
	if err != nil {
		return nil, err
	}
	jobs := make([]*Job, 0, len(docs))
	for _, doc := range docs {
		jobs = append(jobs, fromDocument(doc))
	}
	return jobs, nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*Job, error) {
	doc, err := r.store.Get(ctx, collection, id)
	if err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return nil, ErrJobNotFound
		}
		return nil, err
	}
	return fromDocument(doc), nil
}

func (r *repository) Create(ctx context.Context, j *Job) (*Job, error) {
	doc, err := r.store.Insert(ctx, collection, toFields(j))
	if err != nil {
		return nil, err
	}
	return fromDocument(doc), nil
}

func (r *repository) Update(ctx context.Context, id string, patch map[string]interface{}) (*Job, error) {
	doc, err := r.store.Update(ctx, collection, id, patch)
	if err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return nil, ErrJobNotFound
		}
		return nil, err
	}
	return fromDocument(doc), nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	if err := r.store.Delete(ctx, collection, id); err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return ErrJobNotFound
		}
		return err
	}
	return nil
}

func toFields(j *Job) map[string]interface{} {
	fields := map[string]interface{}{
		"customer_name": j.CustomerName,
		"phone":         j.Phone,
		"provider_id":   j.ProviderID,
		"category":      j.Category,
		"description":   j.Description,
		"city":          j.City,
		"status":        string(j.Status),
		"amount":        j.Amount,
	}
	if !j.ScheduledAt.IsZero() {
		fields["scheduled_at"] = j.ScheduledAt.UTC().Format(time.RFC3339)
	}
	return fields
}

func fromDocument(doc *docstore.Document) *Job {
	j := &Job{
		ID:           doc.ID,
		CustomerName: str(doc.Fields["customer_name"]),
		Phone:        str(doc.Fields["phone"]),
		ProviderID:   str(doc.Fields["provider_id"]),
		Category:     str(doc.Fields["category"]),
		Description:  str(doc.Fields["description"]),
		City:         str(doc.Fields["city"]),
		Status:       Status(str(doc.Fields["status"])),
		Amount:       num(doc.Fields["amount"]),
		CreatedAt:    doc.CreatedAt,
		UpdatedAt:    doc.UpdatedAt,
	}
	if s := str(doc.Fields["scheduled_at"]); s != "" {
		if ts, err := time.Parse(time.RFC3339, s); err == nil {
			j.ScheduledAt = ts
		}
	}
	if j.Status == "" {
		j.Status = StatusRequested
	}
	return j
}

func str(v interface{}) string {
	s, _ := v.(string)
	return s
}

func num(v interface{}) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	case int64:
		return float64(n)
	default:
		return 0
	}
}
