package provider

import (
	"context"
	"errors"

	"github.com/karyakarta/karyakarta-api/internal/docstore"
)

const collection = "providers"

// Repository defines provider data access
type Repository interface {
	List(ctx context.Context, limit int) ([]*Provider, error)
	GetByID(ctx context.Context, id string) (*Provider, error)
	Create(ctx context.Context, p *Provider) (*Provider, error)
	Update(ctx context.Context, id string, patch map[string]interface{}) (*Provider, error)
	Delete(ctx context.Context, id string) error
}

type repository struct {
	store docstore.Store
}

// NewRepository creates provider repository
func NewRepository(store docstore.Store) Repository {
	return &repository{store: store}
}

func (r *repository) List(ctx context.Context, limit int) ([]*Provider, error) {
	docs, err := r.store.List(ctx, collection, limit)
	if err != nil {
		return nil, err
	}
	providers := make([]*Provider, 0, len(docs))
	for _, doc := range docs {
		providers = append(providers, fromDocument(doc))
	}
	return providers, nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*Provider, error) {
	doc, err := r.store.Get(ctx, collection, id)
	if err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return nil, ErrProviderNotFound
		}
		return nil, err
	}
	return fromDocument(doc), nil
}

func (r *repository) Create(ctx context.Context, p *Provider) (*Provider, error) {
	doc, err := r.store.Insert(ctx, collection, toFields(p))
	if err != nil {
		return nil, err
	}
	return fromDocument(doc), nil
}

func (r *repository) Update(ctx context.Context, id string, patch map[string]interface{}) (*Provider, error) {
	doc, err := r.store.Update(ctx, collection, id, patch)
	if err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return nil, ErrProviderNotFound
		}
		return nil, err
	}
	return fromDocument(doc), nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	if err := r.store.Delete(ctx, collection, id); err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return ErrProviderNotFound
		}
		return err
	}
	return nil
}

func toFields(p *Provider) map[string]interface{} {
	return map[string]interface{}{
		"name":     p.Name,
		"phone":    p.Phone,
		"email":    p.Email,
		"category": p.Category,
		"city":     p.City,
		"active":   p.Active,
		"rating":   p.Rating,
		"notes":    p.Notes,
	}
}

func fromDocument(doc *docstore.Document) *Provider {
	return &Provider{
		ID:        doc.ID,
		Name:      str(doc.Fields["name"]),
		Phone:     str(doc.Fields["phone"]),
		Email:     str(doc.Fields["email"]),
		Category:  str(doc.Fields["category"]),
		City:      str(doc.Fields["city"]),
		Active:    boolean(doc.Fields["active"]),
		Rating:    num(doc.Fields["rating"]),
		Notes:     str(doc.Fields["notes"]),
		CreatedAt: doc.CreatedAt,
		UpdatedAt: doc.UpdatedAt,
	}
}

func str(v interface{}) string {
	s, _ := v.(string)
	return s
}

func boolean(v interface{}) bool {
	b, _ := v.(bool)
	return b
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
