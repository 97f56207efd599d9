package payout

import (
	"context"
	"errors"

	"github.com/karyakarta/karyakarta-api/internal/docstore"
)

const collection = "payouts"

// Repository defines payout data access
type Repository interface {
	List(ctx context.Context, limit int) ([]*Payout, error)
	GetByID(ctx context.Context, id string) (*Payout, error)
	Create(ctx context.Context, p *Payout) (*Payout, error)
	Update(ctx context.Context, id string, patch map[string]interface{}) (*Payout, error)
	Delete(ctx context.Context, id string) error
}

type repository struct {
	store docstore.Store
}

// NewRepository creates payout repository
func NewRepository(store docstore.Store) Repository {
	return &repository{store: store}
}

func (r *repository) List(ctx context.Context, limit int) ([]*Payout, error) {
	docs, err := r.store.List(ctx, collection, limit)
	if err != nil {
		return nil, err
	}
	payouts := make([]*Payout, 0, len(docs))
	for _, doc := range docs {
		payouts = append(payouts, fromDocument(doc))
	}
	return payouts, nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*Payout, error) {
	doc, err := r.store.Get(ctx, collection, id)
	if err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return nil, ErrPayoutNotFound
		}
		return nil, err
	}
	return fromDocument(doc), nil
}

func (r *repository) Create(ctx context.Context, p *Payout) (*Payout, error) {
	doc, err := r.store.Insert(ctx, collection, toFields(p))
	if err != nil {
		return nil, err
	}
	return fromDocument(doc), nil
}

func (r *repository) Update(ctx context.Context, id string, patch map[string]interface{}) (*Payout, error) {
	doc, err := r.store.Update(ctx, collection, id, patch)
	if err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return nil, ErrPayoutNotFound
		}
		return nil, err
	}
	return fromDocument(doc), nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	if err := r.store.Delete(ctx, collection, id); err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return ErrPayoutNotFound
		}
		return err
	}
	return nil
}

func toFields(p *Payout) map[string]interface{} {
	return map[string]interface{}{
		"provider_id": p.ProviderID,
		"amount":      p.Amount,
		"currency":    p.Currency,
		"status":      string(p.Status),
		"method":      p.Method,
		"reference":   p.Reference,
		"notes":       p.Notes,
	}
}

func fromDocument(doc *docstore.Document) *Payout {
	p := &Payout{
		ID:         doc.ID,
		ProviderID: str(doc.Fields["provider_id"]),
		Amount:     num(doc.Fields["amount"]),
		Currency:   str(doc.Fields["currency"]),
		Status:     Status(str(doc.Fields["status"])),
		Method:     str(doc.Fields["method"]),
		Reference:  str(doc.Fields["reference"]),
		Notes:      str(doc.Fields["notes"]),
		CreatedAt:  doc.CreatedAt,
		UpdatedAt:  doc.UpdatedAt,
	}
	if p.Currency == "" {
		p.Currency = DefaultCurrency
	}
	if p.Status == "" {
		p.Status = StatusPending
	}
	return p
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
