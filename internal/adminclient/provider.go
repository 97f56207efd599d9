package adminclient

import (
	"context"
	"encoding/json"
	"errors"
	"net/url"
	"strconv"
	"strings"

	"github.com/karyakarta/karyakarta-api/internal/controller"
)

// Provider mirrors the server's provider resource with timestamps normalized.
type Provider struct {
	ID        string
	Name      string
	Phone     string
	Email     string
	Category  string
	City      string
	Active    bool
	Rating    float64
	Notes     string
	CreatedAt Timestamp
	UpdatedAt Timestamp
}

func (p Provider) RecordID() string { return p.ID }

func (p Provider) SearchText() string {
	return strings.Join([]string{p.Name, p.Phone, p.Email, p.City, p.Notes}, " ")
}

// StatusValue maps activity onto the controller's status filter.
func (p Provider) StatusValue() string {
	if p.Active {
		return "active"
	}
	return "inactive"
}

// ValidateProvider rejects a provider locally before any network call.
func ValidateProvider(p Provider) error {
	if strings.TrimSpace(p.Name) == "" {
		return errors.New("name is required")
	}
	if strings.TrimSpace(p.Phone) == "" {
		return errors.New("phone is required")
	}
	if strings.TrimSpace(p.Category) == "" {
		return errors.New("category is required")
	}
	return nil
}

// ProviderClient drives the provider admin endpoints.
type ProviderClient struct {
	api *Client
}

// NewProviderClient creates a provider client over the shared API client.
func NewProviderClient(api *Client) *ProviderClient {
	return &ProviderClient{api: api}
}

// List fetches providers, newest first.
func (c *ProviderClient) List(ctx context.Context, params controller.ListParams) ([]Provider, error) {
	q := url.Values{}
	if params.Limit > 0 {
		q.Set("limit", strconv.Itoa(params.Limit))
	}
	switch params.Status {
	case "active":
		q.Set("active", "true")
	case "inactive":
		q.Set("active", "false")
	}
	path := "/api/admin/providers/list"
	if encoded := q.Encode(); encoded != "" {
		path += "?" + encoded
	}

	raws, err := c.api.getItems(ctx, path)
	if err != nil {
		return nil, err
	}
	providers := make([]Provider, 0, len(raws))
	for _, raw := range raws {
		providers = append(providers, decodeProvider(raw))
	}
	return providers, nil
}

// Create onboards a new provider.
func (c *ProviderClient) Create(ctx context.Context, p Provider) (Provider, error) {
	body := map[string]interface{}{
		"name":     p.Name,
		"phone":    p.Phone,
		"category": p.Category,
		"active":   p.Active,
	}
	if p.Email != "" {
		body["email"] = p.Email
	}
	if p.City != "" {
		body["city"] = p.City
	}
	if p.Rating != 0 {
		body["rating"] = p.Rating
	}
	if p.Notes != "" {
		body["notes"] = p.Notes
	}

	raw, err := c.api.postItem(ctx, "/api/admin/providers/create", body)
	if err != nil {
		return Provider{}, err
	}
	return decodeProvider(raw), nil
}

// Update patches one provider.
func (c *ProviderClient) Update(ctx context.Context, id string, patch map[string]interface{}) (Provider, error) {
	body := make(map[string]interface{}, len(patch)+1)
	for k, v := range patch {
		body[k] = v
	}
	body["id"] = id

	raw, err := c.api.postItem(ctx, "/api/admin/providers/update", body)
	if err != nil {
		return Provider{}, err
	}
	return decodeProvider(raw), nil
}

// Delete removes one provider.
func (c *ProviderClient) Delete(ctx context.Context, id string) error {
	return c.api.deleteByID(ctx, "/api/admin/providers/delete", id)
}

func decodeProvider(raw json.RawMessage) Provider {
	var fields map[string]interface{}
	if err := json.Unmarshal(raw, &fields); err != nil {
		return Provider{CreatedAt: TimeUnknown, UpdatedAt: TimeUnknown}
	}

	active, _ := fields["active"].(bool)
	return Provider{
		ID:        stringField(fields, "id"),
		Name:      stringField(fields, "name"),
		Phone:     stringField(fields, "phone"),
		Email:     stringField(fields, "email"),
		Category:  stringField(fields, "category"),
		City:      stringField(fields, "city"),
		Active:    active,
		Rating:    floatField(fields, "rating"),
		Notes:     stringField(fields, "notes"),
		CreatedAt: NormalizeTimestamp(fields["created_at"]),
		UpdatedAt: NormalizeTimestamp(fields["updated_at"]),
	}
}
