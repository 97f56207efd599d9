package adminclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/karyakarta/karyakarta-api/internal/controller"
)

// Payout mirrors the server's payout resource with timestamps normalized.
type Payout struct {
	ID         string
	ProviderID string
	Amount     float64
	Currency   string
	Status     string
	Method     string
	Reference  string
	Notes      string
	CreatedAt  Timestamp
	UpdatedAt  Timestamp
}

func (p Payout) RecordID() string { return p.ID }

func (p Payout) SearchText() string {
	return strings.Join([]string{p.ProviderID, p.Method, p.Reference, p.Notes}, " ")
}

func (p Payout) StatusValue() string { return p.Status }

// ValidatePayout rejects a payout locally before any network call.
func ValidatePayout(p Payout) error {
	if strings.TrimSpace(p.ProviderID) == "" {
		return errors.New("provider is required")
	}
	if p.Amount <= 0 {
		return errors.New("amount must be greater than 0")
	}
	return nil
}

// PayoutClient drives the payout admin endpoints.
type PayoutClient struct {
	api *Client
}

// NewPayoutClient creates a payout client over the shared API client.
func NewPayoutClient(api *Client) *PayoutClient {
	return &PayoutClient{api: api}
}

// List fetches payouts, newest first.
func (c *PayoutClient) List(ctx context.Context, params controller.ListParams) ([]Payout, error) {
	q := url.Values{}
	if params.Limit > 0 {
		q.Set("limit", strconv.Itoa(params.Limit))
	}
	if params.Status != "" {
		q.Set("status", params.Status)
	}
	path := "/api/admin/payouts/list"
	if encoded := q.Encode(); encoded != "" {
		path += "?" + encoded
	}

	raws, err := c.api.getItems(ctx, path)
	if err != nil {
		return nil, err
	}
	payouts := make([]Payout, 0, len(raws))
	for _, raw := range raws {
		payouts = append(payouts, decodePayout(raw))
	}
	return payouts, nil
}

// Create records a new payout.
func (c *PayoutClient) Create(ctx context.Context, p Payout) (Payout, error) {
	body := map[string]interface{}{
		"provider_id": p.ProviderID,
		"amount":      p.Amount,
	}
	if p.Currency != "" {
		body["currency"] = p.Currency
	}
	if p.Status != "" {
		body["status"] = p.Status
	}
	if p.Method != "" {
		body["method"] = p.Method
	}
	if p.Reference != "" {
		body["reference"] = p.Reference
	}
	if p.Notes != "" {
		body["notes"] = p.Notes
	}

	raw, err := c.api.postItem(ctx, "/api/admin/payouts/create", body)
	if err != nil {
		return Payout{}, err
	}
	return decodePayout(raw), nil
}

// Update patches one payout.
func (c *PayoutClient) Update(ctx context.Context, id string, patch map[string]interface{}) (Payout, error) {
	body := make(map[string]interface{}, len(patch)+1)
	for k, v := range patch {
		body[k] = v
	}
	body["id"] = id

	raw, err := c.api.postItem(ctx, "/api/admin/payouts/update", body)
	if err != nil {
		return Payout{}, err
	}
	return decodePayout(raw), nil
}

// Delete removes one payout.
func (c *PayoutClient) Delete(ctx context.Context, id string) error {
	return c.api.deleteByID(ctx, "/api/admin/payouts/delete", id)
}

// Export asks the server to archive a CSV snapshot and returns its location.
func (c *PayoutClient) Export(ctx context.Context) (*ExportResult, error) {
	raw, err := c.api.GetItem(ctx, "/api/admin/payouts/export")
	if err != nil {
		return nil, err
	}
	var result ExportResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, fmt.Errorf("malformed export response: %w", err)
	}
	return &result, nil
}

// ExportResult describes a stored CSV export.
type ExportResult struct {
	Key   string `json:"key"`
	URL   string `json:"url"`
	Count int    `json:"count"`
}

// decodePayout tolerates partial records. Missing currency reads as INR and
// missing status as pending, matching what the server assumes on write.
func decodePayout(raw json.RawMessage) Payout {
	var fields map[string]interface{}
	if err := json.Unmarshal(raw, &fields); err != nil {
		return Payout{CreatedAt: TimeUnknown, UpdatedAt: TimeUnknown}
	}

	p := Payout{
		ID:         stringField(fields, "id"),
		ProviderID: stringField(fields, "provider_id"),
		Amount:     floatField(fields, "amount"),
		Currency:   stringField(fields, "currency"),
		Status:     stringField(fields, "status"),
		Method:     stringField(fields, "method"),
		Reference:  stringField(fields, "reference"),
		Notes:      stringField(fields, "notes"),
		CreatedAt:  NormalizeTimestamp(fields["created_at"]),
		UpdatedAt:  NormalizeTimestamp(fields["updated_at"]),
	}
	if p.Currency == "" {
		p.Currency = "INR"
	}
	if p.Status == "" {
		p.Status = "pending"
	}
	return p
}

func stringField(m map[string]interface{}, key string) string {
	s, _ := m[key].(string)
	return s
}

func floatField(m map[string]interface{}, key string) float64 {
	switch n := m[key].(type) {
	case float64:
		return n
	case json.Number:
		f, _ := n.Float64()
		return f
	default:
		return 0
	}
}
