package adminclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/karyakarta/karyakarta-api/internal/pkg/httpclient"
)

// APIError is an error the server reported inside its response envelope.
// The message is passed through verbatim so operators see exactly what the
// server said.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api error: status %d", e.Status)
	}
	return e.Message
}

// envelope is the wire shape every admin endpoint responds with.
type envelope struct {
	OK    bool              `json:"ok"`
	Item  json.RawMessage   `json:"item"`
	Items []json.RawMessage `json:"items"`
	Error string            `json:"error"`
}

// Client talks to the admin API through the resilient HTTP client.
type Client struct {
	http    *httpclient.Client
	baseURL string
}

// New creates an admin API client. baseURL is the server root, without a
// trailing slash.
func New(hc *httpclient.Client, baseURL string) *Client {
	return &Client{http: hc, baseURL: strings.TrimRight(baseURL, "/")}
}

func (c *Client) url(path string) string {
	return c.baseURL + path
}

// GetItem fetches a single-item endpoint and returns the raw item payload.
func (c *Client) GetItem(ctx context.Context, path string) (json.RawMessage, error) {
	resp, err := c.http.Get(ctx, c.url(path))
	if err != nil {
		return nil, wrapTransportErr(err)
	}
	env, err := decodeEnvelope(resp)
	if err != nil {
		return nil, err
	}
	return env.Item, nil
}

func (c *Client) getItems(ctx context.Context, path string) ([]json.RawMessage, error) {
	resp, err := c.http.Get(ctx, c.url(path))
	if err != nil {
		return nil, wrapTransportErr(err)
	}
	env, err := decodeEnvelope(resp)
	if err != nil {
		return nil, err
	}
	return env.Items, nil
}

func (c *Client) postItem(ctx context.Context, path string, body interface{}) (json.RawMessage, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}
	resp, err := c.http.Post(ctx, c.url(path), payload)
	if err != nil {
		return nil, wrapTransportErr(err)
	}
	env, err := decodeEnvelope(resp)
	if err != nil {
		return nil, err
	}
	return env.Item, nil
}

func (c *Client) deleteByID(ctx context.Context, path, id string) error {
	payload, err := json.Marshal(map[string]string{"id": id})
	if err != nil {
		return err
	}
	resp, err := c.http.Delete(ctx, c.url(path), payload)
	if err != nil {
		return wrapTransportErr(err)
	}
	_, err = decodeEnvelope(resp)
	return err
}

func decodeEnvelope(resp *httpclient.Response) (*envelope, error) {
	var env envelope
	if err := json.Unmarshal(resp.Body, &env); err != nil {
		return nil, fmt.Errorf("malformed response: %w", err)
	}
	if !env.OK {
		return nil, &APIError{Status: resp.StatusCode, Message: env.Error}
	}
	return &env, nil
}

// wrapTransportErr surfaces the server's own error message when a non-2xx
// body carries an envelope. Offline and network errors pass through so
// callers can classify them.
func wrapTransportErr(err error) error {
	var httpErr *httpclient.HTTPError
	if errors.As(err, &httpErr) {
		var env envelope
		if json.Unmarshal(httpErr.Body, &env) == nil && env.Error != "" {
			return &APIError{Status: httpErr.StatusCode, Message: env.Error}
		}
		return &APIError{Status: httpErr.StatusCode, Message: http.StatusText(httpErr.StatusCode)}
	}
	return err
}
