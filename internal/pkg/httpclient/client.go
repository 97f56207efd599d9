// Package httpclient wraps outbound HTTP with connectivity awareness and
// exponential-backoff retry. Only GET and explicitly idempotent requests are
// retried; mutations run at most once so a flaky network can never double a
// side effect.
package httpclient

import (
	"bytes"
	"context"
	"errors"
	"io"
	"math"
	"net"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/karyakarta/karyakarta-api/internal/pkg/metrics"
)

const defaultTimeout = 30 * time.Second

// RetryConfig controls the retry loop for idempotent requests.
type RetryConfig struct {
	MaxRetries        int
	BaseDelay         time.Duration
	MaxDelay          time.Duration
	BackoffMultiplier float64
	RetryCondition    func(error) bool
}

// DefaultRetryConfig returns the standard policy: 3 attempts, 1s base delay
// doubling up to 10s, retrying transient failures only.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxRetries:        3,
		BaseDelay:         time.Second,
		MaxDelay:          10 * time.Second,
		BackoffMultiplier: 2,
		RetryCondition:    IsRetryable,
	}
}

// RequestOptions tunes a single request.
type RequestOptions struct {
	// Retry overrides the default policy. Ignored for non-idempotent requests.
	Retry *RetryConfig
	// Idempotent marks a non-GET request as safe to retry.
	Idempotent bool
	// Header entries are added to the request.
	Header http.Header
}

// Response is a fully-read HTTP response.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// Client performs HTTP requests through the shared network state.
type Client struct {
	http   *http.Client
	state  *NetState
	retry  RetryConfig
	header http.Header

	// sleep is swappable so tests can fake the backoff clock.
	sleep func(ctx context.Context, d time.Duration) error
}

// New creates a client bound to the given network state.
func New(state *NetState, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   10 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
	}

	return &Client{
		http: &http.Client{
			Timeout:   timeout,
			Transport: transport,
		},
		state:  state,
		retry:  DefaultRetryConfig(),
		header: make(http.Header),
		sleep:  sleepContext,
	}
}

// SetHeader adds a header to every request this client sends, such as a
// session cookie.
func (c *Client) SetHeader(key, value string) {
	c.header.Set(key, value)
}

// State exposes the shared network state for observers.
func (c *Client) State() *NetState {
	return c.state
}

// Get performs a retried GET.
func (c *Client) Get(ctx context.Context, url string) (*Response, error) {
	return c.Request(ctx, http.MethodGet, url, nil, nil)
}

// Post performs a single-attempt POST.
func (c *Client) Post(ctx context.Context, url string, body []byte) (*Response, error) {
	return c.Request(ctx, http.MethodPost, url, body, nil)
}

// Put performs a single-attempt PUT.
func (c *Client) Put(ctx context.Context, url string, body []byte) (*Response, error) {
	return c.Request(ctx, http.MethodPut, url, body, nil)
}

// Delete performs a single-attempt DELETE.
func (c *Client) Delete(ctx context.Context, url string, body []byte) (*Response, error) {
	return c.Request(ctx, http.MethodDelete, url, body, nil)
}

// Request performs an HTTP request. Fails fast with *OfflineError when the
// shared state reports offline. GET and opts.Idempotent requests retry per
// the configured policy; everything else executes at most once and surfaces
// the failure to the caller.
func (c *Client) Request(ctx context.Context, method, url string, body []byte, opts *RequestOptions) (*Response, error) {
	if st := c.state.GetState(); !st.Online {
		metrics.ClientFailuresTotal.WithLabelValues("offline").Inc()
		return nil, &OfflineError{Since: st.LastOffline}
	}

	retry := c.retry
	if opts != nil && opts.Retry != nil {
		retry = *opts.Retry
	}
	if retry.RetryCondition == nil {
		retry.RetryCondition = IsRetryable
	}

	attempts := retry.MaxRetries
	if attempts < 1 {
		attempts = 1
	}
	idempotent := method == http.MethodGet || (opts != nil && opts.Idempotent)
	if !idempotent {
		attempts = 1
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		metrics.ClientAttemptsTotal.WithLabelValues(method).Inc()

		resp, err := c.do(ctx, method, url, body, opts)
		if err == nil {
			c.state.resetRetries()
			return resp, nil
		}
		lastErr = err

		if attempt == attempts || !retry.RetryCondition(err) {
			break
		}

		c.state.recordRetry()
		metrics.ClientRetriesTotal.WithLabelValues(method).Inc()

		delay := backoffDelay(retry, attempt)
		log.Debug().
			Str("method", method).
			Str("url", url).
			Int("attempt", attempt).
			Dur("delay", delay).
			Err(err).
			Msg("Retrying request")

		if err := c.sleep(ctx, delay); err != nil {
			return nil, err
		}
	}

	metrics.ClientFailuresTotal.WithLabelValues(failureKind(lastErr)).Inc()
	return nil, lastErr
}

// do runs a single attempt, toggling the connecting flag for its duration.
func (c *Client) do(ctx context.Context, method, url string, body []byte, opts *RequestOptions) (*Response, error) {
	c.state.setConnecting(true)
	defer c.state.setConnecting(false)

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for key, values := range c.header {
		for _, v := range values {
			req.Header.Set(key, v)
		}
	}
	if opts != nil {
		for key, values := range opts.Header {
			for _, v := range values {
				req.Header.Add(key, v)
			}
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &HTTPError{StatusCode: resp.StatusCode, Body: respBody}
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       respBody,
	}, nil
}

// backoffDelay returns min(base * mult^(attempt-1), max).
func backoffDelay(retry RetryConfig, attempt int) time.Duration {
	mult := retry.BackoffMultiplier
	if mult <= 0 {
		mult = 1
	}
	delay := time.Duration(float64(retry.BaseDelay) * math.Pow(mult, float64(attempt-1)))
	if retry.MaxDelay > 0 && delay > retry.MaxDelay {
		delay = retry.MaxDelay
	}
	return delay
}

func failureKind(err error) string {
	var httpErr *HTTPError
	switch {
	case errors.As(err, &httpErr):
		if httpErr.Retryable() {
			return "transient"
		}
		return "terminal"
	case isTimeoutError(err), isNetworkError(err):
		return "network"
	default:
		return "other"
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
