package httpclient

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"os"
	"syscall"
	"time"
)

// OfflineError is returned without touching the network when the shared
// network state reports offline.
type OfflineError struct {
	Since time.Time
}

func (e *OfflineError) Error() string {
	if e.Since.IsZero() {
		return "offline: no network connectivity"
	}
	return fmt.Sprintf("offline: no network connectivity since %s", e.Since.Format(time.RFC3339))
}

// HTTPError is a non-2xx response. 5xx, 408 and 429 are transient, every
// other status is terminal.
type HTTPError struct {
	StatusCode int
	Body       []byte
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("http error: status=%d body=%s", e.StatusCode, truncate(e.Body, 256))
}

// Retryable reports whether the status is worth retrying.
func (e *HTTPError) Retryable() bool {
	switch {
	case e.StatusCode >= 500:
		return true
	case e.StatusCode == http.StatusRequestTimeout:
		return true
	case e.StatusCode == http.StatusTooManyRequests:
		return true
	default:
		return false
	}
}

// IsRetryable classifies an error as transient: transport/network failures
// and retryable HTTP statuses. Everything else is terminal.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}

	var offline *OfflineError
	if errors.As(err, &offline) {
		return false
	}

	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.Retryable()
	}

	return isTimeoutError(err) || isNetworkError(err)
}

func isTimeoutError(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	if errors.Is(err, os.ErrDeadlineExceeded) {
		return true
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	return false
}

func isNetworkError(err error) bool {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		err = urlErr.Err
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return true
	}
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return true
	}

	if errors.Is(err, syscall.ECONNREFUSED) ||
		errors.Is(err, syscall.ECONNRESET) ||
		errors.Is(err, syscall.ENETUNREACH) ||
		errors.Is(err, syscall.EHOSTUNREACH) {
		return true
	}

	return false
}

func truncate(b []byte, maxLen int) string {
	if len(b) > maxLen {
		return string(b[:maxLen]) + "...<truncated>"
	}
	return string(b)
}
