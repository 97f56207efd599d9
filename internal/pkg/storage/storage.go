package storage

import (
	"context"
	"io"
)

// Archive defines the minimal interface for export archive backends.
// Intentionally simple: Put an export file, Delete it, get its URL.
type Archive interface {
	// Put stores an export at the given key.
	Put(ctx context.Context, key string, reader io.Reader, contentType string) error

	// Delete removes an export by key. Returns nil if it doesn't exist.
	Delete(ctx context.Context, key string) error

	// GetURL returns the public URL for an export given its key.
	GetURL(key string) string
}

// Config holds archive backend configuration.
type Config struct {
	// Local
	BasePath string
	BaseURL  string

	// S3
	S3Region    string
	S3Bucket    string
	S3AccessKey string
	S3SecretKey string
	S3Endpoint  string
}
