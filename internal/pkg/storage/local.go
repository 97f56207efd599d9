package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// LocalArchive implements Archive on the local file system
type LocalArchive struct {
	basePath string
	baseURL  string
}

// NewLocalArchive creates a new local archive instance
func NewLocalArchive(basePath, baseURL string) (*LocalArchive, error) {
	// Ensure base directory exists
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create archive directory: %w", err)
	}

	return &LocalArchive{
		basePath: basePath,
		baseURL:  baseURL,
	}, nil
}

// Put stores an export locally
func (a *LocalArchive) Put(ctx context.Context, key string, reader io.Reader, contentType string) error {
	fullPath := filepath.Join(a.basePath, key)

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	file, err := os.Create(fullPath)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	if _, err := io.Copy(file, reader); err != nil {
		os.Remove(fullPath) // Cleanup on error
		return fmt.Errorf("failed to write file: %w", err)
	}

	return nil
}

// Delete removes an export from local storage
func (a *LocalArchive) Delete(ctx context.Context, key string) error {
	fullPath := filepath.Join(a.basePath, key)
	if err := os.Remove(fullPath); err != nil {
		if os.IsNotExist(err) {
			return nil // Already deleted
		}
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

// GetURL returns the URL for a locally archived export
func (a *LocalArchive) GetURL(key string) string {
	return fmt.Sprintf("%s/%s", a.baseURL, key)
}
