// Package docstore is the narrow contract the admin routes speak to the
// backing document database. Documents are schemaless field maps; the store
// assigns ids and maintains the created/updated timestamps, keeping
// updated >= created at all times.
package docstore

import (
	"context"
	"errors"
	"sort"
	"time"
)

var ErrNotFound = errors.New("document not found")

// Document is a single stored record.
type Document struct {
	ID        string
	Fields    map[string]interface{}
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Store defines document database access.
type Store interface {
	// List returns documents from the collection, newest first (id as
	// tiebreak). A limit <= 0 returns everything.
	List(ctx context.Context, collection string, limit int) ([]*Document, error)

	// Get returns a document by id, or ErrNotFound.
	Get(ctx context.Context, collection, id string) (*Document, error)

	// Insert stores a new document, assigning id and timestamps.
	Insert(ctx context.Context, collection string, fields map[string]interface{}) (*Document, error)

	// Update merges patch into the document's fields and bumps the updated
	// timestamp. Returns the updated document or ErrNotFound.
	Update(ctx context.Context, collection, id string, patch map[string]interface{}) (*Document, error)

	// Delete removes a document. Returns ErrNotFound if it doesn't exist.
	Delete(ctx context.Context, collection, id string) error
}

// sortAndLimit orders documents newest first with id as tiebreak and applies
// the limit, in place. Every store backend returns this ordering.
func sortAndLimit(docs []*Document, limit int) []*Document {
	sort.Slice(docs, func(i, j int) bool {
		if docs[i].CreatedAt.Equal(docs[j].CreatedAt) {
			return docs[i].ID < docs[j].ID
		}
		return docs[i].CreatedAt.After(docs[j].CreatedAt)
	})
	if limit > 0 && len(docs) > limit {
		docs = docs[:limit]
	}
	return docs
}

// cloneFields copies a field map so callers can't alias stored state.
func cloneFields(fields map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(fields))
	for k, v := range fields {
		out[k] = v
	}
	return out
}
