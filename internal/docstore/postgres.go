package docstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

const schema = `
CREATE TABLE IF NOT EXISTS documents (
	collection TEXT NOT NULL,
	id         TEXT NOT NULL,
	fields     JSONB NOT NULL DEFAULT '{}'::jsonb,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	PRIMARY KEY (collection, id)
);
CREATE INDEX IF NOT EXISTS idx_documents_collection_created
	ON documents (collection, created_at DESC);
`

// PostgresStore keeps documents in a single JSONB table.
type PostgresStore struct {
	db *sqlx.DB
}

// NewPostgresStore connects to PostgreSQL and ensures the schema exists.
func NewPostgresStore(databaseURL string) (*PostgresStore, error) {
	db, err := sqlx.Connect("postgres", databaseURL)
	if err != nil {
		return nil, err
	}

	// Configure connection pool
	db.SetMaxOpenConns(50)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(1 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		return nil, err
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return nil, fmt.Errorf("failed to ensure documents schema: %w", err)
	}

	log.Info().Msg("Connected to PostgreSQL")
	return &PostgresStore{db: db}, nil
}

// Close closes the database connection
func (s *PostgresStore) Close() {
	if err := s.db.Close(); err != nil {
		log.Error().Err(err).Msg("Error closing PostgreSQL connection")
	}
}

type docRow struct {
	ID        string    `db:"id"`
	Fields    []byte    `db:"fields"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func (r *docRow) toDocument() (*Document, error) {
	fields := make(map[string]interface{})
	if len(r.Fields) > 0 {
		if err := json.Unmarshal(r.Fields, &fields); err != nil {
			return nil, fmt.Errorf("failed to decode document %s: %w", r.ID, err)
		}
	}
	return &Document{ID: r.ID, Fields: fields, CreatedAt: r.CreatedAt, UpdatedAt: r.UpdatedAt}, nil
}

// listQuery builds the list statement. A limit <= 0 omits the LIMIT clause
// so callers fetching everything (exports, dashboard totals) see every row.
func listQuery(collection string, limit int) (string, []interface{}) {
	query := `
		SELECT id, fields, created_at, updated_at FROM documents
		WHERE collection = $1
		ORDER BY created_at DESC, id ASC
	`
	args := []interface{}{collection}
	if limit > 0 {
		query += ` LIMIT $2`
		args = append(args, limit)
	}
	return query, args
}

func (s *PostgresStore) List(ctx context.Context, collection string, limit int) ([]*Document, error) {
	query, args := listQuery(collection, limit)
	var rows []docRow
	if err := s.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, err
	}

	docs := make([]*Document, 0, len(rows))
	for i := range rows {
		doc, err := rows[i].toDocument()
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

func (s *PostgresStore) Get(ctx context.Context, collection, id string) (*Document, error) {
	query := `SELECT id, fields, created_at, updated_at FROM documents WHERE collection = $1 AND id = $2`
	var row docRow
	if err := s.db.GetContext(ctx, &row, query, collection, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return row.toDocument()
}

func (s *PostgresStore) Insert(ctx context.Context, collection string, fields map[string]interface{}) (*Document, error) {
	raw, err := json.Marshal(fields)
	if err != nil {
		return nil, fmt.Errorf("failed to encode fields: %w", err)
	}

	id := uuid.New().String()
	query := `
		INSERT INTO documents (collection, id, fields)
		VALUES ($1, $2, $3)
		RETURNING id, fields, created_at, updated_at
	`
	var row docRow
	if err := s.db.GetContext(ctx, &row, query, collection, id, raw); err != nil {
		return nil, err
	}
	return row.toDocument()
}

func (s *PostgresStore) Update(ctx context.Context, collection, id string, patch map[string]interface{}) (*Document, error) {
	raw, err := json.Marshal(patch)
	if err != nil {
		return nil, fmt.Errorf("failed to encode patch: %w", err)
	}

	// GREATEST keeps updated_at monotonic even across clock skew.
	query := `
		UPDATE documents
		SET fields = fields || $3::jsonb,
		    updated_at = GREATEST(updated_at, NOW())
		WHERE collection = $1 AND id = $2
		RETURNING id, fields, created_at, updated_at
	`
	var row docRow
	if err := s.db.GetContext(ctx, &row, query, collection, id, raw); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return row.toDocument()
}

func (s *PostgresStore) Delete(ctx context.Context, collection, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM documents WHERE collection = $1 AND id = $2`, collection, id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
