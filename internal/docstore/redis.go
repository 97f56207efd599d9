package docstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// RedisStore keeps documents as JSON values with a per-collection id set.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore connects to Redis and verifies the connection.
func NewRedisStore(redisURL string) (*RedisStore, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}

	opt.PoolSize = 50
	opt.MinIdleConns = 10
	opt.DialTimeout = 5 * time.Second
	opt.ReadTimeout = 3 * time.Second
	opt.WriteTimeout = 3 * time.Second

	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := client.Ping(ctx).Result(); err != nil {
		return nil, err
	}

	log.Info().Msg("Connected to Redis")
	return &RedisStore{client: client}, nil
}

// Close closes the Redis connection
func (s *RedisStore) Close() {
	if err := s.client.Close(); err != nil {
		log.Error().Err(err).Msg("Error closing Redis connection")
	}
}

type redisDoc struct {
	ID        string                 `json:"id"`
	Fields    map[string]interface{} `json:"fields"`
	CreatedAt time.Time              `json:"created_at"`
	UpdatedAt time.Time              `json:"updated_at"`
}

func docKey(collection, id string) string {
	return fmt.Sprintf("doc:%s:%s", collection, id)
}

func setKey(collection string) string {
	return fmt.Sprintf("docs:%s", collection)
}

func (s *RedisStore) List(ctx context.Context, collection string, limit int) ([]*Document, error) {
	ids, err := s.client.SMembers(ctx, setKey(collection)).Result()
	if err != nil {
		return nil, err
	}

	docs := make([]*Document, 0, len(ids))
	for _, id := range ids {
		doc, err := s.Get(ctx, collection, id)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				// Id set out of sync with the value; self-heal.
				s.client.SRem(ctx, setKey(collection), id)
				continue
			}
			return nil, err
		}
		docs = append(docs, doc)
	}

	// SMembers returns arbitrary order; restore newest-first before the
	// limit so Redis pages the same way the other backends do.
	return sortAndLimit(docs, limit), nil
}

func (s *RedisStore) Get(ctx context.Context, collection, id string) (*Document, error) {
	raw, err := s.client.Get(ctx, docKey(collection, id)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var rd redisDoc
	if err := json.Unmarshal([]byte(raw), &rd); err != nil {
		return nil, fmt.Errorf("failed to decode document %s/%s: %w", collection, id, err)
	}
	return &Document{ID: rd.ID, Fields: rd.Fields, CreatedAt: rd.CreatedAt, UpdatedAt: rd.UpdatedAt}, nil
}

func (s *RedisStore) Insert(ctx context.Context, collection string, fields map[string]interface{}) (*Document, error) {
	now := time.Now().UTC()
	doc := &Document{
		ID:        uuid.New().String(),
		Fields:    cloneFields(fields),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.put(ctx, collection, doc); err != nil {
		return nil, err
	}
	if err := s.client.SAdd(ctx, setKey(collection), doc.ID).Err(); err != nil {
		return nil, err
	}
	return doc, nil
}

func (s *RedisStore) Update(ctx context.Context, collection, id string, patch map[string]interface{}) (*Document, error) {
	doc, err := s.Get(ctx, collection, id)
	if err != nil {
		return nil, err
	}

	for k, v := range patch {
		doc.Fields[k] = v
	}
	if now := time.Now().UTC(); now.After(doc.UpdatedAt) {
		doc.UpdatedAt = now
	}

	if err := s.put(ctx, collection, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func (s *RedisStore) Delete(ctx context.Context, collection, id string) error {
	removed, err := s.client.Del(ctx, docKey(collection, id)).Result()
	if err != nil {
		return err
	}
	if removed == 0 {
		return ErrNotFound
	}
	return s.client.SRem(ctx, setKey(collection), id).Err()
}

func (s *RedisStore) put(ctx context.Context, collection string, doc *Document) error {
	raw, err := json.Marshal(redisDoc{
		ID:        doc.ID,
		Fields:    doc.Fields,
		CreatedAt: doc.CreatedAt,
		UpdatedAt: doc.UpdatedAt,
	})
	if err != nil {
		return fmt.Errorf("failed to encode document: %w", err)
	}
	return s.client.Set(ctx, docKey(collection, doc.ID), raw, 0).Err()
}
