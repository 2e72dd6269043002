package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"mrzgate/internal/evidence/mrz/metrics"
	"mrzgate/internal/evidence/mrz/models"
	"mrzgate/pkg/platform/sentinel"
)

const (
	// Redis key prefix for parsed documents
	documentKeyPrefix = "mrz:doc:"
)

// RedisStore keeps parsed documents in Redis as JSON with a TTL, for
// deployments where several instances serve GET /mrz/{id}.
type RedisStore struct {
	client  *redis.Client
	ttl     time.Duration
	metrics *metrics.Metrics
}

// RedisStoreOption configures a RedisStore instance.
type RedisStoreOption func(*RedisStore)

// WithRedisMetrics records store latency.
func WithRedisMetrics(m *metrics.Metrics) RedisStoreOption {
	return func(s *RedisStore) {
		s.metrics = m
	}
}

// NewRedisStore constructs a Redis-backed store. A ttl of zero keeps
// documents until evicted.
func NewRedisStore(client *redis.Client, ttl time.Duration, opts ...RedisStoreOption) *RedisStore {
	s := &RedisStore{client: client, ttl: ttl}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Save writes doc with SET and the store TTL.
func (s *RedisStore) Save(ctx context.Context, doc *models.ParsedDocument) error {
	if doc == nil {
		return errors.New("document is required")
	}
	start := time.Now()
	payload, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}
	err = s.client.Set(ctx, documentKeyPrefix+doc.ID.String(), payload, s.ttl).Err()
	s.metrics.ObserveStoreLatency("redis", "save", time.Since(start))
	if err != nil {
		return fmt.Errorf("save document: %w", err)
	}
	return nil
}

// FindByID loads a document by ID.
// Returns sentinel.ErrNotFound if the key does not exist or has expired.
func (s *RedisStore) FindByID(ctx context.Context, id uuid.UUID) (*models.ParsedDocument, error) {
	start := time.Now()
	payload, err := s.client.Get(ctx, documentKeyPrefix+id.String()).Bytes()
	s.metrics.ObserveStoreLatency("redis", "find", time.Since(start))
	if errors.Is(err, redis.Nil) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find document: %w", err)
	}
	var doc models.ParsedDocument
	if err := json.Unmarshal(payload, &doc); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	return &doc, nil
}
