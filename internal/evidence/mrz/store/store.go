// Package store persists parsed MRZ documents.
//
// Three implementations share the Store contract: InMemoryStore for tests
// and single-instance deployments, PostgresStore for durable storage and
// RedisStore for short-lived results shared across instances. Every
// implementation returns sentinel.ErrNotFound for unknown or expired IDs.
package store

import (
	"context"

	"github.com/google/uuid"

	"mrzgate/internal/evidence/mrz/models"
)

// Store persists parsed documents by ID.
type Store interface {
	Save(ctx context.Context, doc *models.ParsedDocument) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.ParsedDocument, error)
}
