package store

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"

	"mrzgate/internal/evidence/mrz/models"
	"mrzgate/pkg/platform/sentinel"
)

// InMemoryStore keeps parsed documents in a map guarded by a RWMutex.
type InMemoryStore struct {
	mu   sync.RWMutex
	docs map[uuid.UUID]models.ParsedDocument
}

// NewInMemoryStore creates an empty in-memory store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{docs: make(map[uuid.UUID]models.ParsedDocument)}
}

// Save stores a copy of doc, replacing any document with the same ID.
func (s *InMemoryStore) Save(_ context.Context, doc *models.ParsedDocument) error {
	if doc == nil {
		return errors.New("document is required")
	}
	stored := *doc
	stored.Checks = append([]models.CheckResult(nil), doc.Checks...)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[doc.ID] = stored
	return nil
}

// FindByID returns a copy of the stored document.
// Returns sentinel.ErrNotFound if no document has the ID.
func (s *InMemoryStore) FindByID(_ context.Context, id uuid.UUID) (*models.ParsedDocument, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.docs[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	doc.Checks = append([]models.CheckResult(nil), doc.Checks...)
	return &doc, nil
}
