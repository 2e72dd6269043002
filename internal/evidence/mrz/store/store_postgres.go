package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"mrzgate/internal/evidence/mrz/metrics"
	"mrzgate/internal/evidence/mrz/models"
	"mrzgate/pkg/platform/sentinel"
)

// Schema creates the table PostgresStore writes to.
const Schema = `
CREATE TABLE IF NOT EXISTS mrz_documents (
	id              UUID PRIMARY KEY,
	format          TEXT NOT NULL,
	document_number TEXT NOT NULL,
	mrz             TEXT NOT NULL,
	valid           BOOLEAN NOT NULL,
	document        JSONB NOT NULL,
	checked_at      TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS mrz_documents_number_idx ON mrz_documents (document_number);
`

// PostgresStore persists parsed documents in PostgreSQL. Searchable fields
// get their own columns; the full document is kept as JSONB.
type PostgresStore struct {
	db      *sql.DB
	metrics *metrics.Metrics
}

// NewPostgresStore constructs a PostgreSQL-backed store. metrics may be nil.
func NewPostgresStore(db *sql.DB, metrics *metrics.Metrics) *PostgresStore {
	return &PostgresStore{db: db, metrics: metrics}
}

// Migrate applies Schema.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, Schema); err != nil {
		return fmt.Errorf("migrate mrz_documents: %w", classify(err))
	}
	return nil
}

// Save upserts doc by ID.
func (s *PostgresStore) Save(ctx context.Context, doc *models.ParsedDocument) error {
	if doc == nil {
		return errors.New("document is required")
	}
	start := time.Now()
	payload, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO mrz_documents (id, format, document_number, mrz, valid, document, checked_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE SET
			format = EXCLUDED.format,
			document_number = EXCLUDED.document_number,
			mrz = EXCLUDED.mrz,
			valid = EXCLUDED.valid,
			document = EXCLUDED.document,
			checked_at = EXCLUDED.checked_at`,
		doc.ID, doc.Format, doc.DocumentNumber, doc.MRZ, doc.Valid, payload, doc.CheckedAt,
	)
	s.metrics.ObserveStoreLatency("postgres", "save", time.Since(start))
	if err != nil {
		return fmt.Errorf("save document: %w", classify(err))
	}
	return nil
}

// FindByID loads a document by ID.
// Returns sentinel.ErrNotFound if no row matches.
func (s *PostgresStore) FindByID(ctx context.Context, id uuid.UUID) (*models.ParsedDocument, error) {
	start := time.Now()
	var payload []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT document FROM mrz_documents WHERE id = $1`, id,
	).Scan(&payload)
	s.metrics.ObserveStoreLatency("postgres", "find", time.Since(start))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find document: %w", classify(err))
	}
	var doc models.ParsedDocument
	if err := json.Unmarshal(payload, &doc); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	return &doc, nil
}

// classify marks connection-class failures (SQLSTATE class 08) as unavailable.
func classify(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code.Class() == "08" {
		return fmt.Errorf("%w: %w", sentinel.ErrUnavailable, err)
	}
	return err
}
