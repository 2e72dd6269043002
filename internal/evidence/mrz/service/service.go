// Package service coordinates MRZ parsing with persistence, metrics and
// logging. The domain packages stay pure; this layer injects time, assigns
// IDs and translates errors for transport.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"mrzgate/internal/evidence/mrz/domain/document"
	"mrzgate/internal/evidence/mrz/domain/shared"
	"mrzgate/internal/evidence/mrz/metrics"
	"mrzgate/internal/evidence/mrz/models"
	"mrzgate/internal/evidence/mrz/store"
	dErrors "mrzgate/pkg/domain-errors"
	"mrzgate/pkg/platform/sentinel"
	"mrzgate/pkg/requestcontext"
)

const (
	// MaxInputBytes bounds a single MRZ input. A TD1 zone with CRLF
	// separators is 94 bytes; the slack allows surrounding whitespace.
	MaxInputBytes = 200
	// MaxBatchSize bounds ParseBatch.
	MaxBatchSize = 50

	defaultConcurrency = 8
)

// Service parses and stores machine-readable zones.
type Service struct {
	store       store.Store
	logger      *slog.Logger
	metrics     *metrics.Metrics
	concurrency int
}

// Option configures a Service.
type Option func(*Service)

// WithMetrics records parse metrics.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithConcurrency bounds how many documents ParseBatch parses at once.
func WithConcurrency(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.concurrency = n
		}
	}
}

// New constructs a Service.
func New(st store.Store, logger *slog.Logger, opts ...Option) (*Service, error) {
	if st == nil {
		return nil, errors.New("store is required")
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	s := &Service{
		store:       st,
		logger:      logger,
		concurrency: defaultConcurrency,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s, nil
}

// Parse parses one MRZ, persists the result and returns it. Invalid dates
// and check digit mismatches are reported on the result, not as errors.
func (s *Service) Parse(ctx context.Context, mrz string) (*models.ParsedDocument, error) {
	start := time.Now()
	requestID := requestcontext.RequestID(ctx)

	if len(mrz) > MaxInputBytes {
		s.metrics.IncrementRejected("too_long")
		return nil, dErrors.New(dErrors.CodeValidation, fmt.Sprintf("mrz must be at most %d bytes", MaxInputBytes))
	}

	doc, err := document.Parse(mrz, document.WithLogger(s.logger.With("request_id", requestID)))
	if err != nil {
		switch {
		case errors.Is(err, document.ErrEmptyInput):
			s.metrics.IncrementRejected("empty")
			return nil, dErrors.Wrap(err, dErrors.CodeValidation, "mrz is required")
		case errors.Is(err, document.ErrUnknownFormat):
			s.metrics.IncrementRejected("unknown_format")
			return nil, dErrors.Wrap(err, dErrors.CodeValidation, "mrz does not match TD1, TD2 or TD3")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to parse mrz")
	}

	parsed := toParsedDocument(uuid.New(), doc, requestcontext.Now(ctx))
	if err := s.store.Save(ctx, parsed); err != nil {
		s.logger.ErrorContext(ctx, "failed to store mrz document",
			"request_id", requestID,
			"document_id", parsed.ID,
			"error", err,
		)
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to store document")
	}

	s.record(parsed)
	s.metrics.ObserveParseLatency(time.Since(start))
	s.logger.InfoContext(ctx, "mrz parsed",
		"request_id", requestID,
		"document_id", parsed.ID,
		"format", parsed.Format,
		"valid", parsed.Valid,
		"birth_valid", parsed.DateOfBirth.Valid,
		"expiry_valid", parsed.DateOfExpiry.Valid,
	)
	return parsed, nil
}

func (s *Service) record(doc *models.ParsedDocument) {
	s.metrics.IncrementParsed(doc.Format, doc.Valid)
	s.metrics.IncrementDateField(document.CheckDateOfBirth, doc.DateOfBirth.Valid)
	s.metrics.IncrementDateField(document.CheckDateOfExpiry, doc.DateOfExpiry.Valid)
	for _, c := range doc.Checks {
		if !c.Valid {
			s.metrics.IncrementCheckFailure(c.Field)
		}
	}
}

// ParseBatch parses inputs concurrently and returns results in input order.
// The first failing input cancels the rest; its error names its index.
func (s *Service) ParseBatch(ctx context.Context, inputs []string) ([]*models.ParsedDocument, error) {
	if len(inputs) == 0 {
		return nil, dErrors.New(dErrors.CodeValidation, "at least one mrz is required")
	}
	if len(inputs) > MaxBatchSize {
		return nil, dErrors.New(dErrors.CodeValidation, fmt.Sprintf("at most %d mrz values per batch", MaxBatchSize))
	}

	// One reference time for the whole batch.
	ctx = requestcontext.WithTime(ctx, requestcontext.Now(ctx))

	results := make([]*models.ParsedDocument, len(inputs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for i, input := range inputs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			doc, err := s.Parse(gctx, input)
			if err != nil {
				return dErrors.Wrap(err, dErrors.CodeOf(err), fmt.Sprintf("mrz[%d]", i))
			}
			results[i] = doc
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, dErrors.Wrap(err, dErrors.CodeTimeout, "batch aborted")
		}
		return nil, err
	}
	return results, nil
}

// Get loads a previously parsed document.
func (s *Service) Get(ctx context.Context, rawID string) (*models.ParsedDocument, error) {
	id, err := uuid.Parse(rawID)
	if err != nil {
		return nil, dErrors.New(dErrors.CodeValidation, "id must be a UUID")
	}
	doc, err := s.store.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.Wrap(err, dErrors.CodeNotFound, "document not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load document")
	}
	return doc, nil
}

// SortByExpiry orders documents by their MRZ expiry field using the flat
// two-digit ordering of shared.Date. Equal expiries keep their order.
func SortByExpiry(docs []*models.ParsedDocument) {
	slices.SortStableFunc(docs, func(a, b *models.ParsedDocument) int {
		return shared.CompareDates(
			shared.ParseDateField(a.DateOfExpiry.MRZ),
			shared.ParseDateField(b.DateOfExpiry.MRZ),
		)
	})
}
