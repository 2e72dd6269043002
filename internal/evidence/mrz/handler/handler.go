package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"mrzgate/internal/evidence/mrz/models"
	"mrzgate/pkg/platform/httputil"
	"mrzgate/pkg/requestcontext"
)

// Service defines the interface for MRZ operations.
type Service interface {
	Parse(ctx context.Context, mrz string) (*models.ParsedDocument, error)
	ParseBatch(ctx context.Context, inputs []string) ([]*models.ParsedDocument, error)
	Get(ctx context.Context, id string) (*models.ParsedDocument, error)
}

// Handler wires MRZ endpoints to the MRZ service.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New constructs an MRZ handler with its dependencies.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Register mounts MRZ endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/mrz/parse", h.HandleParse)
	r.Post("/mrz/parse/batch", h.HandleParseBatch)
	r.Get("/mrz/{id}", h.HandleGet)
}

// HandleParse handles POST /mrz/parse requests.
func (h *Handler) HandleParse(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	start := time.Now()

	req, ok := httputil.DecodeAndPrepare[ParseRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	doc, err := h.service.Parse(ctx, req.MRZ)
	if err != nil {
		h.logger.WarnContext(ctx, "mrz parse failed",
			"request_id", requestID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "mrz parse served",
		"request_id", requestID,
		"document_id", doc.ID,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	httputil.WriteJSON(w, http.StatusOK, FromDocument(doc))
}

// HandleParseBatch handles POST /mrz/parse/batch requests.
func (h *Handler) HandleParseBatch(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[BatchParseRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	docs, err := h.service.ParseBatch(ctx, req.MRZ)
	if err != nil {
		h.logger.WarnContext(ctx, "mrz batch parse failed",
			"request_id", requestID,
			"count", len(req.MRZ),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	resp := BatchResponse{Documents: make([]DocumentResponse, 0, len(docs))}
	for _, doc := range docs {
		resp.Documents = append(resp.Documents, FromDocument(doc))
	}
	httputil.WriteJSON(w, http.StatusOK, resp)
}

// HandleGet handles GET /mrz/{id} requests.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	doc, err := h.service.Get(ctx, chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromDocument(doc))
}
