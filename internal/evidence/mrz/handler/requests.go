package handler

import (
	"strings"

	"mrzgate/internal/evidence/mrz/service"
	dErrors "mrzgate/pkg/domain-errors"
)

// ParseRequest is the body of POST /mrz/parse. MRZ holds the zone's lines
// separated by newlines.
type ParseRequest struct {
	MRZ string `json:"mrz"`
}

// Validate implements httputil.Validatable.
func (r *ParseRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	if strings.TrimSpace(r.MRZ) == "" {
		return dErrors.New(dErrors.CodeValidation, "mrz is required")
	}
	return nil
}

// BatchParseRequest is the body of POST /mrz/parse/batch.
type BatchParseRequest struct {
	MRZ []string `json:"mrz"`
}

// Validate implements httputil.Validatable.
func (r *BatchParseRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	if len(r.MRZ) == 0 {
		return dErrors.New(dErrors.CodeValidation, "mrz must contain at least one value")
	}
	if len(r.MRZ) > service.MaxBatchSize {
		return dErrors.New(dErrors.CodeValidation, "too many mrz values")
	}
	return nil
}
