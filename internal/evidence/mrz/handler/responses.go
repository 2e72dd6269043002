package handler

import (
	"time"

	"mrzgate/internal/evidence/mrz/models"
)

// DateResponse is a date field as returned to clients. Resolved is a
// YYYY-MM-DD calendar date when the field resolves under its century policy.
type DateResponse struct {
	MRZ      string `json:"mrz"`
	Year     int    `json:"year"`
	Month    int    `json:"month"`
	Day      int    `json:"day"`
	Valid    bool   `json:"valid"`
	Resolved string `json:"resolved,omitempty"`
}

// DocumentResponse is the JSON body for a parsed document.
type DocumentResponse struct {
	ID                  string               `json:"id"`
	Format              string               `json:"format"`
	DocumentCode        string               `json:"document_code"`
	IssuingState        string               `json:"issuing_state"`
	DocumentNumber      string               `json:"document_number"`
	Nationality         string               `json:"nationality"`
	Sex                 string               `json:"sex"`
	PrimaryIdentifier   string               `json:"primary_identifier"`
	SecondaryIdentifier string               `json:"secondary_identifier"`
	DateOfBirth         DateResponse         `json:"date_of_birth"`
	DateOfExpiry        DateResponse         `json:"date_of_expiry"`
	Checks              []models.CheckResult `json:"checks"`
	Valid               bool                 `json:"valid"`
	MRZ                 string               `json:"mrz"`
	CheckedAt           time.Time            `json:"checked_at"`
}

// BatchResponse is the JSON body for POST /mrz/parse/batch.
type BatchResponse struct {
	Documents []DocumentResponse `json:"documents"`
}

// FromDocument converts a stored document into its response.
func FromDocument(doc *models.ParsedDocument) DocumentResponse {
	return DocumentResponse{
		ID:                  doc.ID.String(),
		Format:              doc.Format,
		DocumentCode:        doc.DocumentCode,
		IssuingState:        doc.IssuingState,
		DocumentNumber:      doc.DocumentNumber,
		Nationality:         doc.Nationality,
		Sex:                 doc.Sex,
		PrimaryIdentifier:   doc.PrimaryIdentifier,
		SecondaryIdentifier: doc.SecondaryIdentifier,
		DateOfBirth:         fromDate(doc.DateOfBirth),
		DateOfExpiry:        fromDate(doc.DateOfExpiry),
		Checks:              doc.Checks,
		Valid:               doc.Valid,
		MRZ:                 doc.MRZ,
		CheckedAt:           doc.CheckedAt,
	}
}

func fromDate(d models.DateField) DateResponse {
	resp := DateResponse{
		MRZ:   d.MRZ,
		Year:  d.Year,
		Month: d.Month,
		Day:   d.Day,
		Valid: d.Valid,
	}
	if d.Resolved != nil {
		resp.Resolved = d.Resolved.Format(time.DateOnly)
	}
	return resp
}
