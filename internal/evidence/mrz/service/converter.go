package service

import (
	"time"

	"github.com/google/uuid"

	"mrzgate/internal/evidence/mrz/domain/document"
	"mrzgate/internal/evidence/mrz/domain/shared"
	"mrzgate/internal/evidence/mrz/models"
)

// toParsedDocument translates the domain aggregate into the stored record.
// Dates are resolved to full years with the birth and expiry policies
// relative to now.
func toParsedDocument(id uuid.UUID, doc *document.Document, now time.Time) *models.ParsedDocument {
	checks := make([]models.CheckResult, 0, len(doc.Checks))
	for _, c := range doc.Checks {
		checks = append(checks, models.CheckResult{
			Field:    c.Field,
			Digit:    c.Digit,
			Expected: c.Expected,
			Valid:    c.Valid,
		})
	}
	return &models.ParsedDocument{
		ID:                  id,
		Format:              string(doc.Format),
		DocumentCode:        doc.DocumentCode,
		IssuingState:        doc.IssuingState,
		DocumentNumber:      doc.DocumentNumber,
		Nationality:         doc.Nationality,
		Sex:                 doc.Sex,
		OptionalData:        doc.OptionalData,
		OptionalData2:       doc.OptionalData2,
		PrimaryIdentifier:   doc.PrimaryIdentifier,
		SecondaryIdentifier: doc.SecondaryIdentifier,
		DateOfBirth:         toDateField(doc.DateOfBirth, shared.BirthPolicy(now)),
		DateOfExpiry:        toDateField(doc.DateOfExpiry, shared.ExpiryPolicy(now)),
		Checks:              checks,
		Valid:               doc.Valid(),
		MRZ:                 doc.MRZ(),
		CheckedAt:           now,
	}
}

func toDateField(d shared.Date, policy shared.CenturyPolicy) models.DateField {
	field := models.DateField{
		MRZ:   d.MRZ(),
		Year:  d.Year(),
		Month: d.Month(),
		Day:   d.Day(),
		Valid: d.IsValid(),
	}
	if t, err := d.Time(policy); err == nil {
		field.Resolved = &t
	}
	return field
}
