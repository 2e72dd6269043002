// Package models holds the infrastructure representation of parsed MRZ
// documents: what stores persist and handlers serialize.
package models

import (
	"time"

	"github.com/google/uuid"
)

// DateField is a stored MRZ date: the raw field text plus what was parsed
// from it. Resolved is set only when the date is valid and calendar-correct
// under the field's century policy.
type DateField struct {
	MRZ      string     `json:"mrz"`
	Year     int        `json:"year"`
	Month    int        `json:"month"`
	Day      int        `json:"day"`
	Valid    bool       `json:"valid"`
	Resolved *time.Time `json:"resolved,omitempty"`
}

// CheckResult records one check digit verification.
type CheckResult struct {
	Field    string `json:"field"`
	Digit    string `json:"digit"`
	Expected int    `json:"expected"`
	Valid    bool   `json:"valid"`
}

// ParsedDocument is a parsed machine-readable zone as persisted.
type ParsedDocument struct {
	ID                  uuid.UUID     `json:"id"`
	Format              string        `json:"format"`
	DocumentCode        string        `json:"document_code"`
	IssuingState        string        `json:"issuing_state"`
	DocumentNumber      string        `json:"document_number"`
	Nationality         string        `json:"nationality"`
	Sex                 string        `json:"sex"`
	OptionalData        string        `json:"optional_data,omitempty"`
	OptionalData2       string        `json:"optional_data_2,omitempty"`
	PrimaryIdentifier   string        `json:"primary_identifier"`
	SecondaryIdentifier string        `json:"secondary_identifier"`
	DateOfBirth         DateField     `json:"date_of_birth"`
	DateOfExpiry        DateField     `json:"date_of_expiry"`
	Checks              []CheckResult `json:"checks"`
	Valid               bool          `json:"valid"`
	MRZ                 string        `json:"mrz"`
	CheckedAt           time.Time     `json:"checked_at"`
}
