package shared

import (
	"errors"
	"time"
)

// CenturyPolicy maps the two-digit MRZ year to a full year. The MRZ itself
// carries no century; each caller decides which rule fits the field.
type CenturyPolicy interface {
	FullYear(d Date) (int, error)
}

// Direction tells a PivotPolicy which side of the reference year to search.
type Direction int

const (
	// Past resolves to the latest year not after the reference year.
	// Suits dates of birth.
	Past Direction = iota
	// Future resolves to the earliest year not before the reference year
	// minus LookBack. Suits dates of expiry.
	Future
)

// DefaultLookBack is how many years an expiry date may lie in the past
// before Future resolves it to the next century.
const DefaultLookBack = 10

// ErrNoReference indicates a PivotPolicy without a reference time.
var ErrNoReference = errors.New("century policy requires a reference time")

// PivotPolicy resolves two-digit years relative to a reference time supplied
// by the caller.
//
// Invariants:
//   - Reference is non-zero
//   - The resolved year always ends in the date's two-digit year
type PivotPolicy struct {
	Reference time.Time
	Direction Direction
	// LookBack applies to Future only. Zero means DefaultLookBack.
	LookBack int
}

// BirthPolicy resolves dates of birth relative to now.
func BirthPolicy(now time.Time) PivotPolicy {
	return PivotPolicy{Reference: now, Direction: Past}
}

// ExpiryPolicy resolves dates of expiry relative to now.
func ExpiryPolicy(now time.Time) PivotPolicy {
	return PivotPolicy{Reference: now, Direction: Future, LookBack: DefaultLookBack}
}

// FullYear implements CenturyPolicy.
func (p PivotPolicy) FullYear(d Date) (int, error) {
	if !d.IsValid() {
		return 0, ErrInvalidDate
	}
	if p.Reference.IsZero() {
		return 0, ErrNoReference
	}
	ref := p.Reference.Year()
	century := ref - ref%100

	if p.Direction == Past {
		year := century + d.Year()
		if year > ref {
			year -= 100
		}
		return year, nil
	}

	lookBack := p.LookBack
	if lookBack <= 0 {
		lookBack = DefaultLookBack
	}
	floor := ref - lookBack
	year := floor - floor%100 + d.Year()
	if year < floor {
		year += 100
	}
	return year, nil
}
