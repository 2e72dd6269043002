// Package shared provides the shared kernel for the MRZ bounded context.
//
// The shared kernel contains domain primitives used by every document
// format: the two-digit MRZ date and the century policies that turn it into
// a calendar date.
//
// Domain Purity: This package contains only pure domain types with no I/O,
// no context.Context, and no time.Now() calls. Diagnostics go through an
// injected *slog.Logger that discards records by default.
package shared

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"
)

// Unparsed is stored in a date component whose raw text is not a base-10 integer.
const Unparsed = -1

// ErrInvalidDate indicates a date that cannot be turned into a calendar date.
var ErrInvalidDate = errors.New("invalid MRZ date")

// Date is a single MRZ date field: a YYMMDD triplet as it appears in the
// machine-readable zone, plus the exact text each component came from.
//
// Invariants:
//   - All fields are fixed at construction
//   - valid is computed once from year, month and day, never from raw text
//   - Raw text is stored verbatim, even when it does not parse
//   - Day is checked against 1..31 only; months and leap years are ignored
//
// Date is comparable; == and Equal agree. Compare orders on numeric fields
// only, so two dates may compare as 0 without being equal.
type Date struct {
	year  int
	month int
	day   int

	rawYear  string
	rawMonth string
	rawDay   string

	valid bool
}

// Option configures how a Date reports diagnostics.
type Option func(*options)

type options struct {
	logger *slog.Logger
}

// WithLogger sends parse and range diagnostics to logger at debug level.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

func buildOptions(opts []Option) options {
	o := options{logger: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}

// NewDate builds a Date from numeric components. Out of range values are
// kept as-is; the raw text is the %02d rendering of each component.
func NewDate(year, month, day int, opts ...Option) Date {
	o := buildOptions(opts)
	d := Date{
		year:     year,
		month:    month,
		day:      day,
		rawYear:  fmt.Sprintf("%02d", year),
		rawMonth: fmt.Sprintf("%02d", month),
		rawDay:   fmt.Sprintf("%02d", day),
	}
	d.valid = d.check(o.logger)
	return d
}

// ParseDate builds a Date from raw MRZ text. Each component is parsed on its
// own; a component that is not a base-10 integer is stored as Unparsed and
// logged. ParseDate never fails: use IsValid to decide how to treat the field.
func ParseDate(rawYear, rawMonth, rawDay string, opts ...Option) Date {
	o := buildOptions(opts)
	d := Date{
		year:     parseComponent(o.logger, "year", rawYear),
		month:    parseComponent(o.logger, "month", rawMonth),
		day:      parseComponent(o.logger, "day", rawDay),
		rawYear:  rawYear,
		rawMonth: rawMonth,
		rawDay:   rawDay,
	}
	d.valid = d.check(o.logger)
	return d
}

// ParseDateField splits a YYMMDD field into its three components and parses
// them with ParseDate. Fields that are not six bytes long are split as far as
// they go; missing components are empty and therefore Unparsed.
func ParseDateField(field string, opts ...Option) Date {
	return ParseDate(slice(field, 0, 2), slice(field, 2, 4), slice(field, 4, len(field)), opts...)
}

func slice(s string, from, to int) string {
	if from >= len(s) {
		return ""
	}
	if to > len(s) {
		to = len(s)
	}
	if to < from {
		return ""
	}
	return s[from:to]
}

func parseComponent(logger *slog.Logger, name, raw string) int {
	n, err := strconv.Atoi(raw)
	if err != nil {
		logger.Debug("failed to parse MRZ date component",
			"component", name,
			"raw", raw,
			"error", err,
		)
		return Unparsed
	}
	return n
}

func (d Date) check(logger *slog.Logger) bool {
	switch {
	case d.year < 0 || d.year > 99:
		logger.Debug("invalid MRZ date component", "component", "year", "value", d.year, "range", "0..99")
		return false
	case d.month < 1 || d.month > 12:
		logger.Debug("invalid MRZ date component", "component", "month", "value", d.month, "range", "1..12")
		return false
	case d.day < 1 || d.day > 31:
		logger.Debug("invalid MRZ date component", "component", "day", "value", d.day, "range", "1..31")
		return false
	}
	return true
}

// Year returns the two-digit year, or Unparsed.
func (d Date) Year() int { return d.year }

// Month returns the month, or Unparsed.
func (d Date) Month() int { return d.month }

// Day returns the day of month, or Unparsed.
func (d Date) Day() int { return d.day }

// RawYear returns the year text the date was built from.
func (d Date) RawYear() string { return d.rawYear }

// RawMonth returns the month text the date was built from.
func (d Date) RawMonth() string { return d.rawMonth }

// RawDay returns the day text the date was built from.
func (d Date) RawDay() string { return d.rawDay }

// IsValid reports whether year, month and day were in range at construction.
func (d Date) IsValid() bool {
	return d.valid
}

// IsZero returns true if this is the zero value (never constructed).
func (d Date) IsZero() bool {
	return d == Date{}
}

// MRZ returns the field as it appears in the machine-readable zone:
// raw year, month and day concatenated without separators.
func (d Date) MRZ() string {
	return d.rawYear + d.rawMonth + d.rawDay
}

// String renders the numeric components as {day/month/year}. Use MRZ to
// re-serialize.
func (d Date) String() string {
	return fmt.Sprintf("{%d/%d/%d}", d.day, d.month, d.year)
}

// Equal reports whether both numeric and raw components match.
func (d Date) Equal(other Date) bool {
	return d.year == other.year &&
		d.month == other.month &&
		d.day == other.day &&
		d.rawYear == other.rawYear &&
		d.rawMonth == other.rawMonth &&
		d.rawDay == other.rawDay
}

// EqualPtr is Equal for optional dates. A nil date equals nothing, not even
// another nil.
func EqualPtr(a, b *Date) bool {
	if a == nil || b == nil {
		return false
	}
	return a.Equal(*b)
}

// Hash mixes the numeric components with 32-bit arithmetic. Raw text is not
// included, which keeps equal dates hashing equal.
func (d Date) Hash() int {
	h := int32(7)
	h = 11*h + int32(d.year)
	h = 11*h + int32(d.month)
	h = 11*h + int32(d.day)
	return int(h)
}

// Compare orders dates by year*10000 + month*100 + day. The two-digit year is
// treated as a flat number and validity and raw text are ignored, so
// Unparsed components sort before any parsed value.
func (d Date) Compare(other Date) int {
	a, b := d.packed(), other.packed()
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// CompareDates is Compare in a form usable with slices.SortFunc.
func CompareDates(a, b Date) int {
	return a.Compare(b)
}

func (d Date) packed() int {
	return d.year*10000 + d.month*100 + d.day
}

// Time resolves the date to midnight UTC using the caller's century policy.
// Dates the calendar rejects (31 April, 29 February in a common year) return
// ErrInvalidDate; IsValid is not affected.
func (d Date) Time(policy CenturyPolicy) (time.Time, error) {
	if !d.valid {
		return time.Time{}, ErrInvalidDate
	}
	if policy == nil {
		return time.Time{}, fmt.Errorf("century policy is required: %w", ErrInvalidDate)
	}
	year, err := policy.FullYear(d)
	if err != nil {
		return time.Time{}, err
	}
	t := time.Date(year, time.Month(d.month), d.day, 0, 0, 0, 0, time.UTC)
	if t.Day() != d.day || int(t.Month()) != d.month {
		return time.Time{}, fmt.Errorf("%s is not a calendar date in %d: %w", d.MRZ(), year, ErrInvalidDate)
	}
	return t, nil
}
