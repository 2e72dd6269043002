// Package document parses ICAO 9303 machine-readable zones into a Document
// aggregate.
//
// Record-level rules live here: field layout per format, check digits and
// name splitting. Date fields are sliced from the lines and handed to
// shared.ParseDate, so a broken date never aborts parsing; it shows up in
// the date's IsValid and in Document.Valid.
package document

import (
	"errors"
	"log/slog"
	"strings"

	"mrzgate/internal/evidence/mrz/domain/shared"
)

var (
	// ErrEmptyInput indicates there were no MRZ lines to parse.
	ErrEmptyInput = errors.New("empty MRZ input")
	// ErrUnknownFormat indicates the line count and widths match no TD format.
	ErrUnknownFormat = errors.New("unknown MRZ format: expected 3x30, 2x36 or 2x44 characters")
)

// Check field names.
const (
	CheckDocumentNumber = "document_number"
	CheckDateOfBirth    = "date_of_birth"
	CheckDateOfExpiry   = "date_of_expiry"
	CheckOptionalData   = "optional_data"
	CheckComposite      = "composite"
)

// Document is a parsed machine-readable zone.
//
// Invariants:
//   - lines always holds the exact input lines; MRZ reproduces them
//   - Checks holds one entry per check digit the format defines
type Document struct {
	Format              Format
	DocumentCode        string
	IssuingState        string
	DocumentNumber      string
	Nationality         string
	Sex                 string
	OptionalData        string
	OptionalData2       string
	PrimaryIdentifier   string
	SecondaryIdentifier string
	DateOfBirth         shared.Date
	DateOfExpiry        shared.Date
	Checks              []Check

	layout layout
	lines  []string
}

// Option configures Parse.
type Option func(*config)

type config struct {
	logger *slog.Logger
}

// WithLogger sets the diagnostic sink for the document and its dates.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// SplitLines normalizes raw MRZ text into lines: CRLF becomes LF, trailing
// spaces are dropped and blank lines around the zone are removed.
func SplitLines(mrz string) []string {
	raw := strings.Split(strings.ReplaceAll(mrz, "\r\n", "\n"), "\n")
	lines := make([]string, 0, len(raw))
	for _, line := range raw {
		lines = append(lines, strings.TrimRight(line, " \t\r"))
	}
	for len(lines) > 0 && lines[0] == "" {
		lines = lines[1:]
	}
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// Parse reads a TD1, TD2 or TD3 machine-readable zone. Only the shape of the
// input can make it fail; invalid dates and wrong check digits are reported
// on the returned Document.
func Parse(mrz string, opts ...Option) (*Document, error) {
	cfg := config{logger: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	lines := SplitLines(mrz)
	if len(lines) == 0 {
		return nil, ErrEmptyInput
	}
	l, ok := detect(lines)
	if !ok {
		return nil, ErrUnknownFormat
	}

	dateOpt := shared.WithLogger(cfg.logger)
	d := &Document{
		Format:         l.format,
		DocumentCode:   trimFiller(l.code.of(lines)),
		IssuingState:   trimFiller(l.state.of(lines)),
		DocumentNumber: trimFiller(l.number.of(lines)),
		Nationality:    trimFiller(l.nationality.of(lines)),
		Sex:            trimFiller(l.sex.of(lines)),
		OptionalData:   trimFiller(l.optional.of(lines)),
		OptionalData2:  trimFiller(l.optional2.of(lines)),
		DateOfBirth:    shared.ParseDateField(l.birth.of(lines), dateOpt),
		DateOfExpiry:   shared.ParseDateField(l.expiry.of(lines), dateOpt),
		layout:         l,
		lines:          lines,
	}
	d.PrimaryIdentifier, d.SecondaryIdentifier = splitNames(l.names.of(lines))

	d.Checks = append(d.Checks,
		verify(CheckDocumentNumber, l.number.of(lines), l.numberCheck.of(lines)),
		verify(CheckDateOfBirth, l.birth.of(lines), l.birthCheck.of(lines)),
		verify(CheckDateOfExpiry, l.expiry.of(lines), l.expiryCheck.of(lines)),
	)
	if !l.optionalCheck.absent() {
		d.Checks = append(d.Checks, verify(CheckOptionalData, l.optional.of(lines), l.optionalCheck.of(lines)))
	}
	var composite strings.Builder
	for _, s := range l.compositeOver {
		composite.WriteString(s.of(lines))
	}
	d.Checks = append(d.Checks, verify(CheckComposite, composite.String(), l.composite.of(lines)))

	for _, c := range d.Checks {
		if !c.Valid {
			cfg.logger.Debug("MRZ check digit mismatch",
				"format", string(l.format),
				"field", c.Field,
				"digit", c.Digit,
				"expected", c.Expected,
			)
		}
	}
	return d, nil
}

// ChecksPassed reports whether every check digit matched.
func (d *Document) ChecksPassed() bool {
	for _, c := range d.Checks {
		if !c.Valid {
			return false
		}
	}
	return true
}

// Valid reports whether both dates are valid and every check digit matched.
func (d *Document) Valid() bool {
	return d.DateOfBirth.IsValid() && d.DateOfExpiry.IsValid() && d.ChecksPassed()
}

// Lines returns a copy of the zone's lines.
func (d *Document) Lines() []string {
	return append([]string(nil), d.lines...)
}

// MRZ re-emits the zone with lines joined by '\n'. Date fields are written
// back from their raw text, so the output matches the parsed input exactly.
func (d *Document) MRZ() string {
	lines := d.Lines()
	lines = splice(lines, d.layout.birth, d.DateOfBirth.MRZ())
	lines = splice(lines, d.layout.expiry, d.DateOfExpiry.MRZ())
	return strings.Join(lines, "\n")
}

func splice(lines []string, s span, value string) []string {
	if s.absent() || len(value) != s.to-s.from {
		return lines
	}
	line := lines[s.line]
	lines[s.line] = line[:s.from] + value + line[s.to:]
	return lines
}

func trimFiller(s string) string {
	return strings.Trim(s, "<")
}

// splitNames splits the name field at the first "<<" into primary and
// secondary identifiers, turning single fillers into spaces.
func splitNames(field string) (primary, secondary string) {
	field = strings.TrimRight(field, "<")
	before, after, _ := strings.Cut(field, "<<")
	return fillerToSpace(before), fillerToSpace(after)
}

func fillerToSpace(s string) string {
	return strings.TrimSpace(strings.Join(strings.FieldsFunc(s, func(r rune) bool { return r == '<' }), " "))
}
