package document_test

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"mrzgate/internal/evidence/mrz/domain/document"
	"mrzgate/internal/evidence/mrz/domain/shared"
)

func pad(s string, width int) string {
	return s + strings.Repeat("<", width-len(s))
}

var (
	specimenTD3 = pad("P<UTOERIKSSON<<ANNA<MARIA", 44) + "\n" +
		"L898902C36UTO7408122F1204159ZE184226B<<<<<10"
	specimenTD2 = pad("I<UTOERIKSSON<<ANNA<MARIA", 36) + "\n" +
		"D231458907UTO7408122F1204159<<<<<<<6"
	specimenTD1 = pad("I<UTOD231458907", 30) + "\n" +
		"7408122F1204159UTO<<<<<<<<<<<6" + "\n" +
		pad("ERIKSSON<<ANNA<MARIA", 30)
)

type DocumentSuite struct {
	suite.Suite
}

func TestDocumentSuite(t *testing.T) {
	suite.Run(t, new(DocumentSuite))
}

func (s *DocumentSuite) TestParseSpecimens() {
	tests := []struct {
		name     string
		mrz      string
		format   document.Format
		code     string
		number   string
		optional string
		checks   int
	}{
		{"TD3 passport", specimenTD3, document.FormatTD3, "P", "L898902C3", "ZE184226B", 5},
		{"TD2 card", specimenTD2, document.FormatTD2, "I", "D23145890", "", 4},
		{"TD1 card", specimenTD1, document.FormatTD1, "I", "D23145890", "", 4},
	}
	for _, tt := range tests {
		s.Run(tt.name, func() {
			doc, err := document.Parse(tt.mrz)
			s.Require().NoError(err)

			s.Equal(tt.format, doc.Format)
			s.Equal(tt.code, doc.DocumentCode)
			s.Equal("UTO", doc.IssuingState)
			s.Equal("UTO", doc.Nationality)
			s.Equal(tt.number, doc.DocumentNumber)
			s.Equal(tt.optional, doc.OptionalData)
			s.Equal("F", doc.Sex)
			s.Equal("ERIKSSON", doc.PrimaryIdentifier)
			s.Equal("ANNA MARIA", doc.SecondaryIdentifier)
			s.Equal(shared.NewDate(74, 8, 12), doc.DateOfBirth)
			s.Equal(shared.NewDate(12, 4, 15), doc.DateOfExpiry)
			s.Len(doc.Checks, tt.checks)
			s.True(doc.ChecksPassed())
			s.True(doc.Valid())
			s.Equal(tt.mrz, doc.MRZ())
		})
	}
}

func (s *DocumentSuite) TestBrokenDateStillParses() {
	mrz := pad("P<UTOERIKSSON<<ANNA<MARIA", 44) + "\n" +
		"L898902C36UTO74AB122F1204159ZE184226B<<<<<10"

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	doc, err := document.Parse(mrz, document.WithLogger(logger))
	s.Require().NoError(err)

	s.Equal(74, doc.DateOfBirth.Year())
	s.Equal(shared.Unparsed, doc.DateOfBirth.Month())
	s.False(doc.DateOfBirth.IsValid())
	s.True(doc.DateOfExpiry.IsValid())
	s.False(doc.Valid())
	s.Equal(mrz, doc.MRZ())
	s.Contains(buf.String(), "failed to parse MRZ date component")
	s.Contains(buf.String(), "MRZ check digit mismatch")
}

func (s *DocumentSuite) TestCheckDigitMismatch() {
	mrz := pad("P<UTOERIKSSON<<ANNA<MARIA", 44) + "\n" +
		"L898902C36UTO7408123F1204159ZE184226B<<<<<10"

	doc, err := document.Parse(mrz)
	s.Require().NoError(err)

	s.True(doc.DateOfBirth.IsValid())
	s.False(doc.ChecksPassed())
	s.False(doc.Valid())

	failed := map[string]bool{}
	for _, c := range doc.Checks {
		if !c.Valid {
			failed[c.Field] = true
		}
	}
	s.True(failed[document.CheckDateOfBirth])
	s.True(failed[document.CheckComposite])
	s.False(failed[document.CheckDocumentNumber])
}

func (s *DocumentSuite) TestInputNormalization() {
	s.Run("accepts CRLF and surrounding blank lines", func() {
		raw := "\n\n" + strings.ReplaceAll(specimenTD3, "\n", "\r\n") + "  \r\n\n"
		doc, err := document.Parse(raw)
		s.Require().NoError(err)
		s.Equal(specimenTD3, doc.MRZ())
	})

	s.Run("lines are copied", func() {
		doc, err := document.Parse(specimenTD3)
		s.Require().NoError(err)
		lines := doc.Lines()
		lines[0] = "changed"
		s.Equal(specimenTD3, doc.MRZ())
	})
}

func (s *DocumentSuite) TestParseErrors() {
	s.Run("empty", func() {
		_, err := document.Parse("  \n \n")
		s.ErrorIs(err, document.ErrEmptyInput)
	})

	s.Run("wrong width", func() {
		_, err := document.Parse("P<UTO\nL898902C36")
		s.ErrorIs(err, document.ErrUnknownFormat)
	})

	s.Run("mixed widths", func() {
		lines := strings.Split(specimenTD3, "\n")
		_, err := document.Parse(lines[0] + "\n" + lines[1][:36])
		s.ErrorIs(err, document.ErrUnknownFormat)
	})
}

func TestCheckDigit(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"L898902C3", 6},
		{"740812", 2},
		{"120415", 9},
		{"ZE184226B<<<<<", 1},
		{"<<<<<<", 0},
		{"", 0},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := document.CheckDigit(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("rejects characters outside the alphabet", func(t *testing.T) {
		_, err := document.CheckDigit("ab")
		assert.ErrorIs(t, err, document.ErrInvalidCharacter)
	})
}
