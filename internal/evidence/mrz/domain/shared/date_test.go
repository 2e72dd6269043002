package shared_test

import (
	"bytes"
	"log/slog"
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/suite"

	"mrzgate/internal/evidence/mrz/domain/shared"
)

type DateSuite struct {
	suite.Suite
}

func TestDateSuite(t *testing.T) {
	suite.Run(t, new(DateSuite))
}

func (s *DateSuite) TestNewDateValidity() {
	s.Run("every in-range triplet is valid", func() {
		for year := 0; year <= 99; year++ {
			for month := 1; month <= 12; month++ {
				for day := 1; day <= 31; day++ {
					d := shared.NewDate(year, month, day)
					if !d.IsValid() {
						s.Failf("expected valid date", "%d/%d/%d", day, month, year)
						return
					}
				}
			}
		}
	})

	cases := []struct {
		name             string
		year, month, day int
	}{
		{"year above 99", 100, 1, 1},
		{"negative year", -1, 1, 1},
		{"month zero", 11, 0, 1},
		{"month 13", 11, 13, 1},
		{"day zero", 11, 2, 0},
		{"day 32", 11, 2, 32},
	}
	for _, tc := range cases {
		s.Run("rejects "+tc.name, func() {
			var d shared.Date
			s.NotPanics(func() {
				d = shared.NewDate(tc.year, tc.month, tc.day)
			})
			s.False(d.IsValid())
			s.Equal(tc.year, d.Year())
			s.Equal(tc.month, d.Month())
			s.Equal(tc.day, d.Day())
		})
	}

	s.Run("day 31 in a 30-day month is valid", func() {
		s.True(shared.NewDate(11, 4, 31).IsValid())
		s.True(shared.NewDate(11, 2, 30).IsValid())
	})
}

func (s *DateSuite) TestNewDatePadding() {
	s.Run("pads single digits", func() {
		d := shared.NewDate(7, 2, 5)
		s.Equal("07", d.RawYear())
		s.Equal("02", d.RawMonth())
		s.Equal("05", d.RawDay())
		s.Equal("070205", d.MRZ())
	})

	s.Run("does not truncate wide values", func() {
		d := shared.NewDate(123, 1, 1)
		s.Equal("123", d.RawYear())
		s.Equal("1230101", d.MRZ())
	})
}

func (s *DateSuite) TestParseDate() {
	s.Run("round trips raw text", func() {
		d := shared.ParseDate("11", "02", "28")
		s.True(d.IsValid())
		s.Equal(11, d.Year())
		s.Equal(2, d.Month())
		s.Equal(28, d.Day())
		s.Equal("110228", d.MRZ())
	})

	s.Run("unparsable year becomes sentinel", func() {
		d := shared.ParseDate("ab", "02", "28")
		s.Equal(shared.Unparsed, d.Year())
		s.Equal(2, d.Month())
		s.Equal(28, d.Day())
		s.False(d.IsValid())
		s.Equal("ab0228", d.MRZ())
	})

	s.Run("each component fails independently", func() {
		d := shared.ParseDate("", "<<", "1X")
		s.Equal(shared.Unparsed, d.Year())
		s.Equal(shared.Unparsed, d.Month())
		s.Equal(shared.Unparsed, d.Day())
		s.Equal("<<1X", d.MRZ())
	})

	s.Run("stores raw text of any width", func() {
		d := shared.ParseDate("011", "2", "28")
		s.Equal(11, d.Year())
		s.Equal(2, d.Month())
		s.True(d.IsValid())
		s.Equal("011228", d.MRZ())
	})

	s.Run("parses a six character field", func() {
		d := shared.ParseDateField("740812")
		s.Equal(shared.ParseDate("74", "08", "12"), d)
	})

	s.Run("short field leaves missing components unparsed", func() {
		d := shared.ParseDateField("7408")
		s.Equal(8, d.Month())
		s.Equal(shared.Unparsed, d.Day())
		s.Equal("7408", d.MRZ())
	})
}

func (s *DateSuite) TestDiagnostics() {
	s.Run("parse failures are logged at debug", func() {
		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

		shared.ParseDate("ab", "02", "28", shared.WithLogger(logger))

		out := buf.String()
		s.Contains(out, "level=DEBUG")
		s.Contains(out, "failed to parse MRZ date component")
		s.Contains(out, "component=year")
		s.Contains(out, "raw=ab")
	})

	s.Run("valid dates log nothing", func() {
		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

		shared.ParseDate("11", "02", "28", shared.WithLogger(logger))
		s.Empty(buf.String())
	})

	s.Run("range failures are logged", func() {
		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

		shared.NewDate(11, 13, 1, shared.WithLogger(logger))
		s.Contains(buf.String(), "component=month")
	})

	s.Run("nil logger falls back to discard", func() {
		s.NotPanics(func() {
			shared.ParseDate("ab", "02", "28", shared.WithLogger(nil))
		})
	})
}

func (s *DateSuite) TestEquality() {
	fromInts := shared.NewDate(11, 2, 28)
	fromText := shared.ParseDate("11", "02", "28")
	unpadded := shared.ParseDate("11", "2", "28")

	s.Run("integer and raw construction agree", func() {
		s.True(fromInts.Equal(fromText))
		s.True(fromInts == fromText)
	})

	s.Run("raw text is part of identity", func() {
		s.Equal(fromText.Month(), unpadded.Month())
		s.False(fromInts.Equal(unpadded))
		s.False(fromText == unpadded)
	})

	s.Run("nil never equals", func() {
		s.False(shared.EqualPtr(&fromInts, nil))
		s.False(shared.EqualPtr(nil, &fromInts))
		s.False(shared.EqualPtr(nil, nil))
		s.True(shared.EqualPtr(&fromInts, &fromText))
	})

	s.Run("equal dates hash equal", func() {
		s.Equal(fromInts.Hash(), fromText.Hash())
	})

	s.Run("hash ignores raw text", func() {
		s.Equal(fromText.Hash(), unpadded.Hash())
	})

	s.Run("hash mixes components", func() {
		s.Equal(((7*11+11)*11+2)*11+28, fromInts.Hash())
	})
}

func (s *DateSuite) TestCompare() {
	a := shared.NewDate(1, 1, 1)
	b := shared.NewDate(1, 1, 2)
	c := shared.NewDate(2, 1, 1)

	s.Run("orders by year, month, day", func() {
		s.Equal(-1, a.Compare(b))
		s.Equal(-1, b.Compare(c))
		s.Equal(-1, a.Compare(c))
		s.Equal(1, c.Compare(a))
		s.Equal(0, b.Compare(b))
	})

	s.Run("ignores raw text", func() {
		padded := shared.ParseDate("11", "02", "28")
		wide := shared.ParseDate("011", "02", "28")
		s.Equal(0, padded.Compare(wide))
		s.False(padded.Equal(wide))
	})

	s.Run("year is a flat axis", func() {
		s.Equal(1, shared.NewDate(99, 1, 1).Compare(shared.NewDate(1, 1, 1)))
	})

	s.Run("sentinels sort first", func() {
		broken := shared.ParseDate("ab", "01", "01")
		s.Equal(-1, broken.Compare(shared.NewDate(0, 1, 1)))
	})

	s.Run("sorts with slices.SortFunc", func() {
		dates := []shared.Date{c, a, b}
		slices.SortFunc(dates, shared.CompareDates)
		s.Equal([]shared.Date{a, b, c}, dates)
	})
}

func (s *DateSuite) TestString() {
	s.Equal("{28/2/11}", shared.NewDate(11, 2, 28).String())
	s.Equal("{28/2/-1}", shared.ParseDate("ab", "02", "28").String())
}

func (s *DateSuite) TestZero() {
	var d shared.Date
	s.True(d.IsZero())
	s.False(d.IsValid())
	s.False(shared.NewDate(0, 1, 1).IsZero())
}

func FuzzParseDateField(f *testing.F) {
	f.Add("110228")
	f.Add("ab0228")
	f.Add("")
	f.Add("<<<<<<")
	f.Add("99123")
	f.Add("0112311")

	f.Fuzz(func(t *testing.T, field string) {
		d := shared.ParseDateField(field)

		if d.MRZ() != field {
			t.Errorf("MRZ() = %q, want %q", d.MRZ(), field)
		}
		if d.IsValid() && strings.ContainsAny(field, "<ab") {
			t.Errorf("field %q with filler accepted as valid", field)
		}
		again := shared.ParseDateField(d.MRZ())
		if !again.Equal(d) {
			t.Errorf("re-parse of %q changed the date", field)
		}
	})
}
