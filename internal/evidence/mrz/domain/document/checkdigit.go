package document

import (
	"errors"
	"fmt"
)

// ErrInvalidCharacter indicates a character outside the MRZ alphabet.
var ErrInvalidCharacter = errors.New("invalid MRZ character")

var checkWeights = [3]int{7, 3, 1}

// CheckDigit computes the ICAO 9303 check digit of s: digits count as their
// value, A-Z as 10-35 and the filler '<' as 0, weighted 7, 3, 1 repeating,
// summed modulo 10.
func CheckDigit(s string) (int, error) {
	sum := 0
	for i := 0; i < len(s); i++ {
		v, err := charValue(s[i])
		if err != nil {
			return 0, fmt.Errorf("position %d: %w", i, err)
		}
		sum += v * checkWeights[i%3]
	}
	return sum % 10, nil
}

func charValue(c byte) (int, error) {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0'), nil
	case c >= 'A' && c <= 'Z':
		return int(c-'A') + 10, nil
	case c == '<':
		return 0, nil
	}
	return 0, fmt.Errorf("%q: %w", c, ErrInvalidCharacter)
}

// Check is the outcome of verifying one check digit.
type Check struct {
	Field    string
	Digit    string
	Expected int
	Valid    bool
}

// verify compares the check digit character against the digit computed over
// value. A filler in the digit position counts as 0.
func verify(field, value, digit string) Check {
	c := Check{Field: field, Digit: digit, Expected: -1}
	expected, err := CheckDigit(value)
	if err != nil {
		return c
	}
	c.Expected = expected
	if len(digit) != 1 {
		return c
	}
	got, err := charValue(digit[0])
	if err != nil || digit[0] >= 'A' {
		return c
	}
	c.Valid = got == expected
	return c
}
