// Package measure implements the feet-inches-fraction value used for
// carpentry arithmetic: parsing strings such as `5' 3 1/4"`, exact
// arithmetic on total inches and canonical formatting at a fixed fraction
// granularity.
package measure

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"onsite-calculator/internal/normalize"
)

// DefaultDenominator is the fraction granularity used for display: results
// are rounded to the nearest 1/16 inch.
const DefaultDenominator = 16

// Measurement is a signed length in total inches.
type Measurement float64

// Inches returns m as a plain float64.
func (m Measurement) Inches() float64 { return float64(m) }

// String formats m at the default denominator.
func (m Measurement) String() string { return Format(float64(m), DefaultDenominator) }

// Parse reads a measurement token. Accepted forms include `7`, `3.75`,
// `3/8`, `3 1/4`, `5'`, `5' 3`, `5' 3 1/4"` and a single leading minus sign
// applying to the whole value.
func Parse(token string) (Measurement, error) {
	s := normalize.Input(token)
	s = strings.TrimSpace(strings.TrimRight(s, `"`))
	if s == "" {
		return 0, fmt.Errorf("%w: empty", ErrParse)
	}

	sign := 1.0
	if strings.HasPrefix(s, "-") {
		sign = -1
		s = strings.TrimSpace(s[1:])
		if s == "" {
			return 0, fmt.Errorf("%w: sign without a value", ErrParse)
		}
	}

	var feet float64
	if head, rest, ok := strings.Cut(s, "'"); ok {
		f, err := parseUnsigned(strings.TrimSpace(head))
		if err != nil {
			return 0, fmt.Errorf("%w: feet %q", ErrParse, head)
		}
		if strings.Contains(rest, "'") {
			return 0, fmt.Errorf("%w: more than one feet mark in %q", ErrParse, token)
		}
		feet = f
		s = strings.TrimSpace(rest)
	}

	inches, err := parseInches(s)
	if err != nil {
		return 0, err
	}

	total := sign * (feet*12 + inches)
	if math.IsInf(total, 0) || math.IsNaN(total) {
		return 0, fmt.Errorf("%w: %q is out of range", ErrParse, token)
	}
	return Measurement(total), nil
}

// parseInches reads the part after the feet mark: nothing, a whole or
// decimal number, a fraction, or a whole number followed by a fraction.
func parseInches(s string) (float64, error) {
	tokens := strings.Fields(s)
	switch len(tokens) {
	case 0:
		return 0, nil
	case 1:
		if strings.Contains(tokens[0], "/") {
			return parseFraction(tokens[0])
		}
		v, err := parseUnsigned(tokens[0])
		if err != nil {
			return 0, fmt.Errorf("%w: inches %q", ErrParse, tokens[0])
		}
		return v, nil
	case 2:
		whole, err := parseUnsigned(tokens[0])
		if err != nil {
			return 0, fmt.Errorf("%w: inches %q", ErrParse, tokens[0])
		}
		if !strings.Contains(tokens[1], "/") {
			return 0, fmt.Errorf("%w: expected a fraction after %q, got %q", ErrParse, tokens[0], tokens[1])
		}
		frac, err := parseFraction(tokens[1])
		if err != nil {
			return 0, err
		}
		return whole + frac, nil
	default:
		return 0, fmt.Errorf("%w: too many inch tokens in %q", ErrParse, s)
	}
}

func parseFraction(tok string) (float64, error) {
	numStr, denStr, _ := strings.Cut(tok, "/")
	num, err := parseUnsigned(numStr)
	if err != nil {
		return 0, fmt.Errorf("%w: numerator %q", ErrParse, numStr)
	}
	den, err := parseUnsigned(denStr)
	if err != nil {
		return 0, fmt.Errorf("%w: denominator %q", ErrParse, denStr)
	}
	if den == 0 {
		return 0, fmt.Errorf("%w: zero denominator in %q", ErrParse, tok)
	}
	return num / den, nil
}

// parseUnsigned accepts digits with at most one decimal point. Signs,
// exponents, hex floats and the inf/nan spellings accepted by
// strconv.ParseFloat are rejected.
func parseUnsigned(s string) (float64, error) {
	if !isDecimal(s) {
		return 0, strconv.ErrSyntax
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if math.IsInf(v, 0) {
		return 0, strconv.ErrRange
	}
	return v, nil
}

func isDecimal(s string) bool {
	digits, dots := 0, 0
	for _, c := range s {
		switch {
		case c >= '0' && c <= '9':
			digits++
		case c == '.':
			dots++
		default:
			return false
		}
	}
	return digits > 0 && dots <= 1
}
