package measure

import (
	"fmt"
	"strings"

	"onsite-calculator/internal/normalize"
)

// Apply computes a op b and returns the raw total inches.
//
// For + and - both operands are measurements. For * and / the right-hand
// side is read as a plain scalar when it is one (`2`, `-1.5`, `3/4`) and
// only falls back to a measurement otherwise, so `8 1/4 * 2` doubles a
// length instead of squaring inches.
func Apply(a, b string, op Operator) (Measurement, error) {
	if !op.Valid() {
		return 0, fmt.Errorf("%w: %q", ErrInvalidOperator, string(op))
	}

	left, err := Parse(a)
	if err != nil {
		return 0, fmt.Errorf("%w: left operand: %w", ErrFormat, err)
	}

	switch op {
	case Add, Subtract:
		right, err := Parse(b)
		if err != nil {
			return 0, fmt.Errorf("%w: right operand: %w", ErrFormat, err)
		}
		if op == Add {
			return left + right, nil
		}
		return left - right, nil
	}

	factor, err := scalarOrMeasurement(b)
	if err != nil {
		return 0, fmt.Errorf("%w: right operand: %w", ErrFormat, err)
	}

	if op == Multiply {
		return left * Measurement(factor), nil
	}
	if factor == 0 {
		return 0, fmt.Errorf("%w: %s / %s", ErrDivisionByZero, a, b)
	}
	return left / Measurement(factor), nil
}

func scalarOrMeasurement(s string) (float64, error) {
	if v, ok := parseScalar(s); ok {
		return v, nil
	}
	m, err := Parse(s)
	if err != nil {
		return 0, err
	}
	return float64(m), nil
}

// parseScalar reads a single signed number or simple fraction with no feet
// or inch marks.
func parseScalar(s string) (float64, bool) {
	s = normalize.Input(s)
	if s == "" || strings.ContainsAny(s, `'"`) || strings.Contains(s, " ") {
		return 0, false
	}

	sign := 1.0
	if strings.HasPrefix(s, "-") {
		sign = -1
		s = s[1:]
	}

	if strings.Contains(s, "/") {
		v, err := parseFraction(s)
		if err != nil {
			return 0, false
		}
		return sign * v, true
	}
	v, err := parseUnsigned(s)
	if err != nil {
		return 0, false
	}
	return sign * v, true
}
