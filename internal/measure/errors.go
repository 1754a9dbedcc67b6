package measure

import "errors"

var (
	// ErrParse is returned when a token cannot be read as a measurement.
	ErrParse = errors.New("invalid measurement")

	// ErrFormat is returned by Apply when an operand is not a usable
	// measurement or scalar.
	ErrFormat = errors.New("invalid measurement operand")

	// ErrDivisionByZero is returned by Apply when the divisor resolves to 0.
	ErrDivisionByZero = errors.New("division by zero")

	// ErrInvalidOperator is returned for anything other than + - * /.
	ErrInvalidOperator = errors.New("invalid operator")
)
