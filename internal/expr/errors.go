package expr

import "errors"

var (
	ErrInvalidCharacter      = errors.New("invalid character")
	ErrMismatchedParentheses = errors.New("mismatched parentheses")
	ErrMalformedExpression   = errors.New("malformed expression")
	ErrDivisionByZero        = errors.New("division by zero")
)
