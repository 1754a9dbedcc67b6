package calc

import (
	"errors"
	"fmt"

	"onsite-calculator/internal/expr"
	"onsite-calculator/internal/measure"
)

// Kind identifies a class of calculation failure.
type Kind string

const (
	KindParse                 Kind = "parse_error"
	KindFormat                Kind = "format_error"
	KindInvalidCharacter      Kind = "invalid_character"
	KindMismatchedParentheses Kind = "mismatched_parentheses"
	KindMalformedExpression   Kind = "malformed_expression"
	KindDivisionByZero        Kind = "division_by_zero"
	KindInvalidOperator       Kind = "invalid_operator"
	KindUnknown               Kind = "error"
)

var labels = map[Kind]string{
	KindParse:                 "Parse Error",
	KindFormat:                "Format Error",
	KindInvalidCharacter:      "Invalid Character",
	KindMismatchedParentheses: "Mismatched Parens",
	KindMalformedExpression:   "Syntax Error",
	KindDivisionByZero:        "Division by Zero",
	KindInvalidOperator:       "Invalid Operator",
	KindUnknown:               "Error",
}

// Label is the short text shown to the user for k.
func (k Kind) Label() string {
	if l, ok := labels[k]; ok {
		return l
	}
	return labels[KindUnknown]
}

// ErrSplit is returned when measurement input has no usable top-level
// operator or one side of it is empty.
var ErrSplit = errors.New("expected <measurement> <operator> <measurement>")

// Error is the single failure type returned by Engine. Err keeps the
// underlying cause for logs; Label is safe to display.
type Error struct {
	Kind Kind
	Mode Mode
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Label is the short user-facing text for the failure.
func (e *Error) Label() string { return e.Kind.Label() }

// KindOf maps an error from the measurement or expression packages onto a
// Kind. Errors already carrying a Kind keep it.
func KindOf(err error) Kind {
	var ce *Error
	switch {
	case err == nil:
		return ""
	case errors.As(err, &ce):
		return ce.Kind
	case errors.Is(err, measure.ErrDivisionByZero), errors.Is(err, expr.ErrDivisionByZero):
		return KindDivisionByZero
	case errors.Is(err, measure.ErrInvalidOperator):
		return KindInvalidOperator
	case errors.Is(err, measure.ErrFormat), errors.Is(err, ErrSplit):
		return KindFormat
	case errors.Is(err, measure.ErrParse):
		return KindParse
	case errors.Is(err, expr.ErrInvalidCharacter):
		return KindInvalidCharacter
	case errors.Is(err, expr.ErrMismatchedParentheses):
		return KindMismatchedParentheses
	case errors.Is(err, expr.ErrMalformedExpression):
		return KindMalformedExpression
	}
	return KindUnknown
}

func wrap(mode Mode, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: KindOf(err), Mode: mode, Err: err}
}
