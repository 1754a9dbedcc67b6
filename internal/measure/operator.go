package measure

import "fmt"

// Operator is one of the four arithmetic operators.
type Operator string

const (
	Add      Operator = "+"
	Subtract Operator = "-"
	Multiply Operator = "*"
	Divide   Operator = "/"
)

// Valid reports whether op is one of + - * /.
func (op Operator) Valid() bool {
	switch op {
	case Add, Subtract, Multiply, Divide:
		return true
	}
	return false
}

// Name returns a word for op, used as a metric and span attribute.
func (op Operator) Name() string {
	switch op {
	case Add:
		return "add"
	case Subtract:
		return "subtract"
	case Multiply:
		return "multiply"
	case Divide:
		return "divide"
	}
	return "unknown"
}

// ParseOperator accepts the ASCII operators and the × ÷ x glyphs.
func ParseOperator(s string) (Operator, error) {
	switch s {
	case "+":
		return Add, nil
	case "-", "−":
		return Subtract, nil
	case "*", "×", "x", "X":
		return Multiply, nil
	case "/", "÷":
		return Divide, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidOperator, s)
}
