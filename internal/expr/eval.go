package expr

import (
	"fmt"
	"math"

	"onsite-calculator/internal/normalize"
)

// EvalPostfix evaluates tokens in postfix order on a single value stack.
func EvalPostfix(postfix []Token) (float64, error) {
	stack := make([]float64, 0, len(postfix))

	for _, t := range postfix {
		switch t.Kind {
		case Number:
			stack = append(stack, t.Value)

		case UnaryMinus:
			if len(stack) < 1 {
				return 0, fmt.Errorf("%w: '-' without an operand", ErrMalformedExpression)
			}
			stack[len(stack)-1] = -stack[len(stack)-1]

		case Operator:
			if len(stack) < 2 {
				return 0, fmt.Errorf("%w: %q needs two operands", ErrMalformedExpression, t.Text)
			}
			right := stack[len(stack)-1]
			left := stack[len(stack)-2]
			stack = stack[:len(stack)-2]

			var v float64
			switch t.Text {
			case "+":
				v = left + right
			case "-":
				v = left - right
			case "*":
				v = left * right
			case "/":
				if right == 0 {
					return 0, fmt.Errorf("%w: %g / 0", ErrDivisionByZero, left)
				}
				v = left / right
			}
			stack = append(stack, v)

		default:
			return 0, fmt.Errorf("%w: unexpected token %s", ErrMalformedExpression, t)
		}
	}

	if len(stack) != 1 {
		return 0, fmt.Errorf("%w: %d values left on the stack", ErrMalformedExpression, len(stack))
	}
	if math.IsInf(stack[0], 0) || math.IsNaN(stack[0]) {
		return 0, fmt.Errorf("%w: result is not finite", ErrMalformedExpression)
	}
	return stack[0], nil
}

// Evaluate normalizes s and evaluates it as an arithmetic expression.
func Evaluate(s string) (float64, error) {
	tokens, err := Tokenize(normalize.Input(s))
	if err != nil {
		return 0, err
	}
	postfix, err := ToPostfix(tokens)
	if err != nil {
		return 0, err
	}
	return EvalPostfix(postfix)
}
