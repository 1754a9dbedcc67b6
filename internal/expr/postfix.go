package expr

import "fmt"

func precedence(op string) int {
	switch op {
	case "*", "/":
		return 2
	case "+", "-":
		return 1
	}
	return 0
}

// markUnary rewrites every '-' that starts an operand (first token, after
// '(' or after another operator or unary marker) into a UnaryMinus token.
func markUnary(tokens []Token) []Token {
	out := make([]Token, 0, len(tokens))
	for i, t := range tokens {
		if t.Kind == Operator && t.Text == "-" {
			if i == 0 {
				t = Token{Kind: UnaryMinus, Text: "-"}
			} else {
				switch out[len(out)-1].Kind {
				case LeftParen, Operator, UnaryMinus:
					t = Token{Kind: UnaryMinus, Text: "-"}
				}
			}
		}
		out = append(out, t)
	}
	return out
}

// ToPostfix converts infix tokens to postfix order. Multiplication and
// division bind tighter than addition and subtraction, all four are left
// associative, and a unary minus binds tighter than any binary operator.
func ToPostfix(tokens []Token) ([]Token, error) {
	out := make([]Token, 0, len(tokens))
	var stack []Token

	top := func() (Token, bool) {
		if len(stack) == 0 {
			return Token{}, false
		}
		return stack[len(stack)-1], true
	}
	pop := func() Token {
		t := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		return t
	}

	for _, t := range markUnary(tokens) {
		switch t.Kind {
		case Number:
			out = append(out, t)

		case UnaryMinus, LeftParen:
			stack = append(stack, t)

		case Operator:
			for {
				prev, ok := top()
				if !ok {
					break
				}
				if prev.Kind == UnaryMinus {
					out = append(out, pop())
					continue
				}
				if prev.Kind == Operator && precedence(prev.Text) >= precedence(t.Text) {
					out = append(out, pop())
					continue
				}
				break
			}
			stack = append(stack, t)

		case RightParen:
			for {
				prev, ok := top()
				if !ok {
					return nil, fmt.Errorf("%w: unexpected ')'", ErrMismatchedParentheses)
				}
				if prev.Kind == LeftParen {
					pop()
					break
				}
				out = append(out, pop())
			}
			// a unary minus waiting on the group applies to it now
			if prev, ok := top(); ok && prev.Kind == UnaryMinus {
				out = append(out, pop())
			}

		default:
			return nil, fmt.Errorf("%w: unexpected token %s", ErrMalformedExpression, t)
		}
	}

	for len(stack) > 0 {
		t := pop()
		if t.Kind == LeftParen {
			return nil, fmt.Errorf("%w: unclosed '('", ErrMismatchedParentheses)
		}
		out = append(out, t)
	}

	return out, nil
}
