// Package expr evaluates plain arithmetic over signed decimals with
// + - * /, parentheses and unary minus. Input is tokenized against a fixed
// alphabet and evaluated with a shunting-yard conversion to postfix; nothing
// is ever handed to a general-purpose interpreter.
package expr

import (
	"fmt"
	"strconv"
	"unicode/utf8"
)

// Kind classifies a token.
type Kind int

const (
	Number Kind = iota
	Operator
	LeftParen
	RightParen
	UnaryMinus
)

func (k Kind) String() string {
	switch k {
	case Number:
		return "number"
	case Operator:
		return "operator"
	case LeftParen:
		return "("
	case RightParen:
		return ")"
	case UnaryMinus:
		return "unary minus"
	}
	return "unknown"
}

// Token is one element of an expression. Value is set for numbers only.
type Token struct {
	Kind  Kind
	Text  string
	Value float64
}

func (t Token) String() string {
	if t.Kind == UnaryMinus {
		return "u-"
	}
	return t.Text
}

// Tokenize scans s left to right. Spaces are skipped, operators and
// parentheses are single-character tokens, and maximal runs of digits and
// dots form one number. Any other character is rejected.
func Tokenize(s string) ([]Token, error) {
	tokens := make([]Token, 0, len(s)/2+1)

	for i := 0; i < len(s); {
		c := s[i]
		switch {
		case c == ' ':
			i++
		case c == '+' || c == '-' || c == '*' || c == '/':
			tokens = append(tokens, Token{Kind: Operator, Text: string(c)})
			i++
		case c == '(':
			tokens = append(tokens, Token{Kind: LeftParen, Text: "("})
			i++
		case c == ')':
			tokens = append(tokens, Token{Kind: RightParen, Text: ")"})
			i++
		case isNumberByte(c):
			j := i + 1
			for j < len(s) && isNumberByte(s[j]) {
				j++
			}
			lit := s[i:j]
			v, err := strconv.ParseFloat(lit, 64)
			if err != nil {
				return nil, fmt.Errorf("%w: bad number %q", ErrMalformedExpression, lit)
			}
			tokens = append(tokens, Token{Kind: Number, Text: lit, Value: v})
			i = j
		default:
			r, _ := utf8.DecodeRuneInString(s[i:])
			return nil, fmt.Errorf("%w: %q at offset %d", ErrInvalidCharacter, r, i)
		}
	}

	return tokens, nil
}

func isNumberByte(c byte) bool {
	return (c >= '0' && c <= '9') || c == '.'
}
