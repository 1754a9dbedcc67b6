package calc

import (
	"fmt"
	"strings"

	"onsite-calculator/internal/measure"
	"onsite-calculator/internal/normalize"
)

// BinaryOp is measurement input split into two operands and an operator.
type BinaryOp struct {
	A  string           `json:"a"`
	B  string           `json:"b"`
	Op measure.Operator `json:"op"`
}

func (b BinaryOp) String() string {
	return b.A + " " + string(b.Op) + " " + b.B
}

// Split finds the first + - * / that is neither a leading sign nor the
// slash of a fraction such as 3/8, and splits text around it.
func Split(text string) (BinaryOp, error) {
	return splitNormalized(normalize.Input(text))
}

func splitNormalized(s string) (BinaryOp, error) {
	for i := 1; i < len(s); i++ {
		c := s[i]
		if c != '+' && c != '-' && c != '*' && c != '/' {
			continue
		}
		if c == '/' && isDigit(s[i-1]) && i+1 < len(s) && isDigit(s[i+1]) {
			continue
		}

		a := strings.TrimSpace(s[:i])
		b := strings.TrimSpace(s[i+1:])
		if a == "" || b == "" {
			return BinaryOp{}, fmt.Errorf("%w: %q", ErrSplit, s)
		}
		return BinaryOp{A: a, B: b, Op: measure.Operator(string(c))}, nil
	}
	return BinaryOp{}, fmt.Errorf("%w: no operator in %q", ErrSplit, s)
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }
