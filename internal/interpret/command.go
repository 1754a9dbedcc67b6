// Package interpret turns free-form phrases ("ten and three eighths plus
// five") into calculator commands by calling an external language model,
// and validates whatever comes back before it reaches the calculator.
//
// The model is untrusted: any reply that does not match the command
// contract collapses to an empty normal expression.
package interpret

import (
	"context"
	"strings"

	"onsite-calculator/internal/calc"
	"onsite-calculator/internal/measure"
)

// Command is a validated translator reply. Normal commands carry
// Expression; measurement commands carry A, Op and B.
type Command struct {
	Mode       calc.Mode        `json:"mode"`
	Expression string           `json:"expression,omitempty"`
	A          string           `json:"a,omitempty"`
	B          string           `json:"b,omitempty"`
	Op         measure.Operator `json:"op,omitempty"`
}

// Fallback is the no-op command used for any unusable reply.
func Fallback() Command {
	return Command{Mode: calc.ModeNormal}
}

// Empty reports whether c is the no-op fallback.
func (c Command) Empty() bool {
	return c.Mode == calc.ModeNormal && strings.TrimSpace(c.Expression) == ""
}

// Text renders c as calculator input.
func (c Command) Text() string {
	if c.Mode == calc.ModeMeasurement {
		return c.A + " " + string(c.Op) + " " + c.B
	}
	return c.Expression
}

// Evaluate runs c through e. Measurement commands go straight to the
// measurement engine so that "10 + 5" from a measurement reply stays a
// length; normal commands go through the regular classifier.
func Evaluate(e *calc.Engine, c Command) (calc.Result, error) {
	if c.Mode == calc.ModeMeasurement {
		return e.ApplyMeasurement(c.A, c.B, c.Op)
	}
	return e.Evaluate(c.Expression)
}

// Translator maps free text to a Command. Implementations perform no
// retries; callers bound the call with ctx.
type Translator interface {
	Translate(ctx context.Context, text string) (Command, error)
}
