// Package calc routes raw calculator input to the measurement engine or
// the expression evaluator and turns the outcome into a display string and
// a history record.
//
// An Engine holds only its formatting configuration, so a single value can
// serve concurrent callers. Session is the caller-side state of one
// calculator screen.
package calc

import (
	"fmt"

	"onsite-calculator/internal/expr"
	"onsite-calculator/internal/measure"
	"onsite-calculator/internal/normalize"
)

// EmptyDisplay is shown for blank input.
const EmptyDisplay = "0"

// Record is the history entry for a successful calculation.
type Record struct {
	Mode       Mode             `json:"mode"`
	Expression string           `json:"expression,omitempty"`
	A          string           `json:"a,omitempty"`
	B          string           `json:"b,omitempty"`
	Op         measure.Operator `json:"op,omitempty"`
	Result     string           `json:"result"`
	Approx     string           `json:"approx,omitempty"`
}

// Result is the outcome of Evaluate. Value is total inches in measurement
// mode and the plain number otherwise. Record is nil for blank input.
type Result struct {
	Mode    Mode           `json:"mode"`
	Value   float64        `json:"value"`
	Display string         `json:"display"`
	Parts   *measure.Parts `json:"parts,omitempty"`
	Record  *Record        `json:"record,omitempty"`
	Empty   bool           `json:"empty,omitempty"`
}

// Engine evaluates calculator input.
type Engine struct {
	base int
}

// New returns an Engine; see WithDenominatorBase.
func New(opts ...Option) *Engine {
	return applyOptions(opts)
}

// DenominatorBase returns the fraction granularity used for display.
func (e *Engine) DenominatorBase() int { return e.base }

// Evaluate classifies raw and evaluates it. Every failure is returned as
// *Error.
func (e *Engine) Evaluate(raw string) (Result, error) {
	s := normalize.Input(raw)
	if s == "" {
		return Result{Mode: ModeNormal, Display: EmptyDisplay, Empty: true}, nil
	}

	if classifyNormalized(s) == ModeMeasurement {
		op, err := splitNormalized(s)
		if err != nil {
			return Result{}, wrap(ModeMeasurement, err)
		}
		return e.ApplyMeasurement(op.A, op.B, op.Op)
	}
	return e.EvaluateExpression(s)
}

// ApplyMeasurement computes a op b and formats the result.
func (e *Engine) ApplyMeasurement(a, b string, op measure.Operator) (Result, error) {
	m, err := measure.Apply(a, b, op)
	if err != nil {
		return Result{}, wrap(ModeMeasurement, err)
	}

	display := measure.Format(m.Inches(), e.base)

	var parts *measure.Parts
	if measure.Representable(m.Inches()) {
		p := measure.Decompose(m.Inches(), e.base)
		parts = &p
	}

	return Result{
		Mode:    ModeMeasurement,
		Value:   m.Inches(),
		Display: display,
		Parts:   parts,
		Record: &Record{
			Mode:   ModeMeasurement,
			A:      a,
			B:      b,
			Op:     op,
			Result: display,
			Approx: fmt.Sprintf("%.4f\"", m.Inches()),
		},
	}, nil
}

// EvaluateExpression evaluates text as plain arithmetic.
func (e *Engine) EvaluateExpression(text string) (Result, error) {
	v, err := expr.Evaluate(text)
	if err != nil {
		return Result{}, wrap(ModeNormal, err)
	}

	display := FormatNumber(v)
	return Result{
		Mode:    ModeNormal,
		Value:   v,
		Display: display,
		Record: &Record{
			Mode:       ModeNormal,
			Expression: normalize.Input(text),
			Result:     display,
		},
	}, nil
}

// FormatMeasurement formats total inches at the engine's denominator base.
func (e *Engine) FormatMeasurement(totalInches float64) string {
	return measure.Format(totalInches, e.base)
}

// ParseMeasurement reads a single measurement token.
func (e *Engine) ParseMeasurement(text string) (measure.Measurement, error) {
	m, err := measure.Parse(text)
	if err != nil {
		return 0, wrap(ModeMeasurement, err)
	}
	return m, nil
}

// ClassifyMode reports which engine Evaluate would use for text.
func (e *Engine) ClassifyMode(text string) Mode {
	return Classify(text)
}
