package calculator

import (
	"onsite-calculator/internal/calc"
	"onsite-calculator/internal/interpret"
	"onsite-calculator/internal/measure"
)

// MaxBatchInputs bounds a single POST /calculator/batch.
const MaxBatchInputs = 100

// EvaluateRequest is the JSON body for POST /calculator/evaluate and
// POST /calculator/classify.
type EvaluateRequest struct {
	Text string `json:"text" validate:"max=256"`
}

// ExpressionRequest is the JSON body for POST /calculator/expression.
type ExpressionRequest struct {
	Expression string `json:"expression" validate:"required,max=256"`
}

// ExpressionResponse is the JSON response for POST /calculator/expression.
type ExpressionResponse struct {
	Result  float64 `json:"result"`
	Display string  `json:"display"`
}

// MeasurementRequest is the JSON body for POST /calculator/measurement.
type MeasurementRequest struct {
	A  string `json:"a" validate:"required,max=64"`
	B  string `json:"b" validate:"required,max=64"`
	Op string `json:"op" validate:"required"`
}

// MeasurementResponse is the JSON response for POST /calculator/measurement.
type MeasurementResponse struct {
	A       string           `json:"a"`
	B       string           `json:"b"`
	Op      measure.Operator `json:"op"`
	Inches  float64          `json:"inches"`
	Display string           `json:"display"`
	Approx  string           `json:"approx"`
	Parts   *measure.Parts   `json:"parts"`
}

// FormatRequest is the JSON body for POST /calculator/format. Denominator
// defaults to the server's configured base.
type FormatRequest struct {
	Inches      *float64 `json:"inches" validate:"required"`
	Denominator int      `json:"denominator" validate:"omitempty,oneof=2 4 8 16 32 64"`
}

// FormatResponse is the JSON response for POST /calculator/format.
type FormatResponse struct {
	Display string        `json:"display"`
	Parts   measure.Parts `json:"parts"`
}

// ClassifyResponse is the JSON response for POST /calculator/classify.
type ClassifyResponse struct {
	Mode calc.Mode `json:"mode"`
}

// InterpretRequest is the JSON body for POST /calculator/interpret.
type InterpretRequest struct {
	Text string `json:"text" validate:"required"`
}

// InterpretResponse is the JSON response for POST /calculator/interpret.
// Understood is false when the phrase could not be mapped to a command.
type InterpretResponse struct {
	Command    interpret.Command `json:"command"`
	Input      string            `json:"input"`
	Understood bool              `json:"understood"`
	Mode       calc.Mode         `json:"mode,omitempty"`
	Display    string            `json:"display"`
	Record     *calc.Record      `json:"record,omitempty"`
}

// BatchRequest is the JSON body for POST /calculator/batch.
type BatchRequest struct {
	Inputs []string `json:"inputs" validate:"required,min=1,max=100,dive,max=256"`
}

// BatchResponse is the JSON response for POST /calculator/batch.
type BatchResponse struct {
	Results   []BatchResult `json:"results"`
	Succeeded int           `json:"succeeded"`
	Failed    int           `json:"failed"`
}

// BatchResult is the outcome of one batch input. Failed inputs carry Error
// and Kind and show the error label in Display.
type BatchResult struct {
	Input   string       `json:"input"`
	Mode    calc.Mode    `json:"mode,omitempty"`
	Display string       `json:"display"`
	Value   float64      `json:"value"`
	Record  *calc.Record `json:"record,omitempty"`
	Error   string       `json:"error,omitempty"`
	Kind    calc.Kind    `json:"kind,omitempty"`
}
