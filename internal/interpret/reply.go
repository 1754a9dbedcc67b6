package interpret

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"onsite-calculator/internal/calc"
	"onsite-calculator/internal/measure"
)

var validate = validator.New()

// rawReply is the loosely typed reply. Models sometimes send numbers where
// strings are expected, so every field is decoded as any.
type rawReply struct {
	Mode       any `json:"mode"`
	Expression any `json:"expression"`
	A          any `json:"a"`
	B          any `json:"b"`
	Op         any `json:"op"`
}

type normalReply struct {
	Expression string `validate:"max=256"`
}

type measurementReply struct {
	A  string `validate:"required,max=64"`
	B  string `validate:"required,max=64"`
	Op string `validate:"required,oneof=+ - * /"`
}

// ParseReply extracts a Command from model output. Code fences and any
// text around the outermost JSON object are ignored; anything that still
// fails to decode or validate yields Fallback.
func ParseReply(text string) Command {
	first := strings.Index(text, "{")
	last := strings.LastIndex(text, "}")
	if first == -1 || last < first {
		return Fallback()
	}

	var raw rawReply
	if err := json.Unmarshal([]byte(text[first:last+1]), &raw); err != nil {
		return Fallback()
	}
	return sanitize(raw)
}

// sanitize validates raw against the command contract.
func sanitize(raw rawReply) Command {
	switch calc.Mode(stringField(raw.Mode)) {
	case calc.ModeNormal:
		r := normalReply{Expression: strings.TrimSpace(stringField(raw.Expression))}
		if err := validate.Struct(r); err != nil {
			return Fallback()
		}
		return Command{Mode: calc.ModeNormal, Expression: r.Expression}

	case calc.ModeMeasurement:
		r := measurementReply{
			A:  strings.TrimSpace(stringField(raw.A)),
			B:  strings.TrimSpace(stringField(raw.B)),
			Op: strings.TrimSpace(stringField(raw.Op)),
		}
		if err := validate.Struct(r); err != nil {
			return Fallback()
		}
		return Command{Mode: calc.ModeMeasurement, A: r.A, B: r.B, Op: measure.Operator(r.Op)}
	}

	return Fallback()
}

func stringField(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	}
	return ""
}
