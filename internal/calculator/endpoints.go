package calculator

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"onsite-calculator/internal/calc"
	"onsite-calculator/internal/interpret"
	"onsite-calculator/internal/measure"
	"onsite-calculator/internal/observability"
)

// NotUnderstood is displayed when the interpreter returns no command.
const NotUnderstood = "Not Understood"

// Evaluate handles POST /calculator/evaluate: classify the text, then run
// it through the measurement engine or the expression evaluator.
func (h *Handler) Evaluate(w http.ResponseWriter, r *http.Request) {
	handle(w, r, "evaluate", func(ctx context.Context, span trace.Span, req EvaluateRequest) (outcome, error) {
		res, err := h.engine.Evaluate(req.Text)
		if err != nil {
			return outcome{}, err
		}
		if res.Empty {
			return outcome{body: res}, nil
		}
		return outcome{body: res, mode: res.Mode, value: res.Value}, nil
	})
}

// Expression handles POST /calculator/expression.
func (h *Handler) Expression(w http.ResponseWriter, r *http.Request) {
	handle(w, r, "expression", func(ctx context.Context, span trace.Span, req ExpressionRequest) (outcome, error) {
		res, err := h.engine.EvaluateExpression(req.Expression)
		if err != nil {
			return outcome{}, err
		}
		return outcome{
			body: ExpressionResponse{Result: res.Value, Display: res.Display},
			mode: res.Mode, value: res.Value,
		}, nil
	})
}

// Measurement handles POST /calculator/measurement.
func (h *Handler) Measurement(w http.ResponseWriter, r *http.Request) {
	handle(w, r, "measurement", func(ctx context.Context, span trace.Span, req MeasurementRequest) (outcome, error) {
		op, err := measure.ParseOperator(strings.TrimSpace(req.Op))
		if err != nil {
			return outcome{}, err
		}
		span.SetAttributes(
			attribute.String("calculator.operator", op.Name()),
			attribute.String("calculator.operand.a", req.A),
			attribute.String("calculator.operand.b", req.B),
		)

		res, err := h.engine.ApplyMeasurement(req.A, req.B, op)
		if err != nil {
			return outcome{}, err
		}
		return outcome{
			body: MeasurementResponse{
				A:       req.A,
				B:       req.B,
				Op:      op,
				Inches:  res.Value,
				Display: res.Display,
				Approx:  res.Record.Approx,
				Parts:   res.Parts,
			},
			mode:  res.Mode,
			value: res.Value,
		}, nil
	})
}

// Format handles POST /calculator/format.
func (h *Handler) Format(w http.ResponseWriter, r *http.Request) {
	handle(w, r, "format", func(ctx context.Context, span trace.Span, req FormatRequest) (outcome, error) {
		base := req.Denominator
		if base == 0 {
			base = h.engine.DenominatorBase()
		}
		span.SetAttributes(attribute.Int("calculator.denominator", base))

		inches := *req.Inches
		if !measure.Representable(inches) {
			return outcome{}, &failure{
				status: http.StatusBadRequest,
				kind:   KindInvalidInput,
				msg:    fmt.Sprintf("inches %g is out of range", inches),
			}
		}
		return outcome{
			body: FormatResponse{
				Display: measure.Format(inches, base),
				Parts:   measure.Decompose(inches, base),
			},
		}, nil
	})
}

// Classify handles POST /calculator/classify.
func (h *Handler) Classify(w http.ResponseWriter, r *http.Request) {
	handle(w, r, "classify", func(ctx context.Context, span trace.Span, req EvaluateRequest) (outcome, error) {
		mode := h.engine.ClassifyMode(req.Text)
		span.SetAttributes(attribute.String("calculator.mode", string(mode)))
		return outcome{body: ClassifyResponse{Mode: mode}}, nil
	})
}

// Interpret handles POST /calculator/interpret: translate a free-form
// phrase into a command and evaluate it.
func (h *Handler) Interpret(w http.ResponseWriter, r *http.Request) {
	handle(w, r, "interpret", func(ctx context.Context, span trace.Span, req InterpretRequest) (outcome, error) {
		if h.translator == nil {
			return outcome{}, &failure{
				status: http.StatusServiceUnavailable,
				kind:   KindUnavailable,
				msg:    "interpreter is not configured",
			}
		}

		if h.timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, h.timeout)
			defer cancel()
		}

		cmd, err := h.translator.Translate(ctx, req.Text)
		if err != nil {
			return outcome{}, err
		}

		span.SetAttributes(
			attribute.String("interpret.mode", string(cmd.Mode)),
			attribute.Bool("interpret.understood", !cmd.Empty()),
		)
		if cmd.Empty() {
			span.AddEvent("interpret.not_understood")
			return outcome{body: InterpretResponse{Command: cmd, Display: NotUnderstood}}, nil
		}

		res, err := interpret.Evaluate(h.engine, cmd)
		if err != nil {
			return outcome{}, err
		}
		return outcome{
			body: InterpretResponse{
				Command:    cmd,
				Input:      cmd.Text(),
				Understood: true,
				Mode:       res.Mode,
				Display:    res.Display,
				Record:     res.Record,
			},
			mode:  res.Mode,
			value: res.Value,
		}, nil
	})
}

// Batch handles POST /calculator/batch: every input is evaluated on its
// own child span. A failing input is reported in its slot and does not
// stop the rest.
func (h *Handler) Batch(w http.ResponseWriter, r *http.Request) {
	handle(w, r, "batch", func(ctx context.Context, span trace.Span, req BatchRequest) (outcome, error) {
		logger := observability.LoggerWithTrace(ctx)
		span.SetAttributes(attribute.Int("batch.inputs_count", len(req.Inputs)))

		resp := BatchResponse{Results: make([]BatchResult, 0, len(req.Inputs))}
		for i, input := range req.Inputs {
			_, itemSpan := tracer.Start(ctx, fmt.Sprintf("calculator.batch.item.%d", i),
				trace.WithAttributes(
					attribute.Int("batch.item.index", i),
					attribute.String("batch.item.input", input),
				),
			)

			res, err := h.engine.Evaluate(input)
			if err != nil {
				kind := calc.KindOf(err)
				itemSpan.RecordError(err)
				itemSpan.SetStatus(codes.Error, string(kind))
				itemSpan.End()

				errorCounter.Add(ctx, 1, metric.WithAttributes(
					attribute.String("operation", "batch"),
					attribute.String("kind", string(kind)),
				))
				logger.Warn("batch item failed",
					zap.Int("index", i),
					zap.String("kind", string(kind)),
					zap.Error(err),
				)

				resp.Failed++
				resp.Results = append(resp.Results, BatchResult{
					Input:   input,
					Display: kind.Label(),
					Error:   err.Error(),
					Kind:    kind,
				})
				continue
			}

			if !res.Empty {
				modeTotal.WithLabelValues(string(res.Mode)).Inc()
			}
			itemSpan.SetAttributes(
				attribute.String("batch.item.mode", string(res.Mode)),
				attribute.String("batch.item.display", res.Display),
			)
			itemSpan.SetStatus(codes.Ok, "")
			itemSpan.End()

			resp.Succeeded++
			resp.Results = append(resp.Results, BatchResult{
				Input:   input,
				Mode:    res.Mode,
				Display: res.Display,
				Value:   res.Value,
				Record:  res.Record,
			})
		}

		span.AddEvent("batch.complete", trace.WithAttributes(
			attribute.Int("succeeded", resp.Succeeded),
			attribute.Int("failed", resp.Failed),
		))
		return outcome{body: resp}, nil
	})
}
