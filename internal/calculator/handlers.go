package calculator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"onsite-calculator/internal/calc"
	"onsite-calculator/internal/handlers"
	"onsite-calculator/internal/interpret"
	"onsite-calculator/internal/observability"
)

// tracer is the calculator's dedicated OpenTelemetry tracer.
var tracer = otel.Tracer("calculator")

var validate = validator.New()

const maxBodyBytes = 64 << 10

// Error kinds used by the HTTP layer in addition to calc.Kind values.
const (
	KindInvalidRequest    = "invalid_request"
	KindInvalidInput      = "invalid_input"
	KindUnavailable       = "unavailable"
	KindTranslationFailed = "translation_failed"
	KindTimeout           = "timeout"
	KindInternal          = "internal"
)

// Handler serves the calculator endpoints. It is safe for concurrent use.
type Handler struct {
	engine     *calc.Engine
	translator interpret.Translator
	timeout    time.Duration
}

// Option configures a Handler.
type Option func(*Handler)

// WithTranslator enables POST /calculator/interpret. Each call is bounded
// by timeout when it is positive.
func WithTranslator(t interpret.Translator, timeout time.Duration) Option {
	return func(h *Handler) {
		h.translator = t
		h.timeout = timeout
	}
}

// NewHandler returns a Handler evaluating with engine.
func NewHandler(engine *calc.Engine, opts ...Option) *Handler {
	h := &Handler{engine: engine}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// outcome is what an operation hands back to handle. An empty mode means
// the operation did not evaluate anything.
type outcome struct {
	body  any
	mode  calc.Mode
	value float64
}

// failure is an error with an explicit HTTP status and kind.
type failure struct {
	status int
	kind   string
	msg    string
	err    error
}

func (f *failure) Error() string {
	if f.err == nil {
		return f.msg
	}
	return fmt.Sprintf("%s: %v", f.msg, f.err)
}

func (f *failure) Unwrap() error { return f.err }

// handle is the shared implementation of every calculator endpoint: child
// span, body decoding and validation, timing, metrics, trace-correlated
// logging and the JSON response.
func handle[Req any](w http.ResponseWriter, r *http.Request, opName string, compute func(context.Context, trace.Span, Req) (outcome, error)) {
	ctx := r.Context()
	logger := observability.LoggerWithTrace(ctx)
	requestID := observability.RequestIDFromContext(ctx)

	ctx, span := tracer.Start(ctx, "calculator."+opName,
		trace.WithAttributes(
			attribute.String("calculator.operation", opName),
			attribute.String("request.id", requestID),
		),
	)
	defer span.End()

	var req Req
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, opName, KindInvalidRequest, "invalid request body", err, http.StatusBadRequest, w)
		return
	}
	if err := validate.Struct(req); err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, opName, KindInvalidRequest, err.Error(), err, http.StatusBadRequest, w)
		return
	}

	start := time.Now()
	out, err := compute(ctx, span, req)
	elapsed := float64(time.Since(start).Microseconds()) / 1000.0 // ms

	if err != nil {
		status, kind, msg := describe(err)
		observability.RecordError(ctx, span, logger, errorCounter, opName, kind, msg, err, status, w)
		return
	}

	attrs := []attribute.KeyValue{attribute.String("operation", opName)}
	if out.mode != "" {
		attrs = append(attrs, attribute.String("mode", string(out.mode)))
		modeTotal.WithLabelValues(string(out.mode)).Inc()
		resultGauge.Record(ctx, out.value, metric.WithAttributes(attrs...))
		span.SetAttributes(
			attribute.String("calculator.mode", string(out.mode)),
			attribute.Float64("calculator.result", out.value),
		)
	}
	opsCounter.Add(ctx, 1, metric.WithAttributes(attrs...))
	opsHistogram.Record(ctx, elapsed, metric.WithAttributes(attrs...))

	span.AddEvent("computation.complete", trace.WithAttributes(
		attribute.Float64("duration_ms", elapsed),
	))
	span.SetStatus(codes.Ok, "")

	logger.Info("calculator operation completed",
		zap.String("operation", opName),
		zap.String("mode", string(out.mode)),
		zap.Float64("result", out.value),
		zap.String("request_id", requestID),
		zap.Float64("duration_ms", elapsed),
	)

	handlers.WriteJSON(w, http.StatusOK, out.body)
}

// describe maps an operation error onto a status, kind and message.
func describe(err error) (int, string, string) {
	var f *failure
	if errors.As(err, &f) {
		return f.status, f.kind, f.msg
	}

	var ce *calc.Error
	if errors.As(err, &ce) {
		return http.StatusBadRequest, string(ce.Kind), ce.Err.Error()
	}

	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, KindTimeout, "interpreter timed out"
	case errors.Is(err, interpret.ErrEmptyText), errors.Is(err, interpret.ErrTextTooLong):
		return http.StatusBadRequest, KindInvalidInput, err.Error()
	case errors.Is(err, interpret.ErrTranslation):
		return http.StatusBadGateway, KindTranslationFailed, "interpreter call failed"
	}

	if kind := calc.KindOf(err); kind != calc.KindUnknown {
		return http.StatusBadRequest, string(kind), err.Error()
	}
	return http.StatusInternalServerError, KindInternal, "internal error"
}
