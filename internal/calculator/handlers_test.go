package calculator

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"onsite-calculator/internal/calc"
	"onsite-calculator/internal/handlers"
	"onsite-calculator/internal/interpret"
	"onsite-calculator/internal/measure"
	"onsite-calculator/internal/observability"
	"onsite-calculator/internal/testutil"
)

type fakeTranslator struct {
	cmd  interpret.Command
	err  error
	wait bool
	text string
}

func (f *fakeTranslator) Translate(ctx context.Context, text string) (interpret.Command, error) {
	f.text = text
	if f.wait {
		<-ctx.Done()
		return interpret.Command{}, fmt.Errorf("%w: %w", interpret.ErrTranslation, ctx.Err())
	}
	return f.cmd, f.err
}

func newTestRouter(t *testing.T, opts ...Option) http.Handler {
	t.Helper()
	observability.Logger = zap.NewNop()
	require.NoError(t, InitMetrics())

	r := chi.NewRouter()
	RegisterRoutes(r, NewHandler(calc.New(), opts...))
	return r
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) handlers.ErrorResponse {
	t.Helper()
	var body handlers.ErrorResponse
	testutil.DecodeJSONBody(t, w.Body, &body)
	return body
}

func TestEvaluate(t *testing.T) {
	h := newTestRouter(t)

	tests := []struct {
		text    string
		mode    calc.Mode
		display string
	}{
		{text: "10 3/8 + 5", mode: calc.ModeMeasurement, display: `15 3/8"`},
		{text: "5' 2 - 1", mode: calc.ModeMeasurement, display: `5' 1"`},
		{text: "2 + 3 * 4", mode: calc.ModeNormal, display: "14"},
		{text: "10 / 2", mode: calc.ModeNormal, display: "5"},
	}

	for _, tc := range tests {
		t.Run(tc.text, func(t *testing.T) {
			w := testutil.PostJSON(h, "/calculator/evaluate", fmt.Sprintf(`{"text":%q}`, tc.text))
			testutil.CheckResponseCode(t, http.StatusOK, w.Code)

			var res calc.Result
			testutil.DecodeJSONBody(t, w.Body, &res)
			assert.Equal(t, tc.mode, res.Mode)
			assert.Equal(t, tc.display, res.Display)
			require.NotNil(t, res.Record)
			assert.Equal(t, tc.display, res.Record.Result)
		})
	}
}

func TestEvaluateEmpty(t *testing.T) {
	h := newTestRouter(t)

	w := testutil.PostJSON(h, "/calculator/evaluate", `{"text":"   "}`)
	testutil.CheckResponseCode(t, http.StatusOK, w.Code)

	var res calc.Result
	testutil.DecodeJSONBody(t, w.Body, &res)
	assert.True(t, res.Empty)
	assert.Equal(t, calc.EmptyDisplay, res.Display)
	assert.Nil(t, res.Record)
}

func TestEvaluateErrors(t *testing.T) {
	h := newTestRouter(t)

	tests := []struct {
		name string
		body string
		kind string
	}{
		{name: "division by zero", body: `{"text":"5 / 0"}`, kind: string(calc.KindDivisionByZero)},
		{name: "measurement division by zero", body: `{"text":"5' / 0"}`, kind: string(calc.KindDivisionByZero)},
		{name: "invalid character", body: `{"text":"2 $ 3"}`, kind: string(calc.KindInvalidCharacter)},
		{name: "mismatched parens", body: `{"text":"(2 + 3"}`, kind: string(calc.KindMismatchedParentheses)},
		{name: "broken json", body: `{"text":`, kind: KindInvalidRequest},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := testutil.PostJSON(h, "/calculator/evaluate", tc.body)
			testutil.CheckResponseCode(t, http.StatusBadRequest, w.Code)

			body := decodeError(t, w)
			assert.Equal(t, tc.kind, body.Kind)
			assert.NotEmpty(t, body.Error)
		})
	}
}

func TestEvaluateErrorIsLogged(t *testing.T) {
	h := newTestRouter(t)
	core, logs := observer.New(zap.InfoLevel)
	observability.Logger = zap.New(core)
	t.Cleanup(func() { observability.Logger = zap.NewNop() })

	w := testutil.PostJSON(h, "/calculator/evaluate", `{"text":"1 / 0"}`)
	testutil.CheckResponseCode(t, http.StatusBadRequest, w.Code)

	entries := logs.FilterField(zap.String("kind", string(calc.KindDivisionByZero))).All()
	require.Len(t, entries, 1)
	assert.Equal(t, "evaluate", entries[0].ContextMap()["operation"])
}

func TestExpression(t *testing.T) {
	h := newTestRouter(t)

	w := testutil.PostJSON(h, "/calculator/expression", `{"expression":"(2 + 3) * 4"}`)
	testutil.CheckResponseCode(t, http.StatusOK, w.Code)

	var res ExpressionResponse
	testutil.DecodeJSONBody(t, w.Body, &res)
	assert.Equal(t, 20.0, res.Result)
	assert.Equal(t, "20", res.Display)

	w = testutil.PostJSON(h, "/calculator/expression", `{"expression":""}`)
	testutil.CheckResponseCode(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, KindInvalidRequest, decodeError(t, w).Kind)
}

func TestMeasurement(t *testing.T) {
	h := newTestRouter(t)

	tests := []struct {
		body    string
		op      measure.Operator
		display string
		inches  float64
	}{
		{body: `{"a":"5' 2","b":"1","op":"-"}`, op: measure.Subtract, display: `5' 1"`, inches: 61},
		{body: `{"a":"8 1/4","b":"2","op":"×"}`, op: measure.Multiply, display: `1' 4 1/2"`, inches: 16.5},
		{body: `{"a":"10 3/8","b":"5","op":" + "}`, op: measure.Add, display: `15 3/8"`, inches: 15.375},
	}

	for _, tc := range tests {
		t.Run(tc.body, func(t *testing.T) {
			w := testutil.PostJSON(h, "/calculator/measurement", tc.body)
			testutil.CheckResponseCode(t, http.StatusOK, w.Code)

			var res MeasurementResponse
			testutil.DecodeJSONBody(t, w.Body, &res)
			assert.Equal(t, tc.op, res.Op)
			assert.Equal(t, tc.display, res.Display)
			assert.InDelta(t, tc.inches, res.Inches, 1e-9)
			require.NotNil(t, res.Parts)
		})
	}
}

func TestMeasurementErrors(t *testing.T) {
	h := newTestRouter(t)

	tests := []struct {
		name string
		body string
		kind string
	}{
		{name: "unknown operator", body: `{"a":"1","b":"2","op":"^"}`, kind: string(calc.KindInvalidOperator)},
		{name: "zero divisor", body: `{"a":"5'","b":"0","op":"/"}`, kind: string(calc.KindDivisionByZero)},
		{name: "bad operand", body: `{"a":"abc","b":"2","op":"+"}`, kind: string(calc.KindFormat)},
		{name: "missing operator", body: `{"a":"1","b":"2"}`, kind: KindInvalidRequest},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := testutil.PostJSON(h, "/calculator/measurement", tc.body)
			testutil.CheckResponseCode(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, tc.kind, decodeError(t, w).Kind)
		})
	}
}

func TestFormat(t *testing.T) {
	h := newTestRouter(t)

	w := testutil.PostJSON(h, "/calculator/format", `{"inches":15.375}`)
	testutil.CheckResponseCode(t, http.StatusOK, w.Code)

	var res FormatResponse
	testutil.DecodeJSONBody(t, w.Body, &res)
	assert.Equal(t, `1' 3 3/8"`, res.Display)
	assert.Equal(t, measure.Parts{Feet: 1, Inches: 3, Numerator: 3, Denominator: 8}, res.Parts)

	w = testutil.PostJSON(h, "/calculator/format", `{"inches":3.3,"denominator":8}`)
	testutil.CheckResponseCode(t, http.StatusOK, w.Code)
	testutil.DecodeJSONBody(t, w.Body, &res)
	assert.Equal(t, `3 1/4"`, res.Display)

	w = testutil.PostJSON(h, "/calculator/format", `{"inches":1,"denominator":10}`)
	testutil.CheckResponseCode(t, http.StatusBadRequest, w.Code)

	w = testutil.PostJSON(h, "/calculator/format", `{}`)
	testutil.CheckResponseCode(t, http.StatusBadRequest, w.Code)

	w = testutil.PostJSON(h, "/calculator/format", `{"inches":1e21}`)
	testutil.CheckResponseCode(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, KindInvalidInput, decodeError(t, w).Kind)
}

func TestClassify(t *testing.T) {
	h := newTestRouter(t)

	tests := map[string]calc.Mode{
		"10 / 2":    calc.ModeNormal,
		"3/8 + 1":   calc.ModeMeasurement,
		`5" + 2`:    calc.ModeMeasurement,
		"2 + 3 * 4": calc.ModeNormal,
	}

	for text, want := range tests {
		t.Run(text, func(t *testing.T) {
			w := testutil.PostJSON(h, "/calculator/classify", fmt.Sprintf(`{"text":%q}`, text))
			testutil.CheckResponseCode(t, http.StatusOK, w.Code)

			var res ClassifyResponse
			testutil.DecodeJSONBody(t, w.Body, &res)
			assert.Equal(t, want, res.Mode)
		})
	}
}

func TestInterpretUnavailable(t *testing.T) {
	h := newTestRouter(t)

	w := testutil.PostJSON(h, "/calculator/interpret", `{"text":"ten plus five"}`)
	testutil.CheckResponseCode(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, KindUnavailable, decodeError(t, w).Kind)
}

func TestInterpret(t *testing.T) {
	fake := &fakeTranslator{cmd: interpret.Command{
		Mode: calc.ModeMeasurement, A: "10 3/8", B: "5", Op: measure.Add,
	}}
	h := newTestRouter(t, WithTranslator(fake, time.Second))

	w := testutil.PostJSON(h, "/calculator/interpret", `{"text":"ten and three eighths plus five"}`)
	testutil.CheckResponseCode(t, http.StatusOK, w.Code)

	var res InterpretResponse
	testutil.DecodeJSONBody(t, w.Body, &res)
	assert.Equal(t, "ten and three eighths plus five", fake.text)
	assert.True(t, res.Understood)
	assert.Equal(t, "10 3/8 + 5", res.Input)
	assert.Equal(t, calc.ModeMeasurement, res.Mode)
	assert.Equal(t, `15 3/8"`, res.Display)
	require.NotNil(t, res.Record)
	assert.Equal(t, `15.3750"`, res.Record.Approx)
}

func TestInterpretNotUnderstood(t *testing.T) {
	h := newTestRouter(t, WithTranslator(&fakeTranslator{cmd: interpret.Fallback()}, time.Second))

	w := testutil.PostJSON(h, "/calculator/interpret", `{"text":"what is the weather"}`)
	testutil.CheckResponseCode(t, http.StatusOK, w.Code)

	var res InterpretResponse
	testutil.DecodeJSONBody(t, w.Body, &res)
	assert.False(t, res.Understood)
	assert.Equal(t, NotUnderstood, res.Display)
	assert.Nil(t, res.Record)
}

func TestInterpretErrors(t *testing.T) {
	tests := []struct {
		name       string
		translator *fakeTranslator
		timeout    time.Duration
		status     int
		kind       string
	}{
		{
			name:       "upstream failure",
			translator: &fakeTranslator{err: fmt.Errorf("%w: quota", interpret.ErrTranslation)},
			status:     http.StatusBadGateway,
			kind:       KindTranslationFailed,
		},
		{
			name:       "text too long",
			translator: &fakeTranslator{err: interpret.ErrTextTooLong},
			status:     http.StatusBadRequest,
			kind:       KindInvalidInput,
		},
		{
			name:       "timeout",
			translator: &fakeTranslator{wait: true},
			timeout:    10 * time.Millisecond,
			status:     http.StatusGatewayTimeout,
			kind:       KindTimeout,
		},
		{
			name: "command fails to evaluate",
			translator: &fakeTranslator{cmd: interpret.Command{
				Mode: calc.ModeMeasurement, A: "5", B: "0", Op: measure.Divide,
			}},
			status: http.StatusBadRequest,
			kind:   string(calc.KindDivisionByZero),
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			h := newTestRouter(t, WithTranslator(tc.translator, tc.timeout))

			w := testutil.PostJSON(h, "/calculator/interpret", `{"text":"something"}`)
			testutil.CheckResponseCode(t, tc.status, w.Code)
			assert.Equal(t, tc.kind, decodeError(t, w).Kind)
		})
	}
}

func TestBatch(t *testing.T) {
	h := newTestRouter(t)

	w := testutil.PostJSON(h, "/calculator/batch", `{"inputs":["1 + 1","5 / 0","3/8 + 1/8",""]}`)
	testutil.CheckResponseCode(t, http.StatusOK, w.Code)

	var res BatchResponse
	testutil.DecodeJSONBody(t, w.Body, &res)
	require.Len(t, res.Results, 4)
	assert.Equal(t, 3, res.Succeeded)
	assert.Equal(t, 1, res.Failed)

	assert.Equal(t, "2", res.Results[0].Display)
	assert.Equal(t, calc.KindDivisionByZero, res.Results[1].Kind)
	assert.Equal(t, "Division by Zero", res.Results[1].Display)
	assert.Equal(t, `1/2"`, res.Results[2].Display)
	assert.Equal(t, calc.EmptyDisplay, res.Results[3].Display)
	assert.Nil(t, res.Results[3].Record)
}

func TestBatchValidation(t *testing.T) {
	h := newTestRouter(t)

	w := testutil.PostJSON(h, "/calculator/batch", `{"inputs":[]}`)
	testutil.CheckResponseCode(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, KindInvalidRequest, decodeError(t, w).Kind)
}

func TestDescribe(t *testing.T) {
	status, kind, _ := describe(context.DeadlineExceeded)
	assert.Equal(t, http.StatusGatewayTimeout, status)
	assert.Equal(t, KindTimeout, kind)

	status, kind, msg := describe(fmt.Errorf("unexpected"))
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, KindInternal, kind)
	assert.Equal(t, "internal error", msg)
}
