package repl

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"onsite-calculator/internal/calc"
	"onsite-calculator/internal/interpret"
	"onsite-calculator/internal/measure"
)

type stubTranslator struct {
	cmd interpret.Command
	err error
}

func (s stubTranslator) Translate(context.Context, string) (interpret.Command, error) {
	return s.cmd, s.err
}

func newShell(t *testing.T, cfg Config) (*Shell, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	return New(calc.New(), cfg, &out, nil), &out
}

func TestExecuteExpression(t *testing.T) {
	sh, out := newShell(t, Config{})
	ctx := context.Background()

	require.NoError(t, sh.Execute(ctx, "10 3/8 + 5"))
	assert.Equal(t, "= 15 3/8\"\n", out.String())

	out.Reset()
	require.NoError(t, sh.Execute(ctx, ":last"))
	assert.Equal(t, "10 3/8 + 5 = 15 3/8\"  (15.3750\")\n", out.String())

	out.Reset()
	require.NoError(t, sh.Execute(ctx, "(2 + 3) * 4"))
	assert.Equal(t, "= 20\n", out.String())
}

func TestExecuteErrorShowsLabel(t *testing.T) {
	sh, out := newShell(t, Config{})

	require.NoError(t, sh.Execute(context.Background(), "5 / 0"))
	assert.Equal(t, "= Division by Zero\n", out.String())
}

func TestExecuteKeypad(t *testing.T) {
	sh, out := newShell(t, Config{})
	ctx := context.Background()

	require.NoError(t, sh.Execute(ctx, ":press 1 0 3/8 + 5 6"))
	assert.Equal(t, "10 3/8 + 56\n", out.String())

	out.Reset()
	require.NoError(t, sh.Execute(ctx, ":back"))
	assert.Equal(t, "10 3/8 + 5\n", out.String())

	out.Reset()
	require.NoError(t, sh.Execute(ctx, ":eq"))
	assert.Equal(t, "= 15 3/8\"\n", out.String())

	out.Reset()
	require.NoError(t, sh.Execute(ctx, ":clear"))
	assert.Equal(t, "0\n", out.String())
}

func TestExecuteBase(t *testing.T) {
	sh, out := newShell(t, Config{})
	ctx := context.Background()

	require.NoError(t, sh.Execute(ctx, ":base 8"))
	out.Reset()
	require.NoError(t, sh.Execute(ctx, "3.3 + 0"))
	assert.Equal(t, "= 3.3\n", out.String())

	out.Reset()
	require.NoError(t, sh.Execute(ctx, `3.3" + 0`))
	assert.Equal(t, "= 3 1/4\"\n", out.String())

	assert.Error(t, sh.Execute(ctx, ":base 10"))
}

func TestExecuteInterpret(t *testing.T) {
	cmd := interpret.Command{Mode: calc.ModeMeasurement, A: "10", B: "5", Op: measure.Add}
	sh, out := newShell(t, Config{Translator: stubTranslator{cmd: cmd}})

	require.NoError(t, sh.Execute(context.Background(), ":ai ten plus five inches"))
	assert.Equal(t, "  10 + 5\n= 1' 3\"\n", out.String())
}

func TestExecuteInterpretNotUnderstood(t *testing.T) {
	sh, out := newShell(t, Config{Translator: stubTranslator{cmd: interpret.Fallback()}})

	require.NoError(t, sh.Execute(context.Background(), ":ai hello"))
	assert.Equal(t, "Not Understood\n", out.String())
}

func TestExecuteInterpretErrors(t *testing.T) {
	sh, _ := newShell(t, Config{})
	assert.Error(t, sh.Execute(context.Background(), ":ai ten"))

	upstream := errors.New("boom")
	sh, _ = newShell(t, Config{Translator: stubTranslator{err: upstream}})
	assert.ErrorIs(t, sh.Execute(context.Background(), ":ai ten"), upstream)
}

func TestExecuteCommands(t *testing.T) {
	sh, out := newShell(t, Config{})
	ctx := context.Background()

	assert.ErrorIs(t, sh.Execute(ctx, ":quit"), errQuit)
	assert.Error(t, sh.Execute(ctx, ":bogus"))

	require.NoError(t, sh.Execute(ctx, ":last"))
	assert.Equal(t, "no history\n", out.String())

	out.Reset()
	require.NoError(t, sh.Execute(ctx, ":help"))
	assert.Contains(t, out.String(), ":press")
}
