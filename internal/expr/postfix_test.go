package expr

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func postfixString(t *testing.T, in string) string {
	t.Helper()
	tokens, err := Tokenize(in)
	require.NoError(t, err)
	postfix, err := ToPostfix(tokens)
	require.NoError(t, err)

	parts := make([]string, len(postfix))
	for i, tok := range postfix {
		parts[i] = tok.String()
	}
	return strings.Join(parts, " ")
}

func TestToPostfix(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "1 + 2 * 3", want: "1 2 3 * +"},
		{in: "(1 + 2) * 3", want: "1 2 + 3 *"},
		{in: "1 - 2 - 3", want: "1 2 - 3 -"},
		{in: "-2 * 3", want: "2 u- 3 *"},
		{in: "2 * -3", want: "2 3 u- *"},
		{in: "-(1 + 2)", want: "1 2 + u-"},
		{in: "4 / -(1 - 3)", want: "4 1 3 - u- /"},
		{in: "--1", want: "1 u- u-"},
	}

	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			assert.Equal(t, tc.want, postfixString(t, tc.in))
		})
	}
}

func TestTokenize(t *testing.T) {
	tokens, err := Tokenize("12.5*(3 -4)")
	require.NoError(t, err)

	kinds := make([]Kind, len(tokens))
	for i, tok := range tokens {
		kinds[i] = tok.Kind
	}
	assert.Equal(t, []Kind{Number, Operator, LeftParen, Number, Operator, Number, RightParen}, kinds)
	assert.Equal(t, 12.5, tokens[0].Value)

	_, err = Tokenize("1 + x")
	assert.ErrorIs(t, err, ErrInvalidCharacter)
}
