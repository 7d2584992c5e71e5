package dice_test

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/dnd/internal/dice"
)

func TestTokenize(t *testing.T) {
	num := dice.Num
	op := dice.Op
	cases := []struct {
		in   string
		want []dice.Token
	}{
		{"3d6+2", []dice.Token{num(3), op(dice.KindDice), num(6), op(dice.KindAdd), num(2)}},
		{"4d6:3", []dice.Token{num(4), op(dice.KindDice), num(6), op(dice.KindChoose), num(3)}},
		{"2x(1d20+5)", []dice.Token{
			num(2), op(dice.KindRepeat), op(dice.KindLParen), num(1), op(dice.KindDice), num(20),
			op(dice.KindAdd), num(5), op(dice.KindRParen),
		}},
		{"10*4/2%3-1", []dice.Token{
			num(10), op(dice.KindMultiply), num(4), op(dice.KindDivide), num(2),
			op(dice.KindModulo), num(3), op(dice.KindSubtract), num(1),
		}},
		{" 12 +  7 ", []dice.Token{num(12), op(dice.KindAdd), num(7)}},
		{"", nil},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := dice.Tokenize(tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestTokenize_ImplicitCount(t *testing.T) {
	got, err := dice.Tokenize("d6")
	require.NoError(t, err)
	explicit, err := dice.Tokenize("1d6")
	require.NoError(t, err)
	assert.Equal(t, explicit, got, "d6 must tokenize exactly like 1d6")

	got, err = dice.Tokenize("2*d4")
	require.NoError(t, err)
	assert.Equal(t, []dice.Token{
		dice.Num(2), dice.Op(dice.KindMultiply), dice.Num(1), dice.Op(dice.KindDice), dice.Num(4),
	}, got)

	got, err = dice.Tokenize("(1+1)d6")
	require.NoError(t, err)
	assert.Equal(t, []dice.Token{
		dice.Op(dice.KindLParen), dice.Num(1), dice.Op(dice.KindAdd), dice.Num(1),
		dice.Op(dice.KindRParen), dice.Op(dice.KindDice), dice.Num(6),
	}, got, "a closing paren supplies the count")
}

func TestTokenize_WhitespaceSplitsNumbers(t *testing.T) {
	got, err := dice.Tokenize("1 2")
	require.NoError(t, err)
	assert.Equal(t, []dice.Token{dice.Num(1), dice.Num(2)}, got)
	assert.False(t, dice.Validate(got))
}

func TestTokenize_InvalidCharacter(t *testing.T) {
	for _, in := range []string{"1+a", "2^3", "d6!", "1d6 kh3", "1\t+2", "1\n+2", "1d6\r"} {
		_, err := dice.Tokenize(in)
		require.Error(t, err, in)
		assert.ErrorIs(t, err, dice.ErrInvalidOperator, in)
		assert.False(t, dice.IsFatal(err), "invalid characters are recoverable: %q", in)
	}
}

func TestTokenize_NumberOutOfRange(t *testing.T) {
	_, err := dice.Tokenize("1d99999999999999999999999")
	require.Error(t, err)
	assert.ErrorIs(t, err, dice.ErrNumberRange)
	assert.False(t, dice.IsFatal(err))
}

func TestTokenize_Token_String(t *testing.T) {
	toks, err := dice.Tokenize("2x(d20+5):1")
	require.NoError(t, err)
	s := ""
	for _, tok := range toks {
		s += tok.String()
	}
	assert.Equal(t, "2x(1d20+5):1", s)
}

func TestProperty_Tokenize_DigitRunIsOneNumber(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		n := rapid.IntRange(0, 1_000_000_000).Draw(rt, "n")
		toks, err := dice.Tokenize(strconv.Itoa(n))
		require.NoError(rt, err)
		require.Len(rt, toks, 1)
		assert.Equal(rt, dice.Num(n), toks[0])
	})
}
