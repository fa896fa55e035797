package calculator

import (
	"math"
	"strings"
	"testing"

	"github.com/charithe/scicalc/pkg/expr"
	"github.com/stretchr/testify/require"
)

func appendAll(b *Buffer, tokens ...string) {
	for _, tok := range tokens {
		b.Append(tok)
	}
}

func TestBufferAppend(t *testing.T) {
	testCases := []struct {
		name        string
		tokens      []string
		wantDisplay string
	}{
		{name: "digits", tokens: []string{"1", "2", ".", "5"}, wantDisplay: "12.5"},
		{name: "implicitPi", tokens: []string{"5", "π"}, wantDisplay: "5*π"},
		{name: "implicitE", tokens: []string{"5", "e"}, wantDisplay: "5*e"},
		{name: "implicitParen", tokens: []string{"5", "("}, wantDisplay: "5*("},
		{name: "implicitAfterDecimalPoint", tokens: []string{"5", ".", "π"}, wantDisplay: "5.*π"},
		{name: "noImplicitForFunctions", tokens: []string{"5", "sin("}, wantDisplay: "5sin("},
		{name: "noImplicitAfterParen", tokens: []string{"(", "1", ")", "("}, wantDisplay: "(1)("},
		{name: "noImplicitAfterConstant", tokens: []string{"π", "("}, wantDisplay: "π("},
		{name: "noImplicitAfterOperator", tokens: []string{"2", "+", "π"}, wantDisplay: "2+π"},
		// A loose numeric check would treat the empty last character as a
		// number and produce "*π"; only 0-9 and '.' count.
		{name: "emptyBufferConstant", tokens: []string{"π"}, wantDisplay: "π"},
		{name: "shorthandPowers", tokens: []string{"3", "^2", "+", "2", "^3"}, wantDisplay: "3^2+2^3"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			b := NewBuffer(MaxCharacters)
			appendAll(b, tc.tokens...)
			require.Equal(t, tc.wantDisplay, b.Display())
			require.Equal(t, Editing, b.State())
		})
	}
}

func TestBufferSlidingWindow(t *testing.T) {
	t.Run("singleCharacter", func(t *testing.T) {
		b := NewBuffer(MaxCharacters)
		full := "1234567890123456789012"
		for _, r := range full {
			b.Append(string(r))
		}
		require.Equal(t, MaxCharacters, b.Len())

		b.Append("+")
		require.Equal(t, MaxCharacters, b.Len())
		require.Equal(t, full[1:]+"+", b.Display())
	})

	t.Run("multiCharacterToken", func(t *testing.T) {
		b := NewBuffer(MaxCharacters)
		appendAll(b, strings.Split(strings.Repeat("9", MaxCharacters), "")...)

		b.Append("sin(")
		require.Equal(t, MaxCharacters, b.Len())
		require.Equal(t, strings.Repeat("9", MaxCharacters-4)+"sin(", b.Display())
	})

	t.Run("implicitMultiplicationCountsOperator", func(t *testing.T) {
		b := NewBuffer(MaxCharacters)
		appendAll(b, strings.Split(strings.Repeat("9", MaxCharacters), "")...)

		b.Append("π")
		require.Equal(t, MaxCharacters, b.Len())
		require.True(t, strings.HasSuffix(b.Display(), "9*π"))
	})

	t.Run("multiByteCharactersCountOnce", func(t *testing.T) {
		b := NewBuffer(MaxCharacters)
		for i := 0; i < MaxCharacters; i++ {
			b.Append("π")
		}
		require.Equal(t, MaxCharacters, b.Len())
		require.Equal(t, strings.Repeat("π", MaxCharacters), b.Display())
	})
}

func TestBufferDeleteLast(t *testing.T) {
	b := NewBuffer(MaxCharacters)
	appendAll(b, "1", "2", "√(")
	b.DeleteLast()
	require.Equal(t, "12√", b.Display())
	b.DeleteLast()
	b.DeleteLast()
	b.DeleteLast()
	require.Equal(t, "", b.Display())

	// deleting from an empty buffer is a no-op
	b.DeleteLast()
	require.Equal(t, "", b.Display())
	require.Equal(t, Editing, b.State())

	// on an error display, delete clears everything
	appendAll(b, "1", "/", "0")
	require.Equal(t, MathErrorText, b.Evaluate())
	b.DeleteLast()
	require.Equal(t, "", b.Display())
	require.Equal(t, Editing, b.State())
}

func TestBufferClear(t *testing.T) {
	b := NewBuffer(MaxCharacters)
	appendAll(b, "2", "+")
	b.Evaluate()
	require.Equal(t, ErrorDisplayed, b.State())

	b.Clear()
	require.Equal(t, "", b.Display())
	require.Equal(t, Editing, b.State())
	require.Equal(t, expr.None, b.ErrorKind())

	b.Clear()
	require.Equal(t, "", b.Display())
	require.Equal(t, Editing, b.State())
}

func TestBufferEvaluate(t *testing.T) {
	testCases := []struct {
		name        string
		tokens      []string
		wantDisplay string
		wantState   State
		wantKind    expr.Kind
	}{
		{name: "precedence", tokens: []string{"2", "+", "3", "*", "4"}, wantDisplay: "14", wantState: Editing},
		{name: "rightAssocPower", tokens: []string{"2", "^", "3", "^", "2"}, wantDisplay: "512", wantState: Editing},
		{name: "abs", tokens: []string{"|", "3", "-", "5", "|"}, wantDisplay: "2", wantState: Editing},
		{name: "sqrt", tokens: []string{"√(", "9", ")"}, wantDisplay: "3", wantState: Editing},
		{name: "square", tokens: []string{"4", "^2"}, wantDisplay: "16", wantState: Editing},
		{name: "implicitParen", tokens: []string{"2", "(", "3", "+", "1", ")"}, wantDisplay: "8", wantState: Editing},
		{name: "decimal", tokens: []string{"0", ".", "1", "+", "0", ".", "2"}, wantDisplay: "0.30000000000000004", wantState: Editing},
		{name: "divideByZero", tokens: []string{"1", "/", "0"}, wantDisplay: MathErrorText, wantState: ErrorDisplayed, wantKind: expr.Math},
		{name: "logZero", tokens: []string{"log(", "0", ")"}, wantDisplay: MathErrorText, wantState: ErrorDisplayed, wantKind: expr.Math},
		{name: "trailingOperator", tokens: []string{"2", "+"}, wantDisplay: SyntaxErrorText, wantState: ErrorDisplayed, wantKind: expr.Syntax},
		{name: "empty", tokens: nil, wantDisplay: SyntaxErrorText, wantState: ErrorDisplayed, wantKind: expr.Syntax},
		{name: "unmatchedBar", tokens: []string{"|", "3"}, wantDisplay: SyntaxErrorText, wantState: ErrorDisplayed, wantKind: expr.Syntax},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			b := NewBuffer(MaxCharacters)
			appendAll(b, tc.tokens...)

			haveDisplay := b.Evaluate()
			require.Equal(t, tc.wantDisplay, haveDisplay)
			require.Equal(t, tc.wantDisplay, b.Display())
			require.Equal(t, tc.wantState, b.State())
			require.Equal(t, tc.wantKind, b.ErrorKind())
		})
	}
}

func TestBufferResultRoundTrip(t *testing.T) {
	b := NewBuffer(MaxCharacters)
	appendAll(b, "2", "+", "2")
	require.Equal(t, "4", b.Evaluate())
	require.Equal(t, Editing, b.State())

	appendAll(b, "+", "1")
	require.Equal(t, "4+1", b.Display())
	require.Equal(t, "5", b.Evaluate())

	// a number result keeps implicit multiplication working
	b.Append("π")
	require.Equal(t, "5*π", b.Display())
}

func TestBufferEditAfterError(t *testing.T) {
	b := NewBuffer(MaxCharacters)
	appendAll(b, "1", "/", "0")
	require.Equal(t, MathErrorText, b.Evaluate())

	// the error text is cleared before the token lands, so no implicit '*'
	b.Append("(")
	require.Equal(t, "(", b.Display())
	require.Equal(t, Editing, b.State())

	b.Evaluate()
	require.Equal(t, SyntaxErrorText, b.Display())
	b.Append("7")
	require.Equal(t, "7", b.Display())
}

func TestBufferWidth(t *testing.T) {
	require.Equal(t, MaxCharacters, NewBuffer(0).width)
	require.Equal(t, len(SyntaxErrorText), NewBuffer(3).width)

	b := NewBuffer(12)
	appendAll(b, "0", ".", "1", "+", "0", ".", "2")
	require.Equal(t, "0.3", b.Evaluate())
	require.True(t, b.Len() <= 12)
}

func TestBufferEvaluateRoundsLongResults(t *testing.T) {
	t.Run("fullWidth", func(t *testing.T) {
		b := NewBuffer(MaxCharacters)
		appendAll(b, "-", "1", "/", "3", "^", "2", "1")

		have := b.Evaluate()
		require.Equal(t, Editing, b.State())
		require.True(t, b.Len() <= MaxCharacters, have)

		v, err := expr.Evaluate(have)
		require.NoError(t, err)
		require.InEpsilon(t, -1/math.Pow(3, 21), v, 1e-12)
	})

	t.Run("narrow", func(t *testing.T) {
		b := NewBuffer(12)
		appendAll(b, "2", "/", "3")
		require.Equal(t, "0.6666666667", b.Evaluate())
		require.Equal(t, 12, b.Len())
	})
}
