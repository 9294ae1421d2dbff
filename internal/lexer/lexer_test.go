package lexer

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func kinds(t *testing.T, src string) []Kind {
	t.Helper()
	l := New(bytes.NewReader([]byte(src)))
	var out []Kind
	for {
		sym, err := l.Next()
		require.NoError(t, err)
		out = append(out, sym.Kind)
		if sym.Kind == TEof {
			return out
		}
	}
}

func TestStringCommand(t *testing.T) {
	l := New(bytes.NewReader([]byte("stringln hello world\n")))
	sym, err := l.Next()
	require.NoError(t, err)
	require.Equal(t, TCmdStringln, sym.Kind)

	sym, err = l.Next()
	require.NoError(t, err)
	require.Equal(t, TString, sym.Kind)
	require.Equal(t, "hello world", sym.Content)

	sym, err = l.Next()
	require.NoError(t, err)
	require.Equal(t, TEol, sym.Kind)
}

func TestDelayExpression(t *testing.T) {
	got := kinds(t, "delay 5+3*2\n")
	require.Equal(t, []Kind{
		TCmdDelay, TNumber, TAdd, TNumber, TMul, TNumber, TEol, TEof,
	}, got)
}

func TestVariableAssignment(t *testing.T) {
	got := kinds(t, "var $x = 10\n$x = $x + 1\n")
	require.Equal(t, []Kind{
		TCmdVar, TVariable, TAssign, TNumber, TEol,
		TVariable, TAssign, TVariable, TAdd, TNumber, TEol,
		TEof,
	}, got)
}

func TestComment(t *testing.T) {
	got := kinds(t, "# a comment\nstring hi\n")
	require.Equal(t, []Kind{TComment, TEol, TCmdString, TString, TEol, TEof}, got)
}

func TestKeyCombo(t *testing.T) {
	got := kinds(t, "ctrl alt delete\n")
	require.Equal(t, []Kind{TCmdKey, TKey, TKey, TEol, TEof}, got)
}

func TestHoldRelease(t *testing.T) {
	got := kinds(t, "hold ctrl\nrelease ctrl\n")
	require.Equal(t, []Kind{
		TCmdHold, TKey, TEol,
		TCmdRelease, TKey, TEol,
		TEof,
	}, got)
}

func TestOperators(t *testing.T) {
	got := kinds(t, "var $x = 1 == 2 != 3 <= 4 >= 5 && 6 || 7 << 8 >> 9 & 10 | 11 ~1\n")
	require.Contains(t, got, TEq)
	require.Contains(t, got, TNeq)
	require.Contains(t, got, TLeq)
	require.Contains(t, got, TGeq)
	require.Contains(t, got, TAnd)
	require.Contains(t, got, TOr)
	require.Contains(t, got, TShl)
	require.Contains(t, got, TShr)
	require.Contains(t, got, TBitAnd)
	require.Contains(t, got, TBitOr)
	require.Contains(t, got, TBitNot)
}

func TestFunctionHeader(t *testing.T) {
	got := kinds(t, "function add($a, $b)\nreturn $a + $b\nend_function\n")
	require.Equal(t, []Kind{
		TCmdFunction, TName, TOpenPar, TVariable, TComma, TVariable, TClosePar, TEol,
		TCmdReturn, TVariable, TAdd, TVariable, TEol,
		TCmdEndFunction, TEol,
		TEof,
	}, got)
}

// TestPositionReentrancy is spec.md §3's re-entrancy invariant: jumping to
// a recorded Position and calling Next reproduces the same symbol.
func TestPositionReentrancy(t *testing.T) {
	l := New(bytes.NewReader([]byte("while $x\nstring a\nend_while\n")))

	p := l.Pos()
	first, err := l.Next()
	require.NoError(t, err)
	require.Equal(t, TCmdWhile, first.Kind)

	// Drain the rest of the program.
	for {
		sym, err := l.Next()
		require.NoError(t, err)
		if sym.Kind == TEof {
			break
		}
	}

	require.NoError(t, l.Jmp(p))
	again, err := l.Next()
	require.NoError(t, err)
	require.Equal(t, first.Kind, again.Kind)
	require.Equal(t, first.Content, again.Content)
	require.Equal(t, first.Line, again.Line)
}

func TestTrueFalse(t *testing.T) {
	got := kinds(t, "var $x = true\nvar $y = false\n")
	require.Contains(t, got, TTrue)
	require.Contains(t, got, TFalse)
}
