package eval

import (
	"bytes"
	"strconv"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"monogrammedchalk.com/goofy/internal/keys"
	"monogrammedchalk.com/goofy/sink"
)

func runScript(t *testing.T, src string) *sink.Recorder {
	t.Helper()
	rec := &sink.Recorder{}
	err := Run(bytes.NewReader([]byte(src)), rec)
	require.NoError(t, err)
	return rec
}

// assertActions diffs the recorded trace against want, in openconfig-goyang's
// test style (cmp.Diff over require.Equal for structured trace comparisons).
func assertActions(t *testing.T, rec *sink.Recorder, want []sink.Action) {
	t.Helper()
	if diff := cmp.Diff(want, rec.Actions); diff != "" {
		t.Errorf("action trace mismatch (-want +got):\n%s", diff)
	}
}

func TestStringAndStringln(t *testing.T) {
	rec := runScript(t, "string hello\nstringln world\n")
	assertActions(t, rec, []sink.Action{
		{Kind: "string", Text: "hello"},
		{Kind: "stringln", Text: "world"},
	})
}

func TestDelayExpression(t *testing.T) {
	rec := runScript(t, "delay 5+3*2\n")
	assertActions(t, rec, []sink.Action{{Kind: "delay", Ms: 11}})
}

func TestNegativeDelayClamps(t *testing.T) {
	rec := runScript(t, "delay 0-5\n")
	assertActions(t, rec, []sink.Action{{Kind: "delay", Ms: 0}})
}

func TestVarAndAssignment(t *testing.T) {
	rec := runScript(t, "var $x = 10\n$x = $x + 1\ndelay $x\n")
	assertActions(t, rec, []sink.Action{{Kind: "delay", Ms: 11}})
}

func TestWhileLoop(t *testing.T) {
	src := "var $i = 0\n" +
		"while $i < 3\n" +
		"delay $i\n" +
		"$i = $i + 1\n" +
		"end_while\n"
	rec := runScript(t, src)
	assertActions(t, rec, []sink.Action{
		{Kind: "delay", Ms: 0},
		{Kind: "delay", Ms: 1},
		{Kind: "delay", Ms: 2},
	})
}

func TestIfElseIfElse(t *testing.T) {
	run := func(x int) *sink.Recorder {
		src := "var $x = " + strconv.Itoa(x) + "\n" +
			"if $x == 1\n" +
			"string one\n" +
			"else_if $x == 2\n" +
			"string two\n" +
			"else\n" +
			"string other\n" +
			"end_if\n"
		return runScript(t, src)
	}
	assertActions(t, run(1), []sink.Action{{Kind: "string", Text: "one"}})
	assertActions(t, run(2), []sink.Action{{Kind: "string", Text: "two"}})
	assertActions(t, run(3), []sink.Action{{Kind: "string", Text: "other"}})
}

func TestFunctionCall(t *testing.T) {
	src := "function add($x, $y)\n" +
		"return $x + $y\n" +
		"end_function\n" +
		"delay add(2, 3)\n"
	rec := runScript(t, src)
	assertActions(t, rec, []sink.Action{{Kind: "delay", Ms: 5}})
}

func TestRecursiveFunction(t *testing.T) {
	src := "function fact($n)\n" +
		"if $n <= 1\n" +
		"return 1\n" +
		"end_if\n" +
		"return $n * fact($n - 1)\n" +
		"end_function\n" +
		"delay fact(5)\n"
	rec := runScript(t, src)
	assertActions(t, rec, []sink.Action{{Kind: "delay", Ms: 120}})
}

func TestForwardReferenceCallResolvedByPrescan(t *testing.T) {
	src := "delay callee()\n" +
		"function callee()\n" +
		"return 42\n" +
		"end_function\n"
	rec := runScript(t, src)
	assertActions(t, rec, []sink.Action{{Kind: "delay", Ms: 42}})
}

func TestDivisionByZero(t *testing.T) {
	err := Run(bytes.NewReader([]byte("delay 1/0\n")), &sink.Recorder{})
	require.Error(t, err)
	var langErr *LangError
	require.ErrorAs(t, err, &langErr)
}

func TestModuloByZero(t *testing.T) {
	err := Run(bytes.NewReader([]byte("delay 1%0\n")), &sink.Recorder{})
	require.Error(t, err)
}

func TestNegativeExponentIsError(t *testing.T) {
	err := Run(bytes.NewReader([]byte("delay 2^(0-1)\n")), &sink.Recorder{})
	require.Error(t, err)
}

func TestExponentiation(t *testing.T) {
	rec := runScript(t, "delay 2^10\n")
	assertActions(t, rec, []sink.Action{{Kind: "delay", Ms: 1024}})
}

func TestMixedAndOrIsError(t *testing.T) {
	err := Run(bytes.NewReader([]byte("if 1 && 0 || 1\nstring x\nend_if\n")), &sink.Recorder{})
	require.Error(t, err)
}

func TestKeyCombo(t *testing.T) {
	rec := runScript(t, "ctrl alt delete\n")
	require.Len(t, rec.Actions, 1)
	a := rec.Actions[0]
	require.Equal(t, "key", a.Kind)
	require.Equal(t, keys.Delete, a.ID)
	require.NotZero(t, a.Mods&keys.ModCtrl)
	require.NotZero(t, a.Mods&keys.ModAlt)
}

func TestHoldRelease(t *testing.T) {
	rec := runScript(t, "hold ctrl\nrelease ctrl\n")
	assertActions(t, rec, []sink.Action{
		{Kind: "hold", Mods: keys.ModCtrl},
		{Kind: "release", Mods: keys.ModCtrl},
	})
}

func TestHoldMultipleModifiers(t *testing.T) {
	rec := runScript(t, "hold ctrl shift\nrelease ctrl shift\n")
	assertActions(t, rec, []sink.Action{
		{Kind: "hold", Mods: keys.ModCtrl | keys.ModShift},
		{Kind: "release", Mods: keys.ModCtrl | keys.ModShift},
	})
}

func TestHoldNonModifierIsError(t *testing.T) {
	err := Run(bytes.NewReader([]byte("hold a\n")), &sink.Recorder{})
	require.Error(t, err)
}

func TestUndeclaredVariableIsError(t *testing.T) {
	err := Run(bytes.NewReader([]byte("$x = 1\n")), &sink.Recorder{})
	require.Error(t, err)
}

func TestCaseInsensitiveNames(t *testing.T) {
	rec := runScript(t, "VAR $X = 3\n$x = $X + 1\nDELAY $x\n")
	assertActions(t, rec, []sink.Action{{Kind: "delay", Ms: 4}})
}

func TestShadowingInScope(t *testing.T) {
	src := "var $x = 1\n" +
		"if 1\n" +
		"var $x = 2\n" +
		"delay $x\n" +
		"end_if\n" +
		"delay $x\n"
	rec := runScript(t, src)
	assertActions(t, rec, []sink.Action{
		{Kind: "delay", Ms: 2},
		{Kind: "delay", Ms: 1},
	})
}
