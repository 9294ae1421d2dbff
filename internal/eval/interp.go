// Package eval is the fused parser/evaluator: there is no AST. Statements
// are executed as they are parsed; loops and user function calls re-parse
// by seeking the lexer back to a recorded Position. This generalizes the
// teacher's executor.Stack (monogrammedchalk.com/glitter/executor) — a flat
// []map[string]string of scope frames looked up top-down — into spec.md
// §3's two independently tracked stacks (variables, functions) plus an
// explicit scope-marker stack, and is grounded statement-by-statement on
// original_source/applications/bad_usb/goofy_parser.c.
package eval

import (
	"io"
	"strings"

	"github.com/pkg/errors"

	"monogrammedchalk.com/goofy/internal/dispatch"
	"monogrammedchalk.com/goofy/internal/lexer"
	"monogrammedchalk.com/goofy/sink"
)

// lowerName normalizes a variable or function name for case-insensitive
// lookup, per spec.md §3 ("Names are case-insensitive"): normalizing on
// insertion keeps every later comparison a plain string equality.
func lowerName(s string) string {
	return strings.ToLower(s)
}

// Value is the 32-bit signed integer every expression evaluates to.
type Value int32

func b2v(b bool) Value {
	if b {
		return 1
	}
	return 0
}

// Variable is a (name, value) pair. Names are normalized to lowercase on
// insertion so every lookup is effectively case-insensitive.
type Variable struct {
	Name  string
	Value Value
}

// Function is a (name, parameter list, pending-argument scratch, body
// position) record, per spec.md §3. BodyPos references the source position
// immediately after the function header's EOL.
type Function struct {
	Name    string
	Params  []string
	Pending []Value
	BodyPos lexer.Position
}

type scopeMark struct {
	varsTop  int
	funcsTop int
}

// ctrl is the internal control-flow signal threaded through the statement
// loop: ctrlOk means "keep going", ctrlReturn carries a function's return value
// out through the enclosing statement loops up to the call site.
type ctrlKind int

const (
	ctrlOk ctrlKind = iota
	ctrlReturn
)

type ctrl struct {
	kind  ctrlKind
	value Value
}

// Interp holds the scope stack of variables and functions, the lexer it
// drives, and the action dispatcher it calls at string/stringln/delay/key
// points. It is the sole owner of the variable/function/scope stacks for
// the run's duration.
type Interp struct {
	lex  *lexer.Lexer
	cur  lexer.Symbol
	// curPos is the checkpoint that, if jumped to and re-lexed, reproduces
	// cur. Captured before every read so control-flow constructs (while's
	// re-entry point) can record "the position of the keyword" exactly as
	// spec.md §4.3 describes.
	curPos lexer.Position
	disp   *dispatch.Dispatcher

	vars   []*Variable
	funcs  []*Function
	scopes []scopeMark
}

// Run interprets the program read from r, driving act for every
// string/stringln/delay/key/hold/release command reached along the
// executed path. It returns nil once EOF is reached cleanly ("OK" in
// spec.md §6's terms), a *LangError for a lexical/syntactic/semantic fault,
// or a wrapped I/O error if the byte-stream provider itself failed in an
// unrecoverable way.
func Run(r io.ReadSeeker, act sink.ActionSink) error {
	_, err := run(r, act)
	return err
}

// RunDebug behaves like Run, but on error also returns a pretty-printed
// dump of the variable and function stacks as they stood at the point of
// failure, for -v diagnostics.
func RunDebug(r io.ReadSeeker, act sink.ActionSink) (error, string) {
	ip, err := run(r, act)
	if err != nil {
		return err, ip.DumpState()
	}
	return nil, ""
}

func run(r io.ReadSeeker, act sink.ActionSink) (*Interp, error) {
	ip := &Interp{
		lex:  lexer.New(r),
		disp: dispatch.New(act),
	}
	if err := ip.next(); err != nil {
		return ip, err
	}
	if err := ip.declarePass(); err != nil {
		return ip, err
	}
	// Top-level declarations live in one program-wide scope for the whole
	// run; closing it at EOF brings the variable stack back to empty.
	ip.beginScope()
	st, err := ip.runStatements(noStop)
	if err != nil {
		return ip, err
	}
	if st.kind == ctrlReturn {
		// A bare top-level 'return' ends the run early; its value has no
		// observer, so it is simply discarded.
		return ip, nil
	}
	ip.endScope()
	if len(ip.vars) != 0 || len(ip.scopes) != 0 {
		return ip, errors.New("eval: internal error: scope stack not empty at end of run")
	}
	return ip, nil
}

// next reads the next symbol from the lexer into cur, first recording the
// checkpoint that, if jumped to and re-lexed, reproduces the token that is
// about to become cur. That checkpoint (curPos) is exactly the position a
// 'while' loop needs in order to re-enter at its own keyword.
func (ip *Interp) next() error {
	ip.curPos = ip.lex.Pos()
	sym, err := ip.lex.Next()
	if err != nil {
		return errors.Wrap(err, "eval: lexer")
	}
	ip.cur = sym
	return nil
}

func (ip *Interp) beginScope() {
	ip.scopes = append(ip.scopes, scopeMark{varsTop: len(ip.vars), funcsTop: len(ip.funcs)})
}

func (ip *Interp) endScope() {
	m := ip.scopes[len(ip.scopes)-1]
	ip.scopes = ip.scopes[:len(ip.scopes)-1]
	ip.vars = ip.vars[:m.varsTop]
	ip.funcs = ip.funcs[:m.funcsTop]
}

func (ip *Interp) pushVar(name string, v Value) {
	ip.vars = append(ip.vars, &Variable{Name: name, Value: v})
}

func (ip *Interp) lookupVar(name string) *Variable {
	for i := len(ip.vars) - 1; i >= 0; i-- {
		if ip.vars[i].Name == name {
			return ip.vars[i]
		}
	}
	return nil
}

func (ip *Interp) registerFunc(name string, params []string, bodyPos lexer.Position) {
	ip.funcs = append(ip.funcs, &Function{Name: name, Params: params, BodyPos: bodyPos})
}

func (ip *Interp) lookupFunc(name string) *Function {
	for i := len(ip.funcs) - 1; i >= 0; i-- {
		if ip.funcs[i].Name == name {
			return ip.funcs[i]
		}
	}
	return nil
}
