package eval

import "monogrammedchalk.com/goofy/internal/lexer"

// callFunction implements spec.md §4.3's call-site mechanism: cur is the
// TName at the call site. Arguments are evaluated left to right against the
// caller's own scope before anything about the callee is touched, then the
// shared lexer stream is redirected to the function body and redirected
// back once the body finishes — recursion falls out naturally because each
// nested call captures its own resumePos/resumeTok as Go local variables on
// the Go call stack, independent of the single mutable lexer position.
func (ip *Interp) callFunction() (Value, error) {
	name := lowerName(ip.cur.Content)
	if err := ip.next(); err != nil { // consume the name, expect '('
		return 0, err
	}
	if ip.cur.Kind != lexer.TOpenPar {
		return 0, ip.errf("expected '(' in call to %s", name)
	}
	if err := ip.next(); err != nil {
		return 0, err
	}

	var args []Value
	if ip.cur.Kind != lexer.TClosePar {
		for {
			v, err := ip.pExpr()
			if err != nil {
				return 0, err
			}
			args = append(args, v)
			if ip.cur.Kind == lexer.TComma {
				if err := ip.next(); err != nil {
					return 0, err
				}
				continue
			}
			break
		}
	}
	if ip.cur.Kind != lexer.TClosePar {
		return 0, ip.errf("expected ')' in call to %s", name)
	}
	if err := ip.next(); err != nil { // consume ')'
		return 0, err
	}

	fn := ip.lookupFunc(name)
	if fn == nil {
		return 0, ip.errf("call to undeclared function %s", name)
	}
	if len(args) != len(fn.Params) {
		return 0, ip.errf("%s expects %d argument(s), got %d", name, len(fn.Params), len(args))
	}

	// Stage the evaluated arguments in the callee's own pending-argument
	// buffer before the nine numbered steps below (spec.md §4.3: "arguments
	// are evaluated left to right and appended to the function's
	// pending-argument list"; §3/Glossary: "a per-function scratch buffer
	// bridging caller-side argument evaluation and callee-side parameter
	// binding"). Safe across recursion: Pending is drained into the new
	// scope's variables by step (iii) below before the callee body runs, so
	// a nested call to the same function overwriting fn.Pending never races
	// with this call's use of it.
	fn.Pending = args

	// (i) record the current stream position and cached lookahead token.
	resumePos := ip.lex.Pos()
	resumeTok := ip.cur

	// (ii) push a new scope.
	ip.beginScope()

	// (iii) bind each parameter from the pending list.
	for i, p := range fn.Params {
		ip.pushVar(p, fn.Pending[i])
	}

	// (iv) clear the pending list.
	fn.Pending = nil

	// (v) seek to the function's body position.
	if err := ip.lex.Jmp(fn.BodyPos); err != nil {
		ip.endScope()
		return 0, err
	}
	if err := ip.next(); err != nil {
		ip.endScope()
		return 0, err
	}

	// (vi) parse statements until end_function or a return.
	result, err := ip.runStatements(endFunctionOnly)
	if err != nil {
		ip.endScope()
		return 0, err
	}

	// (vii) capture the return value (0 if none).
	var ret Value
	if result.kind == ctrlReturn {
		ret = result.value
	}

	// (viii) seek back to the call site.
	if err := ip.lex.Jmp(resumePos); err != nil {
		ip.endScope()
		return 0, err
	}
	ip.cur = resumeTok

	// (ix) pop the scope.
	ip.endScope()

	return ret, nil
}
