package eval

import "monogrammedchalk.com/goofy/internal/lexer"

// runStatements executes statements in sequence until cur's kind satisfies
// stop, EOF is reached, or a 'return' is evaluated and propagates up as
// ctrlReturn.
func (ip *Interp) runStatements(stop kindSet) (ctrl, error) {
	for {
		if ip.cur.Kind == lexer.TEof {
			return ctrl{kind: ctrlOk}, nil
		}
		if stop[ip.cur.Kind] {
			return ctrl{kind: ctrlOk}, nil
		}
		c, err := ip.statement()
		if err != nil {
			return ctrl{}, err
		}
		if c.kind == ctrlReturn {
			return c, nil
		}
	}
}

// statement executes exactly one statement, per spec.md §4.3's grammar.
func (ip *Interp) statement() (ctrl, error) {
	ok := ctrl{kind: ctrlOk}
	switch ip.cur.Kind {
	case lexer.TComment:
		return ok, ip.next()

	case lexer.TVariable:
		return ok, ip.assignment()

	case lexer.TCmdVar:
		return ok, ip.cmdVar()

	case lexer.TCmdString:
		return ok, ip.cmdStringPayload(false)

	case lexer.TCmdStringln:
		return ok, ip.cmdStringPayload(true)

	case lexer.TCmdDelay:
		return ok, ip.cmdDelay()

	case lexer.TCmdHold:
		return ok, ip.cmdHoldRelease(true)

	case lexer.TCmdRelease:
		return ok, ip.cmdHoldRelease(false)

	case lexer.TCmdKey:
		return ok, ip.cmdKey()

	case lexer.TCmdIf:
		return ip.ifStatement()

	case lexer.TCmdWhile:
		return ip.whileStatement()

	case lexer.TCmdFunction:
		// Declared already during the pre-scan; a second encounter during
		// normal execution is silent, per spec.md §4.3.
		return ok, ip.skipFunction()

	case lexer.TCmdReturn:
		return ip.returnStatement()

	default:
		return ctrl{}, ip.errf("unexpected token in statement position")
	}
}

// expectEol requires cur to be Eol and advances past it.
func (ip *Interp) expectEol() error {
	if ip.cur.Kind != lexer.TEol {
		return ip.errf("expected end of line")
	}
	return ip.next()
}

func (ip *Interp) assignment() error {
	name := lowerName(ip.cur.Content)
	v := ip.lookupVar(name)
	if v == nil {
		return ip.errf("assignment to undeclared variable $%s", name)
	}
	if err := ip.next(); err != nil { // consume the variable, expect '='
		return err
	}
	if ip.cur.Kind != lexer.TAssign {
		return ip.errf("expected '=' in assignment")
	}
	if err := ip.next(); err != nil { // consume '=', now an expression
		return err
	}
	val, err := ip.pExpr()
	if err != nil {
		return err
	}
	if err := ip.expectEol(); err != nil {
		return err
	}
	v.Value = val
	return nil
}

func (ip *Interp) cmdVar() error {
	if err := ip.next(); err != nil { // consume 'var', expect $name
		return err
	}
	if ip.cur.Kind != lexer.TVariable {
		return ip.errf("expected variable name after 'var'")
	}
	name := lowerName(ip.cur.Content)
	if err := ip.next(); err != nil { // consume name, expect '='
		return err
	}
	if ip.cur.Kind != lexer.TAssign {
		return ip.errf("expected '=' in var declaration")
	}
	if err := ip.next(); err != nil { // consume '=', now an expression
		return err
	}
	val, err := ip.pExpr()
	if err != nil {
		return err
	}
	if err := ip.expectEol(); err != nil {
		return err
	}
	ip.pushVar(name, val)
	return nil
}

func (ip *Interp) cmdStringPayload(newline bool) error {
	if err := ip.next(); err != nil { // consume 'string'/'stringln'
		return err
	}
	if ip.cur.Kind != lexer.TString {
		return ip.errf("expected string payload")
	}
	payload := ip.cur.Content
	if err := ip.next(); err != nil { // consume payload, expect Eol
		return err
	}
	if err := ip.expectEol(); err != nil {
		return err
	}
	if newline {
		return ip.disp.TypeStringln(payload)
	}
	return ip.disp.TypeString(payload)
}

func (ip *Interp) cmdDelay() error {
	if err := ip.next(); err != nil { // consume 'delay', now an expression
		return err
	}
	val, err := ip.pExpr()
	if err != nil {
		return err
	}
	if err := ip.expectEol(); err != nil {
		return err
	}
	return ip.disp.Delay(int32(val))
}

func (ip *Interp) returnStatement() (ctrl, error) {
	if err := ip.next(); err != nil { // consume 'return', now an expression
		return ctrl{}, err
	}
	val, err := ip.pExpr()
	if err != nil {
		return ctrl{}, err
	}
	if err := ip.expectEol(); err != nil {
		return ctrl{}, err
	}
	return ctrl{kind: ctrlReturn, value: val}, nil
}

func (ip *Interp) ifStatement() (ctrl, error) {
	if err := ip.next(); err != nil { // consume 'if', now an expression
		return ctrl{}, err
	}
	test, err := ip.pExpr()
	if err != nil {
		return ctrl{}, err
	}
	if err := ip.expectEol(); err != nil {
		return ctrl{}, err
	}

	taken := false
	result := ctrl{kind: ctrlOk}

	if test != 0 {
		taken = true
		ip.beginScope()
		result, err = ip.runStatements(elseIfElseEndIf)
		ip.endScope()
		if err != nil {
			return ctrl{}, err
		}
		if result.kind == ctrlReturn {
			if err := ip.skipUntil(elseIfElseEndIf); err != nil {
				return ctrl{}, err
			}
		}
	} else {
		if err := ip.skipUntil(elseIfElseEndIf); err != nil {
			return ctrl{}, err
		}
	}

	for ip.cur.Kind == lexer.TCmdElseIf {
		if taken {
			if err := ip.skipLine(); err != nil { // lexed but not evaluated
				return ctrl{}, err
			}
			if err := ip.skipUntil(elseIfElseEndIf); err != nil {
				return ctrl{}, err
			}
			continue
		}
		if err := ip.next(); err != nil { // consume 'else_if', now an expression
			return ctrl{}, err
		}
		test, err = ip.pExpr()
		if err != nil {
			return ctrl{}, err
		}
		if err := ip.expectEol(); err != nil {
			return ctrl{}, err
		}
		if test != 0 {
			taken = true
			ip.beginScope()
			result, err = ip.runStatements(elseIfElseEndIf)
			ip.endScope()
			if err != nil {
				return ctrl{}, err
			}
			if result.kind == ctrlReturn {
				if err := ip.skipUntil(elseIfElseEndIf); err != nil {
					return ctrl{}, err
				}
			}
		} else {
			if err := ip.skipUntil(elseIfElseEndIf); err != nil {
				return ctrl{}, err
			}
		}
	}

	if ip.cur.Kind == lexer.TCmdElse {
		if taken {
			if err := ip.skipLine(); err != nil {
				return ctrl{}, err
			}
			if err := ip.skipUntil(endIfOnly); err != nil {
				return ctrl{}, err
			}
		} else {
			if err := ip.next(); err != nil { // consume 'else'
				return ctrl{}, err
			}
			if err := ip.expectEol(); err != nil {
				return ctrl{}, err
			}
			taken = true
			ip.beginScope()
			result, err = ip.runStatements(endIfOnly)
			ip.endScope()
			if err != nil {
				return ctrl{}, err
			}
			if result.kind == ctrlReturn {
				if err := ip.skipUntil(endIfOnly); err != nil {
					return ctrl{}, err
				}
			}
		}
	}

	// cur == TCmdEndIf
	if err := ip.next(); err != nil {
		return ctrl{}, err
	}
	if err := ip.expectEol(); err != nil {
		return ctrl{}, err
	}
	return result, nil
}

func (ip *Interp) whileStatement() (ctrl, error) {
	loopPos := ip.curPos // reproduces the 'while' keyword itself
	for {
		if err := ip.next(); err != nil { // consume 'while', now an expression
			return ctrl{}, err
		}
		test, err := ip.pExpr()
		if err != nil {
			return ctrl{}, err
		}
		if err := ip.expectEol(); err != nil {
			return ctrl{}, err
		}

		if test == 0 {
			if err := ip.skipUntil(endWhileOnly); err != nil {
				return ctrl{}, err
			}
			if err := ip.next(); err != nil { // consume 'end_while'
				return ctrl{}, err
			}
			return ctrl{kind: ctrlOk}, ip.expectEol()
		}

		ip.beginScope()
		body, err := ip.runStatements(endWhileOnly)
		ip.endScope()
		if err != nil {
			return ctrl{}, err
		}
		if body.kind == ctrlReturn {
			return body, nil
		}

		if err := ip.next(); err != nil { // consume 'end_while'
			return ctrl{}, err
		}
		if err := ip.expectEol(); err != nil {
			return ctrl{}, err
		}
		if err := ip.lex.Jmp(loopPos); err != nil {
			return ctrl{}, err
		}
		if err := ip.next(); err != nil { // cur becomes 'while' again
			return ctrl{}, err
		}
	}
}
