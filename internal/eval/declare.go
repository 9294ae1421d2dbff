package eval

import "monogrammedchalk.com/goofy/internal/lexer"

// declarePass implements spec.md §4.3's "program entry" pre-scan: it walks
// the whole program once, registering every function declaration (name,
// parameters, body position) so forward references work, then seeks back to
// the start. Declarations found nested inside if/while bodies are also
// registered during this walk — this resolves spec.md's open question
// ("declarations nested inside control flow are possible but their
// visibility is ambiguous") by hoisting every function to the top level at
// the point it is first lexed, flat, regardless of nesting. See DESIGN.md.
func (ip *Interp) declarePass() error {
	startPos := ip.curPos
	if err := ip.declareWalk(); err != nil {
		return err
	}
	if err := ip.lex.Jmp(startPos); err != nil {
		return err
	}
	return ip.next()
}

// declareWalk scans statements until EOF, descending into if/while bodies
// to discover nested function declarations and registering every function
// it finds along the way.
func (ip *Interp) declareWalk() error {
	for ip.cur.Kind != lexer.TEof {
		switch ip.cur.Kind {
		case lexer.TCmdFunction:
			if err := ip.declareFunction(); err != nil {
				return err
			}
		case lexer.TCmdIf:
			if err := ip.declareIf(); err != nil {
				return err
			}
		case lexer.TCmdWhile:
			if err := ip.declareWhile(); err != nil {
				return err
			}
		default:
			if err := ip.skipLine(); err != nil {
				return err
			}
		}
	}
	return nil
}

func (ip *Interp) declareIf() error {
	if err := ip.skipLine(); err != nil {
		return err
	}
	if err := ip.declareWalkUntil(elseIfElseEndIf); err != nil {
		return err
	}
	for ip.cur.Kind == lexer.TCmdElseIf {
		if err := ip.skipLine(); err != nil {
			return err
		}
		if err := ip.declareWalkUntil(elseIfElseEndIf); err != nil {
			return err
		}
	}
	if ip.cur.Kind == lexer.TCmdElse {
		if err := ip.skipLine(); err != nil {
			return err
		}
		if err := ip.declareWalkUntil(endIfOnly); err != nil {
			return err
		}
	}
	return ip.skipLine()
}

func (ip *Interp) declareWhile() error {
	if err := ip.skipLine(); err != nil {
		return err
	}
	if err := ip.declareWalkUntil(endWhileOnly); err != nil {
		return err
	}
	return ip.skipLine()
}

// declareWalkUntil is declareWalk bounded by a stop set instead of EOF, used
// for if/while bodies (which cannot extend past their own closing keyword).
func (ip *Interp) declareWalkUntil(stop kindSet) error {
	for !stop[ip.cur.Kind] {
		if ip.cur.Kind == lexer.TEof {
			return ip.errf("unexpected end of file inside an open block")
		}
		switch ip.cur.Kind {
		case lexer.TCmdFunction:
			if err := ip.declareFunction(); err != nil {
				return err
			}
		case lexer.TCmdIf:
			if err := ip.declareIf(); err != nil {
				return err
			}
		case lexer.TCmdWhile:
			if err := ip.declareWhile(); err != nil {
				return err
			}
		default:
			if err := ip.skipLine(); err != nil {
				return err
			}
		}
	}
	return nil
}

// declareFunction parses a function header in full (it needs the parameter
// names, unlike the blind skips above), records the body position — the
// checkpoint immediately after the header's Eol, per spec.md §3 — and then
// recurses into the body looking for further nested declarations.
func (ip *Interp) declareFunction() error {
	if err := ip.next(); err != nil { // consume 'function'
		return err
	}
	if ip.cur.Kind != lexer.TName {
		return ip.errf("expected function name after 'function'")
	}
	name := lowerName(ip.cur.Content)
	if err := ip.next(); err != nil { // consume name
		return err
	}
	if ip.cur.Kind != lexer.TOpenPar {
		return ip.errf("expected '(' after function name")
	}
	if err := ip.next(); err != nil {
		return err
	}
	var params []string
	if ip.cur.Kind != lexer.TClosePar {
		for {
			if ip.cur.Kind != lexer.TVariable {
				return ip.errf("expected parameter name")
			}
			params = append(params, lowerName(ip.cur.Content))
			if err := ip.next(); err != nil {
				return err
			}
			if ip.cur.Kind == lexer.TComma {
				if err := ip.next(); err != nil {
					return err
				}
				continue
			}
			break
		}
	}
	if ip.cur.Kind != lexer.TClosePar {
		return ip.errf("expected ')' after parameter list")
	}
	if err := ip.next(); err != nil { // consume ')'
		return err
	}
	if ip.cur.Kind != lexer.TEol {
		return ip.errf("expected end of line after function header")
	}
	bodyPos := ip.lex.Pos() // position immediately after the header's Eol
	if err := ip.next(); err != nil {
		return err
	}
	ip.registerFunc(name, params, bodyPos)

	if err := ip.declareWalkUntil(endFunctionOnly); err != nil {
		return err
	}
	return ip.skipLine()
}
