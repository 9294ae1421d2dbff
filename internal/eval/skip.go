package eval

import "monogrammedchalk.com/goofy/internal/lexer"

// kindSet is a small stop-predicate used by runStatements and the skip
// routines below to recognize branch/loop/function boundaries.
type kindSet map[lexer.Kind]bool

func set(ks ...lexer.Kind) kindSet {
	s := make(kindSet, len(ks))
	for _, k := range ks {
		s[k] = true
	}
	return s
}

// noStop is the empty kindSet: a nil map read always yields false, so it
// never matches any token kind.
var noStop kindSet

var (
	elseIfElseEndIf = set(lexer.TCmdElseIf, lexer.TCmdElse, lexer.TCmdEndIf)
	endIfOnly       = set(lexer.TCmdEndIf)
	endWhileOnly    = set(lexer.TCmdEndWhile)
	endFunctionOnly = set(lexer.TCmdEndFunction)
)

// skipLine consumes tokens up to and including the next Eol, without
// interpreting them, then loads the first token of the following line. It
// is used for skipping control-flow headers and footers whose content
// doesn't need evaluating (we already know whether the branch executes).
func (ip *Interp) skipLine() error {
	for ip.cur.Kind != lexer.TEol && ip.cur.Kind != lexer.TEof {
		if err := ip.next(); err != nil {
			return err
		}
	}
	if ip.cur.Kind == lexer.TEol {
		if err := ip.next(); err != nil {
			return err
		}
	}
	return nil
}

// skipStatement skips exactly one statement. Compound statements
// (if/while/function) are skipped whole, including their nested bodies,
// mirroring original_source/applications/bad_usb/goofy_parser.c's
// goofy_skip_if/goofy_skip_while/goofy_skip_function_body.
func (ip *Interp) skipStatement() error {
	switch ip.cur.Kind {
	case lexer.TCmdIf:
		return ip.skipIf()
	case lexer.TCmdWhile:
		return ip.skipWhile()
	case lexer.TCmdFunction:
		return ip.skipFunction()
	default:
		return ip.skipLine()
	}
}

// skipUntil repeatedly skips statements until cur's kind is in stop.
func (ip *Interp) skipUntil(stop kindSet) error {
	for !stop[ip.cur.Kind] {
		if ip.cur.Kind == lexer.TEof {
			return ip.errf("unexpected end of file inside an open block")
		}
		if err := ip.skipStatement(); err != nil {
			return err
		}
	}
	return nil
}

func (ip *Interp) skipIf() error {
	if err := ip.skipLine(); err != nil { // "if expr\n"
		return err
	}
	if err := ip.skipUntil(elseIfElseEndIf); err != nil {
		return err
	}
	for ip.cur.Kind == lexer.TCmdElseIf {
		if err := ip.skipLine(); err != nil {
			return err
		}
		if err := ip.skipUntil(elseIfElseEndIf); err != nil {
			return err
		}
	}
	if ip.cur.Kind == lexer.TCmdElse {
		if err := ip.skipLine(); err != nil {
			return err
		}
		if err := ip.skipUntil(endIfOnly); err != nil {
			return err
		}
	}
	// cur == TCmdEndIf
	return ip.skipLine()
}

func (ip *Interp) skipWhile() error {
	if err := ip.skipLine(); err != nil { // "while expr\n"
		return err
	}
	if err := ip.skipUntil(endWhileOnly); err != nil {
		return err
	}
	return ip.skipLine()
}

func (ip *Interp) skipFunction() error {
	if err := ip.skipLine(); err != nil { // "function name(params)\n"
		return err
	}
	if err := ip.skipUntil(endFunctionOnly); err != nil {
		return err
	}
	return ip.skipLine()
}
