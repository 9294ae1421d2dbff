// Package lexer scans a goofy script into a stream of symbols. It is a
// five-mode state machine fused to a single-byte-lookahead cursor, following
// the teacher's lexer.Lexer (monogrammedchalk.com/glitter/lexer) in shape —
// a buffered rune, a current token, a mode — generalized from glitter's
// three implicit modes (NONE/CONTENT/SET) to the five spec.md §4.2 names
// and grounded directly on original_source/applications/bad_usb/goofy_lexer.c
// for the scanning rules themselves.
package lexer

import (
	"io"
	"strings"

	"github.com/pkg/errors"

	"monogrammedchalk.com/goofy/internal/cursor"
	"monogrammedchalk.com/goofy/internal/keys"
)

// Mode is the lexer's current sub-grammar context.
type Mode int

const (
	Command Mode = iota
	String
	Keys
	Expression
	Eol
)

// Kind enumerates the token kinds a Symbol can carry, partitioned per
// spec.md §3 into terminators, commands, literals, identifiers, operators
// and payload tokens.
type Kind int

const (
	// Terminators.
	TEof Kind = iota
	TError
	TEol
	TComment

	// Commands.
	TCmdString
	TCmdStringln
	TCmdKey
	TCmdDelay
	TCmdVar
	TCmdHold
	TCmdRelease
	TCmdIf
	TCmdElseIf
	TCmdElse
	TCmdEndIf
	TCmdWhile
	TCmdEndWhile
	TCmdFunction
	TCmdEndFunction
	TCmdReturn

	// Literals.
	TTrue
	TFalse
	TNumber

	// Identifiers.
	TVariable // $name
	TName     // bare identifier (function name or call site)

	// Payload tokens.
	TString // rest-of-line string payload
	TKey    // a key name in Keys mode

	// Operators.
	TAssign
	TEq
	TNeq
	TLt
	TLeq
	TGt
	TGeq
	TAdd
	TSub
	TMul
	TDiv
	TMod
	TExp
	TNot
	TBitNot
	TBitAnd
	TBitOr
	TAnd
	TOr
	TShl
	TShr
	TOpenPar
	TClosePar
	TComma
)

// Symbol is one lexical unit: a kind, its literal content (for identifiers,
// numbers, string payloads and key names), and the 1-based source line it
// started on.
type Symbol struct {
	Kind    Kind
	Content string
	Line    int
}

// Position is an opaque, re-entrant checkpoint of lexer state: seeking to it
// and calling Next reproduces the same symbol and content as the first time
// that position was passed through.
type Position struct {
	offset int64
	line   int
	look   byte // informational only; Jmp re-derives look from offset
	mode   Mode
	eof    bool // the cursor had run out of input when the position was taken
}

// Lexer scans a byte stream into Symbols.
type Lexer struct {
	cur  *cursor.Cursor
	line int
	mode Mode
}

// New creates a lexer over r, starting in Command mode at line 1.
func New(r io.ReadSeeker) *Lexer {
	return &Lexer{
		cur:  cursor.New(r),
		line: 1,
		mode: Command,
	}
}

// Pos returns a checkpoint of the lexer's current state.
func (l *Lexer) Pos() Position {
	return Position{
		offset: l.cur.Tell(),
		line:   l.line,
		look:   l.cur.Peek(),
		mode:   l.mode,
		eof:    l.cur.AtEOF(),
	}
}

// Jmp restores the lexer to a previously recorded Position.
func (l *Lexer) Jmp(p Position) error {
	off := p.offset
	if p.eof {
		// At EOF the cursor reports the offset of the last byte it read (-1
		// for an empty stream); seeking one past it makes the reload hit EOF
		// again instead of re-reading that byte.
		off++
	}
	if err := l.cur.Seek(off); err != nil {
		return err
	}
	l.line = p.line
	l.mode = p.mode
	return nil
}

// Line returns the current 1-based line counter.
func (l *Lexer) Line() int {
	return l.line
}

func (l *Lexer) ch() byte    { return l.cur.Peek() }
func (l *Lexer) adv()        { l.cur.Advance() }
func (l *Lexer) eof() bool   { return l.cur.AtEOF() }

func isSpace(b byte) bool      { return b == ' ' || b == '\t' || b == '\r' }
func isDigit(b byte) bool      { return b >= '0' && b <= '9' }
func isAlpha(b byte) bool      { return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || b == '_' }
func isAlnum(b byte) bool      { return isAlpha(b) || isDigit(b) }

// skipLineSpace consumes intra-line whitespace (not newlines).
func (l *Lexer) skipLineSpace() {
	for !l.eof() && isSpace(l.ch()) {
		l.adv()
	}
}

var keywords = map[string]Kind{
	"string":        TCmdString,
	"stringln":      TCmdStringln,
	"delay":         TCmdDelay,
	"var":           TCmdVar,
	"hold":          TCmdHold,
	"release":       TCmdRelease,
	"if":            TCmdIf,
	"else_if":       TCmdElseIf,
	"else":          TCmdElse,
	"end_if":        TCmdEndIf,
	"while":         TCmdWhile,
	"end_while":     TCmdEndWhile,
	"function":      TCmdFunction,
	"end_function":  TCmdEndFunction,
	"return":        TCmdReturn,
}

// nextMode reports the mode the lexer enters immediately after emitting a
// command keyword, per spec.md §4.2's mode table.
func nextMode(k Kind) Mode {
	switch k {
	case TCmdString, TCmdStringln:
		return String
	case TCmdHold, TCmdRelease:
		return Keys
	case TCmdDelay, TCmdVar, TCmdIf, TCmdElseIf, TCmdWhile, TCmdFunction, TCmdReturn:
		return Expression
	case TCmdElse, TCmdEndIf, TCmdEndWhile, TCmdEndFunction:
		return Eol
	default:
		return Command
	}
}

// Next consumes leading intra-line whitespace, produces exactly one symbol,
// advances the stream past it, and sets the lexer's own next mode as a
// side-effect before returning — the contract of spec.md §4.2.
func (l *Lexer) Next() (Symbol, error) {
	if l.eof() {
		return Symbol{Kind: TEof, Line: l.line}, nil
	}

	switch l.mode {
	case Eol:
		return l.lexEol()
	case Command:
		return l.lexCommand()
	case String:
		return l.lexString()
	case Keys:
		return l.lexKeys()
	case Expression:
		return l.lexExpression()
	default:
		return Symbol{}, errors.Errorf("line %d: lexer in unknown mode", l.line)
	}
}

func (l *Lexer) lexEol() (Symbol, error) {
	if l.ch() != '\n' {
		return Symbol{}, l.errf("expected end of line")
	}
	l.adv()
	line := l.line
	l.line++
	l.mode = Command
	return Symbol{Kind: TEol, Line: line}, nil
}

func (l *Lexer) lexCommand() (Symbol, error) {
	// Skip blank lines and leading whitespace transparently.
	for {
		l.skipLineSpace()
		if l.eof() {
			return Symbol{Kind: TEof, Line: l.line}, nil
		}
		if l.ch() == '\n' {
			l.adv()
			l.line++
			continue
		}
		break
	}

	line := l.line

	switch {
	case l.ch() == '#':
		l.adv()
		var b strings.Builder
		for !l.eof() && l.ch() != '\n' {
			b.WriteByte(l.ch())
			l.adv()
		}
		l.mode = Eol
		return Symbol{Kind: TComment, Content: b.String(), Line: line}, nil

	case l.ch() == '$':
		l.adv()
		var b strings.Builder
		for !l.eof() && isAlnum(l.ch()) {
			b.WriteByte(l.ch())
			l.adv()
		}
		if b.Len() == 0 {
			return Symbol{}, l.errf("empty variable name")
		}
		l.mode = Expression
		return Symbol{Kind: TVariable, Content: b.String(), Line: line}, nil

	default:
		if !isAlpha(l.ch()) {
			return Symbol{}, l.errf("unrecognized character %q in command position", l.ch())
		}
		var b strings.Builder
		for !l.eof() && isAlnum(l.ch()) {
			b.WriteByte(l.ch())
			l.adv()
		}
		word := b.String()
		lower := strings.ToLower(word)

		if k, ok := keywords[lower]; ok {
			l.mode = nextMode(k)
			l.skipLineSpace()
			return Symbol{Kind: k, Content: lower, Line: line}, nil
		}

		if _, ok := keys.Lookup(word); ok {
			l.mode = Keys
			l.skipLineSpace()
			return Symbol{Kind: TCmdKey, Content: word, Line: line}, nil
		}

		return Symbol{}, l.errf("unknown command %q", word)
	}
}

func (l *Lexer) lexString() (Symbol, error) {
	line := l.line
	var b strings.Builder
	for !l.eof() && l.ch() != '\n' {
		b.WriteByte(l.ch())
		l.adv()
	}
	l.mode = Eol
	return Symbol{Kind: TString, Content: b.String(), Line: line}, nil
}

func (l *Lexer) lexKeys() (Symbol, error) {
	line := l.line
	l.skipLineSpace()
	if l.eof() {
		return Symbol{Kind: TEof, Line: line}, nil
	}
	if l.ch() == '\n' {
		l.mode = Eol
		return l.Next()
	}

	var b strings.Builder
	for !l.eof() && isAlnum(l.ch()) {
		b.WriteByte(l.ch())
		l.adv()
	}
	word := b.String()
	if word == "" {
		return Symbol{}, l.errf("unrecognized character %q in key position", l.ch())
	}

	l.skipLineSpace()
	if l.eof() || l.ch() == '\n' {
		l.mode = Eol
	}

	if _, ok := keys.Lookup(word); ok {
		return Symbol{Kind: TKey, Content: word, Line: line}, nil
	}
	if len(word) == 1 && isAlnum(word[0]) {
		return Symbol{Kind: TKey, Content: word, Line: line}, nil
	}
	return Symbol{}, l.errf("unknown key name %q", word)
}

func (l *Lexer) lexExpression() (Symbol, error) {
	line := l.line
	l.skipLineSpace()
	if l.eof() {
		return Symbol{Kind: TEof, Line: line}, nil
	}
	if l.ch() == '\n' {
		l.mode = Eol
		return l.Next()
	}

	var sym Symbol
	switch {
	case isAlpha(l.ch()):
		var b strings.Builder
		for !l.eof() && isAlpha(l.ch()) {
			b.WriteByte(l.ch())
			l.adv()
		}
		word := b.String()
		switch strings.ToLower(word) {
		case "true":
			sym = Symbol{Kind: TTrue, Content: word, Line: line}
		case "false":
			sym = Symbol{Kind: TFalse, Content: word, Line: line}
		default:
			sym = Symbol{Kind: TName, Content: word, Line: line}
		}

	case l.ch() == '$':
		l.adv()
		var b strings.Builder
		for !l.eof() && isAlnum(l.ch()) {
			b.WriteByte(l.ch())
			l.adv()
		}
		if b.Len() == 0 {
			return Symbol{}, l.errf("empty variable name")
		}
		sym = Symbol{Kind: TVariable, Content: b.String(), Line: line}

	case isDigit(l.ch()):
		var b strings.Builder
		for !l.eof() && isDigit(l.ch()) {
			b.WriteByte(l.ch())
			l.adv()
		}
		sym = Symbol{Kind: TNumber, Content: b.String(), Line: line}

	case l.ch() == '=':
		l.adv()
		if l.ch() == '=' {
			l.adv()
			sym = Symbol{Kind: TEq, Content: "==", Line: line}
		} else {
			sym = Symbol{Kind: TAssign, Content: "=", Line: line}
		}

	case l.ch() == '&':
		l.adv()
		if l.ch() == '&' {
			l.adv()
			sym = Symbol{Kind: TAnd, Content: "&&", Line: line}
		} else {
			sym = Symbol{Kind: TBitAnd, Content: "&", Line: line}
		}

	case l.ch() == '|':
		l.adv()
		if l.ch() == '|' {
			l.adv()
			sym = Symbol{Kind: TOr, Content: "||", Line: line}
		} else {
			sym = Symbol{Kind: TBitOr, Content: "|", Line: line}
		}

	case l.ch() == '<':
		l.adv()
		switch l.ch() {
		case '<':
			l.adv()
			sym = Symbol{Kind: TShl, Content: "<<", Line: line}
		case '=':
			l.adv()
			sym = Symbol{Kind: TLeq, Content: "<=", Line: line}
		default:
			sym = Symbol{Kind: TLt, Content: "<", Line: line}
		}

	case l.ch() == '>':
		l.adv()
		switch l.ch() {
		case '>':
			l.adv()
			sym = Symbol{Kind: TShr, Content: ">>", Line: line}
		case '=':
			l.adv()
			sym = Symbol{Kind: TGeq, Content: ">=", Line: line}
		default:
			sym = Symbol{Kind: TGt, Content: ">", Line: line}
		}

	case l.ch() == '!':
		l.adv()
		if l.ch() == '=' {
			l.adv()
			sym = Symbol{Kind: TNeq, Content: "!=", Line: line}
		} else {
			sym = Symbol{Kind: TNot, Content: "!", Line: line}
		}

	case l.ch() == '+':
		l.adv()
		sym = Symbol{Kind: TAdd, Content: "+", Line: line}
	case l.ch() == '-':
		l.adv()
		sym = Symbol{Kind: TSub, Content: "-", Line: line}
	case l.ch() == '*':
		l.adv()
		sym = Symbol{Kind: TMul, Content: "*", Line: line}
	case l.ch() == '/':
		l.adv()
		sym = Symbol{Kind: TDiv, Content: "/", Line: line}
	case l.ch() == '%':
		l.adv()
		sym = Symbol{Kind: TMod, Content: "%", Line: line}
	case l.ch() == '^':
		l.adv()
		sym = Symbol{Kind: TExp, Content: "^", Line: line}
	case l.ch() == '~':
		l.adv()
		sym = Symbol{Kind: TBitNot, Content: "~", Line: line}
	case l.ch() == '(':
		l.adv()
		sym = Symbol{Kind: TOpenPar, Content: "(", Line: line}
	case l.ch() == ')':
		l.adv()
		sym = Symbol{Kind: TClosePar, Content: ")", Line: line}
	case l.ch() == ',':
		l.adv()
		sym = Symbol{Kind: TComma, Content: ",", Line: line}

	default:
		return Symbol{}, l.errf("unrecognized character %q in expression", l.ch())
	}

	l.skipLineSpace()
	if l.eof() || l.ch() == '\n' {
		l.mode = Eol
	}
	return sym, nil
}

func (l *Lexer) errf(format string, args ...interface{}) error {
	return errors.Errorf("line %d: "+format, append([]interface{}{l.line}, args...)...)
}
