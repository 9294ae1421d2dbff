// Package cursor wraps a seekable byte stream with single-byte lookahead,
// the way the teacher's lexer buffers one rune ahead of the reader it owns.
package cursor

import (
	"io"

	"github.com/pkg/errors"
)

// Cursor is a forward-reading, seek-capable byte stream with one byte of
// buffered lookahead. It is the sole owner of the underlying stream for the
// run's duration; the lexer is its only caller.
type Cursor struct {
	r     io.ReadSeeker
	look  byte
	atEOF bool
	// pos is the stream offset of the byte currently buffered in look (or,
	// once atEOF, the offset of the last byte successfully read). Tell
	// reports this, not the offset of the next unread byte, so that
	// Seek(Tell()) reproduces look exactly — the re-entrancy invariant
	// lexer.Position depends on.
	pos int64
}

// New creates a cursor over r and reads the first lookahead byte.
func New(r io.ReadSeeker) *Cursor {
	c := &Cursor{r: r, pos: -1}
	c.Advance()
	return c
}

// Peek returns the buffered lookahead byte. At EOF it returns the last byte
// that was latched (callers must check AtEOF before trusting it).
func (c *Cursor) Peek() byte {
	return c.look
}

// AtEOF reports whether the stream has been exhausted.
func (c *Cursor) AtEOF() bool {
	return c.atEOF
}

// Tell returns the stream offset of the byte currently held in Peek.
func (c *Cursor) Tell() int64 {
	return c.pos
}

// Advance reads one more byte into the lookahead buffer. It is a no-op at
// EOF: the last byte stays latched so callers that forgot to check AtEOF
// don't read garbage.
func (c *Cursor) Advance() {
	if c.atEOF {
		return
	}
	var b [1]byte
	n, err := c.r.Read(b[:])
	if n == 1 {
		c.look = b[0]
		c.pos++
		return
	}
	// A read error (including io.EOF) surfaces as end of input; the lexer
	// treats any stream failure the same way it treats a clean EOF.
	_ = err
	c.atEOF = true
}

// Seek repositions the stream so that the byte at offset off becomes the
// new lookahead, reloading it immediately. Callers must supply an offset
// previously obtained from Tell, typically via a lexer checkpoint.
func (c *Cursor) Seek(off int64) error {
	if _, err := c.r.Seek(off, io.SeekStart); err != nil {
		return errors.Wrapf(err, "cursor: seek to offset %d", off)
	}
	c.pos = off - 1
	c.atEOF = false
	c.Advance()
	return nil
}
