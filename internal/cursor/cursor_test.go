package cursor

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPeekAdvance(t *testing.T) {
	c := New(bytes.NewReader([]byte("abc")))
	require.Equal(t, byte('a'), c.Peek())
	require.False(t, c.AtEOF())
	c.Advance()
	require.Equal(t, byte('b'), c.Peek())
	c.Advance()
	require.Equal(t, byte('c'), c.Peek())
	c.Advance()
	require.True(t, c.AtEOF())
}

func TestEmptyStream(t *testing.T) {
	c := New(bytes.NewReader(nil))
	require.True(t, c.AtEOF())
}

// TestSeekReproducesLookahead is the re-entrancy invariant lexer.Position
// depends on: capturing Tell() and seeking back to it must restore the
// exact lookahead byte that was buffered at capture time.
func TestSeekReproducesLookahead(t *testing.T) {
	c := New(bytes.NewReader([]byte("hello")))
	c.Advance()
	c.Advance() // look == 'l' (index 2)
	checkpoint := c.Tell()
	require.Equal(t, byte('l'), c.Peek())

	c.Advance()
	c.Advance()
	c.Advance()
	require.True(t, c.AtEOF())

	require.NoError(t, c.Seek(checkpoint))
	require.Equal(t, byte('l'), c.Peek())
	require.False(t, c.AtEOF())

	c.Advance()
	require.Equal(t, byte('l'), c.Peek())
	c.Advance()
	require.Equal(t, byte('o'), c.Peek())
}

func TestSeekToStart(t *testing.T) {
	c := New(bytes.NewReader([]byte("xyz")))
	start := c.Tell()
	c.Advance()
	c.Advance()
	require.NoError(t, c.Seek(start))
	require.Equal(t, byte('x'), c.Peek())
}
