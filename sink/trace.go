package sink

import (
	"fmt"
	"io"

	"monogrammedchalk.com/goofy/internal/keys"
)

// Trace writes a human-readable line to W for every action, as it happens.
// Used by cmd/goofy's --stdout-trace dry-run mode in place of a real HID
// backend.
type Trace struct {
	W io.Writer
}

func (t Trace) TypeString(s string) error {
	_, err := fmt.Fprintf(t.W, "string %q\n", s)
	return err
}

func (t Trace) TypeStringln(s string) error {
	_, err := fmt.Fprintf(t.W, "stringln %q\n", s)
	return err
}

func (t Trace) Delay(ms uint32) error {
	_, err := fmt.Fprintf(t.W, "delay %d\n", ms)
	return err
}

func (t Trace) Key(mods keys.Modifier, id keys.ID, ch byte) error {
	_, err := fmt.Fprintf(t.W, "key mods=%04b id=%d ch=%q\n", mods, id, ch)
	return err
}

func (t Trace) Hold(mods keys.Modifier) error {
	_, err := fmt.Fprintf(t.W, "hold mods=%04b\n", mods)
	return err
}

func (t Trace) Release(mods keys.Modifier) error {
	_, err := fmt.Fprintf(t.W, "release mods=%04b\n", mods)
	return err
}
