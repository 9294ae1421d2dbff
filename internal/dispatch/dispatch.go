// Package dispatch is the thin adapter the evaluator calls through at every
// string/stringln/delay/key/hold/release parse point, forwarding to a
// sink.ActionSink. It exists as its own package (rather than folding
// straight into internal/eval) the way the teacher keeps executor.Weave's
// side-effecting calls behind small interfaces instead of writing output
// inline from the parser — a seam a real HID backend plugs into without
// internal/eval ever importing it directly.
package dispatch

import (
	"monogrammedchalk.com/goofy/internal/keys"
	"monogrammedchalk.com/goofy/sink"
)

// Dispatcher forwards to an ActionSink, clamping a negative delay to zero
// per spec.md §4.4 rather than letting it underflow into a giant uint32.
type Dispatcher struct {
	sink sink.ActionSink
}

func New(s sink.ActionSink) *Dispatcher {
	return &Dispatcher{sink: s}
}

func (d *Dispatcher) TypeString(s string) error {
	return d.sink.TypeString(s)
}

func (d *Dispatcher) TypeStringln(s string) error {
	return d.sink.TypeStringln(s)
}

func (d *Dispatcher) Delay(ms int32) error {
	if ms < 0 {
		ms = 0
	}
	return d.sink.Delay(uint32(ms))
}

func (d *Dispatcher) Key(mods keys.Modifier, id keys.ID, ch byte) error {
	return d.sink.Key(mods, id, ch)
}

func (d *Dispatcher) Hold(mods keys.Modifier) error {
	return d.sink.Hold(mods)
}

func (d *Dispatcher) Release(mods keys.Modifier) error {
	return d.sink.Release(mods)
}
