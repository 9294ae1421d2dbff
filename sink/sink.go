// Package sink defines the boundary between the interpreter and whatever
// actually types keystrokes — a USB HID stack on real hardware, or a
// recorder in tests. It mirrors the teacher's executor package in spirit:
// executor.Weave drove side effects through a handful of small interfaces
// rather than writing output directly; ActionSink plays the same role for
// every action an interpreted script can perform.
package sink

import "monogrammedchalk.com/goofy/internal/keys"

// ActionSink receives every observable action a running script performs, in
// the order the script performs them. Implementations must not block
// indefinitely; ctx-less by design because the teacher's own action
// interfaces (executor.Stack's frame push/pop) are synchronous too, and
// goofy scripts run start-to-finish on a single goroutine.
type ActionSink interface {
	// TypeString types s with no trailing newline.
	TypeString(s string) error
	// TypeStringln types s followed by a newline keystroke.
	TypeStringln(s string) error
	// Delay pauses for ms milliseconds.
	Delay(ms uint32) error
	// Key taps a chord (modifiers held, then id/ch pressed and released).
	Key(mods keys.Modifier, id keys.ID, ch byte) error
	// Hold presses and holds down a list of modifier keys, per spec.md §6's
	// hold(key_id_list) contract — it does not take a final non-modifier key.
	Hold(mods keys.Modifier) error
	// Release lifts a previously held set of modifier keys.
	Release(mods keys.Modifier) error
}
