package sink

import (
	"fmt"

	"monogrammedchalk.com/goofy/internal/keys"
)

// Action is one recorded call against a Recorder, for use in table-driven
// tests with github.com/google/go-cmp.
type Action struct {
	Kind string // "string", "stringln", "delay", "key", "hold", "release"
	Text string
	Ms   uint32
	Mods keys.Modifier
	ID   keys.ID
	Ch   byte
}

func (a Action) String() string {
	switch a.Kind {
	case "string", "stringln":
		return fmt.Sprintf("%s(%q)", a.Kind, a.Text)
	case "delay":
		return fmt.Sprintf("delay(%d)", a.Ms)
	case "hold", "release":
		return fmt.Sprintf("%s(mods=%02b)", a.Kind, a.Mods)
	default:
		return fmt.Sprintf("%s(mods=%02b id=%d ch=%q)", a.Kind, a.Mods, a.ID, a.Ch)
	}
}

// Recorder is an ActionSink that appends every call it receives, in order,
// to Actions. It never fails and never sleeps; it exists for tests.
type Recorder struct {
	Actions []Action
}

func (r *Recorder) TypeString(s string) error {
	r.Actions = append(r.Actions, Action{Kind: "string", Text: s})
	return nil
}

func (r *Recorder) TypeStringln(s string) error {
	r.Actions = append(r.Actions, Action{Kind: "stringln", Text: s})
	return nil
}

func (r *Recorder) Delay(ms uint32) error {
	r.Actions = append(r.Actions, Action{Kind: "delay", Ms: ms})
	return nil
}

func (r *Recorder) Key(mods keys.Modifier, id keys.ID, ch byte) error {
	r.Actions = append(r.Actions, Action{Kind: "key", Mods: mods, ID: id, Ch: ch})
	return nil
}

func (r *Recorder) Hold(mods keys.Modifier) error {
	r.Actions = append(r.Actions, Action{Kind: "hold", Mods: mods})
	return nil
}

func (r *Recorder) Release(mods keys.Modifier) error {
	r.Actions = append(r.Actions, Action{Kind: "release", Mods: mods})
	return nil
}

// Null discards every action. Useful for benchmarking the interpreter
// without a real HID backend or a growing Recorder slice.
type Null struct{}

func (Null) TypeString(string) error                { return nil }
func (Null) TypeStringln(string) error              { return nil }
func (Null) Delay(uint32) error                     { return nil }
func (Null) Key(keys.Modifier, keys.ID, byte) error { return nil }
func (Null) Hold(keys.Modifier) error               { return nil }
func (Null) Release(keys.Modifier) error            { return nil }
