// Package keys maps the key-command surface of a goofy script (arrow keys,
// modifiers, function keys, the numeric keypad) onto a small enumeration,
// and supplies the alias table used by the lexer's Keys mode.
//
// Ported from original_source/applications/bad_usb/goofy_lexer.c's
// goofy_lexer_key: the teacher's weave.go leaves its analogous dispatch
// paths as unimplemented stubs (weaveNatural/weaveCode return nil, nil);
// this package is the piece spec.md requires built rather than stubbed.
package keys

import "strings"

// ID identifies one key on the action sink's keyboard.
type ID int

const (
	None ID = iota
	Char    // a single alphanumeric character key, see CharKey
	Up
	Down
	Left
	Right
	PageUp
	PageDown
	Home
	End
	Insert
	Delete
	Backspace
	Tab
	Space
	Enter
	Escape
	Break
	PrintScreen
	App
	F1
	F2
	F3
	F4
	F5
	F6
	F7
	F8
	F9
	F10
	F11
	F12
	Numpad0
	Numpad1
	Numpad2
	Numpad3
	Numpad4
	Numpad5
	Numpad6
	Numpad7
	Numpad8
	Numpad9
	LeftCtrl
	RightCtrl
	LeftShift
	RightShift
	LeftAlt
	RightAlt
	LeftGui
	RightGui
	CapsLock
	NumLock
	ScrollLock
)

// Modifier is a bitmask of held modifier keys, composed with bitwise OR —
// see spec.md §9: the source composes key codes with AND where OR was
// intended; this package never repeats that bug.
type Modifier uint8

const (
	ModNone  Modifier = 0
	ModCtrl  Modifier = 1 << 0
	ModShift Modifier = 1 << 1
	ModAlt   Modifier = 1 << 2
	ModGui   Modifier = 1 << 3
)

// ModifierFor reports the modifier bit a key contributes when held, or
// ModNone if the key is not a modifier key.
func ModifierFor(id ID) Modifier {
	switch id {
	case LeftCtrl, RightCtrl:
		return ModCtrl
	case LeftShift, RightShift:
		return ModShift
	case LeftAlt, RightAlt:
		return ModAlt
	case LeftGui, RightGui:
		return ModGui
	default:
		return ModNone
	}
}

// aliases maps every case-folded key name recognized in Command/Keys mode to
// its ID, following goofy_lexer_key's alias groupings verbatim.
var aliases = map[string]ID{
	"up": Up, "uparrow": Up,
	"down": Down, "downarrow": Down,
	"left": Left, "leftarrow": Left,
	"right": Right, "rightarrow": Right,
	"pageup":   PageUp,
	"pagedown": PageDown,
	"home":     Home,
	"end":      End,
	"insert":   Insert, "ins": Insert,
	"delete": Delete, "del": Delete,
	"backspace": Backspace, "back": Backspace,
	"tab":   Tab,
	"space": Space,
	"enter": Enter,
	"escape": Escape, "esc": Escape,
	"pause": Break, "break": Break,
	"printscreen": PrintScreen,
	"menu":        App, "app": App,
	"f1": F1, "f2": F2, "f3": F3, "f4": F4, "f5": F5, "f6": F6,
	"f7": F7, "f8": F8, "f9": F9, "f10": F10, "f11": F11, "f12": F12,
	"numpad0": Numpad0, "np0": Numpad0,
	"numpad1": Numpad1, "np1": Numpad1,
	"numpad2": Numpad2, "np2": Numpad2,
	"numpad3": Numpad3, "np3": Numpad3,
	"numpad4": Numpad4, "np4": Numpad4,
	"numpad5": Numpad5, "np5": Numpad5,
	"numpad6": Numpad6, "np6": Numpad6,
	"numpad7": Numpad7, "np7": Numpad7,
	"numpad8": Numpad8, "np8": Numpad8,
	"numpad9": Numpad9, "np9": Numpad9,
	"control": LeftCtrl, "ctrl": LeftCtrl, "lctrl": LeftCtrl,
	"rctrl": RightCtrl,
	"shift": LeftShift, "lshift": LeftShift,
	"rshift": RightShift,
	"alt":    LeftAlt, "lalt": LeftAlt, "option": LeftAlt,
	"ralt": RightAlt,
	"windows": LeftGui, "gui": LeftGui, "lgui": LeftGui, "command": LeftGui,
	"rgui":       RightGui,
	"capslock":   CapsLock,
	"numlock":    NumLock,
	"scrolllock": ScrollLock, "scrollock": ScrollLock,
}

// Lookup resolves a (case-insensitive) key name to its ID, returning
// (None, false) for anything not in the alias table.
func Lookup(name string) (ID, bool) {
	id, ok := aliases[strings.ToLower(name)]
	return id, ok
}

// CharKey returns the generic character-key marker and the byte it carries.
// In Keys mode a lone alphanumeric character that isn't a recognized key
// name binds to this, per goofy_lexer.c's GoofyLexerKeyChar fallback.
func CharKey(b byte) (ID, byte) {
	return Char, b
}
