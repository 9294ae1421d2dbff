package keys

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLookupAliases(t *testing.T) {
	cases := map[string]ID{
		"ctrl":      LeftCtrl,
		"CTRL":      LeftCtrl,
		"control":   LeftCtrl,
		"rctrl":     RightCtrl,
		"shift":     LeftShift,
		"alt":       LeftAlt,
		"option":    LeftAlt,
		"gui":       LeftGui,
		"windows":   LeftGui,
		"command":   LeftGui,
		"up":        Up,
		"uparrow":   Up,
		"esc":       Escape,
		"del":       Delete,
		"np3":       Numpad3,
		"numpad3":   Numpad3,
		"f12":       F12,
		"scrollock": ScrollLock,
	}
	for name, want := range cases {
		id, ok := Lookup(name)
		assert.Truef(t, ok, "expected %q to resolve", name)
		assert.Equalf(t, want, id, "name %q", name)
	}
}

func TestLookupUnknown(t *testing.T) {
	_, ok := Lookup("notakey")
	assert.False(t, ok)
}

func TestModifierFor(t *testing.T) {
	assert.Equal(t, ModCtrl, ModifierFor(LeftCtrl))
	assert.Equal(t, ModCtrl, ModifierFor(RightCtrl))
	assert.Equal(t, ModShift, ModifierFor(LeftShift))
	assert.Equal(t, ModAlt, ModifierFor(RightAlt))
	assert.Equal(t, ModGui, ModifierFor(LeftGui))
	assert.Equal(t, ModNone, ModifierFor(Enter))
}

func TestCharKey(t *testing.T) {
	id, b := CharKey('q')
	assert.Equal(t, Char, id)
	assert.Equal(t, byte('q'), b)
}

func TestModifierComposition(t *testing.T) {
	// Composition must be OR, never AND: spec.md §9's fixed bug.
	m := ModCtrl | ModShift
	assert.NotEqual(t, ModNone, m&ModCtrl)
	assert.NotEqual(t, ModNone, m&ModShift)
	assert.Equal(t, ModNone, m&ModAlt)
}
