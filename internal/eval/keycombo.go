package eval

import (
	"monogrammedchalk.com/goofy/internal/keys"
	"monogrammedchalk.com/goofy/internal/lexer"
)

// keyCombo is a resolved key chord: zero or more held modifiers plus exactly
// one non-modifier key, per spec.md §4.4. ch is only meaningful when
// ID == keys.Char.
type keyCombo struct {
	Mods keys.Modifier
	ID   keys.ID
	Ch   byte
}

// resolveKeyName turns one lexed key-name string into an ID (and, for a bare
// character, the byte it carries), per goofy_lexer_key's alias resolution.
func resolveKeyName(name string) (keys.ID, byte) {
	if id, ok := keys.Lookup(name); ok {
		return id, 0
	}
	return keys.CharKey(name[0])
}

// parseKeyCombo collects the key names in Keys-mode tokens up to (not
// including) the closing Eol, composing any modifier keys into a bitmask
// with the final non-modifier key — using bitwise OR throughout, never the
// AND composition bug spec.md §9 calls out in the original C source.
//
// first is the key name already carried by the command token itself (the
// 'key' command folds its first key name into TCmdKey); an empty first is
// skipped. cmdKey is the only caller: hold/release collect their keys with
// parseModifierList instead.
func (ip *Interp) parseKeyCombo(first string) (keyCombo, error) {
	var combo keyCombo
	haveFinal := false

	apply := func(name string) error {
		id, ch := resolveKeyName(name)
		if m := keys.ModifierFor(id); m != keys.ModNone {
			combo.Mods |= m
			return nil
		}
		if haveFinal {
			return ip.errf("more than one non-modifier key in a key combo")
		}
		combo.ID, combo.Ch = id, ch
		haveFinal = true
		return nil
	}

	if first != "" {
		if err := apply(first); err != nil {
			return keyCombo{}, err
		}
	}

	for ip.cur.Kind == lexer.TKey {
		if err := apply(ip.cur.Content); err != nil {
			return keyCombo{}, err
		}
		if err := ip.next(); err != nil {
			return keyCombo{}, err
		}
	}

	if !haveFinal {
		return keyCombo{}, ip.errf("key combo has no non-modifier key")
	}
	return combo, nil
}

func (ip *Interp) cmdKey() error {
	first := ip.cur.Content
	if err := ip.next(); err != nil { // consume the command token itself
		return err
	}
	combo, err := ip.parseKeyCombo(first)
	if err != nil {
		return err
	}
	if err := ip.expectEol(); err != nil {
		return err
	}
	return ip.disp.Key(combo.Mods, combo.ID, combo.Ch)
}

// parseModifierList collects one or more modifier key names up to the
// closing Eol, for hold/release — per spec.md §6 these take a list of
// modifier key ids, not a tap chord with a final non-modifier key.
func (ip *Interp) parseModifierList() (keys.Modifier, error) {
	var mods keys.Modifier
	for ip.cur.Kind == lexer.TKey {
		id, _ := resolveKeyName(ip.cur.Content)
		m := keys.ModifierFor(id)
		if m == keys.ModNone {
			return 0, ip.errf("hold/release expects a modifier key name, got %q", ip.cur.Content)
		}
		mods |= m
		if err := ip.next(); err != nil {
			return 0, err
		}
	}
	if mods == keys.ModNone {
		return 0, ip.errf("hold/release requires at least one modifier key")
	}
	return mods, nil
}

func (ip *Interp) cmdHoldRelease(hold bool) error {
	if err := ip.next(); err != nil { // consume 'hold'/'release', now a key name
		return err
	}
	if ip.cur.Kind != lexer.TKey {
		return ip.errf("expected a modifier key name")
	}
	mods, err := ip.parseModifierList()
	if err != nil {
		return err
	}
	if err := ip.expectEol(); err != nil {
		return err
	}
	if hold {
		return ip.disp.Hold(mods)
	}
	return ip.disp.Release(mods)
}
