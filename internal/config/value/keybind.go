package value

import (
	"fmt"
	"strings"
)

// Modifier represents keyboard modifier keys in a keybind.
type Modifier uint8

const (
	// ModNone indicates no modifiers.
	ModNone Modifier = 0

	// ModShift indicates the Shift key.
	ModShift Modifier = 1 << iota

	// ModCtrl indicates the Control key.
	ModCtrl

	// ModAlt indicates the Alt key.
	ModAlt

	// ModSuper indicates the Super key (Cmd/Win/Logo).
	ModSuper
)

// Has returns true if m contains the specified modifier.
func (m Modifier) Has(mod Modifier) bool {
	return m&mod != 0
}

// modifierNames maps angle-bracket tokens to modifier bits.
// Canonical rendering follows the order of this table.
var modifierNames = []struct {
	token string
	mod   Modifier
}{
	{"ctrl", ModCtrl},
	{"alt", ModAlt},
	{"shift", ModShift},
	{"super", ModSuper},
}

// Keybind is a modifier+key chord, written in text as zero or more
// angle-bracket modifiers followed by a key name: "<ctrl><alt>x",
// "<super>space", "f5".
type Keybind struct {
	// Mods is the modifier set of the chord.
	Mods Modifier

	// Key is the lowercase key name: a single character or a named
	// key such as "space", "enter", "tab", "escape" or "f1".."f12".
	Key string
}

// ParseKeybind parses a keybind chord from its text form.
func ParseKeybind(raw string) (Keybind, error) {
	s := strings.ToLower(strings.TrimSpace(raw))
	var b Keybind

	for strings.HasPrefix(s, "<") {
		end := strings.IndexByte(s, '>')
		if end < 0 {
			return Keybind{}, fmt.Errorf("parsing %q as keybind: unterminated modifier", raw)
		}
		token := s[1:end]
		mod, ok := lookupModifier(token)
		if !ok {
			return Keybind{}, fmt.Errorf("parsing %q as keybind: unknown modifier %q", raw, token)
		}
		if b.Mods.Has(mod) {
			return Keybind{}, fmt.Errorf("parsing %q as keybind: duplicate modifier %q", raw, token)
		}
		b.Mods |= mod
		s = strings.TrimSpace(s[end+1:])
	}

	if s == "" {
		return Keybind{}, fmt.Errorf("parsing %q as keybind: missing key", raw)
	}
	if !validKeyName(s) {
		return Keybind{}, fmt.Errorf("parsing %q as keybind: unknown key %q", raw, s)
	}

	b.Key = s
	return b, nil
}

// String renders the chord in canonical form: modifiers in ctrl, alt,
// shift, super order, no whitespace, lowercase key name.
func (b Keybind) String() string {
	var sb strings.Builder
	for _, m := range modifierNames {
		if b.Mods.Has(m.mod) {
			sb.WriteByte('<')
			sb.WriteString(m.token)
			sb.WriteByte('>')
		}
	}
	sb.WriteString(b.Key)
	return sb.String()
}

func lookupModifier(token string) (Modifier, bool) {
	for _, m := range modifierNames {
		if m.token == token {
			return m.mod, true
		}
	}
	return ModNone, false
}

// namedKeys is the set of multi-character key names.
var namedKeys = map[string]bool{
	"space":     true,
	"enter":     true,
	"tab":       true,
	"escape":    true,
	"backspace": true,
	"delete":    true,
	"insert":    true,
	"home":      true,
	"end":       true,
	"pageup":    true,
	"pagedown":  true,
	"up":        true,
	"down":      true,
	"left":      true,
	"right":     true,
}

func validKeyName(name string) bool {
	if len(name) == 1 {
		return name != "<" && name != ">"
	}
	if namedKeys[name] {
		return true
	}
	// Function keys f1..f12
	if len(name) >= 2 && name[0] == 'f' {
		n := 0
		for _, c := range name[1:] {
			if c < '0' || c > '9' {
				return false
			}
			n = n*10 + int(c-'0')
		}
		return n >= 1 && n <= 12
	}
	return false
}
