package value

import (
	"testing"
)

func TestParseKeybind(t *testing.T) {
	tests := []struct {
		raw  string
		want Keybind
	}{
		{"x", Keybind{Key: "x"}},
		{"<ctrl>x", Keybind{Mods: ModCtrl, Key: "x"}},
		{"<ctrl><alt>delete", Keybind{Mods: ModCtrl | ModAlt, Key: "delete"}},
		{"<super>space", Keybind{Mods: ModSuper, Key: "space"}},
		{"<super> e", Keybind{Mods: ModSuper, Key: "e"}},
		{"<alt><ctrl>x", Keybind{Mods: ModCtrl | ModAlt, Key: "x"}},
		{"<CTRL>X", Keybind{Mods: ModCtrl, Key: "x"}},
		{"f5", Keybind{Key: "f5"}},
		{"<shift>f12", Keybind{Mods: ModShift, Key: "f12"}},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := ParseKeybind(tt.raw)
			if err != nil {
				t.Fatalf("ParseKeybind(%q) error: %v", tt.raw, err)
			}
			if got != tt.want {
				t.Errorf("ParseKeybind(%q) = %+v, want %+v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestParseKeybind_Invalid(t *testing.T) {
	tests := []string{
		"",
		"<ctrl>",
		"<ctrl",
		"<hyper>x",
		"<ctrl><ctrl>x",
		"f13",
		"f0",
		"notakey",
	}

	for _, raw := range tests {
		if _, err := ParseKeybind(raw); err == nil {
			t.Errorf("ParseKeybind(%q) expected error, got nil", raw)
		}
	}
}

func TestKeybind_String_Canonical(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"x", "x"},
		{"<alt><ctrl>x", "<ctrl><alt>x"},
		{"<super> space", "<super>space"},
		{"<SHIFT>F5", "<shift>f5"},
	}

	for _, tt := range tests {
		b, err := ParseKeybind(tt.raw)
		if err != nil {
			t.Fatalf("ParseKeybind(%q) error: %v", tt.raw, err)
		}
		if got := b.String(); got != tt.want {
			t.Errorf("ParseKeybind(%q).String() = %q, want %q", tt.raw, got, tt.want)
		}
	}
}

func TestModifier_Has(t *testing.T) {
	m := ModCtrl | ModShift
	if !m.Has(ModCtrl) || !m.Has(ModShift) {
		t.Error("modifier set should contain ctrl and shift")
	}
	if m.Has(ModAlt) || m.Has(ModSuper) {
		t.Error("modifier set should not contain alt or super")
	}
}
