package value

import (
	"math"
	"testing"
)

func TestParseColor(t *testing.T) {
	tests := []struct {
		raw       string
		wantR     float64
		wantG     float64
		wantB     float64
		wantAlpha float64
	}{
		{"#ff0000", 1, 0, 0, 1},
		{"#00ff00", 0, 1, 0, 1},
		{"#336699", 0x33 / 255.0, 0x66 / 255.0, 0x99 / 255.0, 1},
		{"#00000080", 0, 0, 0, 0x80 / 255.0},
		{"#ffffff00", 1, 1, 1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			c, err := ParseColor(tt.raw)
			if err != nil {
				t.Fatalf("ParseColor(%q) error: %v", tt.raw, err)
			}
			if !closeTo(c.RGB.R, tt.wantR) || !closeTo(c.RGB.G, tt.wantG) || !closeTo(c.RGB.B, tt.wantB) {
				t.Errorf("ParseColor(%q) rgb = (%v, %v, %v), want (%v, %v, %v)",
					tt.raw, c.RGB.R, c.RGB.G, c.RGB.B, tt.wantR, tt.wantG, tt.wantB)
			}
			if !closeTo(c.Alpha, tt.wantAlpha) {
				t.Errorf("ParseColor(%q) alpha = %v, want %v", tt.raw, c.Alpha, tt.wantAlpha)
			}
		})
	}
}

func TestParseColor_Invalid(t *testing.T) {
	for _, raw := range []string{"", "red", "336699", "#33669", "#336699zz"} {
		if _, err := ParseColor(raw); err == nil {
			t.Errorf("ParseColor(%q) expected error, got nil", raw)
		}
	}
}

func TestColor_String(t *testing.T) {
	tests := []string{"#ff0000", "#336699", "#00000080"}
	for _, raw := range tests {
		c, err := ParseColor(raw)
		if err != nil {
			t.Fatalf("ParseColor(%q) error: %v", raw, err)
		}
		if got := c.String(); got != raw {
			t.Errorf("ParseColor(%q).String() = %q, want the input back", raw, got)
		}
	}
}

func closeTo(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}
