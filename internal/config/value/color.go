package value

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Color is an RGB color with an alpha channel, stored in text form as
// #RRGGBB or #RRGGBBAA.
type Color struct {
	// RGB holds the color channels in [0,1].
	RGB colorful.Color

	// Alpha is the opacity in [0,1]. 1 is fully opaque.
	Alpha float64
}

// ParseColor parses a #RRGGBB or #RRGGBBAA hex color.
func ParseColor(raw string) (Color, error) {
	s := strings.TrimSpace(raw)
	alpha := 1.0

	if strings.HasPrefix(s, "#") && len(s) == 9 {
		a, err := strconv.ParseUint(s[7:], 16, 8)
		if err != nil {
			return Color{}, fmt.Errorf("parsing %q as color: bad alpha: %w", raw, err)
		}
		alpha = float64(a) / 255.0
		s = s[:7]
	}

	rgb, err := colorful.Hex(s)
	if err != nil {
		return Color{}, fmt.Errorf("parsing %q as color: %w", raw, err)
	}

	return Color{RGB: rgb, Alpha: alpha}, nil
}

// String renders the color in canonical hex form. Fully opaque colors
// omit the alpha byte.
func (c Color) String() string {
	hex := c.RGB.Hex()
	if c.Alpha >= 1.0 {
		return hex
	}
	a := int(c.Alpha*255.0 + 0.5)
	return fmt.Sprintf("%s%02x", hex, a)
}
