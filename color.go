package gglayer

import (
	"fmt"
	"math"
	"strconv"

	"github.com/gogpu/gglayer/blend"
)

// Color is a non-premultiplied RGBA color with 8-bit channels.
type Color = blend.Pixel

// RGB returns an opaque color.
func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b, A: 255}
}

// RGBA returns a color with explicit alpha.
func RGBA(r, g, b, a uint8) Color {
	return Color{R: r, G: g, B: b, A: a}
}

// ParseHex parses a color in "#rgb", "#rgba", "#rrggbb" or "#rrggbbaa" form.
// The leading '#' is optional. Colors without an alpha component are opaque.
func ParseHex(s string) (Color, error) {
	hex := s
	if hex != "" && hex[0] == '#' {
		hex = hex[1:]
	}

	var digits int
	switch len(hex) {
	case 3, 4:
		digits = 1
	case 6, 8:
		digits = 2
	default:
		return Color{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}

	ch := [4]uint8{3: 255}
	for i := 0; i*digits < len(hex); i++ {
		v, err := strconv.ParseUint(hex[i*digits:(i+1)*digits], 16, 8)
		if err != nil {
			return Color{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
		}
		if digits == 1 {
			v *= 17
		}
		ch[i] = uint8(v)
	}

	return Color{R: ch[0], G: ch[1], B: ch[2], A: ch[3]}, nil
}

// clamp255 limits x to the [0, 255] range.
func clamp255(x float64) float64 {
	if x < 0 || math.IsNaN(x) {
		return 0
	}
	if x > 255 {
		return 255
	}
	return x
}
