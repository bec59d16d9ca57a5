package convert

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

// ToColor converts CSS color names ("steelblue"), hex strings ("#rgb",
// "#rgba", "#rrggbb", "#rrggbbaa") and any color.Color to color.RGBA.
func ToColor(v any) any {
	switch c := v.(type) {
	case color.RGBA:
		return c
	case color.Color:
		return color.RGBAModel.Convert(c)
	case string:
		if parsed, ok := ParseColor(c); ok {
			return parsed
		}
	}
	return v
}

// FromColor formats a color as "#rrggbb", or "#rrggbbaa" when it is not
// fully opaque.
func FromColor(v any) any {
	c, ok := v.(color.Color)
	if !ok {
		return v
	}
	rgba := color.RGBAModel.Convert(c).(color.RGBA)
	if rgba.A == 0xff {
		return fmt.Sprintf("#%02x%02x%02x", rgba.R, rgba.G, rgba.B)
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", rgba.R, rgba.G, rgba.B, rgba.A)
}

// ParseColor parses a CSS color name or hex string.
func ParseColor(s string) (color.RGBA, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if c, ok := colornames.Map[s]; ok {
		return c, true
	}
	hex, ok := strings.CutPrefix(s, "#")
	if !ok {
		return color.RGBA{}, false
	}
	switch len(hex) {
	case 3, 4:
		var expanded strings.Builder
		for _, r := range hex {
			expanded.WriteRune(r)
			expanded.WriteRune(r)
		}
		hex = expanded.String()
	case 6, 8:
	default:
		return color.RGBA{}, false
	}
	if len(hex) == 6 {
		hex += "ff"
	}
	n, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, false
	}
	return color.RGBA{
		R: uint8(n >> 24),
		G: uint8(n >> 16),
		B: uint8(n >> 8),
		A: uint8(n),
	}, true
}
