package frame

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// ParseHex parses a 6-digit hex color, with or without a leading #. Invalid
// input returns the fallback rather than an error.
func ParseHex(s string, fallback color.RGBA) color.RGBA {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) != 6 {
		return fallback
	}

	r, err1 := strconv.ParseUint(s[0:2], 16, 8)
	g, err2 := strconv.ParseUint(s[2:4], 16, 8)
	b, err3 := strconv.ParseUint(s[4:6], 16, 8)
	if err1 != nil || err2 != nil || err3 != nil {
		return fallback
	}

	return color.RGBA{uint8(r), uint8(g), uint8(b), 255}
}

// FormatHex renders a color as #rrggbb.
func FormatHex(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// LightenHex blends a hex color toward white by percent, computed per
// channel and clamped to the valid byte range. percent is clamped to
// [0,100]. Invalid input is treated as black so the result is always a
// valid 6-digit hex.
func LightenHex(hex string, percent int) string {
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}

	c := ParseHex(hex, color.RGBA{0, 0, 0, 255})
	return FormatHex(color.RGBA{
		R: lightenChannel(c.R, percent),
		G: lightenChannel(c.G, percent),
		B: lightenChannel(c.B, percent),
		A: 255,
	})
}

func lightenChannel(v uint8, percent int) uint8 {
	blended := int(v) + (255-int(v))*percent/100
	if blended > 255 {
		blended = 255
	}
	return uint8(blended)
}
