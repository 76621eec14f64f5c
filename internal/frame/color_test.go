package frame

import (
	"image/color"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseHex(t *testing.T) {
	fallback := color.RGBA{1, 2, 3, 255}

	assert.Equal(t, color.RGBA{0x33, 0x66, 0x99, 255}, ParseHex("#336699", fallback))
	assert.Equal(t, color.RGBA{0x33, 0x66, 0x99, 255}, ParseHex("336699", fallback))
	assert.Equal(t, fallback, ParseHex("", fallback))
	assert.Equal(t, fallback, ParseHex("#fff", fallback))
	assert.Equal(t, fallback, ParseHex("#zzzzzz", fallback))
}

func TestLightenHex(t *testing.T) {
	assert.Equal(t, "#333333", LightenHex("#000000", 20))
	assert.Equal(t, "#84a3c1", LightenHex("#336699", 40))
	assert.Equal(t, "#ffffff", LightenHex("#ffffff", 100))
	assert.Equal(t, "#123456", LightenHex("#123456", 0))
}

func TestLightenHex_AlwaysValidHex(t *testing.T) {
	hexPattern := regexp.MustCompile(`^#[0-9a-f]{6}$`)
	inputs := []string{"#000000", "#ffffff", "#8040c0", "not-a-color", ""}

	for _, in := range inputs {
		for _, percent := range []int{-10, 0, 33, 100, 250} {
			got := LightenHex(in, percent)

			assert.Regexp(t, hexPattern, got, "input %q percent %d", in, percent)
		}
	}
}

func TestLightenHex_MonotonicPerChannel(t *testing.T) {
	prev := uint8(0)
	for percent := 0; percent <= 100; percent += 10 {
		c := ParseHex(LightenHex("#204060", percent), color.RGBA{})

		assert.GreaterOrEqual(t, c.R, prev)
		prev = c.R
	}
}
