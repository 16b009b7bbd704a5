package hue

import (
	"math"

	"github.com/amimof/huego"

	"github.com/tommilligan/on-air/pkg/indicator"
)

// stateFor translates an RGB indicator color into the hue/sat/bri color space
// of the Hue API. maxBrightness caps the value channel, so a dimmed
// configuration dims every color alike.
func stateFor(c indicator.Color, maxBrightness uint8) huego.State {
	h, s, v := rgbToHsv(c)

	bri := uint8(math.Round(float64(v) / 254 * float64(maxBrightness)))
	if bri < 1 {
		bri = 1
	}

	return huego.State{
		On:  true,
		Hue: h,
		Sat: s,
		Bri: bri,
	}
}

// rgbToHsv maps RGB onto the Hue API ranges: hue 0..65535 (wrapping, red at
// both ends), sat and value 0..254.
func rgbToHsv(c indicator.Color) (hue uint16, sat uint8, value uint8) {
	r := float64(c.Red) / 255
	g := float64(c.Green) / 255
	b := float64(c.Blue) / 255

	mx := math.Max(r, math.Max(g, b))
	mn := math.Min(r, math.Min(g, b))
	delta := mx - mn

	var h float64
	switch {
	case delta == 0:
		h = 0
	case mx == r:
		h = math.Mod((g-b)/delta, 6)
	case mx == g:
		h = (b-r)/delta + 2
	default:
		h = (r-g)/delta + 4
	}
	h *= 60
	if h < 0 {
		h += 360
	}

	hue = uint16(math.Round(h / 360 * 65535))
	if mx > 0 {
		sat = uint8(math.Round(delta / mx * 254))
	}
	value = uint8(math.Round(mx * 254))
	return
}
