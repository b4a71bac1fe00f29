// Package heat holds the color vocabulary of the differential heatmap:
// per-cell HSVA colors, the diverging color ramp, and the literal color
// matrix handed to the renderer.
package heat

import (
	"image/color"
	"math"
)

// HSVA is one rendered cell color: hue in degrees [0,360), saturation,
// value and alpha in [0,1]. Cells are created once and never mutated.
type HSVA struct {
	H float64 `json:"h"`
	S float64 `json:"s"`
	V float64 `json:"v"`
	A float64 `json:"a"`
}

// NRGBA converts the cell color to 8-bit non-premultiplied RGBA
func (c HSVA) NRGBA() color.NRGBA {
	r, g, b := hsvToRGB(c.H, c.S, c.V)
	return color.NRGBA{
		R: round8(r),
		G: round8(g),
		B: round8(b),
		A: round8(c.A),
	}
}

// Ramp is a sequence of color stops interpolated linearly in RGB space.
type Ramp []color.NRGBA

// DefaultRamp is the fixed 5-stop diverging red-yellow-blue ramp used
// for the divergence signal. It is an immutable default: callers that
// want a different ramp inject their own at the top level.
var DefaultRamp = Ramp{
	{R: 0xD7, G: 0x19, B: 0x1C, A: 0xFF},
	{R: 0xFD, G: 0xAE, B: 0x61, A: 0xFF},
	{R: 0xFF, G: 0xFF, B: 0xBF, A: 0xFF},
	{R: 0xAB, G: 0xD9, B: 0xE9, A: 0xFF},
	{R: 0x2C, G: 0x7B, B: 0xB6, A: 0xFF},
}

// At maps t in [0,1] onto the ramp by linear RGB interpolation.
// Out-of-range inputs are clamped to the nearest endpoint; the upstream
// signal rescaling is intentionally asymmetric and can exceed 1.
func (r Ramp) At(t float64) color.NRGBA {
	if len(r) == 0 {
		return color.NRGBA{A: 0xFF}
	}
	if len(r) == 1 {
		return r[0]
	}
	if t < 0 || math.IsNaN(t) {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	pos := t * float64(len(r)-1)
	lo := int(math.Floor(pos))
	if lo >= len(r)-1 {
		return r[len(r)-1]
	}
	frac := pos - float64(lo)
	a, b := r[lo], r[lo+1]
	return color.NRGBA{
		R: lerp8(a.R, b.R, frac),
		G: lerp8(a.G, b.G, frac),
		B: lerp8(a.B, b.B, frac),
		A: 0xFF,
	}
}

// HSVAAt maps t onto the ramp and converts the result to HSV, with the
// given alpha attached.
func (r Ramp) HSVAAt(t, alpha float64) HSVA {
	c := r.At(t)
	h, s, v := rgbToHSV(float64(c.R)/255, float64(c.G)/255, float64(c.B)/255)
	return HSVA{H: h, S: s, V: v, A: alpha}
}

func lerp8(a, b uint8, t float64) uint8 {
	return round8((float64(a)*(1-t) + float64(b)*t) / 255)
}

func round8(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(math.Round(v * 255))
}

func rgbToHSV(r, g, b float64) (h, s, v float64) {
	mx := math.Max(r, math.Max(g, b))
	mn := math.Min(r, math.Min(g, b))
	v = mx
	d := mx - mn
	if mx > 0 {
		s = d / mx
	}
	if d == 0 {
		return 0, s, v
	}
	switch mx {
	case r:
		h = math.Mod((g-b)/d, 6)
	case g:
		h = (b-r)/d + 2
	default:
		h = (r-g)/d + 4
	}
	h *= 60
	if h < 0 {
		h += 360
	}
	return h, s, v
}

func hsvToRGB(h, s, v float64) (r, g, b float64) {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	c := v * s
	x := c * (1 - math.Abs(math.Mod(h/60, 2)-1))
	m := v - c
	switch {
	case h < 60:
		r, g, b = c, x, 0
	case h < 120:
		r, g, b = x, c, 0
	case h < 180:
		r, g, b = 0, c, x
	case h < 240:
		r, g, b = 0, x, c
	case h < 300:
		r, g, b = x, 0, c
	default:
		r, g, b = c, 0, x
	}
	return r + m, g + m, b + m
}
