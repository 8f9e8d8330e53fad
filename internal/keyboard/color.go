package keyboard

import "math"

// RGB is an 8-bit per-channel color as OpenRGB clients send it.
type RGB struct {
	R, G, B uint8
}

// chroma is the (hue, saturation) half of an 8-bit quantised HSV triple.
type chroma struct {
	H, S uint8
}

// rgbToHSV converts an 8-bit RGB color to 8-bit quantised HSV by way of a
// float HSV computation, since the device only ever exchanges hue and
// saturation in the 0-255 range.
func rgbToHSV(c RGB) (chroma, uint8) {
	r := float64(c.R) / 255
	g := float64(c.G) / 255
	b := float64(c.B) / 255

	max := math.Max(r, math.Max(g, b))
	min := math.Min(r, math.Min(g, b))
	delta := max - min

	var h float64
	switch {
	case delta == 0:
		h = 0
	case max == r:
		h = 60 * math.Mod((g-b)/delta, 6)
	case max == g:
		h = 60 * ((b-r)/delta + 2)
	default:
		h = 60 * ((r-g)/delta + 4)
	}
	if h < 0 {
		h += 360
	}

	var s float64
	if max != 0 {
		s = delta / max
	}

	hue8 := uint8(math.Round(h / 360 * 255))
	sat8 := uint8(math.Round(s * 255))
	val8 := uint8(math.Round(max * 255))

	return chroma{H: hue8, S: sat8}, val8
}

// hsvToRGB is the inverse of rgbToHSV, operating on the same 8-bit
// quantised hue/saturation/value triple.
func hsvToRGB(c chroma, v uint8) RGB {
	h := float64(c.H) / 255 * 360
	s := float64(c.S) / 255
	val := float64(v) / 255

	cc := val * s
	x := cc * (1 - math.Abs(math.Mod(h/60, 2)-1))
	m := val - cc

	var r, g, b float64
	switch {
	case h < 60:
		r, g, b = cc, x, 0
	case h < 120:
		r, g, b = x, cc, 0
	case h < 180:
		r, g, b = 0, cc, x
	case h < 240:
		r, g, b = 0, x, cc
	case h < 300:
		r, g, b = x, 0, cc
	default:
		r, g, b = cc, 0, x
	}

	return RGB{
		R: uint8(math.Round((r + m) * 255)),
		G: uint8(math.Round((g + m) * 255)),
		B: uint8(math.Round((b + m) * 255)),
	}
}
