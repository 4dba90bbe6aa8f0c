package detrand

// RGB is a pure-integer 24-bit color, used by DetRand's own color
// primitives and distinct from cellbuf.Style (which is the terminal
// presentation type). This package has no conversion to cellbuf.Style.
type RGB struct {
	R, G, B uint8
}

// ToInt packs r into a single 0xRRGGBB value.
func (c RGB) ToInt() int64 {
	return int64(c.R)<<16 | int64(c.G)<<8 | int64(c.B)
}

// RGBFromInt unpacks a 0xRRGGBB value into an RGB.
func RGBFromInt(v int64) RGB {
	return RGB{
		R: uint8((v >> 16) & 0xFF),
		G: uint8((v >> 8) & 0xFF),
		B: uint8(v & 0xFF),
	}
}

// LerpColor interpolates between a and b by t/1000.
func LerpColor(a, b RGB, t int64) RGB {
	return RGB{
		R: uint8(Clamp(Lerp(int64(a.R), int64(b.R), t), 0, 255)),
		G: uint8(Clamp(Lerp(int64(a.G), int64(b.G), t), 0, 255)),
		B: uint8(Clamp(Lerp(int64(a.B), int64(b.B), t), 0, 255)),
	}
}

// HSVToRGB converts h (0..360), s (0..1000), v (0..1000) to RGB, staying
// in integer fixed-point math throughout.
func HSVToRGB(h, s, v int64) RGB {
	h = Wrap(h, 0, 359)
	s = Clamp(s, 0, 1000)
	v = Clamp(v, 0, 1000)

	c := v * s / 1000                     // chroma, 0..1000
	hPrime := h * 1000 / 60                // 0..6000
	x := c * (1000 - iabsDiff(hPrime%2000, 1000)) / 1000
	m := v - c

	var r1, g1, b1 int64
	switch {
	case hPrime < 1000:
		r1, g1, b1 = c, x, 0
	case hPrime < 2000:
		r1, g1, b1 = x, c, 0
	case hPrime < 3000:
		r1, g1, b1 = 0, c, x
	case hPrime < 4000:
		r1, g1, b1 = 0, x, c
	case hPrime < 5000:
		r1, g1, b1 = x, 0, c
	default:
		r1, g1, b1 = c, 0, x
	}

	return RGB{
		R: scale1000To255(r1 + m),
		G: scale1000To255(g1 + m),
		B: scale1000To255(b1 + m),
	}
}

func iabsDiff(a, b int64) int64 {
	return IAbs(a - b)
}

func scale1000To255(v int64) uint8 {
	return uint8(Clamp(v*255/1000, 0, 255))
}
