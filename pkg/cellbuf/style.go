// Package cellbuf provides the fundamental Cell/Style types and the
// CellBuffer grid that every layer, the compositor, and the terminal
// backend read and write.
package cellbuf

// Style holds the full paint state of one terminal cell: an RGB
// foreground/background pair plus boolean text attributes.
type Style struct {
	FgR, FgG, FgB uint8
	BgR, BgG, BgB uint8
	Bold          bool
	Italic        bool
	Underline     bool
	Dim           bool

	// transparent marks the "no write" sentinel. It is unexported so
	// the only way to produce one is Transparent().
	transparent bool
}

// Transparent returns the sentinel style meaning "do not write this cell".
func Transparent() Style {
	return Style{transparent: true}
}

// IsTransparent reports whether s is the transparent sentinel.
func (s Style) IsTransparent() bool {
	return s.transparent
}

// RGB builds an opaque style with the given foreground color and default
// (black) background.
func RGB(r, g, b uint8) Style {
	return Style{FgR: r, FgG: g, FgB: b}
}

// WithBg returns a copy of s with the background color set.
func (s Style) WithBg(r, g, b uint8) Style {
	s.BgR, s.BgG, s.BgB = r, g, b
	return s
}

// WithBold, WithItalic, WithUnderline, WithDim return copies of s with the
// named attribute set. They exist so call sites can chain
// cellbuf.RGB(r,g,b).WithBold().WithUnderline() without a struct literal.
func (s Style) WithBold() Style      { s.Bold = true; return s }
func (s Style) WithItalic() Style    { s.Italic = true; return s }
func (s Style) WithUnderline() Style { s.Underline = true; return s }
func (s Style) WithDim() Style       { s.Dim = true; return s }

// Equal reports structural equality.
func (s Style) Equal(o Style) bool {
	return s == o
}

// Luminance computes Y = 0.299R + 0.587G + 0.114B, returned in the
// 0..255 range of the source channels.
func (s Style) Luminance() float64 {
	return 0.299*float64(s.FgR) + 0.587*float64(s.FgG) + 0.114*float64(s.FgB)
}

// Darken multiplies the foreground channels by factor (expected in [0,1]).
// Background is left untouched; the compositor only darkens fg.
func (s Style) Darken(factor float64) Style {
	s.FgR = scaleChannel(s.FgR, factor)
	s.FgG = scaleChannel(s.FgG, factor)
	s.FgB = scaleChannel(s.FgB, factor)
	return s
}

// Desaturate blends the foreground toward its luminance by factor in [0,1].
func (s Style) Desaturate(factor float64) Style {
	if factor <= 0 {
		return s
	}
	y := s.Luminance()
	s.FgR = mixChannel(s.FgR, y, factor)
	s.FgG = mixChannel(s.FgG, y, factor)
	s.FgB = mixChannel(s.FgB, y, factor)
	return s
}

func scaleChannel(c uint8, factor float64) uint8 {
	v := float64(c) * factor
	return clampChannel(v)
}

func mixChannel(c uint8, y, factor float64) uint8 {
	v := float64(c) + (y-float64(c))*factor
	return clampChannel(v)
}

func clampChannel(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
