package layer

import "github.com/maddestlabs/tstorie/pkg/cellbuf"

// Draw writes a single grapheme into the layer resolved from idOrIndex.
// An unresolvable target is a silent no-op; a bad layer name from a
// script must not take down the frame.
func (s *Stack) Draw(idOrIndex any, x, y int, grapheme string, style cellbuf.Style) {
	l, ok := s.Get(idOrIndex)
	if !ok {
		return
	}
	l.Buffer.Write(x, y, grapheme, style)
}

// DrawText writes text starting at (x, y) without wrapping.
func (s *Stack) DrawText(idOrIndex any, x, y int, text string, style cellbuf.Style) {
	l, ok := s.Get(idOrIndex)
	if !ok {
		return
	}
	l.Buffer.WriteText(x, y, text, style)
}

// FillBox fills a rectangle with a repeated character.
func (s *Stack) FillBox(idOrIndex any, x, y, w, h int, ch string, style cellbuf.Style) {
	l, ok := s.Get(idOrIndex)
	if !ok {
		return
	}
	l.Buffer.FillRect(x, y, w, h, ch, style)
}

// Clear clears the resolved layer with style, or to the transparent
// sentinel if style.IsTransparent().
func (s *Stack) Clear(idOrIndex any, style cellbuf.Style) {
	l, ok := s.Get(idOrIndex)
	if !ok {
		return
	}
	if style.IsTransparent() {
		l.Buffer.ClearTransparent()
		return
	}
	l.Buffer.Clear(style)
}

// SetOffset sets a layer's parallax offset.
func (s *Stack) SetOffset(idOrIndex any, x, y int) {
	l, ok := s.Get(idOrIndex)
	if !ok {
		return
	}
	l.Effects.OffsetX, l.Effects.OffsetY = x, y
}

// SetDarken sets a layer's darken factor.
func (s *Stack) SetDarken(idOrIndex any, f float64) {
	l, ok := s.Get(idOrIndex)
	if !ok {
		return
	}
	l.Effects.Darken = f
}

// SetDesaturate sets a layer's desaturate factor.
func (s *Stack) SetDesaturate(idOrIndex any, f float64) {
	l, ok := s.Get(idOrIndex)
	if !ok {
		return
	}
	l.Effects.Desaturate = f
}

// DrawPanel draws a bordered rectangle: a fill plus a single-cell border,
// a common script-bound widget helper.
func (s *Stack) DrawPanel(idOrIndex any, x, y, w, h int, style cellbuf.Style) {
	l, ok := s.Get(idOrIndex)
	if !ok || w <= 0 || h <= 0 {
		return
	}
	l.Buffer.FillRect(x, y, w, h, " ", style)
	l.Buffer.FillRect(x, y, w, 1, "─", style)
	l.Buffer.FillRect(x, y+h-1, w, 1, "─", style)
	l.Buffer.FillRect(x, y, 1, h, "│", style)
	l.Buffer.FillRect(x+w-1, y, 1, h, "│", style)
	l.Buffer.Write(x, y, "┌", style)
	l.Buffer.Write(x+w-1, y, "┐", style)
	l.Buffer.Write(x, y+h-1, "└", style)
	l.Buffer.Write(x+w-1, y+h-1, "┘", style)
}

// DrawLabel draws text left-padded by one cell inside an implicit box,
// a thin convenience over DrawText.
func (s *Stack) DrawLabel(idOrIndex any, x, y int, text string, style cellbuf.Style) {
	s.DrawText(idOrIndex, x+1, y, text, style)
}

// DrawButton draws a single-line label framed by bracket characters.
func (s *Stack) DrawButton(idOrIndex any, x, y int, label string, style cellbuf.Style) {
	s.DrawText(idOrIndex, x, y, "["+label+"]", style)
}
