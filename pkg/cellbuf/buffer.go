package cellbuf

import (
	"strings"
	"unicode/utf8"

	"github.com/clipperhouse/uax29/v2/graphemes"
)

// CellBuffer is a fixed-size row-major grid of cells. It is the core data
// structure shared by Layer, FrameBuffer, and TerminalBackend's previous-
// frame cache.
type CellBuffer struct {
	width, height int
	cells         []Cell
}

// New creates a buffer of the given extent, filled with EmptyCell.
func New(width, height int) *CellBuffer {
	b := &CellBuffer{width: width, height: height}
	b.cells = make([]Cell, width*height)
	b.Clear(Style{})
	return b
}

func (b *CellBuffer) Width() int  { return b.width }
func (b *CellBuffer) Height() int { return b.height }

func (b *CellBuffer) index(x, y int) int { return y*b.width + x }

func (b *CellBuffer) inBounds(x, y int) bool {
	return x >= 0 && x < b.width && y >= 0 && y < b.height
}

// Resize changes the buffer's extent, preserving top-left content up to
// the new bounds.
func (b *CellBuffer) Resize(width, height int) {
	next := make([]Cell, width*height)
	for i := range next {
		next[i] = EmptyCell
	}
	copyW := min(width, b.width)
	copyH := min(height, b.height)
	for y := 0; y < copyH; y++ {
		srcRow := b.cells[y*b.width : y*b.width+copyW]
		dstRow := next[y*width : y*width+copyW]
		copy(dstRow, srcRow)
	}
	b.width, b.height = width, height
	b.cells = next
}

// Clear writes style as an opaque blank background over every cell.
func (b *CellBuffer) Clear(style Style) {
	style.transparent = false
	blank := Cell{Grapheme: " ", Style: style}
	for i := range b.cells {
		b.cells[i] = blank
	}
}

// ClearTransparent writes the transparency sentinel over every cell.
func (b *CellBuffer) ClearTransparent() {
	for i := range b.cells {
		b.cells[i] = TransparentCell
	}
}

// GetCell returns the cell at (x, y), or TransparentCell if out of bounds.
func (b *CellBuffer) GetCell(x, y int) Cell {
	if !b.inBounds(x, y) {
		return TransparentCell
	}
	return b.cells[b.index(x, y)]
}

// Write places a single grapheme cluster at (x, y). Out-of-bounds writes
// clip silently.
func (b *CellBuffer) Write(x, y int, grapheme string, style Style) {
	if !b.inBounds(x, y) {
		return
	}
	b.cells[b.index(x, y)] = Cell{Grapheme: clipGrapheme(sanitizeUTF8(grapheme)), Style: style}
}

// WriteText advances by grapheme cluster starting at (x, y). It does
// not wrap; callers are responsible for wrapping before calling this.
// Invalid UTF-8 is replaced with U+FFFD before segmentation.
func (b *CellBuffer) WriteText(x, y int, text string, style Style) {
	if y < 0 || y >= b.height {
		return
	}
	text = sanitizeUTF8(text)
	col := x
	iter := graphemes.FromString(text)
	for iter.Next() {
		g := iter.Value()
		if col >= b.width {
			return
		}
		if col >= 0 {
			b.cells[b.index(col, y)] = Cell{Grapheme: clipGrapheme(g), Style: style}
		}
		col++
	}
}

// FillRect fills a w×h rectangle anchored at (x, y) with ch/style. Cells
// outside the buffer are skipped.
func (b *CellBuffer) FillRect(x, y, w, h int, ch string, style Style) {
	ch = clipGrapheme(sanitizeUTF8(ch))
	for row := y; row < y+h; row++ {
		if row < 0 || row >= b.height {
			continue
		}
		for col := x; col < x+w; col++ {
			if col < 0 || col >= b.width {
				continue
			}
			b.cells[b.index(col, row)] = Cell{Grapheme: ch, Style: style}
		}
	}
}

// BlitFrom composites src onto b at (dstX, dstY), skipping transparent
// source cells.
func (b *CellBuffer) BlitFrom(src *CellBuffer, dstX, dstY int) {
	for sy := 0; sy < src.height; sy++ {
		dy := dstY + sy
		if dy < 0 || dy >= b.height {
			continue
		}
		for sx := 0; sx < src.width; sx++ {
			c := src.cells[src.index(sx, sy)]
			if c.IsTransparent() {
				continue
			}
			dx := dstX + sx
			if dx < 0 || dx >= b.width {
				continue
			}
			b.cells[b.index(dx, dy)] = c
		}
	}
}

// CopyFrom replaces b's contents with a snapshot of other, first
// resizing b to other's dimensions when they differ.
func (b *CellBuffer) CopyFrom(other *CellBuffer) {
	if b.width != other.width || b.height != other.height {
		b.Resize(other.width, other.height)
	}
	copy(b.cells, other.cells)
}

// sanitizeUTF8 replaces invalid byte sequences with U+FFFD.
func sanitizeUTF8(s string) string {
	if utf8.ValidString(s) {
		return s
	}
	var sb strings.Builder
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size == 1 {
			sb.WriteRune(utf8.RuneError)
			i++
			continue
		}
		sb.WriteString(s[i : i+size])
		i += size
	}
	return sb.String()
}
