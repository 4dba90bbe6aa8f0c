// Package compositor implements the single place layer effects are
// applied: it sorts layers by z, resolves transparency, and writes the
// result into a frame buffer.
package compositor

import (
	"github.com/maddestlabs/tstorie/pkg/cellbuf"
	"github.com/maddestlabs/tstorie/pkg/layer"
)

// AutoDepth configures the global atmospheric-perspective toggle: when
// enabled, each layer's darken factor is derived from its normalised z
// position rather than read from Effects.Darken.
type AutoDepth struct {
	Enabled  bool
	MinDark  float64
	MaxDark  float64
}

// Compositor composites a layer.Stack into a cellbuf.CellBuffer each
// frame.
type Compositor struct {
	ThemeBg   cellbuf.Style
	AutoDepth AutoDepth
}

// New returns a Compositor with no auto-depth and the given theme
// background.
func New(themeBg cellbuf.Style) *Compositor {
	return &Compositor{ThemeBg: themeBg}
}

// Compose clears frame with the theme background, sorts layers by
// ascending z, and blits every visible layer with its effects applied.
func (c *Compositor) Compose(stack *layer.Stack, frame *cellbuf.CellBuffer) {
	frame.Clear(c.ThemeBg)

	visible := c.visibleLayers(stack)
	darkenByID := c.resolveDarken(visible)

	for _, l := range visible {
		darken := darkenByID[l.ID]
		c.blitLayer(l, darken, frame)
	}
}

// visibleLayers returns the stack's layers in ascending z-order, already
// filtered to Visible == true. Stack.IterSorted guarantees z-order with
// stable insertion-order tie-breaking.
func (c *Compositor) visibleLayers(stack *layer.Stack) []*layer.Layer {
	var out []*layer.Layer
	stack.IterSorted(func(l *layer.Layer) {
		if l.Visible {
			out = append(out, l)
		}
	})
	return out
}

// resolveDarken computes the effective darken factor per layer: either
// the layer's own Effects.Darken, or, when AutoDepth is enabled, a
// factor derived from the layer's normalised position in the observed
// z-range.
func (c *Compositor) resolveDarken(visible []*layer.Layer) map[string]float64 {
	out := make(map[string]float64, len(visible))
	if !c.AutoDepth.Enabled || len(visible) == 0 {
		for _, l := range visible {
			out[l.ID] = l.Effects.Darken
		}
		return out
	}

	minZ, maxZ := visible[0].Z, visible[0].Z
	for _, l := range visible {
		minZ = min32(minZ, l.Z)
		maxZ = max32(maxZ, l.Z)
	}
	span := float64(maxZ - minZ)
	for _, l := range visible {
		t := 0.0
		if span > 0 {
			t = float64(l.Z-minZ) / span
		}
		out[l.ID] = lerp(c.AutoDepth.MinDark, c.AutoDepth.MaxDark, t)
	}
	return out
}

func (c *Compositor) blitLayer(l *layer.Layer, darken float64, frame *cellbuf.CellBuffer) {
	w, h := l.Buffer.Width(), l.Buffer.Height()
	for sy := 0; sy < h; sy++ {
		for sx := 0; sx < w; sx++ {
			cell := l.Buffer.GetCell(sx, sy)
			if cell.IsTransparent() {
				continue
			}
			dx := sx + l.Effects.OffsetX
			dy := sy + l.Effects.OffsetY
			if dx < 0 || dx >= frame.Width() || dy < 0 || dy >= frame.Height() {
				continue
			}
			style := cell.Style.Darken(darken)
			if l.Effects.Desaturate > 0 {
				style = style.Desaturate(l.Effects.Desaturate)
			}
			frame.Write(dx, dy, cell.Grapheme, style)
		}
	}
}

func lerp(a, b, t float64) float64 { return a + (b-a)*t }

func min32(a, b int32) int32 {
	if a < b {
		return a
	}
	return b
}

func max32(a, b int32) int32 {
	if a > b {
		return a
	}
	return b
}
