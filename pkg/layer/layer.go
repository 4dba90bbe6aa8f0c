// Package layer implements the named, z-ordered CellBuffer stack that
// the compositor reads and script bindings draw into.
package layer

import "github.com/maddestlabs/tstorie/pkg/cellbuf"

// Effects holds the per-layer compositor knobs. Zero value
// is the documented default EXCEPT Darken, whose zero-cost default (no
// darkening) is 1.0; callers should use DefaultEffects rather than a
// bare struct literal.
type Effects struct {
	OffsetX, OffsetY int
	Darken           float64 // 0..1, multiplies fg channels
	Desaturate       float64 // 0..1, blend fg toward luminance
}

// DefaultEffects is the no-op effect set: no offset, no darken, no
// desaturate.
func DefaultEffects() Effects {
	return Effects{Darken: 1.0}
}

// Layer is a named, z-ordered CellBuffer with effect metadata.
type Layer struct {
	ID      string
	Z       int32
	Visible bool
	Buffer  *cellbuf.CellBuffer
	Effects Effects

	// order records insertion sequence so Stack's stable sort can break
	// z-ties by creation order.
	order int
}
