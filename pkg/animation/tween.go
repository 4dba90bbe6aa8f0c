// Package animation provides non-deterministic UI tweening for section
// and canvas transitions, built on
// github.com/tanema/gween; deliberately distinct from pkg/detrand's
// integer easing, which stays pure and bit-reproducible for scripted
// procedural generation. A Tween here is wall-clock driven polish, not
// something a script's determinism guarantee covers.
package animation

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Tween animates a single float32 value from From to To over a fixed
// duration.
type Tween struct {
	inner *gween.Tween
	From  float32
	To    float32
	last  float32
	Done  bool
}

// NewTween constructs a Tween ready for Update.
func NewTween(from, to, duration float32, fn ease.TweenFunc) *Tween {
	return &Tween{inner: gween.New(from, to, duration, fn), From: from, To: to, last: from}
}

// Update advances the tween by dt seconds and returns its current value.
// Once finished, further calls keep returning To without re-invoking
// the underlying tween.
func (t *Tween) Update(dt float32) float32 {
	if t.Done {
		return t.To
	}
	val, finished := t.inner.Update(dt)
	t.last = val
	t.Done = finished
	return val
}

// Value returns the last value Update produced without advancing time.
func (t *Tween) Value() float32 { return t.last }
