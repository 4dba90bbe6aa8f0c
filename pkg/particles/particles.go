// Package particles implements the pooled bulk-physics particle system:
// a pre-allocated array of Particles whose activity is a
// flag rather than an allocation, optionally driven by a
// pkg/graph-hosted motion/color/character graph instead of the classic
// gravity/wind/turbulence physics.
package particles

import (
	"github.com/maddestlabs/tstorie/pkg/cellbuf"
	"github.com/maddestlabs/tstorie/pkg/detrand"
	"github.com/maddestlabs/tstorie/pkg/graph"
)

// CollisionMode names the response applied when a particle's position
// collides.
type CollisionMode int

const (
	CollisionNone CollisionMode = iota
	CollisionBounce
	CollisionStick
	CollisionDestroy
)

// EmitterShape discriminates the three emitter sampling regions.
type EmitterShape int

const (
	ShapePoint EmitterShape = iota
	ShapeLine
	ShapeRect
)

// EmitterParams configures Emit's sampling: a shape plus the velocity
// and lifetime ranges new particles are drawn from.
type EmitterParams struct {
	Shape              EmitterShape
	X, Y               float64 // Point, and Rect/Line origin
	X2, Y2             float64 // Line endpoint
	W, H               float64 // Rect extent
	MinVX, MaxVX       float64
	MinVY, MaxVY       float64
	MinLife, MaxLife   float64
	Chars              string // characters sampled per spawn
}

// PhysicsParams configures the classic (non-graph) integration step.
type PhysicsParams struct {
	GravityY      float64
	WindX, WindY  float64
	Turbulence    float64 // 0 disables; scales noise-derived acceleration
	NoiseSeed     int64
}

// CollisionParams configures how a particle is resolved when it lands on
// an occupied (non-transparent) surface cell or its life runs out.
// Bounds are not checked separately: an off-surface position collides
// only if the surface reports a non-transparent cell there (a
// cellbuf.CellBuffer reports transparent cells out of bounds).
type CollisionParams struct {
	Mode        CollisionMode
	Restitution float64 // Bounce velocity multiplier, e.g. 0.6
	StickChar   string
}

// Particle is one pool slot.
type Particle struct {
	Active        bool
	X, Y          float64
	VX, VY        float64
	Life, MaxLife float64
	Char          string
	Color         cellbuf.Style
}

// System owns a fixed-capacity pool of Particles plus the emitter,
// physics, collision configuration, and optional graphs that can
// override the classic integration step.
type System struct {
	particles   []Particle
	activeCount int

	Emitter    EmitterParams
	Physics    PhysicsParams
	Collision  CollisionParams
	MotionGraph    *graph.Graph
	MotionSink     graph.NodeRef
	ColorGraph     *graph.Graph
	ColorSink      graph.NodeRef
	CharacterGraph *graph.Graph
	CharacterSink  graph.NodeRef

	rng   *detrand.Rng
	frame int64
}

// New returns a System with a pre-allocated pool of the given capacity,
// all slots inactive.
func New(capacity int, seed uint64) *System {
	return &System{
		particles: make([]Particle, capacity),
		rng:       detrand.NewRng(seed),
	}
}

// ActiveCount reports how many pool slots currently hold a live particle.
func (s *System) ActiveCount() int { return s.activeCount }

// Capacity returns the pool's fixed size.
func (s *System) Capacity() int { return len(s.particles) }

// Particles exposes the pool for read-only iteration by callers that
// need more than Render offers (e.g. debugging overlays).
func (s *System) Particles() []Particle { return s.particles }

// Emit activates up to n inactive slots, initialising each from the
// emitter shape and velocity/life ranges, sampled via the system's own
// Rng.
func (s *System) Emit(n int) {
	for i := 0; i < n && s.activeCount < len(s.particles); i++ {
		idx := s.findInactive()
		if idx < 0 {
			return
		}
		p := &s.particles[idx]
		x, y := s.sampleEmitPosition()
		p.X, p.Y = x, y
		p.VX = sampleRange(s.rng, s.Emitter.MinVX, s.Emitter.MaxVX)
		p.VY = sampleRange(s.rng, s.Emitter.MinVY, s.Emitter.MaxVY)
		p.MaxLife = sampleRange(s.rng, s.Emitter.MinLife, s.Emitter.MaxLife)
		p.Life = p.MaxLife
		p.Char = s.sampleChar()
		p.Active = true
		s.activeCount++
	}
}

func (s *System) findInactive() int {
	for i := range s.particles {
		if !s.particles[i].Active {
			return i
		}
	}
	return -1
}

func (s *System) sampleEmitPosition() (float64, float64) {
	switch s.Emitter.Shape {
	case ShapeLine:
		t := sampleRange(s.rng, 0, 1)
		x := s.Emitter.X + (s.Emitter.X2-s.Emitter.X)*t
		y := s.Emitter.Y + (s.Emitter.Y2-s.Emitter.Y)*t
		return x, y
	case ShapeRect:
		x := s.Emitter.X + sampleRange(s.rng, 0, s.Emitter.W)
		y := s.Emitter.Y + sampleRange(s.rng, 0, s.Emitter.H)
		return x, y
	default: // ShapePoint
		return s.Emitter.X, s.Emitter.Y
	}
}

func (s *System) sampleChar() string {
	if s.Emitter.Chars == "" {
		return "*"
	}
	runes := []rune(s.Emitter.Chars)
	idx := s.rng.RandMax(int64(len(runes) - 1))
	return string(runes[idx])
}

// sampleRange draws a float64 uniformly from [lo, hi] using the
// system's integer Rng, matching detrand's "no hidden globals, explicit
// Rng" contract even for this float-range convenience.
func sampleRange(r *detrand.Rng, lo, hi float64) float64 {
	if hi <= lo {
		return lo
	}
	const buckets = 1 << 20
	t := float64(r.RandMax(buckets)) / float64(buckets)
	return lo + (hi-lo)*t
}
