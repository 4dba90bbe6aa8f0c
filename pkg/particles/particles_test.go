package particles

import (
	"testing"

	"github.com/maddestlabs/tstorie/pkg/cellbuf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmitActivatesRequestedCountUpToCapacity(t *testing.T) {
	s := New(4, 1)
	s.Emitter = EmitterParams{Shape: ShapePoint, X: 2, Y: 2, MinLife: 1, MaxLife: 1, Chars: "*"}
	s.Emit(6)
	assert.Equal(t, 4, s.ActiveCount())
}

func TestEmitPointPlacesParticlesAtEmitterOrigin(t *testing.T) {
	s := New(1, 1)
	s.Emitter = EmitterParams{Shape: ShapePoint, X: 3, Y: 5, MinLife: 1, MaxLife: 1}
	s.Emit(1)
	require.Equal(t, 1, s.ActiveCount())
	p := s.Particles()[0]
	assert.Equal(t, 3.0, p.X)
	assert.Equal(t, 5.0, p.Y)
}

func TestUpdateDeactivatesExpiredParticles(t *testing.T) {
	s := New(1, 1)
	s.Emitter = EmitterParams{Shape: ShapePoint, MinLife: 0.01, MaxLife: 0.01}
	s.Collision.Mode = CollisionDestroy
	s.Emit(1)
	require.Equal(t, 1, s.ActiveCount())

	s.Update(1.0, nil) // dt exceeds the particle's whole lifetime
	assert.Equal(t, 0, s.ActiveCount())
}

func TestClassicPhysicsAppliesGravity(t *testing.T) {
	s := New(1, 1)
	s.Emitter = EmitterParams{Shape: ShapePoint, MinLife: 10, MaxLife: 10}
	s.Physics.GravityY = 9.8
	s.Emit(1)

	s.Update(1.0, nil)
	p := s.Particles()[0]
	assert.InDelta(t, 9.8, p.VY, 1e-9)
	assert.InDelta(t, 9.8, p.Y, 1e-9)
}

func TestBounceCollisionReflectsVelocity(t *testing.T) {
	s := New(1, 1)
	s.Emitter = EmitterParams{Shape: ShapePoint, MinLife: 10, MaxLife: 10}
	s.Collision = CollisionParams{Mode: CollisionBounce, Restitution: 0.5}
	s.Emit(1)
	s.particles[0].VY = 4

	opaque := opaqueSurface{}
	s.Update(1.0, opaque)
	p := s.Particles()[0]
	assert.True(t, p.Active)
	assert.Less(t, p.VY, 0.0)
}

func TestStickCollisionZeroesVelocityAndChangesChar(t *testing.T) {
	s := New(1, 1)
	s.Emitter = EmitterParams{Shape: ShapePoint, MinLife: 10, MaxLife: 10}
	s.Collision = CollisionParams{Mode: CollisionStick, StickChar: "#"}
	s.Emit(1)

	s.Update(1.0, opaqueSurface{})
	p := s.Particles()[0]
	assert.Equal(t, 0.0, p.VX)
	assert.Equal(t, 0.0, p.VY)
	assert.Equal(t, "#", p.Char)
}

func TestRenderWritesActiveParticlesIntoBuffer(t *testing.T) {
	s := New(1, 1)
	s.Emitter = EmitterParams{Shape: ShapePoint, X: 1, Y: 1, MinLife: 10, MaxLife: 10, Chars: "@"}
	s.Emit(1)

	buf := cellbuf.New(3, 3)
	buf.ClearTransparent()
	s.Render(buf, true)

	cell := buf.GetCell(1, 1)
	assert.Equal(t, "@", cell.Grapheme)
}

func TestDeterministicEmitSequenceGivenSameSeed(t *testing.T) {
	run := func() []Particle {
		s := New(5, 99)
		s.Emitter = EmitterParams{
			Shape: ShapeRect, X: 0, Y: 0, W: 10, H: 10,
			MinVX: -1, MaxVX: 1, MinVY: -1, MaxVY: 1,
			MinLife: 1, MaxLife: 3, Chars: "ab",
		}
		s.Emit(5)
		return append([]Particle{}, s.Particles()...)
	}
	a := run()
	b := run()
	assert.Equal(t, a, b)
}

type opaqueSurface struct{}

func (opaqueSurface) GetCell(x, y int) cellbuf.Cell {
	return cellbuf.Cell{Grapheme: "#", Style: cellbuf.RGB(0, 0, 0)}
}
