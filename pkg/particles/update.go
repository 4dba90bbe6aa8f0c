package particles

import (
	"math"

	"github.com/maddestlabs/tstorie/pkg/cellbuf"
	"github.com/maddestlabs/tstorie/pkg/detrand"
	"github.com/maddestlabs/tstorie/pkg/graph"
)

// CollisionSurface is the minimal surface Update needs to test a
// particle's destination cell for occupancy.
type CollisionSurface interface {
	GetCell(x, y int) cellbuf.Cell
}

// Update advances every active particle by dt seconds, using the
// configured MotionGraph when set or the classic gravity/wind/
// turbulence integration otherwise. surface, if non-nil, is consulted
// for cell-occupancy collisions.
func (s *System) Update(dt float32, surface CollisionSurface) {
	s.frame++
	dtf := float64(dt)

	for i := range s.particles {
		p := &s.particles[i]
		if !p.Active {
			continue
		}

		if s.MotionGraph != nil {
			s.applyMotionGraph(p, dtf)
		} else {
			s.applyClassicPhysics(p, dtf)
		}

		p.X += p.VX * dtf
		p.Y += p.VY * dtf
		p.Life -= dtf

		collided := p.Life <= 0
		if !collided && s.Collision.Mode != CollisionNone && surface != nil {
			collided = !surface.GetCell(int(math.Round(p.X)), int(math.Round(p.Y))).IsTransparent()
		}
		if collided {
			s.resolveCollision(p)
		}
	}
}

func (s *System) applyClassicPhysics(p *Particle, dt float64) {
	p.VY += (s.Physics.GravityY + s.Physics.WindY) * dt
	p.VX += s.Physics.WindX * dt
	if s.Physics.Turbulence != 0 {
		n := detrand.SmoothNoise2D(int64(p.X*10), int64(p.Y*10), 16, s.Physics.NoiseSeed)
		accel := (float64(n)/65535 - 0.5) * 2 * s.Physics.Turbulence
		p.VX += accel * dt
	}
}

// applyMotionGraph evaluates MotionGraph for one particle with a
// custom context carrying {px, py, pvx, pvy, page, plife_fraction,
// frame}, accumulating the result into VY as an acceleration.
func (s *System) applyMotionGraph(p *Particle, dt float64) {
	lifeFraction := 1.0
	if p.MaxLife > 0 {
		lifeFraction = 1 - p.Life/p.MaxLife
	}
	custom := map[string]float64{
		"px":             p.X,
		"py":             p.Y,
		"pvx":            p.VX,
		"pvy":            p.VY,
		"page":           p.MaxLife - p.Life,
		"plife_fraction": lifeFraction,
		"frame":          float64(s.frame),
	}
	v, err := s.MotionGraph.EvaluateWithCustom(s.MotionSink, s.frame, custom)
	if err != nil {
		return
	}
	p.VY += v.AsScalar() * dt
}

func (s *System) resolveCollision(p *Particle) {
	switch s.Collision.Mode {
	case CollisionBounce:
		p.VY = -p.VY * s.Collision.Restitution
		p.VX = p.VX * s.Collision.Restitution
		p.Life = math.Max(p.Life, 0.001) // a bounce must not also terminate the particle
	case CollisionStick:
		p.VX, p.VY = 0, 0
		if s.Collision.StickChar != "" {
			p.Char = s.Collision.StickChar
		}
	default: // CollisionDestroy, or life expiry with no collision config
		p.Active = false
		s.activeCount--
	}
}

// Render writes every active particle's grapheme and color into dst at
// its rounded position, skipping particles outside bounds.
// overwriteOpaque permits drawing atop a non-transparent
// destination cell; false mirrors the compositor's transparency rule.
func (s *System) Render(dst *cellbuf.CellBuffer, overwriteOpaque bool) {
	for i := range s.particles {
		p := &s.particles[i]
		if !p.Active {
			continue
		}
		x, y := int(math.Round(p.X)), int(math.Round(p.Y))
		color := p.Color
		if s.ColorGraph != nil {
			lifeFraction := 1.0
			if p.MaxLife > 0 {
				lifeFraction = 1 - p.Life/p.MaxLife
			}
			v, err := s.ColorGraph.EvaluateWithCustom(s.ColorSink, s.frame, map[string]float64{"plife_fraction": lifeFraction})
			if err == nil && v.Kind == graph.ValueColor {
				color = cellbuf.RGB(v.R, v.G, v.B)
			}
		}
		ch := p.Char
		if s.CharacterGraph != nil && s.Emitter.Chars != "" {
			lifeFraction := 1.0
			if p.MaxLife > 0 {
				lifeFraction = 1 - p.Life/p.MaxLife
			}
			v, err := s.CharacterGraph.EvaluateWithCustom(s.CharacterSink, s.frame, map[string]float64{"plife_fraction": lifeFraction})
			if err == nil {
				runes := []rune(s.Emitter.Chars)
				idx := int(v.AsScalar()) % len(runes)
				if idx < 0 {
					idx += len(runes)
				}
				ch = string(runes[idx])
			}
		}
		if !overwriteOpaque && !dst.GetCell(x, y).IsTransparent() {
			continue
		}
		dst.Write(x, y, ch, color)
	}
}
