package graph

import (
	"fmt"
	"math"

	"github.com/maddestlabs/tstorie/pkg/detrand"
)

// EvalContext carries the per-pass coordinates a node's evaluator needs:
// a sample index and elapsed time for the audio domain, a pixel position
// and frame number for the visual domain.
type EvalContext struct {
	SampleIndex int64
	TimeS       float64
	PixelX      int
	PixelY      int
	Frame       int64
	SampleRate  int

	// Custom carries caller-supplied scalars an Input node can read in
	// preference to its SetInput-assigned value. pkg/particles uses this
	// to parameterise a per-particle motion graph without threading
	// particle state through the graph's own node storage.
	Custom map[string]float64
}

// Evaluate pulls sink's value through the DAG, memoizing every node it
// visits for the duration of this call so that a node feeding two
// downstream consumers is evaluated exactly once.
func (g *Graph) Evaluate(sink NodeRef, ctx EvalContext) (Value, error) {
	if !g.validRef(sink) {
		return Value{}, ErrInvalidNode
	}
	g.cacheEpoch++
	g.context = ctx
	return g.eval(sink, make(map[NodeRef]bool))
}

// eval recursively resolves n's value, using visiting to detect a cycle
// that slipped past Connect (defense in depth; Connect already refuses
// to create one) and the per-node cacheEpoch to short-circuit repeat
// visits within this pass.
func (g *Graph) eval(n NodeRef, visiting map[NodeRef]bool) (Value, error) {
	node := &g.nodes[n]
	if node.hasCache && node.cacheEpoch == g.cacheEpoch {
		return node.cachedValue, nil
	}
	if visiting[n] {
		return Value{}, fmt.Errorf("%w: node %d", ErrCycleDetected, n)
	}
	visiting[n] = true
	defer delete(visiting, n)

	ins := make([]Value, len(node.Inputs))
	for i, in := range node.Inputs {
		v, err := g.eval(in, visiting)
		if err != nil {
			return Value{}, err
		}
		ins[i] = v
	}

	v, err := evalKind(node, ins, g.context)
	if err != nil {
		return Value{}, err
	}
	node.cachedValue = v
	node.cacheEpoch = g.cacheEpoch
	node.hasCache = true
	return v, nil
}

// evalKind is the node-kind dispatch table: a plain switch over the
// closed Kind enum rather than a per-kind interface, since every node
// kind is known up front and the set rarely grows.
func evalKind(n *Node, ins []Value, ctx EvalContext) (Value, error) {
	switch n.Kind {
	case KindConstant:
		return ScalarValue(n.Params.Scalar), nil

	case KindInput:
		if v, ok := ctx.Custom[n.Params.Name]; ok {
			return ScalarValue(v), nil
		}
		return ScalarValue(n.Params.Scalar), nil

	case KindMath:
		return evalMath(n.Params.MathOp, ins)

	case KindWave:
		x := arg(ins, 0, ctx.TimeS)
		return ScalarValue(evalWave(n.Params.WaveOp, x)), nil

	case KindOscillator:
		rate := ctx.SampleRate
		if rate <= 0 {
			rate = 44100
		}
		t := float64(ctx.SampleIndex) / float64(rate)
		phase := 2 * math.Pi * n.Params.Freq * t
		return ScalarValue(evalWave(n.Params.WaveOp, phase)), nil

	case KindNoise:
		return evalNoise(n.Params, ctx), nil

	case KindColor:
		return evalColor(n.Params, arg(ins, 0, 0)), nil

	case KindEasing:
		t := detrand.Clamp(int64(arg(ins, 0, 0)*1000), 0, 1000)
		return ScalarValue(float64(detrand.Ease(detrand.EasingKind(n.Params.EaseKind), t)) / 1000), nil

	case KindPolar:
		dx := float64(ctx.PixelX) - n.Params.CenterX
		dy := float64(ctx.PixelY) - n.Params.CenterY
		return VectorValue(math.Hypot(dx, dy), math.Atan2(dy, dx)), nil

	case KindMath2D:
		return evalMath2D(n.Params.MathOp, ins), nil

	case KindAudioOut, KindBufferOut, KindValueOut:
		return arg0(ins), nil

	default:
		return Value{}, fmt.Errorf("graph: unknown node kind %d", n.Kind)
	}
}

func arg(ins []Value, i int, def float64) float64 {
	if i < len(ins) {
		return ins[i].AsScalar()
	}
	return def
}

func arg0(ins []Value) Value {
	if len(ins) == 0 {
		return Value{}
	}
	return ins[0]
}

func evalMath(op MathOp, ins []Value) (Value, error) {
	a := arg(ins, 0, 0)
	b := arg(ins, 1, 0)
	switch op {
	case MathAdd:
		return ScalarValue(a + b), nil
	case MathSub:
		return ScalarValue(a - b), nil
	case MathMul:
		return ScalarValue(a * b), nil
	case MathDiv:
		if b == 0 {
			// Saturate rather than propagate an error or emit inf/NaN.
			return ScalarValue(0), nil
		}
		return ScalarValue(a / b), nil
	case MathAbs:
		return ScalarValue(math.Abs(a)), nil
	case MathMin:
		return ScalarValue(math.Min(a, b)), nil
	case MathMax:
		return ScalarValue(math.Max(a, b)), nil
	case MathMap:
		lo, hi := arg(ins, 2, 0), arg(ins, 3, 1)
		return ScalarValue(lo + (a)*(hi-lo)), nil
	case MathLerp:
		t := arg(ins, 2, 0)
		return ScalarValue(a + (b-a)*t), nil
	case MathClamp:
		lo, hi := arg(ins, 1, 0), arg(ins, 2, 1)
		return ScalarValue(math.Min(math.Max(a, lo), hi)), nil
	default:
		return Value{}, fmt.Errorf("graph: unknown math op %d", op)
	}
}

func evalWave(op WaveOp, x float64) float64 {
	switch op {
	case WaveSin:
		return math.Sin(x)
	case WaveCos:
		return math.Cos(x)
	case WaveSquare:
		if math.Sin(x) >= 0 {
			return 1
		}
		return -1
	case WaveSaw:
		frac := x/(2*math.Pi) - math.Floor(x/(2*math.Pi))
		return 2*frac - 1
	case WaveTriangle:
		frac := x/(2*math.Pi) - math.Floor(x/(2*math.Pi))
		return 4*math.Abs(frac-0.5) - 1
	default:
		return 0
	}
}

func evalNoise(p Params, ctx EvalContext) Value {
	x := int64(ctx.PixelX)
	y := int64(ctx.PixelY)
	scale := p.Scale
	if scale <= 0 {
		scale = 1
	}
	switch p.NoiseKind {
	case NoiseWhite:
		return ScalarValue(float64(detrand.IntHash2D(x, y, p.Seed)) / 65535)
	case NoiseValue:
		return ScalarValue(float64(detrand.ValueNoise2D(x, y, p.Seed)) / 65535)
	default:
		octaves := p.Octaves
		if octaves <= 0 {
			octaves = 4
		}
		return ScalarValue(float64(detrand.FractalNoise2D(x, y, octaves, int64(scale), p.Seed)) / 65535)
	}
}

func evalColor(p Params, t float64) Value {
	if len(p.Palette) == 0 {
		return ColorValue(0, 0, 0)
	}
	span := p.Hi - p.Lo
	if span == 0 {
		span = 1
	}
	norm := (t - p.Lo) / span
	if norm < 0 {
		norm = 0
	}
	if norm > 1 {
		norm = 1
	}
	idx := int(norm * float64(len(p.Palette)-1))
	if idx >= len(p.Palette)-1 {
		c := p.Palette[len(p.Palette)-1]
		return ColorValue(c.R, c.G, c.B)
	}
	segT := norm*float64(len(p.Palette)-1) - float64(idx)
	a, b := p.Palette[idx], p.Palette[idx+1]
	out := detrand.LerpColor(
		detrand.RGB{R: a.R, G: a.G, B: a.B},
		detrand.RGB{R: b.R, G: b.G, B: b.B},
		int64(segT*1000),
	)
	return ColorValue(out.R, out.G, out.B)
}

func evalMath2D(op MathOp, ins []Value) Value {
	a := firstVector(ins, 0)
	b := firstVector(ins, 1)
	switch op {
	case MathAdd:
		return VectorValue(a.VX+b.VX, a.VY+b.VY)
	case MathSub:
		return VectorValue(a.VX-b.VX, a.VY-b.VY)
	case MathMul:
		return VectorValue(a.VX*b.VX, a.VY*b.VY)
	default:
		return a
	}
}

func firstVector(ins []Value, i int) Value {
	if i < len(ins) {
		return ins[i]
	}
	return VectorValue(0, 0)
}
