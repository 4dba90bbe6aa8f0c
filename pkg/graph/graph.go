// Package graph implements the unified, pull-based dataflow DAG that
// drives both audio (sample-rate) and visual (pixel-rate) pipelines from
// the same node primitives.
package graph

import "errors"

// ErrCycleDetected is returned by Connect when src already depends on
// dst, which would create a cycle.
var ErrCycleDetected = errors.New("graph: cycle detected")

// ErrInvalidNode is returned when an evaluation or connection names a
// node index outside the graph.
var ErrInvalidNode = errors.New("graph: invalid node index")

// Domain identifies which pipeline a node's output feeds.
type Domain int

const (
	DomainAudio Domain = iota
	DomainVisual
	DomainControl
)

// Kind discriminates the node-kind tagged union.
type Kind int

const (
	KindConstant Kind = iota
	KindInput
	KindMath
	KindWave
	KindNoise
	KindOscillator
	KindColor
	KindEasing
	KindPolar
	KindMath2D
	KindAudioOut
	KindBufferOut
	KindValueOut
)

// MathOp enumerates Math node operations.
type MathOp int

const (
	MathAdd MathOp = iota
	MathSub
	MathMul
	MathDiv
	MathAbs
	MathMin
	MathMax
	MathMap
	MathLerp
	MathClamp
)

// WaveOp enumerates Wave node operations.
type WaveOp int

const (
	WaveSin WaveOp = iota
	WaveCos
	WaveSquare
	WaveSaw
	WaveTriangle
)

// NoiseKind enumerates Noise node flavors.
type NoiseKind int

const (
	NoiseWhite NoiseKind = iota
	NoiseValue
	NoiseFractal
)

// EasingKind mirrors detrand.EasingKind's vocabulary for graph-hosted
// easing nodes. It is a separate type; evaluation converts it to
// detrand.EasingKind and calls detrand.Ease.
type EasingKind int

const (
	EaseLinear EasingKind = iota
	EaseQuadIn
	EaseQuadOut
	EaseQuadInOut
	EaseCubicIn
	EaseCubicOut
)

// Params bundles every node kind's parameters in one struct (closed set,
// small enough that a tagged union costs less than per-kind types with
// an interface indirection on every evaluation).
type Params struct {
	Scalar    float64
	Name      string
	MathOp    MathOp
	WaveOp    WaveOp
	NoiseKind NoiseKind
	EaseKind  EasingKind
	Freq      float64
	Scale     float64
	Octaves   int
	Seed      int64
	Palette   []Value
	Lo, Hi    float64
	CenterX   float64
	CenterY   float64
}

// ValueKind discriminates graph.Value's tagged union.
type ValueKind int

const (
	ValueScalar ValueKind = iota
	ValueColor
	ValueVector
)

// Value is one node's evaluation output: a scalar, a color, or a 2D
// displacement vector.
type Value struct {
	Kind       ValueKind
	Scalar     float64
	R, G, B    uint8
	VX, VY     float64
}

// ScalarValue builds a scalar Value.
func ScalarValue(v float64) Value { return Value{Kind: ValueScalar, Scalar: v} }

// ColorValue builds a color Value.
func ColorValue(r, g, b uint8) Value { return Value{Kind: ValueColor, R: r, G: g, B: b} }

// VectorValue builds a displacement-vector Value.
func VectorValue(x, y float64) Value { return Value{Kind: ValueVector, VX: x, VY: y} }

// AsScalar coerces any Value kind down to a single float64, the
// convention every arithmetic node uses for its inputs.
func (v Value) AsScalar() float64 {
	switch v.Kind {
	case ValueColor:
		return (float64(v.R) + float64(v.G) + float64(v.B)) / 3
	case ValueVector:
		return v.VX
	default:
		return v.Scalar
	}
}

// NodeRef is an index into Graph.nodes.
type NodeRef int

// Node is one DAG vertex.
type Node struct {
	Kind   Kind
	Domain Domain
	Inputs []NodeRef
	Params Params

	cachedValue Value
	cacheEpoch  uint64
	hasCache    bool
}

// Graph owns every node and the shared cache epoch counter used to
// guarantee at-most-once evaluation per node per pass.
type Graph struct {
	nodes      []Node
	context    EvalContext
	cacheEpoch uint64
}

// New returns an empty Graph.
func New() *Graph {
	return &Graph{}
}

func (g *Graph) add(n Node) NodeRef {
	g.nodes = append(g.nodes, n)
	return NodeRef(len(g.nodes) - 1)
}

// Constant adds a Constant node usable from any domain.
func (g *Graph) Constant(v float64) NodeRef {
	return g.add(Node{Kind: KindConstant, Params: Params{Scalar: v}})
}

// Input adds a named Control-domain input node; its value is set via
// SetInput and read back during evaluation.
func (g *Graph) Input(name string) NodeRef {
	return g.add(Node{Kind: KindInput, Domain: DomainControl, Params: Params{Name: name}})
}

// Oscillator adds an audio oscillator node.
func (g *Graph) Oscillator(waveform WaveOp, freq float64) NodeRef {
	return g.add(Node{Kind: KindOscillator, Domain: DomainAudio, Params: Params{WaveOp: waveform, Freq: freq}})
}

// Wave adds a Wave node usable in audio or visual domains.
func (g *Graph) Wave(op WaveOp) NodeRef {
	return g.add(Node{Kind: KindWave, Params: Params{WaveOp: op}})
}

// Noise adds a Noise node.
func (g *Graph) Noise(kind NoiseKind, scale float64, seed int64) NodeRef {
	return g.add(Node{Kind: KindNoise, Params: Params{NoiseKind: kind, Scale: scale, Seed: seed, Octaves: 4}})
}

// Math adds a Math node.
func (g *Graph) Math(op MathOp) NodeRef {
	return g.add(Node{Kind: KindMath, Params: Params{MathOp: op}})
}

// Color adds a visual-domain Color node.
func (g *Graph) Color(palette []Value, lo, hi float64) NodeRef {
	return g.add(Node{Kind: KindColor, Domain: DomainVisual, Params: Params{Palette: palette, Lo: lo, Hi: hi}})
}

// Easing adds an Easing node.
func (g *Graph) Easing(kind EasingKind) NodeRef {
	return g.add(Node{Kind: KindEasing, Params: Params{EaseKind: kind}})
}

// Polar adds a visual-domain Polar node centered at (cx, cy).
func (g *Graph) Polar(cx, cy float64) NodeRef {
	return g.add(Node{Kind: KindPolar, Domain: DomainVisual, Params: Params{CenterX: cx, CenterY: cy}})
}

// Math2D adds a visual-domain Math2D node (displacement math).
func (g *Graph) Math2D(op MathOp) NodeRef {
	return g.add(Node{Kind: KindMath2D, Domain: DomainVisual, Params: Params{MathOp: op}})
}

// AudioOut adds an audio sink node.
func (g *Graph) AudioOut() NodeRef {
	return g.add(Node{Kind: KindAudioOut, Domain: DomainAudio})
}

// BufferOut adds a visual sink node.
func (g *Graph) BufferOut() NodeRef {
	return g.add(Node{Kind: KindBufferOut, Domain: DomainVisual})
}

// ValueOut adds a control sink node.
func (g *Graph) ValueOut() NodeRef {
	return g.add(Node{Kind: KindValueOut, Domain: DomainControl})
}

// Connect appends src to dst's input list after verifying src does not
// already depend on dst, directly or transitively (which would create a
// cycle).
func (g *Graph) Connect(src, dst NodeRef) error {
	if !g.validRef(src) || !g.validRef(dst) {
		return ErrInvalidNode
	}
	if g.reaches(src, dst) {
		return ErrCycleDetected
	}
	g.nodes[dst].Inputs = append(g.nodes[dst].Inputs, src)
	return nil
}

func (g *Graph) validRef(r NodeRef) bool {
	return int(r) >= 0 && int(r) < len(g.nodes)
}

// reaches reports whether target is reachable by following Inputs edges
// starting from from (i.e., from depends on target, directly or
// transitively); used by Connect to reject cycles before they form.
func (g *Graph) reaches(from, target NodeRef) bool {
	if from == target {
		return true
	}
	visited := make(map[NodeRef]bool)
	var walk func(NodeRef) bool
	walk = func(n NodeRef) bool {
		if visited[n] {
			return false
		}
		visited[n] = true
		for _, in := range g.nodes[n].Inputs {
			if in == target || walk(in) {
				return true
			}
		}
		return false
	}
	return walk(from)
}

// SetInput assigns the current value of a named Input node, read by
// evaluate the next time that node participates in an evaluation pass.
func (g *Graph) SetInput(name string, value float64) {
	for i := range g.nodes {
		if g.nodes[i].Kind == KindInput && g.nodes[i].Params.Name == name {
			g.nodes[i].Params.Scalar = value
		}
	}
}
