package graph

// EvaluateAudio pulls sink's value for one audio sample. Audio nodes
// are addressed by sample index and elapsed seconds, not wall-clock
// frame.
func (g *Graph) EvaluateAudio(sink NodeRef, sampleIndex int64, timeS float64) (Value, error) {
	return g.Evaluate(sink, EvalContext{SampleIndex: sampleIndex, TimeS: timeS})
}

// EvaluatePixel pulls sink's value for one pixel of one rendered frame.
func (g *Graph) EvaluatePixel(sink NodeRef, x, y int, frame int64) (Value, error) {
	return g.Evaluate(sink, EvalContext{PixelX: x, PixelY: y, Frame: frame})
}

// EvaluateControl pulls sink's value on demand, outside the audio or
// pixel loops (e.g. a script reading a ValueOut node once per update).
func (g *Graph) EvaluateControl(sink NodeRef) (Value, error) {
	return g.Evaluate(sink, EvalContext{})
}

// EvaluateWithCustom pulls sink's value for one pass, making custom
// available to any Input node by name.
// Used by pkg/particles to drive a per-particle motion/color/character
// graph without SetInput's whole-graph mutation.
func (g *Graph) EvaluateWithCustom(sink NodeRef, frame int64, custom map[string]float64) (Value, error) {
	return g.Evaluate(sink, EvalContext{Frame: frame, Custom: custom})
}
