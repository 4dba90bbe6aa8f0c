package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParamQueueFIFO(t *testing.T) {
	q := NewParamQueue(4)
	require.True(t, q.Push(ParamChange{Node: 0, Value: 1}))
	require.True(t, q.Push(ParamChange{Node: 1, Value: 2}))

	c, ok := q.Pop()
	require.True(t, ok)
	assert.Equal(t, NodeRef(0), c.Node)
	c, ok = q.Pop()
	require.True(t, ok)
	assert.Equal(t, NodeRef(1), c.Node)
	_, ok = q.Pop()
	assert.False(t, ok)
}

func TestParamQueueRejectsWhenFull(t *testing.T) {
	q := NewParamQueue(2)
	require.True(t, q.Push(ParamChange{Value: 1}))
	require.True(t, q.Push(ParamChange{Value: 2}))
	assert.False(t, q.Push(ParamChange{Value: 3}))

	_, ok := q.Pop()
	require.True(t, ok)
	assert.True(t, q.Push(ParamChange{Value: 3}))
}

func TestParamQueueWrapsAround(t *testing.T) {
	q := NewParamQueue(2)
	for i := 0; i < 10; i++ {
		require.True(t, q.Push(ParamChange{Value: float64(i)}))
		c, ok := q.Pop()
		require.True(t, ok)
		assert.Equal(t, float64(i), c.Value)
	}
}

func TestApplyParamsRetunesOscillator(t *testing.T) {
	g := New()
	osc := g.Oscillator(WaveSin, 440)
	sink := g.AudioOut()
	require.NoError(t, g.Connect(osc, sink))

	q := NewParamQueue(8)
	q.Push(ParamChange{Node: osc, Param: ParamFreq, Value: 880})
	assert.Equal(t, 1, g.ApplyParams(q))
	assert.Equal(t, 880.0, g.nodes[osc].Params.Freq)

	// A sine at 880 Hz sampled a quarter period in is at its peak.
	v, err := g.Evaluate(sink, EvalContext{SampleIndex: 44100 / 880 / 4, SampleRate: 44100})
	require.NoError(t, err)
	assert.InDelta(t, 1.0, v.AsScalar(), 0.05)
}

func TestApplyParamsDiscardsInvalidNode(t *testing.T) {
	g := New()
	g.Constant(1)
	q := NewParamQueue(4)
	q.Push(ParamChange{Node: 99, Value: 5})
	assert.Equal(t, 0, g.ApplyParams(q))
	_, ok := q.Pop()
	assert.False(t, ok, "queue drained even for discarded changes")
}

func TestApplyParamsUpdatesConstantScalar(t *testing.T) {
	g := New()
	c := g.Constant(0.25)
	sink := g.AudioOut()
	require.NoError(t, g.Connect(c, sink))

	q := NewParamQueue(4)
	q.Push(ParamChange{Node: c, Param: ParamScalar, Value: 0.75})
	require.Equal(t, 1, g.ApplyParams(q))

	v, err := g.EvaluateAudio(sink, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 0.75, v.AsScalar())
}
