package terminal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maddestlabs/tstorie/pkg/events"
)

func TestParserDecodesPlainAscii(t *testing.T) {
	p := NewParser()
	evs := p.Feed([]byte("a"))
	require.Len(t, evs, 2)
	assert.Equal(t, events.KindKey, evs[0].Kind)
	assert.Equal(t, uint32('a'), evs[0].KeyCode)
	assert.Equal(t, events.KindText, evs[1].Kind)
	assert.Equal(t, "a", evs[1].Grapheme)
}

func TestParserUppercaseLetterKeysOnLowercaseWithShift(t *testing.T) {
	p := NewParser()
	evs := p.Feed([]byte("Q"))
	require.Len(t, evs, 2)
	assert.Equal(t, uint32('q'), evs[0].KeyCode)
	assert.True(t, evs[0].Mods.Shift)
	assert.Equal(t, "Q", evs[1].Grapheme)
}

func TestParserDecodesCtrlC(t *testing.T) {
	p := NewParser()
	evs := p.Feed([]byte{0x03})
	require.Len(t, evs, 1)
	assert.Equal(t, events.KindKey, evs[0].Kind)
	assert.True(t, evs[0].Mods.Ctrl)
}

func TestParserDecodesArrowKey(t *testing.T) {
	p := NewParser()
	evs := p.Feed([]byte("\x1b[A"))
	require.Len(t, evs, 1)
	assert.Equal(t, KeyUp, evs[0].KeyCode)
}

func TestParserBuffersPartialEscapeSequence(t *testing.T) {
	p := NewParser()
	evs := p.Feed([]byte("\x1b["))
	assert.Empty(t, evs)

	evs = p.Feed([]byte("A"))
	require.Len(t, evs, 1)
	assert.Equal(t, KeyUp, evs[0].KeyCode)
}

func TestParserDecodesSGRMousePress(t *testing.T) {
	p := NewParser()
	evs := p.Feed([]byte("\x1b[<0;10;5M"))
	require.Len(t, evs, 1)
	assert.Equal(t, events.KindMouseButton, evs[0].Kind)
	assert.Equal(t, uint16(9), evs[0].X)
	assert.Equal(t, uint16(4), evs[0].Y)
	assert.Equal(t, events.MouseLeft, evs[0].Button)
	assert.Equal(t, events.Press, evs[0].Action)
}

func TestParserDecodesSGRMouseRelease(t *testing.T) {
	p := NewParser()
	evs := p.Feed([]byte("\x1b[<0;10;5m"))
	require.Len(t, evs, 1)
	assert.Equal(t, events.Release, evs[0].Action)
}

func TestParserDecodesSGRMouseWheel(t *testing.T) {
	p := NewParser()
	evs := p.Feed([]byte("\x1b[<64;5;4M\x1b[<65;5;4M"))
	require.Len(t, evs, 2)
	assert.Equal(t, events.MouseScrollUp, evs[0].Button)
	assert.Equal(t, events.MouseScrollDown, evs[1].Button)
}

func TestParserDecodesSGRMouseMotion(t *testing.T) {
	p := NewParser()
	evs := p.Feed([]byte("\x1b[<32;1;1M"))
	require.Len(t, evs, 1)
	assert.Equal(t, events.KindMouseMove, evs[0].Kind)
}

func TestParserDecodesMultipleEventsInOneFeed(t *testing.T) {
	p := NewParser()
	evs := p.Feed([]byte("ab\x1b[A"))
	require.Len(t, evs, 5)
	assert.Equal(t, uint32('a'), evs[0].KeyCode)
	assert.Equal(t, "a", evs[1].Grapheme)
	assert.Equal(t, uint32('b'), evs[2].KeyCode)
	assert.Equal(t, "b", evs[3].Grapheme)
	assert.Equal(t, KeyUp, evs[4].KeyCode)
}

func TestParserDecodesEnterAndBackspace(t *testing.T) {
	p := NewParser()
	evs := p.Feed([]byte{'\r', 0x7f})
	require.Len(t, evs, 2)
	assert.Equal(t, KeyEnter, evs[0].KeyCode)
	assert.Equal(t, KeyBackspace, evs[1].KeyCode)
}

// quitState records RequestQuit so the parser-to-router path can be
// driven with real wire bytes rather than hand-built events.
type quitState struct {
	quitRequested bool
}

func (q *quitState) RequestQuit()           { q.quitRequested = true }
func (q *quitState) OnResize(uint16, uint16) {}

func TestParsedQPressDrivesDefaultQuitBinding(t *testing.T) {
	p := NewParser()
	r := events.NewRouter()
	st := &quitState{}
	for _, ev := range p.Feed([]byte("q")) {
		r.Dispatch(ev, st)
	}
	assert.True(t, st.quitRequested)
}
