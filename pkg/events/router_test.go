package events

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeState struct {
	quitRequested bool
	cols, rows    uint16
}

func (f *fakeState) RequestQuit()               { f.quitRequested = true }
func (f *fakeState) OnResize(cols, rows uint16) { f.cols, f.rows = cols, rows }

func TestHandlerPriorityAndConsumption(t *testing.T) {
	r := NewRouter()
	var aRan, bRan, cRan bool

	require.NoError(t, r.RegisterInput("A", -10, func(ev InputEvent, s RouterState) bool {
		aRan = true
		return false
	}))
	require.NoError(t, r.RegisterInput("B", 0, func(ev InputEvent, s RouterState) bool {
		bRan = true
		return true
	}))
	require.NoError(t, r.RegisterInput("C", 10, func(ev InputEvent, s RouterState) bool {
		cRan = true
		return false
	}))

	st := &fakeState{}
	ev := Key(uint32('x'), Mods{}, Press)
	consumed := r.Dispatch(ev, st)

	assert.True(t, consumed)
	assert.True(t, aRan)
	assert.True(t, bRan)
	assert.False(t, cRan, "C has lower priority than the consuming handler and must not run")
	assert.False(t, st.quitRequested, "default quit binding must not run once consumed")
}

func TestDuplicateHandlerNameErrors(t *testing.T) {
	r := NewRouter()
	fn := func(ev InputEvent, s RouterState) bool { return false }
	require.NoError(t, r.RegisterInput("dup", 0, fn))
	assert.ErrorIs(t, r.RegisterInput("dup", 0, fn), ErrDuplicateHandler)
}

func TestDefaultQuitBinding(t *testing.T) {
	r := NewRouter()
	st := &fakeState{}
	consumed := r.Dispatch(Key(uint32('q'), Mods{}, Press), st)
	assert.True(t, consumed)
	assert.True(t, st.quitRequested)
}

func TestResizeUpdatesState(t *testing.T) {
	r := NewRouter()
	st := &fakeState{}
	r.Dispatch(ResizeEvent(80, 24), st)
	assert.Equal(t, uint16(80), st.cols)
	assert.Equal(t, uint16(24), st.rows)
}

func TestSectionHookRunsLast(t *testing.T) {
	r := NewRouter()
	var sectionRan bool
	r.SetSectionHook(func(ev InputEvent, s RouterState) bool {
		sectionRan = true
		return true
	})
	st := &fakeState{}
	consumed := r.Dispatch(Key(uint32('z'), Mods{}, Press), st)
	assert.True(t, sectionRan)
	assert.True(t, consumed)
}

func TestUnregisterRemovesHandler(t *testing.T) {
	r := NewRouter()
	called := false
	r.RegisterInput("h", 0, func(ev InputEvent, s RouterState) bool {
		called = true
		return true
	})
	r.Unregister("h")
	st := &fakeState{}
	r.Dispatch(Key(uint32('z'), Mods{}, Press), st)
	assert.False(t, called)
}
