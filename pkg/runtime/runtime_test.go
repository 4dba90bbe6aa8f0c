package runtime_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maddestlabs/tstorie/internal/bindingtest"
	"github.com/maddestlabs/tstorie/pkg/cellbuf"
	"github.com/maddestlabs/tstorie/pkg/events"
	"github.com/maddestlabs/tstorie/pkg/lifecycle"
	"github.com/maddestlabs/tstorie/pkg/runtime"
)

// fakeBackend is a non-blocking terminal.Backend stub, mirroring
// pkg/lifecycle's own test fake so runtime's wiring can be exercised
// without a real TTY.
type fakeBackend struct {
	cols, rows int
}

func (f *fakeBackend) Start(onInput func([]byte), onResize func()) error { return nil }
func (f *fakeBackend) Stop()                                             {}
func (f *fakeBackend) Write(p []byte)                                    {}
func (f *fakeBackend) WriteString(s string)                              {}
func (f *fakeBackend) Columns() int                                      { return f.cols }
func (f *fakeBackend) Rows() int                                         { return f.rows }
func (f *fakeBackend) HideCursor()                                       {}
func (f *fakeBackend) ShowCursor()                                       {}

func newRuntime(host *bindingtest.Host) (*runtime.Runtime, *lifecycle.Lifecycle) {
	lc := lifecycle.New(&fakeBackend{cols: 10, rows: 4}, cellbuf.Style{}, lifecycle.Hooks{}, nil)
	lc.TargetHz = 1000
	rt := runtime.New(lc, host)
	return rt, lc
}

func TestRunCallsInitUpdateRenderAndTeardown(t *testing.T) {
	host := &bindingtest.Host{}
	rt, lc := newRuntime(host)

	lc.UpdateHandlers.Register("quit-after-one", 0, func(s *lifecycle.AppState) {
		s.RequestQuit()
	})

	require.NoError(t, runtime.Run(rt))
	assert.Equal(t, 1, host.InitCalls)
	assert.GreaterOrEqual(t, host.UpdateCalls, 1)
	assert.GreaterOrEqual(t, host.RenderCalls, 1)
	assert.Equal(t, 1, host.TeardownCalls)
}

func TestRunWrapsUnhandledPanicWithSessionID(t *testing.T) {
	host := &bindingtest.Host{}
	rt, lc := newRuntime(host)
	lc.UpdateHandlers.Register("boom", 0, func(s *lifecycle.AppState) {
		panic("kaboom")
	})

	err := runtime.Run(rt)
	require.Error(t, err)
	assert.Contains(t, err.Error(), rt.SessionID)
	require.NotNil(t, rt.LastCrash)
	assert.Equal(t, rt.SessionID, rt.LastCrash.SessionID)
	assert.Contains(t, rt.LastCrash.PanicValue, "kaboom")
}

func TestHandleInputDispatchesThroughSectionHook(t *testing.T) {
	host := &bindingtest.Host{Consume: true}
	rt, lc := newRuntime(host)

	consumed := lc.Router.Dispatch(events.InputEvent{Kind: events.KindKey, KeyCode: 'x', Action: events.Press}, lc.State())
	_ = rt
	assert.True(t, consumed)
	assert.Equal(t, uint32('x'), host.LastEvent.KeyCode)
}

func TestSectionManagerGoNextBackResolveByIDAndIndex(t *testing.T) {
	m := runtime.NewSectionManager()
	m.Add(runtime.SectionRef{ID: "intro", Title: "Intro"})
	m.Add(runtime.SectionRef{ID: "middle", Title: "Middle"})
	m.Add(runtime.SectionRef{ID: "end", Title: "End"})

	cur, ok := m.Current()
	require.True(t, ok)
	assert.Equal(t, "intro", cur.ID)

	require.NoError(t, m.Next())
	cur, _ = m.Current()
	assert.Equal(t, "middle", cur.ID)
	require.NotNil(t, m.Transition)

	require.NoError(t, m.Go("end"))
	cur, _ = m.Current()
	assert.Equal(t, "end", cur.ID)

	require.NoError(t, m.Back())
	cur, _ = m.Current()
	assert.Equal(t, "middle", cur.ID)

	assert.ErrorIs(t, m.Go("nope"), runtime.ErrUnknownSection)
}
