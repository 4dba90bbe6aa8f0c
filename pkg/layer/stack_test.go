package layer

import (
	"testing"

	"github.com/maddestlabs/tstorie/pkg/cellbuf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddLayerDuplicateIDFails(t *testing.T) {
	s := New()
	_, err := s.AddLayer("a", 0, 4, 4)
	require.NoError(t, err)
	_, err = s.AddLayer("a", 1, 4, 4)
	assert.ErrorIs(t, err, ErrDuplicateID)
}

func TestRemoveUnknownLayerFails(t *testing.T) {
	s := New()
	assert.ErrorIs(t, s.RemoveLayer("missing"), ErrUnknownLayer)
}

func TestResolveSortedPositionNotCreationOrder(t *testing.T) {
	s := New()
	s.AddLayer("fg", 10, 2, 2)
	s.AddLayer("bg", 0, 2, 2)

	bgIdx, ok := s.Resolve("bg")
	require.True(t, ok)
	assert.Equal(t, 0, bgIdx, "bg has lower z so must sort first despite being added second")

	fgIdx, ok := s.Resolve("fg")
	require.True(t, ok)
	assert.Equal(t, 1, fgIdx)
}

func TestResolveIndexOutOfRangeIsNoOp(t *testing.T) {
	s := New()
	s.AddLayer("a", 0, 2, 2)
	_, ok := s.Resolve(5)
	assert.False(t, ok)
}

func TestCacheStaysConsistentAfterSetZ(t *testing.T) {
	s := New()
	s.AddLayer("a", 0, 2, 2)
	s.AddLayer("b", 1, 2, 2)

	// Force cache build.
	_, _ = s.Resolve("a")

	require.NoError(t, s.SetZ("a", 5))
	idx, ok := s.Resolve("a")
	require.True(t, ok)
	assert.Equal(t, 1, idx, "a should now sort after b")
}

func TestDrawToUnknownLayerIsNoOp(t *testing.T) {
	s := New()
	assert.NotPanics(t, func() {
		s.Draw("nope", 0, 0, "x", cellbuf.Style{})
		s.FillBox("nope", 0, 0, 2, 2, "x", cellbuf.Style{})
	})
}

func TestIterSortedVisitsInZOrder(t *testing.T) {
	s := New()
	s.AddLayer("c", 5, 1, 1)
	s.AddLayer("a", -5, 1, 1)
	s.AddLayer("b", 0, 1, 1)

	var order []string
	s.IterSorted(func(l *Layer) { order = append(order, l.ID) })
	assert.Equal(t, []string{"a", "b", "c"}, order)
}
