package compositor

import (
	"testing"

	"github.com/maddestlabs/tstorie/pkg/cellbuf"
	"github.com/maddestlabs/tstorie/pkg/layer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSingleLayerWriteAndPresent(t *testing.T) {
	s := layer.New()
	_, err := s.AddLayer("a", 0, 4, 1)
	require.NoError(t, err)

	red := cellbuf.RGB(255, 0, 0)
	s.Draw("a", 0, 0, "H", red)
	s.Draw("a", 1, 0, "i", red)

	frame := cellbuf.New(4, 1)
	bg := cellbuf.Style{}
	c := New(bg)
	c.Compose(s, frame)

	assert.Equal(t, "H", frame.GetCell(0, 0).Grapheme)
	assert.True(t, frame.GetCell(0, 0).Style.Equal(red))
	assert.Equal(t, "i", frame.GetCell(1, 0).Grapheme)
	assert.Equal(t, " ", frame.GetCell(2, 0).Grapheme)
	assert.Equal(t, " ", frame.GetCell(3, 0).Grapheme)
}

func TestTwoLayerZOrderWithTransparency(t *testing.T) {
	s := layer.New()
	grey := cellbuf.RGB(128, 128, 128)
	yellow := cellbuf.RGB(255, 255, 0)

	s.AddLayer("bg", 0, 3, 1)
	s.AddLayer("fg", 1, 3, 1)

	bgLayer, _ := s.GetByID("bg")
	bgLayer.Buffer.FillRect(0, 0, 3, 1, ".", grey)

	fgLayer, _ := s.GetByID("fg")
	fgLayer.Buffer.ClearTransparent()
	fgLayer.Buffer.Write(0, 0, "@", yellow)

	frame := cellbuf.New(3, 1)
	c := New(cellbuf.Style{})
	c.Compose(s, frame)

	assert.Equal(t, "@", frame.GetCell(0, 0).Grapheme)
	assert.True(t, frame.GetCell(0, 0).Style.Equal(yellow))
	assert.Equal(t, ".", frame.GetCell(1, 0).Grapheme)
	assert.True(t, frame.GetCell(1, 0).Style.Equal(grey))
	assert.Equal(t, ".", frame.GetCell(2, 0).Grapheme)
}

func TestParallaxOffset(t *testing.T) {
	s := layer.New()
	s.AddLayer("L", 0, 4, 1)
	l, _ := s.GetByID("L")
	l.Buffer.ClearTransparent()
	style := cellbuf.RGB(1, 2, 3)
	l.Buffer.Write(0, 0, "*", style)
	s.SetOffset("L", 2, 0)

	frame := cellbuf.New(4, 1)
	c := New(cellbuf.Style{})
	c.Compose(s, frame)

	assert.Equal(t, "*", frame.GetCell(2, 0).Grapheme)
	assert.True(t, frame.GetCell(2, 0).Style.Equal(style))
	assert.Equal(t, " ", frame.GetCell(0, 0).Grapheme)
}

func TestSingleOpaqueLayerFillsWholeFrame(t *testing.T) {
	s := layer.New()
	s.AddLayer("a", 0, 3, 2)
	l, _ := s.GetByID("a")
	col := cellbuf.RGB(10, 20, 30)
	l.Buffer.FillRect(0, 0, 3, 2, "C", col)

	frame := cellbuf.New(3, 2)
	c := New(cellbuf.Style{})
	c.Compose(s, frame)

	for y := 0; y < 2; y++ {
		for x := 0; x < 3; x++ {
			cell := frame.GetCell(x, y)
			assert.Equal(t, "C", cell.Grapheme)
			assert.True(t, cell.Style.Equal(col))
		}
	}
}

func TestTransparentCellsDoNotAlterFrameBuffer(t *testing.T) {
	s := layer.New()
	s.AddLayer("a", 0, 2, 2)
	l, _ := s.GetByID("a")
	l.Buffer.ClearTransparent()

	frame := cellbuf.New(2, 2)
	bg := cellbuf.RGB(5, 5, 5)
	frame.Clear(bg)

	c := New(bg)
	c.Compose(s, frame)

	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			assert.True(t, frame.GetCell(x, y).Style.Equal(bg))
		}
	}
}
