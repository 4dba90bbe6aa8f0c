package detrand

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIRectOverlaps(t *testing.T) {
	a := IRect{X: 0, Y: 0, W: 4, H: 4}
	b := IRect{X: 2, Y: 2, W: 4, H: 4}
	c := IRect{X: 10, Y: 10, W: 2, H: 2}
	assert.True(t, a.Overlaps(b))
	assert.False(t, a.Overlaps(c))
}

func TestIRectContainsAndCenter(t *testing.T) {
	r := IRect{X: 0, Y: 0, W: 4, H: 2}
	assert.True(t, r.Contains(3, 1))
	assert.False(t, r.Contains(4, 1))
	cx, cy := r.Center()
	assert.Equal(t, int64(2), cx)
	assert.Equal(t, int64(1), cy)
}

func TestBresenhamLineIncludesEndpoints(t *testing.T) {
	pts := BresenhamLine(0, 0, 3, 0)
	assert.Equal(t, Point{0, 0}, pts[0])
	assert.Equal(t, Point{3, 0}, pts[len(pts)-1])
	assert.Len(t, pts, 4)
}

func TestEasingBoundsRoundTrip(t *testing.T) {
	for _, k := range []EasingKind{EaseLinear, EaseQuadIn, EaseQuadOut, EaseQuadInOut, EaseCubicIn, EaseCubicOut} {
		assert.Equal(t, int64(0), Ease(k, 0))
		assert.Equal(t, int64(1000), Ease(k, 1000))
	}
}

func TestHSVToRGBPrimaries(t *testing.T) {
	red := HSVToRGB(0, 1000, 1000)
	assert.Equal(t, uint8(255), red.R)
	assert.Less(t, red.G, uint8(10))
	assert.Less(t, red.B, uint8(10))
}
