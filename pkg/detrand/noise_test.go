package detrand

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNoiseIsBitEqualAcrossCalls(t *testing.T) {
	a := FractalNoise2D(17, 42, 4, 8, 99)
	b := FractalNoise2D(17, 42, 4, 8, 99)
	assert.Equal(t, a, b)
}

func TestFractalNoiseOneOctaveEqualsSmoothNoise(t *testing.T) {
	for _, seed := range []int64{0, 1, 99, 12345} {
		smooth := SmoothNoise2D(5, 9, 8, seed)
		fractal := FractalNoise2D(5, 9, 1, 8, seed)
		assert.Equal(t, smooth, fractal, "seed=%d", seed)
	}
}

func TestValueNoiseBitEqualGivenSameInputs(t *testing.T) {
	a := ValueNoise2D(3, 4, 55)
	b := ValueNoise2D(3, 4, 55)
	assert.Equal(t, a, b)
}

func TestIntHashVariesWithSeed(t *testing.T) {
	a := IntHash(10, 1)
	b := IntHash(10, 2)
	assert.NotEqual(t, a, b)
}
