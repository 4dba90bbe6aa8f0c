package animation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tanema/gween/ease"
)

func TestTweenReachesTargetAfterFullDuration(t *testing.T) {
	tw := NewTween(0, 100, 1.0, ease.Linear)
	tw.Update(0.5)
	tw.Update(0.5)

	assert.True(t, tw.Done)
	assert.InDelta(t, 100.0, tw.Value(), 0.5)
}

func TestTweenFreezesAtTargetOnceDone(t *testing.T) {
	tw := NewTween(0, 10, 0.1, ease.Linear)
	tw.Update(1.0)
	assert.True(t, tw.Done)

	v := tw.Update(1.0)
	assert.Equal(t, float32(10), v)
}
