package pacing

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHumanPacerStaysWithinBounds(t *testing.T) {
	p := NewHumanPacer(5*time.Millisecond, 20*time.Millisecond)

	for i := 0; i < 10; i++ {
		d := p.pick(p.minDelay, p.maxDelay)
		assert.GreaterOrEqual(t, d, 5*time.Millisecond)
		assert.Less(t, d, 20*time.Millisecond)
	}
}

func TestHumanPacerEqualBounds(t *testing.T) {
	p := NewHumanPacer(time.Millisecond, time.Millisecond)
	assert.Equal(t, time.Millisecond, p.pick(time.Millisecond, time.Millisecond))
}

func TestHumanPacerCancelled(t *testing.T) {
	p := NewHumanPacer(time.Hour, 2*time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := p.Pause(ctx)
	require.ErrorIs(t, err, context.Canceled)
}
