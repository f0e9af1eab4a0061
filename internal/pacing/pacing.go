package pacing

import (
	"context"
	"math/rand"
	"sync"
	"time"
)

// Pacer inserts delays around interactive browser actions.
type Pacer interface {
	Pause(ctx context.Context) error
	PauseRange(ctx context.Context, min, max time.Duration) error
}

// HumanPacer sleeps a random duration between its bounds, imitating a
// person pausing between actions. The jitter is pacing, not synchronization.
type HumanPacer struct {
	minDelay time.Duration
	maxDelay time.Duration
	mu       sync.Mutex
	rng      *rand.Rand
}

func NewHumanPacer(minDelay, maxDelay time.Duration) *HumanPacer {
	return &HumanPacer{
		minDelay: minDelay,
		maxDelay: maxDelay,
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (p *HumanPacer) Pause(ctx context.Context) error {
	return p.PauseRange(ctx, p.minDelay, p.maxDelay)
}

func (p *HumanPacer) PauseRange(ctx context.Context, min, max time.Duration) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(p.pick(min, max)):
		return nil
	}
}

func (p *HumanPacer) pick(min, max time.Duration) time.Duration {
	if max <= min {
		return min
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return min + time.Duration(p.rng.Int63n(int64(max-min)))
}

// Nop is a pacer that never sleeps, for tests.
type Nop struct{}

func (Nop) Pause(ctx context.Context) error { return nil }

func (Nop) PauseRange(ctx context.Context, min, max time.Duration) error { return nil }
