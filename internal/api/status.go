package api

import (
	"context"
	"sync"
	"time"

	"github.com/artemdev/ozon-cart-bot/internal/models"
)

// RunState describes where a shopping run currently is.
type RunState string

const (
	RunStateIdle     RunState = "idle"
	RunStateRunning  RunState = "running"
	RunStateFinished RunState = "finished"
)

// Snapshot is the externally visible view of a run.
type Snapshot struct {
	RunID       string               `json:"run_id,omitempty"`
	State       RunState             `json:"state"`
	TotalItems  int                  `json:"total_items"`
	CurrentItem string               `json:"current_item,omitempty"`
	StartedAt   *time.Time           `json:"started_at,omitempty"`
	FinishedAt  *time.Time           `json:"finished_at,omitempty"`
	Outcomes    []models.ItemOutcome `json:"outcomes"`
}

// Tracker accumulates run progress for the status API. It doubles as the
// driver's outcome sink. Safe for concurrent use.
type Tracker struct {
	mu   sync.RWMutex
	snap Snapshot
}

func NewTracker() *Tracker {
	return &Tracker{snap: Snapshot{State: RunStateIdle}}
}

func (t *Tracker) StartRun(runID string, totalItems int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	now := time.Now()
	t.snap = Snapshot{
		RunID:      runID,
		State:      RunStateRunning,
		TotalItems: totalItems,
		StartedAt:  &now,
	}
}

// StartItem implements the driver's item-start notification.
func (t *Tracker) StartItem(item string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.snap.CurrentItem = item
}

// Record implements the driver's outcome sink.
func (t *Tracker) Record(ctx context.Context, outcome models.ItemOutcome) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.snap.Outcomes = append(t.snap.Outcomes, outcome)
	t.snap.CurrentItem = ""
}

func (t *Tracker) FinishRun() {
	t.mu.Lock()
	defer t.mu.Unlock()
	now := time.Now()
	t.snap.State = RunStateFinished
	t.snap.CurrentItem = ""
	t.snap.FinishedAt = &now
}

// Snapshot returns a copy; the outcome slice is cloned so callers cannot
// race with later appends.
func (t *Tracker) Snapshot() Snapshot {
	t.mu.RLock()
	defer t.mu.RUnlock()
	snap := t.snap
	snap.Outcomes = append([]models.ItemOutcome(nil), t.snap.Outcomes...)
	return snap
}
