package monitoring

import (
	"sync"
	"time"

	"github.com/sarchlab/rripcache/tracing"
)

// A ProgressBar is a tracker of the progress
type ProgressBar struct {
	sync.Mutex
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	StartTime  time.Time `json:"start_time"`
	Total      uint64    `json:"total"`
	Finished   uint64    `json:"finished"`
	InProgress uint64    `json:"in_progress"`
}

// IncrementInProgress adds the number of in-progress element.
func (b *ProgressBar) IncrementInProgress(amount uint64) {
	b.Lock()
	defer b.Unlock()

	b.InProgress += amount
}

// IncrementFinished add a certain amount to finished element.
func (b *ProgressBar) IncrementFinished(amount uint64) {
	b.Lock()
	defer b.Unlock()

	b.Finished += amount
}

// MoveInProgressToFinished reduces the number of in progress item by a certain
// amount and increase the finished item by the same amount.
func (b *ProgressBar) MoveInProgressToFinished(amount uint64) {
	b.Lock()
	defer b.Unlock()

	b.InProgress -= amount
	b.Finished += amount
}

// A ProgressTracer moves a progress bar forward as tasks of one kind start
// and end.
type ProgressTracer struct {
	bar     *ProgressBar
	kind    string
	lock    sync.Mutex
	started map[string]bool
}

// NewProgressTracer creates a tracer that reports tasks of the given kind to
// the bar.
func NewProgressTracer(bar *ProgressBar, kind string) *ProgressTracer {
	return &ProgressTracer{
		bar:     bar,
		kind:    kind,
		started: make(map[string]bool),
	}
}

// StartTask counts a task as in progress.
func (t *ProgressTracer) StartTask(task tracing.Task) {
	if task.Kind != t.kind {
		return
	}

	t.lock.Lock()
	t.started[task.ID] = true
	t.lock.Unlock()

	t.bar.IncrementInProgress(1)
}

// StepTask does nothing.
func (t *ProgressTracer) StepTask(_ tracing.Task) {}

// EndTask counts a task as finished.
func (t *ProgressTracer) EndTask(task tracing.Task) {
	t.lock.Lock()
	found := t.started[task.ID]
	delete(t.started, task.ID)
	t.lock.Unlock()

	if found {
		t.bar.MoveInProgressToFinished(1)
	}
}
