package tracing

import (
	"log"
	"sync"

	"github.com/sarchlab/rripcache/sim"
)

// LogTracer prints the life of every traced task into a logger.
type LogTracer struct {
	timeTeller sim.TimeTeller
	logger     *log.Logger
	filter     TaskFilter

	lock          sync.Mutex
	inflightTasks map[string]Task
}

// NewLogTracer creates a LogTracer. A nil filter traces every task.
func NewLogTracer(
	timeTeller sim.TimeTeller,
	logger *log.Logger,
	filter TaskFilter,
) *LogTracer {
	if filter == nil {
		filter = AllTasks
	}

	return &LogTracer{
		timeTeller:    timeTeller,
		logger:        logger,
		filter:        filter,
		inflightTasks: make(map[string]Task),
	}
}

// StartTask prints the task and remembers when it started.
func (t *LogTracer) StartTask(task Task) {
	if !t.filter(task) {
		return
	}

	task.StartTime = t.timeTeller.CurrentTime()

	t.lock.Lock()
	t.inflightTasks[task.ID] = task
	t.lock.Unlock()

	t.logger.Printf("%d start %s %s %s @ %s parent=%s",
		task.StartTime, task.ID, task.Kind, task.What, task.Location,
		task.ParentID)
}

// StepTask prints the steps of known tasks.
func (t *LogTracer) StepTask(task Task) {
	t.lock.Lock()
	_, ok := t.inflightTasks[task.ID]
	t.lock.Unlock()

	if !ok {
		return
	}

	for _, step := range task.Steps {
		t.logger.Printf("%d step %s %s",
			t.timeTeller.CurrentTime(), task.ID, step.What)
	}
}

// EndTask prints the task with its duration.
func (t *LogTracer) EndTask(task Task) {
	t.lock.Lock()
	original, ok := t.inflightTasks[task.ID]
	delete(t.inflightTasks, task.ID)
	t.lock.Unlock()

	if !ok {
		return
	}

	now := t.timeTeller.CurrentTime()
	t.logger.Printf("%d end %s %s took %d cycles",
		now, original.ID, original.Kind, now-original.StartTime)
}
