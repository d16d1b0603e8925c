package sim

import (
	"log"
	"reflect"
)

// EventLogger is a hook that prints every event the engine dispatches.
type EventLogger struct {
	*log.Logger
}

// NewEventLogger returns a new EventLogger which writes into the logger.
func NewEventLogger(logger *log.Logger) *EventLogger {
	return &EventLogger{Logger: logger}
}

// Func writes the event information into the logger.
func (h *EventLogger) Func(ctx HookCtx) {
	if ctx.Pos != HookPosBeforeEvent {
		return
	}

	evt, ok := ctx.Item.(*ScheduledEvent)
	if !ok {
		return
	}

	if named, ok := evt.Handler.(Named); ok {
		h.Logger.Printf("%d, %s -> %s",
			evt.Time, reflect.TypeOf(evt.Event), named.Name())
		return
	}

	h.Logger.Printf("%d, %s", evt.Time, reflect.TypeOf(evt.Event))
}
