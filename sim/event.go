package sim

// VTimeInCycle is the simulated time measured in global clock cycles.
type VTimeInCycle uint64

// Handler processes events of various types.
//
// Events are plain data. Handlers use a type switch to tell them apart:
//
//	func (h *MyHandler) Handle(event any) error {
//	    switch e := event.(type) {
//	    case *MyEvent:
//	        // handle MyEvent
//	    default:
//	        return fmt.Errorf("unknown event type: %T", e)
//	    }
//	    return nil
//	}
type Handler interface {
	Handle(event any) error
}

// TimeTeller can be used to get the current time.
type TimeTeller interface {
	CurrentTime() VTimeInCycle
}

// EventScheduler can be used to schedule future events.
type EventScheduler interface {
	TimeTeller
	Schedule(evt ScheduledEvent)
}

// ScheduledEvent is the engine-facing wrapper of a user-defined event. The
// payload stays plain data; the wrapper carries the firing time and the
// handler.
type ScheduledEvent struct {
	// Event is the payload delivered to the handler. Typically a pointer.
	Event any

	// Time is the cycle when the event should be processed.
	Time VTimeInCycle

	// Handler is the component that processes the event. Components may only
	// schedule events for themselves.
	Handler Handler

	// IsSecondary marks events that run after all same-cycle primary events.
	IsSecondary bool
}
