package motion

// EventSink is the interface for optional lifecycle event forwarding. When set
// on a Scheduler, every controller it drives reports its transitions.
type EventSink interface {
	EmitEvent(event Event)
}

// EventType identifies a controller lifecycle transition.
type EventType uint8

const (
	EventStart     EventType = iota // Start was called (not on silent resume)
	EventPause                      // a running controller was paused
	EventResume                     // a paused controller resumed
	EventStop                       // an active controller was stopped
	EventComplete                   // the controller resolved
	EventReset                      // Reset was called (not silent)
	EventOverwrite                  // a tween displaced another on the same target
)

var eventTypeNames = [...]string{"start", "pause", "resume", "stop", "complete", "reset", "overwrite"}

// String returns the lowercase event name.
func (e EventType) String() string {
	if int(e) < len(eventTypeNames) {
		return eventTypeNames[e]
	}
	return "unknown"
}

// Event carries one lifecycle transition.
type Event struct {
	Type       EventType
	Name       string // Config.Name of the controller, may be empty
	Controller *Controller
}
