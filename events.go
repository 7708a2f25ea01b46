package backdrop

import (
	"github.com/maniartech/signals"
)

// StartedEvent is emitted once a background has been built and attached.
type StartedEvent struct {
	ContainerID string
	Objects     int
	Particles   int
	Edges       int
}

// FailedEvent is emitted when a background could not be started.
type FailedEvent struct {
	ContainerID string
	Err         error
}

// ThemeEvent announces a theme switch.
type ThemeEvent struct {
	Dark bool
}

// Events is the hub backgrounds and their host communicate through.
// Listeners run synchronously on the emitting goroutine.
type Events struct {
	Started      signals.Signal[StartedEvent]
	Failed       signals.Signal[FailedEvent]
	ThemeChanged signals.Signal[ThemeEvent]
}

// NewEvents creates an event hub with no listeners.
func NewEvents() *Events {
	return &Events{
		Started:      signals.NewSync[StartedEvent](),
		Failed:       signals.NewSync[FailedEvent](),
		ThemeChanged: signals.NewSync[ThemeEvent](),
	}
}
