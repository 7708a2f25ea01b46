package backdrop

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingCapability reports that the platform cannot create a
	// drawing surface.
	ErrMissingCapability = errors.New("backdrop: rendering capability unavailable")
	// ErrMissingContainer reports that the named container does not exist.
	ErrMissingContainer = errors.New("backdrop: container not found")
	// ErrContainerInUse reports that a background is already attached to
	// the named container.
	ErrContainerInUse = errors.New("backdrop: container already hosts a background")
	// ErrStopped is returned by Frame after Stop.
	ErrStopped = errors.New("backdrop: background stopped")
)

// ConstructionError wraps an unexpected failure while building a
// background. Stage names the step that failed.
type ConstructionError struct {
	Stage string
	Err   error
}

func (e *ConstructionError) Error() string {
	return fmt.Sprintf("backdrop: construction failed at %s: %v", e.Stage, e.Err)
}

func (e *ConstructionError) Unwrap() error { return e.Err }

// Surface is a drawable output sized to the viewport.
type Surface interface {
	// Resize sets the drawable size in pixels.
	Resize(width, height int)
	// Size returns the drawable size in pixels.
	Size() (width, height int)
	// Render draws scene as seen through cam.
	Render(scene *Scene, cam *Camera) error
}

// SurfaceFactory creates a surface for a viewport. It returns
// ErrMissingCapability when the platform cannot draw.
type SurfaceFactory func(width, height int) (Surface, error)

// Container is a named host region that a surface attaches to.
type Container interface {
	ID() string
	// Attach places s in the container. It fails with ErrContainerInUse
	// when another surface is already attached.
	Attach(s Surface) error
	// Detach removes s if it is the attached surface.
	Detach(s Surface)
}

// Host is the environment a background lives in.
type Host interface {
	// Container looks up a container by id.
	Container(id string) (Container, bool)
	// Viewport returns the current viewport size in pixels.
	Viewport() (width, height int)
	// Events returns the host's event hub.
	Events() *Events
}
