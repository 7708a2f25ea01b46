package page

import (
	"sync"

	"github.com/phanxgames/backdrop"
)

// Container is a named region of the page holding at most one surface.
type Container struct {
	id string

	mu      sync.Mutex
	surface backdrop.Surface
}

var _ backdrop.Container = (*Container)(nil)

// ID implements backdrop.Container.
func (c *Container) ID() string { return c.id }

// Attach implements backdrop.Container.
func (c *Container) Attach(s backdrop.Surface) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.surface != nil {
		return backdrop.ErrContainerInUse
	}
	c.surface = s
	return nil
}

// Detach implements backdrop.Container.
func (c *Container) Detach(s backdrop.Surface) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.surface == s {
		c.surface = nil
	}
}

// Empty reports whether no surface is attached.
func (c *Container) Empty() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.surface == nil
}

// Surface returns the attached surface, or nil.
func (c *Container) Surface() backdrop.Surface {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.surface
}
