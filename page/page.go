// Package page models the host document a background lives in: named
// containers, body and root classes, loading indicators and the viewport.
// It also coordinates start-up of the page's components.
package page

import (
	"slices"
	"sync"

	"github.com/ErikKalkoken/go-set"

	"github.com/phanxgames/backdrop"
)

// Well-known class names.
const (
	ClassFullyLoaded      = "fully-loaded"
	ClassStaticBackground = "static-background"
	ClassDarkTheme        = "dark-theme"
)

// Page is a host document. It is safe for concurrent use.
type Page struct {
	events *backdrop.Events

	mu             sync.Mutex
	width, height  int
	containers     map[string]*Container
	body           set.Set[string]
	root           set.Set[string]
	loadingVisible bool
}

var _ backdrop.Host = (*Page)(nil)

// New returns an empty page with the given viewport. Loading indicators
// start visible.
func New(width, height int) *Page {
	return &Page{
		events:         backdrop.NewEvents(),
		width:          width,
		height:         height,
		containers:     make(map[string]*Container),
		loadingVisible: true,
	}
}

// AddContainer adds a container with the given id and returns it. Adding an
// existing id returns the existing container.
func (p *Page) AddContainer(id string) *Container {
	p.mu.Lock()
	defer p.mu.Unlock()
	if c, ok := p.containers[id]; ok {
		return c
	}
	c := &Container{id: id}
	p.containers[id] = c
	return c
}

// Container implements backdrop.Host.
func (p *Page) Container(id string) (backdrop.Container, bool) {
	c, ok := p.lookup(id)
	if !ok {
		return nil, false
	}
	return c, true
}

// lookup returns the concrete container with the given id.
func (p *Page) lookup(id string) (*Container, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	c, ok := p.containers[id]
	return c, ok
}

// Viewport implements backdrop.Host.
func (p *Page) Viewport() (int, int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.width, p.height
}

// SetViewport changes the viewport size.
func (p *Page) SetViewport(width, height int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.width, p.height = width, height
}

// Events implements backdrop.Host.
func (p *Page) Events() *backdrop.Events {
	return p.events
}

// AddBodyClass adds a class to the body.
func (p *Page) AddBodyClass(class string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.body.Add(class)
}

// HasBodyClass reports whether the body has class.
func (p *Page) HasBodyClass(class string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.body.Contains(class)
}

// BodyClasses returns the body classes in sorted order.
func (p *Page) BodyClasses() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return slices.Sorted(p.body.All())
}

// setRootClass adds or removes a class on the root element.
func (p *Page) setRootClass(class string, on bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if on {
		p.root.Add(class)
	} else {
		p.root.Delete(class)
	}
}

// HasRootClass reports whether the root element has class.
func (p *Page) HasRootClass(class string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.root.Contains(class)
}

// Dark reports whether the dark theme is active.
func (p *Page) Dark() bool {
	return p.HasRootClass(ClassDarkTheme)
}

// LoadingVisible reports whether loading indicators are shown.
func (p *Page) LoadingVisible() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.loadingVisible
}

// HideLoading hides all loading indicators.
func (p *Page) HideLoading() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.loadingVisible = false
}
