package backdrop

import (
	"context"
	"io"
	"log/slog"
	"math"
	"testing"
	"time"
)

const epsilon = 1e-9

func approxEqual(a, b, eps float64) bool {
	return math.Abs(a-b) < eps
}

func assertNear(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > epsilon {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// --- fakes ---

type fakeSurface struct {
	width, height int
	renders       int
	err           error
}

func (f *fakeSurface) Resize(w, h int)  { f.width, f.height = w, h }
func (f *fakeSurface) Size() (int, int) { return f.width, f.height }
func (f *fakeSurface) Render(*Scene, *Camera) error {
	if f.err != nil {
		return f.err
	}
	f.renders++
	return nil
}

type fakeContainer struct {
	id      string
	surface Surface
}

func (c *fakeContainer) ID() string { return c.id }

func (c *fakeContainer) Attach(s Surface) error {
	if c.surface != nil {
		return ErrContainerInUse
	}
	c.surface = s
	return nil
}

func (c *fakeContainer) Detach(s Surface) {
	if c.surface == s {
		c.surface = nil
	}
}

type fakeHost struct {
	width, height int
	containers    map[string]*fakeContainer
	events        *Events

	started []StartedEvent
	failed  []FailedEvent
}

func newFakeHost(width, height int, ids ...string) *fakeHost {
	h := &fakeHost{
		width:      width,
		height:     height,
		containers: make(map[string]*fakeContainer),
		events:     NewEvents(),
	}
	for _, id := range ids {
		h.containers[id] = &fakeContainer{id: id}
	}
	h.events.Started.AddListener(func(_ context.Context, e StartedEvent) {
		h.started = append(h.started, e)
	})
	h.events.Failed.AddListener(func(_ context.Context, e FailedEvent) {
		h.failed = append(h.failed, e)
	})
	return h
}

func (h *fakeHost) Container(id string) (Container, bool) {
	c, ok := h.containers[id]
	if !ok {
		return nil, false
	}
	return c, true
}

func (h *fakeHost) Viewport() (int, int) { return h.width, h.height }
func (h *fakeHost) Events() *Events      { return h.events }

type fakeClock struct {
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2025, 5, 14, 20, 30, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) advance(d time.Duration) { c.now = c.now.Add(d) }

// testOptions returns options building into the default container with a
// fake surface and a fake clock.
func testOptions(clock *fakeClock) Options {
	return Options{
		Seed: 42,
		NewSurface: func(w, h int) (Surface, error) {
			return &fakeSurface{width: w, height: h}, nil
		},
		Now:    clock.Now,
		Logger: discardLogger(),
	}
}

// newTestBackground builds a background on a fresh 800x600 host.
func newTestBackground(t *testing.T) (*Background, *fakeHost, *fakeClock) {
	t.Helper()
	host := newFakeHost(800, 600, DefaultContainerID)
	clock := newFakeClock()
	bg, err := Initialize(host, testOptions(clock))
	if err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	return bg, host, clock
}

type fakeInput struct {
	x, y int
	ok   bool
}

func (f *fakeInput) Pointer() (int, int, bool) { return f.x, f.y, f.ok }
