package backdrop

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/tanema/gween/ease"
)

// DefaultContainerID is the container a background attaches to when
// Options.ContainerID is empty.
const DefaultContainerID = "bg-canvas-container"

// Camera setup.
const (
	cameraFOV   = 70
	cameraNear  = 0.1
	cameraFar   = 1000
	cameraZ     = 5
	introZ      = 15
	introLength = 2 // seconds
)

// Options configures Initialize. The zero value builds the code variant in
// the default container with a random seed.
type Options struct {
	ContainerID string
	Variant     Variant
	// Seed seeds the generators. Zero picks a random seed.
	Seed uint64
	// Light starts the scene in the light theme.
	Light bool
	// Intro dollies the camera in from a distance over the first frames.
	Intro bool
	// PointerEasing is passed to NewPointerTracker.
	PointerEasing float64

	// NewSurface creates the drawing surface. Defaults to NewEbitenSurface.
	NewSurface SurfaceFactory
	// Now is the monotonic clock driving the animation. Defaults to time.Now.
	Now func() time.Time
	// Logger defaults to slog.Default.
	Logger *slog.Logger
}

func (o Options) withDefaults() Options {
	if o.ContainerID == "" {
		o.ContainerID = DefaultContainerID
	}
	if o.NewSurface == nil {
		o.NewSurface = NewEbitenSurface
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	if o.Seed == 0 {
		o.Seed = rand.Uint64()
	}
	return o
}

// Background is one running animated scene attached to a host container.
// All methods must be called from the goroutine driving Frame.
type Background struct {
	id        string
	seed      uint64
	host      Host
	container Container
	scene     *Scene
	camera    *Camera
	surface   Surface
	pointer   *PointerTracker
	rng       *rand.Rand
	log       *slog.Logger

	now       func() time.Time
	started   time.Time
	lastFrame time.Time
	frames    int
	stats     frameStats
	stopped   bool
}

// Initialize builds a background in the container named by opts and
// attaches its surface. On success Started is emitted on the host's events.
//
// A missing container is reported as ErrMissingContainer without an event.
// A container that already hosts a background is reported as
// ErrContainerInUse without an event. A platform that cannot draw is
// reported as ErrMissingCapability and emits Failed. Any other failure,
// including a panic, is returned as a *ConstructionError and emits Failed.
func Initialize(host Host, opts Options) (bg *Background, err error) {
	opts = opts.withDefaults()
	log := opts.Logger.With("container", opts.ContainerID)

	container, ok := host.Container(opts.ContainerID)
	if !ok {
		log.Debug("background container not found; skipping")
		return nil, fmt.Errorf("initialize %q: %w", opts.ContainerID, ErrMissingContainer)
	}

	b := &Background{
		id:        opts.ContainerID,
		seed:      opts.Seed,
		host:      host,
		container: container,
		pointer:   NewPointerTracker(opts.PointerEasing),
		rng:       rand.New(rand.NewPCG(opts.Seed, opts.Seed^0x9e3779b97f4a7c15)),
		log:       log,
		now:       opts.Now,
	}

	stage := "scene"
	defer func() {
		if r := recover(); r != nil {
			err = &ConstructionError{Stage: stage, Err: fmt.Errorf("panic: %v", r)}
		}
		if err == nil {
			return
		}
		b.teardown()
		bg = nil
		if errors.Is(err, ErrContainerInUse) {
			log.Warn("background container already in use")
			return
		}
		log.Error("background failed to start", "stage", stage, "error", err)
		host.Events().Failed.Emit(context.Background(), FailedEvent{ContainerID: b.id, Err: err})
	}()

	b.scene = NewScene()

	stage = "camera"
	w, h := host.Viewport()
	if w <= 0 || h <= 0 {
		return nil, &ConstructionError{Stage: stage, Err: fmt.Errorf("invalid viewport %dx%d", w, h)}
	}
	b.camera = NewCamera(cameraFOV, float64(w)/float64(h), cameraNear, cameraFar)
	b.camera.Position.Z = cameraZ
	if opts.Intro {
		b.camera.Position.Z = introZ
		b.camera.DollyTo(cameraZ, introLength, ease.OutCubic)
	}
	b.camera.LookAt(Vec3{})

	stage = "surface"
	surface, err := opts.NewSurface(w, h)
	if err != nil {
		if errors.Is(err, ErrMissingCapability) {
			return nil, err
		}
		return nil, &ConstructionError{Stage: stage, Err: err}
	}
	if err := container.Attach(surface); err != nil {
		if errors.Is(err, ErrContainerInUse) {
			return nil, fmt.Errorf("initialize %q: %w", b.id, err)
		}
		return nil, &ConstructionError{Stage: stage, Err: err}
	}
	b.surface = surface

	stage = "lights"
	b.scene.addDefaultLights()

	stage = "objects"
	populate(b.scene, opts.Variant, b.rng)
	applyTheme(b.scene, !opts.Light)
	for _, ps := range b.scene.Particles {
		if err := ps.Validate(); err != nil {
			return nil, &ConstructionError{Stage: stage, Err: err}
		}
	}

	stage = "events"
	host.Events().ThemeChanged.AddListener(func(_ context.Context, ev ThemeEvent) {
		b.SetDark(ev.Dark)
	}, b.listenerKey())

	b.started = b.now()
	b.lastFrame = b.started
	log.Info("background started",
		"variant", opts.Variant,
		"seed", opts.Seed,
		"objects", len(b.scene.Objects),
		"particles", b.scene.ParticleCount(),
		"edges", len(b.scene.Edges),
	)
	host.Events().Started.Emit(context.Background(), StartedEvent{
		ContainerID: b.id,
		Objects:     len(b.scene.Objects),
		Particles:   b.scene.ParticleCount(),
		Edges:       len(b.scene.Edges),
	})
	return b, nil
}

func (b *Background) listenerKey() string {
	return "backdrop:" + b.id
}

// teardown detaches the surface and frees scene resources.
func (b *Background) teardown() {
	if b.surface != nil {
		b.container.Detach(b.surface)
		b.surface = nil
	}
	if b.scene != nil {
		b.scene.release()
	}
}

// Resize adapts the camera and surface to a new viewport. Non-positive
// sizes are ignored.
func (b *Background) Resize(width, height int) {
	if b.stopped || width <= 0 || height <= 0 {
		return
	}
	b.camera.SetAspect(float64(width) / float64(height))
	b.surface.Resize(width, height)
}

// PointerMoved records a pointer position in surface pixels.
func (b *Background) PointerMoved(x, y float64) {
	if b.stopped {
		return
	}
	w, h := b.surface.Size()
	b.pointer.Move(x, y, w, h)
}

// SetDark switches between the dark and light theme.
func (b *Background) SetDark(dark bool) {
	if b.stopped || b.scene.Dark == dark {
		return
	}
	applyTheme(b.scene, dark)
	b.log.Debug("background theme changed", "dark", dark)
}

// Stop detaches the background from its container and releases its
// resources. Frame returns ErrStopped afterwards. Stop is idempotent.
func (b *Background) Stop() {
	if b.stopped {
		return
	}
	b.stopped = true
	b.host.Events().ThemeChanged.RemoveListener(b.listenerKey())
	b.teardown()
	b.log.Info("background stopped", "frames", b.frames)
}

// Stopped reports whether Stop has been called.
func (b *Background) Stopped() bool { return b.stopped }

// ContainerID returns the id of the container the background is attached to.
func (b *Background) ContainerID() string { return b.id }

// Seed returns the seed the generators were run with.
func (b *Background) Seed() uint64 { return b.seed }

// Scene returns the background's scene.
func (b *Background) Scene() *Scene { return b.scene }

// Camera returns the background's camera.
func (b *Background) Camera() *Camera { return b.camera }

// Surface returns the attached surface, or nil after Stop.
func (b *Background) Surface() Surface { return b.surface }

// Pointer returns the current pointer state.
func (b *Background) Pointer() PointerState { return b.pointer.State() }

// Frames returns how many frames have been rendered.
func (b *Background) Frames() int { return b.frames }
