package page

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/ErikKalkoken/go-set"

	"github.com/phanxgames/backdrop"
)

// Component names tracked by default.
const (
	ComponentBackground  = "background"
	ComponentTimer       = "timer"
	ComponentLeaderboard = "leaderboard"
)

// Default timeouts.
const (
	DefaultWatchdogTimeout = 2 * time.Second
	DefaultLoadingTimeout  = 3 * time.Second
)

// ErrWatchdog is the error carried by the Failed event the watchdog emits.
var ErrWatchdog = errors.New("page: background did not start in time")

// Config configures a Bootstrap.
type Config struct {
	// Components lists the components that must report ready before the
	// page counts as fully loaded. Defaults to background, timer and
	// leaderboard.
	Components []string
	// ContainerID is the background container the watchdog inspects.
	// Defaults to backdrop.DefaultContainerID.
	ContainerID string
	// WatchdogTimeout defaults to DefaultWatchdogTimeout.
	WatchdogTimeout time.Duration
	// LoadingTimeout defaults to DefaultLoadingTimeout.
	LoadingTimeout time.Duration
	// Dark is the initial theme.
	Dark bool
	// Logger defaults to slog.Default.
	Logger *slog.Logger
}

// Bootstrap coordinates the start-up of a page: it tracks which components
// are ready, falls back to a static background when the animated one does
// not start, and owns the theme.
type Bootstrap struct {
	page *Page
	cfg  Config
	log  *slog.Logger
	key  string

	mu       sync.Mutex
	expected set.Set[string]
	ready    set.Set[string]
	outcome  bool
	complete bool
	timers   []*time.Timer
	closed   bool
}

var bootstrapSeq atomic.Uint64

// NewBootstrap starts coordinating p. The watchdog and loading fallback
// timers start immediately; call Close to stop them.
func NewBootstrap(p *Page, cfg Config) *Bootstrap {
	if len(cfg.Components) == 0 {
		cfg.Components = []string{ComponentBackground, ComponentTimer, ComponentLeaderboard}
	}
	if cfg.ContainerID == "" {
		cfg.ContainerID = backdrop.DefaultContainerID
	}
	if cfg.WatchdogTimeout <= 0 {
		cfg.WatchdogTimeout = DefaultWatchdogTimeout
	}
	if cfg.LoadingTimeout <= 0 {
		cfg.LoadingTimeout = DefaultLoadingTimeout
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	b := &Bootstrap{
		page:     p,
		cfg:      cfg,
		log:      cfg.Logger,
		expected: set.Of(cfg.Components...),
		key:      fmt.Sprintf("page:bootstrap:%d", bootstrapSeq.Add(1)),
	}
	p.setRootClass(ClassDarkTheme, cfg.Dark)

	ev := p.Events()
	b.listen("started", ev.Started.AddListener(func(_ context.Context, e backdrop.StartedEvent) {
		if e.ContainerID != b.cfg.ContainerID {
			return
		}
		if !b.claimOutcome() {
			b.log.Info("background started after the static fallback; ignoring", "container", e.ContainerID)
			return
		}
		b.Ready(ComponentBackground)
	}, b.key))
	b.listen("failed", ev.Failed.AddListener(func(_ context.Context, e backdrop.FailedEvent) {
		if e.ContainerID != b.cfg.ContainerID {
			return
		}
		b.claimOutcome()
		b.log.Warn("background unavailable; using static background", "container", e.ContainerID, "error", e.Err)
		p.AddBodyClass(ClassStaticBackground)
	}, b.key))
	b.listen("theme", ev.ThemeChanged.AddListener(func(_ context.Context, e backdrop.ThemeEvent) {
		p.setRootClass(ClassDarkTheme, e.Dark)
	}, b.key))

	b.timers = append(b.timers,
		time.AfterFunc(cfg.WatchdogTimeout, b.watchdog),
		time.AfterFunc(cfg.LoadingTimeout, b.loadingFallback),
	)
	return b
}

// listen logs a listener that signals refused to register.
func (b *Bootstrap) listen(signal string, n int) {
	if n < 0 {
		b.log.Error("bootstrap listener not registered", "signal", signal, "key", b.key)
	}
}

// claimOutcome records that the background has started or failed. It
// reports whether this call was the first to do so.
func (b *Bootstrap) claimOutcome() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.outcome {
		return false
	}
	b.outcome = true
	return true
}

// Ready marks a component as loaded. Once every expected component is
// ready the loading indicators are hidden and the body gets the
// fully-loaded class.
func (b *Bootstrap) Ready(component string) {
	b.mu.Lock()
	if b.complete {
		b.mu.Unlock()
		return
	}
	b.ready.Add(component)
	for c := range b.expected.All() {
		if !b.ready.Contains(c) {
			b.mu.Unlock()
			return
		}
	}
	b.complete = true
	b.mu.Unlock()

	b.log.Info("all components loaded", "components", b.expected.Size())
	b.page.HideLoading()
	b.page.AddBodyClass(ClassFullyLoaded)
}

// Complete reports whether every expected component is ready.
func (b *Bootstrap) Complete() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.complete
}

// watchdog fails the background when its container is still empty and no
// outcome has been reported.
func (b *Bootstrap) watchdog() {
	c, ok := b.page.lookup(b.cfg.ContainerID)
	if !ok || !c.Empty() {
		return
	}
	b.mu.Lock()
	fire := !b.closed && !b.outcome
	b.outcome = true
	b.mu.Unlock()
	if !fire {
		return
	}
	b.log.Warn("background failed to initialize within timeout", "container", b.cfg.ContainerID, "timeout", b.cfg.WatchdogTimeout)
	b.page.Events().Failed.Emit(context.Background(), backdrop.FailedEvent{
		ContainerID: b.cfg.ContainerID,
		Err:         ErrWatchdog,
	})
	b.page.AddBodyClass(ClassStaticBackground)
}

// loadingFallback hides the loading indicators regardless of progress.
func (b *Bootstrap) loadingFallback() {
	b.mu.Lock()
	closed := b.closed
	b.mu.Unlock()
	if closed {
		return
	}
	b.page.HideLoading()
}

// SetDarkMode switches the theme and notifies every background. It must be
// called from the goroutine that drives the backgrounds.
func (b *Bootstrap) SetDarkMode(dark bool) {
	b.page.Events().ThemeChanged.Emit(context.Background(), backdrop.ThemeEvent{Dark: dark})
}

// ToggleTheme flips the theme and returns the new state.
func (b *Bootstrap) ToggleTheme() bool {
	dark := !b.page.Dark()
	b.SetDarkMode(dark)
	return dark
}

// Close stops the timers and detaches the bootstrap's listeners.
func (b *Bootstrap) Close() {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return
	}
	b.closed = true
	timers := b.timers
	b.timers = nil
	b.mu.Unlock()

	for _, t := range timers {
		t.Stop()
	}
	ev := b.page.Events()
	ev.Started.RemoveListener(b.key)
	ev.Failed.RemoveListener(b.key)
	ev.ThemeChanged.RemoveListener(b.key)
}
