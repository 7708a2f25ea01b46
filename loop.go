package backdrop

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/hajimehoshi/ebiten/v2"
)

// RunConfig holds optional settings for Run.
type RunConfig struct {
	// Title sets the window title.
	Title string
	// Width and Height set the initial window size in pixels.
	Width, Height int
	// TPS sets the frame rate. Zero keeps the ebiten default of 60.
	TPS int
	// ShowFPS overlays an FPS counter.
	ShowFPS bool
	// Resizable lets the user resize the window.
	Resizable bool
	// ScreenshotDir is where Screenshot writes PNG files.
	ScreenshotDir string
	// TestRunner, when set, drives scripted input and screenshots.
	TestRunner *TestRunner
}

// DefaultScreenshotDir is used when RunConfig.ScreenshotDir is empty.
const DefaultScreenshotDir = "screenshots"

// Loop drives a Background as an ebiten.Game: one Frame per Update.
type Loop struct {
	bg  *Background
	ctx context.Context
	log *slog.Logger

	input       inputSource
	lastX       int
	lastY       int
	havePointer bool
	injectQueue []syntheticPointerEvent

	runner *TestRunner

	// ScreenshotDir is where Screenshot writes PNG files.
	ScreenshotDir   string
	screenshotQueue []string

	fps *fpsWidget

	width, height int
	forced        bool
	stopped       bool
}

// NewLoop creates a loop for bg. The loop ends when ctx is done, when Stop
// is called, or when bg is stopped.
func NewLoop(ctx context.Context, bg *Background, cfg RunConfig) *Loop {
	if ctx == nil {
		ctx = context.Background()
	}
	l := &Loop{
		bg:            bg,
		ctx:           ctx,
		log:           bg.log,
		input:         &ebitenInput{},
		runner:        cfg.TestRunner,
		ScreenshotDir: cfg.ScreenshotDir,
	}
	if l.ScreenshotDir == "" {
		l.ScreenshotDir = DefaultScreenshotDir
	}
	if cfg.ShowFPS {
		l.fps = newFPSWidget()
	}
	if s := bg.Surface(); s != nil {
		l.width, l.height = s.Size()
	}
	return l
}

// Stop makes the next Update end the game.
func (l *Loop) Stop() {
	l.stopped = true
}

// Background returns the background driven by the loop.
func (l *Loop) Background() *Background {
	return l.bg
}

// Update implements ebiten.Game.
func (l *Loop) Update() error {
	if l.stopped || l.ctx.Err() != nil {
		return ebiten.Termination
	}
	if l.runner != nil {
		l.runner.step(l)
	}
	if !l.processInjectedInput() {
		l.processInput()
	}
	if err := l.bg.Frame(); err != nil {
		if errors.Is(err, ErrStopped) {
			return ebiten.Termination
		}
		return err
	}
	if l.fps != nil {
		l.fps.update(1 / float64(ebiten.TPS()))
	}
	return nil
}

// Draw implements ebiten.Game.
func (l *Loop) Draw(screen *ebiten.Image) {
	scene := l.bg.Scene()
	screen.Fill(scene.Background.toRGBA())
	if src, ok := l.bg.Surface().(interface{ Image() *ebiten.Image }); ok {
		if img := src.Image(); img != nil {
			screen.DrawImage(img, nil)
		}
	}
	if l.fps != nil {
		l.fps.draw(screen)
	}
	l.flushScreenshots(screen)
}

// Layout implements ebiten.Game. A change of the outside size resizes the
// background.
func (l *Loop) Layout(outsideWidth, outsideHeight int) (int, int) {
	if l.forced {
		return l.width, l.height
	}
	if outsideWidth != l.width || outsideHeight != l.height {
		l.resize(outsideWidth, outsideHeight)
	}
	return l.width, l.height
}

func (l *Loop) resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	l.width, l.height = width, height
	l.bg.Resize(width, height)
}

// forceSize pins the logical screen size regardless of the window size.
func (l *Loop) forceSize(width, height int) {
	l.forced = true
	l.resize(width, height)
}

// Run opens a window and drives bg until the window closes, ctx is done or
// bg is stopped. A normal end returns nil.
func Run(ctx context.Context, bg *Background, cfg RunConfig) error {
	if cfg.Title != "" {
		ebiten.SetWindowTitle(cfg.Title)
	}
	if cfg.Width > 0 && cfg.Height > 0 {
		ebiten.SetWindowSize(cfg.Width, cfg.Height)
		bg.Resize(cfg.Width, cfg.Height)
	}
	if cfg.TPS > 0 {
		ebiten.SetTPS(cfg.TPS)
	}
	if cfg.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}

	l := NewLoop(ctx, bg, cfg)
	err := ebiten.RunGame(l)
	bg.Stop()
	if err != nil && !errors.Is(err, ebiten.Termination) {
		return fmt.Errorf("run background: %w", err)
	}
	return nil
}
