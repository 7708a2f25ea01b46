package backdrop

import (
	"context"
	"errors"

	"github.com/hajimehoshi/ebiten/v2"
)

// StaticBackground is the fallback shown when the animated background
// cannot start: a fixed vertical gradient in the theme's colors.
type StaticBackground struct {
	Top, Bottom Color

	ctx     context.Context
	width   int
	height  int
	verts   [4]ebiten.Vertex
	inds    [6]uint16
	stopped bool
}

// NewStaticBackground creates the fallback for the given theme. It runs
// until ctx is done or Stop is called.
func NewStaticBackground(ctx context.Context, dark bool) *StaticBackground {
	if ctx == nil {
		ctx = context.Background()
	}
	s := &StaticBackground{ctx: ctx, inds: [6]uint16{0, 1, 2, 0, 2, 3}}
	if dark {
		s.Top, s.Bottom = darkClear, Hex(0x1a0b33)
	} else {
		s.Top, s.Bottom = lightClear, Hex(0xc7e6f5)
	}
	return s
}

// Stop makes the next Update end the game.
func (s *StaticBackground) Stop() { s.stopped = true }

// Update implements ebiten.Game.
func (s *StaticBackground) Update() error {
	if s.stopped || s.ctx.Err() != nil {
		return ebiten.Termination
	}
	return nil
}

// Draw implements ebiten.Game.
func (s *StaticBackground) Draw(screen *ebiten.Image) {
	w, h := float32(s.width), float32(s.height)
	corners := [4][2]float32{{0, 0}, {w, 0}, {w, h}, {0, h}}
	for i, c := range corners {
		col := s.Top
		if i >= 2 {
			col = s.Bottom
		}
		s.verts[i] = ebiten.Vertex{
			DstX: c[0], DstY: c[1],
			SrcX: 0.5, SrcY: 0.5,
			ColorR: float32(col.R), ColorG: float32(col.G), ColorB: float32(col.B), ColorA: 1,
		}
	}
	screen.DrawTriangles(s.verts[:], s.inds[:], ensureWhitePixel(), nil)
}

// Layout implements ebiten.Game.
func (s *StaticBackground) Layout(outsideWidth, outsideHeight int) (int, int) {
	s.width, s.height = outsideWidth, outsideHeight
	return outsideWidth, outsideHeight
}

// RunStatic opens a window showing the static fallback until ctx is done
// or the window closes.
func RunStatic(ctx context.Context, dark bool, cfg RunConfig) error {
	if cfg.Title != "" {
		ebiten.SetWindowTitle(cfg.Title)
	}
	if cfg.Width > 0 && cfg.Height > 0 {
		ebiten.SetWindowSize(cfg.Width, cfg.Height)
	}
	if err := ebiten.RunGame(NewStaticBackground(ctx, dark)); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}
