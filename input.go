package backdrop

import "github.com/hajimehoshi/ebiten/v2"

// inputSource reports the current pointer position in screen pixels. ok is
// false when no pointer is present.
type inputSource interface {
	Pointer() (x, y int, ok bool)
}

// ebitenInput reads the mouse cursor, preferring the first active touch.
type ebitenInput struct {
	touchIDs []ebiten.TouchID
}

func (in *ebitenInput) Pointer() (int, int, bool) {
	in.touchIDs = ebiten.AppendTouchIDs(in.touchIDs[:0])
	if len(in.touchIDs) > 0 {
		x, y := ebiten.TouchPosition(in.touchIDs[0])
		return x, y, true
	}
	x, y := ebiten.CursorPosition()
	return x, y, true
}

// processInput forwards the pointer to the background when it moved since
// the previous frame.
func (l *Loop) processInput() {
	x, y, ok := l.input.Pointer()
	if !ok {
		return
	}
	if l.havePointer && x == l.lastX && y == l.lastY {
		return
	}
	l.lastX, l.lastY = x, y
	l.havePointer = true
	l.bg.PointerMoved(float64(x), float64(y))
}
