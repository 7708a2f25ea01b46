package backdrop

// syntheticPointerEvent is a single injected pointer position in screen
// pixels, matching what a screenshot shows.
type syntheticPointerEvent struct {
	screenX, screenY float64
}

// InjectPointer queues a pointer move to (x, y). The event is consumed on the
// next frame in place of real input.
func (l *Loop) InjectPointer(x, y float64) {
	l.injectQueue = append(l.injectQueue, syntheticPointerEvent{screenX: x, screenY: y})
}

// InjectSweep queues a pointer path from (fromX, fromY) to (toX, toY)
// linearly interpolated over frames frames. Minimum frames is 2.
func (l *Loop) InjectSweep(fromX, fromY, toX, toY float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	for i := 0; i < frames; i++ {
		t := float64(i) / float64(frames-1)
		l.InjectPointer(fromX+(toX-fromX)*t, fromY+(toY-fromY)*t)
	}
}

// processInjectedInput pops one event from the inject queue and feeds it to
// the background. Returns true if an event was consumed.
func (l *Loop) processInjectedInput() bool {
	if len(l.injectQueue) == 0 {
		return false
	}
	evt := l.injectQueue[0]
	copy(l.injectQueue, l.injectQueue[1:])
	l.injectQueue = l.injectQueue[:len(l.injectQueue)-1]

	l.bg.PointerMoved(evt.screenX, evt.screenY)
	return true
}
