package backdrop

// DefaultEasing is the fraction of the remaining distance the eased pointer
// covers each frame.
const DefaultEasing = 0.1

// PointerState is the pointer in normalized device coordinates: X and Y
// are eased, TargetX and TargetY are the raw values last reported.
// All four lie in [-1, 1].
type PointerState struct {
	X, Y             float64
	TargetX, TargetY float64
}

// PointerTracker maintains an eased pointer position for parallax effects.
// Moves only record the target; easing happens once per frame in Update.
type PointerTracker struct {
	state  PointerState
	easing float64
}

// NewPointerTracker creates a tracker at the origin. Easing outside (0, 1]
// falls back to DefaultEasing.
func NewPointerTracker(easing float64) *PointerTracker {
	if easing <= 0 || easing > 1 {
		easing = DefaultEasing
	}
	return &PointerTracker{easing: easing}
}

// Easing returns the per-frame easing factor.
func (p *PointerTracker) Easing() float64 {
	return p.easing
}

// Move records a raw pointer position given in screen pixels for a
// viewport of width x height. Zero-sized viewports are ignored.
func (p *PointerTracker) Move(screenX, screenY float64, width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	nx := screenX/float64(width)*2 - 1
	ny := -(screenY/float64(height))*2 + 1
	p.SetTarget(nx, ny)
}

// SetTarget records a raw target already in normalized device coordinates.
// Values are clamped to [-1, 1].
func (p *PointerTracker) SetTarget(nx, ny float64) {
	p.state.TargetX = clampUnit(nx)
	p.state.TargetY = clampUnit(ny)
}

// Update moves the eased position the easing fraction of the remaining
// distance towards the target.
func (p *PointerTracker) Update() {
	p.state.X += (p.state.TargetX - p.state.X) * p.easing
	p.state.Y += (p.state.TargetY - p.state.Y) * p.easing
}

// Position returns the eased pointer position.
func (p *PointerTracker) Position() (x, y float64) {
	return p.state.X, p.state.Y
}

// State returns a copy of the full pointer state.
func (p *PointerTracker) State() PointerState {
	return p.state
}

func clampUnit(v float64) float64 {
	if v < -1 {
		return -1
	}
	if v > 1 {
		return 1
	}
	return v
}
