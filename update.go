package backdrop

import (
	"fmt"
	"math"
	"time"
)

// Per-frame tuning.
const (
	cameraParallax = 1.5   // camera target offset per unit of pointer
	cameraLerp     = 0.01  // fraction of the remaining offset covered per frame
	pointerNudge   = 0.001 // extra rotation per unit of pointer
	timeScale      = 0.0005
)

// animationTime converts elapsed time into the wave phase scalar used by
// particles.
func animationTime(elapsed time.Duration) float64 {
	return float64(elapsed) / float64(time.Millisecond) * timeScale
}

// update advances one object by one frame given the eased pointer.
func (o *VisualObject) update(px, py float64) {
	m := &o.Motion

	o.Rotation = o.Rotation.Add(m.RotationSpeed)
	o.Rotation.X += py * pointerNudge
	o.Rotation.Y += px * pointerNudge

	o.Position = o.Position.Add(m.Drift)
	for axis := 0; axis < 3; axis++ {
		if math.Abs(o.Position.Axis(axis)) > DriftBound {
			m.Drift.SetAxis(axis, -m.Drift.Axis(axis))
		}
	}

	if o.orbiting() {
		orb := m.Orbit
		orb.Theta += orb.Speed
		o.Position.X = orb.Radius * math.Cos(orb.Theta)
		o.Position.Z = orb.Radius * math.Sin(orb.Theta)
	}
}

// Frame advances the animation by one step and renders it. It returns
// ErrStopped once Stop has been called.
func (b *Background) Frame() error {
	if b.stopped {
		return ErrStopped
	}

	now := b.now()
	dt := now.Sub(b.lastFrame)
	b.lastFrame = now

	b.pointer.Update()
	px, py := b.pointer.Position()

	b.camera.Drift(px*cameraParallax, py*cameraParallax, cameraLerp)
	b.camera.update(float32(dt.Seconds()))
	b.camera.LookAt(Vec3{})

	for _, o := range b.scene.Objects {
		o.update(px, py)
	}

	t := animationTime(now.Sub(b.started))
	for _, ps := range b.scene.Particles {
		ps.update(t, px, py, b.rng)
	}

	for _, e := range b.scene.Edges {
		e.refresh()
	}

	start := time.Now()
	if err := b.surface.Render(b.scene, b.camera); err != nil {
		return fmt.Errorf("render frame %d: %w", b.frames, err)
	}
	b.stats.record(time.Since(start))
	b.frames++
	if b.stats.due(b.frames) {
		b.logStats()
	}
	return nil
}
