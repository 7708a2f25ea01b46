package backdrop

import (
	"errors"
	"math"
	"testing"
	"time"
)

func TestAnimationTime(t *testing.T) {
	assertNear(t, "1s", animationTime(time.Second), 0.5)
	assertNear(t, "0", animationTime(0), 0)
	assertNear(t, "250ms", animationTime(250*time.Millisecond), 0.125)
}

func TestObjectUpdateRotation(t *testing.T) {
	o := &VisualObject{Scale: 1, Motion: Motion{RotationSpeed: Vec3{0.01, 0.02, 0.03}}}
	o.update(0, 0)
	assertVec(t, "rotation", o.Rotation, Vec3{0.01, 0.02, 0.03})

	o.update(1, -1)
	// Pointer x nudges Y rotation, pointer y nudges X rotation.
	assertVec(t, "nudged rotation", o.Rotation, Vec3{0.02 - 0.001, 0.04 + 0.001, 0.06})
}

func TestObjectUpdateDriftReverses(t *testing.T) {
	o := &VisualObject{
		Position: Vec3{14.99, -14.99, 0},
		Motion:   Motion{Drift: Vec3{0.02, -0.02, 0.01}},
	}
	o.update(0, 0)
	if o.Motion.Drift.X != -0.02 {
		t.Errorf("drift X = %v, want -0.02 after crossing +15", o.Motion.Drift.X)
	}
	if o.Motion.Drift.Y != 0.02 {
		t.Errorf("drift Y = %v, want 0.02 after crossing -15", o.Motion.Drift.Y)
	}
	if o.Motion.Drift.Z != 0.01 {
		t.Errorf("drift Z = %v, want unchanged 0.01", o.Motion.Drift.Z)
	}
	o.update(0, 0)
	assertNear(t, "X after bounce", o.Position.X, 14.99)
}

func TestObjectDriftStaysBounded(t *testing.T) {
	o := &VisualObject{Motion: Motion{Drift: Vec3{0.3, -0.25, 0.2}}}
	for frame := range 5000 {
		o.update(0, 0)
		for axis := 0; axis < 3; axis++ {
			v := math.Abs(o.Position.Axis(axis))
			if v > DriftBound+0.3+1e-9 {
				t.Fatalf("frame %d axis %d: |p| = %v", frame, axis, v)
			}
		}
	}
}

func TestObjectOrbitKeepsRadius(t *testing.T) {
	o := &VisualObject{
		Position: Vec3{7, 0, 0},
		Motion: Motion{
			Drift: Vec3{0.0025, 0.001, -0.002},
			Orbit: &Orbit{Radius: 7, Speed: 0.01},
		},
	}
	for frame := range 1000 {
		o.update(0, 0)
		r := math.Hypot(o.Position.X, o.Position.Z)
		if !approxEqual(r, 7, 1e-9) {
			t.Fatalf("frame %d: orbit radius = %v, want 7", frame, r)
		}
	}
	assertNear(t, "theta", o.Motion.Orbit.Theta, 10)
}

func TestFrameAdvancesCounts(t *testing.T) {
	bg, _, clock := newTestBackground(t)
	objects := len(bg.Scene().Objects)
	particles := bg.Scene().ParticleCount()
	for range 100 {
		clock.advance(16 * time.Millisecond)
		if err := bg.Frame(); err != nil {
			t.Fatalf("Frame: %v", err)
		}
	}
	if bg.Frames() != 100 {
		t.Errorf("Frames = %d, want 100", bg.Frames())
	}
	if got := bg.Surface().(*fakeSurface).renders; got != 100 {
		t.Errorf("renders = %d, want 100", got)
	}
	if len(bg.Scene().Objects) != objects || bg.Scene().ParticleCount() != particles {
		t.Errorf("counts changed: objects %d->%d particles %d->%d",
			objects, len(bg.Scene().Objects), particles, bg.Scene().ParticleCount())
	}
}

func TestFrameEasesPointerAndCamera(t *testing.T) {
	bg, _, _ := newTestBackground(t)
	bg.PointerMoved(800, 0) // top-right corner
	if err := bg.Frame(); err != nil {
		t.Fatal(err)
	}
	p := bg.Pointer()
	assertNear(t, "pointer x", p.X, 0.1)
	assertNear(t, "pointer y", p.Y, 0.1)
	// Camera moves 1% of the way towards pointer*1.5.
	assertNear(t, "camera x", bg.Camera().Position.X, 0.1*1.5*0.01)

	for range 2000 {
		if err := bg.Frame(); err != nil {
			t.Fatal(err)
		}
	}
	cam := bg.Camera().Position
	if !approxEqual(cam.X, 1.5, 1e-3) || !approxEqual(cam.Y, 1.5, 1e-3) {
		t.Errorf("camera = %v, want x,y near 1.5", cam)
	}
}

func TestFrameRefreshesEdges(t *testing.T) {
	host := newFakeHost(800, 600, DefaultContainerID)
	opts := testOptions(newFakeClock())
	opts.Variant = VariantNetwork
	bg, err := Initialize(host, opts)
	if err != nil {
		t.Fatal(err)
	}
	if len(bg.Scene().Edges) == 0 {
		t.Skip("seed produced no edges")
	}
	for range 10 {
		if err := bg.Frame(); err != nil {
			t.Fatal(err)
		}
	}
	for i, e := range bg.Scene().Edges {
		if e.From != e.A.Position || e.To != e.B.Position {
			t.Errorf("edge %d endpoints %v-%v, want %v-%v", i, e.From, e.To, e.A.Position, e.B.Position)
		}
	}
}

func TestFrameRenderError(t *testing.T) {
	bg, _, _ := newTestBackground(t)
	boom := errors.New("boom")
	bg.Surface().(*fakeSurface).err = boom
	if err := bg.Frame(); !errors.Is(err, boom) {
		t.Errorf("Frame = %v, want wrapping %v", err, boom)
	}
}

func TestFrameIntroDolly(t *testing.T) {
	host := newFakeHost(800, 600, DefaultContainerID)
	clock := newFakeClock()
	opts := testOptions(clock)
	opts.Intro = true
	bg, err := Initialize(host, opts)
	if err != nil {
		t.Fatal(err)
	}
	if bg.Camera().Position.Z != introZ {
		t.Fatalf("start Z = %v, want %v", bg.Camera().Position.Z, float64(introZ))
	}
	for range 150 {
		clock.advance(16 * time.Millisecond)
		if err := bg.Frame(); err != nil {
			t.Fatal(err)
		}
	}
	if bg.Camera().Dollying() {
		t.Error("still dollying after 2.4s")
	}
	if !approxEqual(bg.Camera().Position.Z, cameraZ, 1e-4) {
		t.Errorf("Z = %v, want %v", bg.Camera().Position.Z, float64(cameraZ))
	}
}
