package backdrop

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// dollyAnim holds an active tween of the camera's Z position.
type dollyAnim struct {
	tween *gween.Tween
}

// Camera is a perspective viewpoint looking at Target.
type Camera struct {
	// FOV is the vertical field of view in degrees.
	FOV float64
	// Aspect is the viewport width divided by its height.
	Aspect float64
	// Near and Far are the clipping distances along the view direction.
	Near, Far float64

	Position Vec3
	Target   Vec3
	Up       Vec3

	// proj is refreshed by UpdateProjection; focal is its Y scale,
	// 1/tan(FOV/2).
	proj  mgl64.Mat4
	focal float64

	// view is the world-to-camera matrix refreshed by LookAt.
	view mgl64.Mat4

	dolly *dollyAnim
}

// NewCamera creates a camera at the origin looking down -Z.
func NewCamera(fov, aspect, near, far float64) *Camera {
	c := &Camera{
		FOV:    fov,
		Aspect: aspect,
		Near:   near,
		Far:    far,
		Up:     Vec3{0, 1, 0},
		Target: Vec3{0, 0, -1},
	}
	c.UpdateProjection()
	c.LookAt(c.Target)
	return c
}

// SetAspect changes the aspect ratio and refreshes the projection.
func (c *Camera) SetAspect(aspect float64) {
	c.Aspect = aspect
	c.UpdateProjection()
}

// UpdateProjection recomputes cached projection values after FOV, Aspect,
// Near or Far change.
func (c *Camera) UpdateProjection() {
	fov := mgl64.DegToRad(c.FOV)
	if t := math.Tan(fov / 2); t <= 0 || math.IsInf(t, 0) {
		fov = math.Pi / 2
	}
	aspect := c.Aspect
	if aspect <= 0 {
		aspect = 1
	}
	c.proj = mgl64.Perspective(fov, aspect, c.Near, c.Far)
	c.focal = c.proj.At(1, 1)
}

// LookAt points the camera at target and rebuilds the view basis.
func (c *Camera) LookAt(target Vec3) {
	c.Target = target
	center := target
	fwd := target.Sub(c.Position).Normalize()
	if fwd == (Vec3{}) {
		fwd = Vec3{0, 0, -1}
		center = c.Position.Add(fwd)
	}
	up := c.Up.Normalize()
	if up == (Vec3{}) || fwd.Cross(up).Normalize() == (Vec3{}) {
		// Looking straight along Up; pick any perpendicular.
		up = Vec3{0, 0, 1}
	}
	c.view = mgl64.LookAtV(c.Position.gl(), center.gl(), up.gl())
}

// Drift moves the camera's X and Y a fraction lerp of the way towards
// (x, y). A lerp of 1.0 snaps immediately.
func (c *Camera) Drift(x, y, lerp float64) {
	c.Position.X += (x - c.Position.X) * lerp
	c.Position.Y += (y - c.Position.Y) * lerp
}

// DollyTo animates the camera's Z position to z over duration seconds.
func (c *Camera) DollyTo(z float64, duration float32, easeFn ease.TweenFunc) {
	c.dolly = &dollyAnim{
		tween: gween.New(float32(c.Position.Z), float32(z), duration, easeFn),
	}
}

// Dollying reports whether a DollyTo animation is in progress.
func (c *Camera) Dollying() bool {
	return c.dolly != nil
}

// update advances the dolly animation by dt seconds.
func (c *Camera) update(dt float32) {
	if c.dolly == nil {
		return
	}
	val, done := c.dolly.tween.Update(dt)
	c.Position.Z = float64(val)
	if done {
		c.dolly = nil
	}
}

// ToView converts a world-space point into view space: X right, Y up and Z
// the distance in front of the camera.
func (c *Camera) ToView(p Vec3) Vec3 {
	v := c.view.Mul4x1(p.gl().Vec4(1))
	return Vec3{v[0], v[1], -v[2]}
}

// Project converts a world-space point to screen coordinates for a
// viewport of width x height pixels. depth is the view-space distance.
// ok is false when the point lies outside the near/far range.
func (c *Camera) Project(p Vec3, width, height int) (sx, sy, depth float64, ok bool) {
	v := c.ToView(p)
	return c.projectView(v, width, height)
}

func (c *Camera) projectView(v Vec3, width, height int) (sx, sy, depth float64, ok bool) {
	if v.Z < c.Near || v.Z > c.Far {
		return 0, 0, v.Z, false
	}
	clip := c.proj.Mul4x1(mgl64.Vec4{v.X, v.Y, -v.Z, 1})
	ndcX := clip[0] / clip[3]
	ndcY := clip[1] / clip[3]
	sx = (ndcX + 1) / 2 * float64(width)
	sy = (1 - ndcY) / 2 * float64(height)
	return sx, sy, v.Z, true
}

// PixelScale returns how many screen pixels one world unit spans at the
// given view depth, for a viewport height in pixels.
func (c *Camera) PixelScale(depth float64, height int) float64 {
	if depth <= 0 {
		return 0
	}
	return c.focal * float64(height) / 2 / depth
}
