package backdrop

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Vec3 is a 3D vector used for positions, rotations (Euler angles in
// radians) and motion vectors.
type Vec3 struct {
	X, Y, Z float64
}

func (v Vec3) Add(o Vec3) Vec3      { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }
func (v Vec3) Sub(o Vec3) Vec3      { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }
func (v Vec3) Scale(s float64) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }
func (v Vec3) Dot(o Vec3) float64   { return v.X*o.X + v.Y*o.Y + v.Z*o.Z }
func (v Vec3) Len() float64         { return math.Sqrt(v.Dot(v)) }
func (v Vec3) Dist(o Vec3) float64  { return v.Sub(o).Len() }
func (v Vec3) Cross(o Vec3) Vec3 {
	return Vec3{v.Y*o.Z - v.Z*o.Y, v.Z*o.X - v.X*o.Z, v.X*o.Y - v.Y*o.X}
}

// Normalize returns the unit vector in the direction of v, or the zero
// vector when v has no length.
func (v Vec3) Normalize() Vec3 {
	if l := v.Len(); l > 1e-12 {
		return v.Scale(1 / l)
	}
	return Vec3{}
}

// Axis returns component i (0=X, 1=Y, 2=Z).
func (v Vec3) Axis(i int) float64 {
	switch i {
	case 0:
		return v.X
	case 1:
		return v.Y
	default:
		return v.Z
	}
}

// SetAxis sets component i (0=X, 1=Y, 2=Z).
func (v *Vec3) SetAxis(i int, val float64) {
	switch i {
	case 0:
		v.X = val
	case 1:
		v.Y = val
	default:
		v.Z = val
	}
}

// Rotate applies the Euler rotation r in XYZ order: the resulting matrix is
// Rx * Ry * Rz, so Z is applied to the point first.
func (v Vec3) Rotate(r Vec3) Vec3 {
	m := mgl64.Rotate3DX(r.X).Mul3(mgl64.Rotate3DY(r.Y)).Mul3(mgl64.Rotate3DZ(r.Z))
	return fromGL(m.Mul3x1(v.gl()))
}

func (v Vec3) gl() mgl64.Vec3 { return mgl64.Vec3{v.X, v.Y, v.Z} }

func fromGL(v mgl64.Vec3) Vec3 { return Vec3{v[0], v[1], v[2]} }
