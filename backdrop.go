package backdrop

import (
	"image/color"
	"math/rand/v2"

	"github.com/hajimehoshi/ebiten/v2"
)

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
// Premultiplication occurs at render submission time.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the default light color.
var ColorWhite = Color{1, 1, 1, 1}

// Hex returns the opaque color for a 0xRRGGBB value.
func Hex(v uint32) Color {
	return Color{
		R: float64((v>>16)&0xff) / 255,
		G: float64((v>>8)&0xff) / 255,
		B: float64(v&0xff) / 255,
		A: 1,
	}
}

// WithAlpha returns c with its alpha replaced.
func (c Color) WithAlpha(a float64) Color {
	c.A = a
	return c
}

// toRGBA converts to a premultiplied color.RGBA.
func (c Color) toRGBA() color.RGBA {
	return color.RGBA{
		R: uint8(clamp01(c.R*c.A) * 255),
		G: uint8(clamp01(c.G*c.A) * 255),
		B: uint8(clamp01(c.B*c.A) * 255),
		A: uint8(clamp01(c.A) * 255),
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Vec2 is a 2D vector used for screen positions and texture coordinates.
type Vec2 struct {
	X, Y float64
}

// Range is a general-purpose min/max range used by the object generators.
type Range struct {
	Min, Max float64
}

// Random returns a random float64 in [Min, Max).
func (r Range) Random(rng *rand.Rand) float64 {
	if r.Min == r.Max {
		return r.Min
	}
	return r.Min + rng.Float64()*(r.Max-r.Min)
}

// Symmetric returns a range centered on zero with the given total width,
// matching the (random - 0.5) * width idiom.
func Symmetric(width float64) Range {
	return Range{Min: -width / 2, Max: width / 2}
}

// BlendMode selects a compositing operation. Each maps to a specific ebiten.Blend value.
type BlendMode uint8

const (
	BlendNormal BlendMode = iota // source-over (standard alpha blending)
	BlendAdd                     // additive / lighter
)

// EbitenBlend returns the ebiten.Blend value corresponding to this BlendMode.
func (b BlendMode) EbitenBlend() ebiten.Blend {
	switch b {
	case BlendAdd:
		return ebiten.BlendLighter
	default:
		return ebiten.BlendSourceOver
	}
}

// ObjectKind distinguishes update and rendering behavior for a VisualObject.
type ObjectKind uint8

const (
	KindMesh  ObjectKind = iota // polyhedron mesh, solid or wireframe
	KindPlane                   // flat quad textured with a code sheet
	KindNode                    // graph node joined to its neighbours by edges
)

func (k ObjectKind) String() string {
	switch k {
	case KindMesh:
		return "mesh"
	case KindPlane:
		return "plane"
	case KindNode:
		return "node"
	}
	return "unknown"
}

// Material selects the shading model for solid meshes.
type Material uint8

const (
	MaterialBasic    Material = iota // unlit, flat color
	MaterialStandard                 // lit by the scene lights
)

// Variant selects which set of generators populates a scene.
// Variants are never mixed in one scene.
type Variant uint8

const (
	VariantCode    Variant = iota // particles, polyhedra and code planes
	VariantNetwork                // nodes joined by proximity edges
)

// ParseVariant maps a variant name to a Variant. Unknown names report false.
func ParseVariant(name string) (Variant, bool) {
	switch name {
	case "", "code":
		return VariantCode, true
	case "network":
		return VariantNetwork, true
	}
	return VariantCode, false
}

func (v Variant) String() string {
	if v == VariantNetwork {
		return "network"
	}
	return "code"
}
