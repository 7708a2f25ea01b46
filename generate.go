package backdrop

import (
	"math"
	"math/rand/v2"
)

// Object counts for each variant. They are fixed for the life of a scene.
const (
	CodeParticleCount = 200
	CodeMeshCount     = 25
	CodePlaneCount    = 4

	NetworkNodeCount     = 30
	NetworkEdgeThreshold = 5.0
)

// DriftBound is the per-axis distance from the origin past which a
// drifting object's drift component reverses.
const DriftBound = 15

// Code particle tuning.
const (
	particleExtent    = 25
	particleSpeed     = 0.01
	particlePointSize = 0.5
	particleOpacity   = 0.8
)

var particleSize = Range{Min: 0.2, Max: 1.0}

// Mesh tuning.
var (
	meshRadius        = Range{Min: 5, Max: 13}
	meshScale         = Range{Min: 0.5, Max: 2.0}
	meshRotationSpeed = Symmetric(0.005)
	meshOrbitSpeed    = Symmetric(0.001)
	meshDrift         = Symmetric(0.005)
)

const meshWireframeOdds = 0.5

// Plane tuning.
var (
	planeDistance      = Range{Min: 8, Max: 15}
	planeAngleJitter   = Range{Min: 0, Max: 0.5}
	planeHeight        = Symmetric(8)
	planeRotationSpeed = Symmetric(0.001)
	planeDrift         = Symmetric(0.003)
)

const (
	planeSize    = 8
	planeOpacity = 0.4
)

// Network tuning.
var (
	networkExtent        = Symmetric(20)
	networkDrift         = Symmetric(0.02)
	networkRotationSpeed = Symmetric(0.02)
)

const (
	networkNodeRadius  = 0.15
	networkEdgeOpacity = 0.3
)

// meshGeometries returns the shape set drawn by the code variant: a list
// (box), a tree node (icosahedron), a data store (cylinder), a network
// (sphere), a module (torus) and an algorithm (torus knot).
func meshGeometries() []*Geometry {
	return []*Geometry{
		NewBoxGeometry(0.6, 0.3, 0.3),
		NewIcosahedronGeometry(0.4),
		NewCylinderGeometry(0.3, 0.3, 0.5, 16),
		NewSphereGeometry(0.4, 16, 16),
		NewTorusGeometry(0.4, 0.15, 16, 32),
		NewTorusKnotGeometry(0.3, 0.1, 64, 16),
	}
}

// populate fills the scene with the objects of the given variant.
func populate(s *Scene, v Variant, rng *rand.Rand) {
	switch v {
	case VariantNetwork:
		addNetwork(s, rng)
	default:
		addCodeParticles(s, rng)
		addGeometricElements(s, rng)
		addCodePlanes(s, rng)
	}
}

// randomVec3 samples each component independently from r.
func randomVec3(r Range, rng *rand.Rand) Vec3 {
	return Vec3{r.Random(rng), r.Random(rng), r.Random(rng)}
}

func pick[T any](items []T, rng *rand.Rand) T {
	return items[rng.IntN(len(items))]
}

// addCodeParticles adds one particle system of CodeParticleCount particles
// scattered through a cube.
func addCodeParticles(s *Scene, rng *rand.Rand) {
	ps := NewParticleSystem("codeParticles", CodeParticleCount)
	ps.PointSize = particlePointSize
	ps.Opacity = particleOpacity
	ps.Blend = BlendAdd

	extent := Symmetric(particleExtent)
	speed := Symmetric(particleSpeed)
	for i := 0; i < CodeParticleCount; i++ {
		i3 := i * 3
		c := pick(particlePalette, rng)
		for axis := 0; axis < 3; axis++ {
			ps.Positions[i3+axis] = float32(extent.Random(rng))
			ps.Speeds[i3+axis] = float32(speed.Random(rng))
		}
		ps.Colors[i3] = float32(c.R)
		ps.Colors[i3+1] = float32(c.G)
		ps.Colors[i3+2] = float32(c.B)
		ps.Sizes[i] = float32(particleSize.Random(rng))
	}
	s.AddParticles(ps)
}

// addGeometricElements adds CodeMeshCount polyhedra in a spherical shell,
// each orbiting at its placement radius.
func addGeometricElements(s *Scene, rng *rand.Rand) {
	geoms := meshGeometries()
	for i := 0; i < CodeMeshCount; i++ {
		style := Style{Color: pick(meshPalette, rng)}
		if rng.Float64() < meshWireframeOdds {
			style.Wireframe = true
			style.Material = MaterialBasic
			style.Opacity = 0.6
		} else {
			style.Material = MaterialStandard
			style.Opacity = 0.7
			style.Roughness = 0.3
			style.Metalness = 0.7
		}

		radius := meshRadius.Random(rng)
		theta := rng.Float64() * math.Pi * 2
		phi := rng.Float64() * math.Pi

		obj := &VisualObject{
			Kind:     KindMesh,
			Name:     "mesh",
			Geometry: pick(geoms, rng),
			Style:    style,
			Position: Vec3{
				X: radius * math.Sin(phi) * math.Cos(theta),
				Y: radius * math.Cos(phi),
				Z: radius * math.Sin(phi) * math.Sin(theta),
			},
			Rotation: randomVec3(Range{0, math.Pi * 2}, rng),
			Scale:    meshScale.Random(rng),
		}
		obj.Motion = Motion{
			RotationSpeed: randomVec3(meshRotationSpeed, rng),
			Orbit: &Orbit{
				Speed:  meshOrbitSpeed.Random(rng),
				Radius: radius,
				Theta:  theta,
			},
			Drift: randomVec3(meshDrift, rng),
		}
		s.Add(obj)
	}
}

// addCodePlanes adds CodePlaneCount planes spaced around the Y axis, each
// showing its own sheet of generated code.
func addCodePlanes(s *Scene, rng *rand.Rand) {
	geom := NewPlaneGeometry(planeSize, planeSize)
	for i := 0; i < CodePlaneCount; i++ {
		sheet := newCodeSheet(rng, pick(inkPalette, rng))
		distance := planeDistance.Random(rng)
		angle := float64(i)*(math.Pi*2/CodePlaneCount) + planeAngleJitter.Random(rng)

		obj := &VisualObject{
			Kind:     KindPlane,
			Name:     "codePlane",
			Geometry: geom,
			Sheet:    sheet,
			Size:     planeSize,
			Scale:    1,
			Position: Vec3{
				X: math.Cos(angle) * distance,
				Y: planeHeight.Random(rng),
				Z: math.Sin(angle) * distance,
			},
			Rotation: randomVec3(Range{0, math.Pi}, rng),
			Style: Style{
				Color:       ColorWhite,
				Opacity:     planeOpacity,
				Blend:       BlendAdd,
				DoubleSided: true,
			},
			Motion: Motion{
				RotationSpeed: randomVec3(planeRotationSpeed, rng),
				Drift:         randomVec3(planeDrift, rng),
			},
		}
		s.Add(obj)
	}
}

// addNetwork adds NetworkNodeCount nodes scattered through a cube and joins
// every pair closer than NetworkEdgeThreshold.
func addNetwork(s *Scene, rng *rand.Rand) {
	geom := NewIcosahedronGeometry(networkNodeRadius)
	nodes := make([]*VisualObject, 0, NetworkNodeCount)
	for i := 0; i < NetworkNodeCount; i++ {
		nodes = append(nodes, &VisualObject{
			Kind:     KindNode,
			Name:     "node",
			Geometry: geom,
			Scale:    1,
			Position: randomVec3(networkExtent, rng),
			Style: Style{
				Color:    pick(networkPalette, rng),
				Opacity:  0.9,
				Material: MaterialBasic,
			},
			Motion: Motion{
				RotationSpeed: randomVec3(networkRotationSpeed, rng),
				Drift:         randomVec3(networkDrift, rng),
			},
		})
	}
	s.Add(nodes...)
	s.AddEdges(BuildEdges(nodes, NetworkEdgeThreshold, Style{
		Color:   Hex(0x33ccff),
		Opacity: networkEdgeOpacity,
		Blend:   BlendAdd,
	})...)
}
