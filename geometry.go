package backdrop

import (
	"math"

	"github.com/ErikKalkoken/go-set"
)

// Geometry is an indexed triangle mesh in local space. Edges lists every
// unique triangle edge and is what wireframe rendering draws.
type Geometry struct {
	Name      string
	Vertices  []Vec3
	UVs       []Vec2 // optional, in [0, 1]
	Triangles [][3]uint16
	Edges     [][2]uint16
}

// newGeometry finalizes a geometry by deriving its edge list.
func newGeometry(name string, verts []Vec3, tris [][3]uint16) *Geometry {
	return &Geometry{
		Name:      name,
		Vertices:  verts,
		Triangles: tris,
		Edges:     deriveEdges(tris),
	}
}

// deriveEdges collects the unique undirected edges of a triangle list in
// first-seen order.
func deriveEdges(tris [][3]uint16) [][2]uint16 {
	var seen set.Set[[2]uint16]
	edges := make([][2]uint16, 0, len(tris)*3/2)
	add := func(a, b uint16) {
		if a == b {
			return
		}
		if a > b {
			a, b = b, a
		}
		k := [2]uint16{a, b}
		if seen.Contains(k) {
			return
		}
		seen.Add(k)
		edges = append(edges, k)
	}
	for _, t := range tris {
		add(t[0], t[1])
		add(t[1], t[2])
		add(t[2], t[0])
	}
	return edges
}

// gridTriangles triangulates a (cols+1) x (rows+1) vertex grid laid out
// row-major.
func gridTriangles(cols, rows int) [][3]uint16 {
	tris := make([][3]uint16, 0, cols*rows*2)
	for j := 0; j < rows; j++ {
		for i := 0; i < cols; i++ {
			a := uint16(j*(cols+1) + i)
			b := uint16((j+1)*(cols+1) + i)
			c := b + 1
			d := a + 1
			tris = append(tris, [3]uint16{a, b, d}, [3]uint16{b, c, d})
		}
	}
	return tris
}

// NewBoxGeometry creates an axis-aligned box centered on the origin.
func NewBoxGeometry(width, height, depth float64) *Geometry {
	x, y, z := width/2, height/2, depth/2
	verts := []Vec3{
		{-x, -y, -z}, {x, -y, -z}, {x, y, -z}, {-x, y, -z},
		{-x, -y, z}, {x, -y, z}, {x, y, z}, {-x, y, z},
	}
	tris := [][3]uint16{
		{4, 5, 6}, {4, 6, 7}, // front
		{1, 0, 3}, {1, 3, 2}, // back
		{0, 4, 7}, {0, 7, 3}, // left
		{5, 1, 2}, {5, 2, 6}, // right
		{7, 6, 2}, {7, 2, 3}, // top
		{0, 1, 5}, {0, 5, 4}, // bottom
	}
	return newGeometry("box", verts, tris)
}

// NewIcosahedronGeometry creates a regular icosahedron with the given
// circumradius.
func NewIcosahedronGeometry(radius float64) *Geometry {
	t := (1 + math.Sqrt(5)) / 2
	raw := []Vec3{
		{-1, t, 0}, {1, t, 0}, {-1, -t, 0}, {1, -t, 0},
		{0, -1, t}, {0, 1, t}, {0, -1, -t}, {0, 1, -t},
		{t, 0, -1}, {t, 0, 1}, {-t, 0, -1}, {-t, 0, 1},
	}
	verts := make([]Vec3, len(raw))
	for i, v := range raw {
		verts[i] = v.Normalize().Scale(radius)
	}
	tris := [][3]uint16{
		{0, 11, 5}, {0, 5, 1}, {0, 1, 7}, {0, 7, 10}, {0, 10, 11},
		{1, 5, 9}, {5, 11, 4}, {11, 10, 2}, {10, 7, 6}, {7, 1, 8},
		{3, 9, 4}, {3, 4, 2}, {3, 2, 6}, {3, 6, 8}, {3, 8, 9},
		{4, 9, 5}, {2, 4, 11}, {6, 2, 10}, {8, 6, 7}, {9, 8, 1},
	}
	return newGeometry("icosahedron", verts, tris)
}

// NewCylinderGeometry creates a capped cylinder along the Y axis.
func NewCylinderGeometry(radiusTop, radiusBottom, height float64, segments int) *Geometry {
	if segments < 3 {
		segments = 3
	}
	half := height / 2
	verts := make([]Vec3, 0, segments*2+2)
	for i := 0; i < segments; i++ {
		s, c := math.Sincos(float64(i) / float64(segments) * 2 * math.Pi)
		verts = append(verts, Vec3{radiusTop * s, half, radiusTop * c})
	}
	for i := 0; i < segments; i++ {
		s, c := math.Sincos(float64(i) / float64(segments) * 2 * math.Pi)
		verts = append(verts, Vec3{radiusBottom * s, -half, radiusBottom * c})
	}
	top := uint16(len(verts))
	verts = append(verts, Vec3{0, half, 0})
	bottom := uint16(len(verts))
	verts = append(verts, Vec3{0, -half, 0})

	n := uint16(segments)
	tris := make([][3]uint16, 0, segments*4)
	for i := uint16(0); i < n; i++ {
		next := (i + 1) % n
		tris = append(tris,
			[3]uint16{i, n + i, next},
			[3]uint16{n + i, n + next, next},
			[3]uint16{top, i, next},
			[3]uint16{bottom, n + next, n + i},
		)
	}
	return newGeometry("cylinder", verts, tris)
}

// NewSphereGeometry creates a UV sphere.
func NewSphereGeometry(radius float64, widthSegments, heightSegments int) *Geometry {
	if widthSegments < 3 {
		widthSegments = 3
	}
	if heightSegments < 2 {
		heightSegments = 2
	}
	verts := make([]Vec3, 0, (widthSegments+1)*(heightSegments+1))
	for iy := 0; iy <= heightSegments; iy++ {
		v := float64(iy) / float64(heightSegments)
		for ix := 0; ix <= widthSegments; ix++ {
			u := float64(ix) / float64(widthSegments)
			verts = append(verts, Vec3{
				X: -radius * math.Cos(u*2*math.Pi) * math.Sin(v*math.Pi),
				Y: radius * math.Cos(v*math.Pi),
				Z: radius * math.Sin(u*2*math.Pi) * math.Sin(v*math.Pi),
			})
		}
	}
	row := widthSegments + 1
	tris := make([][3]uint16, 0, widthSegments*heightSegments*2)
	for iy := 0; iy < heightSegments; iy++ {
		for ix := 0; ix < widthSegments; ix++ {
			a := uint16(iy*row + ix + 1)
			b := uint16(iy*row + ix)
			c := uint16((iy+1)*row + ix)
			d := uint16((iy+1)*row + ix + 1)
			// The pole rows collapse to a point; skip their degenerate halves.
			if iy != 0 {
				tris = append(tris, [3]uint16{a, b, d})
			}
			if iy != heightSegments-1 {
				tris = append(tris, [3]uint16{b, c, d})
			}
		}
	}
	return newGeometry("sphere", verts, tris)
}

// NewTorusGeometry creates a torus in the XY plane.
func NewTorusGeometry(radius, tube float64, radialSegments, tubularSegments int) *Geometry {
	verts := make([]Vec3, 0, (radialSegments+1)*(tubularSegments+1))
	for j := 0; j <= radialSegments; j++ {
		v := float64(j) / float64(radialSegments) * 2 * math.Pi
		for i := 0; i <= tubularSegments; i++ {
			u := float64(i) / float64(tubularSegments) * 2 * math.Pi
			r := radius + tube*math.Cos(v)
			verts = append(verts, Vec3{r * math.Cos(u), r * math.Sin(u), tube * math.Sin(v)})
		}
	}
	return newGeometry("torus", verts, gridTriangles(tubularSegments, radialSegments))
}

// NewTorusKnotGeometry creates a (2,3) torus knot tube.
func NewTorusKnotGeometry(radius, tube float64, tubularSegments, radialSegments int) *Geometry {
	const p, q = 2.0, 3.0
	curve := func(u float64) Vec3 {
		quOverP := q / p * u
		cs := math.Cos(quOverP)
		return Vec3{
			X: radius * (2 + cs) * 0.5 * math.Cos(u),
			Y: radius * (2 + cs) * 0.5 * math.Sin(u),
			Z: radius * math.Sin(quOverP) * 0.5,
		}
	}
	verts := make([]Vec3, 0, (tubularSegments+1)*(radialSegments+1))
	for i := 0; i <= tubularSegments; i++ {
		u := float64(i) / float64(tubularSegments) * p * math.Pi * 2
		p1 := curve(u)
		p2 := curve(u + 0.01)
		t := p2.Sub(p1)
		n := p2.Add(p1)
		b := t.Cross(n).Normalize()
		n = b.Cross(t).Normalize()
		for j := 0; j <= radialSegments; j++ {
			v := float64(j) / float64(radialSegments) * math.Pi * 2
			cx := -tube * math.Cos(v)
			cy := tube * math.Sin(v)
			verts = append(verts, p1.Add(n.Scale(cx)).Add(b.Scale(cy)))
		}
	}
	return newGeometry("torusknot", verts, gridTriangles(radialSegments, tubularSegments))
}

// NewPlaneGeometry creates a width x height quad in the XY plane with UVs
// spanning the full texture.
func NewPlaneGeometry(width, height float64) *Geometry {
	x, y := width/2, height/2
	g := newGeometry("plane",
		[]Vec3{{-x, y, 0}, {x, y, 0}, {x, -y, 0}, {-x, -y, 0}},
		[][3]uint16{{0, 3, 1}, {3, 2, 1}},
	)
	g.UVs = []Vec2{{0, 0}, {1, 0}, {1, 1}, {0, 1}}
	return g
}
