package backdrop

import (
	"errors"
	"math/rand/v2"
	"slices"
	"testing"
)

func newBuildSurface() *EbitenSurface {
	return &EbitenSurface{width: 800, height: 600}
}

func TestNewEbitenSurfaceWithoutDisplay(t *testing.T) {
	orig := displayAvailable
	t.Cleanup(func() { displayAvailable = orig })

	displayAvailable = func() bool { return false }
	if _, err := NewEbitenSurface(10, 10); !errors.Is(err, ErrMissingCapability) {
		t.Errorf("err = %v, want ErrMissingCapability", err)
	}

	displayAvailable = func() bool { return true }
	s, err := NewEbitenSurface(640, 480)
	if err != nil {
		t.Fatal(err)
	}
	if w, h := s.Size(); w != 640 || h != 480 {
		t.Errorf("Size = %dx%d, want 640x480", w, h)
	}
	s.Resize(320, 200)
	if w, h := s.Size(); w != 320 || h != 200 {
		t.Errorf("Size after Resize = %dx%d, want 320x200", w, h)
	}
	if s.(*EbitenSurface).Image() != nil {
		t.Error("image allocated before the first Render")
	}
}

func boxObject(wireframe bool, pos Vec3) *VisualObject {
	return &VisualObject{
		Kind:     KindMesh,
		Geometry: NewBoxGeometry(1, 1, 1),
		Position: pos,
		Scale:    1,
		Style:    Style{Color: ColorWhite, Opacity: 1, Wireframe: wireframe},
	}
}

func TestBuildWireframe(t *testing.T) {
	s := newBuildSurface()
	scene := NewScene()
	scene.Add(boxObject(true, Vec3{}))
	s.build(scene, newTestCamera())

	if len(s.commands) != 1 {
		t.Fatalf("commands = %d, want 1", len(s.commands))
	}
	cmd := s.commands[0]
	if got := cmd.i1 - cmd.i0; got != 18*6 {
		t.Errorf("indices = %d, want one quad per edge (%d)", got, 18*6)
	}
	if got := cmd.v1 - cmd.v0; got != 18*4 {
		t.Errorf("vertices = %d, want %d", got, 18*4)
	}
	assertNear(t, "depth", cmd.depth, 5)
}

func TestBuildSolidBackToFront(t *testing.T) {
	s := newBuildSurface()
	scene := NewScene()
	scene.addDefaultLights()
	o := boxObject(false, Vec3{})
	o.Style.Material = MaterialStandard
	o.Style.Metalness = 0.7
	o.Style.Roughness = 0.3
	scene.Add(o)
	s.build(scene, newTestCamera())

	if len(s.commands) != 1 {
		t.Fatalf("commands = %d, want 1", len(s.commands))
	}
	cmd := s.commands[0]
	if got := cmd.i1 - cmd.i0; got != 36 {
		t.Errorf("indices = %d, want 36", got)
	}
	if !slices.IsSortedFunc(s.tris, func(a, b depthTri) int {
		switch {
		case a.depth > b.depth:
			return -1
		case a.depth < b.depth:
			return 1
		}
		return 0
	}) {
		t.Error("triangles not sorted farthest first")
	}
	for i, idx := range s.inds[cmd.i0:cmd.i1] {
		if int(idx) >= cmd.v1-cmd.v0 {
			t.Fatalf("index %d = %d out of range", i, idx)
		}
	}
}

func TestBuildSkipsBehindCamera(t *testing.T) {
	s := newBuildSurface()
	scene := NewScene()
	scene.Add(boxObject(true, Vec3{Z: 20}), boxObject(false, Vec3{Z: 20}))
	s.build(scene, newTestCamera())
	if len(s.commands) != 0 {
		t.Errorf("commands = %d, want 0 for objects behind the camera", len(s.commands))
	}
}

func TestBuildPlaneCulling(t *testing.T) {
	sheet := newCodeSheet(rand.New(rand.NewPCG(1, 2)), ColorWhite)
	plane := func(rotY float64, doubleSided bool) *VisualObject {
		return &VisualObject{
			Kind:     KindPlane,
			Geometry: NewPlaneGeometry(2, 2),
			Sheet:    sheet,
			Scale:    1,
			Rotation: Vec3{Y: rotY},
			Style:    Style{Color: ColorWhite, Opacity: 0.4, Blend: BlendAdd, DoubleSided: doubleSided},
		}
	}
	tests := []struct {
		name string
		obj  *VisualObject
		want int
	}{
		{"facing", plane(0, false), 1},
		{"turned away", plane(3.14159, false), 0},
		{"turned away double sided", plane(3.14159, true), 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newBuildSurface()
			scene := NewScene()
			scene.Add(tt.obj)
			s.build(scene, newTestCamera())
			if len(s.commands) != tt.want {
				t.Fatalf("commands = %d, want %d", len(s.commands), tt.want)
			}
			if tt.want == 0 {
				return
			}
			cmd := s.commands[0]
			if cmd.kind != drawSheet || cmd.sheet != sheet || cmd.blend != BlendAdd {
				t.Errorf("command = %+v", cmd)
			}
			for _, v := range s.verts[cmd.v0:cmd.v1] {
				if v.SrcX < 0 || v.SrcX > 256 || v.SrcY < 0 || v.SrcY > 256 {
					t.Errorf("uv (%v, %v) outside the sheet", v.SrcX, v.SrcY)
				}
			}
		})
	}
}

func TestBuildParticles(t *testing.T) {
	s := newBuildSurface()
	scene := NewScene()
	ps := NewParticleSystem("p", 3)
	ps.PointSize = 0.5
	ps.Opacity = 0.8
	ps.Positions[5] = 20 // second particle behind the camera
	for i := range ps.Sizes {
		ps.Sizes[i] = 1
		ps.Colors[i*3] = 1
	}
	scene.AddParticles(ps)
	s.build(scene, newTestCamera())

	if len(s.commands) != 1 {
		t.Fatalf("commands = %d, want 1", len(s.commands))
	}
	cmd := s.commands[0]
	if got := cmd.v1 - cmd.v0; got != 8 {
		t.Errorf("vertices = %d, want 8 for two visible particles", got)
	}
	v := s.verts[cmd.v0]
	if !approxEqual(float64(v.ColorA), 0.8, 1e-6) || !approxEqual(float64(v.ColorR), 0.8, 1e-6) || v.ColorG != 0 {
		t.Errorf("vertex color = (%v %v %v %v), want premultiplied red at 0.8", v.ColorR, v.ColorG, v.ColorB, v.ColorA)
	}
	// Square with the projected point size.
	half := 0.5 * newTestCamera().PixelScale(5, 600) / 2
	if !approxEqual(float64(v.DstX), 400-half, 1e-3) || !approxEqual(float64(v.DstY), 300-half, 1e-3) {
		t.Errorf("corner = (%v, %v), want (%v, %v)", v.DstX, v.DstY, 400-half, 300-half)
	}
}

func TestBuildEdges(t *testing.T) {
	s := newBuildSurface()
	scene := NewScene()
	nodes := nodesAt(-1, 1, 30)
	scene.AddEdges(BuildEdges(nodes, 5, Style{Color: Hex(0x33ccff), Opacity: 0.3, Blend: BlendAdd})...)
	s.build(scene, newTestCamera())
	if len(s.commands) != 1 {
		t.Fatalf("commands = %d, want 1", len(s.commands))
	}
	if got := s.commands[0].i1 - s.commands[0].i0; got != 6 {
		t.Errorf("indices = %d, want 6", got)
	}
}

func TestSortCommands(t *testing.T) {
	s := newBuildSurface()
	rng := rand.New(rand.NewPCG(3, 4))
	for i := range 37 {
		s.commands = append(s.commands, drawCommand{depth: float64(rng.IntN(6)), order: i})
	}
	s.sortCommands()
	if len(s.commands) != 37 {
		t.Fatalf("commands = %d, want 37", len(s.commands))
	}
	for i := 1; i < len(s.commands); i++ {
		a, b := s.commands[i-1], s.commands[i]
		if a.depth < b.depth || (a.depth == b.depth && a.order > b.order) {
			t.Fatalf("commands %d and %d out of order: %+v %+v", i-1, i, a, b)
		}
	}
}

func TestPerpendicular(t *testing.T) {
	nx, ny := perpendicular(Vec2{0, 0}, Vec2{10, 0})
	assertNear(t, "nx", nx, 0)
	assertNear(t, "ny", ny, 1)
	nx, ny = perpendicular(Vec2{3, 3}, Vec2{3, 3})
	if nx != 0 || ny != -1 {
		t.Errorf("degenerate perpendicular = (%v, %v), want (0, -1)", nx, ny)
	}
}
