package backdrop

import (
	"image/color"
	"math"
	"os"
	"runtime"
	"slices"

	"github.com/hajimehoshi/ebiten/v2"
)

// lineWidth is the screen-space width of wireframe and edge lines in pixels.
const lineWidth = 1.0

// drawKind identifies how a draw command is submitted.
type drawKind uint8

const (
	drawTriangles drawKind = iota // untextured triangles over the white pixel
	drawSheet                     // triangles sampling a code sheet
)

// drawCommand is one depth-sorted draw call. Its vertices and indices are
// ranges of the surface's shared buffers; indices are relative to the
// first vertex of the range.
type drawCommand struct {
	kind   drawKind
	depth  float64
	order  int
	blend  BlendMode
	sheet  *CodeSheet
	v0, v1 int
	i0, i1 int
}

// EbitenSurface renders a scene into an offscreen ebiten image by
// projecting it through the camera on the CPU.
type EbitenSurface struct {
	width, height int
	img           *ebiten.Image

	commands []drawCommand
	sortBuf  []drawCommand
	verts    []ebiten.Vertex
	inds     []uint16
	tris     []depthTri
	world    []Vec3
	points   []projected
}

// displayAvailable reports whether the platform can open a window.
var displayAvailable = func() bool {
	switch runtime.GOOS {
	case "linux", "freebsd", "netbsd", "openbsd", "dragonfly":
		return os.Getenv("DISPLAY") != "" || os.Getenv("WAYLAND_DISPLAY") != ""
	}
	return true
}

// NewEbitenSurface creates a surface of the given size. It returns
// ErrMissingCapability when no display is available. The backing image is
// allocated on the first Render.
func NewEbitenSurface(width, height int) (Surface, error) {
	if !displayAvailable() {
		return nil, ErrMissingCapability
	}
	return &EbitenSurface{width: width, height: height}, nil
}

// Resize sets the drawable size. The backing image is reallocated on the
// next Render.
func (s *EbitenSurface) Resize(width, height int) {
	if width == s.width && height == s.height {
		return
	}
	s.width, s.height = width, height
	if s.img != nil {
		s.img.Deallocate()
		s.img = nil
	}
}

// Size returns the drawable size in pixels.
func (s *EbitenSurface) Size() (int, int) {
	return s.width, s.height
}

// Image returns the most recently rendered frame, or nil before the first
// Render.
func (s *EbitenSurface) Image() *ebiten.Image {
	return s.img
}

// Render draws the scene into the backing image.
func (s *EbitenSurface) Render(scene *Scene, cam *Camera) error {
	if s.width <= 0 || s.height <= 0 {
		return nil
	}
	if s.img == nil {
		s.img = ebiten.NewImage(s.width, s.height)
	}
	if scene.Transparent {
		s.img.Clear()
	} else {
		s.img.Fill(scene.Background.toRGBA())
	}

	s.build(scene, cam)
	s.sortCommands()
	return s.submit()
}

// build projects every drawable into draw commands.
func (s *EbitenSurface) build(scene *Scene, cam *Camera) {
	s.commands = s.commands[:0]
	s.verts = s.verts[:0]
	s.inds = s.inds[:0]

	lights := collectLights(scene.Lights)
	for _, o := range scene.Objects {
		switch o.Kind {
		case KindPlane:
			s.buildPlane(o, cam)
		case KindMesh, KindNode:
			if o.Style.Wireframe {
				s.buildWireframe(o, cam)
			} else {
				s.buildSolid(o, cam, lights)
			}
		}
	}
	for _, ps := range scene.Particles {
		s.buildParticles(ps, cam)
	}
	if len(scene.Edges) > 0 {
		s.buildEdges(scene.Edges, cam)
	}
}

// begin opens a new command at the current end of the buffers.
func (s *EbitenSurface) begin(kind drawKind, blend BlendMode) *drawCommand {
	s.commands = append(s.commands, drawCommand{
		kind:  kind,
		blend: blend,
		order: len(s.commands),
		v0:    len(s.verts),
		i0:    len(s.inds),
	})
	return &s.commands[len(s.commands)-1]
}

// end closes cmd, dropping it when nothing was emitted.
func (s *EbitenSurface) end(cmd *drawCommand) {
	cmd.v1 = len(s.verts)
	cmd.i1 = len(s.inds)
	if cmd.i1 == cmd.i0 {
		s.commands = s.commands[:len(s.commands)-1]
	}
}

// vertex appends one vertex with a premultiplied color and returns its
// index relative to cmd.
func (s *EbitenSurface) vertex(cmd *drawCommand, x, y, u, v float64, c Color, alpha float64) uint16 {
	a := float32(clamp01(c.A * alpha))
	s.verts = append(s.verts, ebiten.Vertex{
		DstX:   float32(x),
		DstY:   float32(y),
		SrcX:   float32(u),
		SrcY:   float32(v),
		ColorR: float32(clamp01(c.R)) * a,
		ColorG: float32(clamp01(c.G)) * a,
		ColorB: float32(clamp01(c.B)) * a,
		ColorA: a,
	})
	return uint16(len(s.verts) - 1 - cmd.v0)
}

// quad appends a screen-space quadrilateral as two triangles.
func (s *EbitenSurface) quad(cmd *drawCommand, pts [4]Vec2, c Color, alpha float64) {
	a := s.vertex(cmd, pts[0].X, pts[0].Y, 0.5, 0.5, c, alpha)
	b := s.vertex(cmd, pts[1].X, pts[1].Y, 0.5, 0.5, c, alpha)
	d := s.vertex(cmd, pts[2].X, pts[2].Y, 0.5, 0.5, c, alpha)
	e := s.vertex(cmd, pts[3].X, pts[3].Y, 0.5, 0.5, c, alpha)
	s.inds = append(s.inds, a, b, d, a, d, e)
}

// line appends a screen-space segment of lineWidth pixels.
func (s *EbitenSurface) line(cmd *drawCommand, p, q Vec2, c Color, alpha float64) {
	nx, ny := perpendicular(p, q)
	hx, hy := nx*lineWidth/2, ny*lineWidth/2
	s.quad(cmd, [4]Vec2{
		{p.X + hx, p.Y + hy},
		{q.X + hx, q.Y + hy},
		{q.X - hx, q.Y - hy},
		{p.X - hx, p.Y - hy},
	}, c, alpha)
}

// perpendicular returns the unit left-perpendicular of the segment from a to b.
func perpendicular(a, b Vec2) (float64, float64) {
	dx := b.X - a.X
	dy := b.Y - a.Y
	ln := math.Sqrt(dx*dx + dy*dy)
	if ln < 1e-10 {
		return 0, -1
	}
	return -dy / ln, dx / ln
}

// projected is a vertex after projection.
type projected struct {
	screen Vec2
	depth  float64
	ok     bool
}

// projectObject transforms and projects every vertex of o's geometry into
// the surface's scratch buffers.
func (s *EbitenSurface) projectObject(o *VisualObject, cam *Camera) ([]Vec3, []projected) {
	s.world = s.world[:0]
	s.points = s.points[:0]
	for _, v := range o.Geometry.Vertices {
		w := o.worldVertex(v)
		sx, sy, depth, ok := cam.Project(w, s.width, s.height)
		s.world = append(s.world, w)
		s.points = append(s.points, projected{Vec2{sx, sy}, depth, ok})
	}
	return s.world, s.points
}

func (s *EbitenSurface) objectDepth(o *VisualObject, cam *Camera) float64 {
	return cam.ToView(o.Position).Z
}

func (s *EbitenSurface) buildWireframe(o *VisualObject, cam *Camera) {
	if o.Geometry == nil {
		return
	}
	_, pts := s.projectObject(o, cam)
	cmd := s.begin(drawTriangles, o.Style.Blend)
	cmd.depth = s.objectDepth(o, cam)
	for _, e := range o.Geometry.Edges {
		a, b := pts[e[0]], pts[e[1]]
		if !a.ok || !b.ok {
			continue
		}
		s.line(cmd, a.screen, b.screen, o.Style.Color, o.Style.Opacity)
	}
	s.end(cmd)
}

// depthTri is a triangle awaiting back-to-front ordering within a mesh.
type depthTri struct {
	tri   [3]uint16
	depth float64
	color Color
}

func (s *EbitenSurface) buildSolid(o *VisualObject, cam *Camera, lights lighting) {
	if o.Geometry == nil {
		return
	}
	world, pts := s.projectObject(o, cam)

	s.tris = s.tris[:0]
	for _, t := range o.Geometry.Triangles {
		a, b, c := pts[t[0]], pts[t[1]], pts[t[2]]
		if !a.ok || !b.ok || !c.ok {
			continue
		}
		col := o.Style.Color
		if o.Style.Material == MaterialStandard {
			col = lights.shade(o.Style, world[t[0]], world[t[1]], world[t[2]], cam.Position)
		}
		s.tris = append(s.tris, depthTri{tri: t, depth: (a.depth + b.depth + c.depth) / 3, color: col})
	}
	slices.SortStableFunc(s.tris, func(x, y depthTri) int {
		switch {
		case x.depth > y.depth:
			return -1
		case x.depth < y.depth:
			return 1
		}
		return 0
	})

	cmd := s.begin(drawTriangles, o.Style.Blend)
	cmd.depth = s.objectDepth(o, cam)
	for _, dt := range s.tris {
		for _, vi := range dt.tri {
			p := pts[vi].screen
			s.inds = append(s.inds, s.vertex(cmd, p.X, p.Y, 0.5, 0.5, dt.color, o.Style.Opacity))
		}
	}
	s.end(cmd)
}

func (s *EbitenSurface) buildPlane(o *VisualObject, cam *Camera) {
	if o.Geometry == nil || o.Sheet == nil {
		return
	}
	world, pts := s.projectObject(o, cam)
	if !o.Style.DoubleSided && len(world) >= 4 {
		n := world[3].Sub(world[0]).Cross(world[1].Sub(world[0]))
		if n.Dot(cam.Position.Sub(world[0])) < 0 {
			return
		}
	}
	size := float64(o.Sheet.Size)
	cmd := s.begin(drawSheet, o.Style.Blend)
	cmd.sheet = o.Sheet
	cmd.depth = s.objectDepth(o, cam)
	for _, t := range o.Geometry.Triangles {
		a, b, c := pts[t[0]], pts[t[1]], pts[t[2]]
		if !a.ok || !b.ok || !c.ok {
			continue
		}
		for _, vi := range t {
			p := pts[vi].screen
			uv := o.Geometry.UVs[vi]
			s.inds = append(s.inds, s.vertex(cmd, p.X, p.Y, uv.X*size, uv.Y*size, o.Style.Color, o.Style.Opacity))
		}
	}
	s.end(cmd)
}

func (s *EbitenSurface) buildParticles(ps *ParticleSystem, cam *Camera) {
	cmd := s.begin(drawTriangles, ps.Blend)
	var depthSum float64
	var drawn int
	for i := range ps.Sizes {
		sx, sy, depth, ok := cam.Project(ps.Position(i), s.width, s.height)
		if !ok {
			continue
		}
		half := ps.PointSize * float64(ps.Sizes[i]) * cam.PixelScale(depth, s.height) / 2
		if half < 0.5 {
			half = 0.5
		}
		i3 := i * 3
		c := Color{float64(ps.Colors[i3]), float64(ps.Colors[i3+1]), float64(ps.Colors[i3+2]), 1}
		s.quad(cmd, [4]Vec2{
			{sx - half, sy - half},
			{sx + half, sy - half},
			{sx + half, sy + half},
			{sx - half, sy + half},
		}, c, ps.Opacity)
		depthSum += depth
		drawn++
	}
	if drawn > 0 {
		cmd.depth = depthSum / float64(drawn)
	}
	s.end(cmd)
}

func (s *EbitenSurface) buildEdges(edges []*Edge, cam *Camera) {
	cmd := s.begin(drawTriangles, edges[0].Style.Blend)
	for _, e := range edges {
		ax, ay, ad, aok := cam.Project(e.From, s.width, s.height)
		bx, by, bd, bok := cam.Project(e.To, s.width, s.height)
		if !aok || !bok {
			continue
		}
		cmd.depth = max(cmd.depth, (ad+bd)/2)
		s.line(cmd, Vec2{ax, ay}, Vec2{bx, by}, e.Style.Color, e.Style.Opacity)
	}
	s.end(cmd)
}

// commandBefore reports whether a draws before b: farther first, then in
// build order.
func commandBefore(a, b drawCommand) bool {
	if a.depth != b.depth {
		return a.depth > b.depth
	}
	return a.order <= b.order
}

// sortCommands orders commands back to front with a bottom-up merge sort
// that reuses sortBuf between frames.
func (s *EbitenSurface) sortCommands() {
	n := len(s.commands)
	if n <= 1 {
		return
	}
	if cap(s.sortBuf) < n {
		s.sortBuf = make([]drawCommand, n)
	}
	s.sortBuf = s.sortBuf[:n]

	a, b := s.commands, s.sortBuf
	swapped := false
	for width := 1; width < n; width *= 2 {
		for lo := 0; lo < n; lo += 2 * width {
			mid := min(lo+width, n)
			hi := min(lo+2*width, n)
			mergeRun(a, b, lo, mid, hi)
		}
		a, b = b, a
		swapped = !swapped
	}
	if swapped {
		copy(s.commands, s.sortBuf)
	}
}

// mergeRun merges the sorted runs [lo, mid) and [mid, hi) of src into dst.
func mergeRun(src, dst []drawCommand, lo, mid, hi int) {
	i, j, k := lo, mid, lo
	for i < mid && j < hi {
		if commandBefore(src[i], src[j]) {
			dst[k] = src[i]
			i++
		} else {
			dst[k] = src[j]
			j++
		}
		k++
	}
	k += copy(dst[k:], src[i:mid])
	copy(dst[k:], src[j:hi])
}

// submit issues one DrawTriangles call per command.
func (s *EbitenSurface) submit() error {
	var op ebiten.DrawTrianglesOptions
	for i := range s.commands {
		cmd := &s.commands[i]
		src := ensureWhitePixel()
		if cmd.kind == drawSheet {
			img, err := cmd.sheet.Image()
			if err != nil {
				return err
			}
			src = img
		}
		op.Blend = cmd.blend.EbitenBlend()
		s.img.DrawTriangles(s.verts[cmd.v0:cmd.v1], s.inds[cmd.i0:cmd.i1], src, &op)
	}
	return nil
}

var whitePixelImage *ebiten.Image

// ensureWhitePixel returns a lazily created 1x1 white image used as the
// source for untextured triangles.
func ensureWhitePixel() *ebiten.Image {
	if whitePixelImage == nil {
		whitePixelImage = ebiten.NewImage(1, 1)
		whitePixelImage.Fill(color.RGBA{R: 255, G: 255, B: 255, A: 255})
	}
	return whitePixelImage
}
