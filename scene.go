package backdrop

// LightKind distinguishes scene lights.
type LightKind uint8

const (
	LightAmbient     LightKind = iota // uniform illumination
	LightDirectional                  // parallel rays from Position towards the origin
)

// Light illuminates standard-material meshes.
type Light struct {
	Kind      LightKind
	Color     Color
	Intensity float64
	Position  Vec3
}

// Scene is the root container of everything drawn for one background:
// lights, visual objects, particle systems and edges. The sets are fixed
// once construction finishes.
type Scene struct {
	// Background is the clear color used when Transparent is false.
	Background  Color
	Transparent bool
	// Dark reports the active theme.
	Dark bool

	Lights    []Light
	Objects   []*VisualObject
	Particles []*ParticleSystem
	Edges     []*Edge
}

// NewScene creates an empty, transparent, dark-themed scene.
func NewScene() *Scene {
	return &Scene{
		Background:  darkClear,
		Transparent: true,
		Dark:        true,
	}
}

// Add appends visual objects to the scene.
func (s *Scene) Add(objs ...*VisualObject) {
	s.Objects = append(s.Objects, objs...)
}

// AddParticles appends particle systems to the scene.
func (s *Scene) AddParticles(ps ...*ParticleSystem) {
	s.Particles = append(s.Particles, ps...)
}

// AddEdges appends edges to the scene.
func (s *Scene) AddEdges(edges ...*Edge) {
	s.Edges = append(s.Edges, edges...)
}

// AddLight appends a light to the scene.
func (s *Scene) AddLight(l Light) {
	s.Lights = append(s.Lights, l)
}

// ParticleCount returns the total number of particles across all systems.
func (s *Scene) ParticleCount() int {
	n := 0
	for _, ps := range s.Particles {
		n += ps.Count()
	}
	return n
}

// CountKind returns the number of objects of the given kind.
func (s *Scene) CountKind(k ObjectKind) int {
	n := 0
	for _, o := range s.Objects {
		if o.Kind == k {
			n++
		}
	}
	return n
}

// addDefaultLights installs the ambient and directional lights.
func (s *Scene) addDefaultLights() {
	s.AddLight(Light{Kind: LightAmbient, Color: ColorWhite, Intensity: 0.5})
	s.AddLight(Light{Kind: LightDirectional, Color: ColorWhite, Intensity: 0.8, Position: Vec3{0, 10, 5}})
}

// release frees GPU resources held by the scene's objects.
func (s *Scene) release() {
	for _, o := range s.Objects {
		if o.Sheet != nil {
			o.Sheet.release()
		}
	}
}
