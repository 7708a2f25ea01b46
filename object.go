package backdrop

// Orbit describes circular motion around the Y axis through the origin.
type Orbit struct {
	Radius float64
	Speed  float64 // radians per frame
	Theta  float64 // current angle in radians
}

// Motion holds the per-frame motion of a VisualObject.
type Motion struct {
	// RotationSpeed is added to the rotation every frame.
	RotationSpeed Vec3
	// Drift is added to the position every frame. Its components flip sign
	// when the object crosses the drift bound.
	Drift Vec3
	// Orbit, when set, overrides X and Z after drift is applied.
	Orbit *Orbit
}

// Style controls how a VisualObject is drawn.
type Style struct {
	Color       Color
	Opacity     float64
	Wireframe   bool
	Blend       BlendMode
	Material    Material
	Roughness   float64
	Metalness   float64
	DoubleSided bool
}

// VisualObject is a single drawable owned by a Scene. Kind selects which
// of the optional fields are meaningful: Geometry for meshes and nodes,
// Sheet for planes.
type VisualObject struct {
	Kind ObjectKind
	Name string

	Position Vec3
	Rotation Vec3
	Scale    float64

	Geometry *Geometry
	Sheet    *CodeSheet
	// Size is the plane width and height in world units.
	Size float64

	Style  Style
	Motion Motion
}

// orbiting reports whether the object follows an orbit.
func (o *VisualObject) orbiting() bool {
	return o.Motion.Orbit != nil
}

// worldVertex transforms a local geometry vertex by the object's scale,
// rotation and position.
func (o *VisualObject) worldVertex(v Vec3) Vec3 {
	return v.Scale(o.Scale).Rotate(o.Rotation).Add(o.Position)
}
