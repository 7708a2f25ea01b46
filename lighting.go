package backdrop

import "math"

// lighting is the scene lights reduced to what flat shading needs.
type lighting struct {
	ambient     Color // color already scaled by intensity
	directional []directionalLight
}

type directionalLight struct {
	dir   Vec3 // unit vector from the surface towards the light
	color Color
}

func collectLights(lights []Light) lighting {
	var l lighting
	for _, lt := range lights {
		c := Color{lt.Color.R * lt.Intensity, lt.Color.G * lt.Intensity, lt.Color.B * lt.Intensity, 1}
		switch lt.Kind {
		case LightAmbient:
			l.ambient.R += c.R
			l.ambient.G += c.G
			l.ambient.B += c.B
		case LightDirectional:
			dir := lt.Position.Normalize()
			if dir == (Vec3{}) {
				continue
			}
			l.directional = append(l.directional, directionalLight{dir: dir, color: c})
		}
	}
	return l
}

// shade returns the flat color of the triangle (a, b, c) seen from eye.
// The face normal is flipped towards the eye, so winding does not matter.
func (l lighting) shade(st Style, a, b, c, eye Vec3) Color {
	n := b.Sub(a).Cross(c.Sub(a)).Normalize()
	center := a.Add(b).Add(c).Scale(1.0 / 3)
	view := eye.Sub(center).Normalize()
	if n.Dot(view) < 0 {
		n = n.Scale(-1)
	}

	// Metals keep less diffuse light and gain a tighter highlight as
	// roughness drops.
	diffuseWeight := 1 - st.Metalness*0.5
	shininess := 2 / math.Max(st.Roughness*st.Roughness, 1e-3)

	r := st.Color.R * l.ambient.R
	g := st.Color.G * l.ambient.G
	bl := st.Color.B * l.ambient.B
	for _, d := range l.directional {
		diff := math.Max(n.Dot(d.dir), 0) * diffuseWeight
		half := d.dir.Add(view).Normalize()
		specular := math.Pow(math.Max(n.Dot(half), 0), shininess) * st.Metalness
		r += (st.Color.R*diff + specular) * d.color.R
		g += (st.Color.G*diff + specular) * d.color.G
		bl += (st.Color.B*diff + specular) * d.color.B
	}
	return Color{clamp01(r), clamp01(g), clamp01(bl), st.Color.A}
}
