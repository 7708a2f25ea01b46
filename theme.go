package backdrop

// Cyber palettes shared by the generators.
var (
	particlePalette = []Color{
		Hex(0x00ffff), // cyan
		Hex(0x00ff00), // green
		Hex(0x9933ff), // purple
		Hex(0x33ccff), // light blue
		Hex(0xcc00ff), // magenta
		Hex(0x00cc99), // teal
	}

	meshPalette = []Color{
		Hex(0x00ffff),
		Hex(0x00ff00),
		Hex(0x9933ff),
		Hex(0x33ccff),
		Hex(0xcc00ff),
		Hex(0x00cc99),
		Hex(0x6600cc), // darker purple
		Hex(0x0099cc), // medium blue
	}

	inkPalette = []Color{
		Hex(0x00ffff).WithAlpha(0.6),
		Hex(0x00ff00).WithAlpha(0.6),
		Hex(0x9933ff).WithAlpha(0.6),
		Hex(0x33ccff).WithAlpha(0.6),
	}

	networkPalette = []Color{
		Hex(0x00ffff),
		Hex(0x9933ff),
		Hex(0x33ccff),
	}
)

// Clear colors per theme.
var (
	darkClear  = Color{R: 0.02, G: 0.03, B: 0.07, A: 1}
	lightClear = Color{R: 0.93, G: 0.95, B: 0.98, A: 1}
)

// applyTheme switches the scene between dark and light presentation.
// Light mode draws particles and planes with normal blending.
func applyTheme(s *Scene, dark bool) {
	s.Dark = dark
	blend := BlendAdd
	if dark {
		s.Background = darkClear
	} else {
		s.Background = lightClear
		blend = BlendNormal
	}
	for _, ps := range s.Particles {
		ps.Blend = blend
	}
	for _, o := range s.Objects {
		if o.Kind == KindPlane {
			o.Style.Blend = blend
		}
	}
}
