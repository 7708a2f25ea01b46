package backdrop

import (
	"image/color"
	"math/rand/v2"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

func TestHex(t *testing.T) {
	c := Hex(0x336699)
	assertNear(t, "R", c.R, 0x33/255.0)
	assertNear(t, "G", c.G, 0x66/255.0)
	assertNear(t, "B", c.B, 0x99/255.0)
	assertNear(t, "A", c.A, 1)
	if got := c.WithAlpha(0.5).A; got != 0.5 {
		t.Errorf("WithAlpha A = %v, want 0.5", got)
	}
}

func TestColorToRGBA(t *testing.T) {
	tests := []struct {
		in   Color
		want color.RGBA
	}{
		{ColorWhite, color.RGBA{255, 255, 255, 255}},
		{Color{1, 0.5, 0, 0.5}, color.RGBA{127, 63, 0, 127}},
		{Color{2, -1, 0, 1}, color.RGBA{255, 0, 0, 255}},
		{Color{}, color.RGBA{}},
	}
	for _, tt := range tests {
		if got := tt.in.toRGBA(); got != tt.want {
			t.Errorf("%v.toRGBA() = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestRange(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	if got := (Range{3, 3}).Random(rng); got != 3 {
		t.Errorf("degenerate Random = %v, want 3", got)
	}
	r := Range{-2, 5}
	for range 1000 {
		if v := r.Random(rng); v < -2 || v >= 5 {
			t.Fatalf("Random = %v, outside [-2, 5)", v)
		}
	}
	s := Symmetric(0.01)
	assertNear(t, "Symmetric Min", s.Min, -0.005)
	assertNear(t, "Symmetric Max", s.Max, 0.005)
}

func TestParseVariant(t *testing.T) {
	tests := []struct {
		name string
		want Variant
		ok   bool
	}{
		{"", VariantCode, true},
		{"code", VariantCode, true},
		{"network", VariantNetwork, true},
		{"matrix", VariantCode, false},
	}
	for _, tt := range tests {
		got, ok := ParseVariant(tt.name)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseVariant(%q) = %v, %v; want %v, %v", tt.name, got, ok, tt.want, tt.ok)
		}
	}
	for _, v := range []Variant{VariantCode, VariantNetwork} {
		if got, ok := ParseVariant(v.String()); !ok || got != v {
			t.Errorf("ParseVariant(%q) = %v, %v", v.String(), got, ok)
		}
	}
}

func TestKindString(t *testing.T) {
	for k, want := range map[ObjectKind]string{KindMesh: "mesh", KindPlane: "plane", KindNode: "node", ObjectKind(9): "unknown"} {
		if got := k.String(); got != want {
			t.Errorf("ObjectKind(%d).String() = %q, want %q", k, got, want)
		}
	}
}

func TestBlendModeEbitenBlend(t *testing.T) {
	if BlendAdd.EbitenBlend() != ebiten.BlendLighter {
		t.Error("BlendAdd is not BlendLighter")
	}
	if BlendNormal.EbitenBlend() != ebiten.BlendSourceOver {
		t.Error("BlendNormal is not BlendSourceOver")
	}
}

func TestApplyTheme(t *testing.T) {
	s := populated(VariantCode, 1)
	applyTheme(s, false)
	if s.Dark || s.Background != lightClear {
		t.Errorf("light theme: dark=%v background=%v", s.Dark, s.Background)
	}
	if s.Particles[0].Blend != BlendNormal {
		t.Error("particles still additive in light theme")
	}
	for _, o := range s.Objects {
		if o.Kind == KindPlane && o.Style.Blend != BlendNormal {
			t.Error("plane still additive in light theme")
		}
	}
	applyTheme(s, true)
	if !s.Dark || s.Background != darkClear || s.Particles[0].Blend != BlendAdd {
		t.Error("dark theme not restored")
	}
}
