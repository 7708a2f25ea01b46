package backdrop

import (
	"fmt"
	"math/rand/v2"

	"github.com/chewxy/math32"
)

// Particle motion constants.
const (
	particleBound     = 18   // per-axis reflection threshold
	particleWave      = 0.01 // amplitude of the time-based wave
	particlePhase     = 0.1  // wave phase offset per particle index
	particlePointer   = 0.01 // pointer coupling per frame
	particleJitterMin = 0.8  // speed multiplier range after a bounce
	particleJitterMax = 1.2
)

// ParticleSystem is a fixed-size batch of particles stored in parallel
// arrays for bulk update. Positions, Colors and Speeds hold 3 values per
// particle; Sizes holds one.
type ParticleSystem struct {
	Name      string
	Positions []float32
	Colors    []float32
	Sizes     []float32
	Speeds    []float32

	// PointSize is the base world-space size multiplied by each entry of Sizes.
	PointSize float64
	Opacity   float64
	Blend     BlendMode
}

// NewParticleSystem allocates a system of count particles with zeroed arrays.
func NewParticleSystem(name string, count int) *ParticleSystem {
	if count < 0 {
		count = 0
	}
	return &ParticleSystem{
		Name:      name,
		Positions: make([]float32, count*3),
		Colors:    make([]float32, count*3),
		Sizes:     make([]float32, count),
		Speeds:    make([]float32, count*3),
		PointSize: 1,
		Opacity:   1,
	}
}

// Count returns the number of particles.
func (ps *ParticleSystem) Count() int {
	return len(ps.Sizes)
}

// Validate reports an error if the parallel arrays disagree in length.
func (ps *ParticleSystem) Validate() error {
	n := len(ps.Sizes)
	if len(ps.Positions) != n*3 || len(ps.Colors) != n*3 || len(ps.Speeds) != n*3 {
		return fmt.Errorf("particle system %q: array lengths %d/%d/%d, want %d for %d particles",
			ps.Name, len(ps.Positions), len(ps.Colors), len(ps.Speeds), n*3, n)
	}
	return nil
}

// Position returns the position of particle i.
func (ps *ParticleSystem) Position(i int) Vec3 {
	i3 := i * 3
	return Vec3{float64(ps.Positions[i3]), float64(ps.Positions[i3+1]), float64(ps.Positions[i3+2])}
}

// update advances every particle by one frame. t is the global animation
// time scalar; px and py the eased pointer.
func (ps *ParticleSystem) update(t float64, px, py float64, rng *rand.Rand) {
	tt := float32(t)
	mx := float32(px) * particlePointer
	my := float32(py) * particlePointer
	pos := ps.Positions
	spd := ps.Speeds

	for i := range ps.Sizes {
		i3 := i * 3

		pos[i3] += spd[i3]
		pos[i3+1] += spd[i3+1]
		pos[i3+2] += spd[i3+2]

		phase := tt + float32(i)*particlePhase
		pos[i3] += math32.Sin(phase) * particleWave
		pos[i3+1] += math32.Cos(phase) * particleWave

		pos[i3] += pointerPush(pos[i3], mx)
		pos[i3+1] += pointerPush(pos[i3+1], my)

		for axis := 0; axis < 3; axis++ {
			k := i3 + axis
			if math32.Abs(pos[k]) <= particleBound {
				continue
			}
			// After a bounce the speed always points back towards the origin.
			jitter := float32(particleJitterMin + rng.Float64()*(particleJitterMax-particleJitterMin))
			speed := math32.Abs(spd[k]) * jitter
			if pos[k] > 0 {
				speed = -speed
			}
			spd[k] = speed
		}
	}
}

// pointerPush returns the pointer offset to apply to a particle coordinate p.
// Past the bound the pointer may pull a particle back in but never further out.
func pointerPush(p, push float32) float32 {
	if math32.Abs(p) > particleBound && (p > 0) == (push > 0) {
		return 0
	}
	return push
}
