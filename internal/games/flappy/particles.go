package flappy

import (
	"math"
	"math/rand"
)

// Particle is a short-lived cosmetic dot emitted when a pair is scored.
type Particle struct {
	X, Y   float64
	VX, VY float64
	Age    float64
	Life   float64
	Tier   int
}

// Fade returns the remaining life in [0, 1].
func (p Particle) Fade() float64 {
	if p.Life <= 0 {
		return 0
	}
	return math.Max(0, 1-p.Age/p.Life)
}

// Particles is a small particle system. Dead particles are compacted in place
// so the backing array is reused between bursts.
type Particles struct {
	live []Particle
	rng  *rand.Rand
}

// NewParticles creates an empty particle system.
func NewParticles(seed int64) *Particles {
	return &Particles{
		live: make([]Particle, 0, 32),
		rng:  rand.New(rand.NewSource(seed)),
	}
}

// Burst emits n particles at (x, y) styled by tier.
func (ps *Particles) Burst(x, y float64, n, tier int, life float64) {
	for range n {
		angle := ps.rng.Float64() * 2 * math.Pi
		speed := 6 + ps.rng.Float64()*10
		ps.live = append(ps.live, Particle{
			X:    x,
			Y:    y,
			VX:   math.Cos(angle) * speed,
			VY:   math.Sin(angle) * speed * 0.5, // Cells are about twice as tall as wide
			Life: life,
			Tier: tier,
		})
	}
}

// Update moves particles and drops expired ones.
func (ps *Particles) Update(dt float64) {
	alive := ps.live[:0]
	for _, p := range ps.live {
		p.Age += dt
		if p.Age >= p.Life {
			continue
		}
		p.X += p.VX * dt
		p.Y += p.VY * dt
		alive = append(alive, p)
	}
	ps.live = alive
}

// Live returns the particles still alive.
func (ps *Particles) Live() []Particle {
	return ps.live
}

// Clear removes all particles.
func (ps *Particles) Clear() {
	ps.live = ps.live[:0]
}
