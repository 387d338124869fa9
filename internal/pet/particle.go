package pet

import (
	"math/rand"
	"sync"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/tomz197/playground/internal/draw"
)

// ParticleKind selects a particle's glyph and palette.
type ParticleKind int

const (
	KindHeart ParticleKind = iota
	KindStar
	KindBone
)

func (k ParticleKind) String() string {
	switch k {
	case KindHeart:
		return "heart"
	case KindStar:
		return "star"
	case KindBone:
		return "bone"
	default:
		return "unknown"
	}
}

// Glyph returns the character a particle of this kind is drawn with.
func (k ParticleKind) Glyph() rune {
	switch k {
	case KindHeart:
		return '♥'
	case KindStar:
		return '★'
	default:
		return '∞'
	}
}

var palettes = [...][3]colorful.Color{
	KindHeart: {draw.Hex("#ff69b4"), draw.Hex("#ff1493"), draw.Hex("#ffc0cb")},
	KindStar:  {draw.Hex("#ffd700"), draw.Hex("#ffff00"), draw.Hex("#ffa500")},
	KindBone:  {draw.Hex("#f5deb3"), draw.Hex("#deb887"), draw.Hex("#d2b48c")},
}

// Palette returns the colours a particle of this kind picks from.
func (k ParticleKind) Palette() [3]colorful.Color {
	if k < 0 || int(k) >= len(palettes) {
		return palettes[KindBone]
	}
	return palettes[k]
}

// particlePool is a sync.Pool for reusing Particle objects to reduce allocations.
var particlePool = sync.Pool{
	New: func() any {
		return &Particle{}
	},
}

// Particle is a short-lived glyph thrown up by a pet action.
type Particle struct {
	X, Y   float64
	VX, VY float64
	Life   float64 // 1 at birth, culled at or below 0
	Kind   ParticleKind
	Color  colorful.Color
}

// newParticle takes a particle from the pool and launches it from (x, y)
// with a random upward velocity.
func newParticle(x, y float64, kind ParticleKind, rng *rand.Rand) *Particle {
	p := particlePool.Get().(*Particle)
	palette := kind.Palette()
	p.X = x
	p.Y = y
	p.VX = (rng.Float64() - 0.5) * 4
	p.VY = -rng.Float64()*4 - 2
	p.Life = 1
	p.Kind = kind
	p.Color = palette[rng.Intn(len(palette))]
	return p
}

// Release returns the particle to the pool for reuse.
// Should be called when the particle is removed from the simulation.
func (p *Particle) Release() {
	particlePool.Put(p)
}

// step integrates one tick and ages the particle. Returns true once it has expired.
func (p *Particle) step(gravity, decay float64) bool {
	p.X += p.VX
	p.Y += p.VY
	p.VY += gravity
	p.Life -= decay
	return p.Life <= 0
}
