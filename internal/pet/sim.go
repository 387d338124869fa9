// Package pet implements the virtual pet: seek movement toward a target,
// a small mood state machine, jumps and particle bursts.
package pet

import (
	"math"
	"math/rand"

	"github.com/tomz197/playground/internal/config"
	"github.com/tomz197/playground/internal/physics"
)

// Mood is the pet's current disposition. It only changes how the pet is drawn.
type Mood int

const (
	MoodHappy Mood = iota
	MoodExcited
	MoodPlayful
	MoodLoved
)

func (m Mood) String() string {
	switch m {
	case MoodHappy:
		return "happy"
	case MoodExcited:
		return "excited"
	case MoodPlayful:
		return "playful"
	case MoodLoved:
		return "loved"
	default:
		return "unknown"
	}
}

// Emoji returns the mood's face for the status line.
func (m Mood) Emoji() string {
	switch m {
	case MoodExcited:
		return "🤩"
	case MoodPlayful:
		return "😄"
	case MoodLoved:
		return "🥰"
	default:
		return "😊"
	}
}

// Label returns the mood's display text.
func (m Mood) Label() string {
	switch m {
	case MoodExcited:
		return "Excited!"
	case MoodPlayful:
		return "Playful!"
	case MoodLoved:
		return "Loved!"
	default:
		return "Happy"
	}
}

// Facing is the horizontal direction the pet looks in.
type Facing int

const (
	FacingRight Facing = 1
	FacingLeft  Facing = -1
)

// Pet is the simulated state of the pet.
type Pet struct {
	X, Y             float64
	TargetX, TargetY float64
	Size             float64
	Speed            float64
	Facing           Facing
	Mood             Mood
	Jumping          bool
	JumpHeight       float64 // Vertical render offset, 0..ceiling
}

// Presentation holds render-only offsets. Update never reads it.
type Presentation struct {
	WiggleOffset float64
}

// Sim owns the pet, its particles and its presentation state.
type Sim struct {
	cfg    config.Pet
	width  float64
	height float64
	rng    *rand.Rand

	Pet          Pet
	Particles    []*Particle
	Presentation Presentation

	wiggleCount int
}

// NewSim places a happy pet at the centre of the surface described by cfg.
func NewSim(cfg config.Pet, rng *rand.Rand) *Sim {
	cx, cy := cfg.Width/2, cfg.Height/2
	return &Sim{
		cfg:    cfg,
		width:  cfg.Width,
		height: cfg.Height,
		rng:    rng,
		Pet: Pet{
			X:       cx,
			Y:       cy,
			TargetX: cx,
			TargetY: cy,
			Size:    cfg.Size,
			Speed:   cfg.Speed,
			Facing:  FacingRight,
			Mood:    MoodHappy,
		},
	}
}

// Width returns the surface width.
func (s *Sim) Width() float64 { return s.width }

// Height returns the surface height.
func (s *Sim) Height() float64 { return s.height }

// Update advances one tick: seek, jump, then particles.
func (s *Sim) Update() {
	s.seek()
	s.jump()
	s.updateParticles()
}

func (s *Sim) seek() {
	p := &s.Pet
	x, y, dx, moved := physics.Seek(p.X, p.Y, p.TargetX, p.TargetY, p.Speed, s.cfg.ArriveDistance)
	if !moved {
		return
	}
	p.X, p.Y = x, y
	switch {
	case dx > 0:
		p.Facing = FacingRight
	case dx < 0:
		p.Facing = FacingLeft
	}
}

// jump rises by a fixed step up to the ceiling, then falls back to 0.
func (s *Sim) jump() {
	p := &s.Pet
	if p.Jumping {
		p.JumpHeight += s.cfg.JumpStep
		if p.JumpHeight >= s.cfg.JumpCeiling {
			p.JumpHeight = s.cfg.JumpCeiling
			p.Jumping = false
		}
		return
	}
	if p.JumpHeight > 0 {
		p.JumpHeight = math.Max(p.JumpHeight-s.cfg.JumpStep, 0)
	}
}

func (s *Sim) updateParticles() {
	kept := s.Particles[:0]
	for _, p := range s.Particles {
		if p.step(s.cfg.Gravity, s.cfg.ParticleDecay) {
			p.Release()
			continue
		}
		kept = append(kept, p)
	}
	clear(s.Particles[len(kept):])
	s.Particles = kept
}

// Burst emits a batch of particles at the pet's position. When the batch
// would exceed the particle cap, the oldest particles are dropped first.
func (s *Sim) Burst(kind ParticleKind) {
	n := s.cfg.BurstSize
	if excess := len(s.Particles) + n - s.cfg.MaxParticles; excess > 0 {
		excess = min(excess, len(s.Particles))
		for _, p := range s.Particles[:excess] {
			p.Release()
		}
		s.Particles = append(s.Particles[:0], s.Particles[excess:]...)
	}
	for i := 0; i < n; i++ {
		s.Particles = append(s.Particles, newParticle(s.Pet.X, s.Pet.Y, kind, s.rng))
	}
}

// Feed makes the pet happy and jump, with a bone burst.
func (s *Sim) Feed() {
	s.Pet.Mood = MoodHappy
	s.Pet.Jumping = true
	s.Burst(KindBone)
}

// Play speeds the pet up, sends it to a random spot and throws stars.
// EndPlay undoes the speed and mood change.
func (s *Sim) Play() {
	s.Pet.Mood = MoodPlayful
	s.Pet.Speed = s.cfg.Speed * s.cfg.PlaySpeedFactor
	s.Burst(KindStar)
	m := s.cfg.PlayMargin
	s.Pet.TargetX = s.rng.Float64()*(s.width-2*m) + m
	s.Pet.TargetY = s.rng.Float64()*(s.height-2*m) + m
}

// EndPlay restores the base speed and a happy mood.
func (s *Sim) EndPlay() {
	s.Pet.Speed = s.cfg.Speed
	s.Pet.Mood = MoodHappy
}

// BeginPetting makes the pet feel loved, throws hearts and restarts the wiggle.
func (s *Sim) BeginPetting() {
	s.Pet.Mood = MoodLoved
	s.Burst(KindHeart)
	s.wiggleCount = 0
}

// WiggleStep advances the petting wiggle by one step. The final step clears
// the offset to exactly 0, restores a happy mood and reports done.
func (s *Sim) WiggleStep() (done bool) {
	s.wiggleCount++
	if s.wiggleCount >= s.cfg.WiggleSteps {
		s.Presentation.WiggleOffset = 0
		s.Pet.Mood = MoodHappy
		return true
	}
	s.Presentation.WiggleOffset = math.Sin(float64(s.wiggleCount-1)*0.5) * s.cfg.WiggleAmount
	return false
}

// SetTarget points the pet at (x, y), clamped into the surface.
func (s *Sim) SetTarget(x, y float64) {
	s.Pet.TargetX = physics.Clamp(x, 0, s.width)
	s.Pet.TargetY = physics.Clamp(y, 0, s.height)
}

// SetTargetFromDisplay converts a point on a display of size dw x dh into
// surface coordinates and targets it.
func (s *Sim) SetTargetFromDisplay(px, py, dw, dh float64) {
	if dw <= 0 || dh <= 0 {
		return
	}
	s.SetTarget(px*s.width/dw, py*s.height/dh)
}
