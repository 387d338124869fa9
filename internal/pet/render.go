package pet

import (
	"math"
	"time"

	"github.com/tomz197/playground/internal/draw"
)

var (
	colorSky   = draw.Hex("#87ceeb")
	colorLawn  = draw.Hex("#90ee90")
	colorCloud = draw.Hex("#ffffff")
	colorGrass = draw.Hex("#228b22")
	colorFur   = draw.Hex("#d4a373")
	colorEar   = draw.Hex("#b8894d")
	colorEye   = draw.Hex("#000000")
	colorShine = draw.Hex("#ffffff")
	colorNose  = draw.Hex("#000000")
	colorMouth = draw.Hex("#000000")
)

const (
	cloudAlpha  = 0.7
	grassStep   = 20.0
	grassHeight = 10.0
)

var clouds = [][]draw.Circle{
	{{X: 50, Y: 30, R: 15}, {X: 70, Y: 30, R: 20}, {X: 90, Y: 30, R: 15}},
	{{X: 220, Y: 50, R: 15}, {X: 240, Y: 50, R: 20}, {X: 260, Y: 50, R: 15}},
}

// paintMeadow draws the static background: sky-to-lawn gradient, two clouds
// and a row of grass blades along the bottom edge.
func paintMeadow(c *draw.Canvas) {
	draw.VerticalGradient(c, colorSky, colorLawn)
	for _, cloud := range clouds {
		c.FillCirclesAlpha(cloud, colorCloud, cloudAlpha)
	}
	w, h := c.LogicalWidth(), c.LogicalHeight()
	for x := 0.0; x < w; x += grassStep {
		c.DrawLine(draw.Point{X: x, Y: h}, draw.Point{X: x + 3, Y: h - grassHeight}, colorGrass)
	}
}

// mirror reflects x coordinates about a vertical axis when the pet faces left.
type mirror struct {
	axis float64
	on   bool
}

func (m mirror) x(x float64) float64 {
	if m.on {
		return 2*m.axis - x
	}
	return x
}

func (m mirror) rot(a float64) float64 {
	if m.on {
		return -a
	}
	return a
}

// arc maps an angle range through the mirror; reflection turns a into π-a.
func (m mirror) arc(a0, a1 float64) (float64, float64) {
	if m.on {
		return math.Pi - a1, math.Pi - a0
	}
	return a0, a1
}

// renderPet draws the pet. Jump height and wiggle offset are applied here
// only; the simulated position is never touched.
func renderPet(c *draw.Canvas, s *Sim, now time.Time) {
	p := s.Pet
	x := p.X + s.Presentation.WiggleOffset
	y := p.Y - p.JumpHeight
	size := p.Size
	m := mirror{axis: x + size/2, on: p.Facing == FacingLeft}

	// Body and head
	c.FillEllipse(m.x(x), y, size*0.6, size*0.5, 0, colorFur)
	c.FillCircle(m.x(x+size*0.3), y-size*0.3, size*0.4, colorFur)

	// Ears
	c.FillEllipse(m.x(x+size*0.1), y-size*0.5, size*0.2, size*0.3, m.rot(-0.3), colorEar)
	c.FillEllipse(m.x(x+size*0.5), y-size*0.5, size*0.2, size*0.3, m.rot(0.3), colorEar)

	// Eyes with shine
	c.FillCircle(m.x(x+size*0.2), y-size*0.35, size*0.08, colorEye)
	c.FillCircle(m.x(x+size*0.4), y-size*0.35, size*0.08, colorEye)
	c.FillCircle(m.x(x+size*0.22), y-size*0.37, size*0.03, colorShine)
	c.FillCircle(m.x(x+size*0.42), y-size*0.37, size*0.03, colorShine)

	c.FillCircle(m.x(x+size*0.3), y-size*0.2, size*0.06, colorNose)

	// Wider grin when excited or playful
	r, inset := size*0.12, 0.3
	if p.Mood == MoodExcited || p.Mood == MoodPlayful {
		r, inset = size*0.15, 0.2
	}
	a0, a1 := m.arc(inset, math.Pi-inset)
	c.StrokeArc(m.x(x+size*0.3), y-size*0.15, r, a0, a1, 2, colorMouth)

	// Tail wags unless the pet is merely happy
	wag := 0.0
	if p.Mood != MoodHappy {
		wag = math.Sin(float64(now.UnixMilli())*0.02) * 0.3
	}
	a0, a1 = m.arc(-math.Pi/4+wag, math.Pi/4+wag)
	c.StrokeArc(m.x(x-size*0.5), y+size*0.1, size*0.3, a0, a1, 4, colorFur)
}

// renderParticles draws every particle as a glyph faded by its remaining life.
func renderParticles(c *draw.Canvas, particles []*Particle) {
	for _, p := range particles {
		c.Glyph(p.X, p.Y, p.Kind.Glyph(), p.Color, p.Life)
	}
}
