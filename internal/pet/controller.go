package pet

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/tomz197/playground/internal/draw"
	"github.com/tomz197/playground/internal/frame"
)

// Controller drives a Sim on a surface. The pet runs from construction on;
// only the visibility gate pauses it. All methods must be called from the
// host's execution stream.
//
// A Controller built without a surface is disabled and ignores every call.
type Controller struct {
	host    frame.Host
	surface *draw.Canvas
	sim     *Sim
	sched   *frame.Scheduler
	bg      *draw.Background
	logger  *log.Logger

	playEnd frame.Timer
	wiggle  frame.Timer
}

// NewController wires sim to surface and starts ticking.
func NewController(host frame.Host, surface *draw.Canvas, sim *Sim, logger *log.Logger) *Controller {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	c := &Controller{
		host:    host,
		surface: surface,
		sim:     sim,
		logger:  logger,
	}
	if surface == nil {
		logger.Warn("pet surface missing, controller disabled")
		return c
	}
	c.bg = draw.NewBackground(paintMeadow)
	c.sched = frame.New(host, c.tick)
	c.sched.Start()
	return c
}

// Enabled reports whether the controller has a surface to drive.
func (c *Controller) Enabled() bool {
	return c.sched != nil
}

// Mood returns the pet's current mood.
func (c *Controller) Mood() Mood {
	return c.sim.Pet.Mood
}

// Feed makes the pet jump with a bone burst.
func (c *Controller) Feed() {
	if !c.Enabled() {
		return
	}
	c.sim.Feed()
	c.logger.Debug("fed")
}

// Play sends the pet running for the play duration. A second Play restarts
// the countdown instead of letting the earlier one cut it short.
func (c *Controller) Play() {
	if !c.Enabled() {
		return
	}
	if c.playEnd != nil {
		c.playEnd.Stop()
	}
	c.sim.Play()
	c.playEnd = c.host.AfterFunc(c.sim.cfg.PlayDuration, c.endPlay)
	c.logger.Debug("playing", "target_x", c.sim.Pet.TargetX, "target_y", c.sim.Pet.TargetY)
}

func (c *Controller) endPlay() {
	c.playEnd = nil
	c.sim.EndPlay()
	c.logger.Debug("play over")
}

// Pet starts a wiggle that steps at a fixed interval until it finishes.
// Petting again restarts it.
func (c *Controller) Pet() {
	if !c.Enabled() {
		return
	}
	if c.wiggle != nil {
		c.wiggle.Stop()
	}
	c.sim.BeginPetting()
	c.wiggle = c.host.AfterFunc(c.sim.cfg.WiggleInterval, c.wiggleStep)
	c.logger.Debug("petted")
}

func (c *Controller) wiggleStep() {
	if c.sim.WiggleStep() {
		c.wiggle = nil
		return
	}
	c.wiggle = c.host.AfterFunc(c.sim.cfg.WiggleInterval, c.wiggleStep)
}

// ClickAt targets the point (px, py) on a display of size dw x dh.
func (c *Controller) ClickAt(px, py, dw, dh float64) {
	if !c.Enabled() {
		return
	}
	c.sim.SetTargetFromDisplay(px, py, dw, dh)
}

// SetVisible opens or closes the scheduler's visibility gate.
func (c *Controller) SetVisible(visible bool) {
	if !c.Enabled() || c.sched.Visible() == visible {
		return
	}
	c.sched.SetVisible(visible)
	c.logger.Debug("visibility changed", "visible", visible, "pending", c.sched.Pending())
}

// Running reports whether the tick chain is live.
func (c *Controller) Running() bool {
	return c.Enabled() && c.sched.Running()
}

// Pending reports whether a tick is outstanding.
func (c *Controller) Pending() bool {
	return c.Enabled() && c.sched.Pending()
}

func (c *Controller) tick() bool {
	c.bg.Blit(c.surface)
	c.sim.Update()
	renderPet(c.surface, c.sim, c.host.Now())
	renderParticles(c.surface, c.sim.Particles)
	return true
}
