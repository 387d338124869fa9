package arcade

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/tomz197/playground/internal/draw"
	"github.com/tomz197/playground/internal/frame"
)

const (
	labelStart  = "Start Game"
	labelReplay = "Play Again!"
)

// Controller drives a Game on a surface: it owns the frame scheduler,
// the held input and the replay timer. All methods must be called from
// the host's execution stream.
//
// A Controller built without a surface is disabled and ignores every call.
type Controller struct {
	host    frame.Host
	surface *draw.Canvas
	game    *Game
	sched   *frame.Scheduler
	bg      *draw.Background
	logger  *log.Logger

	input       Input
	replayReady bool
	finalScore  int
}

// NewController wires g to surface. The scheduler stays stopped until Start.
func NewController(host frame.Host, surface *draw.Canvas, g *Game, logger *log.Logger) *Controller {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	c := &Controller{
		host:    host,
		surface: surface,
		game:    g,
		logger:  logger,
	}
	if surface == nil {
		logger.Warn("arcade surface missing, controller disabled")
		return c
	}
	c.bg = draw.NewBackground(paintGrid)
	c.sched = frame.New(host, c.tick)
	c.Redraw()
	return c
}

// Enabled reports whether the controller has a surface to drive.
func (c *Controller) Enabled() bool {
	return c.sched != nil
}

// Start begins a new round. It only acts while idle: during a round and
// until the replay delay after a game over has passed it does nothing.
func (c *Controller) Start() {
	if !c.Enabled() || c.game.Phase() != PhaseIdle {
		return
	}
	c.replayReady = false
	c.input.Clear()
	c.game.Start()
	c.sched.Start()
	c.logger.Info("round started", "speed", c.game.Speed())
}

// SetVisible opens or closes the scheduler's visibility gate.
func (c *Controller) SetVisible(visible bool) {
	if !c.Enabled() || c.sched.Visible() == visible {
		return
	}
	c.sched.SetVisible(visible)
	c.logger.Debug("visibility changed", "visible", visible, "pending", c.sched.Pending())
}

// KeyDown marks a direction key as held. Ignored unless a round is running.
func (c *Controller) KeyDown(k Key) {
	if !c.Enabled() || c.game.Phase() != PhaseRunning {
		return
	}
	c.input.Press(k)
}

// KeyUp releases a direction key.
func (c *Controller) KeyUp(k Key) {
	if !c.Enabled() {
		return
	}
	c.input.Release(k)
}

// TouchAt activates the touch zone under display x on a surface of the given display width.
// Ignored unless a round is running.
func (c *Controller) TouchAt(x, width float64) {
	if !c.Enabled() || c.game.Phase() != PhaseRunning {
		return
	}
	c.input.Touch(x, width)
}

// TouchEnd clears the touch zone.
func (c *Controller) TouchEnd() {
	if !c.Enabled() {
		return
	}
	c.input.EndTouch()
}

// Phase returns the game phase.
func (c *Controller) Phase() Phase {
	return c.game.Phase()
}

// Score returns the running score.
func (c *Controller) Score() int {
	return c.game.Score()
}

// FinalScore returns the score the last round ended with.
func (c *Controller) FinalScore() int {
	return c.finalScore
}

// ReplayReady reports whether the start control is offered again after a game over.
func (c *Controller) ReplayReady() bool {
	return c.replayReady
}

// StartLabel is the text of the start control, or "" while it is hidden.
func (c *Controller) StartLabel() string {
	switch {
	case c.game.Phase() != PhaseIdle:
		return ""
	case c.replayReady:
		return labelReplay
	default:
		return labelStart
	}
}

// Running reports whether the tick chain is live.
func (c *Controller) Running() bool {
	return c.Enabled() && c.sched.Running()
}

// Pending reports whether a tick is outstanding.
func (c *Controller) Pending() bool {
	return c.Enabled() && c.sched.Pending()
}

// Redraw paints the current state without stepping the simulation.
// Used for the idle screen and after the surface is resized.
func (c *Controller) Redraw() {
	if !c.Enabled() {
		return
	}
	switch c.game.Phase() {
	case PhaseIdle:
		renderIdle(c.surface, c.bg, c.game, c.StartLabel())
	case PhaseGameOver:
		renderScene(c.surface, c.bg, c.game)
		renderGameOver(c.surface, c.finalScore)
	default:
		renderScene(c.surface, c.bg, c.game)
	}
}

// tick renders the current state then advances it, so a collision is shown
// on the frame where it happened before the overlay covers it.
func (c *Controller) tick() bool {
	renderScene(c.surface, c.bg, c.game)
	if !c.game.Step(c.input) {
		return true
	}
	c.gameOver()
	return false
}

func (c *Controller) gameOver() {
	c.finalScore = c.game.Score()
	c.input.Clear()
	renderGameOver(c.surface, c.finalScore)
	c.logger.Info("game over", "score", c.finalScore, "speed", c.game.Speed())

	c.host.AfterFunc(c.game.cfg.ReplayDelay, c.offerReplay)
}

func (c *Controller) offerReplay() {
	c.game.Reset()
	c.replayReady = true
	c.Redraw()
	c.logger.Debug("replay offered")
}
