package arcade

import (
	"math/rand"
	"testing"
	"time"

	"github.com/tomz197/playground/internal/draw"
	"github.com/tomz197/playground/internal/frame"
)

func newTestController(t *testing.T) (*Controller, *frame.ManualHost) {
	t.Helper()
	host := frame.NewManualHost(time.Unix(0, 0))
	g := NewGame(quietConfig(), rand.New(rand.NewSource(1)))
	surface := draw.NewScaledCanvas(40, 15, g.Width(), g.Height())
	return NewController(host, surface, g, nil), host
}

// crash places an obstacle that hits the player on the next step.
func crash(c *Controller) {
	p := c.game.Player
	c.game.Obstacles = append(c.game.Obstacles, &Obstacle{X: p.X, Y: p.Y, Width: 20, Height: 30})
}

func TestControllerIdleUntilStarted(t *testing.T) {
	c, host := newTestController(t)
	if host.PendingFrames() != 0 || c.Running() {
		t.Fatal("ticks requested before Start")
	}
	if c.StartLabel() != "Start Game" {
		t.Fatalf("label = %q", c.StartLabel())
	}

	c.Start()
	if !c.Pending() || host.PendingFrames() != 1 {
		t.Fatal("Start did not request a tick")
	}
	if c.StartLabel() != "" {
		t.Fatalf("start control visible while running: %q", c.StartLabel())
	}
}

func TestControllerMovesWithHeldKey(t *testing.T) {
	c, host := newTestController(t)
	c.KeyDown(KeyRight) // Ignored while idle
	c.Start()
	host.Frame()
	if c.game.Player.X != 185 {
		t.Fatalf("key pressed before start moved player to %v", c.game.Player.X)
	}

	c.KeyDown(KeyRight)
	host.Frames(2)
	if c.game.Player.X != 195 {
		t.Fatalf("x = %v, want 195", c.game.Player.X)
	}
	c.KeyUp(KeyRight)
	host.Frame()
	if c.game.Player.X != 195 {
		t.Fatalf("player kept moving after release: %v", c.game.Player.X)
	}
}

func TestControllerGameOverAndReplay(t *testing.T) {
	c, host := newTestController(t)
	c.Start()
	host.Frame()
	c.game.score = 40
	crash(c)
	host.Frame()

	if c.Phase() != PhaseGameOver || c.Running() || host.PendingFrames() != 0 {
		t.Fatalf("after crash phase=%v running=%v frames=%d", c.Phase(), c.Running(), host.PendingFrames())
	}
	if c.FinalScore() != 40 {
		t.Fatalf("final score = %d, want 40", c.FinalScore())
	}
	if c.StartLabel() != "" || c.ReplayReady() {
		t.Fatal("replay offered before the delay")
	}

	host.Advance(1999 * time.Millisecond)
	if c.ReplayReady() {
		t.Fatal("replay offered early")
	}
	host.Advance(time.Millisecond)
	if !c.ReplayReady() || c.Phase() != PhaseIdle {
		t.Fatalf("after delay ready=%v phase=%v", c.ReplayReady(), c.Phase())
	}
	if c.StartLabel() != "Play Again!" {
		t.Fatalf("label = %q, want Play Again!", c.StartLabel())
	}

	c.Start()
	if c.Phase() != PhaseRunning || c.ReplayReady() || c.Score() != 0 {
		t.Fatalf("replay start phase=%v ready=%v score=%d", c.Phase(), c.ReplayReady(), c.Score())
	}
}

func TestControllerStartWaitsForReplayDelay(t *testing.T) {
	c, host := newTestController(t)
	c.Start()
	crash(c)
	host.Frame()
	if host.PendingTimers() != 1 {
		t.Fatalf("pending timers = %d, want 1", host.PendingTimers())
	}

	c.Start()
	if c.Phase() != PhaseGameOver || host.PendingFrames() != 0 {
		t.Fatalf("Start during game over: phase=%v frames=%d", c.Phase(), host.PendingFrames())
	}

	host.Advance(2 * time.Second)
	if !c.ReplayReady() || c.Phase() != PhaseIdle {
		t.Fatalf("replay not offered: ready=%v phase=%v", c.ReplayReady(), c.Phase())
	}
	c.Start()
	if c.Phase() != PhaseRunning || host.PendingTimers() != 0 {
		t.Fatalf("replay start: phase=%v timers=%d", c.Phase(), host.PendingTimers())
	}
}

func TestControllerStartIgnoredWhileRunning(t *testing.T) {
	c, host := newTestController(t)
	c.Start()
	c.game.Obstacles = append(c.game.Obstacles, exitingObstacle(c.game))
	host.Frame()
	c.Start()
	if c.Score() != 10 {
		t.Fatalf("Start while running reset score to %d", c.Score())
	}
}

func TestControllerVisibilityGate(t *testing.T) {
	c, host := newTestController(t)
	c.Start()
	c.SetVisible(false)
	if host.PendingFrames() != 0 || !c.Running() {
		t.Fatalf("hidden: frames=%d running=%v", host.PendingFrames(), c.Running())
	}
	y := c.game.Player.Y
	host.Frames(3)

	c.SetVisible(true)
	if host.PendingFrames() != 1 {
		t.Fatal("showing did not resume ticking")
	}
	if c.game.Player.Y != y {
		t.Fatal("state changed while hidden")
	}
}

func TestControllerTouch(t *testing.T) {
	c, host := newTestController(t)
	c.Start()
	c.TouchAt(5, 40)
	host.Frame()
	if c.game.Player.X != 180 {
		t.Fatalf("x = %v, want 180", c.game.Player.X)
	}
	c.TouchEnd()
	host.Frame()
	if c.game.Player.X != 180 {
		t.Fatalf("touch release ignored, x = %v", c.game.Player.X)
	}
}

func TestControllerWithoutSurfaceIsDisabled(t *testing.T) {
	host := frame.NewManualHost(time.Unix(0, 0))
	g := NewGame(quietConfig(), rand.New(rand.NewSource(1)))
	c := NewController(host, nil, g, nil)

	c.Start()
	c.KeyDown(KeyLeft)
	c.SetVisible(false)
	c.Redraw()
	if c.Enabled() || c.Running() || host.PendingFrames() != 0 {
		t.Fatal("disabled controller scheduled work")
	}
	if g.Phase() != PhaseIdle {
		t.Fatalf("disabled controller started the game: %v", g.Phase())
	}
}
