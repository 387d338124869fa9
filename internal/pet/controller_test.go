package pet

import (
	"math/rand"
	"testing"
	"time"

	"github.com/tomz197/playground/internal/config"
	"github.com/tomz197/playground/internal/draw"
	"github.com/tomz197/playground/internal/frame"
)

func newTestController(t *testing.T) (*Controller, *frame.ManualHost, *draw.Canvas) {
	t.Helper()
	host := frame.NewManualHost(time.Unix(0, 0))
	sim := NewSim(config.Default().Pet, rand.New(rand.NewSource(1)))
	surface := draw.NewScaledCanvas(60, 20, sim.Width(), sim.Height())
	return NewController(host, surface, sim, nil), host, surface
}

func TestControllerRunsFromStart(t *testing.T) {
	c, host, _ := newTestController(t)
	if !c.Running() || host.PendingFrames() != 1 {
		t.Fatalf("running=%v frames=%d, want a tick outstanding", c.Running(), host.PendingFrames())
	}
	host.Frames(10)
	if host.PendingFrames() != 1 {
		t.Fatal("tick chain broke")
	}
}

func TestControllerDrawsPet(t *testing.T) {
	c, host, surface := newTestController(t)
	host.Frame()
	if got := surface.At(c.sim.Pet.X, c.sim.Pet.Y); got != colorFur {
		t.Fatalf("pixel under pet = %v, want fur", got)
	}
	if got := surface.At(5, 5); got == colorFur {
		t.Fatal("sky painted with fur")
	}
}

func TestPetScenario(t *testing.T) {
	c, host, _ := newTestController(t)
	c.Pet()

	hearts := 0
	for _, p := range c.sim.Particles {
		if p.Kind == KindHeart {
			hearts++
		}
	}
	if len(c.sim.Particles) != 10 || hearts != 10 {
		t.Fatalf("particles=%d hearts=%d, want 10 hearts", len(c.sim.Particles), hearts)
	}
	if c.Mood() != MoodLoved {
		t.Fatalf("mood = %v, want loved", c.Mood())
	}

	host.Advance(999 * time.Millisecond)
	if c.Mood() != MoodLoved {
		t.Fatal("wiggle ended early")
	}
	host.Advance(time.Millisecond)
	if c.Mood() != MoodHappy {
		t.Fatalf("mood after 20x50ms = %v, want happy", c.Mood())
	}
	if c.sim.Presentation.WiggleOffset != 0 {
		t.Fatalf("wiggle offset = %v, want exactly 0", c.sim.Presentation.WiggleOffset)
	}
	if host.PendingTimers() != 0 {
		t.Fatal("wiggle timer still armed")
	}
}

func TestPettingAgainRestartsWiggle(t *testing.T) {
	c, host, _ := newTestController(t)
	c.Pet()
	host.Advance(500 * time.Millisecond)
	c.Pet()
	if host.PendingTimers() != 1 {
		t.Fatalf("pending timers = %d, want a single wiggle chain", host.PendingTimers())
	}
	host.Advance(999 * time.Millisecond)
	if c.Mood() != MoodLoved {
		t.Fatal("first wiggle chain ended the second one")
	}
	host.Advance(time.Millisecond)
	if c.Mood() != MoodHappy {
		t.Fatal("restarted wiggle did not finish")
	}
}

func TestPlayRevertsAfterDuration(t *testing.T) {
	c, host, _ := newTestController(t)
	c.Play()
	if c.Mood() != MoodPlayful || c.sim.Pet.Speed != 4.5 {
		t.Fatalf("mood=%v speed=%v", c.Mood(), c.sim.Pet.Speed)
	}
	host.Advance(2 * time.Second)
	c.Play()
	host.Advance(time.Second + time.Millisecond)
	if c.Mood() != MoodPlayful {
		t.Fatal("first play timer cut the second play short")
	}
	host.Advance(2 * time.Second)
	if c.Mood() != MoodHappy || c.sim.Pet.Speed != 1.5 {
		t.Fatalf("after play mood=%v speed=%v", c.Mood(), c.sim.Pet.Speed)
	}
}

func TestTimersRunWhileHidden(t *testing.T) {
	c, host, _ := newTestController(t)
	c.SetVisible(false)
	if host.PendingFrames() != 0 || c.Pending() {
		t.Fatal("hidden pet still ticking")
	}
	c.Play()
	host.Advance(3 * time.Second)
	if c.Mood() != MoodHappy {
		t.Fatal("play did not revert while hidden")
	}
	c.SetVisible(true)
	if host.PendingFrames() != 1 {
		t.Fatal("showing did not resume ticking")
	}
}

func TestFeedAndClick(t *testing.T) {
	c, host, _ := newTestController(t)
	c.Feed()
	host.Frame()
	if c.sim.Pet.JumpHeight != 5 {
		t.Fatalf("jump height = %v, want 5", c.sim.Pet.JumpHeight)
	}
	c.ClickAt(0, 0, 60, 20)
	if c.sim.Pet.TargetX != 0 || c.sim.Pet.TargetY != 0 {
		t.Fatalf("target = (%v,%v)", c.sim.Pet.TargetX, c.sim.Pet.TargetY)
	}
}

func TestControllerWithoutSurfaceIsDisabled(t *testing.T) {
	host := frame.NewManualHost(time.Unix(0, 0))
	sim := NewSim(config.Default().Pet, rand.New(rand.NewSource(1)))
	c := NewController(host, nil, sim, nil)

	c.Feed()
	c.Play()
	c.Pet()
	c.ClickAt(1, 1, 2, 2)
	c.SetVisible(false)
	if c.Enabled() || host.PendingFrames() != 0 || host.PendingTimers() != 0 {
		t.Fatal("disabled controller scheduled work")
	}
	if len(sim.Particles) != 0 || sim.Pet.Mood != MoodHappy {
		t.Fatal("disabled controller touched the simulation")
	}
}
