// Package loop hosts the arcade and the pet on a terminal: it owns the
// event loop, reads input, lays out the panes and presents each frame.
package loop

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"
	"github.com/tomz197/playground/internal/arcade"
	"github.com/tomz197/playground/internal/config"
	"github.com/tomz197/playground/internal/draw"
	"github.com/tomz197/playground/internal/frame"
	"github.com/tomz197/playground/internal/input"
	"github.com/tomz197/playground/internal/pet"
)

const helpText = "←/→ move · SPACE start · click/drag steer · F feed · P play · H pet · click pet to call · Tab switch · Q quit"

// Options configures a playground session.
type Options struct {
	Tuning       config.Tuning
	TermSizeFunc draw.TermSizeFunc
	Logger       *log.Logger
	Seed         int64         // Zero seeds from the clock
	IdleTimeout  time.Duration // Zero never disconnects
}

// Run plays on r and w until the user quits, the input ends or ctx is cancelled.
// It follows the standard Input → Update → Draw cycle on a single goroutine.
func Run(ctx context.Context, r *bufio.Reader, w io.Writer, opts Options) error {
	loop := NewEventLoop(opts.Tuning.Loop.FrameTime())
	p := newPlayground(w, loop, loop.Stop, opts)
	stream := input.StartStream(r, opts.Tuning.Loop.KeyHold)

	draw.HideCursor(w)
	draw.EnableReporting(w)
	draw.ClearScreen(w)
	defer func() {
		draw.DisableReporting(w)
		draw.ResetStyle(w)
		draw.ClearScreen(w)
		draw.ShowCursor(w)
	}()

	p.logger.Info("playground started")
	err := loop.Run(ctx, Hooks{
		Input: func() {
			in := input.ReadInput(stream)
			for _, ev := range in.Events {
				if ev.Kind == input.EventFocusOut {
					stream.ResetHeld()
				}
			}
			p.handleInput(in)
		},
		Present: p.present,
	})
	if err != nil {
		return fmt.Errorf("run playground: %w", err)
	}
	p.logger.Info("playground ended", "score", p.arcade.FinalScore())
	return nil
}

// playground wires both simulations to one terminal.
type playground struct {
	cfg      config.Tuning
	logger   *log.Logger
	host     frame.Host
	stop     func()
	out      *draw.ChunkWriter
	sizeFunc draw.TermSizeFunc

	canvases [2]*draw.Canvas
	game     *arcade.Game
	sim      *pet.Sim
	arcade   *arcade.Controller
	pet      *pet.Controller
	surfaces [2][2]float64

	termW, termH int
	layout       Layout
	focus        Pane
	hidden       bool // Terminal lost focus
	touching     bool

	status    string // Last status line written
	lastInput time.Time
	idle      time.Duration
}

func newPlayground(w io.Writer, host frame.Host, stop func(), opts Options) *playground {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	sizeFunc := opts.TermSizeFunc
	if sizeFunc == nil {
		sizeFunc = draw.DefaultTermSizeFunc
	}
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	cfg := opts.Tuning
	game := arcade.NewGame(cfg.Arcade, rand.New(rand.NewSource(seed)))
	sim := pet.NewSim(cfg.Pet, rand.New(rand.NewSource(seed+1)))

	p := &playground{
		cfg:      cfg,
		logger:   logger,
		host:     host,
		stop:     stop,
		out:      draw.NewChunkWriter(w),
		sizeFunc: sizeFunc,
		game:     game,
		sim:      sim,
		surfaces: [2][2]float64{
			PaneArcade: {game.Width(), game.Height()},
			PanePet:    {sim.Width(), sim.Height()},
		},
		lastInput: host.Now(),
		idle:      opts.IdleTimeout,
	}
	p.canvases[PaneArcade] = draw.NewScaledCanvas(1, 1, game.Width(), game.Height())
	p.canvases[PanePet] = draw.NewScaledCanvas(1, 1, sim.Width(), sim.Height())
	p.arcade = arcade.NewController(host, p.canvases[PaneArcade], game, logger.WithPrefix("arcade"))
	p.pet = pet.NewController(host, p.canvases[PanePet], sim, logger.WithPrefix("pet"))

	p.updateScreen()
	return p
}

// handleInput maps one poll of input onto the simulations. Runs before the frame callbacks.
func (p *playground) handleInput(in input.Input) {
	now := p.host.Now()
	if in.Quit || in.Closed {
		p.stop()
		return
	}
	if in.Left || in.Right || len(in.Events) > 0 {
		p.lastInput = now
	} else if p.idle > 0 && now.Sub(p.lastInput) > p.idle {
		p.logger.Info("disconnecting idle player", "idle", now.Sub(p.lastInput).Round(time.Second))
		p.stop()
		return
	}

	p.hold(arcade.KeyLeft, in.Left)
	p.hold(arcade.KeyRight, in.Right)

	visibility := false
	for _, ev := range in.Events {
		switch ev.Kind {
		case input.EventKey:
			p.handleAction(ev.Action)
		case input.EventMousePress, input.EventMouseDrag, input.EventMouseRelease:
			p.handleMouse(ev)
		case input.EventFocusOut:
			p.hidden = true
			visibility = true
		case input.EventFocusIn:
			p.hidden = false
			visibility = true
		}
	}
	if visibility {
		p.logger.Debug("focus changed", "hidden", p.hidden)
		p.applyVisibility()
	}

	p.updateScreen()
}

func (p *playground) hold(k arcade.Key, held bool) {
	if held {
		p.arcade.KeyDown(k)
	} else {
		p.arcade.KeyUp(k)
	}
}

func (p *playground) handleAction(a input.Action) {
	switch a {
	case input.ActionStart:
		p.startArcade()
	case input.ActionFeed:
		p.pet.Feed()
	case input.ActionPlay:
		p.pet.Play()
	case input.ActionPet:
		p.pet.Pet()
	case input.ActionSwitchPane:
		if !p.layout.Split {
			p.focus = p.focus.Other()
			p.applyLayout()
		}
	}
}

// startArcade presses the start control, which only exists while it has a label.
func (p *playground) startArcade() {
	if p.arcade.StartLabel() == "" {
		return
	}
	p.arcade.Start()
}

func (p *playground) handleMouse(ev input.Event) {
	if ev.Button != 0 {
		return
	}
	ac := p.canvases[PaneArcade]
	switch ev.Kind {
	case input.EventMousePress:
		switch {
		case p.layout.Shown(PaneArcade) && ac.Contains(ev.Col, ev.Row):
			if p.arcade.Phase() != arcade.PhaseRunning {
				p.startArcade()
				return
			}
			x, _ := ac.LocalCell(ev.Col, ev.Row)
			p.arcade.TouchAt(x, float64(ac.TerminalWidth()))
			p.touching = true
		case p.layout.Shown(PanePet) && p.canvases[PanePet].Contains(ev.Col, ev.Row):
			pc := p.canvases[PanePet]
			x, y := pc.LocalCell(ev.Col, ev.Row)
			p.pet.ClickAt(x, y, float64(pc.TerminalWidth()), float64(pc.TerminalHeight()))
		}
	case input.EventMouseDrag:
		if p.touching {
			x, _ := ac.LocalCell(ev.Col, ev.Row)
			p.arcade.TouchAt(x, float64(ac.TerminalWidth()))
		}
	case input.EventMouseRelease:
		if p.touching {
			p.arcade.TouchEnd()
			p.touching = false
		}
	}
}

// updateScreen relayouts when the terminal size changed.
func (p *playground) updateScreen() {
	w, h, err := p.sizeFunc()
	if err != nil {
		return
	}
	if w == p.termW && h == p.termH {
		return
	}
	p.termW, p.termH = w, h
	p.applyLayout()
}

// applyLayout places the canvases, clears the terminal and updates visibility.
func (p *playground) applyLayout() {
	p.layout = ComputeLayout(p.termW, p.termH, p.focus, p.surfaces, p.cfg.Loop)
	p.out.WriteString("\033[H\033[2J")
	p.status = ""

	for pane, c := range p.canvases {
		r := p.layout.Panes[pane]
		if !p.layout.Shown(Pane(pane)) {
			continue
		}
		c.Resize(r.Width, r.Height)
		c.SetOffset(r.Col, r.Row)
		c.ForceRedraw()
	}
	p.arcade.Redraw()
	p.applyVisibility()

	p.logger.Debug("layout", "width", p.termW, "height", p.termH, "split", p.layout.Split, "focus", p.focus)
}

// applyVisibility pauses a pane's ticks unless it is on screen and the terminal has focus.
func (p *playground) applyVisibility() {
	p.arcade.SetVisible(p.layout.Shown(PaneArcade) && !p.hidden)
	p.pet.SetVisible(p.layout.Shown(PanePet) && !p.hidden)
}

// present writes the shown panes and the text rows. Runs after the frame callbacks.
func (p *playground) present() error {
	for pane, c := range p.canvases {
		if p.layout.Shown(Pane(pane)) {
			c.Render(p.out)
		}
	}
	p.drawStatus()
	return p.out.Flush()
}

func (p *playground) drawStatus() {
	arcadeText := fmt.Sprintf("Score: %d", p.arcade.Score())
	if label := p.arcade.StartLabel(); label != "" {
		arcadeText += "  [SPACE] " + label
	}
	mood := p.pet.Mood()
	petText := fmt.Sprintf("Mood: %s %s", mood.Emoji(), mood.Label())

	var status string
	switch {
	case p.layout.Split:
		status = arcadeText + " | " + petText
	case p.focus == PaneArcade:
		status = arcadeText + "  [Tab] pet"
	default:
		status = petText + "  [Tab] arcade"
	}
	if status == p.status {
		return
	}
	p.status = status

	cw := p.out
	cw.WriteString("\033[0m")
	cw.MoveCursor(1, p.layout.Status)
	cw.WriteString("\033[2K")
	if p.layout.Split {
		cw.WriteAt(p.layout.Panes[PaneArcade].Col+1, p.layout.Status, arcadeText)
		cw.WriteAt(p.layout.Panes[PanePet].Col+1, p.layout.Status, petText)
	} else {
		cw.WriteAt(p.layout.Render.Col+1, p.layout.Status, status)
	}

	help := helpText
	if n := p.layout.Render.Width; n > 0 && len([]rune(help)) > n {
		help = string([]rune(help)[:n])
	}
	cw.MoveCursor(1, p.layout.Help)
	cw.WriteString("\033[2K")
	cw.WriteAt(p.layout.Render.Col+1+max(p.layout.Render.Width-len([]rune(help)), 0)/2, p.layout.Help, help)
}
