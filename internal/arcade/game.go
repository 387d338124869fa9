// Package arcade implements the falling-obstacle dodge game.
package arcade

import (
	"math/rand"
	"slices"

	"github.com/tomz197/playground/internal/config"
	"github.com/tomz197/playground/internal/physics"
)

// Phase is the game's position in its Idle → Running → GameOver → Idle cycle.
type Phase int

const (
	PhaseIdle     Phase = iota // Waiting for a start trigger
	PhaseRunning               // Active gameplay
	PhaseGameOver              // Collision happened, overlay shown
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseRunning:
		return "running"
	case PhaseGameOver:
		return "game over"
	default:
		return "unknown"
	}
}

// Player is the block steered along the bottom of the surface.
type Player struct {
	X, Y          float64
	Width, Height float64
	Speed         float64 // Units per tick
	DX            float64 // Horizontal delta of the last tick
}

// Rect returns the player's bounding box.
func (p *Player) Rect() physics.Rect {
	return physics.Rect{X: p.X, Y: p.Y, W: p.Width, H: p.Height}
}

// Obstacle is a falling block. Its speed is fixed at spawn time.
type Obstacle struct {
	X, Y          float64
	Width, Height float64
	Speed         float64
}

// Rect returns the obstacle's bounding box.
func (o *Obstacle) Rect() physics.Rect {
	return physics.Rect{X: o.X, Y: o.Y, W: o.Width, H: o.Height}
}

// Game is the arcade simulation state. It owns its player and obstacles.
type Game struct {
	cfg    config.Arcade
	width  float64
	height float64
	rng    *rand.Rand

	Player    Player
	Obstacles []*Obstacle

	phase Phase
	score int
	speed float64
}

// NewGame creates an idle game on the surface described by cfg.
func NewGame(cfg config.Arcade, rng *rand.Rand) *Game {
	g := &Game{
		cfg:    cfg,
		width:  cfg.Width,
		height: cfg.Height,
		rng:    rng,
		speed:  cfg.InitialSpeed,
		Player: Player{
			Width:  cfg.PlayerSize,
			Height: cfg.PlayerSize,
			Speed:  cfg.PlayerSpeed,
			Y:      cfg.Height - cfg.PlayerMargin,
		},
	}
	g.centerPlayer()
	return g
}

// Width returns the surface width.
func (g *Game) Width() float64 { return g.width }

// Height returns the surface height.
func (g *Game) Height() float64 { return g.height }

// Phase returns the current phase.
func (g *Game) Phase() Phase { return g.phase }

// Score returns the current score.
func (g *Game) Score() int { return g.score }

// Speed returns the global fall speed given to newly spawned obstacles.
func (g *Game) Speed() float64 { return g.speed }

// Start resets the round and enters PhaseRunning.
func (g *Game) Start() {
	g.phase = PhaseRunning
	g.score = 0
	g.speed = g.cfg.InitialSpeed
	g.Obstacles = g.Obstacles[:0]
	g.Player.DX = 0
	g.centerPlayer()
}

// Reset returns a finished game to PhaseIdle so it can be started again.
// The last score stays readable until the next Start.
func (g *Game) Reset() {
	if g.phase == PhaseRunning {
		return
	}
	g.phase = PhaseIdle
	g.Obstacles = g.Obstacles[:0]
}

func (g *Game) centerPlayer() {
	g.Player.X = g.width/2 - g.Player.Width/2
}

// Step advances one tick: player movement, obstacle fall, scoring and
// collision, then spawning. Returns true when the tick ended the game.
// Does nothing unless running.
func (g *Game) Step(in Input) (gameOver bool) {
	if g.phase != PhaseRunning {
		return false
	}

	g.updatePlayer(in)
	if g.updateObstacles() {
		return true
	}
	g.maybeSpawn()
	return false
}

func (g *Game) updatePlayer(in Input) {
	g.Player.DX = 0
	switch in.Direction() {
	case DirLeft:
		g.Player.DX = -g.Player.Speed
	case DirRight:
		g.Player.DX = g.Player.Speed
	}
	g.Player.X = physics.Clamp(g.Player.X+g.Player.DX, 0, g.width-g.Player.Width)
}

// updateObstacles walks the list back to front so removals don't skip entries.
func (g *Game) updateObstacles() bool {
	player := g.Player.Rect()
	for i := len(g.Obstacles) - 1; i >= 0; i-- {
		obs := g.Obstacles[i]
		obs.Y += obs.Speed

		if obs.Y > g.height {
			g.removeObstacle(i)
			g.award()
			continue
		}

		if player.Overlaps(obs.Rect()) {
			g.phase = PhaseGameOver
			g.Obstacles = g.Obstacles[:0]
			return true
		}
	}
	return false
}

func (g *Game) removeObstacle(i int) {
	g.Obstacles = slices.Delete(g.Obstacles, i, i+1)
}

func (g *Game) award() {
	g.score += g.cfg.ScorePerDodge
	if g.score%g.cfg.LevelEvery == 0 {
		g.speed += g.cfg.SpeedStep
	}
}

func (g *Game) maybeSpawn() {
	if len(g.Obstacles) >= g.cfg.MaxObstacles {
		return
	}
	if g.rng.Float64() >= g.cfg.SpawnChance {
		return
	}
	width := g.cfg.ObstacleMinWidth + g.rng.Float64()*(g.cfg.ObstacleMaxWidth-g.cfg.ObstacleMinWidth)
	g.Obstacles = append(g.Obstacles, &Obstacle{
		X:      g.rng.Float64() * (g.width - width),
		Y:      -g.cfg.ObstacleHeight,
		Width:  width,
		Height: g.cfg.ObstacleHeight,
		Speed:  g.speed,
	})
}
