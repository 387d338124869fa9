package arcade

import (
	"fmt"
	"math"

	"github.com/tomz197/playground/internal/draw"
)

var (
	colorBackground = draw.Hex("#2d3748")
	colorGrid       = draw.Hex("#4a5568")
	colorPlayer     = draw.Hex("#4ade80")
	colorFace       = draw.Hex("#ffffff")
	colorObstacle   = draw.Hex("#ef4444")
	colorStripe     = draw.Hex("#fca5a5")
	colorShade      = draw.Hex("#000000")
	colorText       = draw.Hex("#ffffff")
)

const (
	gridSpacing  = 20
	stripeStep   = 10
	stripeWidth  = 5
	overlayAlpha = 0.8
)

// paintGrid draws the static background: a dark field with vertical grid lines.
func paintGrid(c *draw.Canvas) {
	c.Fill(colorBackground)
	w, h := c.LogicalWidth(), c.LogicalHeight()
	for x := 0.0; x < w; x += gridSpacing {
		c.DrawLine(draw.Point{X: x, Y: 0}, draw.Point{X: x, Y: h}, colorGrid)
	}
}

// renderScene draws the background, the player, then every obstacle.
func renderScene(c *draw.Canvas, bg *draw.Background, g *Game) {
	bg.Blit(c)
	drawPlayer(c, &g.Player)
	for _, obs := range g.Obstacles {
		drawObstacle(c, obs)
	}
}

func drawPlayer(c *draw.Canvas, p *Player) {
	c.FillRect(p.X, p.Y, p.Width, p.Height, colorPlayer)
	// Eyes and mouth, laid out on the default 30-unit sprite and scaled with it
	s := p.Width / 30
	c.FillRect(p.X+8*s, p.Y+8*s, 5*s, 5*s, colorFace)
	c.FillRect(p.X+17*s, p.Y+8*s, 5*s, 5*s, colorFace)
	c.FillRect(p.X+10*s, p.Y+20*s, 10*s, 3*s, colorFace)
}

func drawObstacle(c *draw.Canvas, o *Obstacle) {
	c.FillRect(o.X, o.Y, o.Width, o.Height, colorObstacle)
	for i := 0.0; i < o.Width; i += stripeStep {
		c.FillRect(o.X+i, o.Y, math.Min(stripeWidth, o.Width-i), o.Height, colorStripe)
	}
}

// renderGameOver dims the last frame and prints the final score.
func renderGameOver(c *draw.Canvas, score int) {
	w, h := c.LogicalWidth(), c.LogicalHeight()
	c.FillRectAlpha(0, 0, w, h, colorShade, overlayAlpha)
	c.Text(w/2, h/2-20, "Game Over!", colorText)
	c.Text(w/2, h/2+10, fmt.Sprintf("Final Score: %d", score), colorText)
	c.Text(w/2, h/2+40, "Click to play again", colorText)
}

// renderIdle draws the resting scene with the start control on top.
func renderIdle(c *draw.Canvas, bg *draw.Background, g *Game, label string) {
	renderScene(c, bg, g)
	w, h := c.LogicalWidth(), c.LogicalHeight()
	c.Text(w/2, h/2, label, colorText)
	c.Text(w/2, h/2+30, "SPACE to start, ←/→ or A/D to move", colorText)
}
