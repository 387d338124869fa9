// Package draw renders logical-coordinate surfaces onto a truecolor terminal.
package draw

import "github.com/lucasb-eyer/go-colorful"

// Point represents a 2D coordinate.
type Point struct {
	X, Y float64
}

// Block characters for drawing.
const (
	BlockFull      = '█'
	BlockUpperHalf = '▀'
	BlockLowerHalf = '▄'
)

// Hex parses a "#rrggbb" colour. Invalid input yields black, so palettes
// should only use literals.
func Hex(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		return colorful.Color{}
	}
	return c
}

// Mix blends from toward to by t in RGB space, with t clamped to [0, 1].
func Mix(from, to colorful.Color, t float64) colorful.Color {
	if t <= 0 {
		return from
	}
	if t >= 1 {
		return to
	}
	return from.BlendRgb(to, t)
}

// pack converts a colour into 0xRRGGBB.
func pack(c colorful.Color) uint32 {
	r, g, b := c.Clamped().RGB255()
	return uint32(r)<<16 | uint32(g)<<8 | uint32(b)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
