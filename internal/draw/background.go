package draw

import "github.com/lucasb-eyer/go-colorful"

// Background is a static layer painted once and copied onto a surface every frame.
// It is repainted only when the target canvas changes pixel dimensions.
type Background struct {
	paint   func(c *Canvas)
	layer   *Canvas
	renders int
}

// NewBackground creates a background that paints itself with paint on first use.
func NewBackground(paint func(c *Canvas)) *Background {
	return &Background{paint: paint}
}

// Blit copies the pre-rendered layer onto dst, painting it first if needed.
func (b *Background) Blit(dst *Canvas) {
	if b.layer == nil ||
		b.layer.termWidth != dst.termWidth ||
		b.layer.termHeight != dst.termHeight ||
		b.layer.logicalWidth != dst.logicalWidth ||
		b.layer.logicalHeight != dst.logicalHeight {
		b.layer = NewScaledCanvas(dst.termWidth, dst.termHeight, dst.logicalWidth, dst.logicalHeight)
		b.paint(b.layer)
		b.renders++
	}
	dst.Blit(b.layer)
}

// Renders reports how many times the layer has been painted.
func (b *Background) Renders() int {
	return b.renders
}

// VerticalGradient fills the canvas top to bottom from one colour to another.
func VerticalGradient(c *Canvas, from, to colorful.Color) {
	last := c.subPixelHeight - 1
	for py := 0; py < c.subPixelHeight; py++ {
		t := 0.0
		if last > 0 {
			t = float64(py) / float64(last)
		}
		col := Mix(from, to, t)
		row := c.pixels[py*c.termWidth : (py+1)*c.termWidth]
		for i := range row {
			row[i] = col
		}
	}
}
