package draw

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// FillRect fills an axis-aligned rectangle given in logical coordinates.
func (c *Canvas) FillRect(x, y, w, h float64, col colorful.Color) {
	c.FillRectAlpha(x, y, w, h, col, 1)
}

// FillRectAlpha blends an axis-aligned rectangle over the canvas.
// Any rectangle with positive size covers at least one pixel.
func (c *Canvas) FillRectAlpha(x, y, w, h float64, col colorful.Color, alpha float64) {
	if w <= 0 || h <= 0 {
		return
	}
	x0 := int(math.Round(x * c.scaleX))
	y0 := int(math.Round(y * c.scaleY))
	x1 := int(math.Round((x + w) * c.scaleX))
	y1 := int(math.Round((y + h) * c.scaleY))
	if x1 <= x0 {
		x1 = x0 + 1
	}
	if y1 <= y0 {
		y1 = y0 + 1
	}
	x0, x1 = max(x0, 0), min(x1, c.termWidth)
	y0, y1 = max(y0, 0), min(y1, c.subPixelHeight)
	for py := y0; py < y1; py++ {
		for px := x0; px < x1; px++ {
			c.blendPixel(px, py, col, alpha)
		}
	}
}

// FillCircle fills a circle of logical radius r.
func (c *Canvas) FillCircle(cx, cy, r float64, col colorful.Color) {
	c.FillEllipse(cx, cy, r, r, 0, col)
}

// FillEllipse fills an ellipse with radii rx, ry rotated by rot radians.
// Pixels are sampled at their centres; an ellipse smaller than one pixel
// still marks the pixel under its centre.
func (c *Canvas) FillEllipse(cx, cy, rx, ry, rot float64, col colorful.Color) {
	if rx <= 0 || ry <= 0 {
		return
	}
	reach := math.Max(rx, ry)
	x0 := int(math.Floor((cx - reach) * c.scaleX))
	x1 := int(math.Ceil((cx + reach) * c.scaleX))
	y0 := int(math.Floor((cy - reach) * c.scaleY))
	y1 := int(math.Ceil((cy + reach) * c.scaleY))

	cos, sin := math.Cos(rot), math.Sin(rot)
	hit := false
	for py := max(y0, 0); py <= min(y1, c.subPixelHeight-1); py++ {
		ly := (float64(py)+0.5)/c.scaleY - cy
		for px := max(x0, 0); px <= min(x1, c.termWidth-1); px++ {
			lx := (float64(px)+0.5)/c.scaleX - cx
			// Rotate the sample into the ellipse's own frame
			u := lx*cos + ly*sin
			v := -lx*sin + ly*cos
			if (u*u)/(rx*rx)+(v*v)/(ry*ry) <= 1 {
				c.pixels[py*c.termWidth+px] = col
				hit = true
			}
		}
	}
	if !hit {
		c.SetFloat(cx, cy, col)
	}
}

// Circle is a circle in logical coordinates.
type Circle struct {
	X, Y, R float64
}

// FillCirclesAlpha blends the union of circles over the canvas. Pixels
// covered by more than one circle are blended once, like a single filled path.
func (c *Canvas) FillCirclesAlpha(circles []Circle, col colorful.Color, alpha float64) {
	if len(circles) == 0 {
		return
	}
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, ci := range circles {
		minX, maxX = math.Min(minX, ci.X-ci.R), math.Max(maxX, ci.X+ci.R)
		minY, maxY = math.Min(minY, ci.Y-ci.R), math.Max(maxY, ci.Y+ci.R)
	}
	x0, x1 := int(math.Floor(minX*c.scaleX)), int(math.Ceil(maxX*c.scaleX))
	y0, y1 := int(math.Floor(minY*c.scaleY)), int(math.Ceil(maxY*c.scaleY))
	for py := max(y0, 0); py <= min(y1, c.subPixelHeight-1); py++ {
		ly := (float64(py) + 0.5) / c.scaleY
		for px := max(x0, 0); px <= min(x1, c.termWidth-1); px++ {
			lx := (float64(px) + 0.5) / c.scaleX
			for _, ci := range circles {
				dx, dy := lx-ci.X, ly-ci.Y
				if dx*dx+dy*dy <= ci.R*ci.R {
					c.blendPixel(px, py, col, alpha)
					break
				}
			}
		}
	}
}

// StrokeArc draws the arc of a circle of radius r from angle a0 to a1
// (radians, clockwise on screen since y grows downwards) with the given line width.
func (c *Canvas) StrokeArc(cx, cy, r, a0, a1, width float64, col colorful.Color) {
	if a1 < a0 {
		a0, a1 = a1, a0
	}
	// One sample per pixel along the arc on the finer axis
	pixelsPerUnit := math.Max(c.scaleX, c.scaleY)
	steps := int(math.Ceil((a1-a0)*r*pixelsPerUnit)) + 1
	for i := 0; i <= steps; i++ {
		a := a0 + (a1-a0)*float64(i)/float64(steps)
		x := cx + math.Cos(a)*r
		y := cy + math.Sin(a)*r
		if width > 1 {
			c.FillCircle(x, y, width/2, col)
		} else {
			c.SetFloat(x, y, col)
		}
	}
}

// DrawLine draws a line on the canvas using Bresenham's algorithm.
// Coordinates are in logical space and get scaled to pixels.
func (c *Canvas) DrawLine(p1, p2 Point, col colorful.Color) {
	x1 := int(math.Round(p1.X * c.scaleX))
	y1 := int(math.Round(p1.Y * c.scaleY))
	x2 := int(math.Round(p2.X * c.scaleX))
	y2 := int(math.Round(p2.Y * c.scaleY))

	dx := abs(x2 - x1)
	dy := abs(y2 - y1)

	sx := 1
	if x1 > x2 {
		sx = -1
	}
	sy := 1
	if y1 > y2 {
		sy = -1
	}

	err := dx - dy

	for {
		c.setPixel(x1, y1, col)

		if x1 == x2 && y1 == y2 {
			break
		}

		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}
}
