package draw

import (
	"strings"
	"testing"
)

var (
	red   = Hex("#ff0000")
	blue  = Hex("#0000ff")
	white = Hex("#ffffff")
)

func TestFillRectScalesToPixels(t *testing.T) {
	// 10 columns x 5 rows => 10x10 pixels over a 100x100 logical surface
	c := NewScaledCanvas(10, 5, 100, 100)
	c.FillRect(0, 0, 50, 50, red)

	if got := c.At(10, 10); pack(got) != pack(red) {
		t.Errorf("inside pixel = %06x, want red", pack(got))
	}
	if got := c.At(60, 60); pack(got) != 0 {
		t.Errorf("outside pixel = %06x, want black", pack(got))
	}
}

func TestFillRectTinyStillCoversAPixel(t *testing.T) {
	c := NewScaledCanvas(10, 5, 1000, 1000)
	c.FillRect(500, 500, 1, 1, red)
	if got := c.At(500, 500); pack(got) != pack(red) {
		t.Errorf("tiny rect pixel = %06x, want red", pack(got))
	}
}

func TestFillRectAlphaBlends(t *testing.T) {
	c := NewCanvas(4, 2)
	c.Fill(white)
	c.FillRectAlpha(0, 0, 4, 4, Hex("#000000"), 0.5)
	r, g, b := c.At(1, 1).RGB255()
	if r < 120 || r > 135 || g != r || b != r {
		t.Errorf("blended pixel = (%d,%d,%d), want mid grey", r, g, b)
	}
}

func TestFillEllipseCentreAndOutside(t *testing.T) {
	c := NewCanvas(40, 20)
	c.FillEllipse(20, 20, 10, 5, 0, blue)
	if pack(c.At(20, 20)) != pack(blue) {
		t.Error("ellipse centre not filled")
	}
	if pack(c.At(20, 27)) != 0 {
		t.Error("pixel beyond ry filled")
	}
	if pack(c.At(28, 20)) != pack(blue) {
		t.Error("pixel inside rx not filled")
	}
}

func TestRenderOnlyEmitsChanges(t *testing.T) {
	c := NewCanvas(4, 2)
	c.Fill(red)

	var first strings.Builder
	c.Render(&first)
	if strings.Count(first.String(), string(BlockUpperHalf)) != 8 {
		t.Fatalf("first render wrote %d cells, want 8", strings.Count(first.String(), string(BlockUpperHalf)))
	}

	var second strings.Builder
	c.Render(&second)
	if second.Len() != 0 {
		t.Fatalf("unchanged render wrote %q", second.String())
	}

	c.SetFloat(0, 0, blue)
	var third strings.Builder
	c.Render(&third)
	if strings.Count(third.String(), string(BlockUpperHalf)) != 1 {
		t.Fatalf("third render = %q, want exactly one cell", third.String())
	}
	if !strings.Contains(third.String(), "38;2;0;0;255") {
		t.Errorf("third render missing blue foreground: %q", third.String())
	}
}

func TestForceRedrawEmitsEverything(t *testing.T) {
	c := NewCanvas(3, 1)
	c.Fill(red)
	c.Render(&strings.Builder{})
	c.ForceRedraw()
	var out strings.Builder
	c.Render(&out)
	if strings.Count(out.String(), string(BlockUpperHalf)) != 3 {
		t.Fatalf("forced render = %q", out.String())
	}
}

func TestTextOverlay(t *testing.T) {
	c := NewCanvas(20, 3)
	c.Text(10, 2, "@%", white)
	var out strings.Builder
	c.Render(&out)
	if !strings.Contains(out.String(), "@") || !strings.Contains(out.String(), "%") {
		t.Fatalf("text missing from render: %q", out.String())
	}

	c.Clear()
	out.Reset()
	c.Render(&out)
	if strings.Contains(out.String(), "@") {
		t.Fatal("Clear must drop overlays")
	}
}

func TestBackgroundPaintsOnce(t *testing.T) {
	calls := 0
	bg := NewBackground(func(c *Canvas) {
		calls++
		c.Fill(blue)
	})
	c := NewScaledCanvas(8, 4, 100, 100)
	for i := 0; i < 5; i++ {
		c.Fill(red)
		bg.Blit(c)
	}
	if calls != 1 {
		t.Fatalf("paint calls = %d, want 1", calls)
	}
	if pack(c.At(50, 50)) != pack(blue) {
		t.Fatal("blit did not copy background")
	}

	c.Resize(16, 8)
	bg.Blit(c)
	if bg.Renders() != 2 {
		t.Fatalf("renders after resize = %d, want 2", bg.Renders())
	}
}

func TestVerticalGradientEnds(t *testing.T) {
	c := NewCanvas(2, 5)
	VerticalGradient(c, red, blue)
	if pack(c.pixels[0]) != pack(red) {
		t.Errorf("top = %06x, want red", pack(c.pixels[0]))
	}
	if pack(c.pixels[len(c.pixels)-1]) != pack(blue) {
		t.Errorf("bottom = %06x, want blue", pack(c.pixels[len(c.pixels)-1]))
	}
}

func TestContainsAndLocalCell(t *testing.T) {
	c := NewCanvas(10, 5)
	c.SetOffset(4, 2)
	if !c.Contains(5, 3) {
		t.Error("top-left cell not contained")
	}
	if c.Contains(4, 3) || c.Contains(15, 3) || c.Contains(5, 8) {
		t.Error("cell outside canvas reported as contained")
	}
	x, y := c.LocalCell(5, 3)
	if x != 0.5 || y != 0.5 {
		t.Errorf("LocalCell = (%v,%v), want (0.5,0.5)", x, y)
	}
}
