package draw

import (
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Canvas is a truecolor drawing buffer with 2x vertical resolution using half-block characters.
// Drawing happens in logical coordinates which are scaled to the terminal region it covers.
type Canvas struct {
	termWidth      int              // Terminal columns covered
	termHeight     int              // Terminal rows covered
	subPixelHeight int              // termHeight * 2
	pixels         []colorful.Color // Flat slice: [y * termWidth + x]
	glyphs         map[int]glyph    // Text overlays keyed by cell index

	// Scaling from logical to pixel coordinates
	logicalWidth  float64
	logicalHeight float64
	scaleX        float64 // termWidth / logicalWidth
	scaleY        float64 // (termHeight*2) / logicalHeight

	// 0-based terminal offset of the top-left cell.
	offsetCol int
	offsetRow int

	// Last rendered cells, for emitting only what changed.
	prev        []cell
	forceRedraw bool

	// Reusable buffers to reduce allocations
	renderBuf strings.Builder
	numBuf    [20]byte
}

// glyph is a character drawn over a cell with a foreground colour.
type glyph struct {
	ch    rune
	color colorful.Color
	alpha float64
}

// cell is what one terminal position showed after the last render.
type cell struct {
	top, bottom uint32
	fg          uint32
	ch          rune
}

// NewCanvas creates a canvas for the given terminal dimensions.
// No scaling is applied (1:1 mapping, with 2x vertical sub-pixels).
func NewCanvas(width, height int) *Canvas {
	return NewScaledCanvas(width, height, float64(width), float64(height*2))
}

// NewScaledCanvas creates a canvas that scales from logical coordinates to terminal pixels.
// logicalWidth/Height define the coordinate space used by the simulation.
// termWidth/Height are the terminal cells the canvas occupies.
func NewScaledCanvas(termWidth, termHeight int, logicalWidth, logicalHeight float64) *Canvas {
	c := &Canvas{
		logicalWidth:  logicalWidth,
		logicalHeight: logicalHeight,
		glyphs:        make(map[int]glyph),
	}
	c.Resize(termWidth, termHeight)
	return c
}

// Resize updates the canvas for new terminal dimensions while keeping logical size.
func (c *Canvas) Resize(termWidth, termHeight int) {
	if termWidth < 1 {
		termWidth = 1
	}
	if termHeight < 1 {
		termHeight = 1
	}
	subPixelHeight := termHeight * 2

	if termWidth != c.termWidth || termHeight != c.termHeight {
		c.pixels = make([]colorful.Color, subPixelHeight*termWidth)
		c.prev = make([]cell, termWidth*termHeight)
		c.termWidth = termWidth
		c.termHeight = termHeight
		c.subPixelHeight = subPixelHeight
		c.forceRedraw = true
		clear(c.glyphs)
	}

	c.scaleX = float64(termWidth) / c.logicalWidth
	c.scaleY = float64(subPixelHeight) / c.logicalHeight
}

// SetOffset sets the 0-based column and row where the canvas starts.
func (c *Canvas) SetOffset(col, row int) {
	if col != c.offsetCol || row != c.offsetRow {
		c.forceRedraw = true
	}
	c.offsetCol = col
	c.offsetRow = row
}

// OffsetCol returns the column offset.
func (c *Canvas) OffsetCol() int {
	return c.offsetCol
}

// OffsetRow returns the row offset.
func (c *Canvas) OffsetRow() int {
	return c.offsetRow
}

// ForceRedraw makes the next Render emit every cell.
func (c *Canvas) ForceRedraw() {
	c.forceRedraw = true
}

// Clear fills the canvas with black and drops all overlays.
func (c *Canvas) Clear() {
	c.Fill(colorful.Color{})
}

// Fill sets every pixel to col and drops all overlays.
func (c *Canvas) Fill(col colorful.Color) {
	for i := range c.pixels {
		c.pixels[i] = col
	}
	clear(c.glyphs)
}

// Blit copies src's pixels into c. Both canvases must share terminal dimensions.
func (c *Canvas) Blit(src *Canvas) {
	if src.termWidth != c.termWidth || src.termHeight != c.termHeight {
		return
	}
	copy(c.pixels, src.pixels)
	clear(c.glyphs)
}

// setPixel sets a pixel at actual terminal coordinates (no scaling).
func (c *Canvas) setPixel(x, y int, col colorful.Color) {
	if x >= 0 && x < c.termWidth && y >= 0 && y < c.subPixelHeight {
		c.pixels[y*c.termWidth+x] = col
	}
}

// blendPixel mixes col over the existing pixel with the given opacity.
func (c *Canvas) blendPixel(x, y int, col colorful.Color, alpha float64) {
	if x < 0 || x >= c.termWidth || y < 0 || y >= c.subPixelHeight {
		return
	}
	if alpha >= 1 {
		c.pixels[y*c.termWidth+x] = col
		return
	}
	if alpha <= 0 {
		return
	}
	i := y*c.termWidth + x
	c.pixels[i] = c.pixels[i].BlendRgb(col, alpha)
}

// At returns the pixel colour under logical coordinates.
func (c *Canvas) At(x, y float64) colorful.Color {
	px, py := c.toPixel(x, y)
	if px < 0 || px >= c.termWidth || py < 0 || py >= c.subPixelHeight {
		return colorful.Color{}
	}
	return c.pixels[py*c.termWidth+px]
}

// SetFloat sets a pixel using float logical coordinates.
func (c *Canvas) SetFloat(x, y float64, col colorful.Color) {
	px, py := c.toPixel(x, y)
	c.setPixel(px, py, col)
}

// Glyph draws a character over the cell containing (x, y). alpha fades it into the cell background.
func (c *Canvas) Glyph(x, y float64, ch rune, col colorful.Color, alpha float64) {
	if alpha <= 0 {
		return
	}
	px, py := c.toPixel(x, y)
	row := py / 2
	if px < 0 || px >= c.termWidth || py < 0 || row >= c.termHeight {
		return
	}
	c.glyphs[row*c.termWidth+px] = glyph{ch: ch, color: col, alpha: math.Min(alpha, 1)}
}

// Text writes s centered horizontally on logical x, on the row containing logical y.
func (c *Canvas) Text(x, y float64, s string, col colorful.Color) {
	runes := []rune(s)
	px, py := c.toPixel(x, y)
	row := py / 2
	if py < 0 || row >= c.termHeight {
		return
	}
	start := px - len(runes)/2
	for i, r := range runes {
		col0 := start + i
		if col0 < 0 || col0 >= c.termWidth {
			continue
		}
		c.glyphs[row*c.termWidth+col0] = glyph{ch: r, color: col, alpha: 1}
	}
}

func (c *Canvas) toPixel(x, y float64) (int, int) {
	return int(math.Floor(x * c.scaleX)), int(math.Floor(y * c.scaleY))
}

// maxChunkSize is the maximum bytes to write at once for optimal network flow.
// 1500 bytes matches typical MTU size for smooth SSH/network transmission.
const maxChunkSize = 1400

// Render outputs the canvas to the writer using coloured half-block characters.
// Only cells that changed since the previous Render are written.
func (c *Canvas) Render(w io.Writer) {
	c.renderBuf.Reset()

	var lastFg, lastBg uint32 = math.MaxUint32, math.MaxUint32
	for row := 0; row < c.termHeight; row++ {
		topOffset := row * 2 * c.termWidth
		bottomOffset := topOffset + c.termWidth
		cursorCol := -1

		for col := 0; col < c.termWidth; col++ {
			top := c.pixels[topOffset+col]
			bottom := c.pixels[bottomOffset+col]

			next := cell{top: pack(top), bottom: pack(bottom), ch: BlockUpperHalf}
			fg, bg := next.top, next.bottom
			if g, ok := c.glyphs[row*c.termWidth+col]; ok {
				back := top.BlendRgb(bottom, 0.5)
				next.ch = g.ch
				next.fg = pack(back.BlendRgb(g.color, g.alpha))
				fg, bg = next.fg, pack(back)
			}

			idx := row*c.termWidth + col
			if !c.forceRedraw && c.prev[idx] == next {
				continue
			}
			c.prev[idx] = next

			if cursorCol != col {
				c.moveCursor(col, row)
			}
			if fg != lastFg {
				c.sgr(38, fg)
				lastFg = fg
			}
			if bg != lastBg {
				c.sgr(48, bg)
				lastBg = bg
			}
			c.renderBuf.WriteRune(next.ch)
			cursorCol = col + 1
		}
	}
	if c.renderBuf.Len() > 0 {
		c.renderBuf.WriteString("\033[0m")
	}
	c.forceRedraw = false

	// Write output in chunks for optimal network flow
	data := c.renderBuf.String()
	for len(data) > 0 {
		chunk := data
		if len(chunk) > maxChunkSize {
			chunk = data[:maxChunkSize]
		}
		io.WriteString(w, chunk)
		data = data[len(chunk):]
	}
}

func (c *Canvas) moveCursor(col, row int) {
	c.renderBuf.WriteString("\033[")
	c.renderBuf.Write(strconv.AppendInt(c.numBuf[:0], int64(row+1+c.offsetRow), 10))
	c.renderBuf.WriteByte(';')
	c.renderBuf.Write(strconv.AppendInt(c.numBuf[:0], int64(col+1+c.offsetCol), 10))
	c.renderBuf.WriteByte('H')
}

// sgr writes a 24-bit colour selection; code is 38 for foreground, 48 for background.
func (c *Canvas) sgr(code int, rgb uint32) {
	c.renderBuf.WriteString("\033[")
	c.renderBuf.Write(strconv.AppendInt(c.numBuf[:0], int64(code), 10))
	c.renderBuf.WriteString(";2;")
	c.renderBuf.Write(strconv.AppendInt(c.numBuf[:0], int64(rgb>>16&0xff), 10))
	c.renderBuf.WriteByte(';')
	c.renderBuf.Write(strconv.AppendInt(c.numBuf[:0], int64(rgb>>8&0xff), 10))
	c.renderBuf.WriteByte(';')
	c.renderBuf.Write(strconv.AppendInt(c.numBuf[:0], int64(rgb&0xff), 10))
	c.renderBuf.WriteByte('m')
}

// LogicalWidth returns the logical width.
func (c *Canvas) LogicalWidth() float64 {
	return c.logicalWidth
}

// LogicalHeight returns the logical height.
func (c *Canvas) LogicalHeight() float64 {
	return c.logicalHeight
}

// TerminalWidth returns the number of terminal columns covered.
func (c *Canvas) TerminalWidth() int {
	return c.termWidth
}

// TerminalHeight returns the number of terminal rows covered.
func (c *Canvas) TerminalHeight() int {
	return c.termHeight
}

// Contains reports whether the 1-based terminal position lies on the canvas.
func (c *Canvas) Contains(col, row int) bool {
	col -= c.offsetCol + 1
	row -= c.offsetRow + 1
	return col >= 0 && col < c.termWidth && row >= 0 && row < c.termHeight
}

// LocalCell converts a 1-based terminal position into display coordinates
// relative to the canvas, measured from its top-left corner to the cell centre.
func (c *Canvas) LocalCell(col, row int) (x, y float64) {
	return float64(col-c.offsetCol-1) + 0.5, float64(row-c.offsetRow-1) + 0.5
}

