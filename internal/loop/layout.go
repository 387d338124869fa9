package loop

import (
	"math"

	"github.com/tomz197/playground/internal/config"
)

// Pane identifies one of the two surfaces.
type Pane int

const (
	PaneArcade Pane = iota
	PanePet
)

// Other returns the opposite pane.
func (p Pane) Other() Pane {
	if p == PaneArcade {
		return PanePet
	}
	return PaneArcade
}

// Region is a block of terminal cells. Col and Row are 0-based.
type Region struct {
	Col, Row      int
	Width, Height int
}

// Layout places the panes and the text rows on the terminal.
type Layout struct {
	Split  bool      // Both panes side by side
	Focus  Pane      // Pane shown when not split
	Panes  [2]Region // Indexed by Pane; zero size when not shown
	Status int       // 1-based row of the score and mood line
	Help   int       // 1-based row of the controls line
	Render Region    // The clamped area everything is drawn in
}

// Shown reports whether p is on screen.
func (l Layout) Shown(p Pane) bool {
	r := l.Panes[p]
	return r.Width > 0 && r.Height > 0
}

// Status and controls each take a row; split panes are two columns apart.
const (
	chromeRows = 2
	paneGap    = 2
)

// ComputeLayout fits the panes into a terminal of termW x termH cells.
// Surfaces keep their aspect ratio, counting a cell as two square pixels tall.
func ComputeLayout(termW, termH int, focus Pane, surfaces [2][2]float64, cfg config.Loop) Layout {
	renderW, renderH, offCol, offRow := clampTermSize(termW, termH, cfg)
	l := Layout{
		Split:  renderW >= cfg.SplitMinWidth,
		Focus:  focus,
		Render: Region{Col: offCol, Row: offRow, Width: renderW, Height: renderH},
		Status: offRow + 1,
		Help:   offRow + renderH,
	}

	areaH := renderH - chromeRows
	if areaH < 1 || renderW < 1 {
		return l
	}
	top := offRow + 1

	if l.Split {
		colW := (renderW - paneGap) / 2
		for p := PaneArcade; p <= PanePet; p++ {
			w, h := fit(colW, areaH, surfaces[p][0], surfaces[p][1])
			left := offCol + int(p)*(colW+paneGap)
			l.Panes[p] = Region{
				Col:    left + (colW-w)/2,
				Row:    top + (areaH-h)/2,
				Width:  w,
				Height: h,
			}
		}
		return l
	}

	w, h := fit(renderW, areaH, surfaces[focus][0], surfaces[focus][1])
	l.Panes[focus] = Region{
		Col:    offCol + (renderW-w)/2,
		Row:    top + (areaH-h)/2,
		Width:  w,
		Height: h,
	}
	return l
}

// fit returns the largest cell block within boxW x boxH whose pixel aspect
// (width : 2*height) matches lw : lh.
func fit(boxW, boxH int, lw, lh float64) (w, h int) {
	if boxW < 1 || boxH < 1 || lw <= 0 || lh <= 0 {
		return 0, 0
	}
	w = boxW
	h = int(math.Round(float64(w) * lh / (2 * lw)))
	if h > boxH {
		h = boxH
		w = int(math.Round(float64(h) * 2 * lw / lh))
	}
	return max(w, 1), max(h, 1)
}

// clampTermSize clamps terminal dimensions to the max render resolution and computes
// the centering offset for the render area.
func clampTermSize(termWidth, termHeight int, cfg config.Loop) (renderWidth, renderHeight, offsetCol, offsetRow int) {
	renderWidth = termWidth
	renderHeight = termHeight
	if cfg.MaxTermWidth > 0 && renderWidth > cfg.MaxTermWidth {
		renderWidth = cfg.MaxTermWidth
	}
	if cfg.MaxTermHeight > 0 && renderHeight > cfg.MaxTermHeight {
		renderHeight = cfg.MaxTermHeight
	}
	offsetCol = (termWidth - renderWidth) / 2
	offsetRow = (termHeight - renderHeight) / 2
	return
}
