// Package render projects grid snapshots into draw-ready rows of
// styled runs. The projector flattens the selection and link overlays
// into cell styles and coalesces same-styled neighbors so hosts issue
// one draw call per run instead of per cell.
package render

import (
	runewidth "github.com/mattn/go-runewidth"

	"github.com/Gaurav-Gosain/termbridge/internal/emu"
	"github.com/Gaurav-Gosain/termbridge/internal/pool"
)

// Run is a horizontal stretch of cells sharing one style.
type Run struct {
	Text  string
	Style emu.Style
	// Width is the display width in cells, accounting for wide runes.
	Width int
}

// Output is one projected frame.
type Output struct {
	Seq        uint64
	Cols, Rows int
	Lines      [][]Run

	CursorX, CursorY int
	CursorVisible    bool
}

// Frame is everything that determines a projected frame's appearance.
type Frame struct {
	Snap *emu.Snapshot
	Sel  emu.Selection
	// HoverURL marks which detected link the pointer hovers, for
	// underline emphasis.
	HoverURL string
	// Focused controls whether the cursor is drawn.
	Focused bool
}

// frameKey captures every input that affects output, so identical
// frames can be answered from cache.
type frameKey struct {
	seq        uint64
	offset     int
	cols, rows int
	sel        emu.Selection
	hover      string
	focused    bool
}

// Projector builds Outputs from Frames, caching the last result. Not
// safe for concurrent use; hosts project from their render loop.
type Projector struct {
	lastKey frameKey
	last    *Output
	valid   bool
}

// NewProjector returns an empty projector.
func NewProjector() *Projector {
	return &Projector{}
}

// Project flattens the frame into styled runs. Projecting the same
// frame twice returns the identical cached output, making redundant
// repaint requests free.
func (p *Projector) Project(f Frame) *Output {
	key := frameKey{
		seq:     f.Snap.Seq,
		offset:  f.Snap.Offset,
		cols:    f.Snap.Cols,
		rows:    f.Snap.Rows,
		sel:     f.Sel,
		hover:   f.HoverURL,
		focused: f.Focused,
	}
	if p.valid && key == p.lastKey {
		return p.last
	}

	out := &Output{
		Seq:           f.Snap.Seq,
		Cols:          f.Snap.Cols,
		Rows:          f.Snap.Rows,
		Lines:         make([][]Run, f.Snap.Rows),
		CursorX:       f.Snap.CursorX,
		CursorY:       f.Snap.CursorY,
		CursorVisible: f.Snap.CursorVisible && f.Focused,
	}

	for y := 0; y < f.Snap.Rows; y++ {
		out.Lines[y] = p.projectRow(f, y)
	}

	p.lastKey = key
	p.last = out
	p.valid = true
	return out
}

// projectRow styles one viewport row and coalesces it into runs.
func (p *Projector) projectRow(f Frame, y int) []Run {
	cells := f.Snap.Cells[y]
	absLine := f.Snap.AbsLine(y)

	runs := make([]Run, 0, 4)
	sb := pool.GetStringBuilder()
	defer pool.PutStringBuilder(sb)

	var cur emu.Style
	width := 0

	flush := func() {
		if sb.Len() == 0 {
			return
		}
		runs = append(runs, Run{Text: sb.String(), Style: cur, Width: width})
		sb.Reset()
		width = 0
	}

	for x, cell := range cells {
		style := cell.Style
		if f.Sel.Contains(emu.Point{Line: absLine, Col: x}) {
			style.Reverse = !style.Reverse
		}
		if link, ok := f.Snap.LinkAt(x, y); ok {
			style.Link = link.URL
			if link.URL == f.HoverURL {
				style.Underline = true
			}
		}

		if sb.Len() > 0 && style != cur {
			flush()
		}
		cur = style
		sb.WriteRune(cell.Rune)
		width += runewidth.RuneWidth(cell.Rune)
	}
	flush()
	return runs
}

// Invalidate drops the cache so the next Project rebuilds even for an
// identical frame.
func (p *Projector) Invalidate() {
	p.valid = false
	p.last = nil
}
