package emu

import (
	"bytes"
	"strings"
	"sync"
)

// Adapter sits between the raw PTY byte stream and render-side readers.
// Feed pushes output through the engine and captures rows that scroll
// off the live grid; Snapshot materializes an immutable, versioned view
// of any window over history plus the live screen.
//
// Feed and Snapshot are mutually exclusive: a snapshot never observes a
// half-applied write.
type Adapter struct {
	mu  sync.Mutex
	eng Engine
	sb  *scrollback

	cols, rows int
	seq        uint64

	// Scratch buffers reused across Feed calls.
	prevPlain   []string
	prevStyled  [][]Cell
	prevCursorY int
}

// FeedResult describes how the grid moved during one Feed call.
type FeedResult struct {
	// Scrolled is the number of rows that left the top of the live
	// screen and entered scrollback.
	Scrolled int
	// Evicted is the number of scrollback rows dropped to stay within
	// the retention cap. Absolute line coordinates held by callers
	// shift down by this amount.
	Evicted int
}

// NewAdapter wraps an engine-backed grid with scrollback retention.
func NewAdapter(cols, rows, maxScrollback int) *Adapter {
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	return &Adapter{
		eng:  NewEngine(cols, rows),
		sb:   newScrollback(maxScrollback),
		cols: cols,
		rows: rows,
	}
}

// Seq returns the current snapshot version. It changes exactly when
// grid contents may have changed: on Feed and on Resize.
func (a *Adapter) Seq() uint64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.seq
}

// Size returns the live grid dimensions.
func (a *Adapter) Size() (cols, rows int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.cols, a.rows
}

// ScrollbackLen returns the number of retained history rows.
func (a *Adapter) ScrollbackLen() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.sb.Len()
}

// Feed parses one chunk of PTY output. Rows that scroll off the top of
// the screen are captured, styled, into scrollback before the engine
// overwrites them. The chunk is applied one line at a time so a single
// large burst cannot scroll further than the capture can observe.
func (a *Adapter) Feed(p []byte) (FeedResult, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	var res FeedResult
	for len(p) > 0 {
		seg := p
		if i := bytes.IndexByte(p, '\n'); i >= 0 {
			seg = p[:i+1]
		}
		p = p[len(seg):]

		a.captureScreen()
		if _, err := a.eng.Write(seg); err != nil {
			return res, err
		}
		r := a.absorbScroll()
		res.Scrolled += r.Scrolled
		res.Evicted += r.Evicted
	}
	a.seq++
	return res, nil
}

// captureScreen records the live grid, plain and styled, before a write.
// Caller holds a.mu.
func (a *Adapter) captureScreen() {
	a.eng.Lock()
	defer a.eng.Unlock()

	a.prevPlain = a.prevPlain[:0]
	a.prevStyled = a.prevStyled[:0]
	for y := 0; y < a.rows; y++ {
		var plain strings.Builder
		styled := make([]Cell, a.cols)
		for x := 0; x < a.cols; x++ {
			c := glyphCell(a.eng.Cell(x, y))
			styled[x] = c
			plain.WriteRune(c.Rune)
		}
		a.prevPlain = append(a.prevPlain, strings.TrimRight(plain.String(), " "))
		a.prevStyled = append(a.prevStyled, styled)
	}
	a.prevCursorY = a.eng.Cursor().Y
}

// absorbScroll compares the post-write grid to the pre-write capture,
// infers how many rows scrolled off the top, and moves those rows into
// scrollback. The engine does not report scroll events, so this aligns
// the old screen against the new one: rows above the pre-write cursor
// only change when the screen scrolls, so they anchor the shift. A diff
// that aligns at no shift is a repaint, not a scroll, and captures
// nothing. Caller holds a.mu.
func (a *Adapter) absorbScroll() FeedResult {
	a.eng.Lock()
	newPlain := make([]string, a.rows)
	for y := 0; y < a.rows; y++ {
		var plain strings.Builder
		for x := 0; x < a.cols; x++ {
			c := a.eng.Cell(x, y)
			r := c.Char
			if r == 0 {
				r = ' '
			}
			plain.WriteRune(r)
		}
		newPlain[y] = strings.TrimRight(plain.String(), " ")
	}
	a.eng.Unlock()

	if len(a.prevPlain) != a.rows {
		return FeedResult{}
	}

	scrolled := 0
	for shift := 0; shift < a.rows; shift++ {
		if a.alignsAt(shift, newPlain) {
			scrolled = shift
			break
		}
	}
	if scrolled == 0 {
		return FeedResult{}
	}

	evicted := 0
	for i := 0; i < scrolled; i++ {
		evicted += a.sb.Push(a.prevStyled[i])
	}
	return FeedResult{Scrolled: scrolled, Evicted: evicted}
}

// alignsAt reports whether the old screen shifted up by the given
// amount matches the new one. Only rows above the pre-write cursor
// constrain the match; the write itself may touch anything at or below
// it. Blank old rows match any content, since output fills them in
// place without scrolling.
func (a *Adapter) alignsAt(shift int, newPlain []string) bool {
	for i := shift; i < a.prevCursorY && i < len(a.prevPlain); i++ {
		line := a.prevPlain[i]
		if line == "" {
			continue
		}
		if line != newPlain[i-shift] {
			return false
		}
	}
	return true
}

// Resize changes the live grid dimensions. History is retained as-is;
// rows captured at the old width keep their old length and snapshots
// pad or truncate them on read.
func (a *Adapter) Resize(cols, rows int) {
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	if cols == a.cols && rows == a.rows {
		return
	}
	a.eng.Resize(cols, rows)
	a.cols = cols
	a.rows = rows
	a.seq++
}

// SetMaxScrollback adjusts history retention, evicting oldest rows when
// shrinking. Returns the number of evicted rows.
func (a *Adapter) SetMaxScrollback(max int) int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.sb.SetMax(max)
}

// ClearScrollback drops all retained history.
func (a *Adapter) ClearScrollback() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.sb.Clear()
}

// TotalLines returns the absolute line count: history plus live rows.
func (a *Adapter) TotalLines() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.sb.Len() + a.rows
}

// lineCells returns the styled cells of an absolute line, already
// padded or truncated to the current width. Caller holds a.mu; live
// rows additionally require the engine lock, which this takes itself.
func (a *Adapter) lineCells(abs int) []Cell {
	sbLen := a.sb.Len()
	out := make([]Cell, a.cols)
	if abs < 0 || abs >= sbLen+a.rows {
		for x := range out {
			out[x] = Cell{Rune: ' ', Style: Style{FG: ColorDefault, BG: ColorDefault}}
		}
		return out
	}
	if abs < sbLen {
		src := a.sb.Line(abs)
		for x := range out {
			if x < len(src) {
				out[x] = src[x]
			} else {
				out[x] = Cell{Rune: ' ', Style: Style{FG: ColorDefault, BG: ColorDefault}}
			}
		}
		return out
	}
	y := abs - sbLen
	a.eng.Lock()
	for x := 0; x < a.cols; x++ {
		out[x] = glyphCell(a.eng.Cell(x, y))
	}
	a.eng.Unlock()
	return out
}

// lineText returns the plain text of an absolute line with trailing
// blanks trimmed. Caller holds a.mu.
func (a *Adapter) lineText(abs int) string {
	cells := a.lineCells(abs)
	var sb strings.Builder
	for _, c := range cells {
		sb.WriteRune(c.Rune)
	}
	return strings.TrimRight(sb.String(), " ")
}

// Snapshot materializes the viewport at the given scrollback offset.
// Offset 0 is the live screen bottom; offset n shows the view n rows
// earlier. The offset is clamped to retained history and the clamped
// value is recorded on the snapshot.
func (a *Adapter) Snapshot(offset int) *Snapshot {
	a.mu.Lock()
	defer a.mu.Unlock()

	sbLen := a.sb.Len()
	if offset < 0 {
		offset = 0
	}
	if offset > sbLen {
		offset = sbLen
	}

	snap := &Snapshot{
		Seq:           a.seq,
		Cols:          a.cols,
		Rows:          a.rows,
		Offset:        offset,
		ScrollbackLen: sbLen,
		Cells:         make([][]Cell, a.rows),
	}

	top := sbLen - offset
	for y := 0; y < a.rows; y++ {
		snap.Cells[y] = a.lineCells(top + y)
	}

	a.eng.Lock()
	cur := a.eng.Cursor()
	visible := a.eng.CursorVisible()
	a.eng.Unlock()

	// The cursor lives on the live screen only; scrolled-back views
	// hide it rather than drawing it over history.
	snap.CursorX = cur.X
	snap.CursorY = cur.Y + offset
	snap.CursorVisible = visible && offset == 0

	snap.Links = findLinks(snap)
	return snap
}

// Snapshot is an immutable view of one viewport. Safe to read from any
// goroutine after creation; the adapter never mutates a returned
// snapshot.
type Snapshot struct {
	Seq           uint64
	Cols, Rows    int
	Offset        int
	ScrollbackLen int

	// Cells is Rows x Cols; row 0 is the top of the viewport.
	Cells [][]Cell

	// Cursor position in viewport coordinates. CursorVisible is false
	// whenever the view is scrolled back.
	CursorX, CursorY int
	CursorVisible    bool

	Links []LinkSpan
}

// AbsLine converts a viewport row to an absolute line number.
func (s *Snapshot) AbsLine(y int) int {
	return s.ScrollbackLen - s.Offset + y
}

// ViewRow converts an absolute line to a viewport row, with ok=false
// when the line is outside the viewport.
func (s *Snapshot) ViewRow(abs int) (int, bool) {
	y := abs - (s.ScrollbackLen - s.Offset)
	return y, y >= 0 && y < s.Rows
}

// Line returns the plain text of a viewport row, trailing blanks
// trimmed.
func (s *Snapshot) Line(y int) string {
	if y < 0 || y >= len(s.Cells) {
		return ""
	}
	var sb strings.Builder
	for _, c := range s.Cells[y] {
		sb.WriteRune(c.Rune)
	}
	return strings.TrimRight(sb.String(), " ")
}
