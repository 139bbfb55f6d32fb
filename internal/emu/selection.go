package emu

import "strings"

// SelectionMode distinguishes how a selection grows as the pointer
// drags.
type SelectionMode int

const (
	SelectNone SelectionMode = iota
	// SelectSimple is a character-range selection between two points.
	SelectSimple
	// SelectWord snaps both ends to word boundaries.
	SelectWord
	// SelectLine snaps both ends to full lines.
	SelectLine
	// SelectBlock selects the rectangle spanned by anchor and head.
	SelectBlock
)

// Selection is a range over absolute grid coordinates. Anchor is where
// the drag started; Head follows the pointer. Head may precede Anchor.
type Selection struct {
	Mode   SelectionMode
	Anchor Point
	Head   Point
}

// Active reports whether there is anything to render or copy.
func (s Selection) Active() bool { return s.Mode != SelectNone }

// Normalized returns the selection's start and end in reading order.
func (s Selection) Normalized() (start, end Point) {
	if s.Head.Before(s.Anchor) {
		return s.Head, s.Anchor
	}
	return s.Anchor, s.Head
}

// Contains reports whether the absolute point falls inside the
// selection. Ranges are inclusive of both endpoints, matching how the
// pointer lands on cells.
func (s Selection) Contains(p Point) bool {
	if s.Mode == SelectNone {
		return false
	}
	start, end := s.Normalized()
	switch s.Mode {
	case SelectLine:
		return p.Line >= start.Line && p.Line <= end.Line
	case SelectBlock:
		lo, hi := start.Col, end.Col
		if lo > hi {
			lo, hi = hi, lo
		}
		return p.Line >= start.Line && p.Line <= end.Line && p.Col >= lo && p.Col <= hi
	default:
		if p.Line < start.Line || p.Line > end.Line {
			return false
		}
		if p.Line == start.Line && p.Col < start.Col {
			return false
		}
		if p.Line == end.Line && p.Col > end.Col {
			return false
		}
		return true
	}
}

// Shift moves both endpoints up by n lines, used when scrollback
// eviction renumbers absolute coordinates. Endpoints pushed above line
// zero clamp to the start of the retained buffer.
func (s *Selection) Shift(n int) {
	if n <= 0 || s.Mode == SelectNone {
		return
	}
	s.Anchor.Line -= n
	s.Head.Line -= n
	if s.Anchor.Line < 0 {
		s.Anchor = Point{}
	}
	if s.Head.Line < 0 {
		s.Head = Point{}
	}
}

// Clamp constrains both endpoints to the valid coordinate space. A
// selection whose whole range fell off the retained buffer collapses
// to inactive.
func (s *Selection) Clamp(totalLines, cols int) {
	if s.Mode == SelectNone {
		return
	}
	if totalLines <= 0 || cols <= 0 {
		*s = Selection{}
		return
	}
	clampPoint := func(p Point) Point {
		if p.Line < 0 {
			p.Line, p.Col = 0, 0
		}
		if p.Line >= totalLines {
			p.Line, p.Col = totalLines-1, cols-1
		}
		if p.Col < 0 {
			p.Col = 0
		}
		if p.Col >= cols {
			p.Col = cols - 1
		}
		return p
	}
	s.Anchor = clampPoint(s.Anchor)
	s.Head = clampPoint(s.Head)
}

// wordRunes are the characters treated as part of a word for
// double-click selection, beyond letters and digits.
const wordRunes = "_-./~?&=%+#:"

func isWordRune(r rune) bool {
	if r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' {
		return true
	}
	if r > 127 && r != ' ' {
		return true
	}
	return strings.ContainsRune(wordRunes, r)
}

// WordAt expands the absolute point to the word under it. When the
// point sits on whitespace the result is the single cell itself.
func (a *Adapter) WordAt(p Point) (start, end Point) {
	a.mu.Lock()
	defer a.mu.Unlock()
	cells := a.lineCells(p.Line)
	col := p.Col
	if col < 0 {
		col = 0
	}
	if col >= len(cells) {
		col = len(cells) - 1
	}
	start = Point{Line: p.Line, Col: col}
	end = start
	if col < 0 || !isWordRune(cells[col].Rune) {
		return start, end
	}
	for start.Col > 0 && isWordRune(cells[start.Col-1].Rune) {
		start.Col--
	}
	for end.Col < len(cells)-1 && isWordRune(cells[end.Col+1].Rune) {
		end.Col++
	}
	return start, end
}

// LineAt expands the absolute point to its full line.
func (a *Adapter) LineAt(p Point) (start, end Point) {
	a.mu.Lock()
	cols := a.cols
	a.mu.Unlock()
	return Point{Line: p.Line}, Point{Line: p.Line, Col: cols - 1}
}

// SelectionText extracts the selected text. Line boundaries become
// newlines; trailing blanks on each line are dropped. Block selections
// extract the rectangle row by row.
func (a *Adapter) SelectionText(sel Selection) string {
	if !sel.Active() {
		return ""
	}
	a.mu.Lock()
	defer a.mu.Unlock()

	start, end := sel.Normalized()
	total := a.sb.Len() + a.rows
	if start.Line >= total || end.Line < 0 {
		return ""
	}

	var out strings.Builder
	switch sel.Mode {
	case SelectBlock:
		lo, hi := start.Col, end.Col
		if lo > hi {
			lo, hi = hi, lo
		}
		for line := start.Line; line <= end.Line && line < total; line++ {
			if line > start.Line {
				out.WriteByte('\n')
			}
			cells := a.lineCells(line)
			var row strings.Builder
			for col := lo; col <= hi && col < len(cells); col++ {
				row.WriteRune(cells[col].Rune)
			}
			out.WriteString(strings.TrimRight(row.String(), " "))
		}
	case SelectLine:
		for line := start.Line; line <= end.Line && line < total; line++ {
			if line > start.Line {
				out.WriteByte('\n')
			}
			out.WriteString(a.lineText(line))
		}
	default:
		for line := start.Line; line <= end.Line && line < total; line++ {
			if line > start.Line {
				out.WriteByte('\n')
			}
			cells := a.lineCells(line)
			from, to := 0, len(cells)-1
			if line == start.Line {
				from = start.Col
			}
			if line == end.Line {
				to = end.Col
			}
			var row strings.Builder
			for col := from; col <= to && col < len(cells); col++ {
				if col < 0 {
					continue
				}
				row.WriteRune(cells[col].Rune)
			}
			text := row.String()
			// Keep interior runs intact; only the ragged right edge of
			// each line is padding.
			out.WriteString(strings.TrimRight(text, " "))
		}
	}
	return out.String()
}
