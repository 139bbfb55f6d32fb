package emu

// scrollback retains styled rows that have scrolled off the top of the
// live screen. The engine itself keeps no history, so the adapter
// captures rows here as they leave the grid.
type scrollback struct {
	lines [][]Cell
	max   int
}

func newScrollback(max int) *scrollback {
	if max < 0 {
		max = 0
	}
	return &scrollback{max: max}
}

// Push appends a row, evicting the oldest rows beyond the cap. It
// returns how many rows were evicted so callers can re-anchor absolute
// coordinates.
func (s *scrollback) Push(line []Cell) int {
	if s.max == 0 {
		return 1
	}
	s.lines = append(s.lines, line)
	evicted := 0
	if len(s.lines) > s.max {
		evicted = len(s.lines) - s.max
		// Copy down instead of reslicing so the backing array does not
		// pin evicted rows.
		n := copy(s.lines, s.lines[evicted:])
		for i := n; i < len(s.lines); i++ {
			s.lines[i] = nil
		}
		s.lines = s.lines[:n]
	}
	return evicted
}

func (s *scrollback) Len() int { return len(s.lines) }

// Line returns the i-th retained row, oldest first.
func (s *scrollback) Line(i int) []Cell { return s.lines[i] }

func (s *scrollback) Clear() { s.lines = s.lines[:0] }

// SetMax adjusts the retention cap, evicting oldest rows if the buffer
// already exceeds it. Returns the number of evicted rows.
func (s *scrollback) SetMax(max int) int {
	if max < 0 {
		max = 0
	}
	s.max = max
	if len(s.lines) <= max {
		return 0
	}
	evicted := len(s.lines) - max
	n := copy(s.lines, s.lines[evicted:])
	for i := n; i < len(s.lines); i++ {
		s.lines[i] = nil
	}
	s.lines = s.lines[:n]
	return evicted
}
