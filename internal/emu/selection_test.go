package emu

import "testing"

// TestSelectionNormalized tests endpoint ordering
func TestSelectionNormalized(t *testing.T) {
	tests := []struct {
		name         string
		anchor, head Point
		start, end   Point
	}{
		{"forward", Point{1, 2}, Point{3, 4}, Point{1, 2}, Point{3, 4}},
		{"backward", Point{3, 4}, Point{1, 2}, Point{1, 2}, Point{3, 4}},
		{"same line backward", Point{2, 9}, Point{2, 1}, Point{2, 1}, Point{2, 9}},
		{"single cell", Point{5, 5}, Point{5, 5}, Point{5, 5}, Point{5, 5}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sel := Selection{Mode: SelectSimple, Anchor: tt.anchor, Head: tt.head}
			start, end := sel.Normalized()
			if start != tt.start || end != tt.end {
				t.Errorf("Expected %v..%v, got %v..%v", tt.start, tt.end, start, end)
			}
		})
	}
}

// TestSelectionContains tests hit testing per selection mode
func TestSelectionContains(t *testing.T) {
	tests := []struct {
		name string
		sel  Selection
		p    Point
		want bool
	}{
		{"simple inside", Selection{SelectSimple, Point{1, 3}, Point{2, 5}}, Point{1, 7}, true},
		{"simple before start col", Selection{SelectSimple, Point{1, 3}, Point{2, 5}}, Point{1, 2}, false},
		{"simple after end col", Selection{SelectSimple, Point{1, 3}, Point{2, 5}}, Point{2, 6}, false},
		{"simple endpoint inclusive", Selection{SelectSimple, Point{1, 3}, Point{2, 5}}, Point{2, 5}, true},
		{"line covers full row", Selection{SelectLine, Point{1, 9}, Point{2, 0}}, Point{2, 80}, true},
		{"line outside range", Selection{SelectLine, Point{1, 0}, Point{2, 0}}, Point{3, 0}, false},
		{"block inside rect", Selection{SelectBlock, Point{1, 2}, Point{4, 6}}, Point{3, 4}, true},
		{"block outside cols", Selection{SelectBlock, Point{1, 2}, Point{4, 6}}, Point{3, 7}, false},
		{"block reversed cols", Selection{SelectBlock, Point{1, 6}, Point{4, 2}}, Point{2, 3}, true},
		{"none matches nothing", Selection{}, Point{0, 0}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.sel.Contains(tt.p); got != tt.want {
				t.Errorf("Contains(%v) = %v, expected %v", tt.p, got, tt.want)
			}
		})
	}
}

// TestSelectionShiftAndClamp tests renumbering after eviction
func TestSelectionShiftAndClamp(t *testing.T) {
	sel := Selection{Mode: SelectSimple, Anchor: Point{2, 4}, Head: Point{5, 1}}
	sel.Shift(3)
	if sel.Anchor != (Point{0, 0}) {
		t.Errorf("Anchor pushed off top should clamp to origin, got %v", sel.Anchor)
	}
	if sel.Head != (Point{2, 1}) {
		t.Errorf("Head should shift to {2 1}, got %v", sel.Head)
	}

	sel = Selection{Mode: SelectSimple, Anchor: Point{0, 0}, Head: Point{50, 99}}
	sel.Clamp(10, 80)
	if sel.Head != (Point{9, 79}) {
		t.Errorf("Head should clamp to {9 79}, got %v", sel.Head)
	}

	sel = Selection{Mode: SelectSimple, Anchor: Point{0, 0}, Head: Point{1, 1}}
	sel.Clamp(0, 0)
	if sel.Active() {
		t.Error("Selection over an empty grid should collapse to inactive")
	}
}

// TestSelectionText tests text extraction for each mode
func TestSelectionText(t *testing.T) {
	a := NewAdapter(20, 4, 100)
	feed(t, a, "hello world\r\nsecond line\r\nthird")

	tests := []struct {
		name string
		sel  Selection
		want string
	}{
		{
			"simple within line",
			Selection{SelectSimple, Point{0, 0}, Point{0, 4}},
			"hello",
		},
		{
			"simple reversed drag",
			Selection{SelectSimple, Point{0, 4}, Point{0, 0}},
			"hello",
		},
		{
			"simple across lines",
			Selection{SelectSimple, Point{0, 6}, Point{1, 5}},
			"world\nsecond",
		},
		{
			"line mode",
			Selection{SelectLine, Point{1, 7}, Point{2, 2}},
			"second line\nthird",
		},
		{
			"block mode",
			Selection{SelectBlock, Point{0, 0}, Point{2, 4}},
			"hello\nsecon\nthird",
		},
		{
			"inactive",
			Selection{},
			"",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := a.SelectionText(tt.sel); got != tt.want {
				t.Errorf("Expected %q, got %q", tt.want, got)
			}
		})
	}
}

// TestWordAt tests double-click word expansion
func TestWordAt(t *testing.T) {
	a := NewAdapter(40, 2, 0)
	feed(t, a, "run ./cmd/tool --flag=1 end")

	tests := []struct {
		name       string
		p          Point
		start, end Point
	}{
		{"plain word", Point{0, 1}, Point{0, 0}, Point{0, 2}},
		{"path is one word", Point{0, 6}, Point{0, 4}, Point{0, 13}},
		{"flag with equals", Point{0, 17}, Point{0, 15}, Point{0, 22}},
		{"whitespace stays put", Point{0, 3}, Point{0, 3}, Point{0, 3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := a.WordAt(tt.p)
			if start != tt.start || end != tt.end {
				t.Errorf("WordAt(%v) = %v..%v, expected %v..%v",
					tt.p, start, end, tt.start, tt.end)
			}
		})
	}
}

// TestLineAt tests triple-click line expansion
func TestLineAt(t *testing.T) {
	a := NewAdapter(30, 2, 0)
	feed(t, a, "some text")
	start, end := a.LineAt(Point{0, 5})
	if start != (Point{0, 0}) || end != (Point{0, 29}) {
		t.Errorf("LineAt = %v..%v, expected full row", start, end)
	}
}
