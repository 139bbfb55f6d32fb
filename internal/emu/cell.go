// Package emu wraps the external terminal-emulation engine behind a
// narrow adapter. The engine owns escape-sequence parsing and the live
// grid; this package owns styled snapshots, scrollback history,
// selection ranges and hyperlink detection on top of it.
package emu

import "github.com/hinshun/vt10x"

// Color is a terminal color in the engine's packed encoding: values
// below 256 are palette indexes, other values below 1<<24 are 24-bit
// RGB, and anything at or above 1<<24 means "use the theme default".
type Color uint32

// ColorDefault marks a cell that carries no explicit color. The host
// theme decides what to draw for it.
const ColorDefault Color = 1 << 24

// IsDefault reports whether the color is a theme-default placeholder.
func (c Color) IsDefault() bool { return c >= 1<<24 }

// IsPalette reports whether the color is an indexed palette entry.
func (c Color) IsPalette() bool { return c < 256 }

// RGB decomposes a 24-bit color. Only meaningful when the color is
// neither a default nor a palette index.
func (c Color) RGB() (r, g, b uint8) {
	return uint8(c >> 16), uint8(c >> 8), uint8(c)
}

// Style is the renderable attribute set of a cell or run.
type Style struct {
	FG        Color
	BG        Color
	Bold      bool
	Italic    bool
	Underline bool
	Reverse   bool

	// Link is the hyperlink target covering this run, if any. It is an
	// overlay attribute: base cells never carry it, the projector fills
	// it in from the snapshot's link index.
	Link string
}

// Cell is one grid position of a snapshot.
type Cell struct {
	Rune  rune
	Style Style
}

// Engine glyph attribute bits. These mirror the engine's packed mode
// field; see the conversion in glyphCell.
const (
	attrReverse   = 0x01
	attrUnderline = 0x02
	attrBold      = 0x04
	attrItalic    = 0x10
)

// glyphCell converts an engine glyph into a snapshot cell. Empty glyphs
// become plain spaces so extracted text and runs stay rectangular.
func glyphCell(g vt10x.Glyph) Cell {
	r := g.Char
	if r == 0 {
		r = ' '
	}
	fg := Color(g.FG)
	if fg.IsDefault() {
		fg = ColorDefault
	}
	bg := Color(g.BG)
	if bg.IsDefault() {
		bg = ColorDefault
	}
	return Cell{
		Rune: r,
		Style: Style{
			FG:        fg,
			BG:        bg,
			Bold:      g.Mode&attrBold != 0,
			Italic:    g.Mode&attrItalic != 0,
			Underline: g.Mode&attrUnderline != 0,
			Reverse:   g.Mode&attrReverse != 0,
		},
	}
}

// Point is an absolute grid coordinate. Line 0 is the oldest retained
// scrollback row; the live screen starts at line == scrollback length.
type Point struct {
	Line int
	Col  int
}

// Before reports whether p precedes q in reading order.
func (p Point) Before(q Point) bool {
	return p.Line < q.Line || (p.Line == q.Line && p.Col < q.Col)
}
