package emu

import "github.com/hinshun/vt10x"

// Engine is the slice of the emulation engine the adapter needs. The
// engine parses escape sequences fed through Write and maintains the
// live grid; everything above it treats the grid as opaque state read
// back cell by cell.
//
// Readers must bracket grid access with Lock/Unlock. Write is
// internally synchronized by the engine.
type Engine interface {
	Write(p []byte) (int, error)
	Resize(cols, rows int)
	Size() (cols, rows int)
	Cell(x, y int) vt10x.Glyph
	Cursor() vt10x.Cursor
	CursorVisible() bool
	Lock()
	Unlock()
	String() string
}

// NewEngine creates a vt10x-backed engine with the given grid size.
func NewEngine(cols, rows int) Engine {
	return vt10x.New(vt10x.WithSize(cols, rows))
}
