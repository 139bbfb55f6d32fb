// Package termbridge embeds interactive terminals in GUI hosts. Each
// terminal pairs a PTY-attached child process with a terminal emulator
// and exposes render-safe snapshots, GUI input translation, selection
// and hyperlink detection. The host owns the widget surface; this
// package owns everything between the widget and the PTY.
//
// A Registry manages terminal lifecycles. The host creates terminals,
// feeds them key, pointer, wheel and resize events, and projects
// frames for painting:
//
//	reg := termbridge.NewRegistry(nil)
//	term, err := reg.Create(termbridge.CreateOptions{Cols: 80, Rows: 24})
//	...
//	out := term.Frame(true)
//	// draw out.Lines, repaint when OnUpdate fires
package termbridge

import (
	"github.com/Gaurav-Gosain/termbridge/internal/emu"
	"github.com/Gaurav-Gosain/termbridge/internal/render"
	"github.com/Gaurav-Gosain/termbridge/internal/session"
)

// TerminalID uniquely identifies a terminal within a registry.
type TerminalID string

// Status re-exports the session lifecycle state.
type Status = session.Status

// Lifecycle states of a terminal.
const (
	StatusRunning = session.StatusRunning
	StatusClosed  = session.StatusClosed
	StatusCrashed = session.StatusCrashed
)

// The grid and frame types hosts consume when drawing.
type (
	// Snapshot is an immutable view of one viewport.
	Snapshot = emu.Snapshot
	// Cell is one grid cell: a rune plus its style.
	Cell = emu.Cell
	// Style is the visual state of a cell.
	Style = emu.Style
	// Color is a packed terminal color.
	Color = emu.Color
	// LinkSpan is one detected hyperlink on a viewport row.
	LinkSpan = emu.LinkSpan

	// Output is one projected frame of styled runs.
	Output = render.Output
	// Run is a horizontal stretch of cells sharing one style.
	Run = render.Run
)

// ColorDefault marks the terminal's default foreground or background.
const ColorDefault = emu.ColorDefault
