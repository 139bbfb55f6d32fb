// Package input translates host GUI events into terminal semantics:
// key presses become PTY byte sequences, pointer gestures become
// selections and link actions, wheel motion becomes view scrolling.
package input

// Mod is a bitmask of held modifier keys.
type Mod uint8

const (
	ModShift Mod = 1 << iota
	ModAlt
	ModCtrl
)

// KeyCode identifies a non-printable key. Printable input arrives as
// KeyRune with the rune set, or as KeyText with composed text.
type KeyCode int

const (
	KeyRune KeyCode = iota
	KeyText
	KeyEnter
	KeyBackspace
	KeyTab
	KeyEscape
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyDelete
	KeyInsert
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12
)

// KeyEvent is one key press from the host toolkit.
type KeyEvent struct {
	Code KeyCode
	// Rune is set for KeyRune events.
	Rune rune
	// Text is set for KeyText events (IME composition, dead keys).
	Text string
	Mods Mod
}

// PointerKind distinguishes pointer event phases.
type PointerKind int

const (
	PointerPress PointerKind = iota
	PointerMove
	PointerRelease
)

// PointerButton identifies which button the event concerns.
type PointerButton int

const (
	ButtonNone PointerButton = iota
	ButtonLeft
	ButtonMiddle
	ButtonRight
)

// PointerEvent is a pointer interaction already mapped to cell
// coordinates by the host. X and Y are viewport cells, not pixels.
type PointerEvent struct {
	Kind   PointerKind
	X, Y   int
	Button PointerButton
	Mods   Mod
}

// WheelEvent is vertical scroll motion in whole lines. Positive means
// scrolling up, towards history.
type WheelEvent struct {
	Lines int
	Mods  Mod
}

// ResizeEvent is a new grid geometry in cells.
type ResizeEvent struct {
	Cols, Rows int
}
