package termbridge

import "github.com/Gaurav-Gosain/termbridge/internal/input"

// The event and clipboard types hosts need to drive a terminal,
// re-exported so modules outside this one can construct them.
type (
	// KeyEvent is one key press from the host toolkit.
	KeyEvent = input.KeyEvent
	// PointerEvent is a pointer interaction in viewport cell
	// coordinates.
	PointerEvent = input.PointerEvent
	// WheelEvent is vertical scroll motion in whole lines.
	WheelEvent = input.WheelEvent

	// KeyCode identifies a non-printable key.
	KeyCode = input.KeyCode
	// Mod is a bitmask of held modifier keys.
	Mod = input.Mod
	// PointerKind distinguishes pointer event phases.
	PointerKind = input.PointerKind
	// PointerButton identifies which button an event concerns.
	PointerButton = input.PointerButton

	// Clipboard lets hosts bridge their own clipboard abstraction.
	Clipboard = input.Clipboard
)

// Modifier bits.
const (
	ModShift = input.ModShift
	ModAlt   = input.ModAlt
	ModCtrl  = input.ModCtrl
)

// Key codes. Printable input arrives as KeyRune with the rune set, or
// as KeyText with composed text.
const (
	KeyRune      = input.KeyRune
	KeyText      = input.KeyText
	KeyEnter     = input.KeyEnter
	KeyBackspace = input.KeyBackspace
	KeyTab       = input.KeyTab
	KeyEscape    = input.KeyEscape
	KeyUp        = input.KeyUp
	KeyDown      = input.KeyDown
	KeyLeft      = input.KeyLeft
	KeyRight     = input.KeyRight
	KeyHome      = input.KeyHome
	KeyEnd       = input.KeyEnd
	KeyPageUp    = input.KeyPageUp
	KeyPageDown  = input.KeyPageDown
	KeyDelete    = input.KeyDelete
	KeyInsert    = input.KeyInsert
	KeyF1        = input.KeyF1
	KeyF2        = input.KeyF2
	KeyF3        = input.KeyF3
	KeyF4        = input.KeyF4
	KeyF5        = input.KeyF5
	KeyF6        = input.KeyF6
	KeyF7        = input.KeyF7
	KeyF8        = input.KeyF8
	KeyF9        = input.KeyF9
	KeyF10       = input.KeyF10
	KeyF11       = input.KeyF11
	KeyF12       = input.KeyF12
)

// Pointer event phases.
const (
	PointerPress   = input.PointerPress
	PointerMove    = input.PointerMove
	PointerRelease = input.PointerRelease
)

// Pointer buttons.
const (
	ButtonNone   = input.ButtonNone
	ButtonLeft   = input.ButtonLeft
	ButtonMiddle = input.ButtonMiddle
	ButtonRight  = input.ButtonRight
)
