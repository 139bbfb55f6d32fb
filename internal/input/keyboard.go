package input

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// csiMod computes the xterm modifier parameter: 1 plus the modifier
// bits, shift=1 alt=2 ctrl=4.
func csiMod(mods Mod) int {
	m := 1
	if mods&ModShift != 0 {
		m += 1
	}
	if mods&ModAlt != 0 {
		m += 2
	}
	if mods&ModCtrl != 0 {
		m += 4
	}
	return m
}

// csiSeq builds a CSI sequence with an optional modifier parameter,
// e.g. ESC [ 1 ; 5 A for ctrl+up.
func csiSeq(base string, final byte, mods Mod) []byte {
	var sb strings.Builder
	sb.WriteString("\x1b[")
	if mods != 0 {
		sb.WriteString(base)
		sb.WriteByte(';')
		sb.WriteString(strconv.Itoa(csiMod(mods)))
	} else if base != "1" {
		sb.WriteString(base)
	}
	sb.WriteByte(final)
	return []byte(sb.String())
}

// Encode converts a key event into the byte sequence a terminal
// application expects on its PTY. ok is false for events that produce
// no bytes, like a bare modifier press.
func Encode(ev KeyEvent) (seq []byte, ok bool) {
	switch ev.Code {
	case KeyText:
		if ev.Text == "" {
			return nil, false
		}
		return []byte(ev.Text), true

	case KeyRune:
		return encodeRune(ev.Rune, ev.Mods)

	case KeyEnter:
		if ev.Mods&ModAlt != 0 {
			return []byte{0x1b, '\r'}, true
		}
		return []byte{'\r'}, true

	case KeyBackspace:
		if ev.Mods&ModAlt != 0 {
			return []byte{0x1b, 0x7f}, true
		}
		if ev.Mods&ModCtrl != 0 {
			return []byte{0x08}, true
		}
		return []byte{0x7f}, true

	case KeyTab:
		if ev.Mods&ModShift != 0 {
			return []byte("\x1b[Z"), true
		}
		return []byte{'\t'}, true

	case KeyEscape:
		return []byte{0x1b}, true

	case KeyUp:
		return csiSeq("1", 'A', ev.Mods), true
	case KeyDown:
		return csiSeq("1", 'B', ev.Mods), true
	case KeyRight:
		return csiSeq("1", 'C', ev.Mods), true
	case KeyLeft:
		return csiSeq("1", 'D', ev.Mods), true
	case KeyHome:
		return csiSeq("1", 'H', ev.Mods), true
	case KeyEnd:
		return csiSeq("1", 'F', ev.Mods), true

	case KeyInsert:
		return csiSeq("2", '~', ev.Mods), true
	case KeyDelete:
		return csiSeq("3", '~', ev.Mods), true
	case KeyPageUp:
		return csiSeq("5", '~', ev.Mods), true
	case KeyPageDown:
		return csiSeq("6", '~', ev.Mods), true

	case KeyF1:
		return fnKey("\x1bOP", 'P', ev.Mods), true
	case KeyF2:
		return fnKey("\x1bOQ", 'Q', ev.Mods), true
	case KeyF3:
		return fnKey("\x1bOR", 'R', ev.Mods), true
	case KeyF4:
		return fnKey("\x1bOS", 'S', ev.Mods), true
	case KeyF5:
		return csiSeq("15", '~', ev.Mods), true
	case KeyF6:
		return csiSeq("17", '~', ev.Mods), true
	case KeyF7:
		return csiSeq("18", '~', ev.Mods), true
	case KeyF8:
		return csiSeq("19", '~', ev.Mods), true
	case KeyF9:
		return csiSeq("20", '~', ev.Mods), true
	case KeyF10:
		return csiSeq("21", '~', ev.Mods), true
	case KeyF11:
		return csiSeq("23", '~', ev.Mods), true
	case KeyF12:
		return csiSeq("24", '~', ev.Mods), true
	}
	return nil, false
}

// fnKey returns the SS3 form for unmodified F1-F4 and the CSI form
// when modifiers are held.
func fnKey(plain string, final byte, mods Mod) []byte {
	if mods == 0 {
		return []byte(plain)
	}
	return csiSeq("1", final, mods)
}

// encodeRune handles printable input with modifiers. Ctrl combines
// with letters and a handful of punctuation into C0 controls; alt
// prefixes ESC.
func encodeRune(r rune, mods Mod) ([]byte, bool) {
	if r == 0 {
		return nil, false
	}

	if mods&ModCtrl != 0 {
		if b, ok := ctrlByte(r); ok {
			if mods&ModAlt != 0 {
				return []byte{0x1b, b}, true
			}
			return []byte{b}, true
		}
	}

	buf := make([]byte, 0, utf8.UTFMax+1)
	if mods&ModAlt != 0 {
		buf = append(buf, 0x1b)
	}
	return utf8.AppendRune(buf, r), true
}

// ctrlByte maps a rune to its control character, following the
// terminal convention that ctrl clears bits 6 and 7.
func ctrlByte(r rune) (byte, bool) {
	switch {
	case r >= 'a' && r <= 'z':
		return byte(r-'a') + 1, true
	case r >= 'A' && r <= 'Z':
		return byte(r-'A') + 1, true
	case r == ' ', r == '@', r == '2':
		return 0, true
	case r == '[', r == '3':
		return 0x1b, true
	case r == '\\', r == '4':
		return 0x1c, true
	case r == ']', r == '5':
		return 0x1d, true
	case r == '^', r == '6':
		return 0x1e, true
	case r == '_', r == '7', r == '/':
		return 0x1f, true
	case r == '8', r == '?':
		return 0x7f, true
	}
	return 0, false
}

// SanitizePaste normalizes pasted text for PTY delivery: newlines
// become carriage returns and C0 controls other than tab and CR are
// stripped so a paste cannot inject escape sequences.
func SanitizePaste(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\r")
	text = strings.ReplaceAll(text, "\n", "\r")
	var sb strings.Builder
	sb.Grow(len(text))
	for _, r := range text {
		if r < 0x20 && r != '\r' && r != '\t' {
			continue
		}
		if r == 0x7f {
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

// BracketPaste wraps sanitized text in bracketed-paste markers for
// applications that enabled the mode.
func BracketPaste(text string) []byte {
	return []byte("\x1b[200~" + SanitizePaste(text) + "\x1b[201~")
}
