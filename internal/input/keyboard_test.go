package input

import (
	"bytes"
	"testing"
)

// TestEncodeKeys tests the PTY byte sequences for key events
func TestEncodeKeys(t *testing.T) {
	tests := []struct {
		name string
		ev   KeyEvent
		want []byte
	}{
		{"plain rune", KeyEvent{Code: KeyRune, Rune: 'a'}, []byte("a")},
		{"unicode rune", KeyEvent{Code: KeyRune, Rune: 'é'}, []byte("é")},
		{"composed text", KeyEvent{Code: KeyText, Text: "日本"}, []byte("日本")},
		{"ctrl+c", KeyEvent{Code: KeyRune, Rune: 'c', Mods: ModCtrl}, []byte{3}},
		{"ctrl+uppercase", KeyEvent{Code: KeyRune, Rune: 'C', Mods: ModCtrl}, []byte{3}},
		{"ctrl+z", KeyEvent{Code: KeyRune, Rune: 'z', Mods: ModCtrl}, []byte{26}},
		{"ctrl+space", KeyEvent{Code: KeyRune, Rune: ' ', Mods: ModCtrl}, []byte{0}},
		{"ctrl+bracket", KeyEvent{Code: KeyRune, Rune: '[', Mods: ModCtrl}, []byte{0x1b}},
		{"alt+x", KeyEvent{Code: KeyRune, Rune: 'x', Mods: ModAlt}, []byte{0x1b, 'x'}},
		{"ctrl+alt+a", KeyEvent{Code: KeyRune, Rune: 'a', Mods: ModCtrl | ModAlt}, []byte{0x1b, 1}},
		{"enter", KeyEvent{Code: KeyEnter}, []byte{'\r'}},
		{"alt+enter", KeyEvent{Code: KeyEnter, Mods: ModAlt}, []byte{0x1b, '\r'}},
		{"backspace", KeyEvent{Code: KeyBackspace}, []byte{0x7f}},
		{"alt+backspace", KeyEvent{Code: KeyBackspace, Mods: ModAlt}, []byte{0x1b, 0x7f}},
		{"ctrl+backspace", KeyEvent{Code: KeyBackspace, Mods: ModCtrl}, []byte{0x08}},
		{"tab", KeyEvent{Code: KeyTab}, []byte{'\t'}},
		{"shift+tab", KeyEvent{Code: KeyTab, Mods: ModShift}, []byte("\x1b[Z")},
		{"escape", KeyEvent{Code: KeyEscape}, []byte{0x1b}},
		{"up", KeyEvent{Code: KeyUp}, []byte("\x1b[A")},
		{"down", KeyEvent{Code: KeyDown}, []byte("\x1b[B")},
		{"right", KeyEvent{Code: KeyRight}, []byte("\x1b[C")},
		{"left", KeyEvent{Code: KeyLeft}, []byte("\x1b[D")},
		{"shift+up", KeyEvent{Code: KeyUp, Mods: ModShift}, []byte("\x1b[1;2A")},
		{"alt+left", KeyEvent{Code: KeyLeft, Mods: ModAlt}, []byte("\x1b[1;3D")},
		{"ctrl+right", KeyEvent{Code: KeyRight, Mods: ModCtrl}, []byte("\x1b[1;5C")},
		{"ctrl+shift+down", KeyEvent{Code: KeyDown, Mods: ModCtrl | ModShift}, []byte("\x1b[1;6B")},
		{"home", KeyEvent{Code: KeyHome}, []byte("\x1b[H")},
		{"end", KeyEvent{Code: KeyEnd}, []byte("\x1b[F")},
		{"ctrl+home", KeyEvent{Code: KeyHome, Mods: ModCtrl}, []byte("\x1b[1;5H")},
		{"insert", KeyEvent{Code: KeyInsert}, []byte("\x1b[2~")},
		{"delete", KeyEvent{Code: KeyDelete}, []byte("\x1b[3~")},
		{"page up", KeyEvent{Code: KeyPageUp}, []byte("\x1b[5~")},
		{"page down", KeyEvent{Code: KeyPageDown}, []byte("\x1b[6~")},
		{"shift+delete", KeyEvent{Code: KeyDelete, Mods: ModShift}, []byte("\x1b[3;2~")},
		{"f1", KeyEvent{Code: KeyF1}, []byte("\x1bOP")},
		{"f4", KeyEvent{Code: KeyF4}, []byte("\x1bOS")},
		{"ctrl+f1", KeyEvent{Code: KeyF1, Mods: ModCtrl}, []byte("\x1b[1;5P")},
		{"f5", KeyEvent{Code: KeyF5}, []byte("\x1b[15~")},
		{"f12", KeyEvent{Code: KeyF12}, []byte("\x1b[24~")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Encode(tt.ev)
			if !ok {
				t.Fatalf("Encode(%+v) reported no output", tt.ev)
			}
			if !bytes.Equal(got, tt.want) {
				t.Errorf("Encode(%+v) = %q, expected %q", tt.ev, got, tt.want)
			}
		})
	}
}

// TestEncodeNoOutput tests events that must not produce bytes
func TestEncodeNoOutput(t *testing.T) {
	tests := []struct {
		name string
		ev   KeyEvent
	}{
		{"zero rune", KeyEvent{Code: KeyRune}},
		{"empty text", KeyEvent{Code: KeyText}},
		{"unknown code", KeyEvent{Code: KeyCode(-1)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got, ok := Encode(tt.ev); ok {
				t.Errorf("Encode(%+v) = %q, expected no output", tt.ev, got)
			}
		})
	}
}

// TestSanitizePaste tests paste normalization
func TestSanitizePaste(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"crlf to cr", "a\r\nb", "a\rb"},
		{"lf to cr", "a\nb\nc", "a\rb\rc"},
		{"strips escape", "a\x1b[31mb", "a[31mb"},
		{"keeps tab", "a\tb", "a\tb"},
		{"strips del", "a\x7fb", "ab"},
		{"plain", "hello", "hello"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizePaste(tt.in); got != tt.want {
				t.Errorf("SanitizePaste(%q) = %q, expected %q", tt.in, got, tt.want)
			}
		})
	}
}

// TestBracketPaste tests bracketed paste framing
func TestBracketPaste(t *testing.T) {
	got := BracketPaste("ls\n")
	want := "\x1b[200~ls\r\x1b[201~"
	if string(got) != want {
		t.Errorf("BracketPaste = %q, expected %q", got, want)
	}
}

// TestBindingMatching tests chord matching and precedence
func TestBindingMatching(t *testing.T) {
	custom := []Binding{
		{Key: KeyRune, Rune: 'c', Mods: ModCtrl | ModShift, Action: ActionIgnore},
		{Key: KeyF1, Action: ActionScrollTop},
	}
	defaults := DefaultBindings()

	tests := []struct {
		name   string
		ev     KeyEvent
		want   Action
		wantOK bool
	}{
		{
			"custom shadows default",
			KeyEvent{Code: KeyRune, Rune: 'c', Mods: ModCtrl | ModShift},
			ActionIgnore, true,
		},
		{
			"default paste chord",
			KeyEvent{Code: KeyRune, Rune: 'v', Mods: ModCtrl | ModShift},
			ActionPaste, true,
		},
		{
			"custom named key",
			KeyEvent{Code: KeyF1},
			ActionScrollTop, true,
		},
		{
			"modifiers must match exactly",
			KeyEvent{Code: KeyRune, Rune: 'c', Mods: ModCtrl},
			ActionIgnore, false,
		},
		{
			"default scroll chord",
			KeyEvent{Code: KeyPageUp, Mods: ModShift},
			ActionScrollUp, true,
		},
		{
			"unbound key",
			KeyEvent{Code: KeyRune, Rune: 'q'},
			ActionIgnore, false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, ok := matchBinding(custom, defaults, tt.ev)
			if ok != tt.wantOK {
				t.Fatalf("matchBinding = %v, expected %v", ok, tt.wantOK)
			}
			if ok && b.Action != tt.want {
				t.Errorf("Action = %v, expected %v", b.Action, tt.want)
			}
		})
	}
}
