package input

// Action is what a matched binding does instead of forwarding the key
// to the child process.
type Action int

const (
	// ActionIgnore swallows the key entirely.
	ActionIgnore Action = iota
	// ActionCopy copies the current selection to the clipboard.
	ActionCopy
	// ActionPaste pastes clipboard contents into the terminal.
	ActionPaste
	// ActionClearSelection drops the selection without copying.
	ActionClearSelection
	// ActionScrollUp moves the view one page towards history.
	ActionScrollUp
	// ActionScrollDown moves the view one page towards live output.
	ActionScrollDown
	// ActionScrollTop jumps to the oldest retained line.
	ActionScrollTop
	// ActionScrollBottom returns to the live view.
	ActionScrollBottom
	// ActionWrite sends the binding's literal bytes to the child.
	ActionWrite
)

// Binding maps one key chord to an action. Key names a non-printable
// key; for printable chords Key is KeyRune and Rune carries the
// character.
type Binding struct {
	Key  KeyCode
	Rune rune
	Mods Mod

	Action Action
	// Bytes is the payload for ActionWrite.
	Bytes []byte
}

// Matches reports whether the event triggers this binding. Modifier
// comparison is exact so ctrl+shift+c and ctrl+c bind independently.
func (b Binding) Matches(ev KeyEvent) bool {
	if ev.Mods != b.Mods {
		return false
	}
	if b.Key == KeyRune {
		return ev.Code == KeyRune && ev.Rune == b.Rune
	}
	return ev.Code == b.Key
}

// DefaultBindings is the stock chord set: the copy/paste and
// scrollback chords GUI terminals commonly ship with. Hosts prepend
// their own bindings; the first match wins.
func DefaultBindings() []Binding {
	return []Binding{
		{Key: KeyRune, Rune: 'c', Mods: ModCtrl | ModShift, Action: ActionCopy},
		{Key: KeyRune, Rune: 'C', Mods: ModCtrl | ModShift, Action: ActionCopy},
		{Key: KeyRune, Rune: 'v', Mods: ModCtrl | ModShift, Action: ActionPaste},
		{Key: KeyRune, Rune: 'V', Mods: ModCtrl | ModShift, Action: ActionPaste},
		{Key: KeyPageUp, Mods: ModShift, Action: ActionScrollUp},
		{Key: KeyPageDown, Mods: ModShift, Action: ActionScrollDown},
		{Key: KeyHome, Mods: ModShift, Action: ActionScrollTop},
		{Key: KeyEnd, Mods: ModShift, Action: ActionScrollBottom},
	}
}

// matchBinding returns the first binding triggered by the event,
// scanning custom bindings before defaults.
func matchBinding(custom, defaults []Binding, ev KeyEvent) (Binding, bool) {
	for _, b := range custom {
		if b.Matches(ev) {
			return b, true
		}
	}
	for _, b := range defaults {
		if b.Matches(ev) {
			return b, true
		}
	}
	return Binding{}, false
}
