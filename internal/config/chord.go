package config

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/Gaurav-Gosain/termbridge/internal/input"
)

// Chord is a parsed key chord.
type Chord struct {
	Key  input.KeyCode
	Rune rune
	Mods input.Mod
}

// keyNames maps chord key names to key codes.
var keyNames = map[string]input.KeyCode{
	"enter":     input.KeyEnter,
	"return":    input.KeyEnter,
	"backspace": input.KeyBackspace,
	"tab":       input.KeyTab,
	"esc":       input.KeyEscape,
	"escape":    input.KeyEscape,
	"up":        input.KeyUp,
	"down":      input.KeyDown,
	"left":      input.KeyLeft,
	"right":     input.KeyRight,
	"home":      input.KeyHome,
	"end":       input.KeyEnd,
	"pageup":    input.KeyPageUp,
	"pagedown":  input.KeyPageDown,
	"delete":    input.KeyDelete,
	"insert":    input.KeyInsert,
	"f1":        input.KeyF1,
	"f2":        input.KeyF2,
	"f3":        input.KeyF3,
	"f4":        input.KeyF4,
	"f5":        input.KeyF5,
	"f6":        input.KeyF6,
	"f7":        input.KeyF7,
	"f8":        input.KeyF8,
	"f9":        input.KeyF9,
	"f10":       input.KeyF10,
	"f11":       input.KeyF11,
	"f12":       input.KeyF12,
}

// ParseChord parses a chord string like "ctrl+shift+c" or
// "shift+pageup". The final segment names the key; everything before
// it must be a modifier.
func ParseChord(s string) (Chord, error) {
	if s == "" {
		return Chord{}, fmt.Errorf("empty key chord")
	}
	parts := strings.Split(strings.ToLower(s), "+")
	var chord Chord
	for i, part := range parts {
		last := i == len(parts)-1
		switch part {
		case "ctrl", "control":
			chord.Mods |= input.ModCtrl
			continue
		case "alt", "opt", "option":
			chord.Mods |= input.ModAlt
			continue
		case "shift":
			chord.Mods |= input.ModShift
			continue
		}
		if !last {
			return Chord{}, fmt.Errorf("unknown modifier %q in chord %q", part, s)
		}
		if code, ok := keyNames[part]; ok {
			chord.Key = code
			return chord, nil
		}
		if part == "space" {
			chord.Key = input.KeyRune
			chord.Rune = ' '
			return chord, nil
		}
		if utf8.RuneCountInString(part) == 1 {
			chord.Key = input.KeyRune
			chord.Rune, _ = utf8.DecodeRuneInString(part)
			return chord, nil
		}
		return Chord{}, fmt.Errorf("unknown key %q in chord %q", part, s)
	}
	return Chord{}, fmt.Errorf("chord %q names no key", s)
}

// actionNames maps config action strings to input actions.
var actionNames = map[string]input.Action{
	"ignore":          input.ActionIgnore,
	"copy":            input.ActionCopy,
	"paste":           input.ActionPaste,
	"clear-selection": input.ActionClearSelection,
	"scroll-up":       input.ActionScrollUp,
	"scroll-down":     input.ActionScrollDown,
	"scroll-top":      input.ActionScrollTop,
	"scroll-bottom":   input.ActionScrollBottom,
	"write":           input.ActionWrite,
}

func parseAction(s string) (input.Action, error) {
	if a, ok := actionNames[strings.ToLower(s)]; ok {
		return a, nil
	}
	return 0, fmt.Errorf("unknown action %q", s)
}

// InputBindings converts the configured bindings into the translator's
// form, preserving order. Validation has already run at load time, so
// malformed entries are skipped rather than failing.
func (c *Config) InputBindings() []input.Binding {
	out := make([]input.Binding, 0, len(c.Bindings))
	for _, b := range c.Bindings {
		chord, err := ParseChord(b.Key)
		if err != nil {
			continue
		}
		action, err := parseAction(b.Action)
		if err != nil {
			continue
		}
		out = append(out, input.Binding{
			Key:    chord.Key,
			Rune:   chord.Rune,
			Mods:   chord.Mods,
			Action: action,
			Bytes:  []byte(b.Bytes),
		})
	}
	return out
}
