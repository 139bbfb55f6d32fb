package termbridge_test

import (
	"runtime"
	"strings"
	"testing"
	"time"

	termbridge "github.com/Gaurav-Gosain/termbridge"
)

func skipOnWindows(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("unix shell required")
	}
}

// create spawns a terminal running the given shell script.
func create(t *testing.T, reg *termbridge.Registry, script string) *termbridge.Terminal {
	t.Helper()
	term, err := reg.Create(termbridge.CreateOptions{
		Command: "/bin/sh",
		Args:    []string{"-c", script},
		Cols:    60,
		Rows:    10,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	return term
}

// waitText polls until the terminal shows the expected text.
func waitText(t *testing.T, term *termbridge.Terminal, expect string) {
	t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		if strings.Contains(term.Text(), expect) {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("Expected %q never appeared; screen:\n%s", expect, term.Text())
}

// TestRegistryLifecycle tests create, lookup and destroy
func TestRegistryLifecycle(t *testing.T) {
	skipOnWindows(t)
	reg := termbridge.NewRegistry(nil)
	defer func() { _ = reg.CloseAll() }()

	term := create(t, reg, "sleep 30")
	if reg.Count() != 1 {
		t.Fatalf("Expected 1 terminal, got %d", reg.Count())
	}

	got, ok := reg.Get(term.ID)
	if !ok || got != term {
		t.Fatal("Get did not return the created terminal")
	}
	if ids := reg.List(); len(ids) != 1 || ids[0] != term.ID {
		t.Fatalf("List mismatch: %v", ids)
	}

	if err := reg.Destroy(term.ID); err != nil {
		t.Fatalf("Destroy failed: %v", err)
	}
	if reg.Count() != 0 {
		t.Errorf("Expected 0 terminals after destroy, got %d", reg.Count())
	}
	if status, _ := term.Status(); status == termbridge.StatusRunning {
		t.Error("Destroyed terminal still reports running")
	}
	if err := reg.Destroy(term.ID); err != termbridge.ErrTerminalNotFound {
		t.Errorf("Expected ErrTerminalNotFound, got %v", err)
	}
}

// TestTerminalFrame tests output capture and frame projection
func TestTerminalFrame(t *testing.T) {
	skipOnWindows(t)
	reg := termbridge.NewRegistry(nil)
	defer func() { _ = reg.CloseAll() }()

	term := create(t, reg, "printf 'hello frame'; sleep 30")
	waitText(t, term, "hello frame")

	out := term.Frame(true)
	if out == nil || len(out.Lines) != 10 {
		t.Fatalf("Expected 10 projected lines, got %+v", out)
	}
	var text string
	for _, run := range out.Lines[0] {
		text += run.Text
	}
	if !strings.Contains(text, "hello frame") {
		t.Errorf("Projected row 0 missing output: %q", text)
	}

	// Let any trailing output settle, then confirm projection caching.
	time.Sleep(200 * time.Millisecond)
	a := term.Frame(true)
	b := term.Frame(true)
	if a != b {
		t.Error("Unchanged terminal should return the cached frame")
	}
	if c := term.Frame(false); c == a {
		t.Error("Focus change should rebuild the frame")
	}
}

// TestOnUpdateNotification tests the repaint hook
func TestOnUpdateNotification(t *testing.T) {
	skipOnWindows(t)

	updates := make(chan termbridge.TerminalID, 64)
	reg := termbridge.NewRegistry(nil, termbridge.WithOnUpdate(func(id termbridge.TerminalID) {
		select {
		case updates <- id:
		default:
		}
	}))
	defer func() { _ = reg.CloseAll() }()

	term := create(t, reg, "printf 'ping'; sleep 30")

	select {
	case id := <-updates:
		if id != term.ID {
			t.Errorf("Update for wrong terminal: %s", id)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("OnUpdate never fired")
	}
}

// TestOnExitNotification tests the exit hook
func TestOnExitNotification(t *testing.T) {
	skipOnWindows(t)

	exits := make(chan termbridge.TerminalID, 1)
	reg := termbridge.NewRegistry(nil, termbridge.WithOnExit(
		func(id termbridge.TerminalID, status termbridge.Status, err error) {
			exits <- id
		}))
	defer func() { _ = reg.CloseAll() }()

	term := create(t, reg, "exit 0")

	select {
	case id := <-exits:
		if id != term.ID {
			t.Errorf("Exit for wrong terminal: %s", id)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("OnExit never fired")
	}
}

// TestTerminalInput tests end-to-end key delivery
func TestTerminalInput(t *testing.T) {
	skipOnWindows(t)
	reg := termbridge.NewRegistry(nil)
	defer func() { _ = reg.CloseAll() }()

	term, err := reg.Create(termbridge.CreateOptions{
		Command: "/bin/cat",
		Cols:    40,
		Rows:    5,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	for _, r := range "hi" {
		if err := term.HandleKey(termbridge.KeyEvent{Code: termbridge.KeyRune, Rune: r}); err != nil {
			t.Fatalf("HandleKey failed: %v", err)
		}
	}
	waitText(t, term, "hi")
}

// memClipboard is a host-provided clipboard built on the exported
// interface.
type memClipboard struct{ text string }

func (c *memClipboard) ReadText() (string, error) { return c.text, nil }
func (c *memClipboard) WriteText(s string) error  { c.text = s; return nil }

// TestHostConfiguredBinding tests a custom binding driven entirely
// through the exported types
func TestHostConfiguredBinding(t *testing.T) {
	skipOnWindows(t)

	cfg := termbridge.DefaultConfig()
	cfg.Bindings = []termbridge.Binding{
		{Key: "ctrl+shift+x", Action: "write", Bytes: "marker"},
	}
	reg := termbridge.NewRegistry(cfg, termbridge.WithClipboard(&memClipboard{}))
	defer func() { _ = reg.CloseAll() }()

	term, err := reg.Create(termbridge.CreateOptions{
		Command: "/bin/cat",
		Cols:    40,
		Rows:    5,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	err = term.HandleKey(termbridge.KeyEvent{
		Code: termbridge.KeyRune,
		Rune: 'x',
		Mods: termbridge.ModCtrl | termbridge.ModShift,
	})
	if err != nil {
		t.Fatalf("HandleKey failed: %v", err)
	}
	waitText(t, term, "marker")
}

// TestHostPointerSelection tests pointer and wheel events built from
// the exported types, with a host clipboard receiving the selection
func TestHostPointerSelection(t *testing.T) {
	skipOnWindows(t)

	cfg := termbridge.DefaultConfig()
	cfg.CopyOnSelect = true
	clip := &memClipboard{}
	reg := termbridge.NewRegistry(cfg, termbridge.WithClipboard(clip))
	defer func() { _ = reg.CloseAll() }()

	term, err := reg.Create(termbridge.CreateOptions{
		Command: "/bin/sh",
		Args:    []string{"-c", "printf 'hello world'; sleep 30"},
		Cols:    60,
		Rows:    10,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	waitText(t, term, "hello world")

	term.HandlePointer(termbridge.PointerEvent{
		Kind: termbridge.PointerPress, X: 0, Y: 0, Button: termbridge.ButtonLeft,
	})
	term.HandlePointer(termbridge.PointerEvent{
		Kind: termbridge.PointerMove, X: 4, Y: 0, Button: termbridge.ButtonLeft,
	})
	term.HandlePointer(termbridge.PointerEvent{
		Kind: termbridge.PointerRelease, X: 4, Y: 0, Button: termbridge.ButtonLeft,
	})

	if got := term.SelectionText(); got != "hello" {
		t.Errorf("Selection: expected %q, got %q", "hello", got)
	}
	if clip.text != "hello" {
		t.Errorf("Clipboard: expected %q, got %q", "hello", clip.text)
	}

	// No history yet, so wheel motion clamps to the live view.
	term.HandleWheel(termbridge.WheelEvent{Lines: 3})
	if got := term.ScrollOffset(); got != 0 {
		t.Errorf("Expected offset clamped to 0, got %d", got)
	}
}

// TestResizePropagation tests geometry changes through the handle
func TestResizePropagation(t *testing.T) {
	skipOnWindows(t)
	reg := termbridge.NewRegistry(nil)
	defer func() { _ = reg.CloseAll() }()

	term := create(t, reg, "sleep 30")
	if err := term.Resize(100, 30); err != nil {
		t.Fatalf("Resize failed: %v", err)
	}
	cols, rows := term.Size()
	if cols != 100 || rows != 30 {
		t.Errorf("Expected 100x30, got %dx%d", cols, rows)
	}
	if out := term.Frame(true); out.Cols != 100 || out.Rows != 30 {
		t.Errorf("Frame dims: expected 100x30, got %dx%d", out.Cols, out.Rows)
	}
}

// TestResizeAll tests bulk geometry changes
func TestResizeAll(t *testing.T) {
	skipOnWindows(t)
	reg := termbridge.NewRegistry(nil)
	defer func() { _ = reg.CloseAll() }()

	a := create(t, reg, "sleep 30")
	b := create(t, reg, "sleep 30")

	if err := reg.ResizeAll(90, 25); err != nil {
		t.Fatalf("ResizeAll failed: %v", err)
	}
	for _, term := range []*termbridge.Terminal{a, b} {
		cols, rows := term.Size()
		if cols != 90 || rows != 25 {
			t.Errorf("Terminal %s: expected 90x25, got %dx%d", term.ID, cols, rows)
		}
	}
}

// TestCloseAll tests bulk teardown
func TestCloseAll(t *testing.T) {
	skipOnWindows(t)
	reg := termbridge.NewRegistry(nil)

	for i := 0; i < 3; i++ {
		create(t, reg, "sleep 30")
	}
	if reg.Count() != 3 {
		t.Fatalf("Expected 3 terminals, got %d", reg.Count())
	}
	if err := reg.CloseAll(); err != nil {
		t.Fatalf("CloseAll failed: %v", err)
	}
	if reg.Count() != 0 {
		t.Errorf("Expected 0 terminals after CloseAll, got %d", reg.Count())
	}
}
