package termbridge

import (
	"sync"

	"github.com/Gaurav-Gosain/termbridge/internal/config"
	"github.com/Gaurav-Gosain/termbridge/internal/emu"
	"github.com/Gaurav-Gosain/termbridge/internal/input"
	"github.com/Gaurav-Gosain/termbridge/internal/render"
	"github.com/Gaurav-Gosain/termbridge/internal/session"
)

// Terminal is the host-facing handle for one running terminal. Event
// methods (HandleKey, HandlePointer, HandleWheel, Resize) are meant to
// be called from the host's UI thread; Frame, Snapshot and the text
// accessors are safe from any goroutine.
type Terminal struct {
	ID TerminalID

	reg  *Registry
	sess *session.Session

	// trMu guards the translator and projector, which keep per-frame
	// and per-gesture state.
	trMu sync.Mutex
	tr   *input.Translator
	proj *render.Projector
}

func newTerminal(id TerminalID, r *Registry, sess *session.Session, cfg *config.Config) *Terminal {
	t := &Terminal{
		ID:   id,
		reg:  r,
		sess: sess,
		proj: render.NewProjector(),
	}
	t.tr = input.NewTranslator(t.translatorOptions(cfg))
	return t
}

func (t *Terminal) translatorOptions(cfg *config.Config) input.Options {
	return input.Options{
		ClickInterval:  cfg.ClickInterval(),
		CopyOnSelect:   cfg.CopyOnSelect,
		BracketedPaste: cfg.BracketedPaste,
		Bindings:       cfg.InputBindings(),
		Clipboard:      t.reg.clipboard,
		OpenURL:        t.reg.openURL,
		OnLinkHover: func(url string, active bool) {
			if t.reg.onLinkHover != nil {
				t.reg.onLinkHover(t.ID, url, active)
			}
		},
		Logger: t.reg.logger,
	}
}

// applyConfig adopts a hot-reloaded configuration.
func (t *Terminal) applyConfig(cfg *config.Config) {
	t.sess.Adapter().SetMaxScrollback(cfg.ScrollbackLines)
	t.trMu.Lock()
	t.tr = input.NewTranslator(t.translatorOptions(cfg))
	t.proj.Invalidate()
	t.trMu.Unlock()
}

// HandleKey translates and delivers one key press.
func (t *Terminal) HandleKey(ev input.KeyEvent) error {
	t.trMu.Lock()
	defer t.trMu.Unlock()
	return t.tr.HandleKey(t.sess, ev)
}

// HandleText delivers composed text, e.g. from an IME.
func (t *Terminal) HandleText(text string) error {
	return t.HandleKey(input.KeyEvent{Code: input.KeyText, Text: text})
}

// HandlePaste delivers pasted text.
func (t *Terminal) HandlePaste(text string) error {
	t.trMu.Lock()
	defer t.trMu.Unlock()
	return t.tr.HandlePaste(t.sess, text)
}

// HandlePointer processes a pointer event in cell coordinates.
func (t *Terminal) HandlePointer(ev input.PointerEvent) {
	t.trMu.Lock()
	defer t.trMu.Unlock()
	t.tr.HandlePointer(t.sess, ev)
}

// HandleWheel scrolls the view through history.
func (t *Terminal) HandleWheel(ev input.WheelEvent) {
	t.trMu.Lock()
	defer t.trMu.Unlock()
	t.tr.HandleWheel(t.sess, ev)
}

// Resize changes the terminal's cell geometry.
func (t *Terminal) Resize(cols, rows int) error {
	return t.sess.Resize(cols, rows)
}

// Size returns the current cell geometry.
func (t *Terminal) Size() (cols, rows int) {
	return t.sess.Size()
}

// Seq returns the content version; it changes exactly when Frame
// output may differ for reasons other than overlays.
func (t *Terminal) Seq() uint64 {
	return t.sess.Seq()
}

// Frame projects the current viewport, selection and hover state into
// draw-ready styled runs. Projecting an unchanged terminal returns the
// cached output.
func (t *Terminal) Frame(focused bool) *render.Output {
	snap := t.sess.Snapshot()
	sel := t.sess.Selection()
	t.trMu.Lock()
	defer t.trMu.Unlock()
	return t.proj.Project(render.Frame{
		Snap:     snap,
		Sel:      sel,
		HoverURL: t.tr.HoverURL(),
		Focused:  focused,
	})
}

// Snapshot returns the raw grid snapshot at the current scroll
// position.
func (t *Terminal) Snapshot() *emu.Snapshot {
	return t.sess.Snapshot()
}

// Text returns the live screen as plain text.
func (t *Terminal) Text() string {
	return t.sess.Text()
}

// SelectionText returns the selected text, empty without a selection.
func (t *Terminal) SelectionText() string {
	return t.sess.SelectionText()
}

// ClearSelection drops the selection.
func (t *Terminal) ClearSelection() {
	t.sess.ClearSelection()
}

// ScrollOffset reports how many rows back from live the view sits.
func (t *Terminal) ScrollOffset() int {
	return t.sess.ScrollOffset()
}

// ScrollToBottom returns the view to live output.
func (t *Terminal) ScrollToBottom() {
	t.sess.ScrollToBottom()
}

// Status returns the lifecycle state and, for crashes, the cause.
func (t *Terminal) Status() (Status, error) {
	return t.sess.Status()
}

// Write queues raw bytes for the child process, bypassing key
// translation. Useful for hosts that already hold escape sequences.
func (t *Terminal) Write(data []byte) error {
	return t.sess.Enqueue(data)
}

func (t *Terminal) close() error {
	return t.sess.Close()
}
