package input

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/Gaurav-Gosain/termbridge/internal/emu"
	"github.com/Gaurav-Gosain/termbridge/internal/session"
)

// DefaultClickInterval is the longest gap between clicks still counted
// as part of a multi-click.
const DefaultClickInterval = 500 * time.Millisecond

// Options configures a Translator.
type Options struct {
	// ClickInterval overrides DefaultClickInterval when positive.
	ClickInterval time.Duration
	// CopyOnSelect writes the selection to the clipboard on release.
	CopyOnSelect bool
	// BracketedPaste wraps pastes in bracketed-paste markers.
	BracketedPaste bool
	// Bindings are checked before DefaultBindings; first match wins.
	Bindings []Binding

	Clipboard Clipboard
	// OpenURL is invoked when the user clicks a detected hyperlink.
	OpenURL func(url string)
	// OnLinkHover reports hover transitions: active=true entering a
	// link span, active=false leaving it.
	OnLinkHover func(url string, active bool)

	Logger *log.Logger
}

// Translator turns host GUI events into session mutations and PTY
// writes. One translator serves one session; it keeps the multi-click
// and drag state between events. Not safe for concurrent use; hosts
// deliver events from their UI thread.
type Translator struct {
	opts     Options
	defaults []Binding
	logger   *log.Logger

	lastClick  time.Time
	lastX      int
	lastY      int
	clickCount int

	dragging  bool
	dragMode  emu.SelectionMode
	baseStart emu.Point
	baseEnd   emu.Point
	moved     bool

	hoverURL string
}

// NewTranslator builds a translator with the given options.
func NewTranslator(opts Options) *Translator {
	if opts.ClickInterval <= 0 {
		opts.ClickInterval = DefaultClickInterval
	}
	if opts.Clipboard == nil {
		opts.Clipboard = SystemClipboard{}
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	return &Translator{
		opts:     opts,
		defaults: DefaultBindings(),
		logger:   logger,
	}
}

// HandleKey resolves a key press: bindings first, then the stock
// encoding into PTY bytes. Forwarded keys snap the view back to live
// output and drop the selection, matching how terminals treat typing.
func (t *Translator) HandleKey(s *session.Session, ev KeyEvent) error {
	if b, ok := matchBinding(t.opts.Bindings, t.defaults, ev); ok {
		return t.runAction(s, b)
	}

	seq, ok := Encode(ev)
	if !ok {
		return nil
	}
	s.ScrollToBottom()
	s.ClearSelection()
	return s.Enqueue(seq)
}

// runAction executes a matched binding.
func (t *Translator) runAction(s *session.Session, b Binding) error {
	switch b.Action {
	case ActionIgnore:
		return nil
	case ActionCopy:
		text := s.SelectionText()
		if text == "" {
			return nil
		}
		if err := t.opts.Clipboard.WriteText(text); err != nil {
			t.logger.Warn("clipboard write failed", "err", err)
			return err
		}
		return nil
	case ActionPaste:
		text, err := t.opts.Clipboard.ReadText()
		if err != nil {
			t.logger.Warn("clipboard read failed", "err", err)
			return err
		}
		return t.HandlePaste(s, text)
	case ActionClearSelection:
		s.ClearSelection()
		return nil
	case ActionScrollUp:
		_, rows := s.Size()
		s.ScrollLines(rows)
		return nil
	case ActionScrollDown:
		_, rows := s.Size()
		s.ScrollLines(-rows)
		return nil
	case ActionScrollTop:
		s.ScrollToTop()
		return nil
	case ActionScrollBottom:
		s.ScrollToBottom()
		return nil
	case ActionWrite:
		if len(b.Bytes) == 0 {
			return nil
		}
		s.ScrollToBottom()
		return s.Enqueue(b.Bytes)
	}
	return nil
}

// HandlePaste sanitizes and delivers pasted text.
func (t *Translator) HandlePaste(s *session.Session, text string) error {
	if text == "" {
		return nil
	}
	var payload []byte
	if t.opts.BracketedPaste {
		payload = BracketPaste(text)
	} else {
		payload = []byte(SanitizePaste(text))
	}
	s.ScrollToBottom()
	return s.Enqueue(payload)
}

// HandleWheel scrolls the view through history. Positive lines move
// towards older output.
func (t *Translator) HandleWheel(s *session.Session, ev WheelEvent) {
	if ev.Lines == 0 {
		return
	}
	s.ScrollLines(ev.Lines)
}

// HandleResize propagates a new cell geometry.
func (t *Translator) HandleResize(s *session.Session, ev ResizeEvent) error {
	return s.Resize(ev.Cols, ev.Rows)
}

// HandlePointer processes press, drag and release. Left-button presses
// drive selection with click-count escalation: one click anchors a
// character selection, two snap to words, three to lines. Alt drags a
// rectangular block; shift extends the existing selection instead of
// starting over. Bare moves track link hover; a click that never
// dragged opens the link under it.
func (t *Translator) HandlePointer(s *session.Session, ev PointerEvent) {
	switch ev.Kind {
	case PointerPress:
		if ev.Button == ButtonLeft {
			t.press(s, ev)
		}
	case PointerMove:
		if t.dragging {
			t.drag(s, ev)
		} else {
			t.hover(s, ev)
		}
	case PointerRelease:
		if ev.Button == ButtonLeft {
			t.release(s, ev)
		}
	}
}

func (t *Translator) press(s *session.Session, ev PointerEvent) {
	now := time.Now()
	if now.Sub(t.lastClick) <= t.opts.ClickInterval && ev.X == t.lastX && ev.Y == t.lastY {
		t.clickCount++
		if t.clickCount > 3 {
			t.clickCount = 1
		}
	} else {
		t.clickCount = 1
	}
	t.lastClick = now
	t.lastX, t.lastY = ev.X, ev.Y

	p := s.AbsPoint(ev.X, ev.Y)
	t.dragging = true
	t.moved = false

	if ev.Mods&ModShift != 0 {
		// Extend the existing selection rather than restart it.
		sel := s.Selection()
		if sel.Active() {
			sel.Head = p
			s.SetSelection(sel)
			t.dragMode = sel.Mode
			t.baseStart, t.baseEnd = sel.Anchor, sel.Anchor
			return
		}
	}

	switch {
	case t.clickCount == 2:
		t.dragMode = emu.SelectWord
		t.baseStart, t.baseEnd = s.Adapter().WordAt(p)
	case t.clickCount == 3:
		t.dragMode = emu.SelectLine
		t.baseStart, t.baseEnd = s.Adapter().LineAt(p)
	case ev.Mods&ModAlt != 0:
		t.dragMode = emu.SelectBlock
		t.baseStart, t.baseEnd = p, p
	default:
		t.dragMode = emu.SelectSimple
		t.baseStart, t.baseEnd = p, p
	}

	s.SetSelection(emu.Selection{Mode: t.dragMode, Anchor: t.baseStart, Head: t.baseEnd})
}

func (t *Translator) drag(s *session.Session, ev PointerEvent) {
	p := s.AbsPoint(ev.X, ev.Y)
	if p != t.baseStart || p != t.baseEnd {
		t.moved = true
	}

	sel := emu.Selection{Mode: t.dragMode}
	switch t.dragMode {
	case emu.SelectWord:
		ws, we := s.Adapter().WordAt(p)
		if p.Before(t.baseStart) {
			sel.Anchor, sel.Head = t.baseEnd, ws
		} else {
			sel.Anchor, sel.Head = t.baseStart, we
		}
	case emu.SelectLine:
		ls, le := s.Adapter().LineAt(p)
		if p.Line < t.baseStart.Line {
			sel.Anchor, sel.Head = t.baseEnd, ls
		} else {
			sel.Anchor, sel.Head = t.baseStart, le
		}
	default:
		sel.Anchor, sel.Head = t.baseStart, p
	}
	s.SetSelection(sel)
}

func (t *Translator) release(s *session.Session, ev PointerEvent) {
	if !t.dragging {
		return
	}
	t.dragging = false

	if !t.moved && t.clickCount == 1 {
		snap := s.Snapshot()
		if link, ok := snap.LinkAt(ev.X, ev.Y); ok {
			// A stationary single click on a link opens it instead of
			// leaving a one-cell selection behind.
			s.ClearSelection()
			if t.opts.OpenURL != nil {
				t.opts.OpenURL(link.URL)
			}
			return
		}
		// A click without a drag leaves no selection.
		if t.dragMode == emu.SelectSimple {
			s.ClearSelection()
			return
		}
	}

	if t.opts.CopyOnSelect {
		if text := s.SelectionText(); text != "" {
			if err := t.opts.Clipboard.WriteText(text); err != nil {
				t.logger.Warn("clipboard write failed", "err", err)
			}
		}
	}
}

// hover tracks the link span under a bare pointer move and reports
// transitions through OnLinkHover.
func (t *Translator) hover(s *session.Session, ev PointerEvent) {
	if t.opts.OnLinkHover == nil {
		return
	}
	snap := s.Snapshot()
	link, ok := snap.LinkAt(ev.X, ev.Y)
	switch {
	case ok && link.URL != t.hoverURL:
		if t.hoverURL != "" {
			t.opts.OnLinkHover(t.hoverURL, false)
		}
		t.hoverURL = link.URL
		t.opts.OnLinkHover(link.URL, true)
	case !ok && t.hoverURL != "":
		t.opts.OnLinkHover(t.hoverURL, false)
		t.hoverURL = ""
	}
}

// HoverURL returns the link currently under the pointer, if any.
func (t *Translator) HoverURL() string { return t.hoverURL }
