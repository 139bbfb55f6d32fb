// Package session binds one PTY channel to one emulator adapter and
// runs the I/O pump between them: a reader goroutine feeding child
// output into the grid and a writer goroutine draining queued input
// into the PTY. All host-facing methods are safe for concurrent use.
package session

import (
	"context"
	"errors"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/Gaurav-Gosain/termbridge/internal/emu"
	"github.com/Gaurav-Gosain/termbridge/internal/pool"
	"github.com/Gaurav-Gosain/termbridge/internal/ptyio"
)

// Status is the lifecycle state of a session.
type Status int

const (
	// StatusRunning means the child process is alive and the pump is
	// moving bytes.
	StatusRunning Status = iota
	// StatusClosed means the session ended normally: the child exited
	// or the host closed it.
	StatusClosed
	// StatusCrashed means the pump stopped on an unexpected error.
	StatusCrashed
)

func (s Status) String() string {
	switch s {
	case StatusRunning:
		return "running"
	case StatusClosed:
		return "closed"
	case StatusCrashed:
		return "crashed"
	default:
		return "unknown"
	}
}

// Config describes a new session.
type Config struct {
	ID string

	Command string
	Args    []string
	Dir     string
	Env     []string
	Term    string

	Cols, Rows int
	Scrollback int

	Logger *log.Logger

	// OnUpdate fires after the grid content changed; hosts use it to
	// schedule a repaint. Called from the pump goroutine, so it must
	// not block and must not call back into the session synchronously.
	OnUpdate func()
	// OnExit fires once when the session leaves StatusRunning. It runs
	// on a pump goroutine; calling Close from inside it deadlocks.
	OnExit func(status Status, err error)
}

// inputQueueLen bounds how many pending writes can queue before
// Enqueue blocks. Large pastes arrive as a single entry, so the bound
// is about burst smoothing, not capacity.
const inputQueueLen = 1024

// Session is one live terminal: a child process on a PTY, an emulator
// grid absorbing its output, and view state (scroll position and
// selection) layered on top.
type Session struct {
	ID string

	pty     *ptyio.Channel
	adapter *emu.Adapter
	logger  *log.Logger

	mu           sync.Mutex
	status       Status
	exitErr      error
	scrollOffset int
	sel          emu.Selection
	cols, rows   int

	pending chan []byte
	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup

	onUpdate func()
	onExit   func(Status, error)
	exitOnce sync.Once

	closeOnce sync.Once
	closeErr  error
}

// New spawns the child process and starts the pump. The returned
// session is running; callers must Close it to release the PTY.
func New(cfg Config) (*Session, error) {
	cols, rows := cfg.Cols, cfg.Rows
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}

	pty, err := ptyio.Spawn(ptyio.SpawnConfig{
		Command: cfg.Command,
		Args:    cfg.Args,
		Dir:     cfg.Dir,
		Env:     cfg.Env,
		Term:    cfg.Term,
		Cols:    cols,
		Rows:    rows,
	})
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	s := &Session{
		ID:       cfg.ID,
		pty:      pty,
		adapter:  emu.NewAdapter(cols, rows, cfg.Scrollback),
		logger:   logger.With("session", cfg.ID),
		cols:     cols,
		rows:     rows,
		pending:  make(chan []byte, inputQueueLen),
		ctx:      ctx,
		cancel:   cancel,
		onUpdate: cfg.OnUpdate,
		onExit:   cfg.OnExit,
	}

	s.wg.Add(2)
	go s.readLoop()
	go s.writeLoop()

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		err := pty.Wait(ctx)
		if ctx.Err() != nil {
			// Host-initiated close; the wait error only reflects the
			// cancelled context, not a child failure.
			err = nil
		}
		s.finish(StatusClosed, err)
	}()

	return s, nil
}

// readLoop pumps child output into the grid until the PTY closes.
// One transient read error is retried before giving up; PTYs can
// return EIO spuriously around child signal delivery.
func (s *Session) readLoop() {
	defer s.wg.Done()

	retried := false
	for {
		buf := pool.GetByteSlice()
		n, err := s.pty.Read(*buf)
		if n > 0 {
			s.absorb((*buf)[:n])
			retried = false
		}
		pool.PutByteSlice(buf)

		if err == nil {
			continue
		}
		select {
		case <-s.ctx.Done():
			return
		default:
		}
		if errors.Is(err, io.EOF) {
			s.finish(StatusClosed, nil)
			return
		}
		if !retried {
			retried = true
			time.Sleep(10 * time.Millisecond)
			continue
		}
		s.logger.Error("pty read failed", "err", err)
		s.finish(StatusCrashed, err)
		return
	}
}

// absorb feeds one output chunk and reconciles view state with how the
// grid moved.
func (s *Session) absorb(p []byte) {
	res, err := s.adapter.Feed(p)
	if err != nil {
		s.logger.Error("emulator write failed", "err", err)
		s.finish(StatusCrashed, err)
		return
	}

	s.mu.Lock()
	if s.scrollOffset > 0 {
		// Scrolled back: hold the viewed content still as new rows
		// push history up, then account for evicted rows.
		s.scrollOffset += res.Scrolled
		s.scrollOffset -= res.Evicted
		if s.scrollOffset < 0 {
			s.scrollOffset = 0
		}
	}
	if res.Evicted > 0 {
		s.sel.Shift(res.Evicted)
	}
	max := s.adapter.ScrollbackLen()
	if s.scrollOffset > max {
		s.scrollOffset = max
	}
	cb := s.onUpdate
	s.mu.Unlock()

	if cb != nil {
		cb()
	}
}

// writeLoop drains queued input into the PTY.
func (s *Session) writeLoop() {
	defer s.wg.Done()
	for {
		select {
		case <-s.ctx.Done():
			return
		case data := <-s.pending:
			if _, err := s.pty.Write(data); err != nil {
				select {
				case <-s.ctx.Done():
					return
				default:
				}
				s.logger.Error("pty write failed", "err", err)
				s.finish(StatusCrashed, err)
				return
			}
		}
	}
}

// finish records the terminal state transition exactly once.
func (s *Session) finish(status Status, err error) {
	s.exitOnce.Do(func() {
		s.mu.Lock()
		s.status = status
		s.exitErr = err
		cb := s.onExit
		s.mu.Unlock()

		s.cancel()
		if cb != nil {
			cb(status, err)
		}
	})
}

// Enqueue queues input bytes for delivery to the child, preserving
// order. It blocks if the queue is full and fails once the session has
// stopped. The slice is retained until written; callers must not reuse
// it.
func (s *Session) Enqueue(data []byte) error {
	if len(data) == 0 {
		return nil
	}
	select {
	case <-s.ctx.Done():
		return ErrSessionClosed
	case s.pending <- data:
		return nil
	}
}

// ErrSessionClosed is returned by operations on a stopped session.
var ErrSessionClosed = errors.New("session closed")

// Status returns the lifecycle state and, for crashed sessions, the
// causing error.
func (s *Session) Status() (Status, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status, s.exitErr
}

// Seq returns the grid content version.
func (s *Session) Seq() uint64 { return s.adapter.Seq() }

// Snapshot materializes the current viewport, honoring the session's
// scroll position.
func (s *Session) Snapshot() *emu.Snapshot {
	s.mu.Lock()
	offset := s.scrollOffset
	s.mu.Unlock()
	return s.adapter.Snapshot(offset)
}

// Adapter exposes the underlying grid for selection expansion and text
// extraction.
func (s *Session) Adapter() *emu.Adapter { return s.adapter }

// Resize changes the grid and PTY dimensions. The emulator resizes
// first so a snapshot taken between the two steps is already
// consistent with what the host will render.
func (s *Session) Resize(cols, rows int) error {
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	s.mu.Lock()
	if cols == s.cols && rows == s.rows {
		s.mu.Unlock()
		return nil
	}
	s.cols, s.rows = cols, rows
	s.mu.Unlock()

	s.adapter.Resize(cols, rows)

	s.mu.Lock()
	s.sel.Clamp(s.adapter.TotalLines(), cols)
	if max := s.adapter.ScrollbackLen(); s.scrollOffset > max {
		s.scrollOffset = max
	}
	s.mu.Unlock()

	return s.pty.Resize(cols, rows)
}

// Size returns the current grid dimensions.
func (s *Session) Size() (cols, rows int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cols, s.rows
}

// ScrollLines moves the viewport by delta rows; positive scrolls back
// into history. The offset clamps to retained history, and offset zero
// re-enables stick-to-bottom.
func (s *Session) ScrollLines(delta int) {
	max := s.adapter.ScrollbackLen()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scrollOffset += delta
	if s.scrollOffset < 0 {
		s.scrollOffset = 0
	}
	if s.scrollOffset > max {
		s.scrollOffset = max
	}
}

// ScrollToBottom returns to the live view.
func (s *Session) ScrollToBottom() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scrollOffset = 0
}

// ScrollToTop jumps to the oldest retained row.
func (s *Session) ScrollToTop() {
	max := s.adapter.ScrollbackLen()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scrollOffset = max
}

// ScrollOffset returns how many rows back from live the view sits.
func (s *Session) ScrollOffset() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.scrollOffset
}

// AtBottom reports whether the view tracks live output.
func (s *Session) AtBottom() bool {
	return s.ScrollOffset() == 0
}

// AbsPoint converts viewport cell coordinates to absolute grid
// coordinates at the current scroll position.
func (s *Session) AbsPoint(x, y int) emu.Point {
	s.mu.Lock()
	offset := s.scrollOffset
	s.mu.Unlock()
	sbLen := s.adapter.ScrollbackLen()
	return emu.Point{Line: sbLen - offset + y, Col: x}
}

// Selection returns the current selection range.
func (s *Session) Selection() emu.Selection {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sel
}

// SetSelection replaces the selection, clamping it to the grid.
func (s *Session) SetSelection(sel emu.Selection) {
	total := s.adapter.TotalLines()
	s.mu.Lock()
	defer s.mu.Unlock()
	sel.Clamp(total, s.cols)
	s.sel = sel
}

// ClearSelection drops the selection.
func (s *Session) ClearSelection() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sel = emu.Selection{}
}

// SelectionText extracts the selected text, empty when nothing is
// selected.
func (s *Session) SelectionText() string {
	return s.adapter.SelectionText(s.Selection())
}

// Text returns the live screen as plain text.
func (s *Session) Text() string {
	snap := s.adapter.Snapshot(0)
	sb := pool.GetStringBuilder()
	defer pool.PutStringBuilder(sb)
	for y := 0; y < snap.Rows; y++ {
		if y > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(snap.Line(y))
	}
	return sb.String()
}

// Close stops the pump and releases the PTY. It is idempotent and
// safe to call while the reader is blocked: closing the PTY unblocks
// the pending read. Close returns after all pump goroutines exit.
func (s *Session) Close() error {
	s.closeOnce.Do(func() {
		s.cancel()
		s.closeErr = s.pty.Close()
		s.wg.Wait()
		s.finish(StatusClosed, nil)
	})
	return s.closeErr
}
