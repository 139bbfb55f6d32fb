package termbridge

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/Gaurav-Gosain/termbridge/internal/config"
	"github.com/Gaurav-Gosain/termbridge/internal/input"
	"github.com/Gaurav-Gosain/termbridge/internal/session"
)

// ErrTerminalNotFound is returned for operations on unknown IDs.
var ErrTerminalNotFound = errors.New("terminal not found")

// Option customizes a registry.
type Option func(*Registry)

// WithLogger sets the logger used by the registry and its terminals.
func WithLogger(logger *log.Logger) Option {
	return func(r *Registry) { r.logger = logger }
}

// WithClipboard replaces the system clipboard, mainly for hosts that
// carry their own clipboard abstraction.
func WithClipboard(c input.Clipboard) Option {
	return func(r *Registry) { r.clipboard = c }
}

// WithOpenURL sets the handler invoked when a hyperlink is clicked.
// Without it, link clicks are ignored.
func WithOpenURL(fn func(url string)) Option {
	return func(r *Registry) { r.openURL = fn }
}

// WithOnUpdate registers the repaint hook, fired whenever a terminal's
// content changes. It runs on a pump goroutine and must not block.
func WithOnUpdate(fn func(id TerminalID)) Option {
	return func(r *Registry) { r.onUpdate = fn }
}

// WithOnExit registers the exit hook, fired once per terminal when its
// child process ends or the session stops.
func WithOnExit(fn func(id TerminalID, status Status, err error)) Option {
	return func(r *Registry) { r.onExit = fn }
}

// WithOnLinkHover registers the hover hook for hyperlink enter/leave
// transitions, so hosts can change the pointer cursor.
func WithOnLinkHover(fn func(id TerminalID, url string, active bool)) Option {
	return func(r *Registry) { r.onLinkHover = fn }
}

// Registry owns a set of terminals and the configuration they spawn
// with. Safe for concurrent use.
type Registry struct {
	logger    *log.Logger
	clipboard input.Clipboard
	openURL   func(string)

	onUpdate    func(TerminalID)
	onExit      func(TerminalID, Status, error)
	onLinkHover func(TerminalID, string, bool)

	mu    sync.RWMutex
	cfg   *config.Config
	terms map[TerminalID]*Terminal
}

// NewRegistry builds a registry. A nil cfg means defaults.
func NewRegistry(cfg *config.Config, opts ...Option) *Registry {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	r := &Registry{
		logger: log.Default(),
		cfg:    cfg,
		terms:  make(map[TerminalID]*Terminal),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.clipboard == nil {
		r.clipboard = input.SystemClipboard{}
	}
	return r
}

// CreateOptions selects what a new terminal runs. Zero values fall
// back to the registry configuration.
type CreateOptions struct {
	// Command overrides the configured shell.
	Command string
	Args    []string
	Dir     string
	// Env entries are appended to the inherited environment.
	Env []string

	Cols, Rows int
}

// Create spawns a new terminal and registers it.
func (r *Registry) Create(opts CreateOptions) (*Terminal, error) {
	r.mu.RLock()
	cfg := r.cfg
	r.mu.RUnlock()

	command := opts.Command
	args := opts.Args
	if command == "" {
		command = cfg.Shell
		if len(args) == 0 {
			args = cfg.Args
		}
	}
	cols, rows := opts.Cols, opts.Rows
	if cols < 1 {
		cols = 80
	}
	if rows < 1 {
		rows = 24
	}

	id := TerminalID(uuid.NewString())
	sess, err := session.New(session.Config{
		ID:         string(id),
		Command:    command,
		Args:       args,
		Dir:        opts.Dir,
		Env:        opts.Env,
		Term:       cfg.Term,
		Cols:       cols,
		Rows:       rows,
		Scrollback: cfg.ScrollbackLines,
		Logger:     r.logger,
		OnUpdate: func() {
			if r.onUpdate != nil {
				r.onUpdate(id)
			}
		},
		OnExit: func(status Status, err error) {
			if r.onExit != nil {
				r.onExit(id, status, err)
			}
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create terminal: %w", err)
	}

	term := newTerminal(id, r, sess, cfg)

	r.mu.Lock()
	r.terms[id] = term
	r.mu.Unlock()

	r.logger.Debug("terminal created", "id", id, "cols", cols, "rows", rows)
	return term, nil
}

// Get returns the terminal with the given ID.
func (r *Registry) Get(id TerminalID) (*Terminal, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.terms[id]
	return t, ok
}

// List returns the IDs of all registered terminals.
func (r *Registry) List() []TerminalID {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]TerminalID, 0, len(r.terms))
	for id := range r.terms {
		ids = append(ids, id)
	}
	return ids
}

// Count returns how many terminals are registered.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.terms)
}

// ResizeAll applies one geometry to every terminal, for hosts that
// keep all tabs the same size. Returns the first error.
func (r *Registry) ResizeAll(cols, rows int) error {
	r.mu.RLock()
	terms := make([]*Terminal, 0, len(r.terms))
	for _, t := range r.terms {
		terms = append(terms, t)
	}
	r.mu.RUnlock()

	var first error
	for _, t := range terms {
		if err := t.Resize(cols, rows); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// Destroy closes a terminal and removes it. It returns once the
// terminal's pump goroutines have stopped, so the host can drop its
// widget immediately after.
func (r *Registry) Destroy(id TerminalID) error {
	r.mu.Lock()
	term, ok := r.terms[id]
	delete(r.terms, id)
	r.mu.Unlock()
	if !ok {
		return ErrTerminalNotFound
	}
	err := term.close()
	r.logger.Debug("terminal destroyed", "id", id)
	return err
}

// CloseAll destroys every terminal, returning the first error.
func (r *Registry) CloseAll() error {
	r.mu.Lock()
	terms := make([]*Terminal, 0, len(r.terms))
	for _, t := range r.terms {
		terms = append(terms, t)
	}
	r.terms = make(map[TerminalID]*Terminal)
	r.mu.Unlock()

	var first error
	for _, t := range terms {
		if err := t.close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// Config returns the active configuration.
func (r *Registry) Config() *config.Config {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.cfg
}

// UpdateConfig swaps the configuration. New terminals spawn with the
// new settings; running terminals pick up scrollback retention and
// input behavior, while shell and TERM changes only affect future
// spawns.
func (r *Registry) UpdateConfig(cfg *config.Config) {
	if cfg == nil {
		return
	}
	r.mu.Lock()
	r.cfg = cfg
	terms := make([]*Terminal, 0, len(r.terms))
	for _, t := range r.terms {
		terms = append(terms, t)
	}
	r.mu.Unlock()

	for _, t := range terms {
		t.applyConfig(cfg)
	}
}

// WatchConfig hot-reloads the config file at path into the registry
// until ctx is cancelled. Typically run in its own goroutine.
func (r *Registry) WatchConfig(ctx context.Context, path string) error {
	return config.Watch(ctx, path, r.logger, r.UpdateConfig)
}
