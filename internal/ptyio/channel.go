// Package ptyio owns the pseudo-terminal side of a session: spawning
// the child process on a PTY, raw reads and writes, resize propagation
// and bounded teardown.
package ptyio

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"sync"
	"time"

	xpty "github.com/charmbracelet/x/xpty"
)

// DefaultTerm is the TERM value advertised to spawned processes when
// the caller does not override it.
const DefaultTerm = "xterm-256color"

// SpawnConfig describes the process to attach to a new PTY.
type SpawnConfig struct {
	// Command is the program to run. Empty means the detected shell.
	Command string
	Args    []string
	Dir     string
	// Env entries are appended to the parent environment.
	Env  []string
	Term string

	Cols, Rows int
}

// Channel is one PTY with its attached child process. Read blocks
// until output arrives; it returns an error once the PTY closes.
type Channel struct {
	pty xpty.Pty
	cmd *exec.Cmd

	waitOnce sync.Once
	waitErr  error

	closeOnce sync.Once
	closeErr  error
}

// Spawn creates a PTY of the requested size and starts the configured
// process on it as the controlling terminal.
func Spawn(cfg SpawnConfig) (*Channel, error) {
	cols, rows := cfg.Cols, cfg.Rows
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}

	command := cfg.Command
	if command == "" {
		command = DetectShell()
	}
	term := cfg.Term
	if term == "" {
		term = DefaultTerm
	}

	// #nosec G204 - the command is intentionally caller-controlled
	cmd := exec.Command(command, cfg.Args...)
	cmd.Dir = cfg.Dir
	cmd.Env = append(os.Environ(),
		"TERM="+term,
		"COLORTERM=truecolor",
	)
	cmd.Env = append(cmd.Env, cfg.Env...)

	pty, err := xpty.NewPty(cols, rows)
	if err != nil {
		return nil, fmt.Errorf("create pty: %w", err)
	}

	// The child needs the PTY as its controlling terminal; shells like
	// fish refuse to run job control without it.
	configureCommand(cmd)

	if err := pty.Start(cmd); err != nil {
		_ = pty.Close()
		return nil, fmt.Errorf("start %s: %w", command, err)
	}

	// Re-apply the size after start. Some PTY backends only accept a
	// resize once the process is attached.
	_ = pty.Resize(cols, rows)

	return &Channel{pty: pty, cmd: cmd}, nil
}

// Read blocks for the next chunk of child output.
func (c *Channel) Read(p []byte) (int, error) {
	return c.pty.Read(p)
}

// Write sends input bytes to the child.
func (c *Channel) Write(p []byte) (int, error) {
	return c.pty.Write(p)
}

// Resize propagates new dimensions to the PTY, which delivers SIGWINCH
// to the child's process group.
func (c *Channel) Resize(cols, rows int) error {
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	return c.pty.Resize(cols, rows)
}

// Wait blocks until the child process exits and returns its exit
// error. Safe to call from multiple goroutines; all callers see the
// same result.
func (c *Channel) Wait(ctx context.Context) error {
	c.waitOnce.Do(func() {
		c.waitErr = xpty.WaitProcess(ctx, c.cmd)
	})
	return c.waitErr
}

// closeTimeout bounds how long Close waits for the child to die after
// being killed.
const closeTimeout = 500 * time.Millisecond

// Close tears the channel down: closes the PTY, which unblocks any
// pending Read, then kills the child and waits a bounded time for it
// to be reaped. Idempotent.
func (c *Channel) Close() error {
	c.closeOnce.Do(func() {
		var errs []error
		if err := c.pty.Close(); err != nil {
			errs = append(errs, err)
		}
		if c.cmd != nil && c.cmd.Process != nil {
			_ = c.cmd.Process.Kill()
			done := make(chan struct{})
			go func() {
				ctx, cancel := context.WithTimeout(context.Background(), closeTimeout)
				defer cancel()
				_ = c.Wait(ctx)
				close(done)
			}()
			select {
			case <-done:
			case <-time.After(closeTimeout):
			}
		}
		c.closeErr = errors.Join(errs...)
	})
	return c.closeErr
}

// DetectShell picks the user's shell, falling back through common
// locations when $SHELL is unset.
func DetectShell() string {
	if shell := os.Getenv("SHELL"); shell != "" {
		return shell
	}

	if runtime.GOOS == "windows" {
		shells := []string{
			"powershell.exe",
			"pwsh.exe",
			"cmd.exe",
		}
		for _, shell := range shells {
			if _, err := exec.LookPath(shell); err == nil {
				return shell
			}
		}
		return "cmd.exe"
	}

	shells := []string{"/bin/bash", "/bin/zsh", "/bin/fish", "/bin/sh"}
	for _, shell := range shells {
		if _, err := os.Stat(shell); err == nil {
			return shell
		}
	}
	return "/bin/sh"
}
