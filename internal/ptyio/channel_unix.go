//go:build !windows

package ptyio

import (
	"os/exec"
	"syscall"
)

// configureCommand makes the PTY slave the child's controlling
// terminal. Ctty is the FD number in the child; Start wires stdin to
// the slave, so FD 0 is the one to claim.
func configureCommand(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{
		Setsid:  true,
		Setctty: true,
		Ctty:    0,
	}
}
