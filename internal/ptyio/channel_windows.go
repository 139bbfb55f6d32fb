//go:build windows

package ptyio

import "os/exec"

// configureCommand is a no-op on Windows; ConPTY attaches the console
// itself when the process starts.
func configureCommand(cmd *exec.Cmd) {}
