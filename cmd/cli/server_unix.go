//go:build !windows

package main

import (
	"os/exec"
	"syscall"
)

// setSysProcAttr puts the gateway in its own session so it outlives the shell
func setSysProcAttr(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setsid: true}
}
