//go:build windows

package main

import (
	"os/exec"
	"syscall"
)

// detach starts the server outside the CLI's process group so it
// survives the CLI exiting
func detach(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{
		CreationFlags: syscall.CREATE_NEW_PROCESS_GROUP,
	}
}
