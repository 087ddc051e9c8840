//go:build windows

package player

import (
	"os/exec"
	"syscall"
)

// detachedAttr is a no-op on Windows, where console signals are not forwarded by group.
func detachedAttr() *syscall.SysProcAttr {
	return nil
}

func killGroup(cmd *exec.Cmd) error {
	if cmd == nil || cmd.Process == nil {
		return nil
	}
	return cmd.Process.Kill()
}
