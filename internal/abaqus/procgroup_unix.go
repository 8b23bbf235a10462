//go:build unix

package abaqus

import (
	"os/exec"
	"syscall"
)

// killProcessGroup starts the launcher in its own process group and makes
// cancellation signal the whole group, so the solver it spawns dies with it.
func killProcessGroup(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	cmd.Cancel = func() error {
		return syscall.Kill(-cmd.Process.Pid, syscall.SIGKILL)
	}
}
