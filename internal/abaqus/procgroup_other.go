//go:build !unix

package abaqus

import "os/exec"

// killProcessGroup keeps the default cancellation, which kills only the
// launcher process.
func killProcessGroup(cmd *exec.Cmd) {}
