package abaqus

import (
	"bufio"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Status is the outcome of a solver job as read from its work directory
type Status string

const (
	StatusCompleted Status = "completed"
	StatusAborted   Status = "aborted"
	StatusRunning   Status = "running"
	StatusUnknown   Status = "unknown"
)

// Phrases the solver writes at the end of the status (.sta) file
const (
	completedMarker = "HAS COMPLETED SUCCESSFULLY"
	abortedMarker   = "HAS NOT BEEN COMPLETED"
)

// ReadStatus inspects <job>.lck and <job>.sta in dir. A lock file means the
// solver still holds the job; otherwise the last completion phrase in the
// status file decides.
func ReadStatus(dir, job string) (Status, error) {
	if _, err := os.Stat(filepath.Join(dir, job+".lck")); err == nil {
		return StatusRunning, nil
	}

	f, err := os.Open(filepath.Join(dir, job+".sta"))
	if errors.Is(err, fs.ErrNotExist) {
		return StatusUnknown, nil
	}
	if err != nil {
		return StatusUnknown, err
	}
	defer f.Close()

	status := StatusUnknown
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.ToUpper(sc.Text())
		switch {
		case strings.Contains(line, completedMarker):
			status = StatusCompleted
		case strings.Contains(line, abortedMarker):
			status = StatusAborted
		}
	}
	return status, sc.Err()
}
