package abaqus

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"go.uber.org/zap"
)

// DefaultCommand is the FEA application launcher looked up on PATH
const DefaultCommand = "abaqus"

// waitDelay bounds how long Run waits for output pipes after the launcher is
// killed, in case a solver child outlives the group signal.
const waitDelay = 10 * time.Second

// ErrJobLocked is returned when a lock file shows the job is already held
// by a solver.
var ErrJobLocked = errors.New("job is locked")

// Runner launches the FEA application on a journal and waits for it.
// The journal itself submits the job and blocks on its completion, so the
// process exit marks the end of the solve.
type Runner struct {
	Command string   // launcher executable, DefaultCommand if empty
	Args    []string // arguments before noGUI=<script>, "cae" if nil
	WorkDir string   // directory the solver writes job files to
	Env     []string // extra KEY=VALUE pairs

	Stdout io.Writer
	Stderr io.Writer
	Logger *zap.Logger
}

// Result describes a finished run
type Result struct {
	Status   Status
	ExitCode int
	Duration time.Duration
	Database string // path of the output database, empty if none was written
}

// Run executes the journal for the named job. A non-nil error means the
// application could not be started, was cancelled, or exited non-zero;
// Result is still filled in as far as it is known.
func (r *Runner) Run(ctx context.Context, script, job string) (*Result, error) {
	log := r.Logger
	if log == nil {
		log = zap.NewNop()
	}
	command := r.Command
	if command == "" {
		command = DefaultCommand
	}
	args := r.Args
	if args == nil {
		args = []string{"cae"}
	}

	absScript, err := filepath.Abs(script)
	if err != nil {
		return nil, err
	}
	argv := append(append([]string{}, args...), "noGUI="+absScript)

	// The outcome is read back from the work directory, so nothing from an
	// earlier run of the same job may survive into this one.
	if err := clearJobFiles(r.WorkDir, job, log); err != nil {
		return nil, err
	}

	cmd := exec.CommandContext(ctx, command, argv...)
	cmd.Dir = r.WorkDir
	cmd.Env = append(os.Environ(), r.Env...)
	cmd.Stdout = r.Stdout
	cmd.Stderr = r.Stderr
	killProcessGroup(cmd)
	cmd.WaitDelay = waitDelay

	log.Info("launching FEA application",
		zap.String("command", command), zap.Strings("args", argv), zap.String("workdir", r.WorkDir))

	start := time.Now()
	runErr := cmd.Run()
	res := &Result{Duration: time.Since(start), ExitCode: -1}
	if cmd.ProcessState != nil {
		res.ExitCode = cmd.ProcessState.ExitCode()
	}

	res.Status, err = ReadStatus(r.WorkDir, job)
	if err != nil {
		log.Warn("could not read job status", zap.String("job", job), zap.Error(err))
	}
	odb := filepath.Join(r.WorkDir, job+".odb")
	if _, err := os.Stat(odb); err == nil {
		res.Database = odb
	}

	if ctxErr := ctx.Err(); ctxErr != nil {
		return res, fmt.Errorf("%s interrupted: %w", command, ctxErr)
	}
	if runErr != nil {
		var exitErr *exec.ExitError
		if errors.As(runErr, &exitErr) {
			return res, fmt.Errorf("%s exited with code %d", command, res.ExitCode)
		}
		return res, fmt.Errorf("start %s: %w", command, runErr)
	}
	if res.Status == StatusUnknown && res.Database != "" {
		res.Status = StatusCompleted
	}

	log.Info("FEA application finished",
		zap.String("job", job), zap.String("status", string(res.Status)), zap.Duration("took", res.Duration))
	return res, nil
}

// clearJobFiles removes the status file and output database of a previous
// run of job. A lock file is left alone: it belongs to a live solver or to
// one that was killed, and only the user can tell which.
func clearJobFiles(dir, job string, log *zap.Logger) error {
	lck := filepath.Join(dir, job+".lck")
	if _, err := os.Stat(lck); err == nil {
		return fmt.Errorf("%w: remove %s if no solver is running", ErrJobLocked, lck)
	}
	for _, ext := range []string{".sta", ".odb"} {
		path := filepath.Join(dir, job+ext)
		err := os.Remove(path)
		switch {
		case err == nil:
			log.Info("removed file from previous run", zap.String("path", path))
		case !errors.Is(err, fs.ErrNotExist):
			return fmt.Errorf("clear previous run: %w", err)
		}
	}
	return nil
}
