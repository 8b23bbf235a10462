package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestHelperProcess plays the FEA launcher for the run command tests.
// It is not a real test.
func TestHelperProcess(t *testing.T) {
	if os.Getenv("CANTILEVER_HELPER") != "1" {
		return
	}
	defer os.Exit(0)

	job := os.Getenv("HELPER_JOB")
	switch os.Getenv("HELPER_MODE") {
	case "complete":
		os.WriteFile(job+".sta", []byte(" THE ANALYSIS HAS COMPLETED SUCCESSFULLY\n"), 0o644)
		os.WriteFile(job+".odb", []byte("odb"), 0o644)
	case "abort":
		os.WriteFile(job+".sta", []byte(" THE ANALYSIS HAS NOT BEEN COMPLETED\n"), 0o644)
	}
}

// runWithHelper runs the run command with this test binary as the launcher
func runWithHelper(t *testing.T, mode string, extra ...string) (string, string, error) {
	t.Helper()
	t.Setenv("CANTILEVER_HELPER", "1")
	t.Setenv("HELPER_MODE", mode)
	t.Setenv("HELPER_JOB", "CantileverBeamJob")

	dir := t.TempDir()
	args := append([]string{
		"run", "-q",
		"--workdir", dir,
		"--abaqus", os.Args[0],
		"--abaqus-arg=-test.run=TestHelperProcess",
		"--abaqus-arg=--",
		"--abaqus-arg=cae",
	}, extra...)
	out, err := execute(t, args...)
	return out, dir, err
}

func TestRunCompleted(t *testing.T) {
	metricsFile := filepath.Join(t.TempDir(), "beam.prom")
	out, dir, err := runWithHelper(t, "complete", "--metrics-file", metricsFile)
	require.NoError(t, err)

	assert.Contains(t, out, "JOB CantileverBeamJob")
	assert.Contains(t, out, "Status:    completed")
	assert.Contains(t, out, filepath.Join(dir, "CantileverBeamJob.odb"))
	assert.FileExists(t, filepath.Join(dir, "CantileverBeamJob.py"))

	prom, err := os.ReadFile(metricsFile)
	require.NoError(t, err)
	assert.Contains(t, string(prom), `cantilever_job_runs_total{status="completed"} 1`)
	assert.Contains(t, string(prom), `cantilever_stage_duration_seconds_count{stage="mesh"} 1`)
}

func TestRunAbortedFails(t *testing.T) {
	metricsFile := filepath.Join(t.TempDir(), "beam.prom")
	out, _, err := runWithHelper(t, "abort", "--metrics-file", metricsFile)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "did not complete (status: aborted)")
	assert.Contains(t, out, "Database:  (not written)")

	prom, err := os.ReadFile(metricsFile)
	require.NoError(t, err)
	assert.Contains(t, string(prom), `cantilever_job_runs_total{status="aborted"} 1`)
}

func TestRunWritesNothingForInvalidRecipe(t *testing.T) {
	_, dir, err := runWithHelper(t, "complete", "--set", "part.depth=0")
	require.Error(t, err)
	assert.NoFileExists(t, filepath.Join(dir, "CantileverBeamJob.py"))
}
