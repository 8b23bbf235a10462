package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evaries/cantilever/internal/recipe"
)

// execute runs the root command with args and returns its stdout
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	recipeFile, recipeSets = "", nil
	initForce, planNoSubmit, scriptNoSubmit, showDiagram = false, false, false, false
	showExportFile, statusJob = "", ""
	runCommand, runArgs, runMetricsFile, runQuiet = "", nil, "", false

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestValidateDefault(t *testing.T) {
	out, err := execute(t, "validate")
	require.NoError(t, err)
	assert.Contains(t, out, `Recipe "Cantilever Beam" is valid`)
	assert.Contains(t, out, "load probe    → top face")
	assert.Contains(t, out, "fixture probe → fixed end face")
	assert.Contains(t, out, "CantileverBeamJob.odb")
}

func TestValidateReportsProblems(t *testing.T) {
	out, err := execute(t, "validate", "--set", "part.depth=0", "--set", "load.magnitude=0")
	require.Error(t, err)
	assert.Contains(t, out, "2 problem(s)")
	assert.Contains(t, out, "part.depth")
	assert.Contains(t, out, "load.magnitude")
}

func TestInitWritesLoadableRecipe(t *testing.T) {
	path := filepath.Join(t.TempDir(), "beam.yaml")
	out, err := execute(t, "init", "-o", path, "--material", "al-6061-t6")
	require.NoError(t, err)
	assert.Contains(t, out, "Aluminum 6061-T6")

	r, err := recipe.LoadFromFile(path, nil)
	require.NoError(t, err)
	assert.Equal(t, "Aluminum 6061-T6", r.Section.Material)
	require.NoError(t, r.Validate())

	_, err = execute(t, "init", "-o", path)
	assert.ErrorContains(t, err, "already exists")
}

func TestPlanListsCalls(t *testing.T) {
	out, err := execute(t, "plan")
	require.NoError(t, err)
	assert.Contains(t, out, "23 session calls for job CantileverBeamJob")
	assert.Contains(t, out, `1. RenameModel("Model-1" -> "Cantilever Beam")`)
	assert.Contains(t, out, "WaitForCompletion[job:CantileverBeamJob]()")
}

func TestScriptToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "beam.py")
	_, err := execute(t, "script", "-o", path, "--no-submit")
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "mdb.Job(name='CantileverBeamJob'")
	assert.NotContains(t, string(data), ".submit(")
}

func TestScriptRejectsInvalidRecipe(t *testing.T) {
	path := filepath.Join(t.TempDir(), "beam.py")
	_, err := execute(t, "script", "-o", path, "--set", "fixture.probe.z=2.5", "--set", "fixture.probe.y=0.1")
	require.Error(t, err)
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr), "no journal is written for an invalid recipe")
}

func TestShowWithDiagram(t *testing.T) {
	out, err := execute(t, "show", "--diagram", "--set", "mesh.seed_size=0.05")
	require.NoError(t, err)
	assert.Contains(t, out, "CANTILEVER RECIPE - Cantilever Beam")
	assert.Contains(t, out, "4 × 4 × 100")
	assert.Contains(t, out, "CANTILEVER ELEVATION")
	assert.Contains(t, out, "PROFILE CROSS-SECTION")
}

func TestStatusOfEmptyWorkDir(t *testing.T) {
	out, err := execute(t, "status", "--workdir", t.TempDir())
	require.NoError(t, err)
	assert.Contains(t, out, "Job CantileverBeamJob")
	assert.Contains(t, out, "unknown")
	assert.Contains(t, out, "(not written)")
}
