package pipeline

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/evaries/cantilever/internal/metrics"
	"github.com/evaries/cantilever/internal/recipe"
	"github.com/evaries/cantilever/internal/session"
)

func TestRunReplaysInOrder(t *testing.T) {
	rec := session.NewRecorder()
	m := metrics.New()

	report, err := Run(context.Background(), recipe.Default(), rec, Options{Logger: zaptest.NewLogger(t), Metrics: m})
	require.NoError(t, err)

	assert.Equal(t, []string{
		"RenameModel",
		"CreateSketch", "ExtrudePart",
		"DefineMaterial", "DefineSection", "AssignSection",
		"CreateInstance",
		"CreateStep", "ConfigureFieldOutput", "DeleteHistoryOutput", "CreateHistoryOutput",
		"FindFace", "ApplyPressure", "FindFace", "ApplyEncastre",
		"FindCell", "SetElementType", "SeedPart", "GenerateMesh",
		"CreateJob",
		"SubmitJob", "WaitForCompletion", "OpenDatabase",
	}, rec.Ops())

	require.Len(t, report.Stages, len(StageNames()))
	for i, st := range report.Stages {
		assert.Equal(t, StageNames()[i], st.Name)
	}
	assert.Equal(t, len(StageNames()), testutil.CollectAndCount(m.StageDuration))
}

func TestRunPassesHandlesAndLiterals(t *testing.T) {
	rec := session.NewRecorder()
	_, err := Run(context.Background(), recipe.Default(), rec, Options{})
	require.NoError(t, err)

	byOp := map[string][]session.Call{}
	for _, c := range rec.Calls {
		byOp[c.Op] = append(byOp[c.Op], c)
	}
	assert.Equal(t, session.Handle("part:Beam"), byOp["AssignSection"][0].Target)
	assert.Equal(t, session.Handle("instance:Beam Instance"), byOp["FindFace"][0].Target)
	assert.Equal(t, "(0.2, 0.1, 2.5)", byOp["FindFace"][0].Args)
	assert.Equal(t, "(0.2, 0, 0)", byOp["FindFace"][1].Args)
	assert.Contains(t, byOp["ApplyPressure"][0].Args, `in "Apply Load", magnitude 10`)
	assert.Contains(t, byOp["ApplyEncastre"][0].Args, `in "Initial"`)
	assert.Equal(t, `"CantileverBeamJob.odb" in "Beam Results Viewport"`, byOp["OpenDatabase"][0].Args)
}

func TestRunSkipSubmit(t *testing.T) {
	rec := session.NewRecorder()
	report, err := Run(context.Background(), recipe.Default(), rec, Options{SkipSubmit: true})
	require.NoError(t, err)

	assert.Equal(t, "CreateJob", rec.Ops()[len(rec.Ops())-1])
	assert.Len(t, report.Stages, len(StageNames())-1)
}

func TestRunRejectsInvalidRecipe(t *testing.T) {
	r := recipe.Default()
	r.Part.Depth = 0
	rec := session.NewRecorder()

	_, err := Run(context.Background(), r, rec, Options{})
	require.Error(t, err)
	assert.NotEmpty(t, recipe.ValidationErrors(err))
	assert.Empty(t, rec.Calls, "nothing reaches the session")
}

func TestRunStopsAtFailingStage(t *testing.T) {
	rec := session.NewRecorder()
	boom := errors.New("mesh generation failed")
	rec.FailOn["GenerateMesh"] = boom

	report, err := Run(context.Background(), recipe.Default(), rec, Options{Logger: zaptest.NewLogger(t)})
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)

	var se *StageError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, StageMesh, se.Stage)
	assert.Len(t, report.Stages, 6)
	assert.NotContains(t, rec.Ops(), "CreateJob")
}

func TestRunFaceLookupFailure(t *testing.T) {
	rec := session.NewRecorder()
	rec.FailOn["FindFace"] = errors.New("no face found")

	_, err := Run(context.Background(), recipe.Default(), rec, Options{})
	assert.ErrorContains(t, err, "stage loads: locate load face: no face found")
}

func TestRunHonoursCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	rec := session.NewRecorder()

	_, err := Run(ctx, recipe.Default(), rec, Options{})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, rec.Calls)
}
