// Package pipeline replays a cantilever recipe against a session in the
// fixed order the FEA application requires.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/evaries/cantilever/internal/metrics"
	"github.com/evaries/cantilever/internal/recipe"
	"github.com/evaries/cantilever/internal/session"
)

// Stage names, in execution order
const (
	StageModel    = "model"
	StagePart     = "part"
	StageMaterial = "material"
	StageAssembly = "assembly"
	StageStep     = "step"
	StageLoads    = "loads"
	StageMesh     = "mesh"
	StageJob      = "job"
	StageResults  = "results"
)

// Options configures a pipeline run
type Options struct {
	Logger  *zap.Logger
	Metrics *metrics.Metrics
	// SkipSubmit stops after the job is defined, leaving submit, wait and
	// result inspection out of the replay.
	SkipSubmit bool
}

// StageResult is one completed stage
type StageResult struct {
	Name     string
	Duration time.Duration
}

// Report lists the stages that ran
type Report struct {
	Stages []StageResult
}

// StageError wraps the failure of a single stage
type StageError struct {
	Stage string
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("stage %s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// handles carries entities created by earlier stages to later ones
type handles struct {
	model    session.Handle
	sketch   session.Handle
	part     session.Handle
	instance session.Handle
	job      session.Handle
}

type stage struct {
	name string
	run  func(s session.Session, r *recipe.Recipe, h *handles) error
}

var stages = []stage{
	{StageModel, func(s session.Session, r *recipe.Recipe, h *handles) (err error) {
		h.model, err = s.RenameModel(r.Model)
		return err
	}},
	{StagePart, func(s session.Session, r *recipe.Recipe, h *handles) (err error) {
		if h.sketch, err = s.CreateSketch(h.model, r.Sketch); err != nil {
			return err
		}
		h.part, err = s.ExtrudePart(h.model, h.sketch, r.Part)
		return err
	}},
	{StageMaterial, func(s session.Session, r *recipe.Recipe, h *handles) error {
		if _, err := s.DefineMaterial(h.model, r.Material); err != nil {
			return err
		}
		if _, err := s.DefineSection(h.model, r.Section); err != nil {
			return err
		}
		return s.AssignSection(h.part, r.Section.Name)
	}},
	{StageAssembly, func(s session.Session, r *recipe.Recipe, h *handles) (err error) {
		h.instance, err = s.CreateInstance(h.model, h.part, r.Instance)
		return err
	}},
	{StageStep, func(s session.Session, r *recipe.Recipe, h *handles) error {
		if _, err := s.CreateStep(h.model, r.Step); err != nil {
			return err
		}
		if err := s.ConfigureFieldOutput(h.model, r.Outputs.Field); err != nil {
			return err
		}
		if err := s.DeleteHistoryOutput(h.model, r.Outputs.History.Delete); err != nil {
			return err
		}
		return s.CreateHistoryOutput(h.model, r.Step.Name, r.Outputs.History)
	}},
	{StageLoads, func(s session.Session, r *recipe.Recipe, h *handles) error {
		top, err := s.FindFace(h.instance, r.Load.Probe)
		if err != nil {
			return fmt.Errorf("locate load face: %w", err)
		}
		if err := s.ApplyPressure(h.model, top, r.Step.Name, r.Load); err != nil {
			return err
		}
		end, err := s.FindFace(h.instance, r.Fixture.Probe)
		if err != nil {
			return fmt.Errorf("locate fixed face: %w", err)
		}
		return s.ApplyEncastre(h.model, end, r.Fixture)
	}},
	{StageMesh, func(s session.Session, r *recipe.Recipe, h *handles) error {
		cell, err := s.FindCell(h.part, r.Mesh.Probe)
		if err != nil {
			return fmt.Errorf("locate cell: %w", err)
		}
		if err := s.SetElementType(h.part, cell, r.Mesh); err != nil {
			return err
		}
		if err := s.SeedPart(h.part, r.Mesh); err != nil {
			return err
		}
		return s.GenerateMesh(h.part)
	}},
	{StageJob, func(s session.Session, r *recipe.Recipe, h *handles) (err error) {
		h.job, err = s.CreateJob(r.Model.Name, r.Job)
		return err
	}},
	{StageResults, func(s session.Session, r *recipe.Recipe, h *handles) error {
		if err := s.SubmitJob(h.job, r.Job); err != nil {
			return err
		}
		if err := s.WaitForCompletion(h.job); err != nil {
			return err
		}
		_, err := s.OpenDatabase(r.Database(), r.Results)
		return err
	}},
}

// Run validates the recipe and replays it stage by stage. It stops at the
// first failure and reports which stage failed. The context is checked
// between stages; a stage already handed to the session is not interrupted.
func Run(ctx context.Context, r *recipe.Recipe, s session.Session, opts Options) (*Report, error) {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	if err := r.Validate(); err != nil {
		return nil, fmt.Errorf("invalid recipe: %w", err)
	}

	report := &Report{}
	h := &handles{}
	for _, st := range stages {
		if st.name == StageResults && opts.SkipSubmit {
			log.Debug("skipping stage", zap.String("stage", st.name))
			continue
		}
		if err := ctx.Err(); err != nil {
			return report, &StageError{Stage: st.name, Err: err}
		}

		start := time.Now()
		if err := st.run(s, r, h); err != nil {
			log.Error("stage failed", zap.String("stage", st.name), zap.Error(err))
			return report, &StageError{Stage: st.name, Err: err}
		}
		d := time.Since(start)
		opts.Metrics.ObserveStage(st.name, d)
		report.Stages = append(report.Stages, StageResult{Name: st.name, Duration: d})
		log.Debug("stage done", zap.String("stage", st.name), zap.Duration("took", d))
	}
	log.Info("recipe replayed", zap.String("model", r.Model.Name), zap.Int("stages", len(report.Stages)))
	return report, nil
}

// StageNames lists every stage in execution order
func StageNames() []string {
	names := make([]string, len(stages))
	for i, st := range stages {
		names[i] = st.name
	}
	return names
}
