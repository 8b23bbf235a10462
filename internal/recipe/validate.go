package recipe

import (
	"fmt"
	"math"
	"regexp"

	"github.com/evaries/cantilever/internal/geometry"
	"github.com/evaries/cantilever/internal/material"
)

var (
	jobNamePattern  = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_-]*$`)
	variablePattern = regexp.MustCompile(`^[A-Z][A-Z0-9]*$`)
)

// Solid element codes per element library
var elementCodes = map[string][]string{
	"STANDARD": {"C3D8R", "C3D8", "C3D8I", "C3D4", "C3D10", "C3D10M", "C3D20", "C3D20R"},
	"EXPLICIT": {"C3D8R", "C3D8", "C3D8I", "C3D4", "C3D10M"},
}

var (
	kinematicSplits   = []string{"AVERAGE_STRAIN", "ORTHOGONAL", "CENTROID"}
	hourglassControls = []string{"DEFAULT", "ENHANCED", "RELAX_STIFFNESS", "STIFFNESS", "VISCOUS", "COMBINED"}
	precisions        = []string{"SINGLE", "DOUBLE"}
)

type checker struct {
	errs []error
}

func (c *checker) fail(field, format string, args ...any) {
	c.errs = append(c.errs, &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)})
}

func (c *checker) name(field, v string) {
	if v == "" {
		c.fail(field, "must not be empty")
		return
	}
	for _, r := range v {
		if r < 0x20 || r > 0x7e {
			c.fail(field, "must be printable ASCII, got %q", v)
			return
		}
	}
}

func (c *checker) positive(field string, v float64) {
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		c.fail(field, "must be positive, got %g", v)
	}
}

func (c *checker) oneOf(field, v string, allowed []string) {
	for _, a := range allowed {
		if v == a {
			return
		}
	}
	c.fail(field, "must be one of %v, got %q", allowed, v)
}

func (c *checker) variables(field string, vars []string) {
	if len(vars) == 0 {
		c.fail(field, "must list at least one variable")
		return
	}
	seen := make(map[string]bool, len(vars))
	for i, v := range vars {
		if !variablePattern.MatchString(v) {
			c.fail(fmt.Sprintf("%s[%d]", field, i), "invalid output variable %q", v)
		}
		if seen[v] {
			c.fail(fmt.Sprintf("%s[%d]", field, i), "duplicate output variable %q", v)
		}
		seen[v] = true
	}
}

// Validate checks the recipe for everything the FEA application would
// otherwise only discover mid-script. It returns an *AggregateError listing
// every failure, or nil.
func (r *Recipe) Validate() error {
	c := &checker{}

	c.name("model.source", r.Model.Source)
	c.name("model.name", r.Model.Name)

	// Profile and extrusion
	c.name("sketch.name", r.Sketch.Name)
	c.positive("sketch.sheet_size", r.Sketch.SheetSize)
	width := math.Abs(r.Sketch.Corner2.X - r.Sketch.Corner1.X)
	height := math.Abs(r.Sketch.Corner2.Y - r.Sketch.Corner1.Y)
	if width == 0 || height == 0 || math.IsNaN(width) || math.IsNaN(height) {
		c.fail("sketch", "rectangle corners are degenerate: width=%g, height=%g", width, height)
	}
	half := r.Sketch.SheetSize / 2
	for i, p := range []geometry.Point2{r.Sketch.Corner1, r.Sketch.Corner2} {
		if r.Sketch.SheetSize > 0 && (math.Abs(p.X) > half || math.Abs(p.Y) > half) {
			c.fail(fmt.Sprintf("sketch.corner%d", i+1), "(%g, %g) lies outside the %g sketch sheet", p.X, p.Y, r.Sketch.SheetSize)
		}
	}
	c.name("part.name", r.Part.Name)
	c.positive("part.depth", r.Part.Depth)

	// Material and section
	c.name("material.name", r.Material.Name)
	c.positive("material.density", r.Material.Density)
	if len(r.Material.Elastic) != 1 {
		c.fail("material.elastic", "must contain exactly one (modulus, Poisson ratio) row, got %d", len(r.Material.Elastic))
	} else if err := material.CheckElastic(r.Material.Elastic[0].YoungsModulus, r.Material.Elastic[0].PoissonRatio); err != nil {
		c.fail("material.elastic[0]", "%v", err)
	}
	c.name("section.name", r.Section.Name)
	if r.Section.Material != r.Material.Name {
		c.fail("section.material", "references %q but the model defines %q", r.Section.Material, r.Material.Name)
	}
	c.positive("section.thickness", r.Section.Thickness)
	c.name("instance.name", r.Instance.Name)

	// Step and outputs
	c.name("step.name", r.Step.Name)
	if r.Step.Name == InitialStep {
		c.fail("step.name", "must differ from the %q step", InitialStep)
	}
	if r.Step.Previous != InitialStep {
		c.fail("step.previous", "must be %q, got %q", InitialStep, r.Step.Previous)
	}
	c.name("outputs.field.default", r.Outputs.Field.Default)
	c.name("outputs.field.name", r.Outputs.Field.Name)
	c.variables("outputs.field.variables", r.Outputs.Field.Variables)
	c.name("outputs.history.delete", r.Outputs.History.Delete)
	c.name("outputs.history.name", r.Outputs.History.Name)
	c.variables("outputs.history.variables", r.Outputs.History.Variables)

	// Load, boundary condition and probes
	c.name("load.name", r.Load.Name)
	if math.IsNaN(r.Load.Magnitude) || math.IsInf(r.Load.Magnitude, 0) || r.Load.Magnitude == 0 {
		c.fail("load.magnitude", "must be finite and non-zero, got %g", r.Load.Magnitude)
	}
	c.name("fixture.name", r.Fixture.Name)
	if r.Fixture.Step != InitialStep && r.Fixture.Step != r.Step.Name {
		c.fail("fixture.step", "must be %q or %q, got %q", InitialStep, r.Step.Name, r.Fixture.Step)
	}
	if r.Load.Name == r.Fixture.Name {
		c.fail("fixture.name", "must differ from the load name %q", r.Load.Name)
	}

	// Mesh
	c.oneOf("mesh.library", r.Mesh.Library, []string{"STANDARD", "EXPLICIT"})
	if codes, ok := elementCodes[r.Mesh.Library]; ok {
		c.oneOf("mesh.element_code", r.Mesh.ElementCode, codes)
	}
	c.oneOf("mesh.kinematic_split", r.Mesh.KinematicSplit, kinematicSplits)
	c.oneOf("mesh.hourglass_control", r.Mesh.HourglassControl, hourglassControls)
	c.positive("mesh.seed_size", r.Mesh.SeedSize)
	if f := r.Mesh.DeviationFactor; !(f > 0 && f < 1) {
		c.fail("mesh.deviation_factor", "must be in (0, 1), got %g", f)
	}

	if body, err := r.Body(); err == nil {
		r.checkProbes(c, body)
	}

	// Job and results
	if !jobNamePattern.MatchString(r.Job.Name) {
		c.fail("job.name", "must start with a letter and contain only letters, digits, '_' or '-', got %q", r.Job.Name)
	}
	for _, ch := range r.Job.Description {
		if ch < 0x20 || ch > 0x7e {
			c.fail("job.description", "must be printable ASCII")
			break
		}
	}
	c.oneOf("job.precision", r.Job.Precision, precisions)
	if r.Job.NumCPUs < 1 {
		c.fail("job.num_cpus", "must be at least 1, got %d", r.Job.NumCPUs)
	} else if r.Job.NumDomains < 1 || r.Job.NumDomains%r.Job.NumCPUs != 0 {
		c.fail("job.num_domains", "must be a positive multiple of num_cpus (%d), got %d", r.Job.NumCPUs, r.Job.NumDomains)
	}
	if r.Job.MemoryPercent <= 0 || r.Job.MemoryPercent > 100 {
		c.fail("job.memory_percent", "must be in (0, 100], got %d", r.Job.MemoryPercent)
	}
	if r.Results.Database != "" && r.Results.Database != r.Job.Name+".odb" {
		c.fail("results.database", "%q does not match the database job %q writes (%s.odb)", r.Results.Database, r.Job.Name, r.Job.Name)
	}
	c.name("results.viewport", r.Results.Viewport)

	if len(c.errs) == 0 {
		return nil
	}
	return &AggregateError{Errors: c.errs}
}

// checkProbes resolves the load, fixture and mesh probes against the body
func (r *Recipe) checkProbes(c *checker, body geometry.Box) {
	loadFace, loadErr := body.FaceAt(r.Load.Probe)
	if loadErr != nil {
		c.fail("load.probe", "%v", loadErr)
	}
	fixFace, fixErr := body.FaceAt(r.Fixture.Probe)
	if fixErr != nil {
		c.fail("fixture.probe", "%v", fixErr)
	}
	if loadErr == nil && fixErr == nil && loadFace == fixFace {
		c.fail("fixture.probe", "resolves to the %s face, which already carries the load", fixFace)
	}
	if !body.Contains(r.Mesh.Probe) {
		c.fail("mesh.probe", "%v lies outside the part", r.Mesh.Probe)
	}
	w, h, l := body.Dimensions()
	if longest := math.Max(w, math.Max(h, l)); r.Mesh.SeedSize > longest {
		c.fail("mesh.seed_size", "%g exceeds the longest part dimension %g", r.Mesh.SeedSize, longest)
	}
}

// Faces reports the faces the load and fixture probes resolve to
func (r *Recipe) Faces() (load, fixture geometry.Face, err error) {
	body, err := r.Body()
	if err != nil {
		return 0, 0, err
	}
	if load, err = body.FaceAt(r.Load.Probe); err != nil {
		return 0, 0, fmt.Errorf("load probe: %w", err)
	}
	if fixture, err = body.FaceAt(r.Fixture.Probe); err != nil {
		return 0, 0, fmt.Errorf("fixture probe: %w", err)
	}
	return load, fixture, nil
}
