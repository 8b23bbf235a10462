package session

import (
	"fmt"
	"strings"

	"github.com/evaries/cantilever/internal/geometry"
	"github.com/evaries/cantilever/internal/recipe"
)

// Call is one recorded session operation
type Call struct {
	Op     string
	Target Handle
	Args   string
}

func (c Call) String() string {
	if c.Target == "" {
		return fmt.Sprintf("%s(%s)", c.Op, c.Args)
	}
	return fmt.Sprintf("%s[%s](%s)", c.Op, c.Target, c.Args)
}

// Recorder is a Session that performs nothing and remembers every call.
// FailOn makes the named operation return an error, which lets callers
// exercise a failing external step.
type Recorder struct {
	Calls  []Call
	FailOn map[string]error
}

var _ Session = (*Recorder)(nil)

// NewRecorder creates an empty recorder
func NewRecorder() *Recorder {
	return &Recorder{FailOn: map[string]error{}}
}

// Ops returns the recorded operation names in order
func (r *Recorder) Ops() []string {
	ops := make([]string, len(r.Calls))
	for i, c := range r.Calls {
		ops[i] = c.Op
	}
	return ops
}

func (r *Recorder) record(op string, target Handle, format string, args ...any) error {
	r.Calls = append(r.Calls, Call{Op: op, Target: target, Args: fmt.Sprintf(format, args...)})
	if err, ok := r.FailOn[op]; ok {
		return err
	}
	return nil
}

func (r *Recorder) handle(kind, name string) Handle {
	return Handle(kind + ":" + name)
}

func (r *Recorder) RenameModel(m recipe.Model) (Handle, error) {
	return r.handle("model", m.Name), r.record("RenameModel", "", "%q -> %q", m.Source, m.Name)
}

func (r *Recorder) CreateSketch(model Handle, s recipe.Sketch) (Handle, error) {
	return r.handle("sketch", s.Name), r.record("CreateSketch", model, "%q, sheet %g, rectangle (%g, %g)-(%g, %g)",
		s.Name, s.SheetSize, s.Corner1.X, s.Corner1.Y, s.Corner2.X, s.Corner2.Y)
}

func (r *Recorder) ExtrudePart(model, sketch Handle, p recipe.Part) (Handle, error) {
	return r.handle("part", p.Name), r.record("ExtrudePart", model, "%q from %s, depth %g", p.Name, sketch, p.Depth)
}

func (r *Recorder) DefineMaterial(model Handle, m recipe.Material) (Handle, error) {
	rows := make([]string, len(m.Elastic))
	for i, e := range m.Elastic {
		rows[i] = fmt.Sprintf("(%g, %g)", e.YoungsModulus, e.PoissonRatio)
	}
	return r.handle("material", m.Name), r.record("DefineMaterial", model, "%q, density %g, elastic %s",
		m.Name, m.Density, strings.Join(rows, " "))
}

func (r *Recorder) DefineSection(model Handle, s recipe.Section) (Handle, error) {
	return r.handle("section", s.Name), r.record("DefineSection", model, "%q of %q", s.Name, s.Material)
}

func (r *Recorder) AssignSection(part Handle, section string) error {
	return r.record("AssignSection", part, "%q to all cells", section)
}

func (r *Recorder) CreateInstance(model, part Handle, inst recipe.Instance) (Handle, error) {
	return r.handle("instance", inst.Name), r.record("CreateInstance", model, "%q of %s, dependent=%t", inst.Name, part, inst.Dependent)
}

func (r *Recorder) CreateStep(model Handle, s recipe.Step) (Handle, error) {
	return r.handle("step", s.Name), r.record("CreateStep", model, "%q after %q", s.Name, s.Previous)
}

func (r *Recorder) ConfigureFieldOutput(model Handle, o recipe.FieldOutput) error {
	return r.record("ConfigureFieldOutput", model, "%q -> %q %v", o.Default, o.Name, o.Variables)
}

func (r *Recorder) DeleteHistoryOutput(model Handle, name string) error {
	return r.record("DeleteHistoryOutput", model, "%q", name)
}

func (r *Recorder) CreateHistoryOutput(model Handle, step string, o recipe.HistoryOutput) error {
	return r.record("CreateHistoryOutput", model, "%q in %q %v", o.Name, step, o.Variables)
}

func (r *Recorder) FindFace(instance Handle, p geometry.Point3) (Handle, error) {
	return r.handle("face", p.String()), r.record("FindFace", instance, "%v", p)
}

func (r *Recorder) ApplyPressure(model, face Handle, step string, load recipe.Pressure) error {
	return r.record("ApplyPressure", model, "%q on %s in %q, magnitude %g", load.Name, face, step, load.Magnitude)
}

func (r *Recorder) ApplyEncastre(model, face Handle, bc recipe.Encastre) error {
	return r.record("ApplyEncastre", model, "%q on %s in %q", bc.Name, face, bc.Step)
}

func (r *Recorder) FindCell(part Handle, p geometry.Point3) (Handle, error) {
	return r.handle("cell", p.String()), r.record("FindCell", part, "%v", p)
}

func (r *Recorder) SetElementType(part, cell Handle, m recipe.Mesh) error {
	return r.record("SetElementType", part, "%s/%s on %s", m.ElementCode, m.Library, cell)
}

func (r *Recorder) SeedPart(part Handle, m recipe.Mesh) error {
	return r.record("SeedPart", part, "size %g, deviation %g", m.SeedSize, m.DeviationFactor)
}

func (r *Recorder) GenerateMesh(part Handle) error {
	return r.record("GenerateMesh", part, "")
}

func (r *Recorder) CreateJob(model string, j recipe.Job) (Handle, error) {
	return r.handle("job", j.Name), r.record("CreateJob", "", "%q on %q, %s precision, cpus %d, domains %d",
		j.Name, model, j.Precision, j.NumCPUs, j.NumDomains)
}

func (r *Recorder) SubmitJob(job Handle, j recipe.Job) error {
	return r.record("SubmitJob", job, "consistency checking %t", j.ConsistencyChecking)
}

func (r *Recorder) WaitForCompletion(job Handle) error {
	return r.record("WaitForCompletion", job, "")
}

func (r *Recorder) OpenDatabase(path string, res recipe.Results) (Handle, error) {
	return r.handle("odb", path), r.record("OpenDatabase", "", "%q in %q", path, res.Viewport)
}
