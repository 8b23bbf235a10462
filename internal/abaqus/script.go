package abaqus

import (
	"fmt"
	"io"
	"strings"

	"github.com/evaries/cantilever/internal/geometry"
	"github.com/evaries/cantilever/internal/recipe"
	"github.com/evaries/cantilever/internal/session"
)

const header = `# -*- coding: mbcs -*-
from abaqus import *
from abaqusConstants import *
import regionToolset
import mesh
`

// Script is a session.Session that writes each call as Abaqus/CAE Python.
// Running the resulting journal with "abaqus cae noGUI=<file>" replays the
// recipe inside the application. Write errors are sticky: after the first
// one every call returns it.
type Script struct {
	w   io.Writer
	err error
	ids *identifiers

	model     string
	instance  string
	dependent bool
}

var _ session.Session = (*Script)(nil)

// NewScript writes the journal header to w
func NewScript(w io.Writer) *Script {
	s := &Script{w: w, ids: newIdentifiers()}
	s.emit(header)
	return s
}

// Err returns the first write error
func (s *Script) Err() error {
	return s.err
}

func (s *Script) emit(lines ...string) {
	if s.err != nil {
		return
	}
	_, s.err = io.WriteString(s.w, strings.Join(lines, "\n")+"\n")
}

func call(target, method string, kwargs ...string) string {
	return fmt.Sprintf("%s.%s(%s)", target, method, strings.Join(kwargs, ", "))
}

func kw(key, value string) string {
	return key + "=" + value
}

func (s *Script) RenameModel(m recipe.Model) (session.Handle, error) {
	v := s.ids.next(m.Name, "Model")
	s.emit("", "# Model")
	if m.Source != m.Name {
		s.emit(call("mdb.models", "changeKey", kw("fromName", pyStr(m.Source)), kw("toName", pyStr(m.Name))))
	}
	s.emit(fmt.Sprintf("%s = mdb.models[%s]", v, pyStr(m.Name)))
	s.model = v
	return session.Handle(v), s.err
}

func (s *Script) CreateSketch(model session.Handle, sk recipe.Sketch) (session.Handle, error) {
	v := s.ids.next(sk.Name, "Sketch")
	s.emit("", "# Part",
		v+" = "+call(string(model), "ConstrainedSketch", kw("name", pyStr(sk.Name)), kw("sheetSize", pyNum(sk.SheetSize))),
		call(v, "rectangle", kw("point1", pyPoint2(sk.Corner1)), kw("point2", pyPoint2(sk.Corner2))),
	)
	return session.Handle(v), s.err
}

func (s *Script) ExtrudePart(model, sketch session.Handle, p recipe.Part) (session.Handle, error) {
	v := s.ids.next(p.Name, "Part")
	s.emit(
		v+" = "+call(string(model), "Part", kw("name", pyStr(p.Name)), "dimensionality=THREE_D", "type=DEFORMABLE_BODY"),
		call(v, "BaseSolidExtrude", kw("sketch", string(sketch)), kw("depth", pyNum(p.Depth))),
	)
	return session.Handle(v), s.err
}

func (s *Script) DefineMaterial(model session.Handle, m recipe.Material) (session.Handle, error) {
	v := s.ids.next(m.Name, "Material")
	rows := make([]string, len(m.Elastic))
	for i, e := range m.Elastic {
		rows[i] = "(" + pyNum(e.YoungsModulus) + ", " + pyNum(e.PoissonRatio) + "), "
	}
	s.emit("", "# Material and section",
		v+" = "+call(string(model), "Material", kw("name", pyStr(m.Name))),
		call(v, "Density", kw("table", "(("+pyNum(m.Density)+", ), )")),
		call(v, "Elastic", kw("table", "("+strings.Join(rows, "")+")")),
	)
	return session.Handle(v), s.err
}

func (s *Script) DefineSection(model session.Handle, sec recipe.Section) (session.Handle, error) {
	v := s.ids.next(sec.Name, "Section")
	s.emit(v + " = " + call(string(model), "HomogeneousSolidSection",
		kw("name", pyStr(sec.Name)), kw("material", pyStr(sec.Material)), kw("thickness", pyNum(sec.Thickness))))
	return session.Handle(v), s.err
}

func (s *Script) AssignSection(part session.Handle, section string) error {
	region := s.ids.next(string(part), "Region")
	s.emit(
		region+" = regionToolset.Region("+kw("cells", string(part)+".cells")+")",
		call(string(part), "SectionAssignment", kw("region", region), kw("sectionName", pyStr(section))),
	)
	return s.err
}

func (s *Script) CreateInstance(model, part session.Handle, inst recipe.Instance) (session.Handle, error) {
	v := s.ids.next(inst.Name, "Instance")
	s.emit("", "# Assembly",
		v+" = "+call(string(model)+".rootAssembly", "Instance",
			kw("name", pyStr(inst.Name)), kw("part", string(part)), kw("dependent", pyBool(inst.Dependent))),
	)
	s.instance = v
	s.dependent = inst.Dependent
	return session.Handle(v), s.err
}

func (s *Script) CreateStep(model session.Handle, st recipe.Step) (session.Handle, error) {
	v := s.ids.next(st.Name, "Step")
	s.emit("", "# Step and output requests",
		v+" = "+call(string(model), "StaticStep",
			kw("name", pyStr(st.Name)), kw("previous", pyStr(st.Previous)), kw("description", pyStr(st.Description))),
	)
	return session.Handle(v), s.err
}

func (s *Script) ConfigureFieldOutput(model session.Handle, o recipe.FieldOutput) error {
	requests := string(model) + ".fieldOutputRequests"
	if o.Default != o.Name {
		s.emit(call(requests, "changeKey", kw("fromName", pyStr(o.Default)), kw("toName", pyStr(o.Name))))
	}
	s.emit(call(requests+"["+pyStr(o.Name)+"]", "setValues", kw("variables", pyTuple(o.Variables))))
	return s.err
}

func (s *Script) DeleteHistoryOutput(model session.Handle, name string) error {
	s.emit("del " + string(model) + ".historyOutputRequests[" + pyStr(name) + "]")
	return s.err
}

func (s *Script) CreateHistoryOutput(model session.Handle, step string, o recipe.HistoryOutput) error {
	s.emit(call(string(model), "HistoryOutputRequest",
		kw("name", pyStr(o.Name)), kw("createStepName", pyStr(step)), kw("variables", pyTuple(o.Variables))))
	return s.err
}

func (s *Script) FindFace(instance session.Handle, p geometry.Point3) (session.Handle, error) {
	v := s.ids.next("", "face")
	s.emit(v + " = " + call(string(instance)+".faces", "findAt", "("+pyPoint3(p)+", )"))
	return session.Handle(v), s.err
}

func (s *Script) ApplyPressure(model, face session.Handle, step string, load recipe.Pressure) error {
	region := s.ids.next(string(face), "Region")
	s.emit("", "# Load",
		region+" = regionToolset.Region("+kw("side1Faces", string(face))+")",
		call(string(model), "Pressure", kw("name", pyStr(load.Name)), kw("createStepName", pyStr(step)),
			kw("region", region), "distributionType=UNIFORM", kw("magnitude", pyNum(load.Magnitude)), "amplitude=UNSET"),
	)
	return s.err
}

func (s *Script) ApplyEncastre(model, face session.Handle, bc recipe.Encastre) error {
	region := s.ids.next(string(face), "Region")
	s.emit("", "# Boundary condition",
		region+" = regionToolset.Region("+kw("faces", string(face))+")",
		call(string(model), "EncastreBC", kw("name", pyStr(bc.Name)), kw("createStepName", pyStr(bc.Step)), kw("region", region)),
	)
	return s.err
}

// meshOwner is the object the mesh is built on: the part for a dependent
// instance, the assembly otherwise
func (s *Script) meshOwner(part session.Handle) string {
	if s.dependent || s.instance == "" {
		return string(part)
	}
	return s.model + ".rootAssembly"
}

func (s *Script) FindCell(part session.Handle, p geometry.Point3) (session.Handle, error) {
	v := s.ids.next("", "cell")
	source := string(part)
	if !s.dependent && s.instance != "" {
		source = s.instance
	}
	s.emit("", "# Mesh", v+" = "+call(source+".cells", "findAt", "("+pyPoint3(p)+", )"))
	return session.Handle(v), s.err
}

func (s *Script) SetElementType(part, cell session.Handle, m recipe.Mesh) error {
	v := s.ids.next(m.ElementCode, "ElemType")
	s.emit(
		v+" = mesh.ElemType("+strings.Join([]string{
			kw("elemCode", m.ElementCode), kw("elemLibrary", m.Library), kw("kinematicSplit", m.KinematicSplit),
			kw("secondOrderAccuracy", pyBool(m.SecondOrderAccuracy)), kw("hourglassControl", m.HourglassControl),
			"distortionControl=DEFAULT",
		}, ", ")+")",
		call(s.meshOwner(part), "setElementType", kw("regions", "("+string(cell)+", )"), kw("elemTypes", "("+v+", )")),
	)
	return s.err
}

func (s *Script) SeedPart(part session.Handle, m recipe.Mesh) error {
	owner := s.meshOwner(part)
	if owner == string(part) {
		s.emit(call(owner, "seedPart", kw("size", pyNum(m.SeedSize)), kw("deviationFactor", pyNum(m.DeviationFactor))))
	} else {
		s.emit(call(owner, "seedPartInstance", kw("regions", "("+s.instance+", )"),
			kw("size", pyNum(m.SeedSize)), kw("deviationFactor", pyNum(m.DeviationFactor))))
	}
	return s.err
}

func (s *Script) GenerateMesh(part session.Handle) error {
	owner := s.meshOwner(part)
	if owner == string(part) {
		s.emit(call(owner, "generateMesh"))
	} else {
		s.emit(call(owner, "generateMesh", kw("regions", "("+s.instance+", )")))
	}
	if s.model != "" {
		s.emit(call(s.model+".rootAssembly", "regenerate"))
	}
	return s.err
}

func (s *Script) CreateJob(model string, j recipe.Job) (session.Handle, error) {
	v := s.ids.next(j.Name, "Job")
	s.emit("", "# Job",
		v+" = mdb.Job("+strings.Join([]string{
			kw("name", pyStr(j.Name)), kw("model", pyStr(model)), "type=ANALYSIS",
			kw("explicitPrecision", j.Precision), kw("nodalOutputPrecision", j.Precision),
			kw("description", pyStr(j.Description)), "parallelizationMethodExplicit=DOMAIN",
			"multiprocessingMode=DEFAULT", kw("numDomains", fmt.Sprint(j.NumDomains)), "userSubroutine=''",
			kw("numCpus", fmt.Sprint(j.NumCPUs)), kw("memory", fmt.Sprint(j.MemoryPercent)), "memoryUnits=PERCENTAGE",
			"scratch=''", "echoPrint=OFF", "modelPrint=OFF", "contactPrint=OFF", "historyPrint=OFF",
		}, ", ")+")",
	)
	return session.Handle(v), s.err
}

func (s *Script) SubmitJob(job session.Handle, j recipe.Job) error {
	s.emit(call(string(job), "submit", kw("consistencyChecking", pyBool(j.ConsistencyChecking))))
	return s.err
}

func (s *Script) WaitForCompletion(job session.Handle) error {
	s.emit(call(string(job), "waitForCompletion"))
	return s.err
}

func (s *Script) OpenDatabase(path string, res recipe.Results) (session.Handle, error) {
	vp := s.ids.next(res.Viewport, "Viewport")
	v := s.ids.next(strings.TrimSuffix(path, ".odb"), "Odb")
	s.emit("", "# Results",
		vp+" = "+call("session", "Viewport", kw("name", pyStr(res.Viewport))),
		v+" = "+call("session", "openOdb", kw("name", pyStr(path))),
		call(vp, "setValues", kw("displayedObject", v)),
		call(vp+".odbDisplay.display", "setValues", "plotState=(DEFORMED, )"),
	)
	return session.Handle(v), s.err
}
