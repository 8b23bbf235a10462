// Package session defines the scripting surface of the FEA application the
// cantilever recipe is replayed against.
package session

import (
	"github.com/evaries/cantilever/internal/geometry"
	"github.com/evaries/cantilever/internal/recipe"
)

// Handle refers to an entity created inside the external model database
type Handle string

// Session is the ordered, stateful object model of the FEA application.
// Implementations are not safe for concurrent use; calls are issued strictly
// in recipe order.
type Session interface {
	RenameModel(m recipe.Model) (Handle, error)
	CreateSketch(model Handle, s recipe.Sketch) (Handle, error)
	ExtrudePart(model, sketch Handle, p recipe.Part) (Handle, error)

	DefineMaterial(model Handle, m recipe.Material) (Handle, error)
	DefineSection(model Handle, s recipe.Section) (Handle, error)
	// AssignSection binds the section to every solid cell of the part
	AssignSection(part Handle, section string) error

	CreateInstance(model, part Handle, inst recipe.Instance) (Handle, error)

	CreateStep(model Handle, s recipe.Step) (Handle, error)
	ConfigureFieldOutput(model Handle, o recipe.FieldOutput) error
	DeleteHistoryOutput(model Handle, name string) error
	CreateHistoryOutput(model Handle, step string, o recipe.HistoryOutput) error

	// FindFace returns the face of the instance passing through p
	FindFace(instance Handle, p geometry.Point3) (Handle, error)
	ApplyPressure(model, face Handle, step string, load recipe.Pressure) error
	ApplyEncastre(model, face Handle, bc recipe.Encastre) error

	// FindCell returns the cell of the part containing p
	FindCell(part Handle, p geometry.Point3) (Handle, error)
	SetElementType(part, cell Handle, m recipe.Mesh) error
	SeedPart(part Handle, m recipe.Mesh) error
	GenerateMesh(part Handle) error

	CreateJob(model string, j recipe.Job) (Handle, error)
	SubmitJob(job Handle, j recipe.Job) error
	// WaitForCompletion blocks until the solver process exits
	WaitForCompletion(job Handle) error

	OpenDatabase(path string, res recipe.Results) (Handle, error)
}
