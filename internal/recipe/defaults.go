package recipe

import (
	"github.com/evaries/cantilever/internal/geometry"
	"github.com/evaries/cantilever/internal/material"
)

// Default field and history variables
var (
	DefaultFieldVariables   = []string{"S", "E", "PEMAG", "U", "RF", "CF"}
	DefaultHistoryVariables = []string{
		"ALLAE", "ALLCD", "ALLDMD", "ALLEE", "ALLFD", "ALLIE", "ALLJD",
		"ALLKE", "ALLKL", "ALLPD", "ALLQB", "ALLSD", "ALLSE", "ALLVD",
		"ALLWK", "ETOTAL",
	}
)

// Default returns the cantilever beam recipe: a 0.2 x 0.2 steel bar, 5 long,
// fixed at z = 0 with a uniform pressure on its top face.
func Default() *Recipe {
	steel, _ := material.Preset(material.DefaultPreset)
	return &Recipe{
		Model: Model{Source: "Model-1", Name: "Cantilever Beam"},
		Sketch: Sketch{
			Name:      "Beam CS Profile",
			SheetSize: 5,
			Corner1:   geometry.Point2{X: 0.1, Y: 0.1},
			Corner2:   geometry.Point2{X: 0.3, Y: -0.1},
		},
		Part:     Part{Name: "Beam", Depth: 5},
		Material: FromPreset(steel),
		Section:  Section{Name: "Beam Section", Material: steel.Name, Thickness: 1.0},
		Instance: Instance{Name: "Beam Instance", Dependent: true},
		Step: Step{
			Name:        "Apply Load",
			Previous:    InitialStep,
			Description: "Load is applied during this step",
		},
		Outputs: Outputs{
			Field: FieldOutput{
				Default:   "F-Output-1",
				Name:      "Selected Field Outputs",
				Variables: append([]string(nil), DefaultFieldVariables...),
			},
			History: HistoryOutput{
				Delete:    "H-Output-1",
				Name:      "Default History Outputs",
				Variables: append([]string(nil), DefaultHistoryVariables...),
			},
		},
		Load: Pressure{
			Name:      "Uniform Applied Pressure",
			Probe:     geometry.Point3{X: 0.2, Y: 0.1, Z: 2.5},
			Magnitude: 10,
		},
		Fixture: Encastre{
			Name:  "Encaster one end",
			Step:  InitialStep,
			Probe: geometry.Point3{X: 0.2, Y: 0, Z: 0},
		},
		Mesh: Mesh{
			ElementCode:      "C3D8R",
			Library:          "EXPLICIT",
			KinematicSplit:   "AVERAGE_STRAIN",
			HourglassControl: "DEFAULT",
			SeedSize:         0.1,
			DeviationFactor:  0.1,
			Probe:            geometry.Point3{X: 0.2, Y: 0, Z: 2.5},
		},
		Job: Job{
			Name:          "CantileverBeamJob",
			Description:   "Job simulates a loaded cantilever beam",
			Precision:     "SINGLE",
			NumCPUs:       1,
			NumDomains:    1,
			MemoryPercent: 50,
		},
		Results: Results{Viewport: "Beam Results Viewport"},
	}
}

// FromPreset builds a single-row elastic material record
func FromPreset(p material.Properties) Material {
	return Material{
		Name:    p.Name,
		Density: p.Density,
		Elastic: []ElasticRow{{YoungsModulus: p.YoungsModulus, PoissonRatio: p.PoissonRatio}},
	}
}

// UseMaterial swaps the material and keeps the section pointing at it
func (r *Recipe) UseMaterial(p material.Properties) {
	r.Material = FromPreset(p)
	r.Section.Material = p.Name
}
