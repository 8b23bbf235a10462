// Package recipe describes the cantilever beam model as it is handed to the
// FEA application: every literal the scripted session needs, grouped by the
// model entity it configures.
package recipe

import "github.com/evaries/cantilever/internal/geometry"

// InitialStep is the analysis step every model starts with
const InitialStep = "Initial"

// Recipe is the complete, ordered configuration of one cantilever simulation
type Recipe struct {
	Model    Model    `yaml:"model"`
	Sketch   Sketch   `yaml:"sketch"`
	Part     Part     `yaml:"part"`
	Material Material `yaml:"material"`
	Section  Section  `yaml:"section"`
	Instance Instance `yaml:"instance"`
	Step     Step     `yaml:"step"`
	Outputs  Outputs  `yaml:"outputs"`
	Load     Pressure `yaml:"load"`
	Fixture  Encastre `yaml:"fixture"`
	Mesh     Mesh     `yaml:"mesh"`
	Job      Job      `yaml:"job"`
	Results  Results  `yaml:"results"`
}

// Model names the workspace. Source is the name the application gives a new
// database's first model, which gets renamed.
type Model struct {
	Source string `yaml:"source"`
	Name   string `yaml:"name"`
}

// Sketch is the 2-D profile: a rectangle given by two diagonal corners
type Sketch struct {
	Name      string          `yaml:"name"`
	SheetSize float64         `yaml:"sheet_size"`
	Corner1   geometry.Point2 `yaml:"corner1"`
	Corner2   geometry.Point2 `yaml:"corner2"`
}

// Part is the deformable solid extruded from the sketch
type Part struct {
	Name  string  `yaml:"name"`
	Depth float64 `yaml:"depth"`
}

// ElasticRow is one (E, ν) row of an isotropic elastic table
type ElasticRow struct {
	YoungsModulus float64 `yaml:"youngs_modulus"`
	PoissonRatio  float64 `yaml:"poisson_ratio"`
}

// Material is a named density plus isotropic elastic record
type Material struct {
	Name    string       `yaml:"name"`
	Density float64      `yaml:"density"`
	Elastic []ElasticRow `yaml:"elastic"`
}

// Section binds a material to the solid cells of the part
type Section struct {
	Name      string  `yaml:"name"`
	Material  string  `yaml:"material"`
	Thickness float64 `yaml:"thickness"`
}

// Instance places the part in the assembly
type Instance struct {
	Name      string `yaml:"name"`
	Dependent bool   `yaml:"dependent"`
}

// Step is the load-application step following the initial step
type Step struct {
	Name        string `yaml:"name"`
	Previous    string `yaml:"previous"`
	Description string `yaml:"description"`
}

// FieldOutput renames the default field request and selects its variables
type FieldOutput struct {
	Default   string   `yaml:"default"`
	Name      string   `yaml:"name"`
	Variables []string `yaml:"variables"`
}

// HistoryOutput replaces the default history request with a new one
type HistoryOutput struct {
	Delete    string   `yaml:"delete"`
	Name      string   `yaml:"name"`
	Variables []string `yaml:"variables"`
}

// Outputs groups the field and history output requests
type Outputs struct {
	Field   FieldOutput   `yaml:"field"`
	History HistoryOutput `yaml:"history"`
}

// Pressure is a uniform surface load on the face found at Probe
type Pressure struct {
	Name      string          `yaml:"name"`
	Probe     geometry.Point3 `yaml:"probe"`
	Magnitude float64         `yaml:"magnitude"`
}

// Encastre fixes every degree of freedom of the face found at Probe
type Encastre struct {
	Name  string          `yaml:"name"`
	Step  string          `yaml:"step"`
	Probe geometry.Point3 `yaml:"probe"`
}

// Mesh configures the element formulation and the uniform global seed
type Mesh struct {
	ElementCode         string          `yaml:"element_code"`
	Library             string          `yaml:"library"`
	KinematicSplit      string          `yaml:"kinematic_split"`
	HourglassControl    string          `yaml:"hourglass_control"`
	SecondOrderAccuracy bool            `yaml:"second_order_accuracy"`
	SeedSize            float64         `yaml:"seed_size"`
	DeviationFactor     float64         `yaml:"deviation_factor"`
	Probe               geometry.Point3 `yaml:"probe"`
}

// Job is the solver invocation
type Job struct {
	Name                string `yaml:"name"`
	Description         string `yaml:"description"`
	Precision           string `yaml:"precision"`
	NumCPUs             int    `yaml:"num_cpus"`
	NumDomains          int    `yaml:"num_domains"`
	MemoryPercent       int    `yaml:"memory_percent"`
	ConsistencyChecking bool   `yaml:"consistency_checking"`
}

// Results configures how the output database is opened afterwards
type Results struct {
	Database string `yaml:"database,omitempty"`
	Viewport string `yaml:"viewport"`
}

// Database returns the output database file the job produces
func (r *Recipe) Database() string {
	if r.Results.Database != "" {
		return r.Results.Database
	}
	return r.Job.Name + ".odb"
}

// Body returns the extruded prism the part is built as
func (r *Recipe) Body() (geometry.Box, error) {
	return geometry.NewBox(r.Sketch.Corner1, r.Sketch.Corner2, r.Part.Depth)
}
