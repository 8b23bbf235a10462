package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/evaries/cantilever/internal/diagram"
	"github.com/evaries/cantilever/internal/recipe"
)

var (
	// Recipe inputs shared by every command that acts on a recipe
	recipeFile string
	recipeSets []string
)

func addRecipeFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&recipeFile, "file", "f", "", "Path to recipe YAML file (defaults apply when omitted)")
	cmd.Flags().StringArrayVar(&recipeSets, "set", nil, "Override a recipe key, e.g. --set load.magnitude=250; values are YAML, quote to force a string (repeatable)")
}

// loadRecipe reads the recipe named by the shared flags. With validate set,
// an invalid recipe is returned together with its validation error.
func loadRecipe(validate bool) (*recipe.Recipe, error) {
	r, err := recipe.LoadFromFile(recipeFile, recipeSets)
	if err != nil {
		return nil, fmt.Errorf("loading recipe: %w", err)
	}
	if validate {
		if err := r.Validate(); err != nil {
			return r, err
		}
	}
	return r, nil
}

// diagramData converts a recipe into what the diagram package draws
func diagramData(r *recipe.Recipe) (diagram.BeamDiagramData, error) {
	body, err := r.Body()
	if err != nil {
		return diagram.BeamDiagramData{}, err
	}
	toPoint := func(x, y, z float64) diagram.Point { return diagram.Point{X: x, Y: y, Z: z} }
	return diagram.BeamDiagramData{
		MinX:         body.Min.X,
		MaxX:         body.Max.X,
		MinY:         body.Min.Y,
		MaxY:         body.Max.Y,
		Length:       body.Max.Z - body.Min.Z,
		LoadProbe:    toPoint(r.Load.Probe.X, r.Load.Probe.Y, r.Load.Probe.Z),
		FixtureProbe: toPoint(r.Fixture.Probe.X, r.Fixture.Probe.Y, r.Fixture.Probe.Z),
		MeshProbe:    toPoint(r.Mesh.Probe.X, r.Mesh.Probe.Y, r.Mesh.Probe.Z),
		Pressure:     r.Load.Magnitude,
		SeedSize:     r.Mesh.SeedSize,
	}, nil
}
