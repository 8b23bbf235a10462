package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/evaries/cantilever/internal/recipe"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check a recipe before it is sent to the FEA application",
	Long: `Check a cantilever recipe for problems the FEA application would only
report mid-script, or not at all:

  - degenerate rectangle corners or non-positive extrusion depth
  - elastic table not exactly one (E, ν) row with E > 0 and 0 ≤ ν < 0.5
  - load and fixture probes that miss the body, hit an edge, or hit the same face
  - mesh probe outside the part, unusable seed size or element type
  - job name, CPU/domain split and output database name mismatches

Examples:
  cantilever validate
  cantilever validate -f beam.yaml --set mesh.seed_size=0.05`,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
	addRecipeFlags(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	r, err := loadRecipe(true)
	if r == nil {
		return err
	}
	out := cmd.OutOrStdout()
	if err != nil {
		problems := recipe.ValidationErrors(err)
		fmt.Fprintf(out, "Recipe %q has %d problem(s):\n", r.Model.Name, len(problems))
		for _, p := range problems {
			fmt.Fprintf(out, "  ✗ %s\n", p)
		}
		return fmt.Errorf("recipe is invalid")
	}

	load, fixture, err := r.Faces()
	if err != nil {
		return err
	}
	logger.Debug("recipe valid", logFields(r.Job.Name, r.Model.Name)...)
	fmt.Fprintf(out, "Recipe %q is valid ✓\n", r.Model.Name)
	fmt.Fprintf(out, "  load probe    → %s face\n", load)
	fmt.Fprintf(out, "  fixture probe → %s face\n", fixture)
	fmt.Fprintf(out, "  results       → %s\n", r.Database())
	return nil
}
