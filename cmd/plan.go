package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/evaries/cantilever/internal/pipeline"
	"github.com/evaries/cantilever/internal/session"
)

var planNoSubmit bool

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "List the ordered session calls a recipe makes",
	Long: `Replay a recipe against a recording session and print every call the
FEA application would receive, in order, without touching the application.

Examples:
  cantilever plan
  cantilever plan -f beam.yaml --no-submit`,
	RunE: runPlan,
}

func init() {
	rootCmd.AddCommand(planCmd)
	addRecipeFlags(planCmd)
	planCmd.Flags().BoolVar(&planNoSubmit, "no-submit", false, "Stop after the job is defined")
}

func runPlan(cmd *cobra.Command, args []string) error {
	r, err := loadRecipe(false)
	if err != nil {
		return err
	}

	rec := session.NewRecorder()
	if _, err := pipeline.Run(context.Background(), r, rec, pipeline.Options{
		Logger:     logger,
		SkipSubmit: planNoSubmit,
	}); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%d session calls for job %s:\n", len(rec.Calls), r.Job.Name)
	for i, c := range rec.Calls {
		fmt.Fprintf(out, "  %2d. %s\n", i+1, c)
	}
	return nil
}
