package cmd

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/evaries/cantilever/internal/abaqus"
	"github.com/evaries/cantilever/internal/metrics"
	"github.com/evaries/cantilever/internal/pipeline"
	"github.com/evaries/cantilever/internal/recipe"
)

var (
	scriptOutput   string
	scriptNoSubmit bool
)

var scriptCmd = &cobra.Command{
	Use:   "script",
	Short: "Write the Abaqus/CAE journal for a recipe",
	Long: `Render a recipe as an Abaqus/CAE Python journal. Running the journal
inside the application builds the model, meshes it, submits the job, waits
for it and opens the output database.

Examples:
  cantilever script > beam.py
  cantilever script -f beam.yaml -o beam.py
  abaqus cae noGUI=beam.py`,
	RunE: runScript,
}

func init() {
	rootCmd.AddCommand(scriptCmd)
	addRecipeFlags(scriptCmd)
	scriptCmd.Flags().StringVarP(&scriptOutput, "output", "o", "-", "Journal file to write ('-' for stdout)")
	scriptCmd.Flags().BoolVar(&scriptNoSubmit, "no-submit", false, "Build the model and job without submitting it")
}

// renderJournal replays the recipe into an in-memory journal so nothing is
// written when a stage fails
func renderJournal(r *recipe.Recipe, m *metrics.Metrics, skipSubmit bool) ([]byte, error) {
	var buf bytes.Buffer
	s := abaqus.NewScript(&buf)
	if _, err := pipeline.Run(context.Background(), r, s, pipeline.Options{
		Logger:     logger,
		Metrics:    m,
		SkipSubmit: skipSubmit,
	}); err != nil {
		return nil, err
	}
	return buf.Bytes(), s.Err()
}

func runScript(cmd *cobra.Command, args []string) error {
	r, err := loadRecipe(false)
	if err != nil {
		return err
	}
	journal, err := renderJournal(r, nil, scriptNoSubmit)
	if err != nil {
		return err
	}

	if scriptOutput == "-" {
		_, err := cmd.OutOrStdout().Write(journal)
		return err
	}
	if err := os.WriteFile(scriptOutput, journal, 0o644); err != nil {
		return err
	}
	logger.Info("journal written", append(logFields(r.Job.Name, r.Model.Name), zap.String("path", scriptOutput))...)
	fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %s\n", scriptOutput)
	return nil
}
