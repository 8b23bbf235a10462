package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/evaries/cantilever/internal/abaqus"
)

var (
	statusJob     string
	statusWorkDir string
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Report the state of a job from its work directory",
	Long: `Report whether a job is running, completed or aborted by reading its
lock and status files, and whether its output database exists.

The job name defaults to the one in the recipe.

Examples:
  cantilever status
  cantilever status --job CantileverBeamJob --workdir runs/beam`,
	RunE: runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
	addRecipeFlags(statusCmd)
	statusCmd.Flags().StringVar(&statusJob, "job", "", "Job name (defaults to the recipe's job)")
	statusCmd.Flags().StringVar(&statusWorkDir, "workdir", ".", "Directory holding the job files")
}

func runStatus(cmd *cobra.Command, args []string) error {
	job := statusJob
	if job == "" {
		r, err := loadRecipe(false)
		if err != nil {
			return err
		}
		job = r.Job.Name
	}

	st, err := abaqus.ReadStatus(statusWorkDir, job)
	if err != nil {
		return err
	}
	odb := filepath.Join(statusWorkDir, job+".odb")
	if _, err := os.Stat(odb); err != nil {
		odb = "(not written)"
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Job %s: %s\n", job, statusStyle(st))
	fmt.Fprintf(out, "  Output database: %s\n", odb)
	return nil
}
