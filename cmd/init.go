package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/evaries/cantilever/internal/material"
	"github.com/evaries/cantilever/internal/recipe"
)

var (
	initOutput   string
	initMaterial string
	initForce    bool
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default cantilever recipe to a YAML file",
	Long: `Write the default cantilever beam recipe as YAML so it can be edited.

The default beam is a 0.2 x 0.2 rectangular bar, 5 long, fixed at z = 0
with a uniform pressure of 10 on its top face, meshed with C3D8R bricks.

Examples:
  cantilever init
  cantilever init -o aluminium.yaml --material al-6061-t6`,
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)

	initCmd.Flags().StringVarP(&initOutput, "output", "o", "cantilever.yaml", "Recipe file to write")
	initCmd.Flags().StringVar(&initMaterial, "material", material.DefaultPreset,
		fmt.Sprintf("Material preset %v", material.PresetKeys()))
	initCmd.Flags().BoolVar(&initForce, "force", false, "Overwrite an existing file")
}

func runInit(cmd *cobra.Command, args []string) error {
	if _, err := os.Stat(initOutput); err == nil && !initForce {
		return fmt.Errorf("%s already exists (use --force to overwrite)", initOutput)
	}

	preset, err := material.Preset(initMaterial)
	if err != nil {
		return err
	}
	r := recipe.Default()
	r.UseMaterial(preset)

	if err := r.WriteFile(initOutput); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (material: %s)\n", initOutput, preset.Name)
	return nil
}
