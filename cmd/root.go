package cmd

import (
	"fmt"
	"os"

	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/evaries/cantilever/internal/logging"
	"github.com/evaries/cantilever/internal/version"
)

var (
	logLevel  string
	logFormat string

	// logger is built from the persistent flags before any command runs
	logger = logging.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "cantilever",
	Short: "Cantilever beam FEA recipe driver",
	Long: `cantilever - scripted cantilever beam simulation

A CLI tool that builds, checks and submits a cantilever beam
simulation to an Abaqus/CAE installation.

This tool helps analysts:
  - Keep the beam recipe (geometry, material, loads, mesh, job) in one YAML file
  - Catch degenerate geometry and misplaced face probes before the solver does
  - Render the recipe as an Abaqus/CAE Python journal
  - Run the journal, wait for the job and report how it ended

All geometry, meshing and solving is performed by the FEA application.`,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		l, err := logging.New(logLevel, logFormat)
		if err != nil {
			return err
		}
		logger = l
		return nil
	},
	Run: func(cmd *cobra.Command, args []string) {
		p := termenv.ColorProfile()
		title := termenv.String(fmt.Sprintf("cantilever v%-44s", version.Version)).Foreground(p.Color("#60a5fa")).Bold()

		fmt.Println()
		fmt.Println("  ╔═══════════════════════════════════════════════════════════╗")
		fmt.Println("  ║                                                           ║")
		fmt.Printf("  ║   %s║\n", title)
		fmt.Println("  ║   Scripted Cantilever Beam Simulation                     ║")
		fmt.Println("  ║                                                           ║")
		fmt.Println("  ╚═══════════════════════════════════════════════════════════╝")
		fmt.Println()
		fmt.Println("  Commands:")
		fmt.Println("    • init      write the default beam recipe")
		fmt.Println("    • validate  check a recipe before it reaches the solver")
		fmt.Println("    • show      summarize geometry, material, loads and mesh")
		fmt.Println("    • plan      list the ordered session calls")
		fmt.Println("    • script    write the Abaqus/CAE journal")
		fmt.Println("    • run       run the journal and wait for the job")
		fmt.Println("    • status    report a job's state from its work directory")
		fmt.Println()
		fmt.Println("  Use 'cantilever --help' to see all flags.")
		fmt.Println()
		fmt.Println("  ─────────────────────────────────────────────────────────────")
		fmt.Printf("  Copyright © %s %s. All rights reserved.\n", version.Year, version.Author)
		fmt.Println()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	err := rootCmd.Execute()
	_ = logger.Sync()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "console", "Log format (console, json)")
}

// logFields is a small helper so commands log the recipe they act on the same way
func logFields(job, model string) []zap.Field {
	return []zap.Field{zap.String("job", job), zap.String("model", model)}
}
