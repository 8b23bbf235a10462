package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/evaries/cantilever/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of cantilever",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("cantilever v%s\n", version.Version)
		fmt.Printf("Build: %s (commit %s)\n", version.BuildTime, version.GitCommit)
		fmt.Println("Scripted cantilever beam simulation for Abaqus/CAE")
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
