package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/evaries/cantilever/internal/abaqus"
	"github.com/evaries/cantilever/internal/diagram"
	"github.com/evaries/cantilever/internal/metrics"
)

var (
	runWorkDir     string
	runCommand     string
	runArgs        []string
	runTimeout     time.Duration
	runMetricsFile string
	runQuiet       bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a recipe through the FEA application and wait for the job",
	Long: `Write the journal for a recipe into the work directory, launch the FEA
application on it and block until the job finishes. The outcome is read
from the job's status file and output database afterwards.

Examples:
  cantilever run
  cantilever run -f beam.yaml --workdir runs/beam --timeout 2h
  cantilever run --abaqus /opt/SIMULIA/Commands/abq2024 --metrics-file beam.prom`,
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)
	addRecipeFlags(runCmd)

	runCmd.Flags().StringVar(&runWorkDir, "workdir", ".", "Directory the job files are written to")
	runCmd.Flags().StringVar(&runCommand, "abaqus", abaqus.DefaultCommand, "FEA application launcher")
	runCmd.Flags().StringArrayVar(&runArgs, "abaqus-arg", []string{"cae"}, "Launcher argument before noGUI=<journal> (repeatable)")
	runCmd.Flags().DurationVar(&runTimeout, "timeout", 0, "Abort the run after this long, killing the launcher and its solver (0 waits indefinitely)")
	runCmd.Flags().StringVar(&runMetricsFile, "metrics-file", "", "Write Prometheus metrics to this file when done")
	runCmd.Flags().BoolVarP(&runQuiet, "quiet", "q", false, "Do not echo the application's output")
}

func runRun(cmd *cobra.Command, args []string) error {
	r, err := loadRecipe(true)
	if err != nil {
		return err
	}
	m := metrics.New()

	journal, err := renderJournal(r, m, false)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(runWorkDir, 0o755); err != nil {
		return err
	}
	script := filepath.Join(runWorkDir, r.Job.Name+".py")
	if err := os.WriteFile(script, journal, 0o644); err != nil {
		return err
	}
	logger.Info("journal written", append(logFields(r.Job.Name, r.Model.Name), zap.String("path", script))...)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if runTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, runTimeout)
		defer cancel()
	}

	runner := &abaqus.Runner{
		Command: runCommand,
		Args:    runArgs,
		WorkDir: runWorkDir,
		Stdout:  cmd.OutOrStdout(),
		Stderr:  cmd.ErrOrStderr(),
		Logger:  logger,
	}
	if runQuiet {
		runner.Stdout, runner.Stderr = nil, nil
	}

	res, runErr := runner.Run(ctx, script, r.Job.Name)
	if res != nil {
		m.ObserveJob(string(res.Status), res.Duration)
		printRunSummary(cmd, r.Job.Name, res)
	}
	if runMetricsFile != "" {
		if err := m.WriteTextfile(runMetricsFile); err != nil {
			logger.Warn("could not write metrics", zap.String("path", runMetricsFile), zap.Error(err))
		}
	}
	if runErr != nil {
		return runErr
	}
	if res.Status != abaqus.StatusCompleted {
		return fmt.Errorf("job %s did not complete (status: %s)", r.Job.Name, res.Status)
	}
	return nil
}

func printRunSummary(cmd *cobra.Command, job string, res *abaqus.Result) {
	database := res.Database
	if database == "" {
		database = "(not written)"
	}
	out := cmd.OutOrStdout()
	fmt.Fprintln(out)
	fmt.Fprint(out, diagram.DrawSummaryBox("JOB "+job, []string{
		"Status:    " + string(res.Status),
		fmt.Sprintf("Exit code: %d", res.ExitCode),
		"Duration:  " + res.Duration.Round(time.Millisecond).String(),
		"Database:  " + database,
	}))
	fmt.Fprintf(out, "\n  %s\n\n", statusStyle(res.Status))
}

func statusStyle(s abaqus.Status) termenv.Style {
	p := termenv.ColorProfile()
	switch s {
	case abaqus.StatusCompleted:
		return termenv.String("✓ " + string(s)).Foreground(p.Color("#22c55e")).Bold()
	case abaqus.StatusRunning:
		return termenv.String("… " + string(s)).Foreground(p.Color("#eab308"))
	default:
		return termenv.String("✗ " + string(s)).Foreground(p.Color("#ef4444")).Bold()
	}
}
