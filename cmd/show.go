package cmd

import (
	"fmt"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/evaries/cantilever/internal/diagram"
	"github.com/evaries/cantilever/internal/material"
)

var (
	showDiagram    bool
	showExportFile string
)

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Summarize a cantilever recipe",
	Long: `Print the geometry, material, loads, mesh and job settings of a recipe,
along with the faces each probe point resolves to.

Examples:
  cantilever show
  cantilever show -f beam.yaml --diagram
  cantilever show -o beam.png     # also writes beam-profile.png`,
	RunE: runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)
	addRecipeFlags(showCmd)

	// Diagram options
	showCmd.Flags().BoolVar(&showDiagram, "diagram", false, "Show ASCII elevation and cross-section")
	showCmd.Flags().StringVarP(&showExportFile, "output", "o", "", "Export diagrams to file (png, svg, pdf)")
}

func runShow(cmd *cobra.Command, args []string) error {
	r, err := loadRecipe(true)
	if err != nil {
		return err
	}
	body, err := r.Body()
	if err != nil {
		return err
	}
	loadFace, fixtureFace, err := r.Faces()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	b, h, l := body.Dimensions()
	el := r.Material.Elastic[0]
	nx, ny, nz := body.SeedDivisions(r.Mesh.SeedSize)

	fmt.Fprintln(out)
	fmt.Fprintln(out, "═══════════════════════════════════════════════════════════════")
	fmt.Fprintf(out, "     CANTILEVER RECIPE - %s\n", r.Model.Name)
	fmt.Fprintln(out, "═══════════════════════════════════════════════════════════════")
	fmt.Fprintln(out)

	section := func(title string, rows ...string) {
		fmt.Fprintln(out, title)
		fmt.Fprintln(out, "───────────────────────────────────────────────────────────────")
		w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		for _, row := range rows {
			fmt.Fprintf(w, "  %s\n", row)
		}
		w.Flush()
		fmt.Fprintln(out)
	}

	section("GEOMETRY:",
		fmt.Sprintf("Part:\t%s (sketch %q, sheet %g)", r.Part.Name, r.Sketch.Name, r.Sketch.SheetSize),
		fmt.Sprintf("Profile corners:\t(%g, %g) - (%g, %g)", r.Sketch.Corner1.X, r.Sketch.Corner1.Y, r.Sketch.Corner2.X, r.Sketch.Corner2.Y),
		fmt.Sprintf("Width (b):\t%g", b),
		fmt.Sprintf("Height (h):\t%g", h),
		fmt.Sprintf("Length (L):\t%g", l),
		fmt.Sprintf("Area (b·h):\t%g", b*h),
		fmt.Sprintf("Second moment (b·h³/12):\t%.6g", b*h*h*h/12),
	)

	section("MATERIAL:",
		fmt.Sprintf("Name:\t%s (section %q)", r.Material.Name, r.Section.Name),
		fmt.Sprintf("Density (ρ):\t%g", r.Material.Density),
		fmt.Sprintf("Young's modulus (E):\t%g", el.YoungsModulus),
		fmt.Sprintf("Poisson's ratio (ν):\t%g", el.PoissonRatio),
		fmt.Sprintf("Shear modulus (G):\t%.4g", material.ShearModulus(el.YoungsModulus, el.PoissonRatio)),
		fmt.Sprintf("Bulk modulus (K):\t%.4g", material.BulkModulus(el.YoungsModulus, el.PoissonRatio)),
	)

	section("STEP AND LOADS:",
		fmt.Sprintf("Step:\t%s (after %s)", r.Step.Name, r.Step.Previous),
		fmt.Sprintf("Field outputs:\t%s", strings.Join(r.Outputs.Field.Variables, ", ")),
		fmt.Sprintf("History outputs:\t%d variables", len(r.Outputs.History.Variables)),
		fmt.Sprintf("%s:\tp = %g on %s face, probe %v", r.Load.Name, r.Load.Magnitude, loadFace, r.Load.Probe),
		fmt.Sprintf("%s:\tencastre on %s face in %s, probe %v", r.Fixture.Name, fixtureFace, r.Fixture.Step, r.Fixture.Probe),
	)

	cd := material.WaveSpeed(el.YoungsModulus, el.PoissonRatio, r.Material.Density)
	meshRows := []string{
		fmt.Sprintf("Element:\t%s (%s, %s)", r.Mesh.ElementCode, strings.ToLower(r.Mesh.Library), strings.ToLower(r.Mesh.KinematicSplit)),
		fmt.Sprintf("Seed size:\t%g (deviation factor %g)", r.Mesh.SeedSize, r.Mesh.DeviationFactor),
		fmt.Sprintf("Seed divisions:\t%d × %d × %d", nx, ny, nz),
		fmt.Sprintf("Hex elements (approx.):\t%d", nx*ny*nz),
	}
	if cd > 0 {
		meshRows = append(meshRows, fmt.Sprintf("Stable increment (≈ Le/cd):\t%.3g", r.Mesh.SeedSize/cd))
	}
	section("MESH:", meshRows...)

	section("JOB:",
		fmt.Sprintf("Name:\t%s", r.Job.Name),
		fmt.Sprintf("Precision:\t%s", strings.ToLower(r.Job.Precision)),
		fmt.Sprintf("CPUs / domains:\t%d / %d", r.Job.NumCPUs, r.Job.NumDomains),
		fmt.Sprintf("Memory:\t%d %%", r.Job.MemoryPercent),
		fmt.Sprintf("Output database:\t%s", r.Database()),
	)

	if showDiagram || showExportFile != "" {
		data, err := diagramData(r)
		if err != nil {
			return err
		}
		if showDiagram {
			fmt.Fprint(out, diagram.DrawASCIIElevation(data))
			fmt.Fprint(out, diagram.DrawASCIICrossSection(data))
			fmt.Fprintln(out)
		}
		if showExportFile != "" {
			if err := diagram.ExportElevationDiagram(data, showExportFile); err != nil {
				return fmt.Errorf("exporting diagram: %w", err)
			}
			ext := filepath.Ext(showExportFile)
			profile := strings.TrimSuffix(showExportFile, ext) + "-profile" + ext
			if err := diagram.ExportCrossSectionDiagram(data, profile); err != nil {
				return fmt.Errorf("exporting diagram: %w", err)
			}
			fmt.Fprintf(out, "  Diagrams exported to: %s, %s\n\n", showExportFile, profile)
		}
	}
	return nil
}
