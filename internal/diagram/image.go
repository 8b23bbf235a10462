package diagram

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

var (
	outlineColor = color.Black
	loadColor    = color.RGBA{R: 220, G: 20, B: 60, A: 255}
	fixtureColor = color.RGBA{R: 0, G: 0, B: 139, A: 255}
	meshColor    = color.RGBA{R: 0, G: 100, B: 0, A: 255}
	seedColor    = color.Gray{Y: 160}
)

// maxSeedTicks is the densest seeding the elevation export still marks
const maxSeedTicks = 1000

// ExportElevationDiagram exports the side view: beam outline, encastre
// wall, pressure arrows, seed ticks and probe points. The format follows
// the file extension (png, svg, pdf).
func ExportElevationDiagram(data BeamDiagramData, filename string) error {
	p := plot.New()
	p.Title.Text = "Cantilever Elevation"
	p.X.Label.Text = "z"
	p.Y.Label.Text = "y"

	outline, err := plotter.NewLine(plotter.XYs{
		{X: 0, Y: data.MinY},
		{X: data.Length, Y: data.MinY},
		{X: data.Length, Y: data.MaxY},
		{X: 0, Y: data.MaxY},
		{X: 0, Y: data.MinY},
	})
	if err != nil {
		return err
	}
	outline.LineStyle.Width = vg.Points(2)
	outline.LineStyle.Color = outlineColor
	p.Add(outline)

	// Encastre wall just behind the fixed end
	h := data.Height()
	wallX := -0.02 * data.Length
	wall, err := plotter.NewPolygon(plotter.XYs{
		{X: wallX, Y: data.MinY - 0.5*h},
		{X: 0, Y: data.MinY - 0.5*h},
		{X: 0, Y: data.MaxY + 0.5*h},
		{X: wallX, Y: data.MaxY + 0.5*h},
	})
	if err != nil {
		return err
	}
	wall.Color = color.RGBA{R: 100, G: 149, B: 237, A: 150}
	wall.LineStyle.Color = fixtureColor
	p.Add(wall)

	// Pressure arrows: a shaft per tenth of the span
	arrowLen := 0.6 * h
	for i := 0; i <= 10; i++ {
		z := data.Length * float64(i) / 10
		shaft, err := plotter.NewLine(plotter.XYs{{X: z, Y: data.MaxY + arrowLen}, {X: z, Y: data.MaxY}})
		if err != nil {
			return err
		}
		shaft.LineStyle.Color = loadColor
		p.Add(shaft)
	}

	// Seed ticks along the bottom edge, left out when too dense to read
	if data.SeedSize > 0 && data.Length/data.SeedSize <= maxSeedTicks {
		var ticks plotter.XYs
		for z := 0.0; z <= data.Length+1e-9; z += data.SeedSize {
			ticks = append(ticks, plotter.XY{X: z, Y: data.MinY})
		}
		seeds, err := plotter.NewScatter(ticks)
		if err != nil {
			return err
		}
		seeds.GlyphStyle.Shape = draw.PlusGlyph{}
		seeds.GlyphStyle.Color = seedColor
		seeds.GlyphStyle.Radius = vg.Points(2)
		p.Add(seeds)
	}

	if err := addProbes(p, func(pt Point) plotter.XY { return plotter.XY{X: pt.Z, Y: pt.Y} }, data); err != nil {
		return err
	}

	p.Y.Min = data.MinY - h
	p.Y.Max = data.MaxY + h
	p.Legend.Top = true

	return save(p, 10*vg.Inch, 3*vg.Inch, filename)
}

// ExportCrossSectionDiagram exports the profile rectangle with the probe
// projections onto the XY plane
func ExportCrossSectionDiagram(data BeamDiagramData, filename string) error {
	p := plot.New()
	p.Title.Text = "Beam Profile"
	p.X.Label.Text = "x"
	p.Y.Label.Text = "y"

	section, err := plotter.NewPolygon(plotter.XYs{
		{X: data.MinX, Y: data.MinY},
		{X: data.MaxX, Y: data.MinY},
		{X: data.MaxX, Y: data.MaxY},
		{X: data.MinX, Y: data.MaxY},
	})
	if err != nil {
		return err
	}
	section.Color = color.RGBA{R: 200, G: 200, B: 200, A: 120}
	section.LineStyle.Width = vg.Points(2)
	section.LineStyle.Color = outlineColor
	p.Add(section)

	if err := addProbes(p, func(pt Point) plotter.XY { return plotter.XY{X: pt.X, Y: pt.Y} }, data); err != nil {
		return err
	}
	p.Legend.Top = true

	return save(p, 5*vg.Inch, 5*vg.Inch, filename)
}

func addProbes(p *plot.Plot, project func(Point) plotter.XY, data BeamDiagramData) error {
	probes := []struct {
		label string
		pt    Point
		color color.Color
	}{
		{"load probe", data.LoadProbe, loadColor},
		{"fixture probe", data.FixtureProbe, fixtureColor},
		{"mesh probe", data.MeshProbe, meshColor},
	}
	for _, pr := range probes {
		s, err := plotter.NewScatter(plotter.XYs{project(pr.pt)})
		if err != nil {
			return err
		}
		s.GlyphStyle.Color = pr.color
		s.GlyphStyle.Radius = vg.Points(4)
		p.Add(s)
		p.Legend.Add(pr.label, s)
	}
	return nil
}

func save(p *plot.Plot, width, height vg.Length, filename string) error {
	// Create directory if needed
	dir := filepath.Dir(filename)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	if err := p.Save(width, height, filename); err != nil {
		return fmt.Errorf("save %s: %w", filename, err)
	}
	return nil
}
