package diagram

import (
	"fmt"
	"math"
	"strings"
)

// Point is a model-space coordinate
type Point struct {
	X float64
	Y float64
	Z float64
}

// BeamDiagramData holds what is needed to draw the cantilever
type BeamDiagramData struct {
	// Body extents (model units)
	MinX, MaxX float64
	MinY, MaxY float64
	Length     float64 // extrusion depth along Z, fixed end at Z = 0

	// Probes sent to the application's face/cell lookup
	LoadProbe    Point
	FixtureProbe Point
	MeshProbe    Point

	// Loading and mesh
	Pressure float64
	SeedSize float64
}

// Width returns the profile extent along X
func (d BeamDiagramData) Width() float64 { return d.MaxX - d.MinX }

// Height returns the profile extent along Y
func (d BeamDiagramData) Height() float64 { return d.MaxY - d.MinY }

// DrawASCIIElevation draws the side view (Z to the right, Y up) with the
// encastre hatch at the fixed end, pressure arrows along the top and the
// probe points marked L (load), F (fixture) and M (mesh).
func DrawASCIIElevation(data BeamDiagramData) string {
	var sb strings.Builder

	widthChars := 50
	heightChars := 6

	col := func(z float64) int {
		return clamp(int(math.Round(z/data.Length*float64(widthChars-1))), 0, widthChars-1)
	}
	row := func(y float64) int {
		return clamp(int(math.Round((data.MaxY-y)/data.Height()*float64(heightChars))), 0, heightChars)
	}

	grid := make([][]rune, heightChars+1)
	for i := range grid {
		grid[i] = []rune(strings.Repeat(" ", widthChars))
		switch i {
		case 0, heightChars:
			grid[i] = []rune(strings.Repeat("─", widthChars))
		default:
			grid[i][widthChars-1] = '│'
		}
	}
	mark := func(p Point, r rune) {
		grid[row(p.Y)][col(p.Z)] = r
	}
	mark(data.MeshProbe, 'M')
	mark(data.LoadProbe, 'L')
	mark(data.FixtureProbe, 'F')

	sb.WriteString("\n")
	sb.WriteString("  CANTILEVER ELEVATION (side view, z →)\n")
	sb.WriteString("  ─────────────────────────────────────\n\n")

	arrows := strings.Repeat("↓ ", widthChars/2)
	sb.WriteString(fmt.Sprintf("      p = %g\n", data.Pressure))
	sb.WriteString(fmt.Sprintf("      %s\n", arrows[:len(arrows)-1]))
	for i, line := range grid {
		sb.WriteString("  ▨▨│")
		sb.WriteString(string(line))
		if i == 0 {
			sb.WriteString(fmt.Sprintf("  y = %g", data.MaxY))
		}
		if i == heightChars {
			sb.WriteString(fmt.Sprintf("  y = %g", data.MinY))
		}
		sb.WriteString("\n")
	}
	sb.WriteString(fmt.Sprintf("     z = 0%sz = %g\n", strings.Repeat(" ", widthChars-8), data.Length))
	sb.WriteString("\n  ▨ encastre   L load probe   F fixture probe   M mesh probe\n")

	return sb.String()
}

// DrawASCIICrossSection draws the rectangular profile (X right, Y up) with
// the load probe position on its edge.
func DrawASCIICrossSection(data BeamDiagramData) string {
	var sb strings.Builder

	widthChars := 24
	heightChars := 10

	colOf := func(x float64) int {
		return clamp(int(math.Round((x-data.MinX)/data.Width()*float64(widthChars-1))), 0, widthChars-1)
	}
	loadCol := colOf(data.LoadProbe.X)

	sb.WriteString("\n")
	sb.WriteString("  PROFILE CROSS-SECTION\n")
	sb.WriteString("  ─────────────────────\n\n")
	sb.WriteString(fmt.Sprintf("   %s▼ L\n", strings.Repeat(" ", loadCol)))

	for i := 0; i <= heightChars; i++ {
		switch i {
		case 0:
			sb.WriteString(fmt.Sprintf("  ┌%s┐  y = %g\n", strings.Repeat("─", widthChars), data.MaxY))
		case heightChars:
			sb.WriteString(fmt.Sprintf("  └%s┘  y = %g\n", strings.Repeat("─", widthChars), data.MinY))
		default:
			sb.WriteString(fmt.Sprintf("  │%s│\n", strings.Repeat("░", widthChars)))
		}
	}
	sb.WriteString(fmt.Sprintf("   x = %g%sx = %g\n", data.MinX, strings.Repeat(" ", widthChars-10), data.MaxX))
	sb.WriteString(fmt.Sprintf("\n   b = %g   h = %g\n", data.Width(), data.Height()))

	return sb.String()
}

// DrawSummaryBox creates a summary box for results
func DrawSummaryBox(title string, lines []string) string {
	var sb strings.Builder

	maxLen := len([]rune(title))
	for _, line := range lines {
		if n := len([]rune(line)); n > maxLen {
			maxLen = n
		}
	}
	maxLen += 4

	border := strings.Repeat("═", maxLen)
	sb.WriteString(fmt.Sprintf("  ╔%s╗\n", border))
	sb.WriteString(fmt.Sprintf("  ║  %s  ║\n", pad(title, maxLen-4)))
	sb.WriteString(fmt.Sprintf("  ╠%s╣\n", border))
	for _, line := range lines {
		sb.WriteString(fmt.Sprintf("  ║  %s  ║\n", pad(line, maxLen-4)))
	}
	sb.WriteString(fmt.Sprintf("  ╚%s╝\n", border))

	return sb.String()
}

// pad right-pads by rune count so box-drawing characters line up
func pad(s string, width int) string {
	if n := len([]rune(s)); n < width {
		return s + strings.Repeat(" ", width-n)
	}
	return s
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
