// Package geometry checks probe points against the solid produced by
// extruding a rectangular profile along +Z.
//
// It does not represent the body the FEA application builds; it only knows
// the bounding planes, which is what a findAt probe on a prism depends on.
package geometry

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrNoFace is returned when a probe point does not lie on the body boundary
	ErrNoFace = errors.New("point does not lie on any face")
	// ErrAmbiguousFace is returned when a probe point lies on an edge or corner
	ErrAmbiguousFace = errors.New("point lies on more than one face")
)

// relTol scales the coordinate tolerance with the body size
const relTol = 1e-6

// Point2 is a sketch coordinate
type Point2 struct {
	X float64
	Y float64
}

// Point3 is a model-space coordinate
type Point3 struct {
	X float64
	Y float64
	Z float64
}

func (p Point3) String() string {
	return fmt.Sprintf("(%g, %g, %g)", p.X, p.Y, p.Z)
}

// Face identifies one of the six planar faces of the extruded body
type Face int

const (
	FaceXMin Face = iota
	FaceXMax
	FaceYMin
	FaceYMax
	FaceZMin
	FaceZMax
)

var faceNames = [...]string{
	FaceXMin: "x-min side",
	FaceXMax: "x-max side",
	FaceYMin: "bottom",
	FaceYMax: "top",
	FaceZMin: "fixed end",
	FaceZMax: "free end",
}

func (f Face) String() string {
	if f < FaceXMin || f > FaceZMax {
		return fmt.Sprintf("Face(%d)", int(f))
	}
	return faceNames[f]
}

// Box is the axis-aligned body obtained by extruding a rectangle in the XY
// plane from z = 0 to z = depth.
type Box struct {
	Min Point3
	Max Point3
}

// NewBox builds the extruded body from two diagonal sketch corners and a depth
func NewBox(c1, c2 Point2, depth float64) (Box, error) {
	b := Box{
		Min: Point3{X: math.Min(c1.X, c2.X), Y: math.Min(c1.Y, c2.Y), Z: 0},
		Max: Point3{X: math.Max(c1.X, c2.X), Y: math.Max(c1.Y, c2.Y), Z: depth},
	}
	w, h, l := b.Dimensions()
	if w <= 0 || h <= 0 {
		return Box{}, fmt.Errorf("degenerate profile: width=%g, height=%g", w, h)
	}
	if l <= 0 {
		return Box{}, fmt.Errorf("extrusion depth must be positive, got %g", depth)
	}
	return b, nil
}

// Dimensions returns the extents along X (width), Y (height) and Z (length)
func (b Box) Dimensions() (width, height, length float64) {
	return b.Max.X - b.Min.X, b.Max.Y - b.Min.Y, b.Max.Z - b.Min.Z
}

func (b Box) tolerance() float64 {
	w, h, l := b.Dimensions()
	return relTol * math.Max(w, math.Max(h, l))
}

// Contains reports whether p lies inside the body or on its boundary
func (b Box) Contains(p Point3) bool {
	tol := b.tolerance()
	return within(p.X, b.Min.X, b.Max.X, tol) &&
		within(p.Y, b.Min.Y, b.Max.Y, tol) &&
		within(p.Z, b.Min.Z, b.Max.Z, tol)
}

// FaceAt resolves the single face containing p
func (b Box) FaceAt(p Point3) (Face, error) {
	if !b.Contains(p) {
		return 0, fmt.Errorf("%v: %w", p, ErrNoFace)
	}
	tol := b.tolerance()
	planes := []struct {
		face  Face
		coord float64
		plane float64
	}{
		{FaceXMin, p.X, b.Min.X},
		{FaceXMax, p.X, b.Max.X},
		{FaceYMin, p.Y, b.Min.Y},
		{FaceYMax, p.Y, b.Max.Y},
		{FaceZMin, p.Z, b.Min.Z},
		{FaceZMax, p.Z, b.Max.Z},
	}

	var hits []Face
	for _, pl := range planes {
		if math.Abs(pl.coord-pl.plane) <= tol {
			hits = append(hits, pl.face)
		}
	}
	switch len(hits) {
	case 0:
		return 0, fmt.Errorf("%v is interior: %w", p, ErrNoFace)
	case 1:
		return hits[0], nil
	default:
		return 0, fmt.Errorf("%v touches %v: %w", p, hits, ErrAmbiguousFace)
	}
}

// SeedDivisions returns how many seed intervals of the given size fit along
// each axis, rounded up as the mesher does for a uniform global seed.
func (b Box) SeedDivisions(size float64) (nx, ny, nz int) {
	if size <= 0 {
		return 0, 0, 0
	}
	w, h, l := b.Dimensions()
	return divisions(w, size), divisions(h, size), divisions(l, size)
}

// MaxDivisions caps the per-axis count SeedDivisions reports. The product
// of three capped counts still fits an int64.
const MaxDivisions = 1 << 20

func divisions(extent, size float64) int {
	// guard against 0.2/0.1 = 2.0000000000000004
	q := math.Ceil(extent/size - 1e-9)
	switch {
	case q < 1:
		return 1
	case q > MaxDivisions || math.IsNaN(q):
		return MaxDivisions
	}
	return int(q)
}

func within(v, lo, hi, tol float64) bool {
	return v >= lo-tol && v <= hi+tol
}
