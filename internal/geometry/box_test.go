package geometry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func beamBox(t *testing.T) Box {
	t.Helper()
	b, err := NewBox(Point2{X: 0.1, Y: 0.1}, Point2{X: 0.3, Y: -0.1}, 5)
	require.NoError(t, err)
	return b
}

func TestNewBoxNormalizesCorners(t *testing.T) {
	b := beamBox(t)
	assert.Equal(t, Point3{X: 0.1, Y: -0.1, Z: 0}, b.Min)
	assert.Equal(t, Point3{X: 0.3, Y: 0.1, Z: 5}, b.Max)

	w, h, l := b.Dimensions()
	assert.InDelta(t, 0.2, w, 1e-12)
	assert.InDelta(t, 0.2, h, 1e-12)
	assert.Equal(t, 5.0, l)
}

func TestNewBoxRejectsDegenerate(t *testing.T) {
	_, err := NewBox(Point2{X: 0.1, Y: 0.1}, Point2{X: 0.1, Y: -0.1}, 5)
	assert.ErrorContains(t, err, "degenerate profile")

	_, err = NewBox(Point2{X: 0.1, Y: 0.1}, Point2{X: 0.3, Y: 0.1}, 5)
	assert.ErrorContains(t, err, "degenerate profile")

	_, err = NewBox(Point2{X: 0.1, Y: 0.1}, Point2{X: 0.3, Y: -0.1}, 0)
	assert.ErrorContains(t, err, "depth must be positive")
}

func TestFaceAt(t *testing.T) {
	b := beamBox(t)

	tests := []struct {
		name string
		p    Point3
		want Face
	}{
		{"top face probe", Point3{X: 0.2, Y: 0.1, Z: 2.5}, FaceYMax},
		{"fixed end probe", Point3{X: 0.2, Y: 0, Z: 0}, FaceZMin},
		{"free end", Point3{X: 0.2, Y: 0, Z: 5}, FaceZMax},
		{"bottom", Point3{X: 0.2, Y: -0.1, Z: 1}, FaceYMin},
		{"x-min side", Point3{X: 0.1, Y: 0, Z: 1}, FaceXMin},
		{"x-max side", Point3{X: 0.3, Y: 0, Z: 1}, FaceXMax},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := b.FaceAt(tt.p)
			require.NoError(t, err)
			assert.Equal(t, tt.want, f)
		})
	}
}

func TestFaceAtErrors(t *testing.T) {
	b := beamBox(t)

	_, err := b.FaceAt(Point3{X: 0.2, Y: 0, Z: 2.5})
	assert.ErrorIs(t, err, ErrNoFace, "interior point")

	_, err = b.FaceAt(Point3{X: 0.2, Y: 0.5, Z: 2.5})
	assert.ErrorIs(t, err, ErrNoFace, "outside point")

	_, err = b.FaceAt(Point3{X: 0.2, Y: 0.1, Z: 0})
	assert.ErrorIs(t, err, ErrAmbiguousFace, "edge between top and fixed end")
}

func TestContains(t *testing.T) {
	b := beamBox(t)
	assert.True(t, b.Contains(Point3{X: 0.2, Y: 0, Z: 2.5}))
	assert.True(t, b.Contains(Point3{X: 0.1, Y: -0.1, Z: 0}))
	assert.False(t, b.Contains(Point3{X: 0.2, Y: 0, Z: -0.01}))
}

func TestSeedDivisions(t *testing.T) {
	b := beamBox(t)
	nx, ny, nz := b.SeedDivisions(0.1)
	assert.Equal(t, 2, nx)
	assert.Equal(t, 2, ny)
	assert.Equal(t, 50, nz)

	nx, ny, nz = b.SeedDivisions(0.3)
	assert.Equal(t, []int{1, 1, 17}, []int{nx, ny, nz})

	nx, ny, nz = b.SeedDivisions(0)
	assert.Zero(t, nx+ny+nz)

	nx, ny, nz = b.SeedDivisions(1e-300)
	assert.Equal(t, []int{MaxDivisions, MaxDivisions, MaxDivisions}, []int{nx, ny, nz})
}

func TestFaceString(t *testing.T) {
	assert.Equal(t, "top", FaceYMax.String())
	assert.Equal(t, "fixed end", FaceZMin.String())
	assert.Equal(t, "Face(9)", Face(9).String())
}
