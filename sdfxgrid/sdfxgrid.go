// Package sdfxgrid samples github.com/deadsy/sdfx solids onto isosurface grids
// so they can be contoured with the render package.
package sdfxgrid

import (
	"math"

	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/pkg/errors"
	"github.com/soypat/isosurface"
	"gonum.org/v1/gonum/spatial/r3"
)

// Sample evaluates s on a lattice of cubic cells of side cell covering its
// bounding box padded by one cell on every side, so the zero level set is
// closed inside the grid. Samples hold the negated distance so that the solid
// reads as a density: positive inside, and contoured faces wind outward.
// It returns the grid and the world position of sample (0,0,0). Contour at iso
// level 0 with spacing (cell,cell,cell) and translate the result by origin to
// recover world coordinates.
func Sample(s sdf.SDF3, cell float64) (g *isosurface.Grid, origin r3.Vec, err error) {
	if !(cell > 0) || math.IsInf(cell, 1) {
		return nil, r3.Vec{}, &isosurface.InvalidParameterError{Param: "cell", Value: cell, Reason: "cell size must be positive and finite"}
	}
	if s == nil {
		return nil, r3.Vec{}, errors.New("nil SDF3")
	}
	bb := s.BoundingBox()
	size := bb.Max.Sub(bb.Min)
	if size.X < 0 || size.Y < 0 || size.Z < 0 {
		return nil, r3.Vec{}, errors.Errorf("invalid bounding box %v", bb)
	}
	origin = r3.Vec{X: bb.Min.X - cell, Y: bb.Min.Y - cell, Z: bb.Min.Z - cell}
	n := func(length float64) int { return int(math.Ceil(length/cell)) + 3 }
	nx, ny, nz := n(size.X), n(size.Y), n(size.Z)
	g = isosurface.Sample(func(p r3.Vec) float64 {
		return -s.Evaluate(v3.Vec{X: p.X, Y: p.Y, Z: p.Z})
	}, origin, r3.Vec{X: cell, Y: cell, Z: cell}, nx, ny, nz)
	return g, origin, nil
}
