// Package isosurface defines the scalar fields contoured by the render package
// and the errors reported for malformed input.
package isosurface

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Grid is a dense scalar field sampled on a regular lattice, such as a density
// volume or a segmentation mask. Data is stored in row-major order with the
// last axis varying fastest, so sample (x,y,z) of a rank 3 grid lives at
// Data[(x*ny+y)*nz+z].
//
// Shape is kept as a slice so that fields of the wrong rank can be
// represented and rejected before contouring.
type Grid struct {
	Shape []int
	Data  []float64
}

// NewGrid returns a zero filled rank 3 grid.
func NewGrid(nx, ny, nz int) *Grid {
	if nx < 0 || ny < 0 || nz < 0 {
		panic("negative grid dimension")
	}
	return &Grid{
		Shape: []int{nx, ny, nz},
		Data:  make([]float64, nx*ny*nz),
	}
}

// GridFromSlices copies a nested volume indexed as v[x][y][z] into a new Grid.
// Ragged input returns an *InputShapeError.
func GridFromSlices(v [][][]float64) (*Grid, error) {
	nx := len(v)
	var ny, nz int
	if nx > 0 {
		ny = len(v[0])
		if ny > 0 {
			nz = len(v[0][0])
		}
	}
	g := NewGrid(nx, ny, nz)
	for x, plane := range v {
		if len(plane) != ny {
			return nil, &InputShapeError{Shape: g.Shape, Reason: "ragged y dimension"}
		}
		for y, row := range plane {
			if len(row) != nz {
				return nil, &InputShapeError{Shape: g.Shape, Reason: "ragged z dimension"}
			}
			copy(g.Data[(x*ny+y)*nz:], row)
		}
	}
	return g, nil
}

// ExtrudeMask turns a 2D mask indexed as mask[x][y] into a volume two samples
// thick along z so that it can be contoured.
func ExtrudeMask(mask [][]float64) (*Grid, error) {
	nx := len(mask)
	var ny int
	if nx > 0 {
		ny = len(mask[0])
	}
	g := NewGrid(nx, ny, 2)
	for x, row := range mask {
		if len(row) != ny {
			return nil, &InputShapeError{Shape: []int{nx, ny}, Reason: "ragged mask"}
		}
		for y, v := range row {
			g.Set(x, y, 0, v)
			g.Set(x, y, 1, v)
		}
	}
	return g, nil
}

// Sample evaluates f at origin + (i*spacing.X, j*spacing.Y, k*spacing.Z) for every
// lattice point of an nx*ny*nz grid.
func Sample(f func(r3.Vec) float64, origin, spacing r3.Vec, nx, ny, nz int) *Grid {
	g := NewGrid(nx, ny, nz)
	i := 0
	for x := 0; x < nx; x++ {
		for y := 0; y < ny; y++ {
			for z := 0; z < nz; z++ {
				p := r3.Vec{
					X: origin.X + float64(x)*spacing.X,
					Y: origin.Y + float64(y)*spacing.Y,
					Z: origin.Z + float64(z)*spacing.Z,
				}
				g.Data[i] = f(p)
				i++
			}
		}
	}
	return g
}

// Rank returns the number of axes of the grid.
func (g *Grid) Rank() int { return len(g.Shape) }

// Dims returns the three axis lengths of the grid. It fails with an
// *InputShapeError if the grid is not rank 3, if nx*ny*nz overflows an int
// or if Data does not hold exactly nx*ny*nz samples.
func (g *Grid) Dims() (nx, ny, nz int, err error) {
	if g == nil {
		return 0, 0, 0, &InputShapeError{Reason: "nil grid"}
	}
	if len(g.Shape) != 3 {
		return 0, 0, 0, &InputShapeError{Shape: g.Shape, Reason: "field must be rank 3"}
	}
	nx, ny, nz = g.Shape[0], g.Shape[1], g.Shape[2]
	if nx < 0 || ny < 0 || nz < 0 {
		return 0, 0, 0, &InputShapeError{Shape: g.Shape, Reason: "negative dimension"}
	}
	if nx != 0 && ny > math.MaxInt/nx || nx*ny != 0 && nz > math.MaxInt/(nx*ny) {
		return 0, 0, 0, &InputShapeError{Shape: g.Shape, Reason: "dimensions overflow"}
	}
	if len(g.Data) != nx*ny*nz {
		return 0, 0, 0, &InputShapeError{Shape: g.Shape, Reason: "data length does not match shape"}
	}
	return nx, ny, nz, nil
}

// At returns the sample at (x,y,z). The grid must be rank 3.
func (g *Grid) At(x, y, z int) float64 {
	return g.Data[(x*g.Shape[1]+y)*g.Shape[2]+z]
}

// Set sets the sample at (x,y,z). The grid must be rank 3.
func (g *Grid) Set(x, y, z int, v float64) {
	g.Data[(x*g.Shape[1]+y)*g.Shape[2]+z] = v
}

// Normalize rescales the samples in place to the [0,1] range. A small
// constant is added to the range so constant fields map to zero instead of NaN.
func (g *Grid) Normalize() {
	if len(g.Data) == 0 {
		return
	}
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range g.Data {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	den := hi - lo + 1e-6
	for i, v := range g.Data {
		g.Data[i] = (v - lo) / den
	}
}
