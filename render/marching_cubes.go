package render

import (
	"math"

	"github.com/soypat/isosurface"
	"github.com/soypat/isosurface/internal/d3"
	"gonum.org/v1/gonum/spatial/r3"
)

// DefaultEpsilon is the tolerance under which an edge crossing snaps to one
// of the edge's corners instead of being interpolated.
const DefaultEpsilon = 1e-5

// marchingCubesMaxTriangles is the most triangles a single cube can produce.
const marchingCubesMaxTriangles = 5

// mcCornerOffsets are the lattice offsets of the 8 cube corners relative to
// the cube's base coordinate.
var mcCornerOffsets = [8]isosurface.V3i{
	{0, 0, 0},
	{1, 0, 0},
	{1, 1, 0},
	{0, 1, 0},
	{0, 0, 1},
	{1, 0, 1},
	{1, 1, 1},
	{0, 1, 1},
}

// mcEdgeCorners are the corner pairs joined by each of the 12 cube edges.
var mcEdgeCorners = [12][2]uint8{
	{0, 1}, {1, 2}, {2, 3}, {3, 0},
	{4, 5}, {5, 6}, {6, 7}, {7, 4},
	{0, 4}, {1, 5}, {2, 6}, {3, 7},
}

// mcIndex returns the cube configuration: bit i is set when corner i lies
// below the iso level.
func mcIndex(values *[8]float64, iso float64) uint8 {
	var index uint8
	for i, v := range values {
		if v < iso {
			index |= 1 << i
		}
	}
	return index
}

// mcInterpolate returns the point on segment p1-p2 where the linearly
// interpolated field equals iso. Crossings within eps of a corner snap to it.
func mcInterpolate(p1, p2 r3.Vec, v1, v2, iso, eps float64) r3.Vec {
	switch {
	case math.Abs(iso-v1) < eps:
		return p1
	case math.Abs(iso-v2) < eps:
		return p2
	case math.Abs(v1-v2) < eps:
		return p1
	}
	mu := (iso - v1) / (v2 - v1)
	return r3.Add(p1, r3.Scale(mu, r3.Sub(p2, p1)))
}

// mcCorners returns the world positions of the corners of the cube at c.
func mcCorners(c isosurface.V3i, spacing r3.Vec) (p [8]r3.Vec) {
	for i, off := range mcCornerOffsets {
		p[i] = d3.MulElem(c.Add(off).ToV3(), spacing)
	}
	return p
}

// mcEdgeVertices interpolates the crossing of every edge set in edges.
// Inactive entries are left zero.
func mcEdgeVertices(edges uint16, p *[8]r3.Vec, v *[8]float64, iso, eps float64) (ev [12]r3.Vec) {
	for e, pair := range mcEdgeCorners {
		if edges&(1<<e) == 0 {
			continue
		}
		a, b := pair[0], pair[1]
		ev[e] = mcInterpolate(p[a], p[b], v[a], v[b], iso, eps)
	}
	return ev
}

// mcToTriangles writes the triangles of a single cube to dst and returns the
// number written. dst must have room for marchingCubesMaxTriangles triangles.
func mcToTriangles(dst []r3.Triangle, p [8]r3.Vec, v [8]float64, iso, eps float64) int {
	index := mcIndex(&v, iso)
	edges := mcEdgeTable[index]
	if edges == 0 {
		return 0
	}
	ev := mcEdgeVertices(edges, &p, &v, iso, eps)
	table := &mcTriangleTable[index]
	n := 0
	for i := 0; table[i] >= 0; i += 3 {
		dst[n] = r3.Triangle{ev[table[i]], ev[table[i+1]], ev[table[i+2]]}
		n++
	}
	return n
}
