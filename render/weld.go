package render

import (
	"gonum.org/v1/gonum/spatial/kdtree"
	"gonum.org/v1/gonum/spatial/r3"
)

var (
	_ kdtree.Interface  = weldPoints{}
	_ kdtree.Comparable = weldPoint{}
)

// Weld merges vertices lying within tol of one another and returns the
// resulting mesh. Vertices are visited in index order and each unmerged vertex
// absorbs every unmerged vertex within tol of it, so merged ids keep the order
// of first appearance. Faces that collapse onto fewer than three distinct
// vertices are dropped. m is not modified.
//
// Welding the output of a cube scoped extraction reproduces the watertight
// extraction of the same grid.
func Weld(m *Mesh, tol float64) *Mesh {
	if len(m.Vertices) == 0 {
		return &Mesh{}
	}
	pts := make(weldPoints, len(m.Vertices))
	for i, v := range m.Vertices {
		pts[i] = weldPoint{Vec: v, id: i}
	}
	tree := kdtree.New(pts, false)

	const unset = ^uint32(0)
	remap := make([]uint32, len(m.Vertices))
	for i := range remap {
		remap[i] = unset
	}
	welded := &Mesh{}
	for i, v := range m.Vertices {
		if remap[i] != unset {
			continue
		}
		id := uint32(len(welded.Vertices))
		welded.Vertices = append(welded.Vertices, v)
		remap[i] = id
		keep := kdtree.NewDistKeeper(tol * tol)
		tree.NearestSet(keep, weldPoint{Vec: v})
		for _, c := range keep.Heap {
			if c.Comparable == nil {
				continue // Sentinel.
			}
			j := c.Comparable.(weldPoint).id
			if remap[j] == unset {
				remap[j] = id
			}
		}
	}
	welded.Faces = make([][3]uint32, 0, len(m.Faces))
	for _, f := range m.Faces {
		a, b, c := remap[f[0]], remap[f[1]], remap[f[2]]
		if a == b || b == c || c == a {
			continue
		}
		welded.Faces = append(welded.Faces, [3]uint32{a, b, c})
	}
	return welded
}

type weldPoints []weldPoint

// weldPoint is a mesh vertex and its index in the source mesh.
type weldPoint struct {
	r3.Vec
	id int
}

func (k weldPoints) Index(i int) kdtree.Comparable { return k[i] }

// Len returns the length of the list.
func (k weldPoints) Len() int { return len(k) }

// Pivot partitions the list based on the dimension specified.
func (k weldPoints) Pivot(d kdtree.Dim) int {
	p := weldPlane{dim: d, points: k}
	return kdtree.Partition(p, kdtree.MedianOfMedians(p))
}

// Slice returns a slice of the list using zero-based half
// open indexing equivalent to built-in slice indexing.
func (k weldPoints) Slice(start, end int) kdtree.Interface { return k[start:end] }

// Compare returns the signed distance of a from the plane passing through
// b and perpendicular to the dimension d.
func (a weldPoint) Compare(b kdtree.Comparable, d kdtree.Dim) float64 {
	return weldComp(a.Vec, b.(weldPoint).Vec, d)
}

// Dims returns the number of dimensions described in the Comparable.
func (a weldPoint) Dims() int { return 3 }

// Distance returns the squared Euclidean distance between the receiver and
// the parameter.
func (a weldPoint) Distance(b kdtree.Comparable) float64 {
	return r3.Norm2(r3.Sub(a.Vec, b.(weldPoint).Vec))
}

// c = a.dim - b.dim
func weldComp(a, b r3.Vec, d kdtree.Dim) float64 {
	switch d {
	case 0:
		return a.X - b.X
	case 1:
		return a.Y - b.Y
	}
	return a.Z - b.Z
}

type weldPlane struct {
	dim    kdtree.Dim
	points weldPoints
}

func (p weldPlane) Less(i, j int) bool {
	return weldComp(p.points[i].Vec, p.points[j].Vec, p.dim) < 0
}
func (p weldPlane) Swap(i, j int) {
	p.points[i], p.points[j] = p.points[j], p.points[i]
}
func (p weldPlane) Len() int {
	return len(p.points)
}
func (p weldPlane) Slice(start, end int) kdtree.SortSlicer {
	p.points = p.points[start:end]
	return p
}
