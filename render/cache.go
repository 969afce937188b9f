package render

import (
	"github.com/soypat/isosurface"
	"gonum.org/v1/gonum/spatial/r3"
)

// edgeKey identifies a vertex in the cache. With cube scoped keys origin is the
// cube coordinate and edge the local edge index. With canonical keys origin
// is the lower lattice corner of the edge and edge the axis it runs along.
type edgeKey struct {
	origin isosurface.V3i
	edge   int8
}

// vertexCache hands out vertex ids so that a vertex is emitted at most once
// per key during an extraction.
type vertexCache struct {
	ids       map[edgeKey]uint32
	canonical bool
	// next is the id assigned to the next emitted vertex.
	next uint32
}

func newVertexCache(canonical bool) *vertexCache {
	size := 16
	if canonical {
		size = 1024
	}
	return &vertexCache{
		ids:       make(map[edgeKey]uint32, size),
		canonical: canonical,
	}
}

// key returns the cache key of local edge e of the cube at c.
func (vc *vertexCache) key(c isosurface.V3i, e int8) edgeKey {
	if !vc.canonical {
		return edgeKey{origin: c, edge: e}
	}
	pair := mcEdgeCorners[e]
	a, b := mcCornerOffsets[pair[0]], mcCornerOffsets[pair[1]]
	var axis int8
	for axis = 0; axis < 2; axis++ {
		if a[axis] != b[axis] {
			break
		}
	}
	return edgeKey{origin: c.Add(a.Min(b)), edge: axis}
}

// vertex returns the id of the vertex at key. On the first request pos is
// appended to dst and the new id is remembered.
func (vc *vertexCache) vertex(k edgeKey, pos r3.Vec, dst *Mesh) uint32 {
	if id, ok := vc.ids[k]; ok {
		return id
	}
	id := vc.next
	vc.next++
	vc.ids[k] = id
	dst.Vertices = append(dst.Vertices, pos)
	return id
}

// endCube is called after a cube is triangulated. Cube scoped keys are never
// requested again once the scan leaves their cube.
func (vc *vertexCache) endCube() {
	if !vc.canonical && len(vc.ids) > 0 {
		clear(vc.ids)
	}
}

// advance is called when the scan moves on to the cubes at x. Canonical keys
// with an origin behind x can no longer be reached.
func (vc *vertexCache) advance(x int) {
	if !vc.canonical {
		return
	}
	for k := range vc.ids {
		if k.origin[0] < x {
			delete(vc.ids, k)
		}
	}
}
