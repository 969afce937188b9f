package render

import (
	"sync"

	"gonum.org/v1/gonum/spatial/r3"
)

// scanParallel splits the grid into contiguous x slabs marched concurrently,
// each with a private vertex cache, and concatenates the results in slab
// order. Only valid for cube scoped vertex caches, where slabs share no
// vertices and the result is identical to a sequential scan.
func (s *scanner) scanParallel(workers int) *Mesh {
	nx := s.cubes[0]
	if workers > nx {
		workers = nx
	}
	if workers <= 1 {
		m := &Mesh{}
		s.scan(0, nx, m, nil)
		return m
	}
	parts := make([]Mesh, workers)
	var wg sync.WaitGroup
	for i := range parts {
		x0 := i * nx / workers
		x1 := (i + 1) * nx / workers
		sub := *s
		sub.cache = newVertexCache(false)
		wg.Add(1)
		go func(part *Mesh) {
			defer wg.Done()
			sub.scan(x0, x1, part, nil)
		}(&parts[i])
	}
	wg.Wait()

	var nv, nf int
	for i := range parts {
		nv += len(parts[i].Vertices)
		nf += len(parts[i].Faces)
	}
	m := &Mesh{
		Vertices: make([]r3.Vec, 0, nv),
		Faces:    make([][3]uint32, 0, nf),
	}
	for i := range parts {
		m.appendMesh(&parts[i])
	}
	return m
}
