package render

import (
	"io"

	"github.com/soypat/isosurface"
	"gonum.org/v1/gonum/spatial/r3"
)

// gridRenderer marches the cubes of a grid lazily, one call to ReadTriangles
// at a time, so the whole mesh is never held in memory.
type gridRenderer struct {
	g       *isosurface.Grid
	cubes   isosurface.V3i
	cursor  isosurface.V3i // next cube to march
	iso     float64
	eps     float64
	spacing r3.Vec
	// triangles of a cube that did not fit in the last dst.
	unwritten triangle3Buffer
}

// NewGridRenderer returns a Renderer producing the same triangles, in the same
// order, as MarchingCubes(g, cfg).Triangles(). cfg.Watertight and cfg.Workers
// do not affect positional output and are ignored.
func NewGridRenderer(g *isosurface.Grid, cfg Config) (Renderer, error) {
	nx, ny, nz, err := g.Dims()
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	r := &gridRenderer{
		g:         g,
		cubes:     isosurface.V3i{max(nx-1, 0), max(ny-1, 0), max(nz-1, 0)},
		iso:       cfg.IsoLevel,
		eps:       cfg.epsilon(),
		spacing:   cfg.Spacing,
		unwritten: triangle3Buffer{buf: make([]r3.Triangle, 0, marchingCubesMaxTriangles)},
	}
	if r.cubes[1] == 0 || r.cubes[2] == 0 {
		r.cursor[0] = r.cubes[0] // No cubes to march.
	}
	return r, nil
}

// ReadTriangles writes triangles rendered from the grid into the argument buffer.
// returns number of triangles written and io.EOF after the last triangle.
func (r *gridRenderer) ReadTriangles(dst []r3.Triangle) (n int, err error) {
	if len(dst) == 0 {
		return 0, io.ErrShortBuffer
	}
	if r.unwritten.Len() > 0 {
		n += r.unwritten.Read(dst)
	}
	var tmp [marchingCubesMaxTriangles]r3.Triangle
	for n < len(dst) && !r.done() {
		c := r.cursor
		r.step()
		p := mcCorners(c, r.spacing)
		v := cubeValues(r.g, c)
		if len(dst)-n >= marchingCubesMaxTriangles {
			n += mcToTriangles(dst[n:], p, v, r.iso, r.eps)
			continue
		}
		// Not enough room in buffer to write all triangles that could be found by marching cubes.
		nt := mcToTriangles(tmp[:], p, v, r.iso, r.eps)
		k := copy(dst[n:], tmp[:nt])
		n += k
		r.unwritten.Write(tmp[k:nt])
	}
	if r.done() && r.unwritten.Len() == 0 {
		return n, io.EOF
	}
	return n, nil
}

func (r *gridRenderer) done() bool { return r.cursor[0] >= r.cubes[0] }

// step advances the cursor in lexicographic order, z fastest.
func (r *gridRenderer) step() {
	r.cursor[2]++
	if r.cursor[2] < r.cubes[2] {
		return
	}
	r.cursor[2] = 0
	r.cursor[1]++
	if r.cursor[1] < r.cubes[1] {
		return
	}
	r.cursor[1] = 0
	r.cursor[0]++
}
