package render

import (
	"math"

	"github.com/soypat/isosurface"
	"gonum.org/v1/gonum/spatial/r3"
)

// Config holds the parameters of an isosurface extraction.
type Config struct {
	// IsoLevel is the threshold separating inside from outside. A corner
	// strictly below IsoLevel is inside.
	IsoLevel float64
	// Spacing is the world distance between grid samples along each axis.
	Spacing r3.Vec
	// Epsilon is the crossing snap tolerance. Zero selects DefaultEpsilon.
	Epsilon float64
	// Watertight shares vertices between adjacent cubes. By default a vertex
	// is only reused within the cube that emitted it, so surfaces crossing
	// cube faces carry duplicate vertices that downstream welding removes.
	Watertight bool
	// Workers is the number of goroutines marching x slabs of the grid.
	// Zero or one scans sequentially.
	Workers int
}

// DefaultConfig returns an iso level of 0.5 with unit spacing.
func DefaultConfig() Config {
	return Config{
		IsoLevel: 0.5,
		Spacing:  r3.Vec{X: 1, Y: 1, Z: 1},
		Epsilon:  DefaultEpsilon,
	}
}

// Validate returns an *isosurface.InvalidParameterError describing the first
// parameter out of its domain.
func (c Config) Validate() error {
	if math.IsNaN(c.IsoLevel) {
		return &isosurface.InvalidParameterError{Param: "IsoLevel", Value: c.IsoLevel, Reason: "iso level is NaN"}
	}
	for _, s := range []struct {
		name string
		v    float64
	}{{"Spacing.X", c.Spacing.X}, {"Spacing.Y", c.Spacing.Y}, {"Spacing.Z", c.Spacing.Z}} {
		if !(s.v > 0) || math.IsInf(s.v, 1) {
			return &isosurface.InvalidParameterError{Param: s.name, Value: s.v, Reason: "spacing must be positive and finite"}
		}
	}
	if !(c.Epsilon >= 0) || math.IsInf(c.Epsilon, 1) {
		return &isosurface.InvalidParameterError{Param: "Epsilon", Value: c.Epsilon, Reason: "epsilon must be non-negative and finite"}
	}
	if c.Workers < 0 {
		return &isosurface.InvalidParameterError{Param: "Workers", Value: float64(c.Workers), Reason: "negative worker count"}
	}
	return nil
}

func (c Config) epsilon() float64 {
	if c.Epsilon == 0 {
		return DefaultEpsilon
	}
	return c.Epsilon
}

// CubeMesh is the contribution of a single non-empty cube to the mesh.
type CubeMesh struct {
	// Cube is the base lattice coordinate of the cube.
	Cube isosurface.V3i
	// Vertices emitted for the first time by this cube. The first one has
	// id FirstVertex.
	Vertices    []r3.Vec
	FirstVertex uint32
	// Faces reference vertex ids over the whole extraction and may
	// reference vertices emitted by earlier cubes in watertight mode.
	Faces [][3]uint32
}

// MarchingCubes extracts the isosurface of g at cfg.IsoLevel. The grid must
// be rank 3; any grid dimension below 2 yields an empty mesh. Cubes are
// visited in lexicographic (x,y,z) order with z varying fastest, so identical
// inputs produce identical meshes.
func MarchingCubes(g *isosurface.Grid, cfg Config) (*Mesh, error) {
	s, err := newScanner(g, cfg)
	if err != nil {
		return nil, err
	}
	if cfg.Workers > 1 && !cfg.Watertight {
		return s.scanParallel(cfg.Workers), nil
	}
	m := &Mesh{}
	s.scan(0, s.cubes[0], m, nil)
	return m, nil
}

// Scan is the streaming form of MarchingCubes. fn is called once per non-empty
// cube in scan order. The CubeMesh slices are reused after fn returns. An
// error returned by fn stops the scan and is returned by Scan.
func Scan(g *isosurface.Grid, cfg Config, fn func(CubeMesh) error) error {
	s, err := newScanner(g, cfg)
	if err != nil {
		return err
	}
	return s.scan(0, s.cubes[0], &Mesh{}, fn)
}

// scanner marches the cubes of a grid. It is not safe for concurrent use.
type scanner struct {
	g *isosurface.Grid
	// cubes is the number of cubes along each axis.
	cubes      isosurface.V3i
	iso        float64
	eps        float64
	spacing    r3.Vec
	watertight bool
	cache      *vertexCache
}

func newScanner(g *isosurface.Grid, cfg Config) (*scanner, error) {
	nx, ny, nz, err := g.Dims()
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cubes := isosurface.V3i{max(nx-1, 0), max(ny-1, 0), max(nz-1, 0)}
	if cubes[0] == 0 || cubes[1] == 0 || cubes[2] == 0 {
		cubes = isosurface.V3i{} // No cubes to march.
	}
	return &scanner{
		g:          g,
		cubes:      cubes,
		iso:        cfg.IsoLevel,
		eps:        cfg.epsilon(),
		spacing:    cfg.Spacing,
		watertight: cfg.Watertight,
		cache:      newVertexCache(cfg.Watertight),
	}, nil
}

// scan marches the cubes with x in [x0,x1). Vertices and faces are appended to
// dst. If fn is not nil it receives each non-empty cube's contribution and dst
// is truncated after every call.
func (s *scanner) scan(x0, x1 int, dst *Mesh, fn func(CubeMesh) error) error {
	for x := x0; x < x1; x++ {
		s.cache.advance(x)
		for y := 0; y < s.cubes[1]; y++ {
			for z := 0; z < s.cubes[2]; z++ {
				c := isosurface.V3i{x, y, z}
				first := s.cache.next
				if !s.cube(c, dst) || fn == nil {
					continue
				}
				err := fn(CubeMesh{Cube: c, Vertices: dst.Vertices, FirstVertex: first, Faces: dst.Faces})
				if err != nil {
					return err
				}
				dst.Vertices = dst.Vertices[:0]
				dst.Faces = dst.Faces[:0]
			}
		}
	}
	return nil
}

// cube triangulates the cube at c into dst and reports whether it had any
// surface crossing.
func (s *scanner) cube(c isosurface.V3i, dst *Mesh) bool {
	v := cubeValues(s.g, c)
	index := mcIndex(&v, s.iso)
	edges := mcEdgeTable[index]
	if edges == 0 {
		return false
	}
	p := mcCorners(c, s.spacing)
	ev := mcEdgeVertices(edges, &p, &v, s.iso, s.eps)
	table := &mcTriangleTable[index]
	for i := 0; table[i] >= 0; i += 3 {
		var face [3]uint32
		for k := range face {
			e := table[i+k]
			face[k] = s.cache.vertex(s.cache.key(c, e), ev[e], dst)
		}
		dst.Faces = append(dst.Faces, face)
	}
	s.cache.endCube()
	return true
}

// cubeValues gathers the field samples at the corners of the cube at c.
func cubeValues(g *isosurface.Grid, c isosurface.V3i) (v [8]float64) {
	for i, off := range mcCornerOffsets {
		v[i] = g.At(c[0]+off[0], c[1]+off[1], c[2]+off[2])
	}
	return v
}
