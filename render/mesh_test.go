package render_test

import (
	"math"
	"testing"

	"github.com/soypat/glgl/math/ms3"
	"github.com/soypat/isosurface/internal/d3"
	"github.com/soypat/isosurface/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestMeshBuffers(t *testing.T) {
	m, err := render.MarchingCubes(singleCornerGrid(), render.DefaultConfig())
	require.NoError(t, err)
	vertices, normals, indices := m.Buffers()
	assert.Equal(t, []float32{0.5, 0, 0, 0, 0.5, 0, 0, 0, 0.5}, vertices)
	assert.Equal(t, []uint32{0, 1, 2}, indices)
	want := float32(1 / math.Sqrt(3))
	for i, n := range normals {
		assert.InDelta(t, want, n, 1e-6, "normal component %d", i)
	}
}

func TestMeshBuffersBall(t *testing.T) {
	cfg := ballConfig()
	cfg.Watertight = true
	m, err := render.MarchingCubes(ballGrid(10, d3.Elem(4.6), 3.3), cfg)
	require.NoError(t, err)
	vertices, normals, indices := m.Buffers()
	require.Len(t, vertices, 3*len(m.Vertices))
	require.Len(t, normals, 3*len(m.Vertices))
	require.Len(t, indices, 3*len(m.Faces))
	for i := range m.Vertices {
		n := r3.Vec{X: float64(normals[3*i]), Y: float64(normals[3*i+1]), Z: float64(normals[3*i+2])}
		assert.InDelta(t, 1, r3.Norm(n), 1e-5)
		// Vertex normals of a ball point away from its center.
		assert.Greater(t, r3.Dot(n, r3.Sub(m.Vertices[i], d3.Elem(4.6))), 0.)
	}
}

func TestMeshBounds(t *testing.T) {
	m, err := render.MarchingCubes(singleCornerGrid(), render.DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, r3.Box{Max: d3.Elem(0.5)}, m.Bounds())
	m.Scale(4)
	assert.Equal(t, r3.Box{Max: d3.Elem(2)}, m.Bounds())
	m.Translate(r3.Vec{X: 1, Y: -1})
	assert.Equal(t, r3.Box{Min: r3.Vec{X: 1, Y: -1}, Max: r3.Vec{X: 3, Y: 1, Z: 2}}, m.Bounds())
	assert.Equal(t, r3.Box{}, (&render.Mesh{}).Bounds())
}

func TestMeshTriangles32(t *testing.T) {
	m, err := render.MarchingCubes(singleCornerGrid(), render.DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, []ms3.Triangle{{{X: 0.5}, {Y: 0.5}, {Z: 0.5}}}, m.Triangles32())
}

func TestMeshModel3D(t *testing.T) {
	m, err := render.MarchingCubes(centerGrid(), render.DefaultConfig())
	require.NoError(t, err)
	mesh := m.Model3D()
	// model3d merges the per-cube duplicates by position.
	assert.Len(t, mesh.TriangleSlice(), 8)
	assert.False(t, mesh.NeedsRepair())
	// An octahedron with vertices 0.5 from its center.
	assert.InDelta(t, 4./3*0.5*0.5*0.5, mesh.Volume(), 1e-12)
}
