package render_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/fogleman/fauxgl"
	"github.com/soypat/isosurface/internal/d3"
	"github.com/soypat/isosurface/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestSTLWriteReadback(t *testing.T) {
	const tol = 1e-5
	cfg := ballConfig()
	cfg.Spacing = d3.Elem(0.25)
	m, err := render.MarchingCubes(ballGrid(14, r3.Vec{X: 6.6, Y: 6.4, Z: 6.9}, 5.2), cfg)
	require.NoError(t, err)
	input := m.Triangles()
	var b bytes.Buffer
	require.NoError(t, render.WriteSTL(&b, input))
	require.Equal(t, 84+50*len(input), b.Len(), "STL size for %d triangles", len(input))

	output, err := render.ReadSTL(&b)
	require.NoError(t, err)
	require.Len(t, output, len(input), "length of triangles written/read not equal")
	mismatches := 0
	for iface, expect := range input {
		got := output[iface]
		for i := range expect {
			ok := assert.True(t, d3.EqualWithin(got[i], expect[i], tol),
				"%dth triangle equality out of tolerance. got vertex %0.5g, want %0.5g", iface, got[i], expect[i])
			if !ok {
				mismatches++
			}
		}
		require.LessOrEqual(t, mismatches, 10, "too many mismatches")
	}
}

func TestSTLCopyWriteRead(t *testing.T) {
	g := ballGrid(12, r3.Vec{X: 5.5, Y: 5.8, Z: 5.1}, 4.6)
	cfg := ballConfig()
	path := filepath.Join(t.TempDir(), "ball.stl")
	r, err := render.NewGridRenderer(g, cfg)
	require.NoError(t, err)
	fp, err := os.Create(path)
	require.NoError(t, err)
	nt, err := render.CopySTL(fp, r)
	require.NoError(t, err)
	require.NoError(t, fp.Close())
	bfile, err := os.ReadFile(path)
	require.NoError(t, err)

	m, err := render.MarchingCubes(g, cfg)
	require.NoError(t, err)
	var b bytes.Buffer
	require.NoError(t, render.WriteSTL(&b, m.Triangles()))
	assert.Equal(t, len(m.Faces), nt, "CopySTL triangle count")
	require.Equal(t, b.Len(), len(bfile), "WriteSTL and CopySTL output length mismatch")
	assert.True(t, bytes.Equal(b.Bytes(), bfile), "WriteSTL and CopySTL output mismatch")

	// Cross check with an independent STL loader.
	mesh, err := fauxgl.LoadSTL(path)
	require.NoError(t, err)
	require.Len(t, mesh.Triangles, len(m.Faces))
	bb := m.Bounds()
	fbb := mesh.BoundingBox()
	got := d3.Box{
		Min: r3.Vec{X: fbb.Min.X, Y: fbb.Min.Y, Z: fbb.Min.Z},
		Max: r3.Vec{X: fbb.Max.X, Y: fbb.Max.Y, Z: fbb.Max.Z},
	}
	assert.True(t, got.Equals(d3.Box(bb), 1e-5), "fauxgl bounds %v, want %v", got, bb)
}

func TestSTLErrors(t *testing.T) {
	var b bytes.Buffer
	assert.Error(t, render.WriteSTL(&b, nil), "empty model")

	// Header announces a triangle that is missing.
	short := make([]byte, 84+20)
	short[80] = 1
	// Degenerate triangle with every vertex at the origin.
	degenerate := make([]byte, 84+50)
	degenerate[80] = 1
	for _, test := range []struct {
		name string
		data []byte
	}{
		{"truncated header", make([]byte, 40)},
		{"zero triangles", make([]byte, 84)},
		{"truncated triangle", short},
		{"degenerate triangle", degenerate},
	} {
		_, err := render.ReadSTL(bytes.NewReader(test.data))
		assert.Error(t, err, test.name)
	}
}
