package render_test

import (
	"io"
	"testing"

	"github.com/soypat/isosurface"
	"github.com/soypat/isosurface/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestGridRenderer(t *testing.T) {
	g := ballGrid(12, r3.Vec{X: 5.6, Y: 5.2, Z: 5.9}, 4.4)
	cfg := ballConfig()
	m, err := render.MarchingCubes(g, cfg)
	require.NoError(t, err)
	want := m.Triangles()
	require.NotEmpty(t, want)

	r, err := render.NewGridRenderer(g, cfg)
	require.NoError(t, err)
	got, err := render.RenderAll(r)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	// Buffers smaller than a single cube's output spill into the next read.
	for _, size := range []int{1, 2, 3, 4, 5, 7, 64} {
		r, err := render.NewGridRenderer(g, cfg)
		require.NoError(t, err)
		buf := make([]r3.Triangle, size)
		var got []r3.Triangle
		for {
			n, err := r.ReadTriangles(buf)
			require.LessOrEqual(t, n, size)
			got = append(got, buf[:n]...)
			if err == io.EOF {
				break
			}
			require.NoError(t, err)
		}
		assert.Equal(t, want, got, "buffer size %d", size)
		// Exhausted renderers keep returning io.EOF.
		n, err := r.ReadTriangles(buf)
		assert.Zero(t, n)
		assert.ErrorIs(t, err, io.EOF)
	}
}

func TestGridRendererShortBuffer(t *testing.T) {
	r, err := render.NewGridRenderer(singleCornerGrid(), render.DefaultConfig())
	require.NoError(t, err)
	_, err = r.ReadTriangles(nil)
	assert.ErrorIs(t, err, io.ErrShortBuffer)
}

func TestGridRendererEmpty(t *testing.T) {
	for _, shape := range [][3]int{{0, 0, 0}, {2, 1, 2}, {3, 3, 3}} {
		g := isosurface.NewGrid(shape[0], shape[1], shape[2])
		r, err := render.NewGridRenderer(g, render.DefaultConfig())
		require.NoError(t, err)
		got, err := render.RenderAll(r)
		require.NoError(t, err)
		assert.Empty(t, got, "shape %v", shape)
	}
}
