package render_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/soypat/isosurface/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteOBJ(t *testing.T) {
	m, err := render.MarchingCubes(singleCornerGrid(), render.DefaultConfig())
	require.NoError(t, err)
	var b bytes.Buffer
	require.NoError(t, render.WriteOBJ(&b, m))
	want := "v 0.500000 0.000000 0.000000\n" +
		"v 0.000000 0.500000 0.000000\n" +
		"v 0.000000 0.000000 0.500000\n" +
		"f 1 2 3\n"
	assert.Equal(t, want, b.String())
}

type failWriter struct{}

func (failWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestWriteOBJError(t *testing.T) {
	m, err := render.MarchingCubes(centerGrid(), render.DefaultConfig())
	require.NoError(t, err)
	err = render.WriteOBJ(failWriter{}, m)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
}
