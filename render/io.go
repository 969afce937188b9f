package render

import (
	"io"

	"gonum.org/v1/gonum/spatial/r3"
)

// RenderAll reads a Renderer to exhaustion and returns every triangle read.
// Renderers may return their final batch along with io.EOF, so triangles are
// kept before the error is inspected. io.EOF itself is not returned.
func RenderAll(r Renderer) ([]r3.Triangle, error) {
	result := make([]r3.Triangle, 0, 1<<12)
	buf := make([]r3.Triangle, 1024)
	for {
		nt, err := r.ReadTriangles(buf)
		result = append(result, buf[:nt]...)
		switch {
		case err == io.EOF:
			return result, nil
		case err != nil:
			return result, err
		}
	}
}

// triangle3Buffer holds the triangles of a cube that did not fit in the
// caller's buffer until the next ReadTriangles call.
type triangle3Buffer struct {
	buf []r3.Triangle
}

// Read drains up to len(t) buffered triangles into t.
func (b *triangle3Buffer) Read(t []r3.Triangle) int {
	n := copy(t, b.buf)
	b.buf = b.buf[n:]
	return n
}

// Write queues t after any triangles already buffered.
func (b *triangle3Buffer) Write(t []r3.Triangle) int {
	b.buf = append(b.buf, t...)
	return len(t)
}

func (b *triangle3Buffer) Len() int { return len(b.buf) }
