package render

import (
	"gonum.org/v1/gonum/spatial/r3"
)

// Renderer streams the triangles of a surface. ReadTriangles fills dst and
// returns the number of triangles written; it returns io.EOF once every
// triangle has been read.
type Renderer interface {
	ReadTriangles(t []r3.Triangle) (int, error)
}
