package render

import (
	"bufio"
	"fmt"
	"io"

	"github.com/pkg/errors"
)

// WriteOBJ writes m as Wavefront OBJ text: one "v x y z" line per vertex
// followed by one "f a b c" line per face with 1-based indices.
func WriteOBJ(w io.Writer, m *Mesh) error {
	bw := bufio.NewWriter(w)
	for _, v := range m.Vertices {
		if _, err := fmt.Fprintf(bw, "v %.6f %.6f %.6f\n", v.X, v.Y, v.Z); err != nil {
			return errors.Wrap(err, "write OBJ vertex")
		}
	}
	for _, f := range m.Faces {
		if _, err := fmt.Fprintf(bw, "f %d %d %d\n", f[0]+1, f[1]+1, f[2]+1); err != nil {
			return errors.Wrap(err, "write OBJ face")
		}
	}
	return errors.Wrap(bw.Flush(), "flush OBJ")
}
