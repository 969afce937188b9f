package render

import (
	"github.com/chewxy/math32"
	"github.com/soypat/glgl/math/ms3"
	"github.com/soypat/isosurface/internal/d3"
	"github.com/unixpickle/model3d/model3d"
	"gonum.org/v1/gonum/spatial/r3"
)

// Mesh is an indexed triangle mesh. Faces hold 0-based indices into Vertices
// and are wound so that their right-hand normal points toward decreasing
// field values.
type Mesh struct {
	Vertices []r3.Vec
	Faces    [][3]uint32
}

// Triangles returns the positional triangles of the mesh in face order.
func (m *Mesh) Triangles() []r3.Triangle {
	t := make([]r3.Triangle, len(m.Faces))
	for i, f := range m.Faces {
		t[i] = r3.Triangle{m.Vertices[f[0]], m.Vertices[f[1]], m.Vertices[f[2]]}
	}
	return t
}

// Bounds returns the axis aligned box enclosing every vertex. An empty mesh
// has a zero box.
func (m *Mesh) Bounds() r3.Box {
	if len(m.Vertices) == 0 {
		return r3.Box{}
	}
	bb := d3.Box{Min: m.Vertices[0], Max: m.Vertices[0]}
	for _, v := range m.Vertices[1:] {
		bb = bb.Include(v)
	}
	return r3.Box(bb)
}

// Scale multiplies every vertex coordinate by k.
func (m *Mesh) Scale(k float64) {
	for i := range m.Vertices {
		m.Vertices[i] = r3.Scale(k, m.Vertices[i])
	}
}

// Translate displaces every vertex by v.
func (m *Mesh) Translate(v r3.Vec) {
	for i := range m.Vertices {
		m.Vertices[i] = r3.Add(m.Vertices[i], v)
	}
}

// appendMesh appends the vertices and faces of src, offsetting its face
// indices by the current vertex count.
func (m *Mesh) appendMesh(src *Mesh) {
	offset := uint32(len(m.Vertices))
	m.Vertices = append(m.Vertices, src.Vertices...)
	for _, f := range src.Faces {
		m.Faces = append(m.Faces, [3]uint32{f[0] + offset, f[1] + offset, f[2] + offset})
	}
}

// Buffers flattens the mesh into float32 vertex and normal arrays (3 floats
// per vertex) and a uint32 index array (3 per face), the layout expected by
// GPU vertex buffers. Normals are area weighted averages of the adjacent face
// normals.
func (m *Mesh) Buffers() (vertices, normals []float32, indices []uint32) {
	vertices = make([]float32, 3*len(m.Vertices))
	normals = make([]float32, 3*len(m.Vertices))
	indices = make([]uint32, 0, 3*len(m.Faces))
	for i, v := range m.Vertices {
		vertices[3*i] = float32(v.X)
		vertices[3*i+1] = float32(v.Y)
		vertices[3*i+2] = float32(v.Z)
	}
	for _, f := range m.Faces {
		n := r3.Triangle{m.Vertices[f[0]], m.Vertices[f[1]], m.Vertices[f[2]]}.Normal()
		for _, vi := range f {
			normals[3*vi] += float32(n.X)
			normals[3*vi+1] += float32(n.Y)
			normals[3*vi+2] += float32(n.Z)
		}
		indices = append(indices, f[0], f[1], f[2])
	}
	for i := 0; i < len(normals); i += 3 {
		nx, ny, nz := normals[i], normals[i+1], normals[i+2]
		norm := math32.Sqrt(nx*nx + ny*ny + nz*nz)
		if norm == 0 {
			continue
		}
		normals[i] = nx / norm
		normals[i+1] = ny / norm
		normals[i+2] = nz / norm
	}
	return vertices, normals, indices
}

// Triangles32 returns the triangles of the mesh in single precision.
func (m *Mesh) Triangles32() []ms3.Triangle {
	t := make([]ms3.Triangle, len(m.Faces))
	for i, f := range m.Faces {
		for j, vi := range f {
			v := m.Vertices[vi]
			t[i][j] = ms3.Vec{X: float32(v.X), Y: float32(v.Y), Z: float32(v.Z)}
		}
	}
	return t
}

// Model3D converts the mesh to a model3d mesh for repair and analysis.
// model3d indexes vertices by position, so cube scoped duplicates merge.
func (m *Mesh) Model3D() *model3d.Mesh {
	tris := make([]*model3d.Triangle, len(m.Faces))
	for i, f := range m.Faces {
		var t model3d.Triangle
		for j, vi := range f {
			v := m.Vertices[vi]
			t[j] = model3d.Coord3D{X: v.X, Y: v.Y, Z: v.Z}
		}
		tris[i] = &t
	}
	return model3d.NewMeshTriangles(tris)
}
