package render

import (
	"encoding/binary"
	"io"
	"math"

	"github.com/chewxy/math32"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/spatial/r3"
)

const (
	stlTriangleSize = 50
	sizeOfSTLHeader = 84
)

// CopySTL streams the triangles of a Renderer into w as a binary STL and
// returns the number of triangles written. The header is written last, once
// the triangle count is known.
func CopySTL(w io.WriteSeeker, r Renderer) (int, error) {
	start, err := w.Seek(0, io.SeekCurrent)
	if err != nil {
		return 0, errors.Wrap(err, "locate STL start")
	}
	if _, err = w.Seek(start+sizeOfSTLHeader, io.SeekStart); err != nil {
		return 0, errors.Wrap(err, "seek past STL header")
	}
	rd := &stlReader{r: r}
	n, err := io.CopyBuffer(w, rd, make([]byte, stlTriangleSize*trianglesInBuffer))
	nt := int(n / stlTriangleSize)
	if err != nil {
		return nt, errors.Wrap(err, "write STL triangles")
	}
	if _, err = w.Seek(start, io.SeekStart); err != nil {
		return nt, errors.Wrap(err, "seek to STL header")
	}
	header := stlHeader{Count: uint32(nt)}
	if err = binary.Write(w, binary.LittleEndian, &header); err != nil {
		return nt, errors.Wrap(err, "write STL header")
	}
	_, err = w.Seek(start+sizeOfSTLHeader+n, io.SeekStart)
	return nt, errors.Wrap(err, "seek to STL end")
}

// WriteSTL writes model triangles to a writer in binary STL file format.
// Triangles with no area are written with a zero normal.
func WriteSTL(w io.Writer, model []r3.Triangle) error {
	if len(model) == 0 {
		return errors.New("empty triangle slice")
	}
	header := stlHeader{Count: uint32(len(model))}
	if err := binary.Write(w, binary.LittleEndian, &header); err != nil {
		return errors.Wrap(err, "write STL header")
	}
	var b [stlTriangleSize]byte
	for i, triangle := range model {
		newSTLTriangle(triangle).put(b[:])
		if _, err := w.Write(b[:]); err != nil {
			return errors.Wrapf(err, "write STL triangle %d", i)
		}
	}
	return nil
}

// ReadSTL decodes a binary STL. Triangles whose stored normal disagrees with the
// winding of their vertices are returned alongside a non-nil error.
func ReadSTL(r io.Reader) (output []r3.Triangle, readErr error) {
	var header stlHeader
	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) {
			return nil, errors.New("encountered EOF while reading STL header")
		}
		return nil, errors.Wrap(err, "STL header read failed")
	}
	if header.Count == 0 {
		return nil, errors.New("STL header indicates 0 triangles present")
	}
	var (
		buf            [stlTriangleSize]byte
		d              stlTriangle
		i              int
		normMismatches int
	)
	defer func() {
		if readErr != nil && !errors.Is(readErr, errCalculatedNormalMismatch) {
			readErr = errors.Wrapf(readErr, "%d/%d STL triangles read", i+1, header.Count)
		}
	}()
	output = make([]r3.Triangle, 0, min(int(header.Count), 1<<16))
	for i = 0; i < int(header.Count); i++ {
		if _, err := io.ReadFull(r, buf[:]); err != nil {
			return nil, err
		}
		d.get(buf[:])
		if err := d.validate(); err != nil {
			if !errors.Is(err, errCalculatedNormalMismatch) {
				return nil, err
			}
			normMismatches++
			if normMismatches > 10_000 {
				// This may be valid output, so we return the triangles.
				return output, errors.Errorf("got too many normal vector mismatches (%d)", normMismatches)
			}
			readErr = err
		}
		output = append(output, d.toTriangle())
	}
	return output, readErr
}

// stlHeader defines the STL file header.
type stlHeader struct {
	_     [80]uint8 // Header
	Count uint32    // Number of triangles
}

const trianglesInBuffer = 1 << 10

// stlReader encodes the triangles of a Renderer as STL triangle records.
type stlReader struct {
	r   Renderer
	buf [trianglesInBuffer]r3.Triangle
}

func (w *stlReader) Read(b []byte) (int, error) {
	ntMax := min(len(b)/stlTriangleSize, len(w.buf))
	if ntMax == 0 {
		return 0, errors.New("stlReader requires at least 50 bytes to write a single triangle")
	}
	var (
		err error
		it  int // Number of triangles written to byte buffer
		nt  int // number of triangles read during ReadTriangles
	)
	for it < ntMax && err == nil {
		nt, err = w.r.ReadTriangles(w.buf[:ntMax-it])
		for _, triangle := range w.buf[:nt] {
			newSTLTriangle(triangle).put(b[it*stlTriangleSize:])
			it++
		}
	}
	return it * stlTriangleSize, err
}

// stlTriangle defines the triangle data within an STL file.
type stlTriangle struct {
	Normal  [3]float32
	Vertex1 [3]float32
	Vertex2 [3]float32
	Vertex3 [3]float32
	_       uint16 // Attribute byte count
}

func newSTLTriangle(t r3.Triangle) (d stlTriangle) {
	n := t.Normal()
	if r3.Norm2(n) > 0 {
		n = r3.Unit(n)
	}
	d.Normal = f32From3(n)
	d.Vertex1 = f32From3(t[0])
	d.Vertex2 = f32From3(t[1])
	d.Vertex3 = f32From3(t[2])
	return d
}

func (t stlTriangle) put(b []byte) {
	if len(b) < stlTriangleSize {
		panic("need length 50 to marshal stlTriangle")
	}
	put3F32(b, t.Normal)
	put3F32(b[12:], t.Vertex1)
	put3F32(b[24:], t.Vertex2)
	put3F32(b[36:], t.Vertex3)
	binary.LittleEndian.PutUint16(b[48:], 0)
}

func (t *stlTriangle) get(b []byte) {
	if len(b) < stlTriangleSize {
		panic("need length 50 to unmarshal stlTriangle")
	}
	get3F32(b, &t.Normal)
	get3F32(b[12:], &t.Vertex1)
	get3F32(b[24:], &t.Vertex2)
	get3F32(b[36:], &t.Vertex3)
	// no attributes supported yet.
}

func put3F32(b []byte, f [3]float32) {
	_ = b[11] // early bounds check
	binary.LittleEndian.PutUint32(b, math.Float32bits(f[0]))
	binary.LittleEndian.PutUint32(b[4:], math.Float32bits(f[1]))
	binary.LittleEndian.PutUint32(b[8:], math.Float32bits(f[2]))
}

func get3F32(b []byte, f *[3]float32) {
	_ = b[11] // early bounds check
	f[0] = math.Float32frombits(binary.LittleEndian.Uint32(b))
	f[1] = math.Float32frombits(binary.LittleEndian.Uint32(b[4:]))
	f[2] = math.Float32frombits(binary.LittleEndian.Uint32(b[8:]))
}

func bad3F32(f [3]float32) bool {
	return math32.IsNaN(f[0]) || math32.IsInf(f[0], 0) ||
		math32.IsNaN(f[1]) || math32.IsInf(f[1], 0) ||
		math32.IsNaN(f[2]) || math32.IsInf(f[2], 0)
}

var errCalculatedNormalMismatch = errors.New("triangle normal not approximately equal to calculated normal from vertices. Ignore this error if model is OK")

func (t stlTriangle) validate() error {
	const epsilon = 1e-12
	const normTol = 5e-2
	if bad3F32(t.Normal) {
		return errors.New("inf/NaN STL triangle normal")
	}
	if bad3F32(t.Vertex1) || bad3F32(t.Vertex2) || bad3F32(t.Vertex3) {
		return errors.New("inf/NaN STL triangle vertex")
	}
	if t.degenerate(epsilon) {
		return errors.New("triangle is degenerate")
	}
	calcNormal := t.normalFromVertices()
	calcNormalNeg := [3]float32{-calcNormal[0], -calcNormal[1], -calcNormal[2]}
	if !equalWithin3F32(calcNormal, t.Normal, normTol) && !equalWithin3F32(calcNormalNeg, t.Normal, normTol) {
		return errCalculatedNormalMismatch // sometimes may fail
	}
	return nil
}

func f32From3(v r3.Vec) [3]float32 {
	return [3]float32{float32(v.X), float32(v.Y), float32(v.Z)}
}

func r3From3F32(f [3]float32) r3.Vec {
	return r3.Vec{X: float64(f[0]), Y: float64(f[1]), Z: float64(f[2])}
}

func (t stlTriangle) normalFromVertices() [3]float32 {
	v1 := r3.Scale(10, r3From3F32(t.Vertex1))
	v2 := r3.Scale(10, r3From3F32(t.Vertex2))
	v3 := r3.Scale(10, r3From3F32(t.Vertex3))
	n := r3.Unit(r3.Cross(r3.Sub(v2, v1), r3.Sub(v3, v1)))
	return f32From3(n)
}

// degenerate returns true if two vertices of the triangle coincide.
func (t stlTriangle) degenerate(tol float32) bool {
	return equalWithin3F32(t.Vertex1, t.Vertex2, tol) ||
		equalWithin3F32(t.Vertex2, t.Vertex3, tol) ||
		equalWithin3F32(t.Vertex3, t.Vertex1, tol)
}

func equalWithin3F32(a, b [3]float32, tol float32) bool {
	return math32.Abs(a[0]-b[0]) <= tol &&
		math32.Abs(a[1]-b[1]) <= tol &&
		math32.Abs(a[2]-b[2]) <= tol
}

func (d stlTriangle) toTriangle() r3.Triangle {
	return r3.Triangle{
		r3From3F32(d.Vertex1),
		r3From3F32(d.Vertex2),
		r3From3F32(d.Vertex3),
	}
}
