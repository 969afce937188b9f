package render

import (
	"math"
	"math/bits"
	"testing"

	"github.com/soypat/isosurface"
	"github.com/soypat/isosurface/internal/d3"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestMarchingCubes(t *testing.T) {
	max := 0
	for _, tri := range mcTriangleTable {
		n := 0
		for n < len(tri) && tri[n] >= 0 {
			n++
		}
		if n%3 != 0 {
			t.Errorf("triangle list length %d not multiple of 3", n)
		}
		if n > max {
			max = n
		}
	}
	got := max / 3
	if got != marchingCubesMaxTriangles {
		t.Errorf("mismatch marching cubes max triangles. got %d. want %d", got, marchingCubesMaxTriangles)
	}
}

func TestMarchingCubesEdgeTable(t *testing.T) {
	for index := 0; index < 256; index++ {
		// An edge is crossed when exactly one of its corners is inside.
		var want uint16
		for e, pair := range mcEdgeCorners {
			a := index>>pair[0]&1 != 0
			b := index>>pair[1]&1 != 0
			if a != b {
				want |= 1 << e
			}
		}
		if mcEdgeTable[index] != want {
			t.Errorf("edge table[%d]=%#03x, want %#03x", index, mcEdgeTable[index], want)
		}
		if mcEdgeTable[index] != mcEdgeTable[255-index] {
			t.Errorf("edge table not symmetric under complement at %d", index)
		}
		var used uint16
		for _, e := range mcTriangleTable[index] {
			if e < 0 {
				break
			}
			used |= 1 << e
		}
		if used != mcEdgeTable[index] {
			t.Errorf("config %d: triangles use edges %#03x, crossed edges are %#03x", index, used, mcEdgeTable[index])
		}
	}
	if mcEdgeTable[0] != 0 || mcEdgeTable[255] != 0 {
		t.Error("uniform configurations must cross no edges")
	}
	if mcTriangleTable[0][0] != -1 || mcTriangleTable[255][0] != -1 {
		t.Error("uniform configurations must produce no triangles")
	}
}

func TestMarchingCubesEdgeCorners(t *testing.T) {
	for e, pair := range mcEdgeCorners {
		a, b := mcCornerOffsets[pair[0]], mcCornerOffsets[pair[1]]
		diff := 0
		for i := range a {
			if a[i] != b[i] {
				diff++
			}
		}
		if diff != 1 {
			t.Errorf("edge %d joins corners %v and %v which are not adjacent", e, a, b)
		}
	}
}

func TestMCIndex(t *testing.T) {
	for _, test := range []struct {
		values [8]float64
		iso    float64
		want   uint8
	}{
		{values: [8]float64{}, iso: 0, want: 0},
		{values: [8]float64{}, iso: 1, want: 255},
		{values: [8]float64{1, 0, 0, 0, 0, 0, 0, 0}, iso: 0.5, want: 254},
		{values: [8]float64{0, 1, 1, 1, 1, 1, 1, 1}, iso: 0.5, want: 1},
		// Corners exactly at the iso level are outside.
		{values: [8]float64{0.5, 0.5, 0.5, 0.5, 0.5, 0.5, 0.5, 0.4}, iso: 0.5, want: 128},
		{values: [8]float64{math.NaN(), 0, 0, 0, 0, 0, 0, 0}, iso: 0.5, want: 254},
	} {
		got := mcIndex(&test.values, test.iso)
		if got != test.want {
			t.Errorf("mcIndex(%v, %v)=%d, want %d", test.values, test.iso, got, test.want)
		}
	}
}

func TestMCInterpolate(t *testing.T) {
	const eps = DefaultEpsilon
	p1, p2 := r3.Vec{}, r3.Vec{X: 2}
	for _, test := range []struct {
		name   string
		v1, v2 float64
		iso    float64
		want   r3.Vec
	}{
		{name: "midpoint", v1: 0, v2: 1, iso: 0.5, want: r3.Vec{X: 1}},
		{name: "quarter", v1: 0, v2: 1, iso: 0.25, want: r3.Vec{X: 0.5}},
		{name: "descending", v1: 1, v2: 0, iso: 0.25, want: r3.Vec{X: 1.5}},
		{name: "snap p1", v1: 0.5 + eps/2, v2: 0, iso: 0.5, want: p1},
		{name: "snap p2", v1: 0, v2: 0.5 - eps/2, iso: 0.5, want: p2},
		// Snapping to p1 takes priority when both corners are at the iso level.
		{name: "both at iso", v1: 0.5, v2: 0.5, iso: 0.5, want: p1},
		{name: "flat edge", v1: 0.2, v2: 0.2 + eps/2, iso: 0.5, want: p1},
	} {
		got := mcInterpolate(p1, p2, test.v1, test.v2, test.iso, eps)
		if !d3.EqualWithin(got, test.want, 1e-12) {
			t.Errorf("%s: got %v, want %v", test.name, got, test.want)
		}
	}
}

func TestMCInterpolateFinite(t *testing.T) {
	p1, p2 := r3.Vec{X: 1, Y: 2, Z: 3}, r3.Vec{X: 1, Y: 2, Z: 4}
	for _, v := range [][2]float64{
		{0.5, 0.5 + 1e-300},
		{0.49999999, 0.50000001},
		{1e-20, 0},
		{0, math.SmallestNonzeroFloat64},
	} {
		got := mcInterpolate(p1, p2, v[0], v[1], 0.5, DefaultEpsilon)
		if !d3.IsFinite(got) {
			t.Errorf("non finite crossing %v for values %v", got, v)
		}
	}
}

func TestMCToTriangles(t *testing.T) {
	var v [8]float64
	v[0] = 1
	p := mcCorners(isosurface.V3i{}, r3.Vec{X: 1, Y: 1, Z: 1})
	var dst [marchingCubesMaxTriangles]r3.Triangle
	n := mcToTriangles(dst[:], p, v, 0.5, DefaultEpsilon)
	if n != 1 {
		t.Fatalf("got %d triangles, want 1", n)
	}
	want := r3.Triangle{{X: 0.5}, {Y: 0.5}, {Z: 0.5}}
	for i := range want {
		if dst[0][i] != want[i] {
			t.Errorf("vertex %d: got %v, want %v", i, dst[0][i], want[i])
		}
	}
	// Face normal points away from the high corner.
	if n := dst[0].Normal(); r3.Dot(n, r3.Vec{X: 1, Y: 1, Z: 1}) <= 0 {
		t.Errorf("normal %v points toward the inside corner", n)
	}
	// Every configuration with a crossed edge is triangulated.
	for index := 0; index < 256; index++ {
		for i := range v {
			v[i] = float64(index >> i & 1)
		}
		n := mcToTriangles(dst[:], p, v, 0.5, DefaultEpsilon)
		if want := bits.OnesCount16(mcEdgeTable[255-index]); n == 0 && want != 0 {
			t.Errorf("config %d produced no triangles", 255-index)
		}
	}
}
