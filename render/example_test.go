package render_test

import (
	"fmt"
	"os"

	"github.com/soypat/isosurface"
	"github.com/soypat/isosurface/render"
	"github.com/unixpickle/essentials"
)

func ExampleMarchingCubes() {
	g := isosurface.NewGrid(2, 2, 2)
	g.Set(0, 0, 0, 1)
	m, err := render.MarchingCubes(g, render.DefaultConfig())
	essentials.Must(err)
	fmt.Println(len(m.Vertices), "vertices", m.Faces)
	essentials.Must(render.WriteOBJ(os.Stdout, m))
	// Output:
	// 3 vertices [[0 1 2]]
	// v 0.500000 0.000000 0.000000
	// v 0.000000 0.500000 0.000000
	// v 0.000000 0.000000 0.500000
	// f 1 2 3
}

func ExampleWeld() {
	g := isosurface.NewGrid(3, 3, 3)
	g.Set(1, 1, 1, 1)
	m, err := render.MarchingCubes(g, render.DefaultConfig())
	essentials.Must(err)
	welded := render.Weld(m, 1e-9)
	fmt.Println(len(m.Vertices), "->", len(welded.Vertices), "vertices")
	fmt.Println(len(welded.Faces), "faces")
	// Output:
	// 24 -> 6 vertices
	// 8 faces
}

func ExampleScan() {
	g := isosurface.NewGrid(3, 3, 3)
	g.Set(1, 1, 1, 1)
	cfg := render.DefaultConfig()
	cfg.Watertight = true
	err := render.Scan(g, cfg, func(c render.CubeMesh) error {
		fmt.Println(c.Cube, "new vertices:", len(c.Vertices), "faces:", len(c.Faces))
		return nil
	})
	essentials.Must(err)
	// Output:
	// [0 0 0] new vertices: 3 faces: 1
	// [0 0 1] new vertices: 1 faces: 1
	// [0 1 0] new vertices: 1 faces: 1
	// [0 1 1] new vertices: 0 faces: 1
	// [1 0 0] new vertices: 1 faces: 1
	// [1 0 1] new vertices: 0 faces: 1
	// [1 1 0] new vertices: 0 faces: 1
	// [1 1 1] new vertices: 0 faces: 1
}
