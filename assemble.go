package mcubes

import "github.com/soypat/glgl/math/ms3"

// CreateMesh extracts the zero isosurface of field inside the box
// [min, max] using a regular grid of cubeCount cubes. The field is sampled
// once per grid corner before tessellation begins.
//
// A cubeCount with a zero axis yields an empty mesh. Bounds where min is
// not strictly less than max on every axis are not rejected and produce
// inverted or flat geometry. CreateMesh panics on negative cube counts.
func CreateMesh(field ContinuousField, min, max ms3.Vec, cubeCount V3i) Mesh {
	if cubeCount[0] < 0 || cubeCount[1] < 0 || cubeCount[2] < 0 {
		panic("negative cube count")
	}
	if cubeCount.anyLTE(0) {
		return Mesh{}
	}
	return GridMesh(NewGrid(field, min, max, cubeCount))
}

// GridMesh tessellates every cube of g and concatenates the result into a
// single mesh. Cubes are visited with x varying fastest, then y, then z,
// so the output is the same for the same grid.
func GridMesh(g *Grid) Mesh {
	var m Mesh
	n := g.CubeCount()
	for z := 0; z < n[2]; z++ {
		for y := 0; y < n[1]; y++ {
			for x := 0; x < n[0]; x++ {
				p, f := g.Cube(x, y, z)
				appendCube(&m, &p, &f)
			}
		}
	}
	return m
}
