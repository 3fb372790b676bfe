// Package render streams the triangles of a marching cubes surface and
// writes them to STL files.
package render

import (
	"errors"
	"io"

	"github.com/soypat/glgl/math/ms3"
	"github.com/soypat/mcubes"
)

// Renderer streams triangles into dst. It returns io.EOF once the model
// has been fully read.
type Renderer interface {
	ReadTriangles(dst []ms3.Triangle) (int, error)
}

// uniform walks the cubes of a grid in assembly order, x fastest, then y,
// then z, tessellating one cube at a time.
type uniform struct {
	grid      *mcubes.Grid
	cubes     mcubes.V3i
	next      mcubes.V3i // next cube to tessellate
	scratch   []ms3.Triangle
	unwritten triangle3Buffer
	// Statistics.
	triangles int // triangles tessellated
	processed int // cubes visited
}

// NewUniformRenderer samples field over the uniform grid of cubeCount cubes
// spanning bounds and returns a Renderer over its surface. The triangles
// read are those of mcubes.CreateMesh with the same arguments, in the same
// order. A zero cube count on any axis yields an empty model.
func NewUniformRenderer(field mcubes.ContinuousField, bounds ms3.Box, cubeCount mcubes.V3i) (Renderer, error) {
	if field == nil {
		return nil, errors.New("nil field")
	} else if cubeCount[0] < 0 || cubeCount[1] < 0 || cubeCount[2] < 0 {
		return nil, errors.New("negative cube count")
	} else if cubeCount[0] == 0 || cubeCount[1] == 0 || cubeCount[2] == 0 {
		return &uniform{}, nil
	}
	return newUniform(mcubes.NewGrid(field, bounds.Min, bounds.Max, cubeCount)), nil
}

// NewGridRenderer returns a Renderer over the surface of an already
// sampled grid.
func NewGridRenderer(g *mcubes.Grid) Renderer {
	if g == nil {
		panic("nil grid")
	}
	return newUniform(g)
}

func newUniform(g *mcubes.Grid) *uniform {
	return &uniform{
		grid:      g,
		cubes:     g.CubeCount(),
		scratch:   make([]ms3.Triangle, 0, marchingCubesMaxTriangles),
		unwritten: triangle3Buffer{buf: make([]ms3.Triangle, 0, marchingCubesMaxTriangles)},
	}
}

// ReadTriangles writes triangles rendered from the model into the argument buffer.
// returns number of triangles written and an error if present.
func (u *uniform) ReadTriangles(dst []ms3.Triangle) (n int, err error) {
	if len(dst) == 0 {
		panic("cannot write to empty triangle slice")
	}
	if u.unwritten.Len() > 0 {
		n += u.unwritten.Read(dst[n:])
		if n == len(dst) {
			return n, nil
		}
	}
	if u.done() && u.unwritten.Len() == 0 {
		return n, io.EOF
	}
	n += u.readTriangles(dst[n:])
	return n, nil
}

func (u *uniform) done() bool {
	return u.grid == nil || u.next[2] >= u.cubes[2]
}

func (u *uniform) readTriangles(dst []ms3.Triangle) (n int) {
	for n < len(dst) && !u.done() {
		x, y, z := u.next[0], u.next[1], u.next[2]
		u.advance()
		m := mcubes.TessellateCorners(u.grid.Cube(x, y, z))
		u.processed++
		if m.IsEmpty() {
			continue
		}
		u.scratch = m.AppendTriangles3(u.scratch[:0])
		u.triangles += len(u.scratch)
		nc := copy(dst[n:], u.scratch)
		n += nc
		if nc < len(u.scratch) {
			// Not enough room in buffer for all the cube's triangles.
			u.unwritten.Write(u.scratch[nc:])
			break
		}
	}
	return n
}

func (u *uniform) advance() {
	u.next[0]++
	if u.next[0] < u.cubes[0] {
		return
	}
	u.next[0] = 0
	u.next[1]++
	if u.next[1] < u.cubes[1] {
		return
	}
	u.next[1] = 0
	u.next[2]++
}

// marchingCubesMaxTriangles is the most triangles a single cube yields.
const marchingCubesMaxTriangles = 5
