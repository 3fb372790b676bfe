package mcubes

import (
	"errors"
	"fmt"

	"github.com/chewxy/math32"
	"github.com/soypat/glgl/math/ms3"
)

// ContinuousField is a scalar field that can be evaluated at any point in
// space. Negative values are inside the volume, zero and positive values
// are outside. Implementations must be safe for concurrent use.
type ContinuousField interface {
	Evaluate(x, y, z float32) float32
}

// FieldFunc adapts an ordinary function to the ContinuousField interface.
type FieldFunc func(x, y, z float32) float32

// Evaluate calls f(x, y, z).
func (f FieldFunc) Evaluate(x, y, z float32) float32 { return f(x, y, z) }

// Grid is a scalar field precomputed on the corners of a regular grid of
// cubes. A Grid is read only after construction and may be shared between
// goroutines.
type Grid struct {
	// samples stored with x varying fastest, then y, then z.
	samples []float32
	corners V3i
	bounds  ms3.Box
}

// NewGrid samples f at the corners of a grid of cubeCount cubes spanning
// the box [min, max], both ends included. Corner i on an axis is placed at
//
//	min + i*(max-min)/cubeCount
//
// NewGrid panics if any axis of cubeCount is smaller than 1.
func NewGrid(f ContinuousField, min, max ms3.Vec, cubeCount V3i) *Grid {
	if cubeCount.anyLTE(0) {
		panic("cube count must be positive on every axis")
	}
	g := &Grid{
		corners: cubeCount.AddScalar(1),
		bounds:  ms3.Box{Min: min, Max: max},
	}
	g.samples = make([]float32, g.corners.Prod())
	i := 0
	for z := 0; z < g.corners[2]; z++ {
		for y := 0; y < g.corners[1]; y++ {
			for x := 0; x < g.corners[0]; x++ {
				p := g.CornerPosition(x, y, z)
				g.samples[i] = f.Evaluate(p.X, p.Y, p.Z)
				i++
			}
		}
	}
	return g
}

// NewGridFromSamples creates a grid from raw samples indexed as
// samples[z][y][x]. The grid corners are spread evenly over bounds.
// Every axis needs at least 2 samples and all rows must be the same length.
func NewGridFromSamples(samples [][][]float32, bounds ms3.Box) (*Grid, error) {
	nz := len(samples)
	if nz < 2 {
		return nil, errors.New("need at least 2 z planes of samples")
	}
	ny := len(samples[0])
	if ny < 2 {
		return nil, errors.New("need at least 2 y rows of samples")
	}
	nx := len(samples[0][0])
	if nx < 2 {
		return nil, errors.New("need at least 2 samples per x row")
	}
	g := &Grid{
		corners: V3i{nx, ny, nz},
		bounds:  bounds,
		samples: make([]float32, 0, nx*ny*nz),
	}
	for z, plane := range samples {
		if len(plane) != ny {
			return nil, fmt.Errorf("z plane %d has %d rows, want %d", z, len(plane), ny)
		}
		for y, row := range plane {
			if len(row) != nx {
				return nil, fmt.Errorf("row (y=%d, z=%d) has %d samples, want %d", y, z, len(row), nx)
			}
			g.samples = append(g.samples, row...)
		}
	}
	return g, nil
}

// CornerCount returns the number of sampled corners along each axis.
func (g *Grid) CornerCount() V3i { return g.corners }

// CubeCount returns the number of cubes along each axis, which is always
// one less than the corner count.
func (g *Grid) CubeCount() V3i { return g.corners.AddScalar(-1) }

// Bounds returns the box spanned by the grid's corners.
func (g *Grid) Bounds() ms3.Box { return g.bounds }

// Sample returns the sample at integer corner (x, y, z). It panics if the
// corner is outside the grid.
func (g *Grid) Sample(x, y, z int) float32 {
	if uint(x) >= uint(g.corners[0]) || uint(y) >= uint(g.corners[1]) || uint(z) >= uint(g.corners[2]) {
		panic("grid corner out of range")
	}
	return g.samples[x+g.corners[0]*(y+g.corners[1]*z)]
}

// CornerPosition returns the position in space of integer corner (x, y, z).
func (g *Grid) CornerPosition(x, y, z int) ms3.Vec {
	n := g.CubeCount()
	min, size := g.bounds.Min, g.bounds.Size()
	return ms3.Vec{
		X: min.X + float32(x)*size.X/float32(n[0]),
		Y: min.Y + float32(y)*size.Y/float32(n[1]),
		Z: min.Z + float32(z)*size.Z/float32(n[2]),
	}
}

// Cube returns the corner positions and samples of cube (x, y, z) in the
// order expected by TessellateCorners. Corner (cx, cy, cz) of the cube is
// grid corner (x+cx, y+cy, z+cz).
func (g *Grid) Cube(x, y, z int) (p [8]ms3.Vec, f [8]float32) {
	for i, c := range mcCorners {
		cx, cy, cz := x+c[0], y+c[1], z+c[2]
		p[i] = g.CornerPosition(cx, cy, cz)
		f[i] = g.Sample(cx, cy, cz)
	}
	return p, f
}

// Evaluate returns the trilinear interpolation of the grid samples at
// (x, y, z). Points outside the grid bounds are clamped onto them, which
// makes a Grid usable as a ContinuousField for resampling.
func (g *Grid) Evaluate(x, y, z float32) float32 {
	n := g.CubeCount()
	min, size := g.bounds.Min, g.bounds.Size()
	ix, tx := cellCoord(x-min.X, size.X, n[0])
	iy, ty := cellCoord(y-min.Y, size.Y, n[1])
	iz, tz := cellCoord(z-min.Z, size.Z, n[2])
	// Interpolate along x on the four cube edges, then y, then z.
	c00 := lerp(g.Sample(ix, iy, iz), g.Sample(ix+1, iy, iz), tx)
	c10 := lerp(g.Sample(ix, iy+1, iz), g.Sample(ix+1, iy+1, iz), tx)
	c01 := lerp(g.Sample(ix, iy, iz+1), g.Sample(ix+1, iy, iz+1), tx)
	c11 := lerp(g.Sample(ix, iy+1, iz+1), g.Sample(ix+1, iy+1, iz+1), tx)
	c0 := lerp(c00, c10, ty)
	c1 := lerp(c01, c11, ty)
	return lerp(c0, c1, tz)
}

// cellCoord returns the cell index along an axis of n cells spanning size
// and the fractional position of offset within that cell.
func cellCoord(offset, size float32, n int) (int, float32) {
	if size <= 0 {
		return 0, 0
	}
	u := offset / size * float32(n)
	u = math32.Max(0, math32.Min(u, float32(n)))
	i := int(math32.Floor(u))
	if i >= n {
		i = n - 1
	}
	return i, u - float32(i)
}

func lerp(a, b, t float32) float32 {
	return a + t*(b-a)
}
