package render

import (
	"errors"
	"io"

	"github.com/chewxy/math32"
	"github.com/soypat/glgl/math/ms3"
	"github.com/soypat/mcubes"
	"github.com/soypat/mcubes/internal/d3"
)

// BoundedField is a scalar field whose surface lies within Bounds.
type BoundedField interface {
	mcubes.ContinuousField
	Bounds() ms3.Box
}

// octree renders using marching cubes with octree space sampling.
type octree struct {
	dc        dc3
	todo      []cube
	unwritten triangle3Buffer
	scratch   []ms3.Triangle
}

type cube struct {
	mcubes.V3i      // origin of cube in half-cube units
	n          uint // level of cube, side = 1 << n
}

// NewOctreeRenderer returns a marching cubes Renderer that only tessellates
// cubes near the surface of s. The longest axis of the bounding box is
// split into meshCells cubes.
//
// Cubes are discarded when the field at their center exceeds their half
// diagonal, so s must not overestimate the distance to its surface.
// Distance shapes and their unions and intersections qualify. The
// implicit sphere does not.
func NewOctreeRenderer(s BoundedField, meshCells int) (Renderer, error) {
	if s == nil {
		return nil, errors.New("nil field")
	} else if meshCells < 2 {
		return nil, errors.New("meshCells must be 2 or larger")
	}
	// Scale the bounding box about the center to make sure the boundaries
	// aren't on the object surface.
	bb := s.Bounds().ScaleCentered(d3.Elem(1.01))
	longAxis := bb.Size().Max()
	if longAxis <= 0 {
		return nil, errors.New("empty field bounds")
	}
	// Cubes are tested for emptiness at their center so the
	// level 0 cube is half a mesh cell.
	resolution := 0.5 * longAxis / float32(meshCells)
	levels := uint(math32.Ceil(math32.Log2(longAxis/resolution))) + 1
	if levels >= 32 {
		return nil, errors.New("too many octree levels")
	}
	return &octree{
		dc:        *newDc3(s, bb.Min, resolution, levels),
		todo:      []cube{{n: levels - 1}}, // process the octree, start at the top level
		unwritten: triangle3Buffer{buf: make([]ms3.Triangle, 0, marchingCubesMaxTriangles)},
		scratch:   make([]ms3.Triangle, 0, marchingCubesMaxTriangles),
	}, nil
}

// ReadTriangles writes triangles rendered from the model into the argument buffer.
// returns number of triangles written and an error if present.
func (oc *octree) ReadTriangles(dst []ms3.Triangle) (n int, err error) {
	if len(dst) == 0 {
		panic("cannot write to empty triangle slice")
	}
	if oc.unwritten.Len() > 0 {
		n += oc.unwritten.Read(dst[n:])
		if n == len(dst) {
			return n, nil
		}
	}
	if len(oc.todo) == 0 && oc.unwritten.Len() == 0 {
		// Done rendering model.
		return n, io.EOF
	}
	n += oc.readTriangles(dst[n:])
	return n, nil
}

// readTriangles processes queued cubes until dst is full or the queue is
// exhausted and returns the number of triangles written.
func (oc *octree) readTriangles(dst []ms3.Triangle) (n int) {
	cubesProcessed := 0
	var newCubes []cube
	for _, c := range oc.todo {
		if n == len(dst) {
			break
		}
		cubesProcessed++
		if c.n > 1 {
			newCubes = oc.subdivide(newCubes, c)
			continue
		}
		oc.scratch = oc.tessellate(oc.scratch[:0], c)
		nc := copy(dst[n:], oc.scratch)
		n += nc
		if nc < len(oc.scratch) {
			// Not enough room in buffer for all the cube's triangles.
			oc.unwritten.Write(oc.scratch[nc:])
			break
		}
	}
	oc.todo = append(oc.todo, newCubes...)
	oc.todo = oc.todo[cubesProcessed:]
	return n
}

// tessellate appends the triangles of a base level cube to dst.
func (oc *octree) tessellate(dst []ms3.Triangle, c cube) []ms3.Triangle {
	var p [8]ms3.Vec
	var f [8]float32
	for i, off := range octreeCorners {
		p[i], f[i] = oc.dc.Evaluate(c.Add(off))
	}
	m := mcubes.TessellateCorners(p, f)
	return m.AppendTriangles3(dst)
}

// subdivide appends the non empty sub cubes of c to dst.
func (oc *octree) subdivide(dst []cube, c cube) []cube {
	n := c.n - 1
	s := 1 << n
	for _, off := range octreeCorners {
		// Corner offsets are in units of 2.
		candidate := cube{V3i: c.Add(mcubes.V3i{off[0] / 2 * s, off[1] / 2 * s, off[2] / 2 * s}), n: n}
		if !oc.dc.IsEmpty(&candidate) {
			dst = append(dst, candidate)
		}
	}
	return dst
}

// octreeCorners are the corner offsets of a base level cube in half-cube
// units, in marching cubes corner order.
var octreeCorners = [8]mcubes.V3i{
	{0, 0, 0}, {2, 0, 0}, {2, 0, 2}, {0, 0, 2},
	{0, 2, 0}, {2, 2, 0}, {2, 2, 2}, {0, 2, 2},
}

// dc3 implements a 3 dimensional distance cache. evaluates the field via a
// distance cache to avoid repeated evaluations of shared corners.
type dc3 struct {
	cache      map[mcubes.V3i]float32 // cache of distances
	origin     ms3.Vec                // origin of the overall bounding cube
	resolution float32                // size of smallest octree cube
	hdiag      []float32              // lookup table of cube half diagonals
	s          mcubes.ContinuousField
}

func newDc3(s mcubes.ContinuousField, origin ms3.Vec, resolution float32, n uint) *dc3 {
	dc := dc3{
		origin:     origin,
		resolution: resolution,
		hdiag:      make([]float32, n),
		s:          s,
		cache:      make(map[mcubes.V3i]float32),
	}
	// build a lut for cube half diagonal lengths
	for i := range dc.hdiag {
		si := float32(int(1)<<uint(i)) * dc.resolution
		dc.hdiag[i] = 0.5 * math32.Sqrt(3*si*si)
	}
	return &dc
}

// Evaluate returns the position of the integer coordinate vi and the field
// value there.
func (dc *dc3) Evaluate(vi mcubes.V3i) (ms3.Vec, float32) {
	v := ms3.Add(dc.origin, ms3.Scale(dc.resolution, vi.ToVec()))
	if dist, found := dc.cache[vi]; found {
		return v, dist
	}
	dist := dc.s.Evaluate(v.X, v.Y, v.Z)
	dc.cache[vi] = dist
	return v, dist
}

// IsEmpty returns true if the cube contains no surface.
func (dc *dc3) IsEmpty(c *cube) bool {
	// evaluate the field at the center of the cube
	s := 1 << (c.n - 1) // half side
	_, d := dc.Evaluate(c.AddScalar(s))
	// compare to the center/corner distance
	return math32.Abs(d) >= dc.hdiag[c.n]
}

// evaluations returns the number of distinct field evaluations so far.
func (dc *dc3) evaluations() int { return len(dc.cache) }
