package mcubes

import (
	"github.com/chewxy/math32"
	"github.com/soypat/glgl/math/ms3"
)

// interpEpsilon is the smallest sample difference along an edge for which
// the crossing point is interpolated. Closer samples pin the crossing to
// the edge's near corner.
const interpEpsilon = 1e-6

// TessellateCorners triangulates a single cube given its 8 corner positions
// p and the field samples f at those corners, ordered as described by the
// corner convention of this package (bottom face y=min first).
// A sample is inside the volume when it is negative.
//
// The returned mesh owns its vertices: every triangle gets three fresh
// vertices. Cubes fully inside or fully outside return an empty mesh.
func TessellateCorners(p [8]ms3.Vec, f [8]float32) Mesh {
	var m Mesh
	appendCube(&m, &p, &f)
	return m
}

// TessellateBox evaluates field at the corners of box and triangulates it.
func TessellateBox(field ContinuousField, box ms3.Box) Mesh {
	var p [8]ms3.Vec
	var f [8]float32
	size := box.Size()
	for i, c := range mcCorners {
		p[i] = ms3.Add(box.Min, ms3.MulElem(c.ToVec(), size))
		f[i] = field.Evaluate(p[i].X, p[i].Y, p[i].Z)
	}
	return TessellateCorners(p, f)
}

// appendCube triangulates the cube and appends the result to dst.
// It returns the number of triangles appended.
func appendCube(dst *Mesh, p *[8]ms3.Vec, f *[8]float32) int {
	cornerMask := CornerMask(*f)
	edges := mcEdgeTable[cornerMask]
	if edges == 0 {
		return 0
	}
	var crossing [12]ms3.Vec
	for i := range crossing {
		crossing[i], _ = edgeIntersection(edges, i, p, f)
	}
	table := mcTriangleTable[cornerMask]
	for i := 0; i < len(table); i += 3 {
		base := len(dst.Vertices)
		dst.Vertices = append(dst.Vertices,
			crossing[table[i]],
			crossing[table[i+1]],
			crossing[table[i+2]],
		)
		dst.Triangles = append(dst.Triangles, Triangle{base, base + 1, base + 2})
	}
	return len(table) / 3
}

// edgeIntersection returns the point where the linear interpolant of the
// samples along edge i crosses zero. It returns false if edge i is not set
// in the edges mask.
func edgeIntersection(edges uint16, i int, p *[8]ms3.Vec, f *[8]float32) (ms3.Vec, bool) {
	if (edges>>i)&1 == 0 {
		return ms3.Vec{}, false
	}
	near, far := mcEdges[i][0], mcEdges[i][1]
	pa, pb := p[near], p[far]
	fa, fb := f[near], f[far]
	if math32.Abs(fa-fb) < interpEpsilon {
		return pa, true
	}
	df := fb - fa
	return ms3.Vec{
		X: pa.X - fa*(pb.X-pa.X)/df,
		Y: pa.Y - fa*(pb.Y-pa.Y)/df,
		Z: pa.Z - fa*(pb.Z-pa.Z)/df,
	}, true
}
