package render

import (
	"errors"
	"math"

	"github.com/soypat/glgl/math/ms3"
	"github.com/soypat/mcubes"
	"github.com/soypat/mcubes/internal/d3"
	"gonum.org/v1/gonum/spatial/kdtree"
	"gonum.org/v1/gonum/spatial/r3"
)

var (
	_ mcubes.ContinuousField = (*KDField)(nil)
	_ kdtree.Interface       = kdTriangles{}
	_ kdtree.Bounder         = kdTriangles{}
)

// kdCandidates is the number of triangles, nearest by centroid, checked
// for the closest surface point.
const kdCandidates = 8

// KDField is the approximate signed distance to a closed triangle mesh.
// Points are inside when they lie behind the normal of the closest triangle.
type KDField struct {
	tree kdtree.Tree
	bb   ms3.Box
}

// NewKDField builds a field from the triangles of a closed, outward facing
// mesh such as one read from an STL file.
func NewKDField(model []ms3.Triangle) (*KDField, error) {
	if len(model) == 0 {
		return nil, errors.New("empty triangle slice")
	}
	mykd := make(kdTriangles, 0, len(model))
	for _, t := range model {
		if t.IsDegenerate(0) {
			continue
		}
		mykd = append(mykd, kdTriangle{d3.ToR3(t[0]), d3.ToR3(t[1]), d3.ToR3(t[2])})
	}
	if len(mykd) == 0 {
		return nil, errors.New("all triangles degenerate")
	}
	tree := kdtree.New(mykd, true)
	return &KDField{tree: *tree, bb: Bounds(model)}, nil
}

// Evaluate returns the distance from (x,y,z) to the closest triangle,
// negative inside the mesh.
func (s *KDField) Evaluate(x, y, z float32) float32 {
	p := r3.Vec{X: float64(x), Y: float64(y), Z: float64(z)}
	keep := kdtree.NewNKeeper(kdCandidates)
	s.tree.NearestSet(keep, kdTriangle{p, p, p})
	minDist := math.Inf(1)
	var closest r3.Vec
	var nearest kdTriangle
	for _, c := range keep.Heap {
		if c.Comparable == nil {
			continue // Sentinel.
		}
		tri := c.Comparable.(kdTriangle)
		q := tri.closestPoint(p)
		if d := r3.Norm2(r3.Sub(p, q)); d < minDist {
			minDist, closest, nearest = d, q, tri
		}
	}
	dist := math.Sqrt(minDist)
	if r3.Dot(nearest.normal(), r3.Sub(p, closest)) < 0 {
		dist = -dist
	}
	return float32(dist)
}

// Bounds returns the bounding box of the mesh.
func (s *KDField) Bounds() ms3.Box { return s.bb }

type kdTriangles []kdTriangle

type kdTriangle [3]r3.Vec

func (k kdTriangles) Index(i int) kdtree.Comparable { return k[i] }

// Len returns the length of the list.
func (k kdTriangles) Len() int { return len(k) }

// Pivot partitions the list based on the dimension specified.
func (k kdTriangles) Pivot(d kdtree.Dim) int {
	p := kdPlane{dim: int(d), triangles: k}
	return kdtree.Partition(p, kdtree.MedianOfMedians(p))
}

// Slice returns a slice of the list using zero-based half
// open indexing equivalent to built-in slice indexing.
func (k kdTriangles) Slice(start, end int) kdtree.Interface { return k[start:end] }

func (k kdTriangles) Bounds() *kdtree.Bounding {
	max := r3.Vec{X: -math.MaxFloat64, Y: -math.MaxFloat64, Z: -math.MaxFloat64}
	min := r3.Vec{X: math.MaxFloat64, Y: math.MaxFloat64, Z: math.MaxFloat64}
	for _, tri := range k {
		c := tri.centroid()
		min = r3.Vec{X: math.Min(min.X, c.X), Y: math.Min(min.Y, c.Y), Z: math.Min(min.Z, c.Z)}
		max = r3.Vec{X: math.Max(max.X, c.X), Y: math.Max(max.Y, c.Y), Z: math.Max(max.Z, c.Z)}
	}
	return &kdtree.Bounding{
		Min: kdTriangle{min, min, min},
		Max: kdTriangle{max, max, max},
	}
}

// Compare returns the signed distance of a from the plane passing through
// b and perpendicular to the dimension d.
//
// Given c = a.Compare(b, d):
//
//	c = a_d - b_d
func (a kdTriangle) Compare(b kdtree.Comparable, d kdtree.Dim) float64 {
	return kdComp(a, b.(kdTriangle), int(d))
}

// Dims returns the number of dimensions described in the Comparable.
func (a kdTriangle) Dims() int { return 3 }

// Distance returns the squared Euclidean distance between the
// centroids of the receiver and the parameter.
func (a kdTriangle) Distance(b kdtree.Comparable) float64 {
	return r3.Norm2(r3.Sub(a.centroid(), b.(kdTriangle).centroid()))
}

func (a kdTriangle) centroid() r3.Vec {
	return r3.Scale(1./3., r3.Add(a[0], r3.Add(a[1], a[2])))
}

func (a kdTriangle) normal() r3.Vec {
	return r3.Cross(r3.Sub(a[1], a[0]), r3.Sub(a[2], a[0]))
}

// closestPoint returns the point of the triangle closest to p.
func (a kdTriangle) closestPoint(p r3.Vec) r3.Vec {
	ab := r3.Sub(a[1], a[0])
	ac := r3.Sub(a[2], a[0])
	ap := r3.Sub(p, a[0])
	e1, e2 := r3.Dot(ab, ap), r3.Dot(ac, ap)
	if e1 <= 0 && e2 <= 0 {
		return a[0]
	}
	bp := r3.Sub(p, a[1])
	e3, e4 := r3.Dot(ab, bp), r3.Dot(ac, bp)
	if e3 >= 0 && e4 <= e3 {
		return a[1]
	}
	vc := e1*e4 - e3*e2
	if vc <= 0 && e1 >= 0 && e3 <= 0 {
		return r3.Add(a[0], r3.Scale(e1/(e1-e3), ab))
	}
	cp := r3.Sub(p, a[2])
	e5, e6 := r3.Dot(ab, cp), r3.Dot(ac, cp)
	if e6 >= 0 && e5 <= e6 {
		return a[2]
	}
	vb := e5*e2 - e1*e6
	if vb <= 0 && e2 >= 0 && e6 <= 0 {
		return r3.Add(a[0], r3.Scale(e2/(e2-e6), ac))
	}
	va := e3*e6 - e5*e4
	if va <= 0 && e4-e3 >= 0 && e5-e6 >= 0 {
		w := (e4 - e3) / ((e4 - e3) + (e5 - e6))
		return r3.Add(a[1], r3.Scale(w, r3.Sub(a[2], a[1])))
	}
	denom := 1 / (va + vb + vc)
	v, w := vb*denom, vc*denom
	return r3.Add(a[0], r3.Add(r3.Scale(v, ab), r3.Scale(w, ac)))
}

// c = a.dim - b.dim
func kdComp(a, b kdTriangle, dim int) float64 {
	ac, bc := a.centroid(), b.centroid()
	switch dim {
	case 0:
		return ac.X - bc.X
	case 1:
		return ac.Y - bc.Y
	case 2:
		return ac.Z - bc.Z
	}
	panic("bad kd dimension")
}

type kdPlane struct {
	dim       int
	triangles kdTriangles
}

func (p kdPlane) Less(i, j int) bool {
	return kdComp(p.triangles[i], p.triangles[j], p.dim) < 0
}
func (p kdPlane) Swap(i, j int) {
	p.triangles[i], p.triangles[j] = p.triangles[j], p.triangles[i]
}
func (p kdPlane) Len() int { return len(p.triangles) }
func (p kdPlane) Slice(start, end int) kdtree.SortSlicer {
	p.triangles = p.triangles[start:end]
	return p
}
