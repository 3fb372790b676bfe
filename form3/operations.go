package form3

import (
	"github.com/chewxy/math32"
	"github.com/soypat/glgl/math/ms3"
	"github.com/soypat/mcubes/internal/d3"
)

type union struct {
	shapes []Shape
	bb     ms3.Box
}

// Union joins shapes. The resulting field is the minimum of all fields.
func Union(shapes ...Shape) Shape {
	if len(shapes) == 0 {
		panic("need at least one shape to union")
	}
	bb := mustShape(shapes[0]).Bounds()
	for _, s := range shapes[1:] {
		bb = d3.Union(bb, mustShape(s).Bounds())
	}
	return &union{shapes: append([]Shape(nil), shapes...), bb: bb}
}

func (u *union) Evaluate(x, y, z float32) float32 {
	d := u.shapes[0].Evaluate(x, y, z)
	for _, s := range u.shapes[1:] {
		d = math32.Min(d, s.Evaluate(x, y, z))
	}
	return d
}

func (u *union) Bounds() ms3.Box { return u.bb }

type intersection struct {
	a, b Shape
	bb   ms3.Box
}

// Intersection keeps the volume shared by a and b.
func Intersection(a, b Shape) Shape {
	bb, ok := boxIntersect(mustShape(a).Bounds(), mustShape(b).Bounds())
	if !ok {
		// Disjoint shapes. Keep a degenerate box at a's corner.
		bb = ms3.Box{Min: a.Bounds().Min, Max: a.Bounds().Min}
	}
	return &intersection{a: a, b: b, bb: bb}
}

func (s *intersection) Evaluate(x, y, z float32) float32 {
	return math32.Max(s.a.Evaluate(x, y, z), s.b.Evaluate(x, y, z))
}

func (s *intersection) Bounds() ms3.Box { return s.bb }

type difference struct {
	a, b Shape
}

// Difference subtracts b from a.
func Difference(a, b Shape) Shape {
	mustShape(a)
	mustShape(b)
	return &difference{a: a, b: b}
}

func (s *difference) Evaluate(x, y, z float32) float32 {
	return math32.Max(s.a.Evaluate(x, y, z), -s.b.Evaluate(x, y, z))
}

func (s *difference) Bounds() ms3.Box { return s.a.Bounds() }

type translate struct {
	s Shape
	p ms3.Vec
}

// Translate moves s by p.
func Translate(s Shape, p ms3.Vec) Shape {
	mustShape(s)
	if t, ok := s.(*translate); ok {
		return &translate{s: t.s, p: ms3.Add(t.p, p)}
	}
	return &translate{s: s, p: p}
}

func (t *translate) Evaluate(x, y, z float32) float32 {
	return t.s.Evaluate(x-t.p.X, y-t.p.Y, z-t.p.Z)
}

func (t *translate) Bounds() ms3.Box {
	bb := t.s.Bounds()
	return ms3.Box{Min: ms3.Add(bb.Min, t.p), Max: ms3.Add(bb.Max, t.p)}
}

type scale struct {
	s Shape
	k float32
}

// Scale scales s uniformly by factor k around the origin.
func Scale(s Shape, k float32) Shape {
	mustShape(s)
	if k <= 0 {
		panic("zero or negative scale factor")
	}
	return &scale{s: s, k: k}
}

func (s *scale) Evaluate(x, y, z float32) float32 {
	inv := 1 / s.k
	return s.k * s.s.Evaluate(x*inv, y*inv, z*inv)
}

func (s *scale) Bounds() ms3.Box {
	bb := s.s.Bounds()
	return ms3.Box{Min: ms3.Scale(s.k, bb.Min), Max: ms3.Scale(s.k, bb.Max)}
}

func mustShape(s Shape) Shape {
	if s == nil {
		panic("nil shape argument")
	}
	return s
}

func boxIntersect(a, b ms3.Box) (ms3.Box, bool) {
	bb := ms3.Box{Min: d3.MaxElem(a.Min, b.Min), Max: d3.MinElem(a.Max, b.Max)}
	return bb, bb.Min.X <= bb.Max.X && bb.Min.Y <= bb.Max.Y && bb.Min.Z <= bb.Max.Z
}
