package form3

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/soypat/glgl/math/ms3"
	"github.com/soypat/mcubes"
	"github.com/soypat/mcubes/internal/d3"
)

func TestShapeErrors(t *testing.T) {
	bb := ms3.Box{Max: d3.Elem(1)}
	for _, test := range []struct {
		name string
		fn   func() (Shape, error)
	}{
		{"sphere zero", func() (Shape, error) { return NewSphere(0) }},
		{"sphere negative", func() (Shape, error) { return NewSphere(-1) }},
		{"box zero", func() (Shape, error) { return NewBox(1, 0, 1, 0) }},
		{"box round", func() (Shape, error) { return NewBox(1, 1, 1, 0.6) }},
		{"box negative round", func() (Shape, error) { return NewBox(1, 1, 1, -0.1) }},
		{"torus tube", func() (Shape, error) { return NewTorus(1, 1) }},
		{"torus zero", func() (Shape, error) { return NewTorus(0, 0.1) }},
		{"octahedron", func() (Shape, error) { return NewOctahedron(0) }},
		{"cylinder", func() (Shape, error) { return NewCylinder(1, -1) }},
		{"gyroid period", func() (Shape, error) { return NewGyroid(0, 0.1, bb) }},
		{"gyroid bounds", func() (Shape, error) { return NewGyroid(1, 0.1, ms3.Box{}) }},
	} {
		s, err := test.fn()
		if err == nil {
			t.Errorf("%s: expected error", test.name)
		}
		if s != nil {
			t.Errorf("%s: expected nil shape on error", test.name)
		}
	}
}

func TestShapeSign(t *testing.T) {
	sphere, _ := NewSphere(1)
	box, _ := NewBox(2, 1, 4, 0.1)
	torus, _ := NewTorus(2, 0.5)
	octa, _ := NewOctahedron(1)
	cyl, _ := NewCylinder(1, 2)
	for _, test := range []struct {
		name    string
		s       Shape
		inside  ms3.Vec
		outside ms3.Vec
	}{
		{"sphere", sphere, ms3.Vec{X: 0.5}, ms3.Vec{X: 1.5}},
		{"box", box, ms3.Vec{Z: 1.9}, ms3.Vec{Y: 0.6}},
		{"torus", torus, ms3.Vec{X: 2}, ms3.Vec{}},
		{"octahedron", octa, ms3.Vec{X: 0.3, Y: 0.3, Z: 0.3}, ms3.Vec{X: 0.4, Y: 0.4, Z: 0.4}},
		{"cylinder", cyl, ms3.Vec{X: 0.9, Z: 0.9}, ms3.Vec{Z: 1.1}},
	} {
		if d := test.s.Evaluate(test.inside.X, test.inside.Y, test.inside.Z); d >= 0 {
			t.Errorf("%s: got %v at inside point %v. want negative", test.name, d, test.inside)
		}
		if d := test.s.Evaluate(test.outside.X, test.outside.Y, test.outside.Z); d <= 0 {
			t.Errorf("%s: got %v at outside point %v. want positive", test.name, d, test.outside)
		}
	}
}

func TestSphereDistance(t *testing.T) {
	s, err := NewSphere(2)
	if err != nil {
		t.Fatal(err)
	}
	if d := s.Evaluate(0, 3, 0); d != 1 {
		t.Errorf("got distance %v. want 1", d)
	}
	if d := s.Evaluate(0, 0, 0); d != -2 {
		t.Errorf("got distance %v at center. want -2", d)
	}
	f := SphereField(2)
	if d := f(0, 3, 0); d != 5 {
		t.Errorf("implicit sphere: got %v. want 5", d)
	}
}

func TestBoundsContainSurface(t *testing.T) {
	sphere, _ := NewSphere(0.5)
	box, _ := NewBox(1, 0.6, 0.8, 0.1)
	torus, _ := NewTorus(0.6, 0.2)
	octa, _ := NewOctahedron(0.7)
	cyl, _ := NewCylinder(0.3, 1.2)
	gyroid, _ := NewGyroid(0.5, 0.1, ms3.Box{Min: d3.Elem(-0.5), Max: d3.Elem(0.5)})
	for _, test := range []struct {
		name string
		s    Shape
	}{
		{"sphere", sphere},
		{"box", box},
		{"torus", torus},
		{"octahedron", octa},
		{"cylinder", cyl},
		{"gyroid", gyroid},
		{"union", Union(sphere, Translate(cyl, ms3.Vec{X: 1}))},
		{"intersection", Intersection(box, Translate(sphere, ms3.Vec{Y: 0.3}))},
		{"difference", Difference(box, sphere)},
		{"scale", Scale(torus, 2)},
	} {
		bb := test.s.Bounds()
		margin := d3.Elem(0.1)
		m := mcubes.CreateMesh(test.s, ms3.Sub(bb.Min, margin), ms3.Add(bb.Max, margin), mcubes.V3i{24, 24, 24})
		if m.IsEmpty() {
			t.Errorf("%s: empty mesh", test.name)
			continue
		}
		got := m.Bounds()
		const tol = 1e-4
		if !boxContains(bb, got, tol) {
			t.Errorf("%s: mesh bounds %v not within shape bounds %v", test.name, got, bb)
		}
	}
}

func TestUnion(t *testing.T) {
	a, _ := NewSphere(1)
	b := Translate(a, ms3.Vec{X: 3})
	u := Union(a, b)
	want := ms3.Box{Min: d3.Elem(-1), Max: ms3.Vec{X: 4, Y: 1, Z: 1}}
	if u.Bounds() != want {
		t.Errorf("got union bounds %v. want %v", u.Bounds(), want)
	}
	for _, p := range []ms3.Vec{{}, {X: 3}} {
		if d := u.Evaluate(p.X, p.Y, p.Z); d != -1 {
			t.Errorf("union at %v: got %v. want -1", p, d)
		}
	}
	if d := u.Evaluate(1.5, 0, 0); d != 0.5 {
		t.Errorf("union between spheres: got %v. want 0.5", d)
	}
}

func TestUnionCopiesArguments(t *testing.T) {
	a, _ := NewSphere(1)
	b, _ := NewSphere(2)
	shapes := []Shape{a}
	u := Union(shapes...)
	shapes[0] = b
	if d := u.Evaluate(1.5, 0, 0); d != 0.5 {
		t.Errorf("union changed after argument reuse: got %v. want 0.5", d)
	}
}

func TestIntersectionDifference(t *testing.T) {
	a, _ := NewSphere(1)
	b := Translate(a, ms3.Vec{X: 1})
	in := Intersection(a, b)
	if d := in.Evaluate(0.5, 0, 0); d >= 0 {
		t.Errorf("intersection at overlap: got %v. want negative", d)
	}
	if d := in.Evaluate(-0.5, 0, 0); d <= 0 {
		t.Errorf("intersection outside b: got %v. want positive", d)
	}
	want := ms3.Box{Min: ms3.Vec{X: 0, Y: -1, Z: -1}, Max: d3.Elem(1)}
	if in.Bounds() != want {
		t.Errorf("got intersection bounds %v. want %v", in.Bounds(), want)
	}
	diff := Difference(a, b)
	if d := diff.Evaluate(0.5, 0, 0); d <= 0 {
		t.Errorf("difference at overlap: got %v. want positive", d)
	}
	if d := diff.Evaluate(-0.5, 0, 0); d >= 0 {
		t.Errorf("difference outside b: got %v. want negative", d)
	}
}

func TestTranslateCollapses(t *testing.T) {
	s, _ := NewOctahedron(1)
	tr := Translate(Translate(s, ms3.Vec{X: 1}), ms3.Vec{Y: 2})
	got, ok := tr.(*translate)
	if !ok {
		t.Fatalf("got %T. want *translate", tr)
	}
	if got.s != s || got.p != (ms3.Vec{X: 1, Y: 2}) {
		t.Errorf("nested translation not collapsed: %v", got.p)
	}
	if d := tr.Evaluate(1, 2, 0); d != -1 {
		t.Errorf("got %v at translated center. want -1", d)
	}
}

func TestScaleDistance(t *testing.T) {
	s, _ := NewSphere(1)
	sc := Scale(s, 3)
	if d := sc.Evaluate(4, 0, 0); math32.Abs(d-1) > 1e-6 {
		t.Errorf("got scaled distance %v. want 1", d)
	}
}

func TestNilShapePanics(t *testing.T) {
	s, _ := NewSphere(1)
	for name, fn := range map[string]func(){
		"union":        func() { Union(s, nil) },
		"empty union":  func() { Union() },
		"intersection": func() { Intersection(nil, s) },
		"difference":   func() { Difference(s, nil) },
		"translate":    func() { Translate(nil, ms3.Vec{}) },
		"scale":        func() { Scale(s, 0) },
	} {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("%s did not panic", name)
				}
			}()
			fn()
		}()
	}
}

func boxContains(outer, inner ms3.Box, tol float32) bool {
	return inner.Min.X >= outer.Min.X-tol && inner.Min.Y >= outer.Min.Y-tol && inner.Min.Z >= outer.Min.Z-tol &&
		inner.Max.X <= outer.Max.X+tol && inner.Max.Y <= outer.Max.Y+tol && inner.Max.Z <= outer.Max.Z+tol
}
