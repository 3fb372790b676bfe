package mcubes

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/soypat/glgl/math/ms3"
	"github.com/soypat/mcubes/internal/d3"
)

// linearField is reproduced exactly by trilinear interpolation.
var linearField = FieldFunc(func(x, y, z float32) float32 {
	return 2*x - 3*y + 0.5*z + 1
})

func TestNewGrid(t *testing.T) {
	min := ms3.Vec{X: -1, Y: 0, Z: 2}
	max := ms3.Vec{X: 1, Y: 3, Z: 2.5}
	count := V3i{4, 3, 1}
	g := NewGrid(linearField, min, max, count)
	if g.CubeCount() != count {
		t.Errorf("got cube count %v. want %v", g.CubeCount(), count)
	}
	if g.CornerCount() != count.AddScalar(1) {
		t.Errorf("got corner count %v. want %v", g.CornerCount(), count.AddScalar(1))
	}
	if g.Bounds().Min != min || g.Bounds().Max != max {
		t.Errorf("got bounds %v. want [%v, %v]", g.Bounds(), min, max)
	}
	if got := g.CornerPosition(0, 0, 0); got != min {
		t.Errorf("first corner at %v. want %v", got, min)
	}
	last := g.CornerPosition(4, 3, 1)
	if !d3.EqualWithin(last, max, 1e-6) {
		t.Errorf("last corner at %v. want %v", last, max)
	}
	if got, want := g.CornerPosition(1, 2, 0), (ms3.Vec{X: -0.5, Y: 2, Z: 2}); got != want {
		t.Errorf("corner (1,2,0) at %v. want %v", got, want)
	}
	n := g.CornerCount()
	for z := 0; z < n[2]; z++ {
		for y := 0; y < n[1]; y++ {
			for x := 0; x < n[0]; x++ {
				p := g.CornerPosition(x, y, z)
				want := linearField(p.X, p.Y, p.Z)
				if got := g.Sample(x, y, z); got != want {
					t.Errorf("sample (%d,%d,%d): got %v. want %v", x, y, z, got, want)
				}
			}
		}
	}
}

func TestNewGridPanics(t *testing.T) {
	for _, count := range []V3i{{0, 1, 1}, {1, 0, 1}, {1, 1, 0}, {-1, 2, 2}} {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("cube count %v did not panic", count)
				}
			}()
			NewGrid(linearField, ms3.Vec{}, ms3.Vec{X: 1, Y: 1, Z: 1}, count)
		}()
	}
}

func TestGridSampleOutOfRange(t *testing.T) {
	g := NewGrid(linearField, ms3.Vec{}, ms3.Vec{X: 1, Y: 1, Z: 1}, V3i{2, 2, 2})
	for _, c := range []V3i{{-1, 0, 0}, {3, 0, 0}, {0, 3, 0}, {0, 0, 3}, {0, -1, 2}} {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("sample %v did not panic", c)
				}
			}()
			g.Sample(c[0], c[1], c[2])
		}()
	}
}

func TestNewGridFromSamples(t *testing.T) {
	samples := [][][]float32{
		{ // z=0
			{0, 1, 2},
			{3, 4, 5},
		},
		{ // z=1
			{6, 7, 8},
			{9, 10, 11},
		},
	}
	bounds := ms3.Box{Max: ms3.Vec{X: 2, Y: 1, Z: 1}}
	g, err := NewGridFromSamples(samples, bounds)
	if err != nil {
		t.Fatal(err)
	}
	if want := (V3i{3, 2, 2}); g.CornerCount() != want {
		t.Errorf("got corner count %v. want %v", g.CornerCount(), want)
	}
	if want := (V3i{2, 1, 1}); g.CubeCount() != want {
		t.Errorf("got cube count %v. want %v", g.CubeCount(), want)
	}
	for z, plane := range samples {
		for y, row := range plane {
			for x, want := range row {
				if got := g.Sample(x, y, z); got != want {
					t.Errorf("sample (%d,%d,%d): got %v. want %v", x, y, z, got, want)
				}
			}
		}
	}
	if got := g.CornerPosition(2, 1, 1); got != bounds.Max {
		t.Errorf("last corner at %v. want %v", got, bounds.Max)
	}
}

func TestNewGridFromSamplesErrors(t *testing.T) {
	for _, test := range []struct {
		name    string
		samples [][][]float32
	}{
		{name: "nil"},
		{name: "one plane", samples: [][][]float32{{{1, 2}, {3, 4}}}},
		{name: "one row", samples: [][][]float32{{{1, 2}}, {{3, 4}}}},
		{name: "one column", samples: [][][]float32{{{1}, {2}}, {{3}, {4}}}},
		{name: "ragged rows", samples: [][][]float32{{{1, 2}, {3, 4}}, {{5, 6}, {7}}}},
		{name: "ragged planes", samples: [][][]float32{{{1, 2}, {3, 4}}, {{5, 6}}}},
	} {
		_, err := NewGridFromSamples(test.samples, ms3.Box{Max: ms3.Vec{X: 1, Y: 1, Z: 1}})
		if err == nil {
			t.Errorf("%s: expected error", test.name)
		}
	}
}

func TestGridEvaluate(t *testing.T) {
	min := ms3.Vec{X: -1, Y: -2, Z: 0}
	max := ms3.Vec{X: 2, Y: 1, Z: 1.5}
	g := NewGrid(linearField, min, max, V3i{3, 7, 4})
	n := g.CornerCount()
	for z := 0; z < n[2]; z++ {
		for y := 0; y < n[1]; y++ {
			for x := 0; x < n[0]; x++ {
				p := g.CornerPosition(x, y, z)
				got := g.Evaluate(p.X, p.Y, p.Z)
				want := g.Sample(x, y, z)
				if math32.Abs(got-want) > 1e-4 {
					t.Errorf("Evaluate at corner (%d,%d,%d): got %v. want %v", x, y, z, got, want)
				}
			}
		}
	}
	// Trilinear interpolation reproduces linear fields between corners.
	for _, p := range []ms3.Vec{
		{X: 0.1, Y: -0.3, Z: 0.7},
		{X: 1.9, Y: 0.99, Z: 1.2},
		{X: -0.77, Y: -1.5, Z: 0.01},
	} {
		got := g.Evaluate(p.X, p.Y, p.Z)
		want := linearField(p.X, p.Y, p.Z)
		if math32.Abs(got-want) > 1e-4 {
			t.Errorf("Evaluate(%v): got %v. want %v", p, got, want)
		}
	}
	// Outside points clamp onto the bounds.
	got := g.Evaluate(-10, -10, -10)
	if want := g.Sample(0, 0, 0); math32.Abs(got-want) > 1e-5 {
		t.Errorf("clamped Evaluate: got %v. want %v", got, want)
	}
}
