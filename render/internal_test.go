package render

import (
	"bytes"
	"io"
	"testing"

	"github.com/soypat/glgl/math/ms3"
	"github.com/soypat/mcubes"
	"github.com/soypat/mcubes/form3"
	"github.com/soypat/mcubes/internal/d3"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestTriangle3Buffer(t *testing.T) {
	var b triangle3Buffer
	tris := []ms3.Triangle{{{X: 1}}, {{X: 2}}, {{X: 3}}}
	b.Write(tris)
	dst := make([]ms3.Triangle, 2)
	if n := b.Read(dst); n != 2 || dst[0] != tris[0] || dst[1] != tris[1] {
		t.Errorf("got %d triangles %v. want first two of %v", n, dst[:n], tris)
	}
	if b.Len() != 1 {
		t.Errorf("got buffer length %d. want 1", b.Len())
	}
	b.Write(tris[:1])
	if n := b.Read(dst); n != 2 || dst[0] != tris[2] || dst[1] != tris[0] {
		t.Errorf("got %d triangles %v after second write", n, dst[:n])
	}
}

func TestOctreeEvaluatesNearSurface(t *testing.T) {
	const cells = 40
	s, _ := form3.NewSphere(0.77)
	r, err := NewOctreeRenderer(s, cells)
	if err != nil {
		t.Fatal(err)
	}
	model, err := RenderAll(r)
	if err != nil {
		t.Fatal(err)
	}
	if len(model) == 0 {
		t.Fatal("empty model")
	}
	oc := r.(*octree)
	if full := (cells + 1) * (cells + 1) * (cells + 1); oc.dc.evaluations() >= full {
		t.Errorf("octree evaluated field %d times. uniform grid needs %d", oc.dc.evaluations(), full)
	}
}

func TestUniformStatistics(t *testing.T) {
	s, _ := form3.NewTorus(0.6, 0.25)
	count := mcubes.V3i{7, 8, 9}
	r, err := NewUniformRenderer(s, s.Bounds(), count)
	if err != nil {
		t.Fatal(err)
	}
	model, err := RenderAll(r)
	if err != nil {
		t.Fatal(err)
	}
	u := r.(*uniform)
	if u.processed != count.Prod() {
		t.Errorf("visited %d cubes. want %d", u.processed, count.Prod())
	}
	if u.triangles != len(model) {
		t.Errorf("tessellated %d triangles. read %d", u.triangles, len(model))
	}
}

func TestMaxTrianglesPerCube(t *testing.T) {
	corners := [8]ms3.Vec{
		{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 1}, {X: 0, Y: 0, Z: 1},
		{X: 0, Y: 1, Z: 0}, {X: 1, Y: 1, Z: 0}, {X: 1, Y: 1, Z: 1}, {X: 0, Y: 1, Z: 1},
	}
	max := 0
	for mask := 0; mask < 256; mask++ {
		var f [8]float32
		for i := range f {
			f[i] = 1
			if mask>>i&1 == 1 {
				f[i] = -1
			}
		}
		if nt := mcubes.TessellateCorners(corners, f).NumTriangles(); nt > max {
			max = nt
		}
	}
	if max != marchingCubesMaxTriangles {
		t.Errorf("mismatch marching cubes max triangles. got %d. want %d", max, marchingCubesMaxTriangles)
	}
}

func TestOctreeSmallBuffer(t *testing.T) {
	s, _ := form3.NewTorus(0.6, 0.25)
	r1, _ := NewOctreeRenderer(s, 20)
	want, err := RenderAll(r1)
	if err != nil {
		t.Fatal(err)
	}
	r2, _ := NewOctreeRenderer(s, 20)
	var got []ms3.Triangle
	dst := make([]ms3.Triangle, 1)
	for {
		n, err := r2.ReadTriangles(dst)
		got = append(got, dst[:n]...)
		if err == io.EOF {
			break
		} else if err != nil {
			t.Fatal(err)
		}
	}
	if len(got) != len(want) {
		t.Fatalf("got %d triangles with single triangle buffer. want %d", len(got), len(want))
	}
	for i := range got {
		if got[i] != want[i] {
			t.Fatalf("triangle %d differs: %v vs %v", i, got[i], want[i])
		}
	}
}

func TestNewOctreeRendererErrors(t *testing.T) {
	s, _ := form3.NewSphere(1)
	if _, err := NewOctreeRenderer(s, 1); err == nil {
		t.Error("expected error for single mesh cell")
	}
	if _, err := NewOctreeRenderer(nil, 10); err == nil {
		t.Error("expected error for nil field")
	}
}

func TestSTLReaderSmallReads(t *testing.T) {
	s, _ := form3.NewSphere(0.77)
	bb := ms3.Box{Min: d3.Elem(-1), Max: d3.Elem(1)}
	r, _ := NewUniformRenderer(s, bb, mcubes.V3i{8, 8, 8})
	rd := &stlReader{r: r}
	var got bytes.Buffer
	buf := make([]byte, 120) // two triangles and change
	for {
		n, err := rd.Read(buf)
		if n%stlTriangleSize != 0 {
			t.Fatalf("read %d bytes, not a whole number of triangles", n)
		}
		got.Write(buf[:n])
		if err == io.EOF {
			break
		} else if err != nil {
			t.Fatal(err)
		}
	}
	r, _ = NewUniformRenderer(s, bb, mcubes.V3i{8, 8, 8})
	model, _ := RenderAll(r)
	var want bytes.Buffer
	if err := WriteSTL(&want, model); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got.Bytes(), want.Bytes()[84:]) {
		t.Error("stlReader output differs from WriteSTL triangle records")
	}
	if _, err := rd.Read(make([]byte, 49)); err == nil {
		t.Error("expected error for buffer smaller than a triangle")
	}
}

func TestClosestPoint(t *testing.T) {
	tri := kdTriangle{{}, {X: 1}, {Y: 1}}
	for _, test := range []struct {
		p, want r3.Vec
	}{
		{p: r3.Vec{X: 0.2, Y: 0.2, Z: 5}, want: r3.Vec{X: 0.2, Y: 0.2}},
		{p: r3.Vec{X: -1, Y: -1}, want: r3.Vec{}},
		{p: r3.Vec{X: 2, Y: -1}, want: r3.Vec{X: 1}},
		{p: r3.Vec{Y: 3, Z: -1}, want: r3.Vec{Y: 1}},
		{p: r3.Vec{X: 1, Y: 1}, want: r3.Vec{X: 0.5, Y: 0.5}},
		{p: r3.Vec{X: 0.5, Y: -1, Z: 3}, want: r3.Vec{X: 0.5}},
		{p: r3.Vec{X: -2, Y: 0.25}, want: r3.Vec{Y: 0.25}},
	} {
		got := tri.closestPoint(test.p)
		if r3.Norm(r3.Sub(got, test.want)) > 1e-12 {
			t.Errorf("closest point to %v: got %v. want %v", test.p, got, test.want)
		}
	}
}
