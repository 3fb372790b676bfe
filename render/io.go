package render

import (
	"io"

	"github.com/soypat/glgl/math/ms3"
	"github.com/soypat/mcubes"
	"github.com/soypat/mcubes/internal/d3"
)

// RenderAll reads the full contents of a Renderer and returns the slice read.
// It does not return error on io.EOF, like the io.ReadAll implementation.
func RenderAll(r Renderer) ([]ms3.Triangle, error) {
	var err error
	var nt int
	result := make([]ms3.Triangle, 0, 1<<12)
	buf := make([]ms3.Triangle, 1024)
	for {
		nt, err = r.ReadTriangles(buf)
		result = append(result, buf[:nt]...)
		if err != nil {
			break
		}
	}
	if err == io.EOF {
		return result, nil
	}
	return result, err
}

// ToMesh converts a triangle soup into an indexed mesh. Vertices are not
// shared between triangles.
func ToMesh(model []ms3.Triangle) mcubes.Mesh {
	m := mcubes.Mesh{
		Vertices:  make([]ms3.Vec, 0, 3*len(model)),
		Triangles: make([]mcubes.Triangle, 0, len(model)),
	}
	for _, tri := range model {
		base := len(m.Vertices)
		m.Vertices = append(m.Vertices, tri[:]...)
		m.Triangles = append(m.Triangles, mcubes.Triangle{base, base + 1, base + 2})
	}
	return m
}

// Bounds returns the smallest box containing all triangles of model.
// An empty model has zero bounds.
func Bounds(model []ms3.Triangle) ms3.Box {
	if len(model) == 0 {
		return ms3.Box{}
	}
	bb := ms3.Box{Min: model[0][0], Max: model[0][0]}
	for _, tri := range model {
		for _, v := range tri {
			bb.Min = d3.MinElem(bb.Min, v)
			bb.Max = d3.MaxElem(bb.Max, v)
		}
	}
	return bb
}

type triangle3Buffer struct {
	buf []ms3.Triangle
}

// Read reads from this buffer.
func (b *triangle3Buffer) Read(t []ms3.Triangle) int {
	n := copy(t, b.buf)
	b.buf = b.buf[n:]
	return n
}

// Write appends triangles to this buffer.
func (b *triangle3Buffer) Write(t []ms3.Triangle) int {
	b.buf = append(b.buf, t...)
	return len(t)
}

func (b *triangle3Buffer) Len() int { return len(b.buf) }
