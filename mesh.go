package mcubes

import (
	"fmt"

	"github.com/chewxy/math32"
	"github.com/soypat/glgl/math/ms3"
	"github.com/soypat/mcubes/internal/d3"
)

// Triangle holds three indices into a Mesh's Vertices.
type Triangle [3]int

// Mesh is a triangle mesh made of a vertex list and triangles indexing it.
// Meshes built by this package never share vertices between triangles:
// every triangle owns three consecutive vertex entries.
type Mesh struct {
	Vertices  []ms3.Vec
	Triangles []Triangle
}

// IsEmpty returns true if the mesh has no triangles.
func (m Mesh) IsEmpty() bool { return len(m.Triangles) == 0 }

// NumTriangles returns the amount of triangles in the mesh.
func (m Mesh) NumTriangles() int { return len(m.Triangles) }

// Append appends the vertices and triangles of other to m. The triangle
// indices of other are offset by the amount of vertices already in m.
func (m *Mesh) Append(other Mesh) {
	offset := len(m.Vertices)
	m.Vertices = append(m.Vertices, other.Vertices...)
	for _, t := range other.Triangles {
		m.Triangles = append(m.Triangles, Triangle{t[0] + offset, t[1] + offset, t[2] + offset})
	}
}

// Triangle3 returns the vertex positions of the i'th triangle.
func (m Mesh) Triangle3(i int) ms3.Triangle {
	t := m.Triangles[i]
	return ms3.Triangle{m.Vertices[t[0]], m.Vertices[t[1]], m.Vertices[t[2]]}
}

// AppendTriangles3 appends the positional triangles of the mesh to dst
// and returns the extended slice.
func (m Mesh) AppendTriangles3(dst []ms3.Triangle) []ms3.Triangle {
	for i := range m.Triangles {
		dst = append(dst, m.Triangle3(i))
	}
	return dst
}

// Bounds returns the box enclosing all vertices. The zero box is returned
// for a mesh without vertices.
func (m Mesh) Bounds() ms3.Box {
	if len(m.Vertices) == 0 {
		return ms3.Box{}
	}
	bb := ms3.Box{Min: m.Vertices[0], Max: m.Vertices[0]}
	for _, v := range m.Vertices[1:] {
		bb.Min = d3.MinElem(bb.Min, v)
		bb.Max = d3.MaxElem(bb.Max, v)
	}
	return bb
}

// Validate checks every triangle indexes a vertex in range and that no
// vertex is NaN or infinite.
func (m Mesh) Validate() error {
	n := len(m.Vertices)
	for i, t := range m.Triangles {
		for _, idx := range t {
			if idx < 0 || idx >= n {
				return fmt.Errorf("triangle %d index %d out of range [0, %d)", i, idx, n)
			}
		}
	}
	for i, v := range m.Vertices {
		if badFloat(v.X) || badFloat(v.Y) || badFloat(v.Z) {
			return fmt.Errorf("vertex %d is not finite: %v", i, v)
		}
	}
	return nil
}

func badFloat(f float32) bool {
	return math32.IsNaN(f) || math32.IsInf(f, 0)
}
