package mcubes

import "github.com/soypat/glgl/math/ms3"

// V3i is a 3D integer vector. It indexes grid corners and cubes and
// holds per-axis counts.
type V3i [3]int

// AddScalar adds a scalar to each component of the vector.
func (a V3i) AddScalar(b int) V3i {
	return V3i{a[0] + b, a[1] + b, a[2] + b}
}

// Add adds two vectors. Return v = a + b.
func (a V3i) Add(b V3i) V3i {
	return V3i{a[0] + b[0], a[1] + b[1], a[2] + b[2]}
}

// Prod returns the product of the components, the number of cells
// in a grid of size a.
func (a V3i) Prod() int {
	return a[0] * a[1] * a[2]
}

// ToVec converts V3i (integer) to ms3.Vec (float).
func (a V3i) ToVec() ms3.Vec {
	return ms3.Vec{X: float32(a[0]), Y: float32(a[1]), Z: float32(a[2])}
}

func (a V3i) anyLTE(b int) bool {
	return a[0] <= b || a[1] <= b || a[2] <= b
}
