package d3

import (
	"github.com/chewxy/math32"
	"github.com/soypat/glgl/math/ms3"
	"gonum.org/v1/gonum/spatial/r3"
)

// ms3 vector helpers and conversions to and from gonum's float64 r3 types.

func Elem(side float32) ms3.Vec {
	return ms3.Vec{X: side, Y: side, Z: side}
}

func EqualWithin(a, b ms3.Vec, tol float32) bool {
	return math32.Abs(a.X-b.X) <= tol &&
		math32.Abs(a.Y-b.Y) <= tol &&
		math32.Abs(a.Z-b.Z) <= tol
}

// MinElem return a vector with the minimum components of two vectors.
func MinElem(a, b ms3.Vec) ms3.Vec {
	return ms3.Vec{X: math32.Min(a.X, b.X), Y: math32.Min(a.Y, b.Y), Z: math32.Min(a.Z, b.Z)}
}

// MaxElem return a vector with the maximum components of two vectors.
func MaxElem(a, b ms3.Vec) ms3.Vec {
	return ms3.Vec{X: math32.Max(a.X, b.X), Y: math32.Max(a.Y, b.Y), Z: math32.Max(a.Z, b.Z)}
}

// LTEZero returns true if any vector components are <= 0.
func LTEZero(a ms3.Vec) bool {
	return (a.X <= 0) || (a.Y <= 0) || (a.Z <= 0)
}

// Union returns the smallest box containing a and b.
func Union(a, b ms3.Box) ms3.Box {
	return ms3.Box{Min: MinElem(a.Min, b.Min), Max: MaxElem(a.Max, b.Max)}
}

// ToR3 converts a float32 vector to gonum's r3.Vec.
func ToR3(v ms3.Vec) r3.Vec {
	return r3.Vec{X: float64(v.X), Y: float64(v.Y), Z: float64(v.Z)}
}

// FromR3 converts gonum's r3.Vec to a float32 vector.
func FromR3(v r3.Vec) ms3.Vec {
	return ms3.Vec{X: float32(v.X), Y: float32(v.Y), Z: float32(v.Z)}
}
