// Package sdfxfield adapts github.com/deadsy/sdfx solids to and from
// mcubes fields.
package sdfxfield

import (
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/soypat/glgl/math/ms3"
	"github.com/soypat/mcubes"
)

// Field is an sdfx solid viewed as a float32 scalar field.
type Field struct {
	s sdf.SDF3
}

// FromSDF3 wraps s. Panics if s is nil.
func FromSDF3(s sdf.SDF3) *Field {
	if s == nil {
		panic("nil SDF3")
	}
	return &Field{s: s}
}

// Evaluate returns the sdfx distance at (x,y,z), narrowed to float32.
func (f *Field) Evaluate(x, y, z float32) float32 {
	return float32(f.s.Evaluate(v3.Vec{X: float64(x), Y: float64(y), Z: float64(z)}))
}

// Bounds returns the bounding box of the solid.
func (f *Field) Bounds() ms3.Box {
	bb := f.s.BoundingBox()
	return ms3.Box{Min: fromV3(bb.Min), Max: fromV3(bb.Max)}
}

// Bounded is a field that knows the box containing its surface.
type Bounded interface {
	mcubes.ContinuousField
	Bounds() ms3.Box
}

type sdf3 struct {
	f Bounded
}

// ToSDF3 exposes a bounded field as an sdfx solid so sdfx renderers and
// operations can consume it.
func ToSDF3(f Bounded) sdf.SDF3 {
	if f == nil {
		panic("nil field")
	}
	return sdf3{f: f}
}

func (s sdf3) Evaluate(p v3.Vec) float64 {
	return float64(s.f.Evaluate(float32(p.X), float32(p.Y), float32(p.Z)))
}

func (s sdf3) BoundingBox() sdf.Box3 {
	bb := s.f.Bounds()
	return sdf.Box3{Min: toV3(bb.Min), Max: toV3(bb.Max)}
}

func fromV3(v v3.Vec) ms3.Vec {
	return ms3.Vec{X: float32(v.X), Y: float32(v.Y), Z: float32(v.Z)}
}

func toV3(v ms3.Vec) v3.Vec {
	return v3.Vec{X: float64(v.X), Y: float64(v.Y), Z: float64(v.Z)}
}
