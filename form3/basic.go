// Package form3 provides analytic scalar fields for common solids. Every
// shape is negative inside, positive outside and reports a bounding box
// that contains its whole surface.
package form3

import (
	"errors"

	"github.com/chewxy/math32"
	"github.com/soypat/glgl/math/ms3"
	"github.com/soypat/mcubes"
	"github.com/soypat/mcubes/internal/d3"
)

// Shape is a bounded scalar field.
type Shape interface {
	mcubes.ContinuousField
	// Bounds returns a box containing all of the shape's surface.
	Bounds() ms3.Box
}

// SphereField returns the implicit sphere x²+y²+z²-r². Unlike the shape
// returned by NewSphere its value is not a distance.
func SphereField(r float32) mcubes.FieldFunc {
	r2 := r * r
	return func(x, y, z float32) float32 {
		return x*x + y*y + z*z - r2
	}
}

type sphere struct {
	r float32
}

// NewSphere returns a sphere of radius r centered at the origin.
func NewSphere(r float32) (Shape, error) {
	if r <= 0 {
		return nil, errors.New("zero or negative sphere radius")
	}
	return &sphere{r: r}, nil
}

func (s *sphere) Evaluate(x, y, z float32) float32 {
	return math32.Sqrt(x*x+y*y+z*z) - s.r
}

func (s *sphere) Bounds() ms3.Box {
	return cube(s.r)
}

// NewBox returns a box of dimensions x, y, z centered at the origin
// with edges rounded by radius round.
func NewBox(x, y, z, round float32) (Shape, error) {
	if x <= 0 || y <= 0 || z <= 0 {
		return nil, errors.New("zero or negative box dimension")
	} else if round < 0 || round > x/2 || round > y/2 || round > z/2 {
		return nil, errors.New("invalid box rounding value")
	}
	return &box{dims: ms3.Vec{X: x, Y: y, Z: z}, round: round}, nil
}

type box struct {
	dims  ms3.Vec
	round float32
}

func (s *box) Evaluate(x, y, z float32) float32 {
	qx := math32.Abs(x) - s.dims.X/2 + s.round
	qy := math32.Abs(y) - s.dims.Y/2 + s.round
	qz := math32.Abs(z) - s.dims.Z/2 + s.round
	outside := ms3.Norm(ms3.Vec{X: math32.Max(qx, 0), Y: math32.Max(qy, 0), Z: math32.Max(qz, 0)})
	inside := math32.Min(math32.Max(qx, math32.Max(qy, qz)), 0)
	return outside + inside - s.round
}

func (s *box) Bounds() ms3.Box {
	h := ms3.Scale(0.5, s.dims)
	return ms3.Box{Min: ms3.Scale(-1, h), Max: h}
}

// NewTorus returns a torus around the z axis. ringRadius is the distance
// from the origin to the center of the tube of radius tubeRadius.
func NewTorus(ringRadius, tubeRadius float32) (Shape, error) {
	if tubeRadius <= 0 || ringRadius <= 0 {
		return nil, errors.New("zero or negative torus radius")
	} else if tubeRadius >= ringRadius {
		return nil, errors.New("torus tube radius must be smaller than ring radius")
	}
	return &torus{ring: ringRadius, tube: tubeRadius}, nil
}

type torus struct {
	ring float32
	tube float32
}

func (s *torus) Evaluate(x, y, z float32) float32 {
	q := math32.Hypot(x, y) - s.ring
	return math32.Hypot(q, z) - s.tube
}

func (s *torus) Bounds() ms3.Box {
	r := s.ring + s.tube
	return ms3.Box{
		Min: ms3.Vec{X: -r, Y: -r, Z: -s.tube},
		Max: ms3.Vec{X: r, Y: r, Z: s.tube},
	}
}

// NewOctahedron returns the octahedron |x|+|y|+|z| <= size.
// Its field is |x|+|y|+|z|-size, a bound on the distance.
func NewOctahedron(size float32) (Shape, error) {
	if size <= 0 {
		return nil, errors.New("zero or negative octahedron size")
	}
	return &octahedron{s: size}, nil
}

type octahedron struct {
	s float32
}

func (s *octahedron) Evaluate(x, y, z float32) float32 {
	return math32.Abs(x) + math32.Abs(y) + math32.Abs(z) - s.s
}

func (s *octahedron) Bounds() ms3.Box {
	return cube(s.s)
}

// NewCylinder returns a cylinder of radius r and height h along the z axis.
func NewCylinder(r, h float32) (Shape, error) {
	if r <= 0 || h <= 0 {
		return nil, errors.New("zero or negative cylinder dimension")
	}
	return &cylinder{r: r, h: h}, nil
}

type cylinder struct {
	r float32
	h float32
}

func (s *cylinder) Evaluate(x, y, z float32) float32 {
	dx := math32.Hypot(x, y) - s.r
	dz := math32.Abs(z) - s.h/2
	outside := math32.Hypot(math32.Max(dx, 0), math32.Max(dz, 0))
	return outside + math32.Min(math32.Max(dx, dz), 0)
}

func (s *cylinder) Bounds() ms3.Box {
	return ms3.Box{
		Min: ms3.Vec{X: -s.r, Y: -s.r, Z: -s.h / 2},
		Max: ms3.Vec{X: s.r, Y: s.r, Z: s.h / 2},
	}
}

// NewGyroid returns a gyroid sheet of the given period and thickness
// clipped to bounds.
func NewGyroid(period, thickness float32, bounds ms3.Box) (Shape, error) {
	if period <= 0 || thickness <= 0 {
		return nil, errors.New("zero or negative gyroid period or thickness")
	}
	if d3.LTEZero(ms3.Sub(bounds.Max, bounds.Min)) {
		return nil, errors.New("empty gyroid bounds")
	}
	return &gyroid{k: 2 * math32.Pi / period, t: thickness / 2, bb: bounds}, nil
}

type gyroid struct {
	k  float32
	t  float32
	bb ms3.Box
}

func (s *gyroid) Evaluate(x, y, z float32) float32 {
	sx, cx := math32.Sincos(s.k * x)
	sy, cy := math32.Sincos(s.k * y)
	sz, cz := math32.Sincos(s.k * z)
	sheet := math32.Abs(sx*cy+sy*cz+sz*cx)/s.k - s.t
	return math32.Max(sheet, boxBound(s.bb, x, y, z))
}

func (s *gyroid) Bounds() ms3.Box { return s.bb }

// boxBound is negative inside bb. The clipping faces sit just inside the
// box so they do not coincide with grid corners placed on its bounds.
func boxBound(bb ms3.Box, x, y, z float32) float32 {
	const shrink = 0.999
	c := ms3.Scale(0.5, ms3.Add(bb.Min, bb.Max))
	h := ms3.Scale(shrink/2, ms3.Sub(bb.Max, bb.Min))
	return math32.Max(math32.Abs(x-c.X)-h.X, math32.Max(math32.Abs(y-c.Y)-h.Y, math32.Abs(z-c.Z)-h.Z))
}

func cube(h float32) ms3.Box {
	return ms3.Box{Min: d3.Elem(-h), Max: d3.Elem(h)}
}
