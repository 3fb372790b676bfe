// Package matter compensates shapes for material behavior when printed.
package matter

import "github.com/soypat/mcubes/form3"

var (
	// PLA (polylactic acid) is the most widely used plastic filament material in 3D printing.
	PLA = ViscousMaterial{shrink: 0.2e-2, pullShrink: .45} // 0.2% shrinkage
)

type ViscousMaterial struct {
	// shrink is the thermal contraction shrinkage of a material once the material
	// cools to room temperature after the heated bed is turned off.
	shrink float32
	// pullShrink takes into account viscoelastic shrinkage.
	pullShrink float32
}

// Scale enlarges s so that it measures its design size after cooling.
func (m ViscousMaterial) Scale(s form3.Shape) form3.Shape {
	return form3.Scale(s, 1/(1-m.shrink))
}

// InternalDimScale returns the dimension to model a hole or internal
// feature with so that it prints at size real.
func (m ViscousMaterial) InternalDimScale(real float32) float32 {
	if real <= 0 {
		panic("InternalDimScale only works for non-zero dimensions")
	}
	return real*(m.shrink+1) + m.pullShrink
}
