// Package scene assembles geometry placements into named, animatable group
// hierarchies for each concept model.
//
// For a given [Kind] the [Assembler] always produces the same set of group
// IDs, so an animation driver can bind to them once per session and keep
// those bindings across regenerations:
//
//	atom         root, electronOrbit1, electronOrbit2, electronOrbit3
//	cell         root, nucleusGroup
//	dna          root
//	mathSurface  root
//
// The descriptor's scale factor is applied to the root group only; the
// intrinsic geometry arguments of the placements are never scaled.
//
// Groups hold no per-frame state. Live rotations belong to the animation
// driver, which refers to groups by [GroupID].
package scene
