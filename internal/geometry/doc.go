// Package geometry generates primitive placements for the concept models.
//
// Every generator maps a small parameter set to a flat list of [Placement]
// values and is pure and deterministic, with one exception:
//
//   - [GenerateOrbits]: torus rings with an orbiting electron sphere
//   - [GenerateHelix]: double helix strands joined by base-pair rungs
//   - [GenerateOrganelleField]: rejection-sampled scatter (seeded or not)
//   - [GenerateSurfaceGrid]: sampled height field with grid connectors
//
// Parameter violations are reported with [ErrParameterBounds] as soon as
// they are detected; nothing is clamped silently.
//
// # Coordinates
//
// Y is up. Euler rotations are radians composed as Rx·Ry·Rz (XYZ order).
//
// # Memoization
//
// [Memo] caches the deterministic generators keyed by their parameter
// tuple. Organelle fields are never cached.
package geometry
