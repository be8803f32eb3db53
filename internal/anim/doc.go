// Package anim drives per-frame rotation of named scene groups.
//
// A [Driver] owns the render-state table: one Euler rotation per bound
// group, seeded from the group's base rotation when bindings attach. Each
// [Binding] pairs a group and axis with a [Policy]:
//
//   - [Absolute] sets the axis to t·Velocity, so the pose depends only on
//     the clock and not on frame rate.
//   - [Incremental] adds a fixed Delta per tick, so the apparent speed
//     scales with the frame rate.
//
// A [Session] mounts a driver on a [Host] clock source and guarantees that
// unmounting cancels the subscription and releases handles exactly once.
package anim
