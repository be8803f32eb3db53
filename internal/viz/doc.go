// Package viz renders scenes in the terminal.
//
// Scenes are flattened into a [Wireframe] of world-space edges using the
// animation driver's rotation table, projected through a [Camera] and drawn
// on a braille [Canvas] with per-cell colors.
//
//   - [Preview]: Bubble Tea model that owns an animation session and feeds
//     its frame host from the tick loop
//   - [App]: model picker in front of the preview
//   - Themes: five built-in color schemes
//
// # Key Bindings
//
//	Space - Pause/Resume the clock
//	R     - Regenerate with a new seed
//	X/Y/Z - Orbit the camera (shift reverses)
//	+/-   - Zoom
//	T     - Cycle color themes
//	G     - Toggle GIF recording
//	?     - Show help overlay
//	Q     - Quit
package viz
