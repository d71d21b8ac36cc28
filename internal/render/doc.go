// Package render displays heat snapshots.
//
// Every output goes through the [Renderer] interface, one [Frame] at a time:
//
//   - [GIF]: animated jet color map, written with image/gif
//   - [Text]: true-colour terminal heat map drawn with lipgloss
//   - [Player]: interactive Bubble Tea playback of one or more runs
//
// All color mapping uses the fixed [heat.ColorMin], [heat.ColorMax] range
// so frames from different runs compare directly.
//
// # Key Bindings
//
//	Space - Pause/Resume playback
//	[ ]   - Step one frame back/forward
//	{ }   - Jump ten frames back/forward
//	+ -   - Change playback speed
//	r     - Restart from the first frame
//	?     - Show help overlay
//	q     - Quit
package render
