// Package viz renders Q15 kernel output in the terminal.
//
//   - [Plot]: asciigraph line chart of a sweep or spectrum
//   - [Canvas]: Braille pixel canvas used for the phasor circle
//   - [PhasorModel]: Bubble Tea view of a rotating table phasor
//
// # Key Bindings
//
//	Space - Pause/Resume
//	+/-   - Double/halve the angle step
//	R     - Reset theta and error history
//	Q     - Quit
package viz
