// Package viz is the terminal host: a Bubble Tea program that draws the
// scene on a coloured braille [Canvas].
//
// # Key Bindings
//
//	Space - Play/Pause
//	R     - Reset time and trails
//	1 2 3 - Venus, Mars, Ptolemaic
//	V     - Toggle top-down / from-Earth view
//	+ -   - Change speed
//	T     - Cycle sidebar themes
//	G     - Toggle GIF recording
//	?     - Show help overlay
//
// # Recording
//
// G starts recording canvas frames; pressing it again writes them as an
// animated GIF to the configured path.
package viz
