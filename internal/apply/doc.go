// Package apply performs the correction phase: each frame is rescaled to
// its smoothed luminance target and written to the output directory.
package apply
