// Package pipeline orchestrates a deflicker run end to end: frame
// discovery, parallel luminance analysis, rolling-average smoothing, and
// parallel brightness correction, with a barrier between each phase.
package pipeline
