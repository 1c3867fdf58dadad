package frame

import (
	"errors"
	"fmt"
	"math"
	"path/filepath"
)

// ErrTooFewFrames is returned when fewer than two usable frames are
// discovered. Smoothing a single frame is meaningless and the window
// arithmetic assumes at least one neighbor exists.
var ErrTooFewFrames = errors.New("cannot deflicker fewer than two frames")

// ErrZeroLuminance reports a fully black frame. The brightness ratio is
// undefined for it, so the whole run must stop rather than guess.
var ErrZeroLuminance = errors.New("frame has zero original luminance")

// Frame is one input image plus its luminance state, addressed by a stable
// ordinal id.
type Frame struct {
	// ID is the frame's ordinal position in discovery order. It is the sole
	// cross-reference between parallel workers and the registry and never
	// changes after assignment.
	ID int

	// Path is the source image location.
	Path string

	// OriginalLuminance is the perceptual brightness computed once from
	// pixel statistics or loaded from the metadata cache. Smoothing never
	// overwrites it.
	OriginalLuminance float64

	// CurrentLuminance is the working value, initialized to the original
	// and re-derived once per smoothing pass from the neighborhood.
	CurrentLuminance float64
}

// SetLuminance records the frame's original luminance, initializing the
// working value to match. The value must be finite.
func (f *Frame) SetLuminance(v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("non-finite luminance %v for %s", v, f.Path)
	}
	f.OriginalLuminance = v
	f.CurrentLuminance = v
	return nil
}

// BrightnessPercent derives the brightness adjustment factor for the apply
// phase: 100 means unchanged. It is computed on demand and never stored.
func (f Frame) BrightnessPercent() (float64, error) {
	if f.OriginalLuminance == 0 {
		return 0, fmt.Errorf("%w: %s", ErrZeroLuminance, f.Path)
	}
	return f.CurrentLuminance / f.OriginalLuminance * 100, nil
}

// Registry holds the ordered frame sequence. Between pipeline phases it is
// exclusively owned by the orchestrator; during a parallel phase workers
// operate on private copies and the registry is only touched again when the
// executor writes the reassembled result back.
type Registry struct {
	frames []Frame
}

// NewRegistry assigns contiguous ordinal ids 0..N-1 to the discovered paths,
// in the order given. It fails when fewer than two frames were discovered,
// and when two frames share a base filename: the apply phase collapses all
// output into one flat directory, so a collision would silently overwrite a
// result and must be surfaced instead.
func NewRegistry(paths []string) (*Registry, error) {
	if len(paths) < 2 {
		return nil, fmt.Errorf("%w (found %d)", ErrTooFewFrames, len(paths))
	}

	seen := make(map[string]string, len(paths))
	frames := make([]Frame, len(paths))
	for i, path := range paths {
		base := filepath.Base(path)
		if prev, ok := seen[base]; ok {
			return nil, fmt.Errorf("output filename collision: %s and %s both map to %s", prev, path, base)
		}
		seen[base] = path
		frames[i] = Frame{ID: i, Path: path}
	}

	return &Registry{frames: frames}, nil
}

// Len returns the number of frames.
func (r *Registry) Len() int {
	return len(r.frames)
}

// Frames returns the canonical id-ordered frame slice.
func (r *Registry) Frames() []Frame {
	return r.frames
}

// SetFrames replaces the registry content with a reassembled phase result.
// The slice must cover the same contiguous id range.
func (r *Registry) SetFrames(frames []Frame) error {
	if len(frames) != len(r.frames) {
		return fmt.Errorf("frame count changed: got %d, want %d", len(frames), len(r.frames))
	}
	for i := range frames {
		if frames[i].ID != i {
			return fmt.Errorf("frame at position %d has id %d", i, frames[i].ID)
		}
	}
	r.frames = frames
	return nil
}

// CurrentLuminances snapshots the working luminance of every frame in id
// order, as input for a smoothing pass.
func (r *Registry) CurrentLuminances() []float64 {
	values := make([]float64, len(r.frames))
	for i := range r.frames {
		values[i] = r.frames[i].CurrentLuminance
	}
	return values
}

// SetCurrentLuminances writes smoothed working values back in id order.
// Original luminances are untouched.
func (r *Registry) SetCurrentLuminances(values []float64) error {
	if len(values) != len(r.frames) {
		return fmt.Errorf("luminance count changed: got %d, want %d", len(values), len(r.frames))
	}
	for i := range r.frames {
		r.frames[i].CurrentLuminance = values[i]
	}
	return nil
}
