package apply

import (
	"fmt"
	"os"
	"path/filepath"

	"timelapse-deflicker/internal/codec"
	"timelapse-deflicker/internal/frame"
	"timelapse-deflicker/internal/logging"
)

// Applier renders corrected frames into a flat output directory. Each
// output file keeps its source basename; the originals are never written.
type Applier struct {
	codec     codec.Codec
	outputDir string
}

// New creates an Applier writing into outputDir, which must already exist.
func New(c codec.Codec, outputDir string) *Applier {
	return &Applier{codec: c, outputDir: outputDir}
}

// Op returns the per-frame operation for the parallel correction phase.
func (a *Applier) Op() func(frame.Frame) (frame.Frame, error) {
	return a.Apply
}

// Apply scales the frame's pixels so its luminance lands on the smoothed
// target and writes the re-encoded result.
func (a *Applier) Apply(f frame.Frame) (frame.Frame, error) {
	percent, err := f.BrightnessPercent()
	if err != nil {
		return f, err
	}

	data, err := a.codec.ApplyBrightnessPercent(f.Path, percent)
	if err != nil {
		return f, fmt.Errorf("failed to correct %s: %w", f.Path, err)
	}

	outPath := filepath.Join(a.outputDir, filepath.Base(f.Path))
	if err := os.WriteFile(outPath, data, 0o644); err != nil {
		return f, fmt.Errorf("failed to write %s: %w", outPath, err)
	}

	logging.Debug("Frame %d: wrote %s at %.2f%% brightness", f.ID, outPath, percent)
	return f, nil
}
