package pipeline

import (
	"context"
	"fmt"
	"time"

	"timelapse-deflicker/internal/apply"
	"timelapse-deflicker/internal/codec"
	"timelapse-deflicker/internal/discovery"
	"timelapse-deflicker/internal/executor"
	"timelapse-deflicker/internal/frame"
	"timelapse-deflicker/internal/logging"
	"timelapse-deflicker/internal/luminance"
	"timelapse-deflicker/internal/metastore"
	"timelapse-deflicker/internal/progress"
	"timelapse-deflicker/internal/smoothing"
)

// Pipeline wires the three deflicker phases together: parallel luminance
// analysis, sequential smoothing, and parallel brightness correction.
type Pipeline struct {
	SourceDir string
	ListFile  string
	OutputDir string
	Workers   int

	Codec    codec.Codec
	Store    metastore.Store
	Smoother *smoothing.Smoother
}

// Stats summarizes a completed run.
type Stats struct {
	Frames  int
	Elapsed time.Duration
}

// Run executes the full pipeline. Any failure in any phase aborts the run;
// frames already written to the output directory are left in place but the
// run as a whole is reported failed.
func (p *Pipeline) Run(ctx context.Context) (Stats, error) {
	start := time.Now()

	registry, err := p.discover()
	if err != nil {
		return Stats{}, err
	}
	logging.Info("Sequence of %d frames, %d workers", registry.Len(), p.Workers)

	if err := p.analyze(ctx, registry); err != nil {
		return Stats{}, err
	}
	p.smooth(registry)
	if err := p.correct(registry); err != nil {
		return Stats{}, err
	}

	return Stats{Frames: registry.Len(), Elapsed: time.Since(start)}, nil
}

// discover resolves the frame sequence from whichever source is configured.
func (p *Pipeline) discover() (*frame.Registry, error) {
	var paths []string
	var err error

	switch {
	case p.ListFile != "":
		paths, err = discovery.FromListFile(p.ListFile)
	default:
		paths, err = discovery.FromDirectory(p.SourceDir)
	}
	if err != nil {
		return nil, err
	}

	return frame.NewRegistry(paths)
}

// analyze fills every frame's original luminance in parallel.
func (p *Pipeline) analyze(ctx context.Context, registry *frame.Registry) error {
	logging.Info("Analyzing frame luminance...")
	phaseStart := time.Now()

	computer := luminance.NewComputer(p.Codec, p.Store)
	bar := progress.NewBar("Analyze", registry.Len())

	frames, err := executor.Run(registry.Frames(), p.Workers, computer.Op(ctx), bar.Add1)
	bar.Finish()
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}
	if err := registry.SetFrames(frames); err != nil {
		return err
	}

	logging.Info("  [OK] Analysis complete in %v", time.Since(phaseStart).Round(time.Millisecond))
	return nil
}

// smooth runs the configured rolling-average passes over the luminance
// series. This phase is sequential: it is pure arithmetic on N floats and
// every frame's window depends on its neighbours.
func (p *Pipeline) smooth(registry *frame.Registry) {
	logging.Info("Smoothing luminance (window %d, %d passes)...",
		p.Smoother.Window(), p.Smoother.Passes())

	smoothed := p.Smoother.Smooth(registry.CurrentLuminances())
	if err := registry.SetCurrentLuminances(smoothed); err != nil {
		// Smooth preserves length, so this is unreachable with a valid registry.
		panic(err)
	}

	logging.Info("  [OK] Smoothing complete")
}

// correct rescales and writes every frame in parallel.
func (p *Pipeline) correct(registry *frame.Registry) error {
	logging.Info("Writing corrected frames...")
	phaseStart := time.Now()

	applier := apply.New(p.Codec, p.OutputDir)
	bar := progress.NewBar("Correct", registry.Len())

	frames, err := executor.Run(registry.Frames(), p.Workers, applier.Op(), bar.Add1)
	bar.Finish()
	if err != nil {
		return fmt.Errorf("correction failed: %w", err)
	}
	if err := registry.SetFrames(frames); err != nil {
		return err
	}

	logging.Info("  [OK] Correction complete in %v", time.Since(phaseStart).Round(time.Millisecond))
	return nil
}
