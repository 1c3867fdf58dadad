package luminance

import (
	"context"
	"fmt"

	"timelapse-deflicker/internal/codec"
	"timelapse-deflicker/internal/frame"
	"timelapse-deflicker/internal/logging"
	"timelapse-deflicker/internal/metastore"
)

// Rec.601 luma weights. Perceived brightness is dominated by green, which
// is why a plain channel mean over-reacts to blue-heavy flicker.
const (
	weightR = 0.299
	weightG = 0.587
	weightB = 0.114
)

// Weighted combines average channel intensities into the luminance metric.
func Weighted(r, g, b float64) float64 {
	return weightR*r + weightG*g + weightB*b
}

// Computer produces each frame's immutable original luminance, from the
// metadata cache when possible and from codec pixel statistics otherwise.
type Computer struct {
	codec codec.Codec
	store metastore.Store
}

// NewComputer creates a Computer over the given codec and metadata store.
func NewComputer(c codec.Codec, s metastore.Store) *Computer {
	return &Computer{codec: c, store: s}
}

// Op returns the per-frame operation for the parallel analysis phase.
func (c *Computer) Op(ctx context.Context) func(frame.Frame) (frame.Frame, error) {
	return func(f frame.Frame) (frame.Frame, error) {
		return c.Compute(ctx, f)
	}
}

// Compute fills in the frame's original and working luminance.
//
// The cache is authoritative: a finite stored value is used as-is with no
// codec invocation, which is what makes interrupted runs cheap to repeat
// and guarantees identical values across runs. Only on a miss is the frame
// decoded, and the fresh value is persisted immediately so the next run
// hits the cache.
func (c *Computer) Compute(ctx context.Context, f frame.Frame) (frame.Frame, error) {
	if cached, ok, err := c.store.Get(ctx, f.Path); err != nil {
		return f, fmt.Errorf("metadata lookup failed for %s: %w", f.Path, err)
	} else if ok {
		logging.Debug("Frame %d: cached luminance %.3f", f.ID, cached)
		if err := f.SetLuminance(cached); err != nil {
			return f, err
		}
		return f, nil
	}

	r, g, b, err := c.codec.ReadAverageChannels(f.Path)
	if err != nil {
		return f, err
	}

	value := Weighted(r, g, b)
	logging.Debug("Frame %d: computed luminance %.3f (r=%.1f g=%.1f b=%.1f)", f.ID, value, r, g, b)

	if err := f.SetLuminance(value); err != nil {
		return f, err
	}
	if err := c.store.Set(ctx, f.Path, value); err != nil {
		return f, fmt.Errorf("failed to persist luminance for %s: %w", f.Path, err)
	}
	return f, nil
}
