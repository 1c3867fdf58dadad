package smoothing

import (
	"fmt"
)

// Smoother computes a rolling average of the frame luminance series. The
// window is centred on each frame (biased one frame toward the past when
// the width is even) and shrinks at the ends of the sequence rather than
// padding.
type Smoother struct {
	window int
	passes int
}

// New validates the window width and pass count. A window below two frames
// would degenerate into the identity transform, so it is rejected outright.
func New(window, passes int) (*Smoother, error) {
	if window < 2 {
		return nil, fmt.Errorf("rolling window must cover at least 2 frames, got %d", window)
	}
	if passes < 1 {
		return nil, fmt.Errorf("pass count must be at least 1, got %d", passes)
	}
	return &Smoother{window: window, passes: passes}, nil
}

// Window reports the configured window width.
func (s *Smoother) Window() int { return s.window }

// Passes reports the configured pass count.
func (s *Smoother) Passes() int { return s.passes }

// Smooth returns the smoothed luminance series. The input slice is not
// modified.
//
// Every pass reads exclusively from the previous pass's completed output:
// frame i's neighbours contribute their pre-pass values even when they sit
// earlier in the sequence and have already been averaged. Without that
// double buffering the result would depend on iteration order.
func (s *Smoother) Smooth(values []float64) []float64 {
	cur := make([]float64, len(values))
	copy(cur, values)
	next := make([]float64, len(values))

	lowHalf := s.window / 2
	highHalf := s.window - lowHalf

	for pass := 0; pass < s.passes; pass++ {
		for i := range cur {
			var sum float64
			var count int
			for j := i - lowHalf; j < i+highHalf; j++ {
				if j < 0 || j >= len(cur) {
					continue
				}
				sum += cur[j]
				count++
			}
			next[i] = sum / float64(count)
		}
		cur, next = next, cur
	}
	return cur
}
