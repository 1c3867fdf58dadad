package executor

import (
	"fmt"

	"timelapse-deflicker/internal/frame"
	"timelapse-deflicker/internal/logging"
	"timelapse-deflicker/internal/partition"
)

// Op is a per-frame operation. It receives a private copy of the frame and
// returns the completed copy; implementations must not share mutable state
// across frames.
type Op func(f frame.Frame) (frame.Frame, error)

// ProgressFunc is an advisory per-frame completion callback. It may be
// called concurrently from several workers and has no influence on result
// reassembly or ordering.
type ProgressFunc func()

// batch is one worker's completed queue, or its failure.
type batch struct {
	queue  int
	frames []frame.Frame
	err    error
}

// Run applies op to every frame across `workers` parallel workers and
// blocks until all of them have reported back (the phase barrier). Frames
// are partitioned by id modulo the worker count, each worker processes its
// queue in ascending order on private copies, and the completed copies are
// reassembled into canonical id order.
//
// Any worker error, panic, or missing result fails the whole phase: a
// partial frame set would silently corrupt the global smoothing and
// brightness computations downstream, so there is no best-effort
// aggregation.
func Run(frames []frame.Frame, workers int, op Op, progress ProgressFunc) ([]frame.Frame, error) {
	queues := partition.Split(len(frames), workers)
	results := make(chan batch, len(queues))

	logging.Debug("Dispatching %d frames to %d workers", len(frames), len(queues))

	for q, queue := range queues {
		// Private copies: the worker never touches the shared slice.
		private := make([]frame.Frame, len(queue))
		for j, i := range queue {
			private[j] = frames[i]
		}
		go work(q, private, op, progress, results)
	}

	// Barrier: every worker must report before any result is consumed.
	batches := make([]batch, 0, len(queues))
	var firstErr error
	for range queues {
		b := <-results
		if b.err != nil && firstErr == nil {
			firstErr = fmt.Errorf("worker %d failed: %w", b.queue, b.err)
		}
		batches = append(batches, b)
	}
	if firstErr != nil {
		return nil, firstErr
	}

	return reassemble(batches, len(frames))
}

// work runs one worker over its private queue. A panic in the operation is
// converted into a batch error so the barrier still closes and the phase
// fails cleanly instead of deadlocking.
func work(q int, private []frame.Frame, op Op, progress ProgressFunc, results chan<- batch) {
	defer func() {
		if r := recover(); r != nil {
			results <- batch{queue: q, err: fmt.Errorf("worker terminated without a result: %v", r)}
		}
	}()

	for j := range private {
		done, err := op(private[j])
		if err != nil {
			results <- batch{queue: q, err: err}
			return
		}
		private[j] = done
		if progress != nil {
			progress()
		}
	}

	results <- batch{queue: q, frames: private}
}

// reassemble places every completed frame back at its id slot and verifies
// the result covers the full contiguous range.
func reassemble(batches []batch, n int) ([]frame.Frame, error) {
	out := make([]frame.Frame, n)
	seen := make([]bool, n)

	for _, b := range batches {
		for _, f := range b.frames {
			if f.ID < 0 || f.ID >= n {
				return nil, fmt.Errorf("worker %d returned frame with invalid id %d", b.queue, f.ID)
			}
			if seen[f.ID] {
				return nil, fmt.Errorf("frame id %d returned twice", f.ID)
			}
			seen[f.ID] = true
			out[f.ID] = f
		}
	}

	for id, ok := range seen {
		if !ok {
			return nil, fmt.Errorf("frame id %d missing from worker results", id)
		}
	}

	return out, nil
}
