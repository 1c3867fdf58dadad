package metastore

import "context"

// Store persists the original luminance of each frame across runs, keyed by
// the frame's filename. It is the caching contract that makes re-running
// the pipeline cheap: a populated store means the analysis phase never has
// to decode a frame twice.
//
// Get reports ok=false for absent or unparseable records — both are cache
// misses and trigger recomputation — and returns an error only for real
// I/O failures. Set creates the record or updates it in place.
//
// Implementations must be safe for concurrent use: the analysis phase calls
// Get and Set from every worker.
type Store interface {
	Get(ctx context.Context, path string) (value float64, ok bool, err error)
	Set(ctx context.Context, path string, value float64) error
	Close() error
}
