package memory

import (
	"os"
	"runtime/debug"
	"strconv"

	"timelapse-deflicker/internal/logging"
)

// DefaultMemoryRatio is the fraction of the container memory limit handed
// to the Go heap. The remainder covers decoded pixel buffers held outside
// the accounted heap (libvips) and goroutine stacks.
const DefaultMemoryRatio = 0.85

// ConfigureFromEnv sets GOMEMLIMIT from a container memory limit. Decoding
// a batch of large stills is the memory hot spot of the pipeline, so call
// this early in main() before the first frame is opened.
//
// Environment variables:
//   - GOMEMLIMIT: if set, the Go runtime already applied it; nothing to do
//   - MEMORY_LIMIT: container memory limit in bytes
//   - MEMORY_RATIO: optional fraction of the limit to use (default 0.85)
func ConfigureFromEnv() {
	if goMemLimit := os.Getenv("GOMEMLIMIT"); goMemLimit != "" {
		logging.Info("GOMEMLIMIT set via environment: %s", goMemLimit)
		return
	}

	memLimitStr := os.Getenv("MEMORY_LIMIT")
	if memLimitStr == "" {
		logging.Debug("MEMORY_LIMIT not set, GOMEMLIMIT will not be configured automatically")
		return
	}

	memLimit, err := strconv.ParseInt(memLimitStr, 10, 64)
	if err != nil || memLimit <= 0 {
		logging.Warn("Failed to parse MEMORY_LIMIT %q, ignoring", memLimitStr)
		return
	}

	ratio := DefaultMemoryRatio
	if ratioStr := os.Getenv("MEMORY_RATIO"); ratioStr != "" {
		parsed, err := strconv.ParseFloat(ratioStr, 64)
		if err == nil && parsed > 0 && parsed <= 1.0 {
			ratio = parsed
		} else {
			logging.Warn("MEMORY_RATIO %q invalid, using default %.2f", ratioStr, DefaultMemoryRatio)
		}
	}

	goMemLimit := int64(float64(memLimit) * ratio)
	debug.SetMemoryLimit(goMemLimit)

	logging.Info("Configured GOMEMLIMIT: %s (%.0f%% of %s container limit)",
		formatBytes(goMemLimit), ratio*100, formatBytes(memLimit))
}

// formatBytes formats bytes into a human-readable string
func formatBytes(b int64) string {
	const unit = 1024
	if b < unit {
		return strconv.FormatInt(b, 10) + " B"
	}
	div, exp := int64(unit), 0
	for n := b / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return strconv.FormatFloat(float64(b)/float64(div), 'f', 1, 64) + " " + string("KMGTPE"[exp]) + "iB"
}
