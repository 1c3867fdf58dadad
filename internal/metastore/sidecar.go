package metastore

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"os"

	"timelapse-deflicker/internal/logging"
)

// SidecarSuffix is appended to a frame path to form its sidecar location.
const SidecarSuffix = ".luminance.json"

// sidecarRecord is the on-disk sidecar format.
type sidecarRecord struct {
	OriginalLuminance float64 `json:"originalLuminance"`
}

// SidecarStore keeps one small JSON record next to each source frame.
// It needs no shared state: every frame's sidecar is an independent file,
// so concurrent workers never contend.
type SidecarStore struct{}

// NewSidecar creates a sidecar-file store.
func NewSidecar() *SidecarStore {
	return &SidecarStore{}
}

// Get reads the frame's sidecar. A missing file, malformed JSON, or a
// non-finite value all count as cache misses, never as failures: the worst
// outcome of a corrupt sidecar is recomputing one frame.
func (s *SidecarStore) Get(_ context.Context, path string) (float64, bool, error) {
	data, err := os.ReadFile(path + SidecarSuffix)
	if os.IsNotExist(err) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("failed to read sidecar for %s: %w", path, err)
	}

	var rec sidecarRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		logging.Debug("Ignoring malformed sidecar for %s: %v", path, err)
		return 0, false, nil
	}
	if math.IsNaN(rec.OriginalLuminance) || math.IsInf(rec.OriginalLuminance, 0) {
		logging.Debug("Ignoring non-finite sidecar value for %s", path)
		return 0, false, nil
	}

	return rec.OriginalLuminance, true, nil
}

// Set writes the frame's sidecar, replacing any previous record.
func (s *SidecarStore) Set(_ context.Context, path string, value float64) error {
	data, err := json.Marshal(sidecarRecord{OriginalLuminance: value})
	if err != nil {
		return fmt.Errorf("failed to encode sidecar for %s: %w", path, err)
	}
	if err := os.WriteFile(path+SidecarSuffix, data, 0o644); err != nil {
		return fmt.Errorf("failed to write sidecar for %s: %w", path, err)
	}
	return nil
}

// Close is a no-op; sidecar files hold no open handles.
func (s *SidecarStore) Close() error {
	return nil
}
