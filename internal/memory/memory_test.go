package memory

import (
	"runtime/debug"
	"testing"
)

func TestConfigureFromEnv(t *testing.T) {
	// Restore whatever limit the test process started with.
	original := debug.SetMemoryLimit(-1)
	defer debug.SetMemoryLimit(original)

	tests := []struct {
		name        string
		memoryLimit string
		memoryRatio string
		expectSet   bool
		expected    int64
	}{
		{"Unset", "", "", false, 0},
		{"Invalid", "lots", "", false, 0},
		{"Negative", "-100", "", false, 0},
		{"DefaultRatio", "1000000000", "", true, 850000000},
		{"CustomRatio", "1000000000", "0.5", true, 500000000},
		{"BadRatioFallsBack", "1000000000", "7", true, 850000000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			debug.SetMemoryLimit(original)
			t.Setenv("GOMEMLIMIT", "")
			t.Setenv("MEMORY_LIMIT", tt.memoryLimit)
			t.Setenv("MEMORY_RATIO", tt.memoryRatio)

			ConfigureFromEnv()

			got := debug.SetMemoryLimit(-1)
			if tt.expectSet {
				if got != tt.expected {
					t.Errorf("GOMEMLIMIT = %d, want %d", got, tt.expected)
				}
			} else if got != original {
				t.Errorf("GOMEMLIMIT changed to %d, want untouched (%d)", got, original)
			}
		})
	}
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		bytes    int64
		expected string
	}{
		{512, "512 B"},
		{1024, "1.0 KiB"},
		{1536, "1.5 KiB"},
		{1073741824, "1.0 GiB"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := formatBytes(tt.bytes); got != tt.expected {
				t.Errorf("formatBytes(%d) = %s, want %s", tt.bytes, got, tt.expected)
			}
		})
	}
}
