package logging

import (
	"testing"
)

func TestLogLevelString(t *testing.T) {
	tests := []struct {
		name     string
		level    LogLevel
		expected string
	}{
		{"Debug", LevelDebug, "debug"},
		{"Info", LevelInfo, "info"},
		{"Warn", LevelWarn, "warn"},
		{"Error", LevelError, "error"},
		{"Unknown", LogLevel(42), "unknown(42)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.level.String(); got != tt.expected {
				t.Errorf("LogLevel.String() = %s, want %s", got, tt.expected)
			}
		})
	}
}

func TestLogLevelOrdering(t *testing.T) {
	if !(LevelDebug < LevelInfo && LevelInfo < LevelWarn && LevelWarn < LevelError) {
		t.Error("log levels are not ordered by increasing severity")
	}
}

func TestGetLevelDefault(t *testing.T) {
	// The level is latched on first use; without DEBUG/LOG_LEVEL set in the
	// test environment it must default to info.
	level := GetLevel()
	if level < LevelDebug || level > LevelError {
		t.Errorf("GetLevel() returned out-of-range level %d", level)
	}
}
