package startup

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func baseOptions(t *testing.T) Options {
	t.Helper()
	return Options{
		SourceDir: t.TempDir(),
		OutputDir: filepath.Join(t.TempDir(), "out"),
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	config, err := LoadConfig(baseOptions(t))
	if err != nil {
		t.Fatalf("LoadConfig error: %v", err)
	}

	if config.Window != DefaultWindow {
		t.Errorf("Window = %d, want default %d", config.Window, DefaultWindow)
	}
	if config.Passes != DefaultPasses {
		t.Errorf("Passes = %d, want default %d", config.Passes, DefaultPasses)
	}
	if config.JPEGQuality != DefaultJPEGQuality {
		t.Errorf("JPEGQuality = %d, want default %d", config.JPEGQuality, DefaultJPEGQuality)
	}
	if config.CacheBackend != CacheSidecar {
		t.Errorf("CacheBackend = %q, want %q", config.CacheBackend, CacheSidecar)
	}
	if config.Workers < 1 {
		t.Errorf("Workers = %d, want at least 1", config.Workers)
	}
}

func TestLoadConfigCreatesOutputDir(t *testing.T) {
	opts := baseOptions(t)

	config, err := LoadConfig(opts)
	if err != nil {
		t.Fatalf("LoadConfig error: %v", err)
	}

	info, err := os.Stat(config.OutputDir)
	if err != nil {
		t.Fatalf("output directory missing: %v", err)
	}
	if !info.IsDir() {
		t.Error("output path is not a directory")
	}
}

func TestLoadConfigValidation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Options)
		wantErr string
	}{
		{
			"NoInput",
			func(o *Options) { o.SourceDir = "" },
			"source directory or a frame list",
		},
		{
			"BothInputs",
			func(o *Options) { o.ListFile = "/tmp/frames.txt" },
			"mutually exclusive",
		},
		{
			"NoOutput",
			func(o *Options) { o.OutputDir = "" },
			"output directory is required",
		},
		{
			"WindowTooSmall",
			func(o *Options) { o.Window = -1 },
			"at least 2 frames",
		},
		{
			"NegativePasses",
			func(o *Options) { o.Passes = -2 },
			"at least 1",
		},
		{
			"NegativeWorkers",
			func(o *Options) { o.Workers = -4 },
			"worker count",
		},
		{
			"QualityOutOfRange",
			func(o *Options) { o.JPEGQuality = 150 },
			"1-100",
		},
		{
			"UnknownBackend",
			func(o *Options) { o.CacheBackend = "redis" },
			"unknown cache backend",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := baseOptions(t)
			tt.mutate(&opts)

			_, err := LoadConfig(opts)
			if err == nil {
				t.Fatal("LoadConfig accepted invalid options")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %q, want it to mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoadConfigMissingSourceDir(t *testing.T) {
	opts := baseOptions(t)
	opts.SourceDir = filepath.Join(t.TempDir(), "does-not-exist")

	if _, err := LoadConfig(opts); err == nil {
		t.Error("LoadConfig accepted a missing source directory")
	}
}

func TestLoadConfigFromFile(t *testing.T) {
	dir := t.TempDir()
	src := t.TempDir()
	configPath := filepath.Join(dir, "deflicker.yaml")

	content := "sourceDir: " + src + "\n" +
		"outputDir: " + filepath.Join(dir, "out") + "\n" +
		"window: 21\n" +
		"passes: 3\n" +
		"jpegQuality: 80\n" +
		"cacheBackend: sqlite\n"
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	config, err := LoadConfig(Options{ConfigFile: configPath})
	if err != nil {
		t.Fatalf("LoadConfig error: %v", err)
	}

	if config.Window != 21 || config.Passes != 3 || config.JPEGQuality != 80 {
		t.Errorf("file values not applied: window=%d passes=%d quality=%d",
			config.Window, config.Passes, config.JPEGQuality)
	}
	if config.CacheBackend != CacheSQLite {
		t.Errorf("CacheBackend = %q, want sqlite", config.CacheBackend)
	}
	if config.CachePath != filepath.Join(config.OutputDir, "luminance.db") {
		t.Errorf("CachePath = %q, want default under output dir", config.CachePath)
	}
}

func TestLoadConfigFlagsOverrideFile(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "deflicker.yaml")
	if err := os.WriteFile(configPath, []byte("window: 21\npasses: 4\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	opts := baseOptions(t)
	opts.ConfigFile = configPath
	opts.Window = 5

	config, err := LoadConfig(opts)
	if err != nil {
		t.Fatalf("LoadConfig error: %v", err)
	}

	if config.Window != 5 {
		t.Errorf("Window = %d, want flag value 5", config.Window)
	}
	if config.Passes != 4 {
		t.Errorf("Passes = %d, want file value 4", config.Passes)
	}
}

func TestLoadConfigRejectsUnknownFileKeys(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "deflicker.yaml")
	if err := os.WriteFile(configPath, []byte("winow: 5\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	opts := baseOptions(t)
	opts.ConfigFile = configPath

	if _, err := LoadConfig(opts); err == nil {
		t.Error("LoadConfig accepted a config file with an unknown key")
	}
}
