package startup

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"timelapse-deflicker/internal/logging"
	"timelapse-deflicker/internal/workers"

	"gopkg.in/yaml.v2"
)

// Build-time variables (injected via -ldflags)
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
	GoVersion = runtime.Version()
)

// BuildInfo contains version and build information
type BuildInfo struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildTime string `json:"buildTime"`
	GoVersion string `json:"goVersion"`
	OS        string `json:"os"`
	Arch      string `json:"arch"`
}

// GetBuildInfo returns the current build information
func GetBuildInfo() BuildInfo {
	return BuildInfo{
		Version:   Version,
		Commit:    Commit,
		BuildTime: BuildTime,
		GoVersion: GoVersion,
		OS:        runtime.GOOS,
		Arch:      runtime.GOARCH,
	}
}

// Cache backends selectable via -cache.
const (
	CacheSidecar = "sidecar"
	CacheSQLite  = "sqlite"
)

// Built-in defaults, applied after flags and the config file.
const (
	DefaultWindow      = 10
	DefaultPasses      = 1
	DefaultJPEGQuality = 95
)

// Options carries raw command-line values into LoadConfig. Zero values
// mean "not set on the command line" and yield to the config file and
// then to the built-in defaults.
type Options struct {
	ConfigFile   string
	SourceDir    string
	ListFile     string
	OutputDir    string
	Window       int
	Passes       int
	Workers      int
	CacheBackend string
	CachePath    string
	JPEGQuality  int
}

// Config holds the fully resolved and validated run configuration.
type Config struct {
	SourceDir    string
	ListFile     string
	OutputDir    string
	Window       int
	Passes       int
	Workers      int
	CacheBackend string
	CachePath    string
	JPEGQuality  int
}

// fileConfig mirrors the optional YAML config file.
type fileConfig struct {
	SourceDir    string `yaml:"sourceDir"`
	ListFile     string `yaml:"listFile"`
	OutputDir    string `yaml:"outputDir"`
	Window       int    `yaml:"window"`
	Passes       int    `yaml:"passes"`
	Workers      int    `yaml:"workers"`
	CacheBackend string `yaml:"cacheBackend"`
	CachePath    string `yaml:"cachePath"`
	JPEGQuality  int    `yaml:"jpegQuality"`
}

// LoadConfig resolves the run configuration from flags, the optional YAML
// config file, and built-in defaults, in that order of precedence, then
// validates it and prepares the output directory.
func LoadConfig(opts Options) (*Config, error) {
	printBanner()
	logSystemInfo()

	if opts.ConfigFile != "" {
		fc, err := readConfigFile(opts.ConfigFile)
		if err != nil {
			return nil, err
		}
		applyFileConfig(&opts, fc)
	}

	config := &Config{
		SourceDir:    opts.SourceDir,
		ListFile:     opts.ListFile,
		OutputDir:    opts.OutputDir,
		Window:       intOr(opts.Window, DefaultWindow),
		Passes:       intOr(opts.Passes, DefaultPasses),
		Workers:      opts.Workers,
		CacheBackend: stringOr(opts.CacheBackend, CacheSidecar),
		CachePath:    opts.CachePath,
		JPEGQuality:  intOr(opts.JPEGQuality, DefaultJPEGQuality),
	}

	if config.Workers < 0 {
		return nil, fmt.Errorf("worker count must be at least 1, got %d", config.Workers)
	}
	if config.Workers == 0 {
		config.Workers = workers.ForCPU(0)
	}

	logging.Info("------------------------------------------------------------")
	logging.Info("CONFIGURATION")
	logging.Info("------------------------------------------------------------")
	logging.Info("  Source directory:  %s", valueOrDash(config.SourceDir))
	logging.Info("  Frame list file:   %s", valueOrDash(config.ListFile))
	logging.Info("  Output directory:  %s", config.OutputDir)
	logging.Info("  Rolling window:    %d frames", config.Window)
	logging.Info("  Smoothing passes:  %d", config.Passes)
	logging.Info("  Workers:           %d", config.Workers)
	logging.Info("  Cache backend:     %s", config.CacheBackend)
	logging.Info("  JPEG quality:      %d", config.JPEGQuality)
	logging.Info("  Log level:         %s", logging.GetLevel())

	if err := validate(config); err != nil {
		return nil, err
	}

	if err := resolvePaths(config); err != nil {
		return nil, err
	}

	return config, nil
}

func validate(config *Config) error {
	switch {
	case config.SourceDir == "" && config.ListFile == "":
		return fmt.Errorf("either a source directory or a frame list file is required")
	case config.SourceDir != "" && config.ListFile != "":
		return fmt.Errorf("source directory and frame list file are mutually exclusive")
	}

	if config.OutputDir == "" {
		return fmt.Errorf("an output directory is required")
	}
	if config.Window < 2 {
		return fmt.Errorf("rolling window must cover at least 2 frames, got %d", config.Window)
	}
	if config.Passes < 1 {
		return fmt.Errorf("pass count must be at least 1, got %d", config.Passes)
	}
	if config.JPEGQuality < 1 || config.JPEGQuality > 100 {
		return fmt.Errorf("JPEG quality must be within 1-100, got %d", config.JPEGQuality)
	}
	if config.CacheBackend != CacheSidecar && config.CacheBackend != CacheSQLite {
		return fmt.Errorf("unknown cache backend %q (valid: %s, %s)",
			config.CacheBackend, CacheSidecar, CacheSQLite)
	}
	return nil
}

func resolvePaths(config *Config) error {
	logging.Info("")
	logging.Info("------------------------------------------------------------")
	logging.Info("DIRECTORY SETUP")
	logging.Info("------------------------------------------------------------")

	var err error
	if config.SourceDir != "" {
		config.SourceDir, err = filepath.Abs(config.SourceDir)
		if err != nil {
			return fmt.Errorf("failed to resolve source directory path: %w", err)
		}
		info, err := os.Stat(config.SourceDir)
		if err != nil {
			return fmt.Errorf("source directory error: %w", err)
		}
		if !info.IsDir() {
			return fmt.Errorf("source path %s is not a directory", config.SourceDir)
		}
		logging.Info("  Source directory (absolute): %s", config.SourceDir)
	}

	if config.ListFile != "" {
		config.ListFile, err = filepath.Abs(config.ListFile)
		if err != nil {
			return fmt.Errorf("failed to resolve frame list path: %w", err)
		}
		if _, err := os.Stat(config.ListFile); err != nil {
			return fmt.Errorf("frame list error: %w", err)
		}
		logging.Info("  Frame list (absolute): %s", config.ListFile)
	}

	config.OutputDir, err = filepath.Abs(config.OutputDir)
	if err != nil {
		return fmt.Errorf("failed to resolve output directory path: %w", err)
	}
	if err := os.MkdirAll(config.OutputDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	logging.Debug("  Testing output directory write access...")
	if err := testWriteAccess(config.OutputDir); err != nil {
		return fmt.Errorf("output directory is not writable: %w", err)
	}
	logging.Info("  [OK] Output directory is writable: %s", config.OutputDir)

	if config.CacheBackend == CacheSQLite && config.CachePath == "" {
		config.CachePath = filepath.Join(config.OutputDir, "luminance.db")
		logging.Debug("  Cache database defaults to %s", config.CachePath)
	}

	return nil
}

// LogRunComplete logs the final summary for a successful run.
func LogRunComplete(frames int, elapsed time.Duration) {
	logging.Info("")
	logging.Info("------------------------------------------------------------")
	logging.Info("RUN COMPLETE")
	logging.Info("------------------------------------------------------------")
	logging.Info("  [OK] Corrected %d frames in %v", frames, elapsed.Round(time.Millisecond))
	logging.Info("")
}

// LogFatal logs a fatal error and exits
func LogFatal(format string, args ...interface{}) {
	logging.Error(format, args...)
	os.Exit(1)
}

// Helper functions

func printBanner() {
	banner := `
------------------------------------------------------------
    ____       ______ _      __
   / __ \___  / __/ (_)____/ /_____  _____
  / / / / _ \/ /_/ / / ___/ //_/ _ \/ ___/
 / /_/ /  __/ __/ / / /__/ ,< /  __/ /
/_____/\___/_/ /_/_/\___/_/|_|\___/_/

------------------------------------------------------------`
	fmt.Println(banner)
	logging.Info("  Version:    %s", Version)
	logging.Info("  Commit:     %s", Commit)
	logging.Info("  Build Time: %s", BuildTime)
	logging.Info("  Started:    %s", time.Now().Format(time.RFC1123))
	logging.Info("")
}

func logSystemInfo() {
	logging.Info("------------------------------------------------------------")
	logging.Info("SYSTEM INFORMATION")
	logging.Info("------------------------------------------------------------")
	logging.Info("  Go version:      %s", runtime.Version())
	logging.Info("  OS/Arch:         %s/%s", runtime.GOOS, runtime.GOARCH)
	logging.Info("  CPUs available:  %d", runtime.NumCPU())
	logging.Info("  GOMAXPROCS:      %d", runtime.GOMAXPROCS(0))

	if runtime.GOMAXPROCS(0) < runtime.NumCPU() {
		logging.Info("  (Container CPU limit detected)")
	}

	logging.Info("")
}

func readConfigFile(path string) (*fileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var fc fileConfig
	if err := yaml.UnmarshalStrict(data, &fc); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	logging.Debug("Loaded config file %s", path)
	return &fc, nil
}

// applyFileConfig fills in options the command line left unset.
func applyFileConfig(opts *Options, fc *fileConfig) {
	opts.SourceDir = stringOr(opts.SourceDir, fc.SourceDir)
	opts.ListFile = stringOr(opts.ListFile, fc.ListFile)
	opts.OutputDir = stringOr(opts.OutputDir, fc.OutputDir)
	opts.Window = intOr(opts.Window, fc.Window)
	opts.Passes = intOr(opts.Passes, fc.Passes)
	opts.Workers = intOr(opts.Workers, fc.Workers)
	opts.CacheBackend = stringOr(opts.CacheBackend, fc.CacheBackend)
	opts.CachePath = stringOr(opts.CachePath, fc.CachePath)
	opts.JPEGQuality = intOr(opts.JPEGQuality, fc.JPEGQuality)
}

func testWriteAccess(dir string) error {
	testFile := filepath.Join(dir, ".write-test")
	if err := os.WriteFile(testFile, []byte("test"), 0o644); err != nil {
		return err
	}
	if err := os.Remove(testFile); err != nil {
		logging.Warn("failed to remove write test file %s: %v", testFile, err)
		// Don't return error since write access was confirmed
	}
	return nil
}

func stringOr(value, fallback string) string {
	if value != "" {
		return value
	}
	return fallback
}

func intOr(value, fallback int) int {
	if value != 0 {
		return value
	}
	return fallback
}

func valueOrDash(value string) string {
	if value == "" {
		return "-"
	}
	return value
}
