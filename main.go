package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"timelapse-deflicker/internal/codec"
	"timelapse-deflicker/internal/logging"
	"timelapse-deflicker/internal/memory"
	"timelapse-deflicker/internal/metastore"
	"timelapse-deflicker/internal/pipeline"
	"timelapse-deflicker/internal/smoothing"
	"timelapse-deflicker/internal/startup"
)

func main() {
	opts := parseFlags()

	// Configure memory limits before any image is decoded
	memory.ConfigureFromEnv()

	// Load configuration
	config, err := startup.LoadConfig(opts)
	if err != nil {
		startup.LogFatal("Configuration error: %v", err)
	}

	// Initialize libvips; pure-Go decoding remains the fallback
	codec.InitVips()
	defer codec.ShutdownVips()

	// Open the luminance cache
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := openStore(ctx, config)
	if err != nil {
		startup.LogFatal("Failed to open luminance cache: %v", err)
	}
	defer store.Close()

	smoother, err := smoothing.New(config.Window, config.Passes)
	if err != nil {
		startup.LogFatal("Invalid smoothing parameters: %v", err)
	}

	p := &pipeline.Pipeline{
		SourceDir: config.SourceDir,
		ListFile:  config.ListFile,
		OutputDir: config.OutputDir,
		Workers:   config.Workers,
		Codec:     codec.New(config.JPEGQuality),
		Store:     store,
		Smoother:  smoother,
	}

	stats, err := p.Run(ctx)
	if err != nil {
		startup.LogFatal("Run failed: %v", err)
	}

	startup.LogRunComplete(stats.Frames, stats.Elapsed)
}

func parseFlags() startup.Options {
	var opts startup.Options

	flag.StringVar(&opts.ConfigFile, "config", "", "optional YAML config file")
	flag.StringVar(&opts.SourceDir, "source", "", "directory containing the frame sequence")
	flag.StringVar(&opts.ListFile, "list", "", "file listing frame paths, one per line")
	flag.StringVar(&opts.OutputDir, "output", "", "directory for corrected frames (created if missing)")
	flag.IntVar(&opts.Window, "window", 0,
		fmt.Sprintf("rolling average window in frames (default %d)", startup.DefaultWindow))
	flag.IntVar(&opts.Passes, "passes", 0,
		fmt.Sprintf("number of smoothing passes (default %d)", startup.DefaultPasses))
	flag.IntVar(&opts.Workers, "workers", 0, "parallel workers (default: one per CPU)")
	flag.StringVar(&opts.CacheBackend, "cache", "",
		fmt.Sprintf("luminance cache backend: %s or %s (default %s)",
			startup.CacheSidecar, startup.CacheSQLite, startup.CacheSidecar))
	flag.StringVar(&opts.CachePath, "cache-path", "",
		"sqlite cache location (default: luminance.db in the output directory)")
	flag.IntVar(&opts.JPEGQuality, "quality", 0,
		fmt.Sprintf("JPEG output quality 1-100 (default %d)", startup.DefaultJPEGQuality))
	version := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *version {
		info := startup.GetBuildInfo()
		fmt.Printf("timelapse-deflicker %s (%s, built %s, %s %s/%s)\n",
			info.Version, info.Commit, info.BuildTime, info.GoVersion, info.OS, info.Arch)
		os.Exit(0)
	}

	return opts
}

func openStore(ctx context.Context, config *startup.Config) (metastore.Store, error) {
	switch config.CacheBackend {
	case startup.CacheSQLite:
		logging.Debug("Using sqlite luminance cache at %s", config.CachePath)
		return metastore.NewSQLite(ctx, config.CachePath)
	default:
		logging.Debug("Using sidecar luminance cache")
		return metastore.NewSidecar(), nil
	}
}
