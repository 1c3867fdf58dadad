// Package main provides the entry point for the timelapse deflicker tool.
//
// The tool removes brightness flicker from time-lapse frame sequences. It
// measures each frame's perceptual luminance, smooths the luminance series
// with a rolling average, and rewrites each frame scaled toward its
// smoothed target. Original frames are never modified; corrected copies
// land in a flat output directory under their source basenames.
//
// # Run Lifecycle
//
// A run proceeds through a fixed sequence of phases:
//
//  1. Memory Configuration: Sets GOMEMLIMIT from environment or cgroup limits
//  2. Configuration Loading: Merges flags, the optional YAML config file,
//     and built-in defaults, then validates and prepares directories
//  3. libvips Initialization: Enables accelerated JPEG/PNG correction when
//     the library is present (pure-Go fallback otherwise)
//  4. Discovery: Resolves the frame sequence from a sorted source directory
//     or a verbatim frame list file
//  5. Analysis: Computes per-frame luminance in parallel, consulting the
//     luminance cache first
//  6. Smoothing: Applies the configured rolling-average passes over the
//     luminance series
//  7. Correction: Rescales and writes every frame in parallel
//
// Each parallel phase partitions frames across workers by frame id modulo
// the worker count and waits on a barrier before the next phase starts. Any
// error in any phase aborts the run.
//
// # Luminance Cache
//
// Per-frame luminance is persisted so repeated runs over the same sequence
// skip the decode work entirely:
//
//   - sidecar (default): one small JSON file next to each source frame
//   - sqlite: a single database, by default luminance.db in the output
//     directory
//
// # Configuration
//
// Flags take precedence over the config file, which takes precedence over
// built-in defaults:
//
//   - -source: directory containing the frame sequence
//   - -list: file listing frame paths (mutually exclusive with -source)
//   - -output: directory for corrected frames (required)
//   - -window: rolling average window in frames
//   - -passes: number of smoothing passes
//   - -workers: parallel workers (default: one per CPU)
//   - -cache / -cache-path: luminance cache backend and location
//   - -quality: JPEG output quality
//   - -config: optional YAML file carrying any of the above
//
// Environment variables:
//
//   - DEFLICKER_WORKERS: overrides the computed worker count
//   - LOG_LEVEL: logging level (debug/info/warn/error)
//   - GOMEMLIMIT / MEMORY_LIMIT / MEMORY_RATIO: memory limit tuning
//
// # Build Requirements
//
// CGO is required for SQLite and libvips:
//
//   - SQLite: the sqlite cache backend
//   - libvips: accelerated brightness correction (optional at runtime)
//
// # Related Packages
//
//   - [timelapse-deflicker/internal/pipeline]: phase orchestration
//   - [timelapse-deflicker/internal/discovery]: frame sequence resolution
//   - [timelapse-deflicker/internal/luminance]: the brightness metric
//   - [timelapse-deflicker/internal/smoothing]: rolling-average smoothing
//   - [timelapse-deflicker/internal/codec]: decoding and re-encoding
//   - [timelapse-deflicker/internal/metastore]: the luminance cache
//   - [timelapse-deflicker/internal/startup]: configuration and startup logs
package main
