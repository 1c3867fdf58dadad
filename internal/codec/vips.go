package codec

import (
	"fmt"
	"sync"

	"timelapse-deflicker/internal/logging"

	"github.com/davidbyttow/govips/v2/vips"
)

var (
	vipsInitialized bool
	vipsInitMutex   sync.Mutex
	vipsAvailable   bool
)

// InitVips initializes the libvips library.
// This should be called once at startup; when it is skipped the vips codec
// transparently uses the pure-Go path.
func InitVips() {
	vipsInitMutex.Lock()
	defer vipsInitMutex.Unlock()

	if vipsInitialized {
		return
	}

	// Forward vips messages into our leveled logger, suppressing chatter
	// below the configured level.
	vipsLogLevel := vips.LogLevelWarning
	if logging.IsDebugEnabled() {
		vipsLogLevel = vips.LogLevelInfo
	}
	vips.LoggingSettings(func(domain string, level vips.LogLevel, msg string) {
		switch {
		case level <= vips.LogLevelCritical:
			logging.Error("[%s] %s", domain, msg)
		case level == vips.LogLevelWarning:
			logging.Warn("[%s] %s", domain, msg)
		default:
			logging.Debug("[%s] %s", domain, msg)
		}
	}, vipsLogLevel)

	// Workers already parallelize across frames; keep vips itself serial
	// per image and its operation cache small.
	vips.Startup(&vips.Config{
		ConcurrencyLevel: 1,
		MaxCacheMem:      50 * 1024 * 1024,
		MaxCacheSize:     100,
	})

	vipsInitialized = true
	vipsAvailable = true
	logging.Info("libvips initialized (version: %s)", vips.Version)
}

// ShutdownVips cleans up libvips resources.
func ShutdownVips() {
	vipsInitMutex.Lock()
	defer vipsInitMutex.Unlock()

	if vipsInitialized {
		vips.Shutdown()
		vipsInitialized = false
		vipsAvailable = false
	}
}

// IsVipsAvailable returns whether libvips is initialized and available.
func IsVipsAvailable() bool {
	vipsInitMutex.Lock()
	defer vipsInitMutex.Unlock()
	return vipsAvailable
}

// Vips is the default codec. When libvips is initialized it applies the
// brightness scale there (a single linear operation per frame, decode and
// encode included), which is considerably faster and lighter on the heap
// than the pure-Go path for large stills; everything else, and every
// format beyond JPEG/PNG, falls back to the embedded Imaging codec.
type Vips struct {
	*Imaging
}

// New returns the codec used by the pipeline: vips-accelerated when
// InitVips has run, pure Go otherwise.
func New(jpegQuality int) *Vips {
	return &Vips{Imaging: NewImaging(jpegQuality)}
}

// ApplyBrightnessPercent scales brightness via vips.Linear when possible.
func (c *Vips) ApplyBrightnessPercent(path string, percent float64) ([]byte, error) {
	if !IsVipsAvailable() || (!isJPEG(path) && !isPNG(path)) {
		return c.Imaging.ApplyBrightnessPercent(path, percent)
	}

	ref, err := vips.LoadImageFromFile(path, vips.NewImportParams())
	if err != nil {
		return nil, fmt.Errorf("vips failed to load %s: %w", path, err)
	}
	defer ref.Close()

	if err := ref.AutoRotate(); err != nil {
		return nil, fmt.Errorf("vips failed to auto-rotate %s: %w", path, err)
	}

	scale := percent / 100
	if err := ref.Linear1(scale, 0); err != nil {
		return nil, fmt.Errorf("vips failed to scale %s: %w", path, err)
	}

	if isJPEG(path) {
		data, _, err := ref.ExportJpeg(&vips.JpegExportParams{
			Quality:        c.jpegQuality,
			OptimizeCoding: true,
		})
		if err != nil {
			return nil, fmt.Errorf("vips failed to encode %s: %w", path, err)
		}
		return data, nil
	}

	data, _, err := ref.ExportPng(&vips.PngExportParams{Compression: 6})
	if err != nil {
		return nil, fmt.Errorf("vips failed to encode %s: %w", path, err)
	}
	return data, nil
}
