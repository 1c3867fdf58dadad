package codec

import (
	"bytes"
	"fmt"
	"strings"

	"timelapse-deflicker/internal/logging"

	"github.com/anthonynsimon/bild/adjust"
	"github.com/disintegration/imaging"
)

// Codec decodes channel statistics from source frames and re-encodes
// brightness-adjusted copies. Both operations are independent per frame and
// safe for concurrent use.
type Codec interface {
	// ReadAverageChannels returns the average R, G and B intensity
	// (0..255) over the whole image.
	ReadAverageChannels(path string) (r, g, b float64, err error)

	// ApplyBrightnessPercent re-encodes the source image with its
	// brightness scaled to the given percentage, 100 meaning unchanged.
	ApplyBrightnessPercent(path string, percent float64) ([]byte, error)
}

// Imaging is the pure-Go codec built on disintegration/imaging for
// decode/encode and bild for the multiplicative brightness scale.
type Imaging struct {
	jpegQuality int
}

// NewImaging creates a pure-Go codec. jpegQuality applies to JPEG output
// only (1-100).
func NewImaging(jpegQuality int) *Imaging {
	return &Imaging{jpegQuality: jpegQuality}
}

// ReadAverageChannels decodes the image and accumulates per-channel sums
// over every pixel. EXIF orientation is applied first so rotated frames
// measure the same as their upright siblings.
func (c *Imaging) ReadAverageChannels(path string) (float64, float64, float64, error) {
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return 0, 0, 0, fmt.Errorf("failed to decode %s: %w", path, err)
	}

	nrgba := imaging.Clone(img)
	bounds := nrgba.Bounds()
	pixels := bounds.Dx() * bounds.Dy()
	if pixels == 0 {
		return 0, 0, 0, fmt.Errorf("image %s has no pixels", path)
	}

	var sumR, sumG, sumB uint64
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		row := nrgba.Pix[nrgba.PixOffset(bounds.Min.X, y):nrgba.PixOffset(bounds.Max.X, y)]
		for x := 0; x < len(row); x += 4 {
			sumR += uint64(row[x])
			sumG += uint64(row[x+1])
			sumB += uint64(row[x+2])
		}
	}

	n := float64(pixels)
	return float64(sumR) / n, float64(sumG) / n, float64(sumB) / n, nil
}

// ApplyBrightnessPercent decodes the original source image, scales every
// channel by percent/100 (clamped to the displayable range) and re-encodes
// it in the source format. Formats without an encoder (WebP) fall back to
// JPEG output.
func (c *Imaging) ApplyBrightnessPercent(path string, percent float64) ([]byte, error) {
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}

	// bild's change parameter is the normalized delta: c' = c * (1+change).
	adjusted := adjust.Brightness(img, percent/100-1)

	format, err := imaging.FormatFromFilename(path)
	if err != nil {
		logging.Debug("No encoder for %s, writing JPEG instead", path)
		format = imaging.JPEG
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, adjusted, format, imaging.JPEGQuality(c.jpegQuality)); err != nil {
		return nil, fmt.Errorf("failed to encode %s: %w", path, err)
	}
	return buf.Bytes(), nil
}

// isJPEG and isPNG classify output paths for the libvips export fast path.
func isJPEG(path string) bool {
	ext := strings.ToLower(path)
	return strings.HasSuffix(ext, ".jpg") || strings.HasSuffix(ext, ".jpeg")
}

func isPNG(path string) bool {
	return strings.HasSuffix(strings.ToLower(path), ".png")
}
