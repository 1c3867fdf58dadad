package mediatypes

import (
	"image"
	"os"

	// Image format decoders registered for sniffing and decoding
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"  // BMP format support
	_ "golang.org/x/image/tiff" // TIFF format support
	_ "golang.org/x/image/webp" // WebP format support
)

// ImageType identifies an image subtype by its decoder format name.
type ImageType string

const (
	// ImageJPEG represents a JPEG image.
	ImageJPEG ImageType = "jpeg"
	// ImagePNG represents a PNG image.
	ImagePNG ImageType = "png"
	// ImageGIF represents a GIF image.
	ImageGIF ImageType = "gif"
	// ImageBMP represents a BMP image.
	ImageBMP ImageType = "bmp"
	// ImageTIFF represents a TIFF image.
	ImageTIFF ImageType = "tiff"
	// ImageWebP represents a WebP image.
	ImageWebP ImageType = "webp"
	// ImageUnknown represents a file that is not a supported image.
	ImageUnknown ImageType = ""
)

// ImageExtensions maps file extensions to their image subtype. The keys are
// lowercase and include the leading dot.
var ImageExtensions = map[string]ImageType{
	".jpg":  ImageJPEG,
	".jpeg": ImageJPEG,
	".png":  ImagePNG,
	".gif":  ImageGIF,
	".bmp":  ImageBMP,
	".tif":  ImageTIFF,
	".tiff": ImageTIFF,
	".webp": ImageWebP,
}

// ByExtension returns the image subtype suggested by a file extension.
// The extension should be lowercase and include the leading dot (e.g. ".jpg").
// Returns ImageUnknown if the extension is not a supported image format.
func ByExtension(ext string) ImageType {
	return ImageExtensions[ext]
}

// Sniff determines the image subtype of a file from its content. It decodes
// only the header, not the pixel data, so it is cheap to call during
// discovery. Returns ImageUnknown (and no error) when the content is not a
// recognized image format.
func Sniff(path string) (ImageType, error) {
	file, err := os.Open(path)
	if err != nil {
		return ImageUnknown, err
	}
	defer file.Close()

	_, format, err := image.DecodeConfig(file)
	if err != nil {
		// Not decodable as any registered image format.
		return ImageUnknown, nil
	}
	return ImageType(format), nil
}
