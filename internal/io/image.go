package ioutils

import (
	"context"
	"fmt"
	"image"
	_ "image/gif"  // GIF decoder registration
	_ "image/jpeg" // JPEG decoder registration
	_ "image/png"  // PNG decoder registration
	"os"

	_ "golang.org/x/image/bmp"  // BMP decoder registration
	_ "golang.org/x/image/tiff" // TIFF decoder registration
	_ "golang.org/x/image/webp" // WebP decoder registration
)

// ImageInfo describes a decoded image header.
type ImageInfo struct {
	// Format is the registered decoder name ("jpeg", "png", "webp", ...).
	Format string

	// Width and Height are the pixel dimensions.
	Width  int
	Height int
}

// String formats the info as "<format> <width>x<height>".
func (i ImageInfo) String() string {
	return fmt.Sprintf("%s %dx%d", i.Format, i.Width, i.Height)
}

// ImageService inspects downloaded images.
//
// Only the image header is decoded, so probing a large photo is cheap.
// Formats without a registered decoder (SVG, AVIF, ICO) return
// image.ErrFormat.
//
// Example usage:
//
//	svc := NewImageService()
//	info, err := svc.Probe(ctx, "/out/downloads/latte.webp")
//	if err == nil {
//	    fmt.Println(info) // "webp 800x600"
//	}
type ImageService struct{}

// NewImageService creates a new ImageService.
func NewImageService() *ImageService {
	return &ImageService{}
}

// Probe reads the image header of the file at path.
func (s *ImageService) Probe(ctx context.Context, path string) (ImageInfo, error) {
	if err := ctx.Err(); err != nil {
		return ImageInfo{}, err
	}

	f, err := os.Open(path)
	if err != nil {
		return ImageInfo{}, err
	}
	defer f.Close()

	cfg, format, err := image.DecodeConfig(f)
	if err != nil {
		return ImageInfo{}, err
	}

	return ImageInfo{Format: format, Width: cfg.Width, Height: cfg.Height}, nil
}
