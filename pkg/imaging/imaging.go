// Package imaging inspects uploaded images and renders small previews.
package imaging

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	_ "image/gif" // GIF decode support
	"image/jpeg"
	"image/png"

	_ "golang.org/x/image/bmp" // BMP decode support
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp" // WebP decode support
)

const (
	DefaultPreviewWidth = 320
	DefaultJPEGQuality  = 85

	// MaxPixels bounds the decoded size so a tiny compressed file cannot
	// expand into gigabytes of pixels.
	MaxPixels = 40_000_000
)

var (
	ErrUnsupportedFormat = errors.New("unsupported image format")
	ErrTooManyPixels     = errors.New("image dimensions are too large")
)

// Info describes an image without decoding its pixels.
type Info struct {
	Format string
	Width  int
	Height int
}

// MIMEType returns the content type matching Format.
func (i Info) MIMEType() string {
	if i.Format == "" {
		return ""
	}
	return "image/" + i.Format
}

// Inspect reads the image header.
func Inspect(data []byte) (Info, error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return Info{}, fmt.Errorf("%w: %v", ErrUnsupportedFormat, err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 || cfg.Width*cfg.Height > MaxPixels {
		return Info{}, fmt.Errorf("%w: %dx%d", ErrTooManyPixels, cfg.Width, cfg.Height)
	}
	return Info{Format: format, Width: cfg.Width, Height: cfg.Height}, nil
}

// Thumbnail scales the image down to maxWidth, keeping the aspect ratio.
// Images already narrower are re-encoded unscaled. The result is PNG for
// png and gif sources and JPEG otherwise; the content type is returned alongside.
func Thumbnail(data []byte, maxWidth int) ([]byte, string, error) {
	info, err := Inspect(data)
	if err != nil {
		return nil, "", err
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrUnsupportedFormat, err)
	}

	var out image.Image = img
	bounds := img.Bounds()
	if maxWidth > 0 && bounds.Dx() > maxWidth {
		height := max(1, int(float64(bounds.Dy())*float64(maxWidth)/float64(bounds.Dx())))
		dst := image.NewRGBA(image.Rect(0, 0, maxWidth, height))
		draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
		out = dst
	}

	var buf bytes.Buffer
	switch info.Format {
	case "png", "gif":
		if err := png.Encode(&buf, out); err != nil {
			return nil, "", err
		}
		return buf.Bytes(), "image/png", nil
	default:
		if err := jpeg.Encode(&buf, out, &jpeg.Options{Quality: DefaultJPEGQuality}); err != nil {
			return nil, "", err
		}
		return buf.Bytes(), "image/jpeg", nil
	}
}

// DataURL embeds data in a data: URL usable as an <img> src.
func DataURL(mimeType string, data []byte) string {
	return "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// Preview returns a data URL of a thumbnail of data, falling back to the
// original bytes when the image cannot be re-encoded.
func Preview(data []byte, mimeType string) string {
	thumb, thumbType, err := Thumbnail(data, DefaultPreviewWidth)
	if err != nil {
		return DataURL(mimeType, data)
	}
	return DataURL(thumbType, thumb)
}
