package file

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// File describes a stored object.
type File struct {
	Key      string
	Filename string
	Size     int64
	MIMEType string
	URL      string
}

// Storage is a place uploads can be written to and served from.
type Storage interface {
	Put(ctx context.Context, key string, data []byte, contentType string) (*File, error)
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) bool
	URL(key string) string
}

var imageMIMETypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
	"image/bmp":  ".bmp",
}

// DetectMIMEType sniffs the content type from the first 512 bytes.
func DetectMIMEType(data []byte) string {
	return http.DetectContentType(data)
}

// IsImageMIME reports whether mimeType is an image type we accept.
func IsImageMIME(mimeType string) bool {
	_, ok := imageMIMETypes[mimeType]
	return ok
}

// ExtensionFor returns the canonical extension of an accepted image type, or "".
func ExtensionFor(mimeType string) string {
	return imageMIMETypes[mimeType]
}

// ValidateSize rejects uploads larger than maxBytes.
func ValidateSize(size, maxBytes int64) error {
	if size > maxBytes {
		return fmt.Errorf("file size %d bytes exceeds %d bytes limit: %w", size, maxBytes, ErrFileTooLarge)
	}
	return nil
}

// ReadAll reads an upload, failing with ErrFileTooLarge when it holds more
// than maxBytes regardless of what the header claims.
func ReadAll(fh *multipart.FileHeader, maxBytes int64) ([]byte, error) {
	if fh == nil {
		return nil, ErrNilFileHeader
	}
	if err := ValidateSize(fh.Size, maxBytes); err != nil {
		return nil, err
	}

	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedToOpenFile, err)
	}
	defer func() { _ = f.Close() }()

	data, err := io.ReadAll(io.LimitReader(f, maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedToReadFile, err)
	}
	if err := ValidateSize(int64(len(data)), maxBytes); err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, ErrEmptyFile
	}
	return data, nil
}

// SanitizeFilename strips directories and NUL bytes. Empty names become "unnamed".
func SanitizeFilename(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	name = filepath.Base(name)
	name = strings.ReplaceAll(name, "\x00", "")
	if name == "." || name == ".." || name == "" || name == "/" {
		return "unnamed"
	}
	return name
}

// ObjectKey builds a unique key such as "images/2024/01/<uuid>.png".
func ObjectKey(prefix string, now time.Time, ext string) string {
	return path.Join(prefix, now.Format("2006"), now.Format("01"), uuid.NewString()+ext)
}
