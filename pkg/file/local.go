package file

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// LocalStorage writes files under baseDir and serves them under baseURL.
type LocalStorage struct {
	baseDir string
	baseURL string
}

// NewLocalStorage creates baseDir when missing.
func NewLocalStorage(baseDir, baseURL string) (*LocalStorage, error) {
	if baseDir == "" {
		return nil, ErrInvalidConfig
	}
	abs, err := filepath.Abs(baseDir)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedToGetAbsolutePath, err)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedToCreateDirectory, err)
	}
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	return &LocalStorage{baseDir: abs, baseURL: baseURL}, nil
}

// Dir is the absolute directory files are written to.
func (s *LocalStorage) Dir() string { return s.baseDir }

func (s *LocalStorage) Put(ctx context.Context, key string, data []byte, contentType string) (*File, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	abs, err := s.resolve(key)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedToCreateDirectory, err)
	}
	if err := os.WriteFile(abs, data, 0o644); err != nil {
		_ = os.Remove(abs)
		return nil, fmt.Errorf("%w: %v", ErrFailedToWriteFile, err)
	}

	return &File{
		Key:      key,
		Filename: filepath.Base(abs),
		Size:     int64(len(data)),
		MIMEType: contentType,
		URL:      s.URL(key),
	}, nil
}

func (s *LocalStorage) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	abs, err := s.resolve(key)
	if err != nil {
		return err
	}
	if err := os.Remove(abs); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrFileNotFound, key)
		}
		return fmt.Errorf("%w: %v", ErrFailedToDeleteFile, err)
	}
	return nil
}

func (s *LocalStorage) Exists(_ context.Context, key string) bool {
	abs, err := s.resolve(key)
	if err != nil {
		return false
	}
	_, err = os.Stat(abs)
	return err == nil
}

func (s *LocalStorage) URL(key string) string {
	return s.baseURL + strings.TrimPrefix(filepath.ToSlash(filepath.Clean(key)), "/")
}

// resolve maps key into baseDir, rejecting paths that escape it.
func (s *LocalStorage) resolve(key string) (string, error) {
	if strings.Contains(key, "..") {
		return "", fmt.Errorf("%w: %s", ErrInvalidPath, key)
	}
	abs, err := filepath.Abs(filepath.Join(s.baseDir, filepath.Clean("/"+key)))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrFailedToGetAbsolutePath, err)
	}
	if !strings.HasPrefix(abs, s.baseDir+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %s", ErrInvalidPath, key)
	}
	return abs, nil
}
