package dashboard

import (
	"bytes"
	"context"
	"io"
	"time"

	"github.com/dmitrymomot/mailtrack/pkg/file"
)

// ImageUploader persists an image and returns the URL emails embed.
type ImageUploader interface {
	Upload(ctx context.Context, filename, contentType string, data []byte) (string, error)
}

// BackendImageStore is the part of the tracker client used by APIUploader.
type BackendImageStore interface {
	UploadImage(ctx context.Context, filename, contentType string, r io.Reader) (string, error)
}

// APIUploader stores images on the tracking backend.
type APIUploader struct {
	api BackendImageStore
}

func NewAPIUploader(api BackendImageStore) *APIUploader {
	return &APIUploader{api: api}
}

func (u *APIUploader) Upload(ctx context.Context, filename, contentType string, data []byte) (string, error) {
	return u.api.UploadImage(ctx, filename, contentType, bytes.NewReader(data))
}

// StorageUploader writes images to a file.Storage under prefix/YYYY/MM/.
type StorageUploader struct {
	storage file.Storage
	prefix  string
	now     func() time.Time
}

func NewStorageUploader(storage file.Storage, prefix string) *StorageUploader {
	return &StorageUploader{storage: storage, prefix: prefix, now: time.Now}
}

func (u *StorageUploader) Upload(ctx context.Context, _, contentType string, data []byte) (string, error) {
	key := file.ObjectKey(u.prefix, u.now().UTC(), file.ExtensionFor(contentType))
	f, err := u.storage.Put(ctx, key, data, contentType)
	if err != nil {
		return "", err
	}
	return f.URL, nil
}
