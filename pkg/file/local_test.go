package file_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/mailtrack/pkg/file"
)

func TestLocalStorage(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	dir := t.TempDir()
	storage, err := file.NewLocalStorage(filepath.Join(dir, "uploads"), "/uploads")
	require.NoError(t, err)

	f, err := storage.Put(ctx, "images/2024/01/a.png", pngHeader, "image/png")
	require.NoError(t, err)
	assert.Equal(t, "images/2024/01/a.png", f.Key)
	assert.Equal(t, "a.png", f.Filename)
	assert.Equal(t, int64(len(pngHeader)), f.Size)
	assert.Equal(t, "/uploads/images/2024/01/a.png", f.URL)

	data, err := os.ReadFile(filepath.Join(storage.Dir(), "images", "2024", "01", "a.png"))
	require.NoError(t, err)
	assert.Equal(t, pngHeader, data)
	assert.True(t, storage.Exists(ctx, "images/2024/01/a.png"))

	require.NoError(t, storage.Delete(ctx, "images/2024/01/a.png"))
	assert.False(t, storage.Exists(ctx, "images/2024/01/a.png"))
	assert.ErrorIs(t, storage.Delete(ctx, "images/2024/01/a.png"), file.ErrFileNotFound)
}

func TestLocalStorage_RejectsTraversal(t *testing.T) {
	t.Parallel()
	storage, err := file.NewLocalStorage(t.TempDir(), "/uploads/")
	require.NoError(t, err)

	_, err = storage.Put(context.Background(), "../escape.png", pngHeader, "image/png")
	assert.ErrorIs(t, err, file.ErrInvalidPath)
	_, err = storage.Put(context.Background(), "", pngHeader, "image/png")
	assert.ErrorIs(t, err, file.ErrInvalidPath)
}

func TestLocalStorage_CanceledContext(t *testing.T) {
	t.Parallel()
	storage, err := file.NewLocalStorage(t.TempDir(), "/uploads")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = storage.Put(ctx, "a.png", pngHeader, "image/png")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewLocalStorage_RequiresDir(t *testing.T) {
	t.Parallel()
	_, err := file.NewLocalStorage("", "/uploads")
	assert.ErrorIs(t, err, file.ErrInvalidConfig)
}
