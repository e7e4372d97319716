package clients

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/emzola/bookcatalog/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiskBlobStoreUpload(t *testing.T) {
	dir := t.TempDir()
	store := NewDiskBlobStore(dir, "http://localhost:3000/")

	url, err := store.Upload(context.Background(), "bookcovers/image_1.png", []byte("png bytes"), "image/png")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:3000/uploads/bookcovers/image_1.png", url)

	content, err := os.ReadFile(filepath.Join(dir, "bookcovers", "image_1.png"))
	require.NoError(t, err)
	assert.Equal(t, "png bytes", string(content))
}

func TestDiskBlobStoreStaysInsideDir(t *testing.T) {
	dir := t.TempDir()
	store := NewDiskBlobStore(filepath.Join(dir, "uploads"), "")

	url, err := store.Upload(context.Background(), "../../escape.jpg", []byte("x"), "image/jpeg")
	require.NoError(t, err)
	assert.Equal(t, "/uploads/escape.jpg", url)

	_, err = os.Stat(filepath.Join(dir, "uploads", "escape.jpg"))
	assert.NoError(t, err)

	_, err = store.Upload(context.Background(), "", []byte("x"), "image/jpeg")
	assert.Error(t, err)
}

func TestDiskBlobStoreCancelledContext(t *testing.T) {
	store := NewDiskBlobStore(t.TempDir(), "")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := store.Upload(ctx, "image.jpg", []byte("x"), "image/jpeg")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewBlobStore(t *testing.T) {
	var cfg config.Config
	cfg.Blob.Driver = config.BlobDriverS3

	store, err := NewBlobStore(cfg, NewHTTPClient())
	require.NoError(t, err)
	assert.Nil(t, store, "s3 without a bucket disables uploads")

	cfg.Blob.Driver = config.BlobDriverDisk
	cfg.Blob.Dir = t.TempDir()
	store, err = NewBlobStore(cfg, NewHTTPClient())
	require.NoError(t, err)
	url, err := store.Upload(context.Background(), "bookcovers/a.png", []byte("x"), "image/png")
	require.NoError(t, err)
	assert.Equal(t, "/uploads/bookcovers/a.png", url)
	_, err = os.Stat(filepath.Join(cfg.Blob.Dir, "bookcovers", "a.png"))
	assert.NoError(t, err)

	store, err = NewBlobStore(s3TestConfig(), NewHTTPClient())
	require.NoError(t, err)
	assert.IsType(t, &S3BlobStore{}, store)

	cfg.Blob.Driver = "ftp"
	_, err = NewBlobStore(cfg, NewHTTPClient())
	assert.Error(t, err)
}
