package clients

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awshttp "github.com/aws/aws-sdk-go-v2/aws/transport/http"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/emzola/bookcatalog/config"
	"github.com/emzola/bookcatalog/internal/validator"
)

// UploadsPath is the URL path the disk store's files are served under.
const UploadsPath = "/uploads"

//go:generate mockgen -destination=mocks/mock_blob.go -package=mocks github.com/emzola/bookcatalog/clients BlobStore

// BlobStore persists binary objects and returns a stable URL to retrieve them.
// Stored objects are never deleted by the application.
type BlobStore interface {
	Upload(ctx context.Context, name string, body []byte, contentType string) (string, error)
}

// NewBlobStore builds the blob store selected by the configuration. It returns
// a nil BlobStore and no error when uploads are disabled, and an error for an
// unknown driver.
func NewBlobStore(cfg config.Config, httpClient *awshttp.BuildableClient) (BlobStore, error) {
	if !validator.In(cfg.Blob.Driver, config.BlobDriverS3, config.BlobDriverDisk, config.BlobDriverNone) {
		return nil, fmt.Errorf("unknown blob driver %q", cfg.Blob.Driver)
	}
	if !cfg.BlobEnabled() {
		return nil, nil
	}
	if cfg.Blob.Driver == config.BlobDriverDisk {
		return NewDiskBlobStore(cfg.Blob.Dir, cfg.Blob.PublicURL), nil
	}
	client, err := NewS3Client(cfg, httpClient)
	if err != nil {
		return nil, err
	}
	return NewS3BlobStore(client, cfg.S3.Bucket, cfg.Blob.PublicURL), nil
}

// S3BlobStore stores objects in an S3 bucket.
type S3BlobStore struct {
	uploader  *manager.Uploader
	bucket    string
	publicURL string
}

// NewS3BlobStore returns an S3BlobStore. When publicURL is empty, the object
// location reported by S3 is returned from Upload.
func NewS3BlobStore(client *s3.Client, bucket, publicURL string) *S3BlobStore {
	return &S3BlobStore{
		uploader:  manager.NewUploader(client),
		bucket:    bucket,
		publicURL: strings.TrimSuffix(publicURL, "/"),
	}
}

// Upload saves body to the bucket under name.
func (s *S3BlobStore) Upload(ctx context.Context, name string, body []byte, contentType string) (string, error) {
	out, err := s.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(name),
		Body:          bytes.NewReader(body),
		ContentLength: int64(len(body)),
		ContentType:   aws.String(contentType),
	})
	if err != nil {
		return "", err
	}
	if s.publicURL != "" {
		return s.publicURL + "/" + name, nil
	}
	return out.Location, nil
}

// DiskBlobStore stores objects as files below a local directory.
type DiskBlobStore struct {
	dir       string
	publicURL string
}

// NewDiskBlobStore returns a DiskBlobStore rooted at dir. Returned URLs are
// publicURL followed by UploadsPath and the object name; with an empty
// publicURL they are root-relative.
func NewDiskBlobStore(dir, publicURL string) *DiskBlobStore {
	return &DiskBlobStore{
		dir:       dir,
		publicURL: strings.TrimSuffix(publicURL, "/"),
	}
}

// Upload writes body to a file named after name.
func (d *DiskBlobStore) Upload(ctx context.Context, name string, body []byte, contentType string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	clean := path.Clean("/" + name)
	if clean == "/" {
		return "", errors.New("blob name must not be empty")
	}
	target := filepath.Join(d.dir, filepath.FromSlash(clean))
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return "", err
	}
	if err := os.WriteFile(target, body, 0o644); err != nil {
		return "", err
	}
	return d.publicURL + UploadsPath + clean, nil
}
