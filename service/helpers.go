package service

import (
	"context"
	"crypto/rand"
	"encoding/base32"
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/emzola/bookcatalog/data"
	"github.com/emzola/bookcatalog/internal/validator"
	"github.com/gabriel-vasile/mimetype"
)

// uploadTimeout bounds a single cover upload.
const uploadTimeout = 30 * time.Second

var supportedCoverTypes = []string{
	"image/jpeg",
	"image/png",
	"image/gif",
	"image/webp",
}

// decodeBase64Image decodes standard base64, padded or not. A data URL prefix
// such as "data:image/png;base64," is stripped first.
func decodeBase64Image(encoded string) ([]byte, error) {
	encoded = strings.TrimSpace(encoded)
	if strings.HasPrefix(encoded, "data:") {
		i := strings.Index(encoded, ",")
		if i < 0 {
			return nil, errors.New("malformed data URL")
		}
		encoded = encoded[i+1:]
	}
	encoded = strings.TrimRight(encoded, "=")
	image, err := base64.RawStdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, err
	}
	if len(image) == 0 {
		return nil, errors.New("image must not be empty")
	}
	return image, nil
}

// uploadCover checks the image type and saves it to blob storage, returning
// the URL the image can be fetched from.
func (s *service) uploadCover(image []byte) (string, error) {
	mtype := mimetype.Detect(image)
	if !validator.Mime(mtype, supportedCoverTypes...) {
		return "", ErrUnsupportedMediaType
	}
	if s.blob == nil {
		return "", ErrBlobStoreDisabled
	}
	name, err := s.coverObjectName(mtype.Extension())
	if err != nil {
		return "", err
	}
	s.logger.PrintDebug("uploading cover image", map[string]string{
		"name":         name,
		"content_type": mtype.String(),
	})
	ctx, cancel := context.WithTimeout(context.Background(), uploadTimeout)
	defer cancel()
	url, err := s.blob.Upload(ctx, name, image, mtype.String())
	if err != nil {
		return "", fmt.Errorf("upload cover image: %w", err)
	}
	s.logger.PrintInfo("cover image uploaded", map[string]string{
		"url":  url,
		"size": strconv.Itoa(len(image)),
	})
	return url, nil
}

// coverObjectName returns a unique, time-ordered object name such as
// bookcovers/image_1700000000000_k5xq2m4a.jpg. The random suffix keeps names
// unique when two uploads land in the same millisecond.
func (s *service) coverObjectName(ext string) (string, error) {
	randomBytes := make([]byte, 5)
	_, err := rand.Read(randomBytes)
	if err != nil {
		return "", err
	}
	suffix := strings.ToLower(base32.StdEncoding.WithPadding(base32.NoPadding).EncodeToString(randomBytes))
	return fmt.Sprintf("%s/image_%d_%s%s", data.ScopeCover, s.now().UnixMilli(), suffix, ext), nil
}
