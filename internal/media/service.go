// internal/media/service.go

package media

import (
	"context"
	"io"

	"github.com/snapgram/snapgram-backend/internal/config"
)

// Service normalizes images and hands them to the configured storage
type Service struct {
	storage      Storage
	maxDimension int
	quality      int
}

// NewService wires the storage backend chosen by configuration
func NewService(cfg *config.Config) (*Service, error) {
	var storage Storage
	if cfg.UseS3 {
		storage = NewS3Storage(cfg.AWSRegion, cfg.S3BucketName)
	} else {
		local, err := NewLocalStorage(cfg.LocalUploadDir, cfg.BaseURL)
		if err != nil {
			return nil, err
		}
		storage = local
	}

	return &Service{
		storage:      storage,
		maxDimension: cfg.MaxImageDimension,
		quality:      cfg.JPEGQuality,
	}, nil
}

// NewServiceWithStorage is used by tests to inject a storage stub
func NewServiceWithStorage(storage Storage, maxDimension, quality int) *Service {
	return &Service{
		storage:      storage,
		maxDimension: maxDimension,
		quality:      quality,
	}
}

// UploadImage normalizes the image and stores it under the folder,
// returning the durable URL.
func (s *Service) UploadImage(ctx context.Context, r io.Reader, folder string) (string, error) {
	data, err := Normalize(r, s.maxDimension, s.quality)
	if err != nil {
		return "", err
	}

	return s.storage.Put(ctx, objectKey(folder), data, "image/jpeg")
}
