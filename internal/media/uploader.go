// internal/media/uploader.go

package media

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/google/uuid"
)

// Storage persists an encoded image and returns its durable URL
type Storage interface {
	Put(ctx context.Context, key string, data []byte, contentType string) (string, error)
}

// objectKey builds a date-partitioned key with a collision-free name
func objectKey(folder string) string {
	return fmt.Sprintf("%s/%s/%s_%d.jpg",
		folder, time.Now().Format("2006/01/02"), uuid.New().String(), time.Now().Unix())
}

// S3Storage stores objects in an S3 bucket
type S3Storage struct {
	client *s3.S3
	bucket string
}

// NewS3Storage creates an S3-backed storage
func NewS3Storage(region, bucket string) *S3Storage {
	sess := session.Must(session.NewSession(&aws.Config{
		Region: aws.String(region),
	}))

	return &S3Storage{
		client: s3.New(sess),
		bucket: bucket,
	}
}

func (s *S3Storage) Put(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	_, err := s.client.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:             aws.String(s.bucket),
		Key:                aws.String(key),
		Body:               bytes.NewReader(data),
		ContentType:        aws.String(contentType),
		ContentDisposition: aws.String("inline"),
		ACL:                aws.String("public-read"),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to S3: %w", err)
	}

	return fmt.Sprintf("https://%s.s3.amazonaws.com/%s", s.bucket, key), nil
}

// LocalStorage stores objects on the local filesystem, served under /uploads
type LocalStorage struct {
	dir     string
	baseURL string
}

// NewLocalStorage creates a filesystem-backed storage
func NewLocalStorage(dir, baseURL string) (*LocalStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}

	return &LocalStorage{dir: dir, baseURL: baseURL}, nil
}

func (s *LocalStorage) Put(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	destPath := filepath.Join(s.dir, filepath.FromSlash(key))

	if err := os.MkdirAll(filepath.Dir(destPath), 0o755); err != nil {
		return "", fmt.Errorf("failed to create directory: %w", err)
	}

	if err := os.WriteFile(destPath, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to save file: %w", err)
	}

	return fmt.Sprintf("%s/uploads/%s", s.baseURL, key), nil
}
