package storage

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/keechi-app/keechi-api/internal/config"
)

// ImageStore persists processed images and returns the public URL clients
// should use to fetch them.
type ImageStore interface {
	Save(ctx context.Context, data []byte) (string, error)
}

// NewImageStore picks S3 when a bucket is configured, otherwise local disk.
func NewImageStore(cfg *config.Config) (ImageStore, error) {
	if cfg.S3Bucket != "" {
		return NewS3Store(cfg), nil
	}
	return NewLocalStore(cfg.UploadDir)
}

// --------------------------------------------------
// Local disk
// --------------------------------------------------

type LocalStore struct {
	dir string
}

func NewLocalStore(dir string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &LocalStore{dir: dir}, nil
}

func (s *LocalStore) Save(ctx context.Context, data []byte) (string, error) {
	name := uuid.New().String() + ".webp"

	if err := os.WriteFile(filepath.Join(s.dir, name), data, 0o644); err != nil {
		return "", fmt.Errorf("write image: %w", err)
	}

	return "/uploads/" + name, nil
}

// --------------------------------------------------
// S3
// --------------------------------------------------

type S3Store struct {
	client *s3.Client
	bucket string
	region string
}

func NewS3Store(cfg *config.Config) *S3Store {
	client := s3.New(s3.Options{
		Region: cfg.S3Region,
		Credentials: credentials.NewStaticCredentialsProvider(
			cfg.S3AccessKey,
			cfg.S3SecretKey,
			"",
		),
	})

	return &S3Store{
		client: client,
		bucket: cfg.S3Bucket,
		region: cfg.S3Region,
	}
}

func (s *S3Store) Save(ctx context.Context, data []byte) (string, error) {
	key := "uploads/" + uuid.New().String() + ".webp"

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("image/webp"),
	})
	if err != nil {
		return "", fmt.Errorf("s3 put: %w", err)
	}

	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key), nil
}
