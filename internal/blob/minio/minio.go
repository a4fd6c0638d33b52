package minio

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"wklejka/internal/blob"
	"wklejka/internal/config"
)

// Store implements blob.Store against an S3-compatible backend (MinIO, AWS
// S3, etc.). Object keys are <kind>/<filename>. It is safe for concurrent use
// by multiple goroutines.
type Store struct {
	client *minio.Client
	bucket string
}

// New creates a new S3-compatible blob store backed by MinIO.
// It validates connectivity and ensures the bucket exists (creates it if missing).
func New(cfg config.MinIOConfig) (*Store, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("minio endpoint is required")
	}
	if cfg.AccessKey == "" || cfg.SecretKey == "" {
		return nil, fmt.Errorf("minio credentials are required")
	}
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("minio bucket is required")
	}

	cli, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Ensure bucket exists.
	exists, err := cli.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("check bucket existence: %w", err)
	}
	if !exists {
		if err := cli.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("create bucket: %w", err)
		}
	}

	return &Store{client: cli, bucket: cfg.Bucket}, nil
}

// Put uploads a blob using streaming I/O only (no local disk).
func (s *Store) Put(ctx context.Context, kind blob.Kind, filename string, r io.Reader, size int64) error {
	_, err := s.client.PutObject(ctx, s.bucket, s.key(kind, filename), r, size, minio.PutObjectOptions{})
	return err
}

// Get downloads a blob's content as a ReadCloser along with its size.
func (s *Store) Get(ctx context.Context, kind blob.Kind, filename string) (io.ReadCloser, int64, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, s.key(kind, filename), minio.GetObjectOptions{})
	if err != nil {
		return nil, 0, err
	}
	// Fetch stat to surface missing objects; avoid reading content into memory.
	st, err := obj.Stat()
	if err != nil {
		obj.Close()
		var resp minio.ErrorResponse
		if errors.As(err, &resp) && resp.Code == "NoSuchKey" {
			return nil, 0, blob.ErrNotFound
		}
		return nil, 0, err
	}
	return obj, st.Size, nil
}

// Delete removes a blob by key. S3 removal of a missing object succeeds, so
// the idempotent-delete contract holds without extra handling.
func (s *Store) Delete(ctx context.Context, kind blob.Kind, filename string) error {
	return s.client.RemoveObject(ctx, s.bucket, s.key(kind, filename), minio.RemoveObjectOptions{})
}

func (s *Store) key(kind blob.Kind, filename string) string {
	return string(kind) + "/" + path.Base(filename)
}
