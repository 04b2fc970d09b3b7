// Package blobstore хранит сгенерированные файлы (CSV-выгрузки) в S3-совместимом хранилище.
package blobstore

import (
	"bytes"
	"context"
	"fmt"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/avdeevns/expense-tracker/internal/config"
)

type Store struct {
	client *minio.Client
	bucket string
}

func New(ctx context.Context, cfg config.BlobStore) (*Store, error) {
	const op = "blobstore.New"

	client, err := minio.New(cfg.S3Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.S3AccessKey, cfg.S3SecretKey, ""),
		Secure: cfg.S3UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	exists, err := client.BucketExists(ctx, cfg.S3Bucket)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.S3Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	}

	return &Store{client: client, bucket: cfg.S3Bucket}, nil
}

// Put загружает объект и возвращает ссылку на него внутри бакета.
func (s *Store) Put(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	const op = "blobstore.Put"

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	default:
	}

	_, err := s.client.PutObject(ctx, s.bucket, key, bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	return fmt.Sprintf("%s/%s/%s", s.client.EndpointURL().String(), s.bucket, key), nil
}
