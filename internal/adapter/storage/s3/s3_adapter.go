// Package s3 is the media storage collaborator. It turns uploaded photo bytes
// into stable references; the core never touches the bytes again.
package s3

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/animalmarket/listing-service/internal/listing/domain"
	"github.com/animalmarket/listing-service/internal/platform/logger"
)

type Storage struct {
	client *minio.Client
	bucket string
	logger *logger.Logger
}

func NewStorage(endpoint, accessKey, secretKey, bucket string, useSSL bool, log *logger.Logger) (*Storage, error) {
	log = log.Named("S3Storage")
	log.Info("initializing MinIO storage", "endpoint", endpoint, "bucket", bucket, "use_ssl", useSSL)

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client for %s: %w", endpoint, err)
	}

	err = client.MakeBucket(context.Background(), bucket, minio.MakeBucketOptions{})
	if err != nil {
		exists, existsErr := client.BucketExists(context.Background(), bucket)
		if existsErr != nil || !exists {
			return nil, fmt.Errorf("make/verify bucket %s: (make: %v / exists_check: %v)", bucket, err, existsErr)
		}
		log.Info("bucket already exists", "bucket", bucket)
	}

	return &Storage{client: client, bucket: bucket, logger: log}, nil
}

// Upload stores the photo under a fresh object key and returns its URL as the
// photo reference.
func (s *Storage) Upload(ctx context.Context, originalFileName string, data []byte) (domain.PhotoRef, error) {
	ext := filepath.Ext(originalFileName)
	objectKey := fmt.Sprintf("photos/%s%s", uuid.NewString(), ext)

	_, err := s.client.PutObject(ctx, s.bucket, objectKey, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{})
	if err != nil {
		s.logger.Error("PutObject failed", "bucket", s.bucket, "key", objectKey, "error", err.Error())
		return "", fmt.Errorf("upload object %s to bucket %s: %w", objectKey, s.bucket, err)
	}

	url := fmt.Sprintf("%s/%s/%s", s.client.EndpointURL().String(), s.bucket, objectKey)
	s.logger.Info("photo uploaded", "key", objectKey, "size_bytes", len(data))
	return domain.PhotoRef(url), nil
}
