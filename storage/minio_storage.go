package storage

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"

	"journey-map/model"
)

// MinioPhotoStorage keeps blobs in a MinIO (or any S3-compatible) bucket.
type MinioPhotoStorage struct {
	client *minio.Client
	bucket string
	log    *zap.Logger
}

// NewMinioPhotoStorage dials the endpoint and makes sure the bucket exists.
func NewMinioPhotoStorage(endpoint, accessKey, secretKey, bucket string, useSSL bool, log *zap.Logger) (*MinioPhotoStorage, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("minio client: %w", err)
	}

	ctx := context.Background()
	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return nil, fmt.Errorf("minio bucket check: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("minio make bucket: %w", err)
		}
		log.Info("created bucket", zap.String("bucket", bucket))
	}

	log.Info("MinIO storage initialized", zap.String("endpoint", endpoint), zap.String("bucket", bucket))
	return &MinioPhotoStorage{client: client, bucket: bucket, log: log}, nil
}

func (s *MinioPhotoStorage) Save(ctx context.Context, name, contentType string, data []byte) (model.StoredPhoto, error) {
	id := uuid.NewString()
	objectName := id + filepath.Ext(name)

	_, err := s.client.PutObject(ctx, s.bucket, objectName, bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return model.StoredPhoto{}, fmt.Errorf("minio put %s: %w", objectName, err)
	}

	stored := model.StoredPhoto{
		ID:          id,
		Name:        name,
		Path:        objectName,
		Size:        int64(len(data)),
		ContentType: contentType,
	}

	thumb, err := renderThumbnail(data)
	if err != nil {
		s.log.Warn("failed to generate thumbnail", zap.String("photo", name), zap.Error(err))
		return stored, nil
	}

	thumbName := id + "_thumb.jpg"
	_, err = s.client.PutObject(ctx, s.bucket, thumbName, bytes.NewReader(thumb), int64(len(thumb)),
		minio.PutObjectOptions{ContentType: "image/jpeg"})
	if err != nil {
		s.log.Warn("failed to upload thumbnail", zap.String("photo", name), zap.Error(err))
		return stored, nil
	}
	stored.ThumbnailPath = thumbName

	return stored, nil
}
