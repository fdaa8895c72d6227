package minio

import (
	"context"
	"fmt"
	"io"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// IMinIO defines object storage operations used by the service.
type IMinIO interface {
	Connect(ctx context.Context) error
	HealthCheck(ctx context.Context) error
	EnsureBucket(ctx context.Context, bucketName string) error
	Upload(ctx context.Context, bucketName, objectName string, reader io.Reader, size int64, contentType string) (*ObjectInfo, error)
	Download(ctx context.Context, bucketName, objectName string) (io.ReadCloser, error)
	Close() error
}

// New creates a MinIO client from config. Returns the interface.
func New(cfg Config) (IMinIO, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("minio: endpoint is required")
	}

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %w", err)
	}

	return &implMinIO{minioClient: client, config: cfg}, nil
}
