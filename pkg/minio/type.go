package minio

import (
	"sync"

	"github.com/minio/minio-go/v7"
)

// Config holds MinIO connection settings.
type Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	UseSSL    bool
	Region    string
}

// ObjectInfo describes a stored object.
type ObjectInfo struct {
	Bucket      string
	Key         string
	Size        int64
	ContentType string
	ETag        string
}

// implMinIO implements IMinIO.
type implMinIO struct {
	minioClient *minio.Client
	config      Config

	mu        sync.RWMutex
	connected bool
}
