package usecase

import (
	"time"

	"ticket-srv/internal/bulk"
	repo "ticket-srv/internal/bulk/repository"
	"ticket-srv/pkg/log"
	"ticket-srv/pkg/minio"
)

// Config tunes the bulk ingestion pipeline.
type Config struct {
	ChunkSize     int
	MaxRecords    int
	MaxFileSize   int64
	TrackingTTL   time.Duration
	ArchiveBucket string
}

// implUseCase implements the bulk.UseCase interface
type implUseCase struct {
	l        log.Logger
	repo     repo.Repository
	tracker  repo.Tracker
	producer bulk.Producer
	storage  minio.IMinIO
	cfg      Config
}

// New creates a new bulk usecase
func New(
	l log.Logger,
	repository repo.Repository,
	tracker repo.Tracker,
	producer bulk.Producer,
	storage minio.IMinIO,
	cfg Config,
) bulk.UseCase {
	if cfg.ChunkSize <= 0 {
		cfg.ChunkSize = 100
	}
	if cfg.MaxRecords <= 0 {
		cfg.MaxRecords = 10000
	}
	if cfg.MaxFileSize <= 0 {
		cfg.MaxFileSize = 10 << 20
	}
	return &implUseCase{
		l:        l,
		repo:     repository,
		tracker:  tracker,
		producer: producer,
		storage:  storage,
		cfg:      cfg,
	}
}
