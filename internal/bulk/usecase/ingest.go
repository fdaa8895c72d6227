package usecase

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"ticket-srv/internal/bulk"
	repo "ticket-srv/internal/bulk/repository"
)

// Upload validates an uploaded CSV file, archives it, registers batch
// tracking and hands the chunks to a background publisher. Returns as soon as
// the file is accepted.
func (uc *implUseCase) Upload(ctx context.Context, input bulk.UploadInput) (bulk.UploadOutput, error) {
	// Step 1: File-level checks
	if err := uc.validateFile(ctx, input); err != nil {
		return bulk.UploadOutput{}, err
	}

	// Step 2: Parse and validate rows
	parsed, err := uc.parseCSV(ctx, input.Content)
	if err != nil {
		return bulk.UploadOutput{}, err
	}
	if len(parsed.Records) > uc.cfg.MaxRecords {
		uc.l.Warnf(ctx, "bulk.usecase.Upload: Too many records: %d > %d", len(parsed.Records), uc.cfg.MaxRecords)
		return bulk.UploadOutput{}, bulk.ErrBatchSizeExceeded
	}

	// Step 3: Assign batch id and stamp records
	batchID := newBatchID()
	for i := range parsed.Records {
		parsed.Records[i].BatchID = batchID
	}

	chunks := chunkRecords(parsed.Records, uc.cfg.ChunkSize)

	// Step 4: Start tracking before anything is published so consumers always
	// find the batch hash
	if err := uc.tracker.InitializeBatch(ctx, repo.InitializeBatchOptions{
		BatchID:      batchID,
		TotalChunks:  len(chunks),
		TotalTickets: int64(len(parsed.Records)),
		TTL:          uc.cfg.TrackingTTL,
	}); err != nil {
		uc.l.Warnf(ctx, "bulk.usecase.Upload: Failed to initialize tracking for batch %s: %v", batchID, err)
	}

	// Step 5: Archive the accepted file, best effort
	uc.archiveFile(ctx, batchID, input)

	// Step 6: Publish chunks in the background, the caller gets a 202
	go uc.publishChunks(context.WithoutCancel(ctx), batchID, chunks)

	uc.l.Infof(ctx, "bulk.usecase.Upload: Accepted file %s from %s as batch %s, records=%d, chunks=%d, skipped=%d",
		input.FileName, input.UploadedBy, batchID, len(parsed.Records), len(chunks), len(parsed.SkippedRows))

	return bulk.UploadOutput{
		BatchID:      batchID,
		TotalRows:    parsed.TotalRows,
		ValidRecords: len(parsed.Records),
		TotalChunks:  len(chunks),
		SkippedRows:  parsed.SkippedRows,
		AcceptedAt:   time.Now(),
	}, nil
}

func (uc *implUseCase) validateFile(ctx context.Context, input bulk.UploadInput) error {
	if len(input.Content) == 0 {
		return bulk.ErrEmptyFile
	}

	name := strings.ToLower(input.FileName)
	if !strings.HasSuffix(name, ".csv") && !strings.HasSuffix(name, ".txt") {
		uc.l.Warnf(ctx, "bulk.usecase.validateFile: Rejected file format: %s", input.FileName)
		return bulk.ErrInvalidFileFormat
	}

	if int64(len(input.Content)) > uc.cfg.MaxFileSize {
		uc.l.Warnf(ctx, "bulk.usecase.validateFile: File too large: %d bytes", len(input.Content))
		return bulk.ErrFileTooLarge
	}

	return nil
}

// archiveFile stores the raw upload in object storage for audit and replay.
// Failures are logged, the upload still proceeds.
func (uc *implUseCase) archiveFile(ctx context.Context, batchID string, input bulk.UploadInput) {
	if uc.storage == nil || uc.cfg.ArchiveBucket == "" {
		return
	}

	objectName := batchID + ".csv"
	if _, err := uc.storage.Upload(ctx, uc.cfg.ArchiveBucket, objectName,
		bytes.NewReader(input.Content), int64(len(input.Content)), "text/csv"); err != nil {
		uc.l.Warnf(ctx, "bulk.usecase.archiveFile: Failed to archive batch %s: %v", batchID, err)
		return
	}
	uc.l.Debugf(ctx, "bulk.usecase.archiveFile: Archived batch %s as %s", batchID, objectName)
}

// newBatchID builds ids like BATCH-1735216000000-9F4C21AB.
func newBatchID() string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
	return fmt.Sprintf("BATCH-%d-%s", time.Now().UnixMilli(), suffix)
}
