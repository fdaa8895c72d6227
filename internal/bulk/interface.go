package bulk

import (
	"context"
)

//go:generate mockery --name UseCase
type UseCase interface {
	Upload(ctx context.Context, input UploadInput) (UploadOutput, error)
	GetBatchStatus(ctx context.Context, batchID string) (BatchStatusOutput, error)
	GetActiveBatches(ctx context.Context) (ActiveBatchesOutput, error)
	CancelBatch(ctx context.Context, input CancelBatchInput) (CancelBatchOutput, error)
	DeleteBatchTracking(ctx context.Context, batchID string) error
	ProcessChunk(ctx context.Context, msg ChunkMessage) error
	ListDeadLetters(ctx context.Context, input ListDeadLettersInput) (ListDeadLettersOutput, error)
	ReprocessDeadLetter(ctx context.Context, input ReprocessInput) (ReprocessOutput, error)
}
