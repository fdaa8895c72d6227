package usecase

import (
	"context"
	"errors"

	"ticket-srv/internal/bulk"
	repo "ticket-srv/internal/bulk/repository"
)

// ProcessChunk persists one consumed chunk. Cancelled batches are drained
// without writing, duplicate ticket numbers already in the table count as
// failures. The chunk is marked complete in the tracker on every outcome
// except a persistence error, which the caller may retry.
func (uc *implUseCase) ProcessChunk(ctx context.Context, msg bulk.ChunkMessage) error {
	if msg.BatchID == "" || len(msg.Records) == 0 {
		uc.l.Warnf(ctx, "bulk.usecase.ProcessChunk: Malformed chunk message: batch=%q, records=%d",
			msg.BatchID, len(msg.Records))
		return bulk.ErrMalformedChunk
	}

	// Advisory cancel: drop the work but keep the chunk accounting moving
	cancelled, _ := uc.tracker.IsCancelled(ctx, msg.BatchID)
	if cancelled {
		uc.l.Infof(ctx, "bulk.usecase.ProcessChunk: Batch %s cancelled, skipping chunk %d", msg.BatchID, msg.Sequence)
		_ = uc.tracker.RecordFailure(ctx, msg.BatchID, int64(len(msg.Records)))
		_ = uc.tracker.CompleteChunk(ctx, msg.BatchID, msg.Sequence)
		return nil
	}

	result, err := uc.repo.InsertTickets(ctx, repo.InsertTicketsOptions{
		BatchID: msg.BatchID,
		Tickets: msg.Records,
	})
	if err != nil {
		uc.l.Errorf(ctx, "bulk.usecase.ProcessChunk: Failed to persist chunk %d of batch %s: %v",
			msg.Sequence, msg.BatchID, err)
		if errors.Is(err, repo.ErrConstraintViolation) {
			return bulk.ErrChunkRejected
		}
		return bulk.ErrChunkPersistFailed
	}

	_ = uc.tracker.RecordSuccess(ctx, msg.BatchID, result.Inserted)
	_ = uc.tracker.RecordFailure(ctx, msg.BatchID, result.Duplicates)
	_ = uc.tracker.CompleteChunk(ctx, msg.BatchID, msg.Sequence)

	uc.l.Infof(ctx, "bulk.usecase.ProcessChunk: Chunk %d/%d of batch %s persisted, inserted=%d, duplicates=%d",
		msg.Sequence, msg.TotalChunks, msg.BatchID, result.Inserted, result.Duplicates)
	return nil
}
