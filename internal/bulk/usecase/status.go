package usecase

import (
	"context"

	"ticket-srv/internal/bulk"
)

// GetBatchStatus returns the tracked progress of a batch together with the
// number of tickets already persisted for it.
func (uc *implUseCase) GetBatchStatus(ctx context.Context, batchID string) (bulk.BatchStatusOutput, error) {
	status, found, err := uc.tracker.GetBatchStatus(ctx, batchID)
	if err != nil {
		return bulk.BatchStatusOutput{}, err
	}
	if !found {
		return bulk.BatchStatusOutput{}, bulk.ErrBatchNotFound
	}

	persisted, err := uc.repo.CountByBatch(ctx, batchID)
	if err != nil {
		uc.l.Warnf(ctx, "bulk.usecase.GetBatchStatus: Failed to count persisted tickets for batch %s: %v", batchID, err)
	}

	return bulk.BatchStatusOutput{Status: status, PersistedTickets: persisted}, nil
}

// GetActiveBatches lists batches still being processed.
func (uc *implUseCase) GetActiveBatches(ctx context.Context) (bulk.ActiveBatchesOutput, error) {
	ids, err := uc.tracker.GetActiveBatches(ctx)
	if err != nil {
		return bulk.ActiveBatchesOutput{}, err
	}
	return bulk.ActiveBatchesOutput{BatchIDs: ids}, nil
}

// CancelBatch marks a batch cancelled. Already published chunks are drained
// by consumers without persisting.
func (uc *implUseCase) CancelBatch(ctx context.Context, input bulk.CancelBatchInput) (bulk.CancelBatchOutput, error) {
	cancelled, err := uc.tracker.CancelBatch(ctx, input.BatchID)
	if err != nil {
		return bulk.CancelBatchOutput{}, err
	}
	if !cancelled {
		return bulk.CancelBatchOutput{}, bulk.ErrBatchNotFound
	}

	reason := input.Reason
	if reason == "" {
		reason = "no reason given"
	}
	uc.l.Infof(ctx, "bulk.usecase.CancelBatch: Batch %s cancelled: %s", input.BatchID, reason)

	return bulk.CancelBatchOutput{BatchID: input.BatchID, Cancelled: true, Reason: reason}, nil
}

// DeleteBatchTracking drops the tracking state of a batch from Redis. Meant
// for operator cleanup of finished batches ahead of the TTL.
func (uc *implUseCase) DeleteBatchTracking(ctx context.Context, batchID string) error {
	_, found, err := uc.tracker.GetBatchStatus(ctx, batchID)
	if err != nil {
		return err
	}
	if !found {
		return bulk.ErrBatchNotFound
	}

	if err := uc.tracker.DeleteBatch(ctx, batchID); err != nil {
		return err
	}
	uc.l.Infof(ctx, "bulk.usecase.DeleteBatchTracking: Tracking for batch %s deleted", batchID)
	return nil
}
