package redis

import (
	"context"
	"fmt"
	"strconv"
	"time"

	repo "ticket-srv/internal/bulk/repository"
	"ticket-srv/internal/model"
)

const (
	batchStatusKeyPrefix = "bulk:batch:status:"
	activeBatchesKey     = "bulk:active-batches"

	fieldBatchID         = "batchId"
	fieldStatus          = "status"
	fieldTotalChunks     = "totalChunks"
	fieldCompletedChunks = "completedChunks"
	fieldTotalTickets    = "totalTickets"
	fieldSuccessCount    = "successCount"
	fieldFailureCount    = "failureCount"
	fieldStartTime       = "startTime"
	fieldEndTime         = "endTime"
)

func batchStatusKey(batchID string) string {
	return batchStatusKeyPrefix + batchID
}

// InitializeBatch creates the tracking hash for a batch and registers it as
// active. Idempotent: an existing batch is left untouched so redeliveries
// cannot reset counters.
func (t *implTracker) InitializeBatch(ctx context.Context, opt repo.InitializeBatchOptions) error {
	key := batchStatusKey(opt.BatchID)

	exists, err := t.redis.Exists(ctx, key)
	if err != nil {
		t.l.Warnf(ctx, "bulk.repository.redis.InitializeBatch: Redis unavailable for batch %s: %v", opt.BatchID, err)
		return nil
	}
	if exists {
		return nil
	}

	startTime := time.Now().Format(time.RFC3339)
	if err := t.redis.HSet(ctx, key,
		fieldBatchID, opt.BatchID,
		fieldStatus, model.BatchStatusInProgress,
		fieldTotalChunks, opt.TotalChunks,
		fieldCompletedChunks, 0,
		fieldTotalTickets, opt.TotalTickets,
		fieldSuccessCount, 0,
		fieldFailureCount, 0,
		fieldStartTime, startTime,
	); err != nil {
		t.l.Warnf(ctx, "bulk.repository.redis.InitializeBatch: Failed to initialize batch %s: %v", opt.BatchID, err)
		return nil
	}

	ttl := opt.TTL
	if ttl <= 0 {
		ttl = t.ttl
	}
	if err := t.redis.Expire(ctx, key, ttl); err != nil {
		t.l.Warnf(ctx, "bulk.repository.redis.InitializeBatch: Failed to set TTL for batch %s: %v", opt.BatchID, err)
	}
	if err := t.redis.SAdd(ctx, activeBatchesKey, opt.BatchID); err != nil {
		t.l.Warnf(ctx, "bulk.repository.redis.InitializeBatch: Failed to register active batch %s: %v", opt.BatchID, err)
	}

	t.l.Infof(ctx, "bulk.repository.redis.InitializeBatch: Tracking started for batch %s, chunks=%d, tickets=%d",
		opt.BatchID, opt.TotalChunks, opt.TotalTickets)
	return nil
}

// RecordSuccess increments the success counter.
func (t *implTracker) RecordSuccess(ctx context.Context, batchID string, count int64) error {
	if count <= 0 {
		return nil
	}
	if _, err := t.redis.HIncrBy(ctx, batchStatusKey(batchID), fieldSuccessCount, count); err != nil {
		t.l.Debugf(ctx, "bulk.repository.redis.RecordSuccess: Redis unavailable for batch %s: %v", batchID, err)
	}
	return nil
}

// RecordFailure increments the failure counter.
func (t *implTracker) RecordFailure(ctx context.Context, batchID string, count int64) error {
	if count <= 0 {
		return nil
	}
	if _, err := t.redis.HIncrBy(ctx, batchStatusKey(batchID), fieldFailureCount, count); err != nil {
		t.l.Debugf(ctx, "bulk.repository.redis.RecordFailure: Redis unavailable for batch %s: %v", batchID, err)
	}
	return nil
}

// CompleteChunk increments the completed chunk counter and closes out the
// batch once every chunk is accounted for.
func (t *implTracker) CompleteChunk(ctx context.Context, batchID string, chunkSequence int) error {
	key := batchStatusKey(batchID)

	completed, err := t.redis.HIncrBy(ctx, key, fieldCompletedChunks, 1)
	if err != nil {
		t.l.Debugf(ctx, "bulk.repository.redis.CompleteChunk: Redis unavailable for batch %s: %v", batchID, err)
		return nil
	}

	totalRaw, err := t.redis.HGet(ctx, key, fieldTotalChunks)
	if err != nil {
		t.l.Debugf(ctx, "bulk.repository.redis.CompleteChunk: Failed to read total chunks for batch %s: %v", batchID, err)
		return nil
	}
	total, _ := strconv.ParseInt(totalRaw, 10, 64)

	t.l.Debugf(ctx, "bulk.repository.redis.CompleteChunk: Chunk completed, batch=%s, chunk=%d, progress=%d/%d",
		batchID, chunkSequence, completed, total)

	if total > 0 && completed >= total {
		if err := t.redis.HSet(ctx, key,
			fieldStatus, model.BatchStatusCompleted,
			fieldEndTime, time.Now().Format(time.RFC3339),
		); err != nil {
			t.l.Warnf(ctx, "bulk.repository.redis.CompleteChunk: Failed to mark batch %s completed: %v", batchID, err)
			return nil
		}
		if err := t.redis.SRem(ctx, activeBatchesKey, batchID); err != nil {
			t.l.Warnf(ctx, "bulk.repository.redis.CompleteChunk: Failed to deregister batch %s: %v", batchID, err)
		}
		t.l.Infof(ctx, "bulk.repository.redis.CompleteChunk: Batch completed: %s", batchID)
	}
	return nil
}

// GetBatchStatus reads the tracking hash. The second return value reports
// whether the batch was found.
func (t *implTracker) GetBatchStatus(ctx context.Context, batchID string) (model.BatchStatus, bool, error) {
	data, err := t.redis.HGetAll(ctx, batchStatusKey(batchID))
	if err != nil {
		t.l.Errorf(ctx, "bulk.repository.redis.GetBatchStatus: Redis unavailable for batch %s: %v", batchID, err)
		return model.BatchStatus{}, false, fmt.Errorf("get batch status: %w", err)
	}
	if len(data) == 0 {
		return model.BatchStatus{}, false, nil
	}

	status := model.BatchStatus{
		BatchID:         batchID,
		Status:          safeGet(data, fieldStatus, model.BatchStatusUnknown),
		TotalChunks:     safeGetInt(data, fieldTotalChunks),
		CompletedChunks: safeGetInt(data, fieldCompletedChunks),
		TotalTickets:    safeGetInt64(data, fieldTotalTickets),
		SuccessCount:    safeGetInt64(data, fieldSuccessCount),
		FailureCount:    safeGetInt64(data, fieldFailureCount),
	}

	if raw := data[fieldStartTime]; raw != "" {
		if ts, parseErr := time.Parse(time.RFC3339, raw); parseErr == nil {
			status.StartTime = &ts
		}
	}
	if raw := data[fieldEndTime]; raw != "" {
		if ts, parseErr := time.Parse(time.RFC3339, raw); parseErr == nil {
			status.EndTime = &ts
		}
	}

	return status, true, nil
}

// GetActiveBatches returns the ids of batches still in flight.
func (t *implTracker) GetActiveBatches(ctx context.Context) ([]string, error) {
	members, err := t.redis.SMembers(ctx, activeBatchesKey)
	if err != nil {
		t.l.Errorf(ctx, "bulk.repository.redis.GetActiveBatches: Redis unavailable: %v", err)
		return nil, fmt.Errorf("get active batches: %w", err)
	}
	return members, nil
}

// CancelBatch marks a batch cancelled. Returns false when the batch is not
// being tracked.
func (t *implTracker) CancelBatch(ctx context.Context, batchID string) (bool, error) {
	key := batchStatusKey(batchID)

	exists, err := t.redis.Exists(ctx, key)
	if err != nil {
		t.l.Errorf(ctx, "bulk.repository.redis.CancelBatch: Redis unavailable for batch %s: %v", batchID, err)
		return false, fmt.Errorf("cancel batch: %w", err)
	}
	if !exists {
		return false, nil
	}

	if err := t.redis.HSet(ctx, key,
		fieldStatus, model.BatchStatusCancelled,
		fieldEndTime, time.Now().Format(time.RFC3339),
	); err != nil {
		t.l.Errorf(ctx, "bulk.repository.redis.CancelBatch: Failed to cancel batch %s: %v", batchID, err)
		return false, fmt.Errorf("cancel batch: %w", err)
	}
	if err := t.redis.SRem(ctx, activeBatchesKey, batchID); err != nil {
		t.l.Warnf(ctx, "bulk.repository.redis.CancelBatch: Failed to deregister batch %s: %v", batchID, err)
	}

	t.l.Infof(ctx, "bulk.repository.redis.CancelBatch: Batch cancelled: %s", batchID)
	return true, nil
}

// IsCancelled reports whether a batch has been cancelled. Tracker outages
// resolve to false so processing continues.
func (t *implTracker) IsCancelled(ctx context.Context, batchID string) (bool, error) {
	status, err := t.redis.HGet(ctx, batchStatusKey(batchID), fieldStatus)
	if err != nil {
		t.l.Debugf(ctx, "bulk.repository.redis.IsCancelled: Redis unavailable for batch %s: %v", batchID, err)
		return false, nil
	}
	return status == model.BatchStatusCancelled, nil
}

// DeleteBatch removes all tracking data for a batch.
func (t *implTracker) DeleteBatch(ctx context.Context, batchID string) error {
	if err := t.redis.Delete(ctx, batchStatusKey(batchID)); err != nil {
		t.l.Errorf(ctx, "bulk.repository.redis.DeleteBatch: Failed to delete batch %s: %v", batchID, err)
		return fmt.Errorf("delete batch: %w", err)
	}
	if err := t.redis.SRem(ctx, activeBatchesKey, batchID); err != nil {
		t.l.Warnf(ctx, "bulk.repository.redis.DeleteBatch: Failed to deregister batch %s: %v", batchID, err)
	}
	return nil
}

func safeGet(data map[string]string, field, fallback string) string {
	if v, ok := data[field]; ok && v != "" {
		return v
	}
	return fallback
}

func safeGetInt(data map[string]string, field string) int {
	v, _ := strconv.Atoi(data[field])
	return v
}

func safeGetInt64(data map[string]string, field string) int64 {
	v, _ := strconv.ParseInt(data[field], 10, 64)
	return v
}
