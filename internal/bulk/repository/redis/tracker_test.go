package redis

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"

	repo "ticket-srv/internal/bulk/repository"
	"ticket-srv/internal/model"
	"ticket-srv/pkg/log"
)

var errNotFound = errors.New("redis: nil")

// fakeRedis is an in-memory stand-in for pkg/redis.IRedis.
type fakeRedis struct {
	hashes map[string]map[string]string
	sets   map[string]map[string]struct{}
	ttls   map[string]time.Duration

	failAll bool
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{
		hashes: make(map[string]map[string]string),
		sets:   make(map[string]map[string]struct{}),
		ttls:   make(map[string]time.Duration),
	}
}

func (f *fakeRedis) err() error {
	if f.failAll {
		return errors.New("connection refused")
	}
	return nil
}

func (f *fakeRedis) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	return f.err()
}

func (f *fakeRedis) Get(ctx context.Context, key string) (string, error) {
	return "", errNotFound
}

func (f *fakeRedis) Delete(ctx context.Context, keys ...string) error {
	if err := f.err(); err != nil {
		return err
	}
	for _, key := range keys {
		delete(f.hashes, key)
	}
	return nil
}

func (f *fakeRedis) Exists(ctx context.Context, key string) (bool, error) {
	if err := f.err(); err != nil {
		return false, err
	}
	_, ok := f.hashes[key]
	return ok, nil
}

func (f *fakeRedis) TTL(ctx context.Context, key string) (time.Duration, error) {
	return f.ttls[key], f.err()
}

func (f *fakeRedis) Expire(ctx context.Context, key string, ttl time.Duration) error {
	if err := f.err(); err != nil {
		return err
	}
	f.ttls[key] = ttl
	return nil
}

func (f *fakeRedis) HSet(ctx context.Context, key string, values ...interface{}) error {
	if err := f.err(); err != nil {
		return err
	}
	hash, ok := f.hashes[key]
	if !ok {
		hash = make(map[string]string)
		f.hashes[key] = hash
	}
	for i := 0; i+1 < len(values); i += 2 {
		hash[fmt.Sprint(values[i])] = fmt.Sprint(values[i+1])
	}
	return nil
}

func (f *fakeRedis) HGet(ctx context.Context, key, field string) (string, error) {
	if err := f.err(); err != nil {
		return "", err
	}
	value, ok := f.hashes[key][field]
	if !ok {
		return "", errNotFound
	}
	return value, nil
}

func (f *fakeRedis) HGetAll(ctx context.Context, key string) (map[string]string, error) {
	if err := f.err(); err != nil {
		return nil, err
	}
	out := make(map[string]string, len(f.hashes[key]))
	for k, v := range f.hashes[key] {
		out[k] = v
	}
	return out, nil
}

func (f *fakeRedis) HIncrBy(ctx context.Context, key, field string, incr int64) (int64, error) {
	if err := f.err(); err != nil {
		return 0, err
	}
	hash, ok := f.hashes[key]
	if !ok {
		hash = make(map[string]string)
		f.hashes[key] = hash
	}
	var current int64
	fmt.Sscan(hash[field], &current)
	current += incr
	hash[field] = fmt.Sprint(current)
	return current, nil
}

func (f *fakeRedis) SAdd(ctx context.Context, key string, members ...interface{}) error {
	if err := f.err(); err != nil {
		return err
	}
	set, ok := f.sets[key]
	if !ok {
		set = make(map[string]struct{})
		f.sets[key] = set
	}
	for _, m := range members {
		set[fmt.Sprint(m)] = struct{}{}
	}
	return nil
}

func (f *fakeRedis) SRem(ctx context.Context, key string, members ...interface{}) error {
	if err := f.err(); err != nil {
		return err
	}
	for _, m := range members {
		delete(f.sets[key], fmt.Sprint(m))
	}
	return nil
}

func (f *fakeRedis) SMembers(ctx context.Context, key string) ([]string, error) {
	if err := f.err(); err != nil {
		return nil, err
	}
	var members []string
	for m := range f.sets[key] {
		members = append(members, m)
	}
	return members, nil
}

func (f *fakeRedis) Close() error { return nil }

func (f *fakeRedis) Ping(ctx context.Context) error { return f.err() }

func (f *fakeRedis) GetClient() *goredis.Client { return nil }

func newTestTracker(r *fakeRedis) repo.Tracker {
	return New(r, log.Init(log.ZapConfig{Level: "error"}), time.Hour)
}

func TestTrackerLifecycle(t *testing.T) {
	ctx := context.Background()

	t.Run("initialize registers the batch", func(t *testing.T) {
		r := newFakeRedis()
		tracker := newTestTracker(r)

		err := tracker.InitializeBatch(ctx, repo.InitializeBatchOptions{
			BatchID: "BATCH-1", TotalChunks: 3, TotalTickets: 250, TTL: 24 * time.Hour,
		})
		if err != nil {
			t.Fatalf("InitializeBatch() error = %v", err)
		}

		status, found, err := tracker.GetBatchStatus(ctx, "BATCH-1")
		if err != nil || !found {
			t.Fatalf("GetBatchStatus() = found %v, err %v", found, err)
		}
		if status.Status != model.BatchStatusInProgress {
			t.Errorf("status = %s, want IN_PROGRESS", status.Status)
		}
		if status.TotalChunks != 3 || status.TotalTickets != 250 {
			t.Errorf("unexpected counters: %+v", status)
		}
		if status.StartTime == nil {
			t.Error("start time not set")
		}
		if r.ttls["bulk:batch:status:BATCH-1"] != 24*time.Hour {
			t.Errorf("ttl = %v, want 24h", r.ttls["bulk:batch:status:BATCH-1"])
		}

		active, _ := tracker.GetActiveBatches(ctx)
		if len(active) != 1 || active[0] != "BATCH-1" {
			t.Errorf("active = %v, want [BATCH-1]", active)
		}
	})

	t.Run("initialize is idempotent", func(t *testing.T) {
		r := newFakeRedis()
		tracker := newTestTracker(r)

		_ = tracker.InitializeBatch(ctx, repo.InitializeBatchOptions{BatchID: "BATCH-1", TotalChunks: 3})
		_ = tracker.RecordSuccess(ctx, "BATCH-1", 50)
		_ = tracker.InitializeBatch(ctx, repo.InitializeBatchOptions{BatchID: "BATCH-1", TotalChunks: 3})

		status, _, _ := tracker.GetBatchStatus(ctx, "BATCH-1")
		if status.SuccessCount != 50 {
			t.Errorf("success count = %d, want 50 (counters must survive re-init)", status.SuccessCount)
		}
	})

	t.Run("completing all chunks closes the batch", func(t *testing.T) {
		r := newFakeRedis()
		tracker := newTestTracker(r)

		_ = tracker.InitializeBatch(ctx, repo.InitializeBatchOptions{BatchID: "BATCH-1", TotalChunks: 2})
		_ = tracker.RecordSuccess(ctx, "BATCH-1", 100)
		_ = tracker.CompleteChunk(ctx, "BATCH-1", 1)

		status, _, _ := tracker.GetBatchStatus(ctx, "BATCH-1")
		if status.Status != model.BatchStatusInProgress {
			t.Errorf("status after 1/2 chunks = %s, want IN_PROGRESS", status.Status)
		}

		_ = tracker.CompleteChunk(ctx, "BATCH-1", 2)
		status, _, _ = tracker.GetBatchStatus(ctx, "BATCH-1")
		if status.Status != model.BatchStatusCompleted {
			t.Errorf("status = %s, want COMPLETED", status.Status)
		}
		if status.CompletedChunks != 2 {
			t.Errorf("completed chunks = %d, want 2", status.CompletedChunks)
		}
		if status.EndTime == nil {
			t.Error("end time not set")
		}

		active, _ := tracker.GetActiveBatches(ctx)
		if len(active) != 0 {
			t.Errorf("active = %v, want empty", active)
		}
	})

	t.Run("cancel marks the batch and deregisters it", func(t *testing.T) {
		r := newFakeRedis()
		tracker := newTestTracker(r)

		_ = tracker.InitializeBatch(ctx, repo.InitializeBatchOptions{BatchID: "BATCH-1", TotalChunks: 5})

		cancelled, err := tracker.CancelBatch(ctx, "BATCH-1")
		if err != nil || !cancelled {
			t.Fatalf("CancelBatch() = %v, %v", cancelled, err)
		}

		isCancelled, _ := tracker.IsCancelled(ctx, "BATCH-1")
		if !isCancelled {
			t.Error("IsCancelled() = false after cancel")
		}

		status, _, _ := tracker.GetBatchStatus(ctx, "BATCH-1")
		if status.Status != model.BatchStatusCancelled {
			t.Errorf("status = %s, want CANCELLED", status.Status)
		}

		active, _ := tracker.GetActiveBatches(ctx)
		if len(active) != 0 {
			t.Errorf("active = %v, want empty", active)
		}
	})

	t.Run("cancel of untracked batch", func(t *testing.T) {
		tracker := newTestTracker(newFakeRedis())
		cancelled, err := tracker.CancelBatch(ctx, "BATCH-MISSING")
		if err != nil {
			t.Fatalf("CancelBatch() error = %v", err)
		}
		if cancelled {
			t.Error("CancelBatch() = true for untracked batch")
		}
	})

	t.Run("unknown batch status", func(t *testing.T) {
		tracker := newTestTracker(newFakeRedis())
		_, found, err := tracker.GetBatchStatus(ctx, "BATCH-MISSING")
		if err != nil {
			t.Fatalf("GetBatchStatus() error = %v", err)
		}
		if found {
			t.Error("found = true for unknown batch")
		}
	})

	t.Run("counter writes swallow redis outages", func(t *testing.T) {
		r := newFakeRedis()
		r.failAll = true
		tracker := newTestTracker(r)

		if err := tracker.InitializeBatch(ctx, repo.InitializeBatchOptions{BatchID: "B"}); err != nil {
			t.Errorf("InitializeBatch() error = %v, want nil", err)
		}
		if err := tracker.RecordSuccess(ctx, "B", 10); err != nil {
			t.Errorf("RecordSuccess() error = %v, want nil", err)
		}
		if err := tracker.RecordFailure(ctx, "B", 10); err != nil {
			t.Errorf("RecordFailure() error = %v, want nil", err)
		}
		if err := tracker.CompleteChunk(ctx, "B", 1); err != nil {
			t.Errorf("CompleteChunk() error = %v, want nil", err)
		}
		if cancelled, err := tracker.IsCancelled(ctx, "B"); err != nil || cancelled {
			t.Errorf("IsCancelled() = %v, %v, want false, nil", cancelled, err)
		}
	})

	t.Run("delete removes tracking state", func(t *testing.T) {
		r := newFakeRedis()
		tracker := newTestTracker(r)

		_ = tracker.InitializeBatch(ctx, repo.InitializeBatchOptions{BatchID: "BATCH-1"})
		if err := tracker.DeleteBatch(ctx, "BATCH-1"); err != nil {
			t.Fatalf("DeleteBatch() error = %v", err)
		}

		_, found, _ := tracker.GetBatchStatus(ctx, "BATCH-1")
		if found {
			t.Error("batch still tracked after delete")
		}
	})
}
