package usecase

import (
	"context"
	"errors"
	"testing"

	"ticket-srv/internal/bulk"
	repo "ticket-srv/internal/bulk/repository"
)

func TestProcessChunk(t *testing.T) {
	ctx := context.Background()

	chunk := bulk.ChunkMessage{
		BatchID:     "BATCH-TEST",
		Sequence:    1,
		TotalChunks: 1,
		Records:     makeRecords(10),
	}

	t.Run("persists records and updates tracking", func(t *testing.T) {
		repo := newFakeRepository()
		tracker := newFakeTracker()
		uc := newTestUseCase(repo, tracker, &fakeProducer{}, Config{})

		if err := uc.ProcessChunk(ctx, chunk); err != nil {
			t.Fatalf("ProcessChunk() error = %v", err)
		}

		if len(repo.inserted) != 1 || len(repo.inserted[0].Tickets) != 10 {
			t.Fatalf("unexpected inserts: %+v", repo.inserted)
		}
		if tracker.successes["BATCH-TEST"] != 10 {
			t.Errorf("successes = %d, want 10", tracker.successes["BATCH-TEST"])
		}
		if tracker.completed["BATCH-TEST"] != 1 {
			t.Errorf("completed = %d, want 1", tracker.completed["BATCH-TEST"])
		}
	})

	t.Run("malformed message", func(t *testing.T) {
		uc := newTestUseCase(newFakeRepository(), newFakeTracker(), &fakeProducer{}, Config{})

		if err := uc.ProcessChunk(ctx, bulk.ChunkMessage{}); !errors.Is(err, bulk.ErrMalformedChunk) {
			t.Errorf("error = %v, want ErrMalformedChunk", err)
		}
		if err := uc.ProcessChunk(ctx, bulk.ChunkMessage{BatchID: "B"}); !errors.Is(err, bulk.ErrMalformedChunk) {
			t.Errorf("error = %v, want ErrMalformedChunk", err)
		}
	})

	t.Run("cancelled batch is drained without writes", func(t *testing.T) {
		repo := newFakeRepository()
		tracker := newFakeTracker()
		uc := newTestUseCase(repo, tracker, &fakeProducer{}, Config{})

		tracker.cancelled["BATCH-TEST"] = true

		if err := uc.ProcessChunk(ctx, chunk); err != nil {
			t.Fatalf("ProcessChunk() error = %v", err)
		}
		if len(repo.inserted) != 0 {
			t.Errorf("inserted = %d chunks, want 0", len(repo.inserted))
		}
		if tracker.failures["BATCH-TEST"] != 10 {
			t.Errorf("failures = %d, want 10", tracker.failures["BATCH-TEST"])
		}
		if tracker.completed["BATCH-TEST"] != 1 {
			t.Errorf("completed = %d, want 1", tracker.completed["BATCH-TEST"])
		}
	})

	t.Run("persistence failure is retryable", func(t *testing.T) {
		repo := newFakeRepository()
		repo.insertErr = errors.New("connection reset")
		tracker := newFakeTracker()
		uc := newTestUseCase(repo, tracker, &fakeProducer{}, Config{})

		err := uc.ProcessChunk(ctx, chunk)
		if !errors.Is(err, bulk.ErrChunkPersistFailed) {
			t.Fatalf("error = %v, want ErrChunkPersistFailed", err)
		}
		if !bulk.Classify(err).Retryable {
			t.Error("persistence failure should be retryable")
		}
		// Chunk is not marked complete, a retry may still succeed
		if tracker.completed["BATCH-TEST"] != 0 {
			t.Errorf("completed = %d, want 0", tracker.completed["BATCH-TEST"])
		}
	})

	t.Run("constraint rejection is not retryable", func(t *testing.T) {
		fRepo := newFakeRepository()
		fRepo.insertErr = repo.ErrConstraintViolation
		tracker := newFakeTracker()
		uc := newTestUseCase(fRepo, tracker, &fakeProducer{}, Config{})

		err := uc.ProcessChunk(ctx, chunk)
		if !errors.Is(err, bulk.ErrChunkRejected) {
			t.Fatalf("error = %v, want ErrChunkRejected", err)
		}
		if bulk.Classify(err).Retryable {
			t.Error("constraint rejection should not be retryable")
		}
	})
}
