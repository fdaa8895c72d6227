package consumer

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/IBM/sarama"

	"ticket-srv/config"
	"ticket-srv/internal/bulk"
	bulkKafka "ticket-srv/internal/bulk/delivery/kafka"
	repo "ticket-srv/internal/bulk/repository"
	"ticket-srv/internal/model"
	"ticket-srv/pkg/log"
)

// fakeUseCase records ProcessChunk calls and returns scripted errors.
type fakeUseCase struct {
	mu sync.Mutex

	processErr error
	processed  []bulk.ChunkMessage
}

func (f *fakeUseCase) ProcessChunk(ctx context.Context, msg bulk.ChunkMessage) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.processed = append(f.processed, msg)
	return f.processErr
}

func (f *fakeUseCase) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.processed)
}

func (f *fakeUseCase) Upload(ctx context.Context, input bulk.UploadInput) (bulk.UploadOutput, error) {
	return bulk.UploadOutput{}, nil
}

func (f *fakeUseCase) GetBatchStatus(ctx context.Context, batchID string) (bulk.BatchStatusOutput, error) {
	return bulk.BatchStatusOutput{}, nil
}

func (f *fakeUseCase) GetActiveBatches(ctx context.Context) (bulk.ActiveBatchesOutput, error) {
	return bulk.ActiveBatchesOutput{}, nil
}

func (f *fakeUseCase) CancelBatch(ctx context.Context, input bulk.CancelBatchInput) (bulk.CancelBatchOutput, error) {
	return bulk.CancelBatchOutput{}, nil
}

func (f *fakeUseCase) DeleteBatchTracking(ctx context.Context, batchID string) error {
	return nil
}

func (f *fakeUseCase) ListDeadLetters(ctx context.Context, input bulk.ListDeadLettersInput) (bulk.ListDeadLettersOutput, error) {
	return bulk.ListDeadLettersOutput{}, nil
}

func (f *fakeUseCase) ReprocessDeadLetter(ctx context.Context, input bulk.ReprocessInput) (bulk.ReprocessOutput, error) {
	return bulk.ReprocessOutput{}, nil
}

// fakeProducer records dead letter publishes.
type fakeProducer struct {
	mu          sync.Mutex
	deadLetters []bulk.DeadLetterMessage
}

func (f *fakeProducer) PublishChunk(ctx context.Context, msg bulk.ChunkMessage) error { return nil }

func (f *fakeProducer) RepublishChunk(ctx context.Context, key string, payload []byte) error {
	return nil
}

func (f *fakeProducer) PublishDeadLetter(ctx context.Context, msg bulk.DeadLetterMessage) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deadLetters = append(f.deadLetters, msg)
	return nil
}

// fakeDeadLetterRepo records mirrored dead letters.
type fakeDeadLetterRepo struct {
	mu      sync.Mutex
	created []repo.CreateDeadLetterOptions
}

func (f *fakeDeadLetterRepo) CreateDeadLetter(ctx context.Context, opt repo.CreateDeadLetterOptions) (model.DeadLetter, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.created = append(f.created, opt)
	return model.DeadLetter{ID: int64(len(f.created))}, nil
}

func (f *fakeDeadLetterRepo) GetDeadLetter(ctx context.Context, id int64) (model.DeadLetter, error) {
	return model.DeadLetter{}, repo.ErrNotFound
}

func (f *fakeDeadLetterRepo) ListDeadLetters(ctx context.Context, opt repo.ListDeadLettersOptions) ([]*model.DeadLetter, error) {
	return nil, nil
}

func (f *fakeDeadLetterRepo) MarkReprocessed(ctx context.Context, opt repo.MarkReprocessedOptions) error {
	return nil
}

// fakeSession implements sarama.ConsumerGroupSession for handler tests.
type fakeSession struct {
	mu     sync.Mutex
	marked []*sarama.ConsumerMessage
}

func (s *fakeSession) Claims() map[string][]int32 { return nil }

func (s *fakeSession) MemberID() string { return "test-member" }

func (s *fakeSession) GenerationID() int32 { return 1 }

func (s *fakeSession) MarkOffset(topic string, partition int32, offset int64, metadata string) {}

func (s *fakeSession) Commit() {}

func (s *fakeSession) ResetOffset(topic string, partition int32, offset int64, metadata string) {}

func (s *fakeSession) MarkMessage(msg *sarama.ConsumerMessage, metadata string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.marked = append(s.marked, msg)
}

func (s *fakeSession) Context() context.Context { return context.Background() }

func (s *fakeSession) markedCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.marked)
}

func (s *fakeSession) markedOffsets() []int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	offsets := make([]int64, 0, len(s.marked))
	for _, msg := range s.marked {
		offsets = append(offsets, msg.Offset)
	}
	return offsets
}

func newTestConsumer(t *testing.T, uc bulk.UseCase, producer *fakeProducer, deadLetters *fakeDeadLetterRepo, retries int) *Consumer {
	t.Helper()
	c, err := New(Config{
		Logger: log.Init(log.ZapConfig{Level: "error"}),
		KafkaConfig: config.KafkaConfig{
			Brokers:         []string{"localhost:9092"},
			Topic:           bulkKafka.TopicBulkRequests,
			DeadLetterTopic: bulkKafka.TopicBulkRequestsDLT,
			ConsumerGroup:   bulkKafka.ConsumerGroupBulkRequests,
		},
		UseCase:       uc,
		Producer:      producer,
		DeadLetters:   deadLetters,
		Concurrency:   1,
		RetryAttempts: retries,
		RetryBackoff:  time.Millisecond,
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return c
}

func chunkPayload(t *testing.T) []byte {
	t.Helper()
	payload, err := json.Marshal(bulk.ChunkMessage{
		BatchID:     "BATCH-1",
		Sequence:    1,
		TotalChunks: 1,
		Records:     []model.TicketEvent{{TicketNumber: "TCK-001", CustomerID: 1}},
	})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return payload
}

func TestHandleBulkRequestMessage(t *testing.T) {
	t.Run("valid message is processed and marked", func(t *testing.T) {
		uc := &fakeUseCase{}
		producer := &fakeProducer{}
		deadLetters := &fakeDeadLetterRepo{}
		c := newTestConsumer(t, uc, producer, deadLetters, 3)
		session := &fakeSession{}

		c.handleBulkRequestMessage(session, &sarama.ConsumerMessage{
			Topic: bulkKafka.TopicBulkRequests,
			Key:   []byte("BATCH-1"),
			Value: chunkPayload(t),
		})

		if uc.calls() != 1 {
			t.Errorf("ProcessChunk called %d times, want 1", uc.calls())
		}
		if session.markedCount() != 1 {
			t.Errorf("marked %d messages, want 1", session.markedCount())
		}
		if len(producer.deadLetters) != 0 {
			t.Errorf("dead letters published = %d, want 0", len(producer.deadLetters))
		}
	})

	t.Run("unparseable payload goes straight to the dead letter topic", func(t *testing.T) {
		uc := &fakeUseCase{}
		producer := &fakeProducer{}
		deadLetters := &fakeDeadLetterRepo{}
		c := newTestConsumer(t, uc, producer, deadLetters, 3)
		session := &fakeSession{}

		c.handleBulkRequestMessage(session, &sarama.ConsumerMessage{
			Topic: bulkKafka.TopicBulkRequests,
			Key:   []byte("BATCH-1"),
			Value: []byte("not json"),
		})

		if uc.calls() != 0 {
			t.Errorf("ProcessChunk called %d times, want 0", uc.calls())
		}
		if len(producer.deadLetters) != 1 {
			t.Fatalf("dead letters published = %d, want 1", len(producer.deadLetters))
		}
		if producer.deadLetters[0].ErrorCode != bulk.CodeKafkaDeserializationErr {
			t.Errorf("error code = %s, want %s", producer.deadLetters[0].ErrorCode, bulk.CodeKafkaDeserializationErr)
		}
		if len(deadLetters.created) != 1 {
			t.Errorf("mirrored dead letters = %d, want 1", len(deadLetters.created))
		}
		// Offset still advances, a poison message must not wedge the partition
		if session.markedCount() != 1 {
			t.Errorf("marked %d messages, want 1", session.markedCount())
		}
	})

	t.Run("retryable failure is retried then dead lettered", func(t *testing.T) {
		uc := &fakeUseCase{processErr: bulk.ErrChunkPersistFailed}
		producer := &fakeProducer{}
		deadLetters := &fakeDeadLetterRepo{}
		c := newTestConsumer(t, uc, producer, deadLetters, 2)
		session := &fakeSession{}

		c.handleBulkRequestMessage(session, &sarama.ConsumerMessage{
			Topic: bulkKafka.TopicBulkRequests,
			Key:   []byte("BATCH-1"),
			Value: chunkPayload(t),
		})

		// Initial attempt plus two retries
		if uc.calls() != 3 {
			t.Errorf("ProcessChunk called %d times, want 3", uc.calls())
		}
		if len(producer.deadLetters) != 1 {
			t.Fatalf("dead letters published = %d, want 1", len(producer.deadLetters))
		}
		if producer.deadLetters[0].ErrorCode != bulk.CodeDatabaseError {
			t.Errorf("error code = %s, want %s", producer.deadLetters[0].ErrorCode, bulk.CodeDatabaseError)
		}
		if session.markedCount() != 1 {
			t.Errorf("marked %d messages, want 1", session.markedCount())
		}
	})

	t.Run("non-retryable failure skips retries", func(t *testing.T) {
		uc := &fakeUseCase{processErr: bulk.ErrMalformedChunk}
		producer := &fakeProducer{}
		deadLetters := &fakeDeadLetterRepo{}
		c := newTestConsumer(t, uc, producer, deadLetters, 3)
		session := &fakeSession{}

		c.handleBulkRequestMessage(session, &sarama.ConsumerMessage{
			Topic: bulkKafka.TopicBulkRequests,
			Key:   []byte("BATCH-1"),
			Value: chunkPayload(t),
		})

		if uc.calls() != 1 {
			t.Errorf("ProcessChunk called %d times, want 1", uc.calls())
		}
		if len(producer.deadLetters) != 1 {
			t.Fatalf("dead letters published = %d, want 1", len(producer.deadLetters))
		}
	})
}
