package usecase

import (
	"context"
	"sync"
	"time"

	"ticket-srv/internal/bulk"
	repo "ticket-srv/internal/bulk/repository"
	"ticket-srv/internal/model"
	"ticket-srv/pkg/log"
)

// fakeRepository is an in-memory Repository for tests.
type fakeRepository struct {
	mu sync.Mutex

	insertErr   error
	inserted    []repo.InsertTicketsOptions
	ticketCount map[string]int64

	deadLetters map[int64]model.DeadLetter
	markErr     error
	marked      []repo.MarkReprocessedOptions
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		ticketCount: make(map[string]int64),
		deadLetters: make(map[int64]model.DeadLetter),
	}
}

func (f *fakeRepository) InsertTickets(ctx context.Context, opt repo.InsertTicketsOptions) (repo.InsertTicketsResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.insertErr != nil {
		return repo.InsertTicketsResult{}, f.insertErr
	}
	f.inserted = append(f.inserted, opt)
	f.ticketCount[opt.BatchID] += int64(len(opt.Tickets))
	return repo.InsertTicketsResult{Inserted: int64(len(opt.Tickets))}, nil
}

func (f *fakeRepository) CountByBatch(ctx context.Context, batchID string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.ticketCount[batchID], nil
}

func (f *fakeRepository) CreateDeadLetter(ctx context.Context, opt repo.CreateDeadLetterOptions) (model.DeadLetter, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := int64(len(f.deadLetters) + 1)
	dl := model.DeadLetter{
		ID:           id,
		BatchID:      opt.BatchID,
		Topic:        opt.Topic,
		MessageKey:   opt.MessageKey,
		Payload:      opt.Payload,
		ErrorMessage: opt.ErrorMessage,
		ErrorCode:    opt.ErrorCode,
		CreatedAt:    time.Now(),
	}
	f.deadLetters[id] = dl
	return dl, nil
}

func (f *fakeRepository) GetDeadLetter(ctx context.Context, id int64) (model.DeadLetter, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	dl, ok := f.deadLetters[id]
	if !ok {
		return model.DeadLetter{}, repo.ErrNotFound
	}
	return dl, nil
}

func (f *fakeRepository) ListDeadLetters(ctx context.Context, opt repo.ListDeadLettersOptions) ([]*model.DeadLetter, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*model.DeadLetter
	for id := range f.deadLetters {
		dl := f.deadLetters[id]
		if dl.Processed && !opt.IncludeResolved {
			continue
		}
		out = append(out, &dl)
	}
	return out, nil
}

func (f *fakeRepository) MarkReprocessed(ctx context.Context, opt repo.MarkReprocessedOptions) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.markErr != nil {
		return f.markErr
	}
	dl, ok := f.deadLetters[opt.ID]
	if !ok {
		return repo.ErrNotFound
	}
	dl.Processed = true
	f.deadLetters[opt.ID] = dl
	f.marked = append(f.marked, opt)
	return nil
}

// fakeTracker is an in-memory Tracker for tests.
type fakeTracker struct {
	mu sync.Mutex

	initialized []repo.InitializeBatchOptions
	successes   map[string]int64
	failures    map[string]int64
	completed   map[string]int
	cancelled   map[string]bool
	statuses    map[string]model.BatchStatus
}

func newFakeTracker() *fakeTracker {
	return &fakeTracker{
		successes: make(map[string]int64),
		failures:  make(map[string]int64),
		completed: make(map[string]int),
		cancelled: make(map[string]bool),
		statuses:  make(map[string]model.BatchStatus),
	}
}

func (f *fakeTracker) InitializeBatch(ctx context.Context, opt repo.InitializeBatchOptions) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.initialized = append(f.initialized, opt)
	f.statuses[opt.BatchID] = model.BatchStatus{
		BatchID:      opt.BatchID,
		Status:       model.BatchStatusInProgress,
		TotalChunks:  opt.TotalChunks,
		TotalTickets: opt.TotalTickets,
	}
	return nil
}

func (f *fakeTracker) RecordSuccess(ctx context.Context, batchID string, count int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.successes[batchID] += count
	return nil
}

func (f *fakeTracker) RecordFailure(ctx context.Context, batchID string, count int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failures[batchID] += count
	return nil
}

func (f *fakeTracker) CompleteChunk(ctx context.Context, batchID string, chunkSequence int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.completed[batchID]++
	return nil
}

func (f *fakeTracker) GetBatchStatus(ctx context.Context, batchID string) (model.BatchStatus, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	status, ok := f.statuses[batchID]
	return status, ok, nil
}

func (f *fakeTracker) GetActiveBatches(ctx context.Context) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var ids []string
	for id := range f.statuses {
		ids = append(ids, id)
	}
	return ids, nil
}

func (f *fakeTracker) CancelBatch(ctx context.Context, batchID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.statuses[batchID]; !ok {
		return false, nil
	}
	f.cancelled[batchID] = true
	return true, nil
}

func (f *fakeTracker) IsCancelled(ctx context.Context, batchID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.cancelled[batchID], nil
}

func (f *fakeTracker) DeleteBatch(ctx context.Context, batchID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.statuses, batchID)
	return nil
}

// fakeProducer records published messages.
type fakeProducer struct {
	mu sync.Mutex

	publishErr  error
	chunks      []bulk.ChunkMessage
	republished [][]byte
	deadLetters []bulk.DeadLetterMessage
}

func (f *fakeProducer) PublishChunk(ctx context.Context, msg bulk.ChunkMessage) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.publishErr != nil {
		return f.publishErr
	}
	f.chunks = append(f.chunks, msg)
	return nil
}

func (f *fakeProducer) RepublishChunk(ctx context.Context, key string, payload []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.publishErr != nil {
		return f.publishErr
	}
	f.republished = append(f.republished, payload)
	return nil
}

func (f *fakeProducer) PublishDeadLetter(ctx context.Context, msg bulk.DeadLetterMessage) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deadLetters = append(f.deadLetters, msg)
	return nil
}

func (f *fakeProducer) chunkCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.chunks)
}

// waitForChunks polls until the producer has seen n chunks or the timeout
// passes, background publishing runs on its own goroutine.
func (f *fakeProducer) waitForChunks(n int, timeout time.Duration) bool {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if f.chunkCount() >= n {
			return true
		}
		time.Sleep(5 * time.Millisecond)
	}
	return f.chunkCount() >= n
}

func newTestUseCase(r *fakeRepository, tr *fakeTracker, p *fakeProducer, cfg Config) *implUseCase {
	logger := log.Init(log.ZapConfig{Level: "error"})
	return New(logger, r, tr, p, nil, cfg).(*implUseCase)
}
