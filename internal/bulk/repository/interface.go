package repository

import (
	"context"

	"ticket-srv/internal/model"
)

//go:generate mockery --name Repository
type Repository interface {
	TicketRepository
	DeadLetterRepository
}

// TicketRepository - Operations for tickets table
type TicketRepository interface {
	// InsertTickets persists a chunk of tickets in a single transaction.
	// Rows whose ticket_number already exists are skipped and counted as duplicates.
	InsertTickets(ctx context.Context, opt InsertTicketsOptions) (InsertTicketsResult, error)
	CountByBatch(ctx context.Context, batchID string) (int64, error)
}

// DeadLetterRepository - Operations for bulk_dead_letters table
type DeadLetterRepository interface {
	CreateDeadLetter(ctx context.Context, opt CreateDeadLetterOptions) (model.DeadLetter, error)
	GetDeadLetter(ctx context.Context, id int64) (model.DeadLetter, error)
	ListDeadLetters(ctx context.Context, opt ListDeadLettersOptions) ([]*model.DeadLetter, error)
	MarkReprocessed(ctx context.Context, opt MarkReprocessedOptions) error
}

//go:generate mockery --name Tracker
// Tracker - Batch progress bookkeeping in Redis. Implementations must never
// fail the chunk write path: tracking errors are logged and swallowed.
type Tracker interface {
	InitializeBatch(ctx context.Context, opt InitializeBatchOptions) error
	RecordSuccess(ctx context.Context, batchID string, count int64) error
	RecordFailure(ctx context.Context, batchID string, count int64) error
	CompleteChunk(ctx context.Context, batchID string, chunkSequence int) error
	GetBatchStatus(ctx context.Context, batchID string) (model.BatchStatus, bool, error)
	GetActiveBatches(ctx context.Context) ([]string, error)
	CancelBatch(ctx context.Context, batchID string) (bool, error)
	IsCancelled(ctx context.Context, batchID string) (bool, error)
	DeleteBatch(ctx context.Context, batchID string) error
}
