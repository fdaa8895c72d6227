package repository

import (
	"time"

	"ticket-srv/internal/model"
)

// =====================================================
// Ticket Options
// =====================================================

// InsertTicketsOptions - Options for InsertTickets operation
type InsertTicketsOptions struct {
	BatchID string
	Tickets []model.TicketEvent
}

// InsertTicketsResult - Result of a chunk insert
type InsertTicketsResult struct {
	Inserted   int64
	Duplicates int64
}

// =====================================================
// Dead Letter Options
// =====================================================

// CreateDeadLetterOptions - Options for CreateDeadLetter operation
type CreateDeadLetterOptions struct {
	BatchID      string
	Topic        string
	MessageKey   string
	Payload      []byte
	ErrorMessage string
	ErrorCode    string
	FailedAt     time.Time
}

// ListDeadLettersOptions - Options for ListDeadLetters query
type ListDeadLettersOptions struct {
	BatchID         string // Filter by batch_id
	IncludeResolved bool   // Include already reprocessed records

	// Optional Safety Limit
	Limit int // Max records to return (0 = default cap)
}

// MarkReprocessedOptions - Options for MarkReprocessed operation
type MarkReprocessedOptions struct {
	ID    int64
	Notes string
}

// =====================================================
// Tracker Options
// =====================================================

// InitializeBatchOptions - Options for InitializeBatch operation
type InitializeBatchOptions struct {
	BatchID      string
	TotalChunks  int
	TotalTickets int64
	TTL          time.Duration
}
