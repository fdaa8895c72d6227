package bulk

import (
	"time"

	"ticket-srv/internal/model"
)

// ============================================
// UseCase Input/Output Types
// ============================================

// UploadInput carries an uploaded CSV file and who uploaded it.
type UploadInput struct {
	FileName   string
	Size       int64
	Content    []byte
	UploadedBy string
}

// UploadOutput is returned once a file is accepted for processing.
type UploadOutput struct {
	BatchID      string
	TotalRows    int
	ValidRecords int
	TotalChunks  int
	SkippedRows  []model.RowError
	AcceptedAt   time.Time
}

// BatchStatusOutput reports tracked batch progress plus the number of rows
// already persisted for the batch.
type BatchStatusOutput struct {
	Status           model.BatchStatus
	PersistedTickets int64
}

// ActiveBatchesOutput lists batches still in flight.
type ActiveBatchesOutput struct {
	BatchIDs []string
}

// CancelBatchInput requests advisory cancellation of a batch.
type CancelBatchInput struct {
	BatchID string
	Reason  string
}

// CancelBatchOutput reports the cancel result.
type CancelBatchOutput struct {
	BatchID   string
	Cancelled bool
	Reason    string
}

// ListDeadLettersInput filters the dead letter listing.
type ListDeadLettersInput struct {
	Limit           int
	IncludeResolved bool
}

// ListDeadLettersOutput carries stored dead letters.
type ListDeadLettersOutput struct {
	DeadLetters []*model.DeadLetter
}

// ReprocessInput requests replay of a dead letter back to the main topic.
type ReprocessInput struct {
	ID    int64
	Notes string
}

// ReprocessOutput reports the replay result.
type ReprocessOutput struct {
	ID          int64
	Republished bool
}

// ============================================
// Wire Types (Kafka)
// ============================================

// ChunkMessage is the unit published to and consumed from the chunk topic.
type ChunkMessage struct {
	BatchID     string              `json:"batch_id"`
	Sequence    int                 `json:"sequence"`
	TotalChunks int                 `json:"total_chunks"`
	Records     []model.TicketEvent `json:"records"`
	PublishedAt time.Time           `json:"published_at"`
}

// DeadLetterMessage is the payload published to the dead letter topic.
type DeadLetterMessage struct {
	Topic        string    `json:"topic"`
	MessageKey   string    `json:"message_key"`
	Payload      string    `json:"payload"`
	ErrorMessage string    `json:"error_message"`
	ErrorCode    string    `json:"error_code"`
	FailedAt     time.Time `json:"failed_at"`
}

// ============================================
// Chunk Processing Results
// ============================================

// ChunkResult summarizes persistence of one chunk.
type ChunkResult struct {
	Inserted   int64
	Duplicates int64
}
