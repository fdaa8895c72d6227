package model

import "time"

// DeadLetter represents a permanently failed chunk recorded for manual review.
type DeadLetter struct {
	ID           int64  `json:"id"`
	BatchID      string `json:"batch_id"`
	Topic        string `json:"topic"`
	MessageKey   string `json:"message_key"`
	Payload      []byte `json:"payload"`
	ErrorMessage string `json:"error_message"`
	ErrorCode    string `json:"error_code"`

	// Reprocess bookkeeping
	Processed       bool       `json:"processed"`
	ReprocessedAt   *time.Time `json:"reprocessed_at,omitempty"`
	ProcessingNotes string     `json:"processing_notes,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}
