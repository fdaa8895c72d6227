package model

import "time"

// Batch status constants
const (
	BatchStatusInProgress = "IN_PROGRESS"
	BatchStatusCompleted  = "COMPLETED"
	BatchStatusCancelled  = "CANCELLED"
	BatchStatusUnknown    = "UNKNOWN"
)

// BatchStatus is the tracked progress of a bulk upload batch.
type BatchStatus struct {
	BatchID         string     `json:"batch_id"`
	Status          string     `json:"status"`
	TotalChunks     int        `json:"total_chunks"`
	CompletedChunks int        `json:"completed_chunks"`
	TotalTickets    int64      `json:"total_tickets"`
	SuccessCount    int64      `json:"success_count"`
	FailureCount    int64      `json:"failure_count"`
	StartTime       *time.Time `json:"start_time,omitempty"`
	EndTime         *time.Time `json:"end_time,omitempty"`
}

// TicketEvent is a single validated ticket carried inside a chunk message.
type TicketEvent struct {
	BatchID      string `json:"batch_id"`
	TicketNumber string `json:"ticket_number"`
	Status       string `json:"status"`
	Priority     string `json:"priority"`
	CustomerID   int64  `json:"customer_id"`
	AssignedTo   *int64 `json:"assigned_to,omitempty"`
}

// RowError describes a rejected CSV row.
type RowError struct {
	Line   int    `json:"line"`
	Reason string `json:"reason"`
}

// UploadResult summarizes file validation before publishing.
type UploadResult struct {
	BatchID      string     `json:"batch_id"`
	TotalRows    int        `json:"total_rows"`
	ValidRecords int        `json:"valid_records"`
	SkippedRows  []RowError `json:"skipped_rows,omitempty"`
	TotalChunks  int        `json:"total_chunks"`
}
