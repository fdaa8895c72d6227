package http

import (
	"time"

	"ticket-srv/internal/bulk"
	"ticket-srv/internal/model"
	"ticket-srv/pkg/util"
)

// =====================================================
// Response DTOs
// =====================================================

// uploadResp - Response for Upload
type uploadResp struct {
	BatchID      string           `json:"batch_id"`
	Message      string           `json:"message"`
	TotalRows    int              `json:"total_rows"`
	ValidRecords int              `json:"valid_records"`
	TotalChunks  int              `json:"total_chunks"`
	SkippedRows  []skippedRowResp `json:"skipped_rows,omitempty"`
	Timestamp    time.Time        `json:"timestamp"`
}

// skippedRowResp - A rejected CSV row
type skippedRowResp struct {
	Line   int    `json:"line"`
	Reason string `json:"reason"`
}

// batchStatusResp - Response for GetBatchStatus
type batchStatusResp struct {
	BatchID          string     `json:"batch_id"`
	Status           string     `json:"status"`
	TotalChunks      int        `json:"total_chunks"`
	CompletedChunks  int        `json:"completed_chunks"`
	TotalTickets     int64      `json:"total_tickets"`
	SuccessCount     int64      `json:"success_count"`
	FailureCount     int64      `json:"failure_count"`
	PersistedTickets int64      `json:"persisted_tickets"`
	StartTime        *time.Time `json:"start_time,omitempty"`
	EndTime          *time.Time `json:"end_time,omitempty"`
}

// activeBatchesResp - Response for GetActiveBatches
type activeBatchesResp struct {
	BatchIDs []string `json:"batch_ids"`
	Count    int      `json:"count"`
}

// cancelBatchResp - Response for CancelBatch
type cancelBatchResp struct {
	BatchID   string `json:"batch_id"`
	Cancelled bool   `json:"cancelled"`
	Reason    string `json:"reason"`
}

// deleteBatchResp - Response for DeleteBatchTracking
type deleteBatchResp struct {
	BatchID string `json:"batch_id"`
	Deleted bool   `json:"deleted"`
}

// deadLetterResp - One stored dead letter
type deadLetterResp struct {
	ID              int64      `json:"id"`
	BatchID         string     `json:"batch_id"`
	Topic           string     `json:"topic"`
	ErrorMessage    string     `json:"error_message"`
	ErrorCode       string     `json:"error_code"`
	Processed       bool       `json:"processed"`
	ReprocessedAt   *time.Time `json:"reprocessed_at,omitempty"`
	ProcessingNotes string     `json:"processing_notes,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
}

// reprocessResp - Response for ReprocessDeadLetter
type reprocessResp struct {
	ID          int64 `json:"id"`
	Republished bool  `json:"republished"`
}

// =====================================================
// Converters
// =====================================================

func (h *handler) newUploadResp(output bulk.UploadOutput) uploadResp {
	resp := uploadResp{
		BatchID:      output.BatchID,
		Message:      "Bulk upload accepted for processing",
		TotalRows:    output.TotalRows,
		ValidRecords: output.ValidRecords,
		TotalChunks:  output.TotalChunks,
		Timestamp:    output.AcceptedAt,
	}

	if len(output.SkippedRows) > 0 {
		resp.SkippedRows = make([]skippedRowResp, len(output.SkippedRows))
		for i, row := range output.SkippedRows {
			resp.SkippedRows[i] = skippedRowResp{Line: row.Line, Reason: row.Reason}
		}
	}

	return resp
}

func (h *handler) newBatchStatusResp(output bulk.BatchStatusOutput) batchStatusResp {
	status := output.Status
	return batchStatusResp{
		BatchID:          status.BatchID,
		Status:           status.Status,
		TotalChunks:      status.TotalChunks,
		CompletedChunks:  status.CompletedChunks,
		TotalTickets:     status.TotalTickets,
		SuccessCount:     status.SuccessCount,
		FailureCount:     status.FailureCount,
		PersistedTickets: output.PersistedTickets,
		StartTime:        status.StartTime,
		EndTime:          status.EndTime,
	}
}

func (h *handler) newDeadLetterListResp(deadLetters []*model.DeadLetter) []deadLetterResp {
	return util.MapSlice(deadLetters, func(dl *model.DeadLetter) *deadLetterResp {
		if dl == nil {
			return nil
		}
		return &deadLetterResp{
			ID:              dl.ID,
			BatchID:         dl.BatchID,
			Topic:           dl.Topic,
			ErrorMessage:    dl.ErrorMessage,
			ErrorCode:       dl.ErrorCode,
			Processed:       dl.Processed,
			ReprocessedAt:   dl.ReprocessedAt,
			ProcessingNotes: dl.ProcessingNotes,
			CreatedAt:       dl.CreatedAt,
		}
	})
}
