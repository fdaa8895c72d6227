package usecase

import (
	"context"
	"time"

	"ticket-srv/internal/bulk"
	"ticket-srv/internal/model"
)

// chunkRecords splits records into fixed-size chunks, preserving order.
func chunkRecords(records []model.TicketEvent, size int) [][]model.TicketEvent {
	if size <= 0 {
		size = 100
	}
	var chunks [][]model.TicketEvent
	for start := 0; start < len(records); start += size {
		end := start + size
		if end > len(records) {
			end = len(records)
		}
		chunks = append(chunks, records[start:end])
	}
	return chunks
}

// publishChunks publishes every chunk of a batch in sequence. A failed chunk
// is logged and skipped, the remaining chunks keep going. The batch's chunk
// count then never reaches totalChunks, which is how callers discover the
// loss.
func (uc *implUseCase) publishChunks(ctx context.Context, batchID string, chunks [][]model.TicketEvent) {
	published := 0
	for i, chunk := range chunks {
		msg := bulk.ChunkMessage{
			BatchID:     batchID,
			Sequence:    i + 1,
			TotalChunks: len(chunks),
			Records:     chunk,
			PublishedAt: time.Now(),
		}

		if err := uc.producer.PublishChunk(ctx, msg); err != nil {
			uc.l.Errorf(ctx, "bulk.usecase.publishChunks: Failed to publish chunk %d/%d of batch %s: %v",
				msg.Sequence, msg.TotalChunks, batchID, err)
			continue
		}
		published++
	}

	uc.l.Infof(ctx, "bulk.usecase.publishChunks: Batch %s publishing done, published=%d/%d",
		batchID, published, len(chunks))
}
