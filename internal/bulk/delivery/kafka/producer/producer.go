package producer

import (
	"context"
	"encoding/json"
	"fmt"

	"ticket-srv/internal/bulk"
)

// PublishChunk publishes a chunk message keyed by batch id so all chunks of a
// batch land on the same partition in order.
func (p *implProducer) PublishChunk(ctx context.Context, msg bulk.ChunkMessage) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal chunk message: %w", err)
	}

	if err := p.producer.Publish([]byte(msg.BatchID), body); err != nil {
		return fmt.Errorf("failed to publish chunk %d of batch %s: %w", msg.Sequence, msg.BatchID, err)
	}

	p.l.Debugf(ctx, "Published chunk %d/%d for batch %s, records=%d",
		msg.Sequence, msg.TotalChunks, msg.BatchID, len(msg.Records))
	return nil
}

// RepublishChunk replays a raw payload to the main topic, preserving the key.
func (p *implProducer) RepublishChunk(ctx context.Context, key string, payload []byte) error {
	if err := p.producer.Publish([]byte(key), payload); err != nil {
		return fmt.Errorf("failed to republish chunk for key %s: %w", key, err)
	}

	p.l.Infof(ctx, "Republished chunk payload for key %s", key)
	return nil
}

// PublishDeadLetter publishes a failed chunk to the dead letter topic.
func (p *implProducer) PublishDeadLetter(ctx context.Context, msg bulk.DeadLetterMessage) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal dead letter message: %w", err)
	}

	if err := p.producer.PublishTo(p.deadLetterTopic, []byte(msg.MessageKey), body); err != nil {
		return fmt.Errorf("failed to publish dead letter for key %s: %w", msg.MessageKey, err)
	}

	p.l.Warnf(ctx, "Published dead letter for key %s: %s", msg.MessageKey, msg.ErrorMessage)
	return nil
}
