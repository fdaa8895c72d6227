package consumer

import (
	"context"
	"encoding/json"
	"time"

	"github.com/IBM/sarama"

	"ticket-srv/internal/bulk"
	repo "ticket-srv/internal/bulk/repository"
)

// handleBulkRequestMessage processes one chunk message end to end. Retryable
// failures get a bounded retry with fixed backoff, anything still failing
// after that goes to the dead letter topic. The offset is always marked so a
// poison chunk cannot wedge the partition.
func (c *Consumer) handleBulkRequestMessage(session sarama.ConsumerGroupSession, msg *sarama.ConsumerMessage) {
	ctx := session.Context()

	c.l.Debugf(ctx, "bulk.delivery.kafka.consumer.handleBulkRequestMessage: Processing message from partition %d, offset %d",
		msg.Partition, msg.Offset)

	var message bulk.ChunkMessage
	if err := json.Unmarshal(msg.Value, &message); err != nil {
		c.l.Warnf(ctx, "bulk.delivery.kafka.consumer.handleBulkRequestMessage: Invalid message format: %v", err)
		c.routeToDeadLetter(ctx, msg, bulk.ErrMalformedChunk)
		session.MarkMessage(msg, "")
		return
	}

	err := c.processWithRetry(ctx, message)
	if err != nil {
		c.routeToDeadLetter(ctx, msg, err)
	}

	session.MarkMessage(msg, "")
}

// processWithRetry runs the usecase, retrying retryable failures with a fixed
// backoff. Non-retryable failures return immediately.
func (c *Consumer) processWithRetry(ctx context.Context, message bulk.ChunkMessage) error {
	var lastErr error
	for attempt := 0; attempt <= c.retryAttempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(c.retryBackoff):
			}
			c.l.Infof(ctx, "bulk.delivery.kafka.consumer.processWithRetry: Retry %d/%d for chunk %d of batch %s",
				attempt, c.retryAttempts, message.Sequence, message.BatchID)
		}

		lastErr = c.uc.ProcessChunk(ctx, message)
		if lastErr == nil {
			return nil
		}
		if !bulk.Classify(lastErr).Retryable {
			return lastErr
		}
	}
	return lastErr
}

// routeToDeadLetter publishes the failed message to the dead letter topic and
// mirrors it into Postgres so it survives topic retention.
func (c *Consumer) routeToDeadLetter(ctx context.Context, msg *sarama.ConsumerMessage, cause error) {
	classification := bulk.Classify(cause)
	key := string(msg.Key)

	c.l.Errorf(ctx, "bulk.delivery.kafka.consumer.routeToDeadLetter: Chunk for key %s failed permanently (%s): %v",
		key, classification.Code, cause)

	deadLetter := bulk.DeadLetterMessage{
		Topic:        msg.Topic,
		MessageKey:   key,
		Payload:      string(msg.Value),
		ErrorMessage: cause.Error(),
		ErrorCode:    classification.Code,
		FailedAt:     time.Now(),
	}
	if err := c.producer.PublishDeadLetter(ctx, deadLetter); err != nil {
		c.l.Errorf(ctx, "bulk.delivery.kafka.consumer.routeToDeadLetter: Failed to publish dead letter for key %s: %v", key, err)
	}

	if _, err := c.deadLetters.CreateDeadLetter(ctx, repo.CreateDeadLetterOptions{
		BatchID:      key,
		Topic:        msg.Topic,
		MessageKey:   key,
		Payload:      msg.Value,
		ErrorMessage: cause.Error(),
		ErrorCode:    classification.Code,
		FailedAt:     deadLetter.FailedAt,
	}); err != nil {
		c.l.Errorf(ctx, "bulk.delivery.kafka.consumer.routeToDeadLetter: Failed to store dead letter for key %s: %v", key, err)
	}
}
