package bulk

import "context"

//go:generate mockery --name Producer
// Producer publishes chunk and dead letter messages to Kafka.
type Producer interface {
	// PublishChunk sends a chunk to the main topic, keyed by batch id.
	PublishChunk(ctx context.Context, msg ChunkMessage) error
	// RepublishChunk replays a raw chunk payload to the main topic.
	RepublishChunk(ctx context.Context, key string, payload []byte) error
	// PublishDeadLetter sends a failed chunk to the dead letter topic.
	PublishDeadLetter(ctx context.Context, msg DeadLetterMessage) error
}
