package consumer

import (
	"github.com/IBM/sarama"
)

type bulkRequestsHandler struct {
	consumer *Consumer
}

func (h *bulkRequestsHandler) Setup(sarama.ConsumerGroupSession) error {
	return nil
}

func (h *bulkRequestsHandler) Cleanup(sarama.ConsumerGroupSession) error {
	return nil
}

// ConsumeClaim processes a partition claim sequentially. An offset is only
// marked after its chunk is persisted or routed to the dead letter topic, so
// the committed offset never runs ahead of an unpersisted chunk. Sarama runs
// one ConsumeClaim per assigned partition, which is where the consumer's
// parallelism comes from.
func (h *bulkRequestsHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for msg := range claim.Messages() {
		h.consumer.handleBulkRequestMessage(session, msg)
	}
	return nil
}
